package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionActive      ErrCode = "SESSION_ALREADY_ACTIVE"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrPermissionDenied  ErrCode = "PERMISSION_DENIED"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrParentAccessOnly  ErrCode = "PARENT_ACCESS_ONLY"
	ErrTeacherAccessOnly ErrCode = "TEACHER_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Exam results ──────────────────────────────────────────────────
	ErrInvalidExamType    ErrCode = "INVALID_EXAM_TYPE"
	ErrInvalidExamDetails ErrCode = "INVALID_EXAM_DETAILS"
	ErrNotClassTeacher    ErrCode = "NOT_CLASS_TEACHER"

	// ─── Homework ──────────────────────────────────────────────────────
	ErrHomeworkCompleted ErrCode = "HOMEWORK_ALREADY_COMPLETED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Öğrenci numarası, e-posta veya şifre hatalı."
	case ErrSessionActive:
		return "Başka bir cihazda zaten oturum açtınız."
	case ErrSessionInvalidated:
		return "Oturumunuz sona erdi. Lütfen tekrar giriş yapın."
	case ErrTokenRequired:
		return "Kimlik doğrulama belirteci gerekli."
	case ErrTokenInvalid:
		return "Kimlik doğrulama belirteci geçersiz."
	case ErrTokenExpired:
		return "Kimlik doğrulama belirtecinin süresi doldu."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Bu kaynağa erişim izniniz yok."
	case ErrPermissionDenied:
		return "İzin reddedildi."
	case ErrStudentAccessOnly:
		return "Bu kaynak yalnızca öğrencilere açıktır."
	case ErrParentAccessOnly:
		return "Bu kaynak yalnızca velilere açıktır."
	case ErrTeacherAccessOnly:
		return "Bu kaynak yalnızca öğretmenlere açıktır."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Doğrulama başarısız. Lütfen girdilerinizi kontrol edin."
	case ErrInvalidID:
		return "Geçersiz kimlik biçimi."
	case ErrInvalidPayload:
		return "İstek gövdesi geçersiz."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Kayıt bulunamadı."
	case ErrConflict:
		return "Kayıt zaten mevcut."
	case ErrDependencyExists:
		return "Kayıt başka veriler tarafından kullanıldığı için silinemez."

	// ─── Exam results ──────────────────────────────────────────────────
	case ErrInvalidExamType:
		return "Geçersiz sınav türü."
	case ErrInvalidExamDetails:
		return "Sınav sonuçları geçersiz. Lütfen doğru ve yanlış sayılarını kontrol edin."
	case ErrNotClassTeacher:
		return "Bu öğrencinin sınıfı size ait değil."

	// ─── Homework ──────────────────────────────────────────────────────
	case ErrHomeworkCompleted:
		return "Bu ödev zaten tamamlandı."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Çok fazla istek gönderildi. Lütfen daha sonra tekrar deneyin."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Sunucuda bir hata oluştu."
	default:
		return "Beklenmeyen bir hata oluştu."
	}
}
