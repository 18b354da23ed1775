package model

// Permission represents a string code for a specific system action.
type Permission string

const (
	// PermissionClassesRead allows viewing own classes.
	PermissionClassesRead Permission = "classes:read"

	// PermissionClassesWrite allows creating, updating and deleting own classes.
	PermissionClassesWrite Permission = "classes:write"

	// PermissionStudentsRead allows viewing student lists and details.
	PermissionStudentsRead Permission = "students:read"

	// PermissionStudentsWrite allows creating and updating students.
	PermissionStudentsWrite Permission = "students:write"

	// PermissionStudentsResetSession allows resetting a student's active session.
	PermissionStudentsResetSession Permission = "students:reset_session"

	// PermissionExamsRead allows viewing a student's exam results.
	PermissionExamsRead Permission = "exams:read"

	// PermissionAnalysisRead allows viewing a student's performance analysis.
	PermissionAnalysisRead Permission = "analysis:read"

	// PermissionHomeworkWrite allows assigning and deleting homework.
	PermissionHomeworkWrite Permission = "homework:write"

	// PermissionSettingsRead allows viewing application settings.
	PermissionSettingsRead Permission = "settings:read"

	// PermissionSettingsWrite allows editing application settings.
	PermissionSettingsWrite Permission = "settings:write"

	// PermissionTeachersWrite allows creating teacher accounts.
	PermissionTeachersWrite Permission = "teachers:write"

	// PermissionAllClasses lets a teacher act on classes they do not own.
	PermissionAllClasses Permission = "classes:all"
)

// AllPermissions is a slice of all available permissions.
var AllPermissions = []Permission{
	PermissionClassesRead,
	PermissionClassesWrite,
	PermissionStudentsRead,
	PermissionStudentsWrite,
	PermissionStudentsResetSession,
	PermissionExamsRead,
	PermissionAnalysisRead,
	PermissionHomeworkWrite,
	PermissionSettingsRead,
	PermissionSettingsWrite,
	PermissionTeachersWrite,
	PermissionAllClasses,
}
