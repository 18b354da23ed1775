package scoring

// ExamType enumerates the exam families a student can log.
type ExamType string

const (
	ExamTypeTYT    ExamType = "TYT"
	ExamTypeAYT    ExamType = "AYT"
	ExamTypeLGS    ExamType = "LGS"
	ExamTypeCustom ExamType = "custom"
)

// Valid reports whether t is a known exam type.
func (t ExamType) Valid() bool {
	switch t {
	case ExamTypeTYT, ExamTypeAYT, ExamTypeLGS, ExamTypeCustom:
		return true
	}
	return false
}

// AYTTrack selects which AYT subjects make up the AYT score.
type AYTTrack string

const (
	TrackSayisal     AYTTrack = "sayisal"
	TrackEsitAgirlik AYTTrack = "esit_agirlik"
	TrackSozel       AYTTrack = "sozel"
)

// Valid reports whether t is a known AYT track.
func (t AYTTrack) Valid() bool {
	_, ok := trackSubjects[t]
	return ok
}

// Label returns the Turkish display name of the track.
func (t AYTTrack) Label() string {
	switch t {
	case TrackSayisal:
		return "Sayısal"
	case TrackEsitAgirlik:
		return "Eşit Ağırlık"
	case TrackSozel:
		return "Sözel"
	}
	return string(t)
}

// Subject is a form subject code such as "tyt_turkce". Form fields are
// named "{subject}_dogru" and "{subject}_yanlis".
type Subject string

const (
	TYTTurkce    Subject = "tyt_turkce"
	TYTMatematik Subject = "tyt_matematik"
	TYTFen       Subject = "tyt_fen"
	TYTSosyal    Subject = "tyt_sosyal"

	AYTMatematik Subject = "ayt_matematik"
	AYTFizik     Subject = "ayt_fizik"
	AYTKimya     Subject = "ayt_kimya"
	AYTBiyoloji  Subject = "ayt_biyoloji"
	AYTEdebiyat  Subject = "ayt_edebiyat"
	AYTTarih1    Subject = "ayt_tarih1"
	AYTCografya1 Subject = "ayt_cografya1"
	AYTTarih2    Subject = "ayt_tarih2"
	AYTCografya2 Subject = "ayt_cografya2"
	AYTFelsefe   Subject = "ayt_felsefe"
	AYTDin       Subject = "ayt_din"

	LGSTurkce    Subject = "lgs_turkce"
	LGSMatematik Subject = "lgs_matematik"
	LGSFen       Subject = "lgs_fen"
	LGSInkilap   Subject = "lgs_inkilap"
	LGSIngilizce Subject = "lgs_ingilizce"
	LGSDin       Subject = "lgs_din"
)

// Field names one half of a subject's answer count.
type Field string

const (
	FieldCorrect Field = "dogru"
	FieldWrong   Field = "yanlis"
)

// Key returns the form field name for the subject, e.g. "tyt_turkce_dogru".
func (s Subject) Key(f Field) string {
	return string(s) + "_" + string(f)
}

// SubjectInfo describes one subject section of an exam.
type SubjectInfo struct {
	Code          Subject  `json:"code"`
	ExamType      ExamType `json:"exam_type"`
	Name          string   `json:"name"`
	QuestionCount int      `json:"question_count"`
}

// Title is the name prefixed with the exam type, e.g. "TYT Türkçe".
func (i SubjectInfo) Title() string {
	return string(i.ExamType) + " " + i.Name
}

var catalog = []SubjectInfo{
	{TYTTurkce, ExamTypeTYT, "Türkçe", 40},
	{TYTMatematik, ExamTypeTYT, "Matematik", 40},
	{TYTFen, ExamTypeTYT, "Fen Bilimleri", 20},
	{TYTSosyal, ExamTypeTYT, "Sosyal Bilimler", 20},

	{AYTMatematik, ExamTypeAYT, "Matematik", 40},
	{AYTFizik, ExamTypeAYT, "Fizik", 14},
	{AYTKimya, ExamTypeAYT, "Kimya", 13},
	{AYTBiyoloji, ExamTypeAYT, "Biyoloji", 13},
	{AYTEdebiyat, ExamTypeAYT, "Türk Dili ve Edebiyatı", 24},
	{AYTTarih1, ExamTypeAYT, "Tarih-1", 10},
	{AYTCografya1, ExamTypeAYT, "Coğrafya-1", 6},
	{AYTTarih2, ExamTypeAYT, "Tarih-2", 11},
	{AYTCografya2, ExamTypeAYT, "Coğrafya-2", 11},
	{AYTFelsefe, ExamTypeAYT, "Felsefe Grubu", 12},
	{AYTDin, ExamTypeAYT, "Din Kültürü", 6},

	{LGSTurkce, ExamTypeLGS, "Türkçe", 20},
	{LGSMatematik, ExamTypeLGS, "Matematik", 20},
	{LGSFen, ExamTypeLGS, "Fen Bilimleri", 20},
	{LGSInkilap, ExamTypeLGS, "T.C. İnkılap Tarihi", 10},
	{LGSIngilizce, ExamTypeLGS, "İngilizce", 10},
	{LGSDin, ExamTypeLGS, "Din Kültürü", 10},
}

var subjectIndex = func() map[Subject]SubjectInfo {
	m := make(map[Subject]SubjectInfo, len(catalog))
	for _, info := range catalog {
		m[info.Code] = info
	}
	return m
}()

var trackSubjects = map[AYTTrack][]Subject{
	TrackSayisal:     {AYTMatematik, AYTFizik, AYTKimya, AYTBiyoloji},
	TrackEsitAgirlik: {AYTMatematik, AYTEdebiyat, AYTTarih1, AYTCografya1},
	TrackSozel:       {AYTEdebiyat, AYTTarih1, AYTCografya1, AYTTarih2, AYTCografya2, AYTFelsefe, AYTDin},
}

// Catalog returns every subject in display order.
func Catalog() []SubjectInfo {
	out := make([]SubjectInfo, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for s.
func Lookup(s Subject) (SubjectInfo, bool) {
	info, ok := subjectIndex[s]
	return info, ok
}

// QuestionCap returns the number of questions in the subject section, or 0
// for unknown subjects.
func QuestionCap(s Subject) int {
	return subjectIndex[s].QuestionCount
}

// SubjectsOf returns the subject codes belonging to the exam type in
// display order. Custom exams have none.
func SubjectsOf(t ExamType) []Subject {
	var out []Subject
	for _, info := range catalog {
		if info.ExamType == t {
			out = append(out, info.Code)
		}
	}
	return out
}

// TrackSubjects returns the AYT subjects scored for the track.
func TrackSubjects(t AYTTrack) []Subject {
	subjects := trackSubjects[t]
	out := make([]Subject, len(subjects))
	copy(out, subjects)
	return out
}

// Tracks lists the AYT tracks in display order.
func Tracks() []AYTTrack {
	return []AYTTrack{TrackSayisal, TrackEsitAgirlik, TrackSozel}
}
