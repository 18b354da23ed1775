package scoring

// Details is the per-exam-type breakdown stored alongside a score. It is
// one of TYTDetails, AYTDetails, LGSDetails or CustomDetails.
type Details interface {
	ExamType() ExamType
	// Answers returns every subject count the exam stored.
	Answers() Counts
	isDetails()
}

// TYTDetails holds the four TYT sections.
type TYTDetails struct {
	Counts Counts
}

func (TYTDetails) ExamType() ExamType { return ExamTypeTYT }
func (d TYTDetails) Answers() Counts  { return d.Counts }
func (TYTDetails) isDetails()         {}

// AYTDetails holds the co-reported TYT section and the AYT subjects of the
// selected track.
type AYTDetails struct {
	Track AYTTrack
	TYT   Counts
	AYT   Counts
}

func (AYTDetails) ExamType() ExamType { return ExamTypeAYT }

func (d AYTDetails) Answers() Counts {
	out := make(Counts, len(d.TYT)+len(d.AYT))
	for s, c := range d.TYT {
		out[s] = c
	}
	for s, c := range d.AYT {
		out[s] = c
	}
	return out
}

func (AYTDetails) isDetails() {}

// LGSDetails holds the six LGS sections.
type LGSDetails struct {
	Counts Counts
}

func (LGSDetails) ExamType() ExamType { return ExamTypeLGS }
func (d LGSDetails) Answers() Counts  { return d.Counts }
func (LGSDetails) isDetails()         {}

// CustomDetails is a free-form exam whose total score is entered by hand.
type CustomDetails struct {
	TotalScore float64
}

func (CustomDetails) ExamType() ExamType { return ExamTypeCustom }
func (CustomDetails) Answers() Counts    { return Counts{} }
func (CustomDetails) isDetails()         {}
