package analysis

import "github.com/sinavkoc/sinavkoc-backend/internal/scoring"

var tytSubjects = map[string]scoring.Subject{
	SubjectTurkce:    scoring.TYTTurkce,
	SubjectMatematik: scoring.TYTMatematik,
	SubjectFen:       scoring.TYTFen,
	SubjectSosyal:    scoring.TYTSosyal,
}

// LGS has no section that maps to the TYT social sciences block.
var lgsSubjects = map[string]scoring.Subject{
	SubjectTurkce:    scoring.LGSTurkce,
	SubjectMatematik: scoring.LGSMatematik,
	SubjectFen:       scoring.LGSFen,
}

var aytScienceSubjects = []scoring.Subject{scoring.AYTFizik, scoring.AYTKimya, scoring.AYTBiyoloji}

// SubjectNet extracts a canonical subject's net from exam details. The
// boolean is false when the exam did not store a count for it.
//
// AYT exams prefer their own Matematik count and the summed Fizik, Kimya
// and Biyoloji nets for Fen, falling back to the co-reported TYT section.
func SubjectNet(d scoring.Details, subject string) (float64, bool) {
	switch d := d.(type) {
	case scoring.TYTDetails:
		return netOf(d.Counts, tytSubjects[subject])
	case scoring.LGSDetails:
		return netOf(d.Counts, lgsSubjects[subject])
	case scoring.AYTDetails:
		switch subject {
		case SubjectMatematik:
			if net, ok := netOf(d.AYT, scoring.AYTMatematik); ok {
				return net, true
			}
		case SubjectFen:
			var sum float64
			found := false
			for _, s := range aytScienceSubjects {
				if net, ok := netOf(d.AYT, s); ok {
					sum += net
					found = true
				}
			}
			if found {
				return sum, true
			}
		}
		return netOf(d.TYT, tytSubjects[subject])
	}
	return 0, false
}

func netOf(counts scoring.Counts, s scoring.Subject) (float64, bool) {
	if s == "" {
		return 0, false
	}
	c, ok := counts[s]
	if !ok {
		return 0, false
	}
	return c.Net(), true
}
