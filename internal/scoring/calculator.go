package scoring

import "math"

// Score bounds and formula constants. The weights follow the official
// ÖSYM/MEB weighting and are not meant to be tuned.
const (
	MinYKSScore = 100.0
	MaxYKSScore = 500.0
	MinLGSScore = 0.0
	MaxLGSScore = 500.0

	tytBase         = 100.0
	tytVerbalWeight = 3.3 // Türkçe, Matematik
	tytOtherWeight  = 3.4 // Fen, Sosyal
	aytBase         = 100.0
	aytNetWeight    = 5.0
	yksTYTShare     = 0.4
	yksAYTShare     = 0.6
	lgsMaxWeighted  = 270.0
)

var lgsWeights = map[Subject]float64{
	LGSTurkce:    4,
	LGSMatematik: 4,
	LGSFen:       4,
	LGSInkilap:   1,
	LGSIngilizce: 1,
	LGSDin:       1,
}

// Count is the number of correct and wrong answers in one subject section.
type Count struct {
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}

// Net returns the net score of the count.
func (c Count) Net() float64 {
	return NetScore(c.Correct, c.Wrong)
}

// Empty returns the number of unanswered questions out of questionCap.
func (c Count) Empty(questionCap int) int {
	return questionCap - c.Correct - c.Wrong
}

// Counts maps subject codes to their answer counts.
type Counts map[Subject]Count

// Net returns the net score for s; absent subjects count as zero.
func (c Counts) Net(s Subject) float64 {
	return c[s].Net()
}

// Has reports whether the exam stored a count for s.
func (c Counts) Has(s Subject) bool {
	_, ok := c[s]
	return ok
}

// NetScore is correct minus a quarter of wrong answers, floored at zero.
func NetScore(correct, wrong int) float64 {
	net := float64(correct) - float64(wrong)/4
	if net < 0 {
		return 0
	}
	return net
}

// ValidateCount reports whether setting field of subject to proposed keeps
// the section within its question cap, given the current value of the
// other field. Callers must not apply an edit that fails validation.
func ValidateCount(subject Subject, field Field, proposed, other int) bool {
	if field != FieldCorrect && field != FieldWrong {
		return false
	}
	questionCap := QuestionCap(subject)
	if questionCap == 0 {
		return false
	}
	if proposed < 0 || other < 0 {
		return false
	}
	if proposed > questionCap || proposed+other > questionCap {
		return false
	}
	return true
}

// ScoreTYT computes the TYT standard score.
func ScoreTYT(counts Counts) float64 {
	raw := tytVerbalWeight*counts.Net(TYTTurkce) +
		tytVerbalWeight*counts.Net(TYTMatematik) +
		tytOtherWeight*counts.Net(TYTFen) +
		tytOtherWeight*counts.Net(TYTSosyal) +
		tytBase
	return clamp(MinYKSScore, MaxYKSScore, round2(raw))
}

// ScoreAYT computes the AYT standard score for track. Only the track's
// subjects are read from counts.
func ScoreAYT(counts Counts, track AYTTrack) float64 {
	var netSum float64
	for _, s := range trackSubjects[track] {
		netSum += counts.Net(s)
	}
	return clamp(MinYKSScore, MaxYKSScore, round2(netSum*aytNetWeight+aytBase))
}

// ScoreYKS combines a TYT and an AYT score into the placement score. Both
// sub-scores must be computed first; NaN arguments panic.
func ScoreYKS(tytScore, aytScore float64) float64 {
	if math.IsNaN(tytScore) || math.IsNaN(aytScore) {
		panic("scoring: ScoreYKS requires both TYT and AYT scores")
	}
	return clamp(MinYKSScore, MaxYKSScore, round2(yksTYTShare*tytScore+yksAYTShare*aytScore))
}

// ScoreLGS computes the LGS score normalised to 500.
func ScoreLGS(counts Counts) float64 {
	var weighted float64
	for s, w := range lgsWeights {
		weighted += w * counts.Net(s)
	}
	return clamp(MinLGSScore, MaxLGSScore, round2(weighted*MaxLGSScore/lgsMaxWeighted))
}

// Result holds the scores derived from one exam. For AYT exams the TYT,
// AYT and combined YKS figures are all reported and Total is the YKS score.
type Result struct {
	Total float64  `json:"total_score"`
	TYT   *float64 `json:"tyt_score,omitempty"`
	AYT   *float64 `json:"ayt_score,omitempty"`
	YKS   *float64 `json:"yks_score,omitempty"`
}

// ScoreForExam dispatches on the exam type carried by d.
func ScoreForExam(d Details) Result {
	switch d := d.(type) {
	case TYTDetails:
		tyt := ScoreTYT(d.Counts)
		return Result{Total: tyt, TYT: &tyt}
	case AYTDetails:
		tyt := ScoreTYT(d.TYT)
		ayt := ScoreAYT(d.AYT, d.Track)
		yks := ScoreYKS(tyt, ayt)
		return Result{Total: yks, TYT: &tyt, AYT: &ayt, YKS: &yks}
	case LGSDetails:
		return Result{Total: ScoreLGS(d.Counts)}
	case CustomDetails:
		return Result{Total: clamp(0, MaxYKSScore, round2(d.TotalScore))}
	}
	return Result{}
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
