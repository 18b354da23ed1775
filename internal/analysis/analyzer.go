package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sinavkoc/sinavkoc-backend/internal/scoring"
)

// Trend classifies the direction of a subject's nets.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Priority ranks a study plan item.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Canonical subjects tracked across exam types.
const (
	SubjectTurkce    = "Türkçe"
	SubjectMatematik = "Matematik"
	SubjectFen       = "Fen"
	SubjectSosyal    = "Sosyal"
)

// CanonicalSubjects lists the subjects analysed, in display order.
var CanonicalSubjects = []string{SubjectTurkce, SubjectMatematik, SubjectFen, SubjectSosyal}

// Record is one stored exam as seen by the analyzer. Details is nil when
// the stored breakdown could not be decoded.
type Record struct {
	ExamType   scoring.ExamType
	ExamName   string
	ExamDate   time.Time
	TotalScore float64
	Details    scoring.Details
}

// TrendAnalysis is the trend panel entry of one subject.
type TrendAnalysis struct {
	Subject string  `json:"subject"`
	Trend   Trend   `json:"trend"`
	Change  float64 `json:"change"`
	Message string  `json:"message"`
}

// StudyPlanItem is one suggested block of study.
type StudyPlanItem struct {
	Subject        string   `json:"subject"`
	Topic          string   `json:"topic"`
	Priority       Priority `json:"priority"`
	EstimatedHours int      `json:"estimated_hours"`
	Description    string   `json:"description"`
}

// Result is the analysis of a student's recent exams. It is recomputed on
// every request and never stored as a source of truth.
type Result struct {
	Trends              []TrendAnalysis `json:"trends"`
	EmptyAnswerWarnings []string        `json:"empty_answer_warnings"`
	Weaknesses          []string        `json:"weaknesses"`
	Strengths           []string        `json:"strengths"`
	Recommendations     []string        `json:"recommendations"`
	StudyPlan           []StudyPlanItem `json:"study_plan"`
}

func emptyResult() Result {
	return Result{
		Trends:              []TrendAnalysis{},
		EmptyAnswerWarnings: []string{},
		Weaknesses:          []string{},
		Strengths:           []string{},
		Recommendations:     []string{},
		StudyPlan:           []StudyPlanItem{},
	}
}

// Analyzer turns exam histories into analysis results. It holds no mutable
// state and may be shared between goroutines.
type Analyzer struct {
	cfg Config
}

// New creates an Analyzer. Out-of-range config values fall back to
// DefaultConfig.
func New(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg.normalized()}
}

// Config returns the thresholds in use.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Analyze summarises the most recent exams of one student. The input order
// does not matter and the slice is not modified.
func (a *Analyzer) Analyze(records []Record) Result {
	res := emptyResult()
	if len(records) == 0 {
		return res
	}

	window := a.recentWindow(records)

	res.Trends = a.computeTrends(window)
	res.EmptyAnswerWarnings = a.emptyAnswerWarnings(window)

	for _, avg := range a.computeDetailedAverages(window) {
		a.judgeSubject(avg, &res)
	}

	a.judgeOverall(window, &res)

	return res
}

// recentWindow returns up to RecentWindow records, newest first.
func (a *Analyzer) recentWindow(records []Record) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExamDate.After(sorted[j].ExamDate)
	})
	if len(sorted) > a.cfg.RecentWindow {
		sorted = sorted[:a.cfg.RecentWindow]
	}
	return sorted
}

// series collects a subject's nets across the window, newest first.
func series(window []Record, subject string) []float64 {
	var nets []float64
	for _, r := range window {
		if net, ok := SubjectNet(r.Details, subject); ok {
			nets = append(nets, net)
		}
	}
	return nets
}

func (a *Analyzer) computeTrends(window []Record) []TrendAnalysis {
	trends := []TrendAnalysis{}
	for _, subject := range CanonicalSubjects {
		nets := series(window, subject)
		if len(nets) < a.cfg.TrendMinPoints {
			continue
		}

		split := a.cfg.TrendRecentCount
		if split > len(nets) {
			split = len(nets)
		}
		recentAvg := mean(nets[:split])
		olderAvg := recentAvg
		if split < len(nets) {
			olderAvg = mean(nets[split:])
		}

		change := recentAvg - olderAvg
		trend := classify(change, a.cfg.TrendThreshold)
		trends = append(trends, TrendAnalysis{
			Subject: subject,
			Trend:   trend,
			Change:  round2(change),
			Message: trendMessage(subject, trend, change),
		})
	}
	return trends
}

func (a *Analyzer) emptyAnswerWarnings(window []Record) []string {
	warnings := []string{}
	seen := make(map[string]bool)

	for _, r := range window {
		if r.Details == nil {
			continue
		}
		answers := r.Details.Answers()
		for _, info := range scoring.Catalog() {
			c, ok := answers[info.Code]
			if !ok {
				continue
			}
			empty := c.Empty(info.QuestionCount)
			if float64(empty) <= a.cfg.EmptyAnswerRatio*float64(info.QuestionCount) {
				continue
			}
			pct := float64(empty) * 100 / float64(info.QuestionCount)
			msg := fmt.Sprintf(
				"%s bölümünde %d soru boş bırakılmış (%%%.0f). Boş bırakılan soru sayısını azaltmaya çalışın.",
				info.Title(), empty, pct)
			if seen[msg] {
				continue
			}
			seen[msg] = true
			warnings = append(warnings, msg)
		}
	}
	return warnings
}

type subjectAverage struct {
	subject string
	average float64
	points  int
	trend   Trend
}

// computeDetailedAverages averages every subject that has at least one net
// and attaches the coarse trend used for weakness detection.
func (a *Analyzer) computeDetailedAverages(window []Record) []subjectAverage {
	var out []subjectAverage
	for _, subject := range CanonicalSubjects {
		nets := series(window, subject)
		if len(nets) == 0 {
			continue
		}

		avg := subjectAverage{
			subject: subject,
			average: mean(nets),
			points:  len(nets),
			trend:   TrendStable,
		}
		if len(nets) >= a.cfg.TrendMinPoints {
			split := a.cfg.CoarseRecentCount
			if split < len(nets) {
				avg.trend = classify(mean(nets[:split])-mean(nets[split:]), a.cfg.CoarseTrendThreshold)
			}
		}
		out = append(out, avg)
	}
	return out
}

func (a *Analyzer) judgeSubject(avg subjectAverage, res *Result) {
	switch {
	case avg.average < a.cfg.WeakNetThreshold:
		res.Weaknesses = append(res.Weaknesses, fmt.Sprintf(
			"%s ortalamanız düşük (%.2f net). Temel konuları tekrar etmeniz gerekiyor.",
			avg.subject, avg.average))
		res.StudyPlan = append(res.StudyPlan, StudyPlanItem{
			Subject:        avg.subject,
			Topic:          "Temel Konular",
			Priority:       PriorityHigh,
			EstimatedHours: a.cfg.WeakStudyHours,
			Description: fmt.Sprintf(
				"%s temel konularını baştan tekrar edin ve her konu sonunda soru çözün.", avg.subject),
		})
	case avg.trend == TrendDecreasing:
		res.Weaknesses = append(res.Weaknesses, fmt.Sprintf(
			"%s netlerinizde son sınavlarda düşüş var (ortalama %.2f net).",
			avg.subject, avg.average))
	}

	if avg.average > a.cfg.StrongNetThreshold {
		res.Strengths = append(res.Strengths, fmt.Sprintf(
			"%s güçlü olduğunuz bir ders (ortalama %.2f net).", avg.subject, avg.average))
		if avg.trend == TrendIncreasing {
			res.Recommendations = append(res.Recommendations, fmt.Sprintf(
				"%s netleriniz yükselmeye devam ediyor. Bu çalışma düzenini koruyun.", avg.subject))
		}
	}
}

func (a *Analyzer) judgeOverall(window []Record, res *Result) {
	if len(window) < a.cfg.OverallMinExams || len(window) <= a.cfg.OverallRecentCount {
		return
	}

	totals := make([]float64, len(window))
	for i, r := range window {
		totals[i] = r.TotalScore
	}
	diff := mean(totals[:a.cfg.OverallRecentCount]) - mean(totals[a.cfg.OverallRecentCount:])

	switch {
	case diff > a.cfg.OverallScoreDelta:
		res.Recommendations = append(res.Recommendations, fmt.Sprintf(
			"Genel puanınız son sınavlarda %.2f puan yükseldi. Harika gidiyorsunuz, böyle devam edin!", diff))
	case diff < -a.cfg.OverallScoreDelta:
		res.Recommendations = append(res.Recommendations, fmt.Sprintf(
			"Genel puanınız son sınavlarda %.2f puan düştü. Çalışma programınızı gözden geçirmenizi öneririz.", -diff))
		res.StudyPlan = append(res.StudyPlan, StudyPlanItem{
			Subject:        "Genel",
			Topic:          "Çalışma Planı",
			Priority:       PriorityHigh,
			EstimatedHours: a.cfg.OverallStudyHours,
			Description:    "Haftalık çalışma planınızı yeniden düzenleyin ve deneme sınavı sonrası yanlışlarınızı analiz edin.",
		})
	}
}

func classify(change, threshold float64) Trend {
	switch {
	case change > threshold:
		return TrendIncreasing
	case change < -threshold:
		return TrendDecreasing
	}
	return TrendStable
}

func trendMessage(subject string, trend Trend, change float64) string {
	switch trend {
	case TrendIncreasing:
		return fmt.Sprintf("%s netleriniz yükselişte (+%.2f net). Harika gidiyorsunuz!", subject, change)
	case TrendDecreasing:
		return fmt.Sprintf("%s netleriniz düşüşte (%.2f net). Bu derse daha fazla zaman ayırmalısınız.", subject, change)
	}
	return fmt.Sprintf("%s netleriniz stabil seyrediyor (%+.2f net).", subject, change)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
