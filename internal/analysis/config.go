package analysis

// Config holds the empirically tuned thresholds of the analyzer. The two
// trend thresholds are independent: TrendThreshold drives the trend panel,
// CoarseTrendThreshold drives weakness detection.
type Config struct {
	// RecentWindow is how many of the newest exams are analysed.
	RecentWindow int `json:"recent_window"`

	// TrendMinPoints is the minimum number of nets needed for any trend.
	TrendMinPoints int `json:"trend_min_points"`
	// TrendRecentCount nets form the "recent" half of the trend panel.
	TrendRecentCount int     `json:"trend_recent_count"`
	TrendThreshold   float64 `json:"trend_threshold"`

	// CoarseRecentCount nets form the "recent" half of the coarse trend.
	CoarseRecentCount    int     `json:"coarse_recent_count"`
	CoarseTrendThreshold float64 `json:"coarse_trend_threshold"`

	// EmptyAnswerRatio is the share of unanswered questions above which a
	// warning is emitted.
	EmptyAnswerRatio float64 `json:"empty_answer_ratio"`

	WeakNetThreshold   float64 `json:"weak_net_threshold"`
	StrongNetThreshold float64 `json:"strong_net_threshold"`
	WeakStudyHours     int     `json:"weak_study_hours"`

	OverallMinExams    int     `json:"overall_min_exams"`
	OverallRecentCount int     `json:"overall_recent_count"`
	OverallScoreDelta  float64 `json:"overall_score_delta"`
	OverallStudyHours  int     `json:"overall_study_hours"`
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		RecentWindow:         5,
		TrendMinPoints:       3,
		TrendRecentCount:     3,
		TrendThreshold:       1,
		CoarseRecentCount:    2,
		CoarseTrendThreshold: 0.5,
		EmptyAnswerRatio:     0.3,
		WeakNetThreshold:     8,
		StrongNetThreshold:   15,
		WeakStudyHours:       15,
		OverallMinExams:      3,
		OverallRecentCount:   2,
		OverallScoreDelta:    5,
		OverallStudyHours:    20,
	}
}

// normalized replaces out-of-range values with the defaults.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.RecentWindow < 1 {
		c.RecentWindow = d.RecentWindow
	}
	if c.TrendMinPoints < 1 {
		c.TrendMinPoints = d.TrendMinPoints
	}
	if c.TrendRecentCount < 1 {
		c.TrendRecentCount = d.TrendRecentCount
	}
	if c.CoarseRecentCount < 1 {
		c.CoarseRecentCount = d.CoarseRecentCount
	}
	if c.OverallMinExams < 1 {
		c.OverallMinExams = d.OverallMinExams
	}
	if c.OverallRecentCount < 1 {
		c.OverallRecentCount = d.OverallRecentCount
	}
	if c.WeakStudyHours < 1 {
		c.WeakStudyHours = d.WeakStudyHours
	}
	if c.OverallStudyHours < 1 {
		c.OverallStudyHours = d.OverallStudyHours
	}
	if c.EmptyAnswerRatio <= 0 || c.EmptyAnswerRatio > 1 {
		c.EmptyAnswerRatio = d.EmptyAnswerRatio
	}
	if c.TrendThreshold <= 0 {
		c.TrendThreshold = d.TrendThreshold
	}
	if c.CoarseTrendThreshold <= 0 {
		c.CoarseTrendThreshold = d.CoarseTrendThreshold
	}
	if c.WeakNetThreshold <= 0 {
		c.WeakNetThreshold = d.WeakNetThreshold
	}
	if c.StrongNetThreshold <= 0 {
		c.StrongNetThreshold = d.StrongNetThreshold
	}
	if c.OverallScoreDelta <= 0 {
		c.OverallScoreDelta = d.OverallScoreDelta
	}
	return c
}
