package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/sinavkoc/sinavkoc-backend/internal/analysis"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
)

func TestRender(t *testing.T) {
	color.NoColor = true

	student := &model.Student{Name: "Ayşe Kaya", StudentNumber: "12A001"}
	history := []model.ExamResult{{
		ExamName:   "TYT Deneme 3",
		ExamType:   "TYT",
		ExamDate:   time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		TotalScore: 356.4,
	}}
	report := &service.AnalysisReport{
		StudentID:   1,
		ExamCount:   1,
		GeneratedAt: time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC),
		Result: analysis.Result{
			Trends:     []analysis.TrendAnalysis{{Subject: "Matematik", Trend: analysis.TrendIncreasing, Change: 2.5}},
			Weaknesses: []string{"Fen Bilimleri"},
			StudyPlan: []analysis.StudyPlanItem{
				{Subject: "Fen Bilimleri", Topic: "Temel kavramlar", Priority: analysis.PriorityHigh, EstimatedHours: 6},
			},
		},
	}

	var buf bytes.Buffer
	render(&buf, student, history, report)
	out := buf.String()

	assert.Contains(t, out, "=== Ayşe Kaya (12A001) ===")
	assert.Contains(t, out, "2026-03-14")
	assert.Contains(t, out, "356.40")
	assert.Contains(t, out, "↑ yükseliyor")
	assert.Contains(t, out, "+2.50")
	assert.Contains(t, out, "  • Fen Bilimleri")
	assert.Contains(t, out, "Temel kavramlar")
	assert.NotContains(t, out, "Strengths")
}
