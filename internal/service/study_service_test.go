package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sinavkoc/sinavkoc-backend/internal/model"
)

func TestClampDays(t *testing.T) {
	assert.Equal(t, DefaultSummaryDays, clampDays(0))
	assert.Equal(t, DefaultSummaryDays, clampDays(-4))
	assert.Equal(t, 30, clampDays(30))
	assert.Equal(t, MaxSummaryDays, clampDays(1000))
}

func TestSummaryStart_IncludesToday(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), summaryStart(now, 1))
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), summaryStart(now, 7))
}

func TestBuildSummary(t *testing.T) {
	s := buildSummary(7, []model.StudySubjectSummary{
		{Subject: "Matematik", TotalMinutes: 250, Sessions: 4},
		{Subject: "Fizik", TotalMinutes: 45, Sessions: 1},
	})
	assert.Equal(t, 295, s.TotalMinutes)
	assert.Equal(t, 4.2, s.Subjects[0].Hours)
	assert.Equal(t, 0.8, s.Subjects[1].Hours)

	empty := buildSummary(7, nil)
	assert.NotNil(t, empty.Subjects)
	assert.Zero(t, empty.TotalMinutes)
}
