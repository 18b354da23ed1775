package service

import (
	"context"

	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/repository"
)

const dashboardRecentLimit = 10

// DashboardService handles teacher dashboard business logic.
type DashboardService struct {
	repo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// GetStats gathers the dashboard metrics for the viewer's classes.
func (s *DashboardService) GetStats(ctx context.Context, v Viewer) (*model.DashboardStats, error) {
	if !v.IsTeacher() {
		return nil, ErrForbidden
	}
	scope := v.TeacherScope()

	stats, err := s.repo.GetSummaryCounts(ctx, scope)
	if err != nil {
		return nil, err
	}

	stats.AverageScores, err = s.repo.GetAverageScores(ctx, scope)
	if err != nil {
		return nil, err
	}

	stats.RecentResults, err = s.repo.GetRecentResults(ctx, scope, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
