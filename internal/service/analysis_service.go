package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sinavkoc/sinavkoc-backend/internal/analysis"
	"github.com/sinavkoc/sinavkoc-backend/internal/config"
	"github.com/sinavkoc/sinavkoc-backend/internal/logger"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/repository"
	"github.com/sinavkoc/sinavkoc-backend/internal/scoring"
)

// EventAnalysisUpdated is published on the student's analysis channel after a refresh.
const EventAnalysisUpdated = "analysis_updated"

// AnalysisReport is the analyzer output for one student plus bookkeeping.
type AnalysisReport struct {
	StudentID   int       `json:"student_id"`
	ExamCount   int       `json:"exam_count"`
	GeneratedAt time.Time `json:"generated_at"`
	analysis.Result
}

// AnalysisEvent is the pub/sub payload announcing a fresh report.
type AnalysisEvent struct {
	Type      string          `json:"type"`
	StudentID int             `json:"student_id"`
	Report    *AnalysisReport `json:"report"`
}

// AnalysisService assembles a student's exam history, runs the analyzer
// and caches the report in Redis.
type AnalysisService struct {
	examRepo       *repository.ExamResultRepository
	settingService *SettingService
	studentService *StudentService
	rdb            *redis.Client
	ttl            time.Duration
	log            zerolog.Logger
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(
	examRepo *repository.ExamResultRepository,
	settingService *SettingService,
	studentService *StudentService,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *AnalysisService {
	return &AnalysisService{
		examRepo:       examRepo,
		settingService: settingService,
		studentService: studentService,
		rdb:            rdb,
		ttl:            cfg.AnalysisCacheTTL,
		log:            logger.Component(log, "analysis_service"),
	}
}

// ForViewer returns the analysis of a student the viewer may read.
func (s *AnalysisService) ForViewer(ctx context.Context, v Viewer, studentID int) (*AnalysisReport, error) {
	if err := s.studentService.Authorize(ctx, v, studentID); err != nil {
		return nil, err
	}
	return s.Get(ctx, studentID)
}

// Get returns the cached report or computes and caches a new one.
func (s *AnalysisService) Get(ctx context.Context, studentID int) (*AnalysisReport, error) {
	key := config.CacheKey.StudentAnalysisKey(studentID)

	raw, err := s.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var report AnalysisReport
		if jsonErr := json.Unmarshal(raw, &report); jsonErr == nil {
			return &report, nil
		}
		s.log.Warn().Int("student_id", studentID).Msg("discarding unreadable cached analysis")
	case !errors.Is(err, redis.Nil):
		s.log.Warn().Err(err).Int("student_id", studentID).Msg("analysis cache unavailable")
	}

	report, err := s.Compute(ctx, studentID)
	if err != nil {
		return nil, err
	}
	s.store(ctx, report)
	return report, nil
}

// Refresh recomputes a student's report, caches it and announces it to
// listeners on the student's analysis channel.
func (s *AnalysisService) Refresh(ctx context.Context, studentID int) (*AnalysisReport, error) {
	report, err := s.Compute(ctx, studentID)
	if err != nil {
		return nil, err
	}
	s.store(ctx, report)

	payload, err := json.Marshal(AnalysisEvent{
		Type:      EventAnalysisUpdated,
		StudentID: studentID,
		Report:    report,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal analysis event: %w", err)
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.StudentAnalysisChannel(studentID), payload).Err(); err != nil {
		s.log.Warn().Err(err).Int("student_id", studentID).Msg("failed to publish analysis event")
	}
	return report, nil
}

// Compute runs the analyzer over the student's most recent exams.
func (s *AnalysisService) Compute(ctx context.Context, studentID int) (*AnalysisReport, error) {
	cfg := s.settingService.AnalysisConfig(ctx)
	analyzer := analysis.New(cfg)

	history, err := s.examRepo.History(ctx, studentID, analyzer.Config().RecentWindow)
	if err != nil {
		return nil, fmt.Errorf("load exam history: %w", err)
	}

	records := ToRecords(history, s.log)
	return &AnalysisReport{
		StudentID:   studentID,
		ExamCount:   len(records),
		GeneratedAt: time.Now().UTC(),
		Result:      analyzer.Analyze(records),
	}, nil
}

func (s *AnalysisService) store(ctx context.Context, report *AnalysisReport) {
	raw, err := json.Marshal(report)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal analysis report")
		return
	}
	key := config.CacheKey.StudentAnalysisKey(report.StudentID)
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.log.Warn().Err(err).Int("student_id", report.StudentID).Msg("failed to cache analysis")
	}
}

// ToRecords converts stored exam results into analyzer records. A result
// whose details cannot be decoded keeps its total score with nil Details.
func ToRecords(results []model.ExamResult, log zerolog.Logger) []analysis.Record {
	records := make([]analysis.Record, 0, len(results))
	for _, r := range results {
		examType := scoring.ExamType(r.ExamType)
		details, err := scoring.DecodeDetails(examType, r.Details)
		if err != nil {
			if !errors.Is(err, scoring.ErrNoDetails) {
				log.Warn().Err(err).Str("exam_result_id", r.ID.String()).Msg("skipping malformed exam details")
			}
			details = nil
		}
		records = append(records, analysis.Record{
			ExamType:   examType,
			ExamName:   r.ExamName,
			ExamDate:   r.ExamDate,
			TotalScore: r.TotalScore,
			Details:    details,
		})
	}
	return records
}
