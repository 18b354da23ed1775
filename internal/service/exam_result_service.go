package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sinavkoc/sinavkoc-backend/internal/config"
	"github.com/sinavkoc/sinavkoc-backend/internal/logger"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/repository"
	"github.com/sinavkoc/sinavkoc-backend/internal/response"
	"github.com/sinavkoc/sinavkoc-backend/internal/scoring"
)

// Evaluation is the outcome of scoring a submitted exam form.
type Evaluation struct {
	Details scoring.Details
	Result  scoring.Result
	Nets    map[scoring.Subject]float64
}

// Evaluate parses form answers and runs the score calculator. Invalid input
// comes back as scoring.FieldErrors.
func Evaluate(examType, track string, answers map[string]string) (*Evaluation, error) {
	details, errs := scoring.ParseForm(scoring.ExamType(examType), scoring.AYTTrack(track), answers)
	if errs != nil {
		return nil, errs
	}

	counts := details.Answers()
	nets := make(map[scoring.Subject]float64, len(counts))
	for subject, c := range counts {
		nets[subject] = c.Net()
	}

	return &Evaluation{
		Details: details,
		Result:  scoring.ScoreForExam(details),
		Nets:    nets,
	}, nil
}

// ExamResultService records and edits a student's practice exam results.
// Every write schedules an analysis refresh for the student.
type ExamResultService struct {
	repo *repository.ExamResultRepository
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewExamResultService creates a new ExamResultService.
func NewExamResultService(repo *repository.ExamResultRepository, rdb *redis.Client, log zerolog.Logger) *ExamResultService {
	return &ExamResultService{
		repo: repo,
		rdb:  rdb,
		log:  logger.Component(log, "exam_result_service"),
	}
}

// Create scores and stores a new exam result for the student.
func (s *ExamResultService) Create(ctx context.Context, studentID int, req model.ExamResultRequest) (*model.ExamResult, error) {
	result, err := buildExamResult(req)
	if err != nil {
		return nil, err
	}
	result.ID = uuid.New()
	result.StudentID = studentID

	if err := s.repo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("create exam result: %w", err)
	}

	s.log.Info().
		Int("student_id", studentID).
		Str("exam_type", result.ExamType).
		Float64("total_score", result.TotalScore).
		Msg("exam result recorded")

	s.scheduleRefresh(ctx, studentID)
	return result, nil
}

// Get retrieves one of the student's exam results.
func (s *ExamResultService) Get(ctx context.Context, studentID int, id uuid.UUID) (*model.ExamResult, error) {
	return s.repo.GetForStudent(ctx, studentID, id)
}

// List retrieves the student's exam results, newest first.
func (s *ExamResultService) List(ctx context.Context, studentID int, examType string, page, perPage int) ([]model.ExamResult, *response.Pagination, error) {
	page, perPage = normalizePage(page, perPage)
	results, total, err := s.repo.ListPaginated(ctx, studentID, examType, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	return results, response.NewPagination(page, perPage, total), nil
}

// Update re-scores an edited exam result.
func (s *ExamResultService) Update(ctx context.Context, studentID int, id uuid.UUID, req model.ExamResultRequest) (*model.ExamResult, error) {
	result, err := buildExamResult(req)
	if err != nil {
		return nil, err
	}
	result.ID = id
	result.StudentID = studentID

	if err := s.repo.Update(ctx, result); err != nil {
		return nil, err
	}

	s.scheduleRefresh(ctx, studentID)
	return result, nil
}

// Delete removes one of the student's exam results.
func (s *ExamResultService) Delete(ctx context.Context, studentID int, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, studentID, id); err != nil {
		return err
	}
	s.scheduleRefresh(ctx, studentID)
	return nil
}

func buildExamResult(req model.ExamResultRequest) (*model.ExamResult, error) {
	date, err := time.Parse(model.DateLayout, req.ExamDate)
	if err != nil {
		return nil, scoring.FieldErrors{"exam_date": "Tarih YYYY-AA-GG biçiminde olmalıdır"}
	}

	eval, err := Evaluate(req.ExamType, req.AYTType, req.Answers)
	if err != nil {
		return nil, err
	}

	blob, err := scoring.EncodeDetails(eval.Details, eval.Result)
	if err != nil {
		return nil, fmt.Errorf("encode details: %w", err)
	}

	return &model.ExamResult{
		ExamType:   req.ExamType,
		ExamName:   strings.TrimSpace(req.ExamName),
		ExamDate:   date,
		TotalScore: eval.Result.Total,
		Details:    blob,
	}, nil
}

// scheduleRefresh drops the cached analysis and queues a recomputation.
// Failures are logged; the next read recomputes on demand.
func (s *ExamResultService) scheduleRefresh(ctx context.Context, studentID int) {
	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, config.CacheKey.StudentAnalysisKey(studentID))
	pipe.RPush(ctx, config.WorkerKey.RefreshAnalysisQueue, studentID)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warn().Err(err).Int("student_id", studentID).Msg("failed to schedule analysis refresh")
	}
}
