package worker

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sinavkoc/sinavkoc-backend/internal/config"
	"github.com/sinavkoc/sinavkoc-backend/internal/logger"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
)

const (
	RefreshBatchTimeout = 2 * time.Second
	RefreshPollTimeout  = 1 * time.Second
)

// Refresher recomputes and publishes one student's analysis.
type Refresher interface {
	Refresh(ctx context.Context, studentID int) (*service.AnalysisReport, error)
}

// refreshQueue is the push side of the refresh queue.
type refreshQueue interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// AnalysisWorker drains the refresh queue that exam writes feed. IDs are
// collected into batches so a student who saves several exams in a row
// is analysed once.
type AnalysisWorker struct {
	rdb         *redis.Client
	queue       refreshQueue
	refresher   Refresher
	batchSize   int
	concurrency int
	log         zerolog.Logger
}

func NewAnalysisWorker(rdb *redis.Client, refresher Refresher, cfg *config.Config, log zerolog.Logger) *AnalysisWorker {
	return &AnalysisWorker{
		rdb:         rdb,
		queue:       rdb,
		refresher:   refresher,
		batchSize:   cfg.AnalysisWorkerBatch,
		concurrency: cfg.AnalysisWorkerCount,
		log:         logger.Component(log, "analysis_worker"),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *AnalysisWorker) Start(ctx context.Context) {
	w.log.Info().Int("batch_size", w.batchSize).Int("concurrency", w.concurrency).Msg("AnalysisWorker started")

	batch := newBatch(w.batchSize)
	lastFlush := time.Now()

	for {
		if batch.Len() > 0 &&
			(batch.Len() >= w.batchSize || time.Since(lastFlush) >= RefreshBatchTimeout) {

			w.flush(ctx, batch.Drain())
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Int("pending", batch.Len()).Msg("Shutdown requested. Requeueing pending students...")
			w.requeue(context.Background(), batch.Drain())
			return

		default:
			item, err := w.rdb.BLPop(ctx, RefreshPollTimeout, config.WorkerKey.RefreshAnalysisQueue).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			studentID, err := strconv.Atoi(item[1])
			if err != nil || studentID <= 0 {
				w.log.Error().Str("payload", item[1]).Msg("Invalid student ID in refresh queue")
				continue
			}
			batch.Add(studentID)
		}
	}
}

// ----------------------------------------------------------------
// Batch refresh with bounded parallelism
// ----------------------------------------------------------------

// flush refreshes every student in ids, at most w.concurrency at a time,
// and returns the IDs that failed. Failed IDs go back on the queue even
// when ctx was cancelled mid-flush.
func (w *AnalysisWorker) flush(ctx context.Context, ids []int) []int {
	if len(ids) == 0 {
		return nil
	}

	var (
		mu     sync.Mutex
		failed []int
		wg     sync.WaitGroup
	)
	sem := make(chan struct{}, max(1, w.concurrency))

	for _, id := range ids {
		wg.Add(1)
		sem <- struct{}{}
		go func(studentID int) {
			defer wg.Done()
			defer func() { <-sem }()

			if _, err := w.refresher.Refresh(ctx, studentID); err != nil {
				w.log.Error().Err(err).Int("student_id", studentID).Msg("Refresh failed")
				mu.Lock()
				failed = append(failed, studentID)
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	w.log.Debug().Int("refreshed", len(ids)-len(failed)).Int("failed", len(failed)).Msg("Batch flushed")
	w.requeue(context.Background(), failed)
	return failed
}

func (w *AnalysisWorker) requeue(ctx context.Context, ids []int) {
	if len(ids) == 0 || w.queue == nil {
		return
	}
	values := make([]interface{}, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	if err := w.queue.RPush(ctx, config.WorkerKey.RefreshAnalysisQueue, values...).Err(); err != nil {
		w.log.Error().Err(err).Ints("student_ids", ids).Msg("Requeue failed")
	}
}

// batch is an insertion-ordered set of student IDs.
type batch struct {
	ids  []int
	seen map[int]struct{}
}

func newBatch(capacity int) *batch {
	return &batch{
		ids:  make([]int, 0, capacity),
		seen: make(map[int]struct{}, capacity),
	}
}

func (b *batch) Add(id int) {
	if _, dup := b.seen[id]; dup {
		return
	}
	b.seen[id] = struct{}{}
	b.ids = append(b.ids, id)
}

func (b *batch) Len() int { return len(b.ids) }

// Drain returns the collected IDs and empties the batch.
func (b *batch) Drain() []int {
	out := b.ids
	b.ids = make([]int, 0, cap(out))
	b.seen = make(map[int]struct{}, cap(out))
	return out
}
