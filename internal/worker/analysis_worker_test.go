package worker

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinavkoc/sinavkoc-backend/internal/config"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
)

type fakeRefresher struct {
	mu       sync.Mutex
	calls    []int
	failFor  map[int]bool
	inFlight int32
	peak     int32
}

func (f *fakeRefresher) Refresh(_ context.Context, studentID int) (*service.AnalysisReport, error) {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		p := atomic.LoadInt32(&f.peak)
		if n <= p || atomic.CompareAndSwapInt32(&f.peak, p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	f.mu.Lock()
	f.calls = append(f.calls, studentID)
	f.mu.Unlock()

	if f.failFor[studentID] {
		return nil, errors.New("database unavailable")
	}
	return &service.AnalysisReport{StudentID: studentID}, nil
}

type fakeQueue struct {
	mu     sync.Mutex
	key    string
	values []interface{}
	ctxErr error
}

func (q *fakeQueue) RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.key = key
	q.values = append(q.values, values...)
	q.ctxErr = ctx.Err()
	return redis.NewIntCmd(ctx)
}

func TestBatch_DeduplicatesInOrder(t *testing.T) {
	b := newBatch(4)
	for _, id := range []int{3, 1, 3, 2, 1} {
		b.Add(id)
	}
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []int{3, 1, 2}, b.Drain())
	assert.Equal(t, 0, b.Len())

	b.Add(3)
	assert.Equal(t, []int{3}, b.Drain())
}

func TestFlush_BoundedConcurrencyAndFailures(t *testing.T) {
	ref := &fakeRefresher{failFor: map[int]bool{4: true}}
	w := &AnalysisWorker{refresher: ref, batchSize: 10, concurrency: 2, log: zerolog.Nop()}

	failed := w.flush(context.Background(), []int{1, 2, 3, 4, 5, 6})

	assert.Equal(t, []int{4}, failed)
	sort.Ints(ref.calls)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ref.calls)
	assert.LessOrEqual(t, atomic.LoadInt32(&ref.peak), int32(2))
}

func TestFlush_Empty(t *testing.T) {
	w := &AnalysisWorker{refresher: &fakeRefresher{}, concurrency: 1, log: zerolog.Nop()}
	assert.Nil(t, w.flush(context.Background(), nil))
}

func TestFlush_RequeuesFailuresAfterShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	queue := &fakeQueue{}
	ref := &fakeRefresher{failFor: map[int]bool{2: true, 3: true}}
	w := &AnalysisWorker{queue: queue, refresher: ref, concurrency: 1, log: zerolog.Nop()}

	failed := w.flush(ctx, []int{1, 2, 3})
	sort.Ints(failed)
	require.Equal(t, []int{2, 3}, failed)

	assert.Equal(t, config.WorkerKey.RefreshAnalysisQueue, queue.key)
	assert.ElementsMatch(t, []interface{}{2, 3}, queue.values)
	assert.NoError(t, queue.ctxErr)
}

func TestFlush_NoFailuresPushesNothing(t *testing.T) {
	queue := &fakeQueue{}
	w := &AnalysisWorker{queue: queue, refresher: &fakeRefresher{}, concurrency: 2, log: zerolog.Nop()}

	assert.Empty(t, w.flush(context.Background(), []int{1, 2}))
	assert.Empty(t, queue.values)
}
