package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BlogForge/internal/domain"
	"BlogForge/internal/ports"
)

type stubGenerator struct {
	mu       sync.Mutex
	err      error
	failures int
	calls    int
}

var _ ports.ArticleGenerator = (*stubGenerator)(nil)

func (s *stubGenerator) Keywords(topic string) []string {
	return []string{topic}
}

func (s *stubGenerator) GenerateWithAI(ctx context.Context, topic string, keywords []string) (domain.GeneratedArticle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return domain.GeneratedArticle{}, s.err
	}
	if s.calls <= s.failures {
		return domain.GeneratedArticle{}, errors.New("transient failure")
	}
	return domain.GeneratedArticle{
		Title:   "Titre sur " + topic,
		Slug:    Slugify("Titre sur " + topic),
		Content: "<p>contenu</p>",
	}, nil
}

func (s *stubGenerator) SaveGenerated(ctx context.Context, article domain.GeneratedArticle, categoryID, authorID string) (*domain.Article, error) {
	return &domain.Article{
		ID:         "a-" + article.Slug,
		Title:      article.Title,
		Slug:       article.Slug,
		CategoryID: categoryID,
		AuthorID:   authorID,
	}, nil
}

func (s *stubGenerator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestQueue(t *testing.T, gen ports.ArticleGenerator) *Queue {
	t.Helper()
	store := seededStore(t)
	q := NewQueue(QueueDeps{
		Generator:  gen,
		Articles:   store,
		Categories: store.Categories(),
		Authors:    store.Authors(),
	})
	noWait := func(ctx context.Context, d time.Duration) error { return nil }
	q.sleep = noWait
	q.limiter.sleep = noWait
	q.retryOpts.Sleep = noWait
	return q
}

func TestEnqueueReturnsPendingImmediately(t *testing.T) {
	t.Parallel()

	q := newTestQueue(t, &stubGenerator{})
	job := q.Enqueue(context.Background(), "Repassage")

	assert.Equal(t, domain.JobPending, job.Status)
	assert.Equal(t, "Repassage", job.Topic)
	assert.NotEmpty(t, job.ID)
	assert.Nil(t, job.Result)
}

func TestJobCompletes(t *testing.T) {
	t.Parallel()

	q := newTestQueue(t, &stubGenerator{})
	job := q.Enqueue(context.Background(), "Repassage")

	require.Eventually(t, func() bool {
		current, ok := q.Job(job.ID)
		return ok && current.Status == domain.JobCompleted
	}, 2*time.Second, 10*time.Millisecond)

	current, ok := q.Job(job.ID)
	require.True(t, ok)
	require.NotNil(t, current.Result)
	assert.Equal(t, "titre-sur-repassage", current.Result.Slug)
	require.NotNil(t, current.CompletedAt)
	assert.Empty(t, current.Error)
}

func TestJobRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{failures: 2}
	q := newTestQueue(t, gen)
	job := q.Enqueue(context.Background(), "Repassage")

	require.Eventually(t, func() bool {
		current, ok := q.Job(job.ID)
		return ok && current.Status == domain.JobCompleted
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 3, gen.callCount())
}

func TestJobFailsAfterRetriesExhausted(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{err: errors.New("quota exceeded")}
	q := newTestQueue(t, gen)
	job := q.Enqueue(context.Background(), "Repassage")

	require.Eventually(t, func() bool {
		current, ok := q.Job(job.ID)
		return ok && current.Status == domain.JobFailed
	}, 2*time.Second, 10*time.Millisecond)

	current, ok := q.Job(job.ID)
	require.True(t, ok)
	assert.Contains(t, current.Error, "failed after 3 attempts")
	assert.Contains(t, current.Error, "quota exceeded")
	require.NotNil(t, current.CompletedAt)
	assert.Equal(t, 3, gen.callCount())
}

func TestEnqueueAllPacesSubmissions(t *testing.T) {
	t.Parallel()

	q := newTestQueue(t, &stubGenerator{})

	var waits []time.Duration
	q.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	next := 0
	q.suffix = func() int { next++; return next }

	ids, err := q.EnqueueAll(context.Background(), []string{"A", "B", "C"})
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, waits)

	seen := map[string]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate job id %q", id)
		seen[id] = true
	}
}

func TestQueueStats(t *testing.T) {
	t.Parallel()

	q := newTestQueue(t, &stubGenerator{})
	now := time.Now()

	q.store.Put(&domain.GenerationJob{ID: "j1", Status: domain.JobPending, CreatedAt: now})
	q.store.Put(&domain.GenerationJob{ID: "j2", Status: domain.JobProcessing, CreatedAt: now})
	q.store.Put(&domain.GenerationJob{ID: "j3", Status: domain.JobCompleted, CreatedAt: now})
	q.store.Put(&domain.GenerationJob{ID: "j4", Status: domain.JobFailed, CreatedAt: now})
	q.store.Put(&domain.GenerationJob{ID: "j5", Status: domain.JobFailed, CreatedAt: now})

	stats := q.Stats()
	assert.Equal(t, domain.QueueStats{Total: 5, Pending: 1, Processing: 1, Completed: 1, Failed: 2}, stats)

	assert.Len(t, q.ProcessingJobs(), 1)
	assert.Len(t, q.CompletedJobs(), 1)
	assert.Len(t, q.FailedJobs(), 2)
	assert.Len(t, q.Jobs(), 5)
}

func TestCleanupOldJobs(t *testing.T) {
	t.Parallel()

	q := newTestQueue(t, &stubGenerator{})
	now := time.Now()
	q.now = func() time.Time { return now }

	q.store.Put(&domain.GenerationJob{ID: "old-done", Status: domain.JobCompleted, CreatedAt: now.Add(-25 * time.Hour)})
	q.store.Put(&domain.GenerationJob{ID: "old-pending", Status: domain.JobPending, CreatedAt: now.Add(-25 * time.Hour)})
	q.store.Put(&domain.GenerationJob{ID: "recent-done", Status: domain.JobCompleted, CreatedAt: now.Add(-23 * time.Hour)})

	removed := q.CleanupOldJobs()
	assert.Equal(t, 2, removed)

	_, ok := q.Job("old-done")
	assert.False(t, ok)
	_, ok = q.Job("old-pending")
	assert.False(t, ok)
	_, ok = q.Job("recent-done")
	assert.True(t, ok)
}

func TestRateLimiterSpacing(t *testing.T) {
	t.Parallel()

	limiter := newRateLimiter(30 * time.Second)

	clock := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	var waits []time.Duration
	limiter.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		clock = clock.Add(d)
		return nil
	}

	// First call goes straight through.
	require.NoError(t, limiter.wait(context.Background()))
	assert.Empty(t, waits)

	// 10s later, a second call waits the remaining 20s.
	clock = clock.Add(10 * time.Second)
	require.NoError(t, limiter.wait(context.Background()))
	assert.Equal(t, []time.Duration{20 * time.Second}, waits)

	// Immediately after, a third call waits the full interval again.
	require.NoError(t, limiter.wait(context.Background()))
	assert.Equal(t, []time.Duration{20 * time.Second, 30 * time.Second}, waits)
}

func TestRateLimiterInterrupted(t *testing.T) {
	t.Parallel()

	limiter := newRateLimiter(30 * time.Second)
	clock := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }
	limiter.sleep = func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	}

	require.NoError(t, limiter.wait(context.Background()))
	err := limiter.wait(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
}
