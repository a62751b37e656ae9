package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"BlogForge/internal/domain"
	"BlogForge/internal/ports"
	"BlogForge/internal/retry"
)

const (
	// generationInterval is the minimum spacing between two AI generations
	// across the whole process.
	generationInterval = 30 * time.Second

	// jobRetention bounds how long finished jobs stay queryable.
	jobRetention = 24 * time.Hour

	// enqueuePace spaces batch submissions so job IDs stay unique and the
	// queue drains in order.
	enqueuePace = 1 * time.Second
)

// MemoryJobStore is the in-process job table.
type MemoryJobStore struct {
	mu   sync.RWMutex
	jobs map[string]*domain.GenerationJob
}

var _ ports.JobStore = (*MemoryJobStore)(nil)

// NewMemoryJobStore returns an empty job table.
func NewMemoryJobStore() *MemoryJobStore {
	return &MemoryJobStore{jobs: map[string]*domain.GenerationJob{}}
}

// Get returns a copy of the job so callers cannot race with status updates.
func (s *MemoryJobStore) Get(id string) (*domain.GenerationJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, false
	}
	copied := *job
	return &copied, true
}

// Put stores the job state under its ID.
func (s *MemoryJobStore) Put(job *domain.GenerationJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *job
	s.jobs[job.ID] = &copied
}

// Delete removes the job if present.
func (s *MemoryJobStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
}

// List returns copies of all jobs in unspecified order.
func (s *MemoryJobStore) List() []*domain.GenerationJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	jobs := make([]*domain.GenerationJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		copied := *job
		jobs = append(jobs, &copied)
	}
	return jobs
}

// rateLimiter enforces the process-wide spacing between AI generations. The
// mutex stays held across the wait so check and stamp are one step: a second
// caller arriving mid-wait queues up behind the first and waits the full
// interval again from the first caller's stamp.
type rateLimiter struct {
	mu    sync.Mutex
	last  time.Time
	min   time.Duration
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func newRateLimiter(min time.Duration) *rateLimiter {
	return &rateLimiter{min: min, now: time.Now, sleep: sleepContext}
}

func (l *rateLimiter) wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.last.IsZero() {
		if remaining := l.min - l.now().Sub(l.last); remaining > 0 {
			if err := l.sleep(ctx, remaining); err != nil {
				return err
			}
		}
	}

	l.last = l.now()
	return nil
}

// Queue runs article generations in the background, one tracked job per
// topic. Jobs live in the store until cleaned up; generation itself is
// retried with backoff before the job is marked failed.
type Queue struct {
	generator ports.ArticleGenerator
	articles  ports.ArticleRepository
	category  ports.CategoryRepository
	authors   ports.AuthorRepository
	store     ports.JobStore
	limiter   *rateLimiter
	logger    *slog.Logger

	categoryName string
	authorRole   string

	retryOpts retry.Options
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration) error
	suffix    func() int
}

// QueueDeps wires the queue's collaborators. Store defaults to a fresh
// MemoryJobStore; CategoryName and AuthorRole fall back to the editorial
// defaults.
type QueueDeps struct {
	Generator  ports.ArticleGenerator
	Articles   ports.ArticleRepository
	Categories ports.CategoryRepository
	Authors    ports.AuthorRepository
	Store      ports.JobStore
	Logger     *slog.Logger

	CategoryName string
	AuthorRole   string
}

// NewQueue constructs the background generation queue.
func NewQueue(deps QueueDeps) *Queue {
	store := deps.Store
	if store == nil {
		store = NewMemoryJobStore()
	}

	q := &Queue{
		generator:    deps.Generator,
		articles:     deps.Articles,
		category:     deps.Categories,
		authors:      deps.Authors,
		store:        store,
		limiter:      newRateLimiter(generationInterval),
		logger:       deps.Logger,
		categoryName: deps.CategoryName,
		authorRole:   deps.AuthorRole,
		retryOpts: retry.Options{
			MaxAttempts:       3,
			InitialDelay:      2 * time.Second,
			MaxDelay:          10 * time.Second,
			BackoffMultiplier: 2,
			Jitter:            true,
			Logger:            deps.Logger,
		},
		now:    time.Now,
		sleep:  sleepContext,
		suffix: func() int { return rand.Intn(1000) },
	}
	if q.categoryName == "" {
		q.categoryName = DefaultCategoryName
	}
	if q.authorRole == "" {
		q.authorRole = DefaultAuthorRole
	}
	return q
}

// Enqueue registers a pending job for the topic and starts processing it in
// the background. The returned job reflects the pending state; processing
// outlives the caller's context.
func (q *Queue) Enqueue(ctx context.Context, topic string) *domain.GenerationJob {
	job := &domain.GenerationJob{
		ID:        fmt.Sprintf("job-%d-%03d", q.now().UnixMilli(), q.suffix()),
		Topic:     topic,
		Status:    domain.JobPending,
		CreatedAt: q.now(),
	}
	q.store.Put(job)

	q.log("job enqueued", "job", job.ID, "topic", topic)

	detached := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				q.failJob(job.ID, fmt.Sprintf("panic during generation: %v", r))
			}
		}()
		q.processJob(detached, job.ID)
	}()

	pending := *job
	return &pending
}

// EnqueueAll submits one job per topic with a short pause between
// submissions and returns the job IDs in topic order.
func (q *Queue) EnqueueAll(ctx context.Context, topics []string) ([]string, error) {
	ids := make([]string, 0, len(topics))
	for i, topic := range topics {
		job := q.Enqueue(ctx, topic)
		ids = append(ids, job.ID)

		if i < len(topics)-1 {
			if err := q.sleep(ctx, enqueuePace); err != nil {
				return ids, fmt.Errorf("enqueue interrupted: %w", err)
			}
		}
	}
	return ids, nil
}

func (q *Queue) processJob(ctx context.Context, id string) {
	job, ok := q.store.Get(id)
	if !ok {
		return
	}
	job.Status = domain.JobProcessing
	q.store.Put(job)

	if err := q.limiter.wait(ctx); err != nil {
		q.failJob(id, fmt.Sprintf("rate limit wait interrupted: %v", err))
		return
	}

	article, err := q.generate(ctx, job.Topic)
	if err != nil {
		q.log("job failed", "job", id, "topic", job.Topic, "error", err)
		q.failJob(id, err.Error())
		return
	}

	job, ok = q.store.Get(id)
	if !ok {
		return
	}
	completedAt := q.now()
	job.Status = domain.JobCompleted
	job.Result = article
	job.CompletedAt = &completedAt
	q.store.Put(job)

	q.log("job completed", "job", id, "article", article.ID, "slug", article.Slug)
}

func (q *Queue) generate(ctx context.Context, topic string) (*domain.Article, error) {
	category, err := q.category.FindByName(ctx, q.categoryName)
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}

	author, err := q.authors.FindFirstByRole(ctx, q.authorRole)
	if err != nil {
		return nil, fmt.Errorf("resolve author: %w", err)
	}

	keywords := q.generator.Keywords(topic)

	draft, err := retry.Execute(ctx, func(ctx context.Context) (domain.GeneratedArticle, error) {
		return q.generator.GenerateWithAI(ctx, topic, keywords)
	}, q.retryOpts)
	if err != nil {
		return nil, err
	}

	return q.generator.SaveGenerated(ctx, draft, category.ID, author.ID)
}

func (q *Queue) failJob(id, reason string) {
	job, ok := q.store.Get(id)
	if !ok {
		return
	}
	completedAt := q.now()
	job.Status = domain.JobFailed
	job.Error = reason
	job.CompletedAt = &completedAt
	q.store.Put(job)
}

// Job returns one job by ID.
func (q *Queue) Job(id string) (*domain.GenerationJob, bool) {
	return q.store.Get(id)
}

// Jobs returns all tracked jobs.
func (q *Queue) Jobs() []*domain.GenerationJob {
	return q.store.List()
}

// ProcessingJobs returns jobs currently being generated.
func (q *Queue) ProcessingJobs() []*domain.GenerationJob {
	return q.jobsWithStatus(domain.JobProcessing)
}

// CompletedJobs returns successfully finished jobs.
func (q *Queue) CompletedJobs() []*domain.GenerationJob {
	return q.jobsWithStatus(domain.JobCompleted)
}

// FailedJobs returns jobs that exhausted their retries.
func (q *Queue) FailedJobs() []*domain.GenerationJob {
	return q.jobsWithStatus(domain.JobFailed)
}

func (q *Queue) jobsWithStatus(status domain.JobStatus) []*domain.GenerationJob {
	var matched []*domain.GenerationJob
	for _, job := range q.store.List() {
		if job.Status == status {
			matched = append(matched, job)
		}
	}
	return matched
}

// Stats counts jobs by status.
func (q *Queue) Stats() domain.QueueStats {
	stats := domain.QueueStats{}
	for _, job := range q.store.List() {
		stats.Total++
		switch job.Status {
		case domain.JobPending:
			stats.Pending++
		case domain.JobProcessing:
			stats.Processing++
		case domain.JobCompleted:
			stats.Completed++
		case domain.JobFailed:
			stats.Failed++
		}
	}
	return stats
}

// CleanupOldJobs removes jobs older than the retention window, whatever
// their status, and returns how many were removed.
func (q *Queue) CleanupOldJobs() int {
	cutoff := q.now().Add(-jobRetention)
	removed := 0
	for _, job := range q.store.List() {
		if job.CreatedAt.Before(cutoff) {
			q.store.Delete(job.ID)
			removed++
		}
	}
	if removed > 0 {
		q.log("old jobs cleaned up", "removed", removed)
	}
	return removed
}

func (q *Queue) log(msg string, args ...any) {
	if q.logger != nil {
		q.logger.Info(msg, args...)
	}
}
