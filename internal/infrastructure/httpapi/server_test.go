package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BlogForge/internal/domain"
)

type fakeQueue struct {
	enqueued []string
	jobs     map[string]*domain.GenerationJob
	removed  int
}

func (q *fakeQueue) Enqueue(ctx context.Context, topic string) *domain.GenerationJob {
	q.enqueued = append(q.enqueued, topic)
	return &domain.GenerationJob{ID: "job-1", Topic: topic, Status: domain.JobPending, CreatedAt: time.Now()}
}

func (q *fakeQueue) EnqueueAll(ctx context.Context, topics []string) ([]string, error) {
	ids := make([]string, len(topics))
	for i, topic := range topics {
		q.enqueued = append(q.enqueued, topic)
		ids[i] = "job-" + topic
	}
	return ids, nil
}

func (q *fakeQueue) Job(id string) (*domain.GenerationJob, bool) {
	job, ok := q.jobs[id]
	return job, ok
}

func (q *fakeQueue) Jobs() []*domain.GenerationJob {
	var jobs []*domain.GenerationJob
	for _, job := range q.jobs {
		jobs = append(jobs, job)
	}
	return jobs
}

func (q *fakeQueue) Stats() domain.QueueStats {
	return domain.QueueStats{Total: len(q.jobs)}
}

func (q *fakeQueue) CleanupOldJobs() int { return q.removed }

type fakePipeline struct {
	pending []domain.Article
	stats   domain.GenerationStats
	seeded  []domain.Article
}

func (p *fakePipeline) GenerateFromTrends(ctx context.Context, count int) ([]domain.Article, error) {
	return nil, nil
}

func (p *fakePipeline) PendingArticles(ctx context.Context) ([]domain.Article, error) {
	return p.pending, nil
}

func (p *fakePipeline) Publish(ctx context.Context, id string) (*domain.Article, error) {
	if id == "missing" {
		return nil, domain.ErrNotFound
	}
	return &domain.Article{ID: id, IsPublished: true}, nil
}

func (p *fakePipeline) Stats(ctx context.Context) (domain.GenerationStats, error) {
	return p.stats, nil
}

func (p *fakePipeline) SeedPilotArticles(ctx context.Context) ([]domain.Article, error) {
	return p.seeded, nil
}

type staticTopics struct {
	topics []string
}

func (s staticTopics) TrendingTopics(ctx context.Context, region string) []string {
	return s.topics
}

func newTestServer(queue *fakeQueue, pipeline *fakePipeline, topics []string) *Server {
	return NewServer("0", ServerDeps{
		Pipeline: pipeline,
		Topics:   staticTopics{topics: topics},
		Queue:    queue,
	})
}

func doJSON(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer(&fakeQueue{}, &fakePipeline{}, nil)
	rec, body := doJSON(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestGenerateEnqueuesJob(t *testing.T) {
	t.Parallel()

	queue := &fakeQueue{}
	s := newTestServer(queue, &fakePipeline{}, nil)

	rec, body := doJSON(t, s, http.MethodPost, "/api/v1/blog/generate", `{"topic": "Repassage"}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []string{"Repassage"}, queue.enqueued)

	data := body["data"].(map[string]any)
	assert.Equal(t, "pending", data["status"])
}

func TestGenerateRequiresTopic(t *testing.T) {
	t.Parallel()

	s := newTestServer(&fakeQueue{}, &fakePipeline{}, nil)
	rec, body := doJSON(t, s, http.MethodPost, "/api/v1/blog/generate", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestGenerateBatch(t *testing.T) {
	t.Parallel()

	queue := &fakeQueue{}
	s := newTestServer(queue, &fakePipeline{}, nil)

	rec, body := doJSON(t, s, http.MethodPost, "/api/v1/blog/generate/batch", `{"topics": ["A", "B"]}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"A", "B"}, queue.enqueued)

	data := body["data"].(map[string]any)
	assert.Len(t, data["jobIds"], 2)
}

func TestGenerateTrends(t *testing.T) {
	t.Parallel()

	queue := &fakeQueue{}
	s := newTestServer(queue, &fakePipeline{}, []string{"Sujet A", "Sujet B"})

	rec, body := doJSON(t, s, http.MethodPost, "/api/v1/blog/generate/trends", "")

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"Sujet A", "Sujet B"}, queue.enqueued)

	data := body["data"].(map[string]any)
	assert.Len(t, data["topics"], 2)
}

func TestGetJob(t *testing.T) {
	t.Parallel()

	queue := &fakeQueue{jobs: map[string]*domain.GenerationJob{
		"job-1": {ID: "job-1", Topic: "T", Status: domain.JobCompleted},
	}}
	s := newTestServer(queue, &fakePipeline{}, nil)

	rec, body := doJSON(t, s, http.MethodGet, "/api/v1/blog/jobs/job-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "completed", data["status"])

	rec, body = doJSON(t, s, http.MethodGet, "/api/v1/blog/jobs/absent", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestPublishArticle(t *testing.T) {
	t.Parallel()

	s := newTestServer(&fakeQueue{}, &fakePipeline{}, nil)

	rec, body := doJSON(t, s, http.MethodPost, "/api/v1/blog/articles/a1/publish", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["is_published"])

	rec, _ = doJSON(t, s, http.MethodPost, "/api/v1/blog/articles/missing/publish", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPendingArticles(t *testing.T) {
	t.Parallel()

	pipeline := &fakePipeline{pending: []domain.Article{{ID: "a1"}, {ID: "a2"}}}
	s := newTestServer(&fakeQueue{}, pipeline, nil)

	rec, body := doJSON(t, s, http.MethodGet, "/api/v1/blog/articles/pending", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["data"], 2)
}

func TestStats(t *testing.T) {
	t.Parallel()

	pipeline := &fakePipeline{stats: domain.GenerationStats{Total: 4, Published: 1, Pending: 3, GenerationRate: "25.00"}}
	s := newTestServer(&fakeQueue{}, pipeline, nil)

	rec, body := doJSON(t, s, http.MethodGet, "/api/v1/blog/stats", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "25.00", data["generationRate"])
}

func TestSeed(t *testing.T) {
	t.Parallel()

	pipeline := &fakePipeline{seeded: []domain.Article{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}, {ID: "a4"}}}
	s := newTestServer(&fakeQueue{}, pipeline, nil)

	rec, body := doJSON(t, s, http.MethodPost, "/api/v1/blog/seed", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(4), data["created"])
}

func TestCleanupJobs(t *testing.T) {
	t.Parallel()

	queue := &fakeQueue{removed: 2}
	s := newTestServer(queue, &fakePipeline{}, nil)

	rec, body := doJSON(t, s, http.MethodPost, "/api/v1/blog/jobs/cleanup", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(2), data["removed"])
}
