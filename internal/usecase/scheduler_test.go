package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BlogForge/internal/domain"
	"BlogForge/internal/ports"
)

type fakeDriver struct {
	rules   []ports.ScheduleRule
	jobs    []func(time.Time)
	started bool
	stopped bool
}

func (d *fakeDriver) Schedule(rule ports.ScheduleRule, job func(time.Time)) {
	d.rules = append(d.rules, rule)
	d.jobs = append(d.jobs, job)
}

func (d *fakeDriver) Start(ctx context.Context) error { d.started = true; return nil }
func (d *fakeDriver) Stop(ctx context.Context) error  { d.stopped = true; return nil }

type fakePipeline struct {
	generated   []domain.Article
	generateErr error
	genCount    int

	pending    []domain.Article
	pendingErr error

	publishedID string
	publishErr  error

	stats    domain.GenerationStats
	statsErr error
}

func (p *fakePipeline) GenerateFromTrends(ctx context.Context, count int) ([]domain.Article, error) {
	p.genCount = count
	return p.generated, p.generateErr
}

func (p *fakePipeline) PendingArticles(ctx context.Context) ([]domain.Article, error) {
	return p.pending, p.pendingErr
}

func (p *fakePipeline) Publish(ctx context.Context, id string) (*domain.Article, error) {
	p.publishedID = id
	if p.publishErr != nil {
		return nil, p.publishErr
	}
	return &domain.Article{ID: id, IsPublished: true}, nil
}

func (p *fakePipeline) Stats(ctx context.Context) (domain.GenerationStats, error) {
	return p.stats, p.statsErr
}

func (p *fakePipeline) SeedPilotArticles(ctx context.Context) ([]domain.Article, error) {
	return nil, nil
}

type recordingNotifier struct {
	titles   []string
	messages []string
}

func (n *recordingNotifier) Notify(ctx context.Context, title, message string) error {
	n.titles = append(n.titles, title)
	n.messages = append(n.messages, message)
	return nil
}

type fixedRule struct{}

func (fixedRule) Next(after time.Time) time.Time { return after.Add(time.Hour) }

func newTestScheduler(pipeline *fakePipeline, notifier ports.Notifier) (*Scheduler, *fakeDriver) {
	driver := &fakeDriver{}
	s := NewScheduler(driver, pipeline, notifier, nil, SchedulerConfig{
		GenerationRule:  fixedRule{},
		PublicationRule: fixedRule{},
		StatsRule:       fixedRule{},
		GenerationCount: 2,
		PendingAlert:    5,
	})
	return s, driver
}

func TestSchedulerRegistersThreeRoutines(t *testing.T) {
	t.Parallel()

	s, driver := newTestScheduler(&fakePipeline{}, nil)
	require.NoError(t, s.Start(context.Background()))

	require.Len(t, driver.jobs, 3)
	assert.True(t, driver.started)

	require.NoError(t, s.Stop(context.Background()))
	assert.True(t, driver.stopped)
}

func TestWeeklyGenerationUsesConfiguredCount(t *testing.T) {
	t.Parallel()

	pipeline := &fakePipeline{generated: []domain.Article{{ID: "a1"}, {ID: "a2"}}}
	s, driver := newTestScheduler(pipeline, nil)
	require.NoError(t, s.Start(context.Background()))

	driver.jobs[0](time.Now())
	assert.Equal(t, 2, pipeline.genCount)
}

func TestWeeklyGenerationFailureNotifies(t *testing.T) {
	t.Parallel()

	pipeline := &fakePipeline{generateErr: errors.New("ai unavailable")}
	notifier := &recordingNotifier{}
	s, driver := newTestScheduler(pipeline, notifier)
	require.NoError(t, s.Start(context.Background()))

	driver.jobs[0](time.Now())

	require.Len(t, notifier.titles, 1)
	assert.Contains(t, notifier.messages[0], "ai unavailable")
}

func TestDailyPublicationPicksOldestDraft(t *testing.T) {
	t.Parallel()

	// Pending lists are newest first.
	pipeline := &fakePipeline{pending: []domain.Article{{ID: "newest"}, {ID: "middle"}, {ID: "oldest"}}}
	s, driver := newTestScheduler(pipeline, nil)
	require.NoError(t, s.Start(context.Background()))

	driver.jobs[1](time.Now())
	assert.Equal(t, "oldest", pipeline.publishedID)
}

func TestDailyPublicationNoDrafts(t *testing.T) {
	t.Parallel()

	pipeline := &fakePipeline{}
	notifier := &recordingNotifier{}
	s, driver := newTestScheduler(pipeline, notifier)
	require.NoError(t, s.Start(context.Background()))

	driver.jobs[1](time.Now())
	assert.Empty(t, pipeline.publishedID)
	assert.Empty(t, notifier.titles)
}

func TestStatsAlertAboveThreshold(t *testing.T) {
	t.Parallel()

	pipeline := &fakePipeline{stats: domain.GenerationStats{Total: 10, Published: 4, Pending: 6, GenerationRate: "40.00"}}
	notifier := &recordingNotifier{}
	s, driver := newTestScheduler(pipeline, notifier)
	require.NoError(t, s.Start(context.Background()))

	driver.jobs[2](time.Now())

	require.Len(t, notifier.titles, 1)
	assert.Contains(t, notifier.messages[0], "6 articles en attente")
}

func TestStatsNoAlertAtThreshold(t *testing.T) {
	t.Parallel()

	pipeline := &fakePipeline{stats: domain.GenerationStats{Total: 10, Published: 5, Pending: 5, GenerationRate: "50.00"}}
	notifier := &recordingNotifier{}
	s, driver := newTestScheduler(pipeline, notifier)
	require.NoError(t, s.Start(context.Background()))

	driver.jobs[2](time.Now())
	assert.Empty(t, notifier.titles)
}
