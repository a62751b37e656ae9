package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"BlogForge/internal/ports"
)

// SchedulerConfig carries the firing rules and tuning for the recurring
// blog routines.
type SchedulerConfig struct {
	GenerationRule  ports.ScheduleRule
	PublicationRule ports.ScheduleRule
	StatsRule       ports.ScheduleRule
	GenerationCount int
	PendingAlert    int
}

// Scheduler registers the recurring blog routines with a schedule driver:
// weekly generation, daily publication of the oldest draft, and a daily
// stats report. Routine errors are logged and notified, never fatal.
type Scheduler struct {
	driver   ports.ScheduleDriver
	pipeline ports.BlogPipeline
	notifier ports.Notifier
	logger   *slog.Logger
	cfg      SchedulerConfig
}

// NewScheduler wires the driver with the pipeline.
func NewScheduler(driver ports.ScheduleDriver, pipeline ports.BlogPipeline, notifier ports.Notifier, logger *slog.Logger, cfg SchedulerConfig) *Scheduler {
	if cfg.GenerationCount <= 0 {
		cfg.GenerationCount = 2
	}
	return &Scheduler{
		driver:   driver,
		pipeline: pipeline,
		notifier: notifier,
		logger:   logger,
		cfg:      cfg,
	}
}

// Start registers all routines and launches the driver.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	s.driver.Schedule(s.cfg.GenerationRule, func(at time.Time) {
		s.generateWeekly(ctx, at)
	})
	s.driver.Schedule(s.cfg.PublicationRule, func(at time.Time) {
		s.publishDaily(ctx, at)
	})
	s.driver.Schedule(s.cfg.StatsRule, func(at time.Time) {
		s.reportStats(ctx, at)
	})

	return s.driver.Start(ctx)
}

// Stop tears down the driver.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Stop(ctx)
}

func (s *Scheduler) generateWeekly(ctx context.Context, at time.Time) {
	s.log("weekly generation starting", "count", s.cfg.GenerationCount, "at", at)

	generated, err := s.pipeline.GenerateFromTrends(ctx, s.cfg.GenerationCount)
	if err != nil {
		s.report(ctx, "Génération hebdomadaire échouée", err.Error(), err)
		return
	}

	s.log("weekly generation finished", "generated", len(generated))
}

func (s *Scheduler) publishDaily(ctx context.Context, at time.Time) {
	s.log("daily publication starting", "at", at)

	pending, err := s.pipeline.PendingArticles(ctx)
	if err != nil {
		s.report(ctx, "Publication quotidienne échouée", err.Error(), err)
		return
	}
	if len(pending) == 0 {
		s.log("no pending articles to publish")
		return
	}

	// Pending is newest first; publish the oldest draft.
	oldest := pending[len(pending)-1]
	published, err := s.pipeline.Publish(ctx, oldest.ID)
	if err != nil {
		s.report(ctx, "Publication quotidienne échouée", err.Error(), err)
		return
	}

	s.log("article published", "id", published.ID, "title", published.Title)
}

func (s *Scheduler) reportStats(ctx context.Context, at time.Time) {
	stats, err := s.pipeline.Stats(ctx)
	if err != nil {
		s.report(ctx, "Rapport quotidien échoué", err.Error(), err)
		return
	}

	s.log("daily stats", "at", at,
		"total", stats.Total,
		"published", stats.Published,
		"pending", stats.Pending,
		"rate", stats.GenerationRate,
	)

	if s.cfg.PendingAlert > 0 && stats.Pending > s.cfg.PendingAlert {
		message := fmt.Sprintf("%d articles en attente de publication", stats.Pending)
		s.report(ctx, "File de publication encombrée", message, nil)
	}
}

// report notifies the operator; notification failures are only logged.
func (s *Scheduler) report(ctx context.Context, title, message string, cause error) {
	if cause != nil {
		s.warn(title, "error", cause)
	}
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, title, message); err != nil {
		s.warn("notification delivery failed", "title", title, "error", err)
	}
}

func (s *Scheduler) log(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Scheduler) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
