// Package app wires configuration into the running service.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"BlogForge/internal/config"
	"BlogForge/internal/infrastructure/content"
	"BlogForge/internal/infrastructure/httpapi"
	"BlogForge/internal/infrastructure/llm"
	"BlogForge/internal/infrastructure/notify"
	"BlogForge/internal/infrastructure/schedule"
	"BlogForge/internal/infrastructure/storage"
	"BlogForge/internal/logging"
	"BlogForge/internal/ports"
	"BlogForge/internal/trends"
	"BlogForge/internal/usecase"
)

const shutdownGrace = 10 * time.Second

// Application owns the wired components and their lifecycle.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *sql.DB
	server    *httpapi.Server
	scheduler *usecase.Scheduler
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	app := &Application{cfg: cfg, logger: baseLogger}

	var (
		articles   ports.ArticleRepository
		categories ports.CategoryRepository
		authors    ports.AuthorRepository
	)
	if cfg.Database.DSN != "" {
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		app.db = db
		articles = storage.NewPostgresArticleRepository(db)
		categories = storage.NewPostgresCategoryRepository(db)
		authors = storage.NewPostgresAuthorRepository(db)
	} else {
		baseLogger.Warn("no database DSN configured, using in-memory storage")
		store := storage.NewMemoryStore()
		articles = store
		categories = store.Categories()
		authors = store.Authors()
	}

	var ai ports.ContentClient
	if cfg.Gemini.APIKey != "" {
		ai = llm.NewGeminiClient(cfg.Gemini)
	} else {
		baseLogger.Warn("no AI API key configured, generation endpoints will fail")
	}

	topics := trends.NewSource(baseLogger.With("component", "trends"))

	generator := usecase.NewGenerator(usecase.GeneratorDeps{
		Topics:       topics,
		AI:           ai,
		Articles:     articles,
		Categories:   categories,
		Authors:      authors,
		Inspector:    content.NewInspector(),
		Logger:       baseLogger.With("component", "generator"),
		CategoryName: cfg.Blog.DefaultCategory,
		AuthorRole:   cfg.Blog.AuthorRole,
		Region:       cfg.Blog.Region,
	})

	queue := usecase.NewQueue(usecase.QueueDeps{
		Generator:    generator,
		Articles:     articles,
		Categories:   categories,
		Authors:      authors,
		Logger:       baseLogger.With("component", "queue"),
		CategoryName: cfg.Blog.DefaultCategory,
		AuthorRole:   cfg.Blog.AuthorRole,
	})

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = notify.NewTelegramNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	} else {
		notifier = notify.NewConsoleNotifier(baseLogger.With("component", "notify"))
	}

	if !cfg.Scheduler.Disabled {
		loc := cfg.Scheduler.Location()
		runner := schedule.NewRunner(baseLogger.With("component", "schedule"))
		app.scheduler = usecase.NewScheduler(runner, generator, notifier,
			baseLogger.With("component", "scheduler"),
			usecase.SchedulerConfig{
				GenerationRule:  schedule.WeeklyAt{Weekday: time.Monday, Hour: cfg.Scheduler.GenerationHour, Loc: loc},
				PublicationRule: schedule.DailyAt{Hour: cfg.Scheduler.PublicationHour, Loc: loc},
				StatsRule:       schedule.DailyAt{Hour: cfg.Scheduler.StatsHour, Loc: loc},
				GenerationCount: cfg.Scheduler.GenerationCount,
				PendingAlert:    cfg.Scheduler.PendingAlert,
			})
	}

	app.server = httpapi.NewServer(cfg.Server.Port, httpapi.ServerDeps{
		Pipeline: generator,
		Topics:   topics,
		Queue:    queue,
		Logger:   baseLogger.With("component", "http"),
		Region:   cfg.Blog.Region,
	})

	return app, nil
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	if a.scheduler != nil {
		if err := a.scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- a.server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if a.scheduler != nil {
		if err := a.scheduler.Stop(shutdownCtx); err != nil {
			a.logger.Warn("scheduler stop failed", "error", err)
		}
	}
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("server shutdown failed", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("database close failed", "error", err)
		}
	}

	return nil
}
