package ports

import (
	"context"
	"time"

	"BlogForge/internal/domain"
)

// ArticleRepository persists blog articles. Lookups return domain.ErrNotFound
// when no row matches.
type ArticleRepository interface {
	FindBySlug(ctx context.Context, slug string) (*domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	Create(ctx context.Context, article *domain.Article) error
	MarkPublished(ctx context.Context, id string, at time.Time) (*domain.Article, error)
	ListPending(ctx context.Context) ([]domain.Article, error)
	Count(ctx context.Context, published *bool) (int, error)
}

// CategoryRepository resolves and creates blog categories.
type CategoryRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
}

// AuthorRepository resolves users eligible to author generated drafts.
type AuthorRepository interface {
	FindFirstByRole(ctx context.Context, role string) (*domain.Author, error)
}

// ContentClient sends a prompt to the generative-AI backend and returns the
// raw model text.
type ContentClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// TopicSource supplies topic candidates. Implementations never fail; on
// internal errors they fall back to a static list.
type TopicSource interface {
	TrendingTopics(ctx context.Context, region string) []string
}

// ArticleGenerator is the slice of the generator the async queue drives.
type ArticleGenerator interface {
	Keywords(topic string) []string
	GenerateWithAI(ctx context.Context, topic string, keywords []string) (domain.GeneratedArticle, error)
	SaveGenerated(ctx context.Context, article domain.GeneratedArticle, categoryID, authorID string) (*domain.Article, error)
}

// BlogPipeline is the slice of the generator the scheduler and HTTP layer
// drive.
type BlogPipeline interface {
	GenerateFromTrends(ctx context.Context, count int) ([]domain.Article, error)
	PendingArticles(ctx context.Context) ([]domain.Article, error)
	Publish(ctx context.Context, id string) (*domain.Article, error)
	Stats(ctx context.Context) (domain.GenerationStats, error)
	SeedPilotArticles(ctx context.Context) ([]domain.Article, error)
}

// JobStore holds the in-process generation-job table. Implementations must
// be safe for concurrent use; a durable backend can be swapped in without
// touching queue logic.
type JobStore interface {
	Get(id string) (*domain.GenerationJob, bool)
	Put(job *domain.GenerationJob)
	Delete(id string)
	List() []*domain.GenerationJob
}

// HTMLInspector looks inside generated HTML content.
type HTMLInspector interface {
	Words(html string) int
	Sections(html string) int
	Text(html string) string
}

// Notifier delivers operator notifications (dashboard, Telegram, ...).
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// ScheduleRule computes the next firing instant strictly after a reference
// time.
type ScheduleRule interface {
	Next(after time.Time) time.Time
}

// ScheduleDriver runs registered jobs whenever their rule fires.
type ScheduleDriver interface {
	Schedule(rule ScheduleRule, job func(time.Time))
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
