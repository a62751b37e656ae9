package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"BlogForge/internal/domain"
	"BlogForge/internal/infrastructure/content"
	"BlogForge/internal/jsonparse"
	"BlogForge/internal/ports"
)

// Editorial defaults for generated drafts.
const (
	DefaultCategoryName = "Conseils & Astuces"
	DefaultAuthorRole   = "ADMIN"
)

// topicPace spaces consecutive AI calls inside a trend batch.
const topicPace = 2 * time.Second

var requiredArticleFields = []string{"title", "excerpt", "content"}

var baseKeywords = []string{
	"nettoyage",
	"blanchisserie",
	"pressing",
	"vêtements",
	"textile",
	"professionnel",
	"astuces",
	"conseils",
	"entretien",
}

// GeneratorDeps wires all driven adapters into the generation workflow.
// CategoryName, AuthorRole and Region fall back to the editorial defaults
// when empty.
type GeneratorDeps struct {
	Topics     ports.TopicSource
	AI         ports.ContentClient
	Articles   ports.ArticleRepository
	Categories ports.CategoryRepository
	Authors    ports.AuthorRepository
	Inspector  ports.HTMLInspector
	Logger     *slog.Logger

	CategoryName string
	AuthorRole   string
	Region       string
}

// Generator orchestrates topic selection, AI content generation, JSON
// recovery and persistence of draft articles.
type Generator struct {
	topics     ports.TopicSource
	ai         ports.ContentClient
	articles   ports.ArticleRepository
	categories ports.CategoryRepository
	authors    ports.AuthorRepository
	inspector  ports.HTMLInspector
	logger     *slog.Logger

	categoryName string
	authorRole   string
	region       string

	newID func() string
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
	pace  time.Duration
}

var (
	_ ports.ArticleGenerator = (*Generator)(nil)
	_ ports.BlogPipeline     = (*Generator)(nil)
)

// NewGenerator constructs the orchestration component.
func NewGenerator(deps GeneratorDeps) *Generator {
	g := &Generator{
		topics:       deps.Topics,
		ai:           deps.AI,
		articles:     deps.Articles,
		categories:   deps.Categories,
		authors:      deps.Authors,
		inspector:    deps.Inspector,
		logger:       deps.Logger,
		categoryName: deps.CategoryName,
		authorRole:   deps.AuthorRole,
		region:       deps.Region,
		newID:        uuid.NewString,
		now:          time.Now,
		sleep:        sleepContext,
		pace:         topicPace,
	}
	if g.categoryName == "" {
		g.categoryName = DefaultCategoryName
	}
	if g.authorRole == "" {
		g.authorRole = DefaultAuthorRole
	}
	return g
}

// TrendingTopics delegates to the topic source.
func (g *Generator) TrendingTopics(ctx context.Context, region string) []string {
	if g.topics == nil {
		return nil
	}
	return g.topics.TrendingTopics(ctx, region)
}

// Keywords derives up to 10 search keywords from a topic: the topic itself,
// its words longer than 3 characters, and the first 3 base keywords.
func (g *Generator) Keywords(topic string) []string {
	keywords := []string{topic}
	for _, word := range strings.Fields(strings.ToLower(topic)) {
		if len([]rune(word)) > 3 {
			keywords = append(keywords, word)
		}
	}
	keywords = append(keywords, baseKeywords[:3]...)

	seen := map[string]bool{}
	unique := keywords[:0]
	for _, keyword := range keywords {
		if seen[keyword] {
			continue
		}
		seen[keyword] = true
		unique = append(unique, keyword)
	}

	if len(unique) > domain.MaxSEOKeywords {
		unique = unique[:domain.MaxSEOKeywords]
	}
	return unique
}

// GenerateWithAI requests one article from the AI backend and recovers the
// structured draft from its response. The caller owns retries.
func (g *Generator) GenerateWithAI(ctx context.Context, topic string, keywords []string) (domain.GeneratedArticle, error) {
	if g.ai == nil {
		return domain.GeneratedArticle{}, fmt.Errorf("content client is not configured")
	}

	g.log("generating article", "topic", topic)

	text, err := g.ai.GenerateText(ctx, buildPrompt(topic, keywords))
	if err != nil {
		return domain.GeneratedArticle{}, fmt.Errorf("generate content for %q: %w", topic, err)
	}
	g.log("raw AI response received", "topic", topic, "length", len(text))

	parsed, err := jsonparse.Parse(text)
	if err != nil {
		return domain.GeneratedArticle{}, fmt.Errorf("parse AI response for %q: %w", topic, err)
	}

	if !jsonparse.Validate(parsed, requiredArticleFields) {
		return domain.GeneratedArticle{}, fmt.Errorf("missing or invalid required fields in AI response")
	}

	title := stringField(parsed, "title")
	excerpt := stringField(parsed, "excerpt")
	body := stringField(parsed, "content")

	article := domain.GeneratedArticle{
		Title:          truncate(title, domain.MaxTitleLen),
		Slug:           Slugify(title),
		Content:        body,
		Excerpt:        truncate(excerpt, domain.MaxExcerptLen),
		SEOKeywords:    keywords,
		SEODescription: truncate(excerpt, domain.MaxSEODescriptionLen),
		ReadingTime:    g.readingTime(parsed, body),
	}

	return article, nil
}

// SaveGenerated persists a draft. Creation is idempotent by slug: an
// existing article is returned unchanged.
func (g *Generator) SaveGenerated(ctx context.Context, article domain.GeneratedArticle, categoryID, authorID string) (*domain.Article, error) {
	existing, err := g.articles.FindBySlug(ctx, article.Slug)
	if err == nil {
		g.log("article already exists, skipping creation", "slug", article.Slug)
		return existing, nil
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("lookup slug %s: %w", article.Slug, err)
	}

	row := &domain.Article{
		ID:             g.newID(),
		Title:          article.Title,
		Slug:           article.Slug,
		Content:        article.Content,
		Excerpt:        article.Excerpt,
		SEOKeywords:    article.SEOKeywords,
		SEODescription: article.SEODescription,
		ReadingTime:    article.ReadingTime,
		IsPublished:    false,
		PublishedAt:    nil,
		CategoryID:     categoryID,
		AuthorID:       authorID,
		CreatedAt:      g.now(),
	}

	if err := g.articles.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("create article %s: %w", article.Slug, err)
	}

	g.log("article created", "id", row.ID, "slug", row.Slug)
	return row, nil
}

// GenerateFromTrends generates up to count articles from trending topics,
// sequentially. A failing topic is logged and skipped; a missing default
// category or author is fatal.
func (g *Generator) GenerateFromTrends(ctx context.Context, count int) ([]domain.Article, error) {
	topics := g.TrendingTopics(ctx, g.region)
	if len(topics) == 0 {
		g.log("no topics available")
		return nil, nil
	}

	category, author, err := g.resolveDefaults(ctx)
	if err != nil {
		return nil, err
	}

	if count > len(topics) {
		count = len(topics)
	}

	var generated []domain.Article
	for i := 0; i < count; i++ {
		topic := topics[i]

		article, err := g.generateOne(ctx, topic, category.ID, author.ID)
		if err != nil {
			g.warn("topic generation failed, skipping", "topic", topic, "error", err)
			continue
		}
		generated = append(generated, *article)

		if i < count-1 {
			if err := g.sleep(ctx, g.pace); err != nil {
				return generated, fmt.Errorf("pacing interrupted: %w", err)
			}
		}
	}

	g.log("trend generation finished", "requested", count, "generated", len(generated))
	return generated, nil
}

func (g *Generator) generateOne(ctx context.Context, topic, categoryID, authorID string) (*domain.Article, error) {
	article, err := g.GenerateWithAI(ctx, topic, g.Keywords(topic))
	if err != nil {
		return nil, err
	}
	return g.SaveGenerated(ctx, article, categoryID, authorID)
}

// Publish flips a draft to published and stamps published_at.
func (g *Generator) Publish(ctx context.Context, id string) (*domain.Article, error) {
	article, err := g.articles.MarkPublished(ctx, id, g.now())
	if err != nil {
		return nil, fmt.Errorf("publish article %s: %w", id, err)
	}
	g.log("article published", "id", id, "title", article.Title)
	return article, nil
}

// PendingArticles lists unpublished drafts, newest first.
func (g *Generator) PendingArticles(ctx context.Context) ([]domain.Article, error) {
	articles, err := g.articles.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	return articles, nil
}

// Stats summarizes the article table.
func (g *Generator) Stats(ctx context.Context) (domain.GenerationStats, error) {
	total, err := g.articles.Count(ctx, nil)
	if err != nil {
		return domain.GenerationStats{}, fmt.Errorf("count total: %w", err)
	}

	published := true
	publishedCount, err := g.articles.Count(ctx, &published)
	if err != nil {
		return domain.GenerationStats{}, fmt.Errorf("count published: %w", err)
	}

	stats := domain.GenerationStats{
		Total:          total,
		Published:      publishedCount,
		Pending:        total - publishedCount,
		GenerationRate: "0.00",
	}
	if total > 0 {
		stats.GenerationRate = fmt.Sprintf("%.2f", float64(publishedCount)/float64(total)*100)
	}

	return stats, nil
}

func (g *Generator) resolveDefaults(ctx context.Context) (*domain.Category, *domain.Author, error) {
	category, err := g.categories.FindByName(ctx, g.categoryName)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, fmt.Errorf("default category not found")
		}
		return nil, nil, fmt.Errorf("resolve category: %w", err)
	}

	author, err := g.authors.FindFirstByRole(ctx, g.authorRole)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, fmt.Errorf("default author not found")
		}
		return nil, nil, fmt.Errorf("resolve author: %w", err)
	}

	return category, author, nil
}

func (g *Generator) readingTime(parsed map[string]any, body string) int {
	if raw, ok := parsed["reading_time"]; ok {
		switch v := raw.(type) {
		case float64:
			if v > 0 {
				return int(v)
			}
		case int:
			if v > 0 {
				return v
			}
		}
	}

	if g.inspector != nil {
		return content.ReadingTime(g.inspector.Words(body))
	}
	return 8
}

var (
	slugStripExpr    = regexp.MustCompile(`[^\w\s-]`)
	slugSpaceExpr    = regexp.MustCompile(`\s+`)
	slugCollapseExpr = regexp.MustCompile(`-+`)
)

// Slugify lowercases the title, strips non-word characters, collapses
// whitespace and repeated hyphens, and truncates to the storage limit.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStripExpr.ReplaceAllString(slug, "")
	slug = slugSpaceExpr.ReplaceAllString(slug, "-")
	slug = slugCollapseExpr.ReplaceAllString(slug, "-")
	return truncate(slug, domain.MaxSlugLen)
}

func buildPrompt(topic string, keywords []string) string {
	return fmt.Sprintf(`RESPOND ONLY WITH VALID JSON. NO OTHER TEXT.

You are an expert in laundry, dry cleaning and garment care.
Generate a professional, detailed and engaging blog article on the following topic:

Topic: %s
Keywords to include: %s

The article MUST have:
1. A catchy SEO-optimized title
2. An engaging introduction (2-3 paragraphs)
3. MINIMUM 5-6 well-structured sections with subtitles
4. Each section must have 2-3 detailed paragraphs
5. Practical, detailed and useful advice
6. Concrete and specific examples
7. An FAQ section with 3-4 questions/answers
8. A conclusion with a CTA
9. Written in French
10. Approximately 2500-3500 words (VERY IMPORTANT)
11. Formatted in HTML with appropriate tags (h2, h3, p, ul, li)
12. Include bullet lists for tips

Respond ONLY with this exact JSON format (no markdown, no code blocks, just raw JSON):
{
  "title": "Article title here",
  "excerpt": "Summary of maximum 160 characters",
  "content": "<h2>Section 1</h2><p>Detailed content...</p><h3>Subsection</h3><p>More details...</p>",
  "reading_time": 12
}

CRITICAL:
- Return ONLY valid JSON
- No markdown code blocks
- No explanations
- No additional text
- Content must be VERY detailed with minimum 2500 words
- Each paragraph must have 3-4 complete sentences`, topic, strings.Join(keywords, ", "))
}

func stringField(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

func (g *Generator) log(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Info(msg, args...)
	}
}

func (g *Generator) warn(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Warn(msg, args...)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
