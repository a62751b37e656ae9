package domain

import "time"

// Article is the persisted blog entity, created as a draft by the generator
// and later flipped to published.
type Article struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Content        string     `json:"content"`
	Excerpt        string     `json:"excerpt"`
	SEOKeywords    []string   `json:"seo_keywords"`
	SEODescription string     `json:"seo_description"`
	ReadingTime    int        `json:"reading_time"`
	IsPublished    bool       `json:"is_published"`
	PublishedAt    *time.Time `json:"published_at"`
	CategoryID     string     `json:"category_id"`
	AuthorID       string     `json:"author_id"`
	CreatedAt      time.Time  `json:"created_at"`
}

// GeneratedArticle is the transient contract between AI generation and
// persistence; it is consumed once to create an Article row.
type GeneratedArticle struct {
	Title          string
	Slug           string
	Content        string
	Excerpt        string
	SEOKeywords    []string
	SEODescription string
	ReadingTime    int
}

// Category groups articles; the generator resolves a single default one.
type Category struct {
	ID          string
	Name        string
	Description string
}

// Author is the users-table projection needed to attribute generated drafts.
type Author struct {
	ID   string
	Name string
	Role string
}

// GenerationStats summarizes the article table for dashboards and alerts.
// GenerationRate is published/total as a percentage, formatted "%.2f".
type GenerationStats struct {
	Total          int    `json:"total"`
	Published      int    `json:"published"`
	Pending        int    `json:"pending"`
	GenerationRate string `json:"generationRate"`
}

// Storage limits applied before persisting generated content.
const (
	MaxTitleLen          = 255
	MaxSlugLen           = 100
	MaxExcerptLen        = 500
	MaxSEODescriptionLen = 160
	MaxSEOKeywords       = 10
)
