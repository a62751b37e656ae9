package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"BlogForge/internal/domain"
	"BlogForge/internal/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var articleColumns = []string{
	"id", "title", "slug", "content", "excerpt", "seo_keywords",
	"seo_description", "reading_time", "is_published", "published_at",
	"category_id", "author_id", "created_at",
}

// PostgresArticleRepository persists blog articles into Postgres.
type PostgresArticleRepository struct {
	db *sql.DB
}

var _ ports.ArticleRepository = (*PostgresArticleRepository)(nil)

// NewPostgresArticleRepository wires a sql.DB implementation.
func NewPostgresArticleRepository(db *sql.DB) *PostgresArticleRepository {
	return &PostgresArticleRepository{db: db}
}

// FindBySlug loads one article or domain.ErrNotFound.
func (r *PostgresArticleRepository) FindBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	query, args, err := psql.Select(articleColumns...).
		From("blog_articles").
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return r.scanOne(r.db.QueryRowContext(ctx, query, args...))
}

// FindByID loads one article or domain.ErrNotFound.
func (r *PostgresArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	query, args, err := psql.Select(articleColumns...).
		From("blog_articles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return r.scanOne(r.db.QueryRowContext(ctx, query, args...))
}

// Create inserts a new article row.
func (r *PostgresArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	query, args, err := psql.Insert("blog_articles").
		Columns(articleColumns...).
		Values(
			article.ID,
			article.Title,
			article.Slug,
			article.Content,
			article.Excerpt,
			pq.StringArray(article.SEOKeywords),
			article.SEODescription,
			article.ReadingTime,
			article.IsPublished,
			article.PublishedAt,
			article.CategoryID,
			article.AuthorID,
			article.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert article: %w", err)
	}

	return nil
}

// MarkPublished flips the article to published and stamps published_at.
func (r *PostgresArticleRepository) MarkPublished(ctx context.Context, id string, at time.Time) (*domain.Article, error) {
	query, args, err := psql.Update("blog_articles").
		Set("is_published", true).
		Set("published_at", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("publish article: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	return r.FindByID(ctx, id)
}

// ListPending returns unpublished articles, newest first.
func (r *PostgresArticleRepository) ListPending(ctx context.Context) ([]domain.Article, error) {
	query, args, err := psql.Select(articleColumns...).
		From("blog_articles").
		Where(sq.Eq{"is_published": false}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pending: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return articles, nil
}

// Count counts articles, optionally filtered by publication state.
func (r *PostgresArticleRepository) Count(ctx context.Context, published *bool) (int, error) {
	builder := psql.Select("COUNT(*)").From("blog_articles")
	if published != nil {
		builder = builder.Where(sq.Eq{"is_published": *published})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresArticleRepository) scanOne(row rowScanner) (*domain.Article, error) {
	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan article: %w", err)
	}
	return article, nil
}

func scanArticle(row rowScanner) (*domain.Article, error) {
	var (
		article     domain.Article
		keywords    pq.StringArray
		publishedAt sql.NullTime
	)

	err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Slug,
		&article.Content,
		&article.Excerpt,
		&keywords,
		&article.SEODescription,
		&article.ReadingTime,
		&article.IsPublished,
		&publishedAt,
		&article.CategoryID,
		&article.AuthorID,
		&article.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	article.SEOKeywords = keywords
	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.Time
	}

	return &article, nil
}

// PostgresCategoryRepository resolves blog categories.
type PostgresCategoryRepository struct {
	db *sql.DB
}

var _ ports.CategoryRepository = (*PostgresCategoryRepository)(nil)

// NewPostgresCategoryRepository wires a sql.DB implementation.
func NewPostgresCategoryRepository(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

// FindByName loads one category or domain.ErrNotFound.
func (r *PostgresCategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	query, args, err := psql.Select("id", "name", "description").
		From("blog_categories").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var category domain.Category
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&category.ID, &category.Name, &category.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}

	return &category, nil
}

// Create inserts a new category.
func (r *PostgresCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query, args, err := psql.Insert("blog_categories").
		Columns("id", "name", "description").
		Values(category.ID, category.Name, category.Description).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}

	return nil
}

// PostgresAuthorRepository resolves users eligible to author drafts.
type PostgresAuthorRepository struct {
	db *sql.DB
}

var _ ports.AuthorRepository = (*PostgresAuthorRepository)(nil)

// NewPostgresAuthorRepository wires a sql.DB implementation.
func NewPostgresAuthorRepository(db *sql.DB) *PostgresAuthorRepository {
	return &PostgresAuthorRepository{db: db}
}

// FindFirstByRole returns the oldest user carrying the role, or
// domain.ErrNotFound.
func (r *PostgresAuthorRepository) FindFirstByRole(ctx context.Context, role string) (*domain.Author, error) {
	query, args, err := psql.Select("id", "name", "role").
		From("users").
		Where(sq.Eq{"role": role}).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var author domain.Author
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&author.ID, &author.Name, &author.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan author: %w", err)
	}

	return &author, nil
}
