package storage

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BlogForge/internal/domain"
)

func articleRows() *sqlmock.Rows {
	return sqlmock.NewRows(articleColumns)
}

func TestFindBySlug(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM blog_articles WHERE slug = \$1`).
		WithArgs("guide-nettoyage-sec-complet").
		WillReturnRows(articleRows().AddRow(
			"a1", "Guide", "guide-nettoyage-sec-complet", "<h2>Intro</h2>", "Excerpt",
			pq.StringArray{"nettoyage", "pressing"}, "SEO", 8, false, nil,
			"c1", "u1", created,
		))

	repo := NewPostgresArticleRepository(db)
	article, err := repo.FindBySlug(context.Background(), "guide-nettoyage-sec-complet")
	require.NoError(t, err)

	assert.Equal(t, "a1", article.ID)
	assert.Equal(t, []string{"nettoyage", "pressing"}, article.SEOKeywords)
	assert.Nil(t, article.PublishedAt)
	assert.False(t, article.IsPublished)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindBySlugNotFound(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM blog_articles WHERE slug = \$1`).
		WithArgs("absent").
		WillReturnRows(articleRows())

	repo := NewPostgresArticleRepository(db)
	_, err = repo.FindBySlug(context.Background(), "absent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateArticle(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO blog_articles`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresArticleRepository(db)
	err = repo.Create(context.Background(), &domain.Article{
		ID:          "a1",
		Title:       "T",
		Slug:        "t",
		Content:     "<p>c</p>",
		SEOKeywords: []string{"k"},
		CategoryID:  "c1",
		AuthorID:    "u1",
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPublishedNotFound(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE blog_articles SET is_published = \$1, published_at = \$2 WHERE id = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresArticleRepository(db)
	_, err = repo.MarkPublished(context.Background(), "missing", time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPendingOrdersNewestFirst(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	older := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)
	mock.ExpectQuery(`SELECT .+ FROM blog_articles WHERE is_published = \$1 ORDER BY created_at DESC`).
		WithArgs(false).
		WillReturnRows(articleRows().
			AddRow("a2", "New", "new", "c", "e", pq.StringArray{}, "s", 5, false, nil, "c1", "u1", newer).
			AddRow("a1", "Old", "old", "c", "e", pq.StringArray{}, "s", 5, false, nil, "c1", "u1", older))

	repo := NewPostgresArticleRepository(db)
	pending, err := repo.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "a2", pending[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountWithFilter(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	published := true
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM blog_articles WHERE is_published = \$1`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := NewPostgresArticleRepository(db)
	count, err := repo.Count(context.Background(), &published)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryFindByName(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, description FROM blog_categories WHERE name = \$1`).
		WithArgs("Conseils & Astuces").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).
			AddRow("c1", "Conseils & Astuces", "desc"))

	repo := NewPostgresCategoryRepository(db)
	category, err := repo.FindByName(context.Background(), "Conseils & Astuces")
	require.NoError(t, err)
	assert.Equal(t, "c1", category.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthorFindFirstByRole(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, role FROM users WHERE role = \$1 ORDER BY created_at ASC LIMIT 1`).
		WithArgs("ADMIN").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}).
			AddRow("u1", "Admin", "ADMIN"))

	repo := NewPostgresAuthorRepository(db)
	author, err := repo.FindFirstByRole(context.Background(), "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, "u1", author.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
