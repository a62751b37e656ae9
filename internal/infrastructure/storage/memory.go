package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"BlogForge/internal/domain"
	"BlogForge/internal/ports"
)

// MemoryStore is an in-process implementation of the article, category and
// author repositories. It backs tests and DSN-less runs; production wires
// the Postgres repositories instead. The store itself is the article
// repository; Categories() and Authors() expose the other facets over the
// same data.
type MemoryStore struct {
	mu         sync.RWMutex
	articles   map[string]domain.Article // keyed by id
	categories map[string]domain.Category
	authors    []domain.Author
}

var _ ports.ArticleRepository = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		articles:   map[string]domain.Article{},
		categories: map[string]domain.Category{},
	}
}

// AddAuthor seeds a user row.
func (s *MemoryStore) AddAuthor(author domain.Author) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authors = append(s.authors, author)
}

// FindBySlug implements ports.ArticleRepository.
func (s *MemoryStore) FindBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, article := range s.articles {
		if article.Slug == slug {
			copied := article
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

// FindByID implements ports.ArticleRepository.
func (s *MemoryStore) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	article, ok := s.articles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := article
	return &copied, nil
}

// Create implements ports.ArticleRepository.
func (s *MemoryStore) Create(ctx context.Context, article *domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[article.ID] = *article
	return nil
}

// MarkPublished implements ports.ArticleRepository.
func (s *MemoryStore) MarkPublished(ctx context.Context, id string, at time.Time) (*domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	article, ok := s.articles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	article.IsPublished = true
	article.PublishedAt = &at
	s.articles[id] = article
	copied := article
	return &copied, nil
}

// ListPending implements ports.ArticleRepository.
func (s *MemoryStore) ListPending(ctx context.Context) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var pending []domain.Article
	for _, article := range s.articles {
		if !article.IsPublished {
			pending = append(pending, article)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})
	return pending, nil
}

// Count implements ports.ArticleRepository.
func (s *MemoryStore) Count(ctx context.Context, published *bool) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if published == nil {
		return len(s.articles), nil
	}
	count := 0
	for _, article := range s.articles {
		if article.IsPublished == *published {
			count++
		}
	}
	return count, nil
}

// Categories returns the category-repository facet.
func (s *MemoryStore) Categories() ports.CategoryRepository {
	return memoryCategories{store: s}
}

// Authors returns the author-repository facet.
func (s *MemoryStore) Authors() ports.AuthorRepository {
	return memoryAuthors{store: s}
}

type memoryCategories struct {
	store *MemoryStore
}

var _ ports.CategoryRepository = memoryCategories{}

func (c memoryCategories) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	for _, category := range c.store.categories {
		if category.Name == name {
			copied := category
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (c memoryCategories) Create(ctx context.Context, category *domain.Category) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.store.categories[category.ID] = *category
	return nil
}

type memoryAuthors struct {
	store *MemoryStore
}

var _ ports.AuthorRepository = memoryAuthors{}

func (a memoryAuthors) FindFirstByRole(ctx context.Context, role string) (*domain.Author, error) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	for _, author := range a.store.authors {
		if author.Role == role {
			copied := author
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}
