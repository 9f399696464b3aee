package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skills-backend/internal/cache"
	"github.com/ignatzorin/skills-backend/internal/catalog"
	"github.com/ignatzorin/skills-backend/internal/logger"
	"github.com/ignatzorin/skills-backend/internal/models"
)

// CategoryLister отдаёт полный список категорий из хранилища.
type CategoryLister interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// CategoryTreeStore строит снимок дерева категорий и кэширует исходный список.
// Кэш не влияет на корректность: при любой ошибке кэша читаем из БД.
type CategoryTreeStore struct {
	categories CategoryLister
	cache      cache.Store
	ttl        time.Duration
}

// NewCategoryTreeStore создаёт хранилище дерева. cache может быть nil, ttl <= 0 отключает кэширование.
func NewCategoryTreeStore(categories CategoryLister, store cache.Store, ttl time.Duration) *CategoryTreeStore {
	return &CategoryTreeStore{categories: categories, cache: store, ttl: ttl}
}

// Load возвращает актуальный снимок дерева.
func (s *CategoryTreeStore) Load(ctx context.Context) (*catalog.Tree, error) {
	if categories, ok := s.fromCache(ctx); ok {
		return catalog.NewTree(categories), nil
	}

	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("category tree: %w", err)
	}

	s.toCache(ctx, categories)
	return catalog.NewTree(categories), nil
}

// Invalidate сбрасывает закэшированный список категорий.
func (s *CategoryTreeStore) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, cache.CategoriesKey())
}

func (s *CategoryTreeStore) fromCache(ctx context.Context) ([]models.Category, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return nil, false
	}

	raw, ok, err := s.cache.Get(ctx, cache.CategoriesKey())
	if err != nil {
		logger.Log.WithError(err).Warn("category tree: cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var categories []models.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		logger.Log.WithError(err).Warn("category tree: cache payload is corrupted")
		return nil, false
	}
	return categories, true
}

func (s *CategoryTreeStore) toCache(ctx context.Context, categories []models.Category) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}

	raw, err := json.Marshal(categories)
	if err != nil {
		logger.Log.WithError(err).Warn("category tree: marshal failed")
		return
	}
	if err := s.cache.Set(ctx, cache.CategoriesKey(), raw, s.ttl); err != nil {
		logger.Log.WithFields(logrus.Fields{"error": err, "count": len(categories)}).
			Warn("category tree: cache write failed")
	}
}
