package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/helpdesk-labs/incident-service/internal/domain"
	"github.com/helpdesk-labs/incident-service/internal/repository"
	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

const (
	categoriesCacheKey = "ref:categorias"
	statusesCacheKey   = "ref:estados"
)

// ReferenceService serves the category and status reference
// enumerations, caching the full lists in Redis so hot readers (the
// classifier among them) avoid a DB round trip. Writes invalidate the
// cached list.
type ReferenceService struct {
	categories repository.CategoryRepository
	statuses   repository.StatusRepository
	cache      *redis.Client
	ttl        time.Duration
	logger     *zap.Logger
}

// NewReferenceService constructs the service. A nil cache client
// degrades to direct repository reads.
func NewReferenceService(categories repository.CategoryRepository, statuses repository.StatusRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *ReferenceService {
	return &ReferenceService{
		categories: categories,
		statuses:   statuses,
		cache:      cache,
		ttl:        ttl,
		logger:     logger,
	}
}

// ListCategories returns all categories, cache first.
func (s *ReferenceService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var cached []domain.Category
	if s.cacheGet(ctx, categoriesCacheKey, &cached) {
		return cached, nil
	}
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cacheSet(ctx, categoriesCacheKey, cats)
	return cats, nil
}

// GetCategory fetches one category by id.
func (s *ReferenceService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("categoria", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return cat, nil
}

// CreateCategory inserts a category and invalidates the cached list.
func (s *ReferenceService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	cat, err := s.categories.Create(ctx, name)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, categoriesCacheKey)
	return cat, nil
}

// UpdateCategory renames a category and invalidates the cached list.
func (s *ReferenceService) UpdateCategory(ctx context.Context, id int64, name string) error {
	if err := s.categories.Update(ctx, id, name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("categoria", nil)
		}
		return apperrors.MapError(err)
	}
	s.invalidate(ctx, categoriesCacheKey)
	return nil
}

// DeleteCategory removes a category unless incidents still reference it.
func (s *ReferenceService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrReferenced):
			return apperrors.NewConflict("no se puede eliminar la categoría porque está asociada a una incidencia", nil)
		case errors.Is(err, pgx.ErrNoRows):
			return apperrors.NewNotFound("categoria", nil)
		default:
			return apperrors.MapError(err)
		}
	}
	s.invalidate(ctx, categoriesCacheKey)
	return nil
}

// ListStatuses returns all statuses, cache first.
func (s *ReferenceService) ListStatuses(ctx context.Context) ([]domain.Status, error) {
	var cached []domain.Status
	if s.cacheGet(ctx, statusesCacheKey, &cached) {
		return cached, nil
	}
	statuses, err := s.statuses.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cacheSet(ctx, statusesCacheKey, statuses)
	return statuses, nil
}

// GetStatus fetches one status by id.
func (s *ReferenceService) GetStatus(ctx context.Context, id int64) (*domain.Status, error) {
	st, err := s.statuses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("estado", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return st, nil
}

// CreateStatus inserts a status and invalidates the cached list.
func (s *ReferenceService) CreateStatus(ctx context.Context, name string) (*domain.Status, error) {
	st, err := s.statuses.Create(ctx, name)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, statusesCacheKey)
	return st, nil
}

// UpdateStatus renames a status and invalidates the cached list.
func (s *ReferenceService) UpdateStatus(ctx context.Context, id int64, name string) error {
	if err := s.statuses.Update(ctx, id, name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("estado", nil)
		}
		return apperrors.MapError(err)
	}
	s.invalidate(ctx, statusesCacheKey)
	return nil
}

// DeleteStatus removes a status.
func (s *ReferenceService) DeleteStatus(ctx context.Context, id int64) error {
	if err := s.statuses.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("estado", nil)
		}
		return apperrors.MapError(err)
	}
	s.invalidate(ctx, statusesCacheKey)
	return nil
}

func (s *ReferenceService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Debug("reference cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Debug("reference cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *ReferenceService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Debug("reference cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *ReferenceService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		s.logger.Debug("reference cache invalidate failed", zap.String("key", key), zap.Error(err))
	}
}
