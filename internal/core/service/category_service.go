package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ibovespa/catalog-api/internal/core/domain"
	"github.com/ibovespa/catalog-api/internal/core/ports"
)

const defaultCategoryLimit = 100

type CategoryService struct {
	repo ports.CategoryRepository
	log  zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

func (s *CategoryService) ListCategories(ctx context.Context, limit int) ([]*domain.Category, error) {
	if limit <= 0 {
		limit = defaultCategoryLimit
	}
	return s.repo.List(ctx, limit)
}

func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = normalizeName(name)

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, domain.ErrCategoryExists
	} else if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Category{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("category", created.Name).Msg("category created")
	return created, nil
}

// normalizeName trims and lowercases lookup keys the way the ingestion
// sources expect them.
func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
