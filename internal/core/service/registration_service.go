package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ibovespa/catalog-api/internal/api/metrics"
	"github.com/ibovespa/catalog-api/internal/core/domain"
	"github.com/ibovespa/catalog-api/internal/core/ports"
)

const defaultRegistrationLimit = 3

// IngestDedup abstracts the idempotency store (Redis) for the batch path.
type IngestDedup interface {
	IsDuplicate(ctx context.Context, name, source string) (bool, error)
	Mark(ctx context.Context, name, source string) error
}

type RegistrationService struct {
	repo       ports.RegistrationRepository
	categories ports.CategoryRepository
	dedup      IngestDedup
	log        zerolog.Logger
}

func NewRegistrationService(
	repo ports.RegistrationRepository,
	categories ports.CategoryRepository,
	dedup IngestDedup,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{repo: repo, categories: categories, dedup: dedup, log: log}
}

func (s *RegistrationService) ListRegistrations(ctx context.Context, limit int) ([]*domain.Registration, error) {
	if limit <= 0 {
		limit = defaultRegistrationLimit
	}
	return s.repo.List(ctx, limit)
}

// CreateRegistration inserts a new record. Duplicate names are rejected;
// an unknown category is created on the fly.
func (s *RegistrationService) CreateRegistration(ctx context.Context, input ports.RegistrationInput) (*domain.Registration, error) {
	name := normalizeName(input.Name)
	category := normalizeName(input.Category)

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		s.log.Info().Str("name", name).Msg("registration already exists")
		return nil, domain.ErrRegistrationExists
	} else if !errors.Is(err, domain.ErrRegistrationNotFound) {
		return nil, err
	}

	if err := s.ensureCategory(ctx, category); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Registration{
		ID:          uuid.NewString(),
		Name:        name,
		Category:    category,
		ReleaseDate: input.ReleaseDate,
		Status:      input.Status,
		Data:        input.Data,
		URL:         input.URL,
		Source:      normalizeName(input.Source),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsCreatedTotal.WithLabelValues(created.Source).Inc()
	s.log.Info().Str("name", created.Name).Str("category", created.Category).Msg("registration created")
	return created, nil
}

// Ingest processes one record from the asynchronous batch path. Records
// already seen (Redis dedup) or already stored are skipped silently.
func (s *RegistrationService) Ingest(ctx context.Context, input ports.RegistrationInput) error {
	name := normalizeName(input.Name)
	source := normalizeName(input.Source)

	isDup, err := s.dedup.IsDuplicate(ctx, name, source)
	if err != nil {
		s.log.Warn().Err(err).Str("name", name).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.IngestDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("name", name).Str("source", source).Msg("duplicate ingest skipped")
		return nil
	}
	metrics.IngestDedupTotal.WithLabelValues("miss").Inc()

	if _, err := s.CreateRegistration(ctx, input); err != nil {
		if errors.Is(err, domain.ErrRegistrationExists) {
			return nil
		}
		return err
	}

	if markErr := s.dedup.Mark(ctx, name, source); markErr != nil {
		s.log.Warn().Err(markErr).Str("name", name).Msg("failed to set dedup key")
	}
	return nil
}

func (s *RegistrationService) ensureCategory(ctx context.Context, name string) error {
	_, err := s.categories.FindByName(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		return err
	}

	now := time.Now().UTC()
	if _, err := s.categories.Create(ctx, &domain.Category{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		// Lost a race with a concurrent create; the category exists now.
		if errors.Is(err, domain.ErrCategoryExists) {
			return nil
		}
		return err
	}

	s.log.Info().Str("category", name).Msg("category auto-created")
	return nil
}
