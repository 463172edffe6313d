package ports

import (
	"context"
	"time"

	"github.com/ibovespa/catalog-api/internal/core/domain"
)

// RegistrationInput carries all data needed to create a registration.
// Name, Category, and Source are normalized (trimmed, lowercased) by the
// service before any lookup.
type RegistrationInput struct {
	Name        string
	Category    string
	ReleaseDate *time.Time
	Status      int
	Data        map[string]any
	URL         string
	Source      string
}

// RegistrationRepository defines persistence operations for registrations.
type RegistrationRepository interface {
	List(ctx context.Context, limit int) ([]*domain.Registration, error)
	// ListAll returns every registration; used to build training datasets.
	ListAll(ctx context.Context) ([]*domain.Registration, error)
	// FindByName returns domain.ErrRegistrationNotFound when nothing matches.
	FindByName(ctx context.Context, name string) (*domain.Registration, error)
	Create(ctx context.Context, r *domain.Registration) (*domain.Registration, error)
}

// RegistrationService defines use-case operations for registrations.
type RegistrationService interface {
	ListRegistrations(ctx context.Context, limit int) ([]*domain.Registration, error)
	// CreateRegistration fails with domain.ErrRegistrationExists on duplicate
	// names and auto-creates the category when it does not exist yet.
	CreateRegistration(ctx context.Context, input RegistrationInput) (*domain.Registration, error)
}

// RegistrationIngestor processes a single registration coming in through the
// asynchronous batch path. Duplicates are skipped, not errors.
type RegistrationIngestor interface {
	Ingest(ctx context.Context, input RegistrationInput) error
}
