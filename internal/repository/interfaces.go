package repository

import (
	"context"
	"time"

	"votepulse/internal/domain"
)

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	// FindByLogin retrieves an account by its exact login, nil when absent
	FindByLogin(ctx context.Context, login string) (*domain.Account, error)

	// FindByID retrieves an account by its hex identifier, nil when absent
	FindByID(ctx context.Context, id string) (*domain.Account, error)

	// Insert creates a new account and returns its identifier
	Insert(ctx context.Context, account *domain.Account) (string, error)

	// Count returns the total number of accounts
	Count(ctx context.Context) (int64, error)
}

// VisitRepository defines the interface for analytics visit records
type VisitRepository interface {
	// FindSince retrieves a visit for the origin recorded at or after the
	// given instant, nil when absent
	FindSince(ctx context.Context, origin string, since time.Time) (*domain.Visit, error)

	// Insert creates a new visit record
	Insert(ctx context.Context, visit *domain.Visit) error

	// Count returns the total number of recorded visits
	Count(ctx context.Context) (int64, error)
}

// TallyRepository defines the interface for the single engagement document
type TallyRepository interface {
	// Get retrieves the tally document, nil when none has been persisted yet
	Get(ctx context.Context) (*domain.TallyDocument, error)

	// Upsert writes the full tally document, creating it when absent
	Upsert(ctx context.Context, doc *domain.TallyDocument) error
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Account AccountRepository
	Visit   VisitRepository
	Tally   TallyRepository
}
