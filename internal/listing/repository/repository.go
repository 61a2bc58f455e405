package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/romariotrain/moderation-platform/internal/listing/models"
)

// Tx is the minimal transaction handle the service layer needs. Concrete
// repositories pair only with transactions they created themselves.
type Tx interface {
	Commit() error
	Rollback() error
}

type ListingRepository interface {
	BeginTx(ctx context.Context) (Tx, error)

	// CreateTx persists a new listing. Implementations must refuse any
	// status other than pending regardless of what the caller supplied:
	// the intake path never submits another value, and the store-side
	// policy is not trusted to be the only guard.
	CreateTx(ctx context.Context, tx Tx, l *models.Listing) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)

	// ListByStatus returns listings in one moderation state, newest first.
	ListByStatus(ctx context.Context, status models.Status) ([]models.Listing, error)

	// SetModerationTx writes status and rejection reason together and
	// returns the row as stored. Unconditional: last write wins.
	SetModerationTx(ctx context.Context, tx Tx, id uuid.UUID, status models.Status, reason *string) (*models.Listing, error)

	// AddGenres attaches genre tags to a listing. Duplicate pairs are
	// ignored, not errors.
	AddGenres(ctx context.Context, listingID uuid.UUID, genreIDs []int64) error

	// ReplaceGenres swaps the whole association set; tags are never
	// updated in place.
	ReplaceGenres(ctx context.Context, listingID uuid.UUID, genreIDs []int64) error

	// SetGenreLabel rewrites the legacy free-text genre column.
	SetGenreLabel(ctx context.Context, listingID uuid.UUID, label *string) error

	GenreIDs(ctx context.Context, listingID uuid.UUID) ([]int64, error)
}

type TaxonomyRepository interface {
	// Categories returns all genre categories in display order.
	Categories(ctx context.Context) ([]models.GenreCategory, error)

	// ActiveGenres returns genres with is_active=true in display order.
	ActiveGenres(ctx context.Context) ([]models.Genre, error)
}

type OutboxRepository interface {
	Add(ctx context.Context, tx Tx, event models.DomainEvent) error
}
