package author

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog/internal/shared/query"
)

// Repository is the data access contract for authors.
type Repository interface {
	// Create inserts a new author with version 0.
	Create(ctx context.Context, a *Author) (*Author, error)

	// GetByID returns ErrAuthorNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// List applies the normalized filter, sort and page window and
	// returns the page plus the total match count. Ordering is stable:
	// equal sort keys tie-break ascending by id.
	List(ctx context.Context, opts query.Options) ([]Author, int64, error)

	// Search is the free-text path: case-insensitive substring match
	// over name and nationality, no pagination.
	Search(ctx context.Context, q string) ([]Author, error)

	// Update persists a as a single compare-and-swap on the stored
	// version. Errors: ErrAuthorNotFound when the row is gone,
	// ErrVersionConflict when the stored version moved past
	// currentVersion.
	Update(ctx context.Context, a *Author, currentVersion int) (*Author, error)

	// Delete removes an author by id. Errors: ErrAuthorNotFound.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByID checks presence without fetching the row.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// GetBookSummaries resolves book ids to their summary projection.
	// Ids that no longer resolve are silently skipped.
	GetBookSummaries(ctx context.Context, ids []uuid.UUID) ([]BookSummary, error)
}
