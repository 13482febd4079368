package book

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog/internal/shared/query"
)

// Repository is the data access contract for books.
type Repository interface {
	// Create inserts a new book with version 0. Errors:
	// ErrDuplicateTitle on a title collision.
	Create(ctx context.Context, b *Book) (*Book, error)

	// GetByID returns ErrBookNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// List applies the normalized filter, sort and page window and
	// returns the page plus the total match count. Ordering is stable:
	// equal sort keys tie-break ascending by id.
	List(ctx context.Context, opts query.Options) ([]Book, int64, error)

	// Update persists b as a single compare-and-swap on the stored
	// version. Errors: ErrBookNotFound when the row is gone,
	// ErrVersionConflict when the stored version moved past
	// currentVersion, ErrDuplicateTitle on a title collision.
	Update(ctx context.Context, b *Book, currentVersion int) (*Book, error)

	// Delete removes a book by id. Errors: ErrBookNotFound.
	Delete(ctx context.Context, id uuid.UUID) error

	// AuthorExists checks the referenced author without fetching it.
	AuthorExists(ctx context.Context, authorID uuid.UUID) (bool, error)

	// ExistsByTitle checks title uniqueness ahead of an insert.
	ExistsByTitle(ctx context.Context, title string) (bool, error)

	// GetAuthorSummary resolves the author reference for the detail
	// view. A missing author returns (nil, nil), not an error.
	GetAuthorSummary(ctx context.Context, authorID uuid.UUID) (*AuthorSummary, error)

	// CountByGenre groups the whole collection by genre, counted,
	// ordered by count descending.
	CountByGenre(ctx context.Context) ([]GenreCount, error)

	// AvgPriceByGenre groups the whole collection by genre with the
	// arithmetic mean price, ordered by mean descending.
	AvgPriceByGenre(ctx context.Context) ([]GenreAvgPrice, error)

	// MostProlificAuthorID returns the author id with the most books
	// and that count. An empty collection returns (uuid.Nil, 0, nil).
	MostProlificAuthorID(ctx context.Context) (uuid.UUID, int64, error)
}
