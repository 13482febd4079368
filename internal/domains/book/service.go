package book

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog/internal/shared/query"
)

// Service is the business logic contract for the book domain.
type Service interface {
	// Create validates the payload, verifies the referenced author
	// exists (ErrAuthorRef) and the title is free (ErrDuplicateTitle),
	// then inserts. The reference check runs before any write.
	Create(ctx context.Context, req CreateBookRequest) (*Book, error)

	// List runs raw query parameters through the query engine and
	// returns one page plus its metadata.
	List(ctx context.Context, params map[string]string) ([]Book, query.Meta, error)

	// GetWithAuthor fetches a book with its author reference resolved.
	// A dangling reference leaves the author summary absent.
	GetWithAuthor(ctx context.Context, id uuid.UUID) (*Detail, error)

	// Update merges the payload over the stored book. A payload that
	// changes nothing returns the stored book untouched and does not
	// advance the version; otherwise the write is a compare-and-swap
	// with version+1. A changed author reference is re-verified.
	Update(ctx context.Context, id uuid.UUID, req UpdateBookRequest) (*Book, error)

	// Replace rewrites the book wholesale under the same
	// change-detection and versioning rules as Update.
	Replace(ctx context.Context, id uuid.UUID, req ReplaceBookRequest) (*Book, error)

	// Delete removes the book unconditionally.
	Delete(ctx context.Context, id uuid.UUID) error

	// Aggregate computes the three collection rollups.
	Aggregate(ctx context.Context) (*Aggregation, error)
}
