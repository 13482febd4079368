package author

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog/internal/shared/query"
)

// Service is the business logic contract for the author domain.
type Service interface {
	// Create validates and inserts a new author.
	Create(ctx context.Context, req CreateAuthorRequest) (*Author, error)

	// List runs raw query parameters through the query engine and
	// returns one page plus its metadata.
	List(ctx context.Context, params map[string]string) ([]Author, query.Meta, error)

	// Search is the free-text path, bypassing pagination.
	Search(ctx context.Context, q string) ([]Author, error)

	// GetWithBooks fetches an author with resolved book summaries.
	GetWithBooks(ctx context.Context, id uuid.UUID) (*Detail, error)

	// Update merges the payload over the stored author. A payload that
	// changes nothing returns the stored author untouched and does not
	// advance the version; otherwise the write is a compare-and-swap
	// with version+1.
	Update(ctx context.Context, id uuid.UUID, req UpdateAuthorRequest) (*Author, error)

	// Replace rewrites the author wholesale under the same
	// change-detection and versioning rules as Update.
	Replace(ctx context.Context, id uuid.UUID, req ReplaceAuthorRequest) (*Author, error)

	// Delete removes the author unconditionally.
	Delete(ctx context.Context, id uuid.UUID) error
}
