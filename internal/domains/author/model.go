package author

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Author is a catalogued writer. Books holds the ids of this author's
// books; the authoritative edge is Book.AuthorID, this list is a
// maintained reference set. Version advances only when the change
// detector finds a semantic difference.
type Author struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Age         int         `json:"age" db:"age"`
	Nationality string      `json:"nationality" db:"nationality"`
	Books       []uuid.UUID `json:"books" db:"book_ids"`
	Version     int         `json:"version" db:"version"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// BookSummary is the shape of a book reference resolved on the author
// detail view.
type BookSummary struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Genre         string          `json:"genre"`
	Price         decimal.Decimal `json:"price"`
	PublishedDate time.Time       `json:"published_date"`
}

// Detail is an author with its book references resolved.
type Detail struct {
	Author
	ResolvedBooks []BookSummary `json:"resolved_books"`
}
