package book

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Book is a catalogued title. Title is unique across the collection,
// AuthorID must reference an existing author at write time, and
// Version advances only when the change detector finds a semantic
// difference.
type Book struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Title         string          `json:"title" db:"title"`
	Genre         string          `json:"genre" db:"genre"`
	Price         decimal.Decimal `json:"price" db:"price"`
	PublishedDate time.Time       `json:"published_date" db:"published_date"`
	Available     bool            `json:"available" db:"available"`
	AuthorID      uuid.UUID       `json:"author" db:"author_id"`
	Version       int             `json:"version" db:"version"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// AuthorSummary is the shape of the author reference resolved on the
// book detail view.
type AuthorSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Nationality string    `json:"nationality"`
}

// Detail is a book with its author reference resolved.
type Detail struct {
	Book
	Author *AuthorSummary `json:"author_detail,omitempty"`
}

// GenreCount is one row of the count-per-genre rollup.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int64  `json:"count"`
}

// GenreAvgPrice is one row of the average-price-per-genre rollup.
type GenreAvgPrice struct {
	Genre    string          `json:"genre"`
	AvgPrice decimal.Decimal `json:"avg_price"`
}

// ProlificAuthor is the top-1 author-by-book-count rollup.
type ProlificAuthor struct {
	Author    AuthorSummary `json:"author"`
	BookCount int64         `json:"book_count"`
}

// Aggregation bundles the three independent rollups over the whole
// collection. MostProlificAuthor is omitted when the collection is
// empty or the top author no longer resolves.
type Aggregation struct {
	CountPerGenre      []GenreCount    `json:"count_per_genre"`
	AvgPricePerGenre   []GenreAvgPrice `json:"avg_price_per_genre"`
	MostProlificAuthor *ProlificAuthor `json:"most_prolific_author,omitempty"`
}
