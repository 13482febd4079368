package book

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookcatalog/internal/shared/query"
)

// ListConfig is the query-engine policy for book listings. Genre
// matches exactly, availability parses "true"/"false" literally, and
// price takes independent optional minPrice/maxPrice bounds.
var ListConfig = query.Config{
	Fields: []query.Field{
		{Param: "genre", Kind: query.Exact},
		{Param: "available", Kind: query.Bool},
	},
	Ranges: []query.RangeField{
		{Name: "price", MinParam: "minPrice", MaxParam: "maxPrice"},
	},
	SortFields:   []string{"title", "price", "publishedDate"},
	DefaultSort:  "title",
	DefaultOrder: "asc",
	DefaultLimit: 5,
}

// CreateBookRequest - POST /books
type CreateBookRequest struct {
	Title         string          `json:"title" binding:"required"`
	Genre         string          `json:"genre" binding:"required"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	PublishedDate time.Time       `json:"published_date" binding:"required"`
	Available     *bool           `json:"available,omitempty"`
	AuthorID      uuid.UUID       `json:"author" binding:"required"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(3, 255).Error("title must be at least 3 characters"),
		),
		validation.Field(&r.Genre,
			validation.Required.Error("genre is required"),
			validation.Length(3, 100).Error("genre must be at least 3 characters"),
		),
		validation.Field(&r.Price, validation.By(positivePrice)),
		validation.Field(&r.PublishedDate, validation.Required.Error("published date is required")),
		validation.Field(&r.AuthorID, validation.By(requiredID)),
	)
}

func (r CreateBookRequest) ToEntity() *Book {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return &Book{
		ID:            uuid.New(),
		Title:         r.Title,
		Genre:         r.Genre,
		Price:         r.Price,
		PublishedDate: r.PublishedDate,
		Available:     available,
		AuthorID:      r.AuthorID,
	}
}

// UpdateBookRequest - PATCH /books/:id, all fields optional.
type UpdateBookRequest struct {
	Title         *string          `json:"title,omitempty"`
	Genre         *string          `json:"genre,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	PublishedDate *time.Time       `json:"published_date,omitempty"`
	Available     *bool            `json:"available,omitempty"`
	AuthorID      *uuid.UUID       `json:"author,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Length(3, 255).Error("title must be at least 3 characters")),
		),
		validation.Field(&r.Genre,
			validation.When(r.Genre != nil, validation.Length(3, 100).Error("genre must be at least 3 characters")),
		),
		validation.Field(&r.Price,
			validation.When(r.Price != nil, validation.By(positivePrice)),
		),
	)
}

// ApplyTo merges the non-nil fields over an existing book.
func (r UpdateBookRequest) ApplyTo(b *Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.Genre != nil {
		b.Genre = *r.Genre
	}
	if r.Price != nil {
		b.Price = *r.Price
	}
	if r.PublishedDate != nil {
		b.PublishedDate = *r.PublishedDate
	}
	if r.Available != nil {
		b.Available = *r.Available
	}
	if r.AuthorID != nil {
		b.AuthorID = *r.AuthorID
	}
}

// ReplaceBookRequest - PUT /books/:id, full payload, same rules as
// creation.
type ReplaceBookRequest = CreateBookRequest

func positivePrice(value interface{}) error {
	price, ok := value.(decimal.Decimal)
	if !ok || !price.IsPositive() {
		return validation.NewError("validation_price", "price must be greater than zero")
	}
	return nil
}

func requiredID(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return validation.NewError("validation_author", "author is required")
	}
	return nil
}
