package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookcatalog/internal/shared/query"
)

// ListConfig is the query-engine policy for author listings: which
// parameters filter, which fields sort, and what every invalid value
// falls back to.
var ListConfig = query.Config{
	Fields: []query.Field{
		{Param: "name", Kind: query.Text},
		{Param: "nationality", Kind: query.Exact},
	},
	SortFields:   []string{"name", "age", "nationality", "createdAt"},
	DefaultSort:  "createdAt",
	DefaultOrder: "desc",
	DefaultLimit: 10,
}

// CreateAuthorRequest - POST /authors
type CreateAuthorRequest struct {
	Name        string      `json:"name" binding:"required"`
	Age         int         `json:"age"`
	Nationality string      `json:"nationality" binding:"required"`
	Books       []uuid.UUID `json:"books,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(3, 255).Error("name must be at least 3 characters"),
		),
		validation.Field(&r.Age, validation.Min(0).Error("age must not be negative")),
		validation.Field(&r.Nationality, validation.Required.Error("nationality is required")),
	)
}

func (r CreateAuthorRequest) ToEntity() *Author {
	books := r.Books
	if books == nil {
		books = []uuid.UUID{}
	}
	return &Author{
		ID:          uuid.New(),
		Name:        r.Name,
		Age:         r.Age,
		Nationality: r.Nationality,
		Books:       books,
	}
}

// UpdateAuthorRequest - PATCH /authors/:id, all fields optional.
type UpdateAuthorRequest struct {
	Name        *string      `json:"name,omitempty"`
	Age         *int         `json:"age,omitempty"`
	Nationality *string      `json:"nationality,omitempty"`
	Books       *[]uuid.UUID `json:"books,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil, validation.Length(3, 255).Error("name must be at least 3 characters")),
		),
		validation.Field(&r.Age,
			validation.When(r.Age != nil, validation.Min(0).Error("age must not be negative")),
		),
	)
}

// ApplyTo merges the non-nil fields over an existing author.
func (r UpdateAuthorRequest) ApplyTo(a *Author) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Age != nil {
		a.Age = *r.Age
	}
	if r.Nationality != nil {
		a.Nationality = *r.Nationality
	}
	if r.Books != nil {
		a.Books = *r.Books
	}
}

// ReplaceAuthorRequest - PUT /authors/:id, full payload, same rules as
// creation.
type ReplaceAuthorRequest = CreateAuthorRequest
