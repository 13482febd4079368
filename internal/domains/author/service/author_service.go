package service

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog/internal/domains/author"
	"bookcatalog/internal/shared/apperror"
	"bookcatalog/internal/shared/query"
)

type authorService struct {
	repo author.Repository
}

func NewAuthorService(repo author.Repository) author.Service {
	return &authorService{repo: repo}
}

func (s *authorService) Create(ctx context.Context, req author.CreateAuthorRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.Validation, err.Error(), err)
	}
	return s.repo.Create(ctx, req.ToEntity())
}

func (s *authorService) List(ctx context.Context, params map[string]string) ([]author.Author, query.Meta, error) {
	opts := author.ListConfig.Build(params)

	authors, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, query.Meta{}, err
	}
	if authors == nil {
		authors = []author.Author{}
	}
	return authors, query.NewMeta(total, opts.Page, opts.Limit), nil
}

func (s *authorService) Search(ctx context.Context, q string) ([]author.Author, error) {
	authors, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	if authors == nil {
		authors = []author.Author{}
	}
	return authors, nil
}

func (s *authorService) GetWithBooks(ctx context.Context, id uuid.UUID) (*author.Detail, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	books := []author.BookSummary{}
	if len(a.Books) > 0 {
		books, err = s.repo.GetBookSummaries(ctx, a.Books)
		if err != nil {
			return nil, err
		}
	}

	return &author.Detail{Author: *a, ResolvedBooks: books}, nil
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req author.UpdateAuthorRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.Validation, err.Error(), err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	req.ApplyTo(&updated)

	// No semantic change: skip the write, keep the version.
	if updated.EqualContent(existing) {
		return existing, nil
	}

	updated.Version = existing.Version + 1
	return s.repo.Update(ctx, &updated, existing.Version)
}

func (s *authorService) Replace(ctx context.Context, id uuid.UUID, req author.ReplaceAuthorRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.Validation, err.Error(), err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	replacement := req.ToEntity()
	replacement.ID = existing.ID
	replacement.CreatedAt = existing.CreatedAt

	if replacement.EqualContent(existing) {
		return existing, nil
	}

	replacement.Version = existing.Version + 1
	return s.repo.Update(ctx, replacement, existing.Version)
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
