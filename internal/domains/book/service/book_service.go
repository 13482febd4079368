package service

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog/internal/domains/book"
	"bookcatalog/internal/shared/apperror"
	"bookcatalog/internal/shared/query"
)

type bookService struct {
	repo book.Repository
}

func NewBookService(repo book.Repository) book.Service {
	return &bookService{repo: repo}
}

func (s *bookService) Create(ctx context.Context, req book.CreateBookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.Validation, err.Error(), err)
	}

	// Reference and uniqueness checks both run before the insert.
	exists, err := s.repo.AuthorExists(ctx, req.AuthorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, book.ErrAuthorRef
	}

	taken, err := s.repo.ExistsByTitle(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, book.ErrDuplicateTitle
	}

	return s.repo.Create(ctx, req.ToEntity())
}

func (s *bookService) List(ctx context.Context, params map[string]string) ([]book.Book, query.Meta, error) {
	opts := book.ListConfig.Build(params)

	books, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, query.Meta{}, err
	}
	if books == nil {
		books = []book.Book{}
	}
	return books, query.NewMeta(total, opts.Page, opts.Limit), nil
}

func (s *bookService) GetWithAuthor(ctx context.Context, id uuid.UUID) (*book.Detail, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := s.repo.GetAuthorSummary(ctx, b.AuthorID)
	if err != nil {
		return nil, err
	}

	return &book.Detail{Book: *b, Author: summary}, nil
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req book.UpdateBookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.Validation, err.Error(), err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	req.ApplyTo(&updated)

	if updated.AuthorID != existing.AuthorID {
		if err := s.checkAuthorRef(ctx, updated.AuthorID); err != nil {
			return nil, err
		}
	}

	// No semantic change: skip the write, keep the version.
	if updated.EqualContent(existing) {
		return existing, nil
	}

	updated.Version = existing.Version + 1
	return s.repo.Update(ctx, &updated, existing.Version)
}

func (s *bookService) Replace(ctx context.Context, id uuid.UUID, req book.ReplaceBookRequest) (*book.Book, error) {
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

	if replacement.AuthorID != existing.AuthorID {
		if err := s.checkAuthorRef(ctx, replacement.AuthorID); err != nil {
			return nil, err
		}
	}

	if replacement.EqualContent(existing) {
		return existing, nil
	}

	replacement.Version = existing.Version + 1
	return s.repo.Update(ctx, replacement, existing.Version)
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *bookService) Aggregate(ctx context.Context) (*book.Aggregation, error) {
	counts, err := s.repo.CountByGenre(ctx)
	if err != nil {
		return nil, err
	}

	averages, err := s.repo.AvgPriceByGenre(ctx)
	if err != nil {
		return nil, err
	}

	agg := &book.Aggregation{
		CountPerGenre:    counts,
		AvgPricePerGenre: averages,
	}

	authorID, bookCount, err := s.repo.MostProlificAuthorID(ctx)
	if err != nil {
		return nil, err
	}
	if authorID == uuid.Nil {
		return agg, nil
	}

	summary, err := s.repo.GetAuthorSummary(ctx, authorID)
	if err != nil {
		return nil, err
	}
	// An unresolvable top author leaves the field absent.
	if summary != nil {
		agg.MostProlificAuthor = &book.ProlificAuthor{
			Author:    *summary,
			BookCount: bookCount,
		}
	}
	return agg, nil
}

func (s *bookService) checkAuthorRef(ctx context.Context, authorID uuid.UUID) error {
	exists, err := s.repo.AuthorExists(ctx, authorID)
	if err != nil {
		return err
	}
	if !exists {
		return book.ErrAuthorRef
	}
	return nil
}
