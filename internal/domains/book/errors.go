package book

import "bookcatalog/internal/shared/apperror"

var (
	ErrBookNotFound    = apperror.New(apperror.NotFound, "book not found")
	ErrDuplicateTitle  = apperror.New(apperror.Conflict, "book already exists")
	ErrAuthorRef       = apperror.New(apperror.InvalidReference, "referenced author does not exist")
	ErrVersionConflict = apperror.New(apperror.Conflict, "book was modified concurrently, retry with fresh data")
)
