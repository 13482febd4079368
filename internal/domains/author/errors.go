package author

import "bookcatalog/internal/shared/apperror"

var (
	ErrAuthorNotFound  = apperror.New(apperror.NotFound, "author not found")
	ErrVersionConflict = apperror.New(apperror.Conflict, "author was modified concurrently, retry with fresh data")
)
