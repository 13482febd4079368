package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookcatalog/internal/domains/author"
	"bookcatalog/internal/shared/apperror"
	"bookcatalog/internal/shared/response"
)

// AuthorHandler is the thin HTTP layer over author.Service.
type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(service author.Service) *AuthorHandler {
	return &AuthorHandler{service: service}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.FromError(c, apperror.New(apperror.Validation, "invalid ID format"))
		return uuid.Nil, false
	}
	return id, true
}

// queryParams flattens the URL query down to single values. Repeated
// parameters keep their first occurrence.
func queryParams(c *gin.Context) map[string]string {
	params := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// Create handles POST /authors.
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Wrap(apperror.Validation, "invalid request body", err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// List handles GET /authors. A non-empty "query" parameter switches to
// free-text search and skips filtering and pagination entirely.
func (h *AuthorHandler) List(c *gin.Context) {
	if q := c.Query("query"); q != "" {
		authors, err := h.service.Search(c.Request.Context(), q)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, authors)
		return
	}

	authors, meta, err := h.service.List(c.Request.Context(), queryParams(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, authors, meta)
}

// GetByID handles GET /authors/:id, resolving referenced books.
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetWithBooks(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// Update handles PATCH /authors/:id.
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req author.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Wrap(apperror.Validation, "invalid request body", err))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// Replace handles PUT /authors/:id.
func (h *AuthorHandler) Replace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req author.ReplaceAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Wrap(apperror.Validation, "invalid request body", err))
		return
	}

	replaced, err := h.service.Replace(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, replaced)
}

// Delete handles DELETE /authors/:id.
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "author deleted successfully"})
}
