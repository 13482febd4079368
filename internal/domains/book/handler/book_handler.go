package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookcatalog/internal/domains/book"
	"bookcatalog/internal/shared/apperror"
	"bookcatalog/internal/shared/response"
)

// BookHandler is the thin HTTP layer over book.Service.
type BookHandler struct {
	service book.Service
}

func NewBookHandler(service book.Service) *BookHandler {
	return &BookHandler{service: service}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.FromError(c, apperror.New(apperror.Validation, "invalid ID format"))
		return uuid.Nil, false
	}
	return id, true
}

func queryParams(c *gin.Context) map[string]string {
	params := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// Create handles POST /books.
func (h *BookHandler) Create(c *gin.Context) {
	var req book.CreateBookRequest
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

// List handles GET /books.
func (h *BookHandler) List(c *gin.Context) {
	books, meta, err := h.service.List(c.Request.Context(), queryParams(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, books, meta)
}

// Aggregate handles GET /books/aggregation.
func (h *BookHandler) Aggregate(c *gin.Context) {
	agg, err := h.service.Aggregate(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, agg)
}

// GetByID handles GET /books/:id, resolving the author reference.
func (h *BookHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetWithAuthor(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// Update handles PATCH /books/:id.
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req book.UpdateBookRequest
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

// Replace handles PUT /books/:id.
func (h *BookHandler) Replace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req book.ReplaceBookRequest
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

// Delete handles DELETE /books/:id.
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "book deleted successfully"})
}
