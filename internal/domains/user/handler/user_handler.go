package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookcatalog/internal/domains/user"
	"bookcatalog/internal/shared/apperror"
	"bookcatalog/internal/shared/response"
)

// UserHandler is the thin HTTP layer over user.Service.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.FromError(c, apperror.New(apperror.Validation, "invalid ID format"))
		return uuid.Nil, false
	}
	return id, true
}

// Register handles POST /users/register (admin only).
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Wrap(apperror.Validation, "invalid request body", err))
		return
	}

	created, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Login handles POST /users/login (public).
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Wrap(apperror.Validation, "invalid request body", err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Create handles POST /users (admin only).
func (h *UserHandler) Create(c *gin.Context) {
	var req user.CreateUserRequest
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

// GetAll handles GET /users.
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// GetByID handles GET /users/:id.
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// Update handles PATCH /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req user.UpdateUserRequest
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

// Replace handles PUT /users/:id.
func (h *UserHandler) Replace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req user.ReplaceUserRequest
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

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "user deleted successfully"})
}
