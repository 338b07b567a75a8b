// Package handler exposes the admin account-management endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/8syncdev/elearn-auth/internal/platform/respond"
	"github.com/8syncdev/elearn-auth/internal/user/domain"
	"github.com/8syncdev/elearn-auth/internal/user/service"
)

type Handler struct {
	users  *service.Service
	logger *zap.Logger
}

// New returns a user Handler.
func New(users *service.Service, logger *zap.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

// userResponse is the wire shape of an account. The password hash is
// never serialized.
type userResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	FullName    string    `json:"fullName,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	IsActive    bool      `json:"isActive"`
	IsDeleted   bool      `json:"isDeleted"`
	IsBlocked   bool      `json:"isBlocked"`
	IsSuspended bool      `json:"isSuspended"`
}

func toResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Phone:       u.Phone,
		Email:       u.Email,
		FullName:    u.FullName,
		Avatar:      u.Avatar,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		IsActive:    u.IsActive,
		IsDeleted:   u.IsDeleted,
		IsBlocked:   u.IsBlocked,
		IsSuspended: u.IsSuspended,
	}
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

type updateUserRequest struct {
	Username    *string `json:"username"`
	Password    *string `json:"password"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	FullName    *string `json:"fullName"`
	Avatar      *string `json:"avatar"`
	IsActive    *bool   `json:"isActive"`
	IsDeleted   *bool   `json:"isDeleted"`
	IsBlocked   *bool   `json:"isBlocked"`
	IsSuspended *bool   `json:"isSuspended"`
}

type verifyPasswordRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Count handles GET /users/count.
func (h *Handler) Count(c *gin.Context) {
	n, err := h.users.Count(c.Request.Context())
	if err != nil {
		h.fail(c, "count users", err)
		return
	}
	respond.OK(c, gin.H{"count": n})
}

// List handles GET /users?page=&size=&search=.
func (h *Handler) List(c *gin.Context) {
	page := queryInt32(c, "page", 1)
	size := queryInt32(c, "size", 10)
	users, total, err := h.users.List(c.Request.Context(), page, size, c.Query("search"))
	if err != nil {
		h.fail(c, "list users", err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toResponse(u))
	}
	respond.Page(c, out, respond.NewPaginated(total, size, page))
}

// Get handles GET /users/:id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respond.Error(c, http.StatusNotFound, "user not found")
			return
		}
		h.fail(c, "get user", err)
		return
	}
	respond.OK(c, toResponse(u))
}

// Create handles POST /users.
func (h *Handler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "username and password are required")
		return
	}
	u, err := h.users.Create(c.Request.Context(), service.CreateInput{
		Username: req.Username,
		Password: req.Password,
		Phone:    req.Phone,
		Email:    req.Email,
		FullName: req.FullName,
		Avatar:   req.Avatar,
	})
	if err != nil {
		h.mapWriteError(c, "create user", err)
		return
	}
	respond.Created(c, toResponse(u))
}

// Update handles PUT /users/:id.
func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.users.Update(c.Request.Context(), id, service.UpdateInput{
		Username:    req.Username,
		Password:    req.Password,
		Phone:       req.Phone,
		Email:       req.Email,
		FullName:    req.FullName,
		Avatar:      req.Avatar,
		IsActive:    req.IsActive,
		IsDeleted:   req.IsDeleted,
		IsBlocked:   req.IsBlocked,
		IsSuspended: req.IsSuspended,
	})
	if err != nil {
		h.mapWriteError(c, "update user", err)
		return
	}
	respond.OK(c, toResponse(u))
}

// Delete handles DELETE /users/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respond.Error(c, http.StatusNotFound, "user not found")
			return
		}
		h.fail(c, "delete user", err)
		return
	}
	respond.Message(c, "user deleted")
}

// VerifyPassword handles POST /users/verify-password. The result reports
// whether the credentials match; a missing account reports false.
func (h *Handler) VerifyPassword(c *gin.Context) {
	var req verifyPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "username and password are required")
		return
	}
	ok, err := h.users.VerifyPassword(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(c, "verify password", err)
		return
	}
	respond.OK(c, gin.H{"valid": ok})
}

func (h *Handler) mapWriteError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		respond.Error(c, http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrUsernameTaken):
		respond.Error(c, http.StatusConflict, "username already exists")
	case errors.Is(err, service.ErrWeakPassword), errors.Is(err, service.ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, err.Error())
	default:
		h.fail(c, op, err)
	}
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	h.logger.Error(op, zap.Error(err))
	respond.Error(c, http.StatusInternalServerError, "internal server error")
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		respond.Error(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func queryInt32(c *gin.Context, name string, def int32) int32 {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return def
	}
	return int32(n)
}
