// Package handler exposes the admin role and user-role endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/8syncdev/elearn-auth/internal/platform/respond"
	"github.com/8syncdev/elearn-auth/internal/role/domain"
	"github.com/8syncdev/elearn-auth/internal/role/service"
)

type Handler struct {
	roles  *service.Service
	logger *zap.Logger
}

// New returns a role Handler.
func New(roles *service.Service, logger *zap.Logger) *Handler {
	return &Handler{roles: roles, logger: logger}
}

type roleResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type linkResponse struct {
	UserID int64 `json:"userId"`
	RoleID int64 `json:"roleId"`
}

type roleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type assignRequest struct {
	UserID int64 `json:"userId" binding:"required"`
	RoleID int64 `json:"roleId" binding:"required"`
}

type roleNamesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}

func toResponse(r *domain.Role) roleResponse {
	return roleResponse{ID: r.ID, Name: r.Name, Description: r.Description}
}

// Count handles GET /roles/count.
func (h *Handler) Count(c *gin.Context) {
	n, err := h.roles.Count(c.Request.Context())
	if err != nil {
		h.fail(c, "count roles", err)
		return
	}
	respond.OK(c, gin.H{"count": n})
}

// List handles GET /roles?page=&size=.
func (h *Handler) List(c *gin.Context) {
	page := queryInt32(c, "page", 1)
	size := queryInt32(c, "size", 10)
	roles, total, err := h.roles.List(c.Request.Context(), page, size)
	if err != nil {
		h.fail(c, "list roles", err)
		return
	}
	out := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toResponse(r))
	}
	respond.Page(c, out, respond.NewPaginated(total, size, page))
}

// Get handles GET /roles/:id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	role, err := h.roles.Get(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, "get role", err)
		return
	}
	respond.OK(c, toResponse(role))
}

// Create handles POST /roles.
func (h *Handler) Create(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "name is required")
		return
	}
	role, err := h.roles.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.mapError(c, "create role", err)
		return
	}
	respond.Created(c, toResponse(role))
}

// Update handles PUT /roles/:id.
func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "name is required")
		return
	}
	role, err := h.roles.Update(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		h.mapError(c, "update role", err)
		return
	}
	respond.OK(c, toResponse(role))
}

// Delete handles DELETE /roles/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.roles.Delete(c.Request.Context(), id); err != nil {
		h.mapError(c, "delete role", err)
		return
	}
	respond.Message(c, "role deleted")
}

// ListLinks handles GET /user-roles?page=&size=.
func (h *Handler) ListLinks(c *gin.Context) {
	page := queryInt32(c, "page", 1)
	size := queryInt32(c, "size", 10)
	links, total, err := h.roles.ListLinks(c.Request.Context(), page, size)
	if err != nil {
		h.fail(c, "list user roles", err)
		return
	}
	out := make([]linkResponse, 0, len(links))
	for _, l := range links {
		out = append(out, linkResponse{UserID: l.UserID, RoleID: l.RoleID})
	}
	respond.Page(c, out, respond.NewPaginated(total, size, page))
}

// Assign handles POST /user-roles.
func (h *Handler) Assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "userId and roleId are required")
		return
	}
	if err := h.roles.Assign(c.Request.Context(), req.UserID, req.RoleID); err != nil {
		h.mapError(c, "assign role", err)
		return
	}
	respond.Created(c, linkResponse{UserID: req.UserID, RoleID: req.RoleID})
}

// Unassign handles DELETE /user-roles/:userId/:roleId.
func (h *Handler) Unassign(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	roleID, ok := paramID(c, "roleId")
	if !ok {
		return
	}
	if err := h.roles.Unassign(c.Request.Context(), userID, roleID); err != nil {
		if errors.Is(err, service.ErrRoleNotFound) {
			respond.Error(c, http.StatusNotFound, "assignment not found")
			return
		}
		h.fail(c, "unassign role", err)
		return
	}
	respond.Message(c, "assignment removed")
}

// CheckLink handles GET /user-roles/check/:userId/:roleId.
func (h *Handler) CheckLink(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	roleID, ok := paramID(c, "roleId")
	if !ok {
		return
	}
	held, err := h.roles.HasLink(c.Request.Context(), userID, roleID)
	if err != nil {
		h.fail(c, "check user role", err)
		return
	}
	respond.OK(c, gin.H{"assigned": held})
}

// ListByUser handles GET /user-roles/all/:userId.
func (h *Handler) ListByUser(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	roles, err := h.roles.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, "list roles by user", err)
		return
	}
	out := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toResponse(r))
	}
	respond.OK(c, out)
}

// AssignByNames handles POST /user-roles/create/:userId.
func (h *Handler) AssignByNames(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	var req roleNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "roles list is required")
		return
	}
	if err := h.roles.AssignByNames(c.Request.Context(), userID, req.Roles); err != nil {
		h.mapError(c, "assign roles by name", err)
		return
	}
	respond.Message(c, "roles assigned")
}

// UnassignByNames handles POST /user-roles/delete/:userId.
func (h *Handler) UnassignByNames(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	var req roleNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "roles list is required")
		return
	}
	if err := h.roles.UnassignByNames(c.Request.Context(), userID, req.Roles); err != nil {
		h.fail(c, "unassign roles by name", err)
		return
	}
	respond.Message(c, "roles removed")
}

func (h *Handler) mapError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrRoleNotFound):
		respond.Error(c, http.StatusNotFound, "role not found")
	case errors.Is(err, service.ErrRoleNameTaken):
		respond.Error(c, http.StatusConflict, "role name already exists")
	case errors.Is(err, service.ErrInvalidInput):
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
