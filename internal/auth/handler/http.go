// Package handler exposes the auth endpoints: login, refresh, token
// verification, and the authenticated user-info echo.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/8syncdev/elearn-auth/internal/auth/service"
	"github.com/8syncdev/elearn-auth/internal/platform/respond"
	"github.com/8syncdev/elearn-auth/internal/server/middleware"
)

type Handler struct {
	auth   *service.Service
	logger *zap.Logger
}

// New returns an auth Handler.
func New(auth *service.Service, logger *zap.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type verifyTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type claimsResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	FullName string `json:"fullName,omitempty"`
	Kind     string `json:"type"`
	IssuedAt int64  `json:"iat"`
	Expiry   int64  `json:"exp"`
	JTI      string `json:"jti"`
}

type principalResponse struct {
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	FullName  string `json:"fullName,omitempty"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "username and password are required")
		return
	}
	pair, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "incorrect username or password")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		respond.Error(c, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.OK(c, pair)
}

// Refresh handles POST /auth/refresh.
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "refreshToken is required")
		return
	}
	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			respond.Error(c, http.StatusUnauthorized, "invalid or expired refresh token")
			return
		}
		h.logger.Error("refresh failed", zap.Error(err))
		respond.Error(c, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.OK(c, pair)
}

// VerifyToken handles POST /auth/verify-token. It checks the supplied
// access token and returns its decoded claims without touching the store.
func (h *Handler) VerifyToken(c *gin.Context) {
	var req verifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "token is required")
		return
	}
	claims, err := h.auth.VerifyToken(req.Token)
	if err != nil {
		respond.Error(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	resp := claimsResponse{
		UserID:   claims.UserID,
		Username: claims.Username,
		FullName: claims.FullName,
		Kind:     string(claims.Kind),
		JTI:      claims.ID,
	}
	if claims.IssuedAt != nil {
		resp.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		resp.Expiry = claims.ExpiresAt.Unix()
	}
	respond.OK(c, resp)
}

// UserInfo handles POST /auth/user-info. It echoes the principal attached
// by the auth middleware.
func (h *Handler) UserInfo(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}
	respond.OK(c, principalResponse{
		UserID:    p.UserID,
		Username:  p.Username,
		Email:     p.Email,
		Phone:     p.Phone,
		FullName:  p.FullName,
		ExpiresAt: p.ExpiresAt.Unix(),
	})
}
