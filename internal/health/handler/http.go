// Package handler exposes the liveness endpoint.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/8syncdev/elearn-auth/internal/platform/respond"
)

// Pinger checks connectivity to a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db Pinger
}

// New returns a health Handler. db may be nil, in which case only process
// liveness is reported.
func New(db Pinger) *Handler {
	return &Handler{db: db}
}

// Check handles GET /health. Reports 503 when the database is unreachable.
func (h *Handler) Check(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			respond.Error(c, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	respond.OK(c, gin.H{"status": "ok"})
}
