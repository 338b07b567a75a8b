// Package server assembles the gin engine: middleware chain, public auth
// routes, and admin-gated management routes.
package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authhandler "github.com/8syncdev/elearn-auth/internal/auth/handler"
	healthhandler "github.com/8syncdev/elearn-auth/internal/health/handler"
	"github.com/8syncdev/elearn-auth/internal/platform/rbac"
	rolehandler "github.com/8syncdev/elearn-auth/internal/role/handler"
	roleservice "github.com/8syncdev/elearn-auth/internal/role/service"
	"github.com/8syncdev/elearn-auth/internal/security"
	"github.com/8syncdev/elearn-auth/internal/server/middleware"
	userhandler "github.com/8syncdev/elearn-auth/internal/user/handler"
)

// Deps are the wired dependencies the router needs.
type Deps struct {
	Logger      *zap.Logger
	Tokens      *security.TokenProvider
	UserLoader  middleware.UserLoader
	AuthSchemes []string

	Auth   *authhandler.Handler
	Users  *userhandler.Handler
	Roles  *rolehandler.Handler
	Health *healthhandler.Handler

	// RoleChecker resolves admin access for the management routes.
	RoleChecker rbac.RoleChecker
}

// NewRouter builds the engine. Login, refresh, verify-token, and health are
// public; user-info requires a valid access token; everything else requires
// the admin role on top of that.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Logger),
		middleware.Tracing(),
		middleware.Logging(d.Logger),
	)

	r.GET("/health", d.Health.Check)
	r.POST("/auth/login", d.Auth.Login)
	r.POST("/auth/refresh", d.Auth.Refresh)
	r.POST("/auth/verify-token", d.Auth.VerifyToken)

	authed := r.Group("", middleware.Auth(d.Tokens, d.UserLoader, d.AuthSchemes))
	authed.POST("/auth/user-info", d.Auth.UserInfo)

	admin := authed.Group("", rbac.RequireRole(d.RoleChecker, roleservice.RoleAdmin))

	users := admin.Group("/users")
	users.GET("/count", d.Users.Count)
	users.GET("", d.Users.List)
	users.GET("/:id", d.Users.Get)
	users.POST("", d.Users.Create)
	users.PUT("/:id", d.Users.Update)
	users.DELETE("/:id", d.Users.Delete)
	users.POST("/verify-password", d.Users.VerifyPassword)

	roles := admin.Group("/roles")
	roles.GET("/count", d.Roles.Count)
	roles.GET("", d.Roles.List)
	roles.GET("/:id", d.Roles.Get)
	roles.POST("", d.Roles.Create)
	roles.PUT("/:id", d.Roles.Update)
	roles.DELETE("/:id", d.Roles.Delete)

	links := admin.Group("/user-roles")
	links.GET("", d.Roles.ListLinks)
	links.POST("", d.Roles.Assign)
	links.DELETE("/:userId/:roleId", d.Roles.Unassign)
	links.GET("/check/:userId/:roleId", d.Roles.CheckLink)
	links.GET("/all/:userId", d.Roles.ListByUser)
	links.POST("/create/:userId", d.Roles.AssignByNames)
	links.POST("/delete/:userId", d.Roles.UnassignByNames)

	return r
}
