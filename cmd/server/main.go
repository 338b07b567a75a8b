package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	authhandler "github.com/8syncdev/elearn-auth/internal/auth/handler"
	authservice "github.com/8syncdev/elearn-auth/internal/auth/service"
	"github.com/8syncdev/elearn-auth/internal/config"
	"github.com/8syncdev/elearn-auth/internal/db"
	healthhandler "github.com/8syncdev/elearn-auth/internal/health/handler"
	rolehandler "github.com/8syncdev/elearn-auth/internal/role/handler"
	rolerepository "github.com/8syncdev/elearn-auth/internal/role/repository"
	roleservice "github.com/8syncdev/elearn-auth/internal/role/service"
	"github.com/8syncdev/elearn-auth/internal/security"
	"github.com/8syncdev/elearn-auth/internal/server"
	"github.com/8syncdev/elearn-auth/internal/telemetry/otel"
	userhandler "github.com/8syncdev/elearn-auth/internal/user/handler"
	userrepository "github.com/8syncdev/elearn-auth/internal/user/repository"
	userservice "github.com/8syncdev/elearn-auth/internal/user/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env or set DATABASE_URL")
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "elearn-auth", cfg.OTLPInsecure)
	if err != nil {
		logger.Fatal("telemetry", zap.Error(err))
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db", zap.Error(err))
	}
	defer pool.Close()

	hasher := security.NewHasher(cfg.PBKDF2Iterations)
	tokens := security.NewTokenProvider(
		[]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTAudience,
		cfg.AccessTTL(), cfg.RefreshTTL(),
	)

	userRepo := userrepository.NewPostgresRepository(pool)
	roleRepo := rolerepository.NewPostgresRepository(pool)
	userSvc := userservice.NewService(userRepo, hasher)
	roleSvc := roleservice.NewService(roleRepo)
	authSvc := authservice.NewService(userRepo, hasher, tokens)

	router := server.NewRouter(server.Deps{
		Logger:      logger,
		Tokens:      tokens,
		UserLoader:  userRepo,
		AuthSchemes: cfg.AuthSchemesList(),
		Auth:        authhandler.New(authSvc, logger),
		Users:       userhandler.New(userSvc, logger),
		Roles:       rolehandler.New(roleSvc, logger),
		Health:      healthhandler.New(pool),
		RoleChecker: roleSvc,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("HTTP server stopped")
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
