// seed inserts the base roles and a development admin account.
// Idempotent: skips inserts when the admin account already exists.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/8syncdev/elearn-auth/internal/config"
	"github.com/8syncdev/elearn-auth/internal/db"
	rolerepository "github.com/8syncdev/elearn-auth/internal/role/repository"
	roleservice "github.com/8syncdev/elearn-auth/internal/role/service"
	"github.com/8syncdev/elearn-auth/internal/security"
	userrepository "github.com/8syncdev/elearn-auth/internal/user/repository"
	userservice "github.com/8syncdev/elearn-auth/internal/user/service"
)

const (
	adminUsername = "admin8sync"
	adminPassword = "Admin@8syncdev"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env or set DATABASE_URL")
	}

	ctx := context.Background()
	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	hasher := security.NewHasher(cfg.PBKDF2Iterations)
	users := userservice.NewService(userrepository.NewPostgresRepository(pool), hasher)
	roles := roleservice.NewService(rolerepository.NewPostgresRepository(pool))

	baseRoles := map[string]string{
		roleservice.RoleAdmin: "Full platform management access",
		roleservice.RoleUser:  "Standard learner account",
	}
	for name, description := range baseRoles {
		if _, err := roles.Create(ctx, name, description); err != nil && !errors.Is(err, roleservice.ErrRoleNameTaken) {
			log.Fatalf("create role %s: %v", name, err)
		}
	}

	if _, err := users.GetByUsername(ctx, adminUsername); err == nil {
		log.Println("Seed already applied (admin account exists). Skipping.")
		os.Exit(0)
	} else if !errors.Is(err, userservice.ErrUserNotFound) {
		log.Fatalf("seed check: %v", err)
	}

	admin, err := users.Create(ctx, userservice.CreateInput{
		Username: adminUsername,
		Password: adminPassword,
		FullName: "Platform Admin",
	})
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}
	if err := roles.AssignByNames(ctx, admin.ID, []string{roleservice.RoleAdmin, roleservice.RoleUser}); err != nil {
		log.Fatalf("assign admin roles: %v", err)
	}

	log.Println("Seed completed successfully.")
	fmt.Printf("Admin login: %s / %s\n", adminUsername, adminPassword)
}
