// Command seedadmin replaces any existing ADMIN accounts with a single
// verified admin whose credentials come from ADMIN_NAME, ADMIN_EMAIL and
// ADMIN_PASSWORD.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/territoria/territoria/internal/config"
	"github.com/territoria/territoria/internal/db"
	"github.com/territoria/territoria/internal/logger"
	"github.com/territoria/territoria/internal/model"
	"github.com/territoria/territoria/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), "")

	name := envOr("ADMIN_NAME", "Admin")
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		slog.Error("ADMIN_EMAIL and ADMIN_PASSWORD are required")
		os.Exit(1)
	}

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		slog.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer db.Close(database)

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	users := repository.NewUserRepository(database)

	deleted, err := users.DeleteByRole(model.RoleAdmin)
	if err != nil {
		slog.Error("failed to delete existing admins", "error", err)
		os.Exit(1)
	}
	if deleted > 0 {
		slog.Info("deleted old admin accounts", "count", deleted)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		os.Exit(1)
	}

	now := time.Now()
	admin := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		VerifyEmail:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = users.Create(admin)
	if err != nil {
		slog.Error("failed to create admin", "error", err)
		os.Exit(1)
	}

	slog.Info("admin user created", "email", email)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
