package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"

	"github.com/annonsera/backend/config"
	"github.com/annonsera/backend/internal/domain/entity"
	"github.com/annonsera/backend/internal/domain/repository"
	pginfra "github.com/annonsera/backend/internal/infrastructure/postgres"
	"github.com/annonsera/backend/pkg/helpers"
)

// Seeds a local admin account for development. Idempotent: a second run
// leaves the existing user untouched.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	hasher := helpers.NewPasswordHasher(cfg.BcryptCost)
	digest, err := hasher.Hash("admin123")
	if err != nil {
		log.Fatalf("hash failed: %v", err)
	}

	repo := pginfra.NewUserRepository(pool)
	admin := &entity.User{
		Email:        "admin@annonsera.local",
		PasswordHash: digest,
		Name:         "Admin",
		Role:         entity.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			log.Println("admin user already exists")
			return
		}
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("admin user created: %s (id %s)", admin.Email, admin.ID)
}
