package main

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// Seeds a development database with the default categories, a small
// technician roster and a demo end-user. Safe to run repeatedly.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	postgres, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer postgres.Close()
	pool := postgres.PoolHandle()
	if pool == nil {
		logger.Fatal("POSTGRES_DSN is required for seeding")
	}

	if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	categories := repository.NewCategoryRepository(pool)
	users := repository.NewUserRepository(pool)
	assets := repository.NewAssetRepository(pool)

	seedCategories(ctx, categories, logger)
	seedUsers(ctx, users, cfg.Auth.BcryptCost, logger)
	seedAssets(ctx, assets, logger)

	logger.Info("seed complete")
}

func seedCategories(ctx context.Context, repo repository.CategoryRepository, logger *zap.Logger) {
	defaults := []domain.Category{
		{Name: "Hardware", Description: "Physical equipment failures", ResponseSLAHours: 2, ResolutionSLAHours: 8},
		{Name: "Software", Description: "Application and OS issues", ResponseSLAHours: 4, ResolutionSLAHours: 24},
		{Name: "Network", Description: "Connectivity and VPN issues", ResponseSLAHours: 1, ResolutionSLAHours: 4},
	}
	for i := range defaults {
		category := defaults[i]
		if _, err := repo.GetByName(ctx, category.Name); err == nil {
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			logger.Fatal("category lookup failed", zap.Error(err))
		}
		if err := repo.Create(ctx, &category); err != nil {
			logger.Fatal("category seed failed", zap.String("name", category.Name), zap.Error(err))
		}
		logger.Info("category created", zap.String("name", category.Name))
	}
}

func seedUsers(ctx context.Context, repo repository.UserRepository, bcryptCost int, logger *zap.Logger) {
	defaults := []struct {
		name     string
		email    string
		password string
		role     domain.Role
	}{
		{"Alice Supervisor", "alice@helpdesk.local", "changeme", domain.RoleTier2},
		{"Bob Technician", "bob@helpdesk.local", "changeme", domain.RoleTier1},
		{"Carol Technician", "carol@helpdesk.local", "changeme", domain.RoleTier1},
		{"Dave Requester", "dave@helpdesk.local", "changeme", domain.RoleEndUser},
	}
	for _, entry := range defaults {
		if _, err := repo.GetByEmail(ctx, entry.email); err == nil {
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			logger.Fatal("user lookup failed", zap.Error(err))
		}
		hash, err := auth.HashPassword(entry.password, bcryptCost)
		if err != nil {
			logger.Fatal("password hash failed", zap.Error(err))
		}
		user := domain.User{
			Name:         entry.name,
			Email:        entry.email,
			PasswordHash: hash,
			Role:         entry.role,
			Active:       true,
		}
		if err := repo.Create(ctx, &user); err != nil {
			logger.Fatal("user seed failed", zap.String("email", entry.email), zap.Error(err))
		}
		logger.Info("user created", zap.String("email", entry.email), zap.String("role", string(entry.role)))
	}
}

func seedAssets(ctx context.Context, repo repository.AssetRepository, logger *zap.Logger) {
	defaults := []domain.Asset{
		{Type: "laptop", Brand: "Lenovo", Model: "ThinkPad T14", SerialNumber: "LT-0001"},
		{Type: "monitor", Brand: "Dell", Model: "U2419H", SerialNumber: "MN-0001"},
		{Type: "printer", Brand: "HP", Model: "LaserJet M404", SerialNumber: "PR-0001"},
	}
	for i := range defaults {
		asset := defaults[i]
		if _, err := repo.GetBySerialNumber(ctx, asset.SerialNumber); err == nil {
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			logger.Fatal("asset lookup failed", zap.Error(err))
		}
		if err := repo.Create(ctx, &asset); err != nil {
			logger.Fatal("asset seed failed", zap.String("serial", asset.SerialNumber), zap.Error(err))
		}
		logger.Info("asset created", zap.String("serial", asset.SerialNumber))
	}
}
