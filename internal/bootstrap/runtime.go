package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"instafeed/internal/cache"
	"instafeed/internal/config"
	"instafeed/internal/database"
	"instafeed/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedIfEmpty loads the built-in dataset when the posts table is empty.
	SeedIfEmpty bool
}

// InitRuntime connects to DB and Redis and optionally seeds an empty database.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedIfEmpty {
		seeded, err := seed.NewSeeder(db).EnsureSeeded(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to seed built-in data: %w", err)
		}
		if seeded {
			slog.Info("Seeded built-in feed data", slog.String("driver", cfg.DBDriver))
		}
	}

	return db, r, nil
}

// Reseeder returns a function that restores the built-in dataset and drops cached reads.
func Reseeder(db *gorm.DB) func(ctx context.Context) error {
	s := seed.NewSeeder(db)
	return func(ctx context.Context) error {
		if err := s.Run(ctx); err != nil {
			return err
		}
		cache.InvalidateAll(ctx)
		return nil
	}
}
