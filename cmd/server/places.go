package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/travelplanner/service-trip/internal/config"
	"github.com/travelplanner/service-trip/internal/domain/place"
	"github.com/travelplanner/service-trip/internal/platform/database"
	"github.com/travelplanner/service-trip/internal/platform/health"
	"github.com/travelplanner/service-trip/internal/repository"
	"go.uber.org/zap"
)

// placeStore is the place table chosen by configuration, with its readiness check and cleanup.
type placeStore struct {
	repo  place.Repository
	check health.Check
	close func()
}

// openPlaces loads the dataset and puts it behind the configured backend.
// Database backends are seeded once; existing rows are left untouched.
func openPlaces(ctx context.Context, cfg *config.ServiceConfig, log *zap.Logger) (*placeStore, error) {
	records, err := repository.LoadPlaces(cfg.Places.DatasetPath)
	if err != nil {
		return nil, err
	}
	log.Info("place dataset loaded", zap.Int("records", len(records)))

	switch cfg.Places.Backend {
	case config.BackendPostgres:
		db, err := database.Connect(cfg.DBConfig, log)
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(&repository.PlaceModel{}); err != nil {
			return nil, fmt.Errorf("failed to run auto-migration: %w", err)
		}
		repo := repository.NewGormPlaceRepository(db)
		seeded, err := repo.Seed(ctx, records)
		if err != nil {
			return nil, err
		}
		log.Info("place table ready", zap.String("backend", cfg.Places.Backend), zap.Int("seeded", seeded))

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		return &placeStore{
			repo:  repo,
			check: sqlDB.PingContext,
			close: func() { _ = sqlDB.Close() },
		}, nil

	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.Places.SQLitePath); cfg.Places.SQLitePath != ":memory:" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		repo, err := repository.OpenSQLitePlaceRepository(cfg.Places.SQLitePath)
		if err != nil {
			return nil, err
		}
		seeded, err := repo.Seed(ctx, records)
		if err != nil {
			_ = repo.Close()
			return nil, err
		}
		log.Info("place table ready", zap.String("backend", cfg.Places.Backend), zap.Int("seeded", seeded))
		return &placeStore{
			repo:  repo,
			check: repo.Ping,
			close: func() { _ = repo.Close() },
		}, nil

	default:
		return &placeStore{
			repo:  repository.NewMemoryPlaceRepository(records),
			check: func(context.Context) error { return nil },
			close: func() {},
		}, nil
	}
}
