package config

import (
	"context"
	"fmt"
	"os"

	"worklog/internal/repository"
	"worklog/internal/repository/postgres"
	"worklog/internal/repository/sqlite"
)

// CreateRepository opens the store selected by Database.Driver.
// Connecting and migrating must finish within the query timeout.
func CreateRepository(ctx context.Context, config *Config) (repository.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, config.GetQueryTimeout())
	defer cancel()

	switch config.Database.Driver {
	case DriverPostgres:
		store, err := postgres.New(ctx, config.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return store, nil
	default:
		if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		repo, err := sqlite.NewWithContext(ctx, config.GetDatabasePath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	}
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (repository.Store, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return repo, nil
}
