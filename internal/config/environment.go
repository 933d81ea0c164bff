package config

import (
	"context"
	"fmt"
	"os"

	"worklog/internal/repository"
	"worklog/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment from WL_ENV
func GetEnvironment() Environment {
	switch Environment(os.Getenv("WL_ENV")) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		// Default to production for safety
		return Production
	}
}

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env    Environment
	config *Config
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment, config *Config) *RepositoryFactory {
	return &RepositoryFactory{env: env, config: config}
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository(ctx context.Context) (repository.Store, error) {
	switch rf.env {
	case Development:
		// a database file in the working directory
		repo, err := sqlite.NewWithContext(ctx, rf.config.Database.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize development database: %w", err)
		}
		return repo, nil
	case Testing:
		return CreateTestRepository()
	default:
		return CreateRepository(ctx, rf.config)
	}
}
