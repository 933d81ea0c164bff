package main

import (
	"context"
	"fmt"
	"os"

	"worklog/internal/api"
	"worklog/internal/cli"
	"worklog/internal/clock"
	"worklog/internal/config"
	"worklog/internal/logging"
)

func main() {
	clk := clock.NewSystemClock()
	root := cli.NewRootCommand(openAPI(clk), clk, os.Stdout)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openAPI returns a factory creating the repository for the current environment
func openAPI(clk clock.Clock) cli.APIFactory {
	return func(ctx context.Context, cfg *config.Config) (api.BusinessAPI, func() error, error) {
		factory := config.NewRepositoryFactory(config.GetEnvironment(), cfg)
		store, err := factory.CreateRepository(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("error creating repository: %w", err)
		}
		logging.Debugf("opened %s store\n", cfg.Database.Driver)

		businessAPI, err := api.New(store, clk, cfg)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		return businessAPI, store.Close, nil
	}
}
