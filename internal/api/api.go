package api

import (
	"worklog/internal/clock"
	"worklog/internal/config"
	"worklog/internal/repository"
	"worklog/internal/services"
)

// New wires the services onto store using the reporting and retention settings of cfg
func New(store repository.Store, clk clock.Clock, cfg *config.Config) (BusinessAPI, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	report := services.ReportOptions{
		NativeAggregate: cfg.Reporting.NativeAggregate,
		Format: services.IntervalFormat{
			Layout:      cfg.Reporting.TimeFormat,
			RunningText: cfg.Reporting.RunningText,
			Location:    loc,
		},
	}
	container := services.NewServiceContainer(store, clk, report, cfg.RetentionPeriod())
	return NewBusinessAPI(container), nil
}
