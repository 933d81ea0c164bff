package services

import (
	"time"

	"worklog/internal/clock"
	"worklog/internal/repository"
)

// ServiceContainer wires every service and job onto one store and clock
type ServiceContainer struct {
	Lifecycle LifecycleService
	Durations DurationService
	Tasks     TaskService
	Users     UserService

	AutoEnd   *AutoEndJob
	Retention *RetentionJob
}

// NewServiceContainer builds all services
func NewServiceContainer(store repository.Store, clk clock.Clock, report ReportOptions, retention time.Duration) *ServiceContainer {
	users := NewUserService(store, clk)
	return &ServiceContainer{
		Lifecycle: NewLifecycleService(store, clk),
		Durations: NewDurationService(store, clk, report),
		Tasks:     NewTaskService(store, clk),
		Users:     users,
		AutoEnd:   NewAutoEndJob(store, clk),
		Retention: NewRetentionJob(store, users, clk, retention),
	}
}
