package services

import (
	"context"
	"testing"
	"time"

	"worklog/internal/clock"
	"worklog/internal/domain"
	"worklog/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	store    *sqlite.SQLiteRepository
	clock    *clock.ControllableClock
	services *ServiceContainer
}

// setupServices builds every service on an in-memory database with the
// clock frozen at testNow
func setupServices(t *testing.T) *testEnv {
	return setupServicesWithOptions(t, DefaultReportOptions())
}

func setupServicesWithOptions(t *testing.T, opts ReportOptions) *testEnv {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clk := clock.NewControllableClockAt(testNow)
	return &testEnv{
		store:    store,
		clock:    clk,
		services: NewServiceContainer(store, clk, opts, 30*24*time.Hour),
	}
}

func (e *testEnv) seedUser(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := e.services.Users.CreateUser(context.Background(), username, "", "")
	require.NoError(t, err)
	return user
}

func (e *testEnv) seedTask(t *testing.T, username, name string) *domain.Task {
	t.Helper()
	task, err := e.services.Tasks.CreateTask(context.Background(), username, name, "")
	require.NoError(t, err)
	return task
}

// addInterval stores an interval directly, bypassing the lifecycle rules
func (e *testEnv) addInterval(t *testing.T, taskID int64, start time.Time, length time.Duration, state domain.IntervalState) *domain.Interval {
	t.Helper()
	interval := &domain.Interval{TaskID: taskID, StartTime: start, State: state}
	if state != domain.StateOngoing {
		end := start.Add(length)
		interval.EndTime = &end
	}
	require.NoError(t, e.store.CreateInterval(context.Background(), interval))
	return interval
}

func openCount(t *testing.T, e *testEnv, taskID int64) int {
	t.Helper()
	intervals, err := e.store.FindIntervalsForTask(context.Background(), taskID)
	require.NoError(t, err)
	n := 0
	for _, i := range intervals {
		if i.IsOpen() {
			n++
		}
	}
	return n
}
