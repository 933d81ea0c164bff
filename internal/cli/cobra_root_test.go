package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"worklog/internal/api"
	"worklog/internal/clock"
	"worklog/internal/config"
	"worklog/internal/domain"
	"worklog/internal/errors"
)

type rootHarness struct {
	root     *RootCommand
	api      *mockBusinessAPI
	out      *bytes.Buffer
	cfg      *config.Config
	released int
}

func newRootHarness(t *testing.T) *rootHarness {
	t.Helper()
	t.Setenv("WL_TIMEZONE", "UTC")
	t.Setenv("WL_DB_DIR", t.TempDir())

	h := &rootHarness{api: &mockBusinessAPI{}, out: &bytes.Buffer{}}
	t.Cleanup(func() { h.api.AssertExpectations(t) })

	factory := func(ctx context.Context, cfg *config.Config) (api.BusinessAPI, func() error, error) {
		h.cfg = cfg
		return h.api, func() error {
			h.released++
			return nil
		}, nil
	}
	h.root = NewRootCommand(factory, clock.NewControllableClockAt(testNow), h.out)
	return h
}

func (h *rootHarness) run(args ...string) error {
	h.root.SetArgs(args)
	return h.root.Execute()
}

func TestRootCommand_DispatchesThroughRegistry(t *testing.T) {
	h := newRootHarness(t)
	open := &domain.Interval{ID: 1, TaskID: 3, StartTime: testNow, State: domain.StateOngoing}
	h.api.On("StartTask", mock.Anything, int64(3)).Return(testSession(3, "focus", open, 0), nil)

	require.NoError(t, h.run("start", "3"))
	assert.Equal(t, "Started task 3: focus\n", h.out.String())
	assert.Equal(t, 1, h.released)
}

func TestRootCommand_GlobalFlagsOverrideConfig(t *testing.T) {
	h := newRootHarness(t)
	t.Setenv("WL_RETENTION_DAYS", "90")
	h.api.On("RunCleanup", mock.Anything).Return(nil, errors.NewCleanupFailedError("tasks", stderrors.New("x")))

	err := h.run("cleanup", "--retention-days", "7", "--native-aggregate", "--app-timeout", "5s", "--autoend-cutoff", "18:30")
	assert.Error(t, err)

	require.NotNil(t, h.cfg)
	assert.Equal(t, 7, h.cfg.Jobs.RetentionDays)
	assert.True(t, h.cfg.Reporting.NativeAggregate)
	assert.Equal(t, 5*time.Second, h.cfg.Application.Timeout)
	assert.Equal(t, "18:30", h.cfg.Jobs.AutoEndCutoff)
	assert.Equal(t, 1, h.released, "store is released even when the command fails")
}

func TestRootCommand_UnsetFlagsKeepEnvironment(t *testing.T) {
	h := newRootHarness(t)
	t.Setenv("WL_RETENTION_DAYS", "90")
	h.api.On("DeleteTask", mock.Anything, int64(4)).Return(nil)

	require.NoError(t, h.run("task", "delete", "4"))
	assert.Equal(t, 90, h.cfg.Jobs.RetentionDays)
	assert.False(t, h.cfg.Reporting.NativeAggregate)
}

func TestRootCommand_InvalidConfiguration(t *testing.T) {
	h := newRootHarness(t)

	err := h.run("start", "3", "--timezone", "Nowhere/Special")
	assert.ErrorContains(t, err, "invalid configuration")
	assert.Nil(t, h.cfg, "the store is never opened")
}

func TestRootCommand_CommandFlags(t *testing.T) {
	h := newRootHarness(t)
	h.api.On("CreateUser", mock.Anything, "alice", "Alice A", "alice@example.com").
		Return(&domain.User{ID: 1, Username: "alice"}, nil)

	require.NoError(t, h.run("user", "add", "alice", "--name", "Alice A", "--email", "alice@example.com"))
	assert.Equal(t, "Added user alice\n", h.out.String())
}

func TestRootCommand_TaskUpdateDescriptionFlag(t *testing.T) {
	h := newRootHarness(t)
	h.api.On("UpdateTask", mock.Anything, int64(3), "final report", (*string)(nil)).
		Return(&domain.Task{ID: 3, UserID: 1, Name: "final report"}, nil).Once()

	require.NoError(t, h.run("task", "update", "3", "final", "report"))

	h.api.On("UpdateTask", mock.Anything, int64(3), "", mock.MatchedBy(func(d *string) bool {
		return d != nil && *d == "due Friday"
	})).Return(&domain.Task{ID: 3, UserID: 1, Name: "final report"}, nil).Once()

	require.NoError(t, h.run("task", "update", "3", "--description", "due Friday"))
	assert.Equal(t, "Updated task 3: final report\nUpdated task 3: final report\n", h.out.String())
}

func TestRootCommand_IntervalCommands(t *testing.T) {
	h := newRootHarness(t)
	closed := &domain.Interval{ID: 8, TaskID: 3, StartTime: testNow.Add(-time.Hour), EndTime: timePtr(testNow), State: domain.StateUserStopped}
	h.api.On("DeleteInterval", mock.Anything, int64(8)).Return(testSession(3, "focus", closed, 0), nil)

	require.NoError(t, h.run("interval", "delete", "8"))
	assert.Equal(t, "Deleted interval 8 of task 3: focus (00:00 total)\n", h.out.String())
	assert.Error(t, h.run("interval", "show"))
}

func TestRootCommand_ArgumentCounts(t *testing.T) {
	h := newRootHarness(t)

	assert.Error(t, h.run("stop"))
	assert.Error(t, h.run("autoend", "extra"))
}

func TestOverridesFromFlags(t *testing.T) {
	h := newRootHarness(t)
	flags := h.root.cmd.PersistentFlags()
	require.NoError(t, flags.Parse([]string{"--db-driver", "postgres", "--db-dsn", "postgres://localhost/wl", "--verbose=false"}))

	overrides, err := overridesFromFlags(flags)
	require.NoError(t, err)
	require.NotNil(t, overrides.DBDriver)
	assert.Equal(t, "postgres", *overrides.DBDriver)
	assert.Equal(t, "postgres://localhost/wl", *overrides.DBDSN)
	require.NotNil(t, overrides.Verbose)
	assert.False(t, *overrides.Verbose)
	assert.Nil(t, overrides.DBDir)
	assert.Nil(t, overrides.RetentionDays)
	assert.Nil(t, overrides.Timeout)
}
