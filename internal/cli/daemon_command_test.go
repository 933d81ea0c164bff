package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklog/internal/api"
)

type namedJob string

func (j namedJob) Name() string                  { return string(j) }
func (j namedJob) Run(ctx context.Context) error { return nil }

func TestDaemonCommand_Schedule(t *testing.T) {
	jobs := []api.Job{namedJob("autoend"), namedJob("retention")}

	t.Run("both enabled", func(t *testing.T) {
		app, m, _ := setupTestAppWithMockBusinessAPI(t)
		m.On("Jobs").Return(jobs)

		s, err := NewDaemonCommand(app).schedule()
		require.NoError(t, err)
		assert.Len(t, s.Entries(), 2)
	})

	t.Run("retention disabled", func(t *testing.T) {
		app, m, _ := setupTestAppWithMockBusinessAPI(t)
		app.config.Jobs.RetentionEnabled = false
		m.On("Jobs").Return(jobs)

		s, err := NewDaemonCommand(app).schedule()
		require.NoError(t, err)
		assert.Len(t, s.Entries(), 1)
	})

	t.Run("bad cutoff", func(t *testing.T) {
		app, m, _ := setupTestAppWithMockBusinessAPI(t)
		app.config.Jobs.AutoEndCutoff = "25:00"
		m.On("Jobs").Return(jobs)

		_, err := NewDaemonCommand(app).schedule()
		assert.Error(t, err)
	})

	t.Run("unknown job", func(t *testing.T) {
		app, m, _ := setupTestAppWithMockBusinessAPI(t)
		m.On("Jobs").Return([]api.Job{namedJob("reindex")})

		_, err := NewDaemonCommand(app).schedule()
		assert.ErrorContains(t, err, "no schedule configured for job reindex")
	})
}

func TestDaemonCommand_StopsWhenCancelled(t *testing.T) {
	app, m, out := setupTestAppWithMockBusinessAPI(t)
	m.On("Jobs").Return([]api.Job{namedJob("autoend"), namedJob("retention")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, NewDaemonCommand(app).Execute(ctx, nil))
	assert.Equal(t, "Running 2 scheduled jobs\nStopped\n", out.String())
}

func TestDaemonCommand_NothingEnabled(t *testing.T) {
	app, m, out := setupTestAppWithMockBusinessAPI(t)
	app.config.Jobs.AutoEndEnabled = false
	app.config.Jobs.RetentionEnabled = false
	m.On("Jobs").Return([]api.Job{namedJob("autoend"), namedJob("retention")})

	require.NoError(t, NewDaemonCommand(app).Execute(context.Background(), nil))
	assert.Equal(t, "No jobs enabled, nothing to do\n", out.String())
}
