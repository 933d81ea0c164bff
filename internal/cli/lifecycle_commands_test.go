package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"worklog/internal/domain"
	"worklog/internal/errors"
)

func TestStartCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("starts the task", func(t *testing.T) {
		app, m, out := setupTestAppWithMockBusinessAPI(t)
		open := &domain.Interval{ID: 1, TaskID: 3, StartTime: testNow, State: domain.StateOngoing}
		m.On("StartTask", mock.Anything, int64(3)).Return(testSession(3, "write report", open, 0), nil)

		require.NoError(t, NewStartCommand(app).Execute(ctx, []string{"3"}))
		assert.Equal(t, "Started task 3: write report\n", out.String())
	})

	t.Run("already running", func(t *testing.T) {
		app, m, _ := setupTestAppWithMockBusinessAPI(t)
		m.On("StartTask", mock.Anything, int64(3)).Return(nil, errors.NewIntervalAlreadyOpenError(3))

		err := NewStartCommand(app).Execute(ctx, []string{"3"})
		assert.EqualError(t, err, "failed to start task: task 3 already has an open interval")
	})

	t.Run("usage", func(t *testing.T) {
		app, _, _ := setupTestAppWithMockBusinessAPI(t)

		err := NewStartCommand(app).Execute(ctx, []string{})
		assert.ErrorContains(t, err, "usage: worklog start <task id>")

		err = NewStartCommand(app).Execute(ctx, []string{"three"})
		assert.ErrorContains(t, err, "must be a positive integer")
	})
}

func TestStopAndPauseCommands(t *testing.T) {
	ctx := context.Background()
	closed := &domain.Interval{ID: 1, TaskID: 3, StartTime: testNow.Add(-90 * time.Minute), EndTime: timePtr(testNow)}

	t.Run("stop", func(t *testing.T) {
		app, m, out := setupTestAppWithMockBusinessAPI(t)
		m.On("StopTask", mock.Anything, int64(3)).Return(testSession(3, "focus", closed, 150*time.Minute), nil)

		require.NoError(t, NewStopCommand(app).Execute(ctx, []string{"3"}))
		assert.Equal(t, "Stopped task 3: focus (02:30 total)\n", out.String())
	})

	t.Run("pause", func(t *testing.T) {
		app, m, out := setupTestAppWithMockBusinessAPI(t)
		m.On("PauseTask", mock.Anything, int64(3)).Return(testSession(3, "focus", closed, 90*time.Minute), nil)

		require.NoError(t, NewPauseCommand(app).Execute(ctx, []string{"3"}))
		assert.Equal(t, "Paused task 3: focus (01:30 total)\n", out.String())
	})

	t.Run("nothing running", func(t *testing.T) {
		app, m, out := setupTestAppWithMockBusinessAPI(t)
		m.On("StopTask", mock.Anything, int64(3)).Return(nil, errors.NewNoOpenIntervalError(3))
		m.On("PauseTask", mock.Anything, int64(3)).Return(nil, errors.NewNoOpenIntervalError(3))

		assert.EqualError(t, NewStopCommand(app).Execute(ctx, []string{"3"}), "failed to stop task: task 3 has no open interval")
		assert.EqualError(t, NewPauseCommand(app).Execute(ctx, []string{"3"}), "failed to pause task: task 3 has no open interval")
		assert.Empty(t, out.String())
	})
}

func TestResumeCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("resumes", func(t *testing.T) {
		app, m, out := setupTestAppWithMockBusinessAPI(t)
		open := &domain.Interval{ID: 2, TaskID: 5, StartTime: testNow, State: domain.StateOngoing}
		m.On("ResumeTask", mock.Anything, int64(5)).Return(testSession(5, "review", open, 45*time.Minute), nil)

		require.NoError(t, NewResumeCommand(app).Execute(ctx, []string{"5"}))
		assert.Equal(t, "Resumed task 5: review (00:45 total)\n", out.String())
	})

	t.Run("not paused", func(t *testing.T) {
		app, m, _ := setupTestAppWithMockBusinessAPI(t)
		m.On("ResumeTask", mock.Anything, int64(5)).Return(nil, errors.NewNoPausedIntervalError(5))

		err := NewResumeCommand(app).Execute(ctx, []string{"5"})
		assert.EqualError(t, err, "failed to resume task: task 5 is not paused")
	})
}

func TestStatusCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("running", func(t *testing.T) {
		app, m, out := setupTestAppWithMockBusinessAPI(t)
		open := &domain.Interval{ID: 2, TaskID: 5, StartTime: testNow.Add(-3 * time.Hour), State: domain.StateOngoing}
		m.On("GetStatus", mock.Anything, int64(5)).Return(testSession(5, "review", open, 3*time.Hour), nil)

		require.NoError(t, NewStatusCommand(app).Execute(ctx, []string{"5"}))
		assert.Equal(t, "Task 5: review\n  running, started 3 hours ago\n  Total: 03:00\n", out.String())
	})

	t.Run("auto stopped", func(t *testing.T) {
		app, m, out := setupTestAppWithMockBusinessAPI(t)
		stopped := &domain.Interval{
			ID: 2, TaskID: 5,
			StartTime: testNow.Add(-5 * time.Hour),
			EndTime:   timePtr(testNow.Add(-2 * time.Hour)),
			State:     domain.StateAutoStopped,
		}
		m.On("GetStatus", mock.Anything, int64(5)).Return(testSession(5, "review", stopped, 3*time.Hour), nil)

		require.NoError(t, NewStatusCommand(app).Execute(ctx, []string{"5"}))
		assert.Contains(t, out.String(), "auto stopped, started 5 hours ago, ended 2 hours ago")
	})

	t.Run("never started", func(t *testing.T) {
		app, m, _ := setupTestAppWithMockBusinessAPI(t)
		m.On("GetStatus", mock.Anything, int64(5)).Return(nil, errors.NewIntervalNotFoundError("latest interval of task 5"))

		err := NewStatusCommand(app).Execute(ctx, []string{"5"})
		assert.EqualError(t, err, "failed to get status: interval not found: latest interval of task 5")
	})
}

func TestElapsedCommand_Execute(t *testing.T) {
	ctx := context.Background()
	app, m, out := setupTestAppWithMockBusinessAPI(t)
	m.On("GetElapsed", mock.Anything, int64(4)).Return(493*time.Minute, nil).Once()
	m.On("GetElapsed", mock.Anything, int64(9)).Return(time.Duration(0), errors.NewNoIntervalsError(9)).Once()

	require.NoError(t, NewElapsedCommand(app).Execute(ctx, []string{"4"}))
	assert.Equal(t, "08:13\n", out.String())

	err := NewElapsedCommand(app).Execute(ctx, []string{"9"})
	assert.EqualError(t, err, "failed to compute elapsed time: task 9 has never been started")
}
