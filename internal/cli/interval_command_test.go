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

func TestIntervalShowCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("closed interval", func(t *testing.T) {
		app, m, out := setupTestAppWithMockBusinessAPI(t)
		interval := &domain.Interval{
			ID:        11,
			TaskID:    3,
			StartTime: testNow.Add(-4 * time.Hour),
			EndTime:   timePtr(testNow.Add(-3*time.Hour - 35*time.Minute)),
			State:     domain.StatePaused,
		}
		m.On("GetInterval", mock.Anything, int64(11)).Return(testSession(3, "focus", interval, time.Hour), nil)

		require.NoError(t, NewIntervalShowCommand(app).Execute(ctx, []string{"11"}))
		assert.Equal(t, "Interval 11 of task 3: focus\n"+
			"  paused, 2024-05-20 08:00 to 2024-05-20 08:25\n"+
			"  Length: 00:25\n", out.String())
	})

	t.Run("running interval", func(t *testing.T) {
		app, m, out := setupTestAppWithMockBusinessAPI(t)
		interval := &domain.Interval{ID: 12, TaskID: 3, StartTime: testNow.Add(-90 * time.Minute), State: domain.StateOngoing}
		m.On("GetInterval", mock.Anything, int64(12)).Return(testSession(3, "focus", interval, 90*time.Minute), nil)

		require.NoError(t, NewIntervalShowCommand(app).Execute(ctx, []string{"12"}))
		assert.Equal(t, "Interval 12 of task 3: focus\n  running since 2024-05-20 10:30\n  Length: 01:30\n", out.String())
	})

	t.Run("unknown interval", func(t *testing.T) {
		app, m, _ := setupTestAppWithMockBusinessAPI(t)
		m.On("GetInterval", mock.Anything, int64(99)).Return(nil, errors.NewIntervalNotFoundError("99"))

		err := NewIntervalShowCommand(app).Execute(ctx, []string{"99"})
		assert.EqualError(t, err, "failed to show interval: interval not found: 99")
	})

	t.Run("bad id", func(t *testing.T) {
		app, _, _ := setupTestAppWithMockBusinessAPI(t)
		err := NewIntervalShowCommand(app).Execute(ctx, []string{"0"})
		assert.EqualError(t, err, "invalid input for interval ID: must be a positive integer")
	})
}

func TestIntervalDeleteCommand_Execute(t *testing.T) {
	ctx := context.Background()
	app, m, out := setupTestAppWithMockBusinessAPI(t)
	interval := &domain.Interval{ID: 11, TaskID: 3, StartTime: testNow.Add(-time.Hour), State: domain.StateOngoing}
	m.On("DeleteInterval", mock.Anything, int64(11)).Return(testSession(3, "focus", interval, 20*time.Minute), nil)

	require.NoError(t, NewIntervalDeleteCommand(app).Execute(ctx, []string{"11"}))
	assert.Equal(t, "Deleted interval 11 of task 3: focus (00:20 total)\n", out.String())

	assert.ErrorContains(t, NewIntervalDeleteCommand(app).Execute(ctx, nil), "usage: worklog interval delete")
}
