package cli

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"worklog/internal/errors"
	"worklog/internal/services"
)

func TestAutoEndCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("closes intervals", func(t *testing.T) {
		app, m, out := setupTestAppWithMockBusinessAPI(t)
		m.On("RunAutoEnd", mock.Anything).Return(&services.AutoEndResult{Found: 1200, Closed: 1199}, nil)

		require.NoError(t, NewAutoEndCommand(app).Execute(ctx, nil))
		assert.Equal(t, "Closed 1,199 of 1,200 running intervals\n", out.String())
	})

	t.Run("skipped", func(t *testing.T) {
		app, m, out := setupTestAppWithMockBusinessAPI(t)
		m.On("RunAutoEnd", mock.Anything).Return(&services.AutoEndResult{Skipped: true}, nil)

		require.NoError(t, NewAutoEndCommand(app).Execute(ctx, nil))
		assert.Equal(t, "Auto-end is already running\n", out.String())
	})
}

func TestCleanupCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("reports counts", func(t *testing.T) {
		app, m, out := setupTestAppWithMockBusinessAPI(t)
		m.On("RunCleanup", mock.Anything).Return(&services.CleanupResult{
			Cutoff:           testNow.Add(-30 * 24 * time.Hour),
			TasksDeleted:     2,
			IntervalsDeleted: 3450,
			UsersDeleted:     1,
		}, nil)

		require.NoError(t, NewCleanupCommand(app).Execute(ctx, nil))
		assert.Equal(t, "Removed data created before 2024-04-20 12:00\n"+
			"  tasks:     2\n"+
			"  intervals: 3,450\n"+
			"  users:     1\n", out.String())
	})

	t.Run("failed subsystem", func(t *testing.T) {
		app, m, _ := setupTestAppWithMockBusinessAPI(t)
		m.On("RunCleanup", mock.Anything).
			Return(nil, errors.NewCleanupFailedError("users", stderrors.New("locked")))

		err := NewCleanupCommand(app).Execute(ctx, nil)
		assert.EqualError(t, err, "failed to clean up: cleanup of users failed. It will be retried on the next scheduled run.")
	})
}
