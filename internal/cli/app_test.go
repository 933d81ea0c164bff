package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklog/internal/errors"
)

func TestParseTimeShorthand(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{input: "30m", expected: 30 * time.Minute},
		{input: "2h", expected: 2 * time.Hour},
		{input: "1d", expected: 24 * time.Hour},
		{input: "2w", expected: 14 * 24 * time.Hour},
		{input: "3mo", expected: 90 * 24 * time.Hour},
		{input: "1y", expected: 365 * 24 * time.Hour},
		{input: "h", wantErr: true},
		{input: "2x", wantErr: true},
		{input: "-1d", wantErr: true},
		{input: "292y", expected: 292 * 365 * 24 * time.Hour},
		{input: "300y", wantErr: true},
		{input: "99999999999999999999m", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := parseTimeShorthand(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestParseTaskID(t *testing.T) {
	id, err := parseTaskID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"0", "-3", "abc", ""} {
		_, err := parseTaskID(bad)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput), bad)
	}
}

func TestResolveRange(t *testing.T) {
	app, _, _ := setupTestAppWithMockBusinessAPI(t)

	t.Run("defaults to today", func(t *testing.T) {
		r, err := app.resolveRange("", "")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), r.Start)
		assert.Equal(t, testNow, r.End)
	})

	t.Run("shorthand and absolute", func(t *testing.T) {
		r, err := app.resolveRange("2h", "2024-05-20 11:30")
		require.NoError(t, err)
		assert.Equal(t, testNow.Add(-2*time.Hour), r.Start)
		assert.Equal(t, time.Date(2024, 5, 20, 11, 30, 0, 0, time.UTC), r.End)
	})

	t.Run("date only and RFC 3339", func(t *testing.T) {
		r, err := app.resolveRange("2024-05-01", "2024-05-02T10:00:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), r.Start)
		assert.Equal(t, time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC), r.End)
	})

	t.Run("shorthand beyond the representable range", func(t *testing.T) {
		_, err := app.resolveRange("300y", "")
		require.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
		assert.Contains(t, err.Error(), "from")
		assert.Contains(t, err.Error(), "too far back")
	})

	t.Run("unparseable", func(t *testing.T) {
		_, err := app.resolveRange("yesterday", "")
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})
}
