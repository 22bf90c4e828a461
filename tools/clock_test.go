package tools

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iterbot/iterbot"
)

func pinnedClock() *Clock {
	fixed := time.Date(2025, 1, 15, 14, 32, 7, 0, time.UTC)
	return NewClock().WithTimeProvider(iterbot.NewMockTimeProvider(fixed))
}

func TestClock_Tools(t *testing.T) {
	clock := pinnedClock()

	type input struct {
		tool iterbot.Tool
		args map[string]any
	}

	tests := []struct {
		name     string
		input    input
		expected string
	}{
		{
			name:     "current time",
			input:    input{tool: clock.CurrentTime()},
			expected: "14:32:07",
		},
		{
			name:     "current date",
			input:    input{tool: clock.CurrentDate()},
			expected: "2025-01-15",
		},
		{
			name:     "datetime with default layout",
			input:    input{tool: clock.CurrentDateTime(), args: map[string]any{}},
			expected: "2025-01-15 14:32:07",
		},
		{
			name: "datetime with custom layout",
			input: input{
				tool: clock.CurrentDateTime(),
				args: map[string]any{"format": "02 Jan 2006"},
			},
			expected: "15 Jan 2025",
		},
		{
			name:     "epoch seconds",
			input:    input{tool: clock.EpochTime()},
			expected: "1736951527",
		},
		{
			name: "timezone aware time",
			input: input{
				tool: clock.TimezoneTime(),
				args: map[string]any{"timezone": "UTC"},
			},
			expected: "14:32:07 UTC+0000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.tool.Fn(context.Background(), tt.input.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClock_TimezoneTimeErrors(t *testing.T) {
	clock := pinnedClock()
	tool := clock.TimezoneTime()

	t.Run("missing timezone argument", func(t *testing.T) {
		_, err := tool.Fn(context.Background(), map[string]any{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema validation failed")
	})

	t.Run("unknown timezone", func(t *testing.T) {
		_, err := tool.Fn(context.Background(), map[string]any{"timezone": "Mars/Phobos"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown timezone")
	})
}

func TestClock_DateTimeRejectsBadFormatType(t *testing.T) {
	clock := pinnedClock()
	tool := clock.CurrentDateTime()

	_, err := tool.Fn(context.Background(), map[string]any{"format": float64(3)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}
