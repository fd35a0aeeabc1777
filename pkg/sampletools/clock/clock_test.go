package clock

import (
	"context"
	"testing"
	"time"

	"github.com/germanamz/toolhost/pkg/tools/toolbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2024, 3, 9, 14, 5, 6, 789_000_000, loc)

	assert.Equal(t, "2024-03-09T12:05:06.789Z", Format(ts))
}

func TestGetCurrentTimeFixed(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	tb := New(func() time.Time { return fixed }).Tools()

	result := tb.Call(context.Background(), toolbox.Invocation{ToolName: ToolName})

	require.False(t, result.IsError, result.Message)
	assert.Equal(t, Output{CurrentTimeUTC: "2025-01-02T03:04:05.000Z"}, result.Payload)
}

func TestGetCurrentTimeWallClock(t *testing.T) {
	tb := New(nil).Tools()

	result := tb.Call(context.Background(), toolbox.Invocation{ToolName: ToolName})
	require.False(t, result.IsError, result.Message)

	out, ok := result.Payload.(Output)
	require.True(t, ok)

	parsed, err := time.Parse(time.RFC3339, out.CurrentTimeUTC)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, 5*time.Second)
	assert.True(t, len(out.CurrentTimeUTC) > 0 && out.CurrentTimeUTC[len(out.CurrentTimeUTC)-1] == 'Z')
}

func TestToolHasNoParams(t *testing.T) {
	tool, ok := New(nil).Tools().Get(ToolName)
	require.True(t, ok)

	assert.Empty(t, tool.Params)
	assert.Equal(t, "Returns the current UTC time.", tool.Description)
}
