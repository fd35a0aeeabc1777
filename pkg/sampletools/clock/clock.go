// Package clock provides the get_current_time tool, which reports the current
// UTC time.
package clock

import (
	"context"
	"encoding/json"
	"time"

	"github.com/germanamz/toolhost/pkg/tools/toolbox"
)

// ToolName is the registered name of the clock tool.
const ToolName = "get_current_time"

// Layout is the ISO-8601 layout used for reported times. Times are in UTC, so
// the zone designator is always "Z".
const Layout = "2006-01-02T15:04:05.000Z07:00"

// Output is the result of get_current_time.
type Output struct {
	CurrentTimeUTC string `json:"currentTimeUtc"`
}

// Clock reads the time from a configurable source.
type Clock struct {
	now func() time.Time
}

// New creates a Clock. A nil now uses time.Now.
func New(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}

	return &Clock{now: now}
}

// Tools returns a ToolBox with the get_current_time tool.
func (c *Clock) Tools() *toolbox.ToolBox {
	tb := toolbox.New()
	_ = tb.Register(toolbox.Tool{
		Name:        ToolName,
		Description: "Returns the current UTC time.",
		Handler:     c.handle,
	})

	return tb
}

// Format renders t in UTC using Layout.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

func (c *Clock) handle(_ context.Context, _ json.RawMessage) (any, error) {
	return Output{CurrentTimeUTC: Format(c.now())}, nil
}
