// Package defaults provides the built-in toolbox. It composes the sample
// toolboxes into the single registry served by every front-end.
package defaults

import (
	"github.com/germanamz/toolhost/pkg/sampletools/clock"
	"github.com/germanamz/toolhost/pkg/sampletools/greeting"
	"github.com/germanamz/toolhost/pkg/tools/toolbox"
)

// New builds a toolbox by merging the given toolboxes in order. Tool names
// must be unique across all of them.
func New(toolboxes ...*toolbox.ToolBox) (*toolbox.ToolBox, error) {
	tb := toolbox.New()
	for _, other := range toolboxes {
		if err := tb.Merge(other); err != nil {
			return nil, err
		}
	}

	return tb, nil
}

// Builtin returns the built-in tools: hello_world followed by
// get_current_time.
func Builtin() *toolbox.ToolBox {
	tb, err := New(greeting.Tools(), clock.New(nil).Tools())
	if err != nil {
		// The built-in names are fixed and distinct.
		panic(err)
	}

	return tb
}
