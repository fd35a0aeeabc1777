package toolbox

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Middleware wraps the handler of the named tool, returning a new handler
// with added behaviour.
type Middleware func(name string, next Handler) Handler

// Chain applies middleware to h. The first middleware is the outermost.
func Chain(name string, h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](name, h)
	}

	return h
}

// --- Recovery middleware ---

// Recovery returns a Middleware that catches handler panics and converts
// them to errors.
func Recovery() Middleware {
	return func(name string, next Handler) Handler {
		return func(ctx context.Context, input json.RawMessage) (out any, err error) {
			defer func() {
				if r := recover(); r != nil {
					out = nil
					err = fmt.Errorf("tool %s panicked: %v", name, r)
				}
			}()

			return next(ctx, input)
		}
	}
}

// --- Logger middleware ---

// Logger returns a Middleware that logs tool start, duration, and error.
func Logger(log *slog.Logger) Middleware {
	return func(name string, next Handler) Handler {
		return func(ctx context.Context, input json.RawMessage) (any, error) {
			log.DebugContext(ctx, "tool started", "tool", name)

			start := time.Now()

			out, err := next(ctx, input)

			duration := time.Since(start)

			if err != nil {
				log.ErrorContext(ctx, "tool finished with error",
					"tool", name,
					"duration", duration,
					"error", err,
				)
			} else {
				log.InfoContext(ctx, "tool finished",
					"tool", name,
					"duration", duration,
				)
			}

			return out, err
		}
	}
}
