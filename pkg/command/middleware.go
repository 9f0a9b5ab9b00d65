package command

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"
)

// ExecutionContext carries request metadata through the middleware chain.
type ExecutionContext struct {
	Context   context.Context
	Command   string
	Handler   Handler
	CallID    string
	Params    Params
	StartTime time.Time
	Metadata  map[string]any
}

// Executor runs a command and returns its data or a fault.
type Executor func(ctx *ExecutionContext) (map[string]any, error)

// Middleware wraps an Executor with additional behavior.
type Middleware func(next Executor) Executor

// Chain composes middlewares in order (first middleware is outermost).
func Chain(middlewares ...Middleware) Middleware {
	return func(final Executor) Executor {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// Recover converts handler panics into faults so no dispatch ever
// escapes the router as a process-level failure.
func Recover() Middleware {
	return func(next Executor) Executor {
		return func(ctx *ExecutionContext) (data map[string]any, err error) {
			defer func() {
				if rec := recover(); rec != nil {
					if ctx.Metadata == nil {
						ctx.Metadata = map[string]any{}
					}
					ctx.Metadata["panic_stack"] = string(debug.Stack())
					err = Errorf(CodeUnknown, "command %q panicked: %v", ctx.Command, rec)
				}
			}()
			return next(ctx)
		}
	}
}

// Logging records every dispatch with its outcome and duration.
func Logging(logger *slog.Logger) Middleware {
	return func(next Executor) Executor {
		return func(ctx *ExecutionContext) (map[string]any, error) {
			if logger == nil {
				return next(ctx)
			}
			data, err := next(ctx)
			log := logger.With(
				slog.String("command", ctx.Command),
				slog.String("call_id", ctx.CallID),
				slog.Duration("duration", time.Since(ctx.StartTime)),
			)
			if err != nil {
				cerr := Classify(err)
				log.Warn("command failed",
					slog.String("code", string(cerr.Code)),
					slog.String("error", cerr.Message))
				return data, err
			}
			log.Info("command completed")
			return data, nil
		}
	}
}
