package modeladapter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/germanamz/drsarcastic/pkg/sessionctx"
)

// Middleware wraps a Completer with additional behavior.
type Middleware func(next Completer) Completer

// Chain applies middlewares so that the first one is the outermost wrapper.
func Chain(c Completer, mws ...Middleware) Completer {
	for i := len(mws) - 1; i >= 0; i-- {
		c = mws[i](c)
	}
	return c
}

// --- Recovery middleware ---

// Recovery returns a Middleware that converts panics in the wrapped
// Completer into ErrCompletionFailed errors.
func Recovery() Middleware {
	return func(next Completer) Completer {
		return CompleterFunc(func(ctx context.Context, prompt string) (text string, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = Fail(fmt.Errorf("completer panicked: %v", r))
				}
			}()

			return next.Complete(ctx, prompt)
		})
	}
}

// --- Logger middleware ---

// Logger returns a Middleware that logs each completion with its duration
// and, on failure, the cause. Prompt and reply bodies are not logged. The
// session ID found in the context, if any, is attached to every record.
func Logger(log *slog.Logger, model string) Middleware {
	return func(next Completer) Completer {
		return CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
			log := log
			if id := sessionctx.SessionIDFromContext(ctx); id != "" {
				log = log.With("session", id)
			}

			log.DebugContext(ctx, "completion started", "model", model, "prompt_len", len(prompt))

			start := time.Now()

			text, err := next.Complete(ctx, prompt)

			duration := time.Since(start)

			if err != nil {
				log.ErrorContext(ctx, "completion failed",
					"model", model,
					"duration", duration,
					"error", err,
				)
			} else {
				log.InfoContext(ctx, "completion finished",
					"model", model,
					"duration", duration,
					"reply_len", len(text),
				)
			}

			return text, err
		})
	}
}
