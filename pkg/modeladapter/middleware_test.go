package modeladapter_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/germanamz/drsarcastic/pkg/modeladapter"
	"github.com/germanamz/drsarcastic/pkg/sessionctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- test helpers ---

func stubCompleter(text string, err error) modeladapter.Completer {
	return modeladapter.CompleterFunc(func(_ context.Context, _ string) (string, error) {
		return text, err
	})
}

func panicCompleter() modeladapter.Completer {
	return modeladapter.CompleterFunc(func(_ context.Context, _ string) (string, error) {
		panic("something went wrong")
	})
}

// --- Chain tests ---

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) modeladapter.Middleware {
		return func(next modeladapter.Completer) modeladapter.Completer {
			return modeladapter.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
				order = append(order, name)
				return next.Complete(ctx, prompt)
			})
		}
	}

	c := modeladapter.Chain(stubCompleter("ok", nil), mark("outer"), mark("inner"))
	text, err := c.Complete(context.Background(), "p")

	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestChainNoMiddlewares(t *testing.T) {
	c := modeladapter.Chain(stubCompleter("plain", nil))
	text, err := c.Complete(context.Background(), "p")

	require.NoError(t, err)
	assert.Equal(t, "plain", text)
}

// --- Recovery tests ---

func TestRecovery(t *testing.T) {
	wrapped := modeladapter.Recovery()(panicCompleter())
	text, err := wrapped.Complete(context.Background(), "p")

	require.Error(t, err)
	assert.Empty(t, text)
	assert.ErrorIs(t, err, modeladapter.ErrCompletionFailed)
	assert.Contains(t, err.Error(), "something went wrong")
}

func TestRecoveryPassesThrough(t *testing.T) {
	wrapped := modeladapter.Recovery()(stubCompleter("fine", nil))
	text, err := wrapped.Complete(context.Background(), "p")

	require.NoError(t, err)
	assert.Equal(t, "fine", text)
}

// --- Logger tests ---

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	wrapped := modeladapter.Logger(log, "test-model")(stubCompleter("reply", nil))
	text, err := wrapped.Complete(context.Background(), "secret prompt")

	require.NoError(t, err)
	assert.Equal(t, "reply", text)

	output := buf.String()
	assert.Contains(t, output, "completion started")
	assert.Contains(t, output, "completion finished")
	assert.Contains(t, output, "test-model")
	assert.NotContains(t, output, "secret prompt")
}

func TestLoggerWithError(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	wrapped := modeladapter.Logger(log, "err-model")(stubCompleter("", errors.New("boom")))
	_, err := wrapped.Complete(context.Background(), "p")

	require.Error(t, err)
	output := buf.String()
	assert.Contains(t, output, "completion failed")
	assert.Contains(t, output, "boom")
}

func TestLoggerTagsSession(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx := sessionctx.WithSessionID(context.Background(), "session-7")
	wrapped := modeladapter.Logger(log, "m")(stubCompleter("ok", nil))
	_, err := wrapped.Complete(ctx, "p")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "session=session-7")
}
