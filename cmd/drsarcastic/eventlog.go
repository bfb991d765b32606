package main

import (
	"context"
	"log/slog"
	"sync"

	"github.com/germanamz/drsarcastic/pkg/chats/message"
	"github.com/germanamz/drsarcastic/pkg/engine"
)

// startEventLog subscribes to the engine events and writes them to log.
// Message text is never logged, only IDs, roles, and lengths. The returned
// function cancels the watcher and waits for it to exit, so no event is
// logged after it returns.
func startEventLog(ctx context.Context, events *engine.EventBus, log *slog.Logger) context.CancelFunc {
	watchCtx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	sub := events.Subscribe(64)

	wg.Go(func() {
		defer events.Unsubscribe(sub)
		for {
			select {
			case <-watchCtx.Done():
				return
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				logEvent(log, ev)
			}
		}
	})

	return func() {
		cancel()
		wg.Wait()
	}
}

func logEvent(log *slog.Logger, ev engine.Event) {
	attrs := []any{"kind", string(ev.Kind), "session", ev.SessionID}

	switch d := ev.Data.(type) {
	case message.Message:
		attrs = append(attrs, "message", d.ID, "role", d.Role.String(), "len", len(d.Text))
	case engine.SendResult:
		attrs = append(attrs, "duration", d.Duration, "failed", d.Failed)
	case string:
		attrs = append(attrs, "language", d)
	case error:
		log.Warn("engine event", append(attrs, "error", d)...)
		return
	}

	log.Debug("engine event", attrs...)
}
