package orchestrator

import (
	"context"
	"log"
	"time"

	"handshake/internal/models"
)

// Watch polls Refresh at the given interval and feeds each snapshot to
// fn until the context is cancelled. The watcher's lifetime is its
// context: when the caller navigates away, in-flight results are
// discarded rather than delivered to a disposed view.
func Watch(ctx context.Context, svc Service, txID string, actor models.Actor, interval time.Duration, fn func(*Snapshot)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	deliver := func() {
		snap, err := svc.Refresh(ctx, txID, actor)
		if err != nil {
			// Reads retry on the next tick; nothing to unwind.
			log.Printf("refresh failed for %s: %v", txID, err)
			return
		}
		if ctx.Err() != nil {
			return
		}
		fn(snap)
	}

	deliver()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deliver()
		}
	}
}
