// Package jsondb implements the record stores as JSON collections serialized
// wholesale into a storage slot, mimicking a remote persistence API.
//
// Every read re-parses the full stored blob and every mutation writes the
// full collection back; there is no cache across calls. Mutations within one
// process are serialized per repository, but writers in separate processes
// race on the whole snapshot and the last write wins. An optional artificial
// latency is applied once per operation to emulate remote-call behavior.
package jsondb

import (
	"context"
	"time"
)

// delay simulates remote-call latency before an operation touches its slot.
// It honors context cancellation; a zero latency disables it.
func delay(ctx context.Context, latency time.Duration) error {
	if latency <= 0 {
		return nil
	}
	timer := time.NewTimer(latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func containsInt(ids []int, id int) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}
