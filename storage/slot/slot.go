// Package slot provides named single-blob stores. A slot holds one opaque
// value scoped to the application; collections are serialized wholesale into
// it and re-read in full, there is no partial access.
package slot

import "context"

// Slot stores a single opaque blob under an application-scoped name.
type Slot interface {
	// Read returns the stored blob. A slot that has never been written
	// returns nil data and no error.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored blob.
	Write(ctx context.Context, data []byte) error
}
