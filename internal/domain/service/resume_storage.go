package service

import "context"

// ResumeStorage defines the interface for persisting uploaded resume artifacts
// in a remote object store. The whole object is held in memory for the
// duration of the call; acceptable file size is bounded by the HTTP layer.
type ResumeStorage interface {
	// Upload streams the buffer to the object store as a single unit and
	// returns a stable, publicly dereferenceable URL. On store-side failure
	// it returns an error and nothing must be persisted by the caller.
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}
