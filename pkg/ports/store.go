package ports

import "context"

// Entry is a cached render result.
type Entry struct {
	// Data is the PNG image.
	Data []byte
	// Filename is the suggested download filename.
	Filename string
}

// Store holds render results between the upload POST and the follow-up
// GET/download. Implementations must be safe for concurrent use.
//
// The service uses it as a single-slot cache: Clear runs before every new
// upload, so at most one entry is resident at a time. The interface stays
// keyed so a per-session or distributed backend can be swapped in without
// touching the handlers.
type Store interface {
	// Put stores an entry under id, replacing any existing entry.
	Put(ctx context.Context, id string, entry Entry) error

	// Get returns the entry for id. The boolean reports presence.
	Get(ctx context.Context, id string) (Entry, bool)

	// Delete removes the entry for id, if present.
	Delete(ctx context.Context, id string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error
}
