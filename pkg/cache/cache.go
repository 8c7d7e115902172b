// Package cache provides the content-addressed store that holds rendered
// diagrams.
//
// Entries are written once and never expire: a key is derived from the
// content that produced the entry (see [Digest] and [EntryKey]), so an
// existing entry is always valid for its key.
//
// Two interfaces split the concern:
//
//   - [Blobs] is a plain byte store (Get/Set/Delete). [RedisBlobs] implements
//     it for a shared cache tier.
//   - [Store] is a Blobs whose entries live at stable paths that a document
//     can reference. [FileStore] is the production implementation,
//     [MemoryStore] backs tests, and [Tiered] puts a shared Blobs behind a
//     local Store.
package cache

import "context"

// Blobs is a byte store addressed by string keys.
type Blobs interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

// Store is a Blobs whose entries can be referenced by path.
type Store interface {
	Blobs

	// Has reports whether key is present without reading its contents.
	Has(ctx context.Context, key string) (bool, error)

	// Path returns the location an entry for key is (or would be) stored at.
	Path(key string) string
}
