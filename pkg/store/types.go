package store

import "github.com/gisdevelope/mapdb/pkg/serializer"

// Options configures a store instance.
type Options struct {
	// ThreadSafe gates all operations behind a reader/writer lock.
	// When false the lock degrades to a no-op; the caller guarantees
	// single-threaded access.
	ThreadSafe bool

	// Paranoid runs a full Verify before Close releases resources.
	Paranoid bool

	// DeleteFilesAfterClose removes every backing file when a
	// persistent store closes (ephemeral/test mode). Ignored by the
	// in-memory variant.
	DeleteFilesAfterClose bool
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{ThreadSafe: true}
}

// Stats is a point-in-time diagnostic snapshot of a store.
type Stats struct {
	Records    int    `json:"records"`
	FreeRecids int    `json:"free_recids"`
	MaxRecid   uint64 `json:"max_recid"`
	// Version is the last committed generation, or -1 when nothing has
	// been committed (always -1 for the in-memory variant).
	Version int64 `json:"version"`
}

// Store is the recid-indexed record store contract.
type Store interface {
	// Preallocate reserves a recid holding the null sentinel.
	Preallocate() (uint64, error)

	// Put serializes value (nil stores the null sentinel) into a fresh
	// recid and returns it.
	Put(value any, s serializer.Serializer) (uint64, error)

	// Get returns the deserialized value, or nil if the record holds
	// the null sentinel. A recid with no live record fails with
	// VoidRecordError.
	Get(recid uint64, s serializer.Serializer) (any, error)

	// Update overwrites an existing record unconditionally.
	Update(recid uint64, value any, s serializer.Serializer) error

	// CompareAndSwap atomically replaces the record iff its current
	// value matches expected (nil expected matches only the null
	// sentinel). Returns whether the swap happened.
	CompareAndSwap(recid uint64, expected, update any, s serializer.Serializer) (bool, error)

	// Delete removes the record and recycles its recid.
	Delete(recid uint64, s serializer.Serializer) error

	// Commit makes the current state durable. No-op for the in-memory
	// variant.
	Commit() error

	// Rollback discards uncommitted mutations, restoring the last
	// committed state.
	Rollback() error

	// Compact shrinks the allocable recid space after bulk deletions.
	Compact() error

	// Verify audits the table/free-list/maxRecid invariants. O(maxRecid);
	// intended for diagnostics, not the hot path.
	Verify() error

	// Clear drops every record and the free list.
	Clear() error

	// Recids returns an unordered snapshot of the live recids.
	Recids() ([]uint64, error)

	// Files lists the existing backing paths, if any.
	Files() []string

	// Stats reports diagnostic counters.
	Stats() Stats

	// Close releases resources. Idempotent.
	Close() error

	// IsClosed reports whether Close has run.
	IsClosed() bool
}
