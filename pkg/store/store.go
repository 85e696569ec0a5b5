package store

import (
	"bytes"
	"fmt"

	"github.com/gisdevelope/mapdb/pkg/serializer"
)

// MemStore is the non-persistent store variant: the full operation
// contract over an in-memory record table, with Commit a no-op. It is
// the reference engine against which fancier variants are validated.
type MemStore struct {
	mu     guard
	tbl    recordTable
	alloc  *allocator
	opts   Options
	closed bool
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts Options) *MemStore {
	return &MemStore{
		mu:    newGuard(opts.ThreadSafe),
		tbl:   newRecordTable(),
		alloc: newAllocator(),
		opts:  opts,
	}
}

// encodeValue serializes value into a record; a nil value becomes the
// null sentinel.
func encodeValue(value any, s serializer.Serializer) (Record, error) {
	if value == nil {
		return NullRecord(), nil
	}
	var buf bytes.Buffer
	if err := s.Serialize(&buf, value); err != nil {
		return Record{}, fmt.Errorf("store: serialize: %w", err)
	}
	return BytesRecord(buf.Bytes()), nil
}

// decodeValue deserializes a record; the null sentinel becomes nil.
func decodeValue(rec Record, s serializer.Serializer) (any, error) {
	if rec.IsNull() {
		return nil, nil
	}
	v, err := s.Deserialize(bytes.NewReader(rec.Bytes()), rec.Size())
	if err != nil {
		return nil, fmt.Errorf("store: deserialize: %w", err)
	}
	return v, nil
}

// Preallocate reserves a recid holding the null sentinel.
func (m *MemStore) Preallocate() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}
	return m.preallocateLocked()
}

func (m *MemStore) preallocateLocked() (uint64, error) {
	recid := m.alloc.allocate()
	if _, ok := m.tbl.read(recid); ok {
		return 0, corruptf("allocator produced live recid %d", recid)
	}
	m.tbl.write(recid, NullRecord())
	return recid, nil
}

// Put serializes value into a freshly allocated recid.
func (m *MemStore) Put(value any, s serializer.Serializer) (uint64, error) {
	rec, err := encodeValue(value, s)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}
	recid, err := m.preallocateLocked()
	if err != nil {
		return 0, err
	}
	m.tbl.write(recid, rec)
	return recid, nil
}

// Get returns the value stored under recid.
func (m *MemStore) Get(recid uint64, s serializer.Serializer) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	rec, ok := m.tbl.read(recid)
	if !ok {
		return nil, &VoidRecordError{Recid: recid}
	}
	return decodeValue(rec, s)
}

// Update overwrites an existing record unconditionally.
func (m *MemStore) Update(recid uint64, value any, s serializer.Serializer) error {
	rec, err := encodeValue(value, s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if _, ok := m.tbl.read(recid); !ok {
		return &VoidRecordError{Recid: recid}
	}
	m.tbl.write(recid, rec)
	return nil
}

// CompareAndSwap replaces the record iff its current value matches
// expected. The whole check-and-set runs under one write-exclusive
// critical section, so no other mutation can interleave.
func (m *MemStore) CompareAndSwap(recid uint64, expected, update any, s serializer.Serializer) (bool, error) {
	expectedRec, err := encodeValue(expected, s)
	if err != nil {
		return false, err
	}
	updateRec, err := encodeValue(update, s)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false, ErrClosed
	}
	current, ok := m.tbl.read(recid)
	if !ok {
		return false, &VoidRecordError{Recid: recid}
	}
	if !current.Equal(expectedRec) {
		return false, nil
	}
	m.tbl.write(recid, updateRec)
	return true, nil
}

// Delete removes the record and pushes its recid onto the free list.
func (m *MemStore) Delete(recid uint64, s serializer.Serializer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if !m.tbl.remove(recid) {
		return &VoidRecordError{Recid: recid}
	}
	return m.alloc.release(recid)
}

// Commit is a no-op: the in-memory variant has nothing to flush.
func (m *MemStore) Commit() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

// Rollback is not supported without a committed generation to reload.
func (m *MemStore) Rollback() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	return ErrRollbackUnsupported
}

// Compact discards free recids above the highest live recid and lowers
// the high-water mark to it.
func (m *MemStore) Compact() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.alloc.compact(m.tbl.highest())
	return nil
}

// Verify audits the store invariants: every free recid absent from the
// table and within [1, maxRecid], every table key within [1, maxRecid],
// and every recid in that range live in exactly one of the two.
func (m *MemStore) Verify() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return m.verifyLocked()
}

func (m *MemStore) verifyLocked() error {
	max := m.alloc.max
	for _, recid := range m.alloc.free {
		if _, ok := m.tbl.read(recid); ok {
			return corruptf("recid %d is both free and live", recid)
		}
		if recid == 0 || recid > max {
			return corruptf("free recid %d outside [1, %d]", recid, max)
		}
	}
	for recid := range m.tbl {
		if recid == 0 || recid > max {
			return corruptf("live recid %d outside [1, %d]", recid, max)
		}
	}
	for recid := uint64(1); recid <= max; recid++ {
		_, live := m.tbl.read(recid)
		if !live && !m.alloc.isFree(recid) {
			return corruptf("recid %d neither live nor free", recid)
		}
	}
	return nil
}

// Clear drops every record and the free list back to the empty state.
func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.clearLocked()
	return nil
}

func (m *MemStore) clearLocked() {
	m.tbl = newRecordTable()
	m.alloc.clear()
}

// Recids returns an unordered snapshot of the live recids.
func (m *MemStore) Recids() ([]uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	return m.tbl.recids(), nil
}

// Files returns nil: the in-memory variant has no backing paths.
func (m *MemStore) Files() []string {
	return nil
}

// Stats reports diagnostic counters.
func (m *MemStore) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		Records:    len(m.tbl),
		FreeRecids: len(m.alloc.free),
		MaxRecid:   m.alloc.max,
		Version:    -1,
	}
}

// Equals reports whether two stores hold the same records with
// byte-identical payloads and the same free recids (order-insensitive).
func (m *MemStore) Equals(o *MemStore) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o.mu.RLock()
	defer o.mu.RUnlock()

	if len(m.tbl) != len(o.tbl) {
		return false
	}
	for recid, rec := range m.tbl {
		other, ok := o.tbl.read(recid)
		if !ok || !rec.Equal(other) {
			return false
		}
	}
	if len(m.alloc.freeSet) != len(o.alloc.freeSet) {
		return false
	}
	for recid := range m.alloc.freeSet {
		if !o.alloc.isFree(recid) {
			return false
		}
	}
	return true
}

// Close marks the store closed. Idempotent; with Options.Paranoid it
// verifies the invariants first.
func (m *MemStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeLocked()
}

func (m *MemStore) closeLocked() error {
	if m.closed {
		return nil
	}
	if m.opts.Paranoid {
		if err := m.verifyLocked(); err != nil {
			return err
		}
	}
	m.closed = true
	return nil
}

// IsClosed reports whether Close has run.
func (m *MemStore) IsClosed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}
