package store

import (
	"fmt"
	"io"

	"github.com/gisdevelope/mapdb/pkg/codec"
)

// Snapshot persistence: the whole record table serialized as a header
// followed by (recid, payload) pairs, recid 0 terminating the stream.
// The payload length field is shifted by one so 0 can mean the null
// sentinel: a stored value of n > 0 means n-1 payload bytes follow.

// maxSnapshotPayload bounds a single record's payload in a snapshot
// stream. A size field above it cannot come from a store this engine
// wrote and is rejected as corruption before any allocation happens.
const maxSnapshotPayload = 1 << 30

// SaveSnapshot writes the full record table to w under the read lock.
func (m *MemStore) SaveSnapshot(w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return m.writeSnapshotLocked(w)
}

func (m *MemStore) writeSnapshotLocked(w io.Writer) error {
	if err := codec.WriteHeader(w, codec.TypeRecordStore); err != nil {
		return err
	}
	cw := codec.NewWriter(w)
	for recid, rec := range m.tbl {
		if err := cw.Uvarint(recid); err != nil {
			return err
		}
		if rec.IsNull() {
			if err := cw.Uvarint(0); err != nil {
				return err
			}
			continue
		}
		if err := cw.Uvarint(uint64(rec.Size()) + 1); err != nil {
			return err
		}
		if err := cw.Bytes(rec.Bytes()); err != nil {
			return err
		}
	}
	// recid 0 terminates the stream
	return cw.Uvarint(0)
}

// LoadSnapshot replaces the store contents with the snapshot read from
// r, taken under the write lock. The free list is reconstructed as
// every recid in [1, maxObserved] absent from the loaded table.
func (m *MemStore) LoadSnapshot(r io.Reader) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	return m.loadSnapshotLocked(r)
}

func (m *MemStore) loadSnapshotLocked(r io.Reader) error {
	if err := codec.ReadHeader(r, codec.TypeRecordStore); err != nil {
		return err
	}

	tbl := newRecordTable()
	var maxObserved uint64
	cr := codec.NewReader(r)
	for {
		recid, err := cr.Uvarint()
		if err != nil {
			return fmt.Errorf("store: load snapshot: %w", err)
		}
		if recid == 0 {
			break
		}
		if _, dup := tbl[recid]; dup {
			return corruptf("snapshot contains recid %d twice", recid)
		}

		size, err := cr.Uvarint()
		if err != nil {
			return fmt.Errorf("store: load snapshot: %w", err)
		}
		if size > maxSnapshotPayload+1 {
			return corruptf("snapshot record %d claims %d payload bytes", recid, size-1)
		}
		rec := NullRecord()
		if size > 0 {
			data, err := cr.Bytes(int(size - 1))
			if err != nil {
				return fmt.Errorf("store: load snapshot: %w", err)
			}
			rec = BytesRecord(data)
		}
		tbl.write(recid, rec)
		if recid > maxObserved {
			maxObserved = recid
		}
	}

	m.tbl = tbl
	m.alloc.rebuild(maxObserved, tbl)
	return nil
}
