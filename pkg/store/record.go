package store

import "bytes"

// Record is the value held by one recid slot: either the null sentinel
// ("record exists but holds no value") or a byte payload, which may be
// empty. The sentinel is a tagged variant, not a zero-length slice, so
// an explicitly-null record never compares equal to an empty payload.
type Record struct {
	null bool
	data []byte
}

// NullRecord returns the null sentinel.
func NullRecord() Record {
	return Record{null: true}
}

// BytesRecord wraps a payload. The slice is not copied; callers must
// not mutate it after handing it over.
func BytesRecord(b []byte) Record {
	if b == nil {
		b = []byte{}
	}
	return Record{data: b}
}

// IsNull reports whether r is the null sentinel.
func (r Record) IsNull() bool {
	return r.null
}

// Bytes returns the payload. It is nil for the null sentinel.
func (r Record) Bytes() []byte {
	if r.null {
		return nil
	}
	return r.data
}

// Size returns the payload length in bytes; 0 for the null sentinel.
func (r Record) Size() int {
	return len(r.data)
}

// Equal reports whether two records hold the same value. The null
// sentinel only equals another null sentinel, never an empty payload.
func (r Record) Equal(o Record) bool {
	if r.null || o.null {
		return r.null == o.null
	}
	return bytes.Equal(r.data, o.data)
}
