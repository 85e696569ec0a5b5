//go:build fuzz
// +build fuzz

package codec

import (
	"bytes"
	"testing"
)

// FuzzUvarint_RoundTrip tests varint encode/decode round-trip with random inputs
func FuzzUvarint_RoundTrip(f *testing.F) {
	// Add seed corpus
	f.Add(uint64(0))
	f.Add(uint64(1))
	f.Add(uint64(127))
	f.Add(uint64(128))
	f.Add(uint64(1) << 63)
	f.Add(^uint64(0))

	f.Fuzz(func(t *testing.T, v uint64) {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		if err := w.Uvarint(v); err != nil {
			t.Fatalf("Uvarint write failed for %d: %v", v, err)
		}

		r := NewReader(&buf)
		got, err := r.Uvarint()
		if err != nil {
			t.Fatalf("Uvarint read failed for %d: %v", v, err)
		}
		if got != v {
			t.Errorf("round-trip mismatch: got %d, want %d", got, v)
		}
	})
}

// FuzzReader_MalformedStream tests that decoding a snapshot-shaped
// entry stream from arbitrary bytes never panics
func FuzzReader_MalformedStream(f *testing.F) {
	// Add seed corpus of malformed streams
	f.Add([]byte{})
	f.Add([]byte{0x00})
	f.Add([]byte{0x01})
	f.Add([]byte{0x01, 0x00, 0x00})
	f.Add([]byte{0x01, 0x05, 0xAA}) // size claims more bytes than follow
	f.Add([]byte{0x01, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x80}) // huge size field
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}) // overlong varint

	f.Fuzz(func(t *testing.T, data []byte) {
		// Skip extremely large inputs to avoid timeout
		if len(data) > 100000 {
			t.Skip("Input too large for fuzz test")
		}

		// Walk the stream the way a snapshot loader does: recid, size,
		// payload, repeated until recid 0 or an error. A caller rejects
		// oversized size fields before allocating; anything surviving
		// that bound must decode or fail with an error, never panic.
		r := NewReader(bytes.NewReader(data))
		for {
			recid, err := r.Uvarint()
			if err != nil || recid == 0 {
				return
			}
			size, err := r.Uvarint()
			if err != nil {
				return
			}
			if size == 0 {
				continue
			}
			if size-1 > uint64(len(data)) {
				// corrupt size field, rejected by the caller's bound
				return
			}
			if _, err := r.Bytes(int(size - 1)); err != nil {
				return
			}
		}
	})
}

// FuzzReader_Bytes tests that raw byte reads with arbitrary lengths
// fail cleanly instead of panicking
func FuzzReader_Bytes(f *testing.F) {
	// Add seed corpus
	f.Add([]byte{}, 0)
	f.Add([]byte{0x01, 0x02}, 2)
	f.Add([]byte{0x01}, 5)
	f.Add([]byte{0x01, 0x02, 0x03}, -1)

	f.Fuzz(func(t *testing.T, data []byte, n int) {
		if len(data) > 100000 || n > 100000 {
			t.Skip("Input too large for fuzz test")
		}

		r := NewReader(bytes.NewReader(data))
		b, err := r.Bytes(n)
		if n < 0 && err == nil {
			t.Errorf("negative length %d must fail", n)
		}
		if err == nil && len(b) != n {
			t.Errorf("short read without error: got %d bytes, want %d", len(b), n)
		}
	})
}
