package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the fixed length of the file header in bytes.
const HeaderSize = 8

// Magic identifies files written by this engine.
const Magic = 0x4A

// Type tags distinguish the store variants sharing the header layout.
const (
	TypeRecordStore byte = 1
)

var (
	// ErrWrongFormat means the header magic or type tag did not match;
	// the file is not a recognized store of the expected kind.
	ErrWrongFormat = errors.New("codec: wrong file format")

	// ErrNewerFormat means the reserved header fields were non-zero;
	// the file was written by a newer, incompatible format revision.
	ErrNewerFormat = errors.New("codec: file uses a newer format revision")
)

// PackHeader builds the 8-byte header for the given store type.
// The two reserved fields are always zero in the current revision.
func PackHeader(typeTag byte) [HeaderSize]byte {
	var h [HeaderSize]byte
	h[0] = Magic
	h[1] = typeTag
	return h
}

// WriteHeader writes a fresh header for the given store type.
func WriteHeader(w io.Writer, typeTag byte) error {
	h := PackHeader(typeTag)
	if _, err := w.Write(h[:]); err != nil {
		return fmt.Errorf("codec: write header: %w", err)
	}
	return nil
}

// ReadHeader reads and validates a header, expecting the given store
// type. It fails with ErrWrongFormat on a magic or type mismatch and
// with ErrNewerFormat if either reserved field is non-zero.
func ReadHeader(r io.Reader, typeTag byte) error {
	var h [HeaderSize]byte
	if _, err := io.ReadFull(r, h[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrWrongFormat
		}
		return fmt.Errorf("codec: read header: %w", err)
	}
	if h[0] != Magic || h[1] != typeTag {
		return ErrWrongFormat
	}
	reserved16 := binary.BigEndian.Uint16(h[2:4])
	reserved32 := binary.BigEndian.Uint32(h[4:8])
	if reserved16 != 0 || reserved32 != 0 {
		return ErrNewerFormat
	}
	return nil
}
