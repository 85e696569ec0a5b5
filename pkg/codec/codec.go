package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Writer encodes varints and raw byte runs onto an io.Writer.
type Writer struct {
	w   io.Writer
	buf [binary.MaxVarintLen64]byte
}

// NewWriter creates a Writer targeting w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Uvarint writes v as an unsigned varint.
func (w *Writer) Uvarint(v uint64) error {
	n := binary.PutUvarint(w.buf[:], v)
	if _, err := w.w.Write(w.buf[:n]); err != nil {
		return fmt.Errorf("codec: write uvarint: %w", err)
	}
	return nil
}

// Bytes writes b as a raw run with no length prefix. Callers are
// expected to have written the length separately.
func (w *Writer) Bytes(b []byte) error {
	if _, err := w.w.Write(b); err != nil {
		return fmt.Errorf("codec: write bytes: %w", err)
	}
	return nil
}

// Reader decodes varints and raw byte runs from an io.Reader.
// Input is buffered internally; do not mix reads on the underlying
// reader with reads through a Reader.
type Reader struct {
	r *bufio.Reader
}

// NewReader creates a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Uvarint reads one unsigned varint.
func (r *Reader) Uvarint() (uint64, error) {
	v, err := binary.ReadUvarint(r.r)
	if err != nil {
		if err == io.EOF {
			return 0, io.ErrUnexpectedEOF
		}
		return 0, fmt.Errorf("codec: read uvarint: %w", err)
	}
	return v, nil
}

// Bytes reads exactly n raw bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("codec: read bytes: negative length %d", n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r.r, b); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("codec: read %d bytes: %w", n, err)
	}
	return b, nil
}
