// Package serializer defines the pluggable value serialization contract
// consumed by the record store, together with a few stock
// implementations. The store itself never inspects payload contents
// beyond length and byte equality; everything about a value's shape
// lives here.
package serializer

import (
	"encoding/binary"
	"fmt"
	"io"

	jsonv2 "github.com/go-json-experiment/json"
)

// Serializer converts values to and from their byte representation.
// Deserialize is handed the exact payload length so implementations
// can read fixed-size runs without a framing protocol of their own.
type Serializer interface {
	Serialize(w io.Writer, value any) error
	Deserialize(r io.Reader, size int) (any, error)
}

// Bytes passes []byte payloads through untouched.
type Bytes struct{}

func (Bytes) Serialize(w io.Writer, value any) error {
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("serializer: expected []byte, got %T", value)
	}
	_, err := w.Write(b)
	return err
}

func (Bytes) Deserialize(r io.Reader, size int) (any, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// String stores Go strings as their UTF-8 bytes.
type String struct{}

func (String) Serialize(w io.Writer, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("serializer: expected string, got %T", value)
	}
	_, err := io.WriteString(w, s)
	return err
}

func (String) Deserialize(r io.Reader, size int) (any, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return string(b), nil
}

// Int64 stores int64 values as signed varints.
type Int64 struct{}

func (Int64) Serialize(w io.Writer, value any) error {
	v, ok := value.(int64)
	if !ok {
		return fmt.Errorf("serializer: expected int64, got %T", value)
	}
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutVarint(buf[:], v)
	_, err := w.Write(buf[:n])
	return err
}

func (Int64) Deserialize(r io.Reader, size int) (any, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	v, n := binary.Varint(b)
	if n <= 0 {
		return nil, fmt.Errorf("serializer: malformed varint payload")
	}
	return v, nil
}

// JSON stores any JSON-marshalable value. Deserialized values come back
// as the generic JSON shapes (map[string]any, []any, float64, ...).
type JSON struct{}

func (JSON) Serialize(w io.Writer, value any) error {
	b, err := jsonv2.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializer: marshal json: %w", err)
	}
	_, err = w.Write(b)
	return err
}

func (JSON) Deserialize(r io.Reader, size int) (any, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	var v any
	if err := jsonv2.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("serializer: unmarshal json: %w", err)
	}
	return v, nil
}
