package codec

import (
	"bytes"
	"errors"
	"testing"
)

func TestHeader_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHeader(&buf, TypeRecordStore); err != nil {
		t.Fatalf("WriteHeader failed: %v", err)
	}
	if buf.Len() != HeaderSize {
		t.Fatalf("header size mismatch: got %d, want %d", buf.Len(), HeaderSize)
	}
	if err := ReadHeader(&buf, TypeRecordStore); err != nil {
		t.Errorf("ReadHeader failed on valid header: %v", err)
	}
}

func TestHeader_Mismatches(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(h *[HeaderSize]byte)
		wantErr error
	}{
		{
			name:    "wrong magic",
			mutate:  func(h *[HeaderSize]byte) { h[0] = 0x00 },
			wantErr: ErrWrongFormat,
		},
		{
			name:    "wrong type tag",
			mutate:  func(h *[HeaderSize]byte) { h[1] = 0xEE },
			wantErr: ErrWrongFormat,
		},
		{
			name:    "reserved16 set",
			mutate:  func(h *[HeaderSize]byte) { h[3] = 1 },
			wantErr: ErrNewerFormat,
		},
		{
			name:    "reserved32 set",
			mutate:  func(h *[HeaderSize]byte) { h[7] = 1 },
			wantErr: ErrNewerFormat,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := PackHeader(TypeRecordStore)
			tc.mutate(&h)
			err := ReadHeader(bytes.NewReader(h[:]), TypeRecordStore)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestHeader_TruncatedIsWrongFormat(t *testing.T) {
	h := PackHeader(TypeRecordStore)
	err := ReadHeader(bytes.NewReader(h[:4]), TypeRecordStore)
	if !errors.Is(err, ErrWrongFormat) {
		t.Errorf("truncated header: got %v, want ErrWrongFormat", err)
	}
}
