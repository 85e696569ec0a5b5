// Package codec provides the binary encoding primitives shared by the
// record store: length-prefixed variable-length integers, raw byte runs,
// and the 8-byte file header.
//
// # Stream Format
//
// All multi-byte integers are encoded as unsigned varints (the
// encoding/binary LEB128 variant). A serialized record stream is:
//
//	[Header(8)]
//	repeat:
//	  [recid varint]          0 terminates the stream
//	  [size varint]           payload length + 1, or 0 for the null sentinel
//	  [payload bytes]         present only when size > 0
//
// # File Header
//
// The header is a fixed 8-byte prefix:
//
//	[Magic(1)][TypeTag(1)][Reserved16(2)][Reserved32(4)]
//
// Magic and TypeTag identify the file as a store of a particular kind;
// the reserved fields must be zero. Non-zero reserved fields mean the
// file was produced by a newer, incompatible format revision and must
// not be read.
package codec
