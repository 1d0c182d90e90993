package binary

import (
	"bytes"

	"github.com/tetratelabs/wabin/leb128"
)

// This file is a thin adapter over github.com/tetratelabs/wabin/leb128,
// not a reimplementation: section sizes, counts, and signed immediates all
// round-trip through wabin's decoder/encoder so this codec shares its
// exact varint behavior with the rest of the pack's WebAssembly tooling.

// decodeU32 reads a LEB128-encoded uint32 from b starting at off, returning
// the value and the offset immediately past it.
func decodeU32(b []byte, off int) (uint32, int, error) {
	if off > len(b) {
		return 0, off, parseErrorf("leb128: offset past end of input")
	}
	r := bytes.NewReader(b[off:])
	v, n, err := leb128.DecodeUint32(r)
	if err != nil {
		return 0, off, parseErrorf("leb128: truncated or malformed u32: %v", err)
	}
	return v, off + int(n), nil
}

// decodeS32 reads a LEB128-encoded signed int32.
func decodeS32(b []byte, off int) (int32, int, error) {
	if off > len(b) {
		return 0, off, parseErrorf("leb128: offset past end of input")
	}
	r := bytes.NewReader(b[off:])
	v, n, err := leb128.DecodeInt32(r)
	if err != nil {
		return 0, off, parseErrorf("leb128: truncated or malformed s32: %v", err)
	}
	return v, off + int(n), nil
}

// encodeU32 appends the LEB128 encoding of v to dst.
func encodeU32(dst []byte, v uint32) []byte {
	return append(dst, leb128.EncodeUint32(v)...)
}
