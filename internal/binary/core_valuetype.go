package binary

import "github.com/pulseengine/wrt-go/internal/valtype"

// decodeValueTypeByte reinterprets a raw byte as a core valtype.ValueType.
// The tag space is exactly valtype's own byte encodings (spec.md §3.1), so
// this is a cast, not a lookup table; an invalid byte is simply an
// unrecognized ValueType rather than a decode error at this layer — callers
// that need strictness check String() for the "unknown(...)" fallback.
func decodeValueTypeByte(b byte) valtype.ValueType {
	return valtype.ValueType(b)
}

func encodeValueTypeByte(dst []byte, v valtype.ValueType) []byte {
	return append(dst, byte(v))
}
