// Package valtype defines the core WebAssembly value-type universe and the
// ToBytes/FromBytes contract bounded containers rely on to serialize
// elements into a fixed-capacity arena.
//
// Byte encodings mirror api.ValueType (github.com/tetratelabs/wazero's
// api/wasm.go ValueTypeI32 etc.) extended with the vector and
// reference-index variants the Component Model core format needs.
package valtype

import (
	"encoding/binary"
	"fmt"

	"github.com/pulseengine/wrt-go/internal/checksum"
)

// ValueType is the closed sum of core WebAssembly value types: numerics,
// the fixed-width vector type, a 128-bit SIMD lane grouping used by some
// reference implementations, the two reference types, and GC struct/array
// references indexed into the module's type section.
type ValueType byte

const (
	I32       ValueType = 0x7F
	I64       ValueType = 0x7E
	F32       ValueType = 0x7D
	F64       ValueType = 0x7C
	V128      ValueType = 0x7B
	I16x8     ValueType = 0x79
	FuncRef   ValueType = 0x70
	ExternRef ValueType = 0x6F
	// StructRef and ArrayRef carry a type-section index; the index is not
	// part of the tag byte, it is encoded/decoded alongside it (see
	// ToBytes/FromBytes below).
	StructRef ValueType = 0x6E
	ArrayRef  ValueType = 0x6D
)

// String renders the WebAssembly text-format name of t, or a hex fallback
// for an unrecognized byte so callers never need a (string, bool) pair just
// to log a malformed tag.
func (t ValueType) String() string {
	switch t {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case V128:
		return "v128"
	case I16x8:
		return "i16x8"
	case FuncRef:
		return "funcref"
	case ExternRef:
		return "externref"
	case StructRef:
		return "structref"
	case ArrayRef:
		return "arrayref"
	default:
		return fmt.Sprintf("unknown(%#x)", byte(t))
	}
}

// IsIndexed reports whether t carries a trailing type-section index (the
// two GC reference variants).
func (t ValueType) IsIndexed() bool {
	return t == StructRef || t == ArrayRef
}

// RefType is the two-variant subset of ValueType usable as a table element
// type or a bare reference value.
type RefType byte

const (
	RefTypeFunc   RefType = RefType(FuncRef)
	RefTypeExtern RefType = RefType(ExternRef)
)

// ToValueType converts total only for the two RefType variants, matching
// spec.md §3.1 ("conversions between RefType and ValueType are total only
// on those two variants").
func (r RefType) ToValueType() ValueType {
	return ValueType(r)
}

// RefTypeFromValueType converts back, returning false for any ValueType
// that is not one of the two reference variants.
func RefTypeFromValueType(v ValueType) (RefType, bool) {
	switch v {
	case FuncRef, ExternRef:
		return RefType(v), true
	default:
		return 0, false
	}
}

// IndexedValue is a decoded (and possibly serialized) ValueType alongside
// the type-section index it carries for the two GC reference variants.
// Index is zero and meaningless for any non-indexed ValueType.
type IndexedValue struct {
	Type  ValueType
	Index uint32
}

// serializedSize is the fixed width in bytes of the serialized form a
// bounded container stores: one tag byte plus a little-endian u32 index,
// used even for non-indexed types so every element in a homogeneous
// container has the same declared size (spec.md §3.2: "the element's size
// must be non-zero when N > 0" and "fixed-width bytes").
const serializedSize = 5

// SerializedSize returns the fixed per-element width a bounded container of
// IndexedValue must declare.
func SerializedSize() int { return serializedSize }

// ToBytes emits the canonical byte sequence for v: tag byte then
// little-endian u32 index (zero when the type is not indexed).
func (v IndexedValue) ToBytes() []byte {
	b := make([]byte, serializedSize)
	b[0] = byte(v.Type)
	binary.LittleEndian.PutUint32(b[1:], v.Index)
	return b
}

// FromBytes reverses ToBytes. It fails with an error if b is shorter than
// SerializedSize(); callers in internal/container surface that as
// container.ErrConversion.
func FromBytes(b []byte) (IndexedValue, error) {
	if len(b) < serializedSize {
		return IndexedValue{}, fmt.Errorf("valtype: need %d bytes, got %d", serializedSize, len(b))
	}
	return IndexedValue{
		Type:  ValueType(b[0]),
		Index: binary.LittleEndian.Uint32(b[1:]),
	}, nil
}

// UpdateChecksum implements checksum.Checksummable by folding the same
// bytes ToBytes emits.
func (v IndexedValue) UpdateChecksum(c *checksum.Checksum) {
	c.UpdateSlice(v.ToBytes())
}
