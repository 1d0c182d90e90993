// Package simd implements the scalar, bit-exact reference semantics for
// every 128-bit vector operation named in spec.md §4.5. All operations work
// lane-wise over a little-endian 16-byte array; none use hardware SIMD
// instructions, by design — a hardware-accelerated provider is required to
// match this package's output bit-for-bit, not the other way around.
package simd

import (
	"math"

	"github.com/pulseengine/wrt-go/internal/moremath"
)

// V128 is a 128-bit vector value, stored as its 16 raw little-endian
// bytes, matching how internal/container elements serialize themselves.
type V128 [16]byte

func (v V128) lanesI8() [16]int8 {
	var out [16]int8
	for i := range v {
		out[i] = int8(v[i])
	}
	return out
}

func fromLanesI8(l [16]int8) V128 {
	var v V128
	for i := range l {
		v[i] = byte(l[i])
	}
	return v
}

func (v V128) lanesU16() [8]uint16 {
	var out [8]uint16
	for i := 0; i < 8; i++ {
		out[i] = uint16(v[2*i]) | uint16(v[2*i+1])<<8
	}
	return out
}

func fromLanesU16(l [8]uint16) V128 {
	var v V128
	for i, x := range l {
		v[2*i] = byte(x)
		v[2*i+1] = byte(x >> 8)
	}
	return v
}

func (v V128) lanesU32() [4]uint32 {
	var out [4]uint32
	for i := 0; i < 4; i++ {
		off := 4 * i
		out[i] = uint32(v[off]) | uint32(v[off+1])<<8 | uint32(v[off+2])<<16 | uint32(v[off+3])<<24
	}
	return out
}

func fromLanesU32(l [4]uint32) V128 {
	var v V128
	for i, x := range l {
		off := 4 * i
		v[off] = byte(x)
		v[off+1] = byte(x >> 8)
		v[off+2] = byte(x >> 16)
		v[off+3] = byte(x >> 24)
	}
	return v
}

func (v V128) lanesU64() [2]uint64 {
	var out [2]uint64
	for i := 0; i < 2; i++ {
		off := 8 * i
		var x uint64
		for j := 0; j < 8; j++ {
			x |= uint64(v[off+j]) << (8 * j)
		}
		out[i] = x
	}
	return out
}

func fromLanesU64(l [2]uint64) V128 {
	var v V128
	for i, x := range l {
		off := 8 * i
		for j := 0; j < 8; j++ {
			v[off+j] = byte(x >> (8 * j))
		}
	}
	return v
}

func (v V128) lanesF32() [4]float32 {
	u := v.lanesU32()
	var out [4]float32
	for i, x := range u {
		out[i] = math.Float32frombits(x)
	}
	return out
}

func fromLanesF32(l [4]float32) V128 {
	var u [4]uint32
	for i, x := range l {
		u[i] = math.Float32bits(x)
	}
	return fromLanesU32(u)
}

func (v V128) lanesF64() [2]float64 {
	u := v.lanesU64()
	var out [2]float64
	for i, x := range u {
		out[i] = math.Float64frombits(x)
	}
	return out
}

func fromLanesF64(l [2]float64) V128 {
	var u [2]uint64
	for i, x := range l {
		u[i] = math.Float64bits(x)
	}
	return fromLanesU64(u)
}
