package simd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func v128FromI8(lanes [16]int8) V128 { return fromLanesI8(lanes) }

// TestI8x16Add_Wraps mirrors spec.md §8's i8x16.add wrapping property:
// 127 + 1 wraps to -128.
func TestI8x16Add_Wraps(t *testing.T) {
	a := v128FromI8([16]int8{127})
	b := v128FromI8([16]int8{1})
	sum := I8x16Add(a, b)
	require.Equal(t, int8(-128), sum.lanesI8()[0])
}

// TestI8x16Abs_IntMin mirrors spec.md §8: abs(-128i8) == 128u8, i.e. the
// lane reinterpreted as unsigned is 128, not an overflow panic.
func TestI8x16Abs_IntMin(t *testing.T) {
	a := v128FromI8([16]int8{-128})
	out := I8x16Abs(a)
	require.Equal(t, uint8(128), uint8(out.lanesI8()[0]))
}

func TestF32x4Min_PropagatesNaN(t *testing.T) {
	a := fromLanesF32([4]float32{float32(math.NaN())})
	b := fromLanesF32([4]float32{1})
	out := F32x4Min(a, b)
	require.True(t, isNaN32(out.lanesF32()[0]))
}

func TestF32x4Min_NegZeroLessThanPosZero(t *testing.T) {
	neg := fromLanesF32([4]float32{float32(math.Copysign(0, -1))})
	pos := fromLanesF32([4]float32{0})
	out := F32x4Min(neg, pos)
	require.True(t, math.Signbit(float64(out.lanesF32()[0])))
}

func TestF32x4Pmin_ReturnsBOnNaN(t *testing.T) {
	a := fromLanesF32([4]float32{float32(math.NaN())})
	b := fromLanesF32([4]float32{5})
	out := F32x4Pmin(a, b)
	require.Equal(t, float32(5), out.lanesF32()[0])
}

// TestF32x4Sqrt_NegativeYieldsNaN mirrors spec.md §8: f32x4.sqrt of a
// negative lane is NaN.
func TestF32x4Sqrt_NegativeYieldsNaN(t *testing.T) {
	a := fromLanesF32([4]float32{-4})
	out := F32x4Sqrt(a)
	require.True(t, isNaN32(out.lanesF32()[0]))
}

func TestF32x4Sqrt_Positive(t *testing.T) {
	a := fromLanesF32([4]float32{16})
	out := F32x4Sqrt(a)
	require.InDelta(t, 4.0, out.lanesF32()[0], 1e-5)
}

func TestF64x2Sqrt_Positive(t *testing.T) {
	a := fromLanesF64([2]float64{2})
	out := F64x2Sqrt(a)
	require.InDelta(t, math.Sqrt2, out.lanesF64()[0], 1e-12)
}

func TestI8x16NarrowI16x8S_Saturates(t *testing.T) {
	a := fromLanesU16([8]uint16{uint16(int16(200))})
	b := fromLanesU16([8]uint16{uint16(int16(-200))})
	out := I8x16NarrowI16x8S(a, b)
	lanes := out.lanesI8()
	require.Equal(t, int8(127), lanes[0])
	require.Equal(t, int8(-128), lanes[8])
}

func TestI16x8ExtendLowAndHighI8x16S(t *testing.T) {
	var lanes [16]int8
	lanes[0] = -1
	lanes[15] = -2
	v := v128FromI8(lanes)
	low := I16x8ExtendLowI8x16S(v)
	high := I16x8ExtendHighI8x16S(v)
	require.Equal(t, int16(-1), int16(low.lanesU16()[0]))
	require.Equal(t, int16(-2), int16(high.lanesU16()[7]))
}

// TestBitselect_Formula checks Bitselect computes (a & c) | (b &^ c)
// exactly as spec.md §4.5 names it.
func TestBitselect_Formula(t *testing.T) {
	a := V128{0xFF}
	b := V128{0x00}
	c := V128{0x0F}
	out := Bitselect(a, b, c)
	require.Equal(t, byte(0x0F), out[0])
}

func TestAnyTrueAllTrue(t *testing.T) {
	zero := V128{}
	require.False(t, AnyTrue(zero))
	require.False(t, AllTrueI8x16(zero))

	one := V128{}
	one[3] = 1
	require.True(t, AnyTrue(one))
	require.False(t, AllTrueI8x16(one))

	full := v128FromI8([16]int8{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1})
	require.True(t, AllTrueI8x16(full))
}

// TestSwizzle_OutOfRangeYieldsZero mirrors spec.md §8's swizzle edge
// case: indices >= 16 produce 0.
func TestSwizzle_OutOfRangeYieldsZero(t *testing.T) {
	a := v128FromI8([16]int8{10, 20, 30})
	var indices V128
	indices[0] = 1
	indices[1] = 99
	out := Swizzle(a, indices)
	require.Equal(t, byte(20), out[0])
	require.Equal(t, byte(0), out[1])
}

// TestShuffle_SelectsFromBothOperands mirrors spec.md §8: indices 0-15
// select from a, 16-31 from b, anything else yields 0.
func TestShuffle_SelectsFromBothOperands(t *testing.T) {
	a := v128FromI8([16]int8{1, 2, 3, 4})
	b := v128FromI8([16]int8{5, 6, 7, 8})
	var indices [16]byte
	indices[0] = 0
	indices[1] = 16
	indices[2] = 200
	out := Shuffle(a, b, indices)
	require.Equal(t, byte(1), out[0])
	require.Equal(t, byte(5), out[1])
	require.Equal(t, byte(0), out[2])
}

func TestExtractReplaceLane_OutOfRange(t *testing.T) {
	v := v128FromI8([16]int8{9})
	require.Equal(t, int8(0), ExtractLaneI8x16(v, 99))
	require.Equal(t, int8(9), ExtractLaneI8x16(v, 0))

	unchanged := ReplaceLaneI8x16(v, 99, 5)
	require.Equal(t, v, unchanged)

	replaced := ReplaceLaneI8x16(v, 0, 42)
	require.Equal(t, int8(42), ExtractLaneI8x16(replaced, 0))
}

func TestI32x4Shl_ModLaneWidth(t *testing.T) {
	a := fromLanesU32([4]uint32{1})
	out := I32x4Shl(a, 32) // 32 mod 32 == 0, so a shift by 32 is a no-op
	require.Equal(t, uint32(1), out.lanesU32()[0])
}

func TestF64x2Pmin_ReturnsBOnNaN(t *testing.T) {
	a := fromLanesF64([2]float64{math.NaN()})
	b := fromLanesF64([2]float64{3})
	out := F64x2Pmin(a, b)
	require.Equal(t, 3.0, out.lanesF64()[0])
}

func TestF64x2Max_PropagatesNaN(t *testing.T) {
	a := fromLanesF64([2]float64{math.NaN()})
	b := fromLanesF64([2]float64{1})
	out := F64x2Max(a, b)
	require.True(t, isNaN64(out.lanesF64()[0]))
}

func TestI8x16Eq(t *testing.T) {
	a := v128FromI8([16]int8{5, 6})
	b := v128FromI8([16]int8{5, 7})
	out := I8x16Eq(a, b)
	lanes := out.lanesI8()
	require.Equal(t, allOnes8, lanes[0])
	require.Equal(t, int8(0), lanes[1])
}
