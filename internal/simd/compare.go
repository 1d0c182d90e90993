package simd

// allOnes8 is the full-width lane value WebAssembly's comparison
// instructions produce for true: all bits set. A false lane is left with
// all bits clear (spec.md §4.5).
const allOnes8 = int8(-1)

// I8x16Eq compares each lane for equality, producing an all-ones or
// all-zeros lane per spec.md §4.5's comparison rule.
func I8x16Eq(a, b V128) V128 {
	return i8x16Compare(a, b, func(x, y int8) bool { return x == y })
}

// I8x16LtS is I8x16Eq's signed less-than sibling.
func I8x16LtS(a, b V128) V128 {
	return i8x16Compare(a, b, func(x, y int8) bool { return x < y })
}

// I8x16GtS is I8x16Eq's signed greater-than sibling.
func I8x16GtS(a, b V128) V128 {
	return i8x16Compare(a, b, func(x, y int8) bool { return x > y })
}

func i8x16Compare(a, b V128, pred func(x, y int8) bool) V128 {
	la, lb := a.lanesI8(), b.lanesI8()
	var out [16]int8
	for i := range la {
		if pred(la[i], lb[i]) {
			out[i] = allOnes8
		}
	}
	return fromLanesI8(out)
}

// F32x4Eq compares float lanes for equality; NaN compares unequal to
// everything including itself, per IEEE-754.
func F32x4Eq(a, b V128) V128 {
	la, lb := a.lanesF32(), b.lanesF32()
	var out [4]uint32
	for i := range la {
		if la[i] == lb[i] {
			out[i] = 0xFFFFFFFF
		}
	}
	return fromLanesU32(out)
}

// I8x16NarrowI16x8S saturates each of the 8 signed 16-bit lanes of a,
// then of b, into the low and high halves of a 16-lane i8 result
// (spec.md §4.5: "narrow ops saturate to the destination range").
func I8x16NarrowI16x8S(a, b V128) V128 {
	la, lb := a.lanesU16(), b.lanesU16()
	var out [16]int8
	for i, x := range la {
		out[i] = saturateS16ToS8(int16(x))
	}
	for i, x := range lb {
		out[8+i] = saturateS16ToS8(int16(x))
	}
	return fromLanesI8(out)
}

func saturateS16ToS8(v int16) int8 {
	switch {
	case v > 127:
		return 127
	case v < -128:
		return -128
	default:
		return int8(v)
	}
}

// I16x8ExtendLowI8x16S sign-extends the low 8 lanes of a into 16-bit
// lanes (spec.md §4.5: "extend ops widen by sign or zero extension").
func I16x8ExtendLowI8x16S(a V128) V128 {
	la := a.lanesI8()
	var out [8]uint16
	for i := 0; i < 8; i++ {
		out[i] = uint16(int16(la[i]))
	}
	return fromLanesU16(out)
}

// I16x8ExtendHighI8x16S is I16x8ExtendLowI8x16S over the high 8 lanes.
func I16x8ExtendHighI8x16S(a V128) V128 {
	la := a.lanesI8()
	var out [8]uint16
	for i := 0; i < 8; i++ {
		out[i] = uint16(int16(la[8+i]))
	}
	return fromLanesU16(out)
}

// I16x8ExtendLowI8x16U zero-extends the low 8 lanes of a into 16-bit
// lanes.
func I16x8ExtendLowI8x16U(a V128) V128 {
	var out [8]uint16
	for i := 0; i < 8; i++ {
		out[i] = uint16(a[i])
	}
	return fromLanesU16(out)
}

// I16x8ExtendHighI8x16U zero-extends the high 8 lanes of a.
func I16x8ExtendHighI8x16U(a V128) V128 {
	var out [8]uint16
	for i := 0; i < 8; i++ {
		out[i] = uint16(a[8+i])
	}
	return fromLanesU16(out)
}

// Bitselect computes (a & c) | (b &^ c) lane-by-byte, exactly the formula
// spec.md §4.5 names.
func Bitselect(a, b, c V128) V128 {
	var out V128
	for i := range out {
		out[i] = (a[i] & c[i]) | (b[i] &^ c[i])
	}
	return out
}

// AnyTrue reports whether any byte of v is non-zero.
func AnyTrue(v V128) bool {
	for _, b := range v {
		if b != 0 {
			return true
		}
	}
	return false
}

// AllTrueI8x16 reports whether every i8 lane of v is non-zero.
func AllTrueI8x16(v V128) bool {
	for _, x := range v.lanesI8() {
		if x == 0 {
			return false
		}
	}
	return true
}

// Swizzle selects a[indices[i]] per output lane, substituting 0 for any
// index outside [0,16) (spec.md §4.5).
func Swizzle(a, indices V128) V128 {
	var out V128
	for i, idx := range indices {
		if idx < 16 {
			out[i] = a[idx]
		}
	}
	return out
}

// Shuffle selects from a when indices[i] is in [0,16) and from b when it
// is in [16,32); any other index yields 0 (spec.md §4.5).
func Shuffle(a, b V128, indices [16]byte) V128 {
	var out V128
	for i, idx := range indices {
		switch {
		case idx < 16:
			out[i] = a[idx]
		case idx < 32:
			out[i] = b[idx-16]
		}
	}
	return out
}

// ExtractLaneI8x16 returns lane i of v, or 0 if i is out of range
// (spec.md §4.5: "lane extract/replace... out-of-range -> return 0").
func ExtractLaneI8x16(v V128, i int) int8 {
	if i < 0 || i >= 16 {
		return 0
	}
	return v.lanesI8()[i]
}

// ReplaceLaneI8x16 returns a copy of v with lane i set to value, or v
// unchanged if i is out of range.
func ReplaceLaneI8x16(v V128, i int, value int8) V128 {
	if i < 0 || i >= 16 {
		return v
	}
	out := v
	out[i] = byte(value)
	return out
}
