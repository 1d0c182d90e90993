package simd

import "github.com/pulseengine/wrt-go/internal/moremath"

// I8x16Add adds each lane with wrapping overflow.
func I8x16Add(a, b V128) V128 {
	la, lb := a.lanesI8(), b.lanesI8()
	var out [16]int8
	for i := range la {
		out[i] = int8(uint8(la[i]) + uint8(lb[i]))
	}
	return fromLanesI8(out)
}

// I8x16Sub subtracts each lane with wrapping overflow.
func I8x16Sub(a, b V128) V128 {
	la, lb := a.lanesI8(), b.lanesI8()
	var out [16]int8
	for i := range la {
		out[i] = int8(uint8(la[i]) - uint8(lb[i]))
	}
	return fromLanesI8(out)
}

// I8x16Abs returns the absolute value of each lane. abs(INT_MIN) wraps to
// its own unsigned magnitude rather than overflowing (spec.md §4.5:
// "abs(-128i8) = 128u8").
func I8x16Abs(a V128) V128 {
	la := a.lanesI8()
	var out [16]int8
	for i, x := range la {
		if x < 0 {
			out[i] = int8(uint8(-int16(x)))
		} else {
			out[i] = x
		}
	}
	return fromLanesI8(out)
}

// I32x4Add adds each 32-bit lane with wrapping overflow.
func I32x4Add(a, b V128) V128 {
	la, lb := a.lanesU32(), b.lanesU32()
	var out [4]uint32
	for i := range la {
		out[i] = la[i] + lb[i]
	}
	return fromLanesU32(out)
}

// I32x4Shl shifts every lane left by count mod 32 (spec.md §4.5: "shifts
// take count modulo lane width").
func I32x4Shl(a V128, count uint32) V128 {
	la := a.lanesU32()
	shift := count % 32
	var out [4]uint32
	for i, x := range la {
		out[i] = x << shift
	}
	return fromLanesU32(out)
}

// F32x4Min is the IEEE-754 min with NaN propagation and -0 < +0, matching
// WebAssembly's f32x4.min via internal/moremath.
func F32x4Min(a, b V128) V128 {
	la, lb := a.lanesF32(), b.lanesF32()
	var out [4]float32
	for i := range la {
		out[i] = float32(moremath.WasmCompatMin(float64(la[i]), float64(lb[i])))
	}
	return fromLanesF32(out)
}

// F32x4Max mirrors F32x4Min for the maximum.
func F32x4Max(a, b V128) V128 {
	la, lb := a.lanesF32(), b.lanesF32()
	var out [4]float32
	for i := range la {
		out[i] = float32(moremath.WasmCompatMax(float64(la[i]), float64(lb[i])))
	}
	return fromLanesF32(out)
}

// F32x4Pmin returns b's lane whenever either operand is NaN, else the
// smaller of the two (spec.md §4.5: "pmin/pmax return b if either operand
// is NaN").
func F32x4Pmin(a, b V128) V128 {
	la, lb := a.lanesF32(), b.lanesF32()
	var out [4]float32
	for i := range la {
		if isNaN32(la[i]) || isNaN32(lb[i]) || lb[i] < la[i] {
			out[i] = lb[i]
		} else {
			out[i] = la[i]
		}
	}
	return fromLanesF32(out)
}

// F32x4Pmax is F32x4Pmin's mirror for the maximum.
func F32x4Pmax(a, b V128) V128 {
	la, lb := a.lanesF32(), b.lanesF32()
	var out [4]float32
	for i := range la {
		if isNaN32(la[i]) || isNaN32(lb[i]) || lb[i] > la[i] {
			out[i] = lb[i]
		} else {
			out[i] = la[i]
		}
	}
	return fromLanesF32(out)
}

func isNaN32(f float32) bool { return f != f }
func isNaN64(f float64) bool { return f != f }

// F64x2Min is F32x4Min at double precision.
func F64x2Min(a, b V128) V128 {
	la, lb := a.lanesF64(), b.lanesF64()
	var out [2]float64
	for i := range la {
		out[i] = moremath.WasmCompatMin(la[i], lb[i])
	}
	return fromLanesF64(out)
}

// F64x2Max is F32x4Max at double precision.
func F64x2Max(a, b V128) V128 {
	la, lb := a.lanesF64(), b.lanesF64()
	var out [2]float64
	for i := range la {
		out[i] = moremath.WasmCompatMax(la[i], lb[i])
	}
	return fromLanesF64(out)
}

// F64x2Pmin is F32x4Pmin at double precision.
func F64x2Pmin(a, b V128) V128 {
	la, lb := a.lanesF64(), b.lanesF64()
	var out [2]float64
	for i := range la {
		if isNaN64(la[i]) || isNaN64(lb[i]) || lb[i] < la[i] {
			out[i] = lb[i]
		} else {
			out[i] = la[i]
		}
	}
	return fromLanesF64(out)
}

// F64x2Pmax is F32x4Pmax at double precision.
func F64x2Pmax(a, b V128) V128 {
	la, lb := a.lanesF64(), b.lanesF64()
	var out [2]float64
	for i := range la {
		if isNaN64(la[i]) || isNaN64(lb[i]) || lb[i] > la[i] {
			out[i] = lb[i]
		} else {
			out[i] = la[i]
		}
	}
	return fromLanesF64(out)
}

// F32x4Sqrt takes the square root of every lane; a negative input yields
// NaN in that lane (spec.md §4.5).
func F32x4Sqrt(a V128) V128 {
	la := a.lanesF32()
	var out [4]float32
	for i, x := range la {
		out[i] = sqrtF32(x)
	}
	return fromLanesF32(out)
}

// F64x2Sqrt is F32x4Sqrt at double precision.
func F64x2Sqrt(a V128) V128 {
	la := a.lanesF64()
	var out [2]float64
	for i, x := range la {
		out[i] = sqrtF64(x)
	}
	return fromLanesF64(out)
}

func sqrtF32(x float32) float32 {
	if x < 0 {
		return float32(nan())
	}
	if x == 0 {
		return x
	}
	// Newton-Raphson, 8 iterations starting at x/2, per spec.md §4.5's
	// no_std fallback; this package uses it in every build and never
	// calls math.Sqrt.
	guess := float64(x) / 2
	for i := 0; i < 8; i++ {
		guess = 0.5 * (guess + float64(x)/guess)
	}
	return float32(guess)
}

func sqrtF64(x float64) float64 {
	if x < 0 {
		return nan()
	}
	if x == 0 {
		return x
	}
	guess := x / 2
	for i := 0; i < 16; i++ {
		guess = 0.5 * (guess + x/guess)
	}
	return guess
}

func nan() float64 {
	var zero float64
	return zero / zero
}
