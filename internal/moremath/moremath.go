// Package moremath holds the floating-point helpers WebAssembly's
// arithmetic needs and Go's math package doesn't quite provide: NaN/sign
// propagation rules for min/max that differ from math.Min/Max, and
// round-half-to-even nearest rounding.
package moremath

import "math"

// WasmCompatMin doesn't comply with math.Min's NaN/Inf handling, so this
// borrows from the Go standard library's implementation with the change
// that either operand being NaN always yields NaN, even against -Inf.
// https://github.com/golang/go/blob/1d20a362d0ca4898d77865e314ef6f73582daef0/src/math/dim.go#L74-L91
func WasmCompatMin(x, y float64) float64 {
	switch {
	case math.IsNaN(x) || math.IsNaN(y):
		return math.NaN()
	case math.IsInf(x, -1) || math.IsInf(y, -1):
		return math.Inf(-1)
	case x == 0 && x == y:
		if math.Signbit(x) {
			return x
		}
		return y
	}
	if x < y {
		return x
	}
	return y
}

// WasmCompatMax is WasmCompatMin's mirror for the maximum.
// https://github.com/golang/go/blob/1d20a362d0ca4898d77865e314ef6f73582daef0/src/math/dim.go#L42-L59
func WasmCompatMax(x, y float64) float64 {
	switch {
	case math.IsNaN(x) || math.IsNaN(y):
		return math.NaN()
	case math.IsInf(x, 1) || math.IsInf(y, 1):
		return math.Inf(1)
	case x == 0 && x == y:
		if math.Signbit(x) {
			return y
		}
		return x
	}
	if x > y {
		return x
	}
	return y
}

// WasmCompatNearestF64 rounds to the nearest integer, ties to even, which
// is WebAssembly's f64.nearest and differs from math.Round's ties-away-
// from-zero behavior (e.g. nearest(-4.5) == -4.0, not -5.0).
func WasmCompatNearestF64(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return f
	}
	rounded := math.Round(f)
	if math.Abs(f-math.Trunc(f)) == 0.5 && math.Mod(rounded, 2) != 0 {
		if rounded > f {
			rounded--
		} else {
			rounded++
		}
	}
	return rounded
}

// WasmCompatNearestF32 is WasmCompatNearestF64 at float32 precision.
func WasmCompatNearestF32(f float32) float32 {
	return float32(WasmCompatNearestF64(float64(f)))
}
