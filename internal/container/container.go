// Package container implements the fixed-capacity collections that every
// higher layer is built on: Vec, Queue, Deque, Map, Set, BitSet, and the
// non-serialized DirectMap. None of them resize past their declared
// capacity and none of their mutating operations panic on well-formed
// input — every fallible operation returns one of the error values below.
//
// Style note: this mirrors the "(value, bool)" accessor convention of
// github.com/tetratelabs/wazero's api.Memory (ReadByte, ReadUint32Le, ...),
// upgraded to "(value, error)" because the spec requires a structured
// failure reason rather than a bare bool.
package container

import "errors"

// Errors returned by bounded container operations. None of these are ever
// raised via panic; spec.md §7 requires every fallible operation to return
// a value.
var (
	// ErrCapacityExceeded is returned when an insertion would push a
	// container's length past its declared capacity.
	ErrCapacityExceeded = errors.New("container: capacity exceeded")
	// ErrItemTooLarge is returned when a serialized element's encoded form
	// does not fit the container's declared per-element size.
	ErrItemTooLarge = errors.New("container: item too large for declared element size")
	// ErrSlice is returned when a read or write falls outside the
	// provider-backed arena, or a checksum verification surfaces as a
	// slice-level failure.
	ErrSlice = errors.New("container: slice out of range")
	// ErrConversion is returned when ToBytes/FromBytes round-tripping
	// fails (malformed bytes, wrong length, etc).
	ErrConversion = errors.New("container: conversion failed")
)

// Provider backs a fixed byte arena and returns typed slice views into it.
// Concrete implementations live outside this package (spec.md §1: "the
// concrete memory-provider implementation behind the allocator trait" is
// an external collaborator); this package only depends on the interface.
type Provider interface {
	// Bytes returns a view of length n starting at off. Implementations
	// may grow their backing array lazily up to their own fixed limit,
	// but must never resize past it; out-of-range requests return
	// ErrSlice.
	Bytes(off, n int) ([]byte, error)
}

// sliceProvider is a trivial Provider over a single pre-sized []byte,
// sufficient for containers that don't need a pluggable arena (tests, and
// any caller that doesn't care where the bytes live).
type sliceProvider struct {
	buf []byte
}

// NewSliceProvider returns a Provider backed by a freshly allocated arena
// of exactly size bytes.
func NewSliceProvider(size int) Provider {
	return &sliceProvider{buf: make([]byte, size)}
}

func (p *sliceProvider) Bytes(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(p.buf) {
		return nil, ErrSlice
	}
	return p.buf[off : off+n], nil
}
