package container

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitSet_SetClearToggleContains(t *testing.T) {
	b := NewBitSet(40) // spans two u32 chunks
	require.Equal(t, 40, b.Len())
	require.True(t, b.IsEmpty())

	require.NoError(t, b.Set(5))
	require.NoError(t, b.Set(33))
	require.True(t, b.Contains(5))
	require.True(t, b.Contains(33))
	require.Equal(t, 2, b.Count())

	require.NoError(t, b.Clear(5))
	require.False(t, b.Contains(5))
	require.Equal(t, 1, b.Count())

	set, err := b.Toggle(5)
	require.NoError(t, err)
	require.True(t, set)
	require.Equal(t, 2, b.Count())

	require.ErrorIs(t, b.Set(40), ErrSlice)
}

func TestBitSet_SetAllMasksHighChunk(t *testing.T) {
	b := NewBitSet(35)
	b.SetAll()
	require.Equal(t, 35, b.Count())
	require.True(t, b.IsFull())

	// The high chunk (bits 32..63) must only have 3 valid bits set.
	require.Equal(t, uint32(0x7), b.chunks[1])
}

func TestBitSet_BitnotIsInvolution(t *testing.T) {
	b := NewBitSet(35)
	require.NoError(t, b.Set(0))
	require.NoError(t, b.Set(34))
	before := append([]uint32{}, b.chunks...)

	b.Bitnot()
	b.Bitnot()

	require.Equal(t, before, b.chunks)
}

// TestBitSet_RangeScenario mirrors spec.md §8's worked range example: set a
// contiguous range, then query bulk/scanning/counting operations over it.
func TestBitSet_RangeScenario(t *testing.T) {
	b := NewBitSet(64)
	require.NoError(t, b.SetRange(10, 20, true))
	require.Equal(t, 10, b.CountBitsInRange(0, 64))

	first, ok := b.FirstSetBit()
	require.True(t, ok)
	require.Equal(t, 10, first)

	firstClear, ok := b.FirstClearBit()
	require.True(t, ok)
	require.Equal(t, 0, firstClear)

	highest, ok := b.HighestSetBitInRange(0, 64)
	require.True(t, ok)
	require.Equal(t, 19, highest)

	lowest, ok := b.LowestSetBitInRange(15, 64)
	require.True(t, ok)
	require.Equal(t, 15, lowest)

	require.Equal(t, 10, b.TrailingZeros())
	require.Equal(t, 64-1-19, b.LeadingZeros())

	start, ok := b.FindClearSequence(5)
	require.True(t, ok)
	require.Equal(t, 0, start)

	require.NoError(t, b.SetRange(10, 20, false))
	require.True(t, b.IsEmpty())
}

func TestBitSet_BitwiseOps(t *testing.T) {
	a := NewBitSet(8)
	require.NoError(t, a.SetMultiple(0, 1, 2))
	b := NewBitSet(8)
	require.NoError(t, b.SetMultiple(1, 2, 3))

	and := NewBitSet(8)
	require.NoError(t, and.SetMultiple(0, 1, 2))
	require.NoError(t, and.BitandWith(b))
	require.True(t, and.Contains(1))
	require.True(t, and.Contains(2))
	require.False(t, and.Contains(0))
	require.False(t, and.Contains(3))

	or := NewBitSet(8)
	require.NoError(t, or.SetMultiple(0, 1, 2))
	require.NoError(t, or.BitorWith(b))
	require.Equal(t, 4, or.Count())

	xor := NewBitSet(8)
	require.NoError(t, xor.SetMultiple(0, 1, 2))
	require.NoError(t, xor.BitxorWith(b))
	require.True(t, xor.Contains(0))
	require.True(t, xor.Contains(3))
	require.False(t, xor.Contains(1))
}

func TestBitSet_IsSubsetOf(t *testing.T) {
	small := NewBitSet(8)
	require.NoError(t, small.Set(1))
	big := NewBitSet(8)
	require.NoError(t, big.SetMultiple(1, 2, 3))

	require.True(t, small.IsSubsetOf(big))
	require.False(t, big.IsSubsetOf(small))
}

func TestBitSet_CountInvariant(t *testing.T) {
	b := NewBitSet(70)
	require.NoError(t, b.SetMultiple(0, 31, 32, 69))
	sum := 0
	for _, c := range b.chunks {
		sum += popcount(c)
	}
	require.Equal(t, b.Count(), sum)
}

func popcount(v uint32) int {
	n := 0
	for v != 0 {
		n += int(v & 1)
		v >>= 1
	}
	return n
}

func TestBitSet_VerifyChecksum(t *testing.T) {
	b := NewBitSet(40)
	require.NoError(t, b.Set(5))
	require.True(t, b.VerifyChecksum())
	require.NoError(t, b.Clear(5))
	require.True(t, b.VerifyChecksum())
}
