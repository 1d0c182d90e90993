package container

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulseengine/wrt-go/internal/checksum"
	"github.com/pulseengine/wrt-go/internal/valtype"
)

func decodeIndexed(b []byte) (valtype.IndexedValue, error) { return valtype.FromBytes(b) }

func newTestVec(t *testing.T, capacity int) *Vec[valtype.IndexedValue] {
	t.Helper()
	provider := NewSliceProvider(capacity * valtype.SerializedSize())
	v, err := NewVec[valtype.IndexedValue](capacity, valtype.SerializedSize(), provider, decodeIndexed)
	require.NoError(t, err)
	return v
}

func TestVec_PushPopRoundTrip(t *testing.T) {
	v := newTestVec(t, 4)
	require.True(t, v.IsEmpty())
	require.False(t, v.IsFull())

	for i := 0; i < 4; i++ {
		require.NoError(t, v.Push(valtype.IndexedValue{Type: valtype.I32, Index: uint32(i)}))
	}
	require.True(t, v.IsFull())
	require.Equal(t, 4, v.Len())
	require.ErrorIs(t, v.Push(valtype.IndexedValue{Type: valtype.I32}), ErrCapacityExceeded)

	for i := 3; i >= 0; i-- {
		val, err := v.Pop()
		require.NoError(t, err)
		require.Equal(t, uint32(i), val.Index)
	}
	require.True(t, v.IsEmpty())
	_, err := v.Pop()
	require.ErrorIs(t, err, ErrSlice)
}

func TestVec_GetSet(t *testing.T) {
	v := newTestVec(t, 2)
	require.NoError(t, v.Push(valtype.IndexedValue{Type: valtype.I32, Index: 1}))
	require.NoError(t, v.Push(valtype.IndexedValue{Type: valtype.I64, Index: 2}))

	got, err := v.Get(1)
	require.NoError(t, err)
	require.Equal(t, valtype.I64, got.Type)

	require.NoError(t, v.Set(0, valtype.IndexedValue{Type: valtype.F32, Index: 9}))
	got, err = v.Get(0)
	require.NoError(t, err)
	require.Equal(t, valtype.F32, got.Type)
	require.Equal(t, uint32(9), got.Index)

	_, err = v.Get(5)
	require.ErrorIs(t, err, ErrSlice)
}

func TestVec_VerifyChecksumAtFull(t *testing.T) {
	v := newTestVec(t, 3)
	require.NoError(t, v.Push(valtype.IndexedValue{Type: valtype.I32, Index: 1}))
	require.NoError(t, v.Push(valtype.IndexedValue{Type: valtype.I64, Index: 2}))
	require.True(t, v.VerifyChecksum())

	_, err := v.Pop()
	require.NoError(t, err)
	require.True(t, v.VerifyChecksum())
}

func TestVec_VerificationOff(t *testing.T) {
	provider := NewSliceProvider(4 * valtype.SerializedSize())
	v, err := NewVecWithVerification[valtype.IndexedValue](4, valtype.SerializedSize(), provider, decodeIndexed, checksum.Off)
	require.NoError(t, err)
	require.NoError(t, v.Push(valtype.IndexedValue{Type: valtype.I32}))
	require.True(t, v.VerifyChecksum())
	require.Equal(t, checksum.Off, v.VerificationLevel())
}

func TestVec_ItemTooLargeRejectedAtConstruction(t *testing.T) {
	provider := NewSliceProvider(8)
	_, err := NewVec[valtype.IndexedValue](4, 0, provider, decodeIndexed)
	require.ErrorIs(t, err, ErrItemTooLarge)
}
