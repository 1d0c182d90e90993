package container

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulseengine/wrt-go/internal/valtype"
)

func newTestDeque(t *testing.T, capacity int) *Deque[valtype.IndexedValue] {
	t.Helper()
	provider := NewSliceProvider(capacity * valtype.SerializedSize())
	d, err := NewDeque[valtype.IndexedValue](capacity, valtype.SerializedSize(), provider, decodeIndexed)
	require.NoError(t, err)
	return d
}

func TestDeque_PushFrontPopBack(t *testing.T) {
	d := newTestDeque(t, 3)
	require.NoError(t, d.PushFront(valtype.IndexedValue{Type: valtype.I32, Index: 1}))
	require.NoError(t, d.PushFront(valtype.IndexedValue{Type: valtype.I32, Index: 2}))
	require.NoError(t, d.PushBack(valtype.IndexedValue{Type: valtype.I32, Index: 3}))
	require.Equal(t, 3, d.Len())

	// Order front-to-back is now: 2, 1, 3.
	val, err := d.PopFront()
	require.NoError(t, err)
	require.Equal(t, uint32(2), val.Index)

	val, err = d.PopBack()
	require.NoError(t, err)
	require.Equal(t, uint32(3), val.Index)

	val, err = d.PopFront()
	require.NoError(t, err)
	require.Equal(t, uint32(1), val.Index)
	require.True(t, d.IsEmpty())
}

func TestDeque_CapacityExceeded(t *testing.T) {
	d := newTestDeque(t, 1)
	require.NoError(t, d.PushBack(valtype.IndexedValue{Type: valtype.I32}))
	require.ErrorIs(t, d.PushFront(valtype.IndexedValue{Type: valtype.I32}), ErrCapacityExceeded)
}

func TestDeque_EmptyPopFails(t *testing.T) {
	d := newTestDeque(t, 1)
	_, err := d.PopFront()
	require.ErrorIs(t, err, ErrSlice)
	_, err = d.PopBack()
	require.ErrorIs(t, err, ErrSlice)
}

func TestDeque_VerifyChecksum(t *testing.T) {
	d := newTestDeque(t, 3)
	require.NoError(t, d.PushBack(valtype.IndexedValue{Type: valtype.I32, Index: 1}))
	require.NoError(t, d.PushFront(valtype.IndexedValue{Type: valtype.I32, Index: 2}))
	require.True(t, d.VerifyChecksum())
	_, err := d.PopBack()
	require.NoError(t, err)
	require.True(t, d.VerifyChecksum())
}
