package container

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulseengine/wrt-go/internal/valtype"
)

func newTestQueue(t *testing.T, capacity int) *Queue[valtype.IndexedValue] {
	t.Helper()
	provider := NewSliceProvider(capacity * valtype.SerializedSize())
	q, err := NewQueue[valtype.IndexedValue](capacity, valtype.SerializedSize(), provider, decodeIndexed)
	require.NoError(t, err)
	return q
}

func TestQueue_FIFOOrder(t *testing.T) {
	q := newTestQueue(t, 3)
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Enqueue(valtype.IndexedValue{Type: valtype.I32, Index: uint32(i)}))
	}
	require.True(t, q.IsFull())
	require.ErrorIs(t, q.Enqueue(valtype.IndexedValue{Type: valtype.I32}), ErrCapacityExceeded)

	for i := 0; i < 3; i++ {
		val, err := q.Dequeue()
		require.NoError(t, err)
		require.Equal(t, uint32(i), val.Index)
	}
	require.True(t, q.IsEmpty())
	_, err := q.Dequeue()
	require.ErrorIs(t, err, ErrSlice)
}

// TestQueue_WrapAround exercises the ring buffer past its physical end, the
// scenario spec.md §8 calls out explicitly: enqueue/dequeue repeatedly so
// head and tail both cross the capacity boundary.
func TestQueue_WrapAround(t *testing.T) {
	q := newTestQueue(t, 2)
	require.NoError(t, q.Enqueue(valtype.IndexedValue{Type: valtype.I32, Index: 1}))
	require.NoError(t, q.Enqueue(valtype.IndexedValue{Type: valtype.I32, Index: 2}))

	val, err := q.Dequeue()
	require.NoError(t, err)
	require.Equal(t, uint32(1), val.Index)

	require.NoError(t, q.Enqueue(valtype.IndexedValue{Type: valtype.I32, Index: 3}))
	require.True(t, q.IsFull())

	val, err = q.Dequeue()
	require.NoError(t, err)
	require.Equal(t, uint32(2), val.Index)

	val, err = q.Dequeue()
	require.NoError(t, err)
	require.Equal(t, uint32(3), val.Index)
	require.True(t, q.IsEmpty())
}

func TestQueue_Peek(t *testing.T) {
	q := newTestQueue(t, 2)
	require.NoError(t, q.Enqueue(valtype.IndexedValue{Type: valtype.I32, Index: 7}))
	val, err := q.Peek()
	require.NoError(t, err)
	require.Equal(t, uint32(7), val.Index)
	require.Equal(t, 1, q.Len())
}

func TestQueue_VerifyChecksumAfterDequeue(t *testing.T) {
	q := newTestQueue(t, 3)
	require.NoError(t, q.Enqueue(valtype.IndexedValue{Type: valtype.I32, Index: 1}))
	require.NoError(t, q.Enqueue(valtype.IndexedValue{Type: valtype.I32, Index: 2}))
	require.True(t, q.VerifyChecksum())
	_, err := q.Dequeue()
	require.NoError(t, err)
	require.True(t, q.VerifyChecksum())
}
