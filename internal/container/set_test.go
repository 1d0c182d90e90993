package container

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSet(t *testing.T, capacity int) *Set[u32Key] {
	t.Helper()
	provider := NewSliceProvider(capacity * 4)
	s, err := NewSet[u32Key](capacity, 4, provider, decodeU32Key)
	require.NoError(t, err)
	return s
}

func TestSet_InsertContainsRemove(t *testing.T) {
	s := newTestSet(t, 2)
	inserted, err := s.Insert(u32Key(1))
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = s.Insert(u32Key(1))
	require.NoError(t, err)
	require.False(t, inserted, "re-inserting an existing member must be a no-op")
	require.Equal(t, 1, s.Len())

	require.True(t, s.Contains(u32Key(1)))
	require.False(t, s.Contains(u32Key(2)))

	require.True(t, s.Remove(u32Key(1)))
	require.False(t, s.Contains(u32Key(1)))
	require.False(t, s.Remove(u32Key(1)))
}

func TestSet_CapacityExceeded(t *testing.T) {
	s := newTestSet(t, 1)
	_, err := s.Insert(u32Key(1))
	require.NoError(t, err)
	_, err = s.Insert(u32Key(2))
	require.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestSet_Items(t *testing.T) {
	s := newTestSet(t, 2)
	_, err := s.Insert(u32Key(1))
	require.NoError(t, err)
	_, err = s.Insert(u32Key(2))
	require.NoError(t, err)
	items, err := s.Items()
	require.NoError(t, err)
	require.ElementsMatch(t, []u32Key{1, 2}, items)
}
