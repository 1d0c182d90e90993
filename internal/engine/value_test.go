package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryValue_ReadWriteRoundTrip(t *testing.T) {
	m := NewMemoryValue(1, nil)
	require.NoError(t, m.Write(10, []byte("hi")))
	buf := make([]byte, 2)
	require.NoError(t, m.Read(10, buf))
	require.Equal(t, "hi", string(buf))
}

func TestMemoryValue_OutOfBounds(t *testing.T) {
	m := NewMemoryValue(1, nil)
	err := m.Read(70000, make([]byte, 1))
	require.Error(t, err)
	var mae *MemoryAccessError
	require.ErrorAs(t, err, &mae)
}

func TestMemoryValue_GrowRespectsMax(t *testing.T) {
	max := uint32(1)
	m := NewMemoryValue(1, &max)
	_, err := m.Grow(1)
	require.Error(t, err)
}

func TestMemoryValue_GrowTracksPeakUsage(t *testing.T) {
	m := NewMemoryValue(1, nil)
	before := m.PeakUsage()
	_, err := m.Grow(1)
	require.NoError(t, err)
	require.Greater(t, m.PeakUsage(), before)
}

func TestMemoryValue_AccessCount(t *testing.T) {
	m := NewMemoryValue(1, nil)
	require.Equal(t, uint64(0), m.AccessCount())
	_ = m.Write(0, []byte{1})
	_ = m.Read(0, make([]byte, 1))
	require.Equal(t, uint64(2), m.AccessCount())
}
