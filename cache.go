package wrtgo

import (
	"sync"

	"github.com/pulseengine/wrt-go/internal/binary"
	"github.com/pulseengine/wrt-go/internal/checksum"
	"github.com/pulseengine/wrt-go/internal/format"
)

// DecodeCache memoizes binary.Decode results keyed by a checksum over the
// raw bytes, so repeatedly instantiating the same component binary (the
// common case for a host that re-runs the same guest many times) skips
// re-parsing it. Unlike the teacher's Cache, this is in-memory only and
// process-local: spec.md §5 states "checksums are process-local; they are
// not guaranteed to survive serialization to disk", so this cache makes no
// attempt at the teacher's directory-backed persistence.
type DecodeCache struct {
	mu      sync.Mutex
	entries map[uint64]*format.Component
}

// NewDecodeCache returns an empty cache.
func NewDecodeCache() *DecodeCache {
	return &DecodeCache{entries: make(map[uint64]*format.Component)}
}

// Decode returns the cached decode of bytes if present, else decodes,
// caches, and returns it.
func (d *DecodeCache) Decode(bytes []byte) (*format.Component, error) {
	key := checksumOf(bytes)

	d.mu.Lock()
	if c, ok := d.entries[key]; ok {
		d.mu.Unlock()
		return c, nil
	}
	d.mu.Unlock()

	c, err := binary.Decode(bytes)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.entries[key] = c
	d.mu.Unlock()
	return c, nil
}

// Len reports how many distinct byte strings are currently cached.
func (d *DecodeCache) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Evict removes bytes' decode from the cache, if present.
func (d *DecodeCache) Evict(bytes []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.entries, checksumOf(bytes))
}

func checksumOf(bytes []byte) uint64 {
	var c checksum.Checksum
	c.UpdateSlice(bytes)
	return c.Value()
}
