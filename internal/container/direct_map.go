package container

import "github.com/pulseengine/wrt-go/internal/checksum"

// DirectMap is the exception to every other container in this package: it
// holds entries as plain in-memory (K,V) pairs, with no serialization
// through a Provider. It exists for hot-path lookup tables with under ~100
// entries that are written once and read often, and provides only a
// collection-level checksum (not per-element, since there is no per-element
// byte encoding to fold).
type DirectMap[K comparable, V any] struct {
	keys     []K
	vals     []V
	capacity int
	sum      checksum.Checksum
	keyBytes func(K) []byte
	valBytes func(V) []byte
}

// NewDirectMap constructs an empty DirectMap of the given capacity.
// keyBytes/valBytes are used only to feed the collection-level checksum,
// never for storage.
func NewDirectMap[K comparable, V any](capacity int, keyBytes func(K) []byte, valBytes func(V) []byte) *DirectMap[K, V] {
	return &DirectMap[K, V]{
		capacity: capacity,
		keyBytes: keyBytes,
		valBytes: valBytes,
	}
}

func (d *DirectMap[K, V]) Len() int      { return len(d.keys) }
func (d *DirectMap[K, V]) IsEmpty() bool { return len(d.keys) == 0 }
func (d *DirectMap[K, V]) IsFull() bool  { return len(d.keys) == d.capacity }
func (d *DirectMap[K, V]) Capacity() int { return d.capacity }

func (d *DirectMap[K, V]) indexOf(key K) int {
	for i, k := range d.keys {
		if k == key {
			return i
		}
	}
	return -1
}

// Get returns the value for key, if present.
func (d *DirectMap[K, V]) Get(key K) (V, bool) {
	var zero V
	i := d.indexOf(key)
	if i < 0 {
		return zero, false
	}
	return d.vals[i], true
}

// Insert stores val under key, replacing and returning any prior value.
// Inserting a brand-new key beyond capacity fails with ErrCapacityExceeded.
func (d *DirectMap[K, V]) Insert(key K, val V) (*V, error) {
	if i := d.indexOf(key); i >= 0 {
		old := d.vals[i]
		d.vals[i] = val
		d.touchChecksum()
		return &old, nil
	}
	if len(d.keys) >= d.capacity {
		return nil, ErrCapacityExceeded
	}
	d.keys = append(d.keys, key)
	d.vals = append(d.vals, val)
	d.touchChecksum()
	return nil, nil
}

func (d *DirectMap[K, V]) touchChecksum() {
	d.sum.Reset()
	for i := range d.keys {
		if d.keyBytes != nil {
			d.sum.UpdateSlice(d.keyBytes(d.keys[i]))
		}
		if d.valBytes != nil {
			d.sum.UpdateSlice(d.valBytes(d.vals[i]))
		}
	}
}

// VerifyChecksum recomputes the whole-collection digest and compares.
func (d *DirectMap[K, V]) VerifyChecksum() bool {
	want := d.sum.Value()
	d.touchChecksum()
	got := d.sum.Value()
	return got == want
}
