package container

import "github.com/pulseengine/wrt-go/internal/checksum"

// comparableElement is the constraint a Map/Set key type must satisfy:
// usable with == for linear-scan membership, and serializable like any
// other bounded-container element.
type comparableElement interface {
	comparable
	Element
}

// entryKV is the serialized (K,V) pair a Map stores; its ToBytes is simply
// the concatenation of the key's and value's own encodings; key size is
// fixed so decode can split the pair back apart.
type entryKV[K comparableElement, V Element] struct {
	Key K
	Val V
}

func (e entryKV[K, V]) ToBytes() []byte {
	return append(append([]byte{}, e.Key.ToBytes()...), e.Val.ToBytes()...)
}

func (e entryKV[K, V]) UpdateChecksum(c *checksum.Checksum) {
	e.Key.UpdateChecksum(c)
	e.Val.UpdateChecksum(c)
}

// Map is a fixed-capacity, linear-scan (K,V) store. insert replaces the
// value on a key match rather than appending a duplicate.
type Map[K comparableElement, V Element] struct {
	vec       *Vec[entryKV[K, V]]
	keySize   int
	valSize   int
	decodeKey FromBytesFunc[K]
	decodeVal FromBytesFunc[V]
}

// NewMap constructs an empty Map of the given capacity. keySize/valSize are
// each key's and value's fixed serialized width.
func NewMap[K comparableElement, V Element](capacity, keySize, valSize int, provider Provider, decodeKey FromBytesFunc[K], decodeVal FromBytesFunc[V]) (*Map[K, V], error) {
	return NewMapWithVerification(capacity, keySize, valSize, provider, decodeKey, decodeVal, checksum.Full)
}

func NewMapWithVerification[K comparableElement, V Element](capacity, keySize, valSize int, provider Provider, decodeKey FromBytesFunc[K], decodeVal FromBytesFunc[V], level checksum.VerificationLevel) (*Map[K, V], error) {
	m := &Map[K, V]{keySize: keySize, valSize: valSize, decodeKey: decodeKey, decodeVal: decodeVal}
	decode := func(b []byte) (entryKV[K, V], error) {
		var zero entryKV[K, V]
		if len(b) < keySize+valSize {
			return zero, ErrConversion
		}
		k, err := decodeKey(b[:keySize])
		if err != nil {
			return zero, err
		}
		v, err := decodeVal(b[keySize : keySize+valSize])
		if err != nil {
			return zero, err
		}
		return entryKV[K, V]{Key: k, Val: v}, nil
	}
	vec, err := NewVecWithVerification(capacity, keySize+valSize, provider, decode, level)
	if err != nil {
		return nil, err
	}
	m.vec = vec
	return m, nil
}

func (m *Map[K, V]) Len() int      { return m.vec.Len() }
func (m *Map[K, V]) IsEmpty() bool { return m.vec.IsEmpty() }
func (m *Map[K, V]) IsFull() bool  { return m.vec.IsFull() }
func (m *Map[K, V]) Capacity() int { return m.vec.Capacity() }

func (m *Map[K, V]) indexOf(key K) (int, bool) {
	n := m.vec.Len()
	for i := 0; i < n; i++ {
		e, err := m.vec.Get(i)
		if err != nil {
			continue
		}
		if e.Key == key {
			return i, true
		}
	}
	return 0, false
}

// Get returns the value for key, if present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	var zero V
	i, ok := m.indexOf(key)
	if !ok {
		return zero, false
	}
	e, err := m.vec.Get(i)
	if err != nil {
		return zero, false
	}
	return e.Val, true
}

// Insert stores val under key, replacing any existing value for that key.
// It returns the previous value if one existed. Insertion of a brand new
// key into a full map fails with ErrCapacityExceeded.
func (m *Map[K, V]) Insert(key K, val V) (V, error) {
	var zero V
	if i, ok := m.indexOf(key); ok {
		old, _ := m.vec.Get(i)
		if err := m.vec.Set(i, entryKV[K, V]{Key: key, Val: val}); err != nil {
			return zero, err
		}
		return old.Val, nil
	}
	if err := m.vec.Push(entryKV[K, V]{Key: key, Val: val}); err != nil {
		return zero, err
	}
	return zero, nil
}

// Remove deletes the entry for key, shifting later entries down one slot.
// It reports whether key was present.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	var zero V
	i, ok := m.indexOf(key)
	if !ok {
		return zero, false
	}
	removed, _ := m.vec.Get(i)
	n := m.vec.Len()
	for j := i; j < n-1; j++ {
		next, _ := m.vec.Get(j + 1)
		_ = m.vec.Set(j, next)
	}
	_, _ = m.vec.Pop()
	return removed.Val, true
}

// Keys returns every key currently stored, in insertion order.
func (m *Map[K, V]) Keys() []K {
	n := m.vec.Len()
	out := make([]K, 0, n)
	for i := 0; i < n; i++ {
		if e, err := m.vec.Get(i); err == nil {
			out = append(out, e.Key)
		}
	}
	return out
}

// Entry supports the or_insert / or_insert_with idiom spec.md §4.1 asks
// for: look up key once, then decide whether to keep the existing value or
// install a default.
type Entry[K comparableElement, V Element] struct {
	m   *Map[K, V]
	key K
}

// Entry begins a lookup-or-insert sequence for key.
func (m *Map[K, V]) Entry(key K) Entry[K, V] {
	return Entry[K, V]{m: m, key: key}
}

// OrInsert returns the current value for the entry's key, inserting
// def if absent.
func (e Entry[K, V]) OrInsert(def V) (V, error) {
	if v, ok := e.m.Get(e.key); ok {
		return v, nil
	}
	if _, err := e.m.Insert(e.key, def); err != nil {
		var zero V
		return zero, err
	}
	return def, nil
}

// OrInsertWith is like OrInsert but only evaluates mk if the key is absent.
func (e Entry[K, V]) OrInsertWith(mk func() V) (V, error) {
	if v, ok := e.m.Get(e.key); ok {
		return v, nil
	}
	def := mk()
	if _, err := e.m.Insert(e.key, def); err != nil {
		var zero V
		return zero, err
	}
	return def, nil
}

// VerifyChecksum recomputes the digest from live contents and compares.
func (m *Map[K, V]) VerifyChecksum() bool { return m.vec.VerifyChecksum() }
