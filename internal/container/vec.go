package container

import "github.com/pulseengine/wrt-go/internal/checksum"

// Element is the contract a type must satisfy to live inside a serialized
// bounded container: a fixed, non-zero (when capacity > 0) encoded width,
// a byte-exact ToBytes/FromBytes pair, and checksum participation.
type Element interface {
	checksum.Checksummable
	ToBytes() []byte
}

// FromBytesFunc decodes a T from exactly one element-sized slice. It is
// supplied by the caller (rather than implemented as a method) because Go
// has no way to express "static factory method" on a type parameter.
type FromBytesFunc[T Element] func([]byte) (T, error)

// Vec is a fixed-capacity, serialized, append/random-access sequence. Every
// element is encoded to a fixed-width byte slice and stored at
// offset = position * elemSize inside the backing Provider.
type Vec[T Element] struct {
	provider Provider
	decode   FromBytesFunc[T]
	elemSize int
	capacity int
	length   int
	level    checksum.VerificationLevel
	sum      checksum.Checksum
	seq      uint64
}

// NewVec constructs an empty Vec of the given capacity, backed by provider,
// with checksum.Full verification. elemSize must equal the ToBytes() width
// every element of T produces; zero is only valid when capacity is zero.
func NewVec[T Element](capacity int, elemSize int, provider Provider, decode FromBytesFunc[T]) (*Vec[T], error) {
	return NewVecWithVerification(capacity, elemSize, provider, decode, checksum.Full)
}

// NewVecWithVerification is NewVec with an explicit VerificationLevel.
func NewVecWithVerification(capacity, elemSize int, provider Provider, decode FromBytesFunc[T], level checksum.VerificationLevel) (*Vec[T], error) {
	if capacity > 0 && elemSize <= 0 {
		return nil, ErrItemTooLarge
	}
	v := &Vec[T]{
		provider: provider,
		decode:   decode,
		elemSize: elemSize,
		capacity: capacity,
		level:    level,
	}
	if level.ShouldUpdateOnCreateOrDelete() {
		v.sum = checksum.New()
	}
	return v, nil
}

func (v *Vec[T]) Len() int                                      { return v.length }
func (v *Vec[T]) IsEmpty() bool                                 { return v.length == 0 }
func (v *Vec[T]) IsFull() bool                                  { return v.length == v.capacity }
func (v *Vec[T]) Capacity() int                                 { return v.capacity }
func (v *Vec[T]) VerificationLevel() checksum.VerificationLevel { return v.level }

func (v *Vec[T]) offset(i int) int { return i * v.elemSize }

// Push appends val at the end, failing with ErrCapacityExceeded if the
// vector is already full, or ErrItemTooLarge if the encoded form of val
// doesn't fit the declared element size.
func (v *Vec[T]) Push(val T) error {
	if v.length >= v.capacity {
		return ErrCapacityExceeded
	}
	b := val.ToBytes()
	if len(b) > v.elemSize {
		return ErrItemTooLarge
	}
	dst, err := v.provider.Bytes(v.offset(v.length), v.elemSize)
	if err != nil {
		return err
	}
	clearThenCopy(dst, b)
	v.length++
	v.seq++
	if v.level == checksum.Full || (v.level == checksum.Standard && v.level.ShouldUpdateOnMutation(v.seq)) {
		val.UpdateChecksum(&v.sum)
	}
	return nil
}

// Pop removes and returns the last element, recomputing the checksum from
// scratch at any level above Off since the popped element must be removed
// from the rolling digest, not merely left stale.
func (v *Vec[T]) Pop() (T, error) {
	var zero T
	if v.length == 0 {
		return zero, ErrSlice
	}
	val, err := v.Get(v.length - 1)
	if err != nil {
		return zero, err
	}
	v.length--
	v.seq++
	if v.level.ShouldUpdateOnCreateOrDelete() {
		v.recomputeChecksum()
	}
	return val, nil
}

// Get returns the element at logical position i.
func (v *Vec[T]) Get(i int) (T, error) {
	var zero T
	if i < 0 || i >= v.length {
		return zero, ErrSlice
	}
	b, err := v.provider.Bytes(v.offset(i), v.elemSize)
	if err != nil {
		return zero, err
	}
	val, err := v.decode(b)
	if err != nil {
		return zero, ErrConversion
	}
	return val, nil
}

// Set overwrites the element at logical position i, which must already be
// within [0, Len()).
func (v *Vec[T]) Set(i int, val T) error {
	if i < 0 || i >= v.length {
		return ErrSlice
	}
	b := val.ToBytes()
	if len(b) > v.elemSize {
		return ErrItemTooLarge
	}
	dst, err := v.provider.Bytes(v.offset(i), v.elemSize)
	if err != nil {
		return err
	}
	clearThenCopy(dst, b)
	v.seq++
	if v.level == checksum.Full || (v.level == checksum.Standard && v.level.ShouldUpdateOnMutation(v.seq)) {
		v.recomputeChecksum()
	}
	return nil
}

// All returns every live element in logical order, decoded fresh from the
// backing arena.
func (v *Vec[T]) All() ([]T, error) {
	out := make([]T, 0, v.length)
	for i := 0; i < v.length; i++ {
		val, err := v.Get(i)
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	return out, nil
}

func (v *Vec[T]) recomputeChecksum() {
	v.sum.Reset()
	for i := 0; i < v.length; i++ {
		if val, err := v.Get(i); err == nil {
			val.UpdateChecksum(&v.sum)
		}
	}
}

// VerifyChecksum recomputes the digest from live contents and compares it
// to the maintained one. At Off this always reports true. A mismatch is a
// validation failure but never makes the container unusable.
func (v *Vec[T]) VerifyChecksum() bool {
	if v.level == checksum.Off {
		return true
	}
	want := v.sum
	v.recomputeChecksum()
	got := v.sum
	v.sum = want
	return got.Value() == want.Value()
}

func clearThenCopy(dst, src []byte) {
	for i := range dst {
		dst[i] = 0
	}
	copy(dst, src)
}
