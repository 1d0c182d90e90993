package container

import "github.com/pulseengine/wrt-go/internal/checksum"

// Set is a fixed-capacity linear-scan membership collection.
type Set[T comparableElement] struct {
	vec *Vec[T]
}

func NewSet[T comparableElement](capacity, elemSize int, provider Provider, decode FromBytesFunc[T]) (*Set[T], error) {
	return NewSetWithVerification(capacity, elemSize, provider, decode, checksum.Full)
}

func NewSetWithVerification[T comparableElement](capacity, elemSize int, provider Provider, decode FromBytesFunc[T], level checksum.VerificationLevel) (*Set[T], error) {
	vec, err := NewVecWithVerification(capacity, elemSize, provider, decode, level)
	if err != nil {
		return nil, err
	}
	return &Set[T]{vec: vec}, nil
}

func (s *Set[T]) Len() int      { return s.vec.Len() }
func (s *Set[T]) IsEmpty() bool { return s.vec.IsEmpty() }
func (s *Set[T]) IsFull() bool  { return s.vec.IsFull() }
func (s *Set[T]) Capacity() int { return s.vec.Capacity() }

// Contains reports whether val is a member, by linear equality scan.
func (s *Set[T]) Contains(val T) bool {
	n := s.vec.Len()
	for i := 0; i < n; i++ {
		if v, err := s.vec.Get(i); err == nil && v == val {
			return true
		}
	}
	return false
}

// Insert adds val if absent. It reports whether val was newly inserted.
func (s *Set[T]) Insert(val T) (bool, error) {
	if s.Contains(val) {
		return false, nil
	}
	if err := s.vec.Push(val); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes val if present, shifting later entries down one slot.
func (s *Set[T]) Remove(val T) bool {
	n := s.vec.Len()
	for i := 0; i < n; i++ {
		v, err := s.vec.Get(i)
		if err != nil {
			continue
		}
		if v == val {
			for j := i; j < n-1; j++ {
				next, _ := s.vec.Get(j + 1)
				_ = s.vec.Set(j, next)
			}
			_, _ = s.vec.Pop()
			return true
		}
	}
	return false
}

// Items returns every member in storage order.
func (s *Set[T]) Items() ([]T, error) { return s.vec.All() }

// VerifyChecksum recomputes the digest from live contents and compares.
func (s *Set[T]) VerifyChecksum() bool { return s.vec.VerifyChecksum() }
