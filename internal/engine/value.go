package engine

import (
	"sync"

	"github.com/pulseengine/wrt-go/internal/format"
)

// ComponentValue pairs a component-level type with the Go value realizing
// it. Composite values (record, variant, list, ...) nest further
// ComponentValues in Fields/Items/Elems rather than holding an interface,
// matching the "sum types over dynamic dispatch" design note (spec.md §9).
type ComponentValue struct {
	Type *format.ValType

	Bool   bool
	Int    int64   // s8..s64, u8..u64 widened to int64 (sign per Type.Prim)
	Uint   uint64  // alternate accessor for the unsigned primitives
	Float  float64 // f32/f64
	Char   rune
	String string

	Fields []ComponentValue // Record
	Case   string           // Variant/Enum: the selected case name
	Elems  []ComponentValue // List, Tuple
	Flags  []string         // Flags: the set flag names
	Some   *ComponentValue  // Option, nil means None
	Ok     *ComponentValue  // Result ok payload, nil on error or no payload
	Err    *ComponentValue  // Result err payload
	Handle uint32           // Own, Borrow: a resource-table handle
}

// ToBytes serializes v the same way bounded containers serialize their
// elements, so the interception value pipeline (spec.md §4.4) can pass
// ComponentValues across the engine/interceptor boundary as byte strings.
func (v ComponentValue) ToBytes() []byte {
	var out []byte
	if v.Type == nil {
		return out
	}
	switch v.Type.Kind {
	case format.ValPrimitive:
		switch v.Type.Prim {
		case format.PrimBool:
			if v.Bool {
				return []byte{1}
			}
			return []byte{0}
		case format.PrimF32, format.PrimF64:
			return appendUint64LE(out, uint64(v.Float))
		case format.PrimChar:
			return appendUint64LE(out, uint64(v.Char))
		case format.PrimString:
			return []byte(v.String)
		default:
			return appendUint64LE(out, v.Uint)
		}
	case format.ValRecord:
		for _, f := range v.Fields {
			out = append(out, f.ToBytes()...)
		}
		return out
	case format.ValList, format.ValTuple:
		for _, e := range v.Elems {
			out = append(out, e.ToBytes()...)
		}
		return out
	case format.ValOption:
		if v.Some == nil {
			return []byte{0}
		}
		return append([]byte{1}, v.Some.ToBytes()...)
	default:
		return out
	}
}

func appendUint64LE(dst []byte, v uint64) []byte {
	for i := 0; i < 8; i++ {
		dst = append(dst, byte(v>>(8*i)))
	}
	return dst
}

// ExternValueKind tags what an ExternValue currently realizes.
type ExternValueKind byte

const (
	ExternValueTrap ExternValueKind = iota
	ExternValueFunction
	ExternValueMemory
	ExternValueGlobal
	ExternValueTable
	ExternValueInstance
	ExternValueValue
)

// ExternValue is the runtime realization of an export or instance-export
// slot. It starts as ExternValueTrap ("<kind> not yet initialized") per
// step 3/4 of the instantiate protocol and is rebound to a concrete kind
// during forward/reverse linking.
type ExternValue struct {
	Kind ExternValueKind

	TrapReason string

	FuncName string // ExternValueFunction: the name dispatch resolves through

	Memory *MemoryValue

	GlobalValue   ComponentValue
	GlobalMutable bool

	Instance *InstanceValue

	Value *ComponentValue
}

// Trap builds a sentinel ExternValue reporting that an item of kind kind
// has not yet been initialized (spec.md §4.4 step 3).
func Trap(kind string) ExternValue {
	return ExternValue{Kind: ExternValueTrap, TrapReason: kind + " not yet initialized"}
}

// IsTrap reports whether v is still the uninitialized sentinel.
func (v ExternValue) IsTrap() bool { return v.Kind == ExternValueTrap }

// InstanceValue is a materialized ComponentTypeDefinition::Instance: a
// bounded set of named exports, each itself an ExternValue (spec.md §4.4
// step 4).
type InstanceValue struct {
	Exports []NamedExternValue
}

// NamedExternValue pairs an export name with its realized value.
type NamedExternValue struct {
	Name  string
	Value ExternValue
}

// Lookup returns the export named name and whether it was found.
func (i *InstanceValue) Lookup(name string) (*ExternValue, bool) {
	for idx := range i.Exports {
		if i.Exports[idx].Name == name {
			return &i.Exports[idx].Value, true
		}
	}
	return nil, false
}

// MemoryValue is a linear memory region with the single-writer/multi-reader
// discipline spec.md §5 requires: Read acquires shared access, Write/Grow
// acquires exclusive access. Lock-acquisition failure (none here, since
// sync.RWMutex blocks rather than fails) is reserved for a provider that
// rejects an out-of-bounds access, which surfaces as MemoryAccessError.
type MemoryValue struct {
	mu         sync.RWMutex
	data       []byte
	pageSize   uint32
	maxPages   *uint32
	peakUsage  int
	accessHits uint64
}

const memoryPageSize = 65536

// NewMemoryValue allocates a MemoryValue of minPages pages, optionally
// capped at maxPages (spec.md §4.4 step 4: "default memory of 1..=2
// pages").
func NewMemoryValue(minPages uint32, maxPages *uint32) *MemoryValue {
	m := &MemoryValue{
		data:     make([]byte, int(minPages)*memoryPageSize),
		pageSize: memoryPageSize,
		maxPages: maxPages,
	}
	m.peakUsage = len(m.data)
	return m
}

// Read copies Size(buf) bytes starting at off into buf under shared access.
func (m *MemoryValue) Read(off uint32, buf []byte) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.accessHits++
	end := uint64(off) + uint64(len(buf))
	if end > uint64(len(m.data)) {
		return &MemoryAccessError{Msg: "read out of bounds"}
	}
	copy(buf, m.data[off:uint64(off)+uint64(len(buf))])
	return nil
}

// Write copies data into the memory at off under exclusive access.
func (m *MemoryValue) Write(off uint32, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accessHits++
	end := uint64(off) + uint64(len(data))
	if end > uint64(len(m.data)) {
		return &MemoryAccessError{Msg: "write out of bounds"}
	}
	copy(m.data[off:uint64(off)+uint64(len(data))], data)
	return nil
}

// Size returns the current size in pages.
func (m *MemoryValue) Size() uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return uint32(len(m.data)) / m.pageSize
}

// Grow extends the memory by delta pages, returning the previous size in
// pages, or failure if that would exceed the declared maximum.
func (m *MemoryValue) Grow(delta uint32) (previous uint32, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	previous = uint32(len(m.data)) / m.pageSize
	next := previous + delta
	if m.maxPages != nil && next > *m.maxPages {
		return previous, &MemoryAccessError{Msg: "grow exceeds declared maximum"}
	}
	m.data = append(m.data, make([]byte, int(delta)*int(m.pageSize))...)
	if len(m.data) > m.peakUsage {
		m.peakUsage = len(m.data)
	}
	return previous, nil
}

// PeakUsage returns the largest byte size this memory has ever reached.
func (m *MemoryValue) PeakUsage() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.peakUsage
}

// AccessCount returns the number of Read/Write calls served so far.
func (m *MemoryValue) AccessCount() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accessHits
}
