// Package format defines the decoded shape of a component binary: core
// WebAssembly types (FuncType, Limits, TableType, ...), the component-level
// ValType algebra, and the Component graph itself. It holds data only — the
// codec lives in internal/binary, instantiation semantics in internal/engine.
package format

import "github.com/pulseengine/wrt-go/internal/valtype"

// MaxFuncParams/MaxFuncResults bound a FuncType's signature per spec.md
// §4.2 ("bounded sequence... (≤ 128)").
const (
	MaxFuncParams  = 128
	MaxFuncResults = 128
)

// FuncType is a core WebAssembly function signature, prefix byte 0x60.
type FuncType struct {
	Params  []valtype.ValueType
	Results []valtype.ValueType
}

// FuncTypePrefix is the leading byte of an encoded FuncType.
const FuncTypePrefix = 0x60

// Limits bounds a table or memory's size: a minimum and an optional
// maximum, both in the unit appropriate to the owning type (pages for
// memory, elements for table).
type Limits struct {
	Min uint32
	Max *uint32 // nil when unbounded
}

// TableType pairs an element RefType with its size Limits.
type TableType struct {
	Element valtype.RefType
	Limits  Limits
}

// MemoryType is a linear memory's Limits plus its shared-memory flag.
type MemoryType struct {
	Limits Limits
	Shared bool
}

// GlobalType is a value type plus its mutability.
type GlobalType struct {
	ValueType valtype.ValueType
	Mutable   bool
}

// StorageKind distinguishes a FieldType's full-width storage from its two
// packed variants, which widen to I32 on read.
type StorageKind byte

const (
	StorageFull StorageKind = iota
	StorageI8
	StorageI16
)

// StorageType is either a full ValueType or a packed 8/16-bit field.
type StorageType struct {
	Kind  StorageKind
	Value valtype.ValueType // meaningful only when Kind == StorageFull
}

// Widened returns the ValueType a read of this storage widens to.
func (s StorageType) Widened() valtype.ValueType {
	switch s.Kind {
	case StorageI8, StorageI16:
		return valtype.I32
	default:
		return s.Value
	}
}

// FieldType is one member of a StructType or the element of an ArrayType.
type FieldType struct {
	Storage StorageType
	Mutable bool
}

// StructType is an ordered list of fields.
type StructType struct {
	Fields []FieldType
}

// ArrayType is a single repeated field, with a final (non-extensible) flag.
type ArrayType struct {
	Element FieldType
	Final   bool
}

// ImportDescKind tags the six shapes an ImportDesc may take.
type ImportDescKind byte

const (
	ImportFunction ImportDescKind = iota
	ImportTable
	ImportMemory
	ImportGlobal
	ImportExtern
	ImportResource
)

// ImportDesc is a core-module import's declared shape.
type ImportDesc struct {
	Kind    ImportDescKind
	TypeIdx uint32 // ImportFunction
	Table   TableType
	Memory  MemoryType
	Global  GlobalType
}

// ExportDescKind tags the five shapes an ExportDesc may take.
type ExportDescKind byte

const (
	ExportFunc ExportDescKind = iota
	ExportTable
	ExportMem
	ExportGlobal
	ExportTag
)

// ExportDesc is a core-module export's declared shape.
type ExportDesc struct {
	Kind ExportDescKind
	Idx  uint32
}

// CustomSection is an opaque, name-tagged payload preserved verbatim.
type CustomSection struct {
	Name    string
	Payload []byte
}

// Module is the minimal placeholder for a classic core WebAssembly module
// embedded inside a component: spec.md §1 places the instruction
// interpreter itself out of scope, so this only carries what the component
// decoder and instantiation engine need — the raw bytes and, once decoded,
// its own import/export descriptors.
type Module struct {
	Raw     []byte
	Imports []ModuleImport
	Exports []ModuleExport
}

// ModuleImport is a two-level-namespaced core import entry.
type ModuleImport struct {
	Module string
	Name   string
	Desc   ImportDesc
}

// ModuleExport is a core-module export entry: a name and its ExportDesc.
type ModuleExport struct {
	Name string
	Desc ExportDesc
}
