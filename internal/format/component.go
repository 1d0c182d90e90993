package format

// CoreInstanceExprKind tags the two shapes a core-instance-section entry
// may take.
type CoreInstanceExprKind byte

const (
	CoreInstantiate CoreInstanceExprKind = iota
	CoreInlineExports
)

// CoreInstantiateArg names which already-decoded core instance satisfies
// one of a module's instantiation arguments.
type CoreInstantiateArg struct {
	Name        string
	InstanceIdx uint32
}

// CoreInlineExportItem is one (name, sort, index) triple of an inline
// core-instance export list.
type CoreInlineExportItem struct {
	Name string
	Sort CoreSort
	Idx  uint32
}

// CoreInstanceExpr is one entry of the core-instance section.
type CoreInstanceExpr struct {
	Kind CoreInstanceExprKind

	ModuleIdx uint32               // CoreInstantiate
	Args      []CoreInstantiateArg // CoreInstantiate

	InlineExports []CoreInlineExportItem // CoreInlineExports
}

// CoreTypeKind tags the two shapes a core-type-section entry may take.
type CoreTypeKind byte

const (
	CoreTypeFunc CoreTypeKind = iota
	CoreTypeModule
)

// CoreTypeDefinition is one entry of the core-type section.
type CoreTypeDefinition struct {
	Kind CoreTypeKind

	Func FuncType // CoreTypeFunc

	ModuleImports []ModuleImport // CoreTypeModule
	ModuleExports []ModuleExport // CoreTypeModule
}

// AliasKind tags the five shapes an alias-section entry may take.
type AliasKind byte

const (
	AliasCoreInstanceExport AliasKind = iota
	// AliasCoreModuleExport is the spec's explicitly flagged placeholder
	// (spec.md §9, Open Question a): stored identically to
	// AliasCoreInstanceExport but tagged with CoreSortModule, never
	// treated as a real distinct encoding. See DESIGN.md.
	AliasCoreModuleExport
	AliasComponentExport
	AliasInstanceExport
	AliasOuter
)

// Alias is one entry of the alias section.
type Alias struct {
	Kind AliasKind

	InstanceIdx uint32 // AliasCoreInstanceExport/AliasCoreModuleExport/AliasInstanceExport
	Name        string // AliasCoreInstanceExport/AliasCoreModuleExport/AliasComponentExport/AliasInstanceExport
	CoreSort    CoreSort

	OuterCount uint32 // AliasOuter: how many enclosing components to ascend
	OuterKind  Sort   // AliasOuter
	OuterIdx   uint32 // AliasOuter
}

// CanonicalKind tags the canonical-function-section's two directions.
type CanonicalKind byte

const (
	CanonicalLift CanonicalKind = iota
	CanonicalLower
)

// Canonical is one entry of the canonical section: a lift (core function
// to component function) or lower (component function to core function),
// naming the core function it wraps and the component function type it
// presents.
type Canonical struct {
	Kind        CanonicalKind
	CoreFuncIdx uint32
	FuncTypeIdx uint32
}

// Import/Export are the two decoded component-level linkage-table entries.
type Import struct {
	Namespace string
	Name      string
	Type      ExternType
}

// ExportNameAnnotation carries the optional semver/integrity suffixes a
// component export name may declare; both are nil unless their grammar
// matched, per spec.md §4.3 ("annotations that fail their respective
// predicates stay part of the name").
type ExportNameAnnotation struct {
	Semver       *SemverTag
	IntegrityTag *IntegrityTag
}

// SemverTag is a parsed "@major.minor.patch" export-name suffix.
type SemverTag struct {
	Major, Minor, Patch uint64
}

// IntegrityTag is a parsed "?algo-base64hash" export-name suffix.
type IntegrityTag struct {
	Algo string // "sha256" | "sha384" | "sha512"
	Hash string // base64
}

// Export is one entry of the export section.
type Export struct {
	Name       string
	Annotation ExportNameAnnotation
	Sort       Sort
	CoreSort   CoreSort // meaningful only when Sort == SortCore
	Idx        uint32
	Type       ExternType
}

// Value is one entry of the value section: a component-level constant
// realized at decode time, carried through to instantiation as a default.
type Value struct {
	Type ValType
	Raw  []byte // canonical-ABI-encoded bytes, per internal/container.Element's ToBytes convention
}

// Component is a decoded component graph, per spec.md §3.3: bounded
// collections of every section's contents, in declaration order, plus the
// optional raw binary and module name carried for identity re-encoding.
type Component struct {
	CoreModules        []Module
	CoreInstances      []CoreInstanceExpr
	CoreTypes          []CoreTypeDefinition
	NestedComponents   []*Component
	ComponentInstances []ComponentInstanceExpr
	Aliases            []Alias
	ComponentTypes     []ComponentTypeDefinition
	Canonicals         []Canonical
	Start              *StartSection
	Imports            []Import
	Exports            []Export
	Values             []Value

	// RawBinary is non-nil only when this Component was produced by
	// decoding, never mutated since, and not yet re-encoded from scratch.
	// internal/binary's encoder returns it bit-for-bit when present
	// (spec.md §4.3, "Re-encoding").
	RawBinary []byte
	Name      string // optional, from the custom "name" section if present

	// SectionOffsets records the byte offset of each section, in file
	// order, relative to the first byte after the preamble. Populated by
	// internal/binary's Decode; strictly increasing by construction.
	SectionOffsets []uint64
}

// ComponentInstanceExpr is one entry of the component-instance section: an
// instantiation of a nested component or component-type, with named args.
type ComponentInstanceExpr struct {
	ComponentIdx uint32
	Args         []CoreInstantiateArg // reuses the (name, idx) shape; idx here names a component-level item
}

// StartSection names the optional start function and its argument/result
// index lists.
type StartSection struct {
	FuncIdx uint32
	Args    []uint32
	Results []uint32
}
