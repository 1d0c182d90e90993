package format

// ValKind tags the component-level ValType algebra (spec.md §3.1). Type
// bytes descend 0x7F..0x64; PrimKind further distinguishes the primitive
// family when Kind == ValPrimitive.
type ValKind byte

const (
	ValPrimitive ValKind = iota
	ValRef
	ValRecord
	ValVariant
	ValList
	ValTuple
	ValFlags
	ValEnum
	ValOption
	ValResultOk   // ok-only
	ValResultErr  // err-only
	ValResultBoth // ok and err both present
	ValOwn
	ValBorrow
)

// PrimKind enumerates the component primitive value types.
type PrimKind byte

const (
	PrimBool PrimKind = iota
	PrimS8
	PrimU8
	PrimS16
	PrimU16
	PrimS32
	PrimU32
	PrimS64
	PrimU64
	PrimF32
	PrimF64
	PrimChar
	PrimString
)

// RecordField is a named field inside a Record.
type RecordField struct {
	Name string
	Type *ValType
}

// VariantCase is a named, optionally-typed case inside a Variant.
type VariantCase struct {
	Name string
	Type *ValType // nil when the case carries no payload
}

// ValType is the recursive algebraic value type the Component Model's
// canonical ABI lifts and lowers values against. Composite kinds carry
// their children directly rather than through an interface, matching the
// "sum types over dynamic dispatch" design note (spec.md §9).
type ValType struct {
	Kind ValKind

	Prim PrimKind // ValPrimitive
	Idx  uint32   // ValRef / ValOwn / ValBorrow: a type-section index

	Fields []RecordField // ValRecord
	Cases  []VariantCase // ValVariant, ValEnum (Type nil on every case)
	Elem   *ValType      // ValList, ValOption
	Items  []*ValType    // ValTuple
	Names  []string      // ValFlags

	OkType  *ValType // ValResultOk / ValResultBoth
	ErrType *ValType // ValResultErr / ValResultBoth
}

// Sort is the kind of a component-level item.
type Sort byte

const (
	SortFunction Sort = iota
	SortValue
	SortType
	SortInstance
	SortComponent
	SortCore // carries a CoreSort in the decoded item
)

// CoreSort is the kind of a core-level item, used when Sort == SortCore.
type CoreSort byte

const (
	CoreSortFunc CoreSort = iota
	CoreSortTable
	CoreSortMemory
	CoreSortGlobal
	CoreSortType
	CoreSortModule
	CoreSortInstance
)

// ResourceRepresentationKind tags the four shapes a resource's
// representation may take.
type ResourceRepresentationKind byte

const (
	RepHandle32 ResourceRepresentationKind = iota
	RepHandle64
	RepRecord
	RepAggregate
)

// ResourceRepresentation is a component-type resource's storage shape.
type ResourceRepresentation struct {
	Kind       ResourceRepresentationKind
	FieldNames []string // RepRecord
	Indices    []uint32 // RepAggregate
}

// ComponentTypeDefKind tags the five shapes a component-type-section entry
// may take.
type ComponentTypeDefKind byte

const (
	CompTypeComponent ComponentTypeDefKind = iota
	CompTypeInstance
	CompTypeFunction
	CompTypeValue
	CompTypeResource
)

// NamedExternType pairs an export/import name with its ExternType, used by
// both Instance and Component definitions.
type NamedExternType struct {
	Namespace string // only meaningful for component-level imports
	Name      string
	Type      ExternType
}

// ComponentTypeDefinition is one entry of the component-type section.
type ComponentTypeDefinition struct {
	Kind ComponentTypeDefKind

	Imports []NamedExternType // CompTypeComponent
	Exports []NamedExternType // CompTypeComponent, CompTypeInstance

	Function FuncType // CompTypeFunction is expressed in core ValueTypes
	Value    *ValType // CompTypeValue

	Resource ResourceRepresentation // CompTypeResource
	Nullable bool                   // CompTypeResource
}

// ExternTypeKind tags what an import/export's type actually describes.
type ExternTypeKind byte

const (
	ExternFunc ExternTypeKind = iota
	ExternValueType
	ExternInstance
	ExternComponentType
	ExternCoreModule
	ExternCoreTable
	ExternCoreMemory
	ExternCoreGlobal
)

// ExternType is the type-level description of any importable/exportable
// component item.
type ExternType struct {
	Kind ExternTypeKind

	Func      FuncType
	Value     *ValType
	Instance  []NamedExternType
	Component *ComponentTypeDefinition
	Module    *FuncType // reused for a core function signature when Kind == ExternCoreModule-adjacent cases
	Table     TableType
	Memory    MemoryType
	Global    GlobalType
}
