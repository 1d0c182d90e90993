package format

import "github.com/pulseengine/wrt-go/internal/valtype"

// Op is the tag of a core-instruction variant. Each variant has a fixed
// opcode byte, except the atomic family which share the 0xFE prefix
// followed by a sub-opcode (AtomicSubOp).
type Op byte

const (
	OpUnreachable Op = iota
	OpNop
	OpBlock
	OpLoop
	OpIf
	OpElse
	OpEnd
	OpBr
	OpBrIf
	OpBrTable
	OpReturn
	OpCall
	OpCallIndirect
	OpReturnCall
	OpReturnCallIndirect
	OpBrOnNull
	OpBrOnNonNull

	OpRefNull
	OpRefFunc
	OpRefIsNull
	OpRefAsNonNull
	OpRefEq

	OpLocalGet
	OpLocalSet
	OpLocalTee
	OpGlobalGet
	OpGlobalSet

	OpConst // numeric constant; Immediate carries the typed value

	OpLoad  // MemArg-bearing load, width/sign in Immediate
	OpStore // MemArg-bearing store

	OpMemoryTableBulk // memory.copy/fill/init, table.copy/fill/init/grow/size
	OpArith           // the full scalar arithmetic/comparison/conversion suite

	OpAtomic // 0xFE-prefixed: atomic load/store/RMW/cmpxchg/notify/wait/fence
)

// BrTableMaxTargets bounds BrTable's jump table (spec.md §4.2: "≤ 256").
const BrTableMaxTargets = 256

// MemArg is the alignment hint, byte offset, and memory index carried by
// every load/store instruction.
type MemArg struct {
	AlignExp    uint32
	Offset      uint32
	MemoryIndex uint32
}

// AtomicSubOp enumerates the 0xFE-prefixed atomic sub-opcodes.
type AtomicSubOp byte

const (
	AtomicMemoryNotify AtomicSubOp = iota
	AtomicMemoryWait32
	AtomicMemoryWait64
	AtomicFence
	AtomicLoad
	AtomicStore
	AtomicRMWAdd
	AtomicRMWSub
	AtomicRMWAnd
	AtomicRMWOr
	AtomicRMWXor
	AtomicRMWXchg
	AtomicRMWCmpxchg
)

// BlockType is Block/Loop/If's signature: either empty, a single result
// value type, or a reference into the module's function-type section.
type BlockType struct {
	Empty   bool
	Value   valtype.ValueType
	TypeIdx int32 // -1 when not a type-index form
}

// Instruction is the single tagged enum covering every core opcode family
// named in spec.md §4.2. Only the fields relevant to Op are meaningful;
// this mirrors the spec's own "one sum type, not a class hierarchy" design
// note (§9).
type Instruction struct {
	Op Op

	Block     BlockType
	LabelIdx  uint32
	LabelIdxs []uint32 // BrTable targets, ≤ BrTableMaxTargets
	Default   uint32   // BrTable default target

	FuncIdx  uint32
	TypeIdx  uint32
	TableIdx uint32
	LocalIdx uint32

	RefType valtype.RefType

	MemArg MemArg

	// ConstI32/I64/F32/F64 hold the decoded constant for OpConst;
	// Immediate carries any opcode-specific sub-tag (arith op code, bulk-op
	// selector, atomic sub-opcode) as a plain byte so this type stays a
	// fixed-shape struct rather than growing one field per opcode.
	ConstI32  int32
	ConstI64  int64
	ConstF32  float32
	ConstF64  float64
	Immediate byte
	Atomic    AtomicSubOp
}
