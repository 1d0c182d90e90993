package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulseengine/wrt-go/internal/format"
	"github.com/pulseengine/wrt-go/internal/valtype"
	"github.com/pulseengine/wrt-go/internal/wrterr"
)

// TestCoreValue_MatchesValType mirrors spec.md §4.4's argument kind
// matching table.
func TestCoreValue_MatchesValType(t *testing.T) {
	boolType := &format.ValType{Kind: format.ValPrimitive, Prim: format.PrimBool}
	require.True(t, CoreValue{Type: valtype.I32, I32: 0}.MatchesValType(boolType))
	require.True(t, CoreValue{Type: valtype.I32, I32: 1}.MatchesValType(boolType))
	require.False(t, CoreValue{Type: valtype.I32, I32: 2}.MatchesValType(boolType))

	s32Type := &format.ValType{Kind: format.ValPrimitive, Prim: format.PrimS32}
	require.True(t, CoreValue{Type: valtype.I32, I32: 2}.MatchesValType(s32Type))

	f64Type := &format.ValType{Kind: format.ValPrimitive, Prim: format.PrimF64}
	require.True(t, CoreValue{Type: valtype.F64}.MatchesValType(f64Type))
	require.False(t, CoreValue{Type: valtype.F32}.MatchesValType(f64Type))

	stringType := &format.ValType{Kind: format.ValPrimitive, Prim: format.PrimString}
	require.False(t, CoreValue{Type: valtype.I32}.MatchesValType(stringType))
}

func TestExecuteFunction_UnknownExportReturnsExportNotFound(t *testing.T) {
	c := New(&format.Component{}, ComponentType{})
	_, err := c.ExecuteFunction(context.Background(), "missing", nil)
	require.Error(t, err)
	var we *wrterr.Error
	require.ErrorAs(t, err, &we)
	require.Equal(t, wrterr.KindExportNotFound, we.Kind)
}

func TestDispatchInner_NoRuntimeReturnsInitializationError(t *testing.T) {
	c := New(&format.Component{}, ComponentType{})
	_, err := c.dispatchInner(context.Background(), "run", nil)
	require.Error(t, err)
	var we *wrterr.Error
	require.ErrorAs(t, err, &we)
	require.Equal(t, wrterr.KindInitialization, we.Kind)
}

type panickingRuntime struct{}

func (panickingRuntime) ExecuteFunction(ctx context.Context, name string, args []ComponentValue) ([]ComponentValue, error) {
	panic("boom")
}
func (panickingRuntime) ReadMemory(off, size uint32, buf []byte) error { return nil }
func (panickingRuntime) WriteMemory(off uint32, data []byte) error     { return nil }

// TestExecuteStart_RecoversRuntimePanic mirrors spec.md §7's one-shot
// recover() at the start-function boundary.
func TestExecuteStart_RecoversRuntimePanic(t *testing.T) {
	decoded := &format.Component{Exports: []format.Export{{Name: "_start", Sort: format.SortFunction, Idx: 0}}}
	ct := ComponentType{}
	c := New(decoded, ct).WithRuntime(panickingRuntime{})
	c.Exports = []NamedExternValue{{Name: "_start", Value: ExternValue{Kind: ExternValueFunction, FuncName: "_start"}}}

	result, err := c.ExecuteStart(context.Background(), 0, 0)
	require.Nil(t, result)
	require.Error(t, err)
	var we *wrterr.Error
	require.ErrorAs(t, err, &we)
	require.Equal(t, wrterr.KindExecution, we.Kind)
}
