package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	closepkg "github.com/pulseengine/wrt-go/internal/close"
	"github.com/pulseengine/wrt-go/internal/format"
	"github.com/pulseengine/wrt-go/internal/wrterr"
)

func boolFuncType() format.FuncType { return format.FuncType{} }

func funcExternType() format.ExternType {
	return format.ExternType{Kind: format.ExternFunc, Func: boolFuncType()}
}

// TestInstantiate_LengthCheck mirrors spec.md §4.4 step 1: import count
// must match the component type's import count exactly.
func TestInstantiate_LengthCheck(t *testing.T) {
	ct := ComponentType{Imports: []format.NamedExternType{{Name: "run", Type: funcExternType()}}}
	c := New(&format.Component{}, ct)
	err := c.Instantiate(nil)
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

// TestInstantiate_UnsatisfiedExportFailsValidation mirrors spec.md §4.4
// step 8: an export with no matching instance-export is left Trap and
// fails validation.
func TestInstantiate_UnsatisfiedExportFailsValidation(t *testing.T) {
	ct := ComponentType{
		Imports: []format.NamedExternType{{Name: "other", Type: funcExternType()}},
		Exports: []format.NamedExternType{{Name: "run", Type: funcExternType()}},
	}
	c := New(&format.Component{}, ct)
	imports := []NamedExternValue{{Name: "other", Value: ExternValue{Kind: ExternValueFunction, FuncName: "other"}}}
	err := c.Instantiate(imports)
	require.Error(t, err)
}

// TestInstantiate_InstanceExportSatisfiesImport exercises step 7
// (finalize): an instance export rebinds from a type-compatible import of
// the same name, after which validation succeeds.
func TestInstantiate_InstanceExportSatisfiesImport(t *testing.T) {
	ct := ComponentType{
		Imports: []format.NamedExternType{{Name: "log", Type: funcExternType()}},
		Instances: []format.ComponentTypeDefinition{
			{Kind: format.CompTypeInstance, Exports: []format.NamedExternType{{Name: "log", Type: funcExternType()}}},
		},
	}
	c := New(&format.Component{}, ct)
	imports := []NamedExternValue{{Name: "log", Value: ExternValue{Kind: ExternValueFunction, FuncName: "log"}}}
	err := c.Instantiate(imports)
	require.NoError(t, err)
	require.Len(t, c.Instances, 1)
	v, ok := c.Instances[0].Lookup("log")
	require.True(t, ok)
	require.Equal(t, ExternValueFunction, v.Kind)
}

// TestInstantiate_MemoryInstancePrepopulated mirrors spec.md §4.4 step 4:
// Memory-typed instance items are pre-populated with a default memory,
// never left as a Trap sentinel.
func TestInstantiate_MemoryInstancePrepopulated(t *testing.T) {
	ct := ComponentType{
		Instances: []format.ComponentTypeDefinition{
			{Kind: format.CompTypeInstance, Exports: []format.NamedExternType{
				{Name: "memory", Type: format.ExternType{Kind: format.ExternCoreMemory}},
			}},
		},
	}
	c := New(&format.Component{}, ct)
	require.NoError(t, c.Instantiate(nil))
	v, ok := c.Instances[0].Lookup("memory")
	require.True(t, ok)
	require.False(t, v.IsTrap())
	require.Equal(t, uint32(1), v.Memory.Size())
}

func TestExternTypesCompatible_CrossKindMismatch(t *testing.T) {
	a := format.ExternType{Kind: format.ExternFunc}
	b := format.ExternType{Kind: format.ExternCoreMemory}
	require.False(t, ExternTypesCompatible(a, b))
}

func TestLinkComponent_SelfInsertionForbidden(t *testing.T) {
	c := New(&format.Component{}, ComponentType{})
	err := c.LinkComponent(c, "self")
	require.ErrorIs(t, err, ErrSelfLink)
}

func TestLinkComponent_ReplaceOnReinsert(t *testing.T) {
	c := New(&format.Component{}, ComponentType{})
	first := New(&format.Component{}, ComponentType{})
	second := New(&format.Component{}, ComponentType{})
	require.NoError(t, c.LinkComponent(first, "child"))
	require.NoError(t, c.LinkComponent(second, "child"))
	require.Same(t, second, c.Links["child"])
}

func TestExecuteFunction_HostRouted(t *testing.T) {
	ct := ComponentType{
		Imports: []format.NamedExternType{{Name: "run", Type: funcExternType()}},
		Exports: []format.NamedExternType{{Name: "run", Type: funcExternType()}},
	}
	c := New(&format.Component{}, ct)
	imports := []NamedExternValue{{Name: "run", Value: ExternValue{Kind: ExternValueFunction, FuncName: "run"}}}
	require.NoError(t, c.Instantiate(imports))
	c.Exports[0].Value = ExternValue{Kind: ExternValueFunction, FuncName: "wasi_snapshot_preview1.fd_write"}
	c.CallbackRegistry = &fakeRegistry{}

	_, err := c.ExecuteFunction(context.Background(), "run", nil)
	require.NoError(t, err)
}

type fakeRegistry struct{ called bool }

func (f *fakeRegistry) CallHostFunction(ctx context.Context, engineCtx any, module, fn string, args []ComponentValue) ([]ComponentValue, error) {
	f.called = true
	return nil, nil
}

func TestExecuteStart_AbsentReturnsNilNil(t *testing.T) {
	c := New(&format.Component{}, ComponentType{})
	require.NoError(t, c.Instantiate(nil))
	result, err := c.ExecuteStart(context.Background(), 1000, 0)
	require.NoError(t, err)
	require.Nil(t, result)
}

func TestComponent_CreateResourceUsesDefaultVerificationLevel(t *testing.T) {
	c := New(&format.Component{}, ComponentType{}).WithVerificationLevel(0)
	h := c.CreateResource(1, []byte("x"), MemoryStrategyCopy)
	data, err := c.Resources.BorrowResource(h)
	require.NoError(t, err)
	require.Equal(t, []byte("x"), data)
	require.Equal(t, c.verification, c.Resources.Stats()[1].LatestLevel)
}

type recordingNotification struct {
	called   bool
	exitCode uint32
}

func (r *recordingNotification) OnClose(ctx context.Context, exitCode uint32) {
	r.called = true
	r.exitCode = exitCode
}

func TestComponent_CloseNotifiesAndDropsResources(t *testing.T) {
	c := New(&format.Component{}, ComponentType{})
	h := c.Resources.CreateResource(0, []byte("x"), MemoryStrategyCopy, 0)

	n := &recordingNotification{}
	ctx := context.WithValue(context.Background(), closepkg.NotificationKey{}, n)
	c.Close(ctx, 7)

	require.True(t, n.called)
	require.Equal(t, uint32(7), n.exitCode)
	_, err := c.Resources.BorrowResource(h)
	require.Error(t, err)
}

// TestInstantiate_FunctionExportIndexOutOfRangeFails exercises
// validateFunctionIndices: a decoded function-sort export whose Idx has no
// matching canonical-lift entry fails with KindInvalidFunctionIndex.
func TestInstantiate_FunctionExportIndexOutOfRangeFails(t *testing.T) {
	decoded := &format.Component{
		Exports: []format.Export{{Name: "run", Sort: format.SortFunction, Idx: 0}},
	}
	ct := ComponentType{Exports: []format.NamedExternType{{Name: "run", Type: funcExternType()}}}
	c := New(decoded, ct)
	c.Exports = []NamedExternValue{{Name: "run", Value: ExternValue{Kind: ExternValueFunction, FuncName: "run"}}}

	err := c.validateFunctionIndices()
	require.Error(t, err)
	var we *wrterr.Error
	require.ErrorAs(t, err, &we)
	require.Equal(t, wrterr.KindInvalidFunctionIndex, we.Kind)
}

// TestInstantiate_FunctionExportIndexInRangeSucceeds is the companion
// positive case: Idx 0 is valid once a matching canonical-lift entry exists.
func TestInstantiate_FunctionExportIndexInRangeSucceeds(t *testing.T) {
	decoded := &format.Component{
		Exports:    []format.Export{{Name: "run", Sort: format.SortFunction, Idx: 0}},
		Canonicals: []format.Canonical{{Kind: format.CanonicalLift}},
	}
	c := New(decoded, ComponentType{})
	require.NoError(t, c.validateFunctionIndices())
}
