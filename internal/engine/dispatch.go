package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pulseengine/wrt-go/internal/format"
	"github.com/pulseengine/wrt-go/internal/tracelog"
	"github.com/pulseengine/wrt-go/internal/valtype"
	"github.com/pulseengine/wrt-go/internal/wrterr"
)

// CoreValue is a core WebAssembly call argument or result, tagged by its
// ValueType so ExecuteFunction can apply the argument→param-type matching
// rule of spec.md §4.4 without an interface per variant.
type CoreValue struct {
	Type valtype.ValueType
	I32  int32
	I64  int64
	F32  float32
	F64  float64
}

// MatchesValType reports whether c is an admissible argument for a
// component-level parameter of type t, per spec.md §4.4's argument kind
// matching table. Richer checks happen during canonical lowering, outside
// this layer.
func (c CoreValue) MatchesValType(t *format.ValType) bool {
	if t == nil || t.Kind != format.ValPrimitive {
		return false
	}
	switch c.Type {
	case valtype.I32:
		switch t.Prim {
		case format.PrimBool:
			return c.I32 == 0 || c.I32 == 1
		case format.PrimS32, format.PrimU32:
			return true
		}
	case valtype.I64:
		return t.Prim == format.PrimS64 || t.Prim == format.PrimU64
	case valtype.F32:
		return t.Prim == format.PrimF32
	case valtype.F64:
		return t.Prim == format.PrimF64
	}
	return false
}

// ExecuteFunction dispatches a call to the export named name (spec.md
// §4.4 "Call dispatch").
func (c *Component) ExecuteFunction(ctx context.Context, name string, args []ComponentValue) ([]ComponentValue, error) {
	exp, ok := c.lookupExport(name)
	if !ok {
		return nil, wrterr.New(wrterr.KindExportNotFound, "no export named "+name)
	}
	if exp.Kind != ExternValueFunction {
		return nil, &TypeMismatchError{Msg: "export " + name + " is not a function"}
	}

	tracelog.Logf(tracelog.ScopeDispatch, "call %s (%d args)", name, len(args))
	call := func(args []ComponentValue) ([]ComponentValue, error) {
		return c.dispatchInner(ctx, exp.FuncName, args)
	}

	if c.Interceptor != nil {
		return c.Interceptor.InterceptCall(ctx, "component", name, args, call)
	}
	return call(args)
}

func (c *Component) lookupExport(name string) (*ExternValue, bool) {
	for i := range c.Exports {
		if c.Exports[i].Name == name {
			return &c.Exports[i].Value, true
		}
	}
	return nil, false
}

// dispatchInner routes a resolved function name either to the host
// callback registry (when it contains a '.') or to the runtime handle.
func (c *Component) dispatchInner(ctx context.Context, name string, args []ComponentValue) ([]ComponentValue, error) {
	if module, fn, ok := strings.Cut(name, "."); ok {
		if c.CallbackRegistry == nil {
			return nil, wrterr.New(wrterr.KindInitialization, "no HostCallbackRegistry set for host-routed call "+name)
		}
		result, err := c.CallbackRegistry.CallHostFunction(ctx, c, module, fn, args)
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	if c.Runtime == nil {
		return nil, wrterr.New(wrterr.KindInitialization, "no RuntimeHandle set for call "+name)
	}
	return c.Runtime.ExecuteFunction(ctx, name, args)
}

// ExecuteStart runs the export named "_start" if present (spec.md §4.4
// "Start function"). A nil return with no error means no start function
// was declared.
func (c *Component) ExecuteStart(ctx context.Context, timeLimitMs int64, fuelLimit uint64) ([]ComponentValue, error) {
	exp, ok := c.lookupExport("_start")
	if !ok {
		return nil, nil
	}
	if exp.Kind != ExternValueFunction {
		return nil, &TypeMismatchError{Msg: "_start export is not a function"}
	}

	if c.Interceptor != nil {
		if serialized, short := c.Interceptor.BeforeStart(ctx); short {
			result, err := deserializeResult(serialized)
			return c.Interceptor.AfterStart(ctx, result, err)
		}
	}

	started := time.Now()
	result, err := c.callStartRecovering(ctx, exp.FuncName)
	elapsed := time.Since(started)

	if timeLimitMs > 0 && elapsed.Milliseconds() > timeLimitMs {
		err = &ExecutionTimeoutError{ElapsedMs: elapsed.Milliseconds(), LimitMs: timeLimitMs}
	}

	if c.Interceptor != nil {
		return c.Interceptor.AfterStart(ctx, result, err)
	}
	return result, err
}

// callStartRecovering runs the start function, recovering a panic from the
// runtime or host-callback collaborator into a *wrterr.Error instead of
// letting it unwind past the engine (spec.md §7: "recover() is used exactly
// once, at the instantiation engine's start-function boundary", mirroring
// the teacher's CallContext/sys.ExitError recovery boundary). Every other
// dispatch path leaves collaborator panics alone.
func (c *Component) callStartRecovering(ctx context.Context, name string) (result []ComponentValue, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = wrterr.Wrap(wrterr.KindExecution, "start function panicked", fmt.Errorf("%v", r))
		}
	}()
	return c.dispatchInner(ctx, name, nil)
}

// deserializeResult is used only when an interceptor short-circuits the
// start function. It does no type-directed deserialization against the
// start function's declared result types: empty input yields nil, and any
// other input yields a single ComponentValue with no Type whose String
// holds the raw bytes, which is what Interceptor.AfterStart receives.
func deserializeResult(b []byte) ([]ComponentValue, error) {
	if len(b) == 0 {
		return nil, nil
	}
	return []ComponentValue{{String: string(b)}}, nil
}
