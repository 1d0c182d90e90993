package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/pulseengine/wrt-go/internal/checksum"
	closepkg "github.com/pulseengine/wrt-go/internal/close"
	"github.com/pulseengine/wrt-go/internal/format"
	"github.com/pulseengine/wrt-go/internal/tracelog"
	"github.com/pulseengine/wrt-go/internal/wrterr"
)

// ComponentType is the imports/exports/instance-definition shape a
// Component is instantiated against (spec.md §3.3).
type ComponentType struct {
	Imports []format.NamedExternType
	Exports []format.NamedExternType
	// Instances lists the ComponentTypeDefinition::Instance entries that
	// must be materialized during step 4 of the instantiate protocol.
	Instances []format.ComponentTypeDefinition
}

// Component is an instantiated component: the decoded binary's graph, its
// realized values, linked children, and optional collaborators (spec.md
// §3.3).
type Component struct {
	Decoded *format.Component
	Type    ComponentType

	Imports   []NamedExternValue
	Exports   []NamedExternValue
	Instances []*InstanceValue

	// Links holds shared handles to other instantiated Components, keyed
	// by the namespace they were linked under (spec.md §4.4
	// "Linking subcomponents").
	Links map[string]*Component

	CallbackRegistry HostCallbackRegistry
	Runtime          RuntimeHandle
	Interceptor      Interceptor
	Resources        *ResourceTable

	verification checksum.VerificationLevel
}

// New builds an uninitialized Component of the given type, ready for
// collaborator attachment and Instantiate (spec.md §6.2 "new(component_type)").
func New(decoded *format.Component, t ComponentType) *Component {
	return &Component{
		Decoded:      decoded,
		Type:         t,
		Links:        make(map[string]*Component),
		Resources:    NewResourceTable(),
		verification: checksum.Standard,
	}
}

// WithRuntime attaches a RuntimeHandle collaborator and returns the
// receiver, matching the functional-option chaining the engine surface
// describes (spec.md §6.2).
func (c *Component) WithRuntime(h RuntimeHandle) *Component {
	c.Runtime = h
	return c
}

// WithCallbackRegistry attaches a HostCallbackRegistry collaborator.
func (c *Component) WithCallbackRegistry(r HostCallbackRegistry) *Component {
	c.CallbackRegistry = r
	return c
}

// WithInterceptor attaches an Interceptor collaborator.
func (c *Component) WithInterceptor(i Interceptor) *Component {
	c.Interceptor = i
	return c
}

// WithVerificationLevel sets the checksum policy new resources are created
// under by default.
func (c *Component) WithVerificationLevel(level checksum.VerificationLevel) *Component {
	c.verification = level
	return c
}

// Instantiate runs the eight-step protocol of spec.md §4.4 against the
// provided imports, binding c's Exports/Instances/Imports fields on
// success.
func (c *Component) Instantiate(imports []NamedExternValue) error {
	tracelog.Logf(tracelog.ScopeInstantiate, "instantiate: %d imports, %d declared exports", len(imports), len(c.Type.Exports))
	// Step 1: length check.
	if len(imports) != len(c.Type.Imports) {
		return &ValidationError{Msg: "import count does not match component type"}
	}

	// Step 2: store imports.
	c.Imports = make([]NamedExternValue, len(imports))
	copy(c.Imports, imports)

	// Step 3: populate exports with Trap sentinels.
	c.Exports = make([]NamedExternValue, len(c.Type.Exports))
	for i, exp := range c.Type.Exports {
		c.Exports[i] = NamedExternValue{Name: exp.Name, Value: Trap(externKindName(exp.Type.Kind))}
	}

	// Step 4: materialize instances with per-item sentinels, pre-populating
	// Memory-typed items with a default 1-page memory.
	c.Instances = make([]*InstanceValue, len(c.Type.Instances))
	for i, def := range c.Type.Instances {
		inst := &InstanceValue{Exports: make([]NamedExternValue, len(def.Exports))}
		for j, item := range def.Exports {
			if item.Type.Kind == format.ExternCoreMemory {
				inst.Exports[j] = NamedExternValue{
					Name: item.Name,
					Value: ExternValue{
						Kind:   ExternValueMemory,
						Memory: NewMemoryValue(1, nil),
					},
				}
				continue
			}
			inst.Exports[j] = NamedExternValue{Name: item.Name, Value: Trap(externKindName(item.Type.Kind))}
		}
		c.Instances[i] = inst
	}

	// Step 5: forward-link — rebind an import's stored value to a matching
	// export's current value when identifiers match.
	for i := range c.Imports {
		for j := range c.Exports {
			if c.Imports[i].Name == c.Exports[j].Name && !c.Exports[j].Value.IsTrap() {
				c.Imports[i].Value = c.Exports[j].Value
			}
		}
	}

	// Step 6: reverse-link — diagnostic only, matches by name and type
	// compatibility; recorded here as a no-op pass (nothing mutates).
	for _, inst := range c.Instances {
		for _, item := range inst.Exports {
			for i := range c.Imports {
				if item.Name == c.Imports[i].Name {
					_ = typeCompatibleValue(item.Value, c.Imports[i].Value)
				}
			}
		}
	}

	// Step 7: finalize — rebind every still-Trap instance-export to the
	// import of the same name. The match is by name only; declared types
	// are not compared. A component's own direct
	// exports go through the same rebinding: the protocol's text only
	// names instance-exports, but a component re-exporting one of its own
	// imports under the same name (the common host-wrapper pattern) has
	// no other slot to realize that export from, so this engine treats
	// c.Exports as an additional instance for the purposes of this step.
	for j := range c.Exports {
		if !c.Exports[j].Value.IsTrap() {
			continue
		}
		for i := range c.Imports {
			if c.Exports[j].Name == c.Imports[i].Name {
				c.Exports[j].Value = c.Imports[i].Value
				break
			}
		}
	}
	for _, inst := range c.Instances {
		for j := range inst.Exports {
			if !inst.Exports[j].Value.IsTrap() {
				continue
			}
			for i := range c.Imports {
				if inst.Exports[j].Name == c.Imports[i].Name {
					inst.Exports[j].Value = c.Imports[i].Value
					break
				}
			}
		}
	}

	// Step 8: validate.
	err := c.validate()
	if err != nil {
		tracelog.Logf(tracelog.ScopeInstantiate, "instantiate failed: %v", err)
	}
	return err
}

// validate checks that every import was used and every export's realized
// kind matches its declared kind (spec.md §4.4 "Validation").
func (c *Component) validate() error {
	used := make(map[string]bool, len(c.Imports))
	mark := func(name string) {
		for _, imp := range c.Imports {
			if imp.Name == name {
				used[name] = true
			}
		}
	}
	for _, exp := range c.Exports {
		mark(exp.Name)
	}
	for _, inst := range c.Instances {
		for _, item := range inst.Exports {
			mark(item.Name)
		}
	}
	for _, imp := range c.Imports {
		if !used[imp.Name] {
			return &ValidationError{Msg: "import " + imp.Name + " is never used"}
		}
	}

	for i, exp := range c.Exports {
		declared := c.Type.Exports[i].Type
		if exp.Value.IsTrap() {
			return &ValidationError{Msg: "export " + exp.Name + " was never realized"}
		}
		if !valueMatchesExternKind(exp.Value, declared) {
			return &ValidationError{Msg: "export " + exp.Name + " does not match its declared kind"}
		}
	}
	return c.validateFunctionIndices()
}

// validateFunctionIndices checks that every decoded function-sort export
// indexes into the component-level function index space the canonical
// function section built (spec.md §7's InvalidFunctionIndex kind): a
// function export's Idx names an entry of c.Decoded.Canonicals (the
// canonical-lift section), not an arbitrary integer.
func (c *Component) validateFunctionIndices() error {
	if c.Decoded == nil {
		return nil
	}
	for _, exp := range c.Decoded.Exports {
		if exp.Sort != format.SortFunction {
			continue
		}
		if exp.Idx >= uint32(len(c.Decoded.Canonicals)) {
			return wrterr.New(wrterr.KindInvalidFunctionIndex,
				fmt.Sprintf("export %s: function index %d outside canonical section (len %d)",
					exp.Name, exp.Idx, len(c.Decoded.Canonicals)))
		}
	}
	return nil
}

func valueMatchesExternKind(v ExternValue, t format.ExternType) bool {
	switch t.Kind {
	case format.ExternFunc:
		return v.Kind == ExternValueFunction
	case format.ExternCoreMemory:
		return v.Kind == ExternValueMemory
	case format.ExternCoreGlobal:
		return v.Kind == ExternValueGlobal && v.GlobalValue.Type != nil
	case format.ExternCoreTable:
		return v.Kind == ExternValueTable || v.Kind == ExternValueInstance
	case format.ExternInstance:
		return v.Kind == ExternValueInstance
	default:
		return v.Kind == ExternValueValue
	}
}

func typeCompatibleValue(a, b ExternValue) bool {
	return a.Kind == b.Kind
}

func externKindName(k format.ExternTypeKind) string {
	switch k {
	case format.ExternFunc:
		return "function"
	case format.ExternCoreMemory:
		return "memory"
	case format.ExternCoreGlobal:
		return "global"
	case format.ExternCoreTable:
		return "table"
	case format.ExternInstance:
		return "instance"
	default:
		return "value"
	}
}

// FuncTypesCompatible reports spec.md §4.4's function-type compatibility
// rule: arity matches and every positional parameter/result is byte-equal.
func FuncTypesCompatible(a, b format.FuncType) bool {
	if len(a.Params) != len(b.Params) || len(a.Results) != len(b.Results) {
		return false
	}
	for i := range a.Params {
		if a.Params[i] != b.Params[i] {
			return false
		}
	}
	for i := range a.Results {
		if a.Results[i] != b.Results[i] {
			return false
		}
	}
	return true
}

// InstanceTypesCompatible reports spec.md §4.4's instance-type
// compatibility rule: same-length export lists with matching positional
// name and recursively compatible type.
func InstanceTypesCompatible(a, b []format.NamedExternType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !ExternTypesCompatible(a[i].Type, b[i].Type) {
			return false
		}
	}
	return true
}

// ExternTypesCompatible dispatches to the function/instance/component
// compatibility rules, per kind; any other cross-kind comparison is
// incompatible (spec.md §4.4).
func ExternTypesCompatible(a, b format.ExternType) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case format.ExternFunc:
		return FuncTypesCompatible(a.Func, b.Func)
	case format.ExternInstance:
		return InstanceTypesCompatible(a.Instance, b.Instance)
	case format.ExternComponentType:
		if a.Component == nil || b.Component == nil {
			return a.Component == b.Component
		}
		return InstanceTypesCompatible(a.Component.Imports, b.Component.Imports) &&
			InstanceTypesCompatible(a.Component.Exports, b.Component.Exports)
	default:
		return a.Kind == b.Kind
	}
}

// CreateResource mints a resource in c's table under c's default
// verification level (set via WithVerificationLevel), proxying §6.2's
// `create_resource` engine-surface operation.
func (c *Component) CreateResource(typeIdx uint32, data []byte, strategy MemoryStrategy) uint32 {
	return c.Resources.CreateResource(typeIdx, data, strategy, c.verification)
}

// Close releases c's resource table, dropping every live resource and
// notifying a close.Notification found in ctx (the teacher's
// Module.CloseWithExitCode convention, generalized to the component's
// exitCode-less shutdown). When ctx is nil it defaults to
// context.Background, and a missing notification is a silent no-op.
func (c *Component) Close(ctx context.Context, exitCode uint32) {
	if ctx == nil {
		ctx = context.Background()
	}
	c.Resources.Clear()
	if n, ok := ctx.Value(closepkg.NotificationKey{}).(closepkg.Notification); ok {
		n.OnClose(ctx, exitCode)
	}
}

// LinkComponent inserts a shared handle to other under namespace (spec.md
// §4.4 "Linking subcomponents"). Inserting two children under the same
// namespace replaces the earlier one; self-insertion is forbidden.
func (c *Component) LinkComponent(other *Component, namespace string) error {
	if other == c {
		return ErrSelfLink
	}
	c.Links[namespace] = other
	tracelog.Logf(tracelog.ScopeLink, "linked component under namespace %q", namespace)
	return nil
}

// ResolveLinked looks up "<namespace>.<item>" across linked children, per
// spec.md §4.4.
func (c *Component) ResolveLinked(qualified string) (*ExternValue, bool) {
	ns, item, ok := strings.Cut(qualified, ".")
	if !ok {
		return nil, false
	}
	child, ok := c.Links[ns]
	if !ok {
		return nil, false
	}
	for i := range child.Exports {
		if child.Exports[i].Name == item {
			return &child.Exports[i].Value, true
		}
	}
	return nil, false
}
