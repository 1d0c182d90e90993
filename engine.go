package wrtgo

import (
	"context"

	"github.com/pulseengine/wrt-go/internal/binary"
	"github.com/pulseengine/wrt-go/internal/bitpack"
	"github.com/pulseengine/wrt-go/internal/checksum"
	"github.com/pulseengine/wrt-go/internal/engine"
	"github.com/pulseengine/wrt-go/internal/format"
)

// Engine wraps an instantiated internal/engine.Component behind the public
// surface spec.md §6.2 names, analogous to the teacher's Runtime wrapping
// its internal wasm.Store.
type Engine struct {
	cfg       EngineConfig
	component *engine.Component
}

// NewEngine builds an uninitialized Engine from a decoded component and
// its type, attaching any collaborators configured on cfg (§6.2 "new",
// "with_runtime"/"with_callback_registry"/"with_interceptor").
func NewEngine(cfg EngineConfig, decoded *format.Component) *Engine {
	ct := componentTypeOf(decoded)
	c := engine.New(decoded, ct).WithVerificationLevel(cfg.verificationLevel)
	c.Resources = engine.NewResourceTableWithCapacity(cfg.resourceCapacity)
	if cfg.runtime != nil {
		c = c.WithRuntime(cfg.runtime)
	}
	if cfg.callbackRegistry != nil {
		c = c.WithCallbackRegistry(cfg.callbackRegistry)
	}
	if cfg.interceptor != nil {
		c = c.WithInterceptor(cfg.interceptor)
	}
	return &Engine{cfg: cfg, component: c}
}

// componentTypeOf derives an engine.ComponentType from a decoded
// component's own import/export lists; the decoded graph carries no
// separate instance-definition section today, so Instances is left empty
// (spec.md §3.3's ComponentTypeDefinition::Instance is reachable only
// through a nested component's own type section, decoded recursively).
func componentTypeOf(c *format.Component) engine.ComponentType {
	imports := make([]format.NamedExternType, len(c.Imports))
	for i, imp := range c.Imports {
		imports[i] = format.NamedExternType{Namespace: imp.Namespace, Name: imp.Name, Type: imp.Type}
	}
	exports := make([]format.NamedExternType, len(c.Exports))
	for i, exp := range c.Exports {
		exports[i] = format.NamedExternType{Name: exp.Name, Type: exp.Type}
	}
	return engine.ComponentType{Imports: imports, Exports: exports}
}

// InstantiateComponent decodes bytes and instantiates it against imports
// in one call (§6.2 "instantiate_component(bytes, imports)").
func InstantiateComponent(cfg EngineConfig, bytes []byte, imports []engine.NamedExternValue) (*Engine, error) {
	decoded, err := binary.Decode(bytes)
	if err != nil {
		return nil, err
	}
	e := NewEngine(cfg, decoded)
	if err := e.component.Instantiate(imports); err != nil {
		return nil, err
	}
	return e, nil
}

// Instantiate runs the eight-step protocol against imports (§6.2
// "instantiate(imports)").
func (e *Engine) Instantiate(imports []engine.NamedExternValue) error {
	return e.component.Instantiate(imports)
}

// LinkComponent registers other under namespace (§6.2 "link_component").
func (e *Engine) LinkComponent(other *Engine, namespace string) error {
	return e.component.LinkComponent(other.component, namespace)
}

// ExecuteFunction dispatches a call to the named export (§6.2
// "execute_function(name, args)").
func (e *Engine) ExecuteFunction(ctx context.Context, name string, args []engine.ComponentValue) ([]engine.ComponentValue, error) {
	return e.component.ExecuteFunction(ctx, name, args)
}

// ExecuteStart runs "_start" if present (§6.2 "execute_start(time_limit, fuel)").
func (e *Engine) ExecuteStart(ctx context.Context, timeLimitMs int64, fuelLimit uint64) ([]engine.ComponentValue, error) {
	return e.component.ExecuteStart(ctx, timeLimitMs, fuelLimit)
}

// ReadMemory, WriteMemory, MemorySize, MemoryGrow, MemoryPeakUsage, and
// MemoryAccessCount proxy to the named export's memory (§6.2 "Named-export
// memory ops").
func (e *Engine) namedMemory(name string) (*engine.MemoryValue, error) {
	for _, exp := range e.component.Exports {
		if exp.Name == name && exp.Value.Kind == engine.ExternValueMemory {
			return exp.Value.Memory, nil
		}
	}
	for _, inst := range e.component.Instances {
		if v, ok := inst.Lookup(name); ok && v.Memory != nil {
			return v.Memory, nil
		}
	}
	return nil, &engine.ValidationError{Msg: "no memory export named " + name}
}

func (e *Engine) ReadMemory(name string, off uint32, buf []byte) error {
	m, err := e.namedMemory(name)
	if err != nil {
		return err
	}
	return m.Read(off, buf)
}

func (e *Engine) WriteMemory(name string, off uint32, data []byte) error {
	m, err := e.namedMemory(name)
	if err != nil {
		return err
	}
	return m.Write(off, data)
}

func (e *Engine) MemorySize(name string) (uint32, error) {
	m, err := e.namedMemory(name)
	if err != nil {
		return 0, err
	}
	return m.Size(), nil
}

func (e *Engine) MemoryGrow(name string, delta uint32) (uint32, error) {
	m, err := e.namedMemory(name)
	if err != nil {
		return 0, err
	}
	return m.Grow(delta)
}

func (e *Engine) MemoryPeakUsage(name string) (int, error) {
	m, err := e.namedMemory(name)
	if err != nil {
		return 0, err
	}
	return m.PeakUsage(), nil
}

func (e *Engine) MemoryAccessCount(name string) (uint64, error) {
	m, err := e.namedMemory(name)
	if err != nil {
		return 0, err
	}
	return m.AccessCount(), nil
}

// CreateResource, DropResource, BorrowResource, ApplyResourceOperation,
// SetResourceMemoryStrategy, and SetResourceVerificationLevel proxy to the
// engine's resource table (§6.2 "Resource table proxy").
func (e *Engine) CreateResource(typeIdx uint32, data []byte, strategy engine.MemoryStrategy) uint32 {
	return e.component.CreateResource(typeIdx, data, strategy)
}

func (e *Engine) DropResource(handle uint32) { e.component.Resources.DropResource(handle) }

func (e *Engine) BorrowResource(handle uint32) ([]byte, error) {
	return e.component.Resources.BorrowResource(handle)
}

func (e *Engine) ApplyResourceOperation(handle uint32, op func([]byte) ([]byte, error)) error {
	return e.component.Resources.ApplyResourceOperation(handle, op)
}

func (e *Engine) SetResourceMemoryStrategy(handle uint32, strategy engine.MemoryStrategy) error {
	return e.component.Resources.SetResourceMemoryStrategy(handle, strategy)
}

func (e *Engine) SetResourceVerificationLevel(handle uint32, level checksum.VerificationLevel) error {
	return e.component.Resources.SetResourceVerificationLevel(handle, level)
}

// ResourceStats returns per-type-index live count, high-water mark, and
// latest verification level (SPEC_FULL.md's "Resource table diagnostics").
func (e *Engine) ResourceStats() map[uint32]engine.ResourceStats {
	return e.component.Resources.Stats()
}

// Close shuts down the underlying component (§6.3's notification pattern
// via internal/close).
func (e *Engine) Close(ctx context.Context, exitCode uint32) {
	e.component.Close(ctx, exitCode)
}

// ComponentSummary is what AnalyzeComponent returns: counts without
// instantiation (§6.2 "analyze_component(bytes)").
type ComponentSummary struct {
	CoreModules      int
	CoreInstances    int
	NestedComponents int
	Imports          int
	Exports          int
	HasStart         bool
	Name             string
}

// AnalyzeComponent decodes bytes and summarizes its graph without
// instantiating it.
func AnalyzeComponent(bytes []byte) (ComponentSummary, error) {
	c, err := binary.Decode(bytes)
	if err != nil {
		return ComponentSummary{}, err
	}
	return ComponentSummary{
		CoreModules:      len(c.CoreModules),
		CoreInstances:    len(c.CoreInstances),
		NestedComponents: len(c.NestedComponents),
		Imports:          len(c.Imports),
		Exports:          len(c.Exports),
		HasStart:         c.Start != nil,
		Name:             c.Name,
	}, nil
}

// ComponentSummaryExtended is AnalyzeComponentExtended's richer summary,
// additionally naming every import/export (§6.2
// "analyze_component_extended(bytes)").
type ComponentSummaryExtended struct {
	ComponentSummary
	ImportNames  []string
	ExportNames  []string
	SectionIndex SectionOffsetIndex
}

// SectionOffsetIndex is a compact, read-only index of every section's byte
// offset within its component binary, backed by internal/bitpack's
// Frame-of-Reference/delta-coded OffsetArray. Section offsets increase
// monotonically by construction (internal/binary's section-splitting loop
// only ever advances), which is exactly the access pattern that
// compression scheme is built for.
type SectionOffsetIndex struct {
	offsets bitpack.OffsetArray
}

// Len returns the number of sections indexed.
func (s SectionOffsetIndex) Len() int { return bitpack.OffsetArrayLen(s.offsets) }

// At returns the byte offset of the i'th section, relative to the first
// byte after the preamble.
func (s SectionOffsetIndex) At(i int) uint64 { return s.offsets.Index(i) }

// AnalyzeComponentExtended is AnalyzeComponent plus per-item names and a
// compact section-offset index (SPEC_FULL.md's "Binary layout diagnostics").
func AnalyzeComponentExtended(bytes []byte) (ComponentSummaryExtended, error) {
	c, err := binary.Decode(bytes)
	if err != nil {
		return ComponentSummaryExtended{}, err
	}
	base, err := AnalyzeComponent(bytes)
	if err != nil {
		return ComponentSummaryExtended{}, err
	}
	ext := ComponentSummaryExtended{ComponentSummary: base}
	for _, imp := range c.Imports {
		ext.ImportNames = append(ext.ImportNames, imp.Namespace+":"+imp.Name)
	}
	for _, exp := range c.Exports {
		ext.ExportNames = append(ext.ExportNames, exp.Name)
	}
	ext.SectionIndex = SectionOffsetIndex{offsets: bitpack.NewOffsetArray(c.SectionOffsets)}
	return ext, nil
}
