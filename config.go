// Package wrtgo is the public surface of a bounded WebAssembly Component
// Model core: decode a component binary, instantiate it against a set of
// host imports, and dispatch calls into it. See internal/binary for the
// codec, internal/format for the decoded graph, and internal/engine for
// instantiation and dispatch.
package wrtgo

import (
	"github.com/pulseengine/wrt-go/internal/checksum"
	"github.com/pulseengine/wrt-go/internal/engine"
)

// EngineConfig controls Engine construction, with the default
// implementation as NewEngineConfig. Every With* method returns the
// receiver so calls chain, matching the teacher's RuntimeConfig idiom.
type EngineConfig struct {
	verificationLevel checksum.VerificationLevel
	resourceCapacity  int
	runtime           engine.RuntimeHandle
	callbackRegistry  engine.HostCallbackRegistry
	interceptor       engine.Interceptor
}

// NewEngineConfig returns an EngineConfig with the Standard verification
// level (spec.md §3.2's default policy) and no collaborators attached.
func NewEngineConfig() EngineConfig {
	return EngineConfig{verificationLevel: checksum.Standard, resourceCapacity: 1024}
}

// WithVerificationLevel sets the checksum-maintenance policy new
// components and resources are created under.
func (c EngineConfig) WithVerificationLevel(level checksum.VerificationLevel) EngineConfig {
	c.verificationLevel = level
	return c
}

// WithResourceCapacity bounds how many live resources an engine's
// resource table is expected to hold; it is advisory sizing only; the
// table itself does not pre-allocate or reject past this number, since
// spec.md §4.4 describes resource handles as minted monotonically without
// a stated hard cap.
func (c EngineConfig) WithResourceCapacity(n int) EngineConfig {
	c.resourceCapacity = n
	return c
}

// WithRuntime attaches the RuntimeHandle collaborator every Engine built
// from this config will use.
func (c EngineConfig) WithRuntime(h engine.RuntimeHandle) EngineConfig {
	c.runtime = h
	return c
}

// WithCallbackRegistry attaches the HostCallbackRegistry collaborator.
func (c EngineConfig) WithCallbackRegistry(r engine.HostCallbackRegistry) EngineConfig {
	c.callbackRegistry = r
	return c
}

// WithInterceptor attaches the Interceptor collaborator.
func (c EngineConfig) WithInterceptor(i engine.Interceptor) EngineConfig {
	c.interceptor = i
	return c
}
