// Package tracelog narrates engine state transitions — instantiation
// steps, link events, resource churn — through the standard log package,
// gated by a scope bitmask. It is modeled on internal/logging's
// LogScopes (Clock|Proc|Filesystem|...) bitmask idea, scoped here to
// instantiate|link|dispatch|resource instead of WASI's host-call
// categories (SPEC_FULL.md's Logging section). Carried even though
// spec.md's Non-goals exclude nothing about logging: it is ambient, not a
// feature, so the teacher's no-zap/no-logrus choice is kept here too.
package tracelog

import (
	"fmt"
	"log"
	"strings"
	"sync"
)

// Scope is a bitmask of the engine areas tracelog can narrate.
type Scope uint32

const (
	ScopeNone        Scope = 0
	ScopeInstantiate Scope = 1 << iota
	ScopeLink
	ScopeDispatch
	ScopeResource
	ScopeAll = ScopeInstantiate | ScopeLink | ScopeDispatch | ScopeResource
)

func scopeName(s Scope) string {
	switch s {
	case ScopeInstantiate:
		return "instantiate"
	case ScopeLink:
		return "link"
	case ScopeDispatch:
		return "dispatch"
	case ScopeResource:
		return "resource"
	default:
		return fmt.Sprintf("<unknown=%d>", s)
	}
}

// IsEnabled reports whether every bit of scope is set in f.
func (f Scope) IsEnabled(scope Scope) bool { return f&scope == scope }

// String renders every enabled scope name, '|'-joined.
func (f Scope) String() string {
	if f == ScopeAll {
		return "all"
	}
	var b strings.Builder
	for i := 0; i < 32; i++ {
		target := Scope(1 << i)
		if f.IsEnabled(target) && target != ScopeNone {
			if b.Len() > 0 {
				b.WriteByte('|')
			}
			b.WriteString(scopeName(target))
		}
	}
	return b.String()
}

var (
	mu      sync.RWMutex
	enabled Scope
)

// Enable turns on the given scopes, leaving others untouched.
func Enable(scopes Scope) {
	mu.Lock()
	defer mu.Unlock()
	enabled |= scopes
}

// Disable turns off the given scopes.
func Disable(scopes Scope) {
	mu.Lock()
	defer mu.Unlock()
	enabled &^= scopes
}

// Have reports whether scope is currently enabled.
func Have(scope Scope) bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled.IsEnabled(scope)
}

// Logf writes a narration line through the standard logger if scope is
// enabled; it is a no-op otherwise, so callers can log unconditionally on
// the hot path without paying for string formatting when tracing is off.
func Logf(scope Scope, format string, args ...any) {
	if !Have(scope) {
		return
	}
	log.Printf("["+scopeName(scope)+"] "+format, args...)
}
