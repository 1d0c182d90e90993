// Package features implements a global feature-flagging mechanism for the
// engine, adapted from the teacher's own WAZEROFEATURES env-var gate
// (internal/features, present and re-read in this tree) to this repo's two
// optional knobs: SIMD hardware acceleration and a hugepages-style memory
// provider hint (SPEC_FULL.md's Configuration section).
package features

import (
	"os"
	"strings"
	"sync"
)

const (
	// EnvVarName is the environment variable carrying the comma-separated
	// feature list, renamed from the teacher's WAZEROFEATURES.
	EnvVarName = "WRTFEATURES"

	// SIMDHardwareAccel gates a hardware-accelerated internal/simd
	// provider in place of the scalar reference implementation. Every
	// provider, hardware or scalar, must still return bit-identical
	// results (spec.md §4.5); this flag only selects which one runs.
	SIMDHardwareAccel = "simd_hw_accel"

	// Hugepages hints that a MemoryValue's backing Provider should request
	// huge-page-backed allocations where the host supports it. The engine
	// itself has no Provider abstraction of its own to act on this yet; it
	// is carried as a recognized flag for a future memory-provider
	// collaborator, mirroring the teacher's own "hugepages" entry which
	// plays the same forward-declared role.
	Hugepages = "hugepages"
)

var (
	lock sync.RWMutex
	list []string
)

// EnableFromEnvironment extracts the feature list from WRTFEATURES.
func EnableFromEnvironment() {
	Enable(strings.Split(os.Getenv(EnvVarName), ",")...)
}

// Enable the named features. Idempotent and atomic; unrecognized features
// are silently ignored.
func Enable(features ...string) {
	lock.Lock()
	defer lock.Unlock()

	enabled := list
	for _, f := range features {
		if supported(f) && !have(enabled, f) {
			enabled = append(enabled, f)
		}
	}
	list = enabled
}

// List returns the currently enabled features. The caller must treat the
// returned slice as read-only.
func List() []string {
	lock.RLock()
	defer lock.RUnlock()
	return list
}

// Enabled reports whether feature is currently enabled.
func Enabled(feature string) bool {
	lock.RLock()
	features := list
	lock.RUnlock()
	return have(features, feature)
}

func have(list []string, feature string) bool {
	for _, f := range list {
		if f == feature {
			return true
		}
	}
	return false
}

func supported(feature string) bool {
	switch feature {
	case SIMDHardwareAccel, Hugepages:
		return true
	default:
		return false
	}
}
