package wrtgo

import "github.com/pulseengine/wrt-go/internal/wrterr"

// Kind and Error are re-exported by alias, not redeclaration, following
// the teacher's internal/logging's "type ValueType = api.ValueType"
// convention: internal/engine returns *wrterr.Error values directly, and
// this alias lets callers of the public API name and compare them as
// wrt.Kind / wrt.Error without a wrapping conversion at the package
// boundary.
type Kind = wrterr.Kind

type Error = wrterr.Error

// Error kind constants, aliased for the same reason as Kind/Error above.
const (
	KindExecution            = wrterr.KindExecution
	KindFunctionNotFound     = wrterr.KindFunctionNotFound
	KindExportNotFound       = wrterr.KindExportNotFound
	KindInvalidFunctionIndex = wrterr.KindInvalidFunctionIndex
	KindInitialization       = wrterr.KindInitialization
)
