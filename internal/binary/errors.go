// Package binary implements the component binary codec: preamble and
// section-framing decode/encode, the LEB128 varint wrapper, the
// value-type codec, import/export name grammar, embedded core-module
// extraction, and identity-preserving re-encoding (spec.md §4.3).
package binary

import "fmt"

// ParseError is a malformed-binary failure; it always carries a static,
// human-readable description (spec.md §7: "carries a static description").
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return "binary: " + e.Msg }

func parseErrorf(format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}
