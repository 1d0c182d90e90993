package binary

// Magic is the 4-byte WebAssembly magic number, shared by core modules and
// components.
var Magic = [4]byte{0x00, 0x61, 0x73, 0x6D}

// Version is the 4-byte core-module format version. A component binary
// carries only its first 2 bytes (01 00) and puts the 2 ComponentLayer
// bytes where a core module has the version's last 2.
var Version = [4]byte{0x01, 0x00, 0x00, 0x00}

// ComponentLayer is bytes 6..8 of a component binary, distinguishing it
// from a core module (which has no such bytes at all, or different ones
// when present as padding).
var ComponentLayer = [2]byte{0x01, 0x00}

// PreambleSize is the total fixed preamble width a component binary opens
// with: magic + version + layer.
const PreambleSize = 4 + 2 + 2

// checkPreamble validates the fixed 8-byte component preamble at the
// start of b.
func checkPreamble(b []byte) error {
	if len(b) < PreambleSize {
		return parseErrorf("preamble: input shorter than %d bytes", PreambleSize)
	}
	if !bytesEqual(b[0:4], Magic[:]) {
		return parseErrorf("preamble: bad magic")
	}
	if !bytesEqual(b[4:6], Version[:2]) {
		return parseErrorf("preamble: unsupported version")
	}
	if !bytesEqual(b[6:8], ComponentLayer[:]) {
		return parseErrorf("preamble: not a component (layer bytes != 01 00)")
	}
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// writePreamble appends the fixed component preamble to dst.
func writePreamble(dst []byte) []byte {
	dst = append(dst, Magic[:]...)
	dst = append(dst, Version[:2]...)
	dst = append(dst, ComponentLayer[:]...)
	return dst
}
