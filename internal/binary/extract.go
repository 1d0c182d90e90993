package binary

// ExtractCoreModules scans a component binary for embedded core modules
// without requiring it to fully decode: it first walks the binary's own
// core-module sections normally, then — since some producers embed a core
// module's raw bytes outside any core-module section entirely — falls back
// to scanning from fixed offset 0x0C for the core magic+version, parsing
// sections from there until at least 5 valid sections are found or input
// runs out (spec.md §4.3, "Embedded module extraction").
func ExtractCoreModules(b []byte) ([][]byte, error) {
	var out [][]byte

	if c, err := Decode(b); err == nil {
		for _, m := range c.CoreModules {
			out = append(out, m.Raw)
		}
	}
	if len(out) > 0 {
		return out, nil
	}

	const fallbackOffset = 0x0C
	if len(b) < fallbackOffset+8 {
		return out, nil
	}
	probe := b[fallbackOffset:]
	if err := checkCoreModuleHeader(probe); err != nil {
		return out, nil
	}

	validSections := 0
	off := 8
	for off < len(probe) && validSections < 5 {
		if off >= len(probe) {
			break
		}
		off++ // section id
		size, next, err := decodeU32(probe, off)
		if err != nil {
			break
		}
		off = next
		end := off + int(size)
		if end < off || end > len(probe) {
			break
		}
		off = end
		validSections++
	}
	if validSections > 0 {
		out = append(out, append([]byte{}, probe[:off]...))
	}
	return out, nil
}
