package binary

// SectionID is one of the thirteen section tags a component binary may
// carry (spec.md §4.3).
type SectionID byte

const (
	SectionCustom SectionID = iota
	SectionCoreModule
	SectionCoreInstance
	SectionCoreType
	SectionComponent
	SectionComponentInstance
	SectionAlias
	SectionComponentType
	SectionCanonical
	SectionStart
	SectionImport
	SectionExport
	SectionValue
)

// rawSection is one section exactly as framed on the wire: an id byte, a
// LEB128 size, and that many payload bytes. The decoder only ever advances
// by size, regardless of whether it understood id (spec.md §4.3).
type rawSection struct {
	ID SectionID
	// Offset is the byte offset of this section's id tag, measured from
	// the start of b as passed to splitSections (i.e. immediately after
	// the preamble). Offsets are strictly increasing by construction,
	// which is exactly the access pattern internal/bitpack's OffsetArray
	// is built to compress.
	Offset  int
	Payload []byte
}

// splitSections frames b (the bytes immediately following the preamble)
// into a sequence of raw sections without interpreting any payload.
func splitSections(b []byte) ([]rawSection, error) {
	var out []rawSection
	off := 0
	for off < len(b) {
		start := off
		id := SectionID(b[off])
		off++
		size, next, err := decodeU32(b, off)
		if err != nil {
			return nil, err
		}
		off = next
		end := off + int(size)
		if end < off || end > len(b) {
			return nil, parseErrorf("section: size overflows past end of input")
		}
		out = append(out, rawSection{ID: id, Offset: start, Payload: b[off:end]})
		off = end
	}
	return out, nil
}

// writeSection appends id, the LEB128 size of payload, then payload to dst.
func writeSection(dst []byte, id SectionID, payload []byte) []byte {
	dst = append(dst, byte(id))
	dst = encodeU32(dst, uint32(len(payload)))
	dst = append(dst, payload...)
	return dst
}
