package binary

import (
	"strconv"
	"strings"

	"github.com/pulseengine/wrt-go/internal/format"
)

// decodeString reads a LEB128 length prefix then that many UTF-8 bytes.
func decodeString(b []byte, off int) (string, int, error) {
	n, next, err := decodeU32(b, off)
	if err != nil {
		return "", off, err
	}
	off = next
	end := off + int(n)
	if end < off || end > len(b) {
		return "", off, parseErrorf("string: length overflows past end of input")
	}
	return string(b[off:end]), end, nil
}

// encodeString appends s as a LEB128 length prefix followed by its bytes.
func encodeString(dst []byte, s string) []byte {
	dst = encodeU32(dst, uint32(len(s)))
	return append(dst, s...)
}

// decodeImportName reads an import name, tagged 0x00 then a
// length-prefixed "namespace:name" string carrying exactly one colon
// (spec.md §4.3: "exactly one `:`").
func decodeImportName(b []byte, off int) (namespace, name string, next int, err error) {
	if off >= len(b) {
		return "", "", off, parseErrorf("import name: truncated")
	}
	if b[off] != 0x00 {
		return "", "", off, parseErrorf("import name: unexpected tag byte %#x", b[off])
	}
	off++
	full, next, err := decodeString(b, off)
	if err != nil {
		return "", "", off, err
	}
	idx := strings.IndexByte(full, ':')
	if idx < 0 || strings.IndexByte(full[idx+1:], ':') >= 0 {
		return "", "", off, parseErrorf("import name: missing or malformed namespace:name separator")
	}
	return full[:idx], full[idx+1:], next, nil
}

func encodeImportName(dst []byte, namespace, name string) []byte {
	dst = append(dst, 0x00)
	return encodeString(dst, namespace+":"+name)
}

// integrityAlgos is the closed set of accepted integrity-tag algorithms.
var integrityAlgos = map[string]bool{"sha256": true, "sha384": true, "sha512": true}

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/="

// parseExportName splits raw into its bare name and any trailing
// "@major.minor.patch" semver / "?algo-base64hash" integrity annotations.
// Annotations whose grammar does not match are left as part of the name,
// per spec.md §4.3 ("must not be stripped").
func parseExportName(raw string) (string, format.ExportNameAnnotation) {
	name := raw
	var ann format.ExportNameAnnotation

	if q := strings.LastIndexByte(name, '?'); q >= 0 {
		if it, ok := parseIntegrity(name[q+1:]); ok {
			ann.IntegrityTag = &it
			name = name[:q]
		}
	}
	if at := strings.LastIndexByte(name, '@'); at >= 0 {
		if sv, ok := parseSemver(name[at+1:]); ok {
			ann.Semver = &sv
			name = name[:at]
		}
	}
	return name, ann
}

func parseSemver(s string) (format.SemverTag, bool) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return format.SemverTag{}, false
	}
	nums := make([]uint64, 3)
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return format.SemverTag{}, false
		}
		nums[i] = n
	}
	return format.SemverTag{Major: nums[0], Minor: nums[1], Patch: nums[2]}, true
}

func parseIntegrity(s string) (format.IntegrityTag, bool) {
	dash := strings.IndexByte(s, '-')
	if dash < 0 {
		return format.IntegrityTag{}, false
	}
	algo, hash := s[:dash], s[dash+1:]
	if !integrityAlgos[algo] || hash == "" {
		return format.IntegrityTag{}, false
	}
	for i := 0; i < len(hash); i++ {
		if strings.IndexByte(base64Alphabet, hash[i]) < 0 {
			return format.IntegrityTag{}, false
		}
	}
	return format.IntegrityTag{Algo: algo, Hash: hash}, true
}

// renderExportName reconstructs the raw export-name string from a bare
// name plus its annotations, for re-encoding.
func renderExportName(name string, ann format.ExportNameAnnotation) string {
	if ann.Semver != nil {
		name += "@" + strconv.FormatUint(ann.Semver.Major, 10) + "." +
			strconv.FormatUint(ann.Semver.Minor, 10) + "." +
			strconv.FormatUint(ann.Semver.Patch, 10)
	}
	if ann.IntegrityTag != nil {
		name += "?" + ann.IntegrityTag.Algo + "-" + ann.IntegrityTag.Hash
	}
	return name
}
