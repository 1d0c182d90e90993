package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulseengine/wrt-go/internal/format"
)

// TestDecode_MinimalComponent mirrors spec.md §8 scenario 1: the bare
// preamble with no sections decodes to a Component with zero of
// everything and no name.
func TestDecode_MinimalComponent(t *testing.T) {
	b := []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x01, 0x00}
	c, err := Decode(b)
	require.NoError(t, err)
	require.Empty(t, c.CoreModules)
	require.Empty(t, c.Imports)
	require.Empty(t, c.Exports)
	require.Empty(t, c.Name)
}

func TestDecode_BadPreamble(t *testing.T) {
	_, err := Decode([]byte{0x00, 0x61, 0x73, 0x6D})
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestDecode_WrongLayerIsNotAComponent(t *testing.T) {
	b := []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00}
	_, err := Decode(b)
	require.Error(t, err)
}

func TestDecode_UnknownSectionIDFails(t *testing.T) {
	b := writePreamble(nil)
	b = append(b, 0xFF, 0x00) // unknown section id 0xFF, size 0
	_, err := Decode(b)
	require.Error(t, err)
}

func TestEncodeDecode_ImportExportRoundTrip(t *testing.T) {
	c := &format.Component{
		Imports: []format.Import{
			{Namespace: "wasi", Name: "print", Type: format.ExternType{
				Kind: format.ExternFunc,
				Func: format.FuncType{Results: nil},
			}},
		},
		Exports: []format.Export{
			{Name: "run", Sort: format.SortFunction, Idx: 0},
		},
	}
	enc := Encode(c)
	require.NotEmpty(t, enc)

	decoded, err := Decode(enc)
	require.NoError(t, err)
	require.Len(t, decoded.Imports, 1)
	require.Equal(t, "wasi", decoded.Imports[0].Namespace)
	require.Equal(t, "print", decoded.Imports[0].Name)
	require.Len(t, decoded.Exports, 1)
	require.Equal(t, "run", decoded.Exports[0].Name)
	require.Equal(t, format.SortFunction, decoded.Exports[0].Sort)
}

func TestEncode_IdentityWhenRawBinaryPresent(t *testing.T) {
	original := []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x01, 0x00}
	c, err := Decode(original)
	require.NoError(t, err)
	require.Equal(t, original, Encode(c))
}

func TestImportName_RequiresExactlyOneColon(t *testing.T) {
	var buf []byte
	buf = append(buf, 0x00)
	buf = encodeString(buf, "no-colon-here")
	_, _, _, err := decodeImportName(buf, 0)
	require.Error(t, err)

	buf = nil
	buf = append(buf, 0x00)
	buf = encodeString(buf, "a:b:c")
	_, _, _, err = decodeImportName(buf, 0)
	require.Error(t, err)
}

func TestParseExportName_SemverAndIntegrity(t *testing.T) {
	name, ann := parseExportName("run@1.2.3")
	require.Equal(t, "run", name)
	require.NotNil(t, ann.Semver)
	require.Equal(t, uint64(1), ann.Semver.Major)
	require.Equal(t, uint64(2), ann.Semver.Minor)
	require.Equal(t, uint64(3), ann.Semver.Patch)

	name, ann = parseExportName("run?sha256-YWJjZA==")
	require.Equal(t, "run", name)
	require.NotNil(t, ann.IntegrityTag)
	require.Equal(t, "sha256", ann.IntegrityTag.Algo)

	// A malformed annotation must stay part of the name.
	name, ann = parseExportName("run@not-semver")
	require.Equal(t, "run@not-semver", name)
	require.Nil(t, ann.Semver)
}

func TestValType_RecordRoundTrip(t *testing.T) {
	rec := &format.ValType{
		Kind: format.ValRecord,
		Fields: []format.RecordField{
			{Name: "x", Type: &format.ValType{Kind: format.ValPrimitive, Prim: format.PrimS32}},
			{Name: "y", Type: &format.ValType{Kind: format.ValPrimitive, Prim: format.PrimString}},
		},
	}
	enc := encodeValType(nil, rec)
	decoded, n, err := decodeValType(enc, 0)
	require.NoError(t, err)
	require.Equal(t, len(enc), n)
	require.Equal(t, format.ValRecord, decoded.Kind)
	require.Len(t, decoded.Fields, 2)
	require.Equal(t, "x", decoded.Fields[0].Name)
	require.Equal(t, format.PrimS32, decoded.Fields[0].Type.Prim)
}

func TestValType_ResultBothRoundTrip(t *testing.T) {
	rb := &format.ValType{
		Kind:    format.ValResultBoth,
		OkType:  &format.ValType{Kind: format.ValPrimitive, Prim: format.PrimU32},
		ErrType: &format.ValType{Kind: format.ValPrimitive, Prim: format.PrimString},
	}
	enc := encodeValType(nil, rb)
	decoded, _, err := decodeValType(enc, 0)
	require.NoError(t, err)
	require.Equal(t, format.ValResultBoth, decoded.Kind)
	require.Equal(t, format.PrimU32, decoded.OkType.Prim)
	require.Equal(t, format.PrimString, decoded.ErrType.Prim)
}

func TestExtractCoreModules_FromCoreModuleSection(t *testing.T) {
	coreModule := append([]byte{}, Magic[:]...)
	coreModule = append(coreModule, Version[:]...)

	var moduleSection []byte
	moduleSection = encodeU32(moduleSection, 1)
	moduleSection = encodeU32(moduleSection, uint32(len(coreModule)))
	moduleSection = append(moduleSection, coreModule...)

	b := writePreamble(nil)
	b = writeSection(b, SectionCoreModule, moduleSection)

	mods, err := ExtractCoreModules(b)
	require.NoError(t, err)
	require.Len(t, mods, 1)
	require.Equal(t, coreModule, mods[0])
}
