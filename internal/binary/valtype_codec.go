package binary

import "github.com/pulseengine/wrt-go/internal/format"

// Component value-type byte encodings (spec.md §3.1/§4.3: "primitive
// ValTypes use single bytes 0x7F..0x73; composite types carry counted
// children"; Record is pinned to 0x6F by spec text, everything else is
// assigned by this codec consistently around it).
const (
	byteBool   = 0x7F
	byteS8     = 0x7E
	byteS16    = 0x7D
	byteS32    = 0x7C
	byteS64    = 0x7B
	byteU8     = 0x7A
	byteU16    = 0x79
	byteU32    = 0x78
	byteU64    = 0x77
	byteF32    = 0x76
	byteF64    = 0x75
	byteChar   = 0x74
	byteString = 0x73

	byteRef        = 0x72
	byteOwn        = 0x71
	byteBorrow     = 0x70
	byteRecord     = 0x6F
	byteVariant    = 0x6E
	byteList       = 0x6D
	byteTuple      = 0x6C
	byteFlags      = 0x6B
	byteEnum       = 0x6A
	byteOption     = 0x69
	byteResultOk   = 0x68
	byteResultErr  = 0x67
	byteResultBoth = 0x66
)

var primByte = map[format.PrimKind]byte{
	format.PrimBool: byteBool, format.PrimS8: byteS8, format.PrimU8: byteU8,
	format.PrimS16: byteS16, format.PrimU16: byteU16,
	format.PrimS32: byteS32, format.PrimU32: byteU32,
	format.PrimS64: byteS64, format.PrimU64: byteU64,
	format.PrimF32: byteF32, format.PrimF64: byteF64,
	format.PrimChar: byteChar, format.PrimString: byteString,
}

var byteToPrim = func() map[byte]format.PrimKind {
	m := make(map[byte]format.PrimKind, len(primByte))
	for k, v := range primByte {
		m[v] = k
	}
	return m
}()

// decodeValType decodes one component ValType (and, recursively, its
// children) starting at off.
func decodeValType(b []byte, off int) (*format.ValType, int, error) {
	if off >= len(b) {
		return nil, off, parseErrorf("valtype: truncated")
	}
	tag := b[off]
	off++

	if prim, ok := byteToPrim[tag]; ok {
		return &format.ValType{Kind: format.ValPrimitive, Prim: prim}, off, nil
	}

	switch tag {
	case byteRef:
		idx, next, err := decodeU32(b, off)
		if err != nil {
			return nil, off, err
		}
		return &format.ValType{Kind: format.ValRef, Idx: idx}, next, nil
	case byteOwn:
		idx, next, err := decodeU32(b, off)
		if err != nil {
			return nil, off, err
		}
		return &format.ValType{Kind: format.ValOwn, Idx: idx}, next, nil
	case byteBorrow:
		idx, next, err := decodeU32(b, off)
		if err != nil {
			return nil, off, err
		}
		return &format.ValType{Kind: format.ValBorrow, Idx: idx}, next, nil
	case byteRecord:
		return decodeFields(b, off, format.ValRecord)
	case byteVariant:
		return decodeCases(b, off, format.ValVariant, true)
	case byteEnum:
		return decodeCases(b, off, format.ValEnum, false)
	case byteList:
		elem, next, err := decodeValType(b, off)
		if err != nil {
			return nil, off, err
		}
		return &format.ValType{Kind: format.ValList, Elem: elem}, next, nil
	case byteOption:
		elem, next, err := decodeValType(b, off)
		if err != nil {
			return nil, off, err
		}
		return &format.ValType{Kind: format.ValOption, Elem: elem}, next, nil
	case byteTuple:
		count, next, err := decodeU32(b, off)
		if err != nil {
			return nil, off, err
		}
		off = next
		items := make([]*format.ValType, 0, count)
		for i := uint32(0); i < count; i++ {
			var it *format.ValType
			it, off, err = decodeValType(b, off)
			if err != nil {
				return nil, off, err
			}
			items = append(items, it)
		}
		return &format.ValType{Kind: format.ValTuple, Items: items}, off, nil
	case byteFlags:
		count, next, err := decodeU32(b, off)
		if err != nil {
			return nil, off, err
		}
		off = next
		names := make([]string, 0, count)
		for i := uint32(0); i < count; i++ {
			var name string
			name, off, err = decodeString(b, off)
			if err != nil {
				return nil, off, err
			}
			names = append(names, name)
		}
		return &format.ValType{Kind: format.ValFlags, Names: names}, off, nil
	case byteResultOk:
		ok, next, err := decodeValType(b, off)
		if err != nil {
			return nil, off, err
		}
		return &format.ValType{Kind: format.ValResultOk, OkType: ok}, next, nil
	case byteResultErr:
		errT, next, err := decodeValType(b, off)
		if err != nil {
			return nil, off, err
		}
		return &format.ValType{Kind: format.ValResultErr, ErrType: errT}, next, nil
	case byteResultBoth:
		ok, next, err := decodeValType(b, off)
		if err != nil {
			return nil, off, err
		}
		errT, next2, err := decodeValType(b, next)
		if err != nil {
			return nil, off, err
		}
		return &format.ValType{Kind: format.ValResultBoth, OkType: ok, ErrType: errT}, next2, nil
	default:
		return nil, off, parseErrorf("valtype: invalid tag byte %#x", tag)
	}
}

func decodeFields(b []byte, off int, kind format.ValKind) (*format.ValType, int, error) {
	count, next, err := decodeU32(b, off)
	if err != nil {
		return nil, off, err
	}
	off = next
	fields := make([]format.RecordField, 0, count)
	for i := uint32(0); i < count; i++ {
		name, n2, err := decodeString(b, off)
		if err != nil {
			return nil, off, err
		}
		ft, n3, err := decodeValType(b, n2)
		if err != nil {
			return nil, off, err
		}
		fields = append(fields, format.RecordField{Name: name, Type: ft})
		off = n3
	}
	return &format.ValType{Kind: kind, Fields: fields}, off, nil
}

func decodeCases(b []byte, off int, kind format.ValKind, hasPayload bool) (*format.ValType, int, error) {
	count, next, err := decodeU32(b, off)
	if err != nil {
		return nil, off, err
	}
	off = next
	cases := make([]format.VariantCase, 0, count)
	for i := uint32(0); i < count; i++ {
		name, n2, err := decodeString(b, off)
		if err != nil {
			return nil, off, err
		}
		off = n2
		var payload *format.ValType
		if hasPayload {
			has := b[off]
			off++
			if has != 0 {
				payload, off, err = decodeValType(b, off)
				if err != nil {
					return nil, off, err
				}
			}
		}
		cases = append(cases, format.VariantCase{Name: name, Type: payload})
	}
	return &format.ValType{Kind: kind, Cases: cases}, off, nil
}

// encodeValType appends v's canonical byte encoding to dst.
func encodeValType(dst []byte, v *format.ValType) []byte {
	switch v.Kind {
	case format.ValPrimitive:
		return append(dst, primByte[v.Prim])
	case format.ValRef:
		dst = append(dst, byteRef)
		return encodeU32(dst, v.Idx)
	case format.ValOwn:
		dst = append(dst, byteOwn)
		return encodeU32(dst, v.Idx)
	case format.ValBorrow:
		dst = append(dst, byteBorrow)
		return encodeU32(dst, v.Idx)
	case format.ValRecord:
		dst = append(dst, byteRecord)
		dst = encodeU32(dst, uint32(len(v.Fields)))
		for _, f := range v.Fields {
			dst = encodeString(dst, f.Name)
			dst = encodeValType(dst, f.Type)
		}
		return dst
	case format.ValVariant, format.ValEnum:
		tag := byteVariant
		if v.Kind == format.ValEnum {
			tag = byteEnum
		}
		dst = append(dst, byte(tag))
		dst = encodeU32(dst, uint32(len(v.Cases)))
		for _, c := range v.Cases {
			dst = encodeString(dst, c.Name)
			if v.Kind == format.ValVariant {
				if c.Type != nil {
					dst = append(dst, 1)
					dst = encodeValType(dst, c.Type)
				} else {
					dst = append(dst, 0)
				}
			}
		}
		return dst
	case format.ValList:
		dst = append(dst, byteList)
		return encodeValType(dst, v.Elem)
	case format.ValOption:
		dst = append(dst, byteOption)
		return encodeValType(dst, v.Elem)
	case format.ValTuple:
		dst = append(dst, byteTuple)
		dst = encodeU32(dst, uint32(len(v.Items)))
		for _, it := range v.Items {
			dst = encodeValType(dst, it)
		}
		return dst
	case format.ValFlags:
		dst = append(dst, byteFlags)
		dst = encodeU32(dst, uint32(len(v.Names)))
		for _, n := range v.Names {
			dst = encodeString(dst, n)
		}
		return dst
	case format.ValResultOk:
		dst = append(dst, byteResultOk)
		return encodeValType(dst, v.OkType)
	case format.ValResultErr:
		dst = append(dst, byteResultErr)
		return encodeValType(dst, v.ErrType)
	case format.ValResultBoth:
		dst = append(dst, byteResultBoth)
		dst = encodeValType(dst, v.OkType)
		return encodeValType(dst, v.ErrType)
	default:
		return dst
	}
}
