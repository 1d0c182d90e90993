package binary

import "github.com/pulseengine/wrt-go/internal/format"

// Decode parses a full component binary, preamble through every section,
// into a format.Component. The returned Component retains b as RawBinary
// so Encode can return it unchanged when nothing has mutated it since
// (spec.md §4.3, "Re-encoding").
func Decode(b []byte) (*format.Component, error) {
	if err := checkPreamble(b); err != nil {
		return nil, err
	}
	sections, err := splitSections(b[PreambleSize:])
	if err != nil {
		return nil, err
	}

	c := &format.Component{RawBinary: append([]byte{}, b...)}
	for _, sec := range sections {
		if err := decodeSection(c, sec); err != nil {
			return nil, err
		}
		c.SectionOffsets = append(c.SectionOffsets, uint64(sec.Offset))
	}
	return c, nil
}

func decodeSection(c *format.Component, sec rawSection) error {
	switch sec.ID {
	case SectionCustom:
		return decodeCustomSection(c, sec.Payload)
	case SectionCoreModule:
		return decodeCoreModuleSection(c, sec.Payload)
	case SectionCoreInstance:
		return decodeCoreInstanceSection(c, sec.Payload)
	case SectionCoreType:
		return decodeCoreTypeSection(c, sec.Payload)
	case SectionComponent:
		return decodeNestedComponentSection(c, sec.Payload)
	case SectionComponentInstance:
		return decodeComponentInstanceSection(c, sec.Payload)
	case SectionAlias:
		return decodeAliasSection(c, sec.Payload)
	case SectionComponentType:
		return decodeComponentTypeSection(c, sec.Payload)
	case SectionCanonical:
		return decodeCanonicalSection(c, sec.Payload)
	case SectionStart:
		return decodeStartSection(c, sec.Payload)
	case SectionImport:
		return decodeImportSection(c, sec.Payload)
	case SectionExport:
		return decodeExportSection(c, sec.Payload)
	case SectionValue:
		return decodeValueSection(c, sec.Payload)
	default:
		return parseErrorf("section: unknown section id %d", sec.ID)
	}
}

func decodeCustomSection(c *format.Component, b []byte) error {
	name, off, err := decodeString(b, 0)
	if err != nil {
		return err
	}
	if name == "name" {
		// The only custom section this decoder interprets: a bare
		// length-prefixed component name, the rest of the payload ignored.
		if off < len(b) {
			if nm, _, err := decodeString(b, off); err == nil {
				c.Name = nm
			}
		}
	}
	return nil
}

func checkCoreModuleHeader(b []byte) error {
	if len(b) < 8 {
		return parseErrorf("core module: shorter than magic+version")
	}
	if !bytesEqual(b[0:4], Magic[:]) || !bytesEqual(b[4:8], Version[:]) {
		return parseErrorf("core module: bad magic/version")
	}
	return nil
}

func decodeCoreModuleSection(c *format.Component, b []byte) error {
	count, off, err := decodeU32(b, 0)
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		size, next, err := decodeU32(b, off)
		if err != nil {
			return err
		}
		off = next
		end := off + int(size)
		if end > len(b) {
			return parseErrorf("core module: size overflows past end of input")
		}
		raw := b[off:end]
		if err := checkCoreModuleHeader(raw); err != nil {
			return err
		}
		c.CoreModules = append(c.CoreModules, format.Module{Raw: append([]byte{}, raw...)})
		off = end
	}
	return nil
}

func decodeCoreInstanceSection(c *format.Component, b []byte) error {
	count, off, err := decodeU32(b, 0)
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		if off >= len(b) {
			return parseErrorf("core instance: truncated")
		}
		tag := b[off]
		off++
		switch tag {
		case 0x00:
			modIdx, next, err := decodeU32(b, off)
			if err != nil {
				return err
			}
			off = next
			argCount, next, err := decodeU32(b, off)
			if err != nil {
				return err
			}
			off = next
			args := make([]format.CoreInstantiateArg, 0, argCount)
			for j := uint32(0); j < argCount; j++ {
				name, n2, err := decodeString(b, off)
				if err != nil {
					return err
				}
				idx, n3, err := decodeU32(b, n2)
				if err != nil {
					return err
				}
				args = append(args, format.CoreInstantiateArg{Name: name, InstanceIdx: idx})
				off = n3
			}
			c.CoreInstances = append(c.CoreInstances, format.CoreInstanceExpr{
				Kind: format.CoreInstantiate, ModuleIdx: modIdx, Args: args,
			})
		case 0x01:
			itemCount, next, err := decodeU32(b, off)
			if err != nil {
				return err
			}
			off = next
			items := make([]format.CoreInlineExportItem, 0, itemCount)
			for j := uint32(0); j < itemCount; j++ {
				name, n2, err := decodeString(b, off)
				if err != nil {
					return err
				}
				if n2 >= len(b) {
					return parseErrorf("core instance: inline export truncated")
				}
				sort := format.CoreSort(b[n2])
				idx, n3, err := decodeU32(b, n2+1)
				if err != nil {
					return err
				}
				items = append(items, format.CoreInlineExportItem{Name: name, Sort: sort, Idx: idx})
				off = n3
			}
			c.CoreInstances = append(c.CoreInstances, format.CoreInstanceExpr{
				Kind: format.CoreInlineExports, InlineExports: items,
			})
		default:
			return parseErrorf("core instance: unknown tag %#x", tag)
		}
	}
	return nil
}

func decodeCoreTypeSection(c *format.Component, b []byte) error {
	count, off, err := decodeU32(b, 0)
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		if off >= len(b) {
			return parseErrorf("core type: truncated")
		}
		tag := b[off]
		off++
		switch tag {
		case 0x00:
			ft, next, err := decodeCoreFuncType(b, off)
			if err != nil {
				return err
			}
			off = next
			c.CoreTypes = append(c.CoreTypes, format.CoreTypeDefinition{Kind: format.CoreTypeFunc, Func: ft})
		case 0x01:
			// Module type: imports as (module, name) string pairs, then
			// exports as bare names; no ImportDesc/ExportDesc is recorded
			// for either.
			impCount, next, err := decodeU32(b, off)
			if err != nil {
				return err
			}
			off = next
			var imports []format.ModuleImport
			for j := uint32(0); j < impCount; j++ {
				mod, n2, err := decodeString(b, off)
				if err != nil {
					return err
				}
				name, n3, err := decodeString(b, n2)
				if err != nil {
					return err
				}
				imports = append(imports, format.ModuleImport{Module: mod, Name: name})
				off = n3
			}
			expCount, next2, err := decodeU32(b, off)
			if err != nil {
				return err
			}
			off = next2
			var exports []format.ModuleExport
			for j := uint32(0); j < expCount; j++ {
				name, n2, err := decodeString(b, off)
				if err != nil {
					return err
				}
				exports = append(exports, format.ModuleExport{Name: name})
				off = n2
			}
			c.CoreTypes = append(c.CoreTypes, format.CoreTypeDefinition{
				Kind: format.CoreTypeModule, ModuleImports: imports, ModuleExports: exports,
			})
		default:
			return parseErrorf("core type: unknown tag %#x", tag)
		}
	}
	return nil
}

// decodeCoreFuncType reads a bounded params/results ValueType signature.
func decodeCoreFuncType(b []byte, off int) (format.FuncType, int, error) {
	var ft format.FuncType
	pc, next, err := decodeU32(b, off)
	if err != nil {
		return ft, off, err
	}
	off = next
	if pc > format.MaxFuncParams {
		return ft, off, parseErrorf("functype: too many params")
	}
	for i := uint32(0); i < pc; i++ {
		if off >= len(b) {
			return ft, off, parseErrorf("functype: truncated params")
		}
		ft.Params = append(ft.Params, 0)
		ft.Params[len(ft.Params)-1] = decodeValueTypeByte(b[off])
		off++
	}
	rc, next2, err := decodeU32(b, off)
	if err != nil {
		return ft, off, err
	}
	off = next2
	if rc > format.MaxFuncResults {
		return ft, off, parseErrorf("functype: too many results")
	}
	for i := uint32(0); i < rc; i++ {
		if off >= len(b) {
			return ft, off, parseErrorf("functype: truncated results")
		}
		ft.Results = append(ft.Results, decodeValueTypeByte(b[off]))
		off++
	}
	return ft, off, nil
}

func decodeNestedComponentSection(c *format.Component, b []byte) error {
	count, off, err := decodeU32(b, 0)
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		size, next, err := decodeU32(b, off)
		if err != nil {
			return err
		}
		off = next
		end := off + int(size)
		if end > len(b) {
			return parseErrorf("nested component: size overflows past end of input")
		}
		nested, err := Decode(b[off:end])
		if err != nil {
			return err
		}
		c.NestedComponents = append(c.NestedComponents, nested)
		off = end
	}
	return nil
}

func decodeComponentInstanceSection(c *format.Component, b []byte) error {
	count, off, err := decodeU32(b, 0)
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		compIdx, next, err := decodeU32(b, off)
		if err != nil {
			return err
		}
		off = next
		argCount, next2, err := decodeU32(b, off)
		if err != nil {
			return err
		}
		off = next2
		args := make([]format.CoreInstantiateArg, 0, argCount)
		for j := uint32(0); j < argCount; j++ {
			name, n2, err := decodeString(b, off)
			if err != nil {
				return err
			}
			idx, n3, err := decodeU32(b, n2)
			if err != nil {
				return err
			}
			args = append(args, format.CoreInstantiateArg{Name: name, InstanceIdx: idx})
			off = n3
		}
		c.ComponentInstances = append(c.ComponentInstances, format.ComponentInstanceExpr{
			ComponentIdx: compIdx, Args: args,
		})
	}
	return nil
}

func decodeAliasSection(c *format.Component, b []byte) error {
	count, off, err := decodeU32(b, 0)
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		if off >= len(b) {
			return parseErrorf("alias: truncated")
		}
		tag := b[off]
		off++
		switch tag {
		case 0x00, 0x01: // core-instance export / core-module export (placeholder)
			instIdx, n2, err := decodeU32(b, off)
			if err != nil {
				return err
			}
			name, n3, err := decodeString(b, n2)
			if err != nil {
				return err
			}
			kind := format.AliasCoreInstanceExport
			if tag == 0x01 {
				kind = format.AliasCoreModuleExport
			}
			c.Aliases = append(c.Aliases, format.Alias{
				Kind: kind, InstanceIdx: instIdx, Name: name, CoreSort: format.CoreSortModule,
			})
			off = n3
		case 0x02, 0x03: // component export / instance export
			instIdx, n2, err := decodeU32(b, off)
			if err != nil {
				return err
			}
			name, n3, err := decodeString(b, n2)
			if err != nil {
				return err
			}
			kind := format.AliasComponentExport
			if tag == 0x03 {
				kind = format.AliasInstanceExport
			}
			c.Aliases = append(c.Aliases, format.Alias{Kind: kind, InstanceIdx: instIdx, Name: name})
			off = n3
		case 0x04: // outer
			count, n2, err := decodeU32(b, off)
			if err != nil {
				return err
			}
			if n2 >= len(b) {
				return parseErrorf("alias: outer truncated")
			}
			kind := format.Sort(b[n2])
			idx, n3, err := decodeU32(b, n2+1)
			if err != nil {
				return err
			}
			c.Aliases = append(c.Aliases, format.Alias{
				Kind: format.AliasOuter, OuterCount: count, OuterKind: kind, OuterIdx: idx,
			})
			off = n3
		default:
			return parseErrorf("alias: unknown tag %#x", tag)
		}
	}
	return nil
}

func decodeNamedExternList(b []byte, off int, withNamespace bool) ([]format.NamedExternType, int, error) {
	count, next, err := decodeU32(b, off)
	if err != nil {
		return nil, off, err
	}
	off = next
	out := make([]format.NamedExternType, 0, count)
	for i := uint32(0); i < count; i++ {
		var namespace string
		if withNamespace {
			namespace, off, err = decodeString(b, off)
			if err != nil {
				return nil, off, err
			}
		}
		name, n2, err := decodeString(b, off)
		if err != nil {
			return nil, off, err
		}
		et, n3, err := decodeExternType(b, n2)
		if err != nil {
			return nil, off, err
		}
		out = append(out, format.NamedExternType{Namespace: namespace, Name: name, Type: et})
		off = n3
	}
	return out, off, nil
}

func decodeExternType(b []byte, off int) (format.ExternType, int, error) {
	if off >= len(b) {
		return format.ExternType{}, off, parseErrorf("externtype: truncated")
	}
	tag := b[off]
	off++
	switch tag {
	case 0x00: // function: params/results of core ValueTypes, reusing FuncType
		ft, next, err := decodeCoreFuncType(b, off)
		return format.ExternType{Kind: format.ExternFunc, Func: ft}, next, err
	case 0x01: // value type
		vt, next, err := decodeValType(b, off)
		return format.ExternType{Kind: format.ExternValueType, Value: vt}, next, err
	case 0x02: // instance
		exports, next, err := decodeNamedExternList(b, off, false)
		return format.ExternType{Kind: format.ExternInstance, Instance: exports}, next, err
	default:
		return format.ExternType{}, off, parseErrorf("externtype: unknown tag %#x", tag)
	}
}

func decodeComponentTypeSection(c *format.Component, b []byte) error {
	count, off, err := decodeU32(b, 0)
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		if off >= len(b) {
			return parseErrorf("component type: truncated")
		}
		tag := b[off]
		off++
		switch tag {
		case 0x00:
			imports, n2, err := decodeNamedExternList(b, off, true)
			if err != nil {
				return err
			}
			exports, n3, err := decodeNamedExternList(b, n2, false)
			if err != nil {
				return err
			}
			c.ComponentTypes = append(c.ComponentTypes, format.ComponentTypeDefinition{
				Kind: format.CompTypeComponent, Imports: imports, Exports: exports,
			})
			off = n3
		case 0x01:
			exports, next, err := decodeNamedExternList(b, off, false)
			if err != nil {
				return err
			}
			c.ComponentTypes = append(c.ComponentTypes, format.ComponentTypeDefinition{
				Kind: format.CompTypeInstance, Exports: exports,
			})
			off = next
		case 0x02:
			ft, next, err := decodeCoreFuncType(b, off)
			if err != nil {
				return err
			}
			c.ComponentTypes = append(c.ComponentTypes, format.ComponentTypeDefinition{
				Kind: format.CompTypeFunction, Function: ft,
			})
			off = next
		case 0x03:
			vt, next, err := decodeValType(b, off)
			if err != nil {
				return err
			}
			c.ComponentTypes = append(c.ComponentTypes, format.ComponentTypeDefinition{
				Kind: format.CompTypeValue, Value: vt,
			})
			off = next
		case 0x04:
			if off >= len(b) {
				return parseErrorf("component type: resource truncated")
			}
			repTag := b[off]
			off++
			var rep format.ResourceRepresentation
			switch repTag {
			case 0x00:
				rep.Kind = format.RepHandle32
			case 0x01:
				rep.Kind = format.RepHandle64
			case 0x02:
				rep.Kind = format.RepRecord
				names, next, err := decodeStringList(b, off)
				if err != nil {
					return err
				}
				rep.FieldNames = names
				off = next
			case 0x03:
				rep.Kind = format.RepAggregate
				idxs, next, err := decodeU32List(b, off)
				if err != nil {
					return err
				}
				rep.Indices = idxs
				off = next
			default:
				return parseErrorf("component type: unknown resource representation tag %#x", repTag)
			}
			if off >= len(b) {
				return parseErrorf("component type: resource missing nullable byte")
			}
			nullable := b[off] != 0
			off++
			c.ComponentTypes = append(c.ComponentTypes, format.ComponentTypeDefinition{
				Kind: format.CompTypeResource, Resource: rep, Nullable: nullable,
			})
		default:
			return parseErrorf("component type: unknown tag %#x", tag)
		}
	}
	return nil
}

func decodeStringList(b []byte, off int) ([]string, int, error) {
	count, next, err := decodeU32(b, off)
	if err != nil {
		return nil, off, err
	}
	off = next
	out := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		s, n2, err := decodeString(b, off)
		if err != nil {
			return nil, off, err
		}
		out = append(out, s)
		off = n2
	}
	return out, off, nil
}

func decodeU32List(b []byte, off int) ([]uint32, int, error) {
	count, next, err := decodeU32(b, off)
	if err != nil {
		return nil, off, err
	}
	off = next
	out := make([]uint32, 0, count)
	for i := uint32(0); i < count; i++ {
		v, n2, err := decodeU32(b, off)
		if err != nil {
			return nil, off, err
		}
		out = append(out, v)
		off = n2
	}
	return out, off, nil
}

func decodeCanonicalSection(c *format.Component, b []byte) error {
	count, off, err := decodeU32(b, 0)
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		if off >= len(b) {
			return parseErrorf("canonical: truncated")
		}
		tag := b[off]
		off++
		coreFuncIdx, n2, err := decodeU32(b, off)
		if err != nil {
			return err
		}
		funcTypeIdx, n3, err := decodeU32(b, n2)
		if err != nil {
			return err
		}
		kind := format.CanonicalLift
		if tag == 0x01 {
			kind = format.CanonicalLower
		}
		c.Canonicals = append(c.Canonicals, format.Canonical{
			Kind: kind, CoreFuncIdx: coreFuncIdx, FuncTypeIdx: funcTypeIdx,
		})
		off = n3
	}
	return nil
}

func decodeStartSection(c *format.Component, b []byte) error {
	funcIdx, off, err := decodeU32(b, 0)
	if err != nil {
		return err
	}
	args, off, err := decodeU32List(b, off)
	if err != nil {
		return err
	}
	results, _, err := decodeU32List(b, off)
	if err != nil {
		return err
	}
	c.Start = &format.StartSection{FuncIdx: funcIdx, Args: args, Results: results}
	return nil
}

func decodeImportSection(c *format.Component, b []byte) error {
	count, off, err := decodeU32(b, 0)
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		namespace, name, next, err := decodeImportName(b, off)
		if err != nil {
			return err
		}
		off = next
		et, next2, err := decodeExternType(b, off)
		if err != nil {
			return err
		}
		off = next2
		c.Imports = append(c.Imports, format.Import{Namespace: namespace, Name: name, Type: et})
	}
	return nil
}

func decodeExportSection(c *format.Component, b []byte) error {
	count, off, err := decodeU32(b, 0)
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		raw, next, err := decodeString(b, off)
		if err != nil {
			return err
		}
		off = next
		if off >= len(b) {
			return parseErrorf("export: truncated sort byte")
		}
		var sort format.Sort
		var coreSort format.CoreSort
		sortByte := b[off]
		off++
		if sortByte&0x80 != 0 {
			sort = format.SortCore
			coreSort = format.CoreSort(sortByte &^ 0x80)
		} else {
			sort = format.Sort(sortByte)
		}
		idx, next2, err := decodeU32(b, off)
		if err != nil {
			return err
		}
		off = next2
		name, ann := parseExportName(raw)
		c.Exports = append(c.Exports, format.Export{
			Name: name, Annotation: ann, Sort: sort, CoreSort: coreSort, Idx: idx,
		})
	}
	return nil
}

func decodeValueSection(c *format.Component, b []byte) error {
	count, off, err := decodeU32(b, 0)
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		vt, next, err := decodeValType(b, off)
		if err != nil {
			return err
		}
		off = next
		size, next2, err := decodeU32(b, off)
		if err != nil {
			return err
		}
		off = next2
		end := off + int(size)
		if end > len(b) {
			return parseErrorf("value: size overflows past end of input")
		}
		c.Values = append(c.Values, format.Value{Type: *vt, Raw: append([]byte{}, b[off:end]...)})
		off = end
	}
	return nil
}
