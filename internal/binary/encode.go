package binary

import "github.com/pulseengine/wrt-go/internal/format"

// Encode renders c to its binary form. When c carries a RawBinary (set by
// Decode and never cleared by a mutation), it is returned bit-for-bit
// unchanged; callers that mutate a decoded Component must clear RawBinary
// themselves so this falls through to canonical re-encoding (spec.md §4.3:
// "If a Component carries its original binary and has not been mutated,
// encode_component must return that binary bit-for-bit").
func Encode(c *format.Component) []byte {
	if c.RawBinary != nil {
		return append([]byte{}, c.RawBinary...)
	}

	out := writePreamble(nil)
	if len(c.CoreModules) > 0 {
		out = writeSection(out, SectionCoreModule, encodeCoreModuleSection(c))
	}
	if len(c.CoreInstances) > 0 {
		out = writeSection(out, SectionCoreInstance, encodeCoreInstanceSection(c))
	}
	if len(c.CoreTypes) > 0 {
		out = writeSection(out, SectionCoreType, encodeCoreTypeSection(c))
	}
	if len(c.NestedComponents) > 0 {
		out = writeSection(out, SectionComponent, encodeNestedComponentSection(c))
	}
	if len(c.ComponentInstances) > 0 {
		out = writeSection(out, SectionComponentInstance, encodeComponentInstanceSection(c))
	}
	if len(c.Aliases) > 0 {
		out = writeSection(out, SectionAlias, encodeAliasSection(c))
	}
	if len(c.ComponentTypes) > 0 {
		out = writeSection(out, SectionComponentType, encodeComponentTypeSection(c))
	}
	if len(c.Canonicals) > 0 {
		out = writeSection(out, SectionCanonical, encodeCanonicalSection(c))
	}
	if c.Start != nil {
		out = writeSection(out, SectionStart, encodeStartSection(c))
	}
	if len(c.Imports) > 0 {
		out = writeSection(out, SectionImport, encodeImportSection(c))
	}
	if len(c.Exports) > 0 {
		out = writeSection(out, SectionExport, encodeExportSection(c))
	}
	if len(c.Values) > 0 {
		out = writeSection(out, SectionValue, encodeValueSection(c))
	}
	if c.Name != "" {
		out = writeSection(out, SectionCustom, encodeNameCustomSection(c))
	}
	return out
}

func encodeCoreModuleSection(c *format.Component) []byte {
	var out []byte
	out = encodeU32(out, uint32(len(c.CoreModules)))
	for _, m := range c.CoreModules {
		out = encodeU32(out, uint32(len(m.Raw)))
		out = append(out, m.Raw...)
	}
	return out
}

func encodeCoreInstanceSection(c *format.Component) []byte {
	var out []byte
	out = encodeU32(out, uint32(len(c.CoreInstances)))
	for _, ci := range c.CoreInstances {
		switch ci.Kind {
		case format.CoreInstantiate:
			out = append(out, 0x00)
			out = encodeU32(out, ci.ModuleIdx)
			out = encodeU32(out, uint32(len(ci.Args)))
			for _, a := range ci.Args {
				out = encodeString(out, a.Name)
				out = encodeU32(out, a.InstanceIdx)
			}
		case format.CoreInlineExports:
			out = append(out, 0x01)
			out = encodeU32(out, uint32(len(ci.InlineExports)))
			for _, it := range ci.InlineExports {
				out = encodeString(out, it.Name)
				out = append(out, byte(it.Sort))
				out = encodeU32(out, it.Idx)
			}
		}
	}
	return out
}

func encodeCoreFuncType(dst []byte, ft format.FuncType) []byte {
	dst = encodeU32(dst, uint32(len(ft.Params)))
	for _, p := range ft.Params {
		dst = encodeValueTypeByte(dst, p)
	}
	dst = encodeU32(dst, uint32(len(ft.Results)))
	for _, r := range ft.Results {
		dst = encodeValueTypeByte(dst, r)
	}
	return dst
}

func encodeCoreTypeSection(c *format.Component) []byte {
	var out []byte
	out = encodeU32(out, uint32(len(c.CoreTypes)))
	for _, t := range c.CoreTypes {
		switch t.Kind {
		case format.CoreTypeFunc:
			out = append(out, 0x00)
			out = encodeCoreFuncType(out, t.Func)
		case format.CoreTypeModule:
			out = append(out, 0x01)
			out = encodeU32(out, uint32(len(t.ModuleImports)))
			for _, imp := range t.ModuleImports {
				out = encodeString(out, imp.Module)
				out = encodeString(out, imp.Name)
			}
			out = encodeU32(out, uint32(len(t.ModuleExports)))
			for _, exp := range t.ModuleExports {
				out = encodeString(out, exp.Name)
			}
		}
	}
	return out
}

func encodeNestedComponentSection(c *format.Component) []byte {
	var out []byte
	out = encodeU32(out, uint32(len(c.NestedComponents)))
	for _, nested := range c.NestedComponents {
		enc := Encode(nested)
		out = encodeU32(out, uint32(len(enc)))
		out = append(out, enc...)
	}
	return out
}

func encodeComponentInstanceSection(c *format.Component) []byte {
	var out []byte
	out = encodeU32(out, uint32(len(c.ComponentInstances)))
	for _, ci := range c.ComponentInstances {
		out = encodeU32(out, ci.ComponentIdx)
		out = encodeU32(out, uint32(len(ci.Args)))
		for _, a := range ci.Args {
			out = encodeString(out, a.Name)
			out = encodeU32(out, a.InstanceIdx)
		}
	}
	return out
}

func encodeAliasSection(c *format.Component) []byte {
	var out []byte
	out = encodeU32(out, uint32(len(c.Aliases)))
	for _, a := range c.Aliases {
		switch a.Kind {
		case format.AliasCoreInstanceExport, format.AliasCoreModuleExport:
			tag := byte(0x00)
			if a.Kind == format.AliasCoreModuleExport {
				tag = 0x01
			}
			out = append(out, tag)
			out = encodeU32(out, a.InstanceIdx)
			out = encodeString(out, a.Name)
		case format.AliasComponentExport, format.AliasInstanceExport:
			tag := byte(0x02)
			if a.Kind == format.AliasInstanceExport {
				tag = 0x03
			}
			out = append(out, tag)
			out = encodeU32(out, a.InstanceIdx)
			out = encodeString(out, a.Name)
		case format.AliasOuter:
			out = append(out, 0x04)
			out = encodeU32(out, a.OuterCount)
			out = append(out, byte(a.OuterKind))
			out = encodeU32(out, a.OuterIdx)
		}
	}
	return out
}

func encodeNamedExternList(dst []byte, items []format.NamedExternType, withNamespace bool) []byte {
	dst = encodeU32(dst, uint32(len(items)))
	for _, it := range items {
		if withNamespace {
			dst = encodeString(dst, it.Namespace)
		}
		dst = encodeString(dst, it.Name)
		dst = encodeExternType(dst, it.Type)
	}
	return dst
}

func encodeExternType(dst []byte, et format.ExternType) []byte {
	switch et.Kind {
	case format.ExternFunc:
		dst = append(dst, 0x00)
		return encodeCoreFuncType(dst, et.Func)
	case format.ExternValueType:
		dst = append(dst, 0x01)
		return encodeValType(dst, et.Value)
	case format.ExternInstance:
		dst = append(dst, 0x02)
		return encodeNamedExternList(dst, et.Instance, false)
	default:
		return dst
	}
}

func encodeComponentTypeSection(c *format.Component) []byte {
	var out []byte
	out = encodeU32(out, uint32(len(c.ComponentTypes)))
	for _, t := range c.ComponentTypes {
		switch t.Kind {
		case format.CompTypeComponent:
			out = append(out, 0x00)
			out = encodeNamedExternList(out, t.Imports, true)
			out = encodeNamedExternList(out, t.Exports, false)
		case format.CompTypeInstance:
			out = append(out, 0x01)
			out = encodeNamedExternList(out, t.Exports, false)
		case format.CompTypeFunction:
			out = append(out, 0x02)
			out = encodeCoreFuncType(out, t.Function)
		case format.CompTypeValue:
			out = append(out, 0x03)
			out = encodeValType(out, t.Value)
		case format.CompTypeResource:
			out = append(out, 0x04)
			switch t.Resource.Kind {
			case format.RepHandle32:
				out = append(out, 0x00)
			case format.RepHandle64:
				out = append(out, 0x01)
			case format.RepRecord:
				out = append(out, 0x02)
				out = encodeU32(out, uint32(len(t.Resource.FieldNames)))
				for _, n := range t.Resource.FieldNames {
					out = encodeString(out, n)
				}
			case format.RepAggregate:
				out = append(out, 0x03)
				out = encodeU32(out, uint32(len(t.Resource.Indices)))
				for _, idx := range t.Resource.Indices {
					out = encodeU32(out, idx)
				}
			}
			if t.Nullable {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}
	}
	return out
}

func encodeCanonicalSection(c *format.Component) []byte {
	var out []byte
	out = encodeU32(out, uint32(len(c.Canonicals)))
	for _, cn := range c.Canonicals {
		tag := byte(0x00)
		if cn.Kind == format.CanonicalLower {
			tag = 0x01
		}
		out = append(out, tag)
		out = encodeU32(out, cn.CoreFuncIdx)
		out = encodeU32(out, cn.FuncTypeIdx)
	}
	return out
}

func encodeStartSection(c *format.Component) []byte {
	var out []byte
	out = encodeU32(out, c.Start.FuncIdx)
	out = encodeU32(out, uint32(len(c.Start.Args)))
	for _, a := range c.Start.Args {
		out = encodeU32(out, a)
	}
	out = encodeU32(out, uint32(len(c.Start.Results)))
	for _, r := range c.Start.Results {
		out = encodeU32(out, r)
	}
	return out
}

func encodeImportSection(c *format.Component) []byte {
	var out []byte
	out = encodeU32(out, uint32(len(c.Imports)))
	for _, imp := range c.Imports {
		out = encodeImportName(out, imp.Namespace, imp.Name)
		out = encodeExternType(out, imp.Type)
	}
	return out
}

func encodeExportSection(c *format.Component) []byte {
	var out []byte
	out = encodeU32(out, uint32(len(c.Exports)))
	for _, exp := range c.Exports {
		out = encodeString(out, renderExportName(exp.Name, exp.Annotation))
		if exp.Sort == format.SortCore {
			out = append(out, byte(exp.CoreSort)|0x80)
		} else {
			out = append(out, byte(exp.Sort))
		}
		out = encodeU32(out, exp.Idx)
	}
	return out
}

func encodeValueSection(c *format.Component) []byte {
	var out []byte
	out = encodeU32(out, uint32(len(c.Values)))
	for _, v := range c.Values {
		out = encodeValType(out, &v.Type)
		out = encodeU32(out, uint32(len(v.Raw)))
		out = append(out, v.Raw...)
	}
	return out
}

func encodeNameCustomSection(c *format.Component) []byte {
	var out []byte
	out = encodeString(out, "name")
	out = encodeString(out, c.Name)
	return out
}
