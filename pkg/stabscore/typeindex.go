package stabscore

// maxTypeTreeDepth bounds Record's walk over a parsed type's nested
// sub-types, mirroring ccast's own maxLoweringDepth guard; a parsed type
// tree is never itself cyclic (every nested Type is a freshly allocated
// parse result), but a pathologically deep nesting of pointers/arrays
// should still terminate rather than blow the stack.
const maxTypeTreeDepth = 1000

// TypeIndex maps every TypeNumber seen while parsing one translation unit's
// symbols to the Type that declared it. A type number may be redeclared
// more than once (e.g. a struct's forward declaration followed by its body);
// the later declaration overwrites the earlier one, matching stabs.cpp's
// handling of repeated `(file,type)=` bodies (spec.md §4.E).
type TypeIndex struct {
	byNumber map[TypeNumber]*Type
}

// NewTypeIndex returns an empty index.
func NewTypeIndex() *TypeIndex {
	return &TypeIndex{byNumber: make(map[TypeNumber]*Type)}
}

// Record indexes typ under its own TypeNumber, and then walks every nested
// type reachable from it -- array element/index types, struct fields, base
// classes, member function overloads, pointer/reference targets, and so on
// -- indexing each one too (spec.md §4.E, enumerate_numbered_types). STABS
// defines most of its types inline, the first time they're referenced,
// anywhere in a symbol's type tree rather than only at the top level, so a
// single top-level Record call is not enough to make every number a later
// DescTypeReference might need resolvable.
func (idx *TypeIndex) Record(typ *Type) {
	idx.record(typ, 0)
}

func (idx *TypeIndex) record(typ *Type, depth int) {
	if typ == nil || depth > maxTypeTreeDepth {
		return
	}
	if !typ.Anonymous && typ.HasBody {
		idx.byNumber[typ.TypeNumber] = typ
	}

	switch typ.Descriptor {
	case DescTypeReference:
		idx.record(typ.Reference, depth+1)
	case DescArray:
		idx.record(typ.ArrayIndexType, depth+1)
		idx.record(typ.ArrayElementType, depth+1)
	case DescFunction:
		idx.record(typ.ReturnType, depth+1)
	case DescVolatileQualifier, DescConstQualifier:
		idx.record(typ.QualifiedType, depth+1)
	case DescRange:
		idx.record(typ.RangeType, depth+1)
	case DescStruct, DescUnion:
		idx.record(typ.FirstBaseClass, depth+1)
		for _, base := range typ.BaseClasses {
			idx.record(base.Type, depth+1)
		}
		for _, field := range typ.Fields {
			idx.record(field.Type, depth+1)
		}
		for _, set := range typ.MemberFunctions {
			for _, overload := range set.Overloads {
				idx.record(overload.Type, depth+1)
				idx.record(overload.VirtualType, depth+1)
			}
		}
	case DescMethod:
		idx.record(typ.MethodClassType, depth+1)
		idx.record(typ.ReturnType, depth+1)
		for _, param := range typ.MethodParameterTypes {
			idx.record(param, depth+1)
		}
	case DescReference, DescPointer:
		idx.record(typ.ValueType, depth+1)
	case DescSizeTypeAttribute:
		idx.record(typ.AttributeType, depth+1)
	case DescPointerToNonStaticData:
		idx.record(typ.MemberPointerClassType, depth+1)
		idx.record(typ.MemberPointerMemberType, depth+1)
	}
}

// Lookup returns the type previously recorded under number, or nil if none
// exists. A nil result must be turned into a CCC_BADTYPELOOKUP(n) placeholder
// by the caller (pkg/ccast), not treated as fatal (spec.md §4.F).
func (idx *TypeIndex) Lookup(number TypeNumber) *Type {
	return idx.byNumber[number]
}
