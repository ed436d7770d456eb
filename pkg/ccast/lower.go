package ccast

import (
	"fmt"

	"github.com/jtang613/mdstabs/pkg/stabscore"
)

// maxLoweringDepth bounds the recursive StabsType->Node lowering in
// lowerType, so a malformed or cyclic type graph can never recurse forever
// (spec.md §4.F, "Recursion guard").
const maxLoweringDepth = 1000

// LowerFlags carries the subset of importer configuration that changes how
// a type or symbol is lowered to AST (spec.md §6, "Configuration"). It is a
// plain struct rather than the importer package's bitset so this package
// never imports pkg/importer.
type LowerFlags struct {
	NoAccessSpecifiers              bool
	NoMemberFunctions               bool
	IncludeGeneratedMemberFunctions bool
	TypedefAllEnums                 bool
	TypedefAllStructs               bool
	TypedefAllUnions                bool
}

// lowerer threads the per-translation-unit type index and the active flags
// through a lowering pass without reaching for package-level state.
type lowerer struct {
	index *stabscore.TypeIndex
	flags LowerFlags
}

func typeNamePlaceholder(name string, source TypeNameSource) *Node {
	return &Node{Descriptor: TypeName, TypeName: name, TypeNameSource: source}
}

// LowerType converts one parsed StabsType into a normalized Node
// (spec.md §4.F, stabs_type_to_ast).
func LowerType(typ *stabscore.Type, index *stabscore.TypeIndex, flags LowerFlags) *Node {
	l := &lowerer{index: index, flags: flags}
	return l.lowerType(typ, 0)
}

func accessFromVisibility(v stabscore.Visibility) AccessSpecifier {
	switch v {
	case stabscore.VisibilityPrivate:
		return AccessPrivate
	case stabscore.VisibilityProtected:
		return AccessProtected
	default:
		return AccessPublic
	}
}

func (l *lowerer) lowerType(typ *stabscore.Type, depth int) *Node {
	if depth > maxLoweringDepth {
		return typeNamePlaceholder("CCC_BADRECURSION", SourceError)
	}
	if typ == nil {
		return typeNamePlaceholder("CCC_BADTYPEINFO", SourceError)
	}

	switch typ.Descriptor {
	case stabscore.DescTypeReference:
		// An explicit-bodied alias ("N=M") already carries its target
		// inline as Reference -- no index lookup needed, and the number on
		// typ is the number being *defined* (N), not M's. A bodyless
		// reference ("N" alone, no "=") has no Reference and must be
		// resolved through the index instead.
		if typ.Reference != nil {
			if typ.Reference.TypeNumber == typ.TypeNumber {
				// GCC's STABS encoding of void: a type whose reference
				// points back at its own number (stabs_to_ast.cpp, "void
				// is a reference to itself").
				return typeNamePlaceholder("void", SourceUser)
			}
			return l.lowerType(typ.Reference, depth+1)
		}

		target := l.index.Lookup(typ.TypeNumber)
		if target == nil {
			return typeNamePlaceholder(fmt.Sprintf("CCC_BADTYPELOOKUP(%d)", typ.TypeNumber.Type), SourceStabsTypeNumber)
		}
		if typ.TypeNumber == (stabscore.TypeNumber{File: 0, Type: 0}) || target.Name == nil {
			return l.lowerType(target, depth+1)
		}
		substituted := l.lowerType(target, depth+1)
		if substituted == nil {
			return nil
		}
		substituted.Name = ForceSubstitutedName(substituted, substituted.Name)
		return substituted

	case stabscore.DescArray:
		elementType := l.lowerType(typ.ArrayElementType, depth+1)
		if elementType == nil {
			return nil
		}
		node := &Node{Descriptor: Array, ElementType: elementType}
		if typ.ArrayIndexType != nil && typ.ArrayIndexType.RangeHigh != "" {
			count := 0
			fmt.Sscanf(typ.ArrayIndexType.RangeHigh, "%d", &count)
			node.ElementCount = int32(count) + 1
		}
		return node

	case stabscore.DescEnum:
		node := &Node{Descriptor: InlineEnum}
		for _, f := range typ.EnumFields {
			node.Constants = append(node.Constants, EnumConstant{Value: int64(f.Value), Name: f.Name})
		}
		return node

	case stabscore.DescFunction:
		returnType := l.lowerType(typ.ReturnType, depth+1)
		if returnType == nil {
			return nil
		}
		return &Node{Descriptor: Function, ReturnType: returnType}

	case stabscore.DescVolatileQualifier:
		node := l.lowerType(typ.QualifiedType, depth+1)
		if node == nil {
			return nil
		}
		node.IsVolatile = true
		return node

	case stabscore.DescConstQualifier:
		node := l.lowerType(typ.QualifiedType, depth+1)
		if node == nil {
			return nil
		}
		node.IsConst = true
		return node

	case stabscore.DescRange:
		return l.lowerRange(typ, depth)

	case stabscore.DescStruct, stabscore.DescUnion:
		return l.lowerStructOrUnion(typ, depth)

	case stabscore.DescCrossReference:
		return typeNamePlaceholder(typ.CrossReferenceIdentifier, SourceUser)

	case stabscore.DescFloatingPointBuiltin:
		node := &Node{Descriptor: Builtin}
		switch typ.FPBytes {
		case 4:
			node.BuiltinClass = BuiltinFloat32
		case 8:
			node.BuiltinClass = BuiltinFloat64
		default:
			node.BuiltinClass = BuiltinFloat128
		}
		return node

	case stabscore.DescMethod:
		returnType := l.lowerType(typ.ReturnType, depth+1)
		if returnType == nil {
			return nil
		}
		node := &Node{Descriptor: Function, ReturnType: returnType}
		node.ParametersHasValue = len(typ.MethodParameterTypes) > 0
		for _, p := range typ.MethodParameterTypes {
			if param := l.lowerType(p, depth+1); param != nil {
				node.Parameters = append(node.Parameters, param)
			}
		}
		return node

	case stabscore.DescReference:
		valueType := l.lowerType(typ.ValueType, depth+1)
		if valueType == nil {
			return nil
		}
		return &Node{Descriptor: Reference, ValueType: valueType}

	case stabscore.DescPointer:
		valueType := l.lowerType(typ.ValueType, depth+1)
		if valueType == nil {
			return nil
		}
		return &Node{Descriptor: Pointer, ValueType: valueType}

	case stabscore.DescSizeTypeAttribute:
		node := l.lowerType(typ.AttributeType, depth+1)
		if node == nil {
			return nil
		}
		node.SizeBits = typ.AttributeSizeBits
		return node

	case stabscore.DescPointerToNonStaticData:
		classType := l.lowerType(typ.MemberPointerClassType, depth+1)
		memberType := l.lowerType(typ.MemberPointerMemberType, depth+1)
		if classType == nil || memberType == nil {
			return nil
		}
		return &Node{Descriptor: PointerToDataMember, ClassType: classType, MemberType: memberType}

	case stabscore.DescBuiltin:
		return &Node{Descriptor: Builtin, BuiltinClass: classifyBuiltinTypeID(typ.BuiltinTypeID)}

	default:
		return typeNamePlaceholder("CCC_BADTYPEINFO", SourceError)
	}
}

// lowerRange classifies a Range type's bounds into a builtin class. When the
// bounds match neither lookup table, the result depends on depth: at
// depth ≥ 2 it is a placeholder carrying the type's own name if it has one,
// otherwise the literal "CCC_RANGE"; at depth 0-1 the type is discarded
// outright -- lowerType returns nil and the caller drops whatever it was
// building (spec.md §4.F, "Range / Builtin at depth ≥ 2").
func (l *lowerer) lowerRange(typ *stabscore.Type, depth int) *Node {
	if typ.RangeType != nil && typ.RangeType.Name != nil && *typ.RangeType.Name == "__builtin_va_list" {
		return typeNamePlaceholder("__builtin_va_list", SourceUser)
	}
	class, ok := classifyRange(typ.RangeLow, typ.RangeHigh)
	if !ok {
		if depth >= 2 {
			if typ.Name != nil && *typ.Name != "" {
				return typeNamePlaceholder(*typ.Name, SourceUser)
			}
			return typeNamePlaceholder("CCC_RANGE", SourceError)
		}
		return nil
	}
	return &Node{Descriptor: Builtin, BuiltinClass: class}
}

// rangeStringBounds covers bounds that overflow a signed 64-bit integer:
// 128-bit integers and floats, and octal-encoded unsigned 64-bit bounds
// (spec.md §4.F, classify_range; grounded on stabs_to_ast.cpp's literal
// lookup table for the same reason: these bounds cannot round-trip through
// int64 at all).
var rangeStringBounds = map[[2]string]BuiltinClass{
	{"0", "0177777777777777777777"}:   BuiltinUnsigned128,
	{"0200000000000000000000", "017777777777777777777777777777777777777777"}: BuiltinUnsigned128,
	{"-0100000000000000000000000000000000000000000", "077777777777777777777777777777777777777777"}: BuiltinSigned128,
}

// rangeIntegerBounds covers the common 8/16/32-bit and 64-bit signed,
// unsigned, and unqualified-char ranges that fit in an int64
// (spec.md §4.F, classify_range fallback table).
var rangeIntegerBounds = map[[2]int64]BuiltinClass{
	{0, 0}:                     BuiltinVoid,
	{0, 127}:                   Builtin8BitChar,
	{-128, 127}:                BuiltinSignedInt8,
	{0, 255}:                   BuiltinUnsignedInt8,
	{-32768, 32767}:             BuiltinSignedInt16,
	{0, 65535}:                  BuiltinUnsignedInt16,
	{-2147483648, 2147483647}:   BuiltinSignedInt32,
	{0, 4294967295}:             BuiltinUnsignedInt32,
	{-9223372036854775808, 9223372036854775807}: BuiltinSignedInt64,
	{0, -1}:                     BuiltinUnsignedInt64, // 0xffffffffffffffff wraps to -1 in int64
	{0, 1}:                      BuiltinBool8,
}

// classifyRange maps a Range type's (low, high) bound strings to the
// builtin class they denote (spec.md §4.F, classify_range). false means the
// bounds matched nothing in either table.
func classifyRange(low, high string) (BuiltinClass, bool) {
	if class, ok := rangeStringBounds[[2]string{low, high}]; ok {
		return class, true
	}
	var lowN, highN int64
	if _, err := fmt.Sscanf(low, "%d", &lowN); err != nil {
		return 0, false
	}
	if _, err := fmt.Sscanf(high, "%d", &highN); err != nil {
		return 0, false
	}
	class, ok := rangeIntegerBounds[[2]int64{lowN, highN}]
	return class, ok
}

func classifyBuiltinTypeID(id int64) BuiltinClass {
	switch id {
	case 1:
		return BuiltinSignedInt32
	case 2:
		return Builtin8BitChar
	case 3:
		return BuiltinSignedInt16
	case 4:
		return BuiltinSignedInt32
	case 5:
		return BuiltinUnsignedInt8
	case 6:
		return BuiltinSignedInt8
	case 7:
		return BuiltinUnsignedInt16
	case 8:
		return BuiltinUnsignedInt32
	case 9:
		return BuiltinFloat32
	case 10:
		return BuiltinFloat64
	case 15:
		return BuiltinVoid
	case 16:
		return BuiltinBool8
	case 17:
		return BuiltinFloat32
	case 18:
		return BuiltinFloat128
	default:
		return BuiltinUnqualified
	}
}

func (l *lowerer) lowerStructOrUnion(typ *stabscore.Type, depth int) *Node {
	node := &Node{
		Descriptor:     InlineStructOrUnion,
		IsStruct:       typ.IsStruct,
		StructSizeBits: typ.StructSize * 8,
	}

	for _, base := range typ.BaseClasses {
		baseType := l.lowerType(base.Type, depth+1)
		if baseType == nil || baseType.Descriptor != TypeName {
			baseType = typeNamePlaceholder("CCC_BADBASECLASS", SourceError)
		}
		node.BaseClasses = append(node.BaseClasses, BaseClass{
			AccessSpecifier: accessFromVisibility(base.Visibility),
			OffsetBytes:     base.Offset / 8,
			Type:            baseType,
		})
	}

	for _, field := range typ.Fields {
		if fieldNode := l.lowerField(field, depth); fieldNode != nil {
			node.Fields = append(node.Fields, fieldNode)
		}
	}

	node.MemberFunctions = l.lowerMemberFunctions(typ.MemberFunctions, depth)

	return node
}

func (l *lowerer) lowerField(field stabscore.Field, depth int) *Node {
	name := stabscore.NameOrEmpty(field.Name)
	if field.IsStatic {
		return &Node{
			Descriptor:      Variable,
			Name:            name,
			StorageClass:    StorageStatic,
			AccessSpecifier: accessFromVisibility(field.Visibility),
			VariableType:    typeNamePlaceholder(field.TypeName, SourceUser),
		}
	}

	node := &Node{
		Name:                name,
		AccessSpecifier:     accessFromVisibility(field.Visibility),
		RelativeOffsetBytes: field.OffsetBits / 8,
		SizeBits:            int64(field.SizeBits),
	}

	underlying := l.lowerType(field.Type, depth+1)
	if underlying == nil {
		return nil
	}
	if field.OffsetBits%8 != 0 || !bitfieldSizeMatchesUnderlying(underlying, field.SizeBits) {
		node.Descriptor = BitField
		node.BitfieldOffsetBits = field.OffsetBits % 8
		node.BitfieldUnderlyingType = underlying
		return node
	}

	node.Descriptor = underlying.Descriptor
	*node = mergeNodeBody(*node, *underlying)
	return node
}

// bitfieldSizeMatchesUnderlying reports whether sizeBits equals the natural
// width of underlying, the signal detect_bitfield uses to decide a field
// needs bit-level storage rather than a plain typed slot
// (spec.md §4.F, detect_bitfield).
func bitfieldSizeMatchesUnderlying(underlying *Node, sizeBits int32) bool {
	if underlying.Descriptor != Builtin {
		return true
	}
	natural, ok := builtinNaturalSizeBits[underlying.BuiltinClass]
	if !ok {
		return true
	}
	return int32(natural) == sizeBits
}

var builtinNaturalSizeBits = map[BuiltinClass]int{
	BuiltinUnsignedInt8:  8,
	BuiltinSignedInt8:    8,
	Builtin8BitChar:      8,
	BuiltinBool8:         8,
	BuiltinUnsignedInt16: 16,
	BuiltinSignedInt16:   16,
	BuiltinUnsignedInt32: 32,
	BuiltinSignedInt32:   32,
	BuiltinFloat32:       32,
	BuiltinUnsignedInt64: 64,
	BuiltinSignedInt64:   64,
	BuiltinFloat64:       64,
}

// mergeNodeBody copies src's variant-specific payload onto a header already
// populated on dst, so a plain field can "become" whatever node kind its
// underlying type lowered to without losing the field's own offset/name.
func mergeNodeBody(dst, src Node) Node {
	dst.ElementType, dst.ElementCount = src.ElementType, src.ElementCount
	dst.BuiltinClass = src.BuiltinClass
	dst.ReturnType, dst.Parameters, dst.ParametersHasValue = src.ReturnType, src.Parameters, src.ParametersHasValue
	dst.Constants = src.Constants
	dst.IsStruct, dst.StructSizeBits, dst.BaseClasses, dst.Fields, dst.MemberFunctions =
		src.IsStruct, src.StructSizeBits, src.BaseClasses, src.Fields, src.MemberFunctions
	dst.ValueType = src.ValueType
	dst.ClassType, dst.MemberType = src.ClassType, src.MemberType
	dst.TypeName, dst.TypeNameSource = src.TypeName, src.TypeNameSource
	if dst.IsConst == false {
		dst.IsConst = src.IsConst
	}
	if dst.IsVolatile == false {
		dst.IsVolatile = src.IsVolatile
	}
	return dst
}

// lowerMemberFunctions converts a Struct/Union's overload sets to Function
// nodes, applying the member-function visibility flags and the __as ->
// operator= rename (spec.md §4.F, member_functions_to_ast).
func (l *lowerer) lowerMemberFunctions(sets []stabscore.MemberFunctionSet, depth int) []*Node {
	if l.flags.NoMemberFunctions {
		return nil
	}

	var out []*Node
	for _, set := range sets {
		name := set.Name
		if name == "__as" {
			name = "operator="
		}
		isConstructor := name == "" || name == "__ct"
		if isConstructor {
			name = ""
		}

		for _, overload := range set.Overloads {
			if overload.Modifier == stabscore.ModifierNone && !l.flags.IncludeGeneratedMemberFunctions && looksGenerated(name) {
				continue
			}
			fn := l.lowerType(overload.Type, depth+1)
			if fn == nil {
				continue
			}
			fn.Name = name
			fn.AccessSpecifier = accessFromVisibility(overload.Visibility)
			fn.IsConst = overload.IsConst
			fn.IsVolatile = overload.IsVolatile
			fn.IsConstructor = isConstructor
			switch overload.Modifier {
			case stabscore.ModifierStatic:
				fn.Modifier = FunctionModifierStatic
			case stabscore.ModifierVirtual:
				fn.Modifier = FunctionModifierVirtual
				fn.VtableIndex = overload.VtableIndex
			}
			out = append(out, fn)
		}
	}
	return out
}

// looksGenerated flags the compiler-synthesized special member functions
// (default constructor, copy constructor, destructor, copy assignment) that
// GCC emits for every class whether or not the user wrote one, so they can
// be filtered out by default (spec.md §6, INCLUDE_GENERATED_MEMBER_FUNCTIONS).
func looksGenerated(name string) bool {
	switch name {
	case "", "~", "operator=":
		return true
	default:
		return false
	}
}
