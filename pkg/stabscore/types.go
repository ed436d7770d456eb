package stabscore

// TypeNumber identifies a STABS type within a translation unit, either as a
// bare integer or as an (include file index, type index) pair (spec.md §3,
// "Type number").
type TypeNumber struct {
	File int32
	Type int32
}

// TypeDescriptor is the closed set of STABS type descriptors. Dispatch on a
// StabsType is always by this field, never by which variant pointer happens
// to be non-nil (spec.md §9, "Tagged variants").
type TypeDescriptor byte

const (
	DescTypeReference          TypeDescriptor = 0
	DescArray                  TypeDescriptor = 'a'
	DescEnum                   TypeDescriptor = 'e'
	DescFunction               TypeDescriptor = 'f'
	DescVolatileQualifier      TypeDescriptor = 'k'
	DescConstQualifier         TypeDescriptor = 'K'
	DescRange                  TypeDescriptor = 'r'
	DescStruct                 TypeDescriptor = 's'
	DescUnion                  TypeDescriptor = 'u'
	DescCrossReference         TypeDescriptor = 'x'
	DescFloatingPointBuiltin   TypeDescriptor = 'R'
	DescMethod                 TypeDescriptor = '#'
	DescReference              TypeDescriptor = '&'
	DescPointer                TypeDescriptor = '*'
	DescSizeTypeAttribute      TypeDescriptor = '@'
	DescPointerToNonStaticData TypeDescriptor = '%'
	DescBuiltin                TypeDescriptor = '-'
)

// Visibility is the closed set of STABS field/method visibilities
// (spec.md §3, "Visibility").
type Visibility byte

const (
	VisibilityNone               Visibility = 0
	VisibilityPrivate            Visibility = '0'
	VisibilityProtected          Visibility = '1'
	VisibilityPublic             Visibility = '2'
	VisibilityPublicOptimizedOut Visibility = '9'
)

// ForwardDeclaredKind is the kind named by a cross-reference.
type ForwardDeclaredKind byte

const (
	ForwardEnum   ForwardDeclaredKind = 'e'
	ForwardStruct ForwardDeclaredKind = 's'
	ForwardUnion  ForwardDeclaredKind = 'u'
)

// MemberFunctionModifier is the closed set of member function modifiers
// decoded from the overload's trailing flag character.
type MemberFunctionModifier byte

const (
	ModifierNone    MemberFunctionModifier = 0
	ModifierStatic  MemberFunctionModifier = 1
	ModifierVirtual MemberFunctionModifier = 2
)

// EnumField is one (value, name) pair of an Enum type.
type EnumField struct {
	Value int32
	Name  string
}

// BaseClass is one entry of a Struct's base-class prefix.
type BaseClass struct {
	Visibility Visibility
	Offset     int32
	Type       *Type
}

// Field is one member of a Struct or Union field list.
type Field struct {
	Name       string
	Visibility Visibility
	Type       *Type
	OffsetBits int32
	SizeBits   int32
	IsStatic   bool
	// TypeName is set for static fields, which carry a type name string
	// instead of an offset/size pair.
	TypeName string
}

// MemberFunction is one overload of a MemberFunctionSet.
type MemberFunction struct {
	Type        *Type
	Visibility  Visibility
	IsConst     bool
	IsVolatile  bool
	Modifier    MemberFunctionModifier
	VtableIndex int32
	VirtualType *Type
}

// MemberFunctionSet groups every overload sharing one member-function name.
type MemberFunctionSet struct {
	Name     string
	Overloads []MemberFunction
}

// Type is the StabsType sum type (spec.md §3). Every parsed STABS type,
// whatever its descriptor, is represented by one of these; the variant
// fields below are populated according to Descriptor and are otherwise nil.
type Type struct {
	TypeNumber TypeNumber
	Anonymous  bool
	HasBody    bool
	Name       *string
	IsTypedef  bool
	IsRoot     bool

	Descriptor TypeDescriptor

	// DescTypeReference
	Reference *Type

	// DescArray
	ArrayIndexType   *Type
	ArrayElementType *Type

	// DescEnum
	EnumFields []EnumField

	// DescFunction, DescMethod (return type)
	ReturnType *Type

	// DescVolatileQualifier, DescConstQualifier
	QualifiedType *Type

	// DescRange
	RangeType *Type
	RangeLow  string
	RangeHigh string

	// DescStruct, DescUnion
	IsStruct            bool
	StructSize          int64
	BaseClasses         []BaseClass
	Fields              []Field
	MemberFunctions     []MemberFunctionSet
	FirstBaseClass      *Type

	// DescCrossReference
	CrossReferenceKind       ForwardDeclaredKind
	CrossReferenceIdentifier string

	// DescFloatingPointBuiltin
	FPClass int32
	FPBytes int32

	// DescMethod
	MethodClassType     *Type
	MethodParameterTypes []*Type

	// DescReference, DescPointer (value type)
	ValueType *Type
	IsPointer bool

	// DescSizeTypeAttribute
	AttributeSizeBits int64
	AttributeType     *Type

	// DescPointerToNonStaticData
	MemberPointerClassType  *Type
	MemberPointerMemberType *Type

	// DescBuiltin
	BuiltinTypeID int64
}

// NameOrEmpty maps the " " field-name sentinel to the empty string
// (spec.md §9, "field-name sentinels"); any other name, including the
// genuinely empty string, passes through unchanged.
func NameOrEmpty(name string) string {
	if name == " " {
		return ""
	}
	return name
}
