// Package ccast holds the normalized, symbol-database-ready AST that the
// stabscore type trees are lowered into, and the lowering itself.
package ccast

import "github.com/jtang613/mdstabs/pkg/mdebug"

// NodeDescriptor is the closed set of AST node kinds (spec.md §3, AstNode).
// Dispatch on a Node is always by this tag, never by which variant field
// happens to be populated (spec.md §9, "Tagged variants").
type NodeDescriptor byte

const (
	Array NodeDescriptor = iota
	BitField
	Builtin
	Function
	InlineEnum
	InlineStructOrUnion
	Pointer
	PointerToDataMember
	Reference
	TypeName
	Variable
	FunctionDefinition
	InitializerList
	Data
	SourceFile
)

// StorageClass is the closed set of variable storage classes a Variable node
// can carry (spec.md §3, "StorageClass").
type StorageClass byte

const (
	StorageNone StorageClass = iota
	StorageGlobal
	StorageLocal
	StorageStatic
	StorageRegister
	StorageArgument
)

// AccessSpecifier is the closed set of C++ access specifiers a node may
// carry, derived from a stabscore Visibility (spec.md §3).
type AccessSpecifier byte

const (
	AccessPublic AccessSpecifier = iota
	AccessProtected
	AccessPrivate
)

// TypeNameSource records where a TypeName node's string came from, so a
// presentation layer can tell a genuine identifier from a recovery
// placeholder (spec.md §4.F, "TypeName source").
type TypeNameSource byte

const (
	SourceUser TypeNameSource = iota
	SourceError
	SourceStabsTypeNumber
)

// FunctionModifier mirrors stabscore.MemberFunctionModifier after lowering.
type FunctionModifier byte

const (
	FunctionModifierNone FunctionModifier = iota
	FunctionModifierStatic
	FunctionModifierVirtual
)

// BuiltinClass is the closed set of recognized built-in value classes a
// Builtin node can name (spec.md §4.F, classify_range).
type BuiltinClass byte

const (
	BuiltinVoid BuiltinClass = iota
	BuiltinUnsignedInt8
	BuiltinSignedInt8
	BuiltinUnsignedInt16
	BuiltinSignedInt16
	BuiltinUnsignedInt32
	BuiltinSignedInt32
	BuiltinUnsignedInt64
	BuiltinSignedInt64
	BuiltinUnsigned128
	BuiltinSigned128
	BuiltinBool8
	BuiltinFloat32
	BuiltinFloat64
	BuiltinFloat128
	Builtin8BitChar
	BuiltinUnqualified
	BuiltinUnknownProbablyArray
)

// StorageDescriptor is the closed set of places a Variable's value can live
// (spec.md §6, "Variable storage descriptors").
type StorageDescriptor interface {
	storageDescriptor()
}

// GlobalStorage locates a variable at a fixed address in a named section.
// Location is the raw mdebug storage class the symbol carried; ClassNil
// means it could not be tied to a known section.
type GlobalStorage struct {
	Location mdebug.StorageClass
	Address  uint32
}

// RegisterStorage locates a variable in a CPU register for its entire
// lifetime, as opposed to being spilled to the stack. DBXRegisterNumber is
// the raw number as it appears in the STABS stream; ResolveDBXRegister
// turns it into a (RegisterClass, index) pair for presentation.
type RegisterStorage struct {
	DBXRegisterNumber int32
	IsByReference     bool
}

// StackStorage locates a variable at a fixed offset from the stack
// pointer. The offset may be negative.
type StackStorage struct {
	StackPointerOffset int32
}

func (GlobalStorage) storageDescriptor()   {}
func (RegisterStorage) storageDescriptor() {}
func (StackStorage) storageDescriptor()    {}

// EnumConstant is one (value, name) pair of an InlineEnum node.
type EnumConstant struct {
	Value int64
	Name  string
}

// BaseClass is one entry of an InlineStructOrUnion's base-class list.
type BaseClass struct {
	AccessSpecifier AccessSpecifier
	OffsetBytes     int32
	Type            *Node
}

// AddressRange is a [Low, High) half-open byte range, used to locate a
// function definition's code (spec.md §3, "AddressRange"). High of 0 means
// unknown/unbounded.
type AddressRange struct {
	Low  uint32
	High uint32
}

// Node is the AstNode sum type (spec.md §3). Every node, regardless of
// Descriptor, shares the header fields below; the variant-specific fields
// beneath Descriptor are populated according to it and are otherwise zero.
type Node struct {
	Descriptor NodeDescriptor
	Name       string

	StorageClass       StorageClass
	AccessSpecifier    AccessSpecifier
	IsConst            bool
	IsVolatile          bool
	RelativeOffsetBytes int32
	AbsoluteOffsetBytes int32
	BitfieldOffsetBits  int32
	SizeBits            int64

	// Conflict marks a node whose two deduplication candidates disagreed
	// structurally; CompareFailReason names which check failed
	// (spec.md §4.H).
	Conflict           bool
	CompareFailReason  string

	// Array
	ElementType  *Node
	ElementCount int32

	// BitField
	BitfieldUnderlyingType *Node

	// Builtin
	BuiltinClass BuiltinClass

	// Function, FunctionDefinition (shared)
	ReturnType       *Node
	Parameters       []*Node
	ParametersHasValue bool
	Modifier         FunctionModifier
	IsConstructor    bool
	VtableIndex      int32

	// FunctionDefinition
	Type         *Node
	AddressRange AddressRange
	Locals       []*Node

	// InlineEnum
	Constants []EnumConstant

	// InlineStructOrUnion
	IsStruct        bool
	StructSizeBits  int64
	BaseClasses     []BaseClass
	Fields          []*Node
	MemberFunctions []*Node

	// Pointer, Reference
	ValueType *Node

	// PointerToDataMember
	ClassType  *Node
	MemberType *Node

	// TypeName
	TypeName       string
	TypeNameSource TypeNameSource

	// Variable
	VariableType *Node
	Data         *Node
	Storage      StorageDescriptor

	// InitializerList, Data
	Elements []*Node
	Bytes    []byte

	// SourceFile
	Path     string
	FullPath string
	Children []*Node
}

// ForceSubstitutedName returns the display name a reference-folded node
// should carry: the substituted type's own name if it has one, or name
// unchanged otherwise (spec.md §4.F, "name substitution").
func ForceSubstitutedName(substituted *Node, name string) string {
	if substituted != nil && substituted.Name != "" {
		return substituted.Name
	}
	return name
}
