package symdb

import "github.com/jtang613/mdstabs/pkg/ccast"

// CompareFailReason is the closed set of reasons two AST nodes can be judged
// structurally different (spec.md §4.H, "CompareFailReason"). This is a
// deliberately smaller set than the original importer's CompareResult model
// (which also distinguishes which side to favour when merging and carries a
// "wobbly typedef" heuristic); this port follows the binary equal-or-reason
// model spec.md itself describes (see DESIGN.md, "CompareFailReason").
type CompareFailReason string

const (
	ReasonNone                         CompareFailReason = ""
	ReasonDescriptor                   CompareFailReason = "DESCRIPTOR"
	ReasonStorageClass                 CompareFailReason = "STORAGE_CLASS"
	ReasonName                         CompareFailReason = "NAME"
	ReasonRelativeOffsetBytes          CompareFailReason = "RELATIVE_OFFSET_BYTES"
	ReasonAbsoluteOffsetBytes          CompareFailReason = "ABSOLUTE_OFFSET_BYTES"
	ReasonBitfieldOffsetBits           CompareFailReason = "BITFIELD_OFFSET_BITS"
	ReasonSizeBits                     CompareFailReason = "SIZE_BITS"
	ReasonArrayElementCount            CompareFailReason = "ARRAY_ELEMENT_COUNT"
	ReasonBuiltinClass                 CompareFailReason = "BUILTIN_CLASS"
	ReasonFunctionParameterSize        CompareFailReason = "FUNCTION_PARAMETER_SIZE"
	ReasonFunctionParametersHasValue   CompareFailReason = "FUNCTION_PARAMETERS_HAS_VALUE"
	ReasonFunctionModifier             CompareFailReason = "FUNCTION_MODIFIER"
	ReasonFunctionIsConstructor        CompareFailReason = "FUNCTION_IS_CONSTRUCTOR"
	ReasonEnumConstants                CompareFailReason = "ENUM_CONSTANTS"
	ReasonBaseClassSize                CompareFailReason = "BASE_CLASS_SIZE"
	ReasonBaseClassVisibility          CompareFailReason = "BASE_CLASS_VISIBILITY"
	ReasonBaseClassOffset              CompareFailReason = "BASE_CLASS_OFFSET"
	ReasonBaseClassTypeName            CompareFailReason = "BASE_CLASS_TYPE_NAME"
	ReasonFieldsSize                   CompareFailReason = "FIELDS_SIZE"
	ReasonMemberFunctionSize           CompareFailReason = "MEMBER_FUNCTION_SIZE"
	ReasonTypeName                     CompareFailReason = "TYPE_NAME"
)

// CompareNodes structurally compares lhs and rhs, returning ReasonNone if
// they are equal or the first CompareFailReason encountered otherwise
// (spec.md §4.H, compare_ast_nodes). Comparison is shallow-recursive: child
// nodes are compared with the same function, but the function never
// attempts to resolve cycles or merge types itself — that's the
// deduplicator's job.
func CompareNodes(lhs, rhs *ccast.Node) CompareFailReason {
	if lhs == nil || rhs == nil {
		if lhs == rhs {
			return ReasonNone
		}
		return ReasonDescriptor
	}
	if lhs.Descriptor != rhs.Descriptor {
		return ReasonDescriptor
	}
	if lhs.Name != rhs.Name {
		return ReasonName
	}
	if lhs.StorageClass != rhs.StorageClass {
		return ReasonStorageClass
	}
	if lhs.RelativeOffsetBytes != rhs.RelativeOffsetBytes {
		return ReasonRelativeOffsetBytes
	}
	if lhs.AbsoluteOffsetBytes != rhs.AbsoluteOffsetBytes {
		return ReasonAbsoluteOffsetBytes
	}
	if lhs.BitfieldOffsetBits != rhs.BitfieldOffsetBits {
		return ReasonBitfieldOffsetBits
	}
	if lhs.SizeBits != rhs.SizeBits {
		return ReasonSizeBits
	}

	switch lhs.Descriptor {
	case ccast.Array:
		if lhs.ElementCount != rhs.ElementCount {
			return ReasonArrayElementCount
		}
		return CompareNodes(lhs.ElementType, rhs.ElementType)

	case ccast.Builtin:
		if lhs.BuiltinClass != rhs.BuiltinClass {
			return ReasonBuiltinClass
		}
		return ReasonNone

	case ccast.BitField:
		return CompareNodes(lhs.BitfieldUnderlyingType, rhs.BitfieldUnderlyingType)

	case ccast.Function:
		if len(lhs.Parameters) != len(rhs.Parameters) {
			return ReasonFunctionParameterSize
		}
		if lhs.ParametersHasValue != rhs.ParametersHasValue {
			return ReasonFunctionParametersHasValue
		}
		if lhs.Modifier != rhs.Modifier {
			return ReasonFunctionModifier
		}
		if lhs.IsConstructor != rhs.IsConstructor {
			return ReasonFunctionIsConstructor
		}
		if reason := CompareNodes(lhs.ReturnType, rhs.ReturnType); reason != ReasonNone {
			return reason
		}
		for i := range lhs.Parameters {
			if reason := CompareNodes(lhs.Parameters[i], rhs.Parameters[i]); reason != ReasonNone {
				return reason
			}
		}
		return ReasonNone

	case ccast.InlineEnum:
		if len(lhs.Constants) != len(rhs.Constants) {
			return ReasonEnumConstants
		}
		for i := range lhs.Constants {
			if lhs.Constants[i] != rhs.Constants[i] {
				return ReasonEnumConstants
			}
		}
		return ReasonNone

	case ccast.InlineStructOrUnion:
		if lhs.IsStruct != rhs.IsStruct || lhs.StructSizeBits != rhs.StructSizeBits {
			return ReasonBaseClassSize
		}
		if len(lhs.BaseClasses) != len(rhs.BaseClasses) {
			return ReasonBaseClassSize
		}
		for i := range lhs.BaseClasses {
			a, b := lhs.BaseClasses[i], rhs.BaseClasses[i]
			if a.AccessSpecifier != b.AccessSpecifier {
				return ReasonBaseClassVisibility
			}
			if a.OffsetBytes != b.OffsetBytes {
				return ReasonBaseClassOffset
			}
			if a.Type.TypeName != b.Type.TypeName {
				return ReasonBaseClassTypeName
			}
		}
		if len(lhs.Fields) != len(rhs.Fields) {
			return ReasonFieldsSize
		}
		for i := range lhs.Fields {
			if reason := CompareNodes(lhs.Fields[i], rhs.Fields[i]); reason != ReasonNone {
				return reason
			}
		}
		if len(lhs.MemberFunctions) != len(rhs.MemberFunctions) {
			return ReasonMemberFunctionSize
		}
		for i := range lhs.MemberFunctions {
			if reason := CompareNodes(lhs.MemberFunctions[i], rhs.MemberFunctions[i]); reason != ReasonNone {
				return reason
			}
		}
		return ReasonNone

	case ccast.Pointer, ccast.Reference:
		return CompareNodes(lhs.ValueType, rhs.ValueType)

	case ccast.PointerToDataMember:
		if reason := CompareNodes(lhs.ClassType, rhs.ClassType); reason != ReasonNone {
			return reason
		}
		return CompareNodes(lhs.MemberType, rhs.MemberType)

	case ccast.TypeName:
		if lhs.TypeName != rhs.TypeName {
			return ReasonTypeName
		}
		return ReasonNone

	default:
		return ReasonNone
	}
}
