package stabscore

import "github.com/jtang613/mdstabs/pkg/mdebug"

// SymbolDescriptor is the closed set of STABS symbol descriptors
// (spec.md §4.C, step 2). LocalVariable has no character of its own: it is
// recognized by the absence of one (a leading digit or '(' on the type).
type SymbolDescriptor byte

const (
	LocalVariable        SymbolDescriptor = 0
	LocalFunction         SymbolDescriptor = 'f'
	GlobalFunction        SymbolDescriptor = 'F'
	ReferenceParameterA   SymbolDescriptor = 'a'
	RegisterParameter     SymbolDescriptor = 'P'
	ValueParameter        SymbolDescriptor = 'p'
	ReferenceParameterV   SymbolDescriptor = 'v'
	RegisterVariable      SymbolDescriptor = 'R'
	StaticLocalVariable   SymbolDescriptor = 'V'
	GlobalVariable        SymbolDescriptor = 'G'
	StaticGlobalVariable  SymbolDescriptor = 'S'
	TypeName              SymbolDescriptor = 't'
	EnumStructOrTypeTag   SymbolDescriptor = 'T'
)

// symbolDescriptorFromChar normalizes the stream's descriptor byte to the
// canonical SymbolDescriptor, folding the duplicate GCC spelling for
// register variables ('r' as well as 'R') onto one value (spec.md §4.C,
// "plus duplicates").
func symbolDescriptorFromChar(b byte) (SymbolDescriptor, bool) {
	switch b {
	case 'f':
		return LocalFunction, true
	case 'F':
		return GlobalFunction, true
	case 'a':
		return ReferenceParameterA, true
	case 'P':
		return RegisterParameter, true
	case 'p':
		return ValueParameter, true
	case 'v':
		return ReferenceParameterV, true
	case 'R', 'r':
		return RegisterVariable, true
	case 'V':
		return StaticLocalVariable, true
	case 'G':
		return GlobalVariable, true
	case 'S':
		return StaticGlobalVariable, true
	case 't':
		return TypeName, true
	case 'T':
		return EnumStructOrTypeTag, true
	default:
		return 0, false
	}
}

// IsFunctionDescriptor reports whether d names a function symbol, which may
// carry the nested-function suffix handled in step 5 of parse_stabs_symbol.
func (d SymbolDescriptor) IsFunctionDescriptor() bool {
	return d == LocalFunction || d == GlobalFunction
}

// IsTypeNaming reports whether d introduces a named type (spec.md §4.C,
// step 7).
func (d SymbolDescriptor) IsTypeNaming() bool {
	return d == TypeName || d == EnumStructOrTypeTag
}

// Symbol is the parsed form of one `name:descriptor<type>` STABS string
// (spec.md §3, StabsSymbol).
type Symbol struct {
	Name       string
	Descriptor SymbolDescriptor
	Type       *Type
}

// ParsedSymbolKind is the tag of the ParsedSymbol union (spec.md §3).
type ParsedSymbolKind int

const (
	KindNameColonType ParsedSymbolKind = iota
	KindSourceFile
	KindSubSourceFile
	KindLBrac
	KindRBrac
	KindFunctionEnd
	KindNonStabs
)

// ParsedSymbol is one entry of the flat stream produced by the raw-symbol
// classifier (spec.md §3, §4.D). Raw is a back-pointer into the mdebug
// symbol array that produced it; it is borrowed for the duration of a
// single file's import (spec.md §3, "Lifecycles").
type ParsedSymbol struct {
	Kind          ParsedSymbolKind
	Raw           *mdebug.Symbol
	NameColonType *Symbol
}

// ParseSymbol parses one `name:descriptor<type>` STABS symbol string
// (spec.md §4.C, parse_stabs_symbol).
func ParseSymbol(raw string) (*Symbol, error) {
	cursor := NewCursor(raw)

	name, err := cursor.EatDodgyStabsIdentifier()
	if err != nil {
		return nil, err
	}
	if err := cursor.ExpectChar(':', "symbol"); err != nil {
		return nil, err
	}

	symbol := &Symbol{Name: name}

	if isDigit(cursor.Peek()) || cursor.Peek() == '(' {
		symbol.Descriptor = LocalVariable
	} else {
		b, ok := cursor.EatChar()
		if !ok {
			return nil, newParseError(cursor, "cannot parse symbol descriptor")
		}
		descriptor, ok := symbolDescriptorFromChar(b)
		if !ok {
			return nil, newExpectError(cursor, "a valid symbol descriptor", b)
		}
		symbol.Descriptor = descriptor
	}

	// GCC sometimes emits an extra 't' type-name marker after the
	// descriptor; it carries no information beyond the descriptor itself.
	if cursor.Peek() == 't' {
		cursor.EatChar()
	}

	typ, err := ParseTopLevelType(cursor)
	if err != nil {
		return nil, err
	}
	symbol.Type = typ

	if symbol.Descriptor.IsFunctionDescriptor() && cursor.Peek() == ',' {
		// Nested-function suffix: ,enclosing,function -- skip to the end.
		cursor.Seek(len(cursor.Remainder()) + cursor.Offset())
	}

	if !cursor.AtEnd() {
		return nil, newParseError(cursor, "unknown data at the end of the stab")
	}

	if symbol.Descriptor.IsTypeNaming() {
		symbol.Type.Name = &symbol.Name
		symbol.Type.IsTypedef = symbol.Descriptor == TypeName
		symbol.Type.IsRoot = true
	}

	return symbol, nil
}
