package stabscore

// ParseTopLevelType parses one complete STABS type string, including the
// first-base-class and live-range suffixes that may trail a top-level type
// (spec.md §4.B, "After the initial type is parsed at the top level...").
func ParseTopLevelType(cursor *Cursor) (*Type, error) {
	result, err := parseType(cursor)
	if err != nil {
		return nil, err
	}

	if result.Descriptor == DescStruct && cursor.Peek() == '~' && cursor.PeekAt(1) == '%' {
		cursor.EatChar()
		cursor.EatChar()

		firstBaseClass, err := parseType(cursor)
		if err != nil {
			return nil, err
		}
		result.FirstBaseClass = firstBaseClass

		if err := cursor.ExpectChar(';', "first base class suffix"); err != nil {
			return nil, err
		}
	}

	if cursor.Peek() == ';' && cursor.PeekAt(1) == 'l' {
		cursor.EatChar()
		cursor.EatChar()
		if err := cursor.ExpectChar('(', "live range suffix"); err != nil {
			return nil, err
		}
		if err := cursor.ExpectChar('#', "live range suffix"); err != nil {
			return nil, err
		}
		if _, ok := cursor.EatS32Literal(); !ok {
			return nil, newParseError(cursor, "failed to parse live range suffix")
		}
		if err := cursor.ExpectChar(',', "live range suffix"); err != nil {
			return nil, err
		}
		if err := cursor.ExpectChar('#', "live range suffix"); err != nil {
			return nil, err
		}
		if _, ok := cursor.EatS32Literal(); !ok {
			return nil, newParseError(cursor, "failed to parse live range suffix")
		}
		if err := cursor.ExpectChar(')', "live range suffix"); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// parseType is the recursive-descent entry point for a single STABS type
// (spec.md §4.B, parse_stabs_type).
func parseType(cursor *Cursor) (*Type, error) {
	result := &Type{}

	if cursor.AtEnd() {
		return nil, newParseError(cursor, "unexpected end of input")
	}

	switch {
	case cursor.Peek() == '(':
		// Two-piece type number: (file,type).
		cursor.EatChar()

		fileNumber, ok := cursor.EatS32Literal()
		if !ok {
			return nil, newParseError(cursor, "cannot parse file number")
		}
		if err := cursor.ExpectChar(',', "type number"); err != nil {
			return nil, err
		}
		typeNumber, ok := cursor.EatS32Literal()
		if !ok {
			return nil, newParseError(cursor, "cannot parse type number")
		}
		if err := cursor.ExpectChar(')', "type number"); err != nil {
			return nil, err
		}

		result.Anonymous = false
		result.TypeNumber = TypeNumber{File: fileNumber, Type: typeNumber}
		if cursor.Peek() != '=' {
			result.HasBody = false
			return result, nil
		}
		cursor.EatChar()
	case isDigit(cursor.Peek()):
		// Single-number type number, the common case for games.
		result.Anonymous = false

		typeNumber, ok := cursor.EatS32Literal()
		if !ok {
			return nil, newParseError(cursor, "cannot parse type number")
		}
		result.TypeNumber = TypeNumber{Type: typeNumber}

		if cursor.Peek() != '=' {
			result.HasBody = false
			return result, nil
		}
		cursor.EatChar()
	default:
		result.Anonymous = true
	}
	result.HasBody = true

	if cursor.AtEnd() {
		return nil, newParseError(cursor, "unexpected end of input")
	}

	var descriptor TypeDescriptor
	if isDigit(cursor.Peek()) || cursor.Peek() == '(' {
		descriptor = DescTypeReference
	} else {
		b, ok := cursor.EatChar()
		if !ok {
			return nil, newParseError(cursor, "cannot parse type descriptor")
		}
		descriptor = TypeDescriptor(b)
	}
	result.Descriptor = descriptor

	switch descriptor {
	case DescTypeReference:
		ref, err := parseType(cursor)
		if err != nil {
			return nil, err
		}
		result.Reference = ref
	case DescArray:
		index, err := parseType(cursor)
		if err != nil {
			return nil, err
		}
		element, err := parseType(cursor)
		if err != nil {
			return nil, err
		}
		result.ArrayIndexType = index
		result.ArrayElementType = element
	case DescEnum:
		for cursor.Peek() != ';' {
			name, err := cursor.EatDodgyStabsIdentifier()
			if err != nil {
				return nil, err
			}
			if err := cursor.ExpectChar(':', "enum"); err != nil {
				return nil, err
			}
			value, ok := cursor.EatS32Literal()
			if !ok {
				return nil, newParseError(cursor, "cannot parse enum value")
			}
			result.EnumFields = append(result.EnumFields, EnumField{Value: value, Name: name})
			if err := cursor.ExpectChar(',', "enum"); err != nil {
				return nil, err
			}
		}
		cursor.EatChar()
	case DescFunction:
		ret, err := parseType(cursor)
		if err != nil {
			return nil, err
		}
		result.ReturnType = ret
	case DescVolatileQualifier, DescConstQualifier:
		inner, err := parseType(cursor)
		if err != nil {
			return nil, err
		}
		result.QualifiedType = inner
	case DescRange:
		rangeType, err := parseType(cursor)
		if err != nil {
			return nil, err
		}
		if err := cursor.ExpectChar(';', "range type descriptor"); err != nil {
			return nil, err
		}
		low, err := cursor.EatDodgyStabsIdentifier()
		if err != nil {
			return nil, err
		}
		if err := cursor.ExpectChar(';', "low range value"); err != nil {
			return nil, err
		}
		high, err := cursor.EatDodgyStabsIdentifier()
		if err != nil {
			return nil, err
		}
		if err := cursor.ExpectChar(';', "high range value"); err != nil {
			return nil, err
		}
		result.RangeType = rangeType
		result.RangeLow = low
		result.RangeHigh = high
	case DescStruct, DescUnion:
		result.IsStruct = descriptor == DescStruct

		size, ok := cursor.EatS64Literal()
		if !ok {
			return nil, newParseError(cursor, "cannot parse struct/union size")
		}
		result.StructSize = size

		if result.IsStruct && cursor.Peek() == '!' {
			cursor.EatChar()
			count, ok := cursor.EatS32Literal()
			if !ok {
				return nil, newParseError(cursor, "cannot parse base class count")
			}
			if err := cursor.ExpectChar(',', "base class section"); err != nil {
				return nil, err
			}
			for i := int32(0); i < count; i++ {
				cursor.EatChar() // direct/virtual inheritance marker, not stored.

				visibility, ok := cursor.EatChar()
				if !ok {
					return nil, newParseError(cursor, "cannot parse base class visibility")
				}
				offset, ok := cursor.EatS32Literal()
				if !ok {
					return nil, newParseError(cursor, "cannot parse base class offset")
				}
				if err := cursor.ExpectChar(',', "base class section"); err != nil {
					return nil, err
				}
				baseType, err := parseType(cursor)
				if err != nil {
					return nil, err
				}
				if err := cursor.ExpectChar(';', "base class section"); err != nil {
					return nil, err
				}
				result.BaseClasses = append(result.BaseClasses, BaseClass{
					Visibility: Visibility(visibility),
					Offset:     offset,
					Type:       baseType,
				})
			}
		}

		fields, err := parseFieldList(cursor)
		if err != nil {
			return nil, err
		}
		result.Fields = fields

		memberFunctions, err := parseMemberFunctions(cursor)
		if err != nil {
			return nil, err
		}
		result.MemberFunctions = memberFunctions
	case DescCrossReference:
		kind, ok := cursor.EatChar()
		if !ok {
			return nil, newParseError(cursor, "cannot parse cross reference type")
		}
		switch ForwardDeclaredKind(kind) {
		case ForwardEnum, ForwardStruct, ForwardUnion:
			result.CrossReferenceKind = ForwardDeclaredKind(kind)
		default:
			return nil, newExpectError(cursor, "e, s, or u", kind)
		}
		identifier, err := cursor.EatDodgyStabsIdentifier()
		if err != nil {
			return nil, err
		}
		result.CrossReferenceIdentifier = identifier
		name := identifier
		result.Name = &name
		if err := cursor.ExpectChar(':', "cross reference"); err != nil {
			return nil, err
		}
	case DescFloatingPointBuiltin:
		fpclass, ok := cursor.EatS32Literal()
		if !ok {
			return nil, newParseError(cursor, "cannot parse floating point built-in class")
		}
		if err := cursor.ExpectChar(';', "floating point builtin"); err != nil {
			return nil, err
		}
		bytes, ok := cursor.EatS32Literal()
		if !ok {
			return nil, newParseError(cursor, "cannot parse floating point built-in")
		}
		if err := cursor.ExpectChar(';', "floating point builtin"); err != nil {
			return nil, err
		}
		if _, ok := cursor.EatS32Literal(); !ok {
			return nil, newParseError(cursor, "cannot parse floating point built-in")
		}
		if err := cursor.ExpectChar(';', "floating point builtin"); err != nil {
			return nil, err
		}
		result.FPClass = fpclass
		result.FPBytes = bytes
	case DescMethod:
		if cursor.Peek() == '#' {
			cursor.EatChar()
			ret, err := parseType(cursor)
			if err != nil {
				return nil, err
			}
			result.ReturnType = ret
			if cursor.Peek() == ';' {
				cursor.EatChar()
			}
		} else {
			classType, err := parseType(cursor)
			if err != nil {
				return nil, err
			}
			result.MethodClassType = classType
			if err := cursor.ExpectChar(',', "method"); err != nil {
				return nil, err
			}
			ret, err := parseType(cursor)
			if err != nil {
				return nil, err
			}
			result.ReturnType = ret
			for !cursor.AtEnd() {
				if cursor.Peek() == ';' {
					cursor.EatChar()
					break
				}
				if err := cursor.ExpectChar(',', "method"); err != nil {
					return nil, err
				}
				paramType, err := parseType(cursor)
				if err != nil {
					return nil, err
				}
				result.MethodParameterTypes = append(result.MethodParameterTypes, paramType)
			}
		}
	case DescReference:
		value, err := parseType(cursor)
		if err != nil {
			return nil, err
		}
		result.ValueType = value
		result.IsPointer = false
	case DescPointer:
		value, err := parseType(cursor)
		if err != nil {
			return nil, err
		}
		result.ValueType = value
		result.IsPointer = true
	case DescSizeTypeAttribute:
		if isDigit(cursor.Peek()) || cursor.Peek() == '(' {
			result.Descriptor = DescPointerToNonStaticData
			classType, err := parseType(cursor)
			if err != nil {
				return nil, err
			}
			if err := cursor.ExpectChar(',', "pointer to non-static data member"); err != nil {
				return nil, err
			}
			memberType, err := parseType(cursor)
			if err != nil {
				return nil, err
			}
			result.MemberPointerClassType = classType
			result.MemberPointerMemberType = memberType
		} else {
			if err := cursor.ExpectChar('s', "type attribute"); err != nil {
				return nil, err
			}
			sizeBits, ok := cursor.EatS64Literal()
			if !ok {
				return nil, newParseError(cursor, "cannot parse type attribute")
			}
			if err := cursor.ExpectChar(';', "type attribute"); err != nil {
				return nil, err
			}
			inner, err := parseType(cursor)
			if err != nil {
				return nil, err
			}
			result.AttributeSizeBits = sizeBits
			result.AttributeType = inner
		}
	case DescBuiltin:
		typeID, ok := cursor.EatS64Literal()
		if !ok {
			return nil, newParseError(cursor, "cannot parse built-in")
		}
		if err := cursor.ExpectChar(';', "builtin"); err != nil {
			return nil, err
		}
		result.BuiltinTypeID = typeID
	default:
		return nil, newExpectError(cursor, "type descriptor", byte(descriptor))
	}

	return result, nil
}

func parseFieldList(cursor *Cursor) ([]Field, error) {
	var fields []Field

	for !cursor.AtEnd() {
		if cursor.Peek() == ';' {
			cursor.EatChar()
			break
		}

		beforeField := cursor.Offset()

		name, err := cursor.EatDodgyStabsIdentifier()
		if err != nil {
			return nil, err
		}
		field := Field{Name: name}

		if err := cursor.ExpectChar(':', "identifier"); err != nil {
			return nil, err
		}

		if cursor.Peek() == '/' {
			cursor.EatChar()
			visibility, ok := cursor.EatChar()
			if !ok {
				return nil, newParseError(cursor, "cannot parse field visibility")
			}
			switch Visibility(visibility) {
			case VisibilityNone, VisibilityPrivate, VisibilityProtected, VisibilityPublic, VisibilityPublicOptimizedOut:
				field.Visibility = Visibility(visibility)
			default:
				return nil, newExpectError(cursor, "valid field visibility", visibility)
			}
		}

		if cursor.Peek() == ':' {
			// Belongs to the enclosing level; rewind and stop.
			cursor.Seek(beforeField)
			break
		}

		fieldType, err := parseType(cursor)
		if err != nil {
			return nil, err
		}
		field.Type = fieldType

		switch {
		case len(field.Name) >= 1 && field.Name[0] == '$':
			// Virtual table pointer field.
			if err := cursor.ExpectChar(',', "field type"); err != nil {
				return nil, err
			}
			offsetBits, ok := cursor.EatS32Literal()
			if !ok {
				return nil, newParseError(cursor, "cannot parse field offset")
			}
			field.OffsetBits = offsetBits
			if err := cursor.ExpectChar(';', "field offset"); err != nil {
				return nil, err
			}
		case cursor.Peek() == ':':
			cursor.EatChar()
			field.IsStatic = true
			typeName, err := cursor.EatDodgyStabsIdentifier()
			if err != nil {
				return nil, err
			}
			field.TypeName = typeName
			if err := cursor.ExpectChar(';', "identifier"); err != nil {
				return nil, err
			}
		case cursor.Peek() == ',':
			cursor.EatChar()
			offsetBits, ok := cursor.EatS32Literal()
			if !ok {
				return nil, newParseError(cursor, "cannot parse field offset")
			}
			if err := cursor.ExpectChar(',', "field offset"); err != nil {
				return nil, err
			}
			sizeBits, ok := cursor.EatS32Literal()
			if !ok {
				return nil, newParseError(cursor, "cannot parse field size")
			}
			if err := cursor.ExpectChar(';', "field size"); err != nil {
				return nil, err
			}
			field.OffsetBits = offsetBits
			field.SizeBits = sizeBits
		default:
			return nil, newExpectError(cursor, "':' or ','", cursor.Peek())
		}

		fields = append(fields, field)
	}

	return fields, nil
}

func parseMemberFunctions(cursor *Cursor) ([]MemberFunctionSet, error) {
	// If the next character belongs to the enclosing field list (see
	// parseFieldList), there are no member functions here.
	if cursor.Peek() == ',' || cursor.Peek() == ':' {
		return nil, nil
	}

	var memberFunctions []MemberFunctionSet

	for !cursor.AtEnd() {
		if cursor.Peek() == ';' {
			cursor.EatChar()
			break
		}

		set := MemberFunctionSet{}

		name, ok := cursor.EatStabsIdentifier()
		if !ok {
			return nil, newParseError(cursor, "cannot parse member function name")
		}
		set.Name = name

		if err := cursor.ExpectChar(':', "member function"); err != nil {
			return nil, err
		}
		if err := cursor.ExpectChar(':', "member function"); err != nil {
			return nil, err
		}

		for !cursor.AtEnd() {
			if cursor.Peek() == ';' {
				cursor.EatChar()
				break
			}

			function := MemberFunction{}

			functionType, err := parseType(cursor)
			if err != nil {
				return nil, err
			}
			function.Type = functionType

			if err := cursor.ExpectChar(':', "member function"); err != nil {
				return nil, err
			}
			if _, err := cursor.EatDodgyStabsIdentifier(); err != nil {
				return nil, err
			}
			if err := cursor.ExpectChar(';', "member function"); err != nil {
				return nil, err
			}

			visibility, ok := cursor.EatChar()
			if !ok {
				return nil, newParseError(cursor, "cannot parse member function visibility")
			}
			switch Visibility(visibility) {
			case VisibilityPrivate, VisibilityProtected, VisibilityPublic, VisibilityPublicOptimizedOut:
				function.Visibility = Visibility(visibility)
			default:
				return nil, newExpectError(cursor, "valid member function visibility", visibility)
			}

			modifiers, ok := cursor.EatChar()
			if !ok {
				return nil, newParseError(cursor, "cannot parse member function modifiers")
			}
			switch modifiers {
			case 'A':
				function.IsConst, function.IsVolatile = false, false
			case 'B':
				function.IsConst, function.IsVolatile = true, false
			case 'C':
				function.IsConst, function.IsVolatile = false, true
			case 'D':
				function.IsConst, function.IsVolatile = true, true
			case '?', '.':
			default:
				return nil, newExpectError(cursor, "A, B, C, D, ? or .", modifiers)
			}

			flag, ok := cursor.EatChar()
			if !ok {
				return nil, newParseError(cursor, "cannot parse member function type")
			}
			switch flag {
			case '.':
				function.Modifier = ModifierNone
			case '?':
				function.Modifier = ModifierStatic
			case '*':
				vtableIndex, ok := cursor.EatS32Literal()
				if !ok {
					return nil, newParseError(cursor, "cannot parse vtable index")
				}
				if err := cursor.ExpectChar(';', "virtual member function"); err != nil {
					return nil, err
				}
				virtualType, err := parseType(cursor)
				if err != nil {
					return nil, err
				}
				if err := cursor.ExpectChar(';', "virtual member function"); err != nil {
					return nil, err
				}
				function.VtableIndex = vtableIndex
				function.VirtualType = virtualType
				function.Modifier = ModifierVirtual
			default:
				return nil, newExpectError(cursor, ". ? or *", flag)
			}

			set.Overloads = append(set.Overloads, function)
		}

		memberFunctions = append(memberFunctions, set)
	}

	return memberFunctions, nil
}
