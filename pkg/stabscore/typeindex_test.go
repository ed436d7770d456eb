package stabscore

import "testing"

func TestTypeIndexRecordIndexesNestedFieldType(t *testing.T) {
	nested := &Type{TypeNumber: TypeNumber{Type: 2}, HasBody: true, Descriptor: DescEnum}
	outer := &Type{
		TypeNumber: TypeNumber{Type: 1},
		HasBody:    true,
		IsRoot:     true,
		Descriptor: DescStruct,
		Fields:     []Field{{Name: "e", Type: nested}},
	}

	index := NewTypeIndex()
	index.Record(outer)

	if index.Lookup(TypeNumber{Type: 2}) != nested {
		t.Fatal("Record did not index a type nested inside a struct field")
	}
}

func TestTypeIndexRecordIndexesNestedArrayElementType(t *testing.T) {
	// Guards against regressing to the earlier, broken behavior: calling
	// Record only for IsRoot symbols silently drops every inline-declared
	// nested type number from the index.
	nested := &Type{TypeNumber: TypeNumber{Type: 2}, HasBody: true, Descriptor: DescEnum, IsRoot: false}
	outer := &Type{
		TypeNumber: TypeNumber{Type: 1},
		HasBody:    true,
		IsRoot:     true,
		Descriptor: DescArray,
		ArrayElementType: nested,
	}

	index := NewTypeIndex()
	index.Record(outer)

	if index.Lookup(TypeNumber{Type: 2}) == nil {
		t.Fatal("Record must index array element types, not just the array's own number")
	}
}

func TestTypeIndexLookupMiss(t *testing.T) {
	index := NewTypeIndex()
	if index.Lookup(TypeNumber{Type: 42}) != nil {
		t.Fatal("expected a nil result for an unrecorded type number")
	}
}
