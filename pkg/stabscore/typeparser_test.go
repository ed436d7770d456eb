package stabscore

import "testing"

func TestParseTopLevelTypeReference(t *testing.T) {
	cursor := NewCursor("12")
	typ, err := ParseTopLevelType(cursor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ.Descriptor != DescTypeReference {
		t.Fatalf("got descriptor %q, want DescTypeReference", typ.Descriptor)
	}
	if typ.TypeNumber != (TypeNumber{Type: 12}) {
		t.Fatalf("got TypeNumber %+v, want {Type:12}", typ.TypeNumber)
	}
	if typ.HasBody {
		t.Fatalf("a bare type number reference must not have a body")
	}
}

func TestParseTopLevelTypeEnum(t *testing.T) {
	cursor := NewCursor("1=e5:2,7:1,;")
	typ, err := ParseTopLevelType(cursor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ.Descriptor != DescEnum {
		t.Fatalf("got descriptor %q, want DescEnum", typ.Descriptor)
	}
	want := []EnumField{{Value: 2, Name: "5"}, {Value: 1, Name: "7"}}
	if len(typ.EnumFields) != len(want) {
		t.Fatalf("got %d enum fields, want %d", len(typ.EnumFields), len(want))
	}
	for i, f := range typ.EnumFields {
		if f != want[i] {
			t.Errorf("field %d = %+v, want %+v", i, f, want[i])
		}
	}
	if !cursor.AtEnd() {
		t.Fatalf("cursor not fully consumed, remainder %q", cursor.Remainder())
	}
}

func TestParseTopLevelTypePointer(t *testing.T) {
	cursor := NewCursor("1=*2")
	typ, err := ParseTopLevelType(cursor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ.Descriptor != DescPointer {
		t.Fatalf("got descriptor %q, want DescPointer", typ.Descriptor)
	}
	if typ.ValueType == nil || typ.ValueType.TypeNumber != (TypeNumber{Type: 2}) {
		t.Fatalf("got value type %+v, want a reference to type 2", typ.ValueType)
	}
}

func TestParseTopLevelTypeAnonymousBodyTruncated(t *testing.T) {
	cursor := NewCursor("e1:0,")
	_, err := ParseTopLevelType(cursor)
	if err == nil {
		t.Fatal("expected a parse error for an unterminated enum")
	}
}
