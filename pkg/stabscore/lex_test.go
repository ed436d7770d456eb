package stabscore

import "testing"

func TestEatS32Literal(t *testing.T) {
	cases := []struct {
		input string
		want  int32
		ok    bool
	}{
		{"123", 123, true},
		{"-45", -45, true},
		{"+7", 7, true},
		{"", 0, false},
		{"x", 0, false},
	}
	for _, c := range cases {
		cursor := NewCursor(c.input)
		got, ok := cursor.EatS32Literal()
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("EatS32Literal(%q) = (%d, %v), want (%d, %v)", c.input, got, ok, c.want, c.ok)
		}
	}
}

func TestEatStabsIdentifierStopsAtColon(t *testing.T) {
	cursor := NewCursor("Foo:rest")
	name, ok := cursor.EatStabsIdentifier()
	if !ok || name != "Foo" {
		t.Fatalf("got (%q, %v), want (%q, true)", name, ok, "Foo")
	}
	if cursor.Peek() != ':' {
		t.Fatalf("cursor left at %q, want ':'", cursor.Peek())
	}
}

func TestEatDodgyStabsIdentifierToleratesTemplateColon(t *testing.T) {
	cursor := NewCursor("vector<std::pair<int,int>>:1")
	name, err := cursor.EatDodgyStabsIdentifier()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "vector<std::pair<int,int>>"
	if name != want {
		t.Fatalf("got %q, want %q", name, want)
	}
}

func TestEatDodgyStabsIdentifierTruncation(t *testing.T) {
	cursor := NewCursor("unterminated")
	_, err := cursor.EatDodgyStabsIdentifier()
	if err == nil {
		t.Fatal("expected a truncation error")
	}
	parseErr, ok := err.(*ParseError)
	if !ok || !parseErr.Truncation {
		t.Fatalf("expected a truncation ParseError, got %#v", err)
	}
}

func TestSeekAndRemainder(t *testing.T) {
	cursor := NewCursor("abcdef")
	cursor.EatChar()
	cursor.EatChar()
	pos := cursor.Offset()
	cursor.EatChar()
	cursor.Seek(pos)
	if got := cursor.Remainder(); got != "cdef" {
		t.Fatalf("Remainder() = %q, want %q", got, "cdef")
	}
}
