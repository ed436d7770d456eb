package stabscore

import "testing"

func TestParseSymbolGlobalVariable(t *testing.T) {
	symbol, err := ParseSymbol("counter:G1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if symbol.Name != "counter" {
		t.Fatalf("got name %q, want %q", symbol.Name, "counter")
	}
	if symbol.Descriptor != GlobalVariable {
		t.Fatalf("got descriptor %q, want GlobalVariable", symbol.Descriptor)
	}
}

func TestParseSymbolLocalVariableHasNoDescriptorChar(t *testing.T) {
	symbol, err := ParseSymbol("i:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if symbol.Descriptor != LocalVariable {
		t.Fatalf("got descriptor %q, want LocalVariable", symbol.Descriptor)
	}
}

func TestParseSymbolTypeNamePropagatesOntoType(t *testing.T) {
	symbol, err := ParseSymbol("MyEnum:T1=e5:0,;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if symbol.Descriptor != EnumStructOrTypeTag {
		t.Fatalf("got descriptor %q, want EnumStructOrTypeTag", symbol.Descriptor)
	}
	if symbol.Type.Name == nil || *symbol.Type.Name != "MyEnum" {
		t.Fatalf("type name not propagated: %+v", symbol.Type.Name)
	}
	if symbol.Type.IsTypedef {
		t.Fatalf("a 'T' descriptor names a tag, not a typedef")
	}
	if !symbol.Type.IsRoot {
		t.Fatalf("a top-level named type must be marked IsRoot")
	}
}

func TestParseSymbolRejectsUnknownDescriptor(t *testing.T) {
	_, err := ParseSymbol("x:Z1")
	if err == nil {
		t.Fatal("expected an error for an unrecognized symbol descriptor")
	}
}

func TestParseSymbolRejectsTrailingData(t *testing.T) {
	_, err := ParseSymbol("x:G1extra")
	if err == nil {
		t.Fatal("expected an error for trailing data after the type")
	}
}
