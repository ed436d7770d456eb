package ccast

import (
	"testing"

	"github.com/jtang613/mdstabs/pkg/stabscore"
)

func TestClassifyRangeCommonIntegerBounds(t *testing.T) {
	cases := []struct {
		low, high string
		want      BuiltinClass
	}{
		{"0", "255", BuiltinUnsignedInt8},
		{"-128", "127", BuiltinSignedInt8},
		{"-32768", "32767", BuiltinSignedInt16},
		{"0", "1", BuiltinBool8},
		{"-2147483648", "2147483647", BuiltinSignedInt32},
	}
	for _, c := range cases {
		got, ok := classifyRange(c.low, c.high)
		if !ok {
			t.Errorf("classifyRange(%q, %q) not recognized", c.low, c.high)
			continue
		}
		if got != c.want {
			t.Errorf("classifyRange(%q, %q) = %d, want %d", c.low, c.high, got, c.want)
		}
	}
}

func TestClassifyRangeUnrecognizedBounds(t *testing.T) {
	if _, ok := classifyRange("3", "9"); ok {
		t.Fatal("expected an arbitrary bound pair to be unrecognized")
	}
}

func TestLowerTypeEnum(t *testing.T) {
	stabsType := &stabscore.Type{
		Descriptor: stabscore.DescEnum,
		EnumFields: []stabscore.EnumField{{Value: 0, Name: "RED"}, {Value: 1, Name: "GREEN"}},
	}
	index := stabscore.NewTypeIndex()
	node := LowerType(stabsType, index, LowerFlags{})
	if node.Descriptor != InlineEnum {
		t.Fatalf("got descriptor %v, want InlineEnum", node.Descriptor)
	}
	if len(node.Constants) != 2 || node.Constants[0].Name != "RED" || node.Constants[1].Name != "GREEN" {
		t.Fatalf("got constants %+v", node.Constants)
	}
}

func TestLowerTypeBadLookupProducesPlaceholder(t *testing.T) {
	stabsType := &stabscore.Type{Descriptor: stabscore.DescTypeReference, TypeNumber: stabscore.TypeNumber{Type: 99}}
	index := stabscore.NewTypeIndex()
	node := LowerType(stabsType, index, LowerFlags{})
	if node.Descriptor != TypeName || node.TypeNameSource != SourceStabsTypeNumber {
		t.Fatalf("got %+v, want a CCC_BADTYPELOOKUP placeholder", node)
	}
}

func TestLowerTypeExplicitBodiedAlias(t *testing.T) {
	target := &stabscore.Type{Descriptor: stabscore.DescEnum, EnumFields: []stabscore.EnumField{{Value: 0, Name: "RED"}}}
	alias := &stabscore.Type{
		Descriptor: stabscore.DescTypeReference,
		TypeNumber: stabscore.TypeNumber{Type: 1},
		Reference:  target,
	}
	node := LowerType(alias, stabscore.NewTypeIndex(), LowerFlags{})
	if node.Descriptor != InlineEnum {
		t.Fatalf("got descriptor %v, want InlineEnum resolved straight from Reference, no index lookup", node.Descriptor)
	}
}

func TestLowerTypeSelfReferenceIsVoid(t *testing.T) {
	number := stabscore.TypeNumber{Type: 1}
	self := &stabscore.Type{Descriptor: stabscore.DescTypeReference, TypeNumber: number}
	self.Reference = &stabscore.Type{TypeNumber: number}
	node := LowerType(self, stabscore.NewTypeIndex(), LowerFlags{})
	if node.Descriptor != TypeName || node.TypeName != "void" {
		t.Fatalf("got %+v, want a void TypeName", node)
	}
}

func TestLowerTypeUnclassifiableRangeDiscardedNearRoot(t *testing.T) {
	rng := &stabscore.Type{Descriptor: stabscore.DescRange, RangeLow: "3", RangeHigh: "9"}
	node := LowerType(rng, stabscore.NewTypeIndex(), LowerFlags{})
	if node != nil {
		t.Fatalf("got %+v, want nil: an unclassifiable range at depth 0 must be discarded, not placeheld", node)
	}
}

func TestLowerTypeRecursionGuard(t *testing.T) {
	self := &stabscore.Type{Descriptor: stabscore.DescPointer}
	self.ValueType = self
	node := LowerType(self, stabscore.NewTypeIndex(), LowerFlags{})
	// The chain terminates at maxLoweringDepth with a placeholder rather
	// than recursing forever; just confirm it returns at all.
	if node == nil {
		t.Fatal("expected a non-nil node even for a self-referential pointer")
	}
}
