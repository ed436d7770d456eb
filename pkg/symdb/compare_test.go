package symdb

import (
	"testing"

	"github.com/jtang613/mdstabs/pkg/ccast"
)

func TestCompareNodesEqualBuiltins(t *testing.T) {
	a := &ccast.Node{Descriptor: ccast.Builtin, BuiltinClass: ccast.BuiltinSignedInt32}
	b := &ccast.Node{Descriptor: ccast.Builtin, BuiltinClass: ccast.BuiltinSignedInt32}
	if reason := CompareNodes(a, b); reason != ReasonNone {
		t.Fatalf("got %q, want equal", reason)
	}
}

func TestCompareNodesDifferentBuiltinClass(t *testing.T) {
	a := &ccast.Node{Descriptor: ccast.Builtin, BuiltinClass: ccast.BuiltinSignedInt32}
	b := &ccast.Node{Descriptor: ccast.Builtin, BuiltinClass: ccast.BuiltinUnsignedInt32}
	if reason := CompareNodes(a, b); reason != ReasonBuiltinClass {
		t.Fatalf("got %q, want ReasonBuiltinClass", reason)
	}
}

func TestCompareNodesDifferentDescriptor(t *testing.T) {
	a := &ccast.Node{Descriptor: ccast.Builtin}
	b := &ccast.Node{Descriptor: ccast.Pointer}
	if reason := CompareNodes(a, b); reason != ReasonDescriptor {
		t.Fatalf("got %q, want ReasonDescriptor", reason)
	}
}

func TestCompareNodesStructFieldCountMismatch(t *testing.T) {
	a := &ccast.Node{Descriptor: ccast.InlineStructOrUnion, Fields: []*ccast.Node{{Descriptor: ccast.Builtin}}}
	b := &ccast.Node{Descriptor: ccast.InlineStructOrUnion}
	if reason := CompareNodes(a, b); reason != ReasonFieldsSize {
		t.Fatalf("got %q, want ReasonFieldsSize", reason)
	}
}
