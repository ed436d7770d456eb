package importer

import (
	"testing"

	"github.com/jtang613/mdstabs/pkg/ccast"
	"github.com/jtang613/mdstabs/pkg/mdebug"
	"github.com/jtang613/mdstabs/pkg/stabscore"
)

func TestResolveStorageRegister(t *testing.T) {
	raw := mdebug.Symbol{Value: 4, StorageClass: mdebug.ClassRegister}
	got := resolveStorage(raw, stabscore.RegisterVariable)
	reg, ok := got.(ccast.RegisterStorage)
	if !ok {
		t.Fatalf("got %T, want ccast.RegisterStorage", got)
	}
	if reg.DBXRegisterNumber != 4 || reg.IsByReference {
		t.Fatalf("got %+v", reg)
	}
}

func TestResolveStorageStack(t *testing.T) {
	value := uint32(0xfffffff0) // a negative frame offset, stored as its two's-complement bit pattern
	raw := mdebug.Symbol{Value: value, StorageClass: mdebug.ClassVar}
	got := resolveStorage(raw, stabscore.ValueParameter)
	stack, ok := got.(ccast.StackStorage)
	if !ok {
		t.Fatalf("got %T, want ccast.StackStorage", got)
	}
	if stack.StackPointerOffset != int32(value) {
		t.Fatalf("got offset %d", stack.StackPointerOffset)
	}
}

func TestResolveStorageGlobal(t *testing.T) {
	raw := mdebug.Symbol{Value: 0x1000, StorageClass: mdebug.ClassBss}
	got := resolveStorage(raw, stabscore.StaticGlobalVariable)
	global, ok := got.(ccast.GlobalStorage)
	if !ok {
		t.Fatalf("got %T, want ccast.GlobalStorage", got)
	}
	if global.Location != mdebug.ClassBss || global.Address != 0x1000 {
		t.Fatalf("got %+v", global)
	}
}

func TestResolveStorageReferenceParameterIsByReference(t *testing.T) {
	raw := mdebug.Symbol{Value: 2, StorageClass: mdebug.ClassRegister}
	got := resolveStorage(raw, stabscore.ReferenceParameterA)
	reg, ok := got.(ccast.RegisterStorage)
	if !ok || !reg.IsByReference {
		t.Fatalf("got %+v, want IsByReference set for a REFERENCE_PARAMETER_A symbol", got)
	}
}
