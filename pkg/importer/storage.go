package importer

import (
	"github.com/jtang613/mdstabs/pkg/ccast"
	"github.com/jtang613/mdstabs/pkg/mdebug"
	"github.com/jtang613/mdstabs/pkg/stabscore"
)

// resolveStorage decodes the storage descriptor a symbol's value and
// StorageClass imply, following mdebug_importer.cpp's storage-class-driven
// variable placement: a register-class symbol lives in a register, a
// stack-relative class lives at a frame offset, and everything else is
// treated as a fixed address in whichever section its StorageClass names
// (spec.md §6, "Variable storage descriptors").
func resolveStorage(raw mdebug.Symbol, descriptor stabscore.SymbolDescriptor) ccast.StorageDescriptor {
	isByReference := descriptor == stabscore.ReferenceParameterA || descriptor == stabscore.ReferenceParameterV

	switch raw.StorageClass {
	case mdebug.ClassRegister, mdebug.ClassVarRegister:
		return ccast.RegisterStorage{DBXRegisterNumber: int32(raw.Value), IsByReference: isByReference}

	case mdebug.ClassVar, mdebug.ClassVariant:
		return ccast.StackStorage{StackPointerOffset: int32(raw.Value)}

	default:
		return ccast.GlobalStorage{Location: raw.StorageClass, Address: raw.Value}
	}
}
