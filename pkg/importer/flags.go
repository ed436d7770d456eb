// Package importer drives a full import run: it turns a mdebug.File list
// into populated symdb.Database rows, threading configuration explicitly
// through a Context rather than via package-level state (spec.md §4.I,
// §6 "Configuration").
package importer

import "github.com/jtang613/mdstabs/pkg/ccast"

// Flags is the bitset configuring one import run, mirroring the original's
// ImporterFlags enum one flag at a time rather than collapsing them into
// booleans on Context, so callers can still pass them around and combine
// them the way the original CLI's flag parsing does (spec.md §6).
type Flags uint32

const NoImporterFlags Flags = 0

const (
	DontDeduplicateSymbols Flags = 1 << iota
	DontDeduplicateTypes
	DontDemangleNames
	IncludeGeneratedMemberFunctions
	NoAccessSpecifiers
	NoMemberFunctions
	StrictParsing
	TypedefAllEnums
	TypedefAllStructs
	TypedefAllUnions
)

// Has reports whether every bit in want is set in f.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}

// LowerFlags projects the bits ccast.LowerType cares about onto its own
// flag struct, so pkg/ccast never needs to import this package.
func (f Flags) LowerFlags() ccast.LowerFlags {
	return ccast.LowerFlags{
		NoAccessSpecifiers:               f.Has(NoAccessSpecifiers),
		NoMemberFunctions:                f.Has(NoMemberFunctions),
		IncludeGeneratedMemberFunctions:  f.Has(IncludeGeneratedMemberFunctions),
		TypedefAllEnums:                  f.Has(TypedefAllEnums),
		TypedefAllStructs:                f.Has(TypedefAllStructs),
		TypedefAllUnions:                 f.Has(TypedefAllUnions),
	}
}

// Context carries the flags and demangler for one import run. It is passed
// explicitly through every driver call instead of being read off a global,
// so two imports can run with different configuration in the same process
// (spec.md §6, "Configuration").
type Context struct {
	Flags     Flags
	Demangle  func(mangled string) (string, bool)
}
