// Package mdebug defines the raw input contract this module consumes: a
// flat, already-framed view of an ECOFF .mdebug debug section as produced by
// an ELF container reader and an .mdebug header decoder. Neither of those
// two steps is implemented here — they are external collaborators (see
// spec.md, "Out of scope") — but the core still needs a concrete Go type to
// consume, so this package fixes the shape of that boundary.
package mdebug

// StorageType mirrors the mdebug st_* storage types that classify what kind
// of thing a raw symbol names.
type StorageType int32

const (
	StorageNil StorageType = iota
	StorageGlobal
	StorageStatic
	StorageParam
	StorageLocal
	StorageLabel
	StorageProc
	StorageBlock
	StorageEnd
	StorageMember
	StorageTypedef
	StorageFile
	StorageRegister
	StorageForward
	StorageStaticProc
	StorageConstant
)

// StorageClass mirrors the mdebug sc_* storage classes, which say which
// section a symbol's value is relative to.
type StorageClass int32

const (
	ClassNil StorageClass = iota
	ClassText
	ClassData
	ClassBss
	ClassRegister
	ClassAbs
	ClassUndefined
	ClassCdbLocal
	ClassBits
	ClassCdbSystem
	ClassDbx
	ClassRegImage
	ClassInfo
	ClassUserStruct
	ClassSData
	ClassSBss
	ClassRData
	ClassVar
	ClassCommon
	ClassSCommon
	ClassVarRegister
	ClassVariant
	ClassSUndefined
	ClassInit
	ClassBasReg
	ClassXData
	ClassPData
	ClassFini
)

// STABS codes of interest, in the conventional N_* namespace. Only the
// subset the classifier dispatches on (spec.md §4.D, §6) is named; anything
// else is an "unknown STABS code" and is dropped with a warning.
const (
	NGSYM  = 0x20
	NFUN   = 0x24
	NSTSYM = 0x26
	NLCSYM = 0x28
	NRSYM  = 0x40
	NLSYM  = 0x80
	NPSYM  = 0xa0
	NSO    = 0x64
	NSOL   = 0x84
	NLBRAC = 0xc0
	NRBRAC = 0xe0
	NBINCL = 0x82
	NOPT   = 0x3c
)

// Symbol is one raw record from the mdebug local or external symbol table.
type Symbol struct {
	Value        uint32
	StorageType  StorageType
	StorageClass StorageClass
	// Index carries the auxiliary "index" or "code" field; for STABS
	// records this is the N_* code, for non-STABS records it is the
	// symbol's index into the auxiliary table.
	Index   int32
	IsStabs bool
	String  string
}

// File is one N_SO-delimited translation unit worth of raw symbols, plus
// the metadata the .mdebug file descriptor carries about it.
type File struct {
	Name        string
	TextAddress uint32
	Symbols     []Symbol
}

// Section describes one named region of the object's address space, used to
// resolve GlobalStorage locations to sections for presentation.
type Section struct {
	Name    string
	Address uint32
	Size    uint32
}
