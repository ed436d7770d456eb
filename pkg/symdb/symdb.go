package symdb

import "github.com/jtang613/mdstabs/pkg/ccast"

// SymbolSource records who imported a batch of symbols (one mdebug file or
// ELF symtab pass), so every other row can point back to it instead of
// duplicating importer metadata (spec.md §3, "SymbolSource").
type SymbolSource struct {
	Name string
}

// Section mirrors one mdebug.Section once imported, used to resolve a
// GlobalStorage's address to a human-readable section name.
type Section struct {
	Name    string
	Address uint32
	Size    uint32
}

// SourceFile is one N_SO-delimited translation unit, holding the handles of
// every top-level symbol it declared.
type SourceFile struct {
	Path            string
	FullPath        string
	Source          Handle[SymbolSource]
	Functions       []Handle[Function]
	GlobalVariables []Handle[GlobalVariable]
	DataTypes       []Handle[DataType]
}

// DataType is a deduplicated top-level type: a struct, union, enum, or
// typedef with a name of its own (spec.md §4.H, "DataType").
type DataType struct {
	Name   string
	Node   *ccast.Node
	Source Handle[SymbolSource]
	// Files lists every SourceFile this type was found identical in, the
	// product of successful deduplication (spec.md §4.H, "merge").
	Files []Handle[SourceFile]
}

// Function is one function definition or declaration.
type Function struct {
	Name         string
	Node         *ccast.Node
	Source       Handle[SymbolSource]
	AddressRange ccast.AddressRange
	Parameters   []Handle[ParameterVariable]
	Locals       []Handle[LocalVariable]
}

// GlobalVariable is one file- or program-scope variable.
type GlobalVariable struct {
	Name    string
	Node    *ccast.Node
	Source  Handle[SymbolSource]
	Address uint32
	Section Handle[Section]
	// External is false for a symbol classified as StaticGlobalVariable
	// (file-local, 'S' symbol descriptor in the STABS stream), true for a
	// plain GlobalVariable ('G').
	External bool
}

// Label is a code address with a name but no type, e.g. a branch target
// surviving in the symbol table.
type Label struct {
	Name    string
	Address uint32
	Source  Handle[SymbolSource]
}

// LocalVariable is one variable scoped to a function body.
type LocalVariable struct {
	Name     string
	Node     *ccast.Node
	Function Handle[Function]
}

// ParameterVariable is one formal parameter of a Function.
type ParameterVariable struct {
	Name     string
	Node     *ccast.Node
	Function Handle[Function]
}

// Database is the full handle-indexed symbol store an import run populates
// (spec.md §3, "SymbolDatabase"). The DataTypes, Functions and
// GlobalVariables tables each keep a NameIndex, so name-based merges during
// deduplication don't need a linear scan; the other tables have no name
// index.
type Database struct {
	Sources           Table[SymbolSource]
	Sections          Table[Section]
	SourceFiles       Table[SourceFile]
	DataTypes         Table[DataType]
	Functions         Table[Function]
	GlobalVariables   Table[GlobalVariable]
	Labels            Table[Label]
	LocalVariables    Table[LocalVariable]
	ParameterVariables Table[ParameterVariable]

	dataTypeNames       *NameIndex[DataType]
	functionNames       *NameIndex[Function]
	globalVariableNames *NameIndex[GlobalVariable]
}

// NewDatabase returns an empty database ready to import into.
func NewDatabase() *Database {
	return &Database{
		dataTypeNames:       newNameIndex[DataType](),
		functionNames:       newNameIndex[Function](),
		globalVariableNames: newNameIndex[GlobalVariable](),
	}
}

// CreateDataType creates a new DataType row and indexes it by name.
func (db *Database) CreateDataType(dt DataType) Handle[DataType] {
	h := db.DataTypes.Create(dt)
	db.dataTypeNames.add(dt.Name, h)
	return h
}

// CreateFunction creates a new Function row and indexes it by name.
func (db *Database) CreateFunction(fn Function) Handle[Function] {
	h := db.Functions.Create(fn)
	db.functionNames.add(fn.Name, h)
	return h
}

// CreateGlobalVariable creates a new GlobalVariable row and indexes it by
// name.
func (db *Database) CreateGlobalVariable(gv GlobalVariable) Handle[GlobalVariable] {
	h := db.GlobalVariables.Create(gv)
	db.globalVariableNames.add(gv.Name, h)
	return h
}

// DataTypesNamed returns every DataType handle previously created under
// name, in creation order.
func (db *Database) DataTypesNamed(name string) []Handle[DataType] {
	return db.dataTypeNames.All(name)
}

// FunctionsNamed returns every Function handle previously created under
// name, in creation order.
func (db *Database) FunctionsNamed(name string) []Handle[Function] {
	return db.functionNames.All(name)
}

// GlobalVariablesNamed returns every GlobalVariable handle previously
// created under name, in creation order.
func (db *Database) GlobalVariablesNamed(name string) []Handle[GlobalVariable] {
	return db.globalVariableNames.All(name)
}
