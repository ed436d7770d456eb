package importer

import (
	"github.com/jtang613/mdstabs/pkg/ccast"
	"github.com/jtang613/mdstabs/pkg/mdebug"
	"github.com/jtang613/mdstabs/pkg/stabscore"
	"github.com/jtang613/mdstabs/pkg/symdb"
	"github.com/pkg/errors"
)

// Driver runs one import: mdebug.File/mdebug.Section in, a populated
// symdb.Database out (spec.md §4.I, "Driver"). A Driver is not reused
// across unrelated object files; construct one per import run.
type Driver struct {
	ctx    Context
	db     *symdb.Database
	dedup  *symdb.Deduplicator
	source symdb.Handle[symdb.SymbolSource]
}

// NewDriver returns a driver bound to ctx, with a fresh, empty database.
func NewDriver(ctx Context) *Driver {
	db := symdb.NewDatabase()
	return &Driver{ctx: ctx, db: db, dedup: symdb.NewDeduplicator(db)}
}

// Database returns the database this driver has been populating.
func (d *Driver) Database() *symdb.Database {
	return d.db
}

// ImportSymbolTable imports every file and section of one mdebug symbol
// table (spec.md §4.I, import_symbol_table). A STABS string that fails to
// parse is dropped from its file and the import goes on, unless
// StrictParsing is set: then the first file with any such failure stops the
// run and its error is returned. No other error is returned.
func (d *Driver) ImportSymbolTable(name string, files []mdebug.File, sections []mdebug.Section) error {
	d.source = d.db.Sources.Create(symdb.SymbolSource{Name: name})

	for _, section := range sections {
		d.db.Sections.Create(symdb.Section{Name: section.Name, Address: section.Address, Size: section.Size})
	}

	for _, file := range files {
		if err := d.importFile(file); err != nil {
			return errors.Wrapf(err, "importing file %q", file.Name)
		}
	}

	// No pass links out-of-line member function definitions back to their
	// declarations inside the owning class; see DESIGN.md.
	return nil
}

func (d *Driver) importFile(file mdebug.File) error {
	parsed, warnings := stabscore.ClassifySymbols(file.Symbols)
	if len(warnings) > 0 && d.ctx.Flags.Has(StrictParsing) {
		return errors.Errorf("%d symbol(s) failed to classify, first: %s (%q)", len(warnings), warnings[0].Message, warnings[0].Symbol.String)
	}

	if !d.ctx.Flags.Has(DontDeduplicateSymbols) {
		stabscore.MarkDuplicateSymbols(parsed)
	}

	index := stabscore.NewTypeIndex()
	for _, p := range parsed {
		if p.Kind == stabscore.KindNameColonType && p.NameColonType != nil && p.NameColonType.Type != nil {
			index.Record(p.NameColonType.Type)
		}
	}

	fileHandle := d.db.SourceFiles.Create(symdb.SourceFile{Path: file.Name, FullPath: file.Name, Source: d.source})
	lowerFlags := d.ctx.Flags.LowerFlags()

	var currentFunction *symdb.Function
	var currentFunctionHandle symdb.Handle[symdb.Function]

	flush := func() {
		if currentFunction == nil {
			return
		}
		d.db.Functions.Set(currentFunctionHandle, *currentFunction)
		sf, _ := d.db.SourceFiles.Get(fileHandle)
		sf.Functions = append(sf.Functions, currentFunctionHandle)
		d.db.SourceFiles.Set(fileHandle, sf)
		currentFunction = nil
	}

	for _, p := range parsed {
		switch p.Kind {
		case stabscore.KindFunctionEnd:
			flush()

		case stabscore.KindNameColonType:
			symbol := p.NameColonType
			if symbol == nil || symbol.Type == nil {
				continue
			}
			node := ccast.LowerType(symbol.Type, index, lowerFlags)
			if node == nil {
				// The type tree bottomed out at an unclassifiable
				// Range/Builtin with nothing above depth 2 to fall back
				// on; the whole symbol is discarded (spec.md §4.F).
				continue
			}
			node.Name = d.demangle(symbol.Name)

			switch {
			case symbol.Descriptor.IsTypeNaming():
				d.insertDataType(symbol.Name, node, fileHandle)

			case symbol.Descriptor.IsFunctionDescriptor():
				flush()
				currentFunction = &symdb.Function{Name: node.Name, Node: node, Source: d.source}
				currentFunctionHandle = d.db.CreateFunction(*currentFunction)

			case symbol.Descriptor == stabscore.GlobalVariable || symbol.Descriptor == stabscore.StaticGlobalVariable:
				node.Storage = resolveStorage(*p.Raw, symbol.Descriptor)
				gv := symdb.GlobalVariable{
					Name:     node.Name,
					Node:     node,
					Source:   d.source,
					Address:  p.Raw.Value,
					External: symbol.Descriptor == stabscore.GlobalVariable,
				}
				handle := d.db.CreateGlobalVariable(gv)
				sf, _ := d.db.SourceFiles.Get(fileHandle)
				sf.GlobalVariables = append(sf.GlobalVariables, handle)
				d.db.SourceFiles.Set(fileHandle, sf)

			case currentFunction != nil:
				node.Storage = resolveStorage(*p.Raw, symbol.Descriptor)
				local := d.db.LocalVariables.Create(symdb.LocalVariable{Name: node.Name, Node: node, Function: currentFunctionHandle})
				currentFunction.Locals = append(currentFunction.Locals, local)
			}
		}
	}
	flush()

	return nil
}

func (d *Driver) insertDataType(name string, node *ccast.Node, file symdb.Handle[symdb.SourceFile]) {
	if d.ctx.Flags.Has(DontDeduplicateTypes) {
		handle := d.db.CreateDataType(symdb.DataType{Name: name, Node: node, Source: d.source, Files: []symdb.Handle[symdb.SourceFile]{file}})
		sf, _ := d.db.SourceFiles.Get(file)
		sf.DataTypes = append(sf.DataTypes, handle)
		d.db.SourceFiles.Set(file, sf)
		return
	}
	handle := d.dedup.Insert(symdb.DataType{Name: name, Node: node, Source: d.source}, file)
	sf, _ := d.db.SourceFiles.Get(file)
	sf.DataTypes = append(sf.DataTypes, handle)
	d.db.SourceFiles.Set(file, sf)
}

func (d *Driver) demangle(name string) string {
	if d.ctx.Flags.Has(DontDemangleNames) || d.ctx.Demangle == nil {
		return name
	}
	if demangled, ok := d.ctx.Demangle(name); ok {
		return demangled
	}
	return name
}
