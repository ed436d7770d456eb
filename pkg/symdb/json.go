package symdb

import "github.com/jtang613/mdstabs/pkg/ccast"

// ExportSchemaVersion is written into every JSON export's "version" field.
// Consumers must reject a document whose version they don't recognize
// rather than guess at a compatible subset (spec.md §6, "Outputs").
const ExportSchemaVersion = 8

// Export is the top-level JSON document produced by the json command
// (spec.md §6, "Outputs").
type Export struct {
	Version         int              `json:"version"`
	Files           []ExportFile     `json:"files"`
	DataTypes       []ExportDataType `json:"data_types"`
	Functions       []ExportSymbol   `json:"functions"`
	GlobalVariables []ExportSymbol   `json:"global_variables"`
}

// ExportFile is one SourceFile row.
type ExportFile struct {
	Path     string `json:"path"`
	FullPath string `json:"full_path"`
}

// ExportDataType is one DataType row, with the paths of every file it was
// found in so a consumer can tell a genuinely-shared type from a one-off.
type ExportDataType struct {
	Name  string      `json:"name"`
	Node  *ccast.Node `json:"ast"`
	Files []string    `json:"files"`
}

// ExportSymbol is one Function or GlobalVariable row.
type ExportSymbol struct {
	Name string      `json:"name"`
	Node *ccast.Node `json:"ast"`
}

// ToExport flattens db into the versioned export document.
func (db *Database) ToExport() Export {
	export := Export{Version: ExportSchemaVersion}

	for _, h := range db.SourceFiles.Range() {
		f, _ := db.SourceFiles.Get(h)
		export.Files = append(export.Files, ExportFile{Path: f.Path, FullPath: f.FullPath})
	}

	for _, h := range db.DataTypes.Range() {
		dt, _ := db.DataTypes.Get(h)
		var files []string
		for _, fh := range dt.Files {
			f, ok := db.SourceFiles.Get(fh)
			if ok {
				files = append(files, f.Path)
			}
		}
		export.DataTypes = append(export.DataTypes, ExportDataType{Name: dt.Name, Node: dt.Node, Files: files})
	}

	for _, h := range db.Functions.Range() {
		fn, _ := db.Functions.Get(h)
		export.Functions = append(export.Functions, ExportSymbol{Name: fn.Name, Node: fn.Node})
	}

	for _, h := range db.GlobalVariables.Range() {
		gv, _ := db.GlobalVariables.Get(h)
		export.GlobalVariables = append(export.GlobalVariables, ExportSymbol{Name: gv.Name, Node: gv.Node})
	}

	return export
}
