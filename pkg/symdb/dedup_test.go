package symdb

import (
	"testing"

	"github.com/jtang613/mdstabs/pkg/ccast"
)

func structNode(fieldName string, offset int32) *ccast.Node {
	return &ccast.Node{
		Descriptor:     ccast.InlineStructOrUnion,
		IsStruct:       true,
		StructSizeBits: 32,
		Fields: []*ccast.Node{
			{Name: fieldName, RelativeOffsetBytes: offset, Descriptor: ccast.Builtin, BuiltinClass: ccast.BuiltinSignedInt32},
		},
	}
}

func TestDeduplicatorMergesIdenticalTypes(t *testing.T) {
	db := NewDatabase()
	dedup := NewDeduplicator(db)

	fileA := db.SourceFiles.Create(SourceFile{Path: "a.c"})
	fileB := db.SourceFiles.Create(SourceFile{Path: "b.c"})

	h1 := dedup.Insert(DataType{Name: "Point", Node: structNode("x", 0)}, fileA)
	h2 := dedup.Insert(DataType{Name: "Point", Node: structNode("x", 0)}, fileB)

	if h1 != h2 {
		t.Fatalf("expected identical structs across files to merge onto one handle, got %d and %d", h1, h2)
	}
	dt, _ := db.DataTypes.Get(h1)
	if len(dt.Files) != 2 {
		t.Fatalf("got %d files, want 2", len(dt.Files))
	}
	if db.DataTypes.Len() != 1 {
		t.Fatalf("got %d DataType rows, want 1", db.DataTypes.Len())
	}
}

func TestDeduplicatorFlagsConflictingTypes(t *testing.T) {
	db := NewDatabase()
	dedup := NewDeduplicator(db)

	fileA := db.SourceFiles.Create(SourceFile{Path: "a.c"})
	fileB := db.SourceFiles.Create(SourceFile{Path: "b.c"})

	h1 := dedup.Insert(DataType{Name: "Point", Node: structNode("x", 0)}, fileA)
	h2 := dedup.Insert(DataType{Name: "Point", Node: structNode("y", 0)}, fileB)

	if h1 == h2 {
		t.Fatalf("expected structurally different same-named types to stay distinct rows")
	}
	dt1, _ := db.DataTypes.Get(h1)
	dt2, _ := db.DataTypes.Get(h2)
	if !dt1.Node.Conflict || !dt2.Node.Conflict {
		t.Fatalf("expected both sides of the conflict to be flagged")
	}
}
