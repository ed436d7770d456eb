package symdb

import (
	"encoding/binary"

	"github.com/jtang613/mdstabs/pkg/ccast"
	"github.com/zeebo/xxh3"
)

// Deduplicator merges structurally identical DataTypes discovered across
// translation units into a single row, so a struct defined identically in
// every .c file that includes its header ends up as one DataType with many
// SourceFile back-references instead of one copy per file
// (spec.md §4.H, "Deduplicator").
//
// Before running the full CompareNodes walk on a same-named candidate pair,
// the deduplicator checks a structural hash computed over a subset of the
// fields CompareNodes inspects (descriptor, size, names, builtin class, enum
// constants and child nodes; offsets are not hashed). A hash mismatch is a guaranteed non-match and skips
// the walk entirely; a hash match is only a hint; two different types can
// collide, so CompareNodes is always still run on a hash match before
// anything is merged. The hash is never itself treated as proof of
// equality.
type Deduplicator struct {
	db *Database
	// hashes caches each DataType's structural digest so repeated
	// comparisons against the same handle don't re-walk its tree.
	hashes map[Handle[DataType]]uint64
}

// NewDeduplicator returns a deduplicator bound to db.
func NewDeduplicator(db *Database) *Deduplicator {
	return &Deduplicator{db: db, hashes: make(map[Handle[DataType]]uint64)}
}

// Insert adds a newly-imported DataType to the database, merging it into an
// existing same-named DataType if one compares structurally equal, or
// flagging both as conflicting if a same-named candidate compares unequal
// (spec.md §4.H, "merge" and "conflict").
func (d *Deduplicator) Insert(dt DataType, file Handle[SourceFile]) Handle[DataType] {
	candidates := d.db.DataTypesNamed(dt.Name)
	newHash := structuralHash(dt.Node)

	// Hash-matching candidates are checked first: a match is only a hint
	// (two different types can collide), so CompareNodes still runs before
	// any merge. A hash mismatch is a guaranteed non-match and is never
	// run through CompareNodes at all.
	for _, candidate := range candidates {
		existing, ok := d.db.DataTypes.Get(candidate)
		if !ok || d.hashOf(candidate, existing.Node) != newHash {
			continue
		}
		if reason := CompareNodes(existing.Node, dt.Node); reason == ReasonNone {
			existing.Files = append(existing.Files, file)
			d.db.DataTypes.Set(candidate, existing)
			return candidate
		}
	}

	// No hash-matching candidate merged. If any same-named candidate
	// exists at all, this is a genuine conflict: the two declarations
	// share a name but differ. One CompareNodes call against the first
	// candidate gives a representative CompareFailReason without re-
	// running the walk against every other same-named row.
	if len(candidates) > 0 {
		first, _ := d.db.DataTypes.Get(candidates[0])
		reason := CompareNodes(first.Node, dt.Node)
		first.Node.Conflict = true
		first.Node.CompareFailReason = string(reason)
		d.db.DataTypes.Set(candidates[0], first)
		dt.Node.Conflict = true
		dt.Node.CompareFailReason = string(reason)
	}

	dt.Files = append(dt.Files, file)
	h := d.db.CreateDataType(dt)
	d.hashes[h] = newHash
	return h
}

func (d *Deduplicator) hashOf(h Handle[DataType], node *ccast.Node) uint64 {
	if cached, ok := d.hashes[h]; ok {
		return cached
	}
	hash := structuralHash(node)
	d.hashes[h] = hash
	return hash
}

// structuralHash digests a subset of the fields CompareNodes would inspect
// (offsets and several variant flags are left out), so two nodes that would
// compare equal hash equal, and the prefilter never produces a false
// negative (spec.md §4.H; DESIGN.md, "xxh3 prefilter").
func structuralHash(node *ccast.Node) uint64 {
	h := xxh3.New()
	hashNode(h, node, 0)
	return h.Sum64()
}

func hashNode(h *xxh3.Hasher, node *ccast.Node, depth int) {
	if node == nil || depth > maxHashDepth {
		h.Write([]byte{0})
		return
	}
	var buf [9]byte
	buf[0] = byte(node.Descriptor)
	binary.LittleEndian.PutUint64(buf[1:], uint64(node.SizeBits))
	h.Write(buf[:])
	h.Write([]byte(node.Name))
	h.Write([]byte(node.TypeName))

	switch node.Descriptor {
	case ccast.Array:
		hashNode(h, node.ElementType, depth+1)
	case ccast.Builtin:
		h.Write([]byte{byte(node.BuiltinClass)})
	case ccast.BitField:
		hashNode(h, node.BitfieldUnderlyingType, depth+1)
	case ccast.Function:
		hashNode(h, node.ReturnType, depth+1)
		for _, p := range node.Parameters {
			hashNode(h, p, depth+1)
		}
	case ccast.InlineEnum:
		for _, c := range node.Constants {
			var cb [8]byte
			binary.LittleEndian.PutUint64(cb[:], uint64(c.Value))
			h.Write(cb[:])
			h.Write([]byte(c.Name))
		}
	case ccast.InlineStructOrUnion:
		for _, b := range node.BaseClasses {
			hashNode(h, b.Type, depth+1)
		}
		for _, f := range node.Fields {
			hashNode(h, f, depth+1)
		}
		for _, m := range node.MemberFunctions {
			hashNode(h, m, depth+1)
		}
	case ccast.Pointer, ccast.Reference:
		hashNode(h, node.ValueType, depth+1)
	case ccast.PointerToDataMember:
		hashNode(h, node.ClassType, depth+1)
		hashNode(h, node.MemberType, depth+1)
	}
}

// maxHashDepth mirrors maxLoweringDepth: a cyclic or pathologically deep
// type graph truncates its hash rather than spinning forever. A truncated
// hash is still only a prefilter hint, so this never produces an incorrect
// merge.
const maxHashDepth = 1000
