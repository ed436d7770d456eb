// Package symdb holds the deduplicated, handle-indexed store that an import
// run populates and that presentation layers read back from.
package symdb

// Handle identifies one row of a Table[T] by its dense, never-reused index.
// The zero Handle is invalid; valid handles start at 1, mirroring the
// original's SymbolHandle<T> sentinel-on-max-uint32 design inverted onto
// Go's natural zero value (spec.md §3, "SymbolHandle").
type Handle[T any] uint32

// Valid reports whether h was returned by a Table.Create call rather than
// being a zero value.
func (h Handle[T]) Valid() bool {
	return h != 0
}

// Table is a dense, append-only store of T, addressed by Handle[T]. Rows are
// never removed or reindexed: a handle, once issued, stays valid for the
// lifetime of the database (spec.md §3, "Lifecycles").
type Table[T any] struct {
	rows []T
}

// Create appends value and returns the handle addressing it.
func (t *Table[T]) Create(value T) Handle[T] {
	t.rows = append(t.rows, value)
	return Handle[T](len(t.rows))
}

// Get dereferences h, or returns the zero T and ok=false if h is invalid or
// out of range.
func (t *Table[T]) Get(h Handle[T]) (value T, ok bool) {
	if !h.Valid() || int(h) > len(t.rows) {
		return value, false
	}
	return t.rows[h-1], true
}

// Set overwrites the row addressed by h. h must be valid and in range.
func (t *Table[T]) Set(h Handle[T], value T) {
	t.rows[h-1] = value
}

// Range returns every handle in creation order, for full-table iteration
// (e.g. building the JSON export or scanning for dedup candidates).
func (t *Table[T]) Range() []Handle[T] {
	out := make([]Handle[T], len(t.rows))
	for i := range t.rows {
		out[i] = Handle[T](i + 1)
	}
	return out
}

// Len returns the number of rows created so far.
func (t *Table[T]) Len() int {
	return len(t.rows)
}

// NameIndex is a multi-map from a symbol's primary name to every handle
// created under that name, supporting the "first handle with this name" and
// "all handles with this name" queries a name-based merge needs
// (spec.md §4.H).
type NameIndex[T any] struct {
	byName map[string][]Handle[T]
}

func newNameIndex[T any]() *NameIndex[T] {
	return &NameIndex[T]{byName: make(map[string][]Handle[T])}
}

func (idx *NameIndex[T]) add(name string, h Handle[T]) {
	idx.byName[name] = append(idx.byName[name], h)
}

// First returns the earliest-created handle filed under name, or zero if
// none exists.
func (idx *NameIndex[T]) First(name string) Handle[T] {
	handles := idx.byName[name]
	if len(handles) == 0 {
		return 0
	}
	return handles[0]
}

// All returns every handle filed under name, in creation order.
func (idx *NameIndex[T]) All(name string) []Handle[T] {
	return idx.byName[name]
}
