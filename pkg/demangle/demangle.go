// Package demangle wraps a real GNU/Itanium C++ demangler as the narrow
// seam the importer calls through, so the core recovery pipeline never
// carries its own copy of the demangling grammar (spec.md, "External
// collaborators").
package demangle

import "github.com/qeedquan/go-binutils/iberty/demangle"

// Func is the shape the importer expects for a name demangler: given a
// possibly-mangled symbol name, return its demangled form and whether
// demangling succeeded.
type Func func(mangled string) (string, bool)

// Options controls which cxxfilt-style flags the default demangler passes
// through (spec.md §6, "DONT_DEMANGLE_NAMES").
type Options struct {
	Params  bool
	ANSI    bool
	Verbose bool
}

// DefaultOptions matches cxxfilt's own defaults: parameter lists and ANSI
// C++ operator spellings included, verbose template output omitted.
var DefaultOptions = Options{Params: true, ANSI: true}

// New returns a Func backed by the Itanium/GNU demangler, configured by
// opts.
func New(opts Options) Func {
	flags := demangle.PARAMS &^ demangle.PARAMS // zero value of the flag type
	if opts.Params {
		flags |= demangle.PARAMS
	}
	if opts.ANSI {
		flags |= demangle.ANSI
	}
	if opts.Verbose {
		flags |= demangle.VERBOSE
	}
	return func(mangled string) (string, bool) {
		out := demangle.Cplus(mangled, flags)
		if out == "" {
			return mangled, false
		}
		return out, true
	}
}

// Identity never demangles anything, used when DONT_DEMANGLE_NAMES is set
// (spec.md §6).
func Identity(mangled string) (string, bool) {
	return mangled, false
}
