// stdump recovers C/C++ symbol and type information from the STABS debug
// data embedded in a PS2-era ELF's .mdebug section.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jtang613/mdstabs/pkg/demangle"
	"github.com/jtang613/mdstabs/pkg/importer"
	"github.com/jtang613/mdstabs/pkg/mdebug"
	"github.com/jtang613/mdstabs/pkg/symdb"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
)

// LoadObject turns an ELF path into the raw mdebug.File/mdebug.Section
// input this tool consumes. ELF container parsing and .mdebug header
// framing are external collaborators (spec.md, "Out of scope"); this var
// is the seam a concrete reader plugs into. The default implementation
// reports that no reader has been wired in, rather than silently producing
// an empty symbol table.
var LoadObject = func(path string) ([]mdebug.File, []mdebug.Section, error) {
	return nil, nil, errors.New("no ELF/.mdebug reader is wired into this build")
}

func main() {
	perFile := flag.Bool("per-file", false, "don't deduplicate types across source files")
	omitAccessSpecifiers := flag.Bool("omit-access-specifiers", false, "don't print C++ access specifiers")
	omitMemberFunctions := flag.Bool("omit-member-functions", false, "don't print member functions")
	includeGenerated := flag.Bool("include-generated-functions", false, "include compiler-generated member functions")
	locals := flag.Bool("locals", false, "include local variables")
	externals := flag.Bool("externals", false, "restrict to externally visible symbols")
	mangled := flag.Bool("mangled", false, "print mangled names instead of demangling them")
	output := flag.StringP("output", "o", "", "write output to this file instead of stdout")
	section := flag.String("section", "", "restrict output to this section")
	format := flag.String("format", "text", "output format: text or json")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [options] <elf-file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  identify functions globals types type_graph labels json symbols headers files sections\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s functions game.elf\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s json --per-file game.elf\n", os.Args[0])
	}

	flag.Parse()

	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	elfPath := flag.Arg(1)

	files, sections, err := LoadObject(elfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", elfPath, err)
		os.Exit(1)
	}

	var importerFlags importer.Flags
	if *mangled {
		importerFlags |= importer.DontDemangleNames
	}
	if *omitAccessSpecifiers {
		importerFlags |= importer.NoAccessSpecifiers
	}
	if *omitMemberFunctions {
		importerFlags |= importer.NoMemberFunctions
	}
	if *includeGenerated {
		importerFlags |= importer.IncludeGeneratedMemberFunctions
	}
	if *perFile {
		importerFlags |= importer.DontDeduplicateTypes
	}

	ctx := importer.Context{Flags: importerFlags, Demangle: demangle.New(demangle.DefaultOptions)}
	if *mangled {
		ctx.Demangle = demangle.Identity
	}

	driver := importer.NewDriver(ctx)
	if err := driver.ImportSymbolTable(elfPath, files, sections); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing symbol table: %v\n", err)
		os.Exit(1)
	}
	db := driver.Database()

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", *output, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	names := func(items []string) {
		if *format == "json" {
			encoder := json.NewEncoder(out)
			encoder.SetEscapeHTML(false)
			if err := encoder.Encode(items); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		for _, name := range items {
			fmt.Fprintln(out, name)
		}
	}

	switch command {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(db.ToExport()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
			os.Exit(1)
		}

	case "identify":
		fmt.Fprintf(out, "%s: %d source files, %d data types, %d functions, %d globals\n",
			elfPath, db.SourceFiles.Len(), db.DataTypes.Len(), db.Functions.Len(), db.GlobalVariables.Len())

	case "functions":
		var lines []string
		for _, h := range db.Functions.Range() {
			fn, _ := db.Functions.Get(h)
			lines = append(lines, fn.Name)
			if *locals {
				for _, lh := range fn.Locals {
					if local, ok := db.LocalVariables.Get(lh); ok {
						lines = append(lines, "  "+local.Name)
					}
				}
			}
		}
		names(lines)

	case "globals":
		lowSection, highSection, haveSection := sectionRange(db, *section)
		var lines []string
		for _, h := range db.GlobalVariables.Range() {
			gv, _ := db.GlobalVariables.Get(h)
			if *externals && !gv.External {
				continue
			}
			if haveSection && (gv.Address < lowSection || gv.Address >= highSection) {
				continue
			}
			lines = append(lines, gv.Name)
		}
		names(lines)

	case "types":
		var lines []string
		for _, h := range db.DataTypes.Range() {
			dt, _ := db.DataTypes.Get(h)
			lines = append(lines, dt.Name)
		}
		names(lines)

	case "files":
		var lines []string
		for _, h := range db.SourceFiles.Range() {
			sf, _ := db.SourceFiles.Get(h)
			lines = append(lines, sf.Path)
		}
		names(lines)

	case "sections":
		var lines []string
		for _, h := range db.Sections.Range() {
			s, _ := db.Sections.Get(h)
			if *section != "" && s.Name != *section {
				continue
			}
			lines = append(lines, s.Name)
		}
		names(lines)

	case "type_graph", "labels", "symbols", "headers":
		fmt.Fprintf(out, "%s: not yet implemented for this format\n", command)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

// sectionRange looks up name's [Address, Address+Size) range in db, used to
// restrict the globals command to one section. haveSection is false when
// name is empty or unknown.
func sectionRange(db *symdb.Database, name string) (low, high uint32, haveSection bool) {
	if name == "" {
		return 0, 0, false
	}
	for _, h := range db.Sections.Range() {
		if s, ok := db.Sections.Get(h); ok && s.Name == name {
			return s.Address, s.Address + s.Size, true
		}
	}
	return 0, 0, false
}

