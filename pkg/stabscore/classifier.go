package stabscore

import (
	"strings"

	"github.com/jtang613/mdstabs/pkg/mdebug"
)

// ClassifyWarning records a raw symbol the classifier could not turn into a
// ParsedSymbol. It is never fatal: the offending symbol is dropped and
// classification continues (spec.md §4.D, "Unknown storage type").
type ClassifyWarning struct {
	Symbol  mdebug.Symbol
	Message string
}

// ClassifySymbols turns one file's raw mdebug.Symbol stream into the flat
// ParsedSymbol sequence consumed by the importer driver, joining
// backslash-continued STABS strings and dispatching each terminated string
// on its STABS code, carried in Symbol.Index (spec.md §4.D, parse_symbols).
// Warnings for unrecognized STABS codes and for strings that fail to parse
// are collected rather than raised, so one bad symbol never aborts the rest
// of the file.
func ClassifySymbols(symbols []mdebug.Symbol) ([]ParsedSymbol, []ClassifyWarning) {
	var out []ParsedSymbol
	var warnings []ClassifyWarning

	var pending strings.Builder
	var pendingSymbol *mdebug.Symbol

	for i := range symbols {
		raw := &symbols[i]

		str := raw.String
		if pendingSymbol != nil {
			pending.WriteString(str)
			str = pending.String()
		}

		if strings.HasSuffix(str, "\\") {
			pending.Reset()
			pending.WriteString(strings.TrimSuffix(str, "\\"))
			pendingSymbol = raw
			continue
		}
		pending.Reset()
		source := pendingSymbol
		pendingSymbol = nil
		if source == nil {
			source = raw
		}

		parsed, warn := classifyOne(*source, raw, str)
		if warn != nil {
			warnings = append(warnings, *warn)
			continue
		}
		out = append(out, parsed)
	}

	return out, warnings
}

func classifyOne(source mdebug.Symbol, raw *mdebug.Symbol, str string) (ParsedSymbol, *ClassifyWarning) {
	if !raw.IsStabs {
		return ParsedSymbol{Kind: KindNonStabs, Raw: raw}, nil
	}

	// For STABS records Index carries the N_* code, not StorageType.
	switch raw.Index {
	case mdebug.NSO:
		return ParsedSymbol{Kind: KindSourceFile, Raw: raw}, nil
	case mdebug.NSOL:
		return ParsedSymbol{Kind: KindSubSourceFile, Raw: raw}, nil
	case mdebug.NLBRAC:
		return ParsedSymbol{Kind: KindLBrac, Raw: raw}, nil
	case mdebug.NRBRAC:
		return ParsedSymbol{Kind: KindRBrac, Raw: raw}, nil
	case mdebug.NFUN:
		if str == "" {
			return ParsedSymbol{Kind: KindFunctionEnd, Raw: raw}, nil
		}
		fallthrough
	case mdebug.NGSYM, mdebug.NSTSYM, mdebug.NLCSYM, mdebug.NRSYM, mdebug.NLSYM, mdebug.NPSYM:
		symbol, err := ParseSymbol(str)
		if err != nil {
			return ParsedSymbol{}, &ClassifyWarning{Symbol: source, Message: err.Error()}
		}
		return ParsedSymbol{Kind: KindNameColonType, Raw: raw, NameColonType: symbol}, nil
	case mdebug.NBINCL, mdebug.NOPT:
		return ParsedSymbol{}, &ClassifyWarning{Symbol: source, Message: "unhandled storage type"}
	default:
		return ParsedSymbol{}, &ClassifyWarning{Symbol: source, Message: "unrecognized storage type"}
	}
}

// MarkDuplicateSymbols is deliberately a no-op. The original importer's
// equivalent pass returns immediately as its first statement; this port
// preserves that behavior rather than implementing the dead logic below it
// (spec.md, Design Notes).
func MarkDuplicateSymbols(_ []ParsedSymbol) {
}
