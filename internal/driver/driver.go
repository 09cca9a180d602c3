// Package driver orchestrates parse runs for the CLI: file loading,
// grammar selection, and fan-out over directories. It contains no
// parsing logic of its own.
package driver

import (
	"fmt"
	"strings"

	"skein/internal/diagfmt"
	"skein/internal/grammar/json"
	"skein/internal/grammar/sexpr"
	"skein/internal/parse"
	"skein/internal/scan"
	"skein/internal/source"
)

// Grammar selects which example grammar interprets the input.
type Grammar uint8

const (
	GrammarJSON Grammar = iota
	GrammarSexpr
)

// ParseGrammar resolves a user-facing grammar name.
func ParseGrammar(name string) (Grammar, error) {
	switch strings.ToLower(name) {
	case "json":
		return GrammarJSON, nil
	case "sexpr", "sexp", "lisp":
		return GrammarSexpr, nil
	default:
		return 0, fmt.Errorf("unknown grammar %q (json|sexpr)", name)
	}
}

func (g Grammar) String() string {
	switch g {
	case GrammarJSON:
		return "json"
	case GrammarSexpr:
		return "sexpr"
	}
	return "unknown"
}

// Extensions lists the file suffixes ParseDir picks up for the grammar.
func (g Grammar) Extensions() []string {
	switch g {
	case GrammarSexpr:
		return []string{".sexpr", ".lisp", ".scm"}
	default:
		return []string{".json"}
	}
}

// Options configures a run.
type Options struct {
	Grammar  Grammar
	MaxDepth int  // JSON nesting cap, 0 = grammar default
	NFC      bool // normalize input to NFC before parsing
}

// Result is the outcome of parsing one input.
type Result struct {
	Path   string
	Buffer *source.Buffer
	Value  any // any-shaped tree, nil when Err != nil
	Err    *parse.Error[rune, error]
}

// Failed reports whether the run produced a parse failure.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Render formats the failure (if any) for terminal output.
func (r *Result) Render(color bool) string {
	if r.Err == nil {
		return ""
	}
	return diagfmt.Annotate(r.Err, scan.NewText(r.Buffer), r.Path, diagfmt.PrettyOpts[rune]{Color: color})
}

// ParseFile loads path and parses it with the configured grammar.
func ParseFile(path string, opts Options) (*Result, error) {
	buf, err := source.Load(path, source.Options{NFC: opts.NFC})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseBuffer(path, buf, opts), nil
}

// ParseBuffer parses an already-loaded buffer.
func ParseBuffer(path string, buf *source.Buffer, opts Options) *Result {
	res := &Result{Path: path, Buffer: buf}
	switch opts.Grammar {
	case GrammarSexpr:
		node, perr := sexpr.Parse(buf)
		if perr != nil {
			res.Err = perr
			return res
		}
		res.Value = node.Interface()
	default:
		value, perr := json.Parse(buf, json.Options{MaxDepth: opts.MaxDepth})
		if perr != nil {
			res.Err = perr
			return res
		}
		res.Value = value.Interface()
	}
	return res
}
