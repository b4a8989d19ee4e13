// Package analysis wires the source buffer, lexer, parser, and linter
// into the single-pass pipeline described by spec.md §2: one buffer,
// one lexer, one parser, one linter, one sink, per analysis (spec.md
// §5 "single-threaded cooperative within one analysis").
package analysis

import (
	"go.uber.org/zap"

	"jslint/pkg/ast"
	"jslint/pkg/errors"
	"jslint/pkg/lexer"
	"jslint/pkg/linter"
	"jslint/pkg/parser"
	"jslint/pkg/source"
)

// Options configures an analysis run. The zero value is valid: it logs
// nothing and seeds the module scope with linter.DefaultGlobals.
type Options struct {
	// GlobalNames overrides the predefined bindings the module scope is
	// seeded with (spec.md §4.5). Nil uses linter.DefaultGlobals — this
	// is the knob an embedder (e.g. a Node.js-only global set, vs. a
	// browser's) would reach for.
	GlobalNames []string

	// Logger is passed to the lexer and the parser. Only the lexer logs
	// (unclosed block comments and fatal unsupported constructs); the
	// parser holds it without logging, and the linter takes none. Nil
	// installs zap.NewNop(), matching production's default silence.
	Logger *zap.Logger
}

// Result holds the outputs of one analysis run, for callers that want
// to inspect the AST or buffer alongside the collected diagnostics
// (spec.md §6 "AST inspection").
type Result struct {
	Buffer      *source.Buffer
	Arena       *ast.Arena
	Top         []ast.ExprID
	Diagnostics *errors.Collector
}

// Run lexes, parses, and lints src in one pass, reporting into the
// returned Collector (spec.md §2 "System Overview").
func Run(name string, src []byte, opts Options) *Result {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	buf := source.NewBuffer(name, src)
	coll := errors.NewCollector()
	lx := lexer.New(buf, coll, log)
	arena := ast.NewArena()
	lnt := linter.New(coll, opts.GlobalNames)
	p := parser.NewParser(lx, buf, arena, coll, lnt, log)

	top := p.Parse()

	return &Result{Buffer: buf, Arena: arena, Top: top, Diagnostics: coll}
}

// RunString is Run over a string source.
func RunString(name string, src string, opts Options) *Result {
	return Run(name, []byte(src), opts)
}
