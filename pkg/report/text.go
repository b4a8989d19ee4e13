// Package report provides errors.Sink implementations that render
// diagnostics for humans and for editor tooling, grounded on
// quick-lint-js's text and vim-qflist-json reporters
// (_examples/original_source/src/text-error-reporter.cpp,
// vim-qflist-json-error-reporter.cpp). Both live outside the core
// pipeline (spec.md §6 treats text formatting as an external
// collaborator).
package report

import (
	"fmt"
	"io"

	"jslint/pkg/errors"
	"jslint/pkg/source"
)

// TextReporter writes one "path:line:col: error: message" line per
// diagnostic, with a "note:" follow-up line for diagnostics carrying a
// Secondary span — the shape of quick-lint-js's text_error_reporter.
// The catalogue has no warning-level entries, so every line says
// "error:".
type TextReporter struct {
	w     io.Writer
	buf   *source.Buffer
	loc   *source.Locator
	Count int
}

// NewTextReporter renders diagnostics located against buf's positions,
// writing to w.
func NewTextReporter(w io.Writer, buf *source.Buffer) *TextReporter {
	return &TextReporter{w: w, buf: buf, loc: buf.Locator()}
}

func (r *TextReporter) Report(d errors.Diagnostic) {
	r.Count++
	r.logLocation(d.Primary)
	fmt.Fprintf(r.w, "error: %s\n", d.Message())
	if d.Secondary != nil {
		r.logLocation(*d.Secondary)
		fmt.Fprintf(r.w, "note: %s\n", d.SecondaryMessage())
	}
}

func (r *TextReporter) logLocation(span source.Span) {
	p := r.loc.Position(span.Begin)
	fmt.Fprintf(r.w, "%s:%d:%d: ", r.buf.Name, p.Line, p.Column)
}
