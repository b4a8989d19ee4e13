package report

import (
	"encoding/json"
	"io"

	"jslint/pkg/errors"
	"jslint/pkg/source"
)

// qflistEntry mirrors one vim quickfix entry, per
// vim-qflist-json-error-reporter.cpp's write_qflist_entry_header: 1-based
// line/column, an inclusive end column, and a free-text message.
type qflistEntry struct {
	Filename string `json:"filename,omitempty"`
	Lnum     int    `json:"lnum"`
	Col      int    `json:"col"`
	EndLnum  int    `json:"end_lnum"`
	EndCol   int    `json:"end_col"`
	Vcol     int    `json:"vcol"`
	Text     string `json:"text"`
}

// qflist is the JSON document shape: {"qflist": [...]}.
type qflist struct {
	Qflist []qflistEntry `json:"qflist"`
}

// JSONReporter buffers diagnostics and writes them as one vim quickfix
// list on Flush, for editor integration (spec.md §6's "external
// collaborator" formatting, supplemented from
// vim-qflist-json-error-reporter.cpp since spec.md's Non-goals don't
// exclude it).
type JSONReporter struct {
	buf     *source.Buffer
	loc     *source.Locator
	entries []qflistEntry
}

func NewJSONReporter(buf *source.Buffer) *JSONReporter {
	return &JSONReporter{buf: buf, loc: buf.Locator()}
}

func (r *JSONReporter) Report(d errors.Diagnostic) {
	begin, end := r.loc.Range(d.Primary)
	endCol := end.Column - 1
	if d.Primary.IsEmpty() {
		endCol = begin.Column
	}
	r.entries = append(r.entries, qflistEntry{
		Filename: r.buf.Name,
		Lnum:     begin.Line,
		Col:      begin.Column,
		EndLnum:  end.Line,
		EndCol:   endCol,
		Text:     d.Message(),
	})
}

// Flush writes the accumulated quickfix list to w as a single JSON
// document.
func (r *JSONReporter) Flush(w io.Writer) error {
	return json.NewEncoder(w).Encode(qflist{Qflist: r.entries})
}
