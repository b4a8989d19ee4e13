// Package source owns the raw bytes an analysis runs over: a padded
// buffer plus a lazily-built offset-to-line/column locator.
package source

import "sort"

// Span is a half-open byte interval [Begin, End) over a Buffer. Spans are
// copyable value types; they never own bytes.
type Span struct {
	Begin int
	End   int
}

// IsEmpty reports whether the span covers zero bytes.
func (s Span) IsEmpty() bool { return s.Begin >= s.End }

// Buffer owns a caller-provided byte sequence plus at least one trailing
// NUL byte of padding, so that single-byte lookahead in the lexer never
// reads out of bounds. The buffer is mutable: the lexer rewrites
// identifier bytes in place to normalize Unicode escapes (spec.md §4.3),
// so Buffer exposes its backing array rather than an immutable copy.
type Buffer struct {
	// Name is a display name ("<stdin>", a file path, "<eval>") used by
	// reporters; it has no effect on analysis.
	Name string

	data    []byte // data[:size] is the caller's bytes; data[size:] is padding
	size    int
	locator *Locator
}

// NewBuffer copies src into a freshly padded buffer. The returned Buffer
// owns its storage; mutating src afterwards has no effect on it.
func NewBuffer(name string, src []byte) *Buffer {
	data := make([]byte, len(src)+1)
	copy(data, src)
	return &Buffer{Name: name, data: data, size: len(src)}
}

// NewBufferString is NewBuffer over a string.
func NewBufferString(name string, src string) *Buffer {
	return NewBuffer(name, []byte(src))
}

// Bytes returns the caller's bytes, excluding padding.
func (b *Buffer) Bytes() []byte { return b.data[:b.size] }

// Padded returns the full backing array, including the trailing NUL(s).
// The lexer uses this so that reading one byte past the last real byte
// is always safe and always observes NUL.
func (b *Buffer) Padded() []byte { return b.data }

// Len is the number of real (non-padding) bytes.
func (b *Buffer) Len() int { return b.size }

// Rewrite overwrites data[begin:end] in place. Used to normalize Unicode
// escapes inside identifiers (spec.md §3 Identifier invariant); begin/end
// must lie within [0, Len()).
func (b *Buffer) Rewrite(begin, end int, with []byte) {
	copy(b.data[begin:end], with)
}

// Locator returns the buffer's line-offset locator, building it lazily
// on first use and reusing it thereafter.
func (b *Buffer) Locator() *Locator {
	if b.locator == nil {
		b.locator = newLocator(b)
	}
	return b.locator
}

// Position is a 1-based human-readable location. Columns are byte
// offsets within the line, not rune counts: UTF-8-aware column counting
// is left to callers that need it (spec.md §4.1).
type Position struct {
	Line   int
	Column int
}

// Locator maps byte offsets into a Buffer to (line, column) pairs via
// binary search over a sorted table of line-start offsets, built lazily
// on the first query.
type Locator struct {
	buf         *Buffer
	lineOffsets []int // lineOffsets[i] = byte offset of the start of line i+1
}

func newLocator(b *Buffer) *Locator {
	l := &Locator{buf: b}
	offsets := []int{0}
	for i, c := range b.Bytes() {
		if c == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	l.lineOffsets = offsets
	return l
}

// Position maps a byte offset to a 1-based (line, column) pair. Offsets
// beyond Len() clamp to the position just past the last byte.
func (l *Locator) Position(offset int) Position {
	if offset > l.buf.Len() {
		offset = l.buf.Len()
	}
	if offset < 0 {
		offset = 0
	}
	i := sort.Search(len(l.lineOffsets), func(i int) bool {
		return l.lineOffsets[i] > offset
	})
	line := i
	lineStart := l.lineOffsets[line-1]
	return Position{Line: line, Column: offset - lineStart + 1}
}

// Range maps a Span to its start and end Positions.
func (l *Locator) Range(s Span) (Position, Position) {
	return l.Position(s.Begin), l.Position(s.End)
}
