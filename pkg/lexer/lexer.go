// Package lexer turns a source.Buffer into a stream of Tokens
// (spec.md §3, §4.3). The Lexer always has exactly one token scanned
// and ready in Peek(); Skip() consumes it and scans the next. Regex
// literals and template-literal continuations are not reachable from
// the default scan loop — the parser opts into them explicitly via
// ReparseAsRegexp and SkipInTemplate once grammar context has resolved
// the ambiguity (spec.md §4.4).
package lexer

import (
	"unicode/utf8"

	"go.uber.org/zap"

	"jslint/pkg/errors"
	"jslint/pkg/source"
)

// Lexer scans one source.Buffer. It is not safe for concurrent use.
type Lexer struct {
	buf  *source.Buffer
	data []byte
	size int
	sink errors.Sink
	log  *zap.Logger

	pos     int // byte offset of the next unscanned byte
	cur     Token
	pending *Token // set by InsertSemicolon; consumed by the next Skip
	prevEnd int    // end offset of the token before cur, for ASI
}

// New scans the first token immediately, so Peek() is always valid
// right after construction. A nil sink discards diagnostics; a nil
// logger discards debug output.
func New(buf *source.Buffer, sink errors.Sink, log *zap.Logger) *Lexer {
	if sink == nil {
		sink = errors.NopSink{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	lx := &Lexer{buf: buf, data: buf.Padded(), size: buf.Len(), sink: sink, log: log}
	lx.cur = lx.scanToken()
	return lx
}

// Peek returns the current lookahead token without consuming it.
func (lx *Lexer) Peek() Token {
	return lx.cur
}

// Skip consumes the current token and returns the next one.
func (lx *Lexer) Skip() Token {
	lx.prevEnd = lx.cur.Span.End
	if lx.pending != nil {
		lx.cur = *lx.pending
		lx.pending = nil
		return lx.cur
	}
	lx.cur = lx.scanToken()
	return lx.cur
}

// ReparseAsRegexp discards the current token — which must be Slash or
// SlashEqual — and rescans starting at its begin offset as a regex
// literal. The parser calls this once grammar context has decided that
// a leading '/' starts a regex rather than a division operator
// (spec.md §4.4 "Regex disambiguation"); the lexer itself never makes
// this choice.
func (lx *Lexer) ReparseAsRegexp() Token {
	hadNewline := lx.cur.HasLeadingNewline
	lx.pos = lx.cur.Span.Begin
	lx.cur = lx.scanRegexp(lx.pos)
	lx.cur.HasLeadingNewline = hadNewline
	lx.pos = lx.cur.Span.End
	return lx.cur
}

// SkipInTemplate rewinds to the current token — the RightCurly that
// closed a `${` interpolation — and rescans it as the next chunk of
// the template literal that originally opened at templateOpenBegin.
// templateOpenBegin is carried through purely so an eventual
// unclosed_template diagnostic spans from the literal's opening
// backtick rather than from this restart point.
func (lx *Lexer) SkipInTemplate(templateOpenBegin int) Token {
	hadNewline := lx.cur.HasLeadingNewline
	delimStart := lx.cur.Span.Begin
	lx.pos = delimStart
	lx.pending = nil
	lx.cur = lx.scanTemplateChunk(delimStart, templateOpenBegin)
	lx.cur.HasLeadingNewline = hadNewline
	lx.pos = lx.cur.Span.End
	return lx.cur
}

// InsertSemicolon synthesizes a semicolon for Automatic Semicolon
// Insertion. The current token is held back so the next Skip still
// returns it, and a zero-width synthetic semicolon positioned at the end
// of the previously consumed token becomes current. The parser in this
// module does not call it: its consumeStatementTerminator applies ASI
// by accepting the following token without a synthetic semicolon.
func (lx *Lexer) InsertSemicolon() Token {
	saved := lx.cur
	lx.pending = &saved
	lx.cur = Token{Kind: Semicolon, Span: source.Span{Begin: lx.prevEnd, End: lx.prevEnd}}
	return lx.cur
}

func (lx *Lexer) report(kind errors.Kind, span source.Span) {
	lx.sink.Report(errors.New(kind, span))
}

// scanToken skips leading whitespace/comments and scans exactly one
// token starting at the resulting position.
func (lx *Lexer) scanToken() Token {
	hadNewline := lx.skipWhitespaceAndComments()
	start := lx.pos
	data := lx.data

	var tok Token
	switch {
	case start >= lx.size:
		tok = Token{Kind: EndOfFile, Span: source.Span{Begin: start, End: start}}

	case data[start] == '`':
		tok = lx.scanTemplateChunk(start, start)

	case data[start] == '"' || data[start] == '\'':
		tok = lx.scanString(start, data[start])

	case isDecimalDigit(data[start]):
		tok = lx.scanNumber(start)

	case data[start] == '.' && start+1 < lx.size && isDecimalDigit(data[start+1]):
		tok = lx.scanNumber(start)

	case data[start] == '#':
		tok = Token{Kind: Hash, Span: source.Span{Begin: start, End: start + 1}}
		lx.report(errors.UnexpectedHashCharacter, tok.Span)

	case lx.looksLikeIdentifierStart(start):
		tok = lx.scanIdentifier(start)

	default:
		tok = lx.scanPunctuator(start)
	}

	tok.HasLeadingNewline = hadNewline
	lx.pos = tok.Span.End
	return tok
}

func (lx *Lexer) looksLikeIdentifierStart(pos int) bool {
	c := lx.data[pos]
	if c == '$' || c == '_' {
		return true
	}
	if c == '\\' && pos+1 < lx.size && lx.data[pos+1] == 'u' {
		return true
	}
	if c < utf8.RuneSelf {
		return isIdentifierStart(rune(c))
	}
	r, _ := utf8.DecodeRune(lx.data[pos:])
	return isIdentifierStart(r)
}

// skipWhitespaceAndComments advances lx.pos past whitespace, line
// comments, and block comments, reporting unclosed_block_comment for a
// "/*" with no matching "*/" before end of file. It returns whether any
// line terminator was crossed, for Token.HasLeadingNewline.
func (lx *Lexer) skipWhitespaceAndComments() bool {
	data := lx.data
	hadNewline := false
	for lx.pos < lx.size {
		c := data[lx.pos]

		if c == '/' && lx.pos+1 < lx.size && data[lx.pos+1] == '/' {
			lx.pos += 2
			for lx.pos < lx.size {
				r, sz := utf8.DecodeRune(data[lx.pos:])
				if isLineTerminatorRune(r) {
					break
				}
				lx.pos += sz
			}
			continue
		}

		if c == '/' && lx.pos+1 < lx.size && data[lx.pos+1] == '*' {
			start := lx.pos
			lx.pos += 2
			closed := false
			for lx.pos < lx.size {
				if data[lx.pos] == '*' && lx.pos+1 < lx.size && data[lx.pos+1] == '/' {
					lx.pos += 2
					closed = true
					break
				}
				r, sz := utf8.DecodeRune(data[lx.pos:])
				if isLineTerminatorRune(r) {
					hadNewline = true
				}
				lx.pos += sz
			}
			if !closed {
				lx.log.Debug("unclosed block comment", zap.Int("begin", start))
				lx.report(errors.UnclosedBlockComment, source.Span{Begin: start, End: lx.size})
			}
			continue
		}

		r, sz := utf8.DecodeRune(data[lx.pos:])
		if sz == 0 {
			break
		}
		if isLineTerminatorRune(r) {
			hadNewline = true
			lx.pos += sz
			continue
		}
		if isWhitespaceRune(r) {
			lx.pos += sz
			continue
		}
		break
	}
	return hadNewline
}

// scanString scans a single- or double-quoted string literal starting
// at the opening quote. Escapes are skipped without decoding; the
// analyzer never needs a string's runtime value, only its span.
func (lx *Lexer) scanString(start int, quote byte) Token {
	data := lx.data
	i := start + 1
	for i < lx.size {
		c := data[i]
		if c == quote {
			i++
			return Token{Kind: String, Span: source.Span{Begin: start, End: i}}
		}
		if c == '\\' {
			i++
			if i < lx.size {
				i++
			}
			continue
		}
		if c == '\n' || c == '\r' {
			break
		}
		i++
	}
	lx.report(errors.UnclosedStringLiteral, source.Span{Begin: start, End: i})
	return Token{Kind: String, Span: source.Span{Begin: start, End: i}}
}

// scanTemplateChunk scans one chunk of a template literal, starting at
// a delimiter byte: the opening backtick for the first chunk, or the
// RightCurly that closed a `${` interpolation for a continuation
// chunk (spec.md §4.3 "Template literals"). openBegin is the offset of
// the literal's original opening backtick, used only to position an
// unclosed_template diagnostic.
func (lx *Lexer) scanTemplateChunk(delimStart, openBegin int) Token {
	data := lx.data
	i := delimStart + 1
	for i < lx.size {
		switch data[i] {
		case '`':
			i++
			return Token{Kind: CompleteTemplate, Span: source.Span{Begin: delimStart, End: i}}
		case '\\':
			i++
			if i < lx.size {
				i++
			}
		case '$':
			if i+1 < lx.size && data[i+1] == '{' {
				i += 2
				return Token{Kind: IncompleteTemplate, Span: source.Span{Begin: delimStart, End: i}}
			}
			i++
		default:
			i++
		}
	}
	lx.report(errors.UnclosedTemplate, source.Span{Begin: openBegin, End: lx.size})
	return Token{Kind: CompleteTemplate, Span: source.Span{Begin: delimStart, End: lx.size}}
}

// scanRegexp scans a regex literal starting at its opening '/'. It is
// reachable only through ReparseAsRegexp: the default scan loop always
// treats a leading '/' as division (Slash/SlashEqual) since the lexer
// alone cannot disambiguate regex from division (spec.md §4.4).
func (lx *Lexer) scanRegexp(start int) Token {
	data := lx.data
	i := start + 1
	inClass := false
	closed := false
	for i < lx.size {
		c := data[i]
		if c == '\\' {
			i += 2
			continue
		}
		if c == '\n' || c == '\r' {
			break
		}
		if c == '[' {
			inClass = true
			i++
			continue
		}
		if c == ']' {
			inClass = false
			i++
			continue
		}
		if c == '/' && !inClass {
			i++
			closed = true
			break
		}
		i++
	}
	if !closed {
		lx.report(errors.UnclosedRegexpLiteral, source.Span{Begin: start, End: i})
		return Token{Kind: Regexp, Span: source.Span{Begin: start, End: i}}
	}

	patternEnd := i - 1
	flagsStart := i
	for i < lx.size {
		r, sz := utf8.DecodeRune(data[i:])
		if !isIdentifierPart(r) {
			break
		}
		i += sz
	}

	pattern := string(data[start+1 : patternEnd])
	flags := string(data[flagsStart:i])
	return Token{
		Kind:   Regexp,
		Span:   source.Span{Begin: start, End: i},
		Regexp: compileRegexpLiteral(pattern, flags),
	}
}

// scanNumber scans a decimal, hex, octal, or binary numeric literal,
// including a legacy (prefixless) octal form, numeric separators, and
// a trailing BigInt 'n' suffix (spec.md §4.3 "Numbers").
func (lx *Lexer) scanNumber(start int) Token {
	data := lx.data
	i := start
	var hasDecimalPoint, hasExponent, legacyOctal, nonOctalDigit bool

	if data[i] == '0' && i+1 < lx.size {
		switch data[i+1] {
		case 'x', 'X':
			i += 2
			for i < lx.size && (isHexDigit(data[i]) || data[i] == '_') {
				i++
			}
		case 'o', 'O':
			i += 2
			for i < lx.size && (isOctalDigit(data[i]) || data[i] == '_') {
				i++
			}
		case 'b', 'B':
			i += 2
			for i < lx.size && (isBinaryDigit(data[i]) || data[i] == '_') {
				i++
			}
		default:
			i, hasDecimalPoint, hasExponent, legacyOctal, nonOctalDigit = lx.scanDecimalDigits(i)
		}
	} else {
		i, hasDecimalPoint, hasExponent, legacyOctal, nonOctalDigit = lx.scanDecimalDigits(i)
	}

	isBigInt := false
	if i < lx.size && data[i] == 'n' {
		isBigInt = true
		i++
	}

	if i < lx.size {
		r, _ := utf8.DecodeRune(data[i:])
		if isIdentifierPart(r) {
			garbageStart := i
			for i < lx.size {
				r2, sz := utf8.DecodeRune(data[i:])
				if !isIdentifierPart(r2) {
					break
				}
				i += sz
			}
			lx.report(errors.UnexpectedCharactersInNumber, source.Span{Begin: garbageStart, End: i})
		}
	}

	span := source.Span{Begin: start, End: i}
	if legacyOctal && nonOctalDigit {
		lx.report(errors.UnexpectedCharactersInOctalNumber, span)
	}
	if isBigInt {
		if hasDecimalPoint {
			lx.report(errors.BigIntLiteralContainsDecimalPoint, span)
		}
		if hasExponent {
			lx.report(errors.BigIntLiteralContainsExponent, span)
		}
		if legacyOctal {
			lx.report(errors.BigIntLiteralContainsLeadingZero, span)
		}
	}
	return Token{Kind: Number, Span: span}
}

// scanDecimalDigits scans the decimal-or-legacy-octal form: an integer
// part, optional fraction, optional exponent. legacyOctal reports
// whether the integer part looked like a prefixless octal literal (a
// leading zero followed by at least one more digit, no fraction or
// exponent); nonOctalDigit reports whether that integer part contained
// an 8 or 9, which forces it to be read as decimal instead.
func (lx *Lexer) scanDecimalDigits(start int) (end int, hasDecimalPoint, hasExponent, legacyOctal, nonOctalDigit bool) {
	data := lx.data
	i := start
	for i < lx.size && (isDecimalDigit(data[i]) || data[i] == '_') {
		i++
	}
	intPart := data[start:i]

	if i < lx.size && data[i] == '.' {
		hasDecimalPoint = true
		i++
		for i < lx.size && (isDecimalDigit(data[i]) || data[i] == '_') {
			i++
		}
	}

	if i < lx.size && (data[i] == 'e' || data[i] == 'E') {
		j := i + 1
		if j < lx.size && (data[j] == '+' || data[j] == '-') {
			j++
		}
		if j < lx.size && isDecimalDigit(data[j]) {
			hasExponent = true
			i = j
			for i < lx.size && (isDecimalDigit(data[i]) || data[i] == '_') {
				i++
			}
		}
	}

	if len(intPart) > 1 && intPart[0] == '0' && !hasDecimalPoint && !hasExponent {
		legacyOctal = true
		for _, c := range intPart {
			if c == '8' || c == '9' {
				nonOctalDigit = true
			}
		}
	}
	return i, hasDecimalPoint, hasExponent, legacyOctal, nonOctalDigit
}

// scanIdentifier scans an identifier or keyword, decoding any Unicode
// escapes it contains in place so NormalizedText reflects the actual
// identifier (spec.md §3 Identifier invariant, §4.3). A keyword written
// with an escape never matches as a keyword: ECMAScript keywords are
// always spelled literally.
func (lx *Lexer) scanIdentifier(start int) Token {
	data := lx.data
	i := start
	hasEscape := false
	for i < lx.size {
		if data[i] == '\\' && i+1 < lx.size && data[i+1] == 'u' {
			hasEscape = true
			i = lx.skipUnicodeEscape(i)
			continue
		}
		r, sz := utf8.DecodeRune(data[i:])
		if sz == 0 || !isIdentifierPart(r) {
			break
		}
		i += sz
	}
	end := i

	normEnd := end
	if hasEscape {
		normEnd = lx.normalizeIdentifier(start, end)
	}

	kind := Identifier
	if !hasEscape {
		if kw, ok := LookupKeyword(string(data[start:end])); ok {
			kind = kw
		}
	}
	return Token{Kind: kind, Span: source.Span{Begin: start, End: end}, NormalizedIdentifierEnd: normEnd}
}

// skipUnicodeEscape advances past one `\uXXXX` or `\u{X...}` escape
// sequence starting at the backslash, without decoding it.
func (lx *Lexer) skipUnicodeEscape(pos int) int {
	data := lx.data
	i := pos + 2 // past "\u"
	if i < lx.size && data[i] == '{' {
		i++
		for i < lx.size && data[i] != '}' {
			i++
		}
		if i < lx.size {
			i++ // past '}'
		}
		return i
	}
	for k := 0; k < 4 && i < lx.size && isHexDigit(data[i]); k++ {
		i++
	}
	return i
}

func hexDigitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 0
	}
}

// normalizeIdentifier rewrites data[start:end] in place, replacing every
// Unicode escape with its decoded UTF-8 bytes, and returns the new end
// offset of the (shorter-or-equal-length) normalized form.
func (lx *Lexer) normalizeIdentifier(start, end int) int {
	raw := append([]byte(nil), lx.data[start:end]...)
	out := make([]byte, 0, len(raw))
	i := 0
	for i < len(raw) {
		if raw[i] == '\\' && i+1 < len(raw) && raw[i+1] == 'u' {
			j := i + 2
			var code rune
			if j < len(raw) && raw[j] == '{' {
				j++
				val := 0
				for j < len(raw) && raw[j] != '}' {
					val = val*16 + hexDigitValue(raw[j])
					j++
				}
				if j < len(raw) {
					j++
				}
				code = rune(val)
			} else {
				val := 0
				for k := 0; k < 4 && j < len(raw); k++ {
					val = val*16 + hexDigitValue(raw[j])
					j++
				}
				code = rune(val)
			}
			var encoded [utf8.UTFMax]byte
			n := utf8.EncodeRune(encoded[:], code)
			out = append(out, encoded[:n]...)
			i = j
		} else {
			out = append(out, raw[i])
			i++
		}
	}
	newEnd := start + len(out)
	lx.buf.Rewrite(start, newEnd, out)
	return newEnd
}

// scanPunctuator scans one punctuator or operator token by greedy
// longest match over the closed operator set (pkg/lexer/token.go).
func (lx *Lexer) scanPunctuator(start int) Token {
	data := lx.data
	size := lx.size
	b := func(off int) byte {
		if start+off < size {
			return data[start+off]
		}
		return 0
	}
	tok := func(kind Kind, length int) Token {
		return Token{Kind: kind, Span: source.Span{Begin: start, End: start + length}}
	}

	switch b(0) {
	case '&':
		if b(1) == '&' {
			return tok(AmpersandAmpersand, 2)
		}
		if b(1) == '=' {
			return tok(AmpersandEqual, 2)
		}
		return tok(Ampersand, 1)
	case '!':
		if b(1) == '=' {
			if b(2) == '=' {
				return tok(BangEqualEqual, 3)
			}
			return tok(BangEqual, 2)
		}
		return tok(Bang, 1)
	case '^':
		if b(1) == '=' {
			return tok(CircumflexEqual, 2)
		}
		return tok(Circumflex, 1)
	case ':':
		return tok(Colon, 1)
	case ',':
		return tok(Comma, 1)
	case '/':
		if b(1) == '=' {
			return tok(SlashEqual, 2)
		}
		return tok(Slash, 1)
	case '.':
		if b(1) == '.' && b(2) == '.' {
			return tok(DotDotDot, 3)
		}
		return tok(Dot, 1)
	case '=':
		if b(1) == '=' {
			if b(2) == '=' {
				return tok(EqualEqualEqual, 3)
			}
			return tok(EqualEqual, 2)
		}
		if b(1) == '>' {
			return tok(EqualGreater, 2)
		}
		return tok(Equal, 1)
	case '>':
		if b(1) == '=' {
			return tok(GreaterEqual, 2)
		}
		if b(1) == '>' {
			if b(2) == '>' {
				if b(3) == '=' {
					return tok(GreaterGreaterGreaterEqual, 4)
				}
				return tok(GreaterGreaterGreater, 3)
			}
			if b(2) == '=' {
				return tok(GreaterGreaterEqual, 3)
			}
			return tok(GreaterGreater, 2)
		}
		return tok(Greater, 1)
	case '{':
		return tok(LeftCurly, 1)
	case '(':
		return tok(LeftParen, 1)
	case '[':
		return tok(LeftSquare, 1)
	case '<':
		if b(1) == '=' {
			return tok(LessEqual, 2)
		}
		if b(1) == '<' {
			if b(2) == '=' {
				return tok(LessLessEqual, 3)
			}
			return tok(LessLess, 2)
		}
		return tok(Less, 1)
	case '-':
		if b(1) == '=' {
			return tok(MinusEqual, 2)
		}
		if b(1) == '-' {
			return tok(MinusMinus, 2)
		}
		return tok(Minus, 1)
	case '%':
		if b(1) == '=' {
			return tok(PercentEqual, 2)
		}
		return tok(Percent, 1)
	case '|':
		if b(1) == '=' {
			return tok(PipeEqual, 2)
		}
		if b(1) == '|' {
			return tok(PipePipe, 2)
		}
		return tok(Pipe, 1)
	case '+':
		if b(1) == '=' {
			return tok(PlusEqual, 2)
		}
		if b(1) == '+' {
			return tok(PlusPlus, 2)
		}
		return tok(Plus, 1)
	case '?':
		return tok(Question, 1)
	case '}':
		return tok(RightCurly, 1)
	case ')':
		return tok(RightParen, 1)
	case ']':
		return tok(RightSquare, 1)
	case ';':
		return tok(Semicolon, 1)
	case '*':
		if b(1) == '*' {
			if b(2) == '=' {
				return tok(StarStarEqual, 3)
			}
			return tok(StarStar, 2)
		}
		if b(1) == '=' {
			return tok(StarEqual, 2)
		}
		return tok(Star, 1)
	case '~':
		return tok(Tilde, 1)
	default:
		lx.log.Debug("fatal unsupported construct", zap.Int("pos", start))
		lx.report(errors.FatalUnsupportedConstruct, source.Span{Begin: start, End: start + 1})
		// Analysis stops here: the rest of the input is not scanned.
		return Token{Kind: EndOfFile, Span: source.Span{Begin: size, End: size}}
	}
}
