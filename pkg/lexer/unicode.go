package lexer

import "unicode"

// isIdentifierStart approximates ECMAScript's ID_Start property using the
// standard library's Unicode category tables (Letter categories plus the
// Nl "letter number" category, e.g. Roman numerals). The JavaScript
// grammar additionally allows '$' and '_' to start an identifier; callers
// check those separately so this stays a pure Unicode-property test.
func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

// isIdentifierPart approximates ID_Continue: ID_Start plus combining
// marks, decimal digits, connector punctuation (e.g. '_'), and the '$'
// and zero-width joiner/non-joiner the grammar also allows in an
// identifier.
func isIdentifierPart(r rune) bool {
	if isIdentifierStart(r) || r == '$' {
		return true
	}
	if unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) ||
		unicode.Is(unicode.Nd, r) || unicode.Is(unicode.Pc, r) {
		return true
	}
	return r == 0x200C || r == 0x200D // ZWNJ, ZWJ
}

func isDecimalDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDecimalDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }

func isBinaryDigit(b byte) bool { return b == '0' || b == '1' }

// isLineTerminatorRune reports whether r is one of the four ECMAScript
// line terminators (\n, \r, U+2028, U+2029) used for has_leading_newline
// tracking and ASI (spec.md §3, §4.4).
func isLineTerminatorRune(r rune) bool {
	return r == '\n' || r == '\r' || r == 0x2028 || r == 0x2029
}

func isWhitespaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\v' || r == '\f' || r == 0xFEFF ||
		unicode.Is(unicode.Zs, r)
}
