package lexer

import "github.com/dlclark/regexp2"

// CompiledRegexp is attached to every Regexp-kind Token whose literal has
// a closing '/'. Go's stdlib regexp is RE2-based and cannot
// parse ECMAScript regex syntax (backreferences, lookaround); regexp2
// can, so the lexer best-effort compiles every scanned regex literal with
// it and exposes the result on the AST inspection surface (spec.md §6,
// SPEC_FULL.md §3). Compile failure is not a diagnostic: the closed
// catalogue (spec.md §7) only has unclosed_regexp_literal for this
// token kind, so a pattern that scans to a matching `/` but doesn't
// compile under regexp2 just leaves Regexp nil.
type CompiledRegexp struct {
	Pattern string
	Flags   string
	Regexp  *regexp2.Regexp
}

func compileRegexpLiteral(pattern, flags string) *CompiledRegexp {
	opts := regexp2.None
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'u', 'v':
			opts |= regexp2.Unicode
		}
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return &CompiledRegexp{Pattern: pattern, Flags: flags}
	}
	return &CompiledRegexp{Pattern: pattern, Flags: flags, Regexp: re}
}
