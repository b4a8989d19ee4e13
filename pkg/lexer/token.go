package lexer

import "jslint/pkg/source"

// Kind tags a Token (spec.md §3). The punctuator/operator/keyword set
// mirrors quick-lint-js's token_type enum: single-character punctuators,
// the listed multi-character operators and compound-assign forms, one
// keyword per reserved word plus the contextual keywords (as, async,
// from, get, of, set, static, yield), identifier/number/string/regexp,
// template pieces, and end_of_file.
type Kind int

const (
	EndOfFile Kind = iota
	Illegal

	Identifier
	Number
	String
	Regexp
	CompleteTemplate
	IncompleteTemplate

	// Single-character punctuators.
	Ampersand
	Bang
	Circumflex
	Colon
	Comma
	Slash
	Dot
	Equal
	Greater
	LeftCurly
	LeftParen
	LeftSquare
	Less
	Minus
	Percent
	Pipe
	Plus
	Question
	RightCurly
	RightParen
	RightSquare
	Semicolon
	Star
	Tilde
	Hash

	// Multi-character operators.
	AmpersandAmpersand
	AmpersandEqual
	BangEqual
	BangEqualEqual
	CircumflexEqual
	DotDotDot
	EqualEqual
	EqualEqualEqual
	EqualGreater
	GreaterEqual
	GreaterGreater
	GreaterGreaterEqual
	GreaterGreaterGreater
	GreaterGreaterGreaterEqual
	LessEqual
	LessLess
	LessLessEqual
	MinusEqual
	MinusMinus
	PercentEqual
	PipeEqual
	PipePipe
	PlusEqual
	PlusPlus
	SlashEqual
	StarEqual
	StarStar
	StarStarEqual

	// Keywords (reserved words).
	KwAs
	KwAsync
	KwAwait
	KwBreak
	KwCase
	KwCatch
	KwClass
	KwConst
	KwContinue
	KwDebugger
	KwDefault
	KwDelete
	KwDo
	KwElse
	KwExport
	KwExtends
	KwFalse
	KwFinally
	KwFor
	KwFrom
	KwFunction
	KwGet
	KwIf
	KwImport
	KwIn
	KwInstanceof
	KwLet
	KwNew
	KwNull
	KwOf
	KwReturn
	KwSet
	KwStatic
	KwSuper
	KwSwitch
	KwThis
	KwThrow
	KwTrue
	KwTry
	KwTypeof
	KwVar
	KwVoid
	KwWhile
	KwWith
	KwYield
)

var kindNames = map[Kind]string{
	EndOfFile:                  "end_of_file",
	Illegal:                    "illegal",
	Identifier:                 "identifier",
	Number:                     "number",
	String:                     "string",
	Regexp:                     "regexp",
	CompleteTemplate:           "complete_template",
	IncompleteTemplate:         "incomplete_template",
	Ampersand:                  "&",
	Bang:                       "!",
	Circumflex:                 "^",
	Colon:                      ":",
	Comma:                      ",",
	Slash:                      "/",
	Dot:                        ".",
	Equal:                      "=",
	Greater:                    ">",
	LeftCurly:                  "{",
	LeftParen:                  "(",
	LeftSquare:                 "[",
	Less:                       "<",
	Minus:                      "-",
	Percent:                    "%",
	Pipe:                       "|",
	Plus:                       "+",
	Question:                   "?",
	RightCurly:                 "}",
	RightParen:                 ")",
	RightSquare:                "]",
	Semicolon:                  ";",
	Star:                       "*",
	Tilde:                      "~",
	Hash:                       "#",
	AmpersandAmpersand:         "&&",
	AmpersandEqual:             "&=",
	BangEqual:                  "!=",
	BangEqualEqual:             "!==",
	CircumflexEqual:            "^=",
	DotDotDot:                  "...",
	EqualEqual:                 "==",
	EqualEqualEqual:            "===",
	EqualGreater:               "=>",
	GreaterEqual:               ">=",
	GreaterGreater:             ">>",
	GreaterGreaterEqual:        ">>=",
	GreaterGreaterGreater:      ">>>",
	GreaterGreaterGreaterEqual: ">>>=",
	LessEqual:                  "<=",
	LessLess:                   "<<",
	LessLessEqual:              "<<=",
	MinusEqual:                 "-=",
	MinusMinus:                 "--",
	PercentEqual:               "%=",
	PipeEqual:                  "|=",
	PipePipe:                   "||",
	PlusEqual:                  "+=",
	PlusPlus:                   "++",
	SlashEqual:                 "/=",
	StarEqual:                  "*=",
	StarStar:                   "**",
	StarStarEqual:              "**=",
	KwAs:                       "as",
	KwAsync:                    "async",
	KwAwait:                    "await",
	KwBreak:                    "break",
	KwCase:                     "case",
	KwCatch:                    "catch",
	KwClass:                    "class",
	KwConst:                    "const",
	KwContinue:                 "continue",
	KwDebugger:                 "debugger",
	KwDefault:                  "default",
	KwDelete:                   "delete",
	KwDo:                       "do",
	KwElse:                     "else",
	KwExport:                   "export",
	KwExtends:                  "extends",
	KwFalse:                    "false",
	KwFinally:                  "finally",
	KwFor:                      "for",
	KwFrom:                     "from",
	KwFunction:                 "function",
	KwGet:                      "get",
	KwIf:                       "if",
	KwImport:                   "import",
	KwIn:                       "in",
	KwInstanceof:               "instanceof",
	KwLet:                      "let",
	KwNew:                      "new",
	KwNull:                     "null",
	KwOf:                       "of",
	KwReturn:                   "return",
	KwSet:                      "set",
	KwStatic:                   "static",
	KwSuper:                    "super",
	KwSwitch:                   "switch",
	KwThis:                     "this",
	KwThrow:                    "throw",
	KwTrue:                     "true",
	KwTry:                      "try",
	KwTypeof:                   "typeof",
	KwVar:                      "var",
	KwVoid:                     "void",
	KwWhile:                    "while",
	KwWith:                     "with",
	KwYield:                    "yield",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

var keywords = func() map[string]Kind {
	m := make(map[string]Kind, 48)
	for k, name := range kindNames {
		if k >= KwAs {
			m[name] = k
		}
	}
	return m
}()

// LookupKeyword returns the keyword Kind for a normalized identifier, or
// (Identifier, false) if name isn't a keyword.
func LookupKeyword(name string) (Kind, bool) {
	k, ok := keywords[name]
	if !ok {
		return Identifier, false
	}
	return k, true
}

// Token is one lexical unit (spec.md §3). NormalizedIdentifierEnd equals
// Span.End unless the identifier contained a Unicode escape, in which
// case it marks the end of the in-place-decoded form.
type Token struct {
	Kind                    Kind
	Span                    source.Span
	HasLeadingNewline       bool
	NormalizedIdentifierEnd int
	// Regexp is populated only for Kind == Regexp, for every regex
	// literal with a closing '/'; its own Regexp field is nil when the
	// pattern/flags did not compile under ECMAScript regex syntax (see
	// pkg/lexer's use of github.com/dlclark/regexp2, SPEC_FULL.md §3).
	Regexp *CompiledRegexp
}

// Text returns the raw token text (normalization not applied) from buf.
func (t Token) Text(data []byte) string {
	return string(data[t.Span.Begin:t.Span.End])
}

// NormalizedText returns the identifier text after Unicode-escape
// normalization (spec.md §3 Identifier invariant).
func (t Token) NormalizedText(data []byte) string {
	return string(data[t.Span.Begin:t.NormalizedIdentifierEnd])
}
