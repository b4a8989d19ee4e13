package lexer

import (
	"testing"

	"jslint/pkg/errors"
	"jslint/pkg/source"
)

func collectTokens(t *testing.T, input string) ([]Token, *errors.Collector) {
	t.Helper()
	buf := source.NewBufferString("<test>", input)
	coll := errors.NewCollector()
	lx := New(buf, coll, nil)
	var out []Token
	for {
		tok := lx.Peek()
		out = append(out, tok)
		if tok.Kind == EndOfFile {
			break
		}
		lx.Skip()
	}
	return out, coll
}

func TestNextToken(t *testing.T) {
	input := `let five = 5;
const ten = 10.5;

let add = function(x, y) {
  return x + y;
};

10 == 10;
10 != 9;
"foobar"
"foo bar"
// comment
let next = null;`

	tests := []struct {
		kind Kind
		text string
	}{
		{KwLet, "let"},
		{Identifier, "five"},
		{Equal, "="},
		{Number, "5"},
		{Semicolon, ";"},
		{KwConst, "const"},
		{Identifier, "ten"},
		{Equal, "="},
		{Number, "10.5"},
		{Semicolon, ";"},
		{KwLet, "let"},
		{Identifier, "add"},
		{Equal, "="},
		{KwFunction, "function"},
		{LeftParen, "("},
		{Identifier, "x"},
		{Comma, ","},
		{Identifier, "y"},
		{RightParen, ")"},
		{LeftCurly, "{"},
		{KwReturn, "return"},
		{Identifier, "x"},
		{Plus, "+"},
		{Identifier, "y"},
		{Semicolon, ";"},
		{RightCurly, "}"},
		{Semicolon, ";"},
		{Number, "10"},
		{EqualEqual, "=="},
		{Number, "10"},
		{Semicolon, ";"},
		{Number, "10"},
		{BangEqual, "!="},
		{Number, "9"},
		{Semicolon, ";"},
		{String, `"foobar"`},
		{String, `"foo bar"`},
		{KwLet, "let"},
		{Identifier, "next"},
		{Equal, "="},
		{KwNull, "null"},
		{Semicolon, ";"},
		{EndOfFile, ""},
	}

	buf := source.NewBufferString("<test>", input)
	lx := New(buf, errors.NopSink{}, nil)
	for i, want := range tests {
		got := lx.Peek()
		if got.Kind != want.kind {
			t.Fatalf("token[%d]: kind = %s, want %s", i, got.Kind, want.kind)
		}
		if got.Text(buf.Padded()) != want.text {
			t.Fatalf("token[%d]: text = %q, want %q", i, got.Text(buf.Padded()), want.text)
		}
		lx.Skip()
	}
}

func TestLeadingNewlineTracking(t *testing.T) {
	toks, _ := collectTokens(t, "x\n++\ny")
	if len(toks) < 3 {
		t.Fatalf("expected at least 3 tokens, got %d", len(toks))
	}
	if toks[1].Kind != PlusPlus || !toks[1].HasLeadingNewline {
		t.Fatalf("expected ++ to carry HasLeadingNewline, got %+v", toks[1])
	}
}

func TestUnicodeEscapeIdentifierNormalization(t *testing.T) {
	buf := source.NewBufferString("<test>", `w\u{61}t`)
	lx := New(buf, errors.NopSink{}, nil)
	tok := lx.Peek()
	if tok.Kind != Identifier {
		t.Fatalf("kind = %s, want identifier", tok.Kind)
	}
	if got := tok.NormalizedText(buf.Padded()); got != "wat" {
		t.Fatalf("normalized text = %q, want %q", got, "wat")
	}
}

func TestKeywordWithEscapeIsNotAKeyword(t *testing.T) {
	buf := source.NewBufferString("<test>", `\u{6c}et`)
	lx := New(buf, errors.NopSink{}, nil)
	tok := lx.Peek()
	if tok.Kind != Identifier {
		t.Fatalf("kind = %s, want identifier (escaped keyword must not match)", tok.Kind)
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		kinds []Kind
	}{
		{"0x1F", []Kind{Number, EndOfFile}},
		{"0o17", []Kind{Number, EndOfFile}},
		{"0b101", []Kind{Number, EndOfFile}},
		{"123n", []Kind{Number, EndOfFile}},
		{"1.5e10", []Kind{Number, EndOfFile}},
		{"1_000", []Kind{Number, EndOfFile}},
	}
	for _, tt := range tests {
		toks, coll := collectTokens(t, tt.input)
		if len(toks) != len(tt.kinds) {
			t.Fatalf("%q: got %d tokens, want %d", tt.input, len(toks), len(tt.kinds))
		}
		for i, k := range tt.kinds {
			if toks[i].Kind != k {
				t.Fatalf("%q: token[%d] = %s, want %s", tt.input, i, toks[i].Kind, k)
			}
		}
		if coll.Count() != 0 {
			t.Fatalf("%q: unexpected diagnostics: %+v", tt.input, coll.Diagnostics)
		}
	}
}

func TestLegacyOctalWithNonOctalDigitIsFlagged(t *testing.T) {
	_, coll := collectTokens(t, "018")
	if len(coll.OfKind(errors.UnexpectedCharactersInOctalNumber)) != 1 {
		t.Fatalf("expected one unexpected_characters_in_octal_number diagnostic, got %+v", coll.Diagnostics)
	}
}

func TestBigIntLiteralContainsDecimalPointIsFlagged(t *testing.T) {
	_, coll := collectTokens(t, "1.5n")
	if len(coll.OfKind(errors.BigIntLiteralContainsDecimalPoint)) != 1 {
		t.Fatalf("expected big_int_literal_contains_decimal_point, got %+v", coll.Diagnostics)
	}
}

func TestUnterminatedStringLiteral(t *testing.T) {
	_, coll := collectTokens(t, "\"abc")
	if len(coll.OfKind(errors.UnclosedStringLiteral)) != 1 {
		t.Fatalf("expected unclosed_string_literal, got %+v", coll.Diagnostics)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, coll := collectTokens(t, "/* comment")
	if len(coll.OfKind(errors.UnclosedBlockComment)) != 1 {
		t.Fatalf("expected unclosed_block_comment, got %+v", coll.Diagnostics)
	}
}

func TestUnexpectedHashCharacter(t *testing.T) {
	_, coll := collectTokens(t, "#x")
	if len(coll.OfKind(errors.UnexpectedHashCharacter)) != 1 {
		t.Fatalf("expected unexpected_hash_character, got %+v", coll.Diagnostics)
	}
}

func TestDivisionIsNotRegexByDefault(t *testing.T) {
	toks, coll := collectTokens(t, "5 / 2")
	want := []Kind{Number, Slash, Number, EndOfFile}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token[%d] = %s, want %s", i, toks[i].Kind, k)
		}
	}
	if coll.Count() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", coll.Diagnostics)
	}
}

func TestTemplateLiteralChunking(t *testing.T) {
	buf := source.NewBufferString("<test>", "`a${b}c`")
	lx := New(buf, errors.NopSink{}, nil)

	first := lx.Peek()
	if first.Kind != IncompleteTemplate {
		t.Fatalf("first chunk kind = %s, want incomplete_template", first.Kind)
	}
	templateOpenBegin := first.Span.Begin
	lx.Skip()

	ident := lx.Peek()
	if ident.Kind != Identifier || ident.Text(buf.Padded()) != "b" {
		t.Fatalf("expected identifier b, got %+v", ident)
	}
	lx.Skip()

	closeCurly := lx.Peek()
	if closeCurly.Kind != RightCurly {
		t.Fatalf("expected right curly before continuation, got %s", closeCurly.Kind)
	}
	second := lx.SkipInTemplate(templateOpenBegin)
	if second.Kind != CompleteTemplate {
		t.Fatalf("second chunk kind = %s, want complete_template", second.Kind)
	}
	if second.Text(buf.Padded()) != "}c`" {
		t.Fatalf("second chunk text = %q, want %q", second.Text(buf.Padded()), "}c`")
	}
}
