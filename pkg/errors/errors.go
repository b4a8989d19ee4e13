// Package errors defines the closed diagnostic catalogue (spec.md §7),
// the Diagnostic value type, and the Sink interface every component
// (lexer, parser, linter) reports into.
package errors

import "jslint/pkg/source"

// Kind is one tag from the closed diagnostic catalogue. Every
// implementation of this analyzer supports exactly this set; there is no
// extension point — adding a new kind means updating this file, the
// catalogue in spec.md §7, and every Sink implementation's switch.
type Kind int

const (
	// Lexer diagnostics.
	UnclosedBlockComment Kind = iota
	UnclosedStringLiteral
	UnclosedTemplate
	UnclosedRegexpLiteral
	UnexpectedCharactersInNumber
	UnexpectedCharactersInOctalNumber
	UnexpectedHashCharacter
	BigIntLiteralContainsDecimalPoint
	BigIntLiteralContainsExponent
	BigIntLiteralContainsLeadingZero

	// Parser diagnostics.
	MissingOperandForOperator
	MissingSemicolonAfterExpression
	MissingCommaBetweenObjectLiteralEntries
	UnmatchedParenthesis
	InvalidExpressionLeftOfAssignment
	InvalidBindingInLetStatement
	LetWithNoBindings
	StrayCommaInLetStatement
	UnexpectedIdentifier

	// Linter diagnostics.
	UseOfUndeclaredVariable
	AssignmentToUndeclaredVariable
	AssignmentToConstVariable
	AssignmentToConstGlobalVariable
	AssignmentBeforeVariableDeclaration
	VariableUsedBeforeDeclaration
	RedeclarationOfVariable
	RedeclarationOfGlobalVariable

	// FatalUnsupportedConstruct is the one diagnostic under which analysis
	// terminates early (spec.md §7): a source construct the lexer cannot
	// tokenize at all.
	FatalUnsupportedConstruct
)

var kindNames = map[Kind]string{
	UnclosedBlockComment:                    "unclosed_block_comment",
	UnclosedStringLiteral:                   "unclosed_string_literal",
	UnclosedTemplate:                        "unclosed_template",
	UnclosedRegexpLiteral:                   "unclosed_regexp_literal",
	UnexpectedCharactersInNumber:             "unexpected_characters_in_number",
	UnexpectedCharactersInOctalNumber:        "unexpected_characters_in_octal_number",
	UnexpectedHashCharacter:                  "unexpected_hash_character",
	BigIntLiteralContainsDecimalPoint:        "big_int_literal_contains_decimal_point",
	BigIntLiteralContainsExponent:            "big_int_literal_contains_exponent",
	BigIntLiteralContainsLeadingZero:         "big_int_literal_contains_leading_zero",
	MissingOperandForOperator:                "missing_operand_for_operator",
	MissingSemicolonAfterExpression:          "missing_semicolon_after_expression",
	MissingCommaBetweenObjectLiteralEntries:  "missing_comma_between_object_literal_entries",
	UnmatchedParenthesis:                     "unmatched_parenthesis",
	InvalidExpressionLeftOfAssignment:        "invalid_expression_left_of_assignment",
	InvalidBindingInLetStatement:             "invalid_binding_in_let_statement",
	LetWithNoBindings:                        "let_with_no_bindings",
	StrayCommaInLetStatement:                 "stray_comma_in_let_statement",
	UnexpectedIdentifier:                     "unexpected_identifier",
	UseOfUndeclaredVariable:                  "use_of_undeclared_variable",
	AssignmentToUndeclaredVariable:           "assignment_to_undeclared_variable",
	AssignmentToConstVariable:                "assignment_to_const_variable",
	AssignmentToConstGlobalVariable:          "assignment_to_const_global_variable",
	AssignmentBeforeVariableDeclaration:      "assignment_before_variable_declaration",
	VariableUsedBeforeDeclaration:            "variable_used_before_declaration",
	RedeclarationOfVariable:                  "redeclaration_of_variable",
	RedeclarationOfGlobalVariable:            "redeclaration_of_global_variable",
	FatalUnsupportedConstruct:                "fatal_unsupported_construct",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown_diagnostic"
}

// Diagnostic is the single tagged-union value every component reports
// (spec.md §6, Design Notes "Polymorphic diagnostic sink"). Secondary is
// present for diagnostics that reference a second location, such as the
// original declaration in a redeclaration report.
type Diagnostic struct {
	Kind         Kind
	Primary      source.Span
	Secondary    *source.Span
	VariableKind *VariableKind
}

// New builds a bare diagnostic with only a primary span.
func New(kind Kind, primary source.Span) Diagnostic {
	return Diagnostic{Kind: kind, Primary: primary}
}

// WithSecondary attaches a secondary span (e.g. the original declaration)
// and returns the diagnostic for chaining.
func (d Diagnostic) WithSecondary(s source.Span) Diagnostic {
	d.Secondary = &s
	return d
}

// WithVariableKind attaches the kind of the variable involved and
// returns the diagnostic for chaining.
func (d Diagnostic) WithVariableKind(k VariableKind) Diagnostic {
	d.VariableKind = &k
	return d
}

// Sink receives diagnostics in emission order. Implementations must be
// non-blocking and must not panic (spec.md §4.2); the default in-process
// implementation is Collector.
type Sink interface {
	Report(d Diagnostic)
}

// Collector is the default in-memory Sink, used by tests and by callers
// that want to inspect diagnostics rather than stream them.
type Collector struct {
	Diagnostics []Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// Count returns the number of diagnostics collected so far (spec.md §8
// testable property 4: diagnostic counts are deterministic for a given
// input).
func (c *Collector) Count() int {
	return len(c.Diagnostics)
}

// OfKind filters the collected diagnostics by kind, preserving order.
func (c *Collector) OfKind(k Kind) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.Diagnostics {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

// NopSink discards every diagnostic. Useful for callers (and benchmarks)
// that only care about side effects like the arena or the visit stream.
type NopSink struct{}

func (NopSink) Report(Diagnostic) {}
