package errors

// messages holds the human-readable text for each catalogue entry, for
// reporters that render diagnostics rather than just counting them.
// Wording follows quick-lint-js's text/vim reporters
// (_examples/original_source/src/text-error-reporter.cpp): short,
// lower-case, no trailing punctuation.
var messages = map[Kind]string{
	UnclosedBlockComment:                    "unclosed block comment",
	UnclosedStringLiteral:                   "unclosed string literal",
	UnclosedTemplate:                        "unclosed template",
	UnclosedRegexpLiteral:                   "unclosed regexp literal",
	UnexpectedCharactersInNumber:             "unexpected characters in number literal",
	UnexpectedCharactersInOctalNumber:        "unexpected characters in octal literal",
	UnexpectedHashCharacter:                  "unexpected '#'",
	BigIntLiteralContainsDecimalPoint:        "BigInt literal contains decimal point",
	BigIntLiteralContainsExponent:            "BigInt literal contains exponent",
	BigIntLiteralContainsLeadingZero:         "BigInt literal has a leading 0 digit",
	MissingOperandForOperator:                "missing operand for operator",
	MissingSemicolonAfterExpression:          "missing semicolon after expression",
	MissingCommaBetweenObjectLiteralEntries:  "missing comma between object literal entries",
	UnmatchedParenthesis:                     "unmatched parenthesis",
	InvalidExpressionLeftOfAssignment:        "invalid expression left of assignment",
	InvalidBindingInLetStatement:             "invalid binding in let statement",
	LetWithNoBindings:                        "let with no bindings",
	StrayCommaInLetStatement:                 "stray comma in let statement",
	UnexpectedIdentifier:                     "unexpected identifier",
	UseOfUndeclaredVariable:                  "use of undeclared variable",
	AssignmentToUndeclaredVariable:           "assignment to undeclared variable",
	AssignmentToConstVariable:                "assignment to const variable",
	AssignmentToConstGlobalVariable:          "assignment to const global variable",
	AssignmentBeforeVariableDeclaration:      "variable assigned before its declaration",
	VariableUsedBeforeDeclaration:            "variable used before declaration",
	RedeclarationOfVariable:                  "redeclaration of variable",
	RedeclarationOfGlobalVariable:            "redeclaration of global variable",
	FatalUnsupportedConstruct:                "unsupported construct",
}

// secondaryMessages holds the "note:" text for diagnostics that carry a
// Secondary span, keyed the same as messages.
var secondaryMessages = map[Kind]string{
	AssignmentBeforeVariableDeclaration: "variable declared here",
	AssignmentToConstVariable:           "const variable declared here",
	VariableUsedBeforeDeclaration:       "variable declared here",
	RedeclarationOfVariable:             "variable already declared here",
	RedeclarationOfGlobalVariable:       "variable already declared here",
}

// Message returns the primary human-readable text for the diagnostic's
// kind.
func (d Diagnostic) Message() string {
	if m, ok := messages[d.Kind]; ok {
		return m
	}
	return d.Kind.String()
}

// SecondaryMessage returns the "note:" text to pair with Secondary, or
// "" if this kind has none.
func (d Diagnostic) SecondaryMessage() string {
	return secondaryMessages[d.Kind]
}
