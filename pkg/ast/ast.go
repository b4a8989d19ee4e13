// Package ast defines the expression-only AST (spec.md §3 "Expression
// node"): a single tagged-union node type allocated from a bump Arena
// tied to one parse. There is no persisted statement tree — the parser
// emits visit events for statement-level structure directly instead of
// building statement nodes (spec.md §4.4 "Visit emission").
package ast

import (
	"jslint/pkg/lexer"
	"jslint/pkg/source"
)

// Kind tags an Expr (spec.md §3).
type Kind int

const (
	Invalid Kind = iota
	Literal
	Variable
	NewTarget
	Super
	Import
	This

	// Unary forms.
	UnaryOperator
	Typeof
	Await
	Spread
	RWUnaryPrefix // prefix ++/--
	RWUnarySuffix // postfix ++/--

	// Binary forms.
	BinaryOperator // variadic, associative-flattened
	Assignment
	CompoundAssignment
	Dot
	Index
	Conditional // 3 children: test, consequent, alternate

	// Calls and constructors.
	Call
	New

	// Function forms.
	Function
	NamedFunction
	ArrowFunctionWithExpression
	ArrowFunctionWithStatements

	// Containers.
	Array
	Object
	Template
	TaggedTemplateLiteral
)

// Attributes tags a function's modifiers (spec.md §3 "attributes
// field").
type Attributes int

const (
	Normal Attributes = iota
	Async
)

// ExprID addresses one node inside an Arena. The zero value never
// denotes a live node (Arena.New starts numbering at 1), so ExprID
// also doubles as an "absent child" sentinel.
type ExprID int

// ObjectEntry is one entry of an Object expression: { optional
// property-expression, value-expression }. A missing Property (zero
// ExprID) denotes shorthand or spread (spec.md §3).
type ObjectEntry struct {
	Property ExprID
	Value    ExprID
	Computed bool
}

// Expr is the single tagged-union expression node (spec.md §3). Not
// every field is meaningful for every Kind; Arena.New allocates a node
// with only Kind and Span set, and the parser fills in the fields that
// the given Kind uses.
type Expr struct {
	Kind Kind
	Span source.Span

	// Op carries the operator token kind for UnaryOperator, Assignment,
	// CompoundAssignment, RWUnaryPrefix, RWUnarySuffix.
	Op lexer.Kind

	// Ops carries one operator per adjacent pair of Children for a
	// BinaryOperator node: len(Ops) == len(Children)-1. A chain of the
	// same left-associative precedence tier (e.g. `a+b-c`, mixing `+`
	// and `-`) collapses into one BinaryOperator node with three
	// Children and two Ops, rather than nesting (spec.md §4.4
	// "Associative flattening").
	Ops []lexer.Kind

	// Text carries literal/identifier text: the normalized name for
	// Variable/NamedFunction/Dot, the raw token text for Literal.
	Text string

	// A, B, C are fixed-position children: operand for unary forms;
	// left/right for Dot (object/property-as-text is in Text instead),
	// Index (object/index-expr), Assignment/CompoundAssignment
	// (target/value); test/consequent/alternate for Conditional;
	// callee for Call/New (args are in Children).
	A, B, C ExprID

	// Children holds variadic content: operand list for a flattened
	// BinaryOperator chain, call/new arguments, array elements,
	// template literal interpolated expressions.
	Children []ExprID

	// Entries holds Object's property/value pairs.
	Entries []ObjectEntry

	// Function holds function-literal-specific data for Function,
	// NamedFunction, ArrowFunctionWithExpression,
	// ArrowFunctionWithStatements.
	Function *FunctionData

	// Regexp carries the compiled pattern for a Literal expression
	// whose token kind was lexer.Regexp.
	Regexp *lexer.CompiledRegexp
}

// FunctionData is the payload shared by every function-expression Kind.
type FunctionData struct {
	Name       string // empty unless Kind == NamedFunction
	Params     []ExprID
	Attributes Attributes
	// Body is the single expression body for *WithExpression arrow
	// functions; for every other function Kind, statement-level body
	// content is not part of the AST (spec.md §3) — it is consumed by
	// the parser and replayed as visit events instead (spec.md §4.6
	// "Buffering visitor").
	Body ExprID
}
