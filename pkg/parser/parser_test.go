package parser

import (
	"testing"

	"jslint/pkg/ast"
	"jslint/pkg/errors"
	"jslint/pkg/lexer"
	"jslint/pkg/source"
)

// parseOne parses input and returns the arena, the first top-level
// expression, and the diagnostics collected along the way (spec.md §8
// "Concrete scenarios").
func parseOne(t *testing.T, input string) (*ast.Arena, ast.ExprID, *errors.Collector) {
	t.Helper()
	buf := source.NewBufferString("<test>", input)
	coll := errors.NewCollector()
	lx := lexer.New(buf, coll, nil)
	arena := ast.NewArena()
	p := NewParser(lx, buf, arena, coll, NewBufferedVisitor(), nil)
	top := p.Parse()
	if len(top) == 0 {
		return arena, 0, coll
	}
	return arena, top[0], coll
}

func diagnosticKinds(coll *errors.Collector) []errors.Kind {
	out := make([]errors.Kind, len(coll.Diagnostics))
	for i, d := range coll.Diagnostics {
		out[i] = d.Kind
	}
	return out
}

// Scenario 1: `x` — one variable expression, no diagnostics.
func TestScenarioBareIdentifier(t *testing.T) {
	arena, id, coll := parseOne(t, "x")
	if arena.Kind(id) != ast.Variable {
		t.Fatalf("kind = %v, want Variable", arena.Kind(id))
	}
	if arena.VariableName(id) != "x" {
		t.Fatalf("name = %q, want x", arena.VariableName(id))
	}
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v, want none", diagnosticKinds(coll))
	}
}

// Scenario 2: `2 * * 2` — one binary node, one missing_operand_for_operator
// at [2,3).
func TestScenarioMissingOperand(t *testing.T) {
	arena, id, coll := parseOne(t, "2 * * 2")
	if arena.Kind(id) != ast.BinaryOperator {
		t.Fatalf("kind = %v, want BinaryOperator", arena.Kind(id))
	}
	if arena.ChildCount(id) != 3 {
		t.Fatalf("children = %d, want 3 (lhs, invalid operand, rhs)", arena.ChildCount(id))
	}
	kinds := diagnosticKinds(coll)
	if len(kinds) != 1 || kinds[0] != errors.MissingOperandForOperator {
		t.Fatalf("diagnostics = %v, want [missing_operand_for_operator]", kinds)
	}
	if got := coll.Diagnostics[0].Primary; got.Begin != 2 || got.End != 3 {
		t.Fatalf("span = %v, want [2,3)", got)
	}
}

// Scenario 3: `2 * (3 + 4` — binary collapsing to (literal, binary(literal,
// literal)), one unmatched_parenthesis at the '(' [4,5).
func TestScenarioUnmatchedParenthesis(t *testing.T) {
	arena, id, coll := parseOne(t, "2 * (3 + 4")
	if arena.Kind(id) != ast.BinaryOperator {
		t.Fatalf("kind = %v, want BinaryOperator", arena.Kind(id))
	}
	if arena.ChildCount(id) != 2 {
		t.Fatalf("children = %d, want 2", arena.ChildCount(id))
	}
	inner := arena.Child(id, 1)
	if arena.Kind(inner) != ast.BinaryOperator {
		t.Fatalf("inner kind = %v, want BinaryOperator", arena.Kind(inner))
	}
	kinds := diagnosticKinds(coll)
	if len(kinds) != 1 || kinds[0] != errors.UnmatchedParenthesis {
		t.Fatalf("diagnostics = %v, want [unmatched_parenthesis]", kinds)
	}
	if got := coll.Diagnostics[0].Primary; got.Begin != 4 || got.End != 5 {
		t.Fatalf("span = %v, want [4,5)", got)
	}
}

// Scenario 4: `f()=x` — invalid_expression_left_of_assignment at the span
// of `f()`.
func TestScenarioInvalidAssignmentTarget(t *testing.T) {
	_, _, coll := parseOne(t, "f()=x")
	kinds := diagnosticKinds(coll)
	found := false
	for _, k := range kinds {
		if k == errors.InvalidExpressionLeftOfAssignment {
			found = true
		}
	}
	if !found {
		t.Fatalf("diagnostics = %v, want invalid_expression_left_of_assignment", kinds)
	}
}

// Scenario 7: `w\u{61}t` — one identifier token; normalized_name ==
// "wat"; span still covers the raw 7 bytes.
func TestScenarioUnicodeEscapeIdentifier(t *testing.T) {
	input := `w\u{61}t`
	arena, id, coll := parseOne(t, input)
	if arena.Kind(id) != ast.Variable {
		t.Fatalf("kind = %v, want Variable", arena.Kind(id))
	}
	if arena.VariableName(id) != "wat" {
		t.Fatalf("name = %q, want wat", arena.VariableName(id))
	}
	span := arena.Span(id)
	if span.End-span.Begin != len(input) {
		t.Fatalf("span length = %d, want %d", span.End-span.Begin, len(input))
	}
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v, want none", diagnosticKinds(coll))
	}
}

// Scenario 8: `a${b}c${d}e` — one template expression with children
// [var b, var d].
func TestScenarioTemplateLiteralInterpolations(t *testing.T) {
	arena, id, coll := parseOne(t, "`a${b}c${d}e`")
	if arena.Kind(id) != ast.Template {
		t.Fatalf("kind = %v, want Template", arena.Kind(id))
	}
	if arena.ChildCount(id) != 2 {
		t.Fatalf("children = %d, want 2", arena.ChildCount(id))
	}
	if got := arena.VariableName(arena.Child(id, 0)); got != "b" {
		t.Fatalf("child 0 = %q, want b", got)
	}
	if got := arena.VariableName(arena.Child(id, 1)); got != "d" {
		t.Fatalf("child 1 = %q, want d", got)
	}
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v, want none", diagnosticKinds(coll))
	}
}

// Scenario 9: `x\n++\ny` — two statements, `x` then prefix `++y`; ASI
// inserted between.
func TestScenarioASIBetweenStatements(t *testing.T) {
	buf := source.NewBufferString("<test>", "x\n++\ny")
	coll := errors.NewCollector()
	lx := lexer.New(buf, coll, nil)
	arena := ast.NewArena()
	p := NewParser(lx, buf, arena, coll, NewBufferedVisitor(), nil)
	top := p.Parse()
	if len(top) != 2 {
		t.Fatalf("top-level statements = %d, want 2", len(top))
	}
	if arena.Kind(top[0]) != ast.Variable || arena.VariableName(top[0]) != "x" {
		t.Fatalf("first statement = %v %q, want Variable x", arena.Kind(top[0]), arena.VariableName(top[0]))
	}
	if arena.Kind(top[1]) != ast.RWUnaryPrefix {
		t.Fatalf("second statement kind = %v, want RWUnaryPrefix", arena.Kind(top[1]))
	}
}

// Universal property 8: for any chain `a op b op c` with the same
// left-associative op, the resulting binary_operator node has exactly
// three children in source order.
func TestAssociativeFlatteningThreeChildren(t *testing.T) {
	arena, id, _ := parseOne(t, "a + b + c")
	if arena.Kind(id) != ast.BinaryOperator {
		t.Fatalf("kind = %v, want BinaryOperator", arena.Kind(id))
	}
	if arena.ChildCount(id) != 3 {
		t.Fatalf("children = %d, want 3", arena.ChildCount(id))
	}
	names := []string{"a", "b", "c"}
	for i, want := range names {
		if got := arena.VariableName(arena.Child(id, i)); got != want {
			t.Fatalf("child %d = %q, want %q", i, got, want)
		}
	}
}

// Mixed-operator chains at the same precedence tier still flatten into
// one node, with Ops recording which operator separates which pair.
func TestAssociativeFlatteningMixedOperators(t *testing.T) {
	arena, id, _ := parseOne(t, "a + b - c")
	node := arena.Get(id)
	if node.Kind != ast.BinaryOperator {
		t.Fatalf("kind = %v, want BinaryOperator", node.Kind)
	}
	if len(node.Children) != 3 || len(node.Ops) != 2 {
		t.Fatalf("children = %d, ops = %d, want 3 and 2", len(node.Children), len(node.Ops))
	}
	if node.Ops[0] != lexer.Plus || node.Ops[1] != lexer.Minus {
		t.Fatalf("ops = %v, want [+ -]", node.Ops)
	}
}

// Universal property 9: `(e)` and `e` produce structurally identical
// AST, with the parenthesized form's span starting at the opening paren.
func TestParenthesizedExpressionSpanWidensToOpenParen(t *testing.T) {
	bareArena, bareID, _ := parseOne(t, "a + b")
	parenArena, parenID, _ := parseOne(t, "(a + b)")

	if bareArena.Kind(bareID) != parenArena.Kind(parenID) {
		t.Fatalf("kinds differ: %v vs %v", bareArena.Kind(bareID), parenArena.Kind(parenID))
	}
	bareSpan := bareArena.Span(bareID)
	parenSpan := parenArena.Span(parenID)
	if parenSpan.Begin != 0 {
		t.Fatalf("paren span begin = %d, want 0 (covers the opening paren)", parenSpan.Begin)
	}
	if parenSpan.End-parenSpan.Begin != bareSpan.End-bareSpan.Begin+2 {
		t.Fatalf("paren span length = %d, want bare length + 2", parenSpan.End-parenSpan.Begin)
	}
}

// Regex/division disambiguation: a leading slash after an operand is
// division, not a regex literal.
func TestDivisionAfterOperandIsNotRegexp(t *testing.T) {
	arena, id, coll := parseOne(t, "a / b")
	if arena.Kind(id) != ast.BinaryOperator {
		t.Fatalf("kind = %v, want BinaryOperator", arena.Kind(id))
	}
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v, want none", diagnosticKinds(coll))
	}
}

// parseEvents parses input with a BufferedVisitor and returns it
// alongside the diagnostics, for tests that need to inspect the
// declaration/use event stream rather than the AST.
func parseEvents(t *testing.T, input string) (*BufferedVisitor, *errors.Collector) {
	t.Helper()
	buf := source.NewBufferString("<test>", input)
	coll := errors.NewCollector()
	lx := lexer.New(buf, coll, nil)
	arena := ast.NewArena()
	bv := NewBufferedVisitor()
	p := NewParser(lx, buf, arena, coll, bv, nil)
	p.Parse()
	return bv, coll
}

func declarationsOf(bv *BufferedVisitor) map[string]errors.VariableKind {
	out := map[string]errors.VariableKind{}
	for _, e := range bv.events {
		if e.kind == evVariableDeclaration {
			out[e.name] = e.vk
		}
	}
	return out
}

func usesOf(bv *BufferedVisitor) []string {
	var out []string
	for _, e := range bv.events {
		if e.kind == evVariableUse {
			out = append(out, e.name)
		}
	}
	return out
}

// `import x from "y";` declares x with kind import (spec.md §3).
func TestImportDefaultBindingDeclaresImportKind(t *testing.T) {
	bv, coll := parseEvents(t, `import x from "y";`)
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v, want none", diagnosticKinds(coll))
	}
	decls := declarationsOf(bv)
	if decls["x"] != errors.VariableKindImport {
		t.Fatalf("x kind = %v, want import", decls["x"])
	}
}

// `import { a as b } from "y";` binds only the local name b — the
// imported name a is never a local declaration or use.
func TestImportNamedBindingWithRename(t *testing.T) {
	bv, _ := parseEvents(t, `import { a as b } from "y";`)
	decls := declarationsOf(bv)
	if decls["b"] != errors.VariableKindImport {
		t.Fatalf("b kind = %v, want import", decls["b"])
	}
	if _, ok := decls["a"]; ok {
		t.Fatalf("a should not be declared, got %v", decls["a"])
	}
}

// `import * as ns from "y";` declares the namespace binding ns.
func TestImportNamespaceBinding(t *testing.T) {
	bv, _ := parseEvents(t, `import * as ns from "y";`)
	decls := declarationsOf(bv)
	if decls["ns"] != errors.VariableKindImport {
		t.Fatalf("ns kind = %v, want import", decls["ns"])
	}
}

// `import "y";` is side-effect-only: no bindings at all.
func TestImportSideEffectOnlyDeclaresNothing(t *testing.T) {
	bv, coll := parseEvents(t, `import "y";`)
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v, want none", diagnosticKinds(coll))
	}
	if decls := declarationsOf(bv); len(decls) != 0 {
		t.Fatalf("decls = %v, want none", decls)
	}
}

// Dynamic `import(x)` is an ordinary expression, not the declaration
// form: x is a variable use, and the statement parses as a call over
// an Import node rather than an import declaration.
func TestDynamicImportIsExpression(t *testing.T) {
	arena, id, coll := parseOne(t, `import(x);`)
	if arena.Kind(id) != ast.Call {
		t.Fatalf("kind = %v, want Call", arena.Kind(id))
	}
	if arena.Kind(arena.Get(id).A) != ast.Import {
		t.Fatalf("callee kind = %v, want Import", arena.Kind(arena.Get(id).A))
	}
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v, want none", diagnosticKinds(coll))
	}
}

// `export function f() {}` declares f the same way a bare function
// declaration would.
func TestExportNamedFunctionDeclares(t *testing.T) {
	bv, _ := parseEvents(t, `export function f() {}`)
	decls := declarationsOf(bv)
	if decls["f"] != errors.VariableKindFunction {
		t.Fatalf("f kind = %v, want function", decls["f"])
	}
}

// An anonymous `export default function() {}` binds no local name.
func TestExportDefaultAnonymousFunctionDeclaresNothing(t *testing.T) {
	bv, _ := parseEvents(t, `export default function() {};`)
	if decls := declarationsOf(bv); len(decls) != 0 {
		t.Fatalf("decls = %v, want none", decls)
	}
}

// `export { a, b as c };` (no `from`) references the existing local
// bindings a and b — c is only the external export name.
func TestExportNamedListUsesLocalBindings(t *testing.T) {
	bv, _ := parseEvents(t, `var a, b; export { a, b as c };`)
	uses := usesOf(bv)
	want := map[string]bool{"a": true, "b": true}
	for _, u := range uses {
		if u == "c" {
			t.Fatalf("uses = %v, should not reference export-as name c", uses)
		}
		delete(want, u)
	}
	if len(want) != 0 {
		t.Fatalf("uses = %v, missing %v", uses, want)
	}
}

// `export { a } from "y";` is a re-export: a lives in the other
// module, so it produces no local declaration or use event.
func TestExportReExportProducesNoLocalEvents(t *testing.T) {
	bv, coll := parseEvents(t, `export { a } from "y";`)
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v, want none", diagnosticKinds(coll))
	}
	if decls := declarationsOf(bv); len(decls) != 0 {
		t.Fatalf("decls = %v, want none", decls)
	}
	if uses := usesOf(bv); len(uses) != 0 {
		t.Fatalf("uses = %v, want none", uses)
	}
}

// `export * from "y";` likewise produces no local events.
func TestExportAllProducesNoLocalEvents(t *testing.T) {
	bv, coll := parseEvents(t, `export * from "y";`)
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v, want none", diagnosticKinds(coll))
	}
	if decls := declarationsOf(bv); len(decls) != 0 {
		t.Fatalf("decls = %v, want none", decls)
	}
}

// Regex literal in an operand position compiles via regexp2 and carries
// its pattern and flags on the AST node's Regexp field.
func TestRegexpLiteralInOperandPosition(t *testing.T) {
	arena, id, coll := parseOne(t, `/ab+c/gi`)
	if arena.Kind(id) != ast.Literal {
		t.Fatalf("kind = %v, want Literal", arena.Kind(id))
	}
	node := arena.Get(id)
	if node.Regexp == nil {
		t.Fatalf("Regexp = nil, want a compiled pattern")
	}
	if node.Regexp.Pattern != "ab+c" || node.Regexp.Flags != "gi" {
		t.Fatalf("pattern/flags = %q/%q, want ab+c/gi", node.Regexp.Pattern, node.Regexp.Flags)
	}
	if len(coll.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v, want none", diagnosticKinds(coll))
	}
}
