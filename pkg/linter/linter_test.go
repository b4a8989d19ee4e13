package linter

import (
	"testing"

	"jslint/pkg/ast"
	"jslint/pkg/errors"
	"jslint/pkg/lexer"
	"jslint/pkg/parser"
	"jslint/pkg/source"
)

// lint runs the full lex/parse/lint pipeline over input and returns the
// collected diagnostics, mirroring how pkg/analysis wires the pieces.
func lint(t *testing.T, input string) *errors.Collector {
	t.Helper()
	buf := source.NewBufferString("<test>", input)
	coll := errors.NewCollector()
	lx := lexer.New(buf, coll, nil)
	arena := ast.NewArena()
	l := New(coll, DefaultGlobals)
	p := parser.NewParser(lx, buf, arena, coll, l, nil)
	p.Parse()
	return coll
}

func kinds(coll *errors.Collector) []errors.Kind {
	out := make([]errors.Kind, len(coll.Diagnostics))
	for i, d := range coll.Diagnostics {
		out[i] = d.Kind
	}
	return out
}

func assertKinds(t *testing.T, input string, want ...errors.Kind) {
	t.Helper()
	coll := lint(t, input)
	got := kinds(coll)
	if len(got) != len(want) {
		t.Fatalf("%q: diagnostics = %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: diagnostics = %v, want %v", input, got, want)
		}
	}
}

func TestUseOfUndeclaredVariable(t *testing.T) {
	assertKinds(t, `foo;`, errors.UseOfUndeclaredVariable)
}

func TestDeclaredVariableUseIsClean(t *testing.T) {
	assertKinds(t, `let x = 1; x;`)
}

func TestGlobalsAreVisibleEverywhere(t *testing.T) {
	assertKinds(t, `console.log(Math.max(1, 2));`)
}

func TestTypeofSuppressesUndeclaredDiagnostic(t *testing.T) {
	assertKinds(t, `typeof neverDeclared;`)
}

func TestTypeofOnDeclaredVariableIsClean(t *testing.T) {
	assertKinds(t, `let x; typeof x;`)
}

func TestAssignmentToUndeclaredVariable(t *testing.T) {
	assertKinds(t, `foo = 1;`, errors.AssignmentToUndeclaredVariable)
}

func TestAssignmentToConstVariable(t *testing.T) {
	assertKinds(t, `const x = 1; x = 2;`, errors.AssignmentToConstVariable)
}

func TestAssignmentToConstGlobalVariable(t *testing.T) {
	assertKinds(t, `undefined = 1;`, errors.AssignmentToConstGlobalVariable)
}

func TestImportBindingUseIsClean(t *testing.T) {
	assertKinds(t, `import x from "y"; x;`)
}

func TestAssignmentToImportBindingIsConstLike(t *testing.T) {
	assertKinds(t, `import x from "y"; x = 1;`, errors.AssignmentToConstVariable)
}

func TestRedeclarationOfLetInSameScope(t *testing.T) {
	assertKinds(t, `let x = 1; let x = 2;`, errors.RedeclarationOfVariable)
}

func TestRedeclarationOfGlobalVariable(t *testing.T) {
	assertKinds(t, `let undefined = 1;`, errors.RedeclarationOfGlobalVariable)
}

func TestVarRedeclarationMergesSilently(t *testing.T) {
	assertKinds(t, `var x = 1; var x = 2; x;`)
}

// var and function declarations of the same name coexist regardless of
// which comes first — the conflict-checked set is {let, const, class,
// function} and var sits outside it either way round.
func TestVarThenFunctionDoNotConflict(t *testing.T) {
	assertKinds(t, `var f; function f() {} f();`)
}

func TestFunctionThenVarDoNotConflict(t *testing.T) {
	assertKinds(t, `function f() {} var f; f();`)
}

func TestLetInDistinctBlocksDoNotConflict(t *testing.T) {
	assertKinds(t, `{ let x = 1; } { let x = 2; }`)
}

func TestVariableUsedBeforeDeclaration(t *testing.T) {
	assertKinds(t, `x; let x = 1;`, errors.VariableUsedBeforeDeclaration)
}

func TestAssignmentBeforeVariableDeclaration(t *testing.T) {
	assertKinds(t, `x = 1; let x;`, errors.AssignmentBeforeVariableDeclaration)
}

func TestFunctionScopeAllowsUseBeforeVarDeclaration(t *testing.T) {
	assertKinds(t, `function f() { g(); var g = function() {}; } f();`)
}

func TestVarHoistsOutOfBlockToEnclosingFunction(t *testing.T) {
	assertKinds(t, `function f() { { var x = 1; } return x; } f();`)
}

func TestFunctionDeclarationHoistsOutOfBlock(t *testing.T) {
	assertKinds(t, `function f() { { function g() {} } g(); } f();`)
}

func TestParameterAndHoistedVarCoexist(t *testing.T) {
	assertKinds(t, `function f(a) { var a; return a; } f(1);`)
}

func TestNamedFunctionExpressionSelfBindingIsLocal(t *testing.T) {
	assertKinds(t, `let f = function self() { return self; }; f();`)
	assertKinds(t, `let f = function self() { return self; }; self;`,
		errors.UseOfUndeclaredVariable)
}

func TestParameterShadowsOuterVariable(t *testing.T) {
	assertKinds(t, `let x = 1; function f(x) { return x; } f(2);`)
}

func TestForScopeLetIsBlockScoped(t *testing.T) {
	assertKinds(t, `for (let i = 0; i < 1; i = i + 1) { i; } i;`,
		errors.UseOfUndeclaredVariable)
}

func TestNestedFunctionClosesOverOuterVariable(t *testing.T) {
	assertKinds(t, `function outer() { let x = 1; function inner() { return x; } return inner; } outer();`)
}

func TestClassUsedBeforeDeclarationIsTDZ(t *testing.T) {
	assertKinds(t, `new C(); class C {}`, errors.VariableUsedBeforeDeclaration)
}
