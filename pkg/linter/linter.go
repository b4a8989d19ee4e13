// Package linter implements the scope-resolving Visitor (spec.md §4.5):
// a stack of scopes fed by the parser's visit-event stream, propagating
// unresolved uses outward on scope exit and reporting the linter slice
// of the diagnostic catalogue (spec.md §7).
package linter

import (
	"jslint/pkg/errors"
	"jslint/pkg/parser"
	"jslint/pkg/source"
)

type scopeKind int

const (
	scopeModule scopeKind = iota
	scopeFunction
	scopeBlock // also covers for- and catch-scopes (spec.md §4.5)
	scopeClass
)

// declaration is what a scope remembers about one declared name.
type declaration struct {
	kind    errors.VariableKind
	span    source.Span
	hasSpan bool // false for predefined globals, which have no source span
}

type useKind int

const (
	useRead useKind = iota
	useTypeof
	useAssign
)

type pendingUse struct {
	name string
	span source.Span
	kind useKind
}

type scope struct {
	kind        scopeKind
	decls       map[string]*declaration
	pendingUses []pendingUse
}

func newScope(kind scopeKind) *scope {
	return &scope{kind: kind, decls: make(map[string]*declaration)}
}

// Linter resolves variable uses against declarations across a stack of
// scopes and reports the resulting diagnostics. It implements
// parser.Visitor directly; the parser drives it (or a BufferedVisitor
// that later replays into it) as it walks the token stream.
type Linter struct {
	sink   errors.Sink
	scopes []*scope
}

var _ parser.Visitor = (*Linter)(nil)

// New returns a Linter whose module scope is pre-populated with globals
// as const declarations (spec.md §4.5), so that assignments to them
// report assignment_to_const_global_variable. A nil globals slice uses
// DefaultGlobals.
func New(sink errors.Sink, globals []string) *Linter {
	if globals == nil {
		globals = DefaultGlobals
	}
	module := newScope(scopeModule)
	for _, name := range globals {
		module.decls[name] = &declaration{kind: errors.VariableKindConst}
	}
	return &Linter{sink: sink, scopes: []*scope{module}}
}

func (l *Linter) current() *scope { return l.scopes[len(l.scopes)-1] }

func (l *Linter) push(kind scopeKind) *scope {
	s := newScope(kind)
	l.scopes = append(l.scopes, s)
	return s
}

func (l *Linter) EnterBlockScope()    { l.push(scopeBlock) }
func (l *Linter) EnterForScope()      { l.push(scopeBlock) }
func (l *Linter) EnterClassScope()    { l.push(scopeClass) }
func (l *Linter) EnterFunctionScope() { l.push(scopeFunction) }

func (l *Linter) EnterNamedFunctionScope(name string) {
	s := l.push(scopeFunction)
	// The function expression's own name is visible only inside its
	// body, as a function-kind self-binding (spec.md §4.5).
	s.decls[name] = &declaration{kind: errors.VariableKindFunction}
}

// EnterFunctionScopeBody marks the parameter/body boundary. Parameters
// and hoisted body declarations share one scope in this model; the
// coexistence rule that boundary exists for is enforced uniformly in
// VariableDeclaration instead, so this is a no-op here.
func (l *Linter) EnterFunctionScopeBody() {}

func (l *Linter) ExitBlockScope()    { l.exitScope() }
func (l *Linter) ExitForScope()      { l.exitScope() }
func (l *Linter) ExitClassScope()    { l.exitScope() }
func (l *Linter) ExitFunctionScope() { l.exitScope() }

// exitScope runs the propagation algorithm (spec.md §4.5) then pops.
func (l *Linter) exitScope() {
	s := l.scopes[len(l.scopes)-1]
	l.scopes = l.scopes[:len(l.scopes)-1]
	parent := l.current()

	for _, u := range s.pendingUses {
		if d, ok := s.decls[u.name]; ok {
			l.checkResolvedUse(s, d, u)
		} else {
			parent.pendingUses = append(parent.pendingUses, u)
		}
	}

	if s.kind == scopeFunction {
		return
	}
	target := l.nearestFunctionOrModuleScope()
	for name, d := range s.decls {
		if !d.kind.Hoists() {
			continue
		}
		if _, exists := target.decls[name]; !exists {
			target.decls[name] = &declaration{kind: d.kind, span: d.span, hasSpan: d.hasSpan}
		}
	}
}

func (l *Linter) nearestFunctionOrModuleScope() *scope {
	for i := len(l.scopes) - 1; i >= 0; i-- {
		if l.scopes[i].kind == scopeFunction || l.scopes[i].kind == scopeModule {
			return l.scopes[i]
		}
	}
	return l.scopes[0]
}

// tdzChecked reports whether kind is ever subject to temporal-dead-zone
// checking. Only let/const/class can be used before their declaration
// in a way that's illegal — var and function are always hoisted, so a
// use that resolves to one is never premature regardless of which scope
// it's resolved in (spec.md §4.5 step 2, read as declaration-kind-driven
// rather than scope-kind-driven).
func tdzChecked(kind errors.VariableKind) bool {
	return kind == errors.VariableKindLet || kind == errors.VariableKindConst || kind == errors.VariableKindClass
}

func (l *Linter) VariableDeclaration(name string, kind errors.VariableKind, span source.Span) {
	s := l.current()
	existing, ok := s.decls[name]

	if kind == errors.VariableKindParameter {
		// Parameters always bind fresh: a later parameter of the same
		// name shadows an earlier one, and a same-named function
		// self-binding (enter_named_function_scope) is shadowed too.
		s.decls[name] = &declaration{kind: kind, span: span, hasSpan: true}
		return
	}

	if !ok {
		s.decls[name] = &declaration{kind: kind, span: span, hasSpan: true}
		return
	}

	if kind == errors.VariableKindVar {
		// var re-declarations merge silently, regardless of what's
		// already declared under that name (spec.md §4.5).
		return
	}

	if existing.kind == errors.VariableKindParameter && kind.Hoists() {
		// Hoisted var/function coexists with a parameter of the same
		// name without conflict (spec.md §4.5).
		return
	}

	if existing.kind == errors.VariableKindVar && kind.Hoists() {
		// var and function freely coexist regardless of which was
		// declared first — the conflict-checked set is {let, const,
		// class, function} and var sits outside it either way round
		// (spec.md §4.5). The later declaration still wins the
		// tracked span so redeclaration_of_variable's secondary span
		// stays accurate for any later, genuinely conflicting
		// declaration of the same name.
		s.decls[name] = &declaration{kind: kind, span: span, hasSpan: true}
		return
	}

	diagKind := errors.RedeclarationOfVariable
	if s.kind == scopeModule && !existing.hasSpan {
		// Only the seeded predefined globals carry no source span.
		diagKind = errors.RedeclarationOfGlobalVariable
	}
	d := errors.New(diagKind, span).WithVariableKind(kind)
	if existing.hasSpan {
		d = d.WithSecondary(existing.span)
	}
	l.sink.Report(d)
}

func (l *Linter) VariableUse(name string, span source.Span) {
	l.current().pendingUses = append(l.current().pendingUses, pendingUse{name: name, span: span, kind: useRead})
}

func (l *Linter) VariableTypeofUse(name string, span source.Span) {
	l.current().pendingUses = append(l.current().pendingUses, pendingUse{name: name, span: span, kind: useTypeof})
}

func (l *Linter) VariableAssignment(name string, span source.Span) {
	l.current().pendingUses = append(l.current().pendingUses, pendingUse{name: name, span: span, kind: useAssign})
}

// checkResolvedUse applies the legality checks of spec.md §4.5 step 2 to
// a use that resolved against d within s.
func (l *Linter) checkResolvedUse(s *scope, d *declaration, u pendingUse) {
	if u.kind == useAssign && d.kind.IsReadOnly() {
		diagKind := errors.AssignmentToConstVariable
		if s.kind == scopeModule && !d.hasSpan {
			// Only the seeded predefined globals carry no source span.
			diagKind = errors.AssignmentToConstGlobalVariable
		}
		diag := errors.New(diagKind, u.span).WithVariableKind(d.kind)
		if d.hasSpan {
			diag = diag.WithSecondary(d.span)
		}
		l.sink.Report(diag)
		return
	}

	if tdzChecked(d.kind) && d.hasSpan && u.span.Begin < d.span.Begin {
		if u.kind == useAssign {
			l.sink.Report(errors.New(errors.AssignmentBeforeVariableDeclaration, u.span).
				WithVariableKind(d.kind).WithSecondary(d.span))
		} else {
			l.sink.Report(errors.New(errors.VariableUsedBeforeDeclaration, u.span).
				WithVariableKind(d.kind).WithSecondary(d.span))
		}
	}
}

// EndOfModule resolves every use that propagated all the way out to the
// module scope (spec.md §4.5).
func (l *Linter) EndOfModule() {
	s := l.scopes[0]
	for _, u := range s.pendingUses {
		d, ok := s.decls[u.name]
		if ok {
			l.checkResolvedUse(s, d, u)
			continue
		}
		switch u.kind {
		case useAssign:
			l.sink.Report(errors.New(errors.AssignmentToUndeclaredVariable, u.span))
		case useTypeof:
			// typeof is silent on an undeclared name (spec.md §4.5).
		default:
			l.sink.Report(errors.New(errors.UseOfUndeclaredVariable, u.span))
		}
	}
	s.pendingUses = nil
}
