package parser

import (
	"jslint/pkg/errors"
	"jslint/pkg/source"
)

// Visitor receives the visit-event stream the parser emits alongside
// AST construction (spec.md §4.4 "Visit emission", §4.5). The linter
// is the production implementation; tests may substitute a recording
// Visitor to assert event order without going through scope
// resolution.
type Visitor interface {
	EnterBlockScope()
	EnterForScope()
	EnterClassScope()
	EnterFunctionScope()
	EnterNamedFunctionScope(name string)
	EnterFunctionScopeBody()
	ExitBlockScope()
	ExitForScope()
	ExitClassScope()
	ExitFunctionScope()

	VariableDeclaration(name string, kind errors.VariableKind, span source.Span)
	VariableUse(name string, span source.Span)
	VariableTypeofUse(name string, span source.Span)
	VariableAssignment(name string, span source.Span)

	EndOfModule()
}

// event is one recorded call against Visitor, used by BufferedVisitor.
type eventKind int

const (
	evEnterBlockScope eventKind = iota
	evEnterForScope
	evEnterClassScope
	evEnterFunctionScope
	evEnterNamedFunctionScope
	evEnterFunctionScopeBody
	evExitBlockScope
	evExitForScope
	evExitClassScope
	evExitFunctionScope
	evVariableDeclaration
	evVariableUse
	evVariableTypeofUse
	evVariableAssignment
	evEndOfModule
)

type event struct {
	kind eventKind
	name string
	vk   errors.VariableKind
	span source.Span
}

// BufferedVisitor records visit events instead of acting on them
// immediately, and replays them into a real Visitor later (spec.md
// §4.6 "Buffering visitor"). Function-expression bodies are parsed
// into a BufferedVisitor so their declarations/uses can be replayed
// into the linter only once the surrounding expression commits, which
// keeps use-before-declaration checks seeing the correct source order
// relative to sibling expressions evaluated first.
type BufferedVisitor struct {
	events []event
}

func NewBufferedVisitor() *BufferedVisitor { return &BufferedVisitor{} }

func (b *BufferedVisitor) EnterBlockScope()    { b.events = append(b.events, event{kind: evEnterBlockScope}) }
func (b *BufferedVisitor) EnterForScope()      { b.events = append(b.events, event{kind: evEnterForScope}) }
func (b *BufferedVisitor) EnterClassScope()    { b.events = append(b.events, event{kind: evEnterClassScope}) }
func (b *BufferedVisitor) EnterFunctionScope() { b.events = append(b.events, event{kind: evEnterFunctionScope}) }
func (b *BufferedVisitor) EnterNamedFunctionScope(name string) {
	b.events = append(b.events, event{kind: evEnterNamedFunctionScope, name: name})
}
func (b *BufferedVisitor) EnterFunctionScopeBody() {
	b.events = append(b.events, event{kind: evEnterFunctionScopeBody})
}
func (b *BufferedVisitor) ExitBlockScope()    { b.events = append(b.events, event{kind: evExitBlockScope}) }
func (b *BufferedVisitor) ExitForScope()      { b.events = append(b.events, event{kind: evExitForScope}) }
func (b *BufferedVisitor) ExitClassScope()    { b.events = append(b.events, event{kind: evExitClassScope}) }
func (b *BufferedVisitor) ExitFunctionScope() { b.events = append(b.events, event{kind: evExitFunctionScope}) }

func (b *BufferedVisitor) VariableDeclaration(name string, kind errors.VariableKind, span source.Span) {
	b.events = append(b.events, event{kind: evVariableDeclaration, name: name, vk: kind, span: span})
}
func (b *BufferedVisitor) VariableUse(name string, span source.Span) {
	b.events = append(b.events, event{kind: evVariableUse, name: name, span: span})
}
func (b *BufferedVisitor) VariableTypeofUse(name string, span source.Span) {
	b.events = append(b.events, event{kind: evVariableTypeofUse, name: name, span: span})
}
func (b *BufferedVisitor) VariableAssignment(name string, span source.Span) {
	b.events = append(b.events, event{kind: evVariableAssignment, name: name, span: span})
}
func (b *BufferedVisitor) EndOfModule() { b.events = append(b.events, event{kind: evEndOfModule}) }

// Replay delivers every recorded event to dst in original order.
func (b *BufferedVisitor) Replay(dst Visitor) {
	for _, e := range b.events {
		switch e.kind {
		case evEnterBlockScope:
			dst.EnterBlockScope()
		case evEnterForScope:
			dst.EnterForScope()
		case evEnterClassScope:
			dst.EnterClassScope()
		case evEnterFunctionScope:
			dst.EnterFunctionScope()
		case evEnterNamedFunctionScope:
			dst.EnterNamedFunctionScope(e.name)
		case evEnterFunctionScopeBody:
			dst.EnterFunctionScopeBody()
		case evExitBlockScope:
			dst.ExitBlockScope()
		case evExitForScope:
			dst.ExitForScope()
		case evExitClassScope:
			dst.ExitClassScope()
		case evExitFunctionScope:
			dst.ExitFunctionScope()
		case evVariableDeclaration:
			dst.VariableDeclaration(e.name, e.vk, e.span)
		case evVariableUse:
			dst.VariableUse(e.name, e.span)
		case evVariableTypeofUse:
			dst.VariableTypeofUse(e.name, e.span)
		case evVariableAssignment:
			dst.VariableAssignment(e.name, e.span)
		case evEndOfModule:
			dst.EndOfModule()
		}
	}
}
