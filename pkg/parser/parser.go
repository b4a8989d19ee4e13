// Package parser consumes a token stream and produces an expression
// AST (pkg/ast) while emitting structured scope/variable visit events
// (spec.md §4.4). There is no persisted statement AST: statements are
// dispatched imperatively and their scope/declaration structure is
// communicated to a Visitor as the parser walks them.
package parser

import (
	"go.uber.org/zap"

	"jslint/pkg/ast"
	"jslint/pkg/errors"
	"jslint/pkg/lexer"
	"jslint/pkg/source"
)

// Precedence levels for the expression parser, lowest to highest
// (spec.md §4.4).
const (
	_ int = iota
	lowest
	commaPrec
	assignPrec      // right-assoc
	conditionalPrec // right-assoc
	logicalOrPrec
	logicalAndPrec
	bitwiseOrPrec
	bitwiseXorPrec
	bitwiseAndPrec
	equalityPrec
	relationalPrec
	shiftPrec
	additivePrec
	multiplicativePrec
	exponentPrec // right-assoc
	unaryPrec
	postfixPrec
	callPrec
)

var binaryPrecedence = map[lexer.Kind]int{
	lexer.PipePipe:                  logicalOrPrec,
	lexer.AmpersandAmpersand:        logicalAndPrec,
	lexer.Pipe:                      bitwiseOrPrec,
	lexer.Circumflex:                bitwiseXorPrec,
	lexer.Ampersand:                 bitwiseAndPrec,
	lexer.EqualEqual:                equalityPrec,
	lexer.BangEqual:                 equalityPrec,
	lexer.EqualEqualEqual:           equalityPrec,
	lexer.BangEqualEqual:            equalityPrec,
	lexer.Less:                      relationalPrec,
	lexer.LessEqual:                 relationalPrec,
	lexer.Greater:                   relationalPrec,
	lexer.GreaterEqual:              relationalPrec,
	lexer.KwIn:                      relationalPrec,
	lexer.KwInstanceof:              relationalPrec,
	lexer.LessLess:                  shiftPrec,
	lexer.GreaterGreater:            shiftPrec,
	lexer.GreaterGreaterGreater:     shiftPrec,
	lexer.Plus:                      additivePrec,
	lexer.Minus:                     additivePrec,
	lexer.Star:                      multiplicativePrec,
	lexer.Slash:                     multiplicativePrec,
	lexer.Percent:                   multiplicativePrec,
	lexer.StarStar:                  exponentPrec,
}

var assignmentOperators = map[lexer.Kind]bool{
	lexer.Equal:                      true,
	lexer.PlusEqual:                  true,
	lexer.MinusEqual:                 true,
	lexer.StarEqual:                  true,
	lexer.SlashEqual:                 true,
	lexer.PercentEqual:                true,
	lexer.StarStarEqual:              true,
	lexer.AmpersandEqual:             true,
	lexer.PipeEqual:                  true,
	lexer.CircumflexEqual:            true,
	lexer.LessLessEqual:              true,
	lexer.GreaterGreaterEqual:        true,
	lexer.GreaterGreaterGreaterEqual: true,
}

// Parser turns a token stream into an expression AST plus a visit
// event stream (spec.md §2 "Parser").
type Parser struct {
	lex    *lexer.Lexer
	arena  *ast.Arena
	sink   errors.Sink
	visit  Visitor
	log    *zap.Logger
	source *source.Buffer

	tok lexer.Token // current token, mirrors lex.Peek()
}

// NewParser builds a Parser over an already-constructed Lexer. The
// Visitor receives the visit-event stream as parsing proceeds; pass
// the production Linter or a test double.
func NewParser(lex *lexer.Lexer, buf *source.Buffer, arena *ast.Arena, sink errors.Sink, visit Visitor, log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Parser{lex: lex, arena: arena, sink: sink, visit: visit, log: log, source: buf}
	p.tok = lex.Peek()
	return p
}

func (p *Parser) report(kind errors.Kind, span source.Span) {
	p.sink.Report(errors.New(kind, span))
}

func (p *Parser) reportWithSecondary(kind errors.Kind, span, secondary source.Span) {
	p.sink.Report(errors.New(kind, span).WithSecondary(secondary))
}

// advance consumes the current token and loads the next.
func (p *Parser) advance() {
	p.tok = p.lex.Skip()
}

func (p *Parser) at(k lexer.Kind) bool { return p.tok.Kind == k }

// expect consumes the current token if it matches k, otherwise leaves
// it in place (the caller decides how to recover).
func (p *Parser) expect(k lexer.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// consumeStatementTerminator applies Automatic Semicolon Insertion
// (spec.md §4.4). ASI succeeds if the current token is ';' (consumed),
// '}', end_of_file, or carries a leading newline; otherwise it emits
// missing_semicolon_after_expression and continues without consuming.
func (p *Parser) consumeStatementTerminator() {
	if p.at(lexer.Semicolon) {
		p.advance()
		return
	}
	if p.at(lexer.RightCurly) || p.at(lexer.EndOfFile) || p.tok.HasLeadingNewline {
		return
	}
	p.report(errors.MissingSemicolonAfterExpression, p.tok.Span)
}

// Parse runs the parser to end of input, emitting visit events into
// the configured Visitor and returning the top-level expression
// statements for AST inspection (spec.md §6).
func (p *Parser) Parse() []ast.ExprID {
	var top []ast.ExprID
	for !p.at(lexer.EndOfFile) {
		if id := p.parseStatement(); id.IsValid() {
			top = append(top, id)
		}
	}
	p.visit.EndOfModule()
	return top
}

// parseStatement dispatches on the current token and returns the
// top-level expression produced, if any (statements that are purely
// visit-event-driven, like declarations and control flow, return the
// zero ExprID).
func (p *Parser) parseStatement() ast.ExprID {
	switch p.tok.Kind {
	case lexer.Semicolon:
		p.advance()
		return 0
	case lexer.LeftCurly:
		p.parseBlockStatement()
		return 0
	case lexer.KwVar:
		p.parseVariableStatement(errors.VariableKindVar)
		return 0
	case lexer.KwLet:
		p.parseVariableStatement(errors.VariableKindLet)
		return 0
	case lexer.KwConst:
		p.parseVariableStatement(errors.VariableKindConst)
		return 0
	case lexer.KwFunction:
		return p.parseFunctionDeclaration(ast.Normal)
	case lexer.KwAsync:
		asyncSpan := p.tok.Span
		p.advance() // 'async' — one-token lookahead forces consuming it to check what follows
		if p.at(lexer.KwFunction) && !p.tok.HasLeadingNewline {
			id := p.parseFunctionDeclaration(ast.Async)
			widenSpanBegin(p.arena, id, asyncSpan.Begin)
			return id
		}
		return p.finishAsyncExpressionStatement(asyncSpan)
	case lexer.KwClass:
		p.parseClassDeclaration()
		return 0
	case lexer.KwIf:
		p.parseIfStatement()
		return 0
	case lexer.KwFor:
		p.parseForStatement()
		return 0
	case lexer.KwWhile:
		p.parseWhileStatement()
		return 0
	case lexer.KwDo:
		p.parseDoWhileStatement()
		return 0
	case lexer.KwReturn:
		p.parseReturnStatement()
		return 0
	case lexer.KwThrow:
		p.parseThrowStatement()
		return 0
	case lexer.KwBreak, lexer.KwContinue:
		p.advance()
		if p.at(lexer.Identifier) && !p.tok.HasLeadingNewline {
			p.advance()
		}
		p.consumeStatementTerminator()
		return 0
	case lexer.KwTry:
		p.parseTryStatement()
		return 0
	case lexer.KwSwitch:
		p.parseSwitchStatement()
		return 0
	case lexer.KwDebugger:
		p.advance()
		p.consumeStatementTerminator()
		return 0
	case lexer.KwImport:
		importSpan := p.tok.Span
		p.advance() // 'import'
		if p.at(lexer.LeftParen) || p.at(lexer.Dot) {
			// Dynamic `import(...)` and `import.meta` are ordinary
			// primary expressions, not the declaration form below —
			// resume the postfix/binary ladder from the already-built
			// import node the way finishAsyncExpressionStatement
			// resumes from an already-consumed `async`.
			seed := p.applyPostfixOps(p.arena.New(ast.Import, importSpan), true)
			id := p.parseExpressionFrom(seed, lowest)
			p.consumeStatementTerminator()
			return id
		}
		p.parseImportDeclaration()
		return 0
	case lexer.KwExport:
		return p.parseExportStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseImportDeclaration parses the ES module import forms following an
// already-consumed `import` keyword: a side-effect-only import, a
// default binding, a namespace binding, a named-import list, or a
// comma-separated combination of a default binding with one of the
// other two. Every bound local name is declared with kind import
// (spec.md §3 Variable kind, §4.5 step 2's read-only check).
func (p *Parser) parseImportDeclaration() {
	if p.at(lexer.String) {
		p.advance() // side-effect-only: import "module";
		p.consumeStatementTerminator()
		return
	}
	p.parseImportClause()
	p.expect(lexer.KwFrom)
	if p.at(lexer.String) {
		p.advance()
	}
	p.consumeStatementTerminator()
}

func (p *Parser) parseImportClause() {
	if p.at(lexer.Star) {
		p.parseImportNamespaceBinding()
		return
	}
	if p.at(lexer.LeftCurly) {
		p.parseImportNamedBindings()
		return
	}
	if isModuleBindingName(p.tok.Kind) {
		p.declareImportBinding()
	}
	if p.at(lexer.Comma) {
		p.advance()
		if p.at(lexer.Star) {
			p.parseImportNamespaceBinding()
		} else if p.at(lexer.LeftCurly) {
			p.parseImportNamedBindings()
		}
	}
}

func (p *Parser) declareImportBinding() {
	name, span := p.identifierText(), p.tok.Span
	p.advance()
	p.visit.VariableDeclaration(name, errors.VariableKindImport, span)
}

func (p *Parser) parseImportNamespaceBinding() {
	p.advance() // '*'
	if p.expect(lexer.KwAs) && isModuleBindingName(p.tok.Kind) {
		p.declareImportBinding()
	}
}

func (p *Parser) parseImportNamedBindings() {
	p.advance() // '{'
	for !p.at(lexer.RightCurly) && !p.at(lexer.EndOfFile) {
		if !isModuleBindingName(p.tok.Kind) {
			p.advance()
			continue
		}
		name, span := p.identifierText(), p.tok.Span
		p.advance() // imported name
		if p.at(lexer.KwAs) {
			p.advance()
			p.declareImportBinding()
		} else {
			p.visit.VariableDeclaration(name, errors.VariableKindImport, span)
		}
		if p.at(lexer.Comma) {
			p.advance()
		}
	}
	p.expect(lexer.RightCurly)
}

// isModuleBindingName reports whether k can appear as an import/export
// binding name — the same contextual-keyword set parseBindingTarget
// accepts, plus `default` for `import { default as x }` and
// `export { x as default }`.
func isModuleBindingName(k lexer.Kind) bool {
	switch k {
	case lexer.Identifier, lexer.KwAsync, lexer.KwAs, lexer.KwFrom, lexer.KwGet,
		lexer.KwOf, lexer.KwSet, lexer.KwStatic, lexer.KwYield, lexer.KwDefault:
		return true
	default:
		return false
	}
}

// parseExportStatement parses the ES module export forms. Re-export
// forms (`export { a } from "m"`, `export * from "m"`, `export * as ns
// from "m"`) name bindings that live in the other module, not this one,
// so they produce no declaration or use event at all; `export { a, b }`
// with no `from` clause references existing local bindings.
func (p *Parser) parseExportStatement() ast.ExprID {
	p.advance() // 'export'
	switch p.tok.Kind {
	case lexer.KwDefault:
		p.advance()
		return p.parseExportDefault()
	case lexer.KwVar:
		p.parseVariableStatement(errors.VariableKindVar)
	case lexer.KwLet:
		p.parseVariableStatement(errors.VariableKindLet)
	case lexer.KwConst:
		p.parseVariableStatement(errors.VariableKindConst)
	case lexer.KwFunction:
		return p.parseFunctionDeclaration(ast.Normal)
	case lexer.KwAsync:
		asyncSpan := p.tok.Span
		p.advance()
		if p.at(lexer.KwFunction) {
			id := p.parseFunctionDeclaration(ast.Async)
			widenSpanBegin(p.arena, id, asyncSpan.Begin)
			return id
		}
		return p.finishAsyncExpressionStatement(asyncSpan)
	case lexer.KwClass:
		p.parseClassDeclaration()
	case lexer.Star:
		p.parseExportAllDeclaration()
	case lexer.LeftCurly:
		p.parseExportNamedList()
	default:
		p.consumeStatementTerminator()
	}
	return 0
}

// parseExportDefault parses the forms following `export default`: a
// named or anonymous function/class declaration (only the named form
// binds locally, matching parseFunctionDeclaration/parseClassDeclaration's
// existing optional-name handling), or an arbitrary assignment
// expression.
func (p *Parser) parseExportDefault() ast.ExprID {
	switch p.tok.Kind {
	case lexer.KwFunction:
		return p.parseFunctionDeclaration(ast.Normal)
	case lexer.KwAsync:
		asyncSpan := p.tok.Span
		p.advance()
		if p.at(lexer.KwFunction) {
			id := p.parseFunctionDeclaration(ast.Async)
			widenSpanBegin(p.arena, id, asyncSpan.Begin)
			return id
		}
		return p.finishAsyncExpressionStatement(asyncSpan)
	case lexer.KwClass:
		p.parseClassDeclaration()
		return 0
	default:
		id := p.parseAssignmentExpr()
		p.consumeStatementTerminator()
		return id
	}
}

func (p *Parser) parseExportAllDeclaration() {
	p.advance() // '*'
	if p.at(lexer.KwAs) {
		p.advance()
		if isModuleBindingName(p.tok.Kind) {
			p.advance() // export namespace name, not a local binding
		}
	}
	p.expect(lexer.KwFrom)
	if p.at(lexer.String) {
		p.advance()
	}
	p.consumeStatementTerminator()
}

func (p *Parser) parseExportNamedList() {
	type exportedName struct {
		name string
		span source.Span
	}
	p.advance() // '{'
	var names []exportedName
	for !p.at(lexer.RightCurly) && !p.at(lexer.EndOfFile) {
		if !isModuleBindingName(p.tok.Kind) {
			p.advance()
			continue
		}
		name, span := p.identifierText(), p.tok.Span
		p.advance()
		names = append(names, exportedName{name, span})
		if p.at(lexer.KwAs) {
			p.advance()
			if isModuleBindingName(p.tok.Kind) {
				p.advance() // exported-as name, not a local binding
			}
		}
		if p.at(lexer.Comma) {
			p.advance()
		}
	}
	p.expect(lexer.RightCurly)

	if p.at(lexer.KwFrom) {
		p.advance() // re-export: names live in the other module, not here
		if p.at(lexer.String) {
			p.advance()
		}
		p.consumeStatementTerminator()
		return
	}
	for _, n := range names {
		p.visit.VariableUse(n.name, n.span)
	}
	p.consumeStatementTerminator()
}

func (p *Parser) parseExpressionStatement() ast.ExprID {
	id := p.parseExpression(lowest)
	p.consumeStatementTerminator()
	return id
}

func (p *Parser) parseBlockStatement() {
	open := p.tok.Span
	p.advance() // '{'
	p.visit.EnterBlockScope()
	for !p.at(lexer.RightCurly) && !p.at(lexer.EndOfFile) {
		p.parseStatement()
	}
	if p.at(lexer.RightCurly) {
		p.advance()
	} else {
		p.report(errors.UnmatchedParenthesis, open)
	}
	p.visit.ExitBlockScope()
}

// parseVariableStatement parses `var|let|const binding (= init)?
// (, binding (= init)?)* ;`.
func (p *Parser) parseVariableStatement(kind errors.VariableKind) {
	p.advance() // var/let/const keyword
	count := 0
	for {
		if p.at(lexer.Semicolon) || p.at(lexer.EndOfFile) || p.tok.HasLeadingNewline && count > 0 {
			break
		}
		ok := p.parseBindingTarget(kind)
		if !ok {
			break
		}
		count++
		if p.at(lexer.Equal) {
			p.advance()
			p.parseAssignmentExpr()
		}
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	if count == 0 && kind == errors.VariableKindLet {
		p.report(errors.LetWithNoBindings, p.tok.Span)
	}
	p.consumeStatementTerminator()
}

// parseBindingTarget parses one binding name or destructuring pattern
// and emits the matching variable_declaration event(s). Destructuring
// patterns lower to a sequence of declarations of the statement's
// declared kind (spec.md §4.4 "Visit emission").
func (p *Parser) parseBindingTarget(kind errors.VariableKind) bool {
	switch p.tok.Kind {
	case lexer.Identifier, lexer.KwAsync, lexer.KwAs, lexer.KwFrom, lexer.KwGet, lexer.KwOf, lexer.KwSet, lexer.KwStatic, lexer.KwYield:
		name, span := p.identifierText(), p.tok.Span
		p.advance()
		p.visit.VariableDeclaration(name, kind, span)
		return true
	case lexer.LeftSquare, lexer.LeftCurly:
		p.parseDestructuringPattern(kind)
		return true
	default:
		if kind == errors.VariableKindLet {
			p.report(errors.InvalidBindingInLetStatement, p.tok.Span)
		} else {
			p.report(errors.UnexpectedIdentifier, p.tok.Span)
		}
		return false
	}
}

// parseDestructuringPattern walks an array/object pattern, declaring
// every bound name at kind and consuming default-value expressions.
func (p *Parser) parseDestructuringPattern(kind errors.VariableKind) {
	if p.at(lexer.LeftSquare) {
		p.advance()
		for !p.at(lexer.RightSquare) && !p.at(lexer.EndOfFile) {
			if p.at(lexer.Comma) {
				p.advance() // elision
				continue
			}
			if p.at(lexer.DotDotDot) {
				p.advance()
			}
			p.parseBindingTarget(kind)
			if p.at(lexer.Equal) {
				p.advance()
				p.parseAssignmentExpr()
			}
			if p.at(lexer.Comma) {
				p.advance()
			}
		}
		p.expect(lexer.RightSquare)
		return
	}
	p.advance() // '{'
	for !p.at(lexer.RightCurly) && !p.at(lexer.EndOfFile) {
		if p.at(lexer.DotDotDot) {
			p.advance()
			p.parseBindingTarget(kind)
		} else {
			p.advance() // property key (identifier, string, or computed)
			if p.at(lexer.Colon) {
				p.advance()
				p.parseBindingTarget(kind)
			}
		}
		if p.at(lexer.Equal) {
			p.advance()
			p.parseAssignmentExpr()
		}
		if p.at(lexer.Comma) {
			p.advance()
		} else if !p.at(lexer.RightCurly) {
			p.report(errors.StrayCommaInLetStatement, p.tok.Span)
		}
	}
	p.expect(lexer.RightCurly)
}

func (p *Parser) identifierText() string {
	return p.tok.NormalizedText(p.source.Padded())
}

func (p *Parser) parseAssignmentExpr() ast.ExprID {
	return p.parseExpression(assignPrec)
}

// parseFunctionDeclaration parses `function name? (params) { body }`
// in declaration position: the name is declared with kind Function in
// the *enclosing* scope, not the function's own scope (spec.md §4.5
// "enter_named_function_scope" is for the self-binding used inside an
// expression; a statement-level function name is an ordinary hoisted
// declaration).
func (p *Parser) parseFunctionDeclaration(attrs ast.Attributes) ast.ExprID {
	start := p.tok.Span
	p.advance() // 'function'
	name := ""
	if p.at(lexer.Identifier) {
		name = p.identifierText()
		p.visit.VariableDeclaration(name, errors.VariableKindFunction, p.tok.Span)
		p.advance()
	}
	return p.parseFunctionTail(start, name, attrs, false)
}

// parseFunctionTail parses the parameter list and body shared by
// function declarations and function expressions. selfBinding
// requests enter_named_function_scope instead of enter_function_scope
// (used for named function *expressions*, spec.md §4.5).
func (p *Parser) parseFunctionTail(start source.Span, name string, attrs ast.Attributes, selfBinding bool) ast.ExprID {
	if selfBinding && name != "" {
		p.visit.EnterNamedFunctionScope(name)
	} else {
		p.visit.EnterFunctionScope()
	}

	buffered := NewBufferedVisitor()
	outer := p.visit
	p.visit = buffered

	params := p.parseParameterList()
	p.visit.EnterFunctionScopeBody()

	var bodyEnd int
	if p.at(lexer.LeftCurly) {
		bodyEnd = p.parseFunctionBodyBlock()
	} else {
		bodyEnd = p.tok.Span.End
	}

	p.visit.ExitFunctionScope()
	p.visit = outer
	buffered.Replay(outer)

	kind := ast.Function
	if name != "" {
		kind = ast.NamedFunction
	}
	id := p.arena.New(kind, source.Span{Begin: start.Begin, End: bodyEnd})
	node := p.arena.Get(id)
	node.Text = name
	node.Function = &ast.FunctionData{Name: name, Params: params, Attributes: attrs}
	return id
}

func (p *Parser) parseFunctionBodyBlock() int {
	p.advance() // '{'
	for !p.at(lexer.RightCurly) && !p.at(lexer.EndOfFile) {
		p.parseStatement()
	}
	end := p.tok.Span.End
	p.expect(lexer.RightCurly)
	return end
}

// parseParameterList parses `(p1, p2 = default, ...rest)`, declaring
// each bound name with kind Parameter and building a matching AST
// node per parameter (Variable, Assignment for a default value, or
// Spread for a rest parameter) so Function.Params mirrors
// parseArrowBody's parameter shapes. A destructuring pattern
// parameter ([a,b] or {a,b}) still declares its bound names correctly
// but contributes an Invalid placeholder node to keep Params aligned
// by position — see DESIGN.md's destructuring-parameter decision.
func (p *Parser) parseParameterList() []ast.ExprID {
	p.expect(lexer.LeftParen)
	var params []ast.ExprID
	for !p.at(lexer.RightParen) && !p.at(lexer.EndOfFile) {
		start := p.tok.Span
		isRest := p.at(lexer.DotDotDot)
		if isRest {
			p.advance()
		}

		var param ast.ExprID
		switch p.tok.Kind {
		case lexer.LeftSquare, lexer.LeftCurly:
			p.parseDestructuringPattern(errors.VariableKindParameter)
			param = p.arena.New(ast.Invalid, start)
		default:
			name := p.identifierText()
			nameSpan := p.tok.Span
			p.visit.VariableDeclaration(name, errors.VariableKindParameter, nameSpan)
			id := p.arena.New(ast.Variable, nameSpan)
			p.arena.Get(id).Text = name
			p.advance()
			param = id
			if p.at(lexer.Equal) {
				p.advance()
				def := p.parseAssignmentExpr()
				assignID := p.arena.New(ast.Assignment, source.Span{Begin: start.Begin, End: p.arena.Span(def).End})
				node := p.arena.Get(assignID)
				node.Op = lexer.Equal
				node.A, node.B = id, def
				param = assignID
			}
		}

		if isRest {
			spreadID := p.arena.New(ast.Spread, source.Span{Begin: start.Begin, End: p.arena.Span(param).End})
			p.arena.Get(spreadID).A = param
			param = spreadID
		}
		params = append(params, param)

		if p.at(lexer.Comma) {
			p.advance()
		}
	}
	p.expect(lexer.RightParen)
	return params
}

func (p *Parser) parseClassDeclaration() {
	p.advance() // 'class'
	if p.at(lexer.Identifier) {
		p.visit.VariableDeclaration(p.identifierText(), errors.VariableKindClass, p.tok.Span)
		p.advance()
	}
	p.visit.EnterClassScope()
	if p.at(lexer.KwExtends) {
		p.advance()
		p.parseExpression(unaryPrec)
	}
	p.parseClassBody()
	p.visit.ExitClassScope()
}

func (p *Parser) parseClassBody() int {
	if !p.expect(lexer.LeftCurly) {
		return p.tok.Span.Begin
	}
	for !p.at(lexer.RightCurly) && !p.at(lexer.EndOfFile) {
		if p.at(lexer.Semicolon) {
			p.advance()
			continue
		}
		if p.at(lexer.KwStatic) {
			p.advance()
		}
		// method name (identifier, string, number, or computed [expr])
		if p.at(lexer.LeftSquare) {
			p.advance()
			p.parseExpression(lowest)
			p.expect(lexer.RightSquare)
		} else {
			p.advance()
		}
		if p.at(lexer.LeftParen) {
			p.parseFunctionTail(p.tok.Span, "", ast.Normal, false)
		} else if p.at(lexer.Equal) {
			p.advance()
			p.parseAssignmentExpr()
			p.consumeStatementTerminator()
		}
	}
	end := p.tok.Span.End
	p.expect(lexer.RightCurly)
	return end
}

func (p *Parser) parseIfStatement() {
	p.advance() // 'if'
	p.expect(lexer.LeftParen)
	p.parseExpression(lowest)
	p.expect(lexer.RightParen)
	p.parseStatement()
	if p.at(lexer.KwElse) {
		p.advance()
		p.parseStatement()
	}
}

func (p *Parser) parseWhileStatement() {
	p.advance() // 'while'
	p.expect(lexer.LeftParen)
	p.parseExpression(lowest)
	p.expect(lexer.RightParen)
	p.parseStatement()
}

func (p *Parser) parseDoWhileStatement() {
	p.advance() // 'do'
	p.parseStatement()
	p.expect(lexer.KwWhile)
	p.expect(lexer.LeftParen)
	p.parseExpression(lowest)
	p.expect(lexer.RightParen)
	p.consumeStatementTerminator()
}

// parseForStatement covers the classic `for(;;)` form and `for(x in
// obj)` / `for(x of iterable)`, all sharing one for-scope (spec.md
// §4.5 "enter_for_scope").
func (p *Parser) parseForStatement() {
	p.advance() // 'for'
	p.expect(lexer.LeftParen)
	p.visit.EnterForScope()

	declKind, hasDecl := errors.VariableKindVar, false
	switch p.tok.Kind {
	case lexer.KwVar:
		declKind, hasDecl = errors.VariableKindVar, true
		p.advance()
	case lexer.KwLet:
		declKind, hasDecl = errors.VariableKindLet, true
		p.advance()
	case lexer.KwConst:
		declKind, hasDecl = errors.VariableKindConst, true
		p.advance()
	}

	if hasDecl {
		p.parseBindingTarget(declKind)
		if p.at(lexer.KwIn) || p.at(lexer.KwOf) {
			p.advance()
			p.parseExpression(lowest)
			p.expect(lexer.RightParen)
			p.parseStatement()
			p.visit.ExitForScope()
			return
		}
		if p.at(lexer.Equal) {
			p.advance()
			p.parseAssignmentExpr()
		}
		for p.at(lexer.Comma) {
			p.advance()
			p.parseBindingTarget(declKind)
			if p.at(lexer.Equal) {
				p.advance()
				p.parseAssignmentExpr()
			}
		}
	} else if !p.at(lexer.Semicolon) {
		init := p.parseExpression(lowest)
		if p.at(lexer.KwIn) || p.at(lexer.KwOf) {
			p.advance()
			p.parseExpression(lowest)
			p.expect(lexer.RightParen)
			p.parseStatement()
			p.visit.ExitForScope()
			_ = init
			return
		}
	}
	p.expect(lexer.Semicolon)
	if !p.at(lexer.Semicolon) {
		p.parseExpression(lowest)
	}
	p.expect(lexer.Semicolon)
	if !p.at(lexer.RightParen) {
		p.parseExpression(lowest)
	}
	p.expect(lexer.RightParen)
	p.parseStatement()
	p.visit.ExitForScope()
}

func (p *Parser) parseReturnStatement() {
	p.advance() // 'return'
	if !p.at(lexer.Semicolon) && !p.at(lexer.RightCurly) && !p.at(lexer.EndOfFile) && !p.tok.HasLeadingNewline {
		p.parseExpression(lowest)
	}
	p.consumeStatementTerminator()
}

func (p *Parser) parseThrowStatement() {
	p.advance() // 'throw'
	p.parseExpression(lowest)
	p.consumeStatementTerminator()
}

func (p *Parser) parseTryStatement() {
	p.advance() // 'try'
	p.parseBlockStatement()
	if p.at(lexer.KwCatch) {
		p.advance()
		// Catch scopes are not among the events spec.md §4.5 lists
		// explicitly; a catch clause's own block is its lexical scope,
		// so the catch parameter is declared (kind Catch) inside an
		// ordinary block scope.
		p.visit.EnterBlockScope()
		if p.at(lexer.LeftParen) {
			p.advance()
			p.parseBindingTarget(errors.VariableKindCatch)
			p.expect(lexer.RightParen)
		}
		for !p.at(lexer.RightCurly) && !p.at(lexer.EndOfFile) {
			if p.at(lexer.LeftCurly) {
				p.advance()
				for !p.at(lexer.RightCurly) && !p.at(lexer.EndOfFile) {
					p.parseStatement()
				}
				p.expect(lexer.RightCurly)
				break
			}
			p.parseStatement()
		}
		p.visit.ExitBlockScope()
	}
	if p.at(lexer.KwFinally) {
		p.advance()
		p.parseBlockStatement()
	}
}

func (p *Parser) parseSwitchStatement() {
	p.advance() // 'switch'
	p.expect(lexer.LeftParen)
	p.parseExpression(lowest)
	p.expect(lexer.RightParen)
	p.expect(lexer.LeftCurly)
	p.visit.EnterBlockScope()
	for !p.at(lexer.RightCurly) && !p.at(lexer.EndOfFile) {
		if p.at(lexer.KwCase) {
			p.advance()
			p.parseExpression(lowest)
			p.expect(lexer.Colon)
		} else if p.at(lexer.KwDefault) {
			p.advance()
			p.expect(lexer.Colon)
		} else {
			p.parseStatement()
		}
	}
	p.expect(lexer.RightCurly)
	p.visit.ExitBlockScope()
}
