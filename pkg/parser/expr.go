package parser

import (
	"jslint/pkg/ast"
	"jslint/pkg/errors"
	"jslint/pkg/lexer"
	"jslint/pkg/source"
)

// parseExpression parses the full comma-operator ladder down to
// assignment (spec.md §4.4). minPrec lets callers that don't want the
// comma operator (e.g. a single call argument) start one level higher.
func (p *Parser) parseExpression(minPrec int) ast.ExprID {
	return p.parseExpressionFrom(p.parseUnary(), minPrec)
}

// parseExpressionFrom continues the full ladder from an
// already-parsed unary-level operand. This lets a caller that was
// forced to consume one token of lookahead before it could tell
// whether that token started a primary expression (see
// finishAsyncExpressionStatement) resume parsing from the node it
// already built, instead of re-parsing a primary.
func (p *Parser) parseExpressionFrom(left ast.ExprID, minPrec int) ast.ExprID {
	left = p.parseAssignmentFrom(left)
	if minPrec > commaPrec || !p.at(lexer.Comma) {
		return left
	}
	children := []ast.ExprID{left}
	var ops []lexer.Kind
	for p.at(lexer.Comma) {
		p.advance()
		ops = append(ops, lexer.Comma)
		children = append(children, p.parseAssignment())
	}
	return p.newBinaryNode(children, ops)
}

// parseAssignment handles `=` and the compound-assign forms,
// right-associatively, falling through to the conditional ladder.
func (p *Parser) parseAssignment() ast.ExprID {
	return p.parseAssignmentFrom(p.parseUnary())
}

func (p *Parser) parseAssignmentFrom(seed ast.ExprID) ast.ExprID {
	left := p.parseConditionalFrom(seed)
	if !p.at(lexer.Equal) && !assignmentOperators[p.tok.Kind] {
		return left
	}
	opKind := p.tok.Kind
	opSpan := p.tok.Span
	p.advance()
	right := p.parseAssignment()

	kind := ast.Assignment
	if opKind != lexer.Equal {
		kind = ast.CompoundAssignment
	}
	id := p.arena.New(kind, source.Span{Begin: p.arena.Span(left).Begin, End: p.arena.Span(right).End})
	node := p.arena.Get(id)
	node.Op = opKind
	node.A = left
	node.B = right

	p.checkAssignmentTarget(left, opSpan)
	p.emitAssignmentVisit(left)
	return id
}

func (p *Parser) checkAssignmentTarget(target ast.ExprID, opSpan source.Span) {
	switch p.arena.Kind(target) {
	case ast.Variable, ast.Dot, ast.Index, ast.Array, ast.Object:
		return
	default:
		p.report(errors.InvalidExpressionLeftOfAssignment, p.arena.Span(target))
		_ = opSpan
	}
}

func (p *Parser) emitAssignmentVisit(target ast.ExprID) {
	node := p.arena.Get(target)
	if node.Kind == ast.Variable {
		p.visit.VariableAssignment(node.Text, node.Span)
	}
}

// parseConditional handles `test ? consequent : alternate`,
// right-associatively.
func (p *Parser) parseConditional() ast.ExprID {
	return p.parseConditionalFrom(p.parseUnary())
}

func (p *Parser) parseConditionalFrom(seed ast.ExprID) ast.ExprID {
	test := p.parseBinaryFrom(seed, logicalOrPrec)
	if !p.at(lexer.Question) {
		return test
	}
	p.advance()
	cons := p.parseAssignment()
	p.expect(lexer.Colon)
	alt := p.parseAssignment()
	id := p.arena.New(ast.Conditional, source.Span{Begin: p.arena.Span(test).Begin, End: p.arena.Span(alt).End})
	node := p.arena.Get(id)
	node.A, node.B, node.C = test, cons, alt
	return id
}

// parseBinary implements the binary-operator ladder from logical-or
// down through exponent, flattening chains of the same precedence
// tier into one variadic BinaryOperator node (spec.md §4.4
// "Associative flattening"). Exponent is right-associative and is
// never flattened: each `**` nests its right operand.
func (p *Parser) parseBinary(minPrec int) ast.ExprID {
	return p.parseBinaryFrom(p.parseUnary(), minPrec)
}

func (p *Parser) parseBinaryFrom(left ast.ExprID, minPrec int) ast.ExprID {
	for {
		k := p.tok.Kind
		prec, ok := binaryPrecedence[k]
		if !ok || prec < minPrec {
			return left
		}
		if k == lexer.StarStar {
			opSpan := p.tok.Span
			p.advance()
			right := p.parseBinaryOperand(opSpan, prec)
			left = p.newBinaryNode([]ast.ExprID{left, right}, []lexer.Kind{k})
			continue
		}
		children := []ast.ExprID{left}
		var ops []lexer.Kind
		for {
			k2 := p.tok.Kind
			pr2, ok2 := binaryPrecedence[k2]
			if !ok2 || pr2 != prec || k2 == lexer.StarStar {
				break
			}
			opSpan := p.tok.Span
			p.advance()
			ops = append(ops, k2)
			children = append(children, p.parseBinaryOperand(opSpan, prec+1))
		}
		left = p.newBinaryNode(children, ops)
	}
}

// parseBinaryOperand parses the right-hand operand of the operator at
// opSpan. When the next token can't start an expression at all (another
// binary operator, a closing bracket, end_of_file), the operator itself
// is missing its operand: report there rather than on the token that
// follows, and leave that token in place so a chain like `2 * * 2` still
// flattens into one three-child node instead of abandoning the
// statement partway through (spec.md §8 concrete scenario 2).
func (p *Parser) parseBinaryOperand(opSpan source.Span, prec int) ast.ExprID {
	if !canStartExpression(p.tok.Kind) {
		p.report(errors.MissingOperandForOperator, opSpan)
		return p.arena.New(ast.Invalid, source.Span{Begin: p.tok.Span.Begin, End: p.tok.Span.Begin})
	}
	return p.parseBinary(prec)
}

// canStartExpression reports whether k can begin a unary or primary
// expression, i.e. whether parseUnary/parsePrimary would consume it
// rather than fall into parsePrimary's missing-operand default case.
func canStartExpression(k lexer.Kind) bool {
	switch k {
	case lexer.Bang, lexer.Tilde, lexer.Plus, lexer.Minus, lexer.KwVoid, lexer.KwDelete,
		lexer.PlusPlus, lexer.MinusMinus, lexer.KwTypeof, lexer.KwAwait, lexer.DotDotDot,
		lexer.Identifier, lexer.KwAs, lexer.KwFrom, lexer.KwGet, lexer.KwOf, lexer.KwSet, lexer.KwStatic,
		lexer.KwYield, lexer.Number, lexer.String, lexer.KwTrue, lexer.KwFalse, lexer.KwNull,
		lexer.Slash, lexer.SlashEqual, lexer.CompleteTemplate, lexer.IncompleteTemplate,
		lexer.KwThis, lexer.KwSuper, lexer.KwImport, lexer.KwNew, lexer.LeftParen, lexer.LeftSquare,
		lexer.LeftCurly, lexer.KwFunction, lexer.KwAsync, lexer.KwClass:
		return true
	default:
		return false
	}
}

func (p *Parser) newBinaryNode(children []ast.ExprID, ops []lexer.Kind) ast.ExprID {
	begin := p.arena.Span(children[0]).Begin
	end := p.arena.Span(children[len(children)-1]).End
	id := p.arena.New(ast.BinaryOperator, source.Span{Begin: begin, End: end})
	node := p.arena.Get(id)
	node.Children = children
	node.Ops = ops
	return id
}

// parseUnary handles prefix operators (spec.md §4.4 "unary prefix");
// everything else falls through to the postfix/primary layer.
func (p *Parser) parseUnary() ast.ExprID {
	switch p.tok.Kind {
	case lexer.Bang, lexer.Tilde, lexer.Plus, lexer.Minus, lexer.KwVoid, lexer.KwDelete:
		op := p.tok.Kind
		start := p.tok.Span
		p.advance()
		operand := p.parseUnary()
		return p.newUnary(ast.UnaryOperator, op, start, operand)
	case lexer.PlusPlus, lexer.MinusMinus:
		op := p.tok.Kind
		start := p.tok.Span
		p.advance()
		operand := p.parseUnary()
		return p.newUnary(ast.RWUnaryPrefix, op, start, operand)
	case lexer.KwTypeof:
		start := p.tok.Span
		p.advance()
		return p.parseTypeofOperand(start)
	case lexer.KwAwait:
		start := p.tok.Span
		p.advance()
		operand := p.parseUnary()
		return p.newUnary(ast.Await, lexer.KwAwait, start, operand)
	case lexer.DotDotDot:
		start := p.tok.Span
		p.advance()
		operand := p.parseAssignmentExpr()
		return p.newUnary(ast.Spread, lexer.DotDotDot, start, operand)
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) newUnary(kind ast.Kind, op lexer.Kind, start source.Span, operand ast.ExprID) ast.ExprID {
	end := start.End
	if operand.IsValid() {
		end = p.arena.Span(operand).End
	}
	id := p.arena.New(kind, source.Span{Begin: start.Begin, End: end})
	node := p.arena.Get(id)
	node.Op = op
	node.A = operand
	return id
}

// parseTypeofOperand special-cases a bare identifier so that a direct
// `typeof name` reference is reported as variable_typeof_use rather than
// variable_use: the linter never reports use_of_undeclared_variable
// for a typeof'd name (spec.md §8 property 7). An identifier followed
// by a postfix chain (`typeof x.y`, `typeof x[i]`, `typeof x()`) is
// reported as an ordinary variable_use. Any other operand shape
// (parenthesized, computed, etc.) falls back to ordinary unary
// parsing — see DESIGN.md's typeof-operand decision.
func (p *Parser) parseTypeofOperand(start source.Span) ast.ExprID {
	if p.tok.Kind == lexer.Identifier {
		name := p.identifierText()
		span := p.tok.Span
		p.advance()
		if isPostfixContinuation(p.tok.Kind) {
			id := p.arena.New(ast.Variable, span)
			p.arena.Get(id).Text = name
			p.visit.VariableUse(name, span)
			operand := p.applyPostfixOps(id, true)
			return p.newUnary(ast.Typeof, lexer.KwTypeof, start, operand)
		}
		id := p.arena.New(ast.Variable, span)
		p.arena.Get(id).Text = name
		p.visit.VariableTypeofUse(name, span)
		return p.newUnary(ast.Typeof, lexer.KwTypeof, start, id)
	}
	operand := p.parseUnary()
	return p.newUnary(ast.Typeof, lexer.KwTypeof, start, operand)
}

func isPostfixContinuation(k lexer.Kind) bool {
	return k == lexer.Dot || k == lexer.LeftSquare || k == lexer.LeftParen
}

// parsePostfix parses one primary expression and then its chain of
// postfix operators (member/index/call/tagged-template/`++`/`--`).
func (p *Parser) parsePostfix() ast.ExprID {
	id := p.parsePrimary()
	return p.applyPostfixOps(id, true)
}

func (p *Parser) applyPostfixOps(id ast.ExprID, allowCall bool) ast.ExprID {
	for {
		switch p.tok.Kind {
		case lexer.Dot:
			p.advance()
			name := p.identifierText()
			propSpan := p.tok.Span
			p.advance()
			newID := p.arena.New(ast.Dot, source.Span{Begin: p.arena.Span(id).Begin, End: propSpan.End})
			node := p.arena.Get(newID)
			node.A = id
			node.Text = name
			id = newID

		case lexer.LeftSquare:
			p.advance()
			idx := p.parseExpression(lowest)
			end := p.tok.Span.End
			p.expect(lexer.RightSquare)
			newID := p.arena.New(ast.Index, source.Span{Begin: p.arena.Span(id).Begin, End: end})
			node := p.arena.Get(newID)
			node.A, node.B = id, idx
			id = newID

		case lexer.LeftParen:
			if !allowCall {
				return id
			}
			args, end := p.parseCallArguments()
			newID := p.arena.New(ast.Call, source.Span{Begin: p.arena.Span(id).Begin, End: end})
			node := p.arena.Get(newID)
			node.A = id
			node.Children = args
			id = newID

		case lexer.CompleteTemplate, lexer.IncompleteTemplate:
			tmpl := p.parseTemplateLiteral()
			newID := p.arena.New(ast.TaggedTemplateLiteral, source.Span{Begin: p.arena.Span(id).Begin, End: p.arena.Span(tmpl).End})
			node := p.arena.Get(newID)
			node.A, node.B = id, tmpl
			id = newID

		case lexer.PlusPlus, lexer.MinusMinus:
			if p.tok.HasLeadingNewline {
				return id
			}
			op := p.tok.Kind
			end := p.tok.Span.End
			p.advance()
			newID := p.arena.New(ast.RWUnarySuffix, source.Span{Begin: p.arena.Span(id).Begin, End: end})
			node := p.arena.Get(newID)
			node.Op = op
			node.A = id
			id = newID

		default:
			return id
		}
	}
}

func (p *Parser) parseCallArguments() ([]ast.ExprID, int) {
	p.expect(lexer.LeftParen)
	var args []ast.ExprID
	for !p.at(lexer.RightParen) && !p.at(lexer.EndOfFile) {
		args = append(args, p.parseAssignmentExpr())
		if p.at(lexer.Comma) {
			p.advance()
		}
	}
	end := p.tok.Span.End
	p.expect(lexer.RightParen)
	return args, end
}

// parsePrimary parses one expression atom (spec.md GLOSSARY "Primary
// expression").
func (p *Parser) parsePrimary() ast.ExprID {
	switch p.tok.Kind {
	case lexer.Identifier, lexer.KwAs, lexer.KwFrom, lexer.KwGet, lexer.KwOf, lexer.KwSet, lexer.KwStatic:
		name := p.identifierText()
		span := p.tok.Span
		p.advance()
		if p.at(lexer.EqualGreater) {
			p.advance()
			param := p.arena.New(ast.Variable, span)
			p.arena.Get(param).Text = name
			return p.parseArrowBody([]ast.ExprID{param}, span, ast.Normal)
		}
		id := p.arena.New(ast.Variable, span)
		p.arena.Get(id).Text = name
		if !p.at(lexer.Equal) {
			// A plain `=` target is reported once, as
			// variable_assignment, by parseAssignmentFrom.
			p.visit.VariableUse(name, span)
		}
		return id

	case lexer.KwYield:
		return p.parseYieldExpression()

	case lexer.Number, lexer.String, lexer.KwTrue, lexer.KwFalse, lexer.KwNull:
		id := p.arena.New(ast.Literal, p.tok.Span)
		p.arena.Get(id).Text = p.tok.Text(p.source.Padded())
		p.advance()
		return id

	case lexer.Slash, lexer.SlashEqual:
		tok := p.lex.ReparseAsRegexp()
		p.tok = tok
		id := p.arena.New(ast.Literal, tok.Span)
		p.arena.Get(id).Regexp = tok.Regexp
		p.advance()
		return id

	case lexer.CompleteTemplate, lexer.IncompleteTemplate:
		return p.parseTemplateLiteral()

	case lexer.KwThis:
		id := p.arena.New(ast.This, p.tok.Span)
		p.advance()
		return id

	case lexer.KwSuper:
		id := p.arena.New(ast.Super, p.tok.Span)
		p.advance()
		return id

	case lexer.KwImport:
		id := p.arena.New(ast.Import, p.tok.Span)
		p.advance()
		return id

	case lexer.KwNew:
		return p.parseNewExpression()

	case lexer.LeftParen:
		return p.parseParenOrArrow(p.tok.Span, ast.Normal)

	case lexer.LeftSquare:
		return p.parseArrayLiteral()

	case lexer.LeftCurly:
		return p.parseObjectLiteral()

	case lexer.KwFunction:
		return p.parseFunctionExpression(ast.Normal)

	case lexer.KwAsync:
		return p.parseAsyncPrimary()

	case lexer.KwClass:
		return p.parseClassExpression()

	default:
		p.report(errors.MissingOperandForOperator, p.tok.Span)
		id := p.arena.New(ast.Invalid, p.tok.Span)
		if !p.at(lexer.EndOfFile) {
			p.advance()
		}
		return id
	}
}

func (p *Parser) parseYieldExpression() ast.ExprID {
	start := p.tok.Span
	p.advance()
	if p.at(lexer.Star) {
		p.advance()
	}
	var operand ast.ExprID
	switch p.tok.Kind {
	case lexer.Semicolon, lexer.RightCurly, lexer.RightParen, lexer.RightSquare, lexer.Comma, lexer.Colon, lexer.EndOfFile:
	default:
		if !p.tok.HasLeadingNewline {
			operand = p.parseAssignmentExpr()
		}
	}
	return p.newUnary(ast.UnaryOperator, lexer.KwYield, start, operand)
}

// parseNewExpression parses `new Callee(args)` and the bare
// `new.target` pseudo-expression.
func (p *Parser) parseNewExpression() ast.ExprID {
	start := p.tok.Span
	p.advance() // 'new'
	if p.at(lexer.Dot) {
		p.advance()
		end := p.tok.Span.End
		if p.at(lexer.Identifier) {
			p.advance()
		}
		return p.arena.New(ast.NewTarget, source.Span{Begin: start.Begin, End: end})
	}

	callee := p.applyPostfixOps(p.parsePrimary(), false)
	var args []ast.ExprID
	end := p.arena.Span(callee).End
	if p.at(lexer.LeftParen) {
		var callEnd int
		args, callEnd = p.parseCallArguments()
		end = callEnd
	}
	id := p.arena.New(ast.New, source.Span{Begin: start.Begin, End: end})
	node := p.arena.Get(id)
	node.A = callee
	node.Children = args
	return p.applyPostfixOps(id, true)
}

// parseParenOrArrow parses a parenthesized expression, speculatively:
// if `=>` follows the closing paren, the contents are reinterpreted as
// an arrow parameter list instead (spec.md §4.4 "Arrow functions").
// The speculative parse runs against a BufferedVisitor so that, in the
// arrow case, the parameter-position identifiers' spurious
// variable_use events are discarded rather than replayed — the real
// parameter declarations are emitted by parseArrowBody instead.
func (p *Parser) parseParenOrArrow(start source.Span, attrs ast.Attributes) ast.ExprID {
	p.advance() // '('

	if p.at(lexer.RightParen) {
		p.advance()
		if p.at(lexer.EqualGreater) {
			p.advance()
			return p.parseArrowBody(nil, start, attrs)
		}
		p.report(errors.UnexpectedIdentifier, start)
		return p.arena.New(ast.Invalid, start)
	}

	buffered := NewBufferedVisitor()
	outer := p.visit
	p.visit = buffered

	inner := p.parseExpression(lowest)
	closeSpan := p.tok.Span
	closed := p.expect(lexer.RightParen)
	p.visit = outer
	if !closed {
		p.report(errors.UnmatchedParenthesis, start)
	}

	if p.at(lexer.EqualGreater) {
		p.advance()
		params := p.flattenToParamList(inner)
		return p.parseArrowBody(params, start, attrs)
	}

	buffered.Replay(outer)
	p.arena.Get(inner).Span = source.Span{Begin: start.Begin, End: closeSpan.End}
	return inner
}

// flattenToParamList interprets a previously-parsed expression as a
// comma-separated arrow parameter list.
func (p *Parser) flattenToParamList(inner ast.ExprID) []ast.ExprID {
	if !inner.IsValid() {
		return nil
	}
	node := p.arena.Get(inner)
	if node.Kind == ast.BinaryOperator && allCommaOps(node.Ops) {
		return node.Children
	}
	return []ast.ExprID{inner}
}

func allCommaOps(ops []lexer.Kind) bool {
	if len(ops) == 0 {
		return false
	}
	for _, o := range ops {
		if o != lexer.Comma {
			return false
		}
	}
	return true
}

// parseArrowBody declares each param (kind Parameter) in a freshly
// entered function scope and parses the arrow's body, which is either
// a single expression (arrow_function_with_expression) or a `{...}`
// block (arrow_function_with_statements). Body parsing runs through a
// BufferedVisitor replayed once the function scope has exited, per
// spec.md §4.6's buffering visitor.
func (p *Parser) parseArrowBody(params []ast.ExprID, start source.Span, attrs ast.Attributes) ast.ExprID {
	p.visit.EnterFunctionScope()
	for _, pid := range params {
		declareParam(p, pid)
	}

	buffered := NewBufferedVisitor()
	outer := p.visit
	p.visit = buffered
	p.visit.EnterFunctionScopeBody()

	var id ast.ExprID
	if p.at(lexer.LeftCurly) {
		end := p.parseFunctionBodyBlock()
		p.visit.ExitFunctionScope()
		p.visit = outer
		buffered.Replay(outer)
		id = p.arena.New(ast.ArrowFunctionWithStatements, source.Span{Begin: start.Begin, End: end})
		p.arena.Get(id).Function = &ast.FunctionData{Params: params, Attributes: attrs}
		return id
	}

	body := p.parseAssignmentExpr()
	end := p.arena.Span(body).End
	p.visit.ExitFunctionScope()
	p.visit = outer
	buffered.Replay(outer)
	id = p.arena.New(ast.ArrowFunctionWithExpression, source.Span{Begin: start.Begin, End: end})
	p.arena.Get(id).Function = &ast.FunctionData{Params: params, Attributes: attrs, Body: body}
	return id
}

// declareParam emits variable_declaration(kind=Parameter) for the
// name(s) bound by a parameter node, which may be a bare identifier, a
// default-value assignment, or a rest/spread parameter.
func declareParam(p *Parser, pid ast.ExprID) {
	n := p.arena.Get(pid)
	switch n.Kind {
	case ast.Variable:
		p.visit.VariableDeclaration(n.Text, errors.VariableKindParameter, n.Span)
	case ast.Assignment:
		if target := p.arena.Get(n.A); target.Kind == ast.Variable {
			p.visit.VariableDeclaration(target.Text, errors.VariableKindParameter, target.Span)
		}
	case ast.Spread:
		if n.A.IsValid() {
			if operand := p.arena.Get(n.A); operand.Kind == ast.Variable {
				p.visit.VariableDeclaration(operand.Text, errors.VariableKindParameter, operand.Span)
			}
		}
	}
}

func (p *Parser) parseArrayLiteral() ast.ExprID {
	start := p.tok.Span
	p.advance() // '['
	var children []ast.ExprID
	for !p.at(lexer.RightSquare) && !p.at(lexer.EndOfFile) {
		if p.at(lexer.Comma) {
			children = append(children, 0) // elision hole
			p.advance()
			continue
		}
		children = append(children, p.parseAssignmentExpr())
		if p.at(lexer.Comma) {
			p.advance()
		}
	}
	end := p.tok.Span.End
	p.expect(lexer.RightSquare)
	id := p.arena.New(ast.Array, source.Span{Begin: start.Begin, End: end})
	p.arena.Get(id).Children = children
	return id
}

func (p *Parser) parseObjectLiteral() ast.ExprID {
	start := p.tok.Span
	p.advance() // '{'
	var entries []ast.ObjectEntry

	for !p.at(lexer.RightCurly) && !p.at(lexer.EndOfFile) {
		if p.at(lexer.DotDotDot) {
			spread := p.parseUnary()
			entries = append(entries, ast.ObjectEntry{Value: spread})
		} else {
			computed := false
			var propID ast.ExprID
			var propText string
			propSpan := p.tok.Span

			if p.at(lexer.LeftSquare) {
				computed = true
				p.advance()
				propID = p.parseExpression(lowest)
				p.expect(lexer.RightSquare)
			} else {
				switch p.tok.Kind {
				case lexer.String, lexer.Number:
					propText = p.tok.Text(p.source.Padded())
				default:
					propText = p.identifierText()
				}
				propID = p.arena.New(ast.Literal, propSpan)
				p.arena.Get(propID).Text = propText
				p.advance()
			}

			switch {
			case p.at(lexer.LeftParen):
				valID := p.parseFunctionTail(propSpan, "", ast.Normal, false)
				entries = append(entries, ast.ObjectEntry{Property: propID, Value: valID, Computed: computed})
			case p.at(lexer.Colon):
				p.advance()
				valID := p.parseAssignmentExpr()
				entries = append(entries, ast.ObjectEntry{Property: propID, Value: valID, Computed: computed})
			default:
				id := p.arena.New(ast.Variable, propSpan)
				p.arena.Get(id).Text = propText
				p.visit.VariableUse(propText, propSpan)
				entries = append(entries, ast.ObjectEntry{Value: id})
			}
		}

		if p.at(lexer.Comma) {
			p.advance()
		} else if !p.at(lexer.RightCurly) {
			p.report(errors.MissingCommaBetweenObjectLiteralEntries, p.tok.Span)
		}
	}

	end := p.tok.Span.End
	p.expect(lexer.RightCurly)
	id := p.arena.New(ast.Object, source.Span{Begin: start.Begin, End: end})
	p.arena.Get(id).Entries = entries
	return id
}

// parseTemplateLiteral consumes one or more template chunks from the
// lexer, collecting each `${...}` interpolation as a Children entry
// (spec.md §4.3 "Template literals", §8 scenario 8).
func (p *Parser) parseTemplateLiteral() ast.ExprID {
	start := p.tok.Span
	openBegin := start.Begin
	var children []ast.ExprID

	for {
		if p.tok.Kind == lexer.CompleteTemplate {
			end := p.tok.Span.End
			p.advance()
			id := p.arena.New(ast.Template, source.Span{Begin: start.Begin, End: end})
			p.arena.Get(id).Children = children
			return id
		}
		// IncompleteTemplate: lexer has already consumed through '${'.
		p.advance()
		children = append(children, p.parseExpression(lowest))
		if p.tok.Kind != lexer.RightCurly {
			p.report(errors.UnmatchedParenthesis, p.tok.Span)
		}
		p.tok = p.lex.SkipInTemplate(openBegin)
	}
}

func (p *Parser) parseFunctionExpression(attrs ast.Attributes) ast.ExprID {
	start := p.tok.Span
	p.advance() // 'function'
	name := ""
	if p.at(lexer.Identifier) {
		name = p.identifierText()
		p.advance()
	}
	return p.parseFunctionTail(start, name, attrs, name != "")
}

func (p *Parser) parseAsyncPrimary() ast.ExprID {
	start := p.tok.Span
	p.advance() // 'async'
	return p.parseAsyncTail(start)
}

// parseAsyncTail continues parsing once `async` has already been
// consumed and start is its span, producing an async function/arrow
// expression, or — when nothing after `async` makes it one — a bare
// reference to the identifier `async`.
func (p *Parser) parseAsyncTail(start source.Span) ast.ExprID {
	if p.at(lexer.KwFunction) && !p.tok.HasLeadingNewline {
		id := p.parseFunctionExpression(ast.Async)
		widenSpanBegin(p.arena, id, start.Begin)
		return id
	}
	if p.at(lexer.LeftParen) && !p.tok.HasLeadingNewline {
		id := p.parseParenOrArrow(p.tok.Span, ast.Async)
		widenSpanBegin(p.arena, id, start.Begin)
		return id
	}
	if p.at(lexer.Identifier) && !p.tok.HasLeadingNewline {
		name := p.identifierText()
		nspan := p.tok.Span
		p.advance()
		if p.at(lexer.EqualGreater) {
			p.advance()
			param := p.arena.New(ast.Variable, nspan)
			p.arena.Get(param).Text = name
			return p.parseArrowBody([]ast.ExprID{param}, start, ast.Async)
		}
		p.visit.VariableUse("async", start)
		id := p.arena.New(ast.Variable, nspan)
		p.arena.Get(id).Text = name
		p.visit.VariableUse(name, nspan)
		return p.applyPostfixOps(id, true)
	}

	id := p.arena.New(ast.Variable, start)
	p.arena.Get(id).Text = "async"
	p.visit.VariableUse("async", start)
	return id
}

// finishAsyncExpressionStatement resumes statement parsing after the
// statement dispatcher has already consumed a leading `async` token
// and found it was not followed directly by `function` (so it cannot
// be an async function declaration). The lexer's one-token lookahead
// means `async` had to be consumed to make that determination;
// parseAsyncTail turns it into the primary expression `async` would
// have produced had parsePrimary seen it, and parseExpressionFrom
// resumes the normal ladder (binary/conditional/assignment/comma)
// from there, so forms like `async(x)` or `async.foo` parse exactly
// as if `async` had been recognized as a plain identifier up front.
func (p *Parser) finishAsyncExpressionStatement(start source.Span) ast.ExprID {
	seed := p.parseAsyncTail(start)
	id := p.parseExpressionFrom(seed, lowest)
	p.consumeStatementTerminator()
	return id
}

func widenSpanBegin(a *ast.Arena, id ast.ExprID, begin int) {
	sp := a.Span(id)
	a.Get(id).Span = source.Span{Begin: begin, End: sp.End}
}

// parseClassExpression treats `class` as a literal-valued expression
// (the Kind enum has no dedicated class form, spec.md §3): its scope
// and member structure reach the linter purely through visit events
// (enter/exit_class_scope, plus the events of method bodies and field
// initializers; member names themselves are not declared), matching how the Kind enum represents statement-level constructs
// with no AST shape of their own. See DESIGN.md's class-expression
// decision.
func (p *Parser) parseClassExpression() ast.ExprID {
	start := p.tok.Span
	p.advance() // 'class'
	if p.at(lexer.Identifier) {
		p.advance()
	}
	p.visit.EnterClassScope()
	if p.at(lexer.KwExtends) {
		p.advance()
		p.parseExpression(unaryPrec)
	}
	end := p.parseClassBody()
	p.visit.ExitClassScope()
	id := p.arena.New(ast.Literal, source.Span{Begin: start.Begin, End: end})
	p.arena.Get(id).Text = "class"
	return id
}
