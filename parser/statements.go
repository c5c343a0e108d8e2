package parser

import (
	"github.com/jsparse-go/jsparse/ast"
	"github.com/jsparse-go/jsparse/diag"
	"github.com/jsparse-go/jsparse/token"
)

// parseStatement dispatches on the current token's kind, grounded on the
// teacher's internal/parser statement-dispatch switch, generalized to this
// grammar's statement set (SPEC_FULL.md §4.4).
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.VAR, token.LET, token.CONST:
		decl := p.parseVariableDeclaration()
		if !p.ok() {
			return decl
		}
		p.consumeStatementTerminator()
		return decl
	case token.FUNCTION:
		return p.parseFunctionDeclaration()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.SEMICOLON:
		start := p.cur.Loc.Start
		p.advance()
		return &ast.EmptyStatement{BaseNode: bn(start, p)}
	case token.IF:
		return p.parseIfStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	default:
		return p.parseExpressionOrLabeledStatement()
	}
}

// consumeStatementTerminator implements the minimal ASI rule from
// SPEC_FULL.md §4.6: an explicit ';' is always accepted; it may be omitted
// before '}', at EOF, or when the next token starts on a new source line.
// Anything else is an ExpectError.
func (p *Parser) consumeStatementTerminator() {
	if !p.ok() {
		return
	}
	if p.curIs(token.SEMICOLON) {
		p.advance()
		return
	}
	if p.curIs(token.RBRACE) || p.curIs(token.EOF) {
		return
	}
	if p.cur.Loc.Start.Line != p.prevEnd.Line {
		return
	}
	p.fail(diag.ExpectError, "expected ';', got %s", p.cur)
}

// restrictedTerminates reports whether the restricted production following
// return/throw/break/continue must end here: a terminator token, or a
// newline between the keyword (whose end position is keywordEnd) and the
// next token. Per SPEC_FULL.md §4.6's restricted-production rule.
func (p *Parser) restrictedTerminates(keywordEnd token.Position) bool {
	if p.curIs(token.SEMICOLON) || p.curIs(token.RBRACE) || p.curIs(token.EOF) {
		return true
	}
	return p.cur.Loc.Start.Line != keywordEnd.Line
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	start := p.cur.Loc.Start
	if !p.expect(token.LBRACE, "'{'") {
		return &ast.BlockStatement{BaseNode: bn(start, p)}
	}
	var body []ast.Statement
	for p.ok() && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		body = append(body, p.parseStatement())
		if !p.ok() {
			return &ast.BlockStatement{BaseNode: bn(start, p), Body: body}
		}
	}
	p.expect(token.RBRACE, "'}'")
	return &ast.BlockStatement{BaseNode: bn(start, p), Body: body}
}

func (p *Parser) parseVariableDeclaration() *ast.VariableDeclaration {
	start := p.cur.Loc.Start
	kind := p.cur.Type.String()
	p.advance()
	var decls []*ast.VariableDeclarator
	for {
		d := p.parseVariableDeclarator()
		if !p.ok() {
			return nil
		}
		decls = append(decls, d)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return &ast.VariableDeclaration{BaseNode: bn(start, p), Kind: kind, Declarations: decls}
}

func (p *Parser) parseVariableDeclarator() *ast.VariableDeclarator {
	start := p.cur.Loc.Start
	id := p.parseBindingTarget()
	if !p.ok() {
		return nil
	}
	var init ast.Expression
	if p.curIs(token.ASSIGN) {
		p.advance()
		init = p.parseExpression(pAssign)
	}
	return &ast.VariableDeclarator{BaseNode: bn(start, p), ID: id, Init: init}
}

func identifierNode(start token.Position, end token.Position, name string) *ast.Identifier {
	return &ast.Identifier{BaseNode: ast.BaseNode{Span: token.Loc{Start: start, End: end}}, Name: name}
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	start := p.cur.Loc.Start
	p.advance() // consume 'function'
	if !p.curIs(token.IDENT) {
		p.fail(diag.ExpectError, "expected function name, got %s", p.cur)
		return nil
	}
	id := identifierNode(p.cur.Loc.Start, p.cur.Loc.End, p.cur.Literal)
	p.advance()
	params := p.parseParamList()
	if !p.ok() {
		return nil
	}
	body := p.parseBlockStatement()
	return &ast.FunctionDeclaration{BaseNode: bn(start, p), ID: id, Params: params, Body: body}
}

func (p *Parser) parseFunctionExpression() ast.Expression {
	start := p.cur.Loc.Start
	p.advance() // consume 'function'
	var id *ast.Identifier
	if p.curIs(token.IDENT) {
		id = identifierNode(p.cur.Loc.Start, p.cur.Loc.End, p.cur.Literal)
		p.advance()
	}
	params := p.parseParamList()
	if !p.ok() {
		return nil
	}
	body := p.parseBlockStatement()
	return &ast.FunctionExpression{BaseNode: bn(start, p), ID: id, Params: params, Body: body}
}

func (p *Parser) parseIfStatement() ast.Statement {
	start := p.cur.Loc.Start
	p.advance() // consume 'if'
	p.expect(token.LPAREN, "'('")
	test := p.parseExpression(lowest)
	p.expect(token.RPAREN, "')'")
	if !p.ok() {
		return nil
	}
	cons := p.parseStatement()
	if !p.ok() {
		return nil
	}
	var alt ast.Statement
	if p.curIs(token.ELSE) {
		p.advance()
		alt = p.parseStatement()
	}
	return &ast.IfStatement{BaseNode: bn(start, p), Test: test, Consequent: cons, Alternate: alt}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	start := p.cur.Loc.Start
	p.advance() // consume 'while'
	p.expect(token.LPAREN, "'('")
	test := p.parseExpression(lowest)
	p.expect(token.RPAREN, "')'")
	if !p.ok() {
		return nil
	}
	body := p.parseStatement()
	return &ast.WhileStatement{BaseNode: bn(start, p), Test: test, Body: body}
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	start := p.cur.Loc.Start
	p.advance() // consume 'do'
	body := p.parseStatement()
	if !p.ok() {
		return nil
	}
	p.expect(token.WHILE, "'while'")
	p.expect(token.LPAREN, "'('")
	test := p.parseExpression(lowest)
	p.expect(token.RPAREN, "')'")
	if !p.ok() {
		return nil
	}
	p.consumeStatementTerminator()
	return &ast.DoWhileStatement{BaseNode: bn(start, p), Body: body, Test: test}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	start := p.cur.Loc.Start
	keywordEnd := p.cur.Loc.End
	p.advance() // consume 'return'
	var arg ast.Expression
	if p.ok() && !p.restrictedTerminates(keywordEnd) {
		arg = p.parseExpression(lowest)
	}
	if !p.ok() {
		return nil
	}
	p.consumeStatementTerminator()
	return &ast.ReturnStatement{BaseNode: bn(start, p), Argument: arg}
}

func (p *Parser) parseThrowStatement() ast.Statement {
	start := p.cur.Loc.Start
	keywordEnd := p.cur.Loc.End
	p.advance() // consume 'throw'
	if p.restrictedTerminates(keywordEnd) {
		p.fail(diag.SyntaxError, "'throw' requires an argument on the same line")
		return nil
	}
	arg := p.parseExpression(lowest)
	if !p.ok() {
		return nil
	}
	p.consumeStatementTerminator()
	return &ast.ThrowStatement{BaseNode: bn(start, p), Argument: arg}
}

func (p *Parser) parseBreakStatement() ast.Statement {
	start := p.cur.Loc.Start
	p.advance() // consume 'break'
	p.consumeStatementTerminator()
	return &ast.BreakStatement{BaseNode: bn(start, p)}
}

func (p *Parser) parseContinueStatement() ast.Statement {
	start := p.cur.Loc.Start
	p.advance() // consume 'continue'
	p.consumeStatementTerminator()
	return &ast.ContinueStatement{BaseNode: bn(start, p)}
}

func (p *Parser) parseTryStatement() ast.Statement {
	start := p.cur.Loc.Start
	p.advance() // consume 'try'
	block := p.parseBlockStatement()
	if !p.ok() {
		return nil
	}

	var handler *ast.CatchClause
	if p.curIs(token.CATCH) {
		catchStart := p.cur.Loc.Start
		p.advance()
		var param ast.Pattern
		if p.curIs(token.LPAREN) {
			p.advance()
			param = p.parseBindingTarget()
			p.expect(token.RPAREN, "')'")
			if !p.ok() {
				return nil
			}
		}
		cbody := p.parseBlockStatement()
		handler = &ast.CatchClause{BaseNode: bn(catchStart, p), Param: param, Body: cbody}
	}

	var finalizer *ast.BlockStatement
	if p.ok() && p.curIs(token.FINALLY) {
		p.advance()
		finalizer = p.parseBlockStatement()
	}

	if !p.ok() {
		return nil
	}
	if handler == nil && finalizer == nil {
		p.fail(diag.SyntaxError, "missing 'catch' or 'finally' after 'try' block")
		return nil
	}
	return &ast.TryStatement{BaseNode: bn(start, p), Block: block, Handler: handler, Finalizer: finalizer}
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	start := p.cur.Loc.Start
	p.advance() // consume 'switch'
	p.expect(token.LPAREN, "'('")
	disc := p.parseExpression(lowest)
	p.expect(token.RPAREN, "')'")
	p.expect(token.LBRACE, "'{'")
	if !p.ok() {
		return nil
	}

	var cases []*ast.SwitchCase
	sawDefault := false
	for p.ok() && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		caseStart := p.cur.Loc.Start
		var test ast.Expression
		switch {
		case p.curIs(token.CASE):
			p.advance()
			test = p.parseExpression(lowest)
		case p.curIs(token.DEFAULT):
			if sawDefault {
				p.fail(diag.SyntaxError, "a switch statement may have at most one 'default' clause")
				return nil
			}
			sawDefault = true
			p.advance()
		default:
			p.fail(diag.ExpectError, "expected 'case' or 'default', got %s", p.cur)
			return nil
		}
		if !p.ok() {
			return nil
		}
		p.expect(token.COLON, "':'")

		var body []ast.Statement
		for p.ok() && !p.curIs(token.CASE) && !p.curIs(token.DEFAULT) &&
			!p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
			body = append(body, p.parseStatement())
			if !p.ok() {
				return nil
			}
		}
		cases = append(cases, &ast.SwitchCase{BaseNode: bn(caseStart, p), Test: test, Consequent: body})
	}
	p.expect(token.RBRACE, "'}'")
	return &ast.SwitchStatement{BaseNode: bn(start, p), Discriminant: disc, Cases: cases}
}

// parseExpressionOrLabeledStatement resolves the one remaining statement-
// level ambiguity this core grammar has: `ident ':'` is a LabeledStatement,
// never an ExpressionStatement containing a (nonexistent) standalone
// ConditionalExpression colon. A single token of lookahead (p.peek) settles
// it outright, with no speculation needed.
func (p *Parser) parseExpressionOrLabeledStatement() ast.Statement {
	start := p.cur.Loc.Start
	if p.cur.Type == token.IDENT && p.peek.Type == token.COLON {
		label := identifierNode(p.cur.Loc.Start, p.cur.Loc.End, p.cur.Literal)
		p.advance() // consume identifier
		p.advance() // consume ':'
		body := p.parseStatement()
		return &ast.LabeledStatement{BaseNode: bn(start, p), Label: label, Body: body}
	}

	expr := p.parseExpression(lowest)
	if !p.ok() {
		return &ast.ExpressionStatement{BaseNode: bn(start, p), Expression: expr}
	}
	p.consumeStatementTerminator()
	return &ast.ExpressionStatement{BaseNode: bn(start, p), Expression: expr}
}
