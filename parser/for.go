package parser

import (
	"github.com/jsparse-go/jsparse/ast"
	"github.com/jsparse-go/jsparse/diag"
	"github.com/jsparse-go/jsparse/token"
)

// parseForStatement resolves SPEC_FULL.md §4.5's tri-state for/for-in
// disambiguation. A declaration keyword (var/let/const) routes to
// parseForWithDeclaration, which checks for a trailing 'in' right after a
// single binding target; otherwise the loop falls back to an identifier- or
// expression-led init, where 'in' as a binary operator is suppressed via
// p.flags.inForInit while the init expression is parsed, and only then is
// a trailing bare 'in' (left side restricted to a single Identifier, per
// invariant I5) checked for.
func (p *Parser) parseForStatement() ast.Statement {
	start := p.cur.Loc.Start
	p.advance() // consume 'for'
	p.expect(token.LPAREN, "'('")
	if !p.ok() {
		return nil
	}

	switch {
	case p.curIs(token.VAR) || p.curIs(token.LET) || p.curIs(token.CONST):
		return p.parseForWithDeclaration(start)
	case p.curIs(token.SEMICOLON):
		return p.parseForClassicRest(start, nil)
	default:
		return p.parseForWithExpressionInit(start)
	}
}

func (p *Parser) parseForWithDeclaration(start token.Position) ast.Statement {
	declStart := p.cur.Loc.Start
	kind := p.cur.Type.String()
	p.advance()
	target := p.parseBindingTarget()
	if !p.ok() {
		return nil
	}

	if p.curIs(token.IN) {
		p.advance()
		right := p.parseExpression(lowest)
		p.expect(token.RPAREN, "')'")
		if !p.ok() {
			return nil
		}
		body := p.parseStatement()
		declLoc := target.Loc()
		decl := &ast.VariableDeclaration{
			BaseNode: ast.BaseNode{Span: token.Loc{Start: declStart, End: declLoc.End}},
			Kind:     kind,
			Declarations: []*ast.VariableDeclarator{
				{BaseNode: ast.BaseNode{Span: declLoc}, ID: target, Init: nil},
			},
		}
		return &ast.ForInStatement{BaseNode: bn(start, p), Left: decl, Right: right, Body: body}
	}

	// Not for-in: an ordinary for(;;) init, possibly with an initializer and
	// further comma-separated declarators.
	declStart2 := declStart
	var init ast.Expression
	if p.curIs(token.ASSIGN) {
		p.advance()
		init = p.parseExpression(pAssign)
	}
	decls := []*ast.VariableDeclarator{{BaseNode: bn(declStart2, p), ID: target, Init: init}}
	for p.ok() && p.curIs(token.COMMA) {
		p.advance()
		d := p.parseVariableDeclarator()
		if !p.ok() {
			return nil
		}
		decls = append(decls, d)
	}
	if !p.ok() {
		return nil
	}
	decl := &ast.VariableDeclaration{BaseNode: bn(declStart, p), Kind: kind, Declarations: decls}
	return p.parseForClassicRest(start, decl)
}

func (p *Parser) parseForWithExpressionInit(start token.Position) ast.Statement {
	p.flags.inForInit = true
	initExpr := p.parseExpression(lowest)
	p.flags.inForInit = false
	if !p.ok() {
		return nil
	}

	if p.curIs(token.IN) {
		left, isLeft := forInLeftFromExpression(initExpr)
		if !isLeft {
			p.fail(diag.SyntaxError, "invalid left-hand side in for-in loop: expected a single identifier")
			return nil
		}
		p.advance() // consume 'in'
		right := p.parseExpression(lowest)
		p.expect(token.RPAREN, "')'")
		if !p.ok() {
			return nil
		}
		body := p.parseStatement()
		return &ast.ForInStatement{BaseNode: bn(start, p), Left: left, Right: right, Body: body}
	}

	return p.parseForClassicRest(start, ast.WrapForInit(initExpr))
}

// forInLeftFromExpression accepts only a bare Identifier as a for-in left
// side when no var/let/const introduced it (invariant I5).
func forInLeftFromExpression(e ast.Expression) (ast.ForLeft, bool) {
	ident, ok := e.(*ast.Identifier)
	if !ok {
		return nil, false
	}
	return ident, true
}

// parseForClassicRest parses the `; test ; update )` tail shared by every
// plain for(;;) loop, regardless of how init was produced. p.cur is
// SEMICOLON on entry.
func (p *Parser) parseForClassicRest(start token.Position, init ast.ForInit) ast.Statement {
	p.expect(token.SEMICOLON, "';'")
	if !p.ok() {
		return nil
	}
	var test ast.Expression
	if !p.curIs(token.SEMICOLON) {
		test = p.parseExpression(lowest)
	}
	p.expect(token.SEMICOLON, "';'")
	if !p.ok() {
		return nil
	}
	var update ast.Expression
	if !p.curIs(token.RPAREN) {
		update = p.parseExpression(lowest)
	}
	p.expect(token.RPAREN, "')'")
	if !p.ok() {
		return nil
	}
	body := p.parseStatement()
	return &ast.ForStatement{BaseNode: bn(start, p), Init: init, Test: test, Update: update, Body: body}
}
