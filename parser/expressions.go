package parser

import (
	"github.com/jsparse-go/jsparse/ast"
	"github.com/jsparse-go/jsparse/diag"
	"github.com/jsparse-go/jsparse/token"
)

// parseExpression is SPEC_FULL.md §4.2's `parse_expression(min_level)`: it
// consumes tokens until the next operator has precedence < minLevel or a
// terminator is reached, grounded on the teacher's precedence-climbing
// expressions.go core and original_source/src/express.rs's loop shape
// (generalized for full infix chainability, see DESIGN.md's Open Question
// resolutions).
func (p *Parser) parseExpression(minLevel int) ast.Expression {
	left := p.parsePrefix()
	if !p.ok() {
		return left
	}
	return p.parseInfixLoop(left, minLevel)
}

func (p *Parser) parsePrefix() ast.Expression {
	start := p.cur.Loc.Start
	switch p.cur.Type {
	case token.INC, token.DEC:
		op := p.cur.Type.String()
		p.advance()
		arg := p.parseExpression(pPostfix + 1)
		return &ast.UpdateExpression{BaseNode: bn(start, p), Operator: op, Prefix: true, Argument: arg}
	case token.BANG, token.TILDE, token.TYPEOF, token.VOID, token.DELETE, token.AWAIT:
		op := unaryOpText(p.cur.Type)
		p.advance()
		arg := p.parseExpression(pUnary + 1)
		return &ast.UnaryExpression{BaseNode: bn(start, p), Operator: op, Prefix: true, Argument: arg}
	case token.PLUS, token.MINUS:
		op := p.cur.Type.String()
		p.advance()
		arg := p.parseExpression(pUnary + 1)
		return &ast.UnaryExpression{BaseNode: bn(start, p), Operator: op, Prefix: true, Argument: arg}
	case token.LPAREN:
		return p.parseParenCover()
	case token.LBRACKET:
		return p.parseArrayLiteralOrCover(false)
	case token.LBRACE:
		return p.parseObjectLiteralOrCover(false)
	case token.FUNCTION:
		return p.parseFunctionExpression()
	case token.NEW:
		return p.parseNewExpression()
	case token.THIS:
		p.advance()
		return &ast.ThisExpression{BaseNode: bn(start, p)}
	case token.IDENT:
		name := p.cur.Literal
		p.advance()
		return &ast.Identifier{BaseNode: bn(start, p), Name: name}
	case token.DIGIT:
		v := p.cur.Literal
		p.advance()
		return &ast.NumericLiteral{BaseNode: bn(start, p), Value: v}
	case token.STRING:
		v := p.cur.Literal
		p.advance()
		return &ast.StringLiteral{BaseNode: bn(start, p), Value: v}
	case token.TRUE, token.FALSE:
		v := p.cur.Type == token.TRUE
		p.advance()
		return &ast.BooleanLiteral{BaseNode: bn(start, p), Value: v}
	case token.NULL:
		p.advance()
		return &ast.NullLiteral{BaseNode: bn(start, p)}
	case token.TEMPLATE:
		v := p.cur.Literal
		p.advance()
		elem := &ast.TemplateElement{BaseNode: bn(start, p), Value: v}
		return &ast.TemplateLiteral{BaseNode: bn(start, p), Quasis: []*ast.TemplateElement{elem}}
	case token.REGEX:
		pat, flags := p.cur.Literal, p.cur.Flags
		p.advance()
		return &ast.RegExpLiteral{BaseNode: bn(start, p), Pattern: pat, Flags: flags}
	default:
		p.fail(diag.SyntaxError, "unexpected token %s in expression position", p.cur)
		return nil
	}
}

func unaryOpText(t token.Type) string {
	switch t {
	case token.BANG:
		return "!"
	case token.TILDE:
		return "~"
	case token.TYPEOF:
		return "typeof"
	case token.VOID:
		return "void"
	case token.DELETE:
		return "delete"
	case token.AWAIT:
		return "await"
	default:
		internalError("unaryOpText called with non-unary token %s", t)
		return ""
	}
}

// parseInfixLoop is SPEC_FULL.md §4.2's infix loop, plus the same-line
// restricted-production rule from the final paragraph of §4.2.
func (p *Parser) parseInfixLoop(left ast.Expression, minLevel int) ast.Expression {
	for p.ok() {
		if isTerminator(p.cur.Type) {
			break
		}
		if p.cur.Type == token.IDENT || p.cur.Type == token.DIGIT {
			if p.cur.Loc.Start.Line != left.Loc().End.Line {
				break // implicit statement break: different source line
			}
			p.fail(diag.SyntaxError, "unexpected %s immediately after an expression on the same line", p.cur)
			return left
		}
		if p.cur.Type == token.IN && p.flags.inForInit {
			break // `in` suppressed inside a for(;;) init expression
		}
		lvl := precedence(p.cur)
		if lvl == lowest || lvl < minLevel {
			break
		}
		left = p.parseInfixOp(left, lvl)
	}
	return left
}

func isTerminator(t token.Type) bool {
	switch t {
	case token.SEMICOLON, token.COLON, token.RPAREN, token.RBRACKET, token.RBRACE, token.EOF:
		return true
	default:
		return false
	}
}

func (p *Parser) parseInfixOp(left ast.Expression, lvl int) ast.Expression {
	start := left.Loc().Start
	opTok := p.cur

	switch opTok.Type {
	case token.COMMA:
		p.advance()
		right := p.parseExpression(lvl + 1)
		if seq, ok := left.(*ast.SequenceExpression); ok {
			seq.Expressions = append(seq.Expressions, right)
			seq.Span = bn(start, p).Span
			return seq
		}
		return &ast.SequenceExpression{BaseNode: bn(start, p), Expressions: []ast.Expression{left, right}}

	case token.ARROW:
		// Bare single-identifier arrow head, e.g. `x => x + 1` (no parens).
		p.advance()
		param, err := toPattern(left)
		if err != nil {
			p.err = err
			return left
		}
		body := p.parseArrowBody()
		return &ast.ArrowFunctionExpression{BaseNode: bn(start, p), Params: []ast.Pattern{param}, Body: body}

	case token.QUESTION:
		p.advance()
		cons := p.parseExpression(pAssign)
		if !p.expect(token.COLON, "':'") {
			return left
		}
		alt := p.parseExpression(pAssign)
		return &ast.ConditionalExpression{BaseNode: bn(start, p), Test: left, Consequent: cons, Alternate: alt}

	case token.LPAREN:
		args := p.parseArguments()
		return &ast.CallExpression{BaseNode: bn(start, p), Callee: left, Arguments: args}

	case token.LBRACKET:
		p.advance()
		savedInForInit := p.flags.inForInit
		p.flags.inForInit = false
		prop := p.parseExpression(lowest)
		p.flags.inForInit = savedInForInit
		p.expect(token.RBRACKET, "']'")
		return &ast.MemberExpression{BaseNode: bn(start, p), Object: left, Property: prop, Computed: true}

	case token.DOT, token.QUESTION_DOT:
		p.advance()
		// "Keyword-as-identifier in member position": the token right after
		// '.' is read as an Identifier even if its kind is a keyword.
		propStart := p.cur.Loc.Start
		name := p.cur.Literal
		if name == "" {
			name = p.cur.Type.String()
		}
		if !p.cur.Type.IsKeyword() && p.cur.Type != token.IDENT {
			p.fail(diag.ExpectError, "expected property name after '.', got %s", p.cur)
			return left
		}
		p.advance()
		prop := &ast.Identifier{BaseNode: bn(propStart, p), Name: name}
		return &ast.MemberExpression{BaseNode: bn(start, p), Object: left, Property: prop, Computed: false}

	case token.INC, token.DEC:
		op := opTok.Type.String()
		p.advance()
		return &ast.UpdateExpression{BaseNode: bn(start, p), Operator: op, Prefix: false, Argument: left}

	case token.IN, token.INSTANCEOF:
		op := opTok.Type.String()
		p.advance()
		right := p.parseExpression(lvl + 1)
		return &ast.BinaryExpression{BaseNode: bn(start, p), Operator: op, Left: left, Right: right}

	case token.AND, token.OR, token.NULLISH:
		op := opTok.Type.String()
		p.advance()
		right := p.parseExpression(lvl + 1)
		return &ast.LogicalExpression{BaseNode: bn(start, p), Operator: op, Left: left, Right: right}

	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
		token.SLASH_ASSIGN, token.PERCENT_ASSIGN, token.SHL_ASSIGN, token.SHR_ASSIGN,
		token.AMP_ASSIGN, token.PIPE_ASSIGN:
		op := opTok.Type.String()
		p.advance()
		right := p.parseExpression(lvl)
		return &ast.AssignmentExpression{BaseNode: bn(start, p), Operator: op, Left: left, Right: right}

	case token.STAR_STAR:
		op := opTok.Type.String()
		p.advance()
		right := p.parseExpression(lvl) // right-associative
		return &ast.BinaryExpression{BaseNode: bn(start, p), Operator: op, Left: left, Right: right}

	default:
		// Every other recognized infix operator is a plain left-associative
		// BinaryExpression: + - * / % << >> < <= > >= == != === !== & ^ |.
		op := opTok.Type.String()
		p.advance()
		right := p.parseExpression(lvl + 1)
		return &ast.BinaryExpression{BaseNode: bn(start, p), Operator: op, Left: left, Right: right}
	}
}

// parseArguments parses a parenthesized, comma-separated call-argument
// list; p.cur is LPAREN on entry.
func (p *Parser) parseArguments() []ast.Expression {
	p.advance() // consume '('
	savedInForInit := p.flags.inForInit
	p.flags.inForInit = false
	defer func() { p.flags.inForInit = savedInForInit }()
	var args []ast.Expression
	if p.curIs(token.RPAREN) {
		p.advance()
		return args
	}
	for p.ok() {
		args = append(args, p.parseExpression(pAssign))
		if !p.ok() {
			return args
		}
		if p.curIs(token.COMMA) {
			p.advance()
			if p.curIs(token.RPAREN) { // trailing comma
				break
			}
			continue
		}
		break
	}
	p.expect(token.RPAREN, "')'")
	return args
}

// parseNewExpression implements "new consumes a callee and optional (args)"
// from SPEC_FULL.md §4.2 step 1. The callee is parsed by parseNewCallee,
// not the generic precedence climb: `new foo.bar()` must bind `foo.bar` as
// the callee and apply `()` as the NewExpression's own arguments, never as
// a call on `bar` (which plain precedence-climbing would produce, since
// '.' and '(' share one precedence level).
func (p *Parser) parseNewExpression() ast.Expression {
	start := p.cur.Loc.Start
	p.advance() // consume 'new'
	callee := p.parseNewCallee()
	if !p.ok() {
		return callee
	}
	var args []ast.Expression
	if p.curIs(token.LPAREN) {
		args = p.parseArguments()
	}
	return &ast.NewExpression{BaseNode: bn(start, p), Callee: callee, Arguments: args}
}

// parseNewCallee parses a primary expression followed by any number of
// member accesses (. [ ), stopping before a call so the enclosing `new`
// can claim a following `(...)` as its own argument list.
func (p *Parser) parseNewCallee() ast.Expression {
	var left ast.Expression
	if p.curIs(token.NEW) {
		left = p.parseNewExpression() // nested `new new Foo()`
	} else {
		left = p.parsePrefix()
	}
	for p.ok() {
		switch p.cur.Type {
		case token.DOT, token.QUESTION_DOT, token.LBRACKET:
			left = p.parseInfixOp(left, pCall)
		default:
			return left
		}
	}
	return left
}

// parseArrowBody parses the body of an arrow function: a block if '{'
// follows, otherwise a single assignment-level expression (SPEC_FULL.md
// §4.2 step "if is_ctrl_word('{') ... else parse_expression(2)").
func (p *Parser) parseArrowBody() ast.Node {
	if p.curIs(token.LBRACE) {
		return p.parseBlockStatement()
	}
	return p.parseExpression(pAssign)
}

// bn builds a BaseNode spanning from start to the position just before the
// parser's current token (i.e. the end of whatever was last consumed).
func bn(start token.Position, p *Parser) ast.BaseNode {
	end := start
	if p.err == nil {
		end = p.prevEnd
	}
	return ast.BaseNode{Span: token.Loc{Start: start, End: end}}
}
