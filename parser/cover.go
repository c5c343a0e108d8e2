package parser

import (
	"github.com/jsparse-go/jsparse/ast"
	"github.com/jsparse-go/jsparse/diag"
	"github.com/jsparse-go/jsparse/token"
)

// parseParenCover implements SPEC_FULL.md §4.3's "hardest local problem":
// disambiguating a parenthesized expression, a sequence expression, and an
// arrow-function parameter list. Rather than threading a live tri-state
// arrow_state flag through the recursive descent (the narrative framing in
// spec.md §4.3), the head is parsed once as an ordinary expression — which
// doubles as spec.md §9's suggested "tagged cover value" — and is
// reinterpreted into pattern nodes at the disambiguation point (the token
// immediately after ')'). See DESIGN.md's Open Question #4 for the
// equivalence argument. p.flags.sawPatternOnlyShape is the one piece of
// live state this still needs: it is set by parseObjectLiteralOrCover
// whenever it builds an object-shorthand-with-default (a shape that is
// never valid as a plain expression), matching §4.3's "Must" transition.
func (p *Parser) parseParenCover() ast.Expression {
	start := p.cur.Loc.Start
	p.advance() // consume '('

	savedMust := p.flags.sawPatternOnlyShape
	p.flags.sawPatternOnlyShape = false
	defer func() { p.flags.sawPatternOnlyShape = savedMust }()

	// Entering '(' always lifts a for-head's NoIn restriction: `for (k = (a
	// in b); ...)` must still parse `a in b` as a BinaryExpression even
	// though flags.inForInit is set for the enclosing for-head.
	savedInForInit := p.flags.inForInit
	p.flags.inForInit = false
	defer func() { p.flags.inForInit = savedInForInit }()

	if p.curIs(token.RPAREN) {
		p.advance() // consume ')'
		if p.curIs(token.ARROW) {
			p.advance()
			body := p.parseArrowBody()
			return &ast.ArrowFunctionExpression{BaseNode: bn(start, p), Params: nil, Body: body}
		}
		p.fail(diag.SyntaxError, "expected expression, but found ()")
		return nil
	}

	head := p.parseExpression(pComma)
	if !p.ok() {
		return head
	}
	mustBePattern := p.flags.sawPatternOnlyShape
	if !p.expect(token.RPAREN, "')'") {
		return head
	}

	if p.curIs(token.ARROW) {
		p.advance()
		params, err := headToParams(head)
		if err != nil {
			p.err = err
			return head
		}
		body := p.parseArrowBody()
		return &ast.ArrowFunctionExpression{BaseNode: bn(start, p), Params: params, Body: body}
	}

	if mustBePattern {
		p.fail(diag.SyntaxError, "arrow-only parameter shape with no '=>' following")
		return head
	}

	// Plain parenthesized expression or sequence expression: mark
	// parenthesized, per spec.md §3.2/§4.3.
	head.(interface{ SetParenthesized() }).SetParenthesized()
	return head
}

// headToParams converts the already-parsed paren head into an arrow
// parameter list: a SequenceExpression flattens into one param per element
// (never itself appearing as a param, satisfying property P5); a single
// expression becomes a single-element param list.
func headToParams(head ast.Expression) ([]ast.Pattern, *diag.ParseError) {
	if seq, ok := head.(*ast.SequenceExpression); ok {
		params := make([]ast.Pattern, 0, len(seq.Expressions))
		for _, e := range seq.Expressions {
			p, err := toPattern(e)
			if err != nil {
				return nil, err
			}
			params = append(params, p)
		}
		return params, nil
	}
	p, err := toPattern(head)
	if err != nil {
		return nil, err
	}
	return []ast.Pattern{p}, nil
}

// toPattern reinterprets an already-parsed expression as a binding pattern,
// per invariant I4: only Identifier, Assignment-with-'=' (-> AssignmentPattern),
// ObjectExpression (-> ObjectPattern), and ArrayExpression (-> ArrayPattern)
// convert; anything else is the "Impossible" state from §4.3, reported here
// as a SyntaxError since conversion is only ever invoked once '=>' has
// confirmed arrow-parameter intent.
func toPattern(e ast.Expression) (ast.Pattern, *diag.ParseError) {
	if e == nil {
		return nil, nil
	}
	switch v := e.(type) {
	case *ast.Identifier:
		return v, nil
	case *ast.AssignmentExpression:
		if v.Operator != "=" {
			return nil, diag.New(diag.SyntaxError, v.Loc().Start, "invalid arrow parameter: compound assignment is not a binding pattern")
		}
		left, err := toPattern(v.Left)
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentPattern{BaseNode: v.BaseNode, Left: left, Right: v.Right}, nil
	case *ast.ObjectExpression:
		return objectExpressionToPattern(v)
	case *ast.ArrayExpression:
		return arrayExpressionToPattern(v)
	default:
		return nil, diag.New(diag.SyntaxError, e.Loc().Start, "invalid arrow parameter: not a binding pattern")
	}
}

func objectExpressionToPattern(obj *ast.ObjectExpression) (*ast.ObjectPattern, *diag.ParseError) {
	props := make([]*ast.AssignmentProperty, 0, len(obj.Properties))
	for _, raw := range obj.Properties {
		prop, ok := raw.(*ast.ObjectProperty)
		if !ok {
			return nil, diag.New(diag.SyntaxError, raw.Loc().Start, "invalid destructuring pattern: methods are not allowed")
		}
		if _, isIdent := prop.Key.(*ast.Identifier); !isIdent {
			return nil, diag.New(diag.SyntaxError, prop.Key.Loc().Start, "invalid destructuring pattern: only identifier keys are allowed")
		}
		var valuePattern ast.Pattern
		switch v := prop.Value.(type) {
		case *ast.AssignmentPattern:
			valuePattern = v
		case ast.Expression:
			conv, err := toPattern(v)
			if err != nil {
				return nil, err
			}
			valuePattern = conv
		default:
			return nil, diag.New(diag.SyntaxError, prop.Loc().Start, "invalid destructuring pattern")
		}
		props = append(props, &ast.AssignmentProperty{
			BaseNode:  prop.BaseNode,
			Key:       prop.Key,
			Value:     valuePattern,
			Shorthand: prop.Shorthand,
		})
	}
	return &ast.ObjectPattern{BaseNode: obj.BaseNode, Properties: props}, nil
}

func arrayExpressionToPattern(arr *ast.ArrayExpression) (*ast.ArrayPattern, *diag.ParseError) {
	elems := make([]ast.Pattern, 0, len(arr.Elements))
	for _, e := range arr.Elements {
		if e == nil {
			elems = append(elems, nil)
			continue
		}
		p, err := toPattern(e)
		if err != nil {
			return nil, err
		}
		elems = append(elems, p)
	}
	return &ast.ArrayPattern{BaseNode: arr.BaseNode, Elements: elems}, nil
}

// parseArrayLiteralOrCover parses `[ … ]`: an ArrayExpression that may later
// be reinterpreted as an ArrayPattern by toPattern. forceParams selects the
// unambiguous binding-pattern grammar used directly by function parameter
// lists (SPEC_FULL.md §4.3's "function-parameter grammar" paragraph),
// where no speculation or later reinterpretation is needed.
func (p *Parser) parseArrayLiteralOrCover(forceParams bool) ast.Expression {
	if forceParams {
		pat := p.parseArrayPattern()
		return patternAsExpression(pat)
	}
	start := p.cur.Loc.Start
	p.advance() // consume '['
	savedInForInit := p.flags.inForInit
	p.flags.inForInit = false
	defer func() { p.flags.inForInit = savedInForInit }()
	var elements []ast.Expression
	for p.ok() && !p.curIs(token.RBRACKET) {
		if p.curIs(token.COMMA) {
			elements = append(elements, nil) // elision
			p.advance()
			continue
		}
		elements = append(elements, p.parseExpression(pAssign))
		if !p.ok() {
			return nil
		}
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACKET, "']'")
	return &ast.ArrayExpression{BaseNode: bn(start, p), Elements: elements}
}

// parseObjectLiteralOrCover parses `{ … }` as SPEC_FULL.md §4.3 describes:
// shared grammar for object literals and object-destructuring-with-defaults.
// A shorthand `key = default` is never valid as a plain expression, so
// building one sets p.flags.sawPatternOnlyShape — the "Maybe -> Must"
// transition from §4.3 — consumed by parseParenCover above.
func (p *Parser) parseObjectLiteralOrCover(forceParams bool) ast.Expression {
	if forceParams {
		pat := p.parseObjectPattern()
		return patternAsExpression(pat)
	}
	start := p.cur.Loc.Start
	p.advance() // consume '{'
	savedInForInit := p.flags.inForInit
	p.flags.inForInit = false
	defer func() { p.flags.inForInit = savedInForInit }()
	var props []ast.Node
	for p.ok() && !p.curIs(token.RBRACE) {
		props = append(props, p.parseObjectMember())
		if !p.ok() {
			return nil
		}
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACE, "'}'")
	return &ast.ObjectExpression{BaseNode: bn(start, p), Properties: props}
}

func (p *Parser) parseObjectMember() ast.Node {
	start := p.cur.Loc.Start
	key := p.parsePropertyKey()
	if !p.ok() {
		return nil
	}

	switch {
	case p.curIs(token.COLON):
		p.advance()
		value := p.parseExpression(pAssign)
		return &ast.ObjectProperty{BaseNode: bn(start, p), Key: key, Value: value, Shorthand: false}

	case p.curIs(token.LPAREN):
		params := p.parseParamList()
		body := p.parseBlockStatement()
		return &ast.ObjectMethod{BaseNode: bn(start, p), Key: key, Params: params, Body: body}

	case p.curIs(token.ASSIGN):
		// Shorthand default `{ a = 1 }` — only ever valid as a pattern.
		ident, ok := key.(*ast.Identifier)
		if !ok {
			p.fail(diag.SyntaxError, "invalid shorthand property default: key must be an identifier")
			return nil
		}
		p.advance()
		def := p.parseExpression(pAssign)
		p.flags.sawPatternOnlyShape = true
		return &ast.ObjectProperty{
			BaseNode:  bn(start, p),
			Key:       key,
			Value:     &ast.AssignmentPattern{BaseNode: bn(start, p), Left: ident, Right: def},
			Shorthand: true,
		}

	default:
		// Plain shorthand `{ a }`.
		ident, ok := key.(*ast.Identifier)
		if !ok {
			p.fail(diag.SyntaxError, "expected ':' after non-identifier object key")
			return nil
		}
		return &ast.ObjectProperty{BaseNode: bn(start, p), Key: key, Value: ident, Shorthand: true}
	}
}

// parsePropertyKey accepts an identifier, a keyword read as an identifier,
// a string literal, or a numeric literal, per SPEC_FULL.md §4.3's note that
// "numeric or string keys transition to Impossible" (i.e. they remain legal
// object-expression keys, just never pattern-convertible).
func (p *Parser) parsePropertyKey() ast.Expression {
	start := p.cur.Loc.Start
	switch {
	case p.cur.Type == token.IDENT || p.cur.Type.IsKeyword():
		name := p.cur.Literal
		if name == "" {
			name = p.cur.Type.String()
		}
		p.advance()
		return &ast.Identifier{BaseNode: bn(start, p), Name: name}
	case p.cur.Type == token.STRING:
		v := p.cur.Literal
		p.advance()
		return &ast.StringLiteral{BaseNode: bn(start, p), Value: v}
	case p.cur.Type == token.DIGIT:
		v := p.cur.Literal
		p.advance()
		return &ast.NumericLiteral{BaseNode: bn(start, p), Value: v}
	default:
		p.fail(diag.SyntaxError, "expected property key, got %s", p.cur)
		return nil
	}
}

// ---------------------------------------------------------------------
// Unambiguous function-parameter grammar (SPEC_FULL.md §4.3, last
// paragraph): identifiers, `ident = default`, `{…}`, and `[…]` are parsed
// directly as patterns, with no cover-grammar speculation required.
// ---------------------------------------------------------------------

func (p *Parser) parseParamList() []ast.Pattern {
	p.expect(token.LPAREN, "'('")
	var params []ast.Pattern
	for p.ok() && !p.curIs(token.RPAREN) {
		params = append(params, p.parseBindingElement())
		if !p.ok() {
			return params
		}
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN, "')'")
	return params
}

// parseBindingElement parses one formal parameter: a bare binding target,
// optionally followed by `= default`.
func (p *Parser) parseBindingElement() ast.Pattern {
	start := p.cur.Loc.Start
	target := p.parseBindingTarget()
	if !p.ok() {
		return target
	}
	if p.curIs(token.ASSIGN) {
		p.advance()
		def := p.parseExpression(pAssign)
		return &ast.AssignmentPattern{BaseNode: bn(start, p), Left: target, Right: def}
	}
	return target
}

func (p *Parser) parseBindingTarget() ast.Pattern {
	switch p.cur.Type {
	case token.IDENT:
		start := p.cur.Loc.Start
		name := p.cur.Literal
		p.advance()
		return &ast.Identifier{BaseNode: bn(start, p), Name: name}
	case token.LBRACE:
		return p.parseObjectPattern()
	case token.LBRACKET:
		return p.parseArrayPattern()
	default:
		p.fail(diag.ExpectError, "expected a parameter name or destructuring pattern, got %s", p.cur)
		return nil
	}
}

func (p *Parser) parseObjectPattern() *ast.ObjectPattern {
	start := p.cur.Loc.Start
	p.expect(token.LBRACE, "'{'")
	var props []*ast.AssignmentProperty
	for p.ok() && !p.curIs(token.RBRACE) {
		propStart := p.cur.Loc.Start
		key := p.parsePropertyKey()
		if !p.ok() {
			return nil
		}
		var value ast.Pattern
		shorthand := false
		if p.curIs(token.COLON) {
			p.advance()
			value = p.parseBindingElement()
		} else {
			ident, ok := key.(*ast.Identifier)
			if !ok {
				p.fail(diag.SyntaxError, "expected ':' after non-identifier pattern key")
				return nil
			}
			shorthand = true
			if p.curIs(token.ASSIGN) {
				p.advance()
				def := p.parseExpression(pAssign)
				value = &ast.AssignmentPattern{BaseNode: bn(propStart, p), Left: ident, Right: def}
			} else {
				value = ident
			}
		}
		props = append(props, &ast.AssignmentProperty{BaseNode: bn(propStart, p), Key: key, Value: value, Shorthand: shorthand})
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACE, "'}'")
	return &ast.ObjectPattern{BaseNode: bn(start, p), Properties: props}
}

func (p *Parser) parseArrayPattern() *ast.ArrayPattern {
	start := p.cur.Loc.Start
	p.expect(token.LBRACKET, "'['")
	var elems []ast.Pattern
	for p.ok() && !p.curIs(token.RBRACKET) {
		if p.curIs(token.COMMA) {
			elems = append(elems, nil)
			p.advance()
			continue
		}
		elems = append(elems, p.parseBindingElement())
		if !p.ok() {
			return nil
		}
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACKET, "']'")
	return &ast.ArrayPattern{BaseNode: bn(start, p), Elements: elems}
}

// patternAsExpression lets the (unused in practice, but interface-complete)
// forceParams branches of parseArrayLiteralOrCover/parseObjectLiteralOrCover
// return an ast.Expression: ObjectPattern/ArrayPattern both implement
// Expression already (see ast.go), so this is a type assertion, not a
// conversion.
func patternAsExpression(p ast.Pattern) ast.Expression {
	e, _ := p.(ast.Expression)
	return e
}
