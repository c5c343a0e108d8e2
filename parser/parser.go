// Package parser implements the precedence-climbing expression parser and
// the statement parser described in SPEC_FULL.md §4, grounded on the
// teacher's internal/parser/parser.go (precedence ladder, prefix/infix
// dispatch maps) and internal/parser/context.go (speculative-flag
// save/restore pattern, generalized here into speculativeFlags).
package parser

import (
	"fmt"

	"github.com/jsparse-go/jsparse/ast"
	"github.com/jsparse-go/jsparse/diag"
	"github.com/jsparse-go/jsparse/lexer"
	"github.com/jsparse-go/jsparse/token"
)

// Precedence levels, per SPEC_FULL.md §4.2's table. Level 0 is the "parse
// any expression" floor used by statement contexts.
const (
	lowest          = 0
	pComma          = 1
	pAssign         = 2 // ?: and all assignments, =>
	pNullish        = 3 // || ??
	pLogicalAnd     = 4 // &&
	pBitOr          = 5 // |
	pBitXor         = 6 // ^
	pBitAnd         = 7 // &
	pEquality       = 8  // == != === !==
	pRelational     = 9  // < <= > >= in instanceof
	pShift          = 10 // << >>
	pAdditive       = 11 // + -
	pMultiplicative = 12 // * / %
	pExponent       = 13 // **
	pUnary          = 14 // ! ~ typeof void delete await (prefix)
	pPostfix        = 15 // ++ -- (postfix)
	pCall           = 17 // . [ ( ?. new
)

// precedence returns the infix binding power of tok, or lowest if tok is
// not an infix/postfix operator at all.
func precedence(tok token.Token) int {
	switch tok.Type {
	case token.COMMA:
		return pComma
	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
		token.SLASH_ASSIGN, token.PERCENT_ASSIGN, token.SHL_ASSIGN, token.SHR_ASSIGN,
		token.AMP_ASSIGN, token.PIPE_ASSIGN, token.QUESTION, token.ARROW:
		return pAssign
	case token.OR, token.NULLISH:
		return pNullish
	case token.AND:
		return pLogicalAnd
	case token.PIPE:
		return pBitOr
	case token.CARET:
		return pBitXor
	case token.AMP:
		return pBitAnd
	case token.EQ, token.NOT_EQ, token.STRICT_EQ, token.STRICT_NOT_EQ:
		return pEquality
	case token.LT, token.LE, token.GT, token.GE, token.IN, token.INSTANCEOF:
		return pRelational
	case token.SHL, token.SHR:
		return pShift
	case token.PLUS, token.MINUS:
		return pAdditive
	case token.STAR, token.SLASH, token.PERCENT:
		return pMultiplicative
	case token.STAR_STAR:
		return pExponent
	case token.INC, token.DEC:
		return pPostfix
	case token.DOT, token.LBRACKET, token.LPAREN, token.QUESTION_DOT:
		return pCall
	default:
		return lowest
	}
}

// rightAssociative reports whether an infix operator recurses at the same
// level (right-associative) rather than level+1 (left-associative), per
// SPEC_FULL.md §4.2: "=> and assignments are right-associative... ?: ...
// right-associative by construction".
func rightAssociative(tok token.Token) bool {
	switch tok.Type {
	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
		token.SLASH_ASSIGN, token.PERCENT_ASSIGN, token.SHL_ASSIGN, token.SHR_ASSIGN,
		token.AMP_ASSIGN, token.PIPE_ASSIGN, token.ARROW, token.QUESTION, token.STAR_STAR:
		return true
	default:
		return false
	}
}

// speculativeFlags holds the parser-local speculative state that must live
// across recursive calls: the for-init `in` suppression and the paren head's
// "pattern-only shape seen" bit. The arrow/for-in decisions themselves are
// made from the parsed head (cover.go, for.go), regex mode is derived from
// the current token by regexAllowedAfter, and keyword-after-dot is handled
// inline in parseInfixOp, so none of those need a flag here. Grounded on the
// teacher's context.go ContextFlags/Snapshot/Restore pattern.
type speculativeFlags struct {
	inForInit        bool // suppresses `in` as a binary operator while parsing a for-init expression
	sawPatternOnlyShape bool // sticky: an object shorthand-default was seen in the current paren head
}

// Parser is a pull-driven recursive-descent/Pratt parser over a single
// Lexer, matching SPEC_FULL.md §5's concurrency model: single-threaded,
// synchronous, no suspension points, uniquely owning its Lexer.
type Parser struct {
	lex *lexer.Lexer

	cur  token.Token
	peek token.Token

	// prevEnd is the end position of the token most recently shifted out of
	// cur; bn() uses it to close out a node's span at the point a
	// subsequent token invalidates cur for that purpose (e.g. after an
	// expect() consumes a closing delimiter).
	prevEnd token.Position

	flags speculativeFlags

	err *diag.ParseError // first error; once set, parsing should unwind
}

// New constructs a Parser over source, priming the 1-token lookahead
// cursor (cur, peek).
func New(source string) *Parser {
	p := &Parser{lex: lexer.New(source)}
	// Two primes: the first call has no prior token, so regex is allowed;
	// the second derives its regexAllowed from the freshly primed cur.
	p.cur, p.err = p.lex.Next(true)
	p.prevEnd = p.cur.Loc.Start
	if p.err == nil {
		p.peek, p.err = p.lex.Next(regexAllowedAfter(p.cur))
	}
	return p
}

// regexAllowedAfter mirrors lexer.regexAllowedAfter (unexported there); the
// parser calls it in New and advance to choose the lexer mode for the token
// that follows cur.
func regexAllowedAfter(tok token.Token) bool {
	switch tok.Type {
	case token.IDENT, token.DIGIT, token.STRING, token.TEMPLATE, token.REGEX,
		token.RPAREN, token.RBRACKET, token.RBRACE, token.INC, token.DEC,
		token.THIS, token.TRUE, token.FALSE, token.NULL, token.UNDEFINED:
		return false
	default:
		return true
	}
}

// advance shifts peek into cur and lexes a new peek. If the parser has
// already recorded an error, advance is a no-op so callers can keep
// unwinding without risking a panic on a zero-value lexer state.
func (p *Parser) advance() {
	if p.err != nil {
		return
	}
	p.prevEnd = p.cur.Loc.End
	p.cur = p.peek
	var err *diag.ParseError
	p.peek, err = p.lex.Next(regexAllowedAfter(p.cur))
	if err != nil {
		p.err = err
	}
}

func (p *Parser) fail(kind diag.Kind, format string, args ...any) {
	if p.err != nil {
		return
	}
	p.err = diag.New(kind, p.cur.Loc.Start, format, args...)
}

// expect requires cur to have type t, consumes it, and returns false (and
// records a diag.ExpectError) otherwise.
func (p *Parser) expect(t token.Type, what string) bool {
	if p.err != nil {
		return false
	}
	if p.cur.Type != t {
		p.err = diag.Expect(p.cur.Loc.Start, what, p.cur)
		return false
	}
	p.advance()
	return true
}

func (p *Parser) curIs(t token.Type) bool  { return p.err == nil && p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.err == nil && p.peek.Type == t }

func (p *Parser) ok() bool { return p.err == nil }

// locFrom builds a Loc spanning from start (typically captured before parsing a
// construct began) to the end of the token just consumed (p's previous
// cur, approximated here by the start of the current token when nothing
// else is available — call sites that need precision capture end
// explicitly before advancing past the closing token).
func (p *Parser) locFrom(start token.Position) token.Loc {
	return token.Loc{Start: start, End: p.cur.Loc.Start}
}

// ParseProgram parses the whole token stream into a *ast.Program, matching
// SPEC_FULL.md §6's `parse(source) → Result<ProgramBody, ParseError>`.
// Per spec.md §7, the first error aborts the parse — there is no recovery.
func (p *Parser) ParseProgram() (*ast.Program, *diag.ParseError) {
	start := p.cur.Loc.Start
	prog := &ast.Program{}
	for p.ok() && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if !p.ok() {
			break
		}
		prog.Body = append(prog.Body, stmt)
	}
	if p.err != nil {
		return nil, p.err
	}
	prog.Span = p.locFrom(start)
	return prog, nil
}

// ParseProgram is the package-level convenience entry point matching
// SPEC_FULL.md §6 exactly: `parser.ParseProgram(source)`.
func ParseProgram(source string) (*ast.Program, *diag.ParseError) {
	return New(source).ParseProgram()
}

// internalError is raised only for genuine internal-invariant violations —
// e.g. an infix handler dispatched for a token type no prefix/infix table
// entry should ever see — per spec.md §7 ("no hidden recovery, no panic
// except for genuine internal-invariant violations").
func internalError(format string, args ...any) {
	panic(fmt.Sprintf("parser internal invariant violated: "+format, args...))
}
