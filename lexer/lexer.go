// Package lexer implements the context-sensitive scanner described in
// SPEC_FULL.md §4.1, grounded on the teacher's internal/lexer/lexer.go:
// dispatch-table-driven first-character routing, UTF-8 rune advancing, and
// a pull-based Next() that honors a caller-set regexAllowed mode.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/jsparse-go/jsparse/diag"
	"github.com/jsparse-go/jsparse/token"
)

// Option configures a Lexer at construction time, grounded on the teacher's
// LexerOption functional-options pattern.
type Option func(*Lexer)

// WithPreserveComments makes Next() return COMMENT tokens instead of
// silently skipping them, grounded on internal/lexer.WithPreserveComments.
func WithPreserveComments() Option {
	return func(l *Lexer) { l.preserveComments = true }
}

// Lexer scans one Go string of source into a stream of token.Token values.
type Lexer struct {
	input string

	// byte offset of the current rune (ch), and of the rune after it.
	pos     int
	readPos int
	ch      rune
	width   int // byte width of ch

	line   int
	column int

	preserveComments bool
}

// New constructs a Lexer over source, stripping a leading UTF-8 BOM if
// present, matching the teacher's lexer.New.
func New(source string, opts ...Option) *Lexer {
	source = strings.TrimPrefix(source, "\xef\xbb\xbf")
	l := &Lexer{input: source, line: 1, column: 1}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

const eof = rune(-1)

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = eof
		l.width = 0
		l.pos = l.readPos
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.width = w
	l.pos = l.readPos
	l.readPos += w
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) peekCharAt(offset int) rune {
	p := l.readPos
	var r rune
	for i := 0; i <= offset; i++ {
		if p >= len(l.input) {
			return eof
		}
		var w int
		r, w = utf8.DecodeRuneInString(l.input[p:])
		p += w
	}
	return r
}

// advance moves past the current rune, updating line/column bookkeeping.
func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else if l.ch != eof {
		l.column++
	}
	l.readChar()
}

func (l *Lexer) here() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.pos}
}

func isLetter(r rune) bool {
	return r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.advance()
	}
}

// Next scans and returns the next token. regexAllowed mirrors spec.md
// §4.1's contract: when true and the first unconsumed character is '/', a
// regular-expression literal is scanned instead of a division operator.
func (l *Lexer) Next(regexAllowed bool) (token.Token, *diag.ParseError) {
	l.skipWhitespace()
	start := l.here()

	switch {
	case l.ch == eof:
		return l.tok(token.EOF, "", start), nil
	case l.ch == '"' || l.ch == '\'':
		return l.readString(start)
	case l.ch == '`':
		return l.readTemplate(start)
	case isLetter(l.ch):
		return l.readWord(start), nil
	case isDigit(l.ch):
		return l.readNumber(start)
	case l.ch == '/' && regexAllowed && l.peekChar() != '/':
		return l.readRegex(start)
	case isOperatorStart(l.ch):
		tok, err := l.readOperator(start)
		if err == nil && tok.Type == token.COMMENT && !l.preserveComments {
			return l.Next(regexAllowed)
		}
		return tok, err
	case isControlStart(l.ch):
		return l.readControl(start)
	default:
		ch := l.ch
		l.advance()
		return token.Token{}, diag.New(diag.LexError, start, "unrecognized character %q", ch)
	}
}

func (l *Lexer) tok(t token.Type, lit string, start token.Position) token.Token {
	return token.Token{Type: t, Literal: lit, Loc: token.Loc{Start: start, End: l.here()}}
}

func isOperatorStart(r rune) bool {
	switch r {
	case '=', '+', '-', '*', '/', '%', '>', '<', '|', '?', ':', '!', '&', '~', '^':
		return true
	}
	return false
}

func isControlStart(r rune) bool {
	switch r {
	case ';', '(', ')', '{', '}', '.', ',', '[', ']':
		return true
	}
	return false
}

func (l *Lexer) readControl(start token.Position) (token.Token, *diag.ParseError) {
	var t token.Type
	switch l.ch {
	case ';':
		t = token.SEMICOLON
	case '(':
		t = token.LPAREN
	case ')':
		t = token.RPAREN
	case '{':
		t = token.LBRACE
	case '}':
		t = token.RBRACE
	case '[':
		t = token.LBRACKET
	case ']':
		t = token.RBRACKET
	case '.':
		t = token.DOT
	case ',':
		t = token.COMMA
	}
	tk := l.tok(t, "", start)
	l.advance()
	return tk, nil
}

func (l *Lexer) readWord(start token.Position) token.Token {
	var b strings.Builder
	for isLetter(l.ch) || isDigit(l.ch) {
		b.WriteRune(l.ch)
		l.advance()
	}
	word := b.String()
	if kw, ok := token.Lookup(word); ok {
		return l.tok(kw, word, start)
	}
	return l.tok(token.IDENT, word, start)
}

// readNumber scans a run of 0-9 and '_' with at most one embedded 'e'
// exponent, per spec.md §4.1; a trailing 'e' with no following digits is a
// LexError, and the raw text is preserved verbatim.
func (l *Lexer) readNumber(start token.Position) (token.Token, *diag.ParseError) {
	var b strings.Builder
	sawExp := false
	for {
		switch {
		case isDigit(l.ch) || l.ch == '_':
			b.WriteRune(l.ch)
			l.advance()
		case (l.ch == 'e' || l.ch == 'E') && !sawExp:
			sawExp = true
			b.WriteRune(l.ch)
			l.advance()
			if l.ch == '+' || l.ch == '-' {
				b.WriteRune(l.ch)
				l.advance()
			}
			if !isDigit(l.ch) {
				return token.Token{}, diag.New(diag.LexError, start, "malformed number: exponent with no digits")
			}
		default:
			goto done
		}
	}
done:
	return l.tok(token.DIGIT, b.String(), start), nil
}

// readString scans a quoted string literal, decoding \n \r \t \\ and
// passing any other \X through as X, per spec.md §4.1. A literal
// (unescaped) newline inside the string is a LexError.
func (l *Lexer) readString(start token.Position) (token.Token, *diag.ParseError) {
	quote := l.ch
	l.advance()
	var b strings.Builder
	for {
		switch l.ch {
		case eof:
			return token.Token{}, diag.New(diag.LexError, start, "unterminated string literal")
		case quote:
			l.advance()
			return l.tok(token.STRING, b.String(), start), nil
		case '\n':
			return token.Token{}, diag.New(diag.LexError, start, "unterminated string literal: literal newline")
		case '\\':
			l.advance()
			switch l.ch {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '\\':
				b.WriteByte('\\')
			case eof:
				return token.Token{}, diag.New(diag.LexError, start, "unterminated string literal")
			default:
				b.WriteRune(l.ch)
			}
			l.advance()
		default:
			b.WriteRune(l.ch)
			l.advance()
		}
	}
}

// readTemplate scans a backtick-delimited string, capturing the contents
// verbatim with no interpolation parsing, per spec.md §4.1.
func (l *Lexer) readTemplate(start token.Position) (token.Token, *diag.ParseError) {
	l.advance() // consume opening `
	var b strings.Builder
	for {
		switch l.ch {
		case eof:
			return token.Token{}, diag.New(diag.LexError, start, "unterminated template literal")
		case '`':
			l.advance()
			return l.tok(token.TEMPLATE, b.String(), start), nil
		case '\\':
			l.advance()
			if l.ch == eof {
				return token.Token{}, diag.New(diag.LexError, start, "unterminated template literal")
			}
			b.WriteRune(l.ch)
			l.advance()
		default:
			b.WriteRune(l.ch)
			l.advance()
		}
	}
}

// readRegex scans a regex body until an unescaped '/', then flags from
// {i,g,m,s,u,y} with no duplicates, per spec.md §4.1.
func (l *Lexer) readRegex(start token.Position) (token.Token, *diag.ParseError) {
	l.advance() // consume opening /
	var pattern strings.Builder
	for {
		switch l.ch {
		case eof, '\n':
			return token.Token{}, diag.New(diag.LexError, start, "unterminated regular expression literal")
		case '/':
			l.advance()
			goto flags
		case '\\':
			pattern.WriteRune(l.ch)
			l.advance()
			if l.ch == eof {
				return token.Token{}, diag.New(diag.LexError, start, "unterminated regular expression literal")
			}
			pattern.WriteRune(l.ch)
			l.advance()
		default:
			pattern.WriteRune(l.ch)
			l.advance()
		}
	}
flags:
	seen := map[rune]bool{}
	var flags strings.Builder
	for isLetter(l.ch) {
		switch l.ch {
		case 'i', 'g', 'm', 's', 'u', 'y':
			if seen[l.ch] {
				return token.Token{}, diag.New(diag.LexError, start, "duplicate regular expression flag %q", l.ch)
			}
			seen[l.ch] = true
			flags.WriteRune(l.ch)
			l.advance()
		default:
			// "Any other alphabetic character after flags terminates the
			// regex cleanly" — spec.md §4.1.
			goto build
		}
	}
build:
	tk := l.tok(token.REGEX, pattern.String(), start)
	tk.Flags = flags.String()
	return tk, nil
}

// readOperator scans the longest recognized operator combination starting
// at the current rune, including the "//" line-comment form.
func (l *Lexer) readOperator(start token.Position) (token.Token, *diag.ParseError) {
	ch := l.ch
	if ch == '/' && l.peekChar() == '/' {
		return l.readLineComment(start), nil
	}
	next := l.peekChar()
	third := l.peekCharAt(1)

	three := func(t token.Type) (token.Token, *diag.ParseError) {
		l.advance()
		l.advance()
		l.advance()
		return l.tok(t, "", start), nil
	}
	two := func(t token.Type) (token.Token, *diag.ParseError) {
		l.advance()
		l.advance()
		return l.tok(t, "", start), nil
	}
	one := func(t token.Type) (token.Token, *diag.ParseError) {
		l.advance()
		return l.tok(t, "", start), nil
	}

	switch ch {
	case '=':
		if next == '=' && third == '=' {
			return three(token.STRICT_EQ)
		}
		if next == '=' {
			return two(token.EQ)
		}
		if next == '>' {
			return two(token.ARROW)
		}
		return one(token.ASSIGN)
	case '!':
		if next == '=' && third == '=' {
			return three(token.STRICT_NOT_EQ)
		}
		if next == '=' {
			return two(token.NOT_EQ)
		}
		return one(token.BANG)
	case '+':
		if next == '+' {
			return two(token.INC)
		}
		if next == '=' {
			return two(token.PLUS_ASSIGN)
		}
		return one(token.PLUS)
	case '-':
		if next == '-' {
			return two(token.DEC)
		}
		if next == '=' {
			return two(token.MINUS_ASSIGN)
		}
		return one(token.MINUS)
	case '*':
		if next == '*' {
			return two(token.STAR_STAR)
		}
		if next == '=' {
			return two(token.STAR_ASSIGN)
		}
		return one(token.STAR)
	case '/':
		if next == '=' {
			return two(token.SLASH_ASSIGN)
		}
		return one(token.SLASH)
	case '%':
		if next == '=' {
			return two(token.PERCENT_ASSIGN)
		}
		return one(token.PERCENT)
	case '>':
		if next == '>' && third == '=' {
			return three(token.SHR_ASSIGN)
		}
		if next == '>' {
			return two(token.SHR)
		}
		if next == '=' {
			return two(token.GE)
		}
		return one(token.GT)
	case '<':
		if next == '<' && third == '=' {
			return three(token.SHL_ASSIGN)
		}
		if next == '<' {
			return two(token.SHL)
		}
		if next == '=' {
			return two(token.LE)
		}
		return one(token.LT)
	case '|':
		if next == '|' {
			return two(token.OR)
		}
		if next == '=' {
			return two(token.PIPE_ASSIGN)
		}
		return one(token.PIPE)
	case '&':
		if next == '&' {
			return two(token.AND)
		}
		if next == '=' {
			return two(token.AMP_ASSIGN)
		}
		return one(token.AMP)
	case '?':
		if next == '?' {
			return two(token.NULLISH)
		}
		if next == '.' && !isDigit(third) {
			return two(token.QUESTION_DOT)
		}
		return one(token.QUESTION)
	case ':':
		return one(token.COLON)
	case '~':
		return one(token.TILDE)
	case '^':
		return one(token.CARET)
	}
	return token.Token{}, diag.New(diag.LexError, start, "unrecognized operator %q", ch)
}

func (l *Lexer) readLineComment(start token.Position) token.Token {
	var b strings.Builder
	for l.ch != '\n' && l.ch != eof {
		b.WriteRune(l.ch)
		l.advance()
	}
	return l.tok(token.COMMENT, b.String(), start)
}
