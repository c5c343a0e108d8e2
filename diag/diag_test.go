package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsparse-go/jsparse/token"
)

func TestParseErrorError(t *testing.T) {
	e := New(SyntaxError, token.Position{Line: 2, Column: 5}, "unexpected %s", "}")
	assert.Equal(t, "SyntaxError: unexpected } at 2:5", e.Error())
}

func TestParseErrorNoLocation(t *testing.T) {
	e := &ParseError{Kind: LexError, Message: "unknown character"}
	assert.Equal(t, "LexError: unknown character", e.Error())
}

func TestFormatCaretPosition(t *testing.T) {
	src := "let a = ;\n"
	e := New(SyntaxError, token.Position{Line: 1, Column: 9}, "unexpected %s", ";")

	got := e.Format(src, false)
	want := "SyntaxError: unexpected ; at 1:9\n" +
		"let a = ;\n" +
		"        ^"
	assert.Equal(t, want, got)
}

func TestFormatOutOfRangeLineOmitsContext(t *testing.T) {
	e := New(SyntaxError, token.Position{Line: 50, Column: 1}, "boom")
	got := e.Format("a\nb\n", false)
	assert.Equal(t, "SyntaxError: boom at 50:1\n", got)
}

func TestExpectHelper(t *testing.T) {
	tok := token.Token{Type: token.RBRACE, Loc: token.Loc{Start: token.Position{Line: 3, Column: 1}}}
	e := Expect(token.Position{Line: 3, Column: 1}, "';'", tok)
	assert.Equal(t, ExpectError, e.Kind)
	assert.Contains(t, e.Message, "expected ';'")
}

func TestFormatErrorsJoins(t *testing.T) {
	errs := []*ParseError{
		New(LexError, token.Position{Line: 1, Column: 1}, "a"),
		New(SyntaxError, token.Position{Line: 2, Column: 1}, "b"),
	}
	got := FormatErrors(errs, "x\ny\n", false)
	assert.Contains(t, got, "LexError: a")
	assert.Contains(t, got, "SyntaxError: b")
}
