// Package diag implements the error taxonomy and source-context diagnostic
// formatting shared by the lexer and parser, grounded on the teacher's
// internal/errors.CompilerError and internal/parser error-code pattern.
package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/jsparse-go/jsparse/token"
)

// Kind classifies a ParseError per spec.md §7's four-member taxonomy.
type Kind int

const (
	// LexError: character-level issues (unterminated string/regex/template,
	// duplicate regex flag, malformed number, unknown character).
	LexError Kind = iota
	// ExpectError: a required punctuator or keyword did not appear.
	ExpectError
	// SyntaxError: structural problems (invalid arrow params, for-in with
	// initializer, throw without argument, two bare primaries on one line,
	// misplaced case/default, etc).
	SyntaxError
	// UnsupportedError: a construct the grammar deliberately excludes.
	UnsupportedError
)

func (k Kind) String() string {
	switch k {
	case LexError:
		return "LexError"
	case ExpectError:
		return "ExpectError"
	case SyntaxError:
		return "SyntaxError"
	case UnsupportedError:
		return "UnsupportedError"
	default:
		return "Error"
	}
}

// ParseError is the single error shape returned by lex and parse: a
// message, a kind, and an optional location. It implements error.
type ParseError struct {
	Kind     Kind
	Message  string
	Location token.Position
	HasLoc   bool
}

func (e *ParseError) Error() string {
	if e.HasLoc {
		return fmt.Sprintf("%s: %s at %s", e.Kind, e.Message, e.Location)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds a ParseError with a location.
func New(kind Kind, pos token.Position, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Message: fmt.Sprintf(format, args...), Location: pos, HasLoc: true}
}

// Expect builds an ExpectError for a missing punctuator/keyword.
func Expect(pos token.Position, expected string, got token.Token) *ParseError {
	return New(ExpectError, pos, "expected %s, got %s", expected, got)
}

// Format renders the error with a source-line-plus-caret context, following
// the teacher's internal/errors.CompilerError.FormatWithContext algorithm:
// the offending line is printed, then a second line with spaces up to the
// column followed by a '^'. When useColor is true the message and caret are
// highlighted via fatih/color.
func (e *ParseError) Format(source string, useColor bool) string {
	var b strings.Builder

	headline := e.Error()
	if useColor {
		headline = color.New(color.FgRed, color.Bold).Sprint(e.Kind.String()+":") + " " + e.Message
		if e.HasLoc {
			headline += " " + color.New(color.Faint).Sprintf("at %s", e.Location)
		}
	}
	b.WriteString(headline)
	b.WriteString("\n")

	if !e.HasLoc {
		return b.String()
	}

	line := sourceLine(source, e.Location.Line)
	if line == "" {
		return b.String()
	}
	b.WriteString(line)
	b.WriteString("\n")

	col := e.Location.Column
	if col < 1 {
		col = 1
	}
	caret := strings.Repeat(" ", col-1) + "^"
	if useColor {
		caret = color.New(color.FgRed, color.Bold).Sprint(caret)
	}
	b.WriteString(caret)
	return b.String()
}

// sourceLine returns the 1-indexed line of source, or "" if out of range.
func sourceLine(source string, line int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// FormatErrors joins multiple formatted errors, used only by tooling that
// opts into best-effort multi-error reporting (the core parser itself
// always stops at the first error per spec.md §7).
func FormatErrors(errs []*ParseError, source string, useColor bool) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Format(source, useColor)
	}
	return strings.Join(parts, "\n\n")
}
