package lexer

import (
	"github.com/jsparse-go/jsparse/diag"
	"github.com/jsparse-go/jsparse/token"
)

// Tokenize lexes all of source into a token slice, implementing spec.md
// §6's optional secondary `lex(source) → Result<[(Token,Loc)], ParseError>`
// entry point. regexAllowed for each token is derived from the previous
// token using the heuristic in spec.md §9's design note ("the parser sets
// regex_allowed=true after any token that cannot be followed by a
// value... and false after any token that could end a value"); the full
// Parser instead threads its own precise regexAllowed state through each
// call site, since it knows the grammar position exactly.
func Tokenize(source string) ([]token.Token, *diag.ParseError) {
	l := New(source)
	var tokens []token.Token
	regexAllowed := true
	for {
		tok, err := l.Next(regexAllowed)
		if err != nil {
			return tokens, err
		}
		if tok.Type != token.COMMENT {
			tokens = append(tokens, tok)
		}
		regexAllowed = regexAllowedAfter(tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// regexAllowedAfter reports whether a '/' immediately following tok should
// be scanned as the start of a regex literal.
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
