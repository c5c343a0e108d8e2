package lexer

import (
	"testing"

	"github.com/jsparse-go/jsparse/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, err)
	}
	return toks
}

func TestKeywordRecognition(t *testing.T) {
	toks := lexAll(t, "for(let i = 1; i < 10; i++)")
	if toks[0].Type != token.FOR {
		t.Fatalf("expected FOR, got %s", toks[0].Type)
	}
	if toks[1].Type != token.LPAREN {
		t.Fatalf("expected LPAREN, got %s", toks[1].Type)
	}
	if toks[2].Type != token.LET {
		t.Fatalf("expected LET, got %s", toks[2].Type)
	}
}

func TestIdentifierWithDollarAndUnderscore(t *testing.T) {
	toks := lexAll(t, "$foo _bar baz$1")
	want := []string{"$foo", "_bar", "baz$1"}
	for i, w := range want {
		if toks[i].Type != token.IDENT || toks[i].Literal != w {
			t.Fatalf("token %d: got %v, want IDENT(%q)", i, toks[i], w)
		}
	}
}

func TestNumberExponent(t *testing.T) {
	toks := lexAll(t, "1e3")
	if toks[0].Type != token.DIGIT || toks[0].Literal != "1e3" {
		t.Fatalf("got %v", toks[0])
	}
}

func TestNumberTrailingExponentIsError(t *testing.T) {
	_, err := Tokenize("1e")
	if err == nil {
		t.Fatal("expected LexError for trailing exponent")
	}
}

func TestNumberUnderscoreSeparator(t *testing.T) {
	toks := lexAll(t, "1_000_000")
	if toks[0].Literal != "1_000_000" {
		t.Fatalf("got %q", toks[0].Literal)
	}
}

func TestStringSingleQuote(t *testing.T) {
	toks := lexAll(t, "'abcdefjie'")
	if toks[0].Type != token.STRING || toks[0].Literal != "abcdefjie" {
		t.Fatalf("got %v", toks[0])
	}
}

func TestStringEscapes(t *testing.T) {
	toks := lexAll(t, `'a\nb\tc\\d'`)
	want := "a\nb\tc\\d"
	if toks[0].Literal != want {
		t.Fatalf("got %q, want %q", toks[0].Literal, want)
	}
}

func TestStringDoubleQuoteEscapedQuote(t *testing.T) {
	toks := lexAll(t, `"abcde\"fjie"`)
	if toks[0].Literal != `abcde"fjie` {
		t.Fatalf("got %q", toks[0].Literal)
	}
}

func TestStringLiteralNewlineIsError(t *testing.T) {
	_, err := Tokenize("'abc\ndef'")
	if err == nil {
		t.Fatal("expected LexError for unescaped newline in string")
	}
}

func TestStringUnterminatedIsError(t *testing.T) {
	_, err := Tokenize(`"abc`)
	if err == nil {
		t.Fatal("expected LexError for unterminated string")
	}
}

func TestTemplateLiteralVerbatim(t *testing.T) {
	toks := lexAll(t, "`hello ${x} world`")
	if toks[0].Type != token.TEMPLATE {
		t.Fatalf("got %v", toks[0])
	}
	if toks[0].Literal != "hello ${x} world" {
		t.Fatalf("got %q", toks[0].Literal)
	}
}

func TestOperatorsLongestMatch(t *testing.T) {
	cases := []struct {
		src string
		typ token.Type
	}{
		{"===", token.STRICT_EQ},
		{"==", token.EQ},
		{"=", token.ASSIGN},
		{"!==", token.STRICT_NOT_EQ},
		{"!=", token.NOT_EQ},
		{"!", token.BANG},
		{">>>=", token.SHR}, // only >> is recognized; trailing >= separate
		{"=>", token.ARROW},
		{"??", token.NULLISH},
		{"?.", token.QUESTION_DOT},
		{"&&", token.AND},
		{"||", token.OR},
		{"**", token.STAR_STAR},
	}
	for _, c := range cases {
		toks := lexAll(t, c.src)
		if toks[0].Type != c.typ {
			t.Errorf("%q: got %s, want %s", c.src, toks[0].Type, c.typ)
		}
	}
}

func TestLineCommentSkipped(t *testing.T) {
	toks := lexAll(t, "let a = 1; // trailing comment\nlet b = 2;")
	for _, tok := range toks {
		if tok.Type == token.COMMENT {
			t.Fatalf("comment leaked into Tokenize output: %v", tok)
		}
	}
}

func TestLineCommentPreservedWithOption(t *testing.T) {
	l := New("// hi\nlet", WithPreserveComments())
	tok, err := l.Next(true)
	if err != nil {
		t.Fatal(err)
	}
	if tok.Type != token.COMMENT || tok.Literal != "// hi" {
		t.Fatalf("got %v", tok)
	}
}

func TestRegexVsDivisionDisambiguation(t *testing.T) {
	// After '=' a value is expected, so '/' starts a regex.
	l := New("/abc/g")
	tok, err := l.Next(true)
	if err != nil {
		t.Fatal(err)
	}
	if tok.Type != token.REGEX || tok.Literal != "abc" || tok.Flags != "g" {
		t.Fatalf("got %v", tok)
	}

	// Following an identifier, '/' is division.
	l2 := New("x / y")
	idTok, _ := l2.Next(true)
	if idTok.Type != token.IDENT {
		t.Fatalf("got %v", idTok)
	}
	divTok, _ := l2.Next(false)
	if divTok.Type != token.SLASH {
		t.Fatalf("got %v", divTok)
	}
}

func TestRegexDuplicateFlagIsError(t *testing.T) {
	l := New("/a/gg")
	_, err := l.Next(true)
	if err == nil {
		t.Fatal("expected LexError for duplicate regex flag")
	}
}

func TestRegexUnterminatedIsError(t *testing.T) {
	l := New("/abc")
	_, err := l.Next(true)
	if err == nil {
		t.Fatal("expected LexError for unterminated regex")
	}
}

func TestTokenPositionsMonotone(t *testing.T) {
	// Invariant I1: for consecutive tokens, t1.loc.end <= t2.loc.start.
	toks := lexAll(t, "let a\n= 1 + 2;")
	for i := 1; i < len(toks); i++ {
		prevEnd := toks[i-1].Loc.End
		curStart := toks[i].Loc.Start
		if curStart.Line < prevEnd.Line || (curStart.Line == prevEnd.Line && curStart.Column < prevEnd.Column) {
			t.Fatalf("token %d starts before token %d ends: %v vs %v", i, i-1, curStart, prevEnd)
		}
	}
}

func TestDeterministicTokenStream(t *testing.T) {
	// P2: lex(s) is deterministic.
	src := "let a = (1 + 2) * foo.bar[0];"
	a := lexAll(t, src)
	b := lexAll(t, src)
	if len(a) != len(b) {
		t.Fatalf("different lengths: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].Literal != b[i].Literal {
			t.Fatalf("token %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestUnknownCharacterIsLexError(t *testing.T) {
	_, err := Tokenize("let a = @;")
	if err == nil {
		t.Fatal("expected LexError for '@'")
	}
}

func TestEmptyInputYieldsOnlyEOF(t *testing.T) {
	toks := lexAll(t, "")
	if len(toks) != 1 || toks[0].Type != token.EOF {
		t.Fatalf("got %v", toks)
	}
}
