package parser

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/jsparse-go/jsparse/ast"
)

// TestParseSnapshots dumps a representative sample of programs through the
// full lexer+parser pipeline and snapshot-tests the resulting AST with
// go-snaps, grounded on the teacher's internal/interp/fixture_test.go
// TestDWScriptFixtures snapshot harness (simplified here to inline source
// strings rather than on-disk fixtures, since this grammar has no separate
// test-corpus repository of its own).
func TestParseSnapshots(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"ArrowWithDestructuredParam", "const sum = ({a, b}) => a + b;"},
		{"ForInLoop", "for (let key in obj) { visit(key); }"},
		{"ClassicForLoop", "for (let i = 0; i < 10; i++) { total += i; }"},
		{"TryCatchFinally", "try { risky(); } catch (e) { report(e); } finally { cleanup(); }"},
		{"SwitchFallthrough", "switch (x) { case 1: case 2: a(); break; default: b(); }"},
		{"NestedTernaryAndLogical", "const v = a || b ? c && d : e;"},
		{"NewWithMemberCallee", "const inst = new ns.Widget(1, 2);"},
		{"TemplateAndRegex", "const greeting = `hi`; const pattern = /a+/gi;"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			prog := mustParse(t, c.src)
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_ast", c.name), ast.Dump(prog))
		})
	}
}
