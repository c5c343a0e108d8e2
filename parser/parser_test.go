package parser

import (
	"testing"

	"github.com/jsparse-go/jsparse/ast"
)

// mustParse parses src and fails the test immediately if it returns an
// error, grounded on the teacher's checkParserErrors-style fail-fast helper.
func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram(%q) returned error: %v", src, err)
	}
	return prog
}

func mustFail(t *testing.T, src string) {
	t.Helper()
	_, err := ParseProgram(src)
	if err == nil {
		t.Fatalf("ParseProgram(%q) succeeded, expected an error", src)
	}
}

func TestParseProgramEmpty(t *testing.T) {
	prog := mustParse(t, "")
	if len(prog.Body) != 0 {
		t.Fatalf("expected empty body, got %d statements", len(prog.Body))
	}
}

func TestParseProgramMultipleStatements(t *testing.T) {
	prog := mustParse(t, "let a = 1;\nlet b = 2;\na + b;")
	if len(prog.Body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(prog.Body))
	}
}

func TestParseVariableDeclarationKinds(t *testing.T) {
	t.Run("var", func(t *testing.T) {
		prog := mustParse(t, "var x = 1;")
		decl := prog.Body[0].(*ast.VariableDeclaration)
		if decl.Kind != "var" {
			t.Fatalf("got kind %q", decl.Kind)
		}
	})
	t.Run("let", func(t *testing.T) {
		prog := mustParse(t, "let x = 1;")
		decl := prog.Body[0].(*ast.VariableDeclaration)
		if decl.Kind != "let" {
			t.Fatalf("got kind %q", decl.Kind)
		}
	})
	t.Run("const", func(t *testing.T) {
		prog := mustParse(t, "const x = 1;")
		decl := prog.Body[0].(*ast.VariableDeclaration)
		if decl.Kind != "const" {
			t.Fatalf("got kind %q", decl.Kind)
		}
	})
}

func TestParseVariableDeclarationWithoutInitializer(t *testing.T) {
	prog := mustParse(t, "let x;")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	if decl.Declarations[0].Init != nil {
		t.Fatalf("expected nil initializer, got %#v", decl.Declarations[0].Init)
	}
}

func TestParseMultipleDeclarators(t *testing.T) {
	prog := mustParse(t, "let a = 1, b = 2, c;")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	if len(decl.Declarations) != 3 {
		t.Fatalf("expected 3 declarators, got %d", len(decl.Declarations))
	}
}

func TestParseIfElse(t *testing.T) {
	prog := mustParse(t, "if (a) { b; } else if (c) { d; } else { e; }")
	ifStmt := prog.Body[0].(*ast.IfStatement)
	if ifStmt.Alternate == nil {
		t.Fatal("expected an else branch")
	}
	if _, ok := ifStmt.Alternate.(*ast.IfStatement); !ok {
		t.Fatalf("expected else-if to produce a nested IfStatement, got %T", ifStmt.Alternate)
	}
}

func TestParseWhileAndDoWhile(t *testing.T) {
	mustParse(t, "while (x < 10) { x++; }")
	mustParse(t, "do { x++; } while (x < 10);")
}

func TestParseTryCatchFinally(t *testing.T) {
	prog := mustParse(t, "try { risky(); } catch (e) { handle(e); } finally { cleanup(); }")
	tryStmt := prog.Body[0].(*ast.TryStatement)
	if tryStmt.Handler == nil || tryStmt.Finalizer == nil {
		t.Fatal("expected both a catch handler and a finally block")
	}
}

func TestParseTryWithoutCatchOrFinallyFails(t *testing.T) {
	mustFail(t, "try { a(); }")
}

func TestParseSwitch(t *testing.T) {
	prog := mustParse(t, "switch (x) { case 1: a(); break; case 2: b(); default: c(); }")
	sw := prog.Body[0].(*ast.SwitchStatement)
	if len(sw.Cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(sw.Cases))
	}
	if sw.Cases[2].Test != nil {
		t.Fatal("expected the default clause's Test to be nil")
	}
}

func TestParseSwitchMultipleDefaultsFails(t *testing.T) {
	mustFail(t, "switch (x) { default: a(); default: b(); }")
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog := mustParse(t, "function add(a, b) { return a + b; }")
	fn := prog.Body[0].(*ast.FunctionDeclaration)
	if fn.ID.Name != "add" {
		t.Fatalf("got name %q", fn.ID.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
}

func TestParseLabeledStatement(t *testing.T) {
	prog := mustParse(t, "outer: for (;;) { break; }")
	lbl := prog.Body[0].(*ast.LabeledStatement)
	if lbl.Label.Name != "outer" {
		t.Fatalf("got label %q", lbl.Label.Name)
	}
}

func TestParseThrowRestrictedProduction(t *testing.T) {
	mustFail(t, "throw\n1;")
}

func TestParseReturnAsiAcrossNewline(t *testing.T) {
	prog := mustParse(t, "function f() { return\n1; }")
	fn := prog.Body[0].(*ast.FunctionDeclaration)
	ret := fn.Body.Body[0].(*ast.ReturnStatement)
	if ret.Argument != nil {
		t.Fatalf("expected ASI to produce a bare return, got %#v", ret.Argument)
	}
}
