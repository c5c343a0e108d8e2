package parser

import (
	"testing"

	"github.com/jsparse-go/jsparse/ast"
)

func TestForClassicAllClauses(t *testing.T) {
	prog := mustParse(t, "for (let i = 0; i < 10; i++) { body(); }")
	f := prog.Body[0].(*ast.ForStatement)
	if f.Test == nil || f.Update == nil {
		t.Fatal("expected both test and update clauses")
	}
	init, ok := f.Init.(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected a VariableDeclaration init, got %T", f.Init)
	}
	if init.Kind != "let" {
		t.Fatalf("got kind %q", init.Kind)
	}
}

func TestForClassicAllClausesOmitted(t *testing.T) {
	prog := mustParse(t, "for (;;) { break; }")
	f := prog.Body[0].(*ast.ForStatement)
	if f.Init != nil || f.Test != nil || f.Update != nil {
		t.Fatalf("expected every clause nil, got %#v", f)
	}
}

func TestForInWithDeclaration(t *testing.T) {
	prog := mustParse(t, "for (let k in obj) { use(k); }")
	f := prog.Body[0].(*ast.ForInStatement)
	decl, ok := f.Left.(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected a VariableDeclaration left side, got %T", f.Left)
	}
	if len(decl.Declarations) != 1 || decl.Declarations[0].Init != nil {
		t.Fatalf("expected a single, uninitialized declarator, got %#v", decl.Declarations)
	}
}

func TestForInWithBareIdentifier(t *testing.T) {
	prog := mustParse(t, "for (k in obj) { use(k); }")
	f := prog.Body[0].(*ast.ForInStatement)
	ident, ok := f.Left.(*ast.Identifier)
	if !ok {
		t.Fatalf("expected a bare Identifier left side, got %T", f.Left)
	}
	if ident.Name != "k" {
		t.Fatalf("got %q", ident.Name)
	}
}

func TestForClassicWithSuppressedInOperator(t *testing.T) {
	// A bare 'in' in a for-head init is suppressed as a binary operator, but
	// the '(' around `prop in obj` lifts that suppression, so the init is an
	// assignment whose right side is an 'in' BinaryExpression, and the ';'
	// that follows selects the classic for(;;) reading.
	prog := mustParse(t, "for (k = (prop in obj); k; k = null) { body(); }")
	f := prog.Body[0].(*ast.ForStatement)
	if f.Init == nil {
		t.Fatal("expected a non-nil init")
	}
}

func TestForInWithMemberExpressionLeftFails(t *testing.T) {
	// invariant I5: a for-in left side with no declaration keyword must be
	// a single bare identifier.
	mustFail(t, "for (obj.k in source) { use(k); }")
}

func TestForWithMultipleDeclaratorsAndSequenceUpdate(t *testing.T) {
	prog := mustParse(t, "for (let i = 0, j = 10; i < j; i++, j--) { body(); }")
	f := prog.Body[0].(*ast.ForStatement)
	init := f.Init.(*ast.VariableDeclaration)
	if len(init.Declarations) != 2 {
		t.Fatalf("expected 2 declarators, got %d", len(init.Declarations))
	}
	if _, ok := f.Update.(*ast.SequenceExpression); !ok {
		t.Fatalf("expected a SequenceExpression update, got %T", f.Update)
	}
}

func TestBlockStatementNesting(t *testing.T) {
	prog := mustParse(t, "{ { a(); } b(); }")
	outer := prog.Body[0].(*ast.BlockStatement)
	if len(outer.Body) != 2 {
		t.Fatalf("expected 2 statements in the outer block, got %d", len(outer.Body))
	}
	if _, ok := outer.Body[0].(*ast.BlockStatement); !ok {
		t.Fatalf("expected a nested BlockStatement, got %T", outer.Body[0])
	}
}

func TestEmptyStatement(t *testing.T) {
	prog := mustParse(t, ";;;")
	if len(prog.Body) != 3 {
		t.Fatalf("expected 3 empty statements, got %d", len(prog.Body))
	}
	for _, s := range prog.Body {
		if _, ok := s.(*ast.EmptyStatement); !ok {
			t.Fatalf("expected EmptyStatement, got %T", s)
		}
	}
}

func TestAutomaticSemicolonInsertionAtNewline(t *testing.T) {
	prog := mustParse(t, "let a = 1\nlet b = 2")
	if len(prog.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Body))
	}
}

func TestMissingSemicolonSameLineFails(t *testing.T) {
	mustFail(t, "let a = 1 let b = 2")
}
