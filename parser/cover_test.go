package parser

import (
	"testing"

	"github.com/jsparse-go/jsparse/ast"
)

func TestFunctionParamDestructuring(t *testing.T) {
	prog := mustParse(t, "function f({a, b = 1}, [c, , d]) { return a; }")
	fn := prog.Body[0].(*ast.FunctionDeclaration)
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}

	obj, ok := fn.Params[0].(*ast.ObjectPattern)
	if !ok {
		t.Fatalf("expected an ObjectPattern, got %T", fn.Params[0])
	}
	if len(obj.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(obj.Properties))
	}
	if !obj.Properties[0].Shorthand {
		t.Fatal("expected 'a' to be shorthand")
	}
	def, ok := obj.Properties[1].Value.(*ast.AssignmentPattern)
	if !ok {
		t.Fatalf("expected 'b = 1' to produce an AssignmentPattern, got %T", obj.Properties[1].Value)
	}
	if _, ok := def.Right.(*ast.NumericLiteral); !ok {
		t.Fatalf("got default %T", def.Right)
	}

	arr, ok := fn.Params[1].(*ast.ArrayPattern)
	if !ok {
		t.Fatalf("expected an ArrayPattern, got %T", fn.Params[1])
	}
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 elements (including the elision), got %d", len(arr.Elements))
	}
	if arr.Elements[1] != nil {
		t.Fatalf("expected the middle element to be an elision, got %#v", arr.Elements[1])
	}
}

func TestArrowParamObjectDestructuringViaCoverGrammar(t *testing.T) {
	// `({a, b}) => a + b` must reinterpret the parenthesized
	// ObjectExpression cover value as an ObjectPattern once '=>' confirms
	// arrow-parameter intent.
	e := exprOf(t, "({a, b}) => a + b;").(*ast.ArrowFunctionExpression)
	if len(e.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(e.Params))
	}
	if _, ok := e.Params[0].(*ast.ObjectPattern); !ok {
		t.Fatalf("expected an ObjectPattern param, got %T", e.Params[0])
	}
}

func TestObjectShorthandDefaultForcesArrowElseSyntaxError(t *testing.T) {
	// `{x = 1}` is never a valid plain object-literal expression; it is
	// only legal when immediately followed by '=>'.
	mustFail(t, "({x = 1});")
}

func TestObjectShorthandDefaultAsArrowParamSucceeds(t *testing.T) {
	e := exprOf(t, "({x = 1}) => x;").(*ast.ArrowFunctionExpression)
	obj := e.Params[0].(*ast.ObjectPattern)
	if len(obj.Properties) != 1 || !obj.Properties[0].Shorthand {
		t.Fatalf("got %#v", obj.Properties)
	}
}

func TestArrayDestructuringDeclaration(t *testing.T) {
	prog := mustParse(t, "let [a, b] = pair;")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	pat, ok := decl.Declarations[0].ID.(*ast.ArrayPattern)
	if !ok {
		t.Fatalf("expected an ArrayPattern, got %T", decl.Declarations[0].ID)
	}
	if len(pat.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(pat.Elements))
	}
}

func TestObjectDestructuringDeclaration(t *testing.T) {
	prog := mustParse(t, "let {a, b: renamed} = obj;")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	pat, ok := decl.Declarations[0].ID.(*ast.ObjectPattern)
	if !ok {
		t.Fatalf("expected an ObjectPattern, got %T", decl.Declarations[0].ID)
	}
	if len(pat.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(pat.Properties))
	}
	if pat.Properties[1].Shorthand {
		t.Fatal("expected 'b: renamed' to be non-shorthand")
	}
}

func TestCallExpressionIsNotArrowConvertible(t *testing.T) {
	// `(f())` is parenthesized but has no '=>' after it, so it stays a
	// plain CallExpression; toPattern would reject it if misapplied.
	e := exprOf(t, "(f());")
	call, ok := e.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected a CallExpression, got %T", e)
	}
	if !call.Parenthesized {
		t.Fatal("expected the Parenthesized flag to be set")
	}
}
