package ast

import (
	"fmt"
	"strings"
)

// Dump renders a node tree as an indented Go-ish listing for human
// inspection, grounded on the teacher's cmd/dwscript/cmd/parse.go
// dumpASTNode recursive printer.
func Dump(n Node) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dump(b *strings.Builder, n Node, depth int) {
	if n == nil || isNilNode(n) {
		indent(b, depth)
		b.WriteString("<nil>\n")
		return
	}
	switch v := n.(type) {
	case *Program:
		indent(b, depth)
		b.WriteString("Program\n")
		for _, s := range v.Body {
			dump(b, s, depth+1)
		}
	case *Identifier:
		indent(b, depth)
		fmt.Fprintf(b, "Identifier %q\n", v.Name)
	case *NumericLiteral:
		indent(b, depth)
		fmt.Fprintf(b, "NumericLiteral %s\n", v.Value)
	case *StringLiteral:
		indent(b, depth)
		fmt.Fprintf(b, "StringLiteral %q\n", v.Value)
	case *BooleanLiteral:
		indent(b, depth)
		fmt.Fprintf(b, "BooleanLiteral %v\n", v.Value)
	case *NullLiteral:
		indent(b, depth)
		b.WriteString("NullLiteral\n")
	case *RegExpLiteral:
		indent(b, depth)
		fmt.Fprintf(b, "RegExpLiteral /%s/%s\n", v.Pattern, v.Flags)
	case *TemplateLiteral:
		indent(b, depth)
		b.WriteString("TemplateLiteral\n")
		for _, q := range v.Quasis {
			dump(b, q, depth+1)
		}
		for _, e := range v.Expressions {
			dump(b, e, depth+1)
		}
	case *TemplateElement:
		indent(b, depth)
		fmt.Fprintf(b, "TemplateElement %q\n", v.Value)
	case *ThisExpression:
		indent(b, depth)
		b.WriteString("ThisExpression\n")
	case *ArrayExpression:
		indent(b, depth)
		b.WriteString("ArrayExpression\n")
		for _, e := range v.Elements {
			dump(b, e, depth+1)
		}
	case *ObjectExpression:
		indent(b, depth)
		b.WriteString("ObjectExpression\n")
		for _, p := range v.Properties {
			dump(b, p, depth+1)
		}
	case *ObjectProperty:
		indent(b, depth)
		fmt.Fprintf(b, "ObjectProperty shorthand=%v\n", v.Shorthand)
		dump(b, v.Key, depth+1)
		dump(b, v.Value, depth+1)
	case *ObjectMethod:
		indent(b, depth)
		b.WriteString("ObjectMethod\n")
		dump(b, v.Key, depth+1)
		for _, p := range v.Params {
			dump(b, p, depth+1)
		}
		dump(b, v.Body, depth+1)
	case *UnaryExpression:
		indent(b, depth)
		fmt.Fprintf(b, "UnaryExpression %q prefix=%v\n", v.Operator, v.Prefix)
		dump(b, v.Argument, depth+1)
	case *UpdateExpression:
		indent(b, depth)
		fmt.Fprintf(b, "UpdateExpression %q prefix=%v\n", v.Operator, v.Prefix)
		dump(b, v.Argument, depth+1)
	case *BinaryExpression:
		indent(b, depth)
		fmt.Fprintf(b, "BinaryExpression %q\n", v.Operator)
		dump(b, v.Left, depth+1)
		dump(b, v.Right, depth+1)
	case *LogicalExpression:
		indent(b, depth)
		fmt.Fprintf(b, "LogicalExpression %q\n", v.Operator)
		dump(b, v.Left, depth+1)
		dump(b, v.Right, depth+1)
	case *AssignmentExpression:
		indent(b, depth)
		fmt.Fprintf(b, "AssignmentExpression %q\n", v.Operator)
		dump(b, v.Left, depth+1)
		dump(b, v.Right, depth+1)
	case *ConditionalExpression:
		indent(b, depth)
		b.WriteString("ConditionalExpression\n")
		dump(b, v.Test, depth+1)
		dump(b, v.Consequent, depth+1)
		dump(b, v.Alternate, depth+1)
	case *SequenceExpression:
		indent(b, depth)
		b.WriteString("SequenceExpression\n")
		for _, e := range v.Expressions {
			dump(b, e, depth+1)
		}
	case *MemberExpression:
		indent(b, depth)
		fmt.Fprintf(b, "MemberExpression computed=%v\n", v.Computed)
		dump(b, v.Object, depth+1)
		dump(b, v.Property, depth+1)
	case *CallExpression:
		indent(b, depth)
		b.WriteString("CallExpression\n")
		dump(b, v.Callee, depth+1)
		for _, a := range v.Arguments {
			dump(b, a, depth+1)
		}
	case *NewExpression:
		indent(b, depth)
		b.WriteString("NewExpression\n")
		dump(b, v.Callee, depth+1)
		for _, a := range v.Arguments {
			dump(b, a, depth+1)
		}
	case *FunctionDeclaration:
		indent(b, depth)
		b.WriteString("FunctionDeclaration\n")
		dump(b, v.ID, depth+1)
		for _, p := range v.Params {
			dump(b, p, depth+1)
		}
		dump(b, v.Body, depth+1)
	case *FunctionExpression:
		indent(b, depth)
		b.WriteString("FunctionExpression\n")
		if v.ID != nil {
			dump(b, v.ID, depth+1)
		}
		for _, p := range v.Params {
			dump(b, p, depth+1)
		}
		dump(b, v.Body, depth+1)
	case *ArrowFunctionExpression:
		indent(b, depth)
		b.WriteString("ArrowFunctionExpression\n")
		for _, p := range v.Params {
			dump(b, p, depth+1)
		}
		dump(b, v.Body, depth+1)
	case *ObjectPattern:
		indent(b, depth)
		b.WriteString("ObjectPattern\n")
		for _, p := range v.Properties {
			indent(b, depth+1)
			fmt.Fprintf(b, "AssignmentProperty shorthand=%v\n", p.Shorthand)
			dump(b, p.Key, depth+2)
			dump(b, p.Value, depth+2)
		}
	case *ArrayPattern:
		indent(b, depth)
		b.WriteString("ArrayPattern\n")
		for _, e := range v.Elements {
			dump(b, e, depth+1)
		}
	case *AssignmentPattern:
		indent(b, depth)
		b.WriteString("AssignmentPattern\n")
		dump(b, v.Left, depth+1)
		dump(b, v.Right, depth+1)
	case *EmptyStatement:
		indent(b, depth)
		b.WriteString("EmptyStatement\n")
	case *ExpressionStatement:
		indent(b, depth)
		b.WriteString("ExpressionStatement\n")
		dump(b, v.Expression, depth+1)
	case *BlockStatement:
		indent(b, depth)
		b.WriteString("BlockStatement\n")
		for _, s := range v.Body {
			dump(b, s, depth+1)
		}
	case *IfStatement:
		indent(b, depth)
		b.WriteString("IfStatement\n")
		dump(b, v.Test, depth+1)
		dump(b, v.Consequent, depth+1)
		if v.Alternate != nil {
			dump(b, v.Alternate, depth+1)
		}
	case *ForStatement:
		indent(b, depth)
		b.WriteString("ForStatement\n")
		if v.Init != nil {
			dump(b, v.Init, depth+1)
		}
		if v.Test != nil {
			dump(b, v.Test, depth+1)
		}
		if v.Update != nil {
			dump(b, v.Update, depth+1)
		}
		dump(b, v.Body, depth+1)
	case *ForInStatement:
		indent(b, depth)
		b.WriteString("ForInStatement\n")
		dump(b, v.Left, depth+1)
		dump(b, v.Right, depth+1)
		dump(b, v.Body, depth+1)
	case *WhileStatement:
		indent(b, depth)
		b.WriteString("WhileStatement\n")
		dump(b, v.Test, depth+1)
		dump(b, v.Body, depth+1)
	case *DoWhileStatement:
		indent(b, depth)
		b.WriteString("DoWhileStatement\n")
		dump(b, v.Body, depth+1)
		dump(b, v.Test, depth+1)
	case *ReturnStatement:
		indent(b, depth)
		b.WriteString("ReturnStatement\n")
		if v.Argument != nil {
			dump(b, v.Argument, depth+1)
		}
	case *BreakStatement:
		indent(b, depth)
		b.WriteString("BreakStatement\n")
	case *ContinueStatement:
		indent(b, depth)
		b.WriteString("ContinueStatement\n")
	case *ThrowStatement:
		indent(b, depth)
		b.WriteString("ThrowStatement\n")
		dump(b, v.Argument, depth+1)
	case *TryStatement:
		indent(b, depth)
		b.WriteString("TryStatement\n")
		dump(b, v.Block, depth+1)
		if v.Handler != nil {
			dump(b, v.Handler, depth+1)
		}
		if v.Finalizer != nil {
			dump(b, v.Finalizer, depth+1)
		}
	case *CatchClause:
		indent(b, depth)
		b.WriteString("CatchClause\n")
		if v.Param != nil {
			dump(b, v.Param, depth+1)
		}
		dump(b, v.Body, depth+1)
	case *SwitchStatement:
		indent(b, depth)
		b.WriteString("SwitchStatement\n")
		dump(b, v.Discriminant, depth+1)
		for _, c := range v.Cases {
			dump(b, c, depth+1)
		}
	case *SwitchCase:
		indent(b, depth)
		b.WriteString("SwitchCase\n")
		if v.Test != nil {
			dump(b, v.Test, depth+1)
		}
		for _, s := range v.Consequent {
			dump(b, s, depth+1)
		}
	case *LabeledStatement:
		indent(b, depth)
		b.WriteString("LabeledStatement\n")
		dump(b, v.Label, depth+1)
		dump(b, v.Body, depth+1)
	case *VariableDeclaration:
		indent(b, depth)
		fmt.Fprintf(b, "VariableDeclaration %s\n", v.Kind)
		for _, d := range v.Declarations {
			dump(b, d, depth+1)
		}
	case *VariableDeclarator:
		indent(b, depth)
		b.WriteString("VariableDeclarator\n")
		dump(b, v.ID, depth+1)
		if v.Init != nil {
			dump(b, v.Init, depth+1)
		}
	case exprForInit:
		dump(b, v.Expression, depth)
	default:
		indent(b, depth)
		fmt.Fprintf(b, "%T\n", v)
	}
}

// isNilNode detects a typed-nil interface value (e.g. a nil *Identifier
// stored in an Expression), which n != nil alone would not catch.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Identifier:
		return v == nil
	case *BlockStatement:
		return v == nil
	case *FunctionExpression:
		return v == nil
	default:
		return false
	}
}
