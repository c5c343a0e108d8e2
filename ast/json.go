package ast

// ToJSON renders a node tree as nested maps with ESTree-style "type"
// discriminator fields, suitable for json.Marshal. Grounded on the same
// teacher recursive-dumper shape as Dump, but building a value tree instead
// of writing indented text, since interface-typed struct fields marshal
// without a type tag otherwise.
func ToJSON(n Node) any {
	if n == nil || isNilNode(n) {
		return nil
	}
	switch v := n.(type) {
	case *Program:
		return map[string]any{"type": "Program", "body": jsonList(toNodes(v.Body))}
	case *Identifier:
		return map[string]any{"type": "Identifier", "name": v.Name}
	case *NumericLiteral:
		return map[string]any{"type": "NumericLiteral", "value": v.Value}
	case *StringLiteral:
		return map[string]any{"type": "StringLiteral", "value": v.Value}
	case *BooleanLiteral:
		return map[string]any{"type": "BooleanLiteral", "value": v.Value}
	case *NullLiteral:
		return map[string]any{"type": "NullLiteral"}
	case *RegExpLiteral:
		return map[string]any{"type": "RegExpLiteral", "pattern": v.Pattern, "flags": v.Flags}
	case *TemplateElement:
		return map[string]any{"type": "TemplateElement", "value": v.Value}
	case *TemplateLiteral:
		return map[string]any{
			"type":        "TemplateLiteral",
			"quasis":      jsonList(templateElementsAsNodes(v.Quasis)),
			"expressions": jsonList(toNodes(v.Expressions)),
		}
	case *ThisExpression:
		return map[string]any{"type": "ThisExpression"}
	case *ArrayExpression:
		return map[string]any{"type": "ArrayExpression", "elements": jsonList(toNodes(v.Elements))}
	case *ObjectExpression:
		return map[string]any{"type": "ObjectExpression", "properties": jsonList(objectPropsAsNodes(v.Properties))}
	case *ObjectProperty:
		return map[string]any{"type": "ObjectProperty", "shorthand": v.Shorthand, "key": ToJSON(v.Key), "value": ToJSON(v.Value)}
	case *ObjectMethod:
		return map[string]any{"type": "ObjectMethod", "key": ToJSON(v.Key), "params": jsonList(toNodes(v.Params)), "body": ToJSON(v.Body)}
	case *UnaryExpression:
		return map[string]any{"type": "UnaryExpression", "operator": v.Operator, "prefix": v.Prefix, "argument": ToJSON(v.Argument)}
	case *UpdateExpression:
		return map[string]any{"type": "UpdateExpression", "operator": v.Operator, "prefix": v.Prefix, "argument": ToJSON(v.Argument)}
	case *BinaryExpression:
		return map[string]any{"type": "BinaryExpression", "operator": v.Operator, "left": ToJSON(v.Left), "right": ToJSON(v.Right)}
	case *LogicalExpression:
		return map[string]any{"type": "LogicalExpression", "operator": v.Operator, "left": ToJSON(v.Left), "right": ToJSON(v.Right)}
	case *AssignmentExpression:
		return map[string]any{"type": "AssignmentExpression", "operator": v.Operator, "left": ToJSON(v.Left), "right": ToJSON(v.Right)}
	case *ConditionalExpression:
		return map[string]any{"type": "ConditionalExpression", "test": ToJSON(v.Test), "consequent": ToJSON(v.Consequent), "alternate": ToJSON(v.Alternate)}
	case *SequenceExpression:
		return map[string]any{"type": "SequenceExpression", "expressions": jsonList(toNodes(v.Expressions))}
	case *MemberExpression:
		return map[string]any{"type": "MemberExpression", "computed": v.Computed, "object": ToJSON(v.Object), "property": ToJSON(v.Property)}
	case *CallExpression:
		return map[string]any{"type": "CallExpression", "callee": ToJSON(v.Callee), "arguments": jsonList(toNodes(v.Arguments))}
	case *NewExpression:
		return map[string]any{"type": "NewExpression", "callee": ToJSON(v.Callee), "arguments": jsonList(toNodes(v.Arguments))}
	case *FunctionDeclaration:
		return map[string]any{"type": "FunctionDeclaration", "id": ToJSON(v.ID), "params": jsonList(toNodes(v.Params)), "body": ToJSON(v.Body)}
	case *FunctionExpression:
		m := map[string]any{"type": "FunctionExpression", "params": jsonList(toNodes(v.Params)), "body": ToJSON(v.Body)}
		if v.ID != nil {
			m["id"] = ToJSON(v.ID)
		}
		return m
	case *ArrowFunctionExpression:
		return map[string]any{"type": "ArrowFunctionExpression", "params": jsonList(toNodes(v.Params)), "body": ToJSON(v.Body)}
	case *ObjectPattern:
		props := make([]any, len(v.Properties))
		for i, p := range v.Properties {
			props[i] = map[string]any{"type": "AssignmentProperty", "shorthand": p.Shorthand, "key": ToJSON(p.Key), "value": ToJSON(p.Value)}
		}
		return map[string]any{"type": "ObjectPattern", "properties": props}
	case *ArrayPattern:
		return map[string]any{"type": "ArrayPattern", "elements": jsonList(toNodes(v.Elements))}
	case *AssignmentPattern:
		return map[string]any{"type": "AssignmentPattern", "left": ToJSON(v.Left), "right": ToJSON(v.Right)}
	case *EmptyStatement:
		return map[string]any{"type": "EmptyStatement"}
	case *ExpressionStatement:
		return map[string]any{"type": "ExpressionStatement", "expression": ToJSON(v.Expression)}
	case *BlockStatement:
		return map[string]any{"type": "BlockStatement", "body": jsonList(toNodes(v.Body))}
	case *IfStatement:
		m := map[string]any{"type": "IfStatement", "test": ToJSON(v.Test), "consequent": ToJSON(v.Consequent)}
		if v.Alternate != nil {
			m["alternate"] = ToJSON(v.Alternate)
		}
		return m
	case *ForStatement:
		m := map[string]any{"type": "ForStatement", "body": ToJSON(v.Body)}
		if v.Init != nil {
			m["init"] = ToJSON(v.Init)
		}
		if v.Test != nil {
			m["test"] = ToJSON(v.Test)
		}
		if v.Update != nil {
			m["update"] = ToJSON(v.Update)
		}
		return m
	case *ForInStatement:
		return map[string]any{"type": "ForInStatement", "left": ToJSON(v.Left), "right": ToJSON(v.Right), "body": ToJSON(v.Body)}
	case *WhileStatement:
		return map[string]any{"type": "WhileStatement", "test": ToJSON(v.Test), "body": ToJSON(v.Body)}
	case *DoWhileStatement:
		return map[string]any{"type": "DoWhileStatement", "test": ToJSON(v.Test), "body": ToJSON(v.Body)}
	case *ReturnStatement:
		m := map[string]any{"type": "ReturnStatement"}
		if v.Argument != nil {
			m["argument"] = ToJSON(v.Argument)
		}
		return m
	case *BreakStatement:
		return map[string]any{"type": "BreakStatement"}
	case *ContinueStatement:
		return map[string]any{"type": "ContinueStatement"}
	case *ThrowStatement:
		return map[string]any{"type": "ThrowStatement", "argument": ToJSON(v.Argument)}
	case *TryStatement:
		m := map[string]any{"type": "TryStatement", "block": ToJSON(v.Block)}
		if v.Handler != nil {
			m["handler"] = ToJSON(v.Handler)
		}
		if v.Finalizer != nil {
			m["finalizer"] = ToJSON(v.Finalizer)
		}
		return m
	case *CatchClause:
		m := map[string]any{"type": "CatchClause", "body": ToJSON(v.Body)}
		if v.Param != nil {
			m["param"] = ToJSON(v.Param)
		}
		return m
	case *SwitchStatement:
		return map[string]any{"type": "SwitchStatement", "discriminant": ToJSON(v.Discriminant), "cases": jsonList(switchCasesAsNodes(v.Cases))}
	case *SwitchCase:
		m := map[string]any{"type": "SwitchCase", "consequent": jsonList(toNodes(v.Consequent))}
		if v.Test != nil {
			m["test"] = ToJSON(v.Test)
		}
		return m
	case *LabeledStatement:
		return map[string]any{"type": "LabeledStatement", "label": ToJSON(v.Label), "body": ToJSON(v.Body)}
	case *VariableDeclarator:
		m := map[string]any{"type": "VariableDeclarator", "id": ToJSON(v.ID)}
		if v.Init != nil {
			m["init"] = ToJSON(v.Init)
		}
		return m
	case *VariableDeclaration:
		return map[string]any{"type": "VariableDeclaration", "kind": v.Kind, "declarations": jsonList(variableDeclaratorsAsNodes(v.Declarations))}
	case exprForInit:
		return ToJSON(v.Expression)
	default:
		return map[string]any{"type": "Unknown"}
	}
}

func jsonList(nodes []Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = ToJSON(n)
	}
	return out
}

func toNodes[T Node](items []T) []Node {
	out := make([]Node, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func templateElementsAsNodes(items []*TemplateElement) []Node {
	out := make([]Node, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func objectPropsAsNodes(items []Node) []Node { return items }

func switchCasesAsNodes(items []*SwitchCase) []Node {
	out := make([]Node, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func variableDeclaratorsAsNodes(items []*VariableDeclarator) []Node {
	out := make([]Node, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
