// ==============================================================================================
// FILE: types/rewrite.go
// ==============================================================================================
// PACKAGE: types
// PURPOSE: Deep-clones a generic declaration's body while applying a Substitution to every
//          embedded type annotation. Instantiate calls this once per (declaration, args) pair;
//          the clone is what actually gets registered in the program, so two instantiations of
//          the same generic never alias each other's AST nodes.
// ==============================================================================================

package types

import "zen/ast"

func cloneBlock(b *ast.BlockStatement, sub Substitution) *ast.BlockStatement {
	if b == nil {
		return nil
	}
	stmts := make([]ast.Statement, len(b.Statements))
	for i, s := range b.Statements {
		stmts[i] = cloneStmt(s, sub)
	}
	return &ast.BlockStatement{Statements: stmts}
}

func cloneStmt(s ast.Statement, sub Substitution) ast.Statement {
	switch st := s.(type) {
	case *ast.ExpressionStatement:
		return &ast.ExpressionStatement{Expr: cloneExpr(st.Expr, sub)}
	case *ast.ReturnStatement:
		return &ast.ReturnStatement{Value: cloneExpr(st.Value, sub)}
	case *ast.VarDeclStatement:
		return &ast.VarDeclStatement{
			Name:         st.Name,
			DeclaredType: Substitute(st.DeclaredType, sub),
			Init:         cloneExpr(st.Init, sub),
			Kind:         st.Kind,
		}
	case *ast.AssignStatement:
		return &ast.AssignStatement{Name: st.Name, Value: cloneExpr(st.Value, sub)}
	case *ast.PointerAssignStatement:
		return &ast.PointerAssignStatement{Target: cloneExpr(st.Target, sub), Value: cloneExpr(st.Value, sub)}
	case *ast.LoopStatement:
		return &ast.LoopStatement{
			Kind:      st.Kind,
			Label:     st.Label,
			Condition: cloneExpr(st.Condition, sub),
			BoundVar:  st.BoundVar,
			Iterable:  cloneExpr(st.Iterable, sub),
			Body:      cloneBlock(st.Body, sub),
		}
	case *ast.BreakStatement:
		return &ast.BreakStatement{Label: st.Label}
	case *ast.ContinueStatement:
		return &ast.ContinueStatement{Label: st.Label}
	case *ast.ComptimeBlockStatement:
		return &ast.ComptimeBlockStatement{Body: cloneBlock(st.Body, sub)}
	default:
		return s
	}
}

func cloneExpr(e ast.Expression, sub Substitution) ast.Expression {
	if e == nil {
		return nil
	}
	switch ex := e.(type) {
	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.StringLiteral, *ast.BoolLiteral, *ast.Identifier:
		return e
	case *ast.BinaryExpr:
		return &ast.BinaryExpr{Op: ex.Op, Left: cloneExpr(ex.Left, sub), Right: cloneExpr(ex.Right, sub)}
	case *ast.UnaryExpr:
		return &ast.UnaryExpr{Op: ex.Op, Operand: cloneExpr(ex.Operand, sub)}
	case *ast.CallExpr:
		args := make([]ast.Expression, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = cloneExpr(a, sub)
		}
		typeArgs := make([]ast.Type, len(ex.TypeArgs))
		for i, t := range ex.TypeArgs {
			typeArgs[i] = Substitute(t, sub)
		}
		return &ast.CallExpr{Callee: cloneExpr(ex.Callee, sub), TypeArgs: typeArgs, Args: args}
	case *ast.FieldAccessExpr:
		return &ast.FieldAccessExpr{Object: cloneExpr(ex.Object, sub), Field: ex.Field}
	case *ast.IndexExpr:
		return &ast.IndexExpr{Object: cloneExpr(ex.Object, sub), Index: cloneExpr(ex.Index, sub)}
	case *ast.AddressOfExpr:
		return &ast.AddressOfExpr{Operand: cloneExpr(ex.Operand, sub)}
	case *ast.DerefExpr:
		return &ast.DerefExpr{Operand: cloneExpr(ex.Operand, sub)}
	case *ast.StructLiteralExpr:
		fields := make([]ast.StructFieldInit, len(ex.Fields))
		for i, f := range ex.Fields {
			fields[i] = ast.StructFieldInit{Name: f.Name, Value: cloneExpr(f.Value, sub)}
		}
		typeArgs := make([]ast.Type, len(ex.TypeArgs))
		for i, t := range ex.TypeArgs {
			typeArgs[i] = Substitute(t, sub)
		}
		return &ast.StructLiteralExpr{TypeName: ex.TypeName, TypeArgs: typeArgs, Fields: fields}
	case *ast.ArrayLiteralExpr:
		elems := make([]ast.Expression, len(ex.Elements))
		for i, el := range ex.Elements {
			elems[i] = cloneExpr(el, sub)
		}
		return &ast.ArrayLiteralExpr{Elements: elems}
	case *ast.EnumVariantExpr:
		return &ast.EnumVariantExpr{EnumName: ex.EnumName, Variant: ex.Variant, Payload: cloneExpr(ex.Payload, sub)}
	case *ast.RangeExpr:
		return &ast.RangeExpr{Start: cloneExpr(ex.Start, sub), End: cloneExpr(ex.End, sub), Inclusive: ex.Inclusive}
	case *ast.ConditionalExpr:
		arms := make([]*ast.MatchArm, len(ex.Arms))
		for i, a := range ex.Arms {
			arms[i] = &ast.MatchArm{
				Pattern: clonePattern(a.Pattern, sub),
				Guard:   cloneExpr(a.Guard, sub),
				Body:    cloneExpr(a.Body, sub),
			}
		}
		return &ast.ConditionalExpr{Scrutinee: cloneExpr(ex.Scrutinee, sub), Arms: arms}
	case *ast.StringInterpExpr:
		parts := make([]ast.InterpPart, len(ex.Parts))
		for i, p := range ex.Parts {
			parts[i] = ast.InterpPart{Literal: p.Literal, Expr: cloneExpr(p.Expr, sub)}
		}
		return &ast.StringInterpExpr{Parts: parts}
	case *ast.ComptimeExpr:
		return &ast.ComptimeExpr{Inner: cloneExpr(ex.Inner, sub)}
	case *ast.FunctionLiteral:
		params := make([]ast.Param, len(ex.Params))
		for i, p := range ex.Params {
			params[i] = ast.Param{Name: p.Name, Type: Substitute(p.Type, sub)}
		}
		return &ast.FunctionLiteral{Params: params, ReturnType: Substitute(ex.ReturnType, sub), Body: cloneBlock(ex.Body, sub)}
	default:
		return e
	}
}

func clonePattern(p ast.Pattern, sub Substitution) ast.Pattern {
	if p == nil {
		return nil
	}
	switch pt := p.(type) {
	case *ast.LiteralPattern:
		return &ast.LiteralPattern{Value: cloneExpr(pt.Value, sub)}
	case *ast.WildcardPattern:
		return pt
	case *ast.IdentPattern:
		return pt
	case *ast.EnumVariantPattern:
		return &ast.EnumVariantPattern{
			EnumName: pt.EnumName,
			Variant:  pt.Variant,
			Binding:  pt.Binding,
			Inner:    clonePattern(pt.Inner, sub),
		}
	case *ast.StructPattern:
		fields := make(map[string]ast.Pattern, len(pt.Fields))
		for name, fp := range pt.Fields {
			fields[name] = clonePattern(fp, sub)
		}
		return &ast.StructPattern{Name: pt.Name, Fields: fields}
	case *ast.RangePattern:
		return &ast.RangePattern{Start: cloneExpr(pt.Start, sub), End: cloneExpr(pt.End, sub), Inclusive: pt.Inclusive}
	case *ast.OrPattern:
		alts := make([]ast.Pattern, len(pt.Alternatives))
		for i, a := range pt.Alternatives {
			alts[i] = clonePattern(a, sub)
		}
		return &ast.OrPattern{Alternatives: alts}
	default:
		return p
	}
}
