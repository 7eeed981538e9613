// ==============================================================================================
// FILE: comptime/safety.go
// ==============================================================================================
// PACKAGE: comptime
// PURPOSE: Decides whether a function is "comptime-safe": pure, no FFI, no mutable
//          global access. A call to anything else is rejected rather than silently executed.
// ==============================================================================================

package comptime

import "zen/ast"

// IsSafe reports whether decl could be called from a comptime context.
// externs names the set of extern-declared function names in the program;
// a call to one of them, anywhere in decl's body, disqualifies it. Taking
// an address-of or assigning through a pointer disqualifies it too, since
// both are proxies for mutable state escaping the evaluator's value model.
func IsSafe(decl *ast.FunctionDecl, externs map[string]bool) bool {
	if decl == nil || decl.IsAsync {
		return false
	}
	return blockIsSafe(decl.Body, externs)
}

func blockIsSafe(b *ast.BlockStatement, externs map[string]bool) bool {
	if b == nil {
		return true
	}
	for _, s := range b.Statements {
		if !stmtIsSafe(s, externs) {
			return false
		}
	}
	return true
}

func stmtIsSafe(s ast.Statement, externs map[string]bool) bool {
	switch st := s.(type) {
	case *ast.ExpressionStatement:
		return exprIsSafe(st.Expr, externs)
	case *ast.ReturnStatement:
		return exprIsSafe(st.Value, externs)
	case *ast.VarDeclStatement:
		return exprIsSafe(st.Init, externs)
	case *ast.AssignStatement:
		return exprIsSafe(st.Value, externs)
	case *ast.PointerAssignStatement:
		return false
	case *ast.LoopStatement:
		if st.Condition != nil && !exprIsSafe(st.Condition, externs) {
			return false
		}
		if st.Iterable != nil && !exprIsSafe(st.Iterable, externs) {
			return false
		}
		return blockIsSafe(st.Body, externs)
	case *ast.BreakStatement, *ast.ContinueStatement:
		return true
	case *ast.ComptimeBlockStatement:
		return blockIsSafe(st.Body, externs)
	default:
		return true
	}
}

func exprIsSafe(e ast.Expression, externs map[string]bool) bool {
	if e == nil {
		return true
	}
	switch ex := e.(type) {
	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.StringLiteral, *ast.BoolLiteral, *ast.Identifier:
		return true
	case *ast.BinaryExpr:
		return exprIsSafe(ex.Left, externs) && exprIsSafe(ex.Right, externs)
	case *ast.UnaryExpr:
		return exprIsSafe(ex.Operand, externs)
	case *ast.CallExpr:
		if name, ok := ex.Callee.(*ast.Identifier); ok && externs[name.Name] {
			return false
		}
		for _, a := range ex.Args {
			if !exprIsSafe(a, externs) {
				return false
			}
		}
		return true
	case *ast.FieldAccessExpr:
		return exprIsSafe(ex.Object, externs)
	case *ast.IndexExpr:
		return exprIsSafe(ex.Object, externs) && exprIsSafe(ex.Index, externs)
	case *ast.AddressOfExpr:
		return false
	case *ast.DerefExpr:
		return exprIsSafe(ex.Operand, externs)
	case *ast.StructLiteralExpr:
		for _, f := range ex.Fields {
			if !exprIsSafe(f.Value, externs) {
				return false
			}
		}
		return true
	case *ast.ArrayLiteralExpr:
		for _, el := range ex.Elements {
			if !exprIsSafe(el, externs) {
				return false
			}
		}
		return true
	case *ast.RangeExpr:
		return exprIsSafe(ex.Start, externs) && exprIsSafe(ex.End, externs)
	case *ast.ConditionalExpr:
		if !exprIsSafe(ex.Scrutinee, externs) {
			return false
		}
		for _, arm := range ex.Arms {
			if arm.Guard != nil && !exprIsSafe(arm.Guard, externs) {
				return false
			}
			if !exprIsSafe(arm.Body, externs) {
				return false
			}
		}
		return true
	case *ast.StringInterpExpr:
		for _, p := range ex.Parts {
			if p.Expr != nil && !exprIsSafe(p.Expr, externs) {
				return false
			}
		}
		return true
	case *ast.ComptimeExpr:
		return exprIsSafe(ex.Inner, externs)
	case *ast.FunctionLiteral:
		return blockIsSafe(ex.Body, externs)
	default:
		return true
	}
}
