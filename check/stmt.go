// ==============================================================================================
// FILE: check/stmt.go
// ==============================================================================================
// PACKAGE: check
// PURPOSE: Statement checking: variable declarations and the narrow implicit-widening
//          exception, mutability rules for assignment and pointer assignment, loop condition
//          typing, and break/continue label resolution against the enclosing loop stack.
// ==============================================================================================

package check

import (
	"zen/ast"
	"zen/diag"
	"zen/scope"
)

// loopFrame tracks one open loop so break/continue can validate their
// optional label against it.
type loopFrame struct {
	label string
}

func (c *Checker) checkBlock(b *ast.BlockStatement) {
	if b == nil {
		return
	}
	c.scope.Enter()
	for _, s := range b.Statements {
		c.checkStmt(s)
	}
	c.scope.Exit()
}

func (c *Checker) checkStmt(s ast.Statement) {
	switch st := s.(type) {
	case *ast.ExpressionStatement:
		c.inferExpr(st.Expr)

	case *ast.ReturnStatement:
		var got ast.Type
		if st.Value != nil {
			got = c.inferExpr(st.Value)
		}
		if c.currentReturn != nil && got != nil && !ast.Equal(got, c.currentReturn) {
			c.typeMismatch(c.currentReturn, got, st.Span())
		}

	case *ast.VarDeclStatement:
		c.checkVarDecl(st)

	case *ast.AssignStatement:
		c.checkAssign(st)

	case *ast.PointerAssignStatement:
		c.checkPointerAssign(st)

	case *ast.LoopStatement:
		c.checkLoop(st)

	case *ast.BreakStatement:
		if !c.loopLabelExists(st.Label) {
			c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
				Message: "break outside of a loop (or unknown label)", Span: st.Span()})
		}

	case *ast.ContinueStatement:
		if !c.loopLabelExists(st.Label) {
			c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
				Message: "continue outside of a loop (or unknown label)", Span: st.Span()})
		}

	case *ast.ComptimeBlockStatement:
		c.checkBlock(st.Body)
	}
}

func (c *Checker) checkVarDecl(st *ast.VarDeclStatement) {
	initType := c.inferExpr(st.Init)
	declared := st.DeclaredType
	if declared == nil {
		declared = initType
	} else if initType != nil && !ast.Equal(declared, initType) {
		if !c.isWideningAssignable(initType, declared) {
			c.typeMismatch(declared, initType, st.Span())
		}
	}
	c.scope.Insert(&scope.Symbol{Name: st.Name, Kind: scope.KindValue, Type: declared, Mutable: st.Kind.IsMutable()})
}

// isWideningAssignable implements the one implicit-widening exception allowed
// outside binary operators: a narrower signed integer may widen to a wider signed
// integer in an initializer or assignment position. Every other mismatch
// is rejected.
func (c *Checker) isWideningAssignable(from, to ast.Type) bool {
	ft, ok := from.(*ast.IntType)
	if !ok {
		return false
	}
	tt, ok := to.(*ast.IntType)
	if !ok {
		return false
	}
	return ft.Signed && tt.Signed && ft.Width <= tt.Width
}

func (c *Checker) checkAssign(st *ast.AssignStatement) {
	sym, ok := c.scope.Lookup(st.Name)
	if !ok {
		c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
			Message: "undeclared name: " + st.Name, Span: st.Span()})
		c.inferExpr(st.Value)
		return
	}
	if !sym.Mutable {
		c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
			Message: st.Name + " is not mutable", Span: st.Span()})
	}
	valType := c.inferExpr(st.Value)
	if sym.Type != nil && valType != nil && !ast.Equal(sym.Type, valType) && !c.isWideningAssignable(valType, sym.Type) {
		c.typeMismatch(sym.Type, valType, st.Span())
	}
}

func (c *Checker) checkPointerAssign(st *ast.PointerAssignStatement) {
	targetType := c.inferExpr(st.Target)
	pt, ok := targetType.(*ast.PointerType)
	if !ok {
		if targetType != nil {
			c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
				Message: "pointer assignment target is not a pointer", Span: st.Span()})
		}
		c.inferExpr(st.Value)
		return
	}
	valType := c.inferExpr(st.Value)
	if valType != nil && !ast.Equal(pt.Elem, valType) && !c.isWideningAssignable(valType, pt.Elem) {
		c.typeMismatch(pt.Elem, valType, st.Span())
	}
}

func (c *Checker) checkLoop(st *ast.LoopStatement) {
	c.scope.Enter()
	defer c.scope.Exit()

	switch st.Kind {
	case ast.LoopCondition:
		c.expectBool(c.inferExpr(st.Condition), st.Condition.Span())
	case ast.LoopIterator:
		iterType := c.inferExpr(st.Iterable)
		var elem ast.Type
		switch it := iterType.(type) {
		case *ast.ArrayType:
			elem = it.Elem
		case *ast.FixedArrayType:
			elem = it.Elem
		default:
			if iterType != nil {
				c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
					Message: "loop iterable must be a range or array, found " + typeName(iterType), Span: st.Iterable.Span()})
			}
		}
		c.scope.Insert(&scope.Symbol{Name: st.BoundVar, Kind: scope.KindValue, Type: elem})
	}

	c.loops = append(c.loops, loopFrame{label: st.Label})
	c.checkBlock(st.Body)
	c.loops = c.loops[:len(c.loops)-1]
}

func (c *Checker) loopLabelExists(label string) bool {
	if len(c.loops) == 0 {
		return false
	}
	if label == "" {
		return true
	}
	for _, f := range c.loops {
		if f.label == label {
			return true
		}
	}
	return false
}
