// ==============================================================================================
// FILE: check/expr.go
// ==============================================================================================
// PACKAGE: check
// PURPOSE: Expression type inference and the operator/field/pointer rules. Every
//          inferExpr call either returns a concrete ast.Type or reports a diagnostic and returns
//          nil; callers must treat a nil result as "already reported, stop propagating".
// ==============================================================================================

package check

import (
	"zen/ast"
	"zen/diag"
	"zen/token"
)

func (c *Checker) inferExpr(e ast.Expression) ast.Type {
	switch ex := e.(type) {
	case *ast.IntegerLiteral:
		return &ast.IntType{Width: 64, Signed: true}
	case *ast.FloatLiteral:
		return &ast.FloatType{Width: 64}
	case *ast.StringLiteral:
		return &ast.StringType{}
	case *ast.BoolLiteral:
		return &ast.BoolType{}
	case *ast.Identifier:
		return c.inferIdentifier(ex)
	case *ast.BinaryExpr:
		return c.inferBinary(ex)
	case *ast.UnaryExpr:
		return c.inferUnary(ex)
	case *ast.CallExpr:
		return c.inferCall(ex)
	case *ast.FieldAccessExpr:
		return c.inferFieldAccess(ex)
	case *ast.IndexExpr:
		return c.inferIndex(ex)
	case *ast.AddressOfExpr:
		return c.inferAddressOf(ex)
	case *ast.DerefExpr:
		return c.inferDeref(ex)
	case *ast.StructLiteralExpr:
		return c.inferStructLiteral(ex)
	case *ast.ArrayLiteralExpr:
		return c.inferArrayLiteral(ex)
	case *ast.EnumVariantExpr:
		return c.inferEnumVariant(ex)
	case *ast.RangeExpr:
		c.inferExpr(ex.Start)
		c.inferExpr(ex.End)
		return &ast.ArrayType{Elem: &ast.IntType{Width: 64, Signed: true}}
	case *ast.ConditionalExpr:
		return c.inferConditional(ex)
	case *ast.StringInterpExpr:
		for _, p := range ex.Parts {
			if p.Expr != nil {
				c.inferExpr(p.Expr)
			}
		}
		return &ast.StringType{}
	case *ast.ComptimeExpr:
		return c.inferExpr(ex.Inner)
	case *ast.FunctionLiteral:
		args := make([]ast.Type, len(ex.Params))
		for i, p := range ex.Params {
			args[i] = p.Type
		}
		return &ast.FunctionType{Args: args, Return: ex.ReturnType}
	default:
		return nil
	}
}

func (c *Checker) inferIdentifier(e *ast.Identifier) ast.Type {
	sym, ok := c.scope.Lookup(e.Name)
	if !ok {
		c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
			Message: "undeclared name: " + e.Name, Span: e.Span()})
		return nil
	}
	return sym.Type
}

func (c *Checker) inferBinary(e *ast.BinaryExpr) ast.Type {
	lt := c.inferExpr(e.Left)
	rt := c.inferExpr(e.Right)
	if lt == nil || rt == nil {
		return nil
	}

	switch e.Op {
	case "&&", "||":
		c.expectBool(lt, e.Left.Span())
		c.expectBool(rt, e.Right.Span())
		return &ast.BoolType{}

	case "==", "!=":
		if ast.Equal(lt, rt) {
			if _, isString := lt.(*ast.StringType); isString {
				// String equality lowers to strcmp, whose result is zero-extended
				// to a 64-bit int rather than narrowed to bool.
				return &ast.IntType{Width: 64, Signed: true}
			}
			return &ast.BoolType{}
		}
		c.typeMismatch(lt, rt, e.Span())
		return &ast.BoolType{}

	case "<", ">", "<=", ">=":
		if !ast.Equal(lt, rt) || !isNumeric(lt) {
			c.typeMismatch(lt, rt, e.Span())
		}
		return &ast.BoolType{}

	case "+":
		if _, isString := lt.(*ast.StringType); isString {
			if _, rIsString := rt.(*ast.StringType); rIsString {
				return &ast.StringType{}
			}
		}
		fallthrough
	case "-", "*", "/":
		if !ast.Equal(lt, rt) {
			// Mixed-width/mixed-type arithmetic is rejected outright on binary
			// operators; the one implicit-widening exception allowed (narrower
			// signed int -> wider signed int) applies only to initializer and
			// assignment positions, checked in stmt.go.
			c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
				Message: "mixed-type arithmetic is not allowed: " + typeName(lt) + " " + e.Op + " " + typeName(rt),
				Span:    e.Span()})
			return lt
		}
		if !isNumeric(lt) {
			c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
				Message: "operator " + e.Op + " requires numeric operands, found " + typeName(lt), Span: e.Span()})
		}
		return lt

	default:
		c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
			Message: "unknown operator: " + e.Op, Span: e.Span()})
		return lt
	}
}

func (c *Checker) inferUnary(e *ast.UnaryExpr) ast.Type {
	t := c.inferExpr(e.Operand)
	if t == nil {
		return nil
	}
	switch e.Op {
	case "-":
		if !isNumeric(t) {
			c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
				Message: "unary - requires a numeric operand, found " + typeName(t), Span: e.Span()})
		}
		return t
	case "!":
		c.expectBool(t, e.Operand.Span())
		return &ast.BoolType{}
	default:
		return t
	}
}

func (c *Checker) inferCall(e *ast.CallExpr) ast.Type {
	for _, a := range e.Args {
		c.inferExpr(a)
	}
	name, ok := e.Callee.(*ast.Identifier)
	if !ok {
		// Indirect call through a function-typed expression; its static
		// type supplies the return type.
		ct := c.inferExpr(e.Callee)
		if ft, ok := ct.(*ast.FunctionType); ok {
			return ft.Return
		}
		return nil
	}
	sym, ok := c.scope.Lookup(name.Name)
	if !ok {
		c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
			Message: "undeclared function: " + name.Name, Span: e.Span()})
		return nil
	}
	if ft, ok := sym.Type.(*ast.FunctionType); ok {
		variadic := false
		if ext, isExt := sym.Decl.(*ast.ExternFunctionDecl); isExt {
			variadic = ext.Variadic
		}
		if len(e.Args) < len(ft.Args) || (!variadic && len(e.Args) != len(ft.Args)) {
			c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
				Message: "wrong argument count calling " + name.Name, Span: e.Span()})
		}
		return ft.Return
	}
	return nil
}

func (c *Checker) inferFieldAccess(e *ast.FieldAccessExpr) ast.Type {
	if ft, ok := c.tryStdAccess(e); ok {
		return ft
	}
	ot := c.inferExpr(e.Object)
	st, ok := underlyingStruct(ot)
	if !ok {
		c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
			Message: "field access on non-struct type", Span: e.Span()})
		return nil
	}
	idx := st.FieldIndex(e.Field)
	if idx < 0 {
		c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
			Message: "struct " + st.Name + " has no field " + e.Field, Span: e.Span()})
		return nil
	}
	return st.Fields[idx].Type
}

// tryStdAccess recognizes the two-level field-access chain
// @std.<module>.<member> and resolves it against the stdlib registry
// instead of the ordinary struct-field path, injecting the module's
// entries into the namespace the first time it is referenced.
func (c *Checker) tryStdAccess(e *ast.FieldAccessExpr) (ast.Type, bool) {
	mid, ok := e.Object.(*ast.FieldAccessExpr)
	if !ok {
		return nil, false
	}
	root, ok := mid.Object.(*ast.Identifier)
	if !ok || root.Name != "@std" {
		return nil, false
	}
	ft, ok := c.std.Resolve(mid.Field, e.Field)
	if !ok {
		c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
			Message: "@std." + mid.Field + " has no member " + e.Field, Span: e.Span()})
		return nil, true
	}
	return ft, true
}

func underlyingStruct(t ast.Type) (*ast.StructType, bool) {
	if t == nil {
		return nil, false
	}
	if st, ok := t.(*ast.StructType); ok {
		return st, true
	}
	if pt, ok := t.(*ast.PointerType); ok {
		return underlyingStruct(pt.Elem)
	}
	return nil, false
}

func (c *Checker) inferIndex(e *ast.IndexExpr) ast.Type {
	ot := c.inferExpr(e.Object)
	c.inferExpr(e.Index)
	switch t := ot.(type) {
	case *ast.ArrayType:
		return t.Elem
	case *ast.FixedArrayType:
		return t.Elem
	default:
		if ot != nil {
			c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
				Message: "index operator requires an array type, found " + typeName(ot), Span: e.Span()})
		}
		return nil
	}
}

func (c *Checker) inferAddressOf(e *ast.AddressOfExpr) ast.Type {
	if !isLvalue(e.Operand) {
		c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
			Message: "& requires an lvalue operand", Span: e.Span()})
	}
	t := c.inferExpr(e.Operand)
	if t == nil {
		return nil
	}
	return &ast.PointerType{Elem: t}
}

func isLvalue(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.FieldAccessExpr, *ast.IndexExpr, *ast.DerefExpr:
		return true
	default:
		return false
	}
}

func (c *Checker) inferDeref(e *ast.DerefExpr) ast.Type {
	t := c.inferExpr(e.Operand)
	pt, ok := t.(*ast.PointerType)
	if !ok {
		if t != nil {
			c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
				Message: "* requires a pointer operand, found " + typeName(t), Span: e.Span()})
		}
		return nil
	}
	return pt.Elem
}

func (c *Checker) inferStructLiteral(e *ast.StructLiteralExpr) ast.Type {
	decl, ok := c.structs[e.TypeName]
	if !ok {
		c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
			Message: "undeclared struct type: " + e.TypeName, Span: e.Span()})
		for _, f := range e.Fields {
			c.inferExpr(f.Value)
		}
		return nil
	}
	st := structDeclType(decl)
	for _, f := range e.Fields {
		ft := c.inferExpr(f.Value)
		idx := st.FieldIndex(f.Name)
		if idx < 0 {
			c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
				Message: st.Name + " has no field " + f.Name, Span: e.Span()})
			continue
		}
		if ft != nil && !ast.Equal(ft, st.Fields[idx].Type) {
			c.typeMismatch(st.Fields[idx].Type, ft, e.Span())
		}
	}
	return st
}

func (c *Checker) inferArrayLiteral(e *ast.ArrayLiteralExpr) ast.Type {
	if len(e.Elements) == 0 {
		return &ast.ArrayType{Elem: &ast.VoidType{}}
	}
	first := c.inferExpr(e.Elements[0])
	for _, el := range e.Elements[1:] {
		t := c.inferExpr(el)
		if t != nil && first != nil && !ast.Equal(t, first) {
			c.typeMismatch(first, t, el.Span())
		}
	}
	return &ast.ArrayType{Elem: first}
}

func (c *Checker) inferEnumVariant(e *ast.EnumVariantExpr) ast.Type {
	decl, ok := c.enums[e.EnumName]
	if !ok {
		c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
			Message: "undeclared enum type: " + e.EnumName, Span: e.Span()})
		return nil
	}
	et := enumDeclType(decl)
	idx := et.VariantIndex(e.Variant)
	if idx < 0 {
		c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
			Message: et.Name + " has no variant " + e.Variant, Span: e.Span()})
		return et
	}
	if e.Payload != nil {
		c.inferExpr(e.Payload)
	}
	return et
}

func (c *Checker) inferConditional(e *ast.ConditionalExpr) ast.Type {
	scrutType := c.inferExpr(e.Scrutinee)
	var result ast.Type
	for _, arm := range e.Arms {
		c.scope.Enter()
		c.bindPattern(arm.Pattern, scrutType)
		if arm.Guard != nil {
			c.expectBool(c.inferExpr(arm.Guard), arm.Guard.Span())
		}
		bt := c.inferExpr(arm.Body)
		c.scope.Exit()
		if result == nil {
			result = bt
		}
	}
	c.checkExhaustiveness(e, scrutType)
	return result
}

func (c *Checker) expectBool(t ast.Type, span token.Span) {
	if t == nil {
		return
	}
	if _, ok := t.(*ast.BoolType); !ok {
		c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
			Message: "expected bool, found " + typeName(t), Span: span})
	}
}

func (c *Checker) typeMismatch(expected, found ast.Type, span token.Span) {
	c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
		Message: "type mismatch: expected " + typeName(expected) + ", found " + typeName(found), Span: span})
}

func isNumeric(t ast.Type) bool {
	switch t.(type) {
	case *ast.IntType, *ast.FloatType:
		return true
	default:
		return false
	}
}

func typeName(t ast.Type) string {
	if t == nil {
		return "<unknown>"
	}
	return t.String()
}
