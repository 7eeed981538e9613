// ==============================================================================================
// FILE: check/conformance.go
// ==============================================================================================
// PACKAGE: check
// PURPOSE: Behavior/impl conformance checking: every method a behavior declares must be
//          provided by an impl claiming it, with a matching signature once `self` is substituted
//          for a pointer to the implementing type.
// ==============================================================================================

package check

import (
	"zen/ast"
	"zen/diag"
	"zen/scope"
)

func (c *Checker) checkImpl(d *ast.ImplDecl) {
	selfType := ast.Type(&ast.PointerType{Elem: &ast.StructType{Name: d.TargetType}})
	if st, ok := c.structs[d.TargetType]; ok {
		selfType = &ast.PointerType{Elem: structDeclType(st)}
	}

	for _, m := range d.Methods {
		c.scope.Enter()
		c.scope.Insert(&scope.Symbol{Name: "self", Kind: scope.KindValue, Type: selfType})
		for _, p := range m.Params {
			if p.Name == "self" {
				continue
			}
			c.scope.Insert(&scope.Symbol{Name: p.Name, Kind: scope.KindValue, Type: p.Type})
		}
		prevReturn := c.currentReturn
		c.currentReturn = m.ReturnType
		c.checkBlock(m.Body)
		c.currentReturn = prevReturn
		c.scope.Exit()
	}

	if d.Behavior == "" {
		return
	}
	behavior, ok := c.behaviors[d.Behavior]
	if !ok {
		c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
			Message: "undeclared behavior: " + d.Behavior, Span: d.Span()})
		return
	}

	provided := make(map[string]*ast.FunctionDecl, len(d.Methods))
	for _, m := range d.Methods {
		provided[m.Name] = m
	}

	for _, want := range behavior.Methods {
		got, ok := provided[want.Name]
		if !ok {
			c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
				Message: d.TargetType + " does not implement " + d.Behavior + "." + want.Name, Span: d.Span()})
			continue
		}
		if !signatureMatches(want, got, selfType) {
			c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
				Message: d.TargetType + "." + want.Name + " does not match the signature " + d.Behavior + " declares", Span: got.Span()})
		}
	}
}

// signatureMatches compares a behavior's declared method signature
// against the impl's method, after substituting the behavior's implicit
// `self` parameter for selfType.
func signatureMatches(want ast.MethodSig, got *ast.FunctionDecl, selfType ast.Type) bool {
	if !ast.Equal(want.ReturnType, got.ReturnType) {
		return false
	}
	if len(want.Params) != len(got.Params) {
		return false
	}
	for i, wp := range want.Params {
		gp := got.Params[i].Type
		if isSelfPlaceholder(wp) {
			if !ast.Equal(selfType, gp) {
				return false
			}
			continue
		}
		if !ast.Equal(wp, gp) {
			return false
		}
	}
	return true
}

// isSelfPlaceholder reports whether a behavior parameter type is the
// implicit `self` marker: a *ast.GenericType named "Self" with no
// arguments, the convention the parser uses when it sees the bare `self`
// parameter in a behavior's method signature.
func isSelfPlaceholder(t ast.Type) bool {
	gt, ok := t.(*ast.GenericType)
	return ok && gt.Name == "Self" && len(gt.Args) == 0
}
