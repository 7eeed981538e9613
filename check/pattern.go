// ==============================================================================================
// FILE: check/pattern.go
// ==============================================================================================
// PACKAGE: check
// PURPOSE: Pattern compatibility checking, binding introduction, and exhaustiveness checking
//: enums require every variant covered or a wildcard/identifier catch-all;
//          integers get an advisory (warning) exhaustiveness check since their domain is huge.
// ==============================================================================================

package check

import (
	"zen/ast"
	"zen/diag"
	"zen/scope"
)

// bindPattern introduces whatever bindings pat makes visible for its arm's
// guard and body into the current (already-entered) scope.
func (c *Checker) bindPattern(pat ast.Pattern, scrutType ast.Type) {
	switch p := pat.(type) {
	case *ast.IdentPattern:
		c.scope.Insert(&scope.Symbol{Name: p.Name, Kind: scope.KindValue, Type: scrutType})
	case *ast.EnumVariantPattern:
		et, ok := scrutType.(*ast.EnumType)
		var payload ast.Type
		if ok {
			idx := et.VariantIndex(p.Variant)
			if idx < 0 {
				c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
					Message: et.Name + " has no variant " + p.Variant, Span: p.Span()})
			} else {
				payload = et.Variants[idx].Payload
			}
		}
		if p.Binding != "" {
			c.scope.Insert(&scope.Symbol{Name: p.Binding, Kind: scope.KindValue, Type: payload})
		}
		if p.Inner != nil {
			c.bindPattern(p.Inner, payload)
		}
	case *ast.StructPattern:
		st, ok := scrutType.(*ast.StructType)
		for name, fp := range p.Fields {
			var ft ast.Type
			if ok {
				idx := st.FieldIndex(name)
				if idx >= 0 {
					ft = st.Fields[idx].Type
				}
			}
			c.bindPattern(fp, ft)
		}
	case *ast.OrPattern:
		for _, alt := range p.Alternatives {
			c.bindPattern(alt, scrutType)
		}
	case *ast.LiteralPattern:
		c.inferExpr(p.Value)
	case *ast.RangePattern:
		c.inferExpr(p.Start)
		c.inferExpr(p.End)
	case *ast.WildcardPattern:
		// binds nothing
	}
}

// checkExhaustiveness implements the enum/integer coverage rule: an
// enum match must cover every variant, or carry a wildcard/identifier arm;
// an integer match only gets an advisory warning, never an error.
func (c *Checker) checkExhaustiveness(e *ast.ConditionalExpr, scrutType ast.Type) {
	hasCatchAll := false
	for _, arm := range e.Arms {
		if isCatchAll(arm.Pattern) && arm.Guard == nil {
			hasCatchAll = true
		}
	}
	if hasCatchAll {
		return
	}

	switch st := scrutType.(type) {
	case *ast.EnumType:
		covered := map[string]bool{}
		collectCoveredVariants(e.Arms, covered)
		var missing []string
		for _, v := range st.Variants {
			if !covered[v.Name] {
				missing = append(missing, v.Name)
			}
		}
		if len(missing) > 0 {
			c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityError,
				Message: "non-exhaustive match on " + st.Name + ": missing variant(s)", Span: e.Span()})
		}
	case *ast.IntType:
		c.bag.Add(diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityWarning,
			Message: "non-exhaustive match on integer scrutinee; consider a wildcard arm", Span: e.Span()})
	}
}

func collectCoveredVariants(arms []*ast.MatchArm, covered map[string]bool) {
	var visit func(p ast.Pattern)
	visit = func(p ast.Pattern) {
		switch pt := p.(type) {
		case *ast.EnumVariantPattern:
			covered[pt.Variant] = true
		case *ast.OrPattern:
			for _, alt := range pt.Alternatives {
				visit(alt)
			}
		}
	}
	for _, arm := range arms {
		if arm.Guard == nil {
			visit(arm.Pattern)
		}
	}
}

func isCatchAll(p ast.Pattern) bool {
	switch p.(type) {
	case *ast.WildcardPattern, *ast.IdentPattern:
		return true
	default:
		return false
	}
}
