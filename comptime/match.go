// ==============================================================================================
// FILE: comptime/match.go
// ==============================================================================================
// PACKAGE: comptime
// PURPOSE: Pattern matching against comptime Values, used by evalConditional to pick the arm
//          a scrutinee falls into and to collect the bindings its pattern introduces.
// ==============================================================================================

package comptime

import "zen/ast"

// matchPattern reports whether scrut matches pat, and if so returns the
// bindings the pattern introduces for use inside the arm's body.
func matchPattern(pat ast.Pattern, scrut Value) (map[string]Value, bool) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return map[string]Value{}, true

	case *ast.IdentPattern:
		return map[string]Value{p.Name: scrut}, true

	case *ast.LiteralPattern:
		lit := literalValue(p.Value)
		if lit == nil || !valuesEqual(lit, scrut) {
			return nil, false
		}
		return map[string]Value{}, true

	case *ast.RangePattern:
		si, ok := literalValue(p.Start).(*IntValue)
		ei, eok := literalValue(p.End).(*IntValue)
		sv, vok := scrut.(*IntValue)
		if !ok || !eok || !vok {
			return nil, false
		}
		if p.Inclusive {
			if sv.Value >= si.Value && sv.Value <= ei.Value {
				return map[string]Value{}, true
			}
			return nil, false
		}
		if sv.Value >= si.Value && sv.Value < ei.Value {
			return map[string]Value{}, true
		}
		return nil, false

	case *ast.OrPattern:
		for _, alt := range p.Alternatives {
			if binds, ok := matchPattern(alt, scrut); ok {
				return binds, true
			}
		}
		return nil, false

	case *ast.StructPattern:
		sv, ok := scrut.(*StructValue)
		if !ok || sv.Name != p.Name {
			return nil, false
		}
		binds := map[string]Value{}
		for name, fp := range p.Fields {
			fv, ok := sv.Fields[name]
			if !ok {
				return nil, false
			}
			fb, ok := matchPattern(fp, fv)
			if !ok {
				return nil, false
			}
			for k, v := range fb {
				binds[k] = v
			}
		}
		return binds, true

	default:
		return nil, false
	}
}

func literalValue(e ast.Expression) Value {
	switch ex := e.(type) {
	case *ast.IntegerLiteral:
		return &IntValue{Width: 64, Signed: true, Value: ex.Value}
	case *ast.FloatLiteral:
		return &FloatValue{Width: 64, Value: ex.Value}
	case *ast.BoolLiteral:
		return &BoolValue{Value: ex.Value}
	case *ast.StringLiteral:
		return &StringValue{Value: ex.Value}
	default:
		return nil
	}
}

func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case *IntValue:
		bv, ok := b.(*IntValue)
		return ok && av.Value == bv.Value
	case *FloatValue:
		bv, ok := b.(*FloatValue)
		return ok && av.Value == bv.Value
	case *BoolValue:
		bv, ok := b.(*BoolValue)
		return ok && av.Value == bv.Value
	case *StringValue:
		bv, ok := b.(*StringValue)
		return ok && av.Value == bv.Value
	default:
		return false
	}
}
