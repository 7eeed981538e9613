// ==============================================================================================
// FILE: irgen/pattern.go
// ==============================================================================================
// PACKAGE: irgen
// PURPOSE: Lowers the `if`/match expression (ast.ConditionalExpr) and pattern compilation. Every
//          arm body is an Expression, never a BlockStatement, so an arm can never contain a
//          return/break/continue and therefore can never terminate its own basic block — every
//          arm unconditionally falls through to a shared merge block behind a phi node.
// ==============================================================================================

package irgen

import (
	"tinygo.org/x/go-llvm"

	"zen/ast"
)

// genConditional lowers both plain `if` chains and full pattern matches:
// the scrutinee is tested against each arm's pattern in order, the first
// match (with a satisfied guard, if any) wins, and every arm's value
// joins at a common merge block through a phi node.
func (g *Generator) genConditional(st *fnState, ex *ast.ConditionalExpr) llvm.Value {
	var scrut llvm.Value
	var scrutType ast.Type
	if ex.Scrutinee != nil {
		scrut = g.genExpr(st, ex.Scrutinee)
		scrutType = g.exprType(st, ex.Scrutinee)
	}

	merge := llvm.AddBasicBlock(st.fn, "match.end")

	type incoming struct {
		val   llvm.Value
		block llvm.BasicBlock
	}
	var incomings []incoming
	resultType := g.exprType(st, ex.Arms[0].Body)

	for i, arm := range ex.Arms {
		armBlock := llvm.AddBasicBlock(st.fn, "match.arm")
		var nextBlock llvm.BasicBlock
		if i == len(ex.Arms)-1 {
			nextBlock = merge
		} else {
			nextBlock = llvm.AddBasicBlock(st.fn, "match.test")
		}

		st.env.enter()
		cond, binds := g.genPatternTest(st, arm.Pattern, scrut, scrutType)
		for name, l := range binds {
			st.env.define(name, l)
		}

		if arm.Guard != nil {
			guardVal := g.genExpr(st, arm.Guard)
			if cond.IsNil() {
				cond = guardVal
			} else {
				cond = g.builder.CreateAnd(cond, guardVal, "")
			}
		}

		if !cond.IsNil() {
			g.builder.CreateCondBr(cond, armBlock, nextBlock)
		} else {
			g.builder.CreateBr(armBlock)
		}

		g.builder.SetInsertPointAtEnd(armBlock)
		val := g.genExpr(st, arm.Body)
		incomings = append(incomings, incoming{val: val, block: g.builder.GetInsertBlock()})
		st.env.exit()
		g.builder.CreateBr(merge)

		g.builder.SetInsertPointAtEnd(nextBlock)
	}

	g.builder.SetInsertPointAtEnd(merge)
	if _, isVoid := resultType.(*ast.VoidType); isVoid {
		return llvm.Value{}
	}
	phi := g.builder.CreatePHI(g.llvmType(resultType), "")
	vals := make([]llvm.Value, len(incomings))
	blocks := make([]llvm.BasicBlock, len(incomings))
	for i, in := range incomings {
		vals[i] = in.val
		blocks[i] = in.block
	}
	phi.AddIncoming(vals, blocks)
	return phi
}

// genPatternTest compiles pat against scrut, returning the boolean
// condition that must hold for the arm to fire (a nil llvm.Value when
// the pattern always matches, such as a wildcard or bare identifier)
// together with any bindings the pattern introduces.
func (g *Generator) genPatternTest(st *fnState, pat ast.Pattern, scrut llvm.Value, scrutType ast.Type) (llvm.Value, map[string]local) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return llvm.Value{}, nil

	case *ast.IdentPattern:
		slot := g.builder.CreateAlloca(g.llvmType(scrutType), p.Name)
		g.builder.CreateStore(scrut, slot)
		return llvm.Value{}, map[string]local{p.Name: {ptr: slot, typ: scrutType}}

	case *ast.LiteralPattern:
		litVal := g.genExpr(st, p.Value)
		return g.genEquals(scrutType, scrut, litVal), nil

	case *ast.RangePattern:
		startVal := g.genExpr(st, p.Start)
		endVal := g.genExpr(st, p.End)
		upper := llvm.IntSLT
		if p.Inclusive {
			upper = llvm.IntSLE
		}
		lo := g.builder.CreateICmp(llvm.IntSGE, scrut, startVal, "")
		hi := g.builder.CreateICmp(upper, scrut, endVal, "")
		return g.builder.CreateAnd(lo, hi, ""), nil

	case *ast.OrPattern:
		var cond llvm.Value
		binds := map[string]local{}
		for _, alt := range p.Alternatives {
			altCond, altBinds := g.genPatternTest(st, alt, scrut, scrutType)
			for k, v := range altBinds {
				binds[k] = v
			}
			if altCond.IsNil() {
				return llvm.Value{}, binds
			}
			if cond.IsNil() {
				cond = altCond
			} else {
				cond = g.builder.CreateOr(cond, altCond, "")
			}
		}
		return cond, binds

	case *ast.EnumVariantPattern:
		ed, ok := scrutType.(*ast.EnumType)
		if !ok {
			return llvm.Value{}, nil
		}
		zero32 := llvm.ConstInt(g.ctx.Int32Type(), 0, false)
		slot := g.builder.CreateAlloca(g.llvmType(ed), "scrut")
		g.builder.CreateStore(scrut, slot)
		tagAddr := g.builder.CreateGEP(slot, []llvm.Value{zero32, zero32}, "")
		tag := g.builder.CreateLoad(tagAddr, "")
		want := llvm.ConstInt(g.ctx.Int32Type(), uint64(ed.VariantIndex(p.Variant)), false)
		cond := g.builder.CreateICmp(llvm.IntEQ, tag, want, "")

		var binds map[string]local
		if p.Binding != "" {
			var payloadType ast.Type
			for _, v := range ed.Variants {
				if v.Name == p.Variant {
					payloadType = v.Payload
				}
			}
			if payloadType != nil {
				one32 := llvm.ConstInt(g.ctx.Int32Type(), 1, false)
				payloadAddr := g.builder.CreateGEP(slot, []llvm.Value{zero32, one32}, "")
				typed := g.builder.CreateBitCast(payloadAddr, llvm.PointerType(g.llvmType(payloadType), 0), "")
				binds = map[string]local{p.Binding: {ptr: typed, typ: payloadType}}
			}
		}
		return cond, binds

	case *ast.StructPattern:
		sd, ok := scrutType.(*ast.StructType)
		if !ok {
			return llvm.Value{}, nil
		}
		slot := g.builder.CreateAlloca(g.llvmType(sd), "scrut")
		g.builder.CreateStore(scrut, slot)
		zero32 := llvm.ConstInt(g.ctx.Int32Type(), 0, false)

		var cond llvm.Value
		binds := map[string]local{}
		for name, fieldPat := range p.Fields {
			idx := sd.FieldIndex(name)
			fieldType := sd.Fields[idx].Type
			addr := g.builder.CreateGEP(slot, []llvm.Value{zero32, llvm.ConstInt(g.ctx.Int32Type(), uint64(idx), false)}, "")
			fieldVal := g.builder.CreateLoad(addr, "")
			fc, fb := g.genPatternTest(st, fieldPat, fieldVal, fieldType)
			for k, v := range fb {
				binds[k] = v
			}
			if fc.IsNil() {
				continue
			}
			if cond.IsNil() {
				cond = fc
			} else {
				cond = g.builder.CreateAnd(cond, fc, "")
			}
		}
		return cond, binds

	default:
		return llvm.Value{}, nil
	}
}

// genEquals compares a scrutinee against a pattern literal, returning a
// bool (i1) regardless of type, unlike the ordinary "==" binary operator
// which types string equality as a zero-extended i64.
func (g *Generator) genEquals(t ast.Type, a, b llvm.Value) llvm.Value {
	switch t.(type) {
	case *ast.StringType:
		cmp := g.builder.CreateCall(g.functions["strcmp"], []llvm.Value{a, b}, "")
		return g.builder.CreateICmp(llvm.IntEQ, cmp, llvm.ConstInt(g.ctx.Int32Type(), 0, false), "")
	case *ast.FloatType:
		return g.builder.CreateFCmp(llvm.FloatOEQ, a, b, "")
	default:
		return g.builder.CreateICmp(llvm.IntEQ, a, b, "")
	}
}
