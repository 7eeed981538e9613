// ==============================================================================================
// FILE: irgen/expr.go
// ==============================================================================================
// PACKAGE: irgen
// PURPOSE: Expression lowering, plus exprType: a lightweight re-derivation of an expression's
//          Zen type good enough to pick the right LLVM type and operator family during lowering.
//          ast nodes carry no cached type annotation from the checker, so irgen re-infers types
//          locally rather than requiring check to decorate the tree — the same approach the
//          reference vslc compiler takes (its genType works straight off syntax tree node data,
//          not a separate checker pass's output), appropriate here since the checker has already
//          rejected anything this re-derivation would need to diagnose.
// ==============================================================================================

package irgen

import (
	"tinygo.org/x/go-llvm"

	"zen/ast"
	"zen/diag"
)

func (g *Generator) exprType(st *fnState, e ast.Expression) ast.Type {
	switch ex := e.(type) {
	case *ast.IntegerLiteral:
		return &ast.IntType{Width: 64, Signed: true}
	case *ast.FloatLiteral:
		return &ast.FloatType{Width: 64}
	case *ast.StringLiteral:
		return &ast.StringType{}
	case *ast.StringInterpExpr:
		return &ast.StringType{}
	case *ast.BoolLiteral:
		return &ast.BoolType{}
	case *ast.Identifier:
		if l, ok := st.env.lookup(ex.Name); ok {
			return l.typ
		}
		if ft, ok := g.funcTypes[ex.Name]; ok {
			return ft
		}
		return &ast.VoidType{}
	case *ast.BinaryExpr:
		switch ex.Op {
		case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
			lt := g.exprType(st, ex.Left)
			if _, isString := lt.(*ast.StringType); isString && (ex.Op == "==" || ex.Op == "!=") {
				return &ast.IntType{Width: 64, Signed: true}
			}
			return &ast.BoolType{}
		default:
			return g.exprType(st, ex.Left)
		}
	case *ast.UnaryExpr:
		if ex.Op == "!" {
			return &ast.BoolType{}
		}
		return g.exprType(st, ex.Operand)
	case *ast.CallExpr:
		if ft, ok := g.calleeType(st, ex.Callee); ok {
			return ft.Return
		}
		return &ast.VoidType{}
	case *ast.FieldAccessExpr:
		ot := g.exprType(st, ex.Object)
		if pt, ok := ot.(*ast.PointerType); ok {
			ot = pt.Elem
		}
		if sd, ok := ot.(*ast.StructType); ok {
			if i := sd.FieldIndex(ex.Field); i >= 0 {
				return sd.Fields[i].Type
			}
		}
		return &ast.VoidType{}
	case *ast.IndexExpr:
		switch at := g.exprType(st, ex.Object).(type) {
		case *ast.ArrayType:
			return at.Elem
		case *ast.FixedArrayType:
			return at.Elem
		}
		return &ast.VoidType{}
	case *ast.AddressOfExpr:
		return &ast.PointerType{Elem: g.exprType(st, ex.Operand)}
	case *ast.DerefExpr:
		if pt, ok := g.exprType(st, ex.Operand).(*ast.PointerType); ok {
			return pt.Elem
		}
		return &ast.VoidType{}
	case *ast.StructLiteralExpr:
		if sd, ok := g.structDecls[ex.TypeName]; ok {
			return sd
		}
		return &ast.VoidType{}
	case *ast.ArrayLiteralExpr:
		elem := ast.Type(&ast.VoidType{})
		if len(ex.Elements) > 0 {
			elem = g.exprType(st, ex.Elements[0])
		}
		return &ast.FixedArrayType{Elem: elem, Size: int64(len(ex.Elements))}
	case *ast.EnumVariantExpr:
		if ed, ok := g.enumDecls[ex.EnumName]; ok {
			return ed
		}
		return &ast.VoidType{}
	case *ast.RangeExpr:
		return g.exprType(st, ex.Start)
	case *ast.ConditionalExpr:
		if len(ex.Arms) > 0 {
			return g.exprType(st, ex.Arms[0].Body)
		}
		return &ast.VoidType{}
	case *ast.FunctionLiteral:
		args := make([]ast.Type, len(ex.Params))
		for i, p := range ex.Params {
			args[i] = p.Type
		}
		return &ast.FunctionType{Args: args, Return: ex.ReturnType}
	default:
		return &ast.VoidType{}
	}
}

func (g *Generator) calleeType(st *fnState, callee ast.Expression) (*ast.FunctionType, bool) {
	if id, ok := callee.(*ast.Identifier); ok {
		if ft, ok := g.funcTypes[id.Name]; ok {
			return ft, true
		}
	}
	if fa, ok := callee.(*ast.FieldAccessExpr); ok {
		if mname, target, ok := g.resolveMethod(st, fa); ok {
			return g.funcTypes[methodName(target, mname)], true
		}
	}
	if ft, ok := g.exprType(st, callee).(*ast.FunctionType); ok {
		return ft, true
	}
	return nil, false
}

func (g *Generator) genExpr(st *fnState, e ast.Expression) llvm.Value {
	switch ex := e.(type) {
	case *ast.IntegerLiteral:
		return llvm.ConstInt(g.ctx.Int64Type(), uint64(ex.Value), true)
	case *ast.FloatLiteral:
		return llvm.ConstFloat(g.ctx.DoubleType(), ex.Value)
	case *ast.BoolLiteral:
		v := uint64(0)
		if ex.Value {
			v = 1
		}
		return llvm.ConstInt(g.ctx.Int1Type(), v, false)
	case *ast.StringLiteral:
		return g.builder.CreateGlobalStringPtr(ex.Value, "str")
	case *ast.StringInterpExpr:
		return g.genStringInterp(st, ex)
	case *ast.Identifier:
		if l, ok := st.env.lookup(ex.Name); ok {
			return g.builder.CreateLoad(l.ptr, ex.Name)
		}
		if fn, ok := g.functions[ex.Name]; ok {
			return fn
		}
		return llvm.ConstNull(g.ctx.Int64Type())
	case *ast.BinaryExpr:
		return g.genBinary(st, ex)
	case *ast.UnaryExpr:
		return g.genUnary(st, ex)
	case *ast.CallExpr:
		return g.genCall(st, ex)
	case *ast.FieldAccessExpr:
		return g.builder.CreateLoad(g.lvalue(st, ex), ex.Field)
	case *ast.IndexExpr:
		return g.builder.CreateLoad(g.lvalue(st, ex), "")
	case *ast.AddressOfExpr:
		return g.lvalue(st, ex.Operand)
	case *ast.DerefExpr:
		return g.builder.CreateLoad(g.genExpr(st, ex.Operand), "")
	case *ast.StructLiteralExpr:
		return g.genStructLiteral(st, ex)
	case *ast.ArrayLiteralExpr:
		return g.genArrayLiteral(st, ex)
	case *ast.EnumVariantExpr:
		return g.genEnumVariant(st, ex)
	case *ast.RangeExpr:
		return g.genExpr(st, ex.Start)
	case *ast.ConditionalExpr:
		return g.genConditional(st, ex)
	default:
		// FunctionLiteral: first-class function values have no captures
		// in this language, so a complete lowering would hoist each
		// literal to its own top-level function ahead of time. There is
		// no such hoisting pass, so it is reported as unsupported here
		// rather than silently miscompiled.
		if e != nil {
			g.bag.Errorf(diag.KindLower, e.Span(), "unsupported expression in lowering: %T", e)
		}
		return llvm.ConstNull(g.ctx.Int64Type())
	}
}

func (g *Generator) genBinary(st *fnState, ex *ast.BinaryExpr) llvm.Value {
	if ex.Op == "&&" || ex.Op == "||" {
		return g.genShortCircuit(st, ex)
	}

	lt := g.exprType(st, ex.Left)
	if _, isString := lt.(*ast.StringType); isString {
		return g.genStringBinary(st, ex)
	}

	l := g.genExpr(st, ex.Left)
	r := g.genExpr(st, ex.Right)

	if _, isFloat := lt.(*ast.FloatType); isFloat {
		return g.genFloatBinary(ex.Op, l, r)
	}
	return g.genIntBinary(ex.Op, l, r, isSignedType(lt))
}

func isSignedType(t ast.Type) bool {
	it, ok := t.(*ast.IntType)
	return !ok || it.Signed
}

func (g *Generator) genShortCircuit(st *fnState, ex *ast.BinaryExpr) llvm.Value {
	lhs := g.genExpr(st, ex.Left)
	start := g.builder.GetInsertBlock()
	rhsBlock := llvm.AddBasicBlock(st.fn, "logic.rhs")
	mergeBlock := llvm.AddBasicBlock(st.fn, "logic.merge")

	if ex.Op == "&&" {
		g.builder.CreateCondBr(lhs, rhsBlock, mergeBlock)
	} else {
		g.builder.CreateCondBr(lhs, mergeBlock, rhsBlock)
	}

	g.builder.SetInsertPointAtEnd(rhsBlock)
	rhs := g.genExpr(st, ex.Right)
	rhsEnd := g.builder.GetInsertBlock()
	g.builder.CreateBr(mergeBlock)

	g.builder.SetInsertPointAtEnd(mergeBlock)
	phi := g.builder.CreatePHI(g.ctx.Int1Type(), "")
	phi.AddIncoming([]llvm.Value{lhs, rhs}, []llvm.BasicBlock{start, rhsEnd})
	return phi
}

func cmpPred(signedPred, unsignedPred llvm.IntPredicate, signed bool) llvm.IntPredicate {
	if signed {
		return signedPred
	}
	return unsignedPred
}

func (g *Generator) genIntBinary(op string, l, r llvm.Value, signed bool) llvm.Value {
	switch op {
	case "+":
		return g.builder.CreateAdd(l, r, "")
	case "-":
		return g.builder.CreateSub(l, r, "")
	case "*":
		return g.builder.CreateMul(l, r, "")
	case "/":
		if signed {
			return g.builder.CreateSDiv(l, r, "")
		}
		return g.builder.CreateUDiv(l, r, "")
	case "==":
		return g.builder.CreateICmp(llvm.IntEQ, l, r, "")
	case "!=":
		return g.builder.CreateICmp(llvm.IntNE, l, r, "")
	case "<":
		return g.builder.CreateICmp(cmpPred(llvm.IntSLT, llvm.IntULT, signed), l, r, "")
	case ">":
		return g.builder.CreateICmp(cmpPred(llvm.IntSGT, llvm.IntUGT, signed), l, r, "")
	case "<=":
		return g.builder.CreateICmp(cmpPred(llvm.IntSLE, llvm.IntULE, signed), l, r, "")
	case ">=":
		return g.builder.CreateICmp(cmpPred(llvm.IntSGE, llvm.IntUGE, signed), l, r, "")
	default:
		return l
	}
}

func (g *Generator) genFloatBinary(op string, l, r llvm.Value) llvm.Value {
	switch op {
	case "+":
		return g.builder.CreateFAdd(l, r, "")
	case "-":
		return g.builder.CreateFSub(l, r, "")
	case "*":
		return g.builder.CreateFMul(l, r, "")
	case "/":
		return g.builder.CreateFDiv(l, r, "")
	case "==":
		return g.builder.CreateFCmp(llvm.FloatOEQ, l, r, "")
	case "!=":
		return g.builder.CreateFCmp(llvm.FloatONE, l, r, "")
	case "<":
		return g.builder.CreateFCmp(llvm.FloatOLT, l, r, "")
	case ">":
		return g.builder.CreateFCmp(llvm.FloatOGT, l, r, "")
	case "<=":
		return g.builder.CreateFCmp(llvm.FloatOLE, l, r, "")
	case ">=":
		return g.builder.CreateFCmp(llvm.FloatOGE, l, r, "")
	default:
		return l
	}
}

// genStringBinary backs string "+" and "=="/"!=". Equality lowers to
// strcmp compared against zero, with the boolean result zero-extended to
// a 64-bit int rather than left as i1, matching the checker's own rule
// for the same operator.
func (g *Generator) genStringBinary(st *fnState, ex *ast.BinaryExpr) llvm.Value {
	l := g.genExpr(st, ex.Left)
	r := g.genExpr(st, ex.Right)
	if ex.Op == "==" || ex.Op == "!=" {
		cmp := g.builder.CreateCall(g.functions["strcmp"], []llvm.Value{l, r}, "")
		pred := llvm.IntEQ
		if ex.Op == "!=" {
			pred = llvm.IntNE
		}
		b := g.builder.CreateICmp(pred, cmp, llvm.ConstInt(g.ctx.Int32Type(), 0, false), "")
		return g.builder.CreateZExt(b, g.ctx.Int64Type(), "")
	}
	return g.concatStrings(l, r)
}

// concatStrings allocates a buffer sized for both operands plus the
// terminator and builds the result with strcpy/strcat, the same pattern
// genStringInterp uses to fold interpolated fragments together.
func (g *Generator) concatStrings(l, r llvm.Value) llvm.Value {
	i64 := g.ctx.Int64Type()
	lenL := g.builder.CreateCall(g.functions["strlen"], []llvm.Value{l}, "")
	lenR := g.builder.CreateCall(g.functions["strlen"], []llvm.Value{r}, "")
	total := g.builder.CreateAdd(g.builder.CreateAdd(lenL, lenR, ""), llvm.ConstInt(i64, 1, false), "")
	buf := g.builder.CreateCall(g.functions["malloc"], []llvm.Value{total}, "")
	g.builder.CreateCall(g.functions["strcpy"], []llvm.Value{buf, l}, "")
	g.builder.CreateCall(g.functions["strcat"], []llvm.Value{buf, r}, "")
	return buf
}

func (g *Generator) genUnary(st *fnState, ex *ast.UnaryExpr) llvm.Value {
	v := g.genExpr(st, ex.Operand)
	switch ex.Op {
	case "-":
		if _, isFloat := g.exprType(st, ex.Operand).(*ast.FloatType); isFloat {
			return g.builder.CreateFNeg(v, "")
		}
		return g.builder.CreateNeg(v, "")
	case "!":
		return g.builder.CreateXor(v, llvm.ConstInt(g.ctx.Int1Type(), 1, false), "")
	default:
		return v
	}
}

func (g *Generator) genCall(st *fnState, ex *ast.CallExpr) llvm.Value {
	args := make([]llvm.Value, len(ex.Args))
	for i, a := range ex.Args {
		args[i] = g.genExpr(st, a)
	}

	if fa, ok := ex.Callee.(*ast.FieldAccessExpr); ok {
		if mid, ok := fa.Object.(*ast.FieldAccessExpr); ok {
			if root, ok := mid.Object.(*ast.Identifier); ok && root.Name == "@std" {
				return g.genStdCall(mid.Field, fa.Field, args)
			}
		}
		if mname, target, ok := g.resolveMethod(st, fa); ok {
			var self llvm.Value
			if _, isPtr := g.exprType(st, fa.Object).(*ast.PointerType); isPtr {
				self = g.genExpr(st, fa.Object)
			} else {
				self = g.lvalue(st, fa.Object)
			}
			fn := g.functions[methodName(target, mname)]
			return g.builder.CreateCall(fn, append([]llvm.Value{self}, args...), "")
		}
	}

	if id, ok := ex.Callee.(*ast.Identifier); ok {
		if fn, ok := g.functions[id.Name]; ok {
			return g.builder.CreateCall(fn, args, "")
		}
	}

	target := g.genExpr(st, ex.Callee)
	return g.builder.CreateCall(target, args, "")
}

// resolveMethod reports whether fa is a call through an impl method
// (e.g. circle.draw), as opposed to an ordinary struct field access.
func (g *Generator) resolveMethod(st *fnState, fa *ast.FieldAccessExpr) (string, string, bool) {
	ot := g.exprType(st, fa.Object)
	name := ""
	switch tt := ot.(type) {
	case *ast.StructType:
		name = tt.Name
	case *ast.PointerType:
		if sd, ok := tt.Elem.(*ast.StructType); ok {
			name = sd.Name
		}
	}
	if name == "" {
		return "", "", false
	}
	if _, ok := g.methods[name][fa.Field]; ok {
		return fa.Field, name, true
	}
	return "", "", false
}

// genStdCall lowers a call through the fixed @std namespace straight to
// the C runtime function backing it; the checker has already validated
// the call against stdlib.Registry's signatures by the time irgen sees it.
func (g *Generator) genStdCall(module, member string, args []llvm.Value) llvm.Value {
	switch module + "." + member {
	case "io.print":
		fmtStr := g.builder.CreateGlobalStringPtr("%s", "fmt.print")
		return g.builder.CreateCall(g.functions["printf"], append([]llvm.Value{fmtStr}, args...), "")
	case "io.println":
		fmtStr := g.builder.CreateGlobalStringPtr("%s\n", "fmt.println")
		return g.builder.CreateCall(g.functions["printf"], append([]llvm.Value{fmtStr}, args...), "")
	case "core.panic":
		fmtStr := g.builder.CreateGlobalStringPtr("panic: %s\n", "fmt.panic")
		return g.builder.CreateCall(g.functions["printf"], append([]llvm.Value{fmtStr}, args...), "")
	default:
		// core.assert is a checker-time-only contract here and
		// io.read_line needs a scanf-style bridge not yet declared.
		return llvm.ConstNull(g.ctx.Int64Type())
	}
}

// lvalue resolves e to the address it lives at, for assignment targets,
// address-of, and field/index access that should read through a GEP
// rather than a full load-then-reconstruct.
func (g *Generator) lvalue(st *fnState, e ast.Expression) llvm.Value {
	switch ex := e.(type) {
	case *ast.Identifier:
		if l, ok := st.env.lookup(ex.Name); ok {
			return l.ptr
		}
	case *ast.FieldAccessExpr:
		ot := g.exprType(st, ex.Object)
		var base llvm.Value
		if pt, ok := ot.(*ast.PointerType); ok {
			base = g.genExpr(st, ex.Object)
			ot = pt.Elem
		} else {
			base = g.lvalue(st, ex.Object)
		}
		if sd, ok := ot.(*ast.StructType); ok {
			idx := sd.FieldIndex(ex.Field)
			zero := llvm.ConstInt(g.ctx.Int32Type(), 0, false)
			field := llvm.ConstInt(g.ctx.Int32Type(), uint64(idx), false)
			return g.builder.CreateGEP(base, []llvm.Value{zero, field}, "")
		}
	case *ast.IndexExpr:
		ot := g.exprType(st, ex.Object)
		idx := g.genExpr(st, ex.Index)
		if _, fixed := ot.(*ast.FixedArrayType); fixed {
			base := g.lvalue(st, ex.Object)
			zero := llvm.ConstInt(g.ctx.Int32Type(), 0, false)
			return g.builder.CreateGEP(base, []llvm.Value{zero, idx}, "")
		}
		arr := g.genExpr(st, ex.Object)
		ptr := g.builder.CreateExtractValue(arr, 1, "")
		return g.builder.CreateGEP(ptr, []llvm.Value{idx}, "")
	case *ast.DerefExpr:
		return g.genExpr(st, ex.Operand)
	}
	return llvm.Value{}
}

func (g *Generator) genStructLiteral(st *fnState, ex *ast.StructLiteralExpr) llvm.Value {
	sd, ok := g.structDecls[ex.TypeName]
	if !ok {
		return llvm.Value{}
	}
	slot := g.builder.CreateAlloca(g.llvmType(sd), ex.TypeName)
	zero := llvm.ConstInt(g.ctx.Int32Type(), 0, false)
	for _, f := range ex.Fields {
		idx := sd.FieldIndex(f.Name)
		field := llvm.ConstInt(g.ctx.Int32Type(), uint64(idx), false)
		addr := g.builder.CreateGEP(slot, []llvm.Value{zero, field}, "")
		g.builder.CreateStore(g.genExpr(st, f.Value), addr)
	}
	return g.builder.CreateLoad(slot, ex.TypeName)
}

func (g *Generator) genArrayLiteral(st *fnState, ex *ast.ArrayLiteralExpr) llvm.Value {
	if len(ex.Elements) == 0 {
		return llvm.Value{}
	}
	elemType := g.exprType(st, ex.Elements[0])
	arrTy := llvm.ArrayType(g.llvmType(elemType), len(ex.Elements))
	slot := g.builder.CreateAlloca(arrTy, "arr")
	zero := llvm.ConstInt(g.ctx.Int32Type(), 0, false)
	for i, el := range ex.Elements {
		idx := llvm.ConstInt(g.ctx.Int32Type(), uint64(i), false)
		addr := g.builder.CreateGEP(slot, []llvm.Value{zero, idx}, "")
		g.builder.CreateStore(g.genExpr(st, el), addr)
	}
	return g.builder.CreateLoad(slot, "arr")
}

func (g *Generator) genEnumVariant(st *fnState, ex *ast.EnumVariantExpr) llvm.Value {
	ed, ok := g.enumDecls[ex.EnumName]
	if !ok {
		return llvm.Value{}
	}
	slot := g.builder.CreateAlloca(g.llvmType(ed), ex.EnumName)
	zero32 := llvm.ConstInt(g.ctx.Int32Type(), 0, false)
	tagAddr := g.builder.CreateGEP(slot, []llvm.Value{zero32, zero32}, "")
	g.builder.CreateStore(llvm.ConstInt(g.ctx.Int32Type(), uint64(ed.VariantIndex(ex.Variant)), false), tagAddr)

	if ex.Payload != nil {
		one32 := llvm.ConstInt(g.ctx.Int32Type(), 1, false)
		payloadAddr := g.builder.CreateGEP(slot, []llvm.Value{zero32, one32}, "")
		var variantType ast.Type
		for _, v := range ed.Variants {
			if v.Name == ex.Variant {
				variantType = v.Payload
			}
		}
		typed := g.builder.CreateBitCast(payloadAddr, llvm.PointerType(g.llvmType(variantType), 0), "")
		g.builder.CreateStore(g.genExpr(st, ex.Payload), typed)
	}
	return g.builder.CreateLoad(slot, ex.EnumName)
}

func (g *Generator) genStringInterp(st *fnState, ex *ast.StringInterpExpr) llvm.Value {
	var acc llvm.Value
	first := true
	for _, part := range ex.Parts {
		var piece llvm.Value
		if part.Expr != nil {
			piece = g.genExpr(st, part.Expr)
			if _, isString := g.exprType(st, part.Expr).(*ast.StringType); !isString {
				// Non-string interpolants need a to-string runtime
				// helper this lowering doesn't declare yet.
				piece = g.builder.CreateGlobalStringPtr("", "interp")
			}
		} else {
			piece = g.builder.CreateGlobalStringPtr(part.Literal, "interp.lit")
		}
		if first {
			acc = piece
			first = false
			continue
		}
		acc = g.concatStrings(acc, piece)
	}
	if first {
		return g.builder.CreateGlobalStringPtr("", "interp.empty")
	}
	return acc
}
