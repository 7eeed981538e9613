// ==============================================================================================
// FILE: irgen/function.go
// ==============================================================================================
// PACKAGE: irgen
// PURPOSE: Function body lowering: the entry-block alloca-and-store parameter prelude, grounded
//          directly on the reference vslc compiler's genFuncBody, followed by statement lowering
//          and a default return for a block that falls off the end without one.
// ==============================================================================================

package irgen

import (
	"tinygo.org/x/go-llvm"

	"zen/ast"
)

func (g *Generator) genFunction(name string, d *ast.FunctionDecl) {
	fn, ok := g.functions[name]
	if !ok {
		fn = g.declareFunction(name, functionDeclType(d))
	}

	entry := llvm.AddBasicBlock(fn, "entry")
	g.builder.SetInsertPointAtEnd(entry)

	st := &fnState{fn: fn, env: newLocalEnv(), retType: d.ReturnType}

	for i, p := range d.Params {
		alloc := g.builder.CreateAlloca(g.llvmType(p.Type), p.Name)
		g.builder.CreateStore(fn.Param(i), alloc)
		st.env.define(p.Name, local{ptr: alloc, typ: p.Type})
	}

	terminated := g.genBlock(st, d.Body)
	if terminated {
		return
	}

	if _, isVoid := d.ReturnType.(*ast.VoidType); isVoid || d.ReturnType == nil {
		g.builder.CreateRetVoid()
		return
	}
	g.builder.CreateRet(llvm.ConstNull(g.llvmType(d.ReturnType)))
}
