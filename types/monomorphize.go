// ==============================================================================================
// FILE: types/monomorphize.go
// ==============================================================================================
// PACKAGE: types
// PURPOSE: Monomorphization pass (C5): finds every use of a generic declaration, demands its
//          instantiation, rewrites the use-site to the mangled concrete name, and iterates to a
//          fixpoint since an instantiated body may itself demand further instantiations.
// ==============================================================================================

package types

import "zen/ast"

// Monomorphize rewrites prog in place: every call or struct literal that
// supplies type arguments to a generic function/struct is replaced with a
// reference to its concrete instantiation, and the instantiated
// declarations are appended to the program. Declared types of variables
// and enum variant expressions are not rewritten. It returns the number of
// fixpoint iterations it ran, mostly useful for tests asserting
// termination behavior.
func Monomorphize(prog *ast.Program, reg *Registry) (int, error) {
	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			if d.IsGeneric() {
				reg.RegisterFunction(d)
			}
		case *ast.StructDecl:
			if d.IsGeneric() {
				reg.RegisterStruct(d)
			}
		case *ast.EnumDecl:
			if d.IsGeneric() {
				reg.RegisterEnum(d)
			}
		}
	}

	iterations := 0
	for {
		iterations++
		before := len(reg.instFunctions) + len(reg.instStructs) + len(reg.instEnums)

		for _, decl := range prog.Declarations {
			if err := monomorphizeDecl(decl, reg); err != nil {
				return iterations, err
			}
		}
		for _, d := range reg.InstantiatedFunctions() {
			if err := monomorphizeBlock(d.Body, reg); err != nil {
				return iterations, err
			}
		}

		after := len(reg.instFunctions) + len(reg.instStructs) + len(reg.instEnums)
		if after == before {
			break
		}
	}

	splice(prog, reg)
	dropGenericTemplates(prog)
	return iterations, nil
}

// splice appends every instantiated declaration produced during the pass
// to the program, so the remaining stages see them as ordinary concrete
// declarations.
func splice(prog *ast.Program, reg *Registry) {
	for _, d := range reg.InstantiatedStructs() {
		prog.Declarations = append(prog.Declarations, d)
	}
	for _, d := range reg.InstantiatedEnums() {
		prog.Declarations = append(prog.Declarations, d)
	}
	for _, d := range reg.InstantiatedFunctions() {
		prog.Declarations = append(prog.Declarations, d)
	}
}

// dropGenericTemplates removes the original generic declarations: after
// monomorphization nothing may call them directly, per the invariant that
// no generic(...) node may reference a declared type parameter once this
// pass completes.
func dropGenericTemplates(prog *ast.Program) {
	kept := prog.Declarations[:0]
	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			if d.IsGeneric() {
				continue
			}
		case *ast.StructDecl:
			if d.IsGeneric() {
				continue
			}
		case *ast.EnumDecl:
			if d.IsGeneric() {
				continue
			}
		}
		kept = append(kept, decl)
	}
	prog.Declarations = kept
}

func monomorphizeDecl(decl ast.Declaration, reg *Registry) error {
	switch d := decl.(type) {
	case *ast.FunctionDecl:
		if d.IsGeneric() {
			return nil
		}
		return monomorphizeBlock(d.Body, reg)
	case *ast.ImplDecl:
		for _, m := range d.Methods {
			if err := monomorphizeBlock(m.Body, reg); err != nil {
				return err
			}
		}
	case *ast.ComptimeDecl:
		return monomorphizeBlock(d.Body, reg)
	}
	return nil
}

func monomorphizeBlock(b *ast.BlockStatement, reg *Registry) error {
	if b == nil {
		return nil
	}
	for i, s := range b.Statements {
		rewritten, err := monomorphizeStmt(s, reg)
		if err != nil {
			return err
		}
		b.Statements[i] = rewritten
	}
	return nil
}

func monomorphizeStmt(s ast.Statement, reg *Registry) (ast.Statement, error) {
	var err error
	switch st := s.(type) {
	case *ast.ExpressionStatement:
		st.Expr, err = monomorphizeExpr(st.Expr, reg)
	case *ast.ReturnStatement:
		st.Value, err = monomorphizeExpr(st.Value, reg)
	case *ast.VarDeclStatement:
		st.Init, err = monomorphizeExpr(st.Init, reg)
	case *ast.AssignStatement:
		st.Value, err = monomorphizeExpr(st.Value, reg)
	case *ast.PointerAssignStatement:
		st.Value, err = monomorphizeExpr(st.Value, reg)
	case *ast.LoopStatement:
		if st.Condition != nil {
			st.Condition, err = monomorphizeExpr(st.Condition, reg)
		}
		if err == nil && st.Iterable != nil {
			st.Iterable, err = monomorphizeExpr(st.Iterable, reg)
		}
		if err == nil {
			err = monomorphizeBlock(st.Body, reg)
		}
	case *ast.ComptimeBlockStatement:
		err = monomorphizeBlock(st.Body, reg)
	}
	return s, err
}

// monomorphizeExpr rewrites a generic call/literal in place and returns the
// (possibly replaced) expression. Most expression kinds only need their
// children visited; CallExpr and StructLiteralExpr are the two shapes that
// can themselves demand an instantiation.
func monomorphizeExpr(e ast.Expression, reg *Registry) (ast.Expression, error) {
	if e == nil {
		return nil, nil
	}
	var err error
	switch ex := e.(type) {
	case *ast.BinaryExpr:
		if ex.Left, err = monomorphizeExpr(ex.Left, reg); err != nil {
			return e, err
		}
		ex.Right, err = monomorphizeExpr(ex.Right, reg)

	case *ast.UnaryExpr:
		ex.Operand, err = monomorphizeExpr(ex.Operand, reg)

	case *ast.CallExpr:
		for i, a := range ex.Args {
			if ex.Args[i], err = monomorphizeExpr(a, reg); err != nil {
				return e, err
			}
		}
		if len(ex.TypeArgs) > 0 {
			if callee, ok := ex.Callee.(*ast.Identifier); ok {
				inst, ierr := reg.InstantiateFunction(callee.Name, ex.TypeArgs)
				if ierr == nil {
					ex.Callee = &ast.Identifier{Name: inst.Name}
					ex.TypeArgs = nil
				}
				// Not a registered generic (e.g. a monomorphic function called
				// with explicit type arguments for inference hints only) is not
				// an error: leave the call untouched.
			}
		}

	case *ast.FieldAccessExpr:
		ex.Object, err = monomorphizeExpr(ex.Object, reg)

	case *ast.IndexExpr:
		if ex.Object, err = monomorphizeExpr(ex.Object, reg); err != nil {
			return e, err
		}
		ex.Index, err = monomorphizeExpr(ex.Index, reg)

	case *ast.AddressOfExpr:
		ex.Operand, err = monomorphizeExpr(ex.Operand, reg)

	case *ast.DerefExpr:
		ex.Operand, err = monomorphizeExpr(ex.Operand, reg)

	case *ast.StructLiteralExpr:
		for i, f := range ex.Fields {
			if ex.Fields[i].Value, err = monomorphizeExpr(f.Value, reg); err != nil {
				return e, err
			}
		}
		if len(ex.TypeArgs) > 0 {
			inst, ierr := reg.InstantiateStruct(ex.TypeName, ex.TypeArgs)
			if ierr == nil {
				ex.TypeName = inst.Name
				ex.TypeArgs = nil
			}
		}

	case *ast.ArrayLiteralExpr:
		for i, el := range ex.Elements {
			if ex.Elements[i], err = monomorphizeExpr(el, reg); err != nil {
				return e, err
			}
		}

	case *ast.EnumVariantExpr:
		ex.Payload, err = monomorphizeExpr(ex.Payload, reg)

	case *ast.RangeExpr:
		if ex.Start, err = monomorphizeExpr(ex.Start, reg); err != nil {
			return e, err
		}
		ex.End, err = monomorphizeExpr(ex.End, reg)

	case *ast.ConditionalExpr:
		if ex.Scrutinee, err = monomorphizeExpr(ex.Scrutinee, reg); err != nil {
			return e, err
		}
		for _, arm := range ex.Arms {
			if arm.Guard != nil {
				if arm.Guard, err = monomorphizeExpr(arm.Guard, reg); err != nil {
					return e, err
				}
			}
			if arm.Body, err = monomorphizeExpr(arm.Body, reg); err != nil {
				return e, err
			}
		}

	case *ast.StringInterpExpr:
		for i, p := range ex.Parts {
			if p.Expr != nil {
				if ex.Parts[i].Expr, err = monomorphizeExpr(p.Expr, reg); err != nil {
					return e, err
				}
			}
		}

	case *ast.ComptimeExpr:
		ex.Inner, err = monomorphizeExpr(ex.Inner, reg)

	case *ast.FunctionLiteral:
		err = monomorphizeBlock(ex.Body, reg)
	}
	return e, err
}
