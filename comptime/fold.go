// ==============================================================================================
// FILE: comptime/fold.go
// ==============================================================================================
// PACKAGE: comptime
// PURPOSE: The folding pass. Walks a program replacing every comptime-wrapped expression with
//          its evaluated literal, and runs top-level comptime blocks for their side effects
//          before erasing them. After Fold returns with no errors, no ComptimeExpr,
//          ComptimeBlockStatement, or ComptimeDecl remains anywhere in the tree.
// ==============================================================================================

package comptime

import (
	"zen/ast"
	"zen/diag"
)

// Folder drives the erasure pass over a whole program.
type Folder struct {
	interp *Interp
	bag    *diag.Bag
	safe   map[string]*ast.FunctionDecl
}

// NewFolder builds a folder that treats every function named in safe as
// comptime-callable.
func NewFolder(path string, safe map[string]*ast.FunctionDecl) *Folder {
	f := &Folder{bag: diag.NewBag(path), safe: safe}
	f.interp = NewInterp(func(name string) (*ast.FunctionDecl, bool) {
		d, ok := safe[name]
		return d, ok
	})
	return f
}

// Fold erases every comptime construct from prog in place and returns the
// accumulated diagnostics; callers should check bag.HasErrors() before
// handing the program to the type checker.
func (f *Folder) Fold(prog *ast.Program) *diag.Bag {
	kept := prog.Declarations[:0]
	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.ComptimeDecl:
			v := f.interp.EvalBlock(d.Body, NewEnv())
			if err, ok := v.(*Error); ok {
				f.bag.Add(diag.Diagnostic{Kind: diag.KindComptime, Severity: diag.SeverityError,
					Message: err.Message, Span: d.Span()})
			}
			continue
		case *ast.FunctionDecl:
			f.foldBlock(d.Body)
			kept = append(kept, d)
		case *ast.ImplDecl:
			for _, m := range d.Methods {
				f.foldBlock(m.Body)
			}
			kept = append(kept, d)
		default:
			kept = append(kept, d)
		}
	}
	prog.Declarations = kept
	return f.bag
}

func (f *Folder) foldBlock(b *ast.BlockStatement) {
	if b == nil {
		return
	}
	kept := b.Statements[:0]
	for _, s := range b.Statements {
		if cb, ok := s.(*ast.ComptimeBlockStatement); ok {
			v := f.interp.EvalBlock(cb.Body, NewEnv())
			if err, ok := v.(*Error); ok {
				f.bag.Add(diag.Diagnostic{Kind: diag.KindComptime, Severity: diag.SeverityError,
					Message: err.Message, Span: cb.Span()})
			}
			continue
		}
		f.foldStmt(s)
		kept = append(kept, s)
	}
	b.Statements = kept
}

func (f *Folder) foldStmt(s ast.Statement) {
	switch st := s.(type) {
	case *ast.ExpressionStatement:
		st.Expr = f.foldExpr(st.Expr)
	case *ast.ReturnStatement:
		st.Value = f.foldExpr(st.Value)
	case *ast.VarDeclStatement:
		st.Init = f.foldExpr(st.Init)
	case *ast.AssignStatement:
		st.Value = f.foldExpr(st.Value)
	case *ast.PointerAssignStatement:
		st.Target = f.foldExpr(st.Target)
		st.Value = f.foldExpr(st.Value)
	case *ast.LoopStatement:
		if st.Condition != nil {
			st.Condition = f.foldExpr(st.Condition)
		}
		if st.Iterable != nil {
			st.Iterable = f.foldExpr(st.Iterable)
		}
		f.foldBlock(st.Body)
	}
}

// foldExpr replaces e with its folded form when e is (or contains) a
// ComptimeExpr, recursing through composite expressions so a comptime
// wrapper nested inside, say, a struct literal field still gets erased.
func (f *Folder) foldExpr(e ast.Expression) ast.Expression {
	if e == nil {
		return nil
	}
	switch ex := e.(type) {
	case *ast.ComptimeExpr:
		inner := f.foldExpr(ex.Inner)
		v := f.interp.Eval(inner, NewEnv())
		if err, ok := v.(*Error); ok {
			f.bag.Add(diag.Diagnostic{Kind: diag.KindComptime, Severity: diag.SeverityError,
				Message: err.Message, Span: ex.Span()})
			return inner
		}
		return valueToLiteral(v)

	case *ast.BinaryExpr:
		ex.Left = f.foldExpr(ex.Left)
		ex.Right = f.foldExpr(ex.Right)
		return ex
	case *ast.UnaryExpr:
		ex.Operand = f.foldExpr(ex.Operand)
		return ex
	case *ast.CallExpr:
		ex.Callee = f.foldExpr(ex.Callee)
		for i, a := range ex.Args {
			ex.Args[i] = f.foldExpr(a)
		}
		return ex
	case *ast.FieldAccessExpr:
		ex.Object = f.foldExpr(ex.Object)
		return ex
	case *ast.IndexExpr:
		ex.Object = f.foldExpr(ex.Object)
		ex.Index = f.foldExpr(ex.Index)
		return ex
	case *ast.AddressOfExpr:
		ex.Operand = f.foldExpr(ex.Operand)
		return ex
	case *ast.DerefExpr:
		ex.Operand = f.foldExpr(ex.Operand)
		return ex
	case *ast.StructLiteralExpr:
		for i, fl := range ex.Fields {
			ex.Fields[i].Value = f.foldExpr(fl.Value)
		}
		return ex
	case *ast.ArrayLiteralExpr:
		for i, el := range ex.Elements {
			ex.Elements[i] = f.foldExpr(el)
		}
		return ex
	case *ast.EnumVariantExpr:
		if ex.Payload != nil {
			ex.Payload = f.foldExpr(ex.Payload)
		}
		return ex
	case *ast.RangeExpr:
		ex.Start = f.foldExpr(ex.Start)
		ex.End = f.foldExpr(ex.End)
		return ex
	case *ast.ConditionalExpr:
		ex.Scrutinee = f.foldExpr(ex.Scrutinee)
		for _, arm := range ex.Arms {
			if arm.Guard != nil {
				arm.Guard = f.foldExpr(arm.Guard)
			}
			arm.Body = f.foldExpr(arm.Body)
		}
		return ex
	case *ast.StringInterpExpr:
		for i, p := range ex.Parts {
			if p.Expr != nil {
				ex.Parts[i].Expr = f.foldExpr(p.Expr)
			}
		}
		return ex
	case *ast.FunctionLiteral:
		f.foldBlock(ex.Body)
		return ex
	default:
		return e
	}
}

// valueToLiteral builds the literal AST node a folded comptime Value
// erases to, recursing into arrays and structs.
func valueToLiteral(v Value) ast.Expression {
	switch val := v.(type) {
	case *IntValue:
		return &ast.IntegerLiteral{Value: val.Value}
	case *FloatValue:
		return &ast.FloatLiteral{Value: val.Value}
	case *BoolValue:
		return &ast.BoolLiteral{Value: val.Value}
	case *StringValue:
		return &ast.StringLiteral{Value: val.Value}
	case *ArrayValue:
		elements := make([]ast.Expression, len(val.Elements))
		for i, el := range val.Elements {
			elements[i] = valueToLiteral(el)
		}
		return &ast.ArrayLiteralExpr{Elements: elements}
	case *StructValue:
		fields := make([]ast.StructFieldInit, len(val.Order))
		for i, name := range val.Order {
			fields[i] = ast.StructFieldInit{Name: name, Value: valueToLiteral(val.Fields[name])}
		}
		return &ast.StructLiteralExpr{TypeName: val.Name, Fields: fields}
	default:
		return &ast.StringLiteral{Value: v.Inspect()}
	}
}
