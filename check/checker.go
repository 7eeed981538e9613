// ==============================================================================================
// FILE: check/checker.go
// ==============================================================================================
// PACKAGE: check
// PURPOSE: Type checker (C6). Walks a post-monomorphization program and verifies expression
//          types, operator rules, loop conditions, behavior conformance, pattern exhaustiveness,
//          and pointer rules, accumulating diagnostics instead of aborting at the first problem.
// ==============================================================================================

package check

import (
	"zen/ast"
	"zen/diag"
	"zen/scope"
	"zen/stdlib"
)

// Checker owns the symbol table and the declaration tables it needs to
// resolve struct/enum/behavior names while walking a program.
type Checker struct {
	bag    *diag.Bag
	scope  *scope.Table
	path   string

	structs   map[string]*ast.StructDecl
	enums     map[string]*ast.EnumDecl
	behaviors map[string]*ast.BehaviorDecl
	functions map[string]*ast.FunctionDecl
	impls     []*ast.ImplDecl

	// currentReturn is the declared return type of the function body
	// currently being checked; return statements are checked against it.
	currentReturn ast.Type

	// loops is the stack of enclosing loops, innermost last, used to
	// validate break/continue labels.
	loops []loopFrame

	// std is the @std namespace table; its entries resolve lazily as
	// field accesses on the @std root identifier are checked.
	std *stdlib.Registry
}

// NewChecker builds a checker that will report diagnostics against path.
func NewChecker(path string) *Checker {
	return &Checker{
		bag:       diag.NewBag(path),
		scope:     scope.NewTable(),
		path:      path,
		structs:   make(map[string]*ast.StructDecl),
		enums:     make(map[string]*ast.EnumDecl),
		behaviors: make(map[string]*ast.BehaviorDecl),
		functions: make(map[string]*ast.FunctionDecl),
		std:       stdlib.NewRegistry(),
	}
}

// Check walks prog and returns the accumulated diagnostic bag. Callers
// should consult bag.HasErrors() before proceeding to later stages.
func (c *Checker) Check(prog *ast.Program) *diag.Bag {
	c.registerDeclarations(prog)

	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			c.checkFunction(d)
		case *ast.ImplDecl:
			c.checkImpl(d)
		case *ast.ComptimeDecl:
			c.checkBlock(d.Body)
		}
	}
	return c.bag
}

func (c *Checker) registerDeclarations(prog *ast.Program) {
	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			c.functions[d.Name] = d
			c.scope.Insert(&scope.Symbol{Name: d.Name, Kind: scope.KindFunction, Type: functionDeclType(d), Decl: d})
		case *ast.ExternFunctionDecl:
			c.functions[d.Name] = &ast.FunctionDecl{Name: d.Name, ReturnType: d.ReturnType}
			c.scope.Insert(&scope.Symbol{Name: d.Name, Kind: scope.KindFunction, Type: &ast.FunctionType{Args: d.ParamTypes, Return: d.ReturnType}, Decl: d})
		case *ast.StructDecl:
			c.structs[d.Name] = d
			c.scope.Insert(&scope.Symbol{Name: d.Name, Kind: scope.KindStructType, Type: structDeclType(d), Decl: d})
		case *ast.EnumDecl:
			c.enums[d.Name] = d
			c.scope.Insert(&scope.Symbol{Name: d.Name, Kind: scope.KindType, Type: enumDeclType(d), Decl: d})
		case *ast.BehaviorDecl:
			c.behaviors[d.Name] = d
			c.scope.Insert(&scope.Symbol{Name: d.Name, Kind: scope.KindBehavior, Decl: d})
		case *ast.ImplDecl:
			c.impls = append(c.impls, d)
		}
	}
}

func functionDeclType(d *ast.FunctionDecl) *ast.FunctionType {
	args := make([]ast.Type, len(d.Params))
	for i, p := range d.Params {
		args[i] = p.Type
	}
	return &ast.FunctionType{Args: args, Return: d.ReturnType}
}

func structDeclType(d *ast.StructDecl) *ast.StructType {
	fields := make([]ast.StructField, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = ast.StructField{Name: f.Name, Type: f.Type}
	}
	return &ast.StructType{Name: d.Name, Fields: fields}
}

func enumDeclType(d *ast.EnumDecl) *ast.EnumType {
	variants := make([]ast.EnumVariant, len(d.Variants))
	for i, v := range d.Variants {
		variants[i] = ast.EnumVariant{Name: v.Name, Payload: v.Payload}
	}
	return &ast.EnumType{Name: d.Name, Variants: variants}
}

func (c *Checker) checkFunction(d *ast.FunctionDecl) {
	if d.IsGeneric() {
		// Generic templates are checked after monomorphization produces
		// concrete instances; the template itself carries unbound
		// parameters that would falsely fail field/operator checks.
		return
	}
	c.scope.Enter()
	defer c.scope.Exit()

	for _, p := range d.Params {
		c.scope.Insert(&scope.Symbol{Name: p.Name, Kind: scope.KindValue, Type: p.Type, Mutable: false})
	}

	prevReturn := c.currentReturn
	c.currentReturn = d.ReturnType
	c.checkBlock(d.Body)
	c.currentReturn = prevReturn
}
