package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zen/ast"
	"zen/types"
)

// program: identity<T> = (x: T) T { x }
//          main = () i64 { identity<i64>(42) }
func genericProgram() *ast.Program {
	identity := identityDecl()
	callIdentity := &ast.CallExpr{
		Callee:   &ast.Identifier{Name: "identity"},
		TypeArgs: []ast.Type{&ast.IntType{Width: 64, Signed: true}},
		Args:     []ast.Expression{&ast.IntegerLiteral{Value: 42}},
	}
	main := &ast.FunctionDecl{
		Name:       "main",
		ReturnType: &ast.IntType{Width: 64, Signed: true},
		Body: &ast.BlockStatement{Statements: []ast.Statement{
			&ast.ExpressionStatement{Expr: callIdentity},
		}},
	}
	return &ast.Program{Declarations: []ast.Declaration{identity, main}}
}

func TestMonomorphizeRewritesCallSiteToMangledName(t *testing.T) {
	prog := genericProgram()
	reg := types.NewRegistry()

	_, err := types.Monomorphize(prog, reg)
	assert.NoError(t, err)

	var main *ast.FunctionDecl
	for _, d := range prog.Declarations {
		if fd, ok := d.(*ast.FunctionDecl); ok && fd.Name == "main" {
			main = fd
		}
	}
	assert.NotNil(t, main)

	call := main.Body.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.CallExpr)
	assert.Equal(t, "identity_i64", call.Callee.(*ast.Identifier).Name)
	assert.Empty(t, call.TypeArgs)
}

func TestMonomorphizeDropsGenericTemplate(t *testing.T) {
	prog := genericProgram()
	reg := types.NewRegistry()
	_, err := types.Monomorphize(prog, reg)
	assert.NoError(t, err)

	for _, d := range prog.Declarations {
		if fd, ok := d.(*ast.FunctionDecl); ok {
			assert.NotEqual(t, "identity", fd.Name, "generic template must not survive monomorphization")
		}
	}
}

func TestMonomorphizeSplicesInstantiatedDeclaration(t *testing.T) {
	prog := genericProgram()
	reg := types.NewRegistry()
	_, err := types.Monomorphize(prog, reg)
	assert.NoError(t, err)

	found := false
	for _, d := range prog.Declarations {
		if fd, ok := d.(*ast.FunctionDecl); ok && fd.Name == "identity_i64" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMonomorphizeNoGenericProgramIsUnchanged(t *testing.T) {
	main := &ast.FunctionDecl{Name: "main", ReturnType: &ast.VoidType{}, Body: &ast.BlockStatement{}}
	prog := &ast.Program{Declarations: []ast.Declaration{main}}
	reg := types.NewRegistry()

	iterations, err := types.Monomorphize(prog, reg)
	assert.NoError(t, err)
	assert.Equal(t, 1, iterations)
	assert.Len(t, prog.Declarations, 1)
}
