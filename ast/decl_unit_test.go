package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zen/ast"
)

func TestFunctionDeclStringWithTypeParams(t *testing.T) {
	d := &ast.FunctionDecl{
		Name:       "identity",
		TypeParams: []string{"T"},
		Params:     []ast.Param{{Name: "x", Type: &ast.GenericType{Name: "T"}}},
		ReturnType: &ast.GenericType{Name: "T"},
		Body:       &ast.BlockStatement{},
	}
	s := d.String()
	assert.Contains(t, s, "identity<T>")
	assert.Contains(t, s, "(x: T)")
	assert.True(t, d.IsGeneric())
}

func TestFunctionDeclStringOmitsVoidReturn(t *testing.T) {
	d := &ast.FunctionDecl{Name: "main", ReturnType: &ast.VoidType{}, Body: &ast.BlockStatement{}}
	assert.Equal(t, "main = () {  }", d.String())
}

func TestExternFunctionDeclStringVariadic(t *testing.T) {
	d := &ast.ExternFunctionDecl{
		Name:       "printf",
		ParamTypes: []ast.Type{&ast.PointerType{Elem: &ast.IntType{Width: 8, Signed: true}}},
		ReturnType: &ast.IntType{Width: 32, Signed: true},
		Variadic:   true,
	}
	assert.Equal(t, "printf = extern (*i8, ...) i32", d.String())
}

func TestStructDeclString(t *testing.T) {
	d := &ast.StructDecl{
		Name: "Point",
		Fields: []ast.Param{
			{Name: "x", Type: &ast.IntType{Width: 64, Signed: true}},
			{Name: "y", Type: &ast.IntType{Width: 64, Signed: true}},
		},
	}
	assert.Equal(t, "Point = { x: i64, y: i64 }", d.String())
	assert.False(t, d.IsGeneric())
}

func TestEnumDeclStringMixedVariants(t *testing.T) {
	d := &ast.EnumDecl{
		Name: "Shape",
		Variants: []ast.EnumVariantDecl{
			{Name: "Circle", Payload: &ast.FloatType{Width: 64}},
			{Name: "Point"},
		},
	}
	assert.Equal(t, "Shape = | Circle(f64) | Point", d.String())
}

func TestBehaviorDeclString(t *testing.T) {
	d := &ast.BehaviorDecl{
		Name: "Drawable",
		Methods: []ast.MethodSig{
			{Name: "draw", ReturnType: &ast.VoidType{}},
		},
	}
	assert.Equal(t, "Drawable = behavior { draw }", d.String())
}

func TestImplDeclStringWithAndWithoutBehavior(t *testing.T) {
	withBehavior := &ast.ImplDecl{TargetType: "Circle", Behavior: "Drawable"}
	assert.Equal(t, "Circle.impl = Drawable", withBehavior.String())

	bare := &ast.ImplDecl{TargetType: "Circle"}
	assert.Equal(t, "Circle.impl", bare.String())
}

func TestComptimeDeclString(t *testing.T) {
	d := &ast.ComptimeDecl{Body: &ast.BlockStatement{}}
	assert.Equal(t, "comptime {  }", d.String())
}
