package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zen/ast"
)

func TestIntTypeString(t *testing.T) {
	assert.Equal(t, "i32", (&ast.IntType{Width: 32, Signed: true}).String())
	assert.Equal(t, "u8", (&ast.IntType{Width: 8, Signed: false}).String())
}

func TestCompositeTypeStrings(t *testing.T) {
	assert.Equal(t, "*i64", (&ast.PointerType{Elem: &ast.IntType{Width: 64, Signed: true}}).String())
	assert.Equal(t, "[]f64", (&ast.ArrayType{Elem: &ast.FloatType{Width: 64}}).String())
	assert.Equal(t, "[3]bool", (&ast.FixedArrayType{Elem: &ast.BoolType{}, Size: 3}).String())
}

func TestStructTypeFieldIndex(t *testing.T) {
	st := &ast.StructType{Name: "Point", Fields: []ast.StructField{
		{Name: "x", Type: &ast.IntType{Width: 64, Signed: true}},
		{Name: "y", Type: &ast.IntType{Width: 64, Signed: true}},
	}}
	assert.Equal(t, 0, st.FieldIndex("x"))
	assert.Equal(t, 1, st.FieldIndex("y"))
	assert.Equal(t, -1, st.FieldIndex("z"))
}

func TestEnumTypeVariantIndex(t *testing.T) {
	et := &ast.EnumType{Name: "Shape", Variants: []ast.EnumVariant{
		{Name: "Circle", Payload: &ast.FloatType{Width: 64}},
		{Name: "Point"},
	}}
	assert.Equal(t, 0, et.VariantIndex("Circle"))
	assert.Equal(t, 1, et.VariantIndex("Point"))
	assert.Equal(t, -1, et.VariantIndex("Square"))
}

func TestFunctionTypeString(t *testing.T) {
	ft := &ast.FunctionType{Args: []ast.Type{&ast.IntType{Width: 32, Signed: true}}, Return: &ast.BoolType{}}
	assert.Equal(t, "fn(i32) bool", ft.String())
}

func TestGenericTypeString(t *testing.T) {
	gt := &ast.GenericType{Name: "List", Args: []ast.Type{&ast.IntType{Width: 32, Signed: true}}}
	assert.Equal(t, "List<i32>", gt.String())

	bare := &ast.GenericType{Name: "T"}
	assert.Equal(t, "T", bare.String())
}

func TestMangleSuffixCollapsesIllegalCharacters(t *testing.T) {
	gt := &ast.GenericType{Name: "List", Args: []ast.Type{&ast.IntType{Width: 32, Signed: true}}}
	assert.Equal(t, "List_i32", ast.MangleSuffix(gt))
}

func TestEqualStructuralAndNominal(t *testing.T) {
	assert.True(t, ast.Equal(&ast.IntType{Width: 32, Signed: true}, &ast.IntType{Width: 32, Signed: true}))
	assert.False(t, ast.Equal(&ast.IntType{Width: 32, Signed: true}, &ast.IntType{Width: 64, Signed: true}))
	assert.False(t, ast.Equal(&ast.IntType{Width: 32, Signed: true}, &ast.IntType{Width: 32, Signed: false}))

	assert.True(t, ast.Equal(&ast.StructType{Name: "Point"}, &ast.StructType{Name: "Point"}))
	assert.False(t, ast.Equal(&ast.StructType{Name: "Point"}, &ast.StructType{Name: "Vector"}))

	assert.True(t, ast.Equal(
		&ast.PointerType{Elem: &ast.IntType{Width: 8, Signed: true}},
		&ast.PointerType{Elem: &ast.IntType{Width: 8, Signed: true}},
	))

	assert.False(t, ast.Equal(nil, &ast.BoolType{}))
	assert.True(t, ast.Equal(nil, nil))
}

func TestEqualFunctionTypeArity(t *testing.T) {
	a := &ast.FunctionType{Args: []ast.Type{&ast.IntType{Width: 32, Signed: true}}, Return: &ast.VoidType{}}
	b := &ast.FunctionType{Args: []ast.Type{}, Return: &ast.VoidType{}}
	assert.False(t, ast.Equal(a, b))
}
