package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zen/ast"
	"zen/types"
)

func TestSubstituteReplacesBoundParameter(t *testing.T) {
	sub := types.Substitution{"T": &ast.IntType{Width: 32, Signed: true}}
	got := types.Substitute(&ast.GenericType{Name: "T"}, sub)
	assert.Equal(t, &ast.IntType{Width: 32, Signed: true}, got)
}

func TestSubstituteLeavesUnboundParameterUnchanged(t *testing.T) {
	sub := types.Substitution{"T": &ast.IntType{Width: 32, Signed: true}}
	got := types.Substitute(&ast.GenericType{Name: "U"}, sub)
	assert.Equal(t, &ast.GenericType{Name: "U"}, got)
}

func TestSubstituteRecursesIntoComposites(t *testing.T) {
	sub := types.Substitution{"T": &ast.BoolType{}}
	in := &ast.PointerType{Elem: &ast.ArrayType{Elem: &ast.GenericType{Name: "T"}}}
	got := types.Substitute(in, sub)
	assert.Equal(t, &ast.PointerType{Elem: &ast.ArrayType{Elem: &ast.BoolType{}}}, got)
}

func TestSubstituteStructFields(t *testing.T) {
	sub := types.Substitution{"T": &ast.StringType{}}
	in := &ast.StructType{Name: "Box", Fields: []ast.StructField{{Name: "value", Type: &ast.GenericType{Name: "T"}}}}
	got := types.Substitute(in, sub).(*ast.StructType)
	assert.Equal(t, &ast.StringType{}, got.Fields[0].Type)
}

func TestSubstituteFunctionType(t *testing.T) {
	sub := types.Substitution{"T": &ast.FloatType{Width: 64}}
	in := &ast.FunctionType{Args: []ast.Type{&ast.GenericType{Name: "T"}}, Return: &ast.GenericType{Name: "T"}}
	got := types.Substitute(in, sub).(*ast.FunctionType)
	assert.Equal(t, &ast.FloatType{Width: 64}, got.Args[0])
	assert.Equal(t, &ast.FloatType{Width: 64}, got.Return)
}

func TestSubstituteNilIsNil(t *testing.T) {
	assert.Nil(t, types.Substitute(nil, types.Substitution{}))
}

func TestFreeParamsFindsUnboundNames(t *testing.T) {
	in := &ast.FunctionType{
		Args:   []ast.Type{&ast.GenericType{Name: "T"}, &ast.GenericType{Name: "U"}},
		Return: &ast.PointerType{Elem: &ast.GenericType{Name: "T"}},
	}
	free := types.FreeParams(in, map[string]bool{"U": true})
	assert.ElementsMatch(t, []string{"T"}, free)
}
