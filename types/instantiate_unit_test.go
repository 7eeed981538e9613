package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zen/ast"
	"zen/types"
)

func identityDecl() *ast.FunctionDecl {
	return &ast.FunctionDecl{
		Name:       "identity",
		TypeParams: []string{"T"},
		Params:     []ast.Param{{Name: "x", Type: &ast.GenericType{Name: "T"}}},
		ReturnType: &ast.GenericType{Name: "T"},
		Body: &ast.BlockStatement{Statements: []ast.Statement{
			&ast.ExpressionStatement{Expr: &ast.Identifier{Name: "x"}},
		}},
	}
}

func TestMangleJoinsCanonicalTypeNames(t *testing.T) {
	name := types.Mangle("identity", []ast.Type{&ast.IntType{Width: 32, Signed: true}})
	assert.Equal(t, "identity_i32", name)
}

func TestMangleWithNoArgsReturnsBaseName(t *testing.T) {
	assert.Equal(t, "identity", types.Mangle("identity", nil))
}

func TestInstantiateFunctionProducesMangledClone(t *testing.T) {
	reg := types.NewRegistry()
	reg.RegisterFunction(identityDecl())

	inst, err := reg.InstantiateFunction("identity", []ast.Type{&ast.IntType{Width: 32, Signed: true}})
	assert.NoError(t, err)
	assert.Equal(t, "identity_i32", inst.Name)
	assert.Empty(t, inst.TypeParams)
	assert.Equal(t, &ast.IntType{Width: 32, Signed: true}, inst.Params[0].Type)
	assert.Equal(t, &ast.IntType{Width: 32, Signed: true}, inst.ReturnType)
}

func TestInstantiateFunctionCachesByArgs(t *testing.T) {
	reg := types.NewRegistry()
	reg.RegisterFunction(identityDecl())

	first, err := reg.InstantiateFunction("identity", []ast.Type{&ast.IntType{Width: 32, Signed: true}})
	assert.NoError(t, err)
	second, err := reg.InstantiateFunction("identity", []ast.Type{&ast.IntType{Width: 32, Signed: true}})
	assert.NoError(t, err)
	assert.Same(t, first, second)

	third, err := reg.InstantiateFunction("identity", []ast.Type{&ast.FloatType{Width: 64}})
	assert.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, "identity_f64", third.Name)
}

func TestInstantiateFunctionArityMismatch(t *testing.T) {
	reg := types.NewRegistry()
	reg.RegisterFunction(identityDecl())

	_, err := reg.InstantiateFunction("identity", nil)
	assert.Error(t, err)
	var arityErr *types.ArityMismatchError
	assert.ErrorAs(t, err, &arityErr)
}

func TestInstantiateUnknownDeclaration(t *testing.T) {
	reg := types.NewRegistry()
	_, err := reg.InstantiateFunction("nope", []ast.Type{&ast.BoolType{}})
	assert.Error(t, err)
	var unknownErr *types.UnknownDeclError
	assert.ErrorAs(t, err, &unknownErr)
}

func TestInstantiateStructSubstitutesFieldTypes(t *testing.T) {
	reg := types.NewRegistry()
	reg.RegisterStruct(&ast.StructDecl{
		Name:       "Box",
		TypeParams: []string{"T"},
		Fields:     []ast.Param{{Name: "value", Type: &ast.GenericType{Name: "T"}}},
	})

	inst, err := reg.InstantiateStruct("Box", []ast.Type{&ast.StringType{}})
	assert.NoError(t, err)
	assert.Equal(t, "Box_string", inst.Name)
	assert.Equal(t, &ast.StringType{}, inst.Fields[0].Type)
}

func TestInstantiateEnumSubstitutesPayloadTypes(t *testing.T) {
	reg := types.NewRegistry()
	reg.RegisterEnum(&ast.EnumDecl{
		Name:       "Option",
		TypeParams: []string{"T"},
		Variants: []ast.EnumVariantDecl{
			{Name: "Some", Payload: &ast.GenericType{Name: "T"}},
			{Name: "None"},
		},
	})

	inst, err := reg.InstantiateEnum("Option", []ast.Type{&ast.IntType{Width: 64, Signed: true}})
	assert.NoError(t, err)
	assert.Equal(t, "Option_i64", inst.Name)
	assert.Equal(t, &ast.IntType{Width: 64, Signed: true}, inst.Variants[0].Payload)
	assert.Nil(t, inst.Variants[1].Payload)
}

func TestInstantiateFunctionDoesNotMutateTemplate(t *testing.T) {
	reg := types.NewRegistry()
	template := identityDecl()
	reg.RegisterFunction(template)

	_, err := reg.InstantiateFunction("identity", []ast.Type{&ast.IntType{Width: 32, Signed: true}})
	assert.NoError(t, err)
	assert.Equal(t, "identity", template.Name)
	assert.Equal(t, []string{"T"}, template.TypeParams)
	assert.IsType(t, &ast.GenericType{}, template.ReturnType)
}
