package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zen/ast"
)

func TestLiteralPatternString(t *testing.T) {
	p := &ast.LiteralPattern{Value: &ast.IntegerLiteral{Value: 3}}
	assert.Equal(t, "3", p.String())
}

func TestWildcardPatternString(t *testing.T) {
	assert.Equal(t, "_", (&ast.WildcardPattern{}).String())
}

func TestIdentPatternString(t *testing.T) {
	p := &ast.IdentPattern{Name: "x"}
	assert.Equal(t, "x", p.String())
}

func TestEnumVariantPatternString(t *testing.T) {
	bare := &ast.EnumVariantPattern{Variant: "None"}
	assert.Equal(t, ".None", bare.String())

	withBinding := &ast.EnumVariantPattern{Variant: "Some", Binding: "v"}
	assert.Equal(t, ".Some -> v", withBinding.String())

	nested := &ast.EnumVariantPattern{Variant: "Circle", Inner: &ast.IdentPattern{Name: "r"}}
	assert.Equal(t, ".Circle(r)", nested.String())
}

func TestStructPatternString(t *testing.T) {
	p := &ast.StructPattern{Name: "Point", Fields: map[string]ast.Pattern{
		"x": &ast.IdentPattern{Name: "x"},
	}}
	assert.Equal(t, "Point { x: x }", p.String())
}

func TestRangePatternString(t *testing.T) {
	excl := &ast.RangePattern{Start: &ast.IntegerLiteral{Value: 0}, End: &ast.IntegerLiteral{Value: 5}}
	assert.Equal(t, "0..5", excl.String())

	incl := &ast.RangePattern{Start: &ast.IntegerLiteral{Value: 0}, End: &ast.IntegerLiteral{Value: 5}, Inclusive: true}
	assert.Equal(t, "0..=5", incl.String())
}

func TestOrPatternString(t *testing.T) {
	p := &ast.OrPattern{Alternatives: []ast.Pattern{
		&ast.LiteralPattern{Value: &ast.IntegerLiteral{Value: 1}},
		&ast.LiteralPattern{Value: &ast.IntegerLiteral{Value: 2}},
	}}
	assert.Equal(t, "1 | 2", p.String())
}
