package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zen/ast"
)

func TestBlockStatementString(t *testing.T) {
	b := &ast.BlockStatement{Statements: []ast.Statement{
		&ast.ExpressionStatement{Expr: ident("a")},
	}}
	assert.Equal(t, "{ a; }", b.String())
}

func TestReturnStatementStringWithAndWithoutValue(t *testing.T) {
	assert.Equal(t, "return", (&ast.ReturnStatement{}).String())
	assert.Equal(t, "return x", (&ast.ReturnStatement{Value: ident("x")}).String())
}

func TestDeclKindStringAndIsMutable(t *testing.T) {
	cases := []struct {
		kind      ast.DeclKind
		wantStr   string
		wantMut   bool
	}{
		{ast.InferredImmutable, ":=", false},
		{ast.InferredMutable, "::=", true},
		{ast.ExplicitImmutable, ": T =", false},
		{ast.ExplicitMutable, ":: T =", true},
	}
	for _, c := range cases {
		assert.Equal(t, c.wantStr, c.kind.String())
		assert.Equal(t, c.wantMut, c.kind.IsMutable())
	}
}

func TestVarDeclStatementString(t *testing.T) {
	s := &ast.VarDeclStatement{Name: "x", Init: &ast.IntegerLiteral{Value: 5}, Kind: ast.InferredImmutable}
	assert.Equal(t, "x := 5", s.String())
}

func TestAssignStatementString(t *testing.T) {
	s := &ast.AssignStatement{Name: "x", Value: &ast.IntegerLiteral{Value: 5}}
	assert.Equal(t, "x = 5", s.String())
}

func TestPointerAssignStatementString(t *testing.T) {
	s := &ast.PointerAssignStatement{Target: ident("p"), Value: &ast.IntegerLiteral{Value: 1}}
	assert.Equal(t, "*p = 1", s.String())
}

func TestLoopStatementStringVariants(t *testing.T) {
	inf := &ast.LoopStatement{Kind: ast.LoopInfinite, Body: &ast.BlockStatement{}}
	assert.Equal(t, "loop {  }", inf.String())

	cond := &ast.LoopStatement{Kind: ast.LoopCondition, Condition: ident("ok"), Body: &ast.BlockStatement{}}
	assert.Equal(t, "loop ok {  }", cond.String())

	iter := &ast.LoopStatement{Kind: ast.LoopIterator, BoundVar: "i", Iterable: ident("xs"), Body: &ast.BlockStatement{}}
	assert.Equal(t, "loop i in xs {  }", iter.String())

	labeled := &ast.LoopStatement{Kind: ast.LoopInfinite, Label: "outer", Body: &ast.BlockStatement{}}
	assert.Equal(t, "loop outer: {  }", labeled.String())
}

func TestBreakContinueStatementString(t *testing.T) {
	assert.Equal(t, "break", (&ast.BreakStatement{}).String())
	assert.Equal(t, "break outer", (&ast.BreakStatement{Label: "outer"}).String())
	assert.Equal(t, "continue", (&ast.ContinueStatement{}).String())
	assert.Equal(t, "continue outer", (&ast.ContinueStatement{Label: "outer"}).String())
}

func TestComptimeBlockStatementString(t *testing.T) {
	s := &ast.ComptimeBlockStatement{Body: &ast.BlockStatement{}}
	assert.Equal(t, "comptime {  }", s.String())
}

func TestParamsStringJoinsWithTypes(t *testing.T) {
	params := []ast.Param{
		{Name: "x", Type: &ast.IntType{Width: 32, Signed: true}},
		{Name: "y", Type: &ast.FloatType{Width: 64}},
	}
	fn := &ast.FunctionLiteral{Params: params, ReturnType: &ast.VoidType{}, Body: &ast.BlockStatement{}}
	assert.Equal(t, "(x: i32, y: f64) {  }", fn.String())
}
