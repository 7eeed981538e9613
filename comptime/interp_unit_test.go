package comptime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zen/ast"
	"zen/comptime"
)

func intLit(n int64) *ast.IntegerLiteral { return &ast.IntegerLiteral{Value: n} }

func noSafe(string) (*ast.FunctionDecl, bool) { return nil, false }

func TestEvalIntegerArithmetic(t *testing.T) {
	interp := comptime.NewInterp(noSafe)
	expr := &ast.BinaryExpr{Op: "+", Left: intLit(2), Right: intLit(3)}

	v := interp.Eval(expr, comptime.NewEnv())

	iv, ok := v.(*comptime.IntValue)
	assert.True(t, ok)
	assert.Equal(t, int64(5), iv.Value)
}

func TestEvalDivisionByZeroIsError(t *testing.T) {
	interp := comptime.NewInterp(noSafe)
	expr := &ast.BinaryExpr{Op: "/", Left: intLit(1), Right: intLit(0)}

	v := interp.Eval(expr, comptime.NewEnv())

	_, ok := v.(*comptime.Error)
	assert.True(t, ok)
}

func TestEvalMixedTypeArithmeticIsError(t *testing.T) {
	interp := comptime.NewInterp(noSafe)
	expr := &ast.BinaryExpr{Op: "+", Left: intLit(1), Right: &ast.FloatLiteral{Value: 1.5}}

	v := interp.Eval(expr, comptime.NewEnv())

	_, ok := v.(*comptime.Error)
	assert.True(t, ok)
}

func TestEvalStringConcatenation(t *testing.T) {
	interp := comptime.NewInterp(noSafe)
	expr := &ast.BinaryExpr{Op: "+", Left: &ast.StringLiteral{Value: "a"}, Right: &ast.StringLiteral{Value: "b"}}

	v := interp.Eval(expr, comptime.NewEnv())

	sv, ok := v.(*comptime.StringValue)
	assert.True(t, ok)
	assert.Equal(t, "ab", sv.Value)
}

func TestEvalRangeEnumeratesExclusiveEnd(t *testing.T) {
	interp := comptime.NewInterp(noSafe)
	expr := &ast.RangeExpr{Start: intLit(0), End: intLit(3)}

	v := interp.Eval(expr, comptime.NewEnv())

	arr, ok := v.(*comptime.ArrayValue)
	assert.True(t, ok)
	assert.Len(t, arr.Elements, 3)
	assert.Equal(t, int64(0), arr.Elements[0].(*comptime.IntValue).Value)
	assert.Equal(t, int64(2), arr.Elements[2].(*comptime.IntValue).Value)
}

func TestEvalRangeInclusiveIncludesEnd(t *testing.T) {
	interp := comptime.NewInterp(noSafe)
	expr := &ast.RangeExpr{Start: intLit(0), End: intLit(3), Inclusive: true}

	v := interp.Eval(expr, comptime.NewEnv())

	arr := v.(*comptime.ArrayValue)
	assert.Len(t, arr.Elements, 4)
}

func TestEvalIdentifierLookup(t *testing.T) {
	interp := comptime.NewInterp(noSafe)
	env := comptime.NewEnv()
	env.Set("x", &comptime.IntValue{Width: 64, Signed: true, Value: 7})

	v := interp.Eval(&ast.Identifier{Name: "x"}, env)

	assert.Equal(t, int64(7), v.(*comptime.IntValue).Value)
}

func TestEvalUndefinedIdentifierIsError(t *testing.T) {
	interp := comptime.NewInterp(noSafe)

	v := interp.Eval(&ast.Identifier{Name: "missing"}, comptime.NewEnv())

	_, ok := v.(*comptime.Error)
	assert.True(t, ok)
}

func TestEvalBlockBindingsPersistAcrossStatements(t *testing.T) {
	interp := comptime.NewInterp(noSafe)
	block := &ast.BlockStatement{Statements: []ast.Statement{
		&ast.VarDeclStatement{Name: "x", Init: intLit(10), Kind: ast.InferredImmutable},
		&ast.ReturnStatement{Value: &ast.BinaryExpr{Op: "+", Left: &ast.Identifier{Name: "x"}, Right: intLit(5)}},
	}}

	v := interp.EvalBlock(block, comptime.NewEnv())

	assert.Equal(t, int64(15), v.(*comptime.IntValue).Value)
}

func TestEvalCallToSafeFunction(t *testing.T) {
	double := &ast.FunctionDecl{
		Name:       "double",
		Params:     []ast.Param{{Name: "n", Type: &ast.IntType{Width: 64, Signed: true}}},
		ReturnType: &ast.IntType{Width: 64, Signed: true},
		Body: &ast.BlockStatement{Statements: []ast.Statement{
			&ast.ReturnStatement{Value: &ast.BinaryExpr{Op: "*", Left: &ast.Identifier{Name: "n"}, Right: intLit(2)}},
		}},
	}
	interp := comptime.NewInterp(func(name string) (*ast.FunctionDecl, bool) {
		if name == "double" {
			return double, true
		}
		return nil, false
	})
	call := &ast.CallExpr{Callee: &ast.Identifier{Name: "double"}, Args: []ast.Expression{intLit(21)}}

	v := interp.Eval(call, comptime.NewEnv())

	assert.Equal(t, int64(42), v.(*comptime.IntValue).Value)
}

func TestEvalCallToUnsafeFunctionIsError(t *testing.T) {
	interp := comptime.NewInterp(noSafe)
	call := &ast.CallExpr{Callee: &ast.Identifier{Name: "printf"}, Args: nil}

	v := interp.Eval(call, comptime.NewEnv())

	_, ok := v.(*comptime.Error)
	assert.True(t, ok)
}

func TestEvalConditionalPicksMatchingArm(t *testing.T) {
	interp := comptime.NewInterp(noSafe)
	cond := &ast.ConditionalExpr{
		Scrutinee: intLit(2),
		Arms: []*ast.MatchArm{
			{Pattern: &ast.LiteralPattern{Value: intLit(1)}, Body: &ast.StringLiteral{Value: "one"}},
			{Pattern: &ast.LiteralPattern{Value: intLit(2)}, Body: &ast.StringLiteral{Value: "two"}},
			{Pattern: &ast.WildcardPattern{}, Body: &ast.StringLiteral{Value: "other"}},
		},
	}

	v := interp.Eval(cond, comptime.NewEnv())

	assert.Equal(t, "two", v.(*comptime.StringValue).Value)
}

func TestEvalArrayLiteralAndIndex(t *testing.T) {
	interp := comptime.NewInterp(noSafe)
	arr := &ast.ArrayLiteralExpr{Elements: []ast.Expression{intLit(10), intLit(20), intLit(30)}}
	idx := &ast.IndexExpr{Object: arr, Index: intLit(1)}

	v := interp.Eval(idx, comptime.NewEnv())

	assert.Equal(t, int64(20), v.(*comptime.IntValue).Value)
}

func TestEvalStructLiteralAndFieldAccess(t *testing.T) {
	interp := comptime.NewInterp(noSafe)
	lit := &ast.StructLiteralExpr{TypeName: "Point", Fields: []ast.StructFieldInit{
		{Name: "x", Value: intLit(1)},
		{Name: "y", Value: intLit(2)},
	}}
	access := &ast.FieldAccessExpr{Object: lit, Field: "y"}

	v := interp.Eval(access, comptime.NewEnv())

	assert.Equal(t, int64(2), v.(*comptime.IntValue).Value)
}

func TestEvalUnboundedLoopIsRejected(t *testing.T) {
	interp := comptime.NewInterp(noSafe)
	loop := &ast.LoopStatement{Kind: ast.LoopInfinite, Body: &ast.BlockStatement{}}

	v := interp.EvalBlock(&ast.BlockStatement{Statements: []ast.Statement{loop}}, comptime.NewEnv())

	_, ok := v.(*comptime.Error)
	assert.True(t, ok)
}

func TestEvalIteratorLoopOverArray(t *testing.T) {
	interp := comptime.NewInterp(noSafe)
	block := &ast.BlockStatement{Statements: []ast.Statement{
		&ast.VarDeclStatement{Name: "sum", Init: intLit(0), Kind: ast.InferredMutable},
		&ast.LoopStatement{
			Kind:     ast.LoopIterator,
			BoundVar: "n",
			Iterable: &ast.RangeExpr{Start: intLit(0), End: intLit(3)},
			Body: &ast.BlockStatement{Statements: []ast.Statement{
				&ast.AssignStatement{Name: "sum", Value: &ast.BinaryExpr{Op: "+", Left: &ast.Identifier{Name: "sum"}, Right: &ast.Identifier{Name: "n"}}},
			}},
		},
		&ast.ReturnStatement{Value: &ast.Identifier{Name: "sum"}},
	}}

	v := interp.EvalBlock(block, comptime.NewEnv())

	assert.Equal(t, int64(3), v.(*comptime.IntValue).Value)
}
