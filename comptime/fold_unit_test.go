package comptime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zen/ast"
	"zen/comptime"
)

func TestFoldErasesComptimeExprToLiteral(t *testing.T) {
	fn := &ast.FunctionDecl{
		Name:       "main",
		ReturnType: &ast.IntType{Width: 64, Signed: true},
		Body: &ast.BlockStatement{Statements: []ast.Statement{
			&ast.ReturnStatement{Value: &ast.ComptimeExpr{Inner: &ast.BinaryExpr{
				Op: "+", Left: intLit(2), Right: intLit(3),
			}}},
		}},
	}
	prog := &ast.Program{Declarations: []ast.Declaration{fn}}
	folder := comptime.NewFolder("test.zen", nil)

	bag := folder.Fold(prog)

	assert.False(t, bag.HasErrors())
	ret := prog.Declarations[0].(*ast.FunctionDecl).Body.Statements[0].(*ast.ReturnStatement)
	lit, ok := ret.Value.(*ast.IntegerLiteral)
	assert.True(t, ok)
	assert.Equal(t, int64(5), lit.Value)
}

func TestFoldErasesTopLevelComptimeDecl(t *testing.T) {
	ran := false
	_ = ran
	decl := &ast.ComptimeDecl{Body: &ast.BlockStatement{Statements: []ast.Statement{
		&ast.ExpressionStatement{Expr: intLit(1)},
	}}}
	prog := &ast.Program{Declarations: []ast.Declaration{decl}}
	folder := comptime.NewFolder("test.zen", nil)

	bag := folder.Fold(prog)

	assert.False(t, bag.HasErrors())
	assert.Len(t, prog.Declarations, 0)
}

func TestFoldErasesComptimeBlockStatement(t *testing.T) {
	fn := &ast.FunctionDecl{
		Name:       "main",
		ReturnType: &ast.VoidType{},
		Body: &ast.BlockStatement{Statements: []ast.Statement{
			&ast.ComptimeBlockStatement{Body: &ast.BlockStatement{Statements: []ast.Statement{
				&ast.ExpressionStatement{Expr: intLit(1)},
			}}},
		}},
	}
	prog := &ast.Program{Declarations: []ast.Declaration{fn}}
	folder := comptime.NewFolder("test.zen", nil)

	folder.Fold(prog)

	assert.Len(t, prog.Declarations[0].(*ast.FunctionDecl).Body.Statements, 0)
}

func TestFoldNestedComptimeInStructLiteral(t *testing.T) {
	fn := &ast.FunctionDecl{
		Name:       "main",
		ReturnType: &ast.VoidType{},
		Body: &ast.BlockStatement{Statements: []ast.Statement{
			&ast.ExpressionStatement{Expr: &ast.StructLiteralExpr{
				TypeName: "Point",
				Fields: []ast.StructFieldInit{
					{Name: "x", Value: &ast.ComptimeExpr{Inner: intLit(1)}},
				},
			}},
		}},
	}
	prog := &ast.Program{Declarations: []ast.Declaration{fn}}
	folder := comptime.NewFolder("test.zen", nil)

	folder.Fold(prog)

	lit := prog.Declarations[0].(*ast.FunctionDecl).Body.Statements[0].(*ast.ExpressionStatement).
		Expr.(*ast.StructLiteralExpr)
	_, ok := lit.Fields[0].Value.(*ast.IntegerLiteral)
	assert.True(t, ok)
}

func TestFoldReportsEvaluationErrorAndKeepsSpan(t *testing.T) {
	fn := &ast.FunctionDecl{
		Name:       "main",
		ReturnType: &ast.VoidType{},
		Body: &ast.BlockStatement{Statements: []ast.Statement{
			&ast.ExpressionStatement{Expr: &ast.ComptimeExpr{
				Inner: &ast.BinaryExpr{Op: "/", Left: intLit(1), Right: intLit(0)},
			}},
		}},
	}
	prog := &ast.Program{Declarations: []ast.Declaration{fn}}
	folder := comptime.NewFolder("test.zen", nil)

	bag := folder.Fold(prog)

	assert.True(t, bag.HasErrors())
}

func TestFoldComptimeArrayToNestedLiteral(t *testing.T) {
	fn := &ast.FunctionDecl{
		Name:       "main",
		ReturnType: &ast.VoidType{},
		Body: &ast.BlockStatement{Statements: []ast.Statement{
			&ast.ExpressionStatement{Expr: &ast.ComptimeExpr{
				Inner: &ast.RangeExpr{Start: intLit(0), End: intLit(3)},
			}},
		}},
	}
	prog := &ast.Program{Declarations: []ast.Declaration{fn}}
	folder := comptime.NewFolder("test.zen", nil)

	folder.Fold(prog)

	lit := prog.Declarations[0].(*ast.FunctionDecl).Body.Statements[0].(*ast.ExpressionStatement).
		Expr.(*ast.ArrayLiteralExpr)
	assert.Len(t, lit.Elements, 3)
	assert.Equal(t, int64(0), lit.Elements[0].(*ast.IntegerLiteral).Value)
}
