// ==============================================================================================
// FILE: parser/parser_integration_test.go
// ==============================================================================================
// PURPOSE: Integration tests for the Parser.
//          Validates the parsing of complete, multi-part logical structures: recursive
//          functions, structs with impl methods, and field-access-driven control flow.
// ==============================================================================================

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zen/ast"
)

func TestIntegration_FactorialFunction(t *testing.T) {
	prog := parse(t, `
	factorial = (n: i64) i64 {
		return | n <= 1 => 1 | _ => n * factorial(n - 1)
	}

	result = () i64 {
		return factorial(5)
	}
	`)

	require.Len(t, prog.Declarations, 2)

	fn, ok := prog.Declarations[0].(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "factorial", fn.Name)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "n", fn.Params[0].Name)

	ret := fn.Body.Statements[0].(*ast.ReturnStatement)
	cond, ok := ret.Value.(*ast.ConditionalExpr)
	require.True(t, ok)
	require.Len(t, cond.Arms, 2)

	caller := prog.Declarations[1].(*ast.FunctionDecl)
	callRet := caller.Body.Statements[0].(*ast.ReturnStatement)
	call, ok := callRet.Value.(*ast.CallExpr)
	require.True(t, ok)
	callee, ok := call.Callee.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "factorial", callee.Name)
}

func TestIntegration_StructsAndImplAndFieldAccess(t *testing.T) {
	prog := parse(t, `
	User = {
		name: string,
		age: i64
	}

	User.impl = {
		isAdult = (self: *User) bool {
			return self.age > 18
		}
	}

	main = () {
		u := User{ name: "Alice", age: 30 }
		loop u.age > 18 {
			break
		}
	}
	`)

	require.Len(t, prog.Declarations, 3)

	sd, ok := prog.Declarations[0].(*ast.StructDecl)
	require.True(t, ok)
	assert.Equal(t, "User", sd.Name)
	assert.Len(t, sd.Fields, 2)

	impl, ok := prog.Declarations[1].(*ast.ImplDecl)
	require.True(t, ok)
	assert.Equal(t, "User", impl.TargetType)
	require.Len(t, impl.Methods, 1)

	method := impl.Methods[0]
	methodRet := method.Body.Statements[0].(*ast.ReturnStatement)
	bin, ok := methodRet.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ">", bin.Op)
	_, isFieldAccess := bin.Left.(*ast.FieldAccessExpr)
	assert.True(t, isFieldAccess)

	main := prog.Declarations[2].(*ast.FunctionDecl)
	require.Len(t, main.Body.Statements, 2)

	varDecl := main.Body.Statements[0].(*ast.VarDeclStatement)
	lit, ok := varDecl.Init.(*ast.StructLiteralExpr)
	require.True(t, ok)
	assert.Equal(t, "User", lit.TypeName)
	assert.Len(t, lit.Fields, 2)

	loop := main.Body.Statements[1].(*ast.LoopStatement)
	assert.Equal(t, ast.LoopCondition, loop.Kind)
	_, condIsFieldAccess := loop.Condition.(*ast.BinaryExpr)
	assert.True(t, condIsFieldAccess)
}
