// ==============================================================================================
// FILE: repl/repl_integration_test.go
// ==============================================================================================
// PURPOSE: Integration tests for the REPL.
//          Validates that a one-line struct declaration and a one-line impl method each compile
//          to the named-type and function IR a user would expect to see echoed back.
// ==============================================================================================

package repl

import (
	"strings"
	"testing"
)

func TestIntegration_StructDeclaration(t *testing.T) {
	input := "Point = { x: i64, y: i64 }\n.exit"
	output := runSession(input)

	if !strings.Contains(output, "%struct.Point = type { i64, i64 }") {
		t.Errorf("struct declaration did not emit a named type. Output:\n%s", output)
	}
}

func TestIntegration_ExternDeclaration(t *testing.T) {
	input := "extern printf(*i8) -> i32\n.exit"
	output := runSession(input)

	if !strings.Contains(output, "declare i32 @printf") {
		t.Errorf("extern declaration did not emit a declare. Output:\n%s", output)
	}
}
