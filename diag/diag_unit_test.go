package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zen/diag"
	"zen/token"
)

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", diag.SeverityError.String())
	assert.Equal(t, "warning", diag.SeverityWarning.String())
	assert.Equal(t, "note", diag.SeverityNote.String())
}

func TestBagHasErrorsOnlyWhenErrorSeverityPresent(t *testing.T) {
	bag := diag.NewBag("main.zn")
	assert.False(t, bag.HasErrors())

	bag.Warnf(diag.KindType, token.Span{Line: 1, Column: 1}, "unused binding %q", "x")
	assert.False(t, bag.HasErrors())

	bag.Errorf(diag.KindType, token.Span{Line: 2, Column: 3}, "mismatched types: %s vs %s", "i32", "bool")
	assert.True(t, bag.HasErrors())
	assert.Equal(t, 2, bag.Len())
}

func TestBagItemsSortedByPosition(t *testing.T) {
	bag := diag.NewBag("main.zn")
	bag.Errorf(diag.KindParse, token.Span{Line: 5, Column: 1}, "late")
	bag.Errorf(diag.KindParse, token.Span{Line: 1, Column: 9}, "early")
	bag.Errorf(diag.KindParse, token.Span{Line: 1, Column: 2}, "earliest")

	items := bag.Items()
	assert.Equal(t, "earliest", items[0].Message)
	assert.Equal(t, "early", items[1].Message)
	assert.Equal(t, "late", items[2].Message)
}

func TestBagFormatIncludesPathAndPosition(t *testing.T) {
	bag := diag.NewBag("main.zn")
	bag.Errorf(diag.KindLex, token.Span{Line: 3, Column: 7}, "unterminated string")

	out := bag.Format()
	assert.Equal(t, "main.zn:3:7: error: unterminated string", out)
}

func TestDiagnosticStringFormat(t *testing.T) {
	d := diag.Diagnostic{Kind: diag.KindType, Severity: diag.SeverityWarning, Message: "shadowed binding", Span: token.Span{Line: 10, Column: 4}}
	assert.Equal(t, "10:4: warning: shadowed binding", d.String())
}
