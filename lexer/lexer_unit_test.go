// ==============================================================================================
// FILE: lexer/lexer_unit_test.go
// ==============================================================================================
// PURPOSE: Exercises NextToken across every token category the lexer produces, plus the
// never-panic contract on malformed input (laws 1 and "idempotence").
// ==============================================================================================

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zen/token"
)

func collect(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestNextTokenCoreProgram(t *testing.T) {
	input := `main = () i64 { 42 }`
	toks := collect(input)

	types := make([]token.Type, 0, len(toks))
	for _, tok := range toks {
		types = append(types, tok.Type)
	}

	assert.Equal(t, []token.Type{
		token.IDENT, token.ASSIGN, token.LPAREN, token.RPAREN,
		token.IDENT, token.LBRACE, token.INT, token.RBRACE, token.EOF,
	}, types)
}

func TestNextTokenKeywords(t *testing.T) {
	toks := collect("loop in comptime async await behavior impl break continue return extern")
	want := []token.Type{
		token.LOOP, token.IN, token.COMPTIME, token.ASYNC, token.AWAIT,
		token.BEHAVIOR, token.IMPL, token.BREAK, token.CONTINUE, token.RETURN, token.EXTERN, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, tok := range toks {
		assert.Equal(t, want[i], tok.Type, "token %d", i)
	}
}

func TestNextTokenOperatorsLongestMatch(t *testing.T) {
	toks := collect("== != <= >= && || -> => := ::= :: ..= .. + - * / < > = ! & |")
	want := []token.Type{
		token.EQ, token.NOT_EQ, token.LT_EQ, token.GT_EQ, token.AND, token.OR,
		token.ARROW, token.FATARROW, token.DECLINF, token.DECLMUT, token.WALRUS2,
		token.RANGEINC, token.RANGEEXC, token.PLUS, token.MINUS, token.STAR, token.SLASH,
		token.LT, token.GT, token.ASSIGN, token.BANG, token.AMP, token.PIPE, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, tok := range toks {
		assert.Equal(t, want[i], tok.Type, "token %d (%q)", i, tok.Literal)
	}
}

func TestNextTokenIdentifierWithAtPrefix(t *testing.T) {
	toks := collect("@std.io")
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, token.IDENT, toks[0].Type)
	assert.Equal(t, "@std", toks[0].Literal)
	assert.Equal(t, token.DOT, toks[1].Type)
	assert.Equal(t, token.IDENT, toks[2].Type)
	assert.Equal(t, "io", toks[2].Literal)
}

func TestNextTokenNumberLiterals(t *testing.T) {
	toks := collect("42 3.14 0")
	require.Len(t, toks, 4)
	assert.Equal(t, token.INT, toks[0].Type)
	assert.Equal(t, "42", toks[0].Literal)
	assert.Equal(t, token.FLOAT, toks[1].Type)
	assert.Equal(t, "3.14", toks[1].Literal)
	assert.Equal(t, token.INT, toks[2].Type)
}

func TestNextTokenStringEscapes(t *testing.T) {
	toks := collect(`"Hello\nWorld\t\"quoted\"\\"`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "Hello\nWorld\t\"quoted\"\\", toks[0].Literal)
}

func TestNextTokenUnterminatedStringNeverPanics(t *testing.T) {
	require.NotPanics(t, func() {
		toks := collect(`"unterminated`)
		require.NotEmpty(t, toks)
		assert.Equal(t, token.ILLEGAL, toks[0].Type)
		assert.Equal(t, token.EOF, toks[len(toks)-1].Type)
	})
}

func TestNextTokenIllegalCharacterAdvances(t *testing.T) {
	toks := collect("a $ b")
	require.Len(t, toks, 4)
	assert.Equal(t, token.IDENT, toks[0].Type)
	assert.Equal(t, token.ILLEGAL, toks[1].Type)
	assert.Equal(t, "$", toks[1].Literal)
	assert.Equal(t, token.IDENT, toks[2].Type)
}

// TestLexerIdempotence re-lexes the literal spellings the lexer itself
// produced and checks the resulting type stream is identical, the "lexer
// idempotence" guarantee: re-lexing already-tokenized text is a no-op change.
func TestLexerIdempotence(t *testing.T) {
	input := `add = (a: i64, b: i64) i64 { a + b }`
	first := collect(input)

	var rebuilt string
	for _, tok := range first {
		if tok.Type == token.EOF {
			break
		}
		if tok.Type == token.STRING {
			rebuilt += `"` + tok.Literal + `" `
			continue
		}
		rebuilt += tok.Literal + " "
	}

	second := collect(rebuilt)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Type, second[i].Type, "token %d diverged after re-lexing", i)
	}
}

func TestNextTokenSpanWithinInput(t *testing.T) {
	input := "x := 10"
	for _, tok := range collect(input) {
		assert.LessOrEqual(t, tok.Span.Start, len(input))
		assert.LessOrEqual(t, tok.Span.End, len(input))
		assert.LessOrEqual(t, tok.Span.Start, tok.Span.End)
	}
}
