package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zen/session"
)

func TestCompileSimpleFunction(t *testing.T) {
	result, err := session.New("test.zen").Compile(`answer = () i64 {
		return 42
	}`)

	require.NoError(t, err)
	assert.Contains(t, result.IR, "define i64 @answer()")
	assert.Contains(t, result.IR, "ret i64 42")
	assert.Len(t, result.Stages, 4)
}

func TestCompileReportsParseErrors(t *testing.T) {
	result, err := session.New("bad.zen").Compile(`x =`)

	require.Error(t, err)
	require.Len(t, result.Stages, 1)
	assert.True(t, result.Stages[0].Bag.HasErrors())
}

func TestCompileReportsTypeErrors(t *testing.T) {
	result, err := session.New("bad.zen").Compile(`bad = () i64 {
		return "not a number"
	}`)

	require.Error(t, err)
	require.Len(t, result.Stages, 2)
	assert.True(t, result.Stages[1].Bag.HasErrors())
}

func TestCompileDistinctSessionIDs(t *testing.T) {
	a := session.New("a.zen")
	b := session.New("b.zen")
	assert.NotEqual(t, a.ID, b.ID)
}
