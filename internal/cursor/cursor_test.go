package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slaide/pacc-sub000/internal/token"
)

func toks(kinds ...string) []token.Token {
	out := make([]token.Token, len(kinds))
	for i, k := range kinds {
		out[i] = token.Token{Text: k, Origin: token.Origin{File: "t.c", Line: 1, Column: i + 1}}
	}
	return out
}

func TestCursorNextAndPeek(t *testing.T) {
	c := New(toks("int", "x", ";"), true)

	peeked, ok := c.Peek()
	require.True(t, ok)
	require.Equal(t, "int", peeked.Text)

	first, ok := c.Next()
	require.True(t, ok)
	require.Equal(t, "int", first.Text)

	last, ok := c.Last()
	require.True(t, ok)
	require.Equal(t, "int", last.Text)

	second, ok := c.Next()
	require.True(t, ok)
	require.Equal(t, "x", second.Text)

	third, ok := c.Next()
	require.True(t, ok)
	require.Equal(t, ";", third.Text)

	require.True(t, c.IsEmpty())
	_, ok = c.Next()
	require.False(t, ok)
}

func TestCursorSkipsComments(t *testing.T) {
	ts := toks("int", "x", ";")
	ts[1].Kind = token.KindComment
	c := New(ts, true)

	first, ok := c.Next()
	require.True(t, ok)
	require.Equal(t, "int", first.Text)

	second, ok := c.Next()
	require.True(t, ok)
	require.Equal(t, ";", second.Text)
}

func TestCursorKeepsCommentsWhenNotSkipping(t *testing.T) {
	ts := toks("int", "x", ";")
	ts[1].Kind = token.KindComment
	c := New(ts, false)

	_, _ = c.Next()
	second, ok := c.Next()
	require.True(t, ok)
	require.Equal(t, "x", second.Text)
}

func TestCursorBacktrackByValueCopy(t *testing.T) {
	c := New(toks("int", "x", ";"), true)

	saved := c
	_, _ = c.Next()
	_, _ = c.Next()

	require.Equal(t, 2, c.pos)
	require.Equal(t, 0, saved.pos)

	tok, ok := saved.Next()
	require.True(t, ok)
	require.Equal(t, "int", tok.Text)
}

func TestCursorExpect(t *testing.T) {
	c := New(toks("(", "x", ")"), true)

	_, err := c.Expect("(")
	require.NoError(t, err)

	_, err = c.Expect(")")
	require.Error(t, err)
}

func TestCursorAt(t *testing.T) {
	c := New(toks("if", "(", "x", ")"), true)
	require.True(t, c.At("if"))
	_, _ = c.Next()
	require.False(t, c.At("if"))
	require.True(t, c.At("("))
}
