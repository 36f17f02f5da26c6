package strjoin

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slaide/pacc-sub000/internal/token"
)

func str(s string) token.Token {
	return token.Token{Kind: token.KindLiteralString, Text: `"` + s + `"`, StringValue: s}
}

func sym(s string) token.Token {
	return token.Token{Kind: token.KindSymbol, Text: s}
}

func TestJoinAdjacentStrings(t *testing.T) {
	in := []token.Token{str("hello "), str("world")}
	out := Join(in)
	require.Len(t, out, 1)
	require.Equal(t, "hello world", out[0].StringValue)
	require.Equal(t, `"hello world"`, out[0].Text)
}

func TestJoinThreeInARow(t *testing.T) {
	in := []token.Token{str("a"), str("b"), str("c")}
	out := Join(in)
	require.Len(t, out, 1)
	require.Equal(t, "abc", out[0].StringValue)
}

func TestJoinLeavesNonAdjacentStringsAlone(t *testing.T) {
	in := []token.Token{str("a"), sym("x"), str("b")}
	out := Join(in)
	require.Len(t, out, 3)
	require.Equal(t, "a", out[0].StringValue)
	require.Equal(t, "b", out[2].StringValue)
}

func TestJoinPassesNonStringsThrough(t *testing.T) {
	in := []token.Token{sym("int"), sym("x")}
	out := Join(in)
	require.Equal(t, in, out)
}
