package preprocessor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slaide/pacc-sub000/internal/token"
)

func lit(n int64) token.Token {
	return token.Token{
		Kind:    token.KindLiteralInteger,
		Text:    itoa(n),
		Numeric: &token.NumericLiteral{Base: 10},
	}
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{byte('0' + n%10)}, buf...)
		n /= 10
	}
	if neg {
		buf = append([]byte{'-'}, buf...)
	}
	return string(buf)
}

func sym(s string) token.Token {
	return token.Token{Kind: token.KindSymbol, Text: s}
}

func op(s string) token.Token {
	return token.Token{Kind: token.KindKeyword, Text: s}
}

func TestParseExprPrecedence(t *testing.T) {
	// 1 + 2 * 3 == 7
	toks := []token.Token{lit(1), op("+"), lit(2), op("*"), lit(3), op("=="), lit(7)}
	e, err := parseExpr(toks, "t.c")
	require.NoError(t, err)
	p := New(nil)
	require.Equal(t, int64(1), p.eval(e))
}

func TestParseExprDefinedWithoutParens(t *testing.T) {
	toks := []token.Token{op("defined"), sym("FOO")}
	e, err := parseExpr(toks, "t.c")
	require.NoError(t, err)
	p := New(nil)
	p.defines = append(p.defines, &Define{Name: sym("FOO"), active: true})
	require.Equal(t, int64(1), p.eval(e))
}

func TestParseExprTernaryAndLogic(t *testing.T) {
	// 1 && 0 || 1 ? 2 : 3
	toks := []token.Token{
		lit(1), op("&&"), lit(0), op("||"), lit(1),
		op("?"), lit(2), op(":"), lit(3),
	}
	e, err := parseExpr(toks, "t.c")
	require.NoError(t, err)
	p := New(nil)
	require.Equal(t, int64(2), p.eval(e))
}

func TestParseExprUnmatchedParenIsError(t *testing.T) {
	toks := []token.Token{op("("), lit(1)}
	_, err := parseExpr(toks, "t.c")
	require.Error(t, err)
}

func TestParseExprTrailingGarbageIsError(t *testing.T) {
	toks := []token.Token{lit(1), lit(2)}
	_, err := parseExpr(toks, "t.c")
	require.Error(t, err)
}
