package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slaide/pacc-sub000/internal/source"
	"github.com/slaide/pacc-sub000/internal/token"
)

func tokenize(t *testing.T, contents string) []token.Token {
	t.Helper()
	toks, err := Tokenize(source.FromString("t.c", contents))
	require.NoError(t, err)
	return toks
}

func texts(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text
	}
	return out
}

func TestTokenizeSimpleDeclaration(t *testing.T) {
	toks := tokenize(t, "int x = 2;")
	require.Equal(t, []string{"int", "x", "=", "2", ";"}, texts(toks))
	require.Equal(t, token.KindKeyword, toks[0].Kind)
	require.Equal(t, token.KindSymbol, toks[1].Kind)
	require.Equal(t, token.KindKeyword, toks[2].Kind)
	require.Equal(t, token.KindLiteralInteger, toks[3].Kind)
	require.Equal(t, token.KindKeyword, toks[4].Kind)
}

func TestTokenizeLineCommentDropsRestOfLine(t *testing.T) {
	toks := tokenize(t, "int x; // trailing comment\nint y;")
	require.Equal(t, []string{"int", "x", ";", "int", "y", ";"}, filterOutComments(toks))
}

func TestTokenizeBlockCommentSpansLines(t *testing.T) {
	toks := tokenize(t, "int /* skip\nthis */ x;")
	require.Equal(t, []string{"int", "x", ";"}, filterOutComments(toks))
}

func TestTokenizeUnterminatedBlockCommentIsFatal(t *testing.T) {
	_, err := Tokenize(source.FromString("t.c", "int x; /* never closed"))
	require.Error(t, err)
}

func TestTokenizeStringLiteralUnescapesContents(t *testing.T) {
	toks := tokenize(t, `"a\nb"`)
	require.Len(t, toks, 1)
	require.Equal(t, token.KindLiteralString, toks[0].Kind)
	require.Equal(t, "a\nb", toks[0].StringValue)
}

func TestTokenizeUnterminatedStringIsFatal(t *testing.T) {
	_, err := Tokenize(source.FromString("t.c", `"never closed`))
	require.Error(t, err)
}

func TestTokenizeCharLiteral(t *testing.T) {
	toks := tokenize(t, `'a'`)
	require.Len(t, toks, 1)
	require.Equal(t, token.KindLiteralChar, toks[0].Kind)
	require.Equal(t, "a", toks[0].StringValue)
}

func TestTokenizeTwoCharOperatorsFuse(t *testing.T) {
	toks := tokenize(t, "a == b && c != d")
	require.Equal(t, []string{"a", "==", "b", "&&", "c", "!=", "d"}, texts(toks))
}

func TestTokenizeShiftAssignFusesThreeBytes(t *testing.T) {
	toks := tokenize(t, "a <<= 1; b >>= 2;")
	require.Equal(t, []string{"a", "<<=", "1", ";", "b", ">>=", "2", ";"}, texts(toks))
}

func TestTokenizeEllipsisFuses(t *testing.T) {
	toks := tokenize(t, "int f(int a, ...);")
	require.Contains(t, texts(toks), "...")
}

func TestTokenizeHexIntegerLiteral(t *testing.T) {
	toks := tokenize(t, "0x10")
	require.Len(t, toks, 1)
	require.Equal(t, token.KindLiteralInteger, toks[0].Kind)
	require.NotNil(t, toks[0].Numeric)
	require.Equal(t, 16, toks[0].Numeric.Base)
	require.True(t, toks[0].Numeric.HasPrefix)
}

func TestTokenizeBinaryIntegerLiteral(t *testing.T) {
	toks := tokenize(t, "0b101")
	require.Len(t, toks, 1)
	require.Equal(t, 2, toks[0].Numeric.Base)
}

func TestTokenizeOctalIntegerLiteral(t *testing.T) {
	toks := tokenize(t, "0755")
	require.Len(t, toks, 1)
	require.Equal(t, 8, toks[0].Numeric.Base)
	require.True(t, toks[0].Numeric.HasPrefix)
}

func TestTokenizeFloatLiteralWithExponent(t *testing.T) {
	toks := tokenize(t, "1.5e10")
	require.Len(t, toks, 1)
	require.Equal(t, token.KindLiteralFloat, toks[0].Kind)
	require.True(t, toks[0].Numeric.HasExponent)
}

func TestTokenizeNumericSuffixesAreKept(t *testing.T) {
	toks := tokenize(t, "3UL")
	require.Len(t, toks, 1)
	require.True(t, toks[0].Numeric.HasSuffix)
	require.Equal(t, "3UL", toks[0].Text)
}

func TestTokenizeMalformedExponentIsFatal(t *testing.T) {
	_, err := Tokenize(source.FromString("t.c", "1.5e"))
	require.Error(t, err)
}

func TestTokenizeIncludeArgumentConsumesAngleBrackets(t *testing.T) {
	toks := tokenize(t, "#include <stdio.h>\n")
	require.Equal(t, []string{"#", "include", "<stdio.h>"}, texts(toks))
	require.Equal(t, token.KindPrepIncludeArgument, toks[2].Kind)
}

func TestTokenizeUndefinedByteIsFatal(t *testing.T) {
	_, err := Tokenize(source.FromString("t.c", "int x = `;"))
	require.Error(t, err)
}

func TestDumpRendersOneTokenPerLine(t *testing.T) {
	toks := tokenize(t, "int x;")
	out := Dump(toks)
	require.Equal(t, 3, len(splitNonEmptyLines(out)))
}

func filterOutComments(toks []token.Token) []string {
	var out []string
	for _, tok := range toks {
		if tok.Kind == token.KindComment {
			continue
		}
		out = append(out, tok.Text)
	}
	return out
}

func splitNonEmptyLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	return lines
}
