package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueParsesHexIntegerLiteral(t *testing.T) {
	tok := Token{
		Text:    "0x10",
		Kind:    KindLiteralInteger,
		Numeric: &NumericLiteral{Base: 16, HasPrefix: true, HasLeadingDigits: true},
	}
	u, i, _, err := tok.Value()
	require.NoError(t, err)
	require.Equal(t, uint64(16), u)
	require.Equal(t, int64(16), i)
}

func TestValueParsesBinaryIntegerLiteral(t *testing.T) {
	tok := Token{
		Text:    "0b101",
		Kind:    KindLiteralInteger,
		Numeric: &NumericLiteral{Base: 2, HasPrefix: true, HasLeadingDigits: true},
	}
	u, _, _, err := tok.Value()
	require.NoError(t, err)
	require.Equal(t, uint64(5), u)
}

func TestValueParsesOctalIntegerLiteral(t *testing.T) {
	tok := Token{
		Text:    "0755",
		Kind:    KindLiteralInteger,
		Numeric: &NumericLiteral{Base: 8, HasPrefix: true, HasLeadingDigits: true},
	}
	u, _, _, err := tok.Value()
	require.NoError(t, err)
	require.Equal(t, uint64(0755), u)
}

func TestValueParsesDecimalIntegerLiteralWithSuffix(t *testing.T) {
	tok := Token{
		Text:    "42UL",
		Kind:    KindLiteralInteger,
		Numeric: &NumericLiteral{Base: 10, HasLeadingDigits: true, HasSuffix: true},
	}
	u, _, _, err := tok.Value()
	require.NoError(t, err)
	require.Equal(t, uint64(42), u)
}

func TestValueParsesFloatLiteralWithSuffix(t *testing.T) {
	tok := Token{
		Text:    "1.5f",
		Kind:    KindLiteralFloat,
		Numeric: &NumericLiteral{Base: 10, HasDecimalPoint: true, HasLeadingDigits: true, HasTrailingDigits: true, HasSuffix: true},
	}
	_, _, f, err := tok.Value()
	require.NoError(t, err)
	require.Equal(t, 1.5, f)
}

func TestValueRejectsNonNumericToken(t *testing.T) {
	tok := Token{Text: "x", Kind: KindSymbol}
	_, _, _, err := tok.Value()
	require.Error(t, err)
}
