package token

import (
	"fmt"
	"strconv"
	"strings"
)

// Value parses the numeric literal's text into its runtime representation.
// This supplements original_source's TokenLiteral_getNumericValue. The #if
// expression evaluator in internal/preprocessor and the enum-body parser in
// internal/cparser call it; the Serializer does not, and prints a literal's
// raw source text.
func (t Token) Value() (u uint64, i int64, f float64, err error) {
	if t.Numeric == nil {
		err = fmt.Errorf("token %q is not a numeric literal", t.Text)
		return
	}

	text := t.Text
	if t.Kind == KindLiteralFloat {
		// Strip a trailing float/unsigned/long suffix run; strconv doesn't
		// accept C's "1.5f" or "3L" suffixes.
		end := len(text)
		for end > 0 && strings.ContainsRune("fFuUlL", rune(text[end-1])) {
			end--
		}
		f, err = strconv.ParseFloat(text[:end], 64)
		if err == nil {
			i = int64(f)
			if f >= 0 {
				u = uint64(f)
			}
		}
		return
	}

	end := len(text)
	for end > 0 && strings.ContainsRune("uUlL", rune(text[end-1])) {
		end--
	}
	digits := text[:end]
	base := 10
	switch t.Numeric.Base {
	case 16:
		base = 16
	case 8:
		base = 8
	case 2:
		base = 2
	}

	sign := ""
	rest := digits
	if strings.HasPrefix(rest, "-") || strings.HasPrefix(rest, "+") {
		sign, rest = rest[:1], rest[1:]
	}
	if t.Numeric.HasPrefix && (base == 16 || base == 2) {
		// strconv requires an explicit base's digits to exclude the "0x"/"0b"
		// prefix; it only strips one itself when base is 0.
		rest = rest[2:]
	}

	u, err = strconv.ParseUint(rest, base, 64)
	if err != nil {
		// Fall back to signed parsing for a text that carries a leading sign.
		// The lexer never fuses a sign into a literal, so tokens it produces
		// do not reach this path with one.
		var signedErr error
		i, signedErr = strconv.ParseInt(sign+rest, base, 64)
		if signedErr != nil {
			err = signedErr
			return
		}
		err = nil
		if i >= 0 {
			u = uint64(i)
		}
		return
	}
	i = int64(u)
	f = float64(i)
	return
}
