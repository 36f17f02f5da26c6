// Package strjoin implements the StringLiteralJoiner of spec §4.3: a
// stream-in, stream-out pass over the preprocessed token sequence that
// merges adjacent string literals into one. It is grounded on main.c's
// phase ordering (tokenize -> preprocess -> join adjacent string literals
// -> parse), the one post-preprocessing cleanup pass original_source
// performs before handing tokens to the parser.
package strjoin

import (
	"strings"

	"github.com/slaide/pacc-sub000/internal/token"
)

// Join walks in and returns a new slice where every run of adjacent
// LiteralString tokens is replaced by one token whose StringValue is the
// concatenation of the run's contents and whose Text is that joined
// content re-wrapped in quotes. Every other token passes through unchanged.
func Join(in []token.Token) []token.Token {
	out := make([]token.Token, 0, len(in))
	for _, t := range in {
		if t.Kind == token.KindLiteralString && len(out) > 0 && out[len(out)-1].Kind == token.KindLiteralString {
			prev := &out[len(out)-1]
			var b strings.Builder
			b.WriteString(prev.StringValue)
			b.WriteString(t.StringValue)
			joined := b.String()
			prev.StringValue = joined
			prev.Text = `"` + joined + `"`
			continue
		}
		out = append(out, t)
	}
	return out
}
