// Package token defines the Token value produced by the lexer and consumed
// by every later phase (preprocessor, parser). It mirrors the tagged-token
// shape of internal/js_lexer's T enum, narrowed to the C subset this
// front-end recognizes.
package token

import (
	"fmt"

	"github.com/slaide/pacc-sub000/internal/diag"
)

// Kind classifies a Token. The lexer never emits KindUndefined; any byte
// sequence that cannot be classified is a fatal lex error instead.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindKeyword
	KindSymbol
	KindComment
	KindLiteralInteger
	KindLiteralFloat
	KindLiteralChar
	KindLiteralString
	KindPrepIncludeArgument
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindKeyword:
		return "keyword"
	case KindSymbol:
		return "symbol"
	case KindComment:
		return "comment"
	case KindLiteralInteger:
		return "integer-literal"
	case KindLiteralFloat:
		return "float-literal"
	case KindLiteralChar:
		return "char-literal"
	case KindLiteralString:
		return "string-literal"
	case KindPrepIncludeArgument:
		return "include-argument"
	default:
		return "unknown"
	}
}

// Origin is the (file, line, column) triple printed in every diagnostic.
// Lines and columns are 1-based; tab width is 1 (spec §3, §9).
type Origin struct {
	File   string
	Line   int
	Column int
}

// Loc converts an Origin into the Loc shape every diagnostic is built from.
func (o Origin) Loc() diag.Loc {
	return diag.Loc{File: o.File, Line: o.Line, Column: o.Column}
}

func (o Origin) String() string {
	file := o.File
	if file == "" {
		file = "<anonymous>"
	}
	return fmt.Sprintf("%s:%d:%d", file, o.Line, o.Column)
}

// NumericLiteral is the sub-shape every numeric token carries, per spec §3
// and §6. It exists so that a not-yet-implemented codegen phase can recover
// the literal's exact lexical structure instead of re-parsing source text.
type NumericLiteral struct {
	HasLeadingSign    bool
	Base              int
	HasPrefix         bool
	HasLeadingDigits  bool
	HasDecimalPoint   bool
	HasTrailingDigits bool
	HasExponent       bool
	HasExponentSign   bool
	HasExponentDigits bool
	HasSuffix         bool
}

// Token is a classified byte slice with provenance. Text is always the
// verbatim source slice for this token (quotes included for string/char
// literals, matching the C source's Token.p/Token.len); for a joined string
// literal (see internal/strjoin) Text instead holds the synthesized,
// owned text.
type Token struct {
	Kind   Kind
	Text   string
	Origin Origin

	// Numeric is non-nil only for KindLiteralInteger/KindLiteralFloat.
	Numeric *NumericLiteral

	// StringValue holds the decoded contents (escape sequences resolved,
	// quotes removed) for KindLiteralString and KindLiteralChar tokens.
	StringValue string

	// AlreadyExpanded is reserved for a future macro-expansion phase; the
	// core pipeline never sets it, but it is preserved on every token so a
	// downstream phase can rely on its presence (spec §3).
	AlreadyExpanded bool
}

func (t Token) String() string {
	return fmt.Sprintf("%s: %s (%s)", t.Origin, t.Text, t.Kind)
}

// Is reports whether the token's text matches s exactly. This is the Go
// equivalent of the C source's Token_equalString.
func (t Token) Is(s string) bool {
	return t.Text == s
}

// keywordLexemes is every reserved word the tokenizer maps from KindSymbol
// onto KindKeyword, per spec §4.1 and the source-language list in spec §6.
// Single-character punctuation is not listed here; it is recognized through
// IsCharToken.
var keywordLexemes = map[string]bool{
	"switch": true, "case": true, "return": true, "break": true,
	"continue": true, "goto": true, "typedef": true,
	"struct": true, "union": true, "enum": true,
	"include": true, "define": true, "ifdef": true, "ifndef": true,
	"undef": true, "pragma": true,
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"void": true, "int": true, "float": true, "double": true, "char": true,
	"short": true, "long": true, "signed": true, "unsigned": true,
	"const": true, "static": true, "extern": true, "thread_local": true,
	"sizeof": true, "default": true,
}

// IsKeywordLexeme reports whether s is one of the reserved words of spec §6.
func IsKeywordLexeme(s string) bool {
	return keywordLexemes[s]
}

// charTokens is the set of single-byte token delimiters the lexer's state
// machine stops on, verbatim from original_source's char_is_token.
const charTokens = "()[]{},;.:-+*~#'\"\\/!?%&=<>|"

// IsCharToken reports whether b is a single-character token delimiter.
func IsCharToken(b byte) bool {
	for i := 0; i < len(charTokens); i++ {
		if charTokens[i] == b {
			return true
		}
	}
	return false
}
