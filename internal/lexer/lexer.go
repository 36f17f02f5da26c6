// Package lexer turns a source file's bytes into a flat, ordered sequence of
// tokens. It runs once per loaded file; the preprocessor and parser never
// re-lex, they only ever walk a token.Token slice through internal/cursor.
//
// The state machine is a direct descendant of original_source's
// Tokenizer_init: consume bytes until a single-character delimiter or
// whitespace is hit, then classify and, where needed, extend the token
// (string/char literals, comments, multi-character operators, numeric
// literals, the #include argument).
package lexer

import (
	"strings"

	"github.com/slaide/pacc-sub000/internal/diag"
	"github.com/slaide/pacc-sub000/internal/source"
	"github.com/slaide/pacc-sub000/internal/token"
)

const tabWidth = 1

type lexer struct {
	file   string
	src    []byte
	pos    int
	line   int
	column int
	tokens []token.Token
}

// Tokenize converts src into an ordered token sequence. It returns a
// *diag.Error (category Lex) on any unterminated literal/comment or
// unrecognized byte.
func Tokenize(src *source.Source) (toks []token.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			if de, ok := r.(*diag.Error); ok {
				err = de
				return
			}
			panic(r)
		}
	}()

	l := &lexer{file: src.Label, src: src.Contents, line: 1, column: 1}
	if err = l.run(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *lexer) loc() diag.Loc {
	return diag.Loc{File: l.file, Line: l.line, Column: l.column}
}

func (l *lexer) byteAt(i int) byte {
	if i < 0 || i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

func (l *lexer) advance() {
	if l.byteAt(l.pos) == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column += tabWidth
	}
	l.pos++
}

func (l *lexer) run() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch c {
		case ' ', '\t', '\r':
			l.advance()
			continue
		case '\n':
			l.advance()
			continue
		}

		start := l.pos
		startLine, startCol := l.line, l.column

		if token.IsCharToken(c) {
			l.advance()
		} else {
			for l.pos < len(l.src) {
				b := l.src[l.pos]
				if b == ' ' || b == '\t' || b == '\r' || b == '\n' || token.IsCharToken(b) {
					break
				}
				l.advance()
			}
		}

		tok := token.Token{
			Text:   string(l.src[start:l.pos]),
			Origin: token.Origin{File: l.file, Line: startLine, Column: startCol},
		}

		if err := l.classify(&tok, start); err != nil {
			return err
		}
		if tok.Text == "" {
			continue
		}
		l.tokens = append(l.tokens, tok)
	}
	return l.finalize()
}

// classify extends and/or tags tok in place, consuming additional bytes from
// l.src as needed (string/char literals, comments, multi-char operators,
// numeric literals, the #include argument). start is tok's original byte
// offset, used to recompute tok.Text after extension.
func (l *lexer) classify(tok *token.Token, start int) error {
	switch {
	case tok.Text == `"`:
		return l.scanString(tok, start)
	case tok.Text == `'`:
		return l.scanChar(tok, start)
	}

	if l.fuseComment(tok, start) {
		return nil
	}
	if l.fuseEllipsis(tok, start) {
		return nil
	}
	if l.fuseShiftAssign(tok) {
		return nil
	}
	if l.fuseTwoCharOperator(tok) {
		return nil
	}
	if l.scanNumeric(tok, start) {
		return nil
	}
	l.scanIncludeArgument(tok, start)
	return nil
}

func (l *lexer) scanString(tok *token.Token, start int) error {
	for l.pos < len(l.src) && l.src[l.pos] != '"' {
		if l.src[l.pos] == '\\' {
			l.advance()
			if l.pos < len(l.src) {
				l.advance()
			}
			continue
		}
		l.advance()
	}
	if l.pos >= len(l.src) {
		return diag.Errorf(diag.Lex, tok.Origin.Loc(), "unterminated string literal")
	}
	l.advance() // closing quote
	tok.Text = string(l.src[start:l.pos])
	tok.Kind = token.KindLiteralString
	tok.StringValue = unescape(tok.Text[1 : len(tok.Text)-1])
	return nil
}

func (l *lexer) scanChar(tok *token.Token, start int) error {
	if l.pos < len(l.src) && l.src[l.pos] == '\\' {
		l.advance()
	}
	if l.pos < len(l.src) {
		l.advance()
	}
	if l.pos >= len(l.src) || l.src[l.pos] != '\'' {
		return diag.Errorf(diag.Lex, tok.Origin.Loc(), "unterminated character literal")
	}
	l.advance()
	tok.Text = string(l.src[start:l.pos])
	tok.Kind = token.KindLiteralChar
	tok.StringValue = unescape(tok.Text[1 : len(tok.Text)-1])
	return nil
}

// fuseComment implements spec §4.1's comment rule: once a lone "/" token has
// already been emitted, a following "/" or "*" retroactively re-tags that
// previous token as a Comment spanning to end-of-line or to "*/".
func (l *lexer) fuseComment(tok *token.Token, start int) bool {
	if len(l.tokens) == 0 || tok.Text != "/" && tok.Text != "*" {
		return false
	}
	last := &l.tokens[len(l.tokens)-1]
	if last.Text != "/" {
		return false
	}

	if tok.Text == "/" {
		for l.pos < len(l.src) && l.src[l.pos] != '\n' {
			l.advance()
		}
		last.Text = last.Text + string(l.src[start:l.pos])
		last.Kind = token.KindComment
		*tok = token.Token{}
		return true
	}

	// block comment: "/*" ... "*/"
	for {
		if l.pos+1 >= len(l.src) {
			// allow the very last two bytes to be the terminator
			if l.pos < len(l.src) {
				// fallthrough to the explicit end check below
			}
		}
		if l.pos >= len(l.src) {
			diagErr := diag.Errorf(diag.Lex, last.Origin.Loc(), "unterminated block comment")
			panic(diagErr)
		}
		if l.src[l.pos] == '*' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
			l.advance()
			l.advance()
			break
		}
		l.advance()
	}
	last.Text = last.Text + string(l.src[start:l.pos])
	last.Kind = token.KindComment
	*tok = token.Token{}
	return true
}

func (l *lexer) fuseEllipsis(tok *token.Token, start int) bool {
	if tok.Text != "." || l.pos+1 >= len(l.src) {
		return false
	}
	if l.src[l.pos] == '.' && l.src[l.pos+1] == '.' {
		l.advance()
		l.advance()
		tok.Text = string(l.src[start:l.pos])
		tok.Kind = token.KindKeyword
		return true
	}
	return false
}

var shiftAssignBases = map[string]bool{"<<": true, ">>": true}

func (l *lexer) fuseShiftAssign(tok *token.Token) bool {
	if tok.Text != "=" || len(l.tokens) == 0 {
		return false
	}
	last := &l.tokens[len(l.tokens)-1]
	if !shiftAssignBases[last.Text] {
		return false
	}
	last.Text += "="
	last.Kind = token.KindKeyword
	*tok = token.Token{}
	return true
}

var twoCharOperators = map[string]bool{
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true,
	"==": true, "!=": true, "<=": true, ">=": true,
	"&&": true, "||": true,
	"<<": true, ">>": true,
	"++": true, "--": true,
	"->": true,
}

func (l *lexer) fuseTwoCharOperator(tok *token.Token) bool {
	if len(tok.Text) != 1 || len(l.tokens) == 0 {
		return false
	}
	last := &l.tokens[len(l.tokens)-1]
	if len(last.Text) != 1 {
		return false
	}
	combined := last.Text + tok.Text
	if !twoCharOperators[combined] {
		return false
	}
	last.Text = combined
	last.Kind = token.KindKeyword
	*tok = token.Token{}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// scanNumeric recognizes an integer/float literal starting at tok's text,
// per the sub-state-machine of spec §3/§4.1. It never consumes a leading
// sign: spec §9's open question resolves "-"/"+" as a separate token
// everywhere, including inside #if expressions.
func (l *lexer) scanNumeric(tok *token.Token, start int) bool {
	if len(tok.Text) == 0 {
		return false
	}
	c0 := tok.Text[0]
	if !isDigit(c0) && c0 != '.' {
		return false
	}
	if c0 == '.' && (l.pos >= len(l.src) || !isDigit(l.src[l.pos])) && len(tok.Text) == 1 {
		return false
	}

	info := &token.NumericLiteral{Base: 10}
	p := start

	readByte := func(i int) byte {
		if i < len(l.src) {
			return l.src[i]
		}
		return 0
	}

	// prefix: 0x/0X/0b/0B, or a bare leading 0 (octal)
	if readByte(p) == '0' {
		info.HasPrefix = true
		p++
		switch readByte(p) {
		case 'x', 'X':
			info.Base = 16
			p++
		case 'b', 'B':
			info.Base = 2
			p++
		default:
			info.Base = 8
		}
	}

	for isDigit(readByte(p)) {
		info.HasLeadingDigits = true
		p++
	}

	if readByte(p) == '.' {
		info.HasDecimalPoint = true
		info.Base = 10
		p++
		for isDigit(readByte(p)) {
			info.HasTrailingDigits = true
			p++
		}
	}

	if readByte(p) == 'e' || readByte(p) == 'E' {
		info.HasExponent = true
		p++
		if readByte(p) == '+' || readByte(p) == '-' {
			info.HasExponentSign = true
			p++
		}
		digitsStart := p
		for isDigit(readByte(p)) {
			info.HasExponentDigits = true
			p++
		}
		if p == digitsStart {
			loc := diag.Loc{File: l.file, Line: tok.Origin.Line, Column: tok.Origin.Column}
			panic(diag.Errorf(diag.Lex, loc, "malformed numeric literal: exponent has no digits"))
		}
	}

	suffixStart := p
	for strings.IndexByte("fFuUlL", readByte(p)) >= 0 && p < len(l.src) {
		p++
	}
	info.HasSuffix = p > suffixStart

	if p == start {
		return false
	}

	// advance the lexer's cursor/line/column state up to p
	for l.pos < p {
		l.advance()
	}
	tok.Text = string(l.src[start:p])
	tok.Numeric = info
	if info.HasDecimalPoint || info.HasExponent {
		tok.Kind = token.KindLiteralFloat
	} else {
		tok.Kind = token.KindLiteralInteger
	}
	return true
}

// scanIncludeArgument implements spec §4.1's positional #include argument:
// a "<" immediately following "# include" at the start of a line consumes
// everything up to and including the matching ">" as one token, whitespace
// preserved.
func (l *lexer) scanIncludeArgument(tok *token.Token, start int) {
	if tok.Text != "<" || len(l.tokens) < 2 {
		return
	}
	hash := l.tokens[len(l.tokens)-2]
	include := l.tokens[len(l.tokens)-1]
	if hash.Text != "#" || include.Text != "include" {
		return
	}
	startsLine := len(l.tokens) == 2 || hash.Origin.Line > l.tokens[len(l.tokens)-3].Origin.Line
	if !startsLine {
		return
	}
	for l.pos < len(l.src) && l.src[l.pos] != '>' {
		l.advance()
	}
	if l.pos < len(l.src) {
		l.advance()
	}
	tok.Text = string(l.src[start:l.pos])
	tok.Kind = token.KindPrepIncludeArgument
}

// finalize maps every remaining Undefined token onto Keyword or Symbol, and
// is fatal on anything left over — the lexer never emits KindUndefined.
func (l *lexer) finalize() error {
	for i := range l.tokens {
		t := &l.tokens[i]
		if t.Kind != token.KindUndefined {
			continue
		}
		if token.IsKeywordLexeme(t.Text) {
			t.Kind = token.KindKeyword
			continue
		}
		c := t.Text[0]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			t.Kind = token.KindSymbol
			continue
		}
		if token.IsCharToken(c) {
			t.Kind = token.KindKeyword
			continue
		}
		return diag.Errorf(diag.Lex, t.Origin.Loc(), "undefined token %q", t.Text)
	}
	return nil
}

// Dump renders toks one per line for the CLI's debug-only --dump-tokens
// path, mirroring original_source's commented-out Tokenizer_print call in
// main.c (spec.md §11.4 of SPEC_FULL.md).
func Dump(toks []token.Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '0':
				b.WriteByte(0)
			case '\\', '\'', '"':
				b.WriteByte(s[i])
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
