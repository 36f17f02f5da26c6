// Package cursor implements TokenCursor, the single read primitive spec §2
// says both the preprocessor and the parser are built on: "the only
// primitive used by preprocessor and parser". It is a direct descendant of
// original_source's TokenIter (TokenIter_init/_nextToken/_lastToken/_isEmpty),
// adapted to Go's slice-of-value semantics instead of a hand-rolled growable
// array.
//
// Cursor is a small value type (a slice header, two ints and a bool); copying it by
// value yields an independent read position over the same underlying token
// array. That copy-by-value is the backtracking discipline both
// internal/preprocessor and internal/cparser rely on: a callee takes a
// Cursor by value, advances its own copy, and the caller's copy is only
// ever replaced by the callee's once the callee reports success.
package cursor

import (
	"github.com/slaide/pacc-sub000/internal/diag"
	"github.com/slaide/pacc-sub000/internal/token"
)

// Cursor walks a fixed token slice forward, optionally skipping comments.
// The zero value is not usable; construct one with New.
type Cursor struct {
	tokens       []token.Token
	pos          int
	skipComments bool
	last         int // index of the most recently returned token, or -1
}

// New returns a Cursor positioned before the first significant token of
// tokens. When skipComments is true (the setting internal/cparser and
// internal/preprocessor both use) Comment tokens are invisible to every
// Peek/Next/IsEmpty call, exactly as original_source's TokenIter never
// surfaces a comment to the parser.
func New(tokens []token.Token, skipComments bool) Cursor {
	c := Cursor{tokens: tokens, skipComments: skipComments, last: -1}
	return c
}

func (c *Cursor) visible(i int) bool {
	return !(c.skipComments && i < len(c.tokens) && c.tokens[i].Kind == token.KindComment)
}

func (c *Cursor) skipForward(i int) int {
	for i < len(c.tokens) && !c.visible(i) {
		i++
	}
	return i
}

// IsEmpty reports whether there are no more significant tokens to read —
// the Go name for TokenIter_isEmpty.
func (c *Cursor) IsEmpty() bool {
	return c.skipForward(c.pos) >= len(c.tokens)
}

// Peek returns the next significant token without consuming it.
func (c *Cursor) Peek() (token.Token, bool) {
	return c.PeekAt(0)
}

// PeekAt returns the n-th significant token ahead of the cursor (0 is the
// same token Peek returns) without consuming anything.
func (c *Cursor) PeekAt(n int) (token.Token, bool) {
	i := c.skipForward(c.pos)
	for ; n > 0 && i < len(c.tokens); n-- {
		i = c.skipForward(i + 1)
	}
	if i >= len(c.tokens) {
		return token.Token{}, false
	}
	return c.tokens[i], true
}

// Next consumes and returns the next significant token — the Go name for
// TokenIter_nextToken.
func (c *Cursor) Next() (token.Token, bool) {
	i := c.skipForward(c.pos)
	if i >= len(c.tokens) {
		c.pos = i
		return token.Token{}, false
	}
	c.last = i
	c.pos = i + 1
	return c.tokens[i], true
}

// Last returns the most recently consumed token — the Go name for
// TokenIter_lastToken. It reports false if Next has never succeeded.
func (c *Cursor) Last() (token.Token, bool) {
	if c.last < 0 {
		return token.Token{}, false
	}
	return c.tokens[c.last], true
}

// loc returns the location to blame when the cursor runs out of input, or a
// zero Loc if there is truly nothing left anywhere in the token stream.
func (c *Cursor) loc() diag.Loc {
	if t, ok := c.Peek(); ok {
		return diag.Loc{File: t.Origin.File, Line: t.Origin.Line, Column: t.Origin.Column}
	}
	if t, ok := c.Last(); ok {
		return diag.Loc{File: t.Origin.File, Line: t.Origin.Line, Column: t.Origin.Column}
	}
	return diag.Loc{}
}

// Expect consumes the next significant token and requires its text to equal
// s, returning a category-Syntax *diag.Error otherwise. This is the cursor's
// one parsing convenience, shared by both preprocessor directive parsing and
// the recursive-descent parser's punctuation checks.
func (c *Cursor) Expect(s string) (token.Token, error) {
	t, ok := c.Next()
	if !ok {
		return token.Token{}, diag.Errorf(diag.Syntax, c.loc(), "expected %q, got end of input", s)
	}
	if t.Text != s {
		loc := diag.Loc{File: t.Origin.File, Line: t.Origin.Line, Column: t.Origin.Column}
		return t, diag.Errorf(diag.Syntax, loc, "expected %q, got %q", s, t.Text)
	}
	return t, nil
}

// At reports whether the next significant token's text equals s, without
// consuming it.
func (c *Cursor) At(s string) bool {
	t, ok := c.Peek()
	return ok && t.Text == s
}
