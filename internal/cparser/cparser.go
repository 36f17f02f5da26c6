// Package cparser implements spec §4.4's single recursive-descent pass: it
// turns a joined token stream into Statements committed against a root
// Scope, using internal/ast's Arena as backing storage. Backtracking is
// done the way internal/cursor and internal/preprocessor already do it --
// by copying the Cursor value and only committing it to the caller on the
// Present path -- rather than an explicit mark/reset API, matching
// original_source's by-value TokenIter.
package cparser

import (
	"github.com/slaide/pacc-sub000/internal/ast"
	"github.com/slaide/pacc-sub000/internal/cursor"
	"github.com/slaide/pacc-sub000/internal/diag"
	"github.com/slaide/pacc-sub000/internal/token"
)

// Parser holds the shared state of one translation-unit parse: the Arena
// every produced node lands in, and the file name used for diagnostics.
type Parser struct {
	arena *ast.Arena
	file  string
}

// New returns a Parser that will build nodes into arena.
func New(arena *ast.Arena) *Parser {
	return &Parser{arena: arena}
}

// Parse consumes every token in toks against a fresh root Scope, returning
// that Scope once the cursor is empty. Each top-level construct is parsed
// and committed one at a time; a failure anywhere aborts the whole parse,
// per the single-fatal-diagnostic model of spec §7.
func (p *Parser) Parse(toks []token.Token, file string) (ast.ScopeID, error) {
	p.file = file
	root := ast.NewScope(p.arena, ast.InvalidID)
	c := cursor.New(toks, true)
	for !c.IsEmpty() {
		next, err := p.parseStatement(&c, root)
		if err != nil {
			return ast.InvalidID, err
		}
		if _, err := ast.AddStatement(p.arena, root, next); err != nil {
			return ast.InvalidID, err
		}
	}
	return root, nil
}

func (p *Parser) errf(loc diag.Loc, format string, args ...interface{}) error {
	return diag.Errorf(diag.Syntax, loc, format, args...)
}

func (p *Parser) locAt(c *cursor.Cursor) diag.Loc {
	if t, ok := c.Peek(); ok {
		return t.Origin.Loc()
	}
	return diag.Loc{File: p.file}
}
