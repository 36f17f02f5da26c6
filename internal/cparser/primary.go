package cparser

import (
	"github.com/slaide/pacc-sub000/internal/ast"
	"github.com/slaide/pacc-sub000/internal/cursor"
	"github.com/slaide/pacc-sub000/internal/token"
)

// parsePrimary implements spec §4.4's primary productions: literal,
// identifier (resolved against scope), `(E)`, and brace-enclosed
// struct/array initializers with designators.
func (p *Parser) parsePrimary(c *cursor.Cursor, scope ast.ScopeID) (ast.ValueID, error) {
	tok, ok := c.Peek()
	if !ok {
		return ast.InvalidID, p.errf(p.locAt(c), "expected an expression, got end of input")
	}

	if tok.Text == "(" {
		return p.parseParensOrInitializerLike(c, scope)
	}
	if tok.Text == "{" {
		return p.parseBraceInitializer(c, scope)
	}

	switch tok.Kind {
	case token.KindLiteralInteger, token.KindLiteralFloat, token.KindLiteralChar, token.KindLiteralString:
		c.Next()
		return p.arena.AddValue(ast.Value{Kind: ast.ValueStatic, Token: tok}), nil

	case token.KindSymbol:
		if token.IsKeywordLexeme(tok.Text) {
			return ast.InvalidID, p.errf(tok.Origin.Loc(), "unexpected keyword '%s' in expression", tok.Text)
		}
		c.Next()
		if symID, found := ast.FindSymbol(p.arena, scope, tok.Text); found {
			return p.arena.AddValue(ast.Value{Kind: ast.ValueSymbolReference, Token: tok, Symbol: symID}), nil
		}
		return p.arena.AddValue(ast.Value{Kind: ast.ValueSymbolUnknown, Token: tok}), nil
	}

	return ast.InvalidID, p.errf(tok.Origin.Loc(), "unexpected token '%s' in expression", tok.Text)
}

func (p *Parser) parseParensOrInitializerLike(c *cursor.Cursor, scope ast.ScopeID) (ast.ValueID, error) {
	c.Next()
	inner, err := p.parseExpression(c, scope)
	if err != nil {
		return ast.InvalidID, err
	}
	if _, err := c.Expect(")"); err != nil {
		return ast.InvalidID, err
	}
	return p.arena.AddValue(ast.Value{Kind: ast.ValueParensWrapped, Inner: inner}), nil
}

// parseBraceInitializer parses `{ [designators =] value , ... }`.
func (p *Parser) parseBraceInitializer(c *cursor.Cursor, scope ast.ScopeID) (ast.ValueID, error) {
	c.Next()
	var fields []ast.FieldInitializer
	for !c.At("}") {
		var designators []ast.Designator
		for {
			if c.At(".") {
				c.Next()
				name, ok := c.Next()
				if !ok || name.Kind != token.KindSymbol {
					return ast.InvalidID, p.errf(p.locAt(c), "expected a field name after '.'")
				}
				designators = append(designators, ast.Designator{Field: name.Text})
				continue
			}
			if c.At("[") {
				c.Next()
				idx, ok := c.Next()
				if !ok || idx.Kind != token.KindLiteralInteger {
					return ast.InvalidID, p.errf(p.locAt(c), "expected an integer constant index")
				}
				if _, err := c.Expect("]"); err != nil {
					return ast.InvalidID, err
				}
				designators = append(designators, ast.Designator{IsIndex: true, Index: idx})
				continue
			}
			break
		}
		if len(designators) > 0 {
			if _, err := c.Expect("="); err != nil {
				return ast.InvalidID, err
			}
		}
		val, err := p.parseAssignment(c, scope)
		if err != nil {
			return ast.InvalidID, err
		}
		fields = append(fields, ast.FieldInitializer{Designators: designators, Value: val})
		if !c.At(",") {
			break
		}
		c.Next()
	}
	if _, err := c.Expect("}"); err != nil {
		return ast.InvalidID, err
	}
	return p.arena.AddValue(ast.Value{Kind: ast.ValueStructInitializer, Fields: fields}), nil
}
