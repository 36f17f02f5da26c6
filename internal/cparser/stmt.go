package cparser

import (
	"github.com/slaide/pacc-sub000/internal/ast"
	"github.com/slaide/pacc-sub000/internal/cursor"
	"github.com/slaide/pacc-sub000/internal/token"
)

// parseStatement dispatches on the current token per spec §4.4's Statement
// production list and returns the (not-yet-committed) Statement; the caller
// commits it with ast.AddStatement so Ingest runs at the right scope.
func (p *Parser) parseStatement(c *cursor.Cursor, scope ast.ScopeID) (ast.Statement, error) {
	tok, ok := c.Peek()
	if !ok {
		return ast.Statement{}, p.errf(p.locAt(c), "expected a statement, got end of input")
	}

	switch tok.Text {
	case ";":
		c.Next()
		return ast.Statement{Kind: ast.StmtEmpty}, nil

	case "{":
		c.Next()
		return p.parseBlock(c, scope)

	case "default":
		c.Next()
		if _, err := c.Expect(":"); err != nil {
			return ast.Statement{}, err
		}
		return ast.Statement{Kind: ast.StmtDefault}, nil

	case "typedef":
		c.Next()
		return p.parseTypedef(c, scope)

	case "case":
		c.Next()
		val, err := p.parseAssignment(c, scope)
		if err != nil {
			return ast.Statement{}, err
		}
		if _, err := c.Expect(":"); err != nil {
			return ast.Statement{}, err
		}
		return ast.Statement{Kind: ast.StmtSwitchCase, Value: val, HasValue: true}, nil

	case "if":
		return p.parseIf(c, scope)

	case "while":
		return p.parseWhile(c, scope)

	case "do":
		return p.parseDoWhile(c, scope)

	case "for":
		return p.parseFor(c, scope)

	case "return":
		c.Next()
		if c.At(";") {
			c.Next()
			return ast.Statement{Kind: ast.StmtReturn}, nil
		}
		val, err := p.parseExpression(c, scope)
		if err != nil {
			return ast.Statement{}, err
		}
		if _, err := c.Expect(";"); err != nil {
			return ast.Statement{}, err
		}
		return ast.Statement{Kind: ast.StmtReturn, Value: val, HasValue: true}, nil

	case "break":
		c.Next()
		if _, err := c.Expect(";"); err != nil {
			return ast.Statement{}, err
		}
		return ast.Statement{Kind: ast.StmtBreak}, nil

	case "continue":
		c.Next()
		if _, err := c.Expect(";"); err != nil {
			return ast.Statement{}, err
		}
		return ast.Statement{Kind: ast.StmtContinue}, nil

	case "goto":
		c.Next()
		return p.parseGoto(c, scope)

	case "switch":
		return p.parseSwitch(c, scope)
	}

	if stmt, ok, err := p.tryParseDeclarationStatement(c, scope); err != nil {
		return ast.Statement{}, err
	} else if ok {
		return stmt, nil
	}

	return p.parseLabelOrValueStatement(c, scope)
}

func (p *Parser) parseBlock(c *cursor.Cursor, parent ast.ScopeID) (ast.Statement, error) {
	child := ast.NewScope(p.arena, parent)
	for !c.At("}") {
		if c.IsEmpty() {
			return ast.Statement{}, p.errf(p.locAt(c), "unterminated block, expected '}'")
		}
		s, err := p.parseStatement(c, child)
		if err != nil {
			return ast.Statement{}, err
		}
		if _, err := ast.AddStatement(p.arena, child, s); err != nil {
			return ast.Statement{}, err
		}
	}
	c.Next()
	return ast.Statement{Kind: ast.StmtBlock, BodyScope: child, HasBody: true}, nil
}

func (p *Parser) parseTypedef(c *cursor.Cursor, scope ast.ScopeID) (ast.Statement, error) {
	decls, _, ok, err := p.parseDeclaration(c, scope, declOpts{})
	if err != nil {
		return ast.Statement{}, err
	}
	if !ok {
		return ast.Statement{}, p.errf(p.locAt(c), "expected a type after 'typedef'")
	}
	if _, err := c.Expect(";"); err != nil {
		return ast.Statement{}, err
	}
	var syms []ast.SymbolID
	for _, d := range decls {
		syms = append(syms, p.arena.AddSymbol(d.symbol))
	}
	return ast.Statement{Kind: ast.StmtTypedef, Symbols: syms}, nil
}

func (p *Parser) parseIf(c *cursor.Cursor, scope ast.ScopeID) (ast.Statement, error) {
	c.Next()
	if _, err := c.Expect("("); err != nil {
		return ast.Statement{}, err
	}
	cond, err := p.parseExpression(c, scope)
	if err != nil {
		return ast.Statement{}, err
	}
	if _, err := c.Expect(")"); err != nil {
		return ast.Statement{}, err
	}
	thenStmt, err := p.parseStatement(c, scope)
	if err != nil {
		return ast.Statement{}, err
	}
	thenID, err := ast.NewStatement(p.arena, scope, thenStmt)
	if err != nil {
		return ast.Statement{}, err
	}
	result := ast.Statement{Kind: ast.StmtIf, Cond: cond, HasCond: true, Then: thenID}
	if c.At("else") {
		c.Next()
		elseStmt, err := p.parseStatement(c, scope)
		if err != nil {
			return ast.Statement{}, err
		}
		elseID, err := ast.NewStatement(p.arena, scope, elseStmt)
		if err != nil {
			return ast.Statement{}, err
		}
		result.Else = elseID
		result.HasElse = true
	}
	return result, nil
}

func (p *Parser) parseWhile(c *cursor.Cursor, scope ast.ScopeID) (ast.Statement, error) {
	c.Next()
	if _, err := c.Expect("("); err != nil {
		return ast.Statement{}, err
	}
	cond, err := p.parseExpression(c, scope)
	if err != nil {
		return ast.Statement{}, err
	}
	if _, err := c.Expect(")"); err != nil {
		return ast.Statement{}, err
	}
	body, err := p.parseStatement(c, scope)
	if err != nil {
		return ast.Statement{}, err
	}
	bodyID, err := ast.NewStatement(p.arena, scope, body)
	if err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{Kind: ast.StmtWhile, Cond: cond, HasCond: true, Then: bodyID}, nil
}

func (p *Parser) parseDoWhile(c *cursor.Cursor, scope ast.ScopeID) (ast.Statement, error) {
	c.Next()
	body, err := p.parseStatement(c, scope)
	if err != nil {
		return ast.Statement{}, err
	}
	bodyID, err := ast.NewStatement(p.arena, scope, body)
	if err != nil {
		return ast.Statement{}, err
	}
	if _, err := c.Expect("while"); err != nil {
		return ast.Statement{}, err
	}
	if _, err := c.Expect("("); err != nil {
		return ast.Statement{}, err
	}
	cond, err := p.parseExpression(c, scope)
	if err != nil {
		return ast.Statement{}, err
	}
	if _, err := c.Expect(")"); err != nil {
		return ast.Statement{}, err
	}
	if _, err := c.Expect(";"); err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{Kind: ast.StmtWhile, Cond: cond, HasCond: true, Then: bodyID, DoWhile: true}, nil
}

func (p *Parser) parseFor(c *cursor.Cursor, scope ast.ScopeID) (ast.Statement, error) {
	c.Next()
	if _, err := c.Expect("("); err != nil {
		return ast.Statement{}, err
	}
	forScope := ast.NewScope(p.arena, scope)

	result := ast.Statement{Kind: ast.StmtFor, ForScope: forScope}
	if !c.At(";") {
		initStmt, err := p.parseStatement(c, forScope)
		if err != nil {
			return ast.Statement{}, err
		}
		initID, err := ast.NewStatement(p.arena, forScope, initStmt)
		if err != nil {
			return ast.Statement{}, err
		}
		result.Init = initID
		result.HasInit = true
	} else {
		c.Next()
	}

	if !c.At(";") {
		cond, err := p.parseExpression(c, forScope)
		if err != nil {
			return ast.Statement{}, err
		}
		result.Cond = cond
		result.HasCond = true
	}
	if _, err := c.Expect(";"); err != nil {
		return ast.Statement{}, err
	}

	if !c.At(")") {
		step, err := p.parseExpression(c, forScope)
		if err != nil {
			return ast.Statement{}, err
		}
		result.Step = step
		result.HasStep = true
	}
	if _, err := c.Expect(")"); err != nil {
		return ast.Statement{}, err
	}

	body, err := p.parseStatement(c, forScope)
	if err != nil {
		return ast.Statement{}, err
	}
	bodyID, err := ast.NewStatement(p.arena, forScope, body)
	if err != nil {
		return ast.Statement{}, err
	}
	result.Then = bodyID
	return result, nil
}

func (p *Parser) parseGoto(c *cursor.Cursor, scope ast.ScopeID) (ast.Statement, error) {
	if tok, ok := c.Peek(); ok && tok.Kind == token.KindSymbol {
		if _, found := ast.FindSymbol(p.arena, scope, tok.Text); !found {
			c.Next()
			if _, err := c.Expect(";"); err != nil {
				return ast.Statement{}, err
			}
			return ast.Statement{Kind: ast.StmtGotoLabel, LabelName: tok.Text}, nil
		}
	}
	val, err := p.parseExpression(c, scope)
	if err != nil {
		return ast.Statement{}, err
	}
	if _, err := c.Expect(";"); err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{Kind: ast.StmtGotoComputed, Computed: val}, nil
}

func (p *Parser) parseSwitch(c *cursor.Cursor, scope ast.ScopeID) (ast.Statement, error) {
	c.Next()
	if _, err := c.Expect("("); err != nil {
		return ast.Statement{}, err
	}
	cond, err := p.parseExpression(c, scope)
	if err != nil {
		return ast.Statement{}, err
	}
	if _, err := c.Expect(")"); err != nil {
		return ast.Statement{}, err
	}
	if _, err := c.Expect("{"); err != nil {
		return ast.Statement{}, err
	}
	var body []ast.StmtID
	for !c.At("}") {
		if c.IsEmpty() {
			return ast.Statement{}, p.errf(p.locAt(c), "unterminated switch body, expected '}'")
		}
		s, err := p.parseStatement(c, scope)
		if err != nil {
			return ast.Statement{}, err
		}
		id, err := ast.NewStatement(p.arena, scope, s)
		if err != nil {
			return ast.Statement{}, err
		}
		body = append(body, id)
	}
	c.Next()
	return ast.Statement{Kind: ast.StmtSwitch, Cond: cond, HasCond: true, Body: body}, nil
}

// tryParseDeclarationStatement attempts spec §4.4's SymbolDefinition /
// FunctionDefinition production. ok is false (no error) when the input
// isn't the start of a declaration at all, letting the caller fall back to
// Value-statement/Label parsing.
func (p *Parser) tryParseDeclarationStatement(c *cursor.Cursor, scope ast.ScopeID) (ast.Statement, bool, error) {
	save := *c
	decls, baseType, ok, err := p.parseDeclaration(c, scope, declOpts{allowInitializers: true, allowBareTag: true})
	if err != nil {
		return ast.Statement{}, false, err
	}
	if !ok {
		return ast.Statement{}, false, nil
	}

	// A bare tag declaration, e.g. `struct S { int x; };` or
	// `enum E { A, B=3, C };`, declares no symbol of its own; it only needs
	// to register the tag (and, for an enum, its variants) into scope.
	if len(decls) == 0 {
		if _, err := c.Expect(";"); err != nil {
			*c = save
			return ast.Statement{}, false, nil
		}
		ast.RegisterNamedType(p.arena, scope, p.arena.AddType(baseType))
		return ast.Statement{Kind: ast.StmtEmpty}, true, nil
	}

	if len(decls) == 1 && !decls[0].hasInit && c.At("{") {
		if fnType := p.arena.Type(decls[0].symbol.Type); fnType.Kind == ast.TypeFunction {
			return p.parseFunctionDefinition(c, scope, decls[0].symbol, *fnType)
		}
	}

	if _, err := c.Expect(";"); err != nil {
		*c = save
		return ast.Statement{}, false, nil
	}

	var defs []ast.SymbolDefinition
	for _, d := range decls {
		symID := p.arena.AddSymbol(d.symbol)
		def := ast.SymbolDefinition{Symbol: symID}
		if d.hasInit {
			def.Initializer = d.initializer
			def.HasInitializer = true
		}
		defs = append(defs, def)
	}
	return ast.Statement{Kind: ast.StmtSymbolDefinition, Defs: defs}, true, nil
}

func (p *Parser) parseFunctionDefinition(c *cursor.Cursor, scope ast.ScopeID, sym ast.Symbol, fnType ast.Type) (ast.Statement, bool, error) {
	fnSymID := p.arena.AddSymbol(sym)
	ast.RegisterSymbol(p.arena, scope, fnSymID)

	body := ast.NewFunctionScope(p.arena, scope, fnType.Ret)
	for _, paramID := range fnType.Params {
		ast.RegisterSymbol(p.arena, body, paramID)
	}

	c.Next() // '{'
	for !c.At("}") {
		if c.IsEmpty() {
			return ast.Statement{}, false, p.errf(p.locAt(c), "unterminated function body, expected '}'")
		}
		s, err := p.parseStatement(c, body)
		if err != nil {
			return ast.Statement{}, false, err
		}
		if _, err := ast.AddStatement(p.arena, body, s); err != nil {
			return ast.Statement{}, false, err
		}
	}
	c.Next()

	return ast.Statement{Kind: ast.StmtFunctionDefinition, Symbol: fnSymID, BodyScope: body, HasBody: true}, true, nil
}

func (p *Parser) parseLabelOrValueStatement(c *cursor.Cursor, scope ast.ScopeID) (ast.Statement, error) {
	if tok, ok := c.Peek(); ok && tok.Kind == token.KindSymbol {
		if next, ok := c.PeekAt(1); ok && next.Text == ":" {
			c.Next()
			c.Next()
			return ast.Statement{Kind: ast.StmtLabel, LabelName: tok.Text}, nil
		}
	}
	val, err := p.parseExpression(c, scope)
	if err != nil {
		return ast.Statement{}, err
	}
	if _, err := c.Expect(";"); err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{Kind: ast.StmtValue, Value: val, HasValue: true}, nil
}
