package cparser

import (
	"github.com/slaide/pacc-sub000/internal/ast"
	"github.com/slaide/pacc-sub000/internal/cursor"
	"github.com/slaide/pacc-sub000/internal/token"
)

// declOpts mirrors spec §4.4's "{forbid_multiple, allow_initializers}"
// options set for the single symbol/type parsing function.
type declOpts struct {
	forbidMultiple    bool
	allowInitializers bool
	// allowBareTag permits zero declarators to follow a named
	// struct/union/enum type head, for a statement like `struct S { ... };`
	// that declares the tag itself and no symbol. Only statement-level
	// declarations allow this; member and parameter lists do not.
	allowBareTag bool
	// allowAbstract permits a declarator with no name at all (just a type
	// and pointer stars), as in `int printf(char*, ...);` -- only a
	// parameter list allows this.
	allowAbstract bool
}

// declarator is one NAME[= initializer] pair sharing a common declaration
// head (modifiers + base type); its symbol's Type already has this
// declarator's pointer/array/function suffixes folded in.
type declarator struct {
	symbol      ast.Symbol
	hasInit     bool
	initializer ast.ValueID
}

// parseDeclaration implements spec §4.4's "Symbol/Type parsing" production:
// modifiers, a type head (named reference or struct/union/enum, optionally
// defining a body), pointer stars, then one or more NAME [suffixes] [=init]
// declarators sharing that head. It reports ok=false (no error) when the
// input plainly isn't the start of a declaration, so callers can fall back
// to Value parsing.
func (p *Parser) parseDeclaration(c *cursor.Cursor, scope ast.ScopeID, opts declOpts) ([]declarator, ast.Type, bool, error) {
	save := *c
	baseType, hasBase, err := p.parseTypeHead(c, scope)
	if err != nil {
		return nil, ast.Type{}, false, err
	}
	if !hasBase {
		*c = save
		return nil, ast.Type{}, false, nil
	}

	var decls []declarator
	for {
		sym, consumedDeclarator, err := p.parseDeclarator(c, scope, baseType, opts)
		if err != nil {
			return nil, ast.Type{}, false, err
		}
		if !consumedDeclarator {
			break
		}

		d := declarator{symbol: sym}
		if opts.allowInitializers && c.At("=") {
			c.Next()
			val, err := p.parseAssignment(c, scope)
			if err != nil {
				return nil, ast.Type{}, false, err
			}
			d.hasInit = true
			d.initializer = val
		}
		decls = append(decls, d)

		if opts.forbidMultiple || !c.At(",") {
			break
		}
		c.Next()
	}

	if len(decls) == 0 {
		isTag := baseType.Kind == ast.TypeStruct || baseType.Kind == ast.TypeUnion || baseType.Kind == ast.TypeEnum
		if opts.allowBareTag && isTag {
			return nil, baseType, true, nil
		}
		*c = save
		return nil, ast.Type{}, false, nil
	}
	return decls, baseType, true, nil
}

var modifierKeywords = map[string]bool{
	"const": true, "static": true, "thread_local": true,
	"signed": true, "unsigned": true, "short": true, "long": true, "extern": true,
}

// parseTypeHead consumes modifiers plus the base type (named reference, or a
// struct/union/enum head with an optional body), returning the resulting
// Type with pointer stars NOT yet applied -- those are per-declarator.
func (p *Parser) parseTypeHead(c *cursor.Cursor, scope ast.ScopeID) (ast.Type, bool, error) {
	var t ast.Type
	sawModifier := false
	for {
		tok, ok := c.Peek()
		if !ok || !modifierKeywords[tok.Text] {
			break
		}
		c.Next()
		sawModifier = true
		switch tok.Text {
		case "const":
			t.IsConst = true
		case "static":
			t.IsStatic = true
		case "extern":
			t.IsExtern = true
		case "thread_local":
			t.IsThreadLocal = true
		case "signed":
			t.IsSigned = true
		case "unsigned":
			t.IsUnsigned = true
		case "short":
			if t.SizeMod > -2 {
				t.SizeMod--
			}
		case "long":
			if t.SizeMod < 2 {
				t.SizeMod++
			}
		}
	}

	tok, ok := c.Peek()
	if !ok {
		if sawModifier {
			return t, false, p.errf(p.locAt(c), "expected a type after modifiers")
		}
		return t, false, nil
	}

	switch tok.Text {
	case "struct", "union":
		c.Next()
		kind := ast.TypeStruct
		if tok.Text == "union" {
			kind = ast.TypeUnion
		}
		t.Kind = kind
		if name, ok := c.Peek(); ok && name.Kind == token.KindSymbol {
			c.Next()
			t.Name = name.Text
			t.HasName = true
		}
		if c.At("{") {
			c.Next()
			members, err := p.parseMemberList(c, scope)
			if err != nil {
				return t, false, err
			}
			t.Members = members
		} else if !t.HasName {
			return t, false, p.errf(p.locAt(c), "expected a name or body after '%s'", tok.Text)
		}
		return t, true, nil

	case "enum":
		c.Next()
		t.Kind = ast.TypeEnum
		if name, ok := c.Peek(); ok && name.Kind == token.KindSymbol {
			c.Next()
			t.Name = name.Text
			t.HasName = true
		}
		if c.At("{") {
			c.Next()
			variants, err := p.parseEnumBody(c)
			if err != nil {
				return t, false, err
			}
			t.Variants = variants
		} else if !t.HasName {
			return t, false, p.errf(p.locAt(c), "expected a name or body after 'enum'")
		}
		return t, true, nil

	default:
		if prim, ok := primitiveKeyword(tok.Text); ok {
			c.Next()
			t.Kind = ast.TypePrimitive
			t.Primitive = prim
			return t, true, nil
		}
		if tok.Kind == token.KindSymbol {
			if existing, ok := ast.FindType(p.arena, scope, tok.Text); ok {
				c.Next()
				t.Kind = ast.TypeReference
				t.Elem = existing
				return t, true, nil
			}
		}
		if sawModifier {
			// Bare modifiers with no explicit base type default to int, as in C.
			t.Kind = ast.TypePrimitive
			t.Primitive = ast.PrimI32
			return t, true, nil
		}
		return t, false, nil
	}
}

var primitiveKeywords = map[string]ast.PrimitiveKind{
	"void": ast.PrimVoid, "int": ast.PrimI32, "float": ast.PrimF32,
	"double": ast.PrimF64, "char": ast.PrimI8,
}

func primitiveKeyword(s string) (ast.PrimitiveKind, bool) {
	k, ok := primitiveKeywords[s]
	return k, ok
}

// parseMemberList parses struct/union body members until '}', each a
// forbid-multiple-false, no-initializer declaration list whose declarators
// become Members.
func (p *Parser) parseMemberList(c *cursor.Cursor, scope ast.ScopeID) ([]ast.SymbolID, error) {
	var members []ast.SymbolID
	for !c.At("}") {
		decls, _, ok, err := p.parseDeclaration(c, scope, declOpts{})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, p.errf(p.locAt(c), "expected a member declaration")
		}
		if _, err := c.Expect(";"); err != nil {
			return nil, err
		}
		for _, d := range decls {
			members = append(members, p.arena.AddSymbol(d.symbol))
		}
	}
	if _, err := c.Expect("}"); err != nil {
		return nil, err
	}
	return members, nil
}

// parseEnumBody parses `NAME [= VALUE] [, ...]` entries until '}'.
func (p *Parser) parseEnumBody(c *cursor.Cursor) ([]ast.EnumVariant, error) {
	var variants []ast.EnumVariant
	next := int64(0)
	for !c.At("}") {
		name, ok := c.Next()
		if !ok || name.Kind != token.KindSymbol {
			return nil, p.errf(p.locAt(c), "expected an enum variant name")
		}
		v := ast.EnumVariant{Name: name}
		if c.At("=") {
			c.Next()
			lit, ok := c.Next()
			if !ok || lit.Kind != token.KindLiteralInteger {
				return nil, p.errf(p.locAt(c), "expected an integer constant")
			}
			_, val, _, err := lit.Value()
			if err != nil {
				return nil, p.errf(lit.Origin.Loc(), "%s", err)
			}
			v.Value = val
			v.HasValue = true
			next = val + 1
		} else {
			v.Value = next
			next++
		}
		variants = append(variants, v)
		if !c.At(",") {
			break
		}
		c.Next()
	}
	if _, err := c.Expect("}"); err != nil {
		return nil, err
	}
	return variants, nil
}

// parseDeclarator consumes the pointer-star/name/suffix part of one
// declarator sharing baseType, folding pointer/array/function suffixes
// around it and returning the resulting Symbol. When there is no name here
// at all (e.g. an anonymous struct member list terminator), consumed is
// false (no error), unless opts.allowAbstract is set: then an unnamed
// Symbol of the pointer-folded type is returned with consumed true.
func (p *Parser) parseDeclarator(c *cursor.Cursor, scope ast.ScopeID, baseType ast.Type, opts declOpts) (ast.Symbol, bool, error) {
	typeID := p.arena.AddType(baseType)
	for c.At("*") {
		c.Next()
		typeID = p.arena.AddType(ast.Type{Kind: ast.TypePointer, Elem: typeID})
	}

	name, ok := c.Peek()
	if !ok || name.Kind != token.KindSymbol || token.IsKeywordLexeme(name.Text) {
		if opts.allowAbstract {
			return ast.Symbol{Kind: ast.SymbolReference, Type: typeID}, true, nil
		}
		return ast.Symbol{}, false, nil
	}
	c.Next()

	typeID, err := p.parseDeclaratorSuffixes(c, scope, typeID)
	if err != nil {
		return ast.Symbol{}, false, err
	}

	return ast.Symbol{Kind: ast.SymbolDeclaration, Name: name, HasName: true, Type: typeID}, true, nil
}

// parseDeclaratorSuffixes folds trailing `(args)` / `[len?]` onto typeID, in
// the order spec §4.4 describes: a function-call suffix or an array suffix,
// applied around whatever came before it.
func (p *Parser) parseDeclaratorSuffixes(c *cursor.Cursor, scope ast.ScopeID, typeID ast.TypeID) (ast.TypeID, error) {
	switch {
	case c.At("("):
		c.Next()
		params, err := p.parseParamList(c, scope)
		if err != nil {
			return ast.InvalidID, err
		}
		if _, err := c.Expect(")"); err != nil {
			return ast.InvalidID, err
		}
		return p.arena.AddType(ast.Type{Kind: ast.TypeFunction, Params: params, Ret: typeID}), nil

	case c.At("["):
		c.Next()
		arr := ast.Type{Kind: ast.TypeArray, Elem: typeID}
		if !c.At("]") {
			lenVal, err := p.parseAssignment(c, scope)
			if err != nil {
				return ast.InvalidID, err
			}
			arr.Len = lenVal
			arr.HasLen = true
			arr.IsStaticLen = true
		}
		if _, err := c.Expect("]"); err != nil {
			return ast.InvalidID, err
		}
		return p.arena.AddType(arr), nil

	default:
		return typeID, nil
	}
}

// parseParamList parses a function declarator's parameter list: comma
// separated declarations, with a trailing bare "..." becoming a Vararg
// Symbol, per spec §4.4.
func (p *Parser) parseParamList(c *cursor.Cursor, scope ast.ScopeID) ([]ast.SymbolID, error) {
	var params []ast.SymbolID
	for !c.At(")") {
		if c.At("...") {
			c.Next()
			params = append(params, p.arena.AddSymbol(ast.Symbol{Kind: ast.SymbolVararg}))
			break
		}
		decls, _, ok, err := p.parseDeclaration(c, scope, declOpts{forbidMultiple: true, allowAbstract: true})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, p.errf(p.locAt(c), "expected a parameter declaration")
		}
		sym := decls[0].symbol
		if !sym.HasName {
			sym.Kind = ast.SymbolReference
		}
		params = append(params, p.arena.AddSymbol(sym))
		if !c.At(",") {
			break
		}
		c.Next()
	}
	return params, nil
}
