package cparser

import (
	"github.com/slaide/pacc-sub000/internal/ast"
	"github.com/slaide/pacc-sub000/internal/cursor"
	"github.com/slaide/pacc-sub000/internal/diag"
	"github.com/slaide/pacc-sub000/internal/token"
)

// parseExpression is the entry point used wherever spec §4.4 calls for a
// single Value (if/while conditions, return values, ValueStatement, call
// arguments, initializers) -- the assignment level, since this grammar has
// no comma operator.
func (p *Parser) parseExpression(c *cursor.Cursor, scope ast.ScopeID) (ast.ValueID, error) {
	return p.parseAssignment(c, scope)
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true,
}

func (p *Parser) parseAssignment(c *cursor.Cursor, scope ast.ScopeID) (ast.ValueID, error) {
	left, err := p.parseTernary(c, scope)
	if err != nil {
		return ast.InvalidID, err
	}
	if tok, ok := c.Peek(); ok && assignOps[tok.Text] {
		c.Next()
		right, err := p.parseAssignment(c, scope)
		if err != nil {
			return ast.InvalidID, err
		}
		return p.arena.AddValue(ast.Value{Kind: ast.ValueOperator, Op: tok.Text, Left: left, Right: right}), nil
	}
	return left, nil
}

func (p *Parser) parseTernary(c *cursor.Cursor, scope ast.ScopeID) (ast.ValueID, error) {
	cond, err := p.parseBinary(c, scope, 0)
	if err != nil {
		return ast.InvalidID, err
	}
	if c.At("?") {
		c.Next()
		onTrue, err := p.parseAssignment(c, scope)
		if err != nil {
			return ast.InvalidID, err
		}
		if _, err := c.Expect(":"); err != nil {
			return ast.InvalidID, err
		}
		onFalse, err := p.parseAssignment(c, scope)
		if err != nil {
			return ast.InvalidID, err
		}
		return p.arena.AddValue(ast.Value{Kind: ast.ValueConditional, Cond: cond, OnTrue: onTrue, OnFalse: onFalse}), nil
	}
	return cond, nil
}

// binaryPrecedence climbs from lowest (0: ||) to highest (9: * / %), per
// spec §4.4's operator table between ternary and unary.
var binaryPrecedence = []map[string]bool{
	{"||": true},
	{"&&": true},
	{"|": true},
	{"^": true},
	{"&": true},
	{"==": true, "!=": true},
	{"<": true, "<=": true, ">": true, ">=": true},
	{"<<": true, ">>": true},
	{"+": true, "-": true},
	{"*": true, "/": true, "%": true},
}

func (p *Parser) parseBinary(c *cursor.Cursor, scope ast.ScopeID, level int) (ast.ValueID, error) {
	if level >= len(binaryPrecedence) {
		return p.parseUnary(c, scope)
	}
	left, err := p.parseBinary(c, scope, level+1)
	if err != nil {
		return ast.InvalidID, err
	}
	for {
		tok, ok := c.Peek()
		if !ok || !binaryPrecedence[level][tok.Text] {
			return left, nil
		}
		c.Next()
		right, err := p.parseBinary(c, scope, level+1)
		if err != nil {
			return ast.InvalidID, err
		}
		left = p.arena.AddValue(ast.Value{Kind: ast.ValueOperator, Op: tok.Text, Left: left, Right: right})
	}
}

var unaryOps = map[string]bool{"!": true, "~": true, "-": true, "+": true, "++": true, "--": true}

func (p *Parser) parseUnary(c *cursor.Cursor, scope ast.ScopeID) (ast.ValueID, error) {
	tok, ok := c.Peek()
	if !ok {
		return ast.InvalidID, p.errf(p.locAt(c), "expected an expression, got end of input")
	}

	switch {
	case tok.Text == "*":
		c.Next()
		inner, err := p.parseUnary(c, scope)
		if err != nil {
			return ast.InvalidID, err
		}
		return p.arena.AddValue(ast.Value{Kind: ast.ValueDereference, Left: inner}), nil

	case tok.Text == "&":
		c.Next()
		inner, err := p.parseUnary(c, scope)
		if err != nil {
			return ast.InvalidID, err
		}
		return p.arena.AddValue(ast.Value{Kind: ast.ValueAddressOf, Left: inner}), nil

	case tok.Text == "sizeof":
		return p.parseSizeof(c, scope)

	case unaryOps[tok.Text]:
		c.Next()
		inner, err := p.parseUnary(c, scope)
		if err != nil {
			return ast.InvalidID, err
		}
		return p.arena.AddValue(ast.Value{Kind: ast.ValueOperator, Op: tok.Text, Left: inner, Right: ast.InvalidID}), nil

	case tok.Text == "(":
		if castType, ok, err := p.tryParseCast(c, scope); err != nil {
			return ast.InvalidID, err
		} else if ok {
			return castType, nil
		}
	}

	return p.parsePostfix(c, scope)
}

// tryParseCast attempts `(T)E`; ok is false (no error, cursor untouched)
// when the parenthesized content isn't a type, so the caller falls back to
// ParensWrapped/primary parsing.
func (p *Parser) tryParseCast(c *cursor.Cursor, scope ast.ScopeID) (ast.ValueID, bool, error) {
	save := *c
	c.Next() // '('
	baseType, ok, err := p.parseTypeHead(c, scope)
	if err != nil || !ok {
		*c = save
		return ast.InvalidID, false, nil
	}
	typeID := p.arena.AddType(baseType)
	for c.At("*") {
		c.Next()
		typeID = p.arena.AddType(ast.Type{Kind: ast.TypePointer, Elem: typeID})
	}
	if !c.At(")") {
		*c = save
		return ast.InvalidID, false, nil
	}
	c.Next()
	inner, err := p.parseUnary(c, scope)
	if err != nil {
		return ast.InvalidID, false, err
	}
	return p.arena.AddValue(ast.Value{Kind: ast.ValueCast, CastTo: typeID, Inner: inner}), true, nil
}

// parseSizeof handles both `sizeof(T)` and `sizeof E`, since its operand may
// be a type (TypeRef) or an ordinary Value.
func (p *Parser) parseSizeof(c *cursor.Cursor, scope ast.ScopeID) (ast.ValueID, error) {
	c.Next()
	if c.At("(") {
		save := *c
		c.Next()
		if baseType, ok, err := p.parseTypeHead(c, scope); err == nil && ok {
			typeID := p.arena.AddType(baseType)
			for c.At("*") {
				c.Next()
				typeID = p.arena.AddType(ast.Type{Kind: ast.TypePointer, Elem: typeID})
			}
			if c.At(")") {
				c.Next()
				ref := p.arena.AddValue(ast.Value{Kind: ast.ValueTypeRef, TypeRef: typeID})
				return p.arena.AddValue(ast.Value{Kind: ast.ValueOperator, Op: "sizeof", Left: ref, Right: ast.InvalidID}), nil
			}
		}
		*c = save
	}
	inner, err := p.parseUnary(c, scope)
	if err != nil {
		return ast.InvalidID, err
	}
	return p.arena.AddValue(ast.Value{Kind: ast.ValueOperator, Op: "sizeof", Left: inner, Right: ast.InvalidID}), nil
}

func (p *Parser) parsePostfix(c *cursor.Cursor, scope ast.ScopeID) (ast.ValueID, error) {
	val, err := p.parsePrimary(c, scope)
	if err != nil {
		return ast.InvalidID, err
	}
	for {
		tok, ok := c.Peek()
		if !ok {
			return val, nil
		}
		switch tok.Text {
		case "++", "--":
			c.Next()
			val = p.arena.AddValue(ast.Value{Kind: ast.ValueOperator, Op: "post" + tok.Text, Left: val, Right: ast.InvalidID})

		case "(":
			c.Next()
			args, err := p.parseArgList(c, scope)
			if err != nil {
				return ast.InvalidID, err
			}
			if err := p.checkCall(val, args); err != nil {
				return ast.InvalidID, err
			}
			val = p.arena.AddValue(ast.Value{Kind: ast.ValueFunctionCall, Function: val, Args: args})

		case "[":
			c.Next()
			idx, err := p.parseExpression(c, scope)
			if err != nil {
				return ast.InvalidID, err
			}
			if _, err := c.Expect("]"); err != nil {
				return ast.InvalidID, err
			}
			val = p.arena.AddValue(ast.Value{Kind: ast.ValueOperator, Op: "[]", Left: val, Right: idx})

		case ".":
			c.Next()
			field, ok := c.Next()
			if !ok || field.Kind != token.KindSymbol {
				return ast.InvalidID, p.errf(p.locAt(c), "expected a field name after '.'")
			}
			val = p.arena.AddValue(ast.Value{Kind: ast.ValueDot, Base: val, FieldName: field.Text})

		case "->":
			c.Next()
			field, ok := c.Next()
			if !ok || field.Kind != token.KindSymbol {
				return ast.InvalidID, p.errf(p.locAt(c), "expected a field name after '->'")
			}
			val = p.arena.AddValue(ast.Value{Kind: ast.ValueArrow, Base: val, FieldName: field.Text})

		default:
			return val, nil
		}
	}
}

func (p *Parser) parseArgList(c *cursor.Cursor, scope ast.ScopeID) ([]ast.ValueID, error) {
	var args []ast.ValueID
	for !c.At(")") {
		v, err := p.parseAssignment(c, scope)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		if !c.At(",") {
			break
		}
		c.Next()
	}
	if _, err := c.Expect(")"); err != nil {
		return nil, err
	}
	return args, nil
}

// checkCall implements spec §4.4's call-arity/convertibility rule.
func (p *Parser) checkCall(fn ast.ValueID, args []ast.ValueID) error {
	fnType, err := ast.TypeOf(p.arena, ast.InvalidID, fn)
	if err != nil {
		return err
	}
	t := p.arena.Type(fnType)
	if t.Kind == ast.TypeReference {
		t = p.arena.Type(t.Elem)
	}
	if t.Kind != ast.TypeFunction {
		return diag.Errorf(diag.Semantic, diag.Loc{File: p.file}, "called expression is not a function")
	}
	n := len(t.Params)
	variadic := n > 0 && p.arena.Symbol(t.Params[n-1]).Kind == ast.SymbolVararg
	required := n
	if variadic {
		required = n - 1
	}
	if variadic {
		if len(args) < required {
			return diag.Errorf(diag.Semantic, diag.Loc{File: p.file}, "too few arguments to function call")
		}
	} else if len(args) != required {
		return diag.Errorf(diag.Semantic, diag.Loc{File: p.file}, "wrong number of arguments to function call")
	}
	for i := 0; i < required; i++ {
		argType, err := ast.TypeOf(p.arena, ast.InvalidID, args[i])
		if err != nil {
			return err
		}
		paramType := p.arena.Symbol(t.Params[i]).Type
		if !ast.ConvertibleTo(p.arena, argType, paramType) {
			return diag.Errorf(diag.Semantic, diag.Loc{File: p.file}, "argument %d is not convertible to the parameter type", i+1)
		}
	}
	return nil
}
