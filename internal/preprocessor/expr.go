package preprocessor

import (
	"github.com/slaide/pacc-sub000/internal/cursor"
	"github.com/slaide/pacc-sub000/internal/diag"
	"github.com/slaide/pacc-sub000/internal/token"
)

// exprKind tags a parsed conditional-expression node, the Go narrowing of
// original_source's enum PreprocessorExpressionTag down to the operator set
// spec §4.2 actually defines (the C source itself only ever implements the
// PREPROCESSOR_EXPRESSION_TAG_LITERAL arm; this rewrite completes the rest of
// its own enum).
type exprKind int

const (
	exprLiteral exprKind = iota
	exprDefined
	exprIdent
	exprNot
	exprAnd
	exprOr
	exprAdd
	exprSub
	exprMul
	exprDiv
	exprMod
	exprEqual
	exprUnequal
	exprLess
	exprLessEqual
	exprGreater
	exprGreaterEqual
	exprTernary
)

type expr struct {
	kind exprKind

	value int64 // only meaningful for exprLiteral
	name  string
	loc   diag.Loc

	unary *expr
	lhs   *expr
	rhs   *expr

	cond *expr
	then *expr
	els  *expr
}

// exprParser builds a PreprocessorExpression tree from the tokens of one
// logical directive line, by precedence-climbing over the levels spec §4.2
// lists highest-to-lowest: unary !, * / %, + -, relational, equality, &&,
// ||, ?:.
type exprParser struct {
	c    cursor.Cursor
	file string
}

func parseExpr(toks []token.Token, file string) (*expr, error) {
	p := &exprParser{c: cursor.New(toks, true), file: file}
	e, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if !p.c.IsEmpty() {
		t, _ := p.c.Peek()
		return nil, diag.Errorf(diag.Directive, t.Origin.Loc(), "unexpected token %q in #if expression", t.Text)
	}
	return e, nil
}

func (p *exprParser) loc() diag.Loc {
	if t, ok := p.c.Peek(); ok {
		return t.Origin.Loc()
	}
	if t, ok := p.c.Last(); ok {
		return t.Origin.Loc()
	}
	return diag.Loc{File: p.file}
}

func (p *exprParser) parseTernary() (*expr, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.c.At("?") {
		return cond, nil
	}
	_, _ = p.c.Next()
	then, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.Expect(":"); err != nil {
		return nil, err
	}
	els, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return &expr{kind: exprTernary, cond: cond, then: then, els: els, loc: p.loc()}, nil
}

func (p *exprParser) parseOr() (*expr, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.c.At("||") {
		_, _ = p.c.Next()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = &expr{kind: exprOr, lhs: lhs, rhs: rhs, loc: p.loc()}
	}
	return lhs, nil
}

func (p *exprParser) parseAnd() (*expr, error) {
	lhs, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.c.At("&&") {
		_, _ = p.c.Next()
		rhs, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		lhs = &expr{kind: exprAnd, lhs: lhs, rhs: rhs, loc: p.loc()}
	}
	return lhs, nil
}

func (p *exprParser) parseEquality() (*expr, error) {
	lhs, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.c.At("=="):
			_, _ = p.c.Next()
			rhs, err := p.parseRelational()
			if err != nil {
				return nil, err
			}
			lhs = &expr{kind: exprEqual, lhs: lhs, rhs: rhs, loc: p.loc()}
		case p.c.At("!="):
			_, _ = p.c.Next()
			rhs, err := p.parseRelational()
			if err != nil {
				return nil, err
			}
			lhs = &expr{kind: exprUnequal, lhs: lhs, rhs: rhs, loc: p.loc()}
		default:
			return lhs, nil
		}
	}
}

func (p *exprParser) parseRelational() (*expr, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var kind exprKind
		switch {
		case p.c.At("<="):
			kind = exprLessEqual
		case p.c.At(">="):
			kind = exprGreaterEqual
		case p.c.At("<"):
			kind = exprLess
		case p.c.At(">"):
			kind = exprGreater
		default:
			return lhs, nil
		}
		_, _ = p.c.Next()
		rhs, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		lhs = &expr{kind: kind, lhs: lhs, rhs: rhs, loc: p.loc()}
	}
}

func (p *exprParser) parseAdditive() (*expr, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var kind exprKind
		switch {
		case p.c.At("+"):
			kind = exprAdd
		case p.c.At("-"):
			kind = exprSub
		default:
			return lhs, nil
		}
		_, _ = p.c.Next()
		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		lhs = &expr{kind: kind, lhs: lhs, rhs: rhs, loc: p.loc()}
	}
}

func (p *exprParser) parseMultiplicative() (*expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var kind exprKind
		switch {
		case p.c.At("*"):
			kind = exprMul
		case p.c.At("/"):
			kind = exprDiv
		case p.c.At("%"):
			kind = exprMod
		default:
			return lhs, nil
		}
		_, _ = p.c.Next()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = &expr{kind: kind, lhs: lhs, rhs: rhs, loc: p.loc()}
	}
}

func (p *exprParser) parseUnary() (*expr, error) {
	if p.c.At("!") {
		_, _ = p.c.Next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &expr{kind: exprNot, unary: operand, loc: p.loc()}, nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (*expr, error) {
	t, ok := p.c.Next()
	if !ok {
		return nil, diag.Errorf(diag.Directive, p.loc(), "unexpected end of #if expression")
	}

	switch {
	case t.Text == "(":
		e, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if _, err := p.c.Expect(")"); err != nil {
			return nil, err
		}
		return e, nil

	case t.Text == "defined":
		paren := p.c.At("(")
		if paren {
			_, _ = p.c.Next()
		}
		name, ok := p.c.Next()
		if !ok || name.Kind != token.KindSymbol {
			return nil, diag.Errorf(diag.Directive, t.Origin.Loc(), "expected identifier after defined")
		}
		if paren {
			if _, err := p.c.Expect(")"); err != nil {
				return nil, err
			}
		}
		return &expr{kind: exprDefined, name: name.Text, loc: t.Origin.Loc()}, nil

	case t.Kind == token.KindLiteralInteger:
		_, i, _, err := t.Value()
		if err != nil {
			return nil, diag.Errorf(diag.Directive, t.Origin.Loc(), "malformed integer literal %q: %s", t.Text, err)
		}
		return &expr{kind: exprLiteral, value: i, loc: t.Origin.Loc()}, nil

	case t.Kind == token.KindSymbol:
		return &expr{kind: exprIdent, name: t.Text, loc: t.Origin.Loc()}, nil
	}

	return nil, diag.Errorf(diag.Directive, t.Origin.Loc(), "unexpected token %q in #if expression", t.Text)
}
