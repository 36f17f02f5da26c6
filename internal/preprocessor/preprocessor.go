// Package preprocessor implements the conditional-compilation and #include
// interpreter described by spec §4.2. It is a direct rewrite of
// original_source's Preprocessor_consume/_processInclude/_processDefine,
// completed to the full expression grammar and directive set the C source's
// own header (preprocessor.h) declares but its .c file never finished.
//
// Macro bodies are recorded but never substituted back into the token
// stream — only conditional-compilation directives gate emission, per the
// distilled spec's explicit non-goal.
package preprocessor

import (
	"path/filepath"

	"github.com/slaide/pacc-sub000/internal/cursor"
	"github.com/slaide/pacc-sub000/internal/diag"
	"github.com/slaide/pacc-sub000/internal/lexer"
	"github.com/slaide/pacc-sub000/internal/source"
	"github.com/slaide/pacc-sub000/internal/token"
)

// ParamKind distinguishes a named function-like macro parameter from a
// trailing variadic marker.
type ParamKind int

const (
	ParamName ParamKind = iota
	ParamVarargs
)

// Param is one entry of a function-like Define's parameter list.
type Param struct {
	Kind ParamKind
	Name token.Token
}

// Define is a recorded macro: its name, optional parameter list (nil for an
// object-like macro), and body tokens. Body tokens are kept verbatim and
// never expanded, matching original_source's struct PreprocessorDefine.
type Define struct {
	Name   token.Token
	Params []Param
	Body   []token.Token
	active bool
}

// Preprocessor holds the include-search configuration and accumulated
// define/include-guard state across one top-level run, including everything
// #include recursion pulls in.
type Preprocessor struct {
	loader          source.Loader
	includePaths    []string
	defines         []*Define
	alreadyIncluded map[string]bool
}

// New returns a Preprocessor that resolves #include paths through loader.
func New(loader source.Loader) *Preprocessor {
	return &Preprocessor{
		loader:          loader,
		alreadyIncluded: map[string]bool{},
	}
}

// AddIncludePath appends dir to the include search path, in the order -I
// flags were given on the command line (spec §6).
func (p *Preprocessor) AddIncludePath(dir string) {
	p.includePaths = append(p.includePaths, dir)
}

// Predefine registers NAME as if by "-DNAME": an always-active object-like
// macro with an empty body (spec §6).
func (p *Preprocessor) Predefine(name string) {
	p.defines = append(p.defines, &Define{
		Name:   token.Token{Kind: token.KindSymbol, Text: name},
		active: true,
	})
}

// Run tokenizes src and preprocesses it as the top-level translation unit,
// returning the accumulated, directive-free output token stream.
func (p *Preprocessor) Run(src *source.Source) ([]token.Token, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return p.consume(cursor.New(toks, true), src.Path)
}

func dirOf(path string) string {
	if path == "" {
		return "."
	}
	return filepath.Dir(path)
}

func absOf(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// ifStackItemKind tags one frame of the conditional-inclusion stack, per
// spec §4.2's If/ElseIf/Else item shapes.
type ifStackItemKind int

const (
	stackIf ifStackItemKind = iota
	stackElseIf
	stackElse
)

type ifStackItem struct {
	kind          ifStackItemKind
	expr          *expr
	value         int64
	anyPriorTaken bool
}

// authorizes reports whether this stack frame alone permits emission, per
// spec §4.2's emission rule applied item-by-item.
func (item *ifStackItem) authorizes() bool {
	switch item.kind {
	case stackIf:
		return item.value != 0
	case stackElseIf:
		return !item.anyPriorTaken && item.value != 0
	case stackElse:
		return !item.anyPriorTaken
	default:
		return false
	}
}

// consume runs the directive interpreter over cur and returns the emitted,
// directive-free token stream. filePath is the path of the file cur's
// tokens came from (used to resolve "local" #include paths and to record
// #pragma once); it may be empty for a synthetic/in-memory source.
func (p *Preprocessor) consume(cur cursor.Cursor, filePath string) ([]token.Token, error) {
	dir := dirOf(filePath)
	var out []token.Token
	var stack []*ifStackItem

	authorizesAll := func() bool {
		for i, item := range stack {
			if i+1 < len(stack) && stack[i+1].kind != stackIf {
				continue // superseded by a later #elif/#else of the same chain
			}
			if !item.authorizes() {
				return false
			}
		}
		return true
	}

	for {
		t, ok := cur.Next()
		if !ok {
			break
		}

		if t.Text == "#" {
			directive, ok := cur.Next()
			if !ok {
				return nil, diag.Errorf(diag.Directive, t.Origin.Loc(), "expected directive name after '#'")
			}

			switch directive.Text {
			case "if":
				e, err := p.readIfExpr(&cur, directive)
				if err != nil {
					return nil, err
				}
				v := p.eval(e)
				stack = append(stack, &ifStackItem{kind: stackIf, expr: e, value: v})
				continue

			case "elif":
				if len(stack) == 0 {
					return nil, diag.Errorf(diag.Directive, directive.Origin.Loc(), "#elif without matching #if")
				}
				anyPrior := stack[len(stack)-1].authorizesChainSoFar()
				e, err := p.readIfExpr(&cur, directive)
				if err != nil {
					return nil, err
				}
				var v int64
				if !anyPrior {
					v = p.eval(e)
				}
				stack = append(stack, &ifStackItem{kind: stackElseIf, expr: e, value: v, anyPriorTaken: anyPrior})
				continue

			case "else":
				if len(stack) == 0 {
					return nil, diag.Errorf(diag.Directive, directive.Origin.Loc(), "#else without matching #if")
				}
				anyPrior := stack[len(stack)-1].authorizesChainSoFar()
				stack = append(stack, &ifStackItem{kind: stackElse, anyPriorTaken: anyPrior})
				continue

			case "endif":
				if len(stack) == 0 {
					return nil, diag.Errorf(diag.Directive, directive.Origin.Loc(), "#endif without matching #if")
				}
				for len(stack) > 0 {
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					if top.kind == stackIf {
						break
					}
				}
				continue

			case "ifdef":
				name, err := p.expectSymbol(&cur, directive, "ifdef")
				if err != nil {
					return nil, err
				}
				e := &expr{kind: exprDefined, name: name.Text, loc: name.Origin.Loc()}
				stack = append(stack, &ifStackItem{kind: stackIf, expr: e, value: p.eval(e)})
				continue

			case "ifndef":
				name, err := p.expectSymbol(&cur, directive, "ifndef")
				if err != nil {
					return nil, err
				}
				inner := &expr{kind: exprDefined, name: name.Text, loc: name.Origin.Loc()}
				e := &expr{kind: exprNot, unary: inner, loc: name.Origin.Loc()}
				stack = append(stack, &ifStackItem{kind: stackIf, expr: e, value: p.eval(e)})
				continue

			case "include":
				toks, err := p.processInclude(&cur, directive, dir)
				if err != nil {
					return nil, err
				}
				if authorizesAll() {
					out = append(out, toks...)
				}
				continue

			case "define":
				if err := p.processDefine(&cur, directive); err != nil {
					return nil, err
				}
				continue

			case "undef":
				name, err := p.expectSymbol(&cur, directive, "undef")
				if err != nil {
					return nil, err
				}
				for _, d := range p.defines {
					if d.active && d.Name.Text == name.Text {
						d.active = false
						break
					}
				}
				continue

			case "pragma":
				arg, ok := cur.Next()
				if !ok {
					return nil, diag.Errorf(diag.Directive, directive.Origin.Loc(), "expected argument after #pragma")
				}
				if arg.Text != "once" {
					return nil, diag.Errorf(diag.Directive, arg.Origin.Loc(), "unsupported #pragma %q", arg.Text)
				}
				if abs := absOf(filePath); abs != "" {
					p.alreadyIncluded[abs] = true
				}
				continue

			default:
				return nil, diag.Errorf(diag.Directive, directive.Origin.Loc(), "unknown preprocessor directive %q", directive.Text)
			}
		}

		if authorizesAll() {
			out = append(out, t)
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, diag.Errorf(diag.Directive, diag.Loc{}, "unterminated conditional block (missing #endif), last frame kind %d", top.kind)
	}

	return out, nil
}

// authorizesChainSoFar reports whether this If/ElseIf frame (the chain's
// most recent frame before a new #elif/#else is pushed) has already been
// taken, i.e. whether later branches in the same chain must be suppressed.
func (item *ifStackItem) authorizesChainSoFar() bool {
	switch item.kind {
	case stackIf:
		return item.value != 0
	case stackElseIf:
		return item.anyPriorTaken || item.value != 0
	default:
		return false
	}
}

func (p *Preprocessor) readIfExpr(cur *cursor.Cursor, directive token.Token) (*expr, error) {
	line := directive.Origin.Line
	var toks []token.Token
	for !cur.IsEmpty() {
		t, ok := cur.Peek()
		if !ok || t.Origin.Line != line {
			break
		}
		_, _ = cur.Next()
		if t.Text == "\\" {
			if next, ok := cur.Peek(); ok {
				line = next.Origin.Line
			}
			continue
		}
		toks = append(toks, t)
	}
	if len(toks) == 0 {
		return nil, diag.Errorf(diag.Directive, directive.Origin.Loc(), "expected expression after #%s", directive.Text)
	}
	return parseExpr(toks, directive.Origin.File)
}

func (p *Preprocessor) expectSymbol(cur *cursor.Cursor, directive token.Token, directiveName string) (token.Token, error) {
	t, ok := cur.Next()
	if !ok || t.Kind != token.KindSymbol {
		return token.Token{}, diag.Errorf(diag.Directive, directive.Origin.Loc(), "expected identifier after #%s", directiveName)
	}
	return t, nil
}

func (p *Preprocessor) processDefine(cur *cursor.Cursor, directive token.Token) error {
	name, err := p.expectSymbol(cur, directive, "define")
	if err != nil {
		return err
	}

	var params []Param
	hasParams := false
	if cur.At("(") {
		hasParams = true
		_, _ = cur.Next()
		for !cur.At(")") {
			t, ok := cur.Next()
			if !ok {
				return diag.Errorf(diag.Directive, directive.Origin.Loc(), "unterminated macro parameter list")
			}
			switch {
			case t.Text == "...":
				params = append(params, Param{Kind: ParamVarargs, Name: t})
			case t.Kind == token.KindSymbol:
				params = append(params, Param{Kind: ParamName, Name: t})
			default:
				return diag.Errorf(diag.Directive, t.Origin.Loc(), "unexpected token %q in macro parameter list", t.Text)
			}
			if cur.At(",") {
				_, _ = cur.Next()
			}
		}
		_, _ = cur.Next() // consume ")"
	}

	line := name.Origin.Line
	var body []token.Token
	for {
		t, ok := cur.Peek()
		if !ok || t.Origin.Line != line {
			break
		}
		_, _ = cur.Next()
		body = append(body, t)
	}

	d := &Define{Name: name, Body: body, active: true}
	if hasParams {
		d.Params = params
		if d.Params == nil {
			d.Params = []Param{}
		}
	}
	p.defines = append(p.defines, d)
	return nil
}

func (p *Preprocessor) processInclude(cur *cursor.Cursor, directive token.Token, dir string) ([]token.Token, error) {
	arg, ok := cur.Next()
	if !ok || (arg.Kind != token.KindPrepIncludeArgument && arg.Kind != token.KindLiteralString) {
		return nil, diag.Errorf(diag.Directive, directive.Origin.Loc(), "expected include argument after #include directive")
	}

	local := len(arg.Text) > 0 && arg.Text[0] == '"'
	if len(arg.Text) < 2 {
		return nil, diag.Errorf(diag.Directive, arg.Origin.Loc(), "malformed include argument %q", arg.Text)
	}
	path := arg.Text[1 : len(arg.Text)-1]

	var candidates []string
	if local {
		candidates = append(candidates, filepath.Join(dir, path))
	}
	for _, inc := range p.includePaths {
		candidates = append(candidates, filepath.Join(inc, path))
	}

	var resolved string
	for _, c := range candidates {
		if p.loader.Exists(c) {
			resolved = c
			break
		}
	}
	if resolved == "" {
		return nil, diag.Errorf(diag.Directive, arg.Origin.Loc(), "could not find include file %q", path)
	}

	if p.alreadyIncluded[absOf(resolved)] {
		return nil, nil
	}

	includedSrc, err := p.loader.Load(resolved)
	if err != nil {
		return nil, err
	}

	includedToks, err := lexer.Tokenize(includedSrc)
	if err != nil {
		return nil, err
	}

	return p.consume(cursor.New(includedToks, true), resolved)
}

// eval computes an expr's integer value, short-circuiting && || ?: exactly
// as spec §4.2 requires.
func (p *Preprocessor) eval(e *expr) int64 {
	switch e.kind {
	case exprLiteral:
		return e.value
	case exprDefined:
		return boolInt(p.isDefined(e.name))
	case exprIdent:
		return p.literalDefineValue(e.name)
	case exprNot:
		if p.eval(e.unary) == 0 {
			return 1
		}
		return 0
	case exprAnd:
		if p.eval(e.lhs) == 0 {
			return 0
		}
		return boolInt(p.eval(e.rhs) != 0)
	case exprOr:
		if p.eval(e.lhs) != 0 {
			return 1
		}
		return boolInt(p.eval(e.rhs) != 0)
	case exprAdd:
		return p.eval(e.lhs) + p.eval(e.rhs)
	case exprSub:
		return p.eval(e.lhs) - p.eval(e.rhs)
	case exprMul:
		return p.eval(e.lhs) * p.eval(e.rhs)
	case exprDiv:
		rhs := p.eval(e.rhs)
		if rhs == 0 {
			return 0
		}
		return p.eval(e.lhs) / rhs
	case exprMod:
		rhs := p.eval(e.rhs)
		if rhs == 0 {
			return 0
		}
		return p.eval(e.lhs) % rhs
	case exprEqual:
		return boolInt(p.eval(e.lhs) == p.eval(e.rhs))
	case exprUnequal:
		return boolInt(p.eval(e.lhs) != p.eval(e.rhs))
	case exprLess:
		return boolInt(p.eval(e.lhs) < p.eval(e.rhs))
	case exprLessEqual:
		return boolInt(p.eval(e.lhs) <= p.eval(e.rhs))
	case exprGreater:
		return boolInt(p.eval(e.lhs) > p.eval(e.rhs))
	case exprGreaterEqual:
		return boolInt(p.eval(e.lhs) >= p.eval(e.rhs))
	case exprTernary:
		if p.eval(e.cond) != 0 {
			return p.eval(e.then)
		}
		return p.eval(e.els)
	default:
		return 0
	}
}

// isDefined reports whether name is an active macro, the semantics of the
// "defined" operator (spec §4.2) regardless of that macro's body shape.
func (p *Preprocessor) isDefined(name string) bool {
	for _, d := range p.defines {
		if d.active && d.Name.Text == name {
			return true
		}
	}
	return false
}

// literalDefineValue resolves a bare identifier terminal: if it names a
// macro whose body is exactly one integer literal, that literal's value is
// used; any other defined-but-non-literal macro, or an undefined name,
// evaluates to 0 (spec §4.2: "undefined identifiers evaluate to 0", extended
// here since body substitution is explicitly out of scope).
func (p *Preprocessor) literalDefineValue(name string) int64 {
	for _, d := range p.defines {
		if d.active && d.Name.Text == name && len(d.Body) == 1 && d.Body[0].Kind == token.KindLiteralInteger {
			_, i, _, err := d.Body[0].Value()
			if err == nil {
				return i
			}
		}
	}
	return 0
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
