package cparser

import (
	"testing"

	"github.com/slaide/pacc-sub000/internal/ast"
	"github.com/slaide/pacc-sub000/internal/lexer"
	"github.com/slaide/pacc-sub000/internal/printer"
	"github.com/slaide/pacc-sub000/internal/source"
	"github.com/slaide/pacc-sub000/internal/strjoin"
	"github.com/stretchr/testify/require"
)

// parseSrc runs the fixed tokenizer -> StringLiteralJoiner -> parser
// pipeline (spec §2) over a literal C snippet and returns the resulting
// Arena and root Scope.
func parseSrc(t *testing.T, src string) (*ast.Arena, ast.ScopeID) {
	t.Helper()
	toks, err := lexer.Tokenize(source.FromString("<test>", src))
	require.NoError(t, err)
	joined := strjoin.Join(toks)
	arena := ast.NewArena()
	p := New(arena)
	root, err := p.Parse(joined, "<test>")
	require.NoError(t, err)
	return arena, root
}

func parseSrcErr(t *testing.T, src string) error {
	t.Helper()
	toks, err := lexer.Tokenize(source.FromString("<test>", src))
	require.NoError(t, err)
	joined := strjoin.Join(toks)
	arena := ast.NewArena()
	p := New(arena)
	_, err = p.Parse(joined, "<test>")
	return err
}

func TestParseSimpleSymbolDefinition(t *testing.T) {
	a, root := parseSrc(t, "int x = 2;")
	require.Equal(t, "i32 x = 2;\n", printer.ModuleAsString(a, root))
}

func TestParseMultipleDeclaratorsShareHead(t *testing.T) {
	a, root := parseSrc(t, "int a, b = 3;")
	require.Equal(t, "i32 a, i32 b = 3;\n", printer.ModuleAsString(a, root))
}

func TestParsePointerAndArrayDeclarators(t *testing.T) {
	a, root := parseSrc(t, "int *p; int arr[4];")
	out := printer.ModuleAsString(a, root)
	require.Equal(t, "i32* p;\ni32[4] arr;\n", out)
}

func TestParseStructWithMembersAndFieldAccess(t *testing.T) {
	a, root := parseSrc(t, "struct Point { int x; int y; }; int f() { struct Point p; return p.x; }")
	out := printer.ModuleAsString(a, root)
	require.Contains(t, out, "struct Point p;")
	require.Contains(t, out, "return p.x;")
}

func TestParseFunctionDefinitionAndRecursiveCall(t *testing.T) {
	a, root := parseSrc(t, "int fact(int n) { return fact(n); }")
	out := printer.ModuleAsString(a, root)
	require.Equal(t, "i32 fact(i32 n) {\n  return fact(n);\n}\n", out)
}

func TestParseIfElseAndWhile(t *testing.T) {
	a, root := parseSrc(t, "int f(int n) { if (n) { return n; } else { return 0; } while (n) { n = n; } return 0; }")
	out := printer.ModuleAsString(a, root)
	require.Contains(t, out, "if (n) {")
	require.Contains(t, out, "else {")
	require.Contains(t, out, "while (n) {")
}

func TestParseForLoopWithInitCondStep(t *testing.T) {
	a, root := parseSrc(t, "int f() { int sum = 0; for (int i = 0; i < 10; i = i) { sum = sum; } return sum; }")
	out := printer.ModuleAsString(a, root)
	require.Contains(t, out, "for (i32 i = 0; (i < 10); (i = i)) {")
}

func TestParseDoWhile(t *testing.T) {
	a, root := parseSrc(t, "int f(int n) { do { n = n; } while (n); return n; }")
	out := printer.ModuleAsString(a, root)
	require.Contains(t, out, "do {")
	require.Contains(t, out, "while (n);")
}

func TestParseSwitchCaseDefault(t *testing.T) {
	a, root := parseSrc(t, "int f(int n) { switch (n) { case 1: return 1; default: return 0; } return 0; }")
	out := printer.ModuleAsString(a, root)
	require.Contains(t, out, "switch (n) {")
	require.Contains(t, out, "case 1:")
	require.Contains(t, out, "default:")
}

func TestParseGotoLabelAndComputedGoto(t *testing.T) {
	a, root := parseSrc(t, "int f() { goto done; done: return 0; }")
	out := printer.ModuleAsString(a, root)
	require.Contains(t, out, "goto done;")
	require.Contains(t, out, "done:")

	a2, root2 := parseSrc(t, "int f() { int *t; goto *t; }")
	require.Contains(t, printer.ModuleAsString(a2, root2), "goto *t;")
}

func TestParseTypedefRegistersAlias(t *testing.T) {
	a, root := parseSrc(t, "typedef int myint; myint x = 1;")
	out := printer.ModuleAsString(a, root)
	require.Contains(t, out, "myint x = 1;")
}

func TestParseEnumVariantsVisibleAsSymbols(t *testing.T) {
	a, root := parseSrc(t, "enum E { A, B = 3, C }; int x = B;")
	out := printer.ModuleAsString(a, root)
	require.Contains(t, out, "i32 x = B;")

	sym, found := ast.FindSymbol(a, root, "B")
	require.True(t, found)
	require.Equal(t, "i32", printer.TypeAsString(a, a.Symbol(sym).Type))
}

func TestParseBareStructTagRegistersType(t *testing.T) {
	a, root := parseSrc(t, "struct S { int a; }; struct S v;")
	out := printer.ModuleAsString(a, root)
	require.Contains(t, out, "struct S v;")

	_, found := ast.FindType(a, root, "S")
	require.True(t, found)
}

func TestParseVarargFunctionDeclarationAndCall(t *testing.T) {
	a, root := parseSrc(t, `int printf(char*, ...); int main() { printf("x", 1, 2); return 0; }`)
	out := printer.ModuleAsString(a, root)
	require.Contains(t, out, "printf(")
}

func TestParseCastAndSizeof(t *testing.T) {
	a, root := parseSrc(t, "int f() { int x = (int)1; int s = sizeof(int); return x + s; }")
	out := printer.ModuleAsString(a, root)
	require.Contains(t, out, "x = (i32)1;")
	require.Contains(t, out, "s = (sizeof i32);")
}

func TestParseStructInitializerWithDesignators(t *testing.T) {
	a, root := parseSrc(t, "struct Point { int x; int y; }; struct Point p = { .x = 1, .y = 2 };")
	out := printer.ModuleAsString(a, root)
	require.Contains(t, out, "p = {.x=1, .y=2};")
}

func TestParseArrayInitializerWithIndexDesignators(t *testing.T) {
	a, root := parseSrc(t, "int arr[3] = { [0] = 1, [2] = 3 };")
	out := printer.ModuleAsString(a, root)
	require.Contains(t, out, "arr = {[0]=1, [2]=3};")
}

func TestParseOperatorPrecedence(t *testing.T) {
	a, root := parseSrc(t, "int x = 1 + 2 * 3;")
	out := printer.ModuleAsString(a, root)
	require.Contains(t, out, "x = (1 + (2 * 3));")
}

func TestCheckCallRejectsWrongArity(t *testing.T) {
	err := parseSrcErr(t, "int f(int a, int b); int g() { f(1); return 0; }")
	require.Error(t, err)
}

func TestCheckCallAcceptsVariadicMinimumArgs(t *testing.T) {
	parseSrc(t, `int printf(char*, ...); int main() { printf("x"); return 0; }`)
}

func TestCheckCallRejectsNonConvertibleArgument(t *testing.T) {
	err := parseSrcErr(t, "struct S { int a; }; int f(int a); int g() { struct S s; f(s); return 0; }")
	require.Error(t, err)
}

func TestReturnValueRejectsIncompatibleStruct(t *testing.T) {
	err := parseSrcErr(t, "struct S { int a; }; struct S f() { return 1; }")
	require.Error(t, err)
}

func TestReturnValueAcceptsEnumAsNumeric(t *testing.T) {
	parseSrc(t, "enum E { A, B }; int f() { return A; }")
}

func TestReturnValueRejectsPointerToStruct(t *testing.T) {
	err := parseSrcErr(t, "struct S { int a; }; struct S f() { int *p; return p; }")
	require.Error(t, err)
}

func TestConditionMustBeNumeric(t *testing.T) {
	err := parseSrcErr(t, "struct S { int a; }; int f() { struct S s; if (s) { return 1; } return 0; }")
	require.Error(t, err)
}

func TestUseOfUndeclaredIdentifierIsFatal(t *testing.T) {
	err := parseSrcErr(t, "int f() { return nope; }")
	require.Error(t, err)
}
