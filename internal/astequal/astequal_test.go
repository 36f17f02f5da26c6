package astequal

import (
	"testing"

	"github.com/slaide/pacc-sub000/internal/ast"
	"github.com/slaide/pacc-sub000/internal/token"
	"github.com/stretchr/testify/require"
)

func nameTok(s string) token.Token {
	return token.Token{Kind: token.KindSymbol, Text: s}
}

func numTok(s string) token.Token {
	return token.Token{Kind: token.KindLiteralInteger, Text: s}
}

func i32(a *ast.Arena) ast.TypeID {
	return a.AddType(ast.Type{Kind: ast.TypePrimitive, Primitive: ast.PrimI32})
}

func TestModuleEqualReflexive(t *testing.T) {
	a := ast.NewArena()
	scope := ast.NewScope(a, ast.InvalidID)
	sym := a.AddSymbol(ast.Symbol{Kind: ast.SymbolDeclaration, Name: nameTok("a"), HasName: true, Type: i32(a)})
	_, err := ast.AddStatement(a, scope, ast.Statement{Kind: ast.StmtSymbolDefinition, Defs: []ast.SymbolDefinition{{Symbol: sym}}})
	require.NoError(t, err)

	require.True(t, ModuleEqual(a, scope, a, scope))
}

func TestModuleEqualAcrossSeparateArenas(t *testing.T) {
	build := func() (*ast.Arena, ast.ScopeID) {
		a := ast.NewArena()
		scope := ast.NewScope(a, ast.InvalidID)
		sym := a.AddSymbol(ast.Symbol{Kind: ast.SymbolDeclaration, Name: nameTok("a"), HasName: true, Type: i32(a)})
		_, err := ast.AddStatement(a, scope, ast.Statement{Kind: ast.StmtSymbolDefinition, Defs: []ast.SymbolDefinition{{Symbol: sym}}})
		require.NoError(t, err)
		return a, scope
	}

	a1, s1 := build()
	a2, s2 := build()
	require.True(t, ModuleEqual(a1, s1, a2, s2))
}

func TestModuleEqualDetectsDifferentInitializer(t *testing.T) {
	a1 := ast.NewArena()
	s1 := ast.NewScope(a1, ast.InvalidID)
	sym1 := a1.AddSymbol(ast.Symbol{Kind: ast.SymbolDeclaration, Name: nameTok("a"), HasName: true, Type: i32(a1)})
	val1 := a1.AddValue(ast.Value{Kind: ast.ValueStatic, Token: numTok("1")})
	_, err := ast.AddStatement(a1, s1, ast.Statement{
		Kind: ast.StmtSymbolDefinition,
		Defs: []ast.SymbolDefinition{{Symbol: sym1, Initializer: val1, HasInitializer: true}},
	})
	require.NoError(t, err)

	a2 := ast.NewArena()
	s2 := ast.NewScope(a2, ast.InvalidID)
	sym2 := a2.AddSymbol(ast.Symbol{Kind: ast.SymbolDeclaration, Name: nameTok("a"), HasName: true, Type: i32(a2)})
	val2 := a2.AddValue(ast.Value{Kind: ast.ValueStatic, Token: numTok("2")})
	_, err = ast.AddStatement(a2, s2, ast.Statement{
		Kind: ast.StmtSymbolDefinition,
		Defs: []ast.SymbolDefinition{{Symbol: sym2, Initializer: val2, HasInitializer: true}},
	})
	require.NoError(t, err)

	require.False(t, ModuleEqual(a1, s1, a2, s2))
}

func TestTypeEqualStructByNameNotByMemberIdentity(t *testing.T) {
	a := ast.NewArena()
	field1 := a.AddSymbol(ast.Symbol{Kind: ast.SymbolDeclaration, Name: nameTok("x"), HasName: true, Type: i32(a)})
	t1 := a.AddType(ast.Type{Kind: ast.TypeStruct, Name: "point", HasName: true, Members: []ast.SymbolID{field1}})

	field2 := a.AddSymbol(ast.Symbol{Kind: ast.SymbolDeclaration, Name: nameTok("x"), HasName: true, Type: i32(a)})
	t2 := a.AddType(ast.Type{Kind: ast.TypeStruct, Name: "point", HasName: true, Members: []ast.SymbolID{field2}})

	require.True(t, TypeEqual(a, t1, a, t2))
}

func TestTypeEqualFunctionComparesParamsAndReturn(t *testing.T) {
	a := ast.NewArena()
	p1 := a.AddSymbol(ast.Symbol{Kind: ast.SymbolDeclaration, Name: nameTok("n"), HasName: true, Type: i32(a)})
	f1 := a.AddType(ast.Type{Kind: ast.TypeFunction, Ret: i32(a), Params: []ast.SymbolID{p1}})

	f2 := a.AddType(ast.Type{Kind: ast.TypeFunction, Ret: i32(a)})
	require.False(t, TypeEqual(a, f1, a, f2))
}

func TestValueEqualOperatorTree(t *testing.T) {
	a := ast.NewArena()
	one := a.AddValue(ast.Value{Kind: ast.ValueStatic, Token: numTok("1")})
	two := a.AddValue(ast.Value{Kind: ast.ValueStatic, Token: numTok("2")})
	sum1 := a.AddValue(ast.Value{Kind: ast.ValueOperator, Op: "+", Left: one, Right: two})
	sum2 := a.AddValue(ast.Value{Kind: ast.ValueOperator, Op: "+", Left: one, Right: two})
	require.True(t, ValueEqual(a, sum1, a, sum2))

	three := a.AddValue(ast.Value{Kind: ast.ValueStatic, Token: numTok("3")})
	diff := a.AddValue(ast.Value{Kind: ast.ValueOperator, Op: "+", Left: one, Right: three})
	require.False(t, ValueEqual(a, sum1, a, diff))
}
