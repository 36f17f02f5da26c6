package ast

import (
	"testing"

	"github.com/slaide/pacc-sub000/internal/token"
	"github.com/stretchr/testify/require"
)

func nameTok(s string) token.Token {
	return token.Token{Kind: token.KindSymbol, Text: s}
}

func i32(a *Arena) TypeID {
	return a.AddType(Type{Kind: TypePrimitive, Primitive: PrimI32})
}

func TestScopeSymbolShadowing(t *testing.T) {
	a := NewArena()
	outer := NewScope(a, InvalidID)
	AddSymbol(a, outer, Symbol{Kind: SymbolDeclaration, Name: nameTok("x"), HasName: true, Type: i32(a)})

	inner := NewScope(a, outer)
	innerX := AddSymbol(a, inner, Symbol{Kind: SymbolDeclaration, Name: nameTok("x"), HasName: true, Type: i32(a)})

	found, ok := FindSymbol(a, inner, "x")
	require.True(t, ok)
	require.Equal(t, innerX, found)
}

func TestScopeFindSymbolWalksParentChain(t *testing.T) {
	a := NewArena()
	outer := NewScope(a, InvalidID)
	outerY := AddSymbol(a, outer, Symbol{Kind: SymbolDeclaration, Name: nameTok("y"), HasName: true, Type: i32(a)})
	inner := NewScope(a, outer)

	found, ok := FindSymbol(a, inner, "y")
	require.True(t, ok)
	require.Equal(t, outerY, found)

	_, ok = FindSymbol(a, inner, "nope")
	require.False(t, ok)
}

func TestAddTypeRequiresName(t *testing.T) {
	a := NewArena()
	scope := NewScope(a, InvalidID)
	_, ok := AddType(a, scope, Type{Kind: TypeStruct})
	require.False(t, ok)

	id, ok := AddType(a, scope, Type{Kind: TypeStruct, Name: "point", HasName: true})
	require.True(t, ok)
	found, ok := FindType(a, scope, "point")
	require.True(t, ok)
	require.Equal(t, id, found)
}

func TestIngestTypedefRegistersReference(t *testing.T) {
	a := NewArena()
	scope := NewScope(a, InvalidID)
	aliased := AddSymbol(a, scope, Symbol{Kind: SymbolReference, Name: nameTok("u32"), HasName: true, Type: i32(a)})

	_, err := AddStatement(a, scope, Statement{Kind: StmtTypedef, Symbols: []SymbolID{aliased}})
	require.NoError(t, err)

	ref, ok := FindType(a, scope, "u32")
	require.True(t, ok)
	require.Equal(t, TypeReference, a.Type(ref).Kind)
}

func TestIngestSymbolDefinitionRegistersInlineStruct(t *testing.T) {
	a := NewArena()
	scope := NewScope(a, InvalidID)

	field := a.AddSymbol(Symbol{Kind: SymbolDeclaration, Name: nameTok("x"), HasName: true, Type: i32(a)})
	structType := a.AddType(Type{Kind: TypeStruct, Name: "point", HasName: true, Members: []SymbolID{field}})
	valSym := a.AddSymbol(Symbol{Kind: SymbolDeclaration, Name: nameTok("p"), HasName: true, Type: structType})

	_, err := AddStatement(a, scope, Statement{
		Kind: StmtSymbolDefinition,
		Defs: []SymbolDefinition{{Symbol: valSym}},
	})
	require.NoError(t, err)

	_, ok := FindType(a, scope, "point")
	require.True(t, ok)
	_, ok = FindSymbol(a, scope, "p")
	require.True(t, ok)
}

func TestIngestEnumRegistersVariantsAsSymbols(t *testing.T) {
	a := NewArena()
	scope := NewScope(a, InvalidID)

	enumType := a.AddType(Type{
		Kind: TypeEnum, Name: "color", HasName: true,
		Variants: []EnumVariant{{Name: nameTok("RED")}, {Name: nameTok("BLUE")}},
	})
	valSym := a.AddSymbol(Symbol{Kind: SymbolDeclaration, Name: nameTok("c"), HasName: true, Type: enumType})

	_, err := AddStatement(a, scope, Statement{
		Kind: StmtSymbolDefinition,
		Defs: []SymbolDefinition{{Symbol: valSym}},
	})
	require.NoError(t, err)

	_, ok := FindSymbol(a, scope, "RED")
	require.True(t, ok)
	_, ok = FindSymbol(a, scope, "BLUE")
	require.True(t, ok)
}

func TestIngestReturnRejectsNonConvertibleType(t *testing.T) {
	a := NewArena()
	outer := NewScope(a, InvalidID)
	retType := a.AddType(Type{Kind: TypeStruct, Name: "s", HasName: true})
	fn := NewFunctionScope(a, outer, retType)

	badValue := a.AddValue(Value{Kind: ValueStatic, Token: token.Token{Kind: token.KindLiteralInteger}})

	_, err := AddStatement(a, fn, Statement{Kind: StmtReturn, Value: badValue, HasValue: true})
	require.Error(t, err)
}

func TestIngestReturnAcceptsConvertibleType(t *testing.T) {
	a := NewArena()
	outer := NewScope(a, InvalidID)
	fn := NewFunctionScope(a, outer, i32(a))

	val := a.AddValue(Value{Kind: ValueStatic, Token: token.Token{Kind: token.KindLiteralInteger}})

	_, err := AddStatement(a, fn, Statement{Kind: StmtReturn, Value: val, HasValue: true})
	require.NoError(t, err)
}

func TestConvertibleToPointerToPointer(t *testing.T) {
	a := NewArena()
	p1 := a.AddType(Type{Kind: TypePointer, Elem: i32(a)})
	structType := a.AddType(Type{Kind: TypeStruct, Name: "s", HasName: true})
	p2 := a.AddType(Type{Kind: TypePointer, Elem: structType})
	require.True(t, ConvertibleTo(a, p1, p2))
}

func TestConvertibleToStructNotConvertibleToInt(t *testing.T) {
	a := NewArena()
	s := a.AddType(Type{Kind: TypeStruct, Name: "s", HasName: true})
	require.False(t, ConvertibleTo(a, s, i32(a)))
}
