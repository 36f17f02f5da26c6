package ast

import "github.com/slaide/pacc-sub000/internal/token"

// SymbolKind tags Symbol's role, per spec §3: an ordinary declared name, a
// parameter/forward reference, or the trailing "..." vararg marker that
// terminates a variadic function's parameter list.
type SymbolKind int

const (
	SymbolDeclaration SymbolKind = iota
	SymbolReference
	SymbolVararg
)

// Symbol is {name?, kind, type}. A Vararg symbol carries no name.
type Symbol struct {
	Kind    SymbolKind
	Name    token.Token
	HasName bool
	Type    TypeID
}

// SymbolDefinition pairs a Symbol with its optional initializer Value --
// one declarator of a possibly comma-separated declaration statement.
type SymbolDefinition struct {
	Symbol         SymbolID
	Initializer    ValueID
	HasInitializer bool
}
