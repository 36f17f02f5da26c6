package ast

import "github.com/slaide/pacc-sub000/internal/token"

// ValueKind tags an expression node's variant, per spec §3. VALUE_SYMBOL_UNKNOWN
// is kept as an explicit variant (not an error) because spec §4.4 says the
// caller -- not Value construction itself -- decides whether an unresolved
// identifier is a label name or a semantic error.
type ValueKind int

const (
	ValueUndefined ValueKind = iota
	ValueStatic
	ValueSymbolReference
	ValueSymbolUnknown
	ValueOperator
	ValueFunctionCall
	ValueDot
	ValueArrow
	ValueAddressOf
	ValueDereference
	ValueStructInitializer
	ValueParensWrapped
	ValueCast
	ValueConditional
	ValueTypeRef
)

// Designator is one `.field` or `[index]` link of a StructInitializer
// field's designator chain.
type Designator struct {
	IsIndex bool
	Field   string
	Index   token.Token
}

// FieldInitializer is one element of a brace-enclosed initializer, with its
// (possibly empty) designator chain and the Value it initializes.
type FieldInitializer struct {
	Designators []Designator
	Value       ValueID
}

// Value is an expression node. Only the fields relevant to Kind are
// populated; this mirrors Type's single-struct-with-tag shape for the same
// reason (straightforward structural equality/printing).
type Value struct {
	Kind ValueKind

	// Static literal / SymbolUnknown's offending name token.
	Token token.Token

	// SymbolReference.
	Symbol SymbolID

	// Operator: op is the lexeme ("+", "*", "!", "sizeof", "post++"...);
	// Left is set for unary and binary; Right additionally for binary and
	// InvalidID for unary. The ternary is a separate Conditional value that
	// uses Cond/OnTrue/OnFalse instead.
	Op    string
	Left  ValueID
	Right ValueID

	// FunctionCall.
	Function ValueID
	Args     []ValueID

	// Dot / Arrow.
	Base      ValueID
	FieldName string

	// AddressOf / Dereference share the unary operand slot with Operator
	// (Left) intentionally -- both are structurally "one operand, one op".

	// StructInitializer.
	Fields []FieldInitializer

	// ParensWrapped.
	Inner ValueID

	// Cast.
	CastTo TypeID

	// Conditional (ternary).
	Cond    ValueID
	OnTrue  ValueID
	OnFalse ValueID

	// TypeRef.
	TypeRef TypeID
}
