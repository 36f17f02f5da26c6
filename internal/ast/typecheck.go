package ast

import (
	"github.com/slaide/pacc-sub000/internal/diag"
	"github.com/slaide/pacc-sub000/internal/token"
)

// TypeOf is the pure function spec §3 requires of every Value: given a
// Scope to resolve references in, it derives the Value's TypeID. It never
// changes existing nodes, but it does append new Types to the Arena for
// literals, address-of and type-reference values. It is the shared core both Ingest's statement-level
// checks and the parser's call/cast-arity checks build on.
func TypeOf(a *Arena, scope ScopeID, id ValueID) (TypeID, error) {
	if !id.Valid() {
		return InvalidID, semanticErrf("value has no type")
	}
	v := a.Value(id)
	switch v.Kind {
	case ValueStatic:
		return staticLiteralType(a, v), nil

	case ValueSymbolReference:
		return a.Symbol(v.Symbol).Type, nil

	case ValueSymbolUnknown:
		return InvalidID, diag.Errorf(diag.Semantic, v.Token.Origin.Loc(),
			"use of undeclared identifier '%s'", v.Token.Text)

	case ValueOperator:
		return TypeOf(a, scope, v.Left)

	case ValueFunctionCall:
		fnType, err := TypeOf(a, scope, v.Function)
		if err != nil {
			return InvalidID, err
		}
		t := a.Type(fnType)
		if t.Kind == TypeReference {
			t = a.Type(t.Elem)
		}
		if t.Kind != TypeFunction {
			return InvalidID, semanticErrf("called expression is not a function")
		}
		return t.Ret, nil

	case ValueDot, ValueArrow:
		baseType, err := TypeOf(a, scope, v.Base)
		if err != nil {
			return InvalidID, err
		}
		t := a.Type(baseType)
		if v.Kind == ValueArrow {
			if t.Kind == TypeReference {
				t = a.Type(t.Elem)
			}
			if t.Kind != TypePointer {
				return InvalidID, semanticErrf("'->' used on a non-pointer value")
			}
			t = a.Type(t.Elem)
		}
		if t.Kind == TypeReference {
			t = a.Type(t.Elem)
		}
		if t.Kind != TypeStruct && t.Kind != TypeUnion {
			return InvalidID, semanticErrf("member access on a non-aggregate value")
		}
		if len(t.Members) == 0 && t.HasName {
			// A re-declaration like `struct Point p;` after `struct Point {
			// ... };` carries the tag's name but not its body; fall back to
			// the scope's full registered definition to resolve the field.
			if full, found := FindType(a, scope, t.Name); found {
				t = a.Type(full)
			}
		}
		for _, memberID := range t.Members {
			m := a.Symbol(memberID)
			if m.HasName && m.Name.Text == v.FieldName {
				return m.Type, nil
			}
		}
		return InvalidID, semanticErrf("no member named '%s'", v.FieldName)

	case ValueAddressOf:
		inner, err := TypeOf(a, scope, v.Left)
		if err != nil {
			return InvalidID, err
		}
		return a.AddType(Type{Kind: TypePointer, Elem: inner}), nil

	case ValueDereference:
		inner, err := TypeOf(a, scope, v.Left)
		if err != nil {
			return InvalidID, err
		}
		t := a.Type(inner)
		if t.Kind == TypeReference {
			t = a.Type(t.Elem)
		}
		if t.Kind != TypePointer {
			return InvalidID, semanticErrf("dereference of a non-pointer value")
		}
		return t.Elem, nil

	case ValueStructInitializer:
		return InvalidID, semanticErrf("struct initializer has no standalone type")

	case ValueParensWrapped:
		return TypeOf(a, scope, v.Inner)

	case ValueCast:
		return v.CastTo, nil

	case ValueConditional:
		onTrue, err := TypeOf(a, scope, v.OnTrue)
		if err != nil {
			return InvalidID, err
		}
		return onTrue, nil

	case ValueTypeRef:
		return a.AddType(Type{Kind: TypeOfType, Elem: v.TypeRef}), nil

	default:
		return InvalidID, semanticErrf("value has no derivable type")
	}
}

func staticLiteralType(a *Arena, v *Value) TypeID {
	switch v.Token.Kind {
	case token.KindLiteralFloat:
		return a.AddType(Type{Kind: TypePrimitive, Primitive: PrimF64})
	case token.KindLiteralString:
		return a.AddType(Type{Kind: TypePointer, Elem: a.AddType(Type{Kind: TypePrimitive, Primitive: PrimI8})})
	case token.KindLiteralChar:
		return a.AddType(Type{Kind: TypePrimitive, Primitive: PrimI8})
	default:
		return a.AddType(Type{Kind: TypePrimitive, Primitive: PrimI32})
	}
}

// ConvertibleTo implements spec §4.4's six convertibility rules: structural
// equality, Reference transparently forwarding to what it aliases, non-any
// convertible to va_list, any convertible from anything, numeric<->numeric
// (including Enum, which behaves as an int), and pointer<->pointer
// unrestricted. Anything else is not convertible.
func ConvertibleTo(a *Arena, from, to TypeID) bool {
	if StructurallyEqual(a, from, to) {
		return true
	}
	fromT, toT := a.Type(from), a.Type(to)

	if fromT.Kind == TypeReference {
		return ConvertibleTo(a, fromT.Elem, to)
	}
	if toT.Kind == TypeReference {
		return ConvertibleTo(a, from, toT.Elem)
	}
	if toT.Kind == TypePrimitive && toT.Primitive == PrimVaList {
		return true
	}
	if toT.Kind == TypePrimitive && toT.Primitive == PrimAny {
		return true
	}
	if fromT.Kind == TypePrimitive && fromT.Primitive == PrimAny {
		return true
	}
	if isNumericType(a, from) && isNumericType(a, to) {
		return true
	}
	if fromT.Kind == TypePointer && toT.Kind == TypePointer {
		return true
	}
	return false
}

// StructurallyEqual reports whether a and b describe the same type shape,
// per spec §4.6's Type equality rule (kind, then variant payload).
func StructurallyEqual(a *Arena, x, y TypeID) bool {
	if x == y {
		return true
	}
	if !x.Valid() || !y.Valid() {
		return false
	}
	xt, yt := a.Type(x), a.Type(y)
	if xt.Kind != yt.Kind {
		return false
	}
	switch xt.Kind {
	case TypePrimitive:
		return xt.Primitive == yt.Primitive && xt.IsSigned == yt.IsSigned && xt.IsUnsigned == yt.IsUnsigned
	case TypeReference:
		return xt.Name == yt.Name
	case TypePointer, TypeArray, TypeOfType:
		return StructurallyEqual(a, xt.Elem, yt.Elem)
	case TypeFunction:
		if !StructurallyEqual(a, xt.Ret, yt.Ret) || len(xt.Params) != len(yt.Params) {
			return false
		}
		for i := range xt.Params {
			if !StructurallyEqual(a, a.Symbol(xt.Params[i]).Type, a.Symbol(yt.Params[i]).Type) {
				return false
			}
		}
		return true
	case TypeStruct, TypeUnion, TypeEnum:
		return xt.HasName && yt.HasName && xt.Name == yt.Name
	default:
		return false
	}
}

func semanticErrf(format string, args ...interface{}) error {
	return diag.Errorf(diag.Semantic, diag.Loc{}, format, args...)
}
