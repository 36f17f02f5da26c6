package ast

// Ingest performs the side effects spec §4.5 requires before a Statement is
// appended to its owning Scope: Typedef registers aliases, SymbolDefinition
// registers any inline aggregate type it declares plus the symbol itself,
// and the four value-bearing statement kinds are recursively type-checked
// against the rules of §4.4.
func Ingest(a *Arena, scope ScopeID, stmt *Statement) error {
	switch stmt.Kind {
	case StmtTypedef:
		for _, symID := range stmt.Symbols {
			sym := a.Symbol(symID)
			if !sym.HasName {
				continue
			}
			AddType(a, scope, Type{
				Kind: TypeReference, Elem: sym.Type,
				Name: sym.Name.Text, HasName: true,
			})
		}
		return nil

	case StmtSymbolDefinition:
		for i := range stmt.Defs {
			def := &stmt.Defs[i]
			sym := a.Symbol(def.Symbol)
			registerInlineAggregates(a, scope, sym.Type)
			RegisterSymbol(a, scope, def.Symbol)
		}
		return nil

	case StmtFunctionDefinition:
		// The function's own symbol was already added to the enclosing
		// scope by the parser, to support recursive calls.
		return nil

	case StmtValue:
		if stmt.HasValue {
			if _, err := TypeOf(a, scope, stmt.Value); err != nil {
				return err
			}
		}
		return nil

	case StmtReturn:
		if !stmt.HasValue {
			return nil
		}
		valType, err := TypeOf(a, scope, stmt.Value)
		if err != nil {
			return err
		}
		retType, ok := FuncReturnTypeOf(a, scope)
		if !ok {
			return nil
		}
		if !ConvertibleTo(a, valType, retType) {
			return semanticErrf("return value not convertible to function return type")
		}
		return nil

	case StmtIf, StmtWhile:
		if !stmt.HasCond {
			return nil
		}
		condType, err := TypeOf(a, scope, stmt.Cond)
		if err != nil {
			return err
		}
		if !isNumericType(a, condType) {
			return semanticErrf("condition must be convertible to a numeric type")
		}
		return nil

	default:
		return nil
	}
}

// RegisterSymbol appends an already-arena-resident symbol directly to
// scope's local symbol list, without creating a new Symbol. Used both by
// Ingest (committing an ordinary declaration) and by the parser (pre-adding
// a function's own symbol before parsing its body, for recursion).
func RegisterSymbol(a *Arena, scope ScopeID, symID SymbolID) {
	s := a.Scope(scope)
	s.Symbols = append(s.Symbols, symID)
}

// RegisterNamedType registers id's named Struct/Union/Enum under scope (and,
// for an Enum, each of its variants as an int-typed Symbol), the same side
// effect registerInlineAggregates performs for an inline aggregate reached
// through a declared symbol's type -- exposed for a bare tag declaration
// (`struct S { ... };`, `enum E { ... };`) that declares no symbol at all.
func RegisterNamedType(a *Arena, scope ScopeID, id TypeID) {
	registerInlineAggregates(a, scope, id)
}

// registerInlineAggregates walks t looking for a named Struct/Union/Enum
// definition that is not yet registered in scope, and registers it -- this
// is what makes `struct Foo { int x; } value;` register `struct Foo` as a
// side effect of the declaration statement, per spec §4.5.
func registerInlineAggregates(a *Arena, scope ScopeID, id TypeID) {
	if !id.Valid() {
		return
	}
	t := a.Type(id)
	switch t.Kind {
	case TypeStruct, TypeUnion:
		if t.HasName {
			if _, found := FindType(a, scope, t.Name); !found {
				AddType(a, scope, *t)
			}
		}
		for _, memberID := range t.Members {
			registerInlineAggregates(a, scope, a.Symbol(memberID).Type)
		}
	case TypeEnum:
		if t.HasName {
			if _, found := FindType(a, scope, t.Name); !found {
				AddType(a, scope, *t)
			}
		}
		// Per spec §4.5, registering each variant as an int-typed symbol is
		// not conditioned on the enum having a tag name -- an anonymous
		// `enum { A, B = 3, C };` must make A/B/C visible just the same.
		for _, v := range t.Variants {
			if _, found := FindSymbol(a, scope, v.Name.Text); found {
				continue
			}
			RegisterSymbol(a, scope, a.AddSymbol(Symbol{
				Kind:    SymbolDeclaration,
				Name:    v.Name,
				HasName: true,
				Type:    a.AddType(Type{Kind: TypePrimitive, Primitive: PrimI32}),
			}))
		}
	case TypePointer, TypeArray, TypeOfType:
		registerInlineAggregates(a, scope, t.Elem)
	case TypeFunction:
		registerInlineAggregates(a, scope, t.Ret)
		for _, paramID := range t.Params {
			registerInlineAggregates(a, scope, a.Symbol(paramID).Type)
		}
	}
}

func isNumericType(a *Arena, id TypeID) bool {
	t := a.Type(id)
	switch t.Kind {
	case TypePrimitive:
		return t.Primitive.IsNumeric() || t.Primitive == PrimBool
	case TypeEnum:
		return true
	case TypeReference:
		return isNumericType(a, t.Elem)
	default:
		return false
	}
}
