package ast

// Scope is {symbols, types, statements, parent?}, per spec §3/§4.5. It is
// never destroyed before its owning Arena; all cross-scope references are
// ScopeID, so the slice backing a Scope's Symbols/Types/Statements can grow
// freely without invalidating anyone else's handle to it.
type Scope struct {
	Parent    ScopeID
	HasParent bool

	Symbols    []SymbolID
	Types      []TypeID
	Statements []StmtID

	// FuncReturnType is set on the scope a function body opens, so that a
	// Return statement nested arbitrarily deep inside it (through Block/If/
	// While/For scopes) can still find what it must be convertible to.
	FuncReturnType    TypeID
	HasFuncReturnType bool
}

// NewScope is a convenience that both builds and registers a child Scope of
// parent (or a root Scope if parent is invalid) in a, returning its ScopeID.
// It corresponds to original_source's Scope_init.
func NewScope(a *Arena, parent ScopeID) ScopeID {
	s := Scope{Parent: InvalidID, HasParent: false}
	if parent.Valid() {
		s.Parent = parent
		s.HasParent = true
	}
	return a.AddScope(s)
}

// NewFunctionScope is NewScope plus marking the resulting scope as a
// function body, so Return statements nested inside it can type-check
// against retType.
func NewFunctionScope(a *Arena, parent ScopeID, retType TypeID) ScopeID {
	id := NewScope(a, parent)
	s := a.Scope(id)
	s.FuncReturnType = retType
	s.HasFuncReturnType = true
	return id
}

// FuncReturnTypeOf walks scope's parent chain for the nearest enclosing
// function body's return type.
func FuncReturnTypeOf(a *Arena, scope ScopeID) (TypeID, bool) {
	for cur := scope; cur.Valid(); {
		s := a.Scope(cur)
		if s.HasFuncReturnType {
			return s.FuncReturnType, true
		}
		if !s.HasParent {
			break
		}
		cur = s.Parent
	}
	return InvalidID, false
}

// AddSymbol appends sym to scope's local symbol list and returns its
// SymbolID. It always succeeds, per spec §4.5.
func AddSymbol(a *Arena, scope ScopeID, sym Symbol) SymbolID {
	id := a.AddSymbol(sym)
	s := a.Scope(scope)
	s.Symbols = append(s.Symbols, id)
	return id
}

// AddType registers t under scope if it carries a name, returning its
// TypeID. Per spec §4.5, add_type requires a named Type.
func AddType(a *Arena, scope ScopeID, t Type) (TypeID, bool) {
	if !t.HasName {
		return InvalidID, false
	}
	id := a.AddType(t)
	s := a.Scope(scope)
	s.Types = append(s.Types, id)
	return id, true
}

// FindSymbol searches scope's local symbols, then walks the parent chain,
// returning the first (scan-order) match for name. Shadowing within one
// scope always resolves to the earliest insertion, per spec §4.5's
// determinism rule.
func FindSymbol(a *Arena, scope ScopeID, name string) (SymbolID, bool) {
	for cur := scope; cur.Valid(); {
		s := a.Scope(cur)
		for _, id := range s.Symbols {
			sym := a.Symbol(id)
			if sym.HasName && sym.Name.Text == name {
				return id, true
			}
		}
		if !s.HasParent {
			break
		}
		cur = s.Parent
	}
	return InvalidID, false
}

// FindType is FindSymbol's counterpart for named types.
func FindType(a *Arena, scope ScopeID, name string) (TypeID, bool) {
	for cur := scope; cur.Valid(); {
		s := a.Scope(cur)
		for _, id := range s.Types {
			t := a.Type(id)
			if t.HasName && t.Name == name {
				return id, true
			}
		}
		if !s.HasParent {
			break
		}
		cur = s.Parent
	}
	return InvalidID, false
}

// AddStatement ingests stmt (registering any symbols/types/type-checks it
// implies) and then appends it to scope's statement list, per spec §4.5.
// Use this for a scope's direct, sequential statements (a Block or function
// body's top-level sequence); use NewStatement for a statement that is
// merely referenced from a field of another Statement (an If's then/else
// branch, a Switch's body entries, ...) so it isn't double-counted.
func AddStatement(a *Arena, scope ScopeID, stmt Statement) (StmtID, error) {
	id, err := NewStatement(a, scope, stmt)
	if err != nil {
		return InvalidID, err
	}
	s := a.Scope(scope)
	s.Statements = append(s.Statements, id)
	return id, nil
}

// NewStatement ingests stmt against scope and stores it in the Arena,
// without appending it to scope's own statement sequence. See AddStatement.
func NewStatement(a *Arena, scope ScopeID, stmt Statement) (StmtID, error) {
	if err := Ingest(a, scope, &stmt); err != nil {
		return InvalidID, err
	}
	return a.AddStatement(stmt), nil
}
