// Package astequal implements spec §4.6's Equality: structural comparison
// over Type/Value/Statement/Symbol/Module, used by regression tests and by
// the parse(serialize(M)) == M round-trip property (spec.md §8, property 7).
// Comparison dispatches on each node's Kind tag and compares only the fields
// that Kind populates, mirroring the teacher's internal/js_ast_helpers.go
// ValuesLookTheSame-style per-kind structural equality.
package astequal

import "github.com/slaide/pacc-sub000/internal/ast"

// SymbolEqual compares two symbols by kind, name token text, and type, per
// spec §4.6.
func SymbolEqual(ax *ast.Arena, x ast.SymbolID, ay *ast.Arena, y ast.SymbolID) bool {
	if !x.Valid() || !y.Valid() {
		return x.Valid() == y.Valid()
	}
	sx, sy := ax.Symbol(x), ay.Symbol(y)
	if sx.Kind != sy.Kind || sx.HasName != sy.HasName {
		return false
	}
	if sx.HasName && sx.Name.Text != sy.Name.Text {
		return false
	}
	return TypeEqual(ax, sx.Type, ay, sy.Type)
}

func symbolSliceEqual(ax *ast.Arena, xs []ast.SymbolID, ay *ast.Arena, ys []ast.SymbolID) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !SymbolEqual(ax, xs[i], ay, ys[i]) {
			return false
		}
	}
	return true
}

// TypeEqual performs spec §4.6's type comparison: by kind, then variant
// payload; for functions, parameter sequences including nested Symbols.
func TypeEqual(ax *ast.Arena, x ast.TypeID, ay *ast.Arena, y ast.TypeID) bool {
	if !x.Valid() || !y.Valid() {
		return x.Valid() == y.Valid()
	}
	tx, ty := ax.Type(x), ay.Type(y)
	if tx.Kind != ty.Kind {
		return false
	}
	if tx.IsConst != ty.IsConst || tx.IsStatic != ty.IsStatic || tx.IsExtern != ty.IsExtern ||
		tx.IsThreadLocal != ty.IsThreadLocal || tx.IsSigned != ty.IsSigned || tx.IsUnsigned != ty.IsUnsigned ||
		tx.SizeMod != ty.SizeMod {
		return false
	}

	switch tx.Kind {
	case ast.TypePrimitive:
		return tx.Primitive == ty.Primitive

	case ast.TypeReference:
		if tx.HasName != ty.HasName {
			return false
		}
		if tx.HasName {
			return tx.Name == ty.Name
		}
		return TypeEqual(ax, tx.Elem, ay, ty.Elem)

	case ast.TypePointer, ast.TypeOfType:
		return TypeEqual(ax, tx.Elem, ay, ty.Elem)

	case ast.TypeArray:
		if tx.HasLen != ty.HasLen || tx.IsStaticLen != ty.IsStaticLen {
			return false
		}
		if tx.HasLen && !ValueEqual(ax, tx.Len, ay, ty.Len) {
			return false
		}
		return TypeEqual(ax, tx.Elem, ay, ty.Elem)

	case ast.TypeFunction:
		if !TypeEqual(ax, tx.Ret, ay, ty.Ret) {
			return false
		}
		return symbolSliceEqual(ax, tx.Params, ay, ty.Params)

	case ast.TypeStruct, ast.TypeUnion:
		if tx.HasName != ty.HasName {
			return false
		}
		if tx.HasName && tx.Name != ty.Name {
			return false
		}
		return symbolSliceEqual(ax, tx.Members, ay, ty.Members)

	case ast.TypeEnum:
		if tx.HasName != ty.HasName {
			return false
		}
		if tx.HasName && tx.Name != ty.Name {
			return false
		}
		if len(tx.Variants) != len(ty.Variants) {
			return false
		}
		for i := range tx.Variants {
			vx, vy := tx.Variants[i], ty.Variants[i]
			if vx.Name.Text != vy.Name.Text || vx.HasValue != vy.HasValue {
				return false
			}
			if vx.HasValue && vx.Value != vy.Value {
				return false
			}
		}
		return true

	default:
		return true
	}
}

func valueSliceEqual(ax *ast.Arena, xs []ast.ValueID, ay *ast.Arena, ys []ast.ValueID) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !ValueEqual(ax, xs[i], ay, ys[i]) {
			return false
		}
	}
	return true
}

func designatorsEqual(xs []ast.Designator, ys []ast.Designator) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if xs[i].IsIndex != ys[i].IsIndex {
			return false
		}
		if xs[i].IsIndex {
			if xs[i].Index.Text != ys[i].Index.Text {
				return false
			}
		} else if xs[i].Field != ys[i].Field {
			return false
		}
	}
	return true
}

// ValueEqual performs structural comparison of two expression trees.
func ValueEqual(ax *ast.Arena, x ast.ValueID, ay *ast.Arena, y ast.ValueID) bool {
	if !x.Valid() || !y.Valid() {
		return x.Valid() == y.Valid()
	}
	vx, vy := ax.Value(x), ay.Value(y)
	if vx.Kind != vy.Kind {
		return false
	}

	switch vx.Kind {
	case ast.ValueStatic, ast.ValueSymbolUnknown:
		return vx.Token.Text == vy.Token.Text

	case ast.ValueSymbolReference:
		return SymbolEqual(ax, vx.Symbol, ay, vy.Symbol)

	case ast.ValueOperator:
		return vx.Op == vy.Op &&
			ValueEqual(ax, vx.Left, ay, vy.Left) &&
			ValueEqual(ax, vx.Right, ay, vy.Right)

	case ast.ValueFunctionCall:
		return ValueEqual(ax, vx.Function, ay, vy.Function) &&
			valueSliceEqual(ax, vx.Args, ay, vy.Args)

	case ast.ValueDot, ast.ValueArrow:
		return vx.FieldName == vy.FieldName && ValueEqual(ax, vx.Base, ay, vy.Base)

	case ast.ValueAddressOf, ast.ValueDereference:
		return ValueEqual(ax, vx.Left, ay, vy.Left)

	case ast.ValueStructInitializer:
		if len(vx.Fields) != len(vy.Fields) {
			return false
		}
		for i := range vx.Fields {
			if !designatorsEqual(vx.Fields[i].Designators, vy.Fields[i].Designators) {
				return false
			}
			if !ValueEqual(ax, vx.Fields[i].Value, ay, vy.Fields[i].Value) {
				return false
			}
		}
		return true

	case ast.ValueParensWrapped:
		return ValueEqual(ax, vx.Inner, ay, vy.Inner)

	case ast.ValueCast:
		return TypeEqual(ax, vx.CastTo, ay, vy.CastTo) && ValueEqual(ax, vx.Inner, ay, vy.Inner)

	case ast.ValueConditional:
		return ValueEqual(ax, vx.Cond, ay, vy.Cond) &&
			ValueEqual(ax, vx.OnTrue, ay, vy.OnTrue) &&
			ValueEqual(ax, vx.OnFalse, ay, vy.OnFalse)

	case ast.ValueTypeRef:
		return TypeEqual(ax, vx.TypeRef, ay, vy.TypeRef)

	default:
		return true
	}
}

func stmtSliceEqual(ax *ast.Arena, xs []ast.StmtID, ay *ast.Arena, ys []ast.StmtID) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !StatementEqual(ax, xs[i], ay, ys[i]) {
			return false
		}
	}
	return true
}

func defsEqual(ax *ast.Arena, xs []ast.SymbolDefinition, ay *ast.Arena, ys []ast.SymbolDefinition) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !SymbolEqual(ax, xs[i].Symbol, ay, ys[i].Symbol) {
			return false
		}
		if xs[i].HasInitializer != ys[i].HasInitializer {
			return false
		}
		if xs[i].HasInitializer && !ValueEqual(ax, xs[i].Initializer, ay, ys[i].Initializer) {
			return false
		}
	}
	return true
}

// StatementEqual performs structural comparison of two statement trees,
// recursing into scopes a statement owns (Block/function bodies) via their
// own Statements sequence.
func StatementEqual(ax *ast.Arena, x ast.StmtID, ay *ast.Arena, y ast.StmtID) bool {
	if !x.Valid() || !y.Valid() {
		return x.Valid() == y.Valid()
	}
	sx, sy := ax.Statement(x), ay.Statement(y)
	if sx.Kind != sy.Kind {
		return false
	}

	switch sx.Kind {
	case ast.StmtEmpty, ast.StmtBreak, ast.StmtContinue:
		return true

	case ast.StmtFunctionDefinition:
		if !SymbolEqual(ax, sx.Symbol, ay, sy.Symbol) {
			return false
		}
		return scopeEqual(ax, sx.BodyScope, ay, sy.BodyScope)

	case ast.StmtReturn:
		if sx.HasValue != sy.HasValue {
			return false
		}
		return !sx.HasValue || ValueEqual(ax, sx.Value, ay, sy.Value)

	case ast.StmtIf:
		if !ValueEqual(ax, sx.Cond, ay, sy.Cond) || !StatementEqual(ax, sx.Then, ay, sy.Then) {
			return false
		}
		if sx.HasElse != sy.HasElse {
			return false
		}
		return !sx.HasElse || StatementEqual(ax, sx.Else, ay, sy.Else)

	case ast.StmtSwitch:
		return ValueEqual(ax, sx.Cond, ay, sy.Cond) && stmtSliceEqual(ax, sx.Body, ay, sy.Body)

	case ast.StmtSwitchCase:
		return ValueEqual(ax, sx.Value, ay, sy.Value)

	case ast.StmtDefault:
		return true

	case ast.StmtGotoLabel, ast.StmtLabel:
		return sx.LabelName == sy.LabelName

	case ast.StmtGotoComputed:
		return ValueEqual(ax, sx.Computed, ay, sy.Computed)

	case ast.StmtWhile:
		return sx.DoWhile == sy.DoWhile &&
			ValueEqual(ax, sx.Cond, ay, sy.Cond) &&
			StatementEqual(ax, sx.Then, ay, sy.Then)

	case ast.StmtFor:
		if sx.HasInit != sy.HasInit || sx.HasCond != sy.HasCond || sx.HasStep != sy.HasStep {
			return false
		}
		if sx.HasInit && !StatementEqual(ax, sx.Init, ay, sy.Init) {
			return false
		}
		if sx.HasCond && !ValueEqual(ax, sx.Cond, ay, sy.Cond) {
			return false
		}
		if sx.HasStep && !ValueEqual(ax, sx.Step, ay, sy.Step) {
			return false
		}
		return StatementEqual(ax, sx.Then, ay, sy.Then)

	case ast.StmtTypedef:
		return symbolSliceEqual(ax, sx.Symbols, ay, sy.Symbols)

	case ast.StmtBlock:
		return scopeEqual(ax, sx.BodyScope, ay, sy.BodyScope)

	case ast.StmtValue:
		return ValueEqual(ax, sx.Value, ay, sy.Value)

	case ast.StmtSymbolDefinition:
		return defsEqual(ax, sx.Defs, ay, sy.Defs)

	default:
		return true
	}
}

func scopeEqual(ax *ast.Arena, x ast.ScopeID, ay *ast.Arena, y ast.ScopeID) bool {
	if !x.Valid() || !y.Valid() {
		return x.Valid() == y.Valid()
	}
	return stmtSliceEqual(ax, ax.Scope(x).Statements, ay, ay.Scope(y).Statements)
}

// ModuleEqual is spec §4.6's Module_equal: structural comparison of two
// translation units' root scopes.
func ModuleEqual(ax *ast.Arena, x ast.ScopeID, ay *ast.Arena, y ast.ScopeID) bool {
	return scopeEqual(ax, x, ay, y)
}
