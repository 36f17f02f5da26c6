package ast

import "github.com/slaide/pacc-sub000/internal/token"

// TypeKind tags Type's variant payload, grounded on original_source's
// parser/type.h enum (Reference/Pointer/Array/Function/Struct/Union/Enum/
// Primitive) plus spec §3's Type(→Type) "type-of-a-type" variant used by
// sizeof(T)-style operands.
type TypeKind int

const (
	TypeUndefined TypeKind = iota
	TypeReference
	TypePointer
	TypeArray
	TypeFunction
	TypeStruct
	TypeUnion
	TypeEnum
	TypePrimitive
	TypeOfType
)

func (k TypeKind) String() string {
	switch k {
	case TypeReference:
		return "reference"
	case TypePointer:
		return "pointer"
	case TypeArray:
		return "array"
	case TypeFunction:
		return "function"
	case TypeStruct:
		return "struct"
	case TypeUnion:
		return "union"
	case TypeEnum:
		return "enum"
	case TypePrimitive:
		return "primitive"
	case TypeOfType:
		return "type"
	default:
		return "undefined"
	}
}

// PrimitiveKind enumerates the built-in scalar kinds of spec §3.
type PrimitiveKind int

const (
	PrimVoid PrimitiveKind = iota
	PrimBool
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimF32
	PrimF64
	PrimAny
	PrimVaList
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimVoid:
		return "void"
	case PrimBool:
		return "bool"
	case PrimI8:
		return "i8"
	case PrimI16:
		return "i16"
	case PrimI32:
		return "i32"
	case PrimI64:
		return "i64"
	case PrimU8:
		return "u8"
	case PrimU16:
		return "u16"
	case PrimU32:
		return "u32"
	case PrimU64:
		return "u64"
	case PrimF32:
		return "f32"
	case PrimF64:
		return "f64"
	case PrimAny:
		return "any"
	case PrimVaList:
		return "va_list"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether k is an integer, float or bool kind -- anything
// that participates in the numeric<->numeric convertibility rule of spec
// §4.4, excluding Any and VaList.
func (k PrimitiveKind) IsNumeric() bool {
	return k >= PrimBool && k <= PrimF64
}

// EnumVariant is one NAME[=VALUE] entry of an Enum type's body.
type EnumVariant struct {
	Name     token.Token
	Value    int64
	HasValue bool
}

// Type is a tagged structure with C declaration-specifier modifiers plus a
// variant payload selected by Kind. Only the fields relevant to Kind are
// populated; the rest are zero. This single-struct-with-tag shape (rather
// than an interface per variant) is what makes internal/astequal and
// internal/printer straightforward structural walks, matching how
// original_source's struct Type itself is one tagged union.
type Type struct {
	Kind TypeKind

	IsConst       bool
	IsStatic      bool
	IsExtern      bool
	IsThreadLocal bool
	IsSigned      bool
	IsUnsigned    bool
	// SizeMod in {-2,-1,0,1,2} for short short/short/(default)/long/long long.
	SizeMod int

	// Name is the alias this type is registered under in some Scope, if any.
	Name    string
	HasName bool

	// Reference, Pointer, Array base element, and TypeOfType's referent.
	Elem TypeID

	// Array.
	Len         ValueID
	HasLen      bool
	IsStaticLen bool

	// Function.
	Params []SymbolID
	Ret    TypeID

	// Struct / Union.
	Members []SymbolID

	// Enum.
	Variants []EnumVariant

	// Primitive.
	Primitive PrimitiveKind
}
