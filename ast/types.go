// ==============================================================================================
// FILE: ast/types.go
// ==============================================================================================
// PACKAGE: ast
// PURPOSE: The Type half of the AST. Every AST type is a tagged variant carrying enough
//          structure for the type system (C5) to substitute and canonicalize it, and for IR
//          lowering (C8) to map it onto a native LLVM type.
// ==============================================================================================

package ast

import (
	"fmt"
	"strings"
)

// Type is the marker interface every AST type variant implements.
type Type interface {
	typeNode()
	// String renders the type the way the checker and mangler name it:
	// "i32", "string", "List<i32>", "*i64", "[]f64", …
	String() string
}

// IntType is a signed or unsigned integer of the given bit width
// (8/16/32/64).
type IntType struct {
	Width  int
	Signed bool
}

func (*IntType) typeNode() {}
func (t *IntType) String() string {
	if t.Signed {
		return fmt.Sprintf("i%d", t.Width)
	}
	return fmt.Sprintf("u%d", t.Width)
}

// FloatType is f32 or f64.
type FloatType struct {
	Width int
}

func (*FloatType) typeNode() {}
func (t *FloatType) String() string { return fmt.Sprintf("f%d", t.Width) }

// BoolType is the boolean type.
type BoolType struct{}

func (*BoolType) typeNode()     {}
func (*BoolType) String() string { return "bool" }

// StringType is the owning string-pointer type.
type StringType struct{}

func (*StringType) typeNode()     {}
func (*StringType) String() string { return "string" }

// VoidType is the absence of a value (function return type only).
type VoidType struct{}

func (*VoidType) typeNode()     {}
func (*VoidType) String() string { return "void" }

// PointerType is an explicit pointer to another type.
type PointerType struct {
	Elem Type
}

func (*PointerType) typeNode() {}
func (t *PointerType) String() string { return "*" + t.Elem.String() }

// ArrayType is a dynamically-sized array of Elem.
type ArrayType struct {
	Elem Type
}

func (*ArrayType) typeNode() {}
func (t *ArrayType) String() string { return "[]" + t.Elem.String() }

// FixedArrayType is a compile-time-sized array of Elem.
type FixedArrayType struct {
	Elem Type
	Size int64
}

func (*FixedArrayType) typeNode() {}
func (t *FixedArrayType) String() string {
	return fmt.Sprintf("[%d]%s", t.Size, t.Elem.String())
}

// StructField is one ordered (name, type) entry of a struct. Field order
// is stable and defines memory layout.
type StructField struct {
	Name string
	Type Type
}

// StructType names a struct and its ordered fields.
type StructType struct {
	Name   string
	Fields []StructField
}

func (*StructType) typeNode() {}
func (t *StructType) String() string { return t.Name }

// FieldIndex returns the position of a field by name, or -1.
func (t *StructType) FieldIndex(name string) int {
	for i, f := range t.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// EnumVariant is one ordered variant of an enum; Payload is nil for a
// unit variant.
type EnumVariant struct {
	Name    string
	Payload Type
}

// EnumType names a tagged union and its ordered variants.
type EnumType struct {
	Name     string
	Variants []EnumVariant
}

func (*EnumType) typeNode() {}
func (t *EnumType) String() string { return t.Name }

// VariantIndex returns the discriminant of a variant by name, or -1.
func (t *EnumType) VariantIndex(name string) int {
	for i, v := range t.Variants {
		if v.Name == name {
			return i
		}
	}
	return -1
}

// FunctionType is the type of a function value: its argument types and
// return type.
type FunctionType struct {
	Args   []Type
	Return Type
}

func (*FunctionType) typeNode() {}
func (t *FunctionType) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	ret := "void"
	if t.Return != nil {
		ret = t.Return.String()
	}
	return fmt.Sprintf("fn(%s) %s", strings.Join(parts, ", "), ret)
}

// GenericType is either a reference to a bound type parameter (Args is
// empty) or an uninstantiated generic declaration applied to concrete
// type arguments. Substitution (C5) replaces the former; monomorphization
// replaces the latter with the mangled concrete declaration.
type GenericType struct {
	Name string
	Args []Type
}

func (*GenericType) typeNode() {}
func (t *GenericType) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + "<" + strings.Join(parts, ", ") + ">"
}

// ResultType is the built-in Result<Ok, Err> sugar.
type ResultType struct {
	Ok  Type
	Err Type
}

func (*ResultType) typeNode() {}
func (t *ResultType) String() string {
	return fmt.Sprintf("Result<%s, %s>", t.Ok.String(), t.Err.String())
}

// OptionType is the built-in Option<T> sugar.
type OptionType struct {
	Elem Type
}

func (*OptionType) typeNode() {}
func (t *OptionType) String() string { return fmt.Sprintf("Option<%s>", t.Elem.String()) }

// MangleSuffix renders a type the way the instantiation mangler uses it:
// the same canonical text as String(), but with characters illegal in a
// symbol name collapsed, so List<i32> becomes List_i32.
func MangleSuffix(t Type) string {
	s := t.String()
	replacer := strings.NewReplacer(
		"<", "_", ">", "", ", ", "_", "*", "ptr_", "[]", "arr_", "[", "arr", "]", "_",
	)
	return replacer.Replace(s)
}

// Equal reports whether two AST types are structurally identical. Struct
// and enum types compare by name (they are nominal); every other variant
// compares structurally.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch at := a.(type) {
	case *IntType:
		bt, ok := b.(*IntType)
		return ok && at.Width == bt.Width && at.Signed == bt.Signed
	case *FloatType:
		bt, ok := b.(*FloatType)
		return ok && at.Width == bt.Width
	case *BoolType:
		_, ok := b.(*BoolType)
		return ok
	case *StringType:
		_, ok := b.(*StringType)
		return ok
	case *VoidType:
		_, ok := b.(*VoidType)
		return ok
	case *PointerType:
		bt, ok := b.(*PointerType)
		return ok && Equal(at.Elem, bt.Elem)
	case *ArrayType:
		bt, ok := b.(*ArrayType)
		return ok && Equal(at.Elem, bt.Elem)
	case *FixedArrayType:
		bt, ok := b.(*FixedArrayType)
		return ok && at.Size == bt.Size && Equal(at.Elem, bt.Elem)
	case *StructType:
		bt, ok := b.(*StructType)
		return ok && at.Name == bt.Name
	case *EnumType:
		bt, ok := b.(*EnumType)
		return ok && at.Name == bt.Name
	case *FunctionType:
		bt, ok := b.(*FunctionType)
		if !ok || len(at.Args) != len(bt.Args) || !Equal(at.Return, bt.Return) {
			return false
		}
		for i := range at.Args {
			if !Equal(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	case *GenericType:
		bt, ok := b.(*GenericType)
		if !ok || at.Name != bt.Name || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !Equal(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	case *ResultType:
		bt, ok := b.(*ResultType)
		return ok && Equal(at.Ok, bt.Ok) && Equal(at.Err, bt.Err)
	case *OptionType:
		bt, ok := b.(*OptionType)
		return ok && Equal(at.Elem, bt.Elem)
	default:
		return false
	}
}
