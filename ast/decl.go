// ==============================================================================================
// FILE: ast/decl.go
// ==============================================================================================
// PACKAGE: ast
// PURPOSE: Declaration variants: function, external function, struct, enum, behavior,
// impl, and comptime block. Declaration syntax is uniform — every one of these
//          is produced from a `name = rhs` production — but each gets its own node shape here
//          because C5/C6/C8 each need different structure per kind.
// ==============================================================================================

package ast

import "strings"

// FunctionDecl is a (possibly generic) function definition.
//
//	name = (params) ReturnType { body }
//	name<T, U> = (params) ReturnType { body }
type FunctionDecl struct {
	base
	Name       string
	TypeParams []string
	Params     []Param
	ReturnType Type
	Body       *BlockStatement
	IsAsync bool // parsed, never lowered — reserved extension point
}

func (*FunctionDecl) declNode() {}
func (d *FunctionDecl) String() string {
	name := d.Name
	if len(d.TypeParams) > 0 {
		name += "<" + strings.Join(d.TypeParams, ", ") + ">"
	}
	ret := ""
	if d.ReturnType != nil {
		if _, isVoid := d.ReturnType.(*VoidType); !isVoid {
			ret = " " + d.ReturnType.String()
		}
	}
	return name + " = (" + paramsString(d.Params) + ")" + ret + " " + d.Body.String()
}

// IsGeneric reports whether the declaration still has unbound type
// parameters (i.e. it is a template, not yet monomorphized).
func (d *FunctionDecl) IsGeneric() bool { return len(d.TypeParams) > 0 }

// ExternFunctionDecl declares a foreign function with no body.
//
//	printf = extern (fmt: *i8, ...) i32
type ExternFunctionDecl struct {
	base
	Name       string
	ParamTypes []Type
	ReturnType Type
	Variadic   bool
}

func (*ExternFunctionDecl) declNode() {}
func (d *ExternFunctionDecl) String() string {
	parts := make([]string, len(d.ParamTypes))
	for i, t := range d.ParamTypes {
		parts[i] = t.String()
	}
	sig := strings.Join(parts, ", ")
	if d.Variadic {
		if sig != "" {
			sig += ", "
		}
		sig += "..."
	}
	return d.Name + " = extern (" + sig + ") " + d.ReturnType.String()
}

// StructDecl is a (possibly generic) struct definition.
//
//	Point = { x: i64, y: i64 }
type StructDecl struct {
	base
	Name       string
	TypeParams []string
	Fields     []Param // reuse Param{Name, Type} for field entries
}

func (*StructDecl) declNode() {}
func (d *StructDecl) String() string {
	name := d.Name
	if len(d.TypeParams) > 0 {
		name += "<" + strings.Join(d.TypeParams, ", ") + ">"
	}
	return name + " = { " + paramsString(d.Fields) + " }"
}

func (d *StructDecl) IsGeneric() bool { return len(d.TypeParams) > 0 }

// EnumVariantDecl is one `| Name` or `| Name(Payload)` arm of an enum
// definition.
type EnumVariantDecl struct {
	Name    string
	Payload Type // nil for a unit variant
}

// EnumDecl is a (possibly generic) tagged-union definition.
//
//	Shape = | Circle(f64) | Square(f64) | Point
type EnumDecl struct {
	base
	Name       string
	TypeParams []string
	Variants   []EnumVariantDecl
}

func (*EnumDecl) declNode() {}
func (d *EnumDecl) String() string {
	name := d.Name
	if len(d.TypeParams) > 0 {
		name += "<" + strings.Join(d.TypeParams, ", ") + ">"
	}
	parts := make([]string, len(d.Variants))
	for i, v := range d.Variants {
		if v.Payload == nil {
			parts[i] = v.Name
		} else {
			parts[i] = v.Name + "(" + v.Payload.String() + ")"
		}
	}
	return name + " = | " + strings.Join(parts, " | ")
}

func (d *EnumDecl) IsGeneric() bool { return len(d.TypeParams) > 0 }

// MethodSig is one method signature declared by a behavior. Self is
// implicit: a method's receiver is always `*<implementing type>`.
type MethodSig struct {
	Name       string
	Params     []Type
	ReturnType Type
}

// BehaviorDecl declares an interface: a named set of method signatures.
//
//	Drawable = behavior { draw = (self) void }
type BehaviorDecl struct {
	base
	Name       string
	TypeParams []string
	Methods    []MethodSig
}

func (*BehaviorDecl) declNode() {}
func (d *BehaviorDecl) String() string {
	parts := make([]string, len(d.Methods))
	for i, m := range d.Methods {
		parts[i] = m.Name
	}
	return d.Name + " = behavior { " + strings.Join(parts, "; ") + " }"
}

// ImplDecl binds a set of methods to a concrete type, optionally claiming
// conformance to a named behavior.
//
//	Circle.impl = Drawable { draw = (self) void { ... } }
//	Circle.impl = { area = (self) f64 { ... } }
type ImplDecl struct {
	base
	TargetType string
	Behavior   string // "" for a bare impl block with no behavior
	Methods    []*FunctionDecl
}

func (*ImplDecl) declNode() {}
func (d *ImplDecl) String() string {
	head := d.TargetType + ".impl"
	if d.Behavior != "" {
		head += " = " + d.Behavior
	}
	return head
}

// ComptimeDecl is a top-level comptime block, used for compile-time-only
// side effects such as registering stdlib bundles.
type ComptimeDecl struct {
	base
	Body *BlockStatement
}

func (*ComptimeDecl) declNode() {}
func (d *ComptimeDecl) String() string { return "comptime " + d.Body.String() }
