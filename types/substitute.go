// ==============================================================================================
// FILE: types/substitute.go
// ==============================================================================================
// PACKAGE: types
// PURPOSE: Generic substitution (C5): replace type-parameter references with concrete types
//          throughout an AST type, recursing into every composite shape a type can take.
// ==============================================================================================

package types

import "zen/ast"

// Substitution maps a type-parameter name to the concrete type bound to it.
type Substitution map[string]ast.Type

// Substitute applies sub recursively to t. A *ast.GenericType with no type
// arguments that names a bound parameter is replaced outright; every other
// composite type has Substitute applied to its components and a fresh node
// returned. Parameters absent from sub are left unchanged, including when
// t itself is nil.
func Substitute(t ast.Type, sub Substitution) ast.Type {
	if t == nil {
		return nil
	}
	switch tt := t.(type) {
	case *ast.IntType, *ast.FloatType, *ast.BoolType, *ast.StringType, *ast.VoidType:
		return t

	case *ast.PointerType:
		return &ast.PointerType{Elem: Substitute(tt.Elem, sub)}

	case *ast.ArrayType:
		return &ast.ArrayType{Elem: Substitute(tt.Elem, sub)}

	case *ast.FixedArrayType:
		return &ast.FixedArrayType{Elem: Substitute(tt.Elem, sub), Size: tt.Size}

	case *ast.StructType:
		fields := make([]ast.StructField, len(tt.Fields))
		for i, f := range tt.Fields {
			fields[i] = ast.StructField{Name: f.Name, Type: Substitute(f.Type, sub)}
		}
		return &ast.StructType{Name: tt.Name, Fields: fields}

	case *ast.EnumType:
		variants := make([]ast.EnumVariant, len(tt.Variants))
		for i, v := range tt.Variants {
			variants[i] = ast.EnumVariant{Name: v.Name, Payload: Substitute(v.Payload, sub)}
		}
		return &ast.EnumType{Name: tt.Name, Variants: variants}

	case *ast.FunctionType:
		args := make([]ast.Type, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = Substitute(a, sub)
		}
		return &ast.FunctionType{Args: args, Return: Substitute(tt.Return, sub)}

	case *ast.GenericType:
		if len(tt.Args) == 0 {
			if concrete, ok := sub[tt.Name]; ok {
				return concrete
			}
			return tt
		}
		args := make([]ast.Type, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = Substitute(a, sub)
		}
		return &ast.GenericType{Name: tt.Name, Args: args}

	case *ast.ResultType:
		return &ast.ResultType{Ok: Substitute(tt.Ok, sub), Err: Substitute(tt.Err, sub)}

	case *ast.OptionType:
		return &ast.OptionType{Elem: Substitute(tt.Elem, sub)}

	default:
		return t
	}
}

// FreeParams collects the names of unbound type-parameter references
// reachable from t that are not already keys of bound.
func FreeParams(t ast.Type, bound map[string]bool) []string {
	seen := map[string]bool{}
	var walk func(ast.Type)
	walk = func(t ast.Type) {
		if t == nil {
			return
		}
		switch tt := t.(type) {
		case *ast.PointerType:
			walk(tt.Elem)
		case *ast.ArrayType:
			walk(tt.Elem)
		case *ast.FixedArrayType:
			walk(tt.Elem)
		case *ast.StructType:
			for _, f := range tt.Fields {
				walk(f.Type)
			}
		case *ast.EnumType:
			for _, v := range tt.Variants {
				walk(v.Payload)
			}
		case *ast.FunctionType:
			for _, a := range tt.Args {
				walk(a)
			}
			walk(tt.Return)
		case *ast.GenericType:
			if len(tt.Args) == 0 {
				if !bound[tt.Name] {
					seen[tt.Name] = true
				}
				return
			}
			for _, a := range tt.Args {
				walk(a)
			}
		case *ast.ResultType:
			walk(tt.Ok)
			walk(tt.Err)
		case *ast.OptionType:
			walk(tt.Elem)
		}
	}
	walk(t)
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	return out
}
