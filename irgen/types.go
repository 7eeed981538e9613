// ==============================================================================================
// FILE: irgen/types.go
// ==============================================================================================
// PACKAGE: irgen
// PURPOSE: Maps ast.Type onto tinygo.org/x/go-llvm types. Struct and enum declarations lower to
//          named LLVM struct types, registered once and reused by name from then on, following
//          the named-type shape the mir2llvm reference generator uses for its struct/enum
//          definitions, adapted here to go-llvm's StructCreateNamed/StructSetBody API instead of
//          textual emission.
// ==============================================================================================

package irgen

import (
	"tinygo.org/x/go-llvm"

	"zen/ast"
)

// llvmType maps a Zen type onto its LLVM representation, declaring
// struct/enum named types on first use.
func (g *Generator) llvmType(t ast.Type) llvm.Type {
	switch tt := t.(type) {
	case nil:
		return g.ctx.VoidType()
	case *ast.VoidType:
		return g.ctx.VoidType()
	case *ast.BoolType:
		return g.ctx.Int1Type()
	case *ast.IntType:
		return g.ctx.IntType(tt.Width)
	case *ast.FloatType:
		if tt.Width == 32 {
			return g.ctx.FloatType()
		}
		return g.ctx.DoubleType()
	case *ast.StringType:
		return llvm.PointerType(g.ctx.Int8Type(), 0)
	case *ast.PointerType:
		return llvm.PointerType(g.llvmType(tt.Elem), 0)
	case *ast.ArrayType:
		// A dynamically-sized array is a fat pointer: its element count
		// alongside a pointer to the backing storage.
		return g.ctx.StructType([]llvm.Type{g.ctx.Int64Type(), llvm.PointerType(g.llvmType(tt.Elem), 0)}, false)
	case *ast.FixedArrayType:
		return llvm.ArrayType(g.llvmType(tt.Elem), int(tt.Size))
	case *ast.StructType:
		if named, ok := g.structs[tt.Name]; ok {
			return named
		}
		return g.declareStruct(tt)
	case *ast.EnumType:
		if named, ok := g.enums[tt.Name]; ok {
			return named
		}
		return g.declareEnum(tt)
	case *ast.FunctionType:
		params := make([]llvm.Type, len(tt.Args))
		for i, a := range tt.Args {
			params[i] = g.llvmType(a)
		}
		return llvm.PointerType(llvm.FunctionType(g.llvmType(tt.Return), params, false), 0)
	case *ast.ResultType:
		return g.resultEnumType(tt)
	case *ast.OptionType:
		return g.optionEnumType(tt)
	default:
		// GenericType never reaches lowering: monomorphization replaces
		// every generic reference with a concrete declaration first.
		return g.ctx.Int64Type()
	}
}

// declareStruct registers tt's name ahead of setting its body, so a
// field whose type refers back to tt (through a pointer) resolves
// instead of recursing forever.
func (g *Generator) declareStruct(tt *ast.StructType) llvm.Type {
	named := g.ctx.StructCreateNamed("struct." + tt.Name)
	g.structs[tt.Name] = named
	g.structDecls[tt.Name] = tt

	fields := make([]llvm.Type, len(tt.Fields))
	for i, f := range tt.Fields {
		fields[i] = g.llvmType(f.Type)
	}
	named.StructSetBody(fields, false)
	return named
}

// declareEnum lowers a tagged union to { i32 tag, [N x i8] payload },
// where N is the byte size of its widest variant's payload. This mirrors
// the mir2llvm reference generator's enum layout, expressed through
// go-llvm's struct-type API rather than a textual %enum.Name definition.
func (g *Generator) declareEnum(tt *ast.EnumType) llvm.Type {
	named := g.ctx.StructCreateNamed("enum." + tt.Name)
	g.enums[tt.Name] = named
	g.enumDecls[tt.Name] = tt

	var maxPayload int64
	for _, v := range tt.Variants {
		if v.Payload == nil {
			continue
		}
		if sz := sizeOf(v.Payload); sz > maxPayload {
			maxPayload = sz
		}
	}
	body := []llvm.Type{g.ctx.Int32Type(), llvm.ArrayType(g.ctx.Int8Type(), int(maxPayload))}
	named.StructSetBody(body, false)
	return named
}

// resultEnumType synthesizes the built-in Result<Ok, Err> sugar as a
// two-variant enum, caching it under its mangled name so repeated uses
// of the same instantiation share one LLVM type.
func (g *Generator) resultEnumType(t *ast.ResultType) llvm.Type {
	name := "Result_" + ast.MangleSuffix(t.Ok) + "_" + ast.MangleSuffix(t.Err)
	if named, ok := g.enums[name]; ok {
		return named
	}
	return g.declareEnum(&ast.EnumType{Name: name, Variants: []ast.EnumVariant{
		{Name: "Ok", Payload: t.Ok},
		{Name: "Err", Payload: t.Err},
	}})
}

// optionEnumType synthesizes Option<T> as a one-payload-variant enum.
func (g *Generator) optionEnumType(t *ast.OptionType) llvm.Type {
	name := "Option_" + ast.MangleSuffix(t.Elem)
	if named, ok := g.enums[name]; ok {
		return named
	}
	return g.declareEnum(&ast.EnumType{Name: name, Variants: []ast.EnumVariant{
		{Name: "Some", Payload: t.Elem},
		{Name: "None"},
	}})
}

// sizeOf estimates a type's byte size for enum payload layout. It does
// not account for target-specific alignment padding; the payload array
// only needs to be at least as large as its widest variant.
func sizeOf(t ast.Type) int64 {
	switch tt := t.(type) {
	case *ast.IntType:
		return int64(tt.Width / 8)
	case *ast.FloatType:
		return int64(tt.Width / 8)
	case *ast.BoolType:
		return 1
	case *ast.StringType, *ast.PointerType, *ast.FunctionType:
		return 8
	case *ast.FixedArrayType:
		return tt.Size * sizeOf(tt.Elem)
	case *ast.ArrayType:
		return 16 // { i64 len, ptr }
	case *ast.StructType:
		var total int64
		for _, f := range tt.Fields {
			total += sizeOf(f.Type)
		}
		return total
	case *ast.EnumType:
		var max int64
		for _, v := range tt.Variants {
			if v.Payload != nil {
				if sz := sizeOf(v.Payload); sz > max {
					max = sz
				}
			}
		}
		return 4 + max
	default:
		return 8
	}
}
