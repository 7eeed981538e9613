// ==============================================================================================
// FILE: types/instantiate.go
// ==============================================================================================
// PACKAGE: types
// PURPOSE: Generic instantiation (C5): given a generic declaration and concrete type arguments,
//          produce (and cache) a fresh, fully-substituted declaration named by the mangling
// scheme specifies.
// ==============================================================================================

package types

import (
	"strings"

	"github.com/samber/lo"

	"zen/ast"
)

// Mangle renders the deterministic instantiated name
// <original>_<t1>_<t2>_… from a base name and a list of concrete type
// arguments.
func Mangle(base string, args []ast.Type) string {
	if len(args) == 0 {
		return base
	}
	suffixes := lo.Map(args, func(t ast.Type, _ int) string { return ast.MangleSuffix(t) })
	return base + "_" + strings.Join(suffixes, "_")
}

// Registry holds the generic declarations a program defines and the cache
// of instantiations demanded from them.
type Registry struct {
	functions map[string]*ast.FunctionDecl
	structs   map[string]*ast.StructDecl
	enums     map[string]*ast.EnumDecl

	instFunctions map[string]*ast.FunctionDecl
	instStructs   map[string]*ast.StructDecl
	instEnums     map[string]*ast.EnumDecl
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		functions:     make(map[string]*ast.FunctionDecl),
		structs:       make(map[string]*ast.StructDecl),
		enums:         make(map[string]*ast.EnumDecl),
		instFunctions: make(map[string]*ast.FunctionDecl),
		instStructs:   make(map[string]*ast.StructDecl),
		instEnums:     make(map[string]*ast.EnumDecl),
	}
}

func (r *Registry) RegisterFunction(d *ast.FunctionDecl) { r.functions[d.Name] = d }
func (r *Registry) RegisterStruct(d *ast.StructDecl)     { r.structs[d.Name] = d }
func (r *Registry) RegisterEnum(d *ast.EnumDecl)         { r.enums[d.Name] = d }

// InstantiateFunction returns the cached or freshly-built instantiation of
// the generic function named base with the given concrete type arguments.
func (r *Registry) InstantiateFunction(base string, args []ast.Type) (*ast.FunctionDecl, error) {
	decl, ok := r.functions[base]
	if !ok {
		return nil, &UnknownDeclError{Name: base}
	}
	if len(decl.TypeParams) != len(args) {
		return nil, &ArityMismatchError{Name: base, Expected: len(decl.TypeParams), Got: len(args)}
	}
	mangled := Mangle(base, args)
	if cached, ok := r.instFunctions[mangled]; ok {
		return cached, nil
	}
	sub := bindParams(decl.TypeParams, args)
	clone := &ast.FunctionDecl{
		Name:       mangled,
		TypeParams: nil,
		Params:     substituteParams(decl.Params, sub),
		ReturnType: Substitute(decl.ReturnType, sub),
		Body:       cloneBlock(decl.Body, sub),
		IsAsync:    decl.IsAsync,
	}
	r.instFunctions[mangled] = clone
	return clone, nil
}

// InstantiateStruct returns the cached or freshly-built instantiation of
// the generic struct named base with the given concrete type arguments.
func (r *Registry) InstantiateStruct(base string, args []ast.Type) (*ast.StructDecl, error) {
	decl, ok := r.structs[base]
	if !ok {
		return nil, &UnknownDeclError{Name: base}
	}
	if len(decl.TypeParams) != len(args) {
		return nil, &ArityMismatchError{Name: base, Expected: len(decl.TypeParams), Got: len(args)}
	}
	mangled := Mangle(base, args)
	if cached, ok := r.instStructs[mangled]; ok {
		return cached, nil
	}
	sub := bindParams(decl.TypeParams, args)
	clone := &ast.StructDecl{
		Name:       mangled,
		TypeParams: nil,
		Fields:     substituteParams(decl.Fields, sub),
	}
	r.instStructs[mangled] = clone
	return clone, nil
}

// InstantiateEnum returns the cached or freshly-built instantiation of the
// generic enum named base with the given concrete type arguments.
func (r *Registry) InstantiateEnum(base string, args []ast.Type) (*ast.EnumDecl, error) {
	decl, ok := r.enums[base]
	if !ok {
		return nil, &UnknownDeclError{Name: base}
	}
	if len(decl.TypeParams) != len(args) {
		return nil, &ArityMismatchError{Name: base, Expected: len(decl.TypeParams), Got: len(args)}
	}
	mangled := Mangle(base, args)
	if cached, ok := r.instEnums[mangled]; ok {
		return cached, nil
	}
	sub := bindParams(decl.TypeParams, args)
	variants := make([]ast.EnumVariantDecl, len(decl.Variants))
	for i, v := range decl.Variants {
		variants[i] = ast.EnumVariantDecl{Name: v.Name, Payload: Substitute(v.Payload, sub)}
	}
	clone := &ast.EnumDecl{
		Name:       mangled,
		TypeParams: nil,
		Variants:   variants,
	}
	r.instEnums[mangled] = clone
	return clone, nil
}

// InstantiatedFunctions returns every function instantiation produced so
// far, for the monomorphization pass to splice into the program.
func (r *Registry) InstantiatedFunctions() []*ast.FunctionDecl {
	out := make([]*ast.FunctionDecl, 0, len(r.instFunctions))
	for _, d := range r.instFunctions {
		out = append(out, d)
	}
	return out
}

func (r *Registry) InstantiatedStructs() []*ast.StructDecl {
	out := make([]*ast.StructDecl, 0, len(r.instStructs))
	for _, d := range r.instStructs {
		out = append(out, d)
	}
	return out
}

func (r *Registry) InstantiatedEnums() []*ast.EnumDecl {
	out := make([]*ast.EnumDecl, 0, len(r.instEnums))
	for _, d := range r.instEnums {
		out = append(out, d)
	}
	return out
}

func bindParams(names []string, args []ast.Type) Substitution {
	sub := make(Substitution, len(names))
	for i, name := range names {
		sub[name] = args[i]
	}
	return sub
}

func substituteParams(params []ast.Param, sub Substitution) []ast.Param {
	out := make([]ast.Param, len(params))
	for i, p := range params {
		out[i] = ast.Param{Name: p.Name, Type: Substitute(p.Type, sub)}
	}
	return out
}
