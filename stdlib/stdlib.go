// ==============================================================================================
// FILE: stdlib/stdlib.go
// ==============================================================================================
// PACKAGE: stdlib
// PURPOSE: The @std namespace: fixed tables of builtin module signatures (io, core, build),
//          looked up on reference and marked imported (never inserted into a scope). Grounded on the teacher's
//          object/builtins.go native-function table, generalized from runtime values to static
//          function signatures since these are resolved by the type checker, not the evaluator.
// ==============================================================================================

package stdlib

import "zen/ast"

// Module is a fixed table of (name, signature) entries under one @std
// submodule, e.g. "io" for @std.io.
type Module struct {
	Name      string
	Functions map[string]*ast.FunctionType
}

// Registry holds every @std submodule Zen ships and which ones have
// already been referenced in the program being checked.
type Registry struct {
	modules  map[string]*Module
	imported map[string]bool
}

// NewRegistry builds the registry with the fixed io/core/build tables.
// These mirror the teacher's show/ask/str builtins (io), plus the
// assert/panic (core) and build.import entries.
func NewRegistry() *Registry {
	str := &ast.StringType{}
	void := &ast.VoidType{}
	boolT := &ast.BoolType{}

	return &Registry{
		imported: make(map[string]bool),
		modules: map[string]*Module{
			"io": {
				Name: "io",
				Functions: map[string]*ast.FunctionType{
					"print":     {Args: []ast.Type{str}, Return: void},
					"println":   {Args: []ast.Type{str}, Return: void},
					"read_line": {Args: nil, Return: str},
				},
			},
			"core": {
				Name: "core",
				Functions: map[string]*ast.FunctionType{
					"assert": {Args: []ast.Type{boolT}, Return: void},
					"panic":  {Args: []ast.Type{str}, Return: void},
				},
			},
			"build": {
				Name: "build",
				Functions: map[string]*ast.FunctionType{
					"import": {Args: []ast.Type{str}, Return: void},
				},
			},
		},
	}
}

// Resolve looks up @std.<module>.<member>, marking module imported as a
// side effect the first time it is referenced.
func (r *Registry) Resolve(module, member string) (*ast.FunctionType, bool) {
	m, ok := r.modules[module]
	if !ok {
		return nil, false
	}
	ft, ok := m.Functions[member]
	if !ok {
		return nil, false
	}
	r.imported[module] = true
	return ft, true
}

// Imported reports whether @std.<module> has been referenced so far.
func (r *Registry) Imported(module string) bool {
	return r.imported[module]
}

// ModuleNames returns the fixed set of submodule names, for diagnostics
// and for enumerating what build.import("name") can load.
func (r *Registry) ModuleNames() []string {
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	return names
}
