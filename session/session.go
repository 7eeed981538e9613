// ==============================================================================================
// FILE: session/session.go
// ==============================================================================================
// PACKAGE: session
// PURPOSE: Wires the full pipeline together: lexing, parsing, generics monomorphization, type
//          checking, compile-time folding, and IR lowering, in that order. Each stage's
//          diagnostics are checked before the next stage runs, since every later stage assumes
//          the program it receives already passed the one before it.
// ==============================================================================================

package session

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"zen/ast"
	"zen/check"
	"zen/comptime"
	"zen/diag"
	"zen/irgen"
	"zen/lexer"
	"zen/parser"
	"zen/types"
)

// Session is one compilation of a single source file, identified by a
// fresh UUID so logs and temp artifacts from concurrent compilations
// (as `cmd/zenc` may run, one per input file) don't collide.
type Session struct {
	ID   uuid.UUID
	Path string
}

// New starts a session for the source file at path.
func New(path string) *Session {
	return &Session{ID: uuid.New(), Path: path}
}

// Result is the outcome of Compile, returned on failure as well as
// success: the emitted LLVM IR text (empty when Compile fails) plus every
// diagnostic bag the pipeline produced, in stage order, even stages that
// reported zero errors.
type Result struct {
	IR     string
	Stages []StageReport
}

// StageReport names the pipeline stage a diagnostic bag came from, so
// a caller printing results can label them without guessing.
type StageReport struct {
	Stage string
	Bag   *diag.Bag
}

// Compile runs source through the full pipeline and returns the
// generated LLVM IR. It stops at the first stage reporting an error,
// since every later stage assumes its input already type-checks.
func (s *Session) Compile(source string) (*Result, error) {
	result := &Result{}

	bag := diag.NewBag(s.Path)
	prog := parser.ParseProgram(lexer.New(source), bag)
	result.Stages = append(result.Stages, StageReport{"parse", bag})
	if bag.HasErrors() {
		return result, fmt.Errorf("parse errors in %s", s.Path)
	}

	reg := types.NewRegistry()
	if _, err := types.Monomorphize(prog, reg); err != nil {
		return result, fmt.Errorf("monomorphization failed: %w", err)
	}

	checker := check.NewChecker(s.Path)
	checkBag := checker.Check(prog)
	result.Stages = append(result.Stages, StageReport{"check", checkBag})
	if checkBag.HasErrors() {
		return result, fmt.Errorf("type errors in %s", s.Path)
	}

	folder := comptime.NewFolder(s.Path, s.safeFunctions(prog))
	foldBag := folder.Fold(prog)
	result.Stages = append(result.Stages, StageReport{"comptime", foldBag})
	if foldBag.HasErrors() {
		return result, fmt.Errorf("comptime errors in %s", s.Path)
	}

	gen := irgen.NewGenerator(s.Path)
	defer gen.Dispose()
	ir, genBag := gen.Generate(prog)
	result.Stages = append(result.Stages, StageReport{"irgen", genBag})
	if genBag.HasErrors() {
		return result, fmt.Errorf("lowering errors in %s", s.Path)
	}

	result.IR = ir
	return result, nil
}

// CompileFile reads path and compiles its contents.
func CompileFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return New(path).Compile(string(data))
}

// safeFunctions runs comptime.IsSafe to a fixpoint across the program's
// call graph: a function that only calls other comptime-safe functions
// is itself safe even if IsSafe's single-level scan can't see that on
// its own, since it only inspects the call sites textually present in
// one function body.
func (s *Session) safeFunctions(prog *ast.Program) map[string]*ast.FunctionDecl {
	externs := make(map[string]bool)
	funcs := make(map[string]*ast.FunctionDecl)
	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.ExternFunctionDecl:
			externs[d.Name] = true
		case *ast.FunctionDecl:
			funcs[d.Name] = d
		}
	}

	safe := make(map[string]*ast.FunctionDecl)
	for {
		changed := false
		// A call to any function not yet proven safe this round counts
		// as extern-backed for IsSafe's purposes, so a function is only
		// marked safe once everything it calls already is.
		unresolved := make(map[string]bool, len(externs))
		for name := range externs {
			unresolved[name] = true
		}
		for name := range funcs {
			if _, ok := safe[name]; !ok {
				unresolved[name] = true
			}
		}

		for name, fn := range funcs {
			if _, already := safe[name]; already {
				continue
			}
			if comptime.IsSafe(fn, unresolved) {
				safe[name] = fn
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return safe
}
