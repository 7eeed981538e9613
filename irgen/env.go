// ==============================================================================================
// FILE: irgen/env.go
// ==============================================================================================
// PACKAGE: irgen
// PURPOSE: Per-function lowering state: a scoped table of (alloca, Zen type) pairs mirroring
//          scope.Table's shape but keyed to the stack slot a binding was given while lowering
//          the function currently being built, plus the stack of enclosing loops break/continue
//          target.
// ==============================================================================================

package irgen

import (
	"tinygo.org/x/go-llvm"

	"zen/ast"
)

// local is one lowered binding: the alloca holding its value and the
// Zen type that alloca's pointee was given, since an llvm.Value carries
// no Zen-level type once lowered.
type local struct {
	ptr llvm.Value
	typ ast.Type
}

// localEnv is a stack of frames, innermost last, exactly like
// scope.Table's own shape.
type localEnv struct {
	frames []map[string]local
}

func newLocalEnv() *localEnv {
	return &localEnv{frames: []map[string]local{make(map[string]local)}}
}

func (e *localEnv) enter() { e.frames = append(e.frames, make(map[string]local)) }

func (e *localEnv) exit() { e.frames = e.frames[:len(e.frames)-1] }

func (e *localEnv) define(name string, l local) {
	e.frames[len(e.frames)-1][name] = l
}

func (e *localEnv) lookup(name string) (local, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if l, ok := e.frames[i][name]; ok {
			return l, true
		}
	}
	return local{}, false
}

// loopFrame records where break and continue jump to for one enclosing
// loop.
type loopFrame struct {
	label     string
	headBlock llvm.BasicBlock // continue target
	exitBlock llvm.BasicBlock // break target
}

func findLoop(loops []loopFrame, label string) (loopFrame, bool) {
	if label == "" {
		if len(loops) == 0 {
			return loopFrame{}, false
		}
		return loops[len(loops)-1], true
	}
	for i := len(loops) - 1; i >= 0; i-- {
		if loops[i].label == label {
			return loops[i], true
		}
	}
	return loopFrame{}, false
}

// fnState carries everything the statement/expression lowering helpers
// need about the function currently being built.
type fnState struct {
	fn      llvm.Value
	env     *localEnv
	loops   []loopFrame
	retType ast.Type
}
