// ==============================================================================================
// FILE: comptime/value.go
// ==============================================================================================
// PACKAGE: comptime
// PURPOSE: Compile-time value representation for the comptime interpreter (C7). Mirrors the
// teacher's runtime object model, restricted to the subset allows at compile time:
//          integers of each width, floats, booleans, strings, arrays, ranges, and structs of
//          these.
// ==============================================================================================

package comptime

import (
	"fmt"
	"strings"
)

// ValueKind identifies the dynamic type of a Value.
type ValueKind string

const (
	KindInt    ValueKind = "INT"
	KindFloat  ValueKind = "FLOAT"
	KindBool   ValueKind = "BOOL"
	KindString ValueKind = "STRING"
	KindArray  ValueKind = "ARRAY"
	KindStruct ValueKind = "STRUCT"
)

// Value is any compile-time-representable value.
type Value interface {
	Kind() ValueKind
	Inspect() string
}

type IntValue struct {
	Width  int
	Signed bool
	Value  int64
}

func (v *IntValue) Kind() ValueKind { return KindInt }
func (v *IntValue) Inspect() string { return fmt.Sprintf("%d", v.Value) }

type FloatValue struct {
	Width int
	Value float64
}

func (v *FloatValue) Kind() ValueKind { return KindFloat }
func (v *FloatValue) Inspect() string { return fmt.Sprintf("%g", v.Value) }

type BoolValue struct {
	Value bool
}

func (v *BoolValue) Kind() ValueKind { return KindBool }
func (v *BoolValue) Inspect() string { return fmt.Sprintf("%t", v.Value) }

type StringValue struct {
	Value string
}

func (v *StringValue) Kind() ValueKind { return KindString }
func (v *StringValue) Inspect() string { return v.Value }

type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() ValueKind { return KindArray }
func (v *ArrayValue) Inspect() string {
	parts := make([]string, len(v.Elements))
	for i, el := range v.Elements {
		parts[i] = el.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type StructValue struct {
	Name   string
	Fields map[string]Value
	// Order preserves declaration field order so Inspect and struct-literal
	// folding are deterministic.
	Order []string
}

func (v *StructValue) Kind() ValueKind { return KindStruct }
func (v *StructValue) Inspect() string {
	parts := make([]string, len(v.Order))
	for i, name := range v.Order {
		parts[i] = name + ": " + v.Fields[name].Inspect()
	}
	return v.Name + " { " + strings.Join(parts, ", ") + " }"
}
