// ==============================================================================================
// FILE: ast/pattern.go
// ==============================================================================================
// PACKAGE: ast
// PURPOSE: Pattern variants: literal, wildcard, binding identifier, enum-variant, struct,
//          range, and or-patterns. Guards live on MatchArm (see ast.go), matching the
//          GLOSSARY's definition of an Arm as (pattern, optional guard, body).
// ==============================================================================================

package ast

import "strings"

// Pattern is the marker interface every pattern variant implements.
type Pattern interface {
	Node
	patternNode()
}

// LiteralPattern matches a scrutinee equal to Value (an integer, float,
// string, or bool literal expression).
type LiteralPattern struct {
	base
	Value Expression
}

func (*LiteralPattern) patternNode() {}
func (p *LiteralPattern) String() string { return p.Value.String() }

// WildcardPattern (`_`) always matches and binds nothing.
type WildcardPattern struct {
	base
}

func (*WildcardPattern) patternNode() {}
func (*WildcardPattern) String() string { return "_" }

// IdentPattern always matches and binds the scrutinee to Name.
type IdentPattern struct {
	base
	Name string
}

func (*IdentPattern) patternNode() {}
func (p *IdentPattern) String() string { return p.Name }

// EnumVariantPattern matches `.Variant` or `.Variant -> name`, optionally
// destructuring further with Inner when the variant's payload is itself
// matched structurally rather than just bound.
type EnumVariantPattern struct {
	base
	EnumName string // resolved by the checker; empty as written by the parser
	Variant  string
	Binding  string  // "" if the payload isn't bound
	Inner    Pattern // non-nil only for nested destructuring
}

func (*EnumVariantPattern) patternNode() {}
func (p *EnumVariantPattern) String() string {
	s := "." + p.Variant
	if p.Inner != nil {
		s += "(" + p.Inner.String() + ")"
	}
	if p.Binding != "" {
		s += " -> " + p.Binding
	}
	return s
}

// StructPattern matches `Name { field: pat, … }`.
type StructPattern struct {
	base
	Name   string
	Fields map[string]Pattern
}

func (*StructPattern) patternNode() {}
func (p *StructPattern) String() string {
	parts := make([]string, 0, len(p.Fields))
	for name, fp := range p.Fields {
		parts = append(parts, name+": "+fp.String())
	}
	return p.Name + " { " + strings.Join(parts, ", ") + " }"
}

// RangePattern matches a scrutinee within [Start, End) or [Start, End].
type RangePattern struct {
	base
	Start     Expression
	End       Expression
	Inclusive bool
}

func (*RangePattern) patternNode() {}
func (p *RangePattern) String() string {
	op := ".."
	if p.Inclusive {
		op = "..="
	}
	return p.Start.String() + op + p.End.String()
}

// OrPattern matches if any alternative matches, left to right.
type OrPattern struct {
	base
	Alternatives []Pattern
}

func (*OrPattern) patternNode() {}
func (p *OrPattern) String() string {
	parts := make([]string, len(p.Alternatives))
	for i, alt := range p.Alternatives {
		parts[i] = alt.String()
	}
	return strings.Join(parts, " | ")
}
