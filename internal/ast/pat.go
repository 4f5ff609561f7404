package ast

import "rill/internal/source"

// IdentPat is an identifier binding pattern. In rill a bare identifier
// in pattern position always binds, even when it spells an enum
// variant name; the hint engine flags that collision.
type IdentPat struct {
	base
	Mut  bool
	Name string
}

func (*IdentPat) Kind() Kind { return KindPatIdent }
func (*IdentPat) isPat()     {}

// WildPat is '_'.
type WildPat struct {
	base
}

func (*WildPat) Kind() Kind { return KindPatWild }
func (*WildPat) isPat()     {}

// TuplePat is '(<a>, <b>)'.
type TuplePat struct {
	base
	Elems []Pat
}

func (*TuplePat) Kind() Kind { return KindPatTuple }
func (*TuplePat) isPat()     {}

// TupleCtorPat is a qualified tuple-constructor pattern like
// 'Option::Some(x)'.
type TupleCtorPat struct {
	base
	Path  *Path
	Elems []Pat
}

func (*TupleCtorPat) Kind() Kind { return KindPatTupleCtor }
func (*TupleCtorPat) isPat()     {}

// StructPatField is one 'name: pat' (or shorthand 'name') entry of a
// record pattern. Shorthand fields point at an IdentPat.
type StructPatField struct {
	Name string
	Span source.Span
	Pat  Pat
}

// StructPat is '<path> { <fields> (, ..)? }'.
type StructPat struct {
	base
	Path    *Path
	Fields  []StructPatField
	HasRest bool
}

func (*StructPat) Kind() Kind { return KindPatStruct }
func (*StructPat) isPat()     {}

// RefPat is '&<pat>' or '&mut <pat>'.
type RefPat struct {
	base
	Mut   bool
	Inner Pat
}

func (*RefPat) Kind() Kind { return KindPatRef }
func (*RefPat) isPat()     {}
