// Package types implements the rill type representation: a structural
// interner handing out stable TypeIDs, registries for nominal types,
// traits, and callable signatures, and the label renderer used by IDE
// features.
package types

import (
	"fmt"
	"strings"
)

// TypeID is a stable handle for an interned type. The zero value is
// the "unknown" type.
type TypeID uint32

// NoTypeID marks an unresolved or unknown type.
const NoTypeID TypeID = 0

// IsValid reports whether the id refers to a resolved type.
func (id TypeID) IsValid() bool { return id != NoTypeID }

// Kind discriminates the structural shape of a type.
type Kind uint8

const (
	// KindInvalid is the unknown type.
	KindInvalid Kind = iota
	// KindUnit is '()'.
	KindUnit
	// KindBool is 'bool'.
	KindBool
	// KindChar is 'char'.
	KindChar
	// KindStr is the unsized string slice type 'str'.
	KindStr
	// KindInt is a signed integer ('i32' by default).
	KindInt
	// KindUint is an unsigned integer.
	KindUint
	// KindFloat is a floating point number ('f64' by default).
	KindFloat
	// KindRef is '&T' or '&mut T'.
	KindRef
	// KindTuple is '(A, B, ...)'.
	KindTuple
	// KindNamed is a struct or enum instantiation.
	KindNamed
	// KindFn is a callable value (fn item, constructor, or closure).
	KindFn
	// KindParam is a generic parameter within a declaration.
	KindParam
	// KindProj is an associated-type projection '<Base as Trait>::Assoc'
	// that is resolved against the impl registry on demand.
	KindProj
)

// Width values for integer and float types.
const (
	// Width8 through Width64 are explicit bit widths.
	Width8  uint8 = 8
	Width16 uint8 = 16
	Width32 uint8 = 32
	Width64 uint8 = 64
	// WidthSize is the pointer-sized width (isize/usize).
	WidthSize uint8 = 0xFF
)

// SelfParamIdx marks the implicit 'Self' generic parameter.
const SelfParamIdx = -1

// Type is the structural descriptor handed to Intern. Only the fields
// relevant for the Kind are set.
type Type struct {
	Kind    Kind
	Width   uint8
	Mutable bool
	Elem    TypeID   // KindRef, KindProj base
	Elems   []TypeID // KindTuple
	Nominal NominalID
	Args    []TypeID // KindNamed
	Param   int      // KindParam index, SelfParamIdx for Self
	Name    string   // KindParam display name
	Fn      FnID     // KindFn
	Trait   TraitID  // KindProj
	Assoc   string   // KindProj
}

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Unit  TypeID
	Bool  TypeID
	Char  TypeID
	Str   TypeID
	I32   TypeID
	F64   TypeID
	Usize TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types    []Type
	index    map[string]TypeID
	builtins Builtins

	nominals []NominalInfo
	traits   []TraitInfo
	fns      []FnSig
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[string]TypeID, 64),
	}
	in.types = append(in.types, Type{Kind: KindInvalid}) // reserve 0
	in.nominals = append(in.nominals, NominalInfo{})
	in.traits = append(in.traits, TraitInfo{})
	in.fns = append(in.fns, FnSig{})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Char = in.Intern(Type{Kind: KindChar})
	in.builtins.Str = in.Intern(Type{Kind: KindStr})
	in.builtins.I32 = in.Intern(Type{Kind: KindInt, Width: Width32})
	in.builtins.F64 = in.Intern(Type{Kind: KindFloat, Width: Width64})
	in.builtins.Usize = in.Intern(Type{Kind: KindUint, Width: WidthSize})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	id := TypeID(len(in.types)) //nolint:gosec // type counts fit uint32
	in.types = append(in.types, t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if in == nil || id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MakeRef interns '&elem' (or '&mut elem').
func (in *Interner) MakeRef(elem TypeID, mutable bool) TypeID {
	return in.Intern(Type{Kind: KindRef, Elem: elem, Mutable: mutable})
}

// MakeTuple interns a tuple type; the empty tuple is unit.
func (in *Interner) MakeTuple(elems []TypeID) TypeID {
	if len(elems) == 0 {
		return in.builtins.Unit
	}
	return in.Intern(Type{Kind: KindTuple, Elems: elems})
}

// MakeNamed interns a nominal instantiation.
func (in *Interner) MakeNamed(nom NominalID, args []TypeID) TypeID {
	return in.Intern(Type{Kind: KindNamed, Nominal: nom, Args: args})
}

// MakeParam interns a generic-parameter placeholder.
func (in *Interner) MakeParam(idx int, name string) TypeID {
	return in.Intern(Type{Kind: KindParam, Param: idx, Name: name})
}

// MakeProj interns an associated-type projection over base.
func (in *Interner) MakeProj(base TypeID, trait TraitID, assoc string) TypeID {
	return in.Intern(Type{Kind: KindProj, Elem: base, Trait: trait, Assoc: assoc})
}

// MakeFn interns the type of a callable signature.
func (in *Interner) MakeFn(fn FnID) TypeID {
	return in.Intern(Type{Kind: KindFn, Fn: fn})
}

// StripRefs removes any number of reference layers.
func (in *Interner) StripRefs(id TypeID) TypeID {
	for {
		t, ok := in.Lookup(id)
		if !ok || t.Kind != KindRef {
			return id
		}
		id = t.Elem
	}
}

// IsUnit reports whether id is the unit type.
func (in *Interner) IsUnit(id TypeID) bool {
	return id == in.builtins.Unit
}

func typeKey(t Type) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|%d|%t|%d|%d|%d|%q|%d|%d|%q|", t.Kind, t.Width, t.Mutable,
		t.Elem, t.Nominal, t.Param, t.Name, t.Fn, t.Trait, t.Assoc)
	for _, e := range t.Elems {
		fmt.Fprintf(&b, "e%d,", e)
	}
	for _, a := range t.Args {
		fmt.Fprintf(&b, "a%d,", a)
	}
	return b.String()
}
