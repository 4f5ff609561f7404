package ast

import "rill/internal/source"

// FnItem is a function declaration, either free-standing or inside a
// trait or impl block. Trait method declarations may omit the body.
type FnItem struct {
	base
	Name       string
	NameSpan   source.Span
	TypeParams []string
	Params     []*Param
	Ret        TypeExpr // nil means unit
	Body       *BlockExpr
	Public     bool
}

func (*FnItem) Kind() Kind { return KindItemFn }
func (*FnItem) isItem()    {}

// Param is a declared function, method, or closure parameter. Receiver
// parameters set IsSelf and leave Binding nil.
type Param struct {
	base
	IsSelf  bool
	SelfRef bool
	SelfMut bool
	Binding Pat
	Type    TypeExpr // nil for untyped closure params and receivers
}

func (*Param) Kind() Kind { return KindParam }

// StructShape distinguishes the three struct declaration forms.
type StructShape uint8

const (
	// StructUnit is 'struct Name;' or 'struct Name {}'.
	StructUnit StructShape = iota
	// StructTuple is 'struct Name(T, U);'.
	StructTuple
	// StructRecord is 'struct Name { field: T }'.
	StructRecord
)

// FieldDef is a named field of a record struct.
type FieldDef struct {
	Name   string
	Span   source.Span
	Type   TypeExpr
	Public bool
}

// StructItem is a struct declaration.
type StructItem struct {
	base
	Name        string
	NameSpan    source.Span
	TypeParams  []string
	Shape       StructShape
	Fields      []FieldDef // record form
	TupleFields []TypeExpr // tuple form
	Public      bool
}

func (*StructItem) Kind() Kind { return KindItemStruct }
func (*StructItem) isItem()    {}

// VariantDef is a single enum variant, optionally carrying a tuple
// payload.
type VariantDef struct {
	Name        string
	Span        source.Span
	TupleFields []TypeExpr
}

// EnumItem is an enum declaration.
type EnumItem struct {
	base
	Name       string
	NameSpan   source.Span
	TypeParams []string
	Variants   []VariantDef
	Public     bool
}

func (*EnumItem) Kind() Kind { return KindItemEnum }
func (*EnumItem) isItem()    {}

// TraitItem is a trait declaration with associated type names and
// method signatures.
type TraitItem struct {
	base
	Name       string
	NameSpan   source.Span
	AssocTypes []string
	Methods    []*FnItem
	Public     bool
}

func (*TraitItem) Kind() Kind { return KindItemTrait }
func (*TraitItem) isItem()    {}

// AssocDef binds an associated type inside an impl block.
type AssocDef struct {
	Name string
	Span source.Span
	Type TypeExpr
}

// ImplItem is an impl block, inherent ('impl Ty') or trait
// ('impl Trait for Ty').
type ImplItem struct {
	base
	TypeParams []string
	TraitPath  *Path // nil for inherent impls
	SelfType   TypeExpr
	AssocDefs  []AssocDef
	Methods    []*FnItem
}

func (*ImplItem) Kind() Kind { return KindItemImpl }
func (*ImplItem) isItem()    {}
