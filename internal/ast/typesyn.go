package ast

// PathType is a nominal type reference like 'Option<T>' or
// 'core::iter::Repeat<i32>'.
type PathType struct {
	base
	Path *Path
	Args []TypeExpr
}

func (*PathType) Kind() Kind { return KindTypePath }
func (*PathType) isType()    {}

// RefType is '&T' or '&mut T'.
type RefType struct {
	base
	Mut  bool
	Elem TypeExpr
}

func (*RefType) Kind() Kind { return KindTypeRef }
func (*RefType) isType()    {}

// TupleType is '(A, B)'. The empty form '()' is the unit type.
type TupleType struct {
	base
	Elems []TypeExpr
}

func (*TupleType) Kind() Kind { return KindTypeTuple }
func (*TupleType) isType()    {}
