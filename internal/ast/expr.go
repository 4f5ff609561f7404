package ast

import (
	"rill/internal/source"
	"rill/internal/token"
)

// LitKind classifies literal expressions.
type LitKind uint8

const (
	// LitInt is an integer literal.
	LitInt LitKind = iota
	// LitFloat is a floating point literal.
	LitFloat
	// LitString is a string literal.
	LitString
	// LitChar is a character literal.
	LitChar
	// LitBool is 'true' or 'false'.
	LitBool
)

// LitExpr is a literal expression. Text keeps the raw spelling
// including any numeric type suffix.
type LitExpr struct {
	base
	LitKind LitKind
	Text    string
}

func (*LitExpr) Kind() Kind { return KindExprLit }
func (*LitExpr) isExpr()    {}

// PathExpr is a name reference, bare or qualified.
type PathExpr struct {
	base
	Path *Path
}

func (*PathExpr) Kind() Kind { return KindExprPath }
func (*PathExpr) isExpr()    {}

// CallExpr is '<callee>(<args>)'.
type CallExpr struct {
	base
	Callee Expr
	Args   []Expr
}

func (*CallExpr) Kind() Kind { return KindExprCall }
func (*CallExpr) isExpr()    {}

// MethodCallExpr is '<recv>.<name>(<args>)'.
type MethodCallExpr struct {
	base
	Recv     Expr
	Name     string
	NameSpan source.Span
	Args     []Expr
}

func (*MethodCallExpr) Kind() Kind { return KindExprMethodCall }
func (*MethodCallExpr) isExpr()    {}

// FieldExpr is '<recv>.<name>' or a tuple index '<recv>.0'.
type FieldExpr struct {
	base
	Recv     Expr
	Name     string
	NameSpan source.Span
}

func (*FieldExpr) Kind() Kind { return KindExprField }
func (*FieldExpr) isExpr()    {}

// RefExpr is '&<expr>' or '&mut <expr>'.
type RefExpr struct {
	base
	Mut   bool
	Inner Expr
}

func (*RefExpr) Kind() Kind { return KindExprRef }
func (*RefExpr) isExpr()    {}

// TupleExpr is '(<a>, <b>, ...)'. The empty tuple is the unit value.
type TupleExpr struct {
	base
	Elems []Expr
}

func (*TupleExpr) Kind() Kind { return KindExprTuple }
func (*TupleExpr) isExpr()    {}

// ParenExpr is '(<expr>)'.
type ParenExpr struct {
	base
	Inner Expr
}

func (*ParenExpr) Kind() Kind { return KindExprParen }
func (*ParenExpr) isExpr()    {}

// StructLitField is one 'name: value' (or shorthand 'name') entry of a
// record literal.
type StructLitField struct {
	Name  string
	Span  source.Span
	Value Expr // nil for shorthand
}

// StructLitExpr is '<path> { <fields> }'.
type StructLitExpr struct {
	base
	Path   *Path
	Fields []StructLitField
}

func (*StructLitExpr) Kind() Kind { return KindExprStructLit }
func (*StructLitExpr) isExpr()    {}

// ClosureExpr is '|<params>| <body>'.
type ClosureExpr struct {
	base
	Params []*Param
	Body   Expr
}

func (*ClosureExpr) Kind() Kind { return KindExprClosure }
func (*ClosureExpr) isExpr()    {}

// BinaryExpr is '<lhs> <op> <rhs>'.
type BinaryExpr struct {
	base
	Op  token.Kind
	Lhs Expr
	Rhs Expr
}

func (*BinaryExpr) Kind() Kind { return KindExprBinary }
func (*BinaryExpr) isExpr()    {}

// UnaryExpr is '-<expr>' or '!<expr>'.
type UnaryExpr struct {
	base
	Op    token.Kind
	Inner Expr
}

func (*UnaryExpr) Kind() Kind { return KindExprUnary }
func (*UnaryExpr) isExpr()    {}

// IfExpr is 'if <cond> { .. } else ..' or, when Pat is non-nil,
// 'if let <pat> = <scrutinee> { .. }'.
type IfExpr struct {
	base
	Pat  Pat // nil unless if-let
	Cond Expr
	Then *BlockExpr
	Else Expr // *BlockExpr or *IfExpr, nil if absent
}

func (*IfExpr) Kind() Kind { return KindExprIf }
func (*IfExpr) isExpr()    {}

// WhileExpr is 'while <cond> { .. }' or, when Pat is non-nil,
// 'while let <pat> = <scrutinee> { .. }'.
type WhileExpr struct {
	base
	Pat  Pat // nil unless while-let
	Cond Expr
	Body *BlockExpr
}

func (*WhileExpr) Kind() Kind { return KindExprWhile }
func (*WhileExpr) isExpr()    {}

// ForExpr is 'for <pat> in <iter> { .. }'. A partially typed loop may
// lack the 'in' keyword or the iterable.
type ForExpr struct {
	base
	Pat   Pat
	HasIn bool
	Iter  Expr // nil when the loop is incomplete
	Body  *BlockExpr
}

func (*ForExpr) Kind() Kind { return KindExprFor }
func (*ForExpr) isExpr()    {}

// MatchArm is '<pat> => <expr>'.
type MatchArm struct {
	base
	Pat  Pat
	Body Expr
}

func (*MatchArm) Kind() Kind { return KindMatchArm }

// MatchExpr is 'match <scrutinee> { <arms> }'.
type MatchExpr struct {
	base
	Scrutinee Expr
	Arms      []*MatchArm
}

func (*MatchExpr) Kind() Kind { return KindExprMatch }
func (*MatchExpr) isExpr()    {}

// BlockExpr is '{ <stmts> <tail-expr>? }'.
type BlockExpr struct {
	base
	Stmts []Stmt
	Tail  Expr // value of the block, nil if absent
}

func (*BlockExpr) Kind() Kind { return KindExprBlock }
func (*BlockExpr) isExpr()    {}
