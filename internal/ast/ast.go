// Package ast defines the rill syntax tree: a pointer-based, typed
// node hierarchy with a closed Kind set, parent links, and a pre-order
// Walk. Nodes keep full source spans; the file node additionally keeps
// the raw token stream (with trivia) so IDE features can recover
// token adjacency that the tree itself does not encode.
package ast

import (
	"rill/internal/source"
	"rill/internal/token"
)

// Kind identifies the shape of a syntax node.
type Kind uint8

const (
	// KindFile is the root node of a parsed file.
	KindFile Kind = iota

	// KindItemFn is a function item.
	KindItemFn
	// KindItemStruct is a struct declaration.
	KindItemStruct
	// KindItemEnum is an enum declaration.
	KindItemEnum
	// KindItemTrait is a trait declaration.
	KindItemTrait
	// KindItemImpl is an impl block.
	KindItemImpl

	// KindParam is a function or closure parameter.
	KindParam

	// KindStmtLet is a let statement.
	KindStmtLet
	// KindStmtExpr is an expression statement.
	KindStmtExpr
	// KindStmtReturn is a return statement.
	KindStmtReturn

	// KindExprLit is a literal expression.
	KindExprLit
	// KindExprPath is a (possibly qualified) name reference.
	KindExprPath
	// KindExprCall is a call expression.
	KindExprCall
	// KindExprMethodCall is a method call expression.
	KindExprMethodCall
	// KindExprField is a field or tuple-index access.
	KindExprField
	// KindExprRef is a borrow expression.
	KindExprRef
	// KindExprTuple is a tuple constructor.
	KindExprTuple
	// KindExprParen is a parenthesized expression.
	KindExprParen
	// KindExprStructLit is a record literal.
	KindExprStructLit
	// KindExprClosure is a closure literal.
	KindExprClosure
	// KindExprBinary is a binary operation.
	KindExprBinary
	// KindExprUnary is a unary operation.
	KindExprUnary
	// KindExprIf is an if (or if-let) expression.
	KindExprIf
	// KindExprWhile is a while (or while-let) expression.
	KindExprWhile
	// KindExprFor is a for-in loop.
	KindExprFor
	// KindExprMatch is a match expression.
	KindExprMatch
	// KindExprBlock is a block expression.
	KindExprBlock

	// KindMatchArm is a single arm of a match expression.
	KindMatchArm

	// KindPatIdent is an identifier binding pattern.
	KindPatIdent
	// KindPatWild is the '_' pattern.
	KindPatWild
	// KindPatTuple is a tuple pattern.
	KindPatTuple
	// KindPatTupleCtor is a tuple-constructor pattern like Some(x).
	KindPatTupleCtor
	// KindPatStruct is a record pattern like Test { a, b: y, .. }.
	KindPatStruct
	// KindPatRef is a borrow pattern like &x.
	KindPatRef

	// KindTypePath is a nominal type reference.
	KindTypePath
	// KindTypeRef is a reference type.
	KindTypeRef
	// KindTypeTuple is a tuple (or unit) type.
	KindTypeTuple
)

// Node is implemented by every syntax node.
type Node interface {
	Kind() Kind
	Span() source.Span
	Parent() Node
	setParent(Node)
}

// Item is a top-level declaration.
type Item interface {
	Node
	isItem()
}

// Stmt is a statement inside a block.
type Stmt interface {
	Node
	isStmt()
}

// Expr is any expression node.
type Expr interface {
	Node
	isExpr()
}

// Pat is any pattern node.
type Pat interface {
	Node
	isPat()
}

// TypeExpr is any type-syntax node.
type TypeExpr interface {
	Node
	isType()
}

type base struct {
	span   source.Span
	parent Node
}

func (b *base) Span() source.Span { return b.span }
func (b *base) Parent() Node      { return b.parent }
func (b *base) setParent(n Node)  { b.parent = n }

// SetSpan is used by the parser while building nodes.
func (b *base) SetSpan(sp source.Span) { b.span = sp }

// Path is a '::'-separated name like core::iter::repeat.
type Path struct {
	Segments []string
	Spans    []source.Span
}

// Last returns the final segment, or "".
func (p *Path) Last() string {
	if p == nil || len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

// IsIdent reports whether the path is a single bare name.
func (p *Path) IsIdent() bool {
	return p != nil && len(p.Segments) == 1
}

// String joins the segments with '::'.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	out := ""
	for i, seg := range p.Segments {
		if i > 0 {
			out += "::"
		}
		out += seg
	}
	return out
}

// File is the root of a parsed source file.
type File struct {
	base
	FileID source.FileID
	Items  []Item
	// Tokens is the significant token stream with leading trivia,
	// in source order, ending with EOF.
	Tokens []token.Token
}

func (f *File) Kind() Kind { return KindFile }

// TokensAfter returns the significant tokens whose spans begin at or
// after the byte offset off.
func (f *File) TokensAfter(off uint32) []token.Token {
	lo, hi := 0, len(f.Tokens)
	for lo < hi {
		mid := (lo + hi) / 2
		if f.Tokens[mid].Span.Start < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return f.Tokens[lo:]
}
