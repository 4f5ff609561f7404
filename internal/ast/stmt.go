package ast

// LetStmt is 'let <pat> (: <type>)? (= <expr>)? ;'.
type LetStmt struct {
	base
	Pattern Pat
	Type    TypeExpr // nil when the type is inferred
	Value   Expr     // nil when the binding is uninitialized
}

func (*LetStmt) Kind() Kind { return KindStmtLet }
func (*LetStmt) isStmt()    {}

// ExprStmt is an expression in statement position.
type ExprStmt struct {
	base
	X       Expr
	HasSemi bool
}

func (*ExprStmt) Kind() Kind { return KindStmtExpr }
func (*ExprStmt) isStmt()    {}

// ReturnStmt is 'return <expr>? ;'.
type ReturnStmt struct {
	base
	Value Expr // may be nil
}

func (*ReturnStmt) Kind() Kind { return KindStmtReturn }
func (*ReturnStmt) isStmt()    {}
