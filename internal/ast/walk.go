package ast

// Children returns the direct child nodes of n in source order.
// Unrecognized shapes have no children.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *File:
		out := make([]Node, 0, len(n.Items))
		for _, item := range n.Items {
			out = append(out, item)
		}
		return out
	case *FnItem:
		var out []Node
		for _, p := range n.Params {
			out = append(out, p)
		}
		out = appendNode(out, n.Ret)
		out = appendNode(out, n.Body)
		return out
	case *Param:
		var out []Node
		out = appendNode(out, n.Binding)
		out = appendNode(out, n.Type)
		return out
	case *StructItem:
		var out []Node
		for _, f := range n.Fields {
			out = appendNode(out, f.Type)
		}
		for _, t := range n.TupleFields {
			out = appendNode(out, t)
		}
		return out
	case *EnumItem:
		var out []Node
		for _, v := range n.Variants {
			for _, t := range v.TupleFields {
				out = appendNode(out, t)
			}
		}
		return out
	case *TraitItem:
		var out []Node
		for _, m := range n.Methods {
			out = append(out, m)
		}
		return out
	case *ImplItem:
		var out []Node
		out = appendNode(out, n.SelfType)
		for _, a := range n.AssocDefs {
			out = appendNode(out, a.Type)
		}
		for _, m := range n.Methods {
			out = append(out, m)
		}
		return out
	case *LetStmt:
		var out []Node
		out = appendNode(out, n.Pattern)
		out = appendNode(out, n.Type)
		out = appendNode(out, n.Value)
		return out
	case *ExprStmt:
		return appendNode(nil, n.X)
	case *ReturnStmt:
		return appendNode(nil, n.Value)
	case *PathExpr, *LitExpr, *IdentPat, *WildPat, *PathType:
		return nil
	case *CallExpr:
		out := appendNode(nil, n.Callee)
		for _, a := range n.Args {
			out = appendNode(out, a)
		}
		return out
	case *MethodCallExpr:
		out := appendNode(nil, n.Recv)
		for _, a := range n.Args {
			out = appendNode(out, a)
		}
		return out
	case *FieldExpr:
		return appendNode(nil, n.Recv)
	case *RefExpr:
		return appendNode(nil, n.Inner)
	case *TupleExpr:
		var out []Node
		for _, e := range n.Elems {
			out = appendNode(out, e)
		}
		return out
	case *ParenExpr:
		return appendNode(nil, n.Inner)
	case *StructLitExpr:
		var out []Node
		for _, f := range n.Fields {
			out = appendNode(out, f.Value)
		}
		return out
	case *ClosureExpr:
		var out []Node
		for _, p := range n.Params {
			out = append(out, p)
		}
		return appendNode(out, n.Body)
	case *BinaryExpr:
		out := appendNode(nil, n.Lhs)
		return appendNode(out, n.Rhs)
	case *UnaryExpr:
		return appendNode(nil, n.Inner)
	case *IfExpr:
		var out []Node
		out = appendNode(out, n.Pat)
		out = appendNode(out, n.Cond)
		out = appendNode(out, n.Then)
		return appendNode(out, n.Else)
	case *WhileExpr:
		var out []Node
		out = appendNode(out, n.Pat)
		out = appendNode(out, n.Cond)
		return appendNode(out, n.Body)
	case *ForExpr:
		var out []Node
		out = appendNode(out, n.Pat)
		out = appendNode(out, n.Iter)
		return appendNode(out, n.Body)
	case *MatchExpr:
		out := appendNode(nil, n.Scrutinee)
		for _, arm := range n.Arms {
			out = append(out, arm)
		}
		return out
	case *MatchArm:
		out := appendNode(nil, n.Pat)
		return appendNode(out, n.Body)
	case *BlockExpr:
		var out []Node
		for _, s := range n.Stmts {
			out = append(out, s)
		}
		return appendNode(out, n.Tail)
	case *TuplePat:
		var out []Node
		for _, e := range n.Elems {
			out = appendNode(out, e)
		}
		return out
	case *TupleCtorPat:
		var out []Node
		for _, e := range n.Elems {
			out = appendNode(out, e)
		}
		return out
	case *StructPat:
		var out []Node
		for _, f := range n.Fields {
			out = appendNode(out, f.Pat)
		}
		return out
	case *RefPat:
		return appendNode(nil, n.Inner)
	case *RefType:
		return appendNode(nil, n.Elem)
	case *TupleType:
		var out []Node
		for _, e := range n.Elems {
			out = appendNode(out, e)
		}
		return out
	default:
		return nil
	}
}

// appendNode appends n unless it is nil or a typed nil interface.
func appendNode(out []Node, n Node) []Node {
	if isNilNode(n) {
		return out
	}
	return append(out, n)
}

func isNilNode(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *File:
		return v == nil
	case *FnItem:
		return v == nil
	case *Param:
		return v == nil
	case *BlockExpr:
		return v == nil
	default:
		return false
	}
}

// Walk visits n and its descendants in pre-order (node before
// children, siblings left to right). If visit returns false the
// node's children are skipped.
func Walk(n Node, visit func(Node) bool) {
	if isNilNode(n) {
		return
	}
	if !visit(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, visit)
	}
}

// Link sets parent pointers for every node reachable from root.
// Parsers call it once after building a tree.
func Link(root Node) {
	Walk(root, func(n Node) bool {
		for _, child := range Children(n) {
			child.setParent(n)
		}
		return true
	})
}

// Ancestors calls fn for each ancestor of n, nearest first, stopping
// when fn returns false.
func Ancestors(n Node, fn func(Node) bool) {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if !fn(cur) {
			return
		}
	}
}
