package hints

import (
	"rill/internal/ast"
	"rill/internal/types"
)

// bindingHint attaches the inferred type to a binding identifier when
// that type is not already visible at the binding site.
func (e *engine) bindingHint(pat *ast.IdentPat) {
	ty := e.sem.BindingType(pat)
	if !ty.IsValid() {
		return
	}
	if nom, _, _ := e.sem.Interner.NominalOf(ty); nom != nil &&
		nom.IsFieldless() && nom.Name == pat.Name {
		// matching a unit-like singleton by name: the name is the type
		return
	}
	if !e.showBindingAt(pat, ty) {
		return
	}
	e.emit(pat.Span(), TypeHint, e.label(ty))
}

// showBindingAt encodes the whole type-hint suppression policy: walk
// the binding's ancestors and let the nearest recognized context
// decide. No recognized ancestor means show.
func (e *engine) showBindingAt(pat *ast.IdentPat, ty types.TypeID) bool {
	show := true
	ast.Ancestors(pat, func(anc ast.Node) bool {
		switch a := anc.(type) {
		case *ast.LetStmt:
			show = a.Type == nil
		case *ast.Param:
			show = a.Type == nil
		case *ast.MatchArm:
			// a bare name that spells an enum variant binds anyway;
			// that genuine ambiguity is worth flagging
			show = e.variantCollision(pat.Name, ty)
		case *ast.IfExpr:
			show = a.Pat != nil && e.variantCollision(pat.Name, ty)
		case *ast.WhileExpr:
			show = a.Pat != nil && e.variantCollision(pat.Name, ty)
		case *ast.ForExpr:
			show = e.usefulLoopElement(a)
		default:
			return true // keep climbing
		}
		return false
	})
	return show
}

// variantCollision reports whether name matches a variant of the
// bound enum type.
func (e *engine) variantCollision(name string, ty types.TypeID) bool {
	in := e.sem.Interner
	nom, _, _ := in.NominalOf(in.StripRefs(ty))
	if nom == nil || nom.Kind != types.EnumNominal {
		return false
	}
	for _, v := range nom.Variants {
		if v.Name == name {
			return true
		}
	}
	return false
}

// usefulLoopElement rejects degenerate loops: a missing iterable, or
// one whose type is unresolved or unit, yields no element type worth
// showing.
func (e *engine) usefulLoopElement(loop *ast.ForExpr) bool {
	if !loop.HasIn || loop.Iter == nil {
		return false
	}
	ity := e.sem.TypeOf(loop.Iter)
	if !ity.IsValid() || e.sem.Interner.IsUnit(ity) {
		return false
	}
	return true
}
