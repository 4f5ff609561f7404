// Package sema implements name resolution and type inference for rill
// files. It is deliberately forgiving: unresolved names and ill-typed
// expressions produce the unknown type instead of errors, so IDE
// passes always get a Result to work with.
package sema

import (
	"rill/internal/ast"
	"rill/internal/types"
)

// Prelude holds handles into the implicitly available core declarations.
type Prelude struct {
	// Namespace is the namespace the core declarations live in.
	Namespace string
	// Iterator is the core iteration trait with associated type Item.
	Iterator types.TraitID
	// Repeat and Take are the core adapter types returned by repeat()
	// and Iterator::take.
	Repeat types.NominalID
	Take   types.NominalID
}

// Result is the outcome of checking one file.
type Result struct {
	// Interner owns every type, nominal, trait, and callable the check
	// produced.
	Interner *types.Interner

	exprTypes    map[ast.Expr]types.TypeID
	bindingTypes map[*ast.IdentPat]types.TypeID
	callables    map[ast.Node]types.FnID
	impls        []implEntry
	prelude      Prelude
}

// implEntry is one impl block, reduced to what resolution needs. The
// self pattern and associated types may contain KindParam holes indexed
// by the impl's generic parameters.
type implEntry struct {
	trait   types.TraitID // NoTraitID for inherent impls
	selfPat types.TypeID
	assoc   map[string]types.TypeID
	methods []types.FnID
}

// Prelude returns handles to the implicit core declarations.
func (r *Result) Prelude() Prelude { return r.prelude }

// TypeOf returns the inferred type of an expression, or NoTypeID.
func (r *Result) TypeOf(expr ast.Expr) types.TypeID {
	if r == nil || expr == nil {
		return types.NoTypeID
	}
	return r.exprTypes[expr]
}

// BindingType returns the type a pattern binding received, or NoTypeID.
func (r *Result) BindingType(pat *ast.IdentPat) types.TypeID {
	if r == nil || pat == nil {
		return types.NoTypeID
	}
	return r.bindingTypes[pat]
}

// CallableFor returns the signature resolved for a call or method-call
// expression, or nil when resolution failed.
func (r *Result) CallableFor(n ast.Node) *types.FnSig {
	if r == nil || n == nil {
		return nil
	}
	return r.Interner.Fn(r.callables[n])
}

// Implements reports whether t (after stripping references) has an
// impl of the given trait.
func (r *Result) Implements(t types.TypeID, trait types.TraitID) bool {
	if r == nil || !t.IsValid() || !trait.IsValid() {
		return false
	}
	stripped := r.Interner.StripRefs(t)
	for i := range r.impls {
		if r.impls[i].trait != trait {
			continue
		}
		binds := make([]types.TypeID, maxGenericBinds)
		if r.Interner.Match(r.impls[i].selfPat, stripped, binds) {
			return true
		}
	}
	return false
}

// ProjectAssoc resolves the associated type '<t as trait>::assoc'
// against the impl registry, following nested projections. It returns
// NoTypeID when no impl provides the binding.
func (r *Result) ProjectAssoc(t types.TypeID, trait types.TraitID, assoc string) types.TypeID {
	return r.projectAssoc(t, trait, assoc, 0)
}

const (
	maxGenericBinds = 8
	maxProjDepth    = 8
)

func (r *Result) projectAssoc(t types.TypeID, trait types.TraitID, assoc string, depth int) types.TypeID {
	if r == nil || !t.IsValid() || !trait.IsValid() || depth > maxProjDepth {
		return types.NoTypeID
	}
	stripped := r.Interner.StripRefs(t)
	for i := range r.impls {
		entry := &r.impls[i]
		if entry.trait != trait {
			continue
		}
		binds := make([]types.TypeID, maxGenericBinds)
		if !r.Interner.Match(entry.selfPat, stripped, binds) {
			continue
		}
		bound, ok := entry.assoc[assoc]
		if !ok {
			return types.NoTypeID
		}
		res := r.Interner.Instantiate(bound, binds, stripped)
		if proj, ok := r.Interner.Lookup(res); ok && proj.Kind == types.KindProj {
			return r.projectAssoc(proj.Elem, proj.Trait, proj.Assoc, depth+1)
		}
		return res
	}
	return types.NoTypeID
}
