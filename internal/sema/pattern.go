package sema

import (
	"rill/internal/ast"
	"rill/internal/types"
)

// bindScrutinee applies binding ergonomics: a destructuring pattern
// sees through references on the scrutinee, and the identifiers it
// introduces become references in exchange. A plain identifier or
// wildcard takes the scrutinee type as-is.
func (c *Checker) bindScrutinee(pat ast.Pat, scrut types.TypeID) {
	switch pat.(type) {
	case nil, *ast.IdentPat, *ast.WildPat:
		c.bindPat(pat, scrut, false)
		return
	}
	stripped := c.in.StripRefs(scrut)
	c.bindPat(pat, stripped, stripped != scrut && scrut.IsValid())
}

// bindPat records binding types and introduces names into the current
// scope. byRef wraps identifier bindings in a shared reference.
func (c *Checker) bindPat(pat ast.Pat, ty types.TypeID, byRef bool) {
	switch p := pat.(type) {
	case nil:
		return
	case *ast.IdentPat:
		bound := ty
		if byRef && ty.IsValid() {
			bound = c.in.MakeRef(ty, false)
		}
		c.res.bindingTypes[p] = bound
		c.define(p.Name, bound)
	case *ast.WildPat:
		// binds nothing
	case *ast.RefPat:
		inner := types.NoTypeID
		if t, ok := c.in.Lookup(ty); ok && t.Kind == types.KindRef {
			inner = t.Elem
		}
		c.bindPat(p.Inner, inner, false)
	case *ast.TuplePat:
		t, ok := c.in.Lookup(ty)
		for i, el := range p.Elems {
			elemTy := types.NoTypeID
			if ok && t.Kind == types.KindTuple && i < len(t.Elems) {
				elemTy = t.Elems[i]
			}
			c.bindPat(el, elemTy, byRef)
		}
	case *ast.TupleCtorPat:
		c.bindCtorPat(p, ty, byRef)
	case *ast.StructPat:
		c.bindStructPat(p, ty, byRef)
	}
}

func (c *Checker) bindCtorPat(p *ast.TupleCtorPat, ty types.TypeID, byRef bool) {
	nomID, variantName := c.patTarget(p.Path)
	info := c.in.Nominal(nomID)
	if info == nil {
		for _, el := range p.Elems {
			c.bindPat(el, types.NoTypeID, byRef)
		}
		return
	}
	var args []types.TypeID
	if t, ok := c.in.Lookup(ty); ok && t.Kind == types.KindNamed && t.Nominal == nomID {
		args = t.Args
	}
	var fields []types.TypeID
	if variantName != "" {
		for _, v := range info.Variants {
			if v.Name == variantName {
				fields = v.Fields
				break
			}
		}
	} else {
		fields = info.TupleFields
	}
	for i, el := range p.Elems {
		fieldTy := types.NoTypeID
		if i < len(fields) {
			fieldTy = c.in.Instantiate(fields[i], args, ty)
		}
		c.bindPat(el, fieldTy, byRef)
	}
}

func (c *Checker) bindStructPat(p *ast.StructPat, ty types.TypeID, byRef bool) {
	nomID, _ := c.patTarget(p.Path)
	info := c.in.Nominal(nomID)
	var args []types.TypeID
	if t, ok := c.in.Lookup(ty); ok && t.Kind == types.KindNamed && t.Nominal == nomID {
		args = t.Args
	}
	for _, f := range p.Fields {
		fieldTy := types.NoTypeID
		if info != nil {
			for _, decl := range info.Fields {
				if decl.Name == f.Name {
					fieldTy = c.in.Instantiate(decl.Type, args, ty)
					break
				}
			}
		}
		c.bindPat(f.Pat, fieldTy, byRef)
	}
}

// patTarget resolves a pattern path to the nominal it destructures and
// the variant name when the path names an enum variant.
func (c *Checker) patTarget(path *ast.Path) (types.NominalID, string) {
	if path == nil || len(path.Segments) == 0 {
		return types.NoNominalID, ""
	}
	if len(path.Segments) >= 2 {
		qualifier := path.Segments[len(path.Segments)-2]
		if nom, ok := c.nominalByName[qualifier]; ok {
			if info := c.in.Nominal(nom); info != nil && info.Kind == types.EnumNominal {
				return nom, path.Last()
			}
		}
	}
	if nom, ok := c.nominalByName[path.Last()]; ok {
		return nom, ""
	}
	return types.NoNominalID, ""
}
