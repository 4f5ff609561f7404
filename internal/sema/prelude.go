package sema

import "rill/internal/types"

// preludeNamespace is where the implicit core declarations live.
const preludeNamespace = "core::iter"

// installPrelude seeds the interner with the implicit core iteration
// vocabulary: the Iterator trait, the repeat() source, and the Take
// adapter. These behave exactly like user declarations, they just
// carry the core namespace.
func (c *Checker) installPrelude() {
	iter := c.in.DeclareTrait(types.TraitInfo{
		Name:       "Iterator",
		Namespace:  preludeNamespace,
		Public:     true,
		AssocTypes: []string{"Item"},
	})
	c.traitByName["Iterator"] = iter

	tParam := c.in.MakeParam(0, "T")
	iParam := c.in.MakeParam(0, "I")
	selfParam := c.in.MakeParam(types.SelfParamIdx, "Self")
	usize := c.in.Builtins().Usize

	repeat := c.in.DeclareNominal(types.NominalInfo{
		Name:      "Repeat",
		Namespace: preludeNamespace,
		Kind:      types.StructNominal,
		Public:    true,
		Params:    []string{"T"},
		Fields:    []types.FieldInfo{{Name: "value", Type: tParam}},
	})
	c.nominalByName["Repeat"] = repeat

	take := c.in.DeclareNominal(types.NominalInfo{
		Name:      "Take",
		Namespace: preludeNamespace,
		Kind:      types.StructNominal,
		Public:    true,
		Params:    []string{"I"},
		Fields: []types.FieldInfo{
			{Name: "iter", Type: iParam},
			{Name: "left", Type: usize},
		},
	})
	c.nominalByName["Take"] = take

	repeatTy := c.in.MakeNamed(repeat, []types.TypeID{tParam})
	takeOfI := c.in.MakeNamed(take, []types.TypeID{iParam})

	// impl<T> Iterator for Repeat<T> { type Item = T }
	c.res.impls = append(c.res.impls, implEntry{
		trait:   iter,
		selfPat: repeatTy,
		assoc:   map[string]types.TypeID{"Item": tParam},
	})
	// impl<I: Iterator> Iterator for Take<I> { type Item = I::Item }
	c.res.impls = append(c.res.impls, implEntry{
		trait:   iter,
		selfPat: takeOfI,
		assoc:   map[string]types.TypeID{"Item": c.in.MakeProj(iParam, iter, "Item")},
	})

	// fn repeat<T>(value: T) -> Repeat<T>
	c.fnByName["repeat"] = c.in.DeclareFn(types.FnSig{
		Name:       "repeat",
		Namespace:  preludeNamespace,
		Kind:       types.FnFree,
		TypeParams: []string{"T"},
		Params:     []types.FnParam{{Name: "value", Type: tParam}},
		Ret:        repeatTy,
	})

	// Iterator's provided adapters, available on any implementor.
	takeFn := c.in.DeclareFn(types.FnSig{
		Name:      "take",
		Namespace: preludeNamespace,
		Kind:      types.FnMethod,
		HasSelf:   true,
		SelfLabel: "self",
		Params:    []types.FnParam{{Name: "n", Type: usize}},
		Ret:       c.in.MakeNamed(take, []types.TypeID{selfParam}),
	})
	byRefFn := c.in.DeclareFn(types.FnSig{
		Name:      "by_ref",
		Namespace: preludeNamespace,
		Kind:      types.FnMethod,
		HasSelf:   true,
		SelfLabel: "&mut self",
		Ret:       c.in.MakeRef(selfParam, true),
	})
	c.traitMethods[iter] = []types.FnID{takeFn, byRefFn}
	c.methodImpl[takeFn] = -1
	c.methodImpl[byRefFn] = -1

	c.res.prelude = Prelude{
		Namespace: preludeNamespace,
		Iterator:  iter,
		Repeat:    repeat,
		Take:      take,
	}
}
