package types

// Instantiate rewrites generic parameters inside id: KindParam indices
// are replaced from args (left unchanged when out of range or unbound)
// and the implicit Self parameter by self. Projections keep their
// trait/assoc and only substitute the base.
func (in *Interner) Instantiate(id TypeID, args []TypeID, self TypeID) TypeID {
	t, ok := in.Lookup(id)
	if !ok {
		return id
	}
	switch t.Kind {
	case KindParam:
		if t.Param == SelfParamIdx {
			if self != NoTypeID {
				return self
			}
			return id
		}
		if t.Param >= 0 && t.Param < len(args) && args[t.Param] != NoTypeID {
			return args[t.Param]
		}
		return id
	case KindRef:
		return in.MakeRef(in.Instantiate(t.Elem, args, self), t.Mutable)
	case KindTuple:
		elems := make([]TypeID, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = in.Instantiate(e, args, self)
		}
		return in.MakeTuple(elems)
	case KindNamed:
		if len(t.Args) == 0 {
			return id
		}
		sub := make([]TypeID, len(t.Args))
		for i, a := range t.Args {
			sub[i] = in.Instantiate(a, args, self)
		}
		return in.MakeNamed(t.Nominal, sub)
	case KindProj:
		return in.MakeProj(in.Instantiate(t.Elem, args, self), t.Trait, t.Assoc)
	default:
		return id
	}
}

// Match unifies a declaration-side pattern type (which may contain
// KindParam holes) against a concrete type, filling binds, which is
// indexed by parameter position. It reports whether the shapes agree.
func (in *Interner) Match(pattern, concrete TypeID, binds []TypeID) bool {
	if pattern == concrete {
		return true
	}
	pt, ok := in.Lookup(pattern)
	if !ok {
		return false
	}
	if pt.Kind == KindParam {
		if pt.Param == SelfParamIdx {
			return false
		}
		if pt.Param < 0 || pt.Param >= len(binds) {
			return false
		}
		if binds[pt.Param] == NoTypeID {
			binds[pt.Param] = concrete
			return true
		}
		return binds[pt.Param] == concrete
	}
	ct, ok := in.Lookup(concrete)
	if !ok || pt.Kind != ct.Kind {
		return false
	}
	switch pt.Kind {
	case KindRef:
		return pt.Mutable == ct.Mutable && in.Match(pt.Elem, ct.Elem, binds)
	case KindTuple:
		if len(pt.Elems) != len(ct.Elems) {
			return false
		}
		for i := range pt.Elems {
			if !in.Match(pt.Elems[i], ct.Elems[i], binds) {
				return false
			}
		}
		return true
	case KindNamed:
		if pt.Nominal != ct.Nominal || len(pt.Args) != len(ct.Args) {
			return false
		}
		for i := range pt.Args {
			if !in.Match(pt.Args[i], ct.Args[i], binds) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
