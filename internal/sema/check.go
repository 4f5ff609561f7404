package sema

import (
	"rill/internal/ast"
	"rill/internal/types"
)

// Checker accumulates declarations in a first pass and infers function
// bodies in a second.
type Checker struct {
	in  *types.Interner
	res *Result

	nominalByName map[string]types.NominalID
	nominalItems  map[types.NominalID]ast.Item
	traitByName   map[string]types.TraitID
	fnByName      map[string]types.FnID
	tupleCtors    map[string]types.FnID
	variantCtors  map[string]types.FnID
	traitMethods  map[types.TraitID][]types.FnID
	methodImpl    map[types.FnID]int

	scopes []map[string]types.TypeID

	// lowering context for the item currently being processed
	tparams []string
}

// Check resolves and infers one parsed file.
func Check(file *ast.File) *Result {
	c := &Checker{
		in: types.NewInterner(),
		res: &Result{
			exprTypes:    make(map[ast.Expr]types.TypeID),
			bindingTypes: make(map[*ast.IdentPat]types.TypeID),
			callables:    make(map[ast.Node]types.FnID),
		},
		nominalByName: make(map[string]types.NominalID),
		nominalItems:  make(map[types.NominalID]ast.Item),
		traitByName:   make(map[string]types.TraitID),
		fnByName:      make(map[string]types.FnID),
		tupleCtors:    make(map[string]types.FnID),
		variantCtors:  make(map[string]types.FnID),
		traitMethods:  make(map[types.TraitID][]types.FnID),
		methodImpl:    make(map[types.FnID]int),
	}
	c.res.Interner = c.in

	c.installPrelude()
	c.declareNames(file)
	c.fillDeclarations(file)
	c.inferBodies(file)
	return c.res
}

// declareNames registers every nominal and trait name so that types can
// refer to each other regardless of declaration order.
func (c *Checker) declareNames(file *ast.File) {
	for _, item := range file.Items {
		switch it := item.(type) {
		case *ast.StructItem:
			id := c.in.DeclareNominal(types.NominalInfo{
				Name:   it.Name,
				Kind:   types.StructNominal,
				Public: it.Public,
				Params: it.TypeParams,
			})
			c.nominalByName[it.Name] = id
			c.nominalItems[id] = it
		case *ast.EnumItem:
			id := c.in.DeclareNominal(types.NominalInfo{
				Name:   it.Name,
				Kind:   types.EnumNominal,
				Public: it.Public,
				Params: it.TypeParams,
			})
			c.nominalByName[it.Name] = id
			c.nominalItems[id] = it
		case *ast.TraitItem:
			id := c.in.DeclareTrait(types.TraitInfo{
				Name:       it.Name,
				Public:     it.Public,
				AssocTypes: it.AssocTypes,
			})
			c.traitByName[it.Name] = id
		}
	}
}

// fillDeclarations lowers nominal bodies, function signatures, trait
// methods, and impl blocks now that every name is known.
func (c *Checker) fillDeclarations(file *ast.File) {
	for _, item := range file.Items {
		switch it := item.(type) {
		case *ast.StructItem:
			c.fillStruct(it)
		case *ast.EnumItem:
			c.fillEnum(it)
		}
	}
	for _, item := range file.Items {
		switch it := item.(type) {
		case *ast.FnItem:
			sig := c.fnSig(it, nil, types.FnFree, types.NoNominalID)
			c.fnByName[it.Name] = c.in.DeclareFn(sig)
		case *ast.TraitItem:
			c.fillTraitMethods(it)
		case *ast.ImplItem:
			c.fillImpl(it)
		}
	}
}

func (c *Checker) fillStruct(it *ast.StructItem) {
	id := c.nominalByName[it.Name]
	info := c.in.Nominal(id)
	switch it.Shape {
	case ast.StructRecord:
		for _, f := range it.Fields {
			info.Fields = append(info.Fields, types.FieldInfo{
				Name: f.Name,
				Type: c.lowerType(f.Type, it.TypeParams),
			})
		}
	case ast.StructTuple:
		ctorParams := make([]types.FnParam, 0, len(it.TupleFields))
		for _, f := range it.TupleFields {
			ty := c.lowerType(f, it.TypeParams)
			info.TupleFields = append(info.TupleFields, ty)
			ctorParams = append(ctorParams, types.FnParam{Type: ty})
		}
		ret := c.nominalSelf(id, it.TypeParams)
		c.tupleCtors[it.Name] = c.in.DeclareFn(types.FnSig{
			Name:       it.Name,
			Kind:       types.FnTupleStruct,
			TypeParams: it.TypeParams,
			Params:     ctorParams,
			Ret:        ret,
			Owner:      id,
		})
	case ast.StructUnit:
		// no fields, no constructor function
	}
}

func (c *Checker) fillEnum(it *ast.EnumItem) {
	id := c.nominalByName[it.Name]
	info := c.in.Nominal(id)
	for _, v := range it.Variants {
		variant := types.VariantInfo{Name: v.Name}
		for _, f := range v.TupleFields {
			variant.Fields = append(variant.Fields, c.lowerType(f, it.TypeParams))
		}
		info.Variants = append(info.Variants, variant)
		if len(variant.Fields) > 0 {
			params := make([]types.FnParam, 0, len(variant.Fields))
			for _, ty := range variant.Fields {
				params = append(params, types.FnParam{Type: ty})
			}
			c.variantCtors[it.Name+"::"+v.Name] = c.in.DeclareFn(types.FnSig{
				Name:       v.Name,
				Kind:       types.FnTupleVariant,
				TypeParams: it.TypeParams,
				Params:     params,
				Ret:        c.nominalSelf(id, it.TypeParams),
				Owner:      id,
			})
		}
	}
}

// nominalSelf builds 'Name<P0, P1, ...>' with the declaration's own
// generic parameters as arguments.
func (c *Checker) nominalSelf(id types.NominalID, tparams []string) types.TypeID {
	if len(tparams) == 0 {
		return c.in.MakeNamed(id, nil)
	}
	args := make([]types.TypeID, len(tparams))
	for i, name := range tparams {
		args[i] = c.in.MakeParam(i, name)
	}
	return c.in.MakeNamed(id, args)
}

func (c *Checker) fillTraitMethods(it *ast.TraitItem) {
	tid := c.traitByName[it.Name]
	for _, m := range it.Methods {
		sig := c.fnSig(m, nil, types.FnMethod, types.NoNominalID)
		fid := c.in.DeclareFn(sig)
		c.traitMethods[tid] = append(c.traitMethods[tid], fid)
		c.methodImpl[fid] = -1
	}
}

func (c *Checker) fillImpl(it *ast.ImplItem) {
	selfPat := c.lowerType(it.SelfType, it.TypeParams)
	entry := implEntry{selfPat: selfPat}
	if it.TraitPath != nil {
		entry.trait = c.traitByName[it.TraitPath.Last()]
	}
	for _, def := range it.AssocDefs {
		if entry.assoc == nil {
			entry.assoc = make(map[string]types.TypeID)
		}
		entry.assoc[def.Name] = c.lowerType(def.Type, it.TypeParams)
	}
	owner := types.NoNominalID
	if nom, id, _ := c.in.NominalOf(c.in.StripRefs(selfPat)); nom != nil {
		owner = id
	}
	implIdx := len(c.res.impls)
	for _, m := range it.Methods {
		kind := types.FnFree
		if hasReceiver(m) {
			kind = types.FnMethod
		}
		sig := c.fnSig(m, it.TypeParams, kind, owner)
		fid := c.in.DeclareFn(sig)
		entry.methods = append(entry.methods, fid)
		c.methodImpl[fid] = implIdx
	}
	c.res.impls = append(c.res.impls, entry)
}

func hasReceiver(fn *ast.FnItem) bool {
	return len(fn.Params) > 0 && fn.Params[0].IsSelf
}

// fnSig lowers a function declaration. outer carries the enclosing
// impl's generic parameters; the function's own parameters extend that
// index space.
func (c *Checker) fnSig(fn *ast.FnItem, outer []string, kind types.FnKind, owner types.NominalID) types.FnSig {
	combined := make([]string, 0, len(outer)+len(fn.TypeParams))
	combined = append(combined, outer...)
	combined = append(combined, fn.TypeParams...)

	sig := types.FnSig{
		Name:       fn.Name,
		Kind:       kind,
		TypeParams: combined,
		Owner:      owner,
	}
	for _, p := range fn.Params {
		if p.IsSelf {
			sig.HasSelf = true
			sig.SelfLabel = selfLabel(p)
			continue
		}
		name := ""
		if ident, ok := p.Binding.(*ast.IdentPat); ok {
			name = ident.Name
		}
		sig.Params = append(sig.Params, types.FnParam{
			Name: name,
			Type: c.lowerType(p.Type, combined),
		})
	}
	if fn.Ret != nil {
		sig.Ret = c.lowerType(fn.Ret, combined)
	} else {
		sig.Ret = c.in.Builtins().Unit
	}
	return sig
}

func selfLabel(p *ast.Param) string {
	switch {
	case p.SelfRef && p.SelfMut:
		return "&mut self"
	case p.SelfRef:
		return "&self"
	default:
		return "self"
	}
}

// lowerType converts type syntax to an interned type. Generic
// parameter names in tparams lower to KindParam holes; unresolved
// names lower to the unknown type.
func (c *Checker) lowerType(ty ast.TypeExpr, tparams []string) types.TypeID {
	switch t := ty.(type) {
	case *ast.RefType:
		elem := c.lowerType(t.Elem, tparams)
		if !elem.IsValid() {
			return types.NoTypeID
		}
		return c.in.MakeRef(elem, t.Mut)
	case *ast.TupleType:
		elems := make([]types.TypeID, 0, len(t.Elems))
		for _, e := range t.Elems {
			elems = append(elems, c.lowerType(e, tparams))
		}
		return c.in.MakeTuple(elems)
	case *ast.PathType:
		return c.lowerPathType(t, tparams)
	default:
		return types.NoTypeID
	}
}

func (c *Checker) lowerPathType(t *ast.PathType, tparams []string) types.TypeID {
	name := t.Path.Last()
	if t.Path.IsIdent() {
		if name == "Self" {
			return c.in.MakeParam(types.SelfParamIdx, "Self")
		}
		for i, tp := range tparams {
			if tp == name {
				return c.in.MakeParam(i, name)
			}
		}
		if prim := c.primType(name); prim.IsValid() {
			return prim
		}
	}
	nom, ok := c.nominalByName[name]
	if !ok {
		return types.NoTypeID
	}
	var args []types.TypeID
	for _, a := range t.Args {
		args = append(args, c.lowerType(a, tparams))
	}
	want := len(c.in.Nominal(nom).Params)
	for len(args) < want {
		args = append(args, types.NoTypeID)
	}
	return c.in.MakeNamed(nom, args)
}

func (c *Checker) primType(name string) types.TypeID {
	b := c.in.Builtins()
	switch name {
	case "bool":
		return b.Bool
	case "char":
		return b.Char
	case "str":
		return b.Str
	case "i8":
		return c.in.Intern(types.Type{Kind: types.KindInt, Width: types.Width8})
	case "i16":
		return c.in.Intern(types.Type{Kind: types.KindInt, Width: types.Width16})
	case "i32":
		return b.I32
	case "i64":
		return c.in.Intern(types.Type{Kind: types.KindInt, Width: types.Width64})
	case "isize":
		return c.in.Intern(types.Type{Kind: types.KindInt, Width: types.WidthSize})
	case "u8":
		return c.in.Intern(types.Type{Kind: types.KindUint, Width: types.Width8})
	case "u16":
		return c.in.Intern(types.Type{Kind: types.KindUint, Width: types.Width16})
	case "u32":
		return c.in.Intern(types.Type{Kind: types.KindUint, Width: types.Width32})
	case "u64":
		return c.in.Intern(types.Type{Kind: types.KindUint, Width: types.Width64})
	case "usize":
		return b.Usize
	case "f32":
		return c.in.Intern(types.Type{Kind: types.KindFloat, Width: types.Width32})
	case "f64":
		return b.F64
	default:
		return types.NoTypeID
	}
}

func (c *Checker) pushScope() {
	c.scopes = append(c.scopes, make(map[string]types.TypeID))
}

func (c *Checker) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

func (c *Checker) define(name string, ty types.TypeID) {
	if name == "" || len(c.scopes) == 0 {
		return
	}
	c.scopes[len(c.scopes)-1][name] = ty
}

func (c *Checker) lookupVar(name string) (types.TypeID, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if ty, ok := c.scopes[i][name]; ok {
			return ty, true
		}
	}
	return types.NoTypeID, false
}
