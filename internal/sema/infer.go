package sema

import (
	"strconv"
	"strings"

	"rill/internal/ast"
	"rill/internal/token"
	"rill/internal/types"
)

func (c *Checker) inferBodies(file *ast.File) {
	for _, item := range file.Items {
		switch it := item.(type) {
		case *ast.FnItem:
			c.inferFn(it, nil, types.NoTypeID)
		case *ast.TraitItem:
			self := c.in.MakeParam(types.SelfParamIdx, "Self")
			for _, m := range it.Methods {
				if m.Body != nil {
					c.inferFn(m, nil, self)
				}
			}
		case *ast.ImplItem:
			self := c.lowerType(it.SelfType, it.TypeParams)
			for _, m := range it.Methods {
				c.inferFn(m, it.TypeParams, self)
			}
		}
	}
}

func (c *Checker) inferFn(fn *ast.FnItem, outer []string, self types.TypeID) {
	combined := make([]string, 0, len(outer)+len(fn.TypeParams))
	combined = append(combined, outer...)
	combined = append(combined, fn.TypeParams...)

	saved := c.tparams
	c.tparams = combined
	c.pushScope()
	for _, p := range fn.Params {
		if p.IsSelf {
			recv := self
			if p.SelfRef && recv.IsValid() {
				recv = c.in.MakeRef(recv, p.SelfMut)
			}
			c.define("self", recv)
			continue
		}
		c.bindPat(p.Binding, c.lowerType(p.Type, combined), false)
	}
	if fn.Body != nil {
		c.inferBlock(fn.Body)
	}
	c.popScope()
	c.tparams = saved
}

func (c *Checker) inferBlock(b *ast.BlockExpr) types.TypeID {
	if b == nil {
		return types.NoTypeID
	}
	c.pushScope()
	for _, stmt := range b.Stmts {
		c.inferStmt(stmt)
	}
	ty := c.in.Builtins().Unit
	if b.Tail != nil {
		ty = c.inferExpr(b.Tail)
	}
	c.popScope()
	c.res.exprTypes[b] = ty
	return ty
}

func (c *Checker) inferStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		valTy := c.inferExpr(s.Value)
		bindTy := valTy
		if s.Type != nil {
			if declared := c.lowerType(s.Type, c.tparams); declared.IsValid() {
				bindTy = declared
			}
		}
		c.bindScrutinee(s.Pattern, bindTy)
	case *ast.ExprStmt:
		c.inferExpr(s.X)
	case *ast.ReturnStmt:
		c.inferExpr(s.Value)
	}
}

func (c *Checker) inferExpr(e ast.Expr) types.TypeID {
	if e == nil {
		return types.NoTypeID
	}
	if ty, ok := c.res.exprTypes[e]; ok {
		return ty
	}
	ty := c.inferExprShape(e)
	c.res.exprTypes[e] = ty
	return ty
}

func (c *Checker) inferExprShape(e ast.Expr) types.TypeID {
	switch x := e.(type) {
	case *ast.LitExpr:
		return c.litType(x)
	case *ast.PathExpr:
		return c.resolvePathValue(x)
	case *ast.CallExpr:
		return c.resolveCall(x)
	case *ast.MethodCallExpr:
		return c.resolveMethodCall(x)
	case *ast.FieldExpr:
		return c.fieldType(x)
	case *ast.RefExpr:
		inner := c.inferExpr(x.Inner)
		if !inner.IsValid() {
			return types.NoTypeID
		}
		return c.in.MakeRef(inner, x.Mut)
	case *ast.TupleExpr:
		elems := make([]types.TypeID, 0, len(x.Elems))
		for _, el := range x.Elems {
			elems = append(elems, c.inferExpr(el))
		}
		return c.in.MakeTuple(elems)
	case *ast.ParenExpr:
		return c.inferExpr(x.Inner)
	case *ast.StructLitExpr:
		return c.structLitType(x)
	case *ast.ClosureExpr:
		return c.closureType(x)
	case *ast.BinaryExpr:
		lhs := c.inferExpr(x.Lhs)
		rhs := c.inferExpr(x.Rhs)
		switch x.Op {
		case token.EqEq, token.BangEq, token.Lt, token.LtEq,
			token.Gt, token.GtEq, token.AndAnd, token.OrOr:
			return c.in.Builtins().Bool
		}
		if lhs.IsValid() {
			return lhs
		}
		return rhs
	case *ast.UnaryExpr:
		return c.inferExpr(x.Inner)
	case *ast.IfExpr:
		condTy := c.inferExpr(x.Cond)
		c.pushScope()
		if x.Pat != nil {
			c.bindScrutinee(x.Pat, condTy)
		}
		thenTy := c.inferBlock(x.Then)
		c.popScope()
		if x.Else != nil {
			c.inferExpr(x.Else)
			return thenTy
		}
		return c.in.Builtins().Unit
	case *ast.WhileExpr:
		condTy := c.inferExpr(x.Cond)
		c.pushScope()
		if x.Pat != nil {
			c.bindScrutinee(x.Pat, condTy)
		}
		c.inferBlock(x.Body)
		c.popScope()
		return c.in.Builtins().Unit
	case *ast.ForExpr:
		iterTy := c.inferExpr(x.Iter)
		elem := c.res.ProjectAssoc(iterTy, c.res.prelude.Iterator, "Item")
		c.pushScope()
		c.bindScrutinee(x.Pat, elem)
		c.inferBlock(x.Body)
		c.popScope()
		return c.in.Builtins().Unit
	case *ast.MatchExpr:
		scrutTy := c.inferExpr(x.Scrutinee)
		result := types.NoTypeID
		for _, arm := range x.Arms {
			c.pushScope()
			c.bindScrutinee(arm.Pat, scrutTy)
			bodyTy := c.inferExpr(arm.Body)
			c.popScope()
			if !result.IsValid() {
				result = bodyTy
			}
		}
		return result
	case *ast.BlockExpr:
		return c.inferBlock(x)
	default:
		return types.NoTypeID
	}
}

var litSuffixes = []string{
	"i8", "i16", "i32", "i64", "isize",
	"u8", "u16", "u32", "u64", "usize",
	"f32", "f64",
}

func (c *Checker) litType(e *ast.LitExpr) types.TypeID {
	b := c.in.Builtins()
	switch e.LitKind {
	case ast.LitBool:
		return b.Bool
	case ast.LitChar:
		return b.Char
	case ast.LitString:
		return c.in.MakeRef(b.Str, false)
	case ast.LitFloat:
		if strings.HasSuffix(e.Text, "f32") {
			return c.primType("f32")
		}
		return b.F64
	default: // LitInt, possibly with a type suffix
		for _, suffix := range litSuffixes {
			if strings.HasSuffix(e.Text, suffix) {
				return c.primType(suffix)
			}
		}
		return b.I32
	}
}

func (c *Checker) resolvePathValue(e *ast.PathExpr) types.TypeID {
	path := e.Path
	if path == nil {
		return types.NoTypeID
	}
	if path.IsIdent() {
		name := path.Last()
		if ty, ok := c.lookupVar(name); ok {
			return ty
		}
		if fid, ok := c.fnByName[name]; ok {
			return c.in.MakeFn(fid)
		}
		if fid, ok := c.tupleCtors[name]; ok {
			return c.in.MakeFn(fid)
		}
		if nom, ok := c.nominalByName[name]; ok {
			if info := c.in.Nominal(nom); info != nil && info.IsFieldless() {
				return c.in.MakeNamed(nom, nil)
			}
		}
		return types.NoTypeID
	}

	last := path.Last()
	qualifier := path.Segments[len(path.Segments)-2]
	if fid, ok := c.variantCtors[qualifier+"::"+last]; ok {
		return c.in.MakeFn(fid)
	}
	if nom, ok := c.nominalByName[qualifier]; ok {
		info := c.in.Nominal(nom)
		if info != nil && info.Kind == types.EnumNominal {
			for _, v := range info.Variants {
				if v.Name == last && len(v.Fields) == 0 {
					return c.in.MakeNamed(nom, unknownArgs(len(info.Params)))
				}
			}
		}
		if fid, _ := c.methodOnNominal(nom, last); fid.IsValid() {
			return c.in.MakeFn(fid)
		}
	}
	// fully qualified core paths like core::iter::repeat
	if path.Segments[0] == "core" {
		if fid, ok := c.fnByName[last]; ok {
			return c.in.MakeFn(fid)
		}
	}
	return types.NoTypeID
}

func unknownArgs(n int) []types.TypeID {
	if n == 0 {
		return nil
	}
	return make([]types.TypeID, n)
}

// methodOnNominal finds a method (or associated function) named name
// in any impl block whose self type is the given nominal.
func (c *Checker) methodOnNominal(nom types.NominalID, name string) (types.FnID, int) {
	for i := range c.res.impls {
		entry := &c.res.impls[i]
		_, id, _ := c.in.NominalOf(c.in.StripRefs(entry.selfPat))
		if id != nom {
			continue
		}
		for _, fid := range entry.methods {
			if c.in.Fn(fid).Name == name {
				return fid, i
			}
		}
	}
	return types.NoFnID, -1
}

// lookupMethod resolves a receiver-based method call: impl methods
// first, trait-provided methods second.
func (c *Checker) lookupMethod(stripped types.TypeID, name string) (types.FnID, int) {
	for i := range c.res.impls {
		entry := &c.res.impls[i]
		binds := make([]types.TypeID, maxGenericBinds)
		if !c.in.Match(entry.selfPat, stripped, binds) {
			continue
		}
		for _, fid := range entry.methods {
			sig := c.in.Fn(fid)
			if sig.Name == name && sig.HasSelf {
				return fid, i
			}
		}
	}
	for trait, fids := range c.traitMethods {
		for _, fid := range fids {
			if c.in.Fn(fid).Name != name {
				continue
			}
			if c.res.Implements(stripped, trait) {
				return fid, -1
			}
		}
	}
	return types.NoFnID, -1
}

func (c *Checker) resolveCall(call *ast.CallExpr) types.TypeID {
	calleeTy := c.inferExpr(call.Callee)
	t, ok := c.in.Lookup(calleeTy)
	if !ok || t.Kind != types.KindFn {
		for _, a := range call.Args {
			c.inferExpr(a)
		}
		return types.NoTypeID
	}
	fid := t.Fn
	sig := c.in.Fn(fid)
	if sig == nil {
		return types.NoTypeID
	}
	c.res.callables[call] = fid

	implIdx := -1
	if idx, known := c.methodImpl[fid]; known {
		implIdx = idx
	}
	binds := make([]types.TypeID, maxGenericBinds)
	selfTy := types.NoTypeID
	args := call.Args

	// fully qualified method call: the receiver is the first argument
	if sig.HasSelf && len(args) > 0 {
		selfTy = c.in.StripRefs(c.inferExpr(args[0]))
		if implIdx >= 0 {
			c.in.Match(c.res.impls[implIdx].selfPat, selfTy, binds)
		}
		args = args[1:]
	}
	for i, p := range sig.Params {
		if i >= len(args) {
			break
		}
		argTy := c.inferExpr(args[i])
		c.in.Match(p.Type, argTy, binds)
	}
	for i := len(sig.Params); i < len(args); i++ {
		c.inferExpr(args[i])
	}
	if !selfTy.IsValid() && implIdx >= 0 {
		selfTy = c.in.Instantiate(c.in.StripRefs(c.res.impls[implIdx].selfPat), binds, types.NoTypeID)
	}
	return c.in.Instantiate(sig.Ret, binds, selfTy)
}

func (c *Checker) resolveMethodCall(mc *ast.MethodCallExpr) types.TypeID {
	recv := c.inferExpr(mc.Recv)
	stripped := c.in.StripRefs(recv)
	if !stripped.IsValid() {
		for _, a := range mc.Args {
			c.inferExpr(a)
		}
		return types.NoTypeID
	}
	fid, implIdx := c.lookupMethod(stripped, mc.Name)
	if !fid.IsValid() {
		for _, a := range mc.Args {
			c.inferExpr(a)
		}
		return types.NoTypeID
	}
	c.res.callables[mc] = fid
	sig := c.in.Fn(fid)

	binds := make([]types.TypeID, maxGenericBinds)
	if implIdx >= 0 {
		c.in.Match(c.res.impls[implIdx].selfPat, stripped, binds)
	}
	for i, p := range sig.Params {
		if i >= len(mc.Args) {
			break
		}
		argTy := c.inferExpr(mc.Args[i])
		c.in.Match(p.Type, argTy, binds)
	}
	for i := len(sig.Params); i < len(mc.Args); i++ {
		c.inferExpr(mc.Args[i])
	}
	return c.in.Instantiate(sig.Ret, binds, stripped)
}

func (c *Checker) fieldType(e *ast.FieldExpr) types.TypeID {
	recv := c.in.StripRefs(c.inferExpr(e.Recv))
	t, ok := c.in.Lookup(recv)
	if !ok {
		return types.NoTypeID
	}
	switch t.Kind {
	case types.KindTuple:
		idx, err := strconv.Atoi(e.Name)
		if err != nil || idx < 0 || idx >= len(t.Elems) {
			return types.NoTypeID
		}
		return t.Elems[idx]
	case types.KindNamed:
		info := c.in.Nominal(t.Nominal)
		if info == nil {
			return types.NoTypeID
		}
		for _, f := range info.Fields {
			if f.Name == e.Name {
				return c.in.Instantiate(f.Type, t.Args, recv)
			}
		}
		if idx, err := strconv.Atoi(e.Name); err == nil && idx >= 0 && idx < len(info.TupleFields) {
			return c.in.Instantiate(info.TupleFields[idx], t.Args, recv)
		}
	}
	return types.NoTypeID
}

func (c *Checker) structLitType(e *ast.StructLitExpr) types.TypeID {
	nom, ok := c.nominalByName[e.Path.Last()]
	if !ok {
		for _, f := range e.Fields {
			c.inferExpr(f.Value)
		}
		return types.NoTypeID
	}
	info := c.in.Nominal(nom)
	binds := make([]types.TypeID, maxGenericBinds)
	for _, f := range e.Fields {
		valTy := c.inferExpr(f.Value)
		if f.Value == nil {
			valTy, _ = c.lookupVar(f.Name) // shorthand
		}
		for _, decl := range info.Fields {
			if decl.Name == f.Name {
				c.in.Match(decl.Type, valTy, binds)
				break
			}
		}
	}
	var args []types.TypeID
	for i := range info.Params {
		args = append(args, binds[i])
	}
	return c.in.MakeNamed(nom, args)
}

func (c *Checker) closureType(e *ast.ClosureExpr) types.TypeID {
	c.pushScope()
	var params []types.FnParam
	for _, p := range e.Params {
		ty := c.lowerType(p.Type, c.tparams)
		name := ""
		if ident, ok := p.Binding.(*ast.IdentPat); ok {
			name = ident.Name
		}
		c.bindPat(p.Binding, ty, false)
		params = append(params, types.FnParam{Name: name, Type: ty})
	}
	ret := c.inferExpr(e.Body)
	c.popScope()
	fid := c.in.DeclareFn(types.FnSig{
		Kind:   types.FnClosure,
		Params: params,
		Ret:    ret,
	})
	return c.in.MakeFn(fid)
}
