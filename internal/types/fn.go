package types

// FnID identifies a callable signature.
type FnID uint32

// NoFnID marks the absence of a callable.
const NoFnID FnID = 0

// IsValid reports whether the id refers to a declared callable.
func (id FnID) IsValid() bool { return id != NoFnID }

// FnKind classifies callables the way call sites see them.
type FnKind uint8

const (
	// FnFree is a free function.
	FnFree FnKind = iota + 1
	// FnMethod is a function with a receiver inside an impl or trait.
	FnMethod
	// FnClosure is a closure literal.
	FnClosure
	// FnTupleStruct is the implicit constructor of a tuple struct.
	FnTupleStruct
	// FnTupleVariant is the implicit constructor of a tuple enum variant.
	FnTupleVariant
)

// FnParam is a declared parameter. Name is empty when the binding is
// not a plain identifier (destructured or '_').
type FnParam struct {
	Name string
	Type TypeID
}

// FnSig describes a callable. Receiver parameters are kept out of
// Params; HasSelf and SelfLabel describe them.
type FnSig struct {
	Name       string
	Namespace  string
	Kind       FnKind
	TypeParams []string
	HasSelf    bool
	SelfLabel  string // "self", "&self", or "&mut self"
	Params     []FnParam
	Ret        TypeID
	Owner      NominalID // methods and constructors: the self nominal
}

// DeclareFn registers a callable signature and returns its id.
func (in *Interner) DeclareFn(sig FnSig) FnID {
	id := FnID(len(in.fns)) //nolint:gosec // decl counts fit uint32
	in.fns = append(in.fns, sig)
	return id
}

// Fn returns the registered signature for id, or nil.
func (in *Interner) Fn(id FnID) *FnSig {
	if in == nil || id == NoFnID || int(id) >= len(in.fns) {
		return nil
	}
	return &in.fns[id]
}

// FnOf returns the signature behind id when id is a KindFn type.
func (in *Interner) FnOf(id TypeID) *FnSig {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindFn {
		return nil
	}
	return in.Fn(t.Fn)
}
