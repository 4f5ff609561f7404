package types

// NominalID identifies a declared struct or enum.
type NominalID uint32

// NoNominalID marks the absence of a nominal type.
const NoNominalID NominalID = 0

// IsValid reports whether the id refers to a declared nominal.
func (id NominalID) IsValid() bool { return id != NoNominalID }

// NominalKind distinguishes structs from enums.
type NominalKind uint8

const (
	// StructNominal is a struct declaration.
	StructNominal NominalKind = iota + 1
	// EnumNominal is an enum declaration.
	EnumNominal
)

// FieldInfo is a named struct field. The type may reference the
// owner's generic parameters via KindParam.
type FieldInfo struct {
	Name string
	Type TypeID
}

// VariantInfo is a single enum variant with optional tuple payload.
type VariantInfo struct {
	Name   string
	Fields []TypeID
}

// NominalInfo describes a declared struct or enum.
type NominalInfo struct {
	Name      string
	Namespace string // "" for user code, e.g. "core::iter" for the prelude
	Kind      NominalKind
	Public    bool
	Params    []string // generic parameter names

	Fields      []FieldInfo // record structs
	TupleFields []TypeID    // tuple structs
	Variants    []VariantInfo
}

// IsFieldless reports whether the nominal is a struct with no fields
// of either form (a unit-like value).
func (n *NominalInfo) IsFieldless() bool {
	return n.Kind == StructNominal && len(n.Fields) == 0 && len(n.TupleFields) == 0
}

// DeclareNominal registers a nominal type and returns its id. Field and
// variant types may be filled in later through Nominal(id) once their
// TypeIDs exist (declaration happens in two passes so types can refer
// to each other).
func (in *Interner) DeclareNominal(info NominalInfo) NominalID {
	id := NominalID(len(in.nominals)) //nolint:gosec // decl counts fit uint32
	in.nominals = append(in.nominals, info)
	return id
}

// Nominal returns the registered info for id, or nil.
func (in *Interner) Nominal(id NominalID) *NominalInfo {
	if in == nil || id == NoNominalID || int(id) >= len(in.nominals) {
		return nil
	}
	return &in.nominals[id]
}

// NominalOf returns the nominal behind id when id is a KindNamed type.
func (in *Interner) NominalOf(id TypeID) (*NominalInfo, NominalID, []TypeID) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindNamed {
		return nil, NoNominalID, nil
	}
	return in.Nominal(t.Nominal), t.Nominal, t.Args
}

// TraitID identifies a declared trait.
type TraitID uint32

// NoTraitID marks the absence of a trait.
const NoTraitID TraitID = 0

// IsValid reports whether the id refers to a declared trait.
func (id TraitID) IsValid() bool { return id != NoTraitID }

// TraitInfo describes a declared trait.
type TraitInfo struct {
	Name       string
	Namespace  string
	Public     bool
	AssocTypes []string
}

// DeclareTrait registers a trait and returns its id.
func (in *Interner) DeclareTrait(info TraitInfo) TraitID {
	id := TraitID(len(in.traits)) //nolint:gosec // decl counts fit uint32
	in.traits = append(in.traits, info)
	return id
}

// Trait returns the registered info for id, or nil.
func (in *Interner) Trait(id TraitID) *TraitInfo {
	if in == nil || id == NoTraitID || int(id) >= len(in.traits) {
		return nil
	}
	return &in.traits[id]
}
