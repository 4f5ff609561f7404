package types

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "…"

// Label returns a user-facing rendering of id, such as
// 'Option<Test>', '&str', or '(i32, char)'. Unknown types render as '?'.
func Label(in *Interner, id TypeID) string {
	return labelDepth(in, id, 0)
}

// LabelTruncated renders id within max runes. A max of 0 means
// unlimited. Nominal types whose generic arguments do not fit collapse
// to 'Name<…>'; anything still over budget is clipped with a trailing
// ellipsis, so the result never exceeds max runes.
func LabelTruncated(in *Interner, id TypeID, max int) string {
	full := Label(in, id)
	if max <= 0 || utf8.RuneCountInString(full) <= max {
		return full
	}
	return shrink(in, id, max)
}

func shrink(in *Interner, id TypeID, budget int) string {
	t, ok := in.Lookup(id)
	if !ok {
		return clip("?", budget)
	}
	switch t.Kind {
	case KindRef:
		prefix := "&"
		if t.Mutable {
			prefix = "&mut "
		}
		inner := LabelTruncated(in, t.Elem, budget-utf8.RuneCountInString(prefix))
		return clip(prefix+inner, budget)
	case KindNamed:
		nom := in.Nominal(t.Nominal)
		if nom == nil {
			return clip("?", budget)
		}
		if len(t.Args) > 0 {
			short := nom.Name + "<" + ellipsis + ">"
			if utf8.RuneCountInString(short) <= budget {
				return short
			}
		}
		return clip(nom.Name, budget)
	default:
		return clip(Label(in, id), budget)
	}
}

func clip(s string, budget int) string {
	if utf8.RuneCountInString(s) <= budget {
		return s
	}
	if budget <= 1 {
		return ellipsis
	}
	runes := []rune(s)
	return string(runes[:budget-1]) + ellipsis
}

func labelDepth(in *Interner, id TypeID, depth int) string {
	if in == nil || id == NoTypeID {
		return "?"
	}
	if depth > 8 {
		return ellipsis
	}
	t, ok := in.Lookup(id)
	if !ok {
		return "?"
	}
	switch t.Kind {
	case KindUnit:
		return "()"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindStr:
		return "str"
	case KindInt:
		return intName("i", t.Width)
	case KindUint:
		return intName("u", t.Width)
	case KindFloat:
		if t.Width == Width32 {
			return "f32"
		}
		return "f64"
	case KindRef:
		if t.Mutable {
			return "&mut " + labelDepth(in, t.Elem, depth+1)
		}
		return "&" + labelDepth(in, t.Elem, depth+1)
	case KindTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = labelDepth(in, e, depth+1)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindNamed:
		nom := in.Nominal(t.Nominal)
		if nom == nil {
			return "?"
		}
		if len(t.Args) == 0 {
			return nom.Name
		}
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = labelDepth(in, a, depth+1)
		}
		return nom.Name + "<" + strings.Join(parts, ", ") + ">"
	case KindFn:
		sig := in.Fn(t.Fn)
		if sig == nil {
			return "?"
		}
		ret := labelDepth(in, sig.Ret, depth+1)
		if sig.Kind == FnClosure {
			if len(sig.Params) == 0 {
				return "|| -> " + ret
			}
			return "|" + ellipsis + "| -> " + ret
		}
		parts := make([]string, len(sig.Params))
		for i, p := range sig.Params {
			parts[i] = labelDepth(in, p.Type, depth+1)
		}
		return "fn(" + strings.Join(parts, ", ") + ") -> " + ret
	case KindParam:
		if t.Param == SelfParamIdx {
			return "Self"
		}
		return t.Name
	case KindProj:
		trait := in.Trait(t.Trait)
		traitName := "?"
		if trait != nil {
			traitName = trait.Name
		}
		return "<" + labelDepth(in, t.Elem, depth+1) + " as " + traitName + ">::" + t.Assoc
	default:
		return "?"
	}
}

func intName(prefix string, width uint8) string {
	switch width {
	case Width8:
		return prefix + "8"
	case Width16:
		return prefix + "16"
	case Width32:
		return prefix + "32"
	case Width64:
		return prefix + "64"
	case WidthSize:
		if prefix == "u" {
			return "usize"
		}
		return "isize"
	default:
		return prefix + "32"
	}
}
