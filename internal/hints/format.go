package hints

import (
	"strings"
	"unicode/utf8"

	"rill/internal/types"
)

const (
	iterLabelPrefix = "impl Iterator<Item = "
	iterLabelSuffix = ">"
)

// label renders a type within the configured length budget. Types from
// the core namespace that implement the core Iterator trait render in
// the shortened 'impl Iterator<Item = T>' form instead of their
// concrete adapter name; the wrapper text is charged against the
// budget before the element type is rendered.
func (e *engine) label(ty types.TypeID) string {
	in := e.sem.Interner
	if short, ok := e.iteratorLabel(ty); ok {
		return short
	}
	return types.LabelTruncated(in, ty, e.cfg.MaxLength)
}

func (e *engine) iteratorLabel(ty types.TypeID) (string, bool) {
	in := e.sem.Interner
	pre := e.sem.Prelude()
	stripped := in.StripRefs(ty)

	nom, _, _ := in.NominalOf(stripped)
	if nom == nil || !strings.HasPrefix(nom.Namespace, "core") {
		return "", false
	}
	trait := in.Trait(pre.Iterator)
	if trait == nil || !trait.Public || trait.Namespace != pre.Namespace {
		return "", false
	}
	if !e.sem.Implements(stripped, pre.Iterator) {
		return "", false
	}
	item := e.sem.ProjectAssoc(stripped, pre.Iterator, "Item")
	if !item.IsValid() {
		return "", false
	}

	budget := e.cfg.MaxLength
	if budget > 0 {
		wrapper := utf8.RuneCountInString(iterLabelPrefix) + utf8.RuneCountInString(iterLabelSuffix)
		budget -= wrapper
		if budget < 1 {
			// the wrapper alone blows the budget; the plain truncated
			// form is the only rendering that can honor it
			return "", false
		}
	}
	return iterLabelPrefix + types.LabelTruncated(in, item, budget) + iterLabelSuffix, true
}
