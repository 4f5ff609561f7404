package hints

import (
	"strings"
	"unicode"

	"rill/internal/ast"
	"rill/internal/types"
)

// FixtureParamMarker prefixes parameter names that exist only for the
// project's own test harness; such parameters never get hints. This is
// policy, not configuration.
const FixtureParamMarker = "rill_fixture"

// receiverLabel is the hint shown for the receiver argument of a fully
// qualified method call like Point::scale(&p, 2).
const receiverLabel = "self"

// paramHints labels each argument of a call with the matching declared
// parameter name, unless a suppression heuristic decides the call site
// already conveys it.
func (e *engine) paramHints(n ast.Node) {
	sig := e.sem.CallableFor(n)
	if sig == nil {
		return
	}

	var args []ast.Expr
	var names []string
	switch call := n.(type) {
	case *ast.CallExpr:
		args = call.Args
		if sig.HasSelf {
			names = append(names, receiverLabel)
		}
	case *ast.MethodCallExpr:
		args = call.Args
	default:
		return
	}
	for _, p := range sig.Params {
		names = append(names, p.Name)
	}

	for i := 0; i < len(args) && i < len(names); i++ {
		name := names[i]
		if name == "" {
			continue // destructured or unnamed parameter
		}
		if e.hideParamHint(sig, name, args[i], i) {
			continue
		}
		e.emit(args[i].Span(), ParameterHint, name)
	}
}

// hideParamHint holds every suppression heuristic for parameter hints.
func (e *engine) hideParamHint(sig *types.FnSig, name string, arg ast.Expr, pos int) bool {
	stripped := strings.TrimPrefix(name, "_")
	if stripped == "" {
		return true
	}
	if stripped == strings.TrimPrefix(sig.Name, "_") {
		return true
	}
	if repr := e.argRepr(arg); repr != "" &&
		(strings.HasPrefix(repr, stripped) || strings.HasSuffix(repr, stripped)) {
		return true
	}
	if e.enumNameMatches(arg, stripped) {
		return true
	}
	if pos == 0 && sig.Name != "" &&
		(sig.Name == stripped || strings.HasSuffix(sig.Name, "_"+stripped)) {
		return true
	}
	if strings.HasPrefix(stripped, FixtureParamMarker) {
		return true
	}
	if len(sig.Params) == 1 && e.isObviousParam(stripped) {
		return true
	}
	return false
}

// argRepr is the textual stand-in used for name-similarity checks:
// the method name for a method-call argument, the borrowed expression
// for a reference, otherwise the literal source text. Never shown.
func (e *engine) argRepr(arg ast.Expr) string {
	switch a := arg.(type) {
	case *ast.MethodCallExpr:
		return a.Name
	case *ast.RefExpr:
		return e.argRepr(a.Inner)
	default:
		return e.src.Text(arg.Span())
	}
}

// enumNameMatches reports whether the argument's type is an enum whose
// snake-cased name equals the parameter name.
func (e *engine) enumNameMatches(arg ast.Expr, name string) bool {
	ty := e.sem.TypeOf(arg)
	nom, _, _ := e.sem.Interner.NominalOf(ty)
	return nom != nil && nom.Kind == types.EnumNominal && toLowerSnakeCase(nom.Name) == name
}

func (e *engine) isObviousParam(name string) bool {
	if len([]rune(name)) == 1 {
		return true
	}
	for _, obvious := range e.cfg.ObviousParams {
		if name == obvious {
			return true
		}
	}
	return false
}

func toLowerSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
