package hints

import (
	"rill/internal/ast"
	"rill/internal/token"
)

// chainingHint marks an expression whose next method call starts on a
// new line with its result type. The tree does not encode that
// adjacency, so it is recovered from the raw token stream: the
// expression is a chaining point iff, after dropping comments and
// whitespace without a line break, exactly one newline-bearing
// whitespace run separates it from a '.' token.
func (e *engine) chainingHint(x ast.Expr) {
	if _, ok := x.(*ast.StructLitExpr); ok {
		// the literal already names its type
		return
	}
	parent := x.Parent()
	if parent == nil {
		return
	}
	end := x.Span().End
	toks := e.tree.TokensAfter(end)
	if len(toks) == 0 || toks[0].Kind != token.Dot {
		return
	}
	if newlineRuns(toks[0].Leading) != 1 {
		return
	}
	// the dot must belong to an enclosing node, otherwise x merely
	// shares its end offset with the true receiver
	if parent.Span().End < toks[0].Span.End {
		return
	}

	ty := e.sem.TypeOf(x)
	if !ty.IsValid() {
		return
	}
	if path, ok := x.(*ast.PathExpr); ok && path.Path.IsIdent() {
		if nom, _, _ := e.sem.Interner.NominalOf(ty); nom != nil && nom.IsFieldless() {
			// a unit-like value: the name is the type
			return
		}
	}
	e.emit(x.Span(), ChainingHint, e.label(ty))
}

// newlineRuns counts maximal whitespace runs containing a line break.
// Comments terminate a run; whitespace without a newline is ignored.
func newlineRuns(leading []token.Trivia) int {
	runs := 0
	hasNewline := false
	for _, tr := range leading {
		if tr.IsComment() {
			if hasNewline {
				runs++
			}
			hasNewline = false
			continue
		}
		if tr.Kind == token.TriviaNewline {
			hasNewline = true
		}
	}
	if hasNewline {
		runs++
	}
	return runs
}
