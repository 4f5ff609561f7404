// Package hints computes inlay hints for a checked rill file:
// inferred binding types, elided call-argument names, and the result
// type of intermediate steps in multi-line call chains. The engine is
// a single read-only pre-order pass; every fallible step degrades to
// "no hint" rather than an error.
package hints

import (
	"rill/internal/ast"
	"rill/internal/sema"
	"rill/internal/source"
)

// Kind classifies a hint for the renderer. It carries no behavior.
type Kind uint8

const (
	// TypeHint annotates a binding with its inferred type.
	TypeHint Kind = iota + 1
	// ParameterHint annotates a call argument with the parameter name.
	ParameterHint
	// ChainingHint annotates an intermediate chained expression with
	// its result type.
	ChainingHint
)

func (k Kind) String() string {
	switch k {
	case TypeHint:
		return "type"
	case ParameterHint:
		return "parameter"
	case ChainingHint:
		return "chaining"
	default:
		return "unknown"
	}
}

// Hint is one synthetic label over a half-open source range.
type Hint struct {
	Range source.Span
	Kind  Kind
	Label string
}

// Config selects which hint kinds to produce and how long labels may
// grow. The zero value disables everything; use DefaultConfig.
type Config struct {
	TypeHints      bool
	ParameterHints bool
	ChainingHints  bool
	// MaxLength bounds label length in runes. Zero means unlimited.
	MaxLength int
	// ObviousParams are parameter names too obvious to hint when the
	// callable takes a single parameter.
	ObviousParams []string
}

// DefaultConfig enables all hint kinds with the standard label budget.
func DefaultConfig() Config {
	return Config{
		TypeHints:      true,
		ParameterHints: true,
		ChainingHints:  true,
		MaxLength:      25,
		ObviousParams:  DefaultObviousParams(),
	}
}

// DefaultObviousParams returns the standard obvious-name list.
func DefaultObviousParams() []string {
	return []string{"predicate", "value", "pat", "rhs", "other"}
}

// Compute walks the tree once in pre-order and returns every hint in
// visit order: an enclosing node's hint precedes its descendants'.
// Callers re-running Compute with the same inputs get identical
// output; no state survives the call.
func Compute(src *source.File, tree *ast.File, sem *sema.Result, cfg Config) []Hint {
	if src == nil || tree == nil || sem == nil {
		return nil
	}
	e := &engine{src: src, tree: tree, sem: sem, cfg: cfg}
	ast.Walk(tree, func(n ast.Node) bool {
		e.visit(n)
		return true
	})
	return e.hints
}

type engine struct {
	src   *source.File
	tree  *ast.File
	sem   *sema.Result
	cfg   Config
	hints []Hint
}

func (e *engine) visit(n ast.Node) {
	if e.cfg.ChainingHints {
		if expr, ok := n.(ast.Expr); ok {
			e.chainingHint(expr)
		}
	}
	if e.cfg.ParameterHints {
		switch n.(type) {
		case *ast.CallExpr, *ast.MethodCallExpr:
			e.paramHints(n)
		}
	}
	if e.cfg.TypeHints {
		if pat, ok := n.(*ast.IdentPat); ok {
			e.bindingHint(pat)
		}
	}
}

func (e *engine) emit(sp source.Span, kind Kind, label string) {
	if label == "" {
		return
	}
	e.hints = append(e.hints, Hint{Range: sp, Kind: kind, Label: label})
}
