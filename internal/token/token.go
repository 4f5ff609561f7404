package token

import "rill/internal/source"

// Token represents a single significant source token with its location
// and the trivia that preceded it.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, character,
// or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is a plain identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwFn, KwLet, KwMut, KwIf, KwElse, KwWhile, KwFor, KwIn, KwMatch,
		KwReturn, KwStruct, KwEnum, KwTrait, KwImpl, KwType, KwPub,
		KwSelf, KwSelfType, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}
