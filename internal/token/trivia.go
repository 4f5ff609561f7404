package token

import (
	"strings"

	"rill/internal/source"
)

// TriviaKind classifies whitespace and comments between significant tokens.
type TriviaKind uint8

const (
	// TriviaSpace is a run of spaces and tabs without a line break.
	TriviaSpace TriviaKind = iota
	// TriviaNewline is a run of one or more '\n'.
	TriviaNewline
	// TriviaLineComment is a '//' comment up to the end of line.
	TriviaLineComment
	// TriviaBlockComment is a '/* ... */' comment, possibly nested.
	TriviaBlockComment
)

// Trivia is a non-significant run of source text attached to the token
// that follows it.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// HasNewline reports whether the trivia contains a line break.
func (t Trivia) HasNewline() bool {
	return t.Kind == TriviaNewline || strings.Contains(t.Text, "\n")
}

// IsComment reports whether the trivia is a comment of any form.
func (t Trivia) IsComment() bool {
	return t.Kind == TriviaLineComment || t.Kind == TriviaBlockComment
}
