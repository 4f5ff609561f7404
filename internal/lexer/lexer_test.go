package lexer_test

import (
	"testing"

	"rill/internal/lexer"
	"rill/internal/source"
	"rill/internal/token"
)

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual("lex.rl", []byte(src))
	return lexer.Tokenize(fileSet.Get(id))
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func expectKinds(t *testing.T, src string, want []token.Kind) {
	t.Helper()
	want = append(want, token.EOF)
	got := kinds(tokenize(t, src))
	if len(got) != len(want) {
		t.Fatalf("%q: got %d tokens %v, want %d", src, len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %s, want %s", src, i, got[i], want[i])
		}
	}
}

func TestBasicTokens(t *testing.T) {
	expectKinds(t, "fn main() { let x = 0u32; }", []token.Kind{
		token.KwFn, token.Ident, token.LParen, token.RParen, token.LBrace,
		token.KwLet, token.Ident, token.Assign, token.IntLit, token.Semicolon,
		token.RBrace,
	})
}

func TestOperatorTokens(t *testing.T) {
	expectKinds(t, "-> => == != <= >= && || :: .. . & | !", []token.Kind{
		token.Arrow, token.FatArrow, token.EqEq, token.BangEq,
		token.LtEq, token.GtEq, token.AndAnd, token.OrOr,
		token.ColonColon, token.DotDot, token.Dot, token.Amp,
		token.Pipe, token.Bang,
	})
}

func TestUnderscoreForms(t *testing.T) {
	toks := tokenize(t, "_ _param __ _1")
	want := []struct {
		kind token.Kind
		text string
	}{
		{token.Underscore, "_"},
		{token.Ident, "_param"},
		{token.Ident, "__"},
		{token.Ident, "_1"},
		{token.EOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Fatalf("token %d: got (%s, %q), want (%s, %q)",
				i, toks[i].Kind, toks[i].Text, w.kind, w.text)
		}
	}
}

func TestNumberLiteralsKeepSuffix(t *testing.T) {
	toks := tokenize(t, "33 9.2 0u32 1.5f32 1_000")
	want := []struct {
		kind token.Kind
		text string
	}{
		{token.IntLit, "33"},
		{token.FloatLit, "9.2"},
		{token.IntLit, "0u32"},
		{token.FloatLit, "1.5f32"},
		{token.IntLit, "1_000"},
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Fatalf("token %d: got (%s, %q), want (%s, %q)",
				i, toks[i].Kind, toks[i].Text, w.kind, w.text)
		}
	}
}

func TestStringAndCharLiterals(t *testing.T) {
	toks := tokenize(t, `"hi there" 'x'`)
	if toks[0].Kind != token.StringLit || toks[0].Text != `"hi there"` {
		t.Fatalf("string: got (%s, %q)", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Kind != token.CharLit || toks[1].Text != "'x'" {
		t.Fatalf("char: got (%s, %q)", toks[1].Kind, toks[1].Text)
	}
}

func TestKeywords(t *testing.T) {
	expectKinds(t, "self Self mut pub true false", []token.Kind{
		token.KwSelf, token.KwSelfType, token.KwMut, token.KwPub,
		token.KwTrue, token.KwFalse,
	})
}

func TestLeadingTriviaRuns(t *testing.T) {
	toks := tokenize(t, "a\n    // note\n    .b")
	if toks[1].Kind != token.Dot {
		t.Fatalf("second token is %s, want .", toks[1].Kind)
	}
	want := []token.TriviaKind{
		token.TriviaNewline,
		token.TriviaSpace,
		token.TriviaLineComment,
		token.TriviaNewline,
		token.TriviaSpace,
	}
	leading := toks[1].Leading
	if len(leading) != len(want) {
		t.Fatalf("got %d trivia, want %d: %v", len(leading), len(want), leading)
	}
	for i, w := range want {
		if leading[i].Kind != w {
			t.Fatalf("trivia %d: got %v, want %v", i, leading[i].Kind, w)
		}
	}
	if leading[2].Text != "// note" {
		t.Fatalf("comment text is %q", leading[2].Text)
	}
}

func TestConsecutiveNewlinesCoalesce(t *testing.T) {
	toks := tokenize(t, "a\n\n\nb")
	leading := toks[1].Leading
	if len(leading) != 1 || leading[0].Kind != token.TriviaNewline {
		t.Fatalf("got trivia %v, want one newline run", leading)
	}
	if leading[0].Text != "\n\n\n" {
		t.Fatalf("run text is %q", leading[0].Text)
	}
}

func TestNestedBlockComment(t *testing.T) {
	toks := tokenize(t, "a /* x /* y */ z */ b")
	if toks[1].Kind != token.Ident || toks[1].Text != "b" {
		t.Fatalf("second token is (%s, %q), want b", toks[1].Kind, toks[1].Text)
	}
	var comment *token.Trivia
	for i := range toks[1].Leading {
		if toks[1].Leading[i].Kind == token.TriviaBlockComment {
			comment = &toks[1].Leading[i]
		}
	}
	if comment == nil {
		t.Fatalf("no block comment in leading trivia: %v", toks[1].Leading)
	}
	if comment.Text != "/* x /* y */ z */" {
		t.Fatalf("comment text is %q", comment.Text)
	}
}

func TestTrailingTriviaAttachesToEOF(t *testing.T) {
	toks := tokenize(t, "a\n")
	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF {
		t.Fatalf("last token is %s", eof.Kind)
	}
	if len(eof.Leading) != 1 || eof.Leading[0].Kind != token.TriviaNewline {
		t.Fatalf("eof trivia is %v, want one newline", eof.Leading)
	}
}

func TestIdentifiersNormalizeToNFC(t *testing.T) {
	composed := tokenize(t, "caf\u00e9")
	decomposed := tokenize(t, "cafe\u0301")
	if composed[0].Kind != token.Ident || decomposed[0].Kind != token.Ident {
		t.Fatalf("got kinds %s and %s", composed[0].Kind, decomposed[0].Kind)
	}
	if composed[0].Text != decomposed[0].Text {
		t.Fatalf("spellings differ after normalization: %q vs %q",
			composed[0].Text, decomposed[0].Text)
	}
}
