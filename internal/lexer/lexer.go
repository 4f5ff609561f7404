package lexer

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"rill/internal/source"
	"rill/internal/token"
)

const utf8RuneSelf = 0x80

// Lexer produces significant tokens with their leading trivia attached.
type Lexer struct {
	file   *source.File
	cursor Cursor
	hold   []token.Trivia
}

// New creates a lexer over file.
func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
}

// Tokenize scans the whole file, including the trailing EOF token.
func Tokenize(file *source.File) []token.Token {
	lx := New(file)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next significant token with its Leading trivia
// collected. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind:    token.EOF,
			Span:    lx.cursor.SpanFrom(lx.cursor.Mark()),
			Leading: lx.takeHold(),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '_':
		// a lone "_" is the Underscore token, "_foo" is an identifier
		if isIdentContinueByte(lx.cursor.PeekAt(1)) {
			tok = lx.scanIdentOrKeyword()
		} else {
			tok = lx.scanOperatorOrPunct()
		}
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	case ch == '\'':
		tok = lx.scanChar()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.takeHold()
	return tok
}

func (lx *Lexer) takeHold() []token.Trivia {
	hold := lx.hold
	lx.hold = nil
	return hold
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b < utf8RuneSelf {
			break
		}
		r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Offset():])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		lx.cursor.BumpBy(mustU32(size))
	}
	sp := lx.cursor.SpanFrom(start)
	// identifiers compare by NFC form so that visually identical
	// spellings resolve to the same name
	text := norm.NFC.String(lx.file.Text(sp))
	if kind, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kind, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanNumber scans integer and float literals, keeping any alphanumeric
// type suffix (33, 9.2, 0u32, 1.5f32) inside the token text.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}
	// type suffix: i32, u8, f64, usize, ...
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.file.Text(sp)}
}

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		}
		lx.cursor.Bump()
		if b == '"' {
			break
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.file.Text(sp)}
}

func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		}
		lx.cursor.Bump()
		if b == '\'' {
			break
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.CharLit, Span: sp, Text: lx.file.Text(sp)}
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b0 := lx.cursor.Peek()
	b1 := lx.cursor.PeekAt(1)

	kind := token.Invalid
	size := uint32(1)
	switch b0 {
	case '+':
		kind = token.Plus
	case '-':
		if b1 == '>' {
			kind, size = token.Arrow, 2
		} else {
			kind = token.Minus
		}
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '%':
		kind = token.Percent
	case '=':
		switch b1 {
		case '=':
			kind, size = token.EqEq, 2
		case '>':
			kind, size = token.FatArrow, 2
		default:
			kind = token.Assign
		}
	case '!':
		if b1 == '=' {
			kind, size = token.BangEq, 2
		} else {
			kind = token.Bang
		}
	case '<':
		if b1 == '=' {
			kind, size = token.LtEq, 2
		} else {
			kind = token.Lt
		}
	case '>':
		if b1 == '=' {
			kind, size = token.GtEq, 2
		} else {
			kind = token.Gt
		}
	case '&':
		if b1 == '&' {
			kind, size = token.AndAnd, 2
		} else {
			kind = token.Amp
		}
	case '|':
		if b1 == '|' {
			kind, size = token.OrOr, 2
		} else {
			kind = token.Pipe
		}
	case ':':
		if b1 == ':' {
			kind, size = token.ColonColon, 2
		} else {
			kind = token.Colon
		}
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '.':
		if b1 == '.' {
			kind, size = token.DotDot, 2
		} else {
			kind = token.Dot
		}
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '_':
		kind = token.Underscore
	}

	lx.cursor.BumpBy(size)
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.file.Text(sp)}
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}
