package lexer

import "rill/internal/token"

// collectLeadingTrivia gathers the trivia runs before the next
// significant token:
//   - spaces and tabs coalesce into one TriviaSpace
//   - consecutive '\n' coalesce into one TriviaNewline
//   - //... up to (not including) '\n' -> TriviaLineComment
//   - /* ... */ -> TriviaBlockComment (nesting supported; an unclosed
//     comment is cut at EOF)
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' {
			for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		}

		if b == '/' {
			next := lx.cursor.PeekAt(1)
			if next == '/' {
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
				lx.pushTrivia(token.TriviaLineComment, start)
				continue
			}
			if next == '*' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth := 1
				for !lx.cursor.EOF() && depth > 0 {
					if lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) == '*' {
						lx.cursor.Bump()
						lx.cursor.Bump()
						depth++
						continue
					}
					if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
						lx.cursor.Bump()
						lx.cursor.Bump()
						depth--
						continue
					}
					lx.cursor.Bump()
				}
				lx.pushTrivia(token.TriviaBlockComment, start)
				continue
			}
		}

		break
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start uint32) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: lx.file.Text(sp),
	})
}
