package parser

import (
	"rill/internal/ast"
	"rill/internal/source"
	"rill/internal/token"
)

// parseBlock parses '{ stmts tail-expr? }'.
func (p *Parser) parseBlock() *ast.BlockExpr {
	start := p.peek().Span.Start
	block := &ast.BlockExpr{}
	if !p.eat(token.LBrace) {
		block.SetSpan(p.spanFrom(start))
		return block
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.KwLet:
			block.Stmts = append(block.Stmts, p.parseLetStmt())
		case token.KwReturn:
			block.Stmts = append(block.Stmts, p.parseReturnStmt())
		case token.Semicolon:
			p.bump()
		default:
			stmtStart := p.peek().Span.Start
			expr := p.parseExpr()
			if expr == nil {
				p.bump()
				continue
			}
			hasSemi := p.eat(token.Semicolon)
			if !hasSemi && p.at(token.RBrace) {
				block.Tail = expr
				break
			}
			stmt := &ast.ExprStmt{X: expr, HasSemi: hasSemi}
			stmt.SetSpan(p.spanFrom(stmtStart))
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	p.eat(token.RBrace)
	block.SetSpan(p.spanFrom(start))
	return block
}

func (p *Parser) parseLetStmt() *ast.LetStmt {
	start := p.peek().Span.Start
	p.bump() // let
	stmt := &ast.LetStmt{}
	stmt.Pattern = p.parsePat()
	if p.eat(token.Colon) {
		stmt.Type = p.parseType()
	}
	if p.eat(token.Assign) {
		stmt.Value = p.parseExpr()
	}
	p.eat(token.Semicolon)
	stmt.SetSpan(p.spanFrom(start))
	return stmt
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.peek().Span.Start
	p.bump() // return
	stmt := &ast.ReturnStmt{}
	if !p.at(token.Semicolon) && !p.at(token.RBrace) {
		stmt.Value = p.parseExpr()
	}
	p.eat(token.Semicolon)
	stmt.SetSpan(p.spanFrom(start))
	return stmt
}

// parseExpr parses a full expression with struct literals allowed.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinary(0, true)
}

// parseExprNoStruct parses a scrutinee/condition position where a '{'
// begins the following block rather than a struct literal.
func (p *Parser) parseExprNoStruct() ast.Expr {
	return p.parseBinary(0, false)
}

// binding powers, lowest first: || < && < comparison < add < mul
func binaryPower(kind token.Kind) int {
	switch kind {
	case token.OrOr:
		return 1
	case token.AndAnd:
		return 2
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return 3
	case token.Plus, token.Minus:
		return 4
	case token.Star, token.Slash, token.Percent:
		return 5
	default:
		return 0
	}
}

func (p *Parser) parseBinary(minPower int, structLit bool) ast.Expr {
	lhs := p.parseUnary(structLit)
	if lhs == nil {
		return nil
	}
	for {
		op := p.peek().Kind
		power := binaryPower(op)
		if power == 0 || power <= minPower {
			return lhs
		}
		// '|…|' closures never reach here: OrOr in operand position is
		// consumed by parseUnary, so OrOr here is a genuine operator
		p.bump()
		rhs := p.parseBinary(power, structLit)
		if rhs == nil {
			return lhs
		}
		bin := &ast.BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs}
		bin.SetSpan(lhs.Span().Cover(rhs.Span()))
		lhs = bin
	}
}

func (p *Parser) parseUnary(structLit bool) ast.Expr {
	start := p.peek().Span.Start
	switch p.peek().Kind {
	case token.Amp:
		p.bump()
		ref := &ast.RefExpr{Mut: p.eat(token.KwMut)}
		ref.Inner = p.parseUnary(structLit)
		ref.SetSpan(p.spanFrom(start))
		return ref
	case token.Minus, token.Bang:
		op := p.bump().Kind
		un := &ast.UnaryExpr{Op: op}
		un.Inner = p.parseUnary(structLit)
		un.SetSpan(p.spanFrom(start))
		return un
	default:
		return p.parsePostfix(structLit)
	}
}

func (p *Parser) parsePostfix(structLit bool) ast.Expr {
	expr := p.parsePrimary(structLit)
	if expr == nil {
		return nil
	}
	for {
		switch p.peek().Kind {
		case token.LParen:
			call := &ast.CallExpr{Callee: expr, Args: p.parseArgList()}
			call.SetSpan(expr.Span().Cover(p.spanFrom(expr.Span().Start)))
			expr = call
		case token.Dot:
			p.bump()
			switch p.peek().Kind {
			case token.Ident:
				nameTok := p.bump()
				if p.at(token.LParen) {
					call := &ast.MethodCallExpr{
						Recv:     expr,
						Name:     nameTok.Text,
						NameSpan: nameTok.Span,
						Args:     p.parseArgList(),
					}
					call.SetSpan(expr.Span().Cover(p.spanFrom(expr.Span().Start)))
					expr = call
					continue
				}
				field := &ast.FieldExpr{Recv: expr, Name: nameTok.Text, NameSpan: nameTok.Span}
				field.SetSpan(expr.Span().Cover(nameTok.Span))
				expr = field
			case token.IntLit:
				idxTok := p.bump()
				field := &ast.FieldExpr{Recv: expr, Name: idxTok.Text, NameSpan: idxTok.Span}
				field.SetSpan(expr.Span().Cover(idxTok.Span))
				expr = field
			default:
				// dangling '.', leave the receiver as-is
				return expr
			}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgList() []ast.Expr {
	p.bump() // (
	var args []ast.Expr
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg := p.parseExpr()
		if arg == nil {
			p.bump()
			continue
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.eat(token.RParen)
	return args
}

func (p *Parser) parsePrimary(structLit bool) ast.Expr {
	start := p.peek().Span.Start
	switch p.peek().Kind {
	case token.IntLit:
		return p.litExpr(ast.LitInt)
	case token.FloatLit:
		return p.litExpr(ast.LitFloat)
	case token.StringLit:
		return p.litExpr(ast.LitString)
	case token.CharLit:
		return p.litExpr(ast.LitChar)
	case token.KwTrue, token.KwFalse:
		return p.litExpr(ast.LitBool)
	case token.LParen:
		return p.parseParenOrTuple()
	case token.Pipe, token.OrOr:
		return p.parseClosure()
	case token.KwIf:
		return p.parseIfExpr()
	case token.KwWhile:
		return p.parseWhileExpr()
	case token.KwFor:
		return p.parseForExpr()
	case token.KwMatch:
		return p.parseMatchExpr()
	case token.LBrace:
		return p.parseBlock()
	case token.Ident, token.KwSelf, token.KwSelfType:
		if p.at(token.KwSelf) {
			tok := p.bump()
			expr := &ast.PathExpr{Path: &ast.Path{
				Segments: []string{tok.Text},
				Spans:    []source.Span{tok.Span},
			}}
			expr.SetSpan(tok.Span)
			return expr
		}
		path := p.parsePath()
		if structLit && p.at(token.LBrace) {
			return p.parseStructLit(path, start)
		}
		expr := &ast.PathExpr{Path: path}
		expr.SetSpan(p.spanFrom(start))
		return expr
	default:
		return nil
	}
}

func (p *Parser) litExpr(kind ast.LitKind) *ast.LitExpr {
	tok := p.bump()
	lit := &ast.LitExpr{LitKind: kind, Text: tok.Text}
	lit.SetSpan(tok.Span)
	return lit
}

func (p *Parser) parseParenOrTuple() ast.Expr {
	start := p.peek().Span.Start
	p.bump() // (
	if p.eat(token.RParen) {
		unit := &ast.TupleExpr{}
		unit.SetSpan(p.spanFrom(start))
		return unit
	}
	first := p.parseExpr()
	if p.at(token.Comma) {
		tuple := &ast.TupleExpr{}
		if first != nil {
			tuple.Elems = append(tuple.Elems, first)
		}
		for p.eat(token.Comma) {
			if p.at(token.RParen) {
				break
			}
			if elem := p.parseExpr(); elem != nil {
				tuple.Elems = append(tuple.Elems, elem)
			} else {
				p.bump()
			}
		}
		p.eat(token.RParen)
		tuple.SetSpan(p.spanFrom(start))
		return tuple
	}
	p.eat(token.RParen)
	paren := &ast.ParenExpr{Inner: first}
	paren.SetSpan(p.spanFrom(start))
	return paren
}

func (p *Parser) parseClosure() ast.Expr {
	start := p.peek().Span.Start
	closure := &ast.ClosureExpr{}
	if p.eat(token.OrOr) {
		// empty parameter list
	} else {
		p.bump() // |
		for !p.at(token.Pipe) && !p.at(token.EOF) {
			paramStart := p.peek().Span.Start
			param := &ast.Param{}
			param.Binding = p.parsePat()
			if param.Binding == nil {
				p.bump()
				continue
			}
			if p.eat(token.Colon) {
				param.Type = p.parseType()
			}
			param.SetSpan(p.spanFrom(paramStart))
			closure.Params = append(closure.Params, param)
			if !p.eat(token.Comma) {
				break
			}
		}
		p.eat(token.Pipe)
	}
	closure.Body = p.parseExpr()
	closure.SetSpan(p.spanFrom(start))
	return closure
}

func (p *Parser) parseIfExpr() *ast.IfExpr {
	start := p.peek().Span.Start
	p.bump() // if
	expr := &ast.IfExpr{}
	if p.eat(token.KwLet) {
		expr.Pat = p.parsePat()
		p.eat(token.Assign)
	}
	expr.Cond = p.parseExprNoStruct()
	expr.Then = p.parseBlock()
	if p.eat(token.KwElse) {
		if p.at(token.KwIf) {
			expr.Else = p.parseIfExpr()
		} else {
			expr.Else = p.parseBlock()
		}
	}
	expr.SetSpan(p.spanFrom(start))
	return expr
}

func (p *Parser) parseWhileExpr() *ast.WhileExpr {
	start := p.peek().Span.Start
	p.bump() // while
	expr := &ast.WhileExpr{}
	if p.eat(token.KwLet) {
		expr.Pat = p.parsePat()
		p.eat(token.Assign)
	}
	expr.Cond = p.parseExprNoStruct()
	expr.Body = p.parseBlock()
	expr.SetSpan(p.spanFrom(start))
	return expr
}

// parseForExpr tolerates incomplete loops: 'for i' and 'for i in'
// both produce a ForExpr with the missing pieces left nil.
func (p *Parser) parseForExpr() *ast.ForExpr {
	start := p.peek().Span.Start
	p.bump() // for
	expr := &ast.ForExpr{}
	expr.Pat = p.parsePat()
	if p.eat(token.KwIn) {
		expr.HasIn = true
		if !p.at(token.LBrace) && !p.at(token.RBrace) && !p.at(token.EOF) {
			expr.Iter = p.parseExprNoStruct()
		}
	}
	if p.at(token.LBrace) {
		expr.Body = p.parseBlock()
	}
	expr.SetSpan(p.spanFrom(start))
	return expr
}

func (p *Parser) parseMatchExpr() *ast.MatchExpr {
	start := p.peek().Span.Start
	p.bump() // match
	expr := &ast.MatchExpr{}
	expr.Scrutinee = p.parseExprNoStruct()
	if p.eat(token.LBrace) {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			armStart := p.peek().Span.Start
			arm := &ast.MatchArm{}
			arm.Pat = p.parsePat()
			if arm.Pat == nil {
				p.bump()
				continue
			}
			p.eat(token.FatArrow)
			arm.Body = p.parseExpr()
			arm.SetSpan(p.spanFrom(armStart))
			expr.Arms = append(expr.Arms, arm)
			if !p.eat(token.Comma) && !p.at(token.RBrace) {
				break
			}
		}
		p.eat(token.RBrace)
	}
	expr.SetSpan(p.spanFrom(start))
	return expr
}

func (p *Parser) parseStructLit(path *ast.Path, start uint32) ast.Expr {
	lit := &ast.StructLitExpr{Path: path}
	p.bump() // {
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if !p.at(token.Ident) {
			p.bump()
			continue
		}
		nameTok := p.bump()
		field := ast.StructLitField{Name: nameTok.Text, Span: nameTok.Span}
		if p.eat(token.Colon) {
			field.Value = p.parseExpr()
		}
		lit.Fields = append(lit.Fields, field)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.eat(token.RBrace)
	lit.SetSpan(p.spanFrom(start))
	return lit
}
