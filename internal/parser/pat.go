package parser

import (
	"rill/internal/ast"
	"rill/internal/token"
)

// parsePat parses a binding pattern. Bare identifiers always bind;
// only path-qualified names ('Shape::Circle(..)') refer to constructors.
func (p *Parser) parsePat() ast.Pat {
	start := p.peek().Span.Start
	switch p.peek().Kind {
	case token.Underscore:
		p.bump()
		pat := &ast.WildPat{}
		pat.SetSpan(p.spanFrom(start))
		return pat
	case token.Amp:
		p.bump()
		pat := &ast.RefPat{Mut: p.eat(token.KwMut)}
		pat.Inner = p.parsePat()
		pat.SetSpan(p.spanFrom(start))
		return pat
	case token.LParen:
		return p.parseTuplePat()
	case token.KwMut:
		p.bump()
		if !p.at(token.Ident) {
			return nil
		}
		tok := p.bump()
		pat := &ast.IdentPat{Mut: true, Name: tok.Text}
		pat.SetSpan(p.spanFrom(start))
		return pat
	case token.Ident, token.KwSelfType:
		path := p.parsePath()
		switch {
		case p.at(token.LParen):
			return p.parseTupleCtorPat(path, start)
		case p.at(token.LBrace):
			return p.parseStructPat(path, start)
		case path.IsIdent():
			pat := &ast.IdentPat{Name: path.Last()}
			pat.SetSpan(p.spanFrom(start))
			return pat
		default:
			// unit variant path like Shape::Empty
			pat := &ast.TupleCtorPat{Path: path}
			pat.SetSpan(p.spanFrom(start))
			return pat
		}
	default:
		return nil
	}
}

func (p *Parser) parseTuplePat() ast.Pat {
	start := p.peek().Span.Start
	p.bump() // (
	pat := &ast.TuplePat{}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		elem := p.parsePat()
		if elem == nil {
			p.bump()
			continue
		}
		pat.Elems = append(pat.Elems, elem)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.eat(token.RParen)
	pat.SetSpan(p.spanFrom(start))
	return pat
}

func (p *Parser) parseTupleCtorPat(path *ast.Path, start uint32) ast.Pat {
	p.bump() // (
	pat := &ast.TupleCtorPat{Path: path}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		elem := p.parsePat()
		if elem == nil {
			p.bump()
			continue
		}
		pat.Elems = append(pat.Elems, elem)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.eat(token.RParen)
	pat.SetSpan(p.spanFrom(start))
	return pat
}

func (p *Parser) parseStructPat(path *ast.Path, start uint32) ast.Pat {
	p.bump() // {
	pat := &ast.StructPat{Path: path}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.eat(token.DotDot) {
			pat.HasRest = true
			break
		}
		if !p.at(token.Ident) {
			p.bump()
			continue
		}
		nameTok := p.bump()
		field := ast.StructPatField{Name: nameTok.Text, Span: nameTok.Span}
		if p.eat(token.Colon) {
			field.Pat = p.parsePat()
		} else {
			bind := &ast.IdentPat{Name: nameTok.Text}
			bind.SetSpan(nameTok.Span)
			field.Pat = bind
		}
		pat.Fields = append(pat.Fields, field)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.eat(token.RBrace)
	pat.SetSpan(p.spanFrom(start))
	return pat
}
