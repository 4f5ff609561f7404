// Package parser implements a tolerant recursive-descent parser for
// rill source files. A malformed production yields a partial tree and
// never aborts the whole file; IDE passes run on whatever shape was
// recovered.
package parser

import (
	"rill/internal/ast"
	"rill/internal/lexer"
	"rill/internal/source"
	"rill/internal/token"
)

// Parser consumes the significant token stream of one file.
type Parser struct {
	file *source.File
	toks []token.Token
	pos  int
}

// ParseFile tokenizes and parses file into an ast.File with parent
// links set and the raw token stream attached.
func ParseFile(file *source.File) *ast.File {
	toks := lexer.Tokenize(file)
	p := &Parser{file: file, toks: toks}

	root := &ast.File{FileID: file.ID, Tokens: toks}
	root.SetSpan(source.Span{File: file.ID, Start: 0, End: uint32(len(file.Content))}) //nolint:gosec // file sizes fit uint32

	for !p.at(token.EOF) {
		item := p.parseItem()
		if item != nil {
			root.Items = append(root.Items, item)
			continue
		}
		// unrecognized shape: skip a token and try again
		p.bump()
	}

	ast.Link(root)
	return root
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) at(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) bump() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

// eat consumes the next token when it matches kind.
func (p *Parser) eat(kind token.Kind) bool {
	if p.at(kind) {
		p.bump()
		return true
	}
	return false
}

func (p *Parser) prevEnd() uint32 {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].Span.End
}

func (p *Parser) spanFrom(start uint32) source.Span {
	return source.Span{File: p.file.ID, Start: start, End: p.prevEnd()}
}

// parsePath parses 'seg (:: seg)*'. Keyword Self counts as a segment.
func (p *Parser) parsePath() *ast.Path {
	if !p.at(token.Ident) && !p.at(token.KwSelfType) {
		return nil
	}
	path := &ast.Path{}
	for {
		tok := p.bump()
		path.Segments = append(path.Segments, tok.Text)
		path.Spans = append(path.Spans, tok.Span)
		if p.at(token.ColonColon) && (p.peekAt(1).Kind == token.Ident || p.peekAt(1).Kind == token.KwSelfType) {
			p.bump()
			continue
		}
		return path
	}
}

func (p *Parser) parseItem() ast.Item {
	public := p.eat(token.KwPub)
	switch p.peek().Kind {
	case token.KwFn:
		return p.parseFnItem(public)
	case token.KwStruct:
		return p.parseStructItem(public)
	case token.KwEnum:
		return p.parseEnumItem(public)
	case token.KwTrait:
		return p.parseTraitItem(public)
	case token.KwImpl:
		return p.parseImplItem()
	default:
		return nil
	}
}

func (p *Parser) parseFnItem(public bool) *ast.FnItem {
	start := p.peek().Span.Start
	p.bump() // fn
	fn := &ast.FnItem{Public: public}
	if p.at(token.Ident) {
		nameTok := p.bump()
		fn.Name = nameTok.Text
		fn.NameSpan = nameTok.Span
	}
	fn.TypeParams = p.parseTypeParams()
	fn.Params = p.parseParamList()
	if p.eat(token.Arrow) {
		fn.Ret = p.parseType()
	}
	if p.at(token.LBrace) {
		fn.Body = p.parseBlock()
	} else {
		p.eat(token.Semicolon)
	}
	fn.SetSpan(p.spanFrom(start))
	return fn
}

// parseTypeParams parses '<T, U>' after an item name; bounds like
// '<T: Clone>' are consumed and ignored.
func (p *Parser) parseTypeParams() []string {
	if !p.eat(token.Lt) {
		return nil
	}
	var params []string
	for !p.at(token.Gt) && !p.at(token.EOF) {
		if p.at(token.Ident) {
			params = append(params, p.bump().Text)
			if p.eat(token.Colon) {
				// bound: skip the path
				p.parsePath()
			}
			p.eat(token.Comma)
			continue
		}
		p.bump()
	}
	p.eat(token.Gt)
	return params
}

func (p *Parser) parseParamList() []*ast.Param {
	if !p.eat(token.LParen) {
		return nil
	}
	var params []*ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param := p.parseParam()
		if param != nil {
			params = append(params, param)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.eat(token.RParen)
	return params
}

func (p *Parser) parseParam() *ast.Param {
	start := p.peek().Span.Start
	param := &ast.Param{}

	// receiver forms: self, &self, &mut self
	if p.at(token.KwSelf) {
		p.bump()
		param.IsSelf = true
		param.SetSpan(p.spanFrom(start))
		return param
	}
	if p.at(token.Amp) && (p.peekAt(1).Kind == token.KwSelf ||
		(p.peekAt(1).Kind == token.KwMut && p.peekAt(2).Kind == token.KwSelf)) {
		p.bump() // &
		param.IsSelf = true
		param.SelfRef = true
		param.SelfMut = p.eat(token.KwMut)
		p.bump() // self
		param.SetSpan(p.spanFrom(start))
		return param
	}

	param.Binding = p.parsePat()
	if param.Binding == nil {
		return nil
	}
	if p.eat(token.Colon) {
		param.Type = p.parseType()
	}
	param.SetSpan(p.spanFrom(start))
	return param
}

func (p *Parser) parseStructItem(public bool) *ast.StructItem {
	start := p.peek().Span.Start
	p.bump() // struct
	item := &ast.StructItem{Public: public}
	if p.at(token.Ident) {
		nameTok := p.bump()
		item.Name = nameTok.Text
		item.NameSpan = nameTok.Span
	}
	item.TypeParams = p.parseTypeParams()

	switch {
	case p.eat(token.LParen):
		item.Shape = ast.StructTuple
		for !p.at(token.RParen) && !p.at(token.EOF) {
			p.eat(token.KwPub)
			if ty := p.parseType(); ty != nil {
				item.TupleFields = append(item.TupleFields, ty)
			} else {
				p.bump()
			}
			if !p.eat(token.Comma) {
				break
			}
		}
		p.eat(token.RParen)
		p.eat(token.Semicolon)
	case p.eat(token.LBrace):
		item.Shape = ast.StructRecord
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			fieldPub := p.eat(token.KwPub)
			if !p.at(token.Ident) {
				p.bump()
				continue
			}
			nameTok := p.bump()
			field := ast.FieldDef{Name: nameTok.Text, Span: nameTok.Span, Public: fieldPub}
			if p.eat(token.Colon) {
				field.Type = p.parseType()
			}
			item.Fields = append(item.Fields, field)
			if !p.eat(token.Comma) {
				break
			}
		}
		p.eat(token.RBrace)
		if len(item.Fields) == 0 {
			item.Shape = ast.StructUnit
		}
	default:
		item.Shape = ast.StructUnit
		p.eat(token.Semicolon)
	}
	item.SetSpan(p.spanFrom(start))
	return item
}

func (p *Parser) parseEnumItem(public bool) *ast.EnumItem {
	start := p.peek().Span.Start
	p.bump() // enum
	item := &ast.EnumItem{Public: public}
	if p.at(token.Ident) {
		nameTok := p.bump()
		item.Name = nameTok.Text
		item.NameSpan = nameTok.Span
	}
	item.TypeParams = p.parseTypeParams()
	if p.eat(token.LBrace) {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			if !p.at(token.Ident) {
				p.bump()
				continue
			}
			nameTok := p.bump()
			variant := ast.VariantDef{Name: nameTok.Text, Span: nameTok.Span}
			if p.eat(token.LParen) {
				for !p.at(token.RParen) && !p.at(token.EOF) {
					if ty := p.parseType(); ty != nil {
						variant.TupleFields = append(variant.TupleFields, ty)
					} else {
						p.bump()
					}
					if !p.eat(token.Comma) {
						break
					}
				}
				p.eat(token.RParen)
			}
			item.Variants = append(item.Variants, variant)
			if !p.eat(token.Comma) {
				break
			}
		}
		p.eat(token.RBrace)
	}
	item.SetSpan(p.spanFrom(start))
	return item
}

func (p *Parser) parseTraitItem(public bool) *ast.TraitItem {
	start := p.peek().Span.Start
	p.bump() // trait
	item := &ast.TraitItem{Public: public}
	if p.at(token.Ident) {
		nameTok := p.bump()
		item.Name = nameTok.Text
		item.NameSpan = nameTok.Span
	}
	if p.eat(token.LBrace) {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			switch p.peek().Kind {
			case token.KwType:
				p.bump()
				if p.at(token.Ident) {
					item.AssocTypes = append(item.AssocTypes, p.bump().Text)
				}
				p.eat(token.Semicolon)
			case token.KwFn:
				item.Methods = append(item.Methods, p.parseFnItem(false))
			default:
				p.bump()
			}
		}
		p.eat(token.RBrace)
	}
	item.SetSpan(p.spanFrom(start))
	return item
}

func (p *Parser) parseImplItem() *ast.ImplItem {
	start := p.peek().Span.Start
	p.bump() // impl
	item := &ast.ImplItem{}
	item.TypeParams = p.parseTypeParams()

	first := p.parseType()
	if p.eat(token.KwFor) {
		if pt, ok := first.(*ast.PathType); ok {
			item.TraitPath = pt.Path
		}
		item.SelfType = p.parseType()
	} else {
		item.SelfType = first
	}

	if p.eat(token.LBrace) {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			switch p.peek().Kind {
			case token.KwType:
				p.bump()
				var def ast.AssocDef
				if p.at(token.Ident) {
					nameTok := p.bump()
					def.Name = nameTok.Text
					def.Span = nameTok.Span
				}
				if p.eat(token.Assign) {
					def.Type = p.parseType()
				}
				p.eat(token.Semicolon)
				item.AssocDefs = append(item.AssocDefs, def)
			case token.KwFn, token.KwPub:
				public := p.eat(token.KwPub)
				if p.at(token.KwFn) {
					item.Methods = append(item.Methods, p.parseFnItem(public))
				} else {
					p.bump()
				}
			default:
				p.bump()
			}
		}
		p.eat(token.RBrace)
	}
	item.SetSpan(p.spanFrom(start))
	return item
}

// parseType parses a type expression, or nil when the next token
// cannot start one.
func (p *Parser) parseType() ast.TypeExpr {
	start := p.peek().Span.Start
	switch p.peek().Kind {
	case token.Amp:
		p.bump()
		ty := &ast.RefType{Mut: p.eat(token.KwMut)}
		ty.Elem = p.parseType()
		ty.SetSpan(p.spanFrom(start))
		return ty
	case token.LParen:
		p.bump()
		ty := &ast.TupleType{}
		for !p.at(token.RParen) && !p.at(token.EOF) {
			if elem := p.parseType(); elem != nil {
				ty.Elems = append(ty.Elems, elem)
			} else {
				p.bump()
			}
			if !p.eat(token.Comma) {
				break
			}
		}
		p.eat(token.RParen)
		ty.SetSpan(p.spanFrom(start))
		return ty
	case token.Ident, token.KwSelfType:
		path := p.parsePath()
		ty := &ast.PathType{Path: path}
		if p.eat(token.Lt) {
			for !p.at(token.Gt) && !p.at(token.EOF) {
				if arg := p.parseType(); arg != nil {
					ty.Args = append(ty.Args, arg)
				} else {
					p.bump()
				}
				if !p.eat(token.Comma) {
					break
				}
			}
			p.eat(token.Gt)
		}
		ty.SetSpan(p.spanFrom(start))
		return ty
	default:
		return nil
	}
}
