package parser

import (
	"github.com/dhamidi/zkc/leo/ast"
	"github.com/dhamidi/zkc/leo/span"
)

// parseType parses a cast target: a primitive, Self, a named circuit or a
// parenthesized tuple of types.
func (p *Parser) parseType() (*ast.Type, error) {
	tok := p.peek()

	switch {
	case tok.Kind.IsPrimitiveType():
		p.advance()
		return &ast.Type{Kind: ast.TypePrimitive, Name: tok.Literal, Loc: tok.Span}, nil
	case tok.Kind == TokenSelfUpper:
		p.advance()
		return &ast.Type{Kind: ast.TypeSelf, Name: tok.Literal, Loc: tok.Span}, nil
	case tok.Kind == TokenIdent:
		p.advance()
		return &ast.Type{Kind: ast.TypeNamed, Name: tok.Literal, Loc: tok.Span}, nil
	case tok.Kind == TokenLParen:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		elems, _, closeTok, err := parseCommaList(p, TokenLParen, TokenRParen, p.parseType)
		if err != nil {
			return nil, err
		}
		return &ast.Type{Kind: ast.TypeTuple, Elements: elems, Loc: span.Combine(tok.Span, closeTok.Span)}, nil
	case tok.Kind == TokenEOF:
		return nil, p.newError(UnexpectedToken, tok, "unexpected end of input, expected type")
	}
	return nil, p.unexpected(tok, "expected type, found %s", describe(tok))
}
