package parser

import (
	"fmt"

	"github.com/dhamidi/zkc/leo/ast"
	"github.com/dhamidi/zkc/leo/span"
)

// DefaultMaxDepth bounds recursive descent on pathological input.
const DefaultMaxDepth = 256

type Option func(*Parser)

// WithMaxDepth sets the nesting limit; n <= 0 keeps the default.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

// DisallowCircuitInit makes `Name {` end the expression at the brace, as
// required for if and loop conditions. Nested delimiters re-allow it.
func DisallowCircuitInit() Option {
	return func(p *Parser) {
		p.noCircuitInit = true
	}
}

type Parser struct {
	src             *span.Source
	includeComments bool
	noCircuitInit   bool
	maxDepth        int
	depth           int
	tokens          []Token
	comments        []Token
	pos             int
}

// New tokenizes src. Parsing happens in the Parse methods.
func New(src *span.Source, opts ...Option) *Parser {
	p := &Parser{
		src:      src,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.tokenize()
	return p
}

func (p *Parser) Comments() []Token {
	return p.comments
}

// ParseExpression parses src as exactly one expression.
func ParseExpression(src *span.Source, opts ...Option) (ast.Expression, error) {
	p := New(src, opts...)
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !p.check(TokenEOF) {
		return nil, p.unexpected(p.peek(), "expected end of input, found %s", describe(p.peek()))
	}
	return expr, nil
}

// ParseExpressions parses a ';'-separated sequence. A malformed expression
// is skipped up to the next ';' and does not affect its siblings.
func ParseExpressions(src *span.Source, opts ...Option) ([]ast.Expression, error) {
	p := New(src, opts...)
	var exprs []ast.Expression
	var errs ErrorList

	for !p.check(TokenEOF) {
		if p.check(TokenSemicolon) {
			p.advance()
			continue
		}
		expr, err := p.ParseExpression()
		if err == nil && !p.check(TokenSemicolon) && !p.check(TokenEOF) {
			err = p.unexpected(p.peek(), "expected ';', found %s", describe(p.peek()))
		}
		if err != nil {
			errs.Add(err.(*Error))
			p.recoverTo(TokenSemicolon)
			continue
		}
		exprs = append(exprs, expr)
	}
	errs.Sort()
	return exprs, errs.Err()
}

// ParseExpression parses one expression starting at the current token and
// leaves the cursor after it.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	p.depth = 0
	return p.parseExpression()
}

func (p *Parser) tokenize() {
	lexer := NewLexer(p.src)
	for {
		tok := lexer.NextToken()
		if tok.Kind == TokenWhitespace {
			continue
		}
		if tok.Kind == TokenComment || tok.Kind == TokenLineComment {
			if p.includeComments {
				p.comments = append(p.comments, tok)
			}
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// eat consumes the current token if it has the given kind.
func (p *Parser) eat(kind TokenKind) (Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	return Token{}, false
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	if tok, ok := p.eat(kind); ok {
		return tok, nil
	}
	tok := p.peek()
	err := p.unexpected(tok, "expected '%s', found %s", kind, describe(tok))
	err.Expected = []TokenKind{kind}
	return Token{}, err
}

func (p *Parser) expectIdentifier() (*ast.Identifier, error) {
	if tok, ok := p.eat(TokenIdent); ok {
		return &ast.Identifier{Name: tok.Literal, Loc: tok.Span}, nil
	}
	tok := p.peek()
	err := p.unexpected(tok, "expected identifier, found %s", describe(tok))
	err.Expected = []TokenKind{TokenIdent}
	return nil, err
}

// expectClose consumes the closer matching open. Reaching the end of input
// or another closer reports the opener as unclosed.
func (p *Parser) expectClose(open Token, close TokenKind) (Token, error) {
	if tok, ok := p.eat(close); ok {
		return tok, nil
	}
	tok := p.peek()
	if p.match(TokenEOF, TokenRParen, TokenRBracket, TokenRBrace) {
		err := p.newError(UnclosedDelimiter, tok, "unclosed '%s': expected '%s', found %s", open.Literal, close, describe(tok))
		err.Span = open.Span
		err.Expected = []TokenKind{close}
		return Token{}, err
	}
	err := p.unexpected(tok, "expected ',' or '%s', found %s", close, describe(tok))
	err.Expected = []TokenKind{TokenComma, close}
	return Token{}, err
}

// parseCommaList parses open elem, elem, ... close. A trailing comma is
// allowed and reported so that (a,) can be told apart from (a).
func parseCommaList[T any](p *Parser, open, close TokenKind, elem func() (T, error)) (items []T, trailing bool, closeTok Token, err error) {
	openTok, err := p.expect(open)
	if err != nil {
		return nil, false, Token{}, err
	}

	saved := p.noCircuitInit
	p.noCircuitInit = false
	defer func() { p.noCircuitInit = saved }()

	for !p.check(close) {
		if p.check(TokenEOF) {
			break
		}
		item, err := elem()
		if err != nil {
			return nil, false, Token{}, err
		}
		items = append(items, item)
		if _, ok := p.eat(TokenComma); !ok {
			trailing = false
			break
		}
		trailing = true
	}

	closeTok, err = p.expectClose(openTok, close)
	if err != nil {
		return nil, false, Token{}, err
	}
	return items, trailing, closeTok, nil
}

// enter guards recursion; every successful call must be paired with leave.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		tok := p.peek()
		return p.newError(NestingTooDeep, tok, "expression nests deeper than %d levels", p.maxDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) newError(kind ErrorKind, tok Token, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span:    tok.Span,
		Got:     &tok,
	}
}

// unexpected reports tok, or the lexer's complaint when tok is malformed.
func (p *Parser) unexpected(tok Token, format string, args ...any) *Error {
	if tok.Kind == TokenError {
		return p.newError(InvalidToken, tok, "invalid token %q", tok.Literal)
	}
	return p.newError(UnexpectedToken, tok, format, args...)
}

// recoverTo skips to just past the next token of the given kind.
func (p *Parser) recoverTo(kind TokenKind) {
	for !p.check(TokenEOF) {
		if p.advance().Kind == kind {
			return
		}
	}
}
