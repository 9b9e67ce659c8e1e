package parser

import (
	"strconv"
	"strings"

	"github.com/dhamidi/zkc/leo/ast"
	"github.com/dhamidi/zkc/leo/span"
)

type assoc int

const (
	assocLeft assoc = iota
	assocRight
	assocNone
)

type opInfo struct {
	op    ast.BinaryOp
	prec  int
	assoc assoc
}

// binaryOps lists the infix operators from loosest to tightest binding.
// The ternary sits below them and cast and unary sit above.
var binaryOps = map[TokenKind]opInfo{
	TokenOr:     {ast.BinaryOr, 1, assocLeft},
	TokenAnd:    {ast.BinaryAnd, 2, assocLeft},
	TokenEQ:     {ast.BinaryEq, 3, assocNone},
	TokenNE:     {ast.BinaryNe, 3, assocNone},
	TokenLT:     {ast.BinaryLt, 4, assocNone},
	TokenLE:     {ast.BinaryLe, 4, assocNone},
	TokenGT:     {ast.BinaryGt, 4, assocNone},
	TokenGE:     {ast.BinaryGe, 4, assocNone},
	TokenBitOr:  {ast.BinaryBitOr, 5, assocLeft},
	TokenBitXor: {ast.BinaryBitXor, 6, assocLeft},
	TokenBitAnd: {ast.BinaryBitAnd, 7, assocLeft},
	TokenShl:    {ast.BinaryShl, 8, assocLeft},
	TokenShr:    {ast.BinaryShr, 8, assocLeft},
	TokenPlus:   {ast.BinaryAdd, 9, assocLeft},
	TokenMinus:  {ast.BinarySub, 9, assocLeft},
	TokenStar:   {ast.BinaryMul, 10, assocLeft},
	TokenSlash:  {ast.BinaryDiv, 10, assocLeft},
	TokenPow:    {ast.BinaryPow, 11, assocRight},
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.parseTernary()
}

// Ternary: binary ('?' expression ':' expression)?
func (p *Parser) parseTernary() (ast.Expression, error) {
	cond, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if _, ok := p.eat(TokenQuestion); !ok {
		return cond, nil
	}

	ifTrue, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	ifFalse, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Ternary{
		Condition: cond,
		IfTrue:    ifTrue,
		IfFalse:   ifFalse,
		Loc:       span.Combine(cond.Span(), ifFalse.Span()),
	}, nil
}

// parseBinary climbs operators binding at least as tightly as minPrec.
func (p *Parser) parseBinary(minPrec int) (ast.Expression, error) {
	left, err := p.parseCast()
	if err != nil {
		return nil, err
	}

	for {
		info, ok := binaryOps[p.peek().Kind]
		if !ok || info.prec < minPrec {
			return left, nil
		}
		p.advance()

		var right ast.Expression
		if info.assoc == assocRight {
			if err := p.enter(); err != nil {
				return nil, err
			}
			right, err = p.parseBinary(info.prec)
			p.leave()
		} else {
			right, err = p.parseBinary(info.prec + 1)
		}
		if err != nil {
			return nil, err
		}

		left = &ast.Binary{
			Left:  left,
			Right: right,
			Op:    info.op,
			Loc:   span.Combine(left.Span(), right.Span()),
		}

		if info.assoc == assocNone {
			if next, ok := binaryOps[p.peek().Kind]; ok && next.prec == info.prec {
				return nil, p.newError(UnexpectedToken, p.peek(), "comparison operators cannot be chained")
			}
		}
	}
}

// Cast: unary ('as' type)*
func (p *Parser) parseCast() (ast.Expression, error) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(TokenAs) {
		p.advance()
		target, err := p.parseType()
		if err != nil {
			return nil, err
		}
		expr = &ast.Cast{
			Inner:  expr,
			Target: target,
			Loc:    span.Combine(expr.Span(), target.Loc),
		}
	}
	return expr, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	var op ast.UnaryOp
	switch p.peek().Kind {
	case TokenNot:
		op = ast.UnaryNot
	case TokenMinus:
		op = ast.UnaryNegate
	default:
		return p.parsePostfix()
	}

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	opTok := p.advance()
	inner, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{
		Op:    op,
		Inner: inner,
		Loc:   span.Combine(opTok.Span, inner.Span()),
	}, nil
}

// parsePostfix parses a primary followed by any number of calls and
// accesses, each wrapping the expression built so far.
func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek().Kind {
		case TokenDot:
			expr, err = p.parseDotAccess(expr)
		case TokenLBracket:
			expr, err = p.parseArrayAccess(expr)
		case TokenLParen:
			expr, err = p.parseCall(expr)
		case TokenColonColon:
			expr, err = p.parseStaticAccess(expr)
		default:
			return expr, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseDotAccess(inner ast.Expression) (ast.Expression, error) {
	p.advance()
	tok := p.peek()

	switch tok.Kind {
	case TokenIdent:
		p.advance()
		name := &ast.Identifier{Name: tok.Literal, Loc: tok.Span}
		return &ast.MemberAccess{
			Inner: inner,
			Name:  name,
			Loc:   span.Combine(inner.Span(), tok.Span),
		}, nil
	case TokenIntLiteral:
		p.advance()
		index, err := parseTupleIndex(tok.Literal)
		if err != nil {
			return nil, p.newError(MalformedTupleIndex, tok, "invalid tuple index %q: %v", tok.Literal, err)
		}
		return &ast.TupleAccess{
			Tuple: inner,
			Index: index,
			Loc:   span.Combine(inner.Span(), tok.Span),
		}, nil
	case TokenError:
		return nil, p.unexpected(tok, "")
	}

	err := p.newError(InvalidAccessToken, tok, "expected identifier or integer after '.', found %s", describe(tok))
	err.Expected = []TokenKind{TokenIdent, TokenIntLiteral}
	return nil, err
}

type tupleIndexError string

func (e tupleIndexError) Error() string { return string(e) }

// parseTupleIndex accepts plain decimal digits without a type suffix or
// leading zeros.
func parseTupleIndex(lit string) (uint64, error) {
	digits, suffix := splitIntLiteral(lit)
	switch {
	case suffix != "":
		return 0, tupleIndexError("tuple index cannot have a type suffix")
	case len(digits) > 1 && digits[0] == '0':
		return 0, tupleIndexError("tuple index cannot have leading zeros")
	}
	index, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, tupleIndexError("tuple index out of range")
	}
	return index, nil
}

func (p *Parser) parseArrayAccess(array ast.Expression) (ast.Expression, error) {
	open := p.advance()
	if p.check(TokenEOF) {
		_, err := p.expectClose(open, TokenRBracket)
		return nil, err
	}

	saved := p.noCircuitInit
	p.noCircuitInit = false
	index, err := p.parseExpression()
	p.noCircuitInit = saved
	if err != nil {
		return nil, err
	}

	closeTok, err := p.expectClose(open, TokenRBracket)
	if err != nil {
		return nil, err
	}
	return &ast.ArrayAccess{
		Array: array,
		Index: index,
		Loc:   span.Combine(array.Span(), closeTok.Span),
	}, nil
}

func (p *Parser) parseCall(function ast.Expression) (ast.Expression, error) {
	args, _, closeTok, err := parseCommaList(p, TokenLParen, TokenRParen, p.parseExpression)
	if err != nil {
		return nil, err
	}
	return &ast.Call{
		Function:  function,
		Arguments: args,
		Loc:       span.Combine(function.Span(), closeTok.Span),
	}, nil
}

func (p *Parser) parseStaticAccess(inner ast.Expression) (ast.Expression, error) {
	p.advance()
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	return &ast.StaticAccess{
		Inner: inner,
		Name:  name,
		Loc:   span.Combine(inner.Span(), name.Loc),
	}, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()

	switch tok.Kind {
	case TokenIntLiteral:
		p.advance()
		return intLiteral(tok), nil

	case TokenTrue, TokenFalse:
		p.advance()
		return &ast.Literal{Kind: ast.LiteralBoolean, Value: tok.Literal, Loc: tok.Span}, nil

	case TokenAddressLiteral:
		p.advance()
		return &ast.Literal{Kind: ast.LiteralAddress, Value: tok.Literal, Loc: tok.Span}, nil

	case TokenStringLiteral:
		p.advance()
		value := strings.TrimSuffix(strings.TrimPrefix(tok.Literal, `"`), `"`)
		return &ast.Literal{Kind: ast.LiteralString, Value: value, Loc: tok.Span}, nil

	case TokenIdent:
		if p.peekN(1).Kind == TokenLBrace && !p.noCircuitInit {
			return p.parseCircuitInit()
		}
		p.advance()
		return &ast.Identifier{Name: tok.Literal, Loc: tok.Span}, nil

	case TokenSelfLower:
		p.advance()
		return &ast.Identifier{Name: tok.Literal, Loc: tok.Span}, nil

	case TokenLParen:
		if lit, ok, err := p.parseGroupLiteral(); ok || err != nil {
			return lit, err
		}
		return p.parseParenOrTuple()

	case TokenEOF:
		return nil, p.newError(UnexpectedToken, tok, "unexpected end of input")
	}

	// Type names resolve associated items, as in u8::MAX or Self::new.
	if (tok.Kind.IsPrimitiveType() || tok.Kind == TokenSelfUpper) && p.peekN(1).Kind == TokenColonColon {
		p.advance()
		return &ast.Identifier{Name: tok.Literal, Loc: tok.Span}, nil
	}

	return nil, p.unexpected(tok, "expected expression, found %s", describe(tok))
}

func splitIntLiteral(lit string) (digits, suffix string) {
	i := 0
	for i < len(lit) && isDigit(lit[i]) {
		i++
	}
	return lit[:i], lit[i:]
}

func intLiteral(tok Token) *ast.Literal {
	digits, suffix := splitIntLiteral(tok.Literal)
	lit := &ast.Literal{Value: digits, Loc: tok.Span}
	switch suffix {
	case "":
		lit.Kind = ast.LiteralImplicit
	case "field":
		lit.Kind = ast.LiteralField
	case "group":
		lit.Kind = ast.LiteralGroup
	case "scalar":
		lit.Kind = ast.LiteralScalar
	default:
		lit.Kind = ast.LiteralInteger
		lit.Type = suffix
	}
	return lit
}

// parseParenOrTuple distinguishes (a) from (), (a,) and (a, b).
func (p *Parser) parseParenOrTuple() (ast.Expression, error) {
	open := p.peek()
	elems, trailing, closeTok, err := parseCommaList(p, TokenLParen, TokenRParen, p.parseExpression)
	if err != nil {
		return nil, err
	}
	loc := span.Combine(open.Span, closeTok.Span)
	if len(elems) == 1 && !trailing {
		return &ast.Paren{Inner: elems[0], Loc: loc}, nil
	}
	return &ast.Tuple{Elements: elems, Loc: loc}, nil
}

// groupCoordinateAt recognizes the coordinate starting n tokens ahead and
// returns how many tokens it spans.
func (p *Parser) groupCoordinateAt(n int) (ast.GroupCoordinate, int, bool) {
	tok := p.peekN(n)
	switch tok.Kind {
	case TokenPlus:
		return ast.GroupCoordinate{Kind: ast.CoordinateSignHigh, Loc: tok.Span}, 1, true
	case TokenMinus:
		if next := p.peekN(n + 1); isPlainInt(next) {
			return ast.GroupCoordinate{Kind: ast.CoordinateNumber, Value: "-" + next.Literal, Loc: next.Span}, 2, true
		}
		return ast.GroupCoordinate{Kind: ast.CoordinateSignLow, Loc: tok.Span}, 1, true
	case TokenUnderscore:
		return ast.GroupCoordinate{Kind: ast.CoordinateInferred, Loc: tok.Span}, 1, true
	case TokenIntLiteral:
		if isPlainInt(tok) {
			return ast.GroupCoordinate{Kind: ast.CoordinateNumber, Value: tok.Literal, Loc: tok.Span}, 1, true
		}
	}
	return ast.GroupCoordinate{}, 0, false
}

func isPlainInt(tok Token) bool {
	if tok.Kind != TokenIntLiteral {
		return false
	}
	_, suffix := splitIntLiteral(tok.Literal)
	return suffix == ""
}

// parseGroupLiteral consumes (x, y)group when the tokens ahead form one.
// ok is false, with nothing consumed, for any other parenthesized input.
func (p *Parser) parseGroupLiteral() (ast.Expression, bool, error) {
	i := 1
	x, n, ok := p.groupCoordinateAt(i)
	if !ok {
		return nil, false, nil
	}
	i += n
	if p.peekN(i).Kind != TokenComma {
		return nil, false, nil
	}
	i++
	y, n, ok := p.groupCoordinateAt(i)
	if !ok {
		return nil, false, nil
	}
	i += n
	rparen, group := p.peekN(i), p.peekN(i+1)
	if rparen.Kind != TokenRParen || group.Kind != TokenGroup {
		return nil, false, nil
	}

	open := p.peek()
	for j := 0; j <= i+1; j++ {
		p.advance()
	}

	_, end := rparen.Span.Offsets()
	if start, _ := group.Span.Offsets(); start != end {
		return nil, true, p.newError(InvalidGroupLiteral, group, "unexpected whitespace between ')' and 'group'")
	}

	return &ast.Literal{
		Kind:  ast.LiteralGroup,
		Group: &ast.GroupTuple{X: x, Y: y},
		Loc:   span.Combine(open.Span, group.Span),
	}, true, nil
}

// CircuitInit: Name '{' (member (',' member)* ','?)? '}'
func (p *Parser) parseCircuitInit() (ast.Expression, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	members, _, closeTok, err := parseCommaList(p, TokenLBrace, TokenRBrace, p.parseCircuitMember)
	if err != nil {
		return nil, err
	}
	return &ast.CircuitInit{
		Name:    name,
		Members: members,
		Loc:     span.Combine(name.Loc, closeTok.Span),
	}, nil
}

func (p *Parser) parseCircuitMember() (*ast.CircuitMember, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	member := &ast.CircuitMember{Name: name}
	if _, ok := p.eat(TokenColon); ok {
		member.Value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	return member, nil
}
