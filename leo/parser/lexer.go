package parser

import (
	"strings"

	"github.com/dhamidi/zkc/leo/span"
)

type Lexer struct {
	src   *span.Source
	input string
	pos   int
}

func NewLexer(src *span.Source) *Lexer {
	return &Lexer{
		src:   src,
		input: src.Text,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	start := l.pos

	if l.pos >= len(l.input) {
		return l.token(TokenEOF, start)
	}

	ch := l.peek()

	if ch == '/' && l.peekN(1) == '/' {
		return l.scanLineComment(start)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(start)
	}

	if isWhitespace(ch) {
		return l.scanWhitespace(start)
	}

	if isLetter(ch) {
		return l.scanIdentOrKeyword(start)
	}

	if isDigit(ch) {
		return l.scanNumber(start)
	}

	if ch == '"' {
		return l.scanStringLiteral(start)
	}

	return l.scanOperator(start)
}

func (l *Lexer) scanWhitespace(start int) Token {
	for isWhitespace(l.peek()) {
		l.advance()
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanLineComment(start int) Token {
	l.advanceN(2)
	for l.peek() != 0 && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start int) Token {
	l.advanceN(2)
	for l.pos < len(l.input) {
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			return l.token(TokenComment, start)
		}
		l.advance()
	}
	return l.token(TokenError, start)
}

func (l *Lexer) scanIdentOrKeyword(start int) Token {
	for isLetterOrDigit(l.peek()) {
		l.advance()
	}
	literal := l.input[start:l.pos]

	if literal == "_" {
		return l.token(TokenUnderscore, start)
	}
	if isAddress(literal) {
		return l.token(TokenAddressLiteral, start)
	}
	return l.token(LookupKeyword(literal), start)
}

// scanNumber reads decimal digits and an optional type suffix such as
// u8 or field. Anything else following the digits starts a new token.
func (l *Lexer) scanNumber(start int) Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	rest := l.input[l.pos:]
	for _, suffix := range integerSuffixes {
		if strings.HasPrefix(rest, suffix) && !isLetterOrDigit(l.peekN(len(suffix))) {
			l.advanceN(len(suffix))
			break
		}
	}
	return l.token(TokenIntLiteral, start)
}

func (l *Lexer) scanStringLiteral(start int) Token {
	l.advance()
	for l.peek() != 0 && l.peek() != '"' && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() != '"' {
		return l.token(TokenError, start)
	}
	l.advance()
	return l.token(TokenStringLiteral, start)
}

func (l *Lexer) scanOperator(start int) Token {
	ch := l.peek()

	switch ch {
	case '(':
		l.advance()
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		return l.token(TokenRParen, start)
	case '{':
		l.advance()
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		return l.token(TokenRBrace, start)
	case '[':
		l.advance()
		return l.token(TokenLBracket, start)
	case ']':
		l.advance()
		return l.token(TokenRBracket, start)
	case ';':
		l.advance()
		return l.token(TokenSemicolon, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)
	case '@':
		l.advance()
		return l.token(TokenAt, start)
	case '?':
		l.advance()
		return l.token(TokenQuestion, start)
	case '^':
		l.advance()
		return l.token(TokenBitXor, start)
	case '+':
		l.advance()
		return l.token(TokenPlus, start)
	case '/':
		l.advance()
		return l.token(TokenSlash, start)

	case '.':
		if l.peekN(1) == '.' {
			l.advanceN(2)
			return l.token(TokenDotDot, start)
		}
		l.advance()
		return l.token(TokenDot, start)

	case ':':
		if l.peekN(1) == ':' {
			l.advanceN(2)
			return l.token(TokenColonColon, start)
		}
		l.advance()
		return l.token(TokenColon, start)

	case '=':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenEQ, start)
		}
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenBigArrow, start)
		}
		l.advance()
		return l.token(TokenAssign, start)

	case '!':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenNE, start)
		}
		l.advance()
		return l.token(TokenNot, start)

	case '<':
		if l.peekN(1) == '<' {
			l.advanceN(2)
			return l.token(TokenShl, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenLE, start)
		}
		l.advance()
		return l.token(TokenLT, start)

	case '>':
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenShr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenGE, start)
		}
		l.advance()
		return l.token(TokenGT, start)

	case '&':
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(TokenAnd, start)
		}
		l.advance()
		return l.token(TokenBitAnd, start)

	case '|':
		if l.peekN(1) == '|' {
			l.advanceN(2)
			return l.token(TokenOr, start)
		}
		l.advance()
		return l.token(TokenBitOr, start)

	case '-':
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenArrow, start)
		}
		l.advance()
		return l.token(TokenMinus, start)

	case '*':
		if l.peekN(1) == '*' {
			l.advanceN(2)
			return l.token(TokenPow, start)
		}
		l.advance()
		return l.token(TokenStar, start)
	}

	l.advance()
	return l.token(TokenError, start)
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	return Token{
		Kind:    kind,
		Span:    l.src.Span(start, l.pos),
		Literal: l.input[start:l.pos],
	}
}

// Tokenize returns every token of src up to and including EOF, skipping
// whitespace. Comments are kept when withComments is set.
func Tokenize(src *span.Source, withComments bool) []Token {
	lexer := NewLexer(src)
	var tokens []Token
	for {
		tok := lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace:
			continue
		case TokenComment, TokenLineComment:
			if !withComments {
				continue
			}
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isLetterOrDigit(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

// isAddress reports whether ident is an aleo1 address: the prefix
// followed by 58 lowercase alphanumerics.
func isAddress(ident string) bool {
	if len(ident) != 63 || !strings.HasPrefix(ident, "aleo1") {
		return false
	}
	for i := 5; i < len(ident); i++ {
		ch := ident[i]
		if !(ch >= 'a' && ch <= 'z') && !isDigit(ch) {
			return false
		}
	}
	return true
}
