package parser

import "github.com/dhamidi/zkc/leo/span"

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenStringLiteral
	TokenAddressLiteral
	TokenTrue
	TokenFalse

	// Keywords
	TokenAddress
	TokenAs
	TokenBool
	TokenCircuit
	TokenConsole
	TokenConst
	TokenConstant
	TokenElse
	TokenField
	TokenFor
	TokenFunction
	TokenGroup
	TokenI8
	TokenI16
	TokenI32
	TokenI64
	TokenI128
	TokenIf
	TokenImport
	TokenIn
	TokenLet
	TokenReturn
	TokenScalar
	TokenSelfLower
	TokenSelfUpper
	TokenStatic
	TokenString
	TokenU8
	TokenU16
	TokenU32
	TokenU64
	TokenU128

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenDot
	TokenDotDot
	TokenColon
	TokenColonColon
	TokenSemicolon
	TokenQuestion
	TokenArrow
	TokenBigArrow
	TokenUnderscore
	TokenAt

	// Operators
	TokenAssign
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPow
	TokenNot
	TokenAnd
	TokenOr
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenShl
	TokenShr
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:            "EOF",
	TokenError:          "Error",
	TokenWhitespace:     "Whitespace",
	TokenComment:        "Comment",
	TokenLineComment:    "LineComment",
	TokenIdent:          "Identifier",
	TokenIntLiteral:     "IntLiteral",
	TokenStringLiteral:  "StringLiteral",
	TokenAddressLiteral: "AddressLiteral",
	TokenTrue:           "true",
	TokenFalse:          "false",
	TokenAddress:        "address",
	TokenAs:             "as",
	TokenBool:           "bool",
	TokenCircuit:        "circuit",
	TokenConsole:        "console",
	TokenConst:          "const",
	TokenConstant:       "constant",
	TokenElse:           "else",
	TokenField:          "field",
	TokenFor:            "for",
	TokenFunction:       "function",
	TokenGroup:          "group",
	TokenI8:             "i8",
	TokenI16:            "i16",
	TokenI32:            "i32",
	TokenI64:            "i64",
	TokenI128:           "i128",
	TokenIf:             "if",
	TokenImport:         "import",
	TokenIn:             "in",
	TokenLet:            "let",
	TokenReturn:         "return",
	TokenScalar:         "scalar",
	TokenSelfLower:      "self",
	TokenSelfUpper:      "Self",
	TokenStatic:         "static",
	TokenString:         "string",
	TokenU8:             "u8",
	TokenU16:            "u16",
	TokenU32:            "u32",
	TokenU64:            "u64",
	TokenU128:           "u128",
	TokenLParen:         "(",
	TokenRParen:         ")",
	TokenLBrace:         "{",
	TokenRBrace:         "}",
	TokenLBracket:       "[",
	TokenRBracket:       "]",
	TokenComma:          ",",
	TokenDot:            ".",
	TokenDotDot:         "..",
	TokenColon:          ":",
	TokenColonColon:     "::",
	TokenSemicolon:      ";",
	TokenQuestion:       "?",
	TokenArrow:          "->",
	TokenBigArrow:       "=>",
	TokenUnderscore:     "_",
	TokenAt:             "@",
	TokenAssign:         "=",
	TokenEQ:             "==",
	TokenNE:             "!=",
	TokenLT:             "<",
	TokenLE:             "<=",
	TokenGT:             ">",
	TokenGE:             ">=",
	TokenPlus:           "+",
	TokenMinus:          "-",
	TokenStar:           "*",
	TokenSlash:          "/",
	TokenPow:            "**",
	TokenNot:            "!",
	TokenAnd:            "&&",
	TokenOr:             "||",
	TokenBitAnd:         "&",
	TokenBitOr:          "|",
	TokenBitXor:         "^",
	TokenShl:            "<<",
	TokenShr:            ">>",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsKeyword reports whether k is a reserved word.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenAddress && k <= TokenU128
}

// IsPrimitiveType reports whether k names a built-in type.
func (k TokenKind) IsPrimitiveType() bool {
	switch k {
	case TokenAddress, TokenBool, TokenField, TokenGroup, TokenScalar, TokenString,
		TokenI8, TokenI16, TokenI32, TokenI64, TokenI128,
		TokenU8, TokenU16, TokenU32, TokenU64, TokenU128:
		return true
	}
	return false
}

type Token struct {
	Kind    TokenKind
	Span    span.Span
	Literal string
}

var keywords = map[string]TokenKind{
	"address":  TokenAddress,
	"as":       TokenAs,
	"bool":     TokenBool,
	"circuit":  TokenCircuit,
	"console":  TokenConsole,
	"const":    TokenConst,
	"constant": TokenConstant,
	"else":     TokenElse,
	"false":    TokenFalse,
	"field":    TokenField,
	"for":      TokenFor,
	"function": TokenFunction,
	"group":    TokenGroup,
	"i8":       TokenI8,
	"i16":      TokenI16,
	"i32":      TokenI32,
	"i64":      TokenI64,
	"i128":     TokenI128,
	"if":       TokenIf,
	"import":   TokenImport,
	"in":       TokenIn,
	"let":      TokenLet,
	"return":   TokenReturn,
	"scalar":   TokenScalar,
	"self":     TokenSelfLower,
	"Self":     TokenSelfUpper,
	"static":   TokenStatic,
	"string":   TokenString,
	"true":     TokenTrue,
	"u8":       TokenU8,
	"u16":      TokenU16,
	"u32":      TokenU32,
	"u64":      TokenU64,
	"u128":     TokenU128,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// integerSuffixes are the type suffixes accepted directly after the
// digits of an integer literal.
var integerSuffixes = []string{
	"field", "group", "scalar",
	"i128", "i64", "i32", "i16", "i8",
	"u128", "u64", "u32", "u16", "u8",
}
