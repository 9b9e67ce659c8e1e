package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/zkc/leo/span"
)

type ErrorKind int

const (
	// UnexpectedToken: the current token cannot start or continue the
	// construct being parsed.
	UnexpectedToken ErrorKind = iota + 1
	// InvalidAccessToken: the token after '.' is neither an identifier nor
	// an integer. A lexer error token after '.' is reported as InvalidToken
	// instead.
	InvalidAccessToken
	// UnclosedDelimiter: '(', '[' or '{' reached the end of input or a
	// different closer before its own.
	UnclosedDelimiter
	// MalformedTupleIndex: the integer after '.' is not a plain
	// non-negative index.
	MalformedTupleIndex
	// NestingTooDeep: the input nests deeper than the configured limit.
	NestingTooDeep
	// InvalidToken: the lexer could not form a token.
	InvalidToken
	// InvalidGroupLiteral: a (x, y)group literal is malformed.
	InvalidGroupLiteral
)

var errorKindNames = map[ErrorKind]string{
	UnexpectedToken:     "UnexpectedToken",
	InvalidAccessToken:  "InvalidAccessToken",
	UnclosedDelimiter:   "UnclosedDelimiter",
	MalformedTupleIndex: "MalformedTupleIndex",
	NestingTooDeep:      "NestingTooDeep",
	InvalidToken:        "InvalidToken",
	InvalidGroupLiteral: "InvalidGroupLiteral",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Error struct {
	Kind     ErrorKind
	Message  string
	Span     span.Span
	Expected []TokenKind
	Got      *Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// IsKind reports whether err is, wraps or lists a parse error of the given
// kind.
func IsKind(err error, kind ErrorKind) bool {
	var list ErrorList
	if errors.As(err, &list) {
		for _, perr := range list {
			if perr.Kind == kind {
				return true
			}
		}
		return false
	}
	var perr *Error
	return errors.As(err, &perr) && perr.Kind == kind
}

// ErrorList collects the errors of independently parsed expressions.
type ErrorList []*Error

func (l *ErrorList) Add(err *Error) {
	*l = append(*l, err)
}

// Sort orders the list by file and position.
func (l ErrorList) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		a, b := l[i].Span, l[j].Span
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.LineStart != b.LineStart {
			return a.LineStart < b.LineStart
		}
		return a.ColStart < b.ColStart
	})
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, err := range l {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, err := range l {
		errs[i] = err
	}
	return errs
}

// Err returns nil for an empty list so callers can return it directly.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenEOF:
		return "end of input"
	case TokenIdent, TokenIntLiteral, TokenStringLiteral, TokenAddressLiteral, TokenError:
		return fmt.Sprintf("%s %q", tok.Kind, tok.Literal)
	}
	return fmt.Sprintf("'%s'", tok.Literal)
}
