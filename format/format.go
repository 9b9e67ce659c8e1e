package format

import (
	"github.com/dhamidi/zkc/leo/ast"
)

type Encoder interface {
	Encode(expr ast.Expression) error
	MarshalText(expr ast.Expression) ([]byte, error)
}

var (
	_ Encoder = (*ASTJSONEncoder)(nil)
	_ Encoder = (*LineEncoder)(nil)
)
