package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/zkc/leo/ast"
)

// ASTJSONEncoder writes the conformance dump of an expression tree.
type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(expr ast.Expression) error {
	text, err := e.MarshalText(expr)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(expr ast.Expression) ([]byte, error) {
	return json.MarshalIndent(expr, "", "  ")
}

// EncodeAll writes the trees of a ';'-separated file as one JSON array.
func (e *ASTJSONEncoder) EncodeAll(exprs []ast.Expression) error {
	if exprs == nil {
		exprs = []ast.Expression{}
	}
	text, err := json.MarshalIndent(exprs, "", "  ")
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}
