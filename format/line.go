package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/zkc/leo/ast"
)

// LineEncoder writes one tab-separated line per node: depth, node label,
// span and the source text the node covers.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(expr ast.Expression) error {
	text, err := e.MarshalText(expr)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText(expr ast.Expression) ([]byte, error) {
	var sb strings.Builder
	e.writeNode(&sb, expr, 0)
	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeNode(sb *strings.Builder, expr ast.Expression, depth int) {
	s := expr.Span()
	fmt.Fprintf(sb, "%d\t%s\t%d:%d-%d:%d\t%s\n",
		depth,
		nodeLabel(expr),
		s.LineStart, s.ColStart, s.LineStop, s.ColStop,
		oneLine(s.Content),
	)
	for _, child := range ast.Children(expr) {
		e.writeNode(sb, child, depth+1)
	}
}

func nodeLabel(expr ast.Expression) string {
	switch n := expr.(type) {
	case *ast.Identifier:
		return "identifier"
	case *ast.Literal:
		return "literal." + strings.ToLower(n.Kind.String())
	case *ast.Call:
		return "call"
	case *ast.StaticAccess:
		return "access.static"
	case *ast.MemberAccess:
		return "access.member"
	case *ast.TupleAccess:
		return "access.tuple"
	case *ast.ArrayAccess:
		return "access.array"
	case *ast.Binary:
		return "binary." + strings.ToLower(n.Op.String())
	case *ast.Unary:
		return "unary." + strings.ToLower(n.Op.String())
	case *ast.Ternary:
		return "ternary"
	case *ast.Cast:
		return "cast"
	case *ast.Tuple:
		return "tuple"
	case *ast.Paren:
		return "paren"
	case *ast.CircuitInit:
		return "circuit_init"
	}
	return fmt.Sprintf("%T", expr)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
