package ast

import (
	"fmt"
	"strings"
)

// Sprint renders e as an indented tree, one node per line.
func Sprint(e Expression) string {
	var b strings.Builder
	dump(&b, e, 0, false)
	return b.String()
}

// SprintWithPositions is Sprint with each node's line:col range.
func SprintWithPositions(e Expression) string {
	var b strings.Builder
	dump(&b, e, 0, true)
	return b.String()
}

func dump(b *strings.Builder, e Expression, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(label(e))
	if showPositions && e != nil {
		s := e.Span()
		fmt.Fprintf(b, " [%d:%d-%d:%d]", s.LineStart, s.ColStart, s.LineStop, s.ColStop)
	}
	b.WriteString("\n")

	for _, child := range Children(e) {
		dump(b, child, indent+1, showPositions)
	}
}

func label(e Expression) string {
	switch n := e.(type) {
	case nil:
		return "<nil>"
	case *Identifier:
		return "Identifier " + n.Name
	case *Literal:
		if n.Type != "" {
			return fmt.Sprintf("Literal %s %s%s", n.Kind, n.Value, n.Type)
		}
		return fmt.Sprintf("Literal %s %s", n.Kind, n.Value)
	case *Call:
		return fmt.Sprintf("Call (%d args)", len(n.Arguments))
	case *StaticAccess:
		return "Access::Static"
	case *MemberAccess:
		return "Access::Member"
	case *TupleAccess:
		return fmt.Sprintf("Access::Tuple %d", n.Index)
	case *ArrayAccess:
		return "Access::Array"
	case *Binary:
		return "Binary " + n.Op.Symbol()
	case *Unary:
		return "Unary " + n.Op.Symbol()
	case *Ternary:
		return "Ternary"
	case *Cast:
		return "Cast " + n.Target.String()
	case *Tuple:
		return fmt.Sprintf("Tuple (%d elements)", len(n.Elements))
	case *Paren:
		return "Paren"
	case *CircuitInit:
		return "CircuitInit"
	}
	return fmt.Sprintf("%T", e)
}
