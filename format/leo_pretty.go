package format

import (
	"bytes"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dhamidi/zkc/leo/ast"
	"github.com/dhamidi/zkc/leo/parser"
	"github.com/dhamidi/zkc/leo/span"
)

// LeoPrettyPrinter renders expressions back to source. Grouping comes only
// from Paren nodes, so printing a parsed tree and parsing the output again
// yields an equal tree.
type LeoPrettyPrinter struct {
	w            io.Writer
	err          error
	comments     []parser.Token
	commentIndex int
	indent       int
	indentStr    string
	atLineStart  bool
	column       int
	maxColumn    int
}

func NewLeoPrettyPrinter(w io.Writer) *LeoPrettyPrinter {
	return &LeoPrettyPrinter{
		w:           w,
		indentStr:   "    ",
		atLineStart: true,
		maxColumn:   80,
	}
}

// Print writes a single expression without a terminator.
func (p *LeoPrettyPrinter) Print(expr ast.Expression) error {
	p.printExpr(expr)
	return p.err
}

// PrintAll writes each expression on its own line terminated by ';'.
// A line comment on the last line of an expression stays at the end of
// that line; other comments are emitted on their own lines ahead of the
// expression they precede or occur in.
func (p *LeoPrettyPrinter) PrintAll(exprs []ast.Expression, comments []parser.Token) error {
	p.comments = append([]parser.Token(nil), comments...)
	sort.Slice(p.comments, func(i, j int) bool {
		a, _ := p.comments[i].Span.Offsets()
		b, _ := p.comments[j].Span.Offsets()
		return a < b
	})
	p.commentIndex = 0

	for i, expr := range exprs {
		_, end := expr.Span().Offsets()
		p.emitCommentsBefore(end)
		p.writeIndent()
		p.printExpr(expr)
		p.write(";")
		next := -1
		if i+1 < len(exprs) {
			next, _ = exprs[i+1].Span().Offsets()
		}
		p.emitTrailingLineComment(expr.Span().LineStop, next)
		p.newline()
	}
	p.emitCommentsBefore(-1)
	return p.err
}

func (p *LeoPrettyPrinter) emitCommentsBefore(offset int) {
	for p.commentIndex < len(p.comments) {
		c := p.comments[p.commentIndex]
		if start, _ := c.Span.Offsets(); offset >= 0 && start >= offset {
			return
		}
		p.writeIndent()
		p.write(c.Literal)
		p.newline()
		p.commentIndex++
	}
}

// emitTrailingLineComment appends a line comment that starts on line and
// before the next expression (next < 0 when there is none).
func (p *LeoPrettyPrinter) emitTrailingLineComment(line uint, next int) {
	if p.commentIndex >= len(p.comments) {
		return
	}
	c := p.comments[p.commentIndex]
	start, _ := c.Span.Offsets()
	if c.Kind != parser.TokenLineComment || c.Span.LineStart != line {
		return
	}
	if next >= 0 && start >= next {
		return
	}
	p.write(" ")
	p.write(c.Literal)
	p.commentIndex++
}

// Print renders expr on a single line.
func Print(expr ast.Expression) string {
	var buf bytes.Buffer
	pp := NewLeoPrettyPrinter(&buf)
	pp.maxColumn = 1 << 30
	pp.Print(expr)
	return buf.String()
}

// PrettyPrintLeo formats a ';'-separated file of expressions.
func PrettyPrintLeo(source []byte, filename string, opts ...parser.Option) ([]byte, error) {
	src := span.NewSource(filename, string(source))
	exprs, err := parser.ParseExpressions(src, opts...)
	if err != nil {
		return nil, err
	}
	comments := parser.New(src, parser.WithComments()).Comments()

	var buf bytes.Buffer
	pp := NewLeoPrettyPrinter(&buf)
	if err := pp.PrintAll(exprs, comments); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *LeoPrettyPrinter) printExpr(expr ast.Expression) {
	switch n := expr.(type) {
	case *ast.Identifier:
		p.write(n.Name)
	case *ast.Literal:
		p.write(literalText(n))
	case *ast.Call:
		p.printExpr(n.Function)
		p.printList("(", ")", len(n.Arguments), func(i int) { p.printExpr(n.Arguments[i]) })
	case *ast.StaticAccess:
		p.printExpr(n.Inner)
		p.write("::")
		p.write(n.Name.Name)
	case *ast.MemberAccess:
		p.printExpr(n.Inner)
		p.write(".")
		p.write(n.Name.Name)
	case *ast.TupleAccess:
		p.printExpr(n.Tuple)
		p.write(".")
		p.write(strconv.FormatUint(n.Index, 10))
	case *ast.ArrayAccess:
		p.printExpr(n.Array)
		p.write("[")
		p.printExpr(n.Index)
		p.write("]")
	case *ast.Binary:
		p.printExpr(n.Left)
		p.write(" " + n.Op.Symbol() + " ")
		p.printExpr(n.Right)
	case *ast.Unary:
		p.write(n.Op.Symbol())
		p.printExpr(n.Inner)
	case *ast.Ternary:
		p.printExpr(n.Condition)
		p.write(" ? ")
		p.printExpr(n.IfTrue)
		p.write(" : ")
		p.printExpr(n.IfFalse)
	case *ast.Cast:
		p.printExpr(n.Inner)
		p.write(" as ")
		p.write(n.Target.String())
	case *ast.Tuple:
		p.printTuple(n)
	case *ast.Paren:
		p.write("(")
		p.printExpr(n.Inner)
		p.write(")")
	case *ast.CircuitInit:
		p.printCircuitInit(n)
	}
}

func (p *LeoPrettyPrinter) printTuple(n *ast.Tuple) {
	if len(n.Elements) == 1 {
		p.write("(")
		p.printExpr(n.Elements[0])
		p.write(",)")
		return
	}
	p.printList("(", ")", len(n.Elements), func(i int) { p.printExpr(n.Elements[i]) })
}

func (p *LeoPrettyPrinter) printCircuitInit(n *ast.CircuitInit) {
	p.write(n.Name.Name)
	if len(n.Members) == 0 {
		p.write(" {}")
		return
	}
	p.write(" ")
	member := func(i int) {
		m := n.Members[i]
		p.write(m.Name.Name)
		if m.Value != nil {
			p.write(": ")
			p.printExpr(m.Value)
		}
	}
	flat := func() {
		p.write("{ ")
		for i := range n.Members {
			if i > 0 {
				p.write(", ")
			}
			member(i)
		}
		p.write(" }")
	}
	if p.wouldExceed(p.measure(flat)) {
		p.printBroken("{", "}", len(n.Members), member)
		return
	}
	flat()
}

// printList prints open items close on one line, or one item per line with
// trailing commas when the line would grow past maxColumn.
func (p *LeoPrettyPrinter) printList(open, close string, n int, item func(int)) {
	flat := func() {
		p.write(open)
		for i := 0; i < n; i++ {
			if i > 0 {
				p.write(", ")
			}
			item(i)
		}
		p.write(close)
	}
	if n == 0 || !p.wouldExceed(p.measure(flat)) {
		flat()
		return
	}
	p.printBroken(open, close, n, item)
}

func (p *LeoPrettyPrinter) printBroken(open, close string, n int, item func(int)) {
	p.write(open)
	p.newline()
	p.indent++
	for i := 0; i < n; i++ {
		p.writeIndent()
		item(i)
		p.write(",")
		p.newline()
	}
	p.indent--
	p.writeIndent()
	p.write(close)
}

// measure returns the width of whatever fn prints through p with wrapping
// disabled. Nothing reaches the real writer.
func (p *LeoPrettyPrinter) measure(fn func()) int {
	var buf bytes.Buffer
	saved := *p
	p.w, p.column, p.maxColumn, p.atLineStart = &buf, 0, 1<<30, false
	fn()
	*p = saved
	return buf.Len()
}

func (p *LeoPrettyPrinter) wouldExceed(additional int) bool {
	return p.column+additional > p.maxColumn
}

func (p *LeoPrettyPrinter) writeIndent() {
	if !p.atLineStart {
		return
	}
	p.atLineStart = false
	for i := 0; i < p.indent; i++ {
		p.write(p.indentStr)
	}
}

func (p *LeoPrettyPrinter) write(s string) {
	if p.err != nil {
		return
	}
	if _, err := io.WriteString(p.w, s); err != nil {
		p.err = err
		return
	}
	if idx := strings.LastIndex(s, "\n"); idx >= 0 {
		p.column = len(s) - idx - 1
	} else {
		p.column += len(s)
	}
}

func (p *LeoPrettyPrinter) newline() {
	p.write("\n")
	p.atLineStart = true
	p.column = 0
}

func literalText(l *ast.Literal) string {
	switch l.Kind {
	case ast.LiteralInteger:
		return l.Value + l.Type
	case ast.LiteralField:
		return l.Value + "field"
	case ast.LiteralScalar:
		return l.Value + "scalar"
	case ast.LiteralGroup:
		if l.Group != nil {
			return "(" + coordinateText(l.Group.X) + ", " + coordinateText(l.Group.Y) + ")group"
		}
		return l.Value + "group"
	case ast.LiteralString:
		return `"` + l.Value + `"`
	}
	return l.Value
}

func coordinateText(c ast.GroupCoordinate) string {
	switch c.Kind {
	case ast.CoordinateSignHigh:
		return "+"
	case ast.CoordinateSignLow:
		return "-"
	case ast.CoordinateInferred:
		return "_"
	}
	return c.Value
}
