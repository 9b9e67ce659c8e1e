package ast

import "fmt"

// A Visitor's Visit method is invoked for each expression encountered by
// Walk. If the result visitor w is not nil, Walk visits each of the
// children with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(e Expression) (w Visitor)
}

// Walk traverses an expression tree depth-first, children in source order.
func Walk(v Visitor, e Expression) {
	if v = v.Visit(e); v == nil {
		return
	}
	for _, child := range Children(e) {
		Walk(v, child)
	}
	v.Visit(nil)
}

type inspector func(Expression) bool

func (f inspector) Visit(e Expression) Visitor {
	if f(e) {
		return f
	}
	return nil
}

// Inspect calls f for every expression in the tree rooted at e. Returning
// false skips the children of the current node.
func Inspect(e Expression, f func(Expression) bool) {
	Walk(inspector(f), e)
}

// Children returns the direct sub-expressions of e in source order.
func Children(e Expression) []Expression {
	switch n := e.(type) {
	case *Identifier, *Literal:
		return nil
	case *Call:
		return append([]Expression{n.Function}, n.Arguments...)
	case *StaticAccess:
		return []Expression{n.Inner, n.Name}
	case *MemberAccess:
		return []Expression{n.Inner, n.Name}
	case *TupleAccess:
		return []Expression{n.Tuple}
	case *ArrayAccess:
		return []Expression{n.Array, n.Index}
	case *Binary:
		return []Expression{n.Left, n.Right}
	case *Unary:
		return []Expression{n.Inner}
	case *Ternary:
		return []Expression{n.Condition, n.IfTrue, n.IfFalse}
	case *Cast:
		return []Expression{n.Inner}
	case *Tuple:
		return n.Elements
	case *Paren:
		return []Expression{n.Inner}
	case *CircuitInit:
		children := []Expression{n.Name}
		for _, m := range n.Members {
			children = append(children, m.Name)
			if m.Value != nil {
				children = append(children, m.Value)
			}
		}
		return children
	case nil:
		return nil
	default:
		panic(fmt.Sprintf("ast: unexpected expression %T", e))
	}
}

// Equal reports whether a and b have the same shape and values. Spans are
// ignored, so a tree equals the re-parse of its printed form.
func Equal(a, b Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Identifier:
		y, ok := b.(*Identifier)
		return ok && x.Matches(y)
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.Kind == y.Kind && x.Type == y.Type && x.Value == y.Value && groupEqual(x.Group, y.Group)
	case *Call:
		y, ok := b.(*Call)
		return ok && Equal(x.Function, y.Function) && listEqual(x.Arguments, y.Arguments)
	case *StaticAccess:
		y, ok := b.(*StaticAccess)
		return ok && Equal(x.Inner, y.Inner) && x.Name.Matches(y.Name) && TypeEqual(x.TypeHint, y.TypeHint)
	case *MemberAccess:
		y, ok := b.(*MemberAccess)
		return ok && Equal(x.Inner, y.Inner) && x.Name.Matches(y.Name)
	case *TupleAccess:
		y, ok := b.(*TupleAccess)
		return ok && x.Index == y.Index && Equal(x.Tuple, y.Tuple)
	case *ArrayAccess:
		y, ok := b.(*ArrayAccess)
		return ok && Equal(x.Array, y.Array) && Equal(x.Index, y.Index)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Op == y.Op && Equal(x.Inner, y.Inner)
	case *Ternary:
		y, ok := b.(*Ternary)
		return ok && Equal(x.Condition, y.Condition) && Equal(x.IfTrue, y.IfTrue) && Equal(x.IfFalse, y.IfFalse)
	case *Cast:
		y, ok := b.(*Cast)
		return ok && Equal(x.Inner, y.Inner) && TypeEqual(x.Target, y.Target)
	case *Tuple:
		y, ok := b.(*Tuple)
		return ok && listEqual(x.Elements, y.Elements)
	case *Paren:
		y, ok := b.(*Paren)
		return ok && Equal(x.Inner, y.Inner)
	case *CircuitInit:
		y, ok := b.(*CircuitInit)
		if !ok || !x.Name.Matches(y.Name) || len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if !x.Members[i].Name.Matches(y.Members[i].Name) || !Equal(x.Members[i].Value, y.Members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

func TypeEqual(a, b *Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind != b.Kind || a.Name != b.Name || len(a.Elements) != len(b.Elements) {
		return false
	}
	for i := range a.Elements {
		if !TypeEqual(a.Elements[i], b.Elements[i]) {
			return false
		}
	}
	return true
}

func listEqual(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func groupEqual(a, b *GroupTuple) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.X.Kind == b.X.Kind && a.X.Value == b.X.Value &&
		a.Y.Kind == b.Y.Kind && a.Y.Value == b.Y.Value
}
