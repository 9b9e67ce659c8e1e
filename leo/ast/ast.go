// Package ast defines the expression tree produced by the parser. Every node
// is built once, bottom-up, and owns its children exclusively.
package ast

import "github.com/dhamidi/zkc/leo/span"

type Node interface {
	Span() span.Span
}

// Expression is implemented only by the node types in this package.
type Expression interface {
	Node
	exprNode()
}

// Access is the postfix access family: a::b, a.b, a.0 and a[i].
type Access interface {
	Expression
	accessNode()
}

type Identifier struct {
	Name string
	Loc  span.Span
}

// Matches compares names only; spans do not take part in identity.
func (i *Identifier) Matches(other *Identifier) bool {
	return i != nil && other != nil && i.Name == other.Name
}

type LiteralKind int

const (
	LiteralImplicit LiteralKind = iota
	LiteralInteger
	LiteralField
	LiteralGroup
	LiteralScalar
	LiteralBoolean
	LiteralAddress
	LiteralString
)

var literalKindNames = map[LiteralKind]string{
	LiteralImplicit: "Implicit",
	LiteralInteger:  "Integer",
	LiteralField:    "Field",
	LiteralGroup:    "Group",
	LiteralScalar:   "Scalar",
	LiteralBoolean:  "Boolean",
	LiteralAddress:  "Address",
	LiteralString:   "String",
}

func (k LiteralKind) String() string {
	if name, ok := literalKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Literal is a leaf value. Type holds the integer type suffix (u8, i64, ...)
// for LiteralInteger. Group is set only for (x, y)group literals.
type Literal struct {
	Kind  LiteralKind
	Type  string
	Value string
	Group *GroupTuple
	Loc   span.Span
}

type CoordinateKind int

const (
	CoordinateNumber CoordinateKind = iota
	CoordinateSignHigh
	CoordinateSignLow
	CoordinateInferred
)

var coordinateKindNames = map[CoordinateKind]string{
	CoordinateNumber:   "Number",
	CoordinateSignHigh: "SignHigh",
	CoordinateSignLow:  "SignLow",
	CoordinateInferred: "Inferred",
}

func (k CoordinateKind) String() string {
	if name, ok := coordinateKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// GroupCoordinate is one component of a group literal: a number, a sign
// (+ or -) or the inferred marker _.
type GroupCoordinate struct {
	Kind  CoordinateKind
	Value string
	Loc   span.Span
}

type GroupTuple struct {
	X, Y GroupCoordinate
}

// Call is function(arguments...). Its span runs from the start of
// Function through the closing parenthesis.
type Call struct {
	Function  Expression
	Arguments []Expression
	Loc       span.Span
}

// StaticAccess is Inner::Name. TypeHint is nil until a later stage
// annotates it.
type StaticAccess struct {
	Inner    Expression
	Name     *Identifier
	TypeHint *Type
	Loc      span.Span
}

// MemberAccess is Inner.Name.
type MemberAccess struct {
	Inner Expression
	Name  *Identifier
	Loc   span.Span
}

// TupleAccess is Tuple.Index where Index was written as a plain integer.
type TupleAccess struct {
	Tuple Expression
	Index uint64
	Loc   span.Span
}

// ArrayAccess is Array[Index].
type ArrayAccess struct {
	Array Expression
	Index Expression
	Loc   span.Span
}

type BinaryOp int

const (
	BinaryOr BinaryOp = iota
	BinaryAnd
	BinaryEq
	BinaryNe
	BinaryLt
	BinaryLe
	BinaryGt
	BinaryGe
	BinaryBitOr
	BinaryBitXor
	BinaryBitAnd
	BinaryShl
	BinaryShr
	BinaryAdd
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryPow
)

var binaryOpNames = map[BinaryOp][2]string{
	BinaryOr:     {"Or", "||"},
	BinaryAnd:    {"And", "&&"},
	BinaryEq:     {"Eq", "=="},
	BinaryNe:     {"Ne", "!="},
	BinaryLt:     {"Lt", "<"},
	BinaryLe:     {"Le", "<="},
	BinaryGt:     {"Gt", ">"},
	BinaryGe:     {"Ge", ">="},
	BinaryBitOr:  {"BitOr", "|"},
	BinaryBitXor: {"BitXor", "^"},
	BinaryBitAnd: {"BitAnd", "&"},
	BinaryShl:    {"Shl", "<<"},
	BinaryShr:    {"Shr", ">>"},
	BinaryAdd:    {"Add", "+"},
	BinarySub:    {"Sub", "-"},
	BinaryMul:    {"Mul", "*"},
	BinaryDiv:    {"Div", "/"},
	BinaryPow:    {"Pow", "**"},
}

func (op BinaryOp) String() string {
	if names, ok := binaryOpNames[op]; ok {
		return names[0]
	}
	return "Unknown"
}

// Symbol returns the operator as written in source.
func (op BinaryOp) Symbol() string {
	return binaryOpNames[op][1]
}

type Binary struct {
	Left  Expression
	Right Expression
	Op    BinaryOp
	Loc   span.Span
}

type UnaryOp int

const (
	UnaryNot UnaryOp = iota
	UnaryNegate
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNot:
		return "Not"
	case UnaryNegate:
		return "Negate"
	}
	return "Unknown"
}

func (op UnaryOp) Symbol() string {
	if op == UnaryNot {
		return "!"
	}
	return "-"
}

type Unary struct {
	Op    UnaryOp
	Inner Expression
	Loc   span.Span
}

// Ternary is Condition ? IfTrue : IfFalse.
type Ternary struct {
	Condition Expression
	IfTrue    Expression
	IfFalse   Expression
	Loc       span.Span
}

// Cast is Inner as Target.
type Cast struct {
	Inner  Expression
	Target *Type
	Loc    span.Span
}

// Tuple is (), (a,) or (a, b, ...).
type Tuple struct {
	Elements []Expression
	Loc      span.Span
}

// Paren is a parenthesized expression. It is kept in the tree so spans of
// enclosing nodes and printed source match the input.
type Paren struct {
	Inner Expression
	Loc   span.Span
}

// CircuitInit is Name { member: value, shorthand }.
type CircuitInit struct {
	Name    *Identifier
	Members []*CircuitMember
	Loc     span.Span
}

// CircuitMember has a nil Value for the shorthand form { x }.
type CircuitMember struct {
	Name  *Identifier
	Value Expression
}

type TypeKind int

const (
	TypePrimitive TypeKind = iota
	TypeNamed
	TypeSelf
	TypeTuple
)

// Type is the small type language needed by casts and static access hints.
type Type struct {
	Kind     TypeKind
	Name     string
	Elements []*Type
	Loc      span.Span
}

func (t *Type) String() string {
	if t == nil {
		return ""
	}
	if t.Kind != TypeTuple {
		return t.Name
	}
	s := "("
	for i, elem := range t.Elements {
		if i > 0 {
			s += ", "
		}
		s += elem.String()
	}
	return s + ")"
}

func (i *Identifier) Span() span.Span   { return i.Loc }
func (l *Literal) Span() span.Span      { return l.Loc }
func (c *Call) Span() span.Span         { return c.Loc }
func (a *StaticAccess) Span() span.Span { return a.Loc }
func (a *MemberAccess) Span() span.Span { return a.Loc }
func (a *TupleAccess) Span() span.Span  { return a.Loc }
func (a *ArrayAccess) Span() span.Span  { return a.Loc }
func (b *Binary) Span() span.Span       { return b.Loc }
func (u *Unary) Span() span.Span        { return u.Loc }
func (t *Ternary) Span() span.Span      { return t.Loc }
func (c *Cast) Span() span.Span         { return c.Loc }
func (t *Tuple) Span() span.Span        { return t.Loc }
func (p *Paren) Span() span.Span        { return p.Loc }
func (c *CircuitInit) Span() span.Span  { return c.Loc }
func (t *Type) Span() span.Span         { return t.Loc }

func (*Identifier) exprNode()   {}
func (*Literal) exprNode()      {}
func (*Call) exprNode()         {}
func (*StaticAccess) exprNode() {}
func (*MemberAccess) exprNode() {}
func (*TupleAccess) exprNode()  {}
func (*ArrayAccess) exprNode()  {}
func (*Binary) exprNode()       {}
func (*Unary) exprNode()        {}
func (*Ternary) exprNode()      {}
func (*Cast) exprNode()         {}
func (*Tuple) exprNode()        {}
func (*Paren) exprNode()        {}
func (*CircuitInit) exprNode()  {}

func (*StaticAccess) accessNode() {}
func (*MemberAccess) accessNode() {}
func (*TupleAccess) accessNode()  {}
func (*ArrayAccess) accessNode()  {}
