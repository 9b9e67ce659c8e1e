package ast

import (
	"encoding/json"
	"strconv"

	"github.com/dhamidi/zkc/leo/span"
)

// The JSON form is the conformance dump: every variant is externally
// tagged ({"Call": {...}}) and identifiers are encoded as a string holding
// {"name": ..., "span": "<span json>"}.

type jsonIdentifier struct {
	Name string `json:"name"`
	Span string `json:"span"`
}

func identifierString(id *Identifier) string {
	if id == nil {
		return ""
	}
	spanJSON, _ := json.Marshal(id.Loc)
	data, _ := json.Marshal(jsonIdentifier{Name: id.Name, Span: string(spanJSON)})
	return string(data)
}

func tagged(variant string, payload any) ([]byte, error) {
	return json.Marshal(map[string]any{variant: payload})
}

func access(variant string, payload any) ([]byte, error) {
	return tagged("Access", map[string]any{variant: payload})
}

func (i *Identifier) MarshalJSON() ([]byte, error) {
	return tagged("Identifier", identifierString(i))
}

func (l *Literal) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case LiteralInteger:
		return tagged("Literal", map[string]any{"Integer": []any{l.Type, l.Value, l.Loc}})
	case LiteralGroup:
		if l.Group == nil {
			return tagged("Literal", map[string]any{"Group": map[string]any{"Single": []any{l.Value, l.Loc}}})
		}
		return tagged("Literal", map[string]any{"Group": map[string]any{"Tuple": struct {
			X    coordinateJSON `json:"x"`
			Y    coordinateJSON `json:"y"`
			Span span.Span      `json:"span"`
		}{coordinateJSON(l.Group.X), coordinateJSON(l.Group.Y), l.Loc}}})
	default:
		return tagged("Literal", map[string]any{l.Kind.String(): []any{l.Value, l.Loc}})
	}
}

type coordinateJSON GroupCoordinate

func (c coordinateJSON) MarshalJSON() ([]byte, error) {
	if c.Kind == CoordinateNumber {
		return tagged("Number", []any{c.Value, c.Loc})
	}
	return json.Marshal(c.Kind.String())
}

func (c *Call) MarshalJSON() ([]byte, error) {
	args := c.Arguments
	if args == nil {
		args = []Expression{}
	}
	return tagged("Call", struct {
		Function  Expression   `json:"function"`
		Arguments []Expression `json:"arguments"`
		Span      span.Span    `json:"span"`
	}{c.Function, args, c.Loc})
}

func (a *StaticAccess) MarshalJSON() ([]byte, error) {
	var hint *string
	if a.TypeHint != nil {
		s := a.TypeHint.String()
		hint = &s
	}
	return access("Static", struct {
		Inner    Expression `json:"inner"`
		Name     string     `json:"name"`
		TypeHint *string    `json:"type_hint"`
		Span     span.Span  `json:"span"`
	}{a.Inner, identifierString(a.Name), hint, a.Loc})
}

func (a *MemberAccess) MarshalJSON() ([]byte, error) {
	return access("Member", struct {
		Inner Expression `json:"inner"`
		Name  string     `json:"name"`
		Span  span.Span  `json:"span"`
	}{a.Inner, identifierString(a.Name), a.Loc})
}

func (a *TupleAccess) MarshalJSON() ([]byte, error) {
	return access("Tuple", struct {
		Tuple Expression        `json:"tuple"`
		Index map[string]string `json:"index"`
		Span  span.Span         `json:"span"`
	}{a.Tuple, map[string]string{"value": strconv.FormatUint(a.Index, 10)}, a.Loc})
}

func (a *ArrayAccess) MarshalJSON() ([]byte, error) {
	return access("Array", struct {
		Array Expression `json:"array"`
		Index Expression `json:"index"`
		Span  span.Span  `json:"span"`
	}{a.Array, a.Index, a.Loc})
}

func (b *Binary) MarshalJSON() ([]byte, error) {
	return tagged("Binary", struct {
		Left  Expression `json:"left"`
		Right Expression `json:"right"`
		Op    string     `json:"op"`
		Span  span.Span  `json:"span"`
	}{b.Left, b.Right, b.Op.String(), b.Loc})
}

func (u *Unary) MarshalJSON() ([]byte, error) {
	return tagged("Unary", struct {
		Inner Expression `json:"inner"`
		Op    string     `json:"op"`
		Span  span.Span  `json:"span"`
	}{u.Inner, u.Op.String(), u.Loc})
}

func (t *Ternary) MarshalJSON() ([]byte, error) {
	return tagged("Ternary", struct {
		Condition Expression `json:"condition"`
		IfTrue    Expression `json:"if_true"`
		IfFalse   Expression `json:"if_false"`
		Span      span.Span  `json:"span"`
	}{t.Condition, t.IfTrue, t.IfFalse, t.Loc})
}

func (c *Cast) MarshalJSON() ([]byte, error) {
	return tagged("Cast", struct {
		Inner      Expression `json:"inner"`
		TargetType string     `json:"target_type"`
		Span       span.Span  `json:"span"`
	}{c.Inner, c.Target.String(), c.Loc})
}

func (t *Tuple) MarshalJSON() ([]byte, error) {
	elems := t.Elements
	if elems == nil {
		elems = []Expression{}
	}
	return tagged("Tuple", struct {
		Elements []Expression `json:"elements"`
		Span     span.Span    `json:"span"`
	}{elems, t.Loc})
}

func (p *Paren) MarshalJSON() ([]byte, error) {
	return tagged("Paren", struct {
		Inner Expression `json:"inner"`
		Span  span.Span  `json:"span"`
	}{p.Inner, p.Loc})
}

type circuitMemberJSON struct {
	Identifier string     `json:"identifier"`
	Expression Expression `json:"expression"`
}

func (c *CircuitInit) MarshalJSON() ([]byte, error) {
	members := make([]circuitMemberJSON, len(c.Members))
	for i, m := range c.Members {
		members[i] = circuitMemberJSON{Identifier: identifierString(m.Name), Expression: m.Value}
	}
	return tagged("CircuitInit", struct {
		Name    string              `json:"name"`
		Members []circuitMemberJSON `json:"members"`
		Span    span.Span           `json:"span"`
	}{identifierString(c.Name), members, c.Loc})
}
