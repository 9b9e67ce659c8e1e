package ast_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/zkc/leo/ast"
	"github.com/dhamidi/zkc/leo/parser"
	"github.com/dhamidi/zkc/leo/span"
)

func mustParse(t *testing.T, input string) ast.Expression {
	t.Helper()
	expr, err := parser.ParseExpression(span.NewSource("test.leo", input))
	if err != nil {
		t.Fatalf("ParseExpression(%q): %v", input, err)
	}
	return expr
}

func TestInspectVisitsInSourceOrder(t *testing.T) {
	expr := mustParse(t, "f(a, b.c)[d] + Foo { x: e, y }")
	var names []string
	ast.Inspect(expr, func(e ast.Expression) bool {
		if id, ok := e.(*ast.Identifier); ok {
			names = append(names, id.Name)
		}
		return true
	})
	want := "f a b c d Foo x e y"
	if got := strings.Join(names, " "); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	expr := mustParse(t, "f(a, b) + g(c)")
	var visited int
	ast.Inspect(expr, func(e ast.Expression) bool {
		if e == nil {
			return false
		}
		visited++
		_, isCall := e.(*ast.Call)
		return !isCall
	})
	// Binary plus the two calls.
	if visited != 3 {
		t.Errorf("visited %d nodes, want 3", visited)
	}
}

func TestChildSpansNestInParent(t *testing.T) {
	inputs := []string{
		"x::y(x)",
		"a[b[c]]",
		"-a ** b as u8",
		"c ? (1, 2)group : Foo { a: b.0 }",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			ast.Inspect(mustParse(t, input), func(e ast.Expression) bool {
				if e == nil {
					return false
				}
				plo, phi := e.Span().Offsets()
				for _, child := range ast.Children(e) {
					clo, chi := child.Span().Offsets()
					if clo < plo || chi > phi {
						t.Errorf("%q [%d,%d) escapes parent %q [%d,%d)",
							child.Span().Content, clo, chi, e.Span().Content, plo, phi)
					}
				}
				return true
			})
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b  string
		equal bool
	}{
		{"a + b", "a  +  b", true},
		{"a + b", "a - b", false},
		{"f(a)", "f(a, b)", false},
		{"x.0", "x.1", false},
		{"a as u8", "a as u16", false},
		{"(a)", "a", false},
		{"(a,)", "(a)", false},
		{"Foo { a }", "Foo { a: a }", false},
		{"(1, _)group", "(1,_)group", true},
		{"(1, _)group", "(1, +)group", false},
		{"1u8", "1u16", false},
		{"X(x)", "x(x)", false},
		{"X::y", "x::y", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			if got := ast.Equal(mustParse(t, tt.a), mustParse(t, tt.b)); got != tt.equal {
				t.Errorf("Equal = %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestSprint(t *testing.T) {
	got := ast.Sprint(mustParse(t, "f(a.0, 1u8)"))
	want := strings.Join([]string{
		"Call (2 args)",
		"  Identifier f",
		"  Access::Tuple 0",
		"    Identifier a",
		"  Literal Integer 1u8",
		"",
	}, "\n")
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	withPos := ast.SprintWithPositions(mustParse(t, "x()"))
	if !strings.HasPrefix(withPos, "Call (0 args) [1:1-1:4]\n") {
		t.Errorf("got %q", withPos)
	}
}

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON %s: %v", data, err)
	}
	return out
}

func field(t *testing.T, v any, path ...string) any {
	t.Helper()
	for _, key := range path {
		m, ok := v.(map[string]any)
		if !ok {
			t.Fatalf("at %q: %T is not an object", key, v)
		}
		v, ok = m[key]
		if !ok {
			t.Fatalf("missing key %q in %v", key, m)
		}
	}
	return v
}

func TestJSONCall(t *testing.T) {
	data, err := json.Marshal(mustParse(t, "x()"))
	if err != nil {
		t.Fatal(err)
	}
	out := decode(t, data)

	args := field(t, out, "Call", "arguments").([]any)
	if len(args) != 0 {
		t.Errorf("arguments = %v, want []", args)
	}
	if got := field(t, out, "Call", "span", "col_stop"); got != float64(4) {
		t.Errorf("col_stop = %v, want 4", got)
	}
	if got := field(t, out, "Call", "span", "content"); got != "x()" {
		t.Errorf("content = %v", got)
	}

	// Identifiers are a string holding name and span JSON.
	idString := field(t, out, "Call", "function", "Identifier").(string)
	id := decode(t, []byte(idString))
	if id["name"] != "x" {
		t.Errorf("name = %v", id["name"])
	}
	idSpan := decode(t, []byte(id["span"].(string)))
	if idSpan["col_start"] != float64(1) || idSpan["col_stop"] != float64(2) {
		t.Errorf("identifier span = %v", idSpan)
	}
}

func TestJSONAccessVariants(t *testing.T) {
	tests := []struct {
		input string
		path  []string
	}{
		{"x::y", []string{"Access", "Static", "type_hint"}},
		{"x.y", []string{"Access", "Member", "name"}},
		{"x.0", []string{"Access", "Tuple", "index", "value"}},
		{"x[0]", []string{"Access", "Array", "index"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			data, err := json.Marshal(mustParse(t, tt.input))
			if err != nil {
				t.Fatal(err)
			}
			field(t, decode(t, data), tt.path...)
		})
	}

	data, _ := json.Marshal(mustParse(t, "x::y"))
	if hint := field(t, decode(t, data), "Access", "Static", "type_hint"); hint != nil {
		t.Errorf("type_hint = %v, want null", hint)
	}
	data, _ = json.Marshal(mustParse(t, "x.0"))
	if idx := field(t, decode(t, data), "Access", "Tuple", "index", "value"); idx != "0" {
		t.Errorf("index = %v, want \"0\"", idx)
	}
}

func TestJSONLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"5", `{"Literal":{"Implicit":["5",`},
		{"5u8", `{"Literal":{"Integer":["u8","5",`},
		{"1field", `{"Literal":{"Field":["1",`},
		{"1group", `{"Literal":{"Group":{"Single":["1",`},
		{"(1, _)group", `{"Literal":{"Group":{"Tuple":{"x":{"Number":["1",`},
		{"true", `{"Literal":{"Boolean":["true",`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			data, err := json.Marshal(mustParse(t, tt.input))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(string(data), tt.want) {
				t.Errorf("got %s, want prefix %s", data, tt.want)
			}
		})
	}

	data, _ := json.Marshal(mustParse(t, "(1, _)group"))
	if y := field(t, decode(t, data), "Literal", "Group", "Tuple", "y"); y != "Inferred" {
		t.Errorf("y = %v, want Inferred", y)
	}
}

func TestJSONOperators(t *testing.T) {
	data, err := json.Marshal(mustParse(t, "!a && b as u8"))
	if err != nil {
		t.Fatal(err)
	}
	out := decode(t, data)
	if op := field(t, out, "Binary", "op"); op != "And" {
		t.Errorf("op = %v", op)
	}
	if op := field(t, out, "Binary", "left", "Unary", "op"); op != "Not" {
		t.Errorf("unary op = %v", op)
	}
	if target := field(t, out, "Binary", "right", "Cast", "target_type"); target != "u8" {
		t.Errorf("target = %v", target)
	}
}

func TestTypeString(t *testing.T) {
	typ := &ast.Type{Kind: ast.TypeTuple, Elements: []*ast.Type{
		{Kind: ast.TypePrimitive, Name: "u8"},
		{Kind: ast.TypeTuple, Elements: []*ast.Type{{Kind: ast.TypeNamed, Name: "Foo"}}},
	}}
	if got := typ.String(); got != "(u8, (Foo))" {
		t.Errorf("got %q", got)
	}
}
