package format

import (
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

// TestRoundTrip prints each parsed tree, parses the output again and
// compares structure, then checks that printing is a fixed point.
func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"x()",
		"x(y, z)",
		"x::y(x)",
		"x.0(x)",
		"x[0](x)",
		"a[b[c]]",
		"a + b * c",
		"(a + b) * c",
		"a - (b - c)",
		"a ** b ** c",
		"(a ** b) ** c",
		"-a ** 2",
		"-(a ** 2)",
		"!!a && b",
		"- -a",
		"a - -b",
		"a as u8 as (u16, Foo)",
		"(a + b) as u8",
		"a ? b : c ? d : e",
		"(a ? b : c) ? d : e",
		"()",
		"(a,)",
		"(a, b, c)",
		"((a))",
		"Foo { a: 1u8, b, c: Bar {} }",
		"(1, 2)group",
		"(-5, _)group + (+, -)group",
		"1field * 2scalar + 3group",
		`f("text", true, 7i128)`,
		"Self::new(self.x, u8::MAX)",
		"BHP256::hash(a.b.0[i + 1])",
		"a == b && c < d || e != f",
		"a | b ^ c & d << 1 >> 2",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			orig := mustParse(t, input)
			printed := Print(orig)
			reparsed := mustParse(t, printed)
			if !ast.Equal(orig, reparsed) {
				t.Fatalf("round trip changed the tree\ninput:   %s\nprinted: %s\nbefore:\n%s\nafter:\n%s",
					input, printed, ast.Sprint(orig), ast.Sprint(reparsed))
			}
			if again := Print(reparsed); again != printed {
				t.Errorf("printing is not stable: %q then %q", printed, again)
			}
		})
	}
}

func TestPrintCanonical(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x( y ,z )", "x(y, z)"},
		{"a+b*c", "a + b * c"},
		{"( a , )", "(a,)"},
		{"Foo{a:1,b}", "Foo { a: 1, b }"},
		{"Foo{}", "Foo {}"},
		{"f(a,b,)", "f(a, b)"},
		{"(0,-1)group", "(0, -1)group"},
		{"x :: y", "x::y"},
		{"a  as  u8", "a as u8"},
		{"c?a:b", "c ? a : b"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Print(mustParse(t, tt.input)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrettyPrintLeoWrapsLongCalls(t *testing.T) {
	args := make([]string, 12)
	for i := range args {
		args[i] = "argument_number_" + string(rune('a'+i))
	}
	source := "f(" + strings.Join(args, ", ") + ");"

	out, err := PrettyPrintLeo([]byte(source), "test.leo")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	if len(lines) != len(args)+2 {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(args)+2, out)
	}
	if lines[0] != "f(" || lines[len(lines)-1] != ");" {
		t.Errorf("unexpected framing:\n%s", out)
	}
	if lines[1] != "    argument_number_a," {
		t.Errorf("line 1 = %q", lines[1])
	}

	exprs, err := parser.ParseExpressions(span.NewSource("out.leo", string(out)))
	if err != nil {
		t.Fatalf("wrapped output does not parse: %v", err)
	}
	if !ast.Equal(exprs[0], mustParse(t, strings.TrimSuffix(source, ";"))) {
		t.Errorf("wrapping changed the tree")
	}
}

func TestPrettyPrintLeoKeepsComments(t *testing.T) {
	source := "// first\na+b;\nf( x /* inline */ );\n// trailing\n"
	out, err := PrettyPrintLeo([]byte(source), "test.leo")
	if err != nil {
		t.Fatal(err)
	}
	want := "// first\na + b;\n/* inline */\nf(x);\n// trailing\n"
	if string(out) != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestPrettyPrintLeoTrailingComments(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "same line",
			source: "f(a); // c\ng(b);\n",
			want:   "f(a); // c\ng(b);\n",
		},
		{
			name:   "before closing semicolon",
			source: "a+b // sum\n;\n",
			want:   "a + b; // sum\n",
		},
		{
			name:   "after later expression on the line",
			source: "a; b; // c\n",
			want:   "a;\nb; // c\n",
		},
		{
			name:   "next line stays leading",
			source: "a;\n// c\nb;\n",
			want:   "a;\n// c\nb;\n",
		},
		{
			name:   "block comment on the same line",
			source: "a; /* c */\nb;\n",
			want:   "a;\n/* c */\nb;\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := PrettyPrintLeo([]byte(tt.source), "test.leo")
			if err != nil {
				t.Fatal(err)
			}
			if string(out) != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", out, tt.want)
			}
			again, err := PrettyPrintLeo(out, "test.leo")
			if err != nil {
				t.Fatal(err)
			}
			if string(again) != string(out) {
				t.Errorf("not stable:\n%s", again)
			}
		})
	}
}

func TestPrettyPrintLeoRejectsInvalid(t *testing.T) {
	_, err := PrettyPrintLeo([]byte("a +;"), "test.leo")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !parser.IsKind(err, parser.UnexpectedToken) {
		t.Errorf("got %v", err)
	}
}
