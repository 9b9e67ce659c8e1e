package span

import (
	"encoding/json"
	"testing"
)

func TestSourcePosition(t *testing.T) {
	src := NewSource("test.leo", "ab\ncd\n\nef")
	tests := []struct {
		offset int
		line   uint
		col    uint
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 3},
		{6, 3, 1},
		{7, 4, 1},
		{9, 4, 3},
		{100, 4, 3},
	}

	for _, tt := range tests {
		line, col := src.Position(tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}

func TestSourceLine(t *testing.T) {
	src := NewSource("", "first\r\nsecond\nthird")
	tests := []struct {
		line uint
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := src.Line(tt.line); got != tt.want {
			t.Errorf("Line(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestSourceSpan(t *testing.T) {
	src := NewSource("", "x(y, z)")
	s := src.Span(0, 7)
	if s.LineStart != 1 || s.LineStop != 1 || s.ColStart != 1 || s.ColStop != 8 {
		t.Errorf("bounds = %d:%d-%d:%d, want 1:1-1:8", s.LineStart, s.ColStart, s.LineStop, s.ColStop)
	}
	if s.Content != "x(y, z)" {
		t.Errorf("Content = %q", s.Content)
	}
	if s.Len() != 7 {
		t.Errorf("Len() = %d, want 7", s.Len())
	}
}

func TestCombine(t *testing.T) {
	src := NewSource("main.leo", "foo(a,  b)\n  + bar")

	t.Run("includes punctuation between operands", func(t *testing.T) {
		got := Combine(src.Span(0, 3), src.Span(9, 10))
		if got.Content != "foo(a,  b)" {
			t.Errorf("Content = %q, want %q", got.Content, "foo(a,  b)")
		}
		if got.ColStart != 1 || got.ColStop != 11 {
			t.Errorf("cols = %d-%d, want 1-11", got.ColStart, got.ColStop)
		}
	})

	t.Run("order independent", func(t *testing.T) {
		a, b := src.Span(4, 5), src.Span(8, 9)
		if Combine(a, b).Content != Combine(b, a).Content {
			t.Errorf("Combine is order dependent: %q vs %q", Combine(a, b).Content, Combine(b, a).Content)
		}
	})

	t.Run("spans lines", func(t *testing.T) {
		got := Combine(src.Span(0, 3), src.Span(15, 18))
		if got.LineStart != 1 || got.LineStop != 2 {
			t.Errorf("lines = %d-%d, want 1-2", got.LineStart, got.LineStop)
		}
		if got.ColStop != 8 {
			t.Errorf("ColStop = %d, want 8", got.ColStop)
		}
		if got.Content != "foo(a,  b)\n  + bar" {
			t.Errorf("Content = %q", got.Content)
		}
	})

	t.Run("nested operand", func(t *testing.T) {
		outer := src.Span(0, 10)
		got := Combine(outer, src.Span(4, 5))
		if got.Content != outer.Content {
			t.Errorf("Content = %q, want %q", got.Content, outer.Content)
		}
	})

	t.Run("zero operand", func(t *testing.T) {
		a := src.Span(0, 3)
		if got := Combine(Span{}, a); got.Content != "foo" {
			t.Errorf("Combine(zero, a).Content = %q", got.Content)
		}
		if got := Combine(a, Span{}); got.Content != "foo" {
			t.Errorf("Combine(a, zero).Content = %q", got.Content)
		}
	})
}

func TestCombinePathMismatchPanics(t *testing.T) {
	a := NewSource("a.leo", "x").Span(0, 1)
	b := NewSource("b.leo", "y").Span(0, 1)
	defer func() {
		if recover() == nil {
			t.Error("expected panic combining spans from different files")
		}
	}()
	Combine(a, b)
}

func TestSpanJSON(t *testing.T) {
	s := NewSource("", "x::y").Span(0, 4)
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"line_start":1,"line_stop":1,"col_start":1,"col_stop":5,"path":"","content":"x::y"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestSpanString(t *testing.T) {
	if got := NewSource("a.leo", "\n  x").Span(3, 4).String(); got != "a.leo:2:3" {
		t.Errorf("String() = %q", got)
	}
	if got := NewSource("", "x").Span(0, 1).String(); got != "1:1" {
		t.Errorf("String() = %q", got)
	}
}
