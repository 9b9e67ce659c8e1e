// Package span provides source buffers and the span values attached to every
// token and syntax tree node.
package span

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Source is one immutable source buffer.
type Source struct {
	Path  string
	Text  string
	lines []int // byte offset of the first byte of each line
}

func NewSource(path, text string) *Source {
	s := &Source{Path: path, Text: text, lines: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			s.lines = append(s.lines, i+1)
		}
	}
	return s
}

// Position returns the 1-based line and column of a byte offset.
func (s *Source) Position(offset int) (line, col uint) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.Text) {
		offset = len(s.Text)
	}
	i := sort.Search(len(s.lines), func(i int) bool { return s.lines[i] > offset }) - 1
	return uint(i + 1), uint(offset - s.lines[i] + 1)
}

// Line returns the text of a 1-based line without its newline.
func (s *Source) Line(line uint) string {
	if line == 0 || int(line) > len(s.lines) {
		return ""
	}
	start := s.lines[line-1]
	end := len(s.Text)
	if int(line) < len(s.lines) {
		end = s.lines[line] - 1
	}
	if end > start && s.Text[end-1] == '\r' {
		end--
	}
	return s.Text[start:end]
}

// Span covers the half-open byte range [lo, hi) of s.
func (s *Source) Span(lo, hi int) Span {
	if hi < lo {
		lo, hi = hi, lo
	}
	lineStart, colStart := s.Position(lo)
	lineStop, colStop := s.Position(hi)
	return Span{
		LineStart: lineStart,
		LineStop:  lineStop,
		ColStart:  colStart,
		ColStop:   colStop,
		Path:      s.Path,
		Content:   s.Text[lo:hi],
		lo:        lo,
		hi:        hi,
		text:      s.Text,
	}
}

// Span is a contiguous range of source text. Columns are 1-based and
// ColStop is exclusive. Content is always the verbatim source slice.
type Span struct {
	LineStart uint
	LineStop  uint
	ColStart  uint
	ColStop   uint
	Path      string
	Content   string

	lo, hi int
	text   string
}

// IsZero reports whether s was never derived from a source.
func (s Span) IsZero() bool {
	return s.LineStart == 0 && s.LineStop == 0 && s.text == ""
}

// Offsets returns the byte range covered by s.
func (s Span) Offsets() (lo, hi int) {
	return s.lo, s.hi
}

func (s Span) Len() int {
	return s.hi - s.lo
}

func (s Span) String() string {
	if s.Path != "" {
		return fmt.Sprintf("%s:%d:%d", s.Path, s.LineStart, s.ColStart)
	}
	return fmt.Sprintf("%d:%d", s.LineStart, s.ColStart)
}

// Combine returns the smallest span covering both a and b. The content is
// re-sliced from the shared source, so punctuation and whitespace between
// the operands are included. A zero operand is ignored.
func Combine(a, b Span) Span {
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}
	if a.Path != b.Path {
		panic(fmt.Sprintf("span: combining spans from %q and %q", a.Path, b.Path))
	}

	out := Span{Path: a.Path, text: a.text}
	if b.lo < a.lo {
		out.lo, out.LineStart, out.ColStart = b.lo, b.LineStart, b.ColStart
	} else {
		out.lo, out.LineStart, out.ColStart = a.lo, a.LineStart, a.ColStart
	}
	if b.hi > a.hi {
		out.hi, out.LineStop, out.ColStop = b.hi, b.LineStop, b.ColStop
	} else {
		out.hi, out.LineStop, out.ColStop = a.hi, a.LineStop, a.ColStop
	}
	out.Content = out.text[out.lo:out.hi]
	return out
}

type jsonSpan struct {
	LineStart uint   `json:"line_start"`
	LineStop  uint   `json:"line_stop"`
	ColStart  uint   `json:"col_start"`
	ColStop   uint   `json:"col_stop"`
	Path      string `json:"path"`
	Content   string `json:"content"`
}

func (s Span) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonSpan{
		LineStart: s.LineStart,
		LineStop:  s.LineStop,
		ColStart:  s.ColStart,
		ColStop:   s.ColStop,
		Path:      s.Path,
		Content:   s.Content,
	})
}
