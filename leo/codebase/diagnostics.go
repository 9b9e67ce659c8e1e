package codebase

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/zkc/leo/ast"
	"github.com/dhamidi/zkc/leo/core"
	"github.com/dhamidi/zkc/leo/parser"
	"github.com/dhamidi/zkc/leo/span"
)

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	}
	return "unknown"
}

// CodeCoreArity marks a core instruction called with the wrong number of
// arguments. Parse errors use their ErrorKind name as code.
const CodeCoreArity = "CoreArity"

type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Span     span.Span
}

// Diagnostics parses src as a ';'-separated list of expressions and reports
// parse errors and core instruction arity mismatches, ordered by position.
func Diagnostics(src *span.Source, opts ...parser.Option) ([]ast.Expression, []Diagnostic) {
	exprs, err := parser.ParseExpressions(src, opts...)

	var diags []Diagnostic
	var list parser.ErrorList
	if errors.As(err, &list) {
		for _, perr := range list {
			diags = append(diags, Diagnostic{
				Severity: SeverityError,
				Code:     perr.Kind.String(),
				Message:  perr.Message,
				Span:     perr.Span,
			})
		}
	}

	for _, expr := range exprs {
		for _, call := range core.Calls(expr) {
			if call.ArityOK() {
				continue
			}
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeCoreArity,
				Message: fmt.Sprintf("%s expects %d argument%s, got %d",
					call.Instruction, call.Instruction.NumArgs(), plural(call.Instruction.NumArgs()), len(call.Expr.Arguments)),
				Span: call.Expr.Span(),
			})
		}
	}

	sortDiagnostics(diags)
	return exprs, diags
}

func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i].Span, diags[j].Span
		if a.LineStart != b.LineStart {
			return a.LineStart < b.LineStart
		}
		return a.ColStart < b.ColStart
	})
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// FormatDiagnostic renders d as path:line:col: severity: message, followed
// by the offending source line and a caret underline.
func FormatDiagnostic(src *span.Source, d Diagnostic) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s: %s", d.Span, d.Severity, d.Message)
	if d.Code != "" {
		fmt.Fprintf(&sb, " [%s]", d.Code)
	}
	sb.WriteString("\n")

	line := src.Line(d.Span.LineStart)
	if line == "" && d.Span.LineStart == 0 {
		return sb.String()
	}
	fmt.Fprintf(&sb, "    %s\n", line)

	start := int(d.Span.ColStart) - 1
	if start < 0 {
		start = 0
	}
	width := 1
	if d.Span.LineStop == d.Span.LineStart && d.Span.ColStop > d.Span.ColStart {
		width = int(d.Span.ColStop - d.Span.ColStart)
	} else if d.Span.LineStop != d.Span.LineStart && len(line) > start {
		width = len(line) - start
	}
	fmt.Fprintf(&sb, "    %s%s\n", caretPadding(line, start), strings.Repeat("^", width))
	return sb.String()
}

// caretPadding keeps tabs so the caret lines up with the source line.
func caretPadding(line string, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i < len(line) && line[i] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
