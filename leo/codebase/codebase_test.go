package codebase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dhamidi/zkc/leo/parser"
	"github.com/dhamidi/zkc/leo/span"
)

func TestDiagnostics(t *testing.T) {
	src := span.NewSource("test.leo", "x.;\nBHP256::hash(a, b);\nPoseidon2::hash(c)")
	exprs, diags := Diagnostics(src)

	if len(exprs) != 2 {
		t.Fatalf("got %d expressions, want 2", len(exprs))
	}
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %+v", len(diags), diags)
	}

	if diags[0].Severity != SeverityError || diags[0].Code != "InvalidAccessToken" {
		t.Errorf("first diagnostic = %+v", diags[0])
	}
	if diags[0].Span.LineStart != 1 {
		t.Errorf("first diagnostic on line %d", diags[0].Span.LineStart)
	}

	if diags[1].Severity != SeverityWarning || diags[1].Code != CodeCoreArity {
		t.Errorf("second diagnostic = %+v", diags[1])
	}
	if want := "BHP256::hash expects 1 argument, got 2"; diags[1].Message != want {
		t.Errorf("message = %q, want %q", diags[1].Message, want)
	}
	if diags[1].Span.LineStart != 2 || diags[1].Span.ColStart != 1 {
		t.Errorf("warning span = %s", diags[1].Span)
	}
}

func TestDiagnosticsOptions(t *testing.T) {
	src := span.NewSource("test.leo", "Foo { a }")
	if _, diags := Diagnostics(src); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if _, diags := Diagnostics(src, parser.DisallowCircuitInit()); len(diags) == 0 {
		t.Fatalf("expected a diagnostic with circuit init disabled")
	}
}

func TestFormatDiagnostic(t *testing.T) {
	src := span.NewSource("test.leo", "Poseidon2::hash()")
	_, diags := Diagnostics(src)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	got := FormatDiagnostic(src, diags[0])
	want := "test.leo:1:1: warning: Poseidon2::hash expects 1 argument, got 0 [CoreArity]\n" +
		"    Poseidon2::hash()\n" +
		"    ^^^^^^^^^^^^^^^^^\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatDiagnosticKeepsTabs(t *testing.T) {
	src := span.NewSource("test.leo", "\ta.;")
	_, diags := Diagnostics(src)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic")
	}
	lines := strings.Split(FormatDiagnostic(src, diags[0]), "\n")
	if len(lines) < 3 {
		t.Fatalf("got %q", lines)
	}
	if !strings.HasPrefix(lines[2], "    \t") {
		t.Errorf("caret line %q should keep the tab", lines[2])
	}
}

func TestCodebaseUpdateAndRemove(t *testing.T) {
	c := New(".")
	f := c.UpdateFile("b.leo", []byte("a + ;"))
	if !f.HasErrors() {
		t.Errorf("expected errors for %s", f.Path)
	}
	c.UpdateFile("a.leo", []byte("a + b"))

	files := c.Files()
	if len(files) != 2 || files[0].Path != "a.leo" || files[1].Path != "b.leo" {
		t.Fatalf("files = %v", paths(files))
	}
	if c.GetFile("a.leo").HasErrors() {
		t.Errorf("a.leo should parse cleanly")
	}

	c.UpdateFile("b.leo", []byte("a * b"))
	if c.GetFile("b.leo").HasErrors() {
		t.Errorf("b.leo should parse cleanly after update")
	}

	c.RemoveFile("a.leo")
	if c.GetFile("a.leo") != nil {
		t.Errorf("a.leo still present")
	}
	if len(c.Files()) != 1 {
		t.Errorf("files = %v", paths(c.Files()))
	}
}

func TestCodebaseScanAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.leo"), "x.0 + 1u8")
	writeFile(t, filepath.Join(dir, "lib", "util.leo"), "f(")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, ".cache", "hidden.leo"), "ignored")

	c := New(dir)
	if err := c.ScanAll(); err != nil {
		t.Fatal(err)
	}

	files := c.Files()
	if len(files) != 2 {
		t.Fatalf("files = %v", paths(files))
	}
	util := c.GetFile(filepath.Join(dir, "lib", "util.leo"))
	if util == nil || !util.HasErrors() {
		t.Errorf("util.leo should be scanned with errors")
	}
	if util != nil && util.Diagnostics[0].Code != "UnclosedDelimiter" {
		t.Errorf("util.leo code = %s", util.Diagnostics[0].Code)
	}
	main := c.GetFile(filepath.Join(dir, "main.leo"))
	if main == nil || main.HasErrors() || len(main.Exprs) != 1 {
		t.Errorf("main.leo = %+v", main)
	}
}

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)
	w, err := NewFileWatcher(c)
	if err != nil {
		t.Fatal(err)
	}

	type change struct {
		path string
		f    *FileInfo
	}
	changes := make(chan change, 16)
	w.OnChange = func(path string, f *FileInfo) {
		changes <- change{path, f}
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "watched.leo")
	writeFile(t, path, "a; b")

	timeout := time.After(5 * time.Second)
	for done := false; !done; {
		select {
		case ch := <-changes:
			if ch.path == path && ch.f != nil && len(ch.f.Exprs) == 2 {
				done = true
			}
		case <-timeout:
			t.Fatal("timed out waiting for the update")
		}
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	for done := false; !done; {
		select {
		case ch := <-changes:
			if ch.path == path && ch.f == nil {
				done = true
			}
		case <-timeout:
			t.Fatal("timed out waiting for the removal")
		}
	}
	if c.GetFile(path) != nil {
		t.Errorf("%s still in codebase", path)
	}
}

func TestFileWatcherStop(t *testing.T) {
	t.Run("without start", func(t *testing.T) {
		w, err := NewFileWatcher(New(t.TempDir()))
		if err != nil {
			t.Fatal(err)
		}
		stopWithin(t, w)
	})

	t.Run("after failed start", func(t *testing.T) {
		w, err := NewFileWatcher(New(filepath.Join(t.TempDir(), "missing")))
		if err != nil {
			t.Fatal(err)
		}
		if err := w.Start(); err == nil {
			t.Fatal("expected Start to fail for a missing root")
		}
		stopWithin(t, w)
	})

	t.Run("twice", func(t *testing.T) {
		w, err := NewFileWatcher(New(t.TempDir()))
		if err != nil {
			t.Fatal(err)
		}
		if err := w.Start(); err != nil {
			t.Fatal(err)
		}
		stopWithin(t, w)
		stopWithin(t, w)
	})
}

func stopWithin(t *testing.T, w *FileWatcher) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func paths(files []*FileInfo) []string {
	var out []string
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}
