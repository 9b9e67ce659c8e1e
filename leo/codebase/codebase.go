// Package codebase keeps parsed expression files in memory and serves their
// diagnostics to the CLI, the file watcher and the language server.
package codebase

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/zkc/leo/ast"
	"github.com/dhamidi/zkc/leo/parser"
	"github.com/dhamidi/zkc/leo/span"
)

// Ext is the extension of source files picked up by ScanAll and the watcher.
const Ext = ".leo"

var log = commonlog.GetLogger("zkc.codebase")

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	opts    []parser.Option
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path        string
	Source      *span.Source
	Exprs       []ast.Expression
	Diagnostics []Diagnostic
}

// HasErrors reports whether any diagnostic of f is an error.
func (f *FileInfo) HasErrors() bool {
	for _, d := range f.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// New creates an empty codebase rooted at rootDir. opts apply to every
// file parsed.
func New(rootDir string, opts ...parser.Option) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		opts:    opts,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll parses every source file below the root, skipping hidden
// directories.
func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != c.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == Ext {
			if err := c.ScanFile(path); err != nil {
				log.Warningf("scan %s: %s", path, err)
			}
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile replaces the content of path and re-parses it.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	src := span.NewSource(path, string(content))
	exprs, diags := Diagnostics(src, c.opts...)
	f := &FileInfo{
		Path:        path,
		Source:      src,
		Exprs:       exprs,
		Diagnostics: diags,
	}
	log.Debugf("parsed %s: %d expressions, %d diagnostics", path, len(exprs), len(diags))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = f
	return f
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns all known files ordered by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	files := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}
