package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/zkc/leo/codebase"
	"github.com/dhamidi/zkc/leo/parser"
	"github.com/dhamidi/zkc/leo/span"
)

func newScanCmd(flags *globalFlags) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Parse every source file below a directory and summarize the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(args[0], timeout, flags.parserOptions())
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "timeout per file")

	return cmd
}

func runScan(path string, timeout time.Duration, opts []parser.Option) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	var files []string
	if info.IsDir() {
		err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() && p != path && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			if !info.IsDir() && filepath.Ext(p) == codebase.Ext {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
	} else {
		files = []string{path}
	}

	exprCount := 0
	var failures []string
	for _, file := range files {
		n, err := scanFile(file, timeout, opts)
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		exprCount += n
	}

	fmt.Printf("\n=== SCAN COMPLETE ===\n")
	fmt.Printf("Files: %d\n", len(files))
	fmt.Printf("Expressions: %d\n", exprCount)
	fmt.Printf("Errors: %d\n", len(failures))
	for _, f := range failures {
		fmt.Printf("  - %s\n", f)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d file(s) failed to parse", len(failures))
	}
	return nil
}

func scanFile(path string, timeout time.Duration, opts []parser.Option) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		exprs, err := parser.ParseExpressions(span.NewSource(path, string(data)), opts...)
		done <- result{len(exprs), err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return 0, fmt.Errorf("parse %s: %v", path, r.err)
		}
		fmt.Printf("[OK] %s (%d expressions)\n", path, r.n)
		return r.n, nil
	case <-ctx.Done():
		return 0, fmt.Errorf("timeout parsing %s", path)
	}
}
