package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dhamidi/zkc/leo/codebase"
)

func newWatchCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-check source files as they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			cb := codebase.New(root, flags.parserOptions()...)
			if err := cb.ScanAll(); err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}
			for _, f := range cb.Files() {
				report(f.Path, f)
			}

			w, err := codebase.NewFileWatcher(cb)
			if err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			w.OnChange = report
			if err := w.Start(); err != nil {
				return fmt.Errorf("watch %s: %w", root, err)
			}
			fmt.Printf("watching %s\n", root)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return w.Stop()
		},
	}
}

func report(path string, f *codebase.FileInfo) {
	if f == nil {
		fmt.Printf("[REMOVED] %s\n", path)
		return
	}
	if len(f.Diagnostics) == 0 {
		fmt.Printf("[OK] %s (%d expressions)\n", path, len(f.Exprs))
		return
	}
	for _, d := range f.Diagnostics {
		fmt.Print(codebase.FormatDiagnostic(f.Source, d))
	}
}
