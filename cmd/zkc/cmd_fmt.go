package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/zkc/format"
	"github.com/dhamidi/zkc/leo/codebase"
)

func newFmtCmd(flags *globalFlags) *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Pretty-print a source file, preserving comments",
		Long: `Pretty-print a file of ';'-separated expressions to stdout.

If a file is provided, it must have a .leo extension.
If no file is provided, reads source from stdin.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && fmtOverwrite {
				return fmt.Errorf("-w requires a file argument")
			}
			if len(args) == 1 {
				if ext := filepath.Ext(args[0]); ext != codebase.Ext {
					return fmt.Errorf("expected %s file, got %s", codebase.Ext, ext)
				}
			}

			src, err := readSource(args)
			if err != nil {
				return err
			}

			output, err := format.PrettyPrintLeo([]byte(src.Text), src.Path, flags.parserOptions()...)
			if err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if fmtOverwrite {
				return os.WriteFile(src.Path, output, 0644)
			}
			_, err = os.Stdout.Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
