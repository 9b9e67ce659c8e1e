package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/zkc/leo/codebase"
)

func newCheckCmd(flags *globalFlags) *cobra.Command {
	var warningsAsErrors bool

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Report parse errors and core instruction misuse",
		Long: `Report diagnostics for every source file below a directory.

Defaults to the current directory. Errors make the command fail;
warnings only do so with --strict.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			cb := codebase.New(root, flags.parserOptions()...)
			info, err := os.Stat(root)
			if err != nil {
				return fmt.Errorf("stat %s: %w", root, err)
			}
			if info.IsDir() {
				if err := cb.ScanAll(); err != nil {
					return fmt.Errorf("scan %s: %w", root, err)
				}
			} else if err := cb.ScanFile(root); err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}

			errCount, warnCount := 0, 0
			for _, f := range cb.Files() {
				for _, d := range f.Diagnostics {
					fmt.Print(codebase.FormatDiagnostic(f.Source, d))
					if d.Severity == codebase.SeverityError {
						errCount++
					} else {
						warnCount++
					}
				}
			}

			if errCount > 0 || (warningsAsErrors && warnCount > 0) {
				return fmt.Errorf("%d error(s), %d warning(s)", errCount, warnCount)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&warningsAsErrors, "strict", false, "fail on warnings too")

	return cmd
}
