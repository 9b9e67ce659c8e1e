package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/zkc/format"
	"github.com/dhamidi/zkc/leo/ast"
	"github.com/dhamidi/zkc/leo/parser"
)

func newParseCmd(flags *globalFlags) *cobra.Command {
	var outputFormat string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse ';'-separated expressions and dump the syntax tree",
		Long: `Parse a file of ';'-separated expressions and dump the syntax tree.

Reads from stdin when no file is given. Parse errors are written to
stderr (as JSON with --format json) and make the command fail.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args)
			if err != nil {
				return err
			}

			exprs, parseErr := parser.ParseExpressions(src, flags.parserOptions()...)

			switch outputFormat {
			case "json":
				if err := format.NewASTJSONEncoder(os.Stdout).EncodeAll(exprs); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				if parseErr != nil {
					if err := format.NewErrorJSONEncoder(os.Stderr).Encode(parseErr); err != nil {
						return fmt.Errorf("encode errors: %w", err)
					}
				}
			case "tree":
				for _, expr := range exprs {
					if includePositions {
						fmt.Print(ast.SprintWithPositions(expr))
					} else {
						fmt.Print(ast.Sprint(expr))
					}
				}
			case "lines":
				enc := format.NewLineEncoder(os.Stdout)
				for _, expr := range exprs {
					if err := enc.Encode(expr); err != nil {
						return fmt.Errorf("encode lines: %w", err)
					}
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if parseErr != nil {
				if outputFormat != "json" {
					fmt.Fprintln(os.Stderr, parseErr)
				}
				return fmt.Errorf("parse %s: %d error(s)", src.Path, errorCount(parseErr))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, tree, lines)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include spans in tree output")

	return cmd
}

func errorCount(err error) int {
	if list, ok := err.(parser.ErrorList); ok {
		return len(list)
	}
	return 1
}
