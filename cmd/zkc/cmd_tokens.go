package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/zkc/leo/parser"
)

func newTokensCmd() *cobra.Command {
	var includeComments bool

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a source file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args)
			if err != nil {
				return err
			}

			invalid := 0
			for _, tok := range parser.Tokenize(src, includeComments) {
				if tok.Kind == parser.TokenError {
					invalid++
				}
				fmt.Printf("%d:%d\t%s\t%q\n", tok.Span.LineStart, tok.Span.ColStart, tok.Kind, tok.Span.Content)
			}
			if invalid > 0 {
				return fmt.Errorf("%d invalid token(s)", invalid)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeComments, "comments", false, "include comment tokens")

	return cmd
}
