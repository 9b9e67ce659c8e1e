package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/zkc/leo/codebase"
)

func newLSPCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := buildVersion()
			if err != nil {
				return err
			}
			server := codebase.NewLSPServer(v, flags.parserOptions()...)
			return server.RunStdio()
		},
	}
}
