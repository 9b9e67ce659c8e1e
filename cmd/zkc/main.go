package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/zkc/leo/parser"
	"github.com/dhamidi/zkc/leo/span"

	_ "github.com/tliron/commonlog/simple"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbosity     int
	maxDepth      int
	noCircuitInit bool
}

func (g *globalFlags) parserOptions() []parser.Option {
	opts := []parser.Option{parser.WithMaxDepth(g.maxDepth)}
	if g.noCircuitInit {
		opts = append(opts, parser.DisallowCircuitInit())
	}
	return opts
}

func main() {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "zkc",
		Short:         "Parse, format and check Leo expressions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(flags.verbosity, nil)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().IntVar(&flags.maxDepth, "max-depth", envInt("ZKC_MAX_DEPTH", parser.DefaultMaxDepth), "maximum expression nesting depth")
	rootCmd.PersistentFlags().BoolVar(&flags.noCircuitInit, "no-circuit-init", false, "treat '{' after an identifier as the end of the expression")

	rootCmd.AddCommand(newParseCmd(flags))
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newScanCmd(flags))
	rootCmd.AddCommand(newFmtCmd(flags))
	rootCmd.AddCommand(newCheckCmd(flags))
	rootCmd.AddCommand(newWatchCmd(flags))
	rootCmd.AddCommand(newLSPCmd(flags))
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zkc:", err)
		os.Exit(1)
	}
}

func envInt(name string, fallback int) int {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// readSource reads the named file, or stdin when no file or "-" is given.
func readSource(args []string) (*span.Source, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return span.NewSource("<stdin>", string(data)), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return span.NewSource(args[0], string(data)), nil
}
