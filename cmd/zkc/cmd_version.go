package main

import (
	"fmt"

	semver "github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
)

func buildVersion() (*semver.Version, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("invalid build version %q: %w", version, err)
	}
	return v, nil
}

func newVersionCmd() *cobra.Command {
	var constraint string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := buildVersion()
			if err != nil {
				return err
			}
			if constraint != "" {
				c, err := semver.NewConstraint(constraint)
				if err != nil {
					return fmt.Errorf("parse constraint: %w", err)
				}
				if ok, errs := c.Validate(v); !ok {
					return fmt.Errorf("version %s does not satisfy %s: %v", v, constraint, errs)
				}
			}
			fmt.Println(v)
			return nil
		},
	}

	cmd.Flags().StringVar(&constraint, "require", "", "fail unless the version satisfies this constraint")

	return cmd
}
