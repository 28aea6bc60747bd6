package main

import (
	"github.com/spf13/cobra"
)

func newDiagnoseCmd(g *globalFlags) *cobra.Command {
	f := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "diagnose [path]",
		Short: "Diagnose a Python project",
		Long: `Run every check over the project (default: current directory) and print
the findings with the health score.

Examples:
  codehunter diagnose
  codehunter diagnose ./service --format json --output report.json
  codehunter diagnose --sort --fail-on critical`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, g, f, args)
			if err != nil {
				return err
			}
			return s.analyze(cmd.Context(), cmd.OutOrStdout(), false)
		},
	}
	f.register(cmd)
	return cmd
}
