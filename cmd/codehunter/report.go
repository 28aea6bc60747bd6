package main

import (
	"github.com/spf13/cobra"
)

func newReportCmd(g *globalFlags) *cobra.Command {
	f := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "report [path]",
		Short: "Produce the full project report",
		Long: `Diagnose the project and add its profile (name, type, structure counts),
recommendations and an import graph summary.

Examples:
  codehunter report
  codehunter report --format yaml --output report.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, g, f, args)
			if err != nil {
				return err
			}
			return s.analyze(cmd.Context(), cmd.OutOrStdout(), true)
		},
	}
	f.register(cmd)
	return cmd
}
