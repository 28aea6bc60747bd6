package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"codehunter/internal/config"
	"codehunter/internal/slogutil"
	"codehunter/internal/version"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbosity int
	quiet     bool
	logFormat string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "codehunter",
		Short: "CodeHunter - structural health checks for Python projects",
		Long: `CodeHunter walks a Python project and reports structural problems:
unused, duplicated and misplaced imports, oversized and duplicated functions,
circular imports, and empty files or folders. Every finding costs health
points; the result is a 0-100 score with a HEALTHY, WARNING or CRITICAL status.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("codehunter version {{.Version}}\n")

	cmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	cmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "Suppress all logs")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "Log format: human or json (default from config)")

	cmd.AddCommand(
		newDiagnoseCmd(g),
		newReportCmd(g),
		newHistoryCmd(g),
		newInitCmd(),
		newVersionCmd(),
	)
	return cmd
}

// logger builds the stderr logger. Verbosity flags win over the configured
// level; without flags the configured level applies.
func (g *globalFlags) logger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := slogutil.LevelFromVerbosity(g.verbosity, g.quiet)
	format := slogutil.FormatHuman
	if cfg != nil {
		if g.verbosity == 0 && !g.quiet {
			level = slogutil.LevelFromString(cfg.Logging.Level)
		}
		format = slogutil.Format(cfg.Logging.Format)
	}
	if g.logFormat != "" {
		format = slogutil.Format(g.logFormat)
	}
	return slogutil.NewFormattedLogger(w, level, format)
}
