package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"codehunter/internal/config"
	"codehunter/internal/errors"
	"codehunter/internal/export"
	"codehunter/internal/history"
)

type historyFlags struct {
	limit  int
	prune  int
	format string
	path   string
}

func newHistoryCmd(g *globalFlags) *cobra.Command {
	f := &historyFlags{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded diagnosis runs",
		Long: `List the runs recorded with --record (or history.enabled), newest first.

Examples:
  codehunter history
  codehunter history --limit 5 --format json
  codehunter history --prune 20
  codehunter history show <run-id> --format sarif`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, ok, err := openHistory(cmd, g, f)
			if err != nil || !ok {
				return err
			}
			defer func() { _ = store.Close() }()

			if cmd.Flags().Changed("prune") {
				removed, err := store.Prune(f.prune)
				if err != nil {
					return errors.New(errors.HistoryUnavailable, "cannot prune history", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d runs.\n", removed)
				return nil
			}

			runs, err := store.List(f.limit)
			if err != nil {
				return errors.New(errors.HistoryUnavailable, "cannot list runs", err)
			}
			return writeRuns(cmd.OutOrStdout(), runs, f.format)
		},
	}
	cmd.PersistentFlags().StringVar(&f.path, "path", ".", "Project root whose history is read")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 10, "Number of runs to show (0 for all)")
	cmd.Flags().IntVar(&f.prune, "prune", 0, "Delete all but the newest N runs")
	cmd.Flags().StringVarP(&f.format, "format", "f", "human", "Output format: human or json")

	cmd.AddCommand(newHistoryShowCmd(g, f))
	return cmd
}

func newHistoryShowCmd(g *globalFlags, f *historyFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the report of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := export.ParseFormat(format)
			if err != nil {
				return errors.New(errors.ExportFailed, "unsupported output format", err)
			}

			store, ok, err := openHistory(cmd, g, f)
			if err != nil {
				return err
			}
			if !ok {
				return errors.Newf(errors.HistoryUnavailable, "run %s not found", args[0])
			}
			defer func() { _ = store.Close() }()

			report, err := store.Get(args[0])
			if err != nil {
				return errors.New(errors.HistoryUnavailable, "cannot load run", err)
			}
			if err := export.Write(cmd.OutOrStdout(), report, parsed); err != nil {
				return errors.New(errors.ExportFailed, "failed to render report", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "human", "Output format: human, json, yaml or sarif")
	return cmd
}

// openHistory opens the project's history database. ok is false, with a
// message printed, when nothing has been recorded yet.
func openHistory(cmd *cobra.Command, g *globalFlags, f *historyFlags) (*history.Store, bool, error) {
	root := projectRoot([]string{f.path})
	cfg, err := config.LoadConfig(root)
	if err != nil {
		return nil, false, err
	}

	dbPath := cfg.HistoryPath(root)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		fmt.Fprintf(cmd.OutOrStdout(), "History database: %s\n", dbPath)
		return nil, false, nil
	}

	store, err := history.Open(dbPath, g.logger(cmd.ErrOrStderr(), cfg))
	if err != nil {
		return nil, false, errors.New(errors.HistoryUnavailable, "cannot open history database", err)
	}
	return store, true, nil
}

func writeRuns(w io.Writer, runs []history.Run, format string) error {
	switch format {
	case "json":
		if runs == nil {
			runs = []history.Run{}
		}
		data, err := json.MarshalIndent(runs, "", "  ")
		if err != nil {
			return errors.New(errors.ExportFailed, "failed to marshal runs", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "human", "":
	default:
		return errors.Newf(errors.ExportFailed, "unsupported format: %s", format)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSCORE\tSTATUS\tCRITICAL\tWARNINGS\tINFO")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%d\t%d\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Score, r.Status,
			r.Critical, r.Warnings, r.Info)
	}
	return tw.Flush()
}
