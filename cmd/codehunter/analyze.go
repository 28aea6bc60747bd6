package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"codehunter/internal/config"
	"codehunter/internal/diagnosis"
	"codehunter/internal/errors"
	"codehunter/internal/export"
	"codehunter/internal/findings"
	"codehunter/internal/health"
	"codehunter/internal/history"
	"codehunter/internal/walker"
)

// analyzeFlags are shared by diagnose and report.
type analyzeFlags struct {
	format   string
	output   string
	sort     bool
	failOn   string
	record   bool
	progress bool
	maxLines int
	exclude  []string
}

func (f *analyzeFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.format, "format", "f", "", "Output format: human, json, yaml or sarif (default from config)")
	flags.StringVarP(&f.output, "output", "o", "", "Write the report to a file instead of stdout")
	flags.BoolVar(&f.sort, "sort", false, "Order findings by severity instead of discovery order")
	flags.StringVar(&f.failOn, "fail-on", "", "Exit with code 3 when the status is at least warning or critical")
	flags.BoolVar(&f.record, "record", false, "Record the run in the history database")
	flags.BoolVar(&f.progress, "progress", false, "Show a progress bar on stderr")
	flags.IntVar(&f.maxLines, "max-lines", 0, "Largest function not reported as too large (default from config)")
	flags.StringSliceVar(&f.exclude, "exclude", nil, "Additional glob patterns to skip")
}

// session is one analysis invocation with its resolved settings.
type session struct {
	root   string
	cfg    *config.Config
	format export.Format
	flags  *analyzeFlags
	logger *slog.Logger
	stderr io.Writer
}

func projectRoot(args []string) string {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return root
}

func newSession(cmd *cobra.Command, g *globalFlags, f *analyzeFlags, args []string) (*session, error) {
	root := projectRoot(args)

	cfg, err := config.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("max-lines") {
		cfg.Analysis.MaxFunctionLines = f.maxLines
	}
	cfg.Walker.Exclude = append(cfg.Walker.Exclude, f.exclude...)
	if err := cfg.Validate(); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "invalid options", err)
	}

	name := cfg.Output.Format
	if f.format != "" {
		name = f.format
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return nil, errors.New(errors.ExportFailed, "unsupported output format", err)
	}

	if f.failOn != "" {
		if _, err := parseThreshold(f.failOn); err != nil {
			return nil, errors.New(errors.ConfigInvalid, "invalid --fail-on value", err)
		}
	}

	return &session{
		root:   root,
		cfg:    cfg,
		format: format,
		flags:  f,
		logger: g.logger(cmd.ErrOrStderr(), cfg),
		stderr: cmd.ErrOrStderr(),
	}, nil
}

func (s *session) options() diagnosis.Options {
	return diagnosis.Options{
		MaxFunctionLines: s.cfg.Analysis.MaxFunctionLines,
		IgnoredFunctions: s.cfg.Analysis.IgnoredFunctions,
		Walker: walker.Options{
			IgnoreDirs: s.cfg.Walker.IgnoreDirs,
			Exclude:    s.cfg.Walker.Exclude,
		},
		Logger: s.logger,
	}
}

// analyze runs diagnose or report end to end: run, sort, render, record
// and apply the failure threshold.
func (s *session) analyze(ctx context.Context, out io.Writer, full bool) error {
	opts := s.options()
	var bar *progress
	if s.flags.progress {
		bar = newProgress(s.stderr)
		opts.Progress = bar.update
	}

	var (
		report any
		base   *diagnosis.Report
	)
	if full {
		r, err := diagnosis.RunFull(ctx, s.root, opts)
		if err != nil {
			return err
		}
		report, base = r, &r.Report
	} else {
		r, err := diagnosis.Run(ctx, s.root, opts)
		if err != nil {
			return err
		}
		report, base = r, r
	}
	bar.finish()

	if s.flags.sort {
		base.Findings = findings.SortBySeverity(base.Findings)
	}

	if err := s.write(out, report); err != nil {
		return err
	}

	if s.flags.record || s.cfg.History.Enabled {
		if err := s.record(base); err != nil {
			return err
		}
	}

	if s.flags.failOn != "" {
		threshold, _ := parseThreshold(s.flags.failOn)
		if base.Status.AtLeast(threshold) {
			return &thresholdError{status: base.Status, threshold: threshold, score: base.Score}
		}
	}
	return nil
}

func (s *session) write(stdout io.Writer, report any) error {
	if s.flags.output == "" {
		if err := export.Write(stdout, report, s.format); err != nil {
			return errors.New(errors.ExportFailed, "failed to render report", err)
		}
		return nil
	}

	file, err := os.Create(s.flags.output)
	if err != nil {
		return errors.New(errors.ExportFailed, fmt.Sprintf("cannot create %s", s.flags.output), err)
	}
	if err := export.Write(file, report, s.format); err != nil {
		_ = file.Close()
		return errors.New(errors.ExportFailed, "failed to render report", err)
	}
	if err := file.Close(); err != nil {
		return errors.New(errors.ExportFailed, fmt.Sprintf("cannot write %s", s.flags.output), err)
	}
	s.logger.Info("Report written", "path", s.flags.output, "format", s.format)
	return nil
}

func (s *session) record(report *diagnosis.Report) error {
	store, err := history.Open(s.cfg.HistoryPath(s.root), s.logger)
	if err != nil {
		return errors.New(errors.HistoryUnavailable, "cannot open history database", err)
	}
	defer func() { _ = store.Close() }()

	id, err := store.Record(report)
	if err != nil {
		return errors.New(errors.HistoryUnavailable, "cannot record run", err)
	}
	s.logger.Info("Run recorded", "id", id, "score", report.Score)
	return nil
}

// parseThreshold accepts the statuses that can fail a run.
func parseThreshold(s string) (health.Status, error) {
	switch status := health.Status(strings.ToUpper(strings.TrimSpace(s))); status {
	case health.StatusWarning, health.StatusCritical:
		return status, nil
	}
	return "", fmt.Errorf("expected warning or critical, got %q", s)
}
