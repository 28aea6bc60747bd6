// Package diagnosis runs every analyzer over a project and aggregates the
// findings into a health report.
package diagnosis

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"codehunter/internal/emptiness"
	"codehunter/internal/errors"
	"codehunter/internal/findings"
	"codehunter/internal/functions"
	"codehunter/internal/graph"
	"codehunter/internal/health"
	"codehunter/internal/imports"
	"codehunter/internal/parser"
	"codehunter/internal/profile"
	"codehunter/internal/slogutil"
	"codehunter/internal/walker"
)

// ProgressFunc is called after each source file has been analyzed.
type ProgressFunc func(done, total int, file string)

// Options configures one diagnosis run.
type Options struct {
	// MaxFunctionLines is the largest function not reported as too large.
	MaxFunctionLines int
	// IgnoredFunctions are names never indexed for size or duplication.
	IgnoredFunctions []string
	Walker           walker.Options
	Logger           *slog.Logger
	Progress         ProgressFunc
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{
		MaxFunctionLines: functions.DefaultMaxLines,
		IgnoredFunctions: functions.DefaultIgnored,
	}
}

// Report is the result presenters render: every finding in discovery order
// plus the health fields derived from them.
type Report struct {
	Root          string             `json:"-" yaml:"-"`
	Findings      []findings.Finding `json:"findings" yaml:"findings"`
	health.Report `yaml:",inline"`
}

// FullReport adds the project profile, recommendations and an import
// graph summary.
type FullReport struct {
	ProjectPath     string          `json:"project_path" yaml:"project_path"`
	Profile         profile.Profile `json:"profile" yaml:"profile"`
	Report          `yaml:",inline"`
	Recommendations []string      `json:"recommendations" yaml:"recommendations"`
	Graph           graph.Summary `json:"graph" yaml:"graph"`
}

// Run diagnoses the project at root. The only errors are an invalid root,
// a build without the parser, an invalid walker configuration, a walk
// failure and cancellation; every per-file problem becomes a finding.
func Run(ctx context.Context, root string, opts Options) (*Report, error) {
	r, err := newRun(root, opts)
	if err != nil {
		return nil, err
	}
	if err := r.execute(ctx); err != nil {
		return nil, err
	}
	return r.report(), nil
}

// RunFull diagnoses the project at root and builds the full report.
func RunFull(ctx context.Context, root string, opts Options) (*FullReport, error) {
	r, err := newRun(root, opts)
	if err != nil {
		return nil, err
	}
	r.profile = profile.NewBuilder()
	if err := r.execute(ctx); err != nil {
		return nil, err
	}

	rep := r.report()
	return &FullReport{
		ProjectPath:     r.root,
		Profile:         r.profile.Build(r.root),
		Report:          *rep,
		Recommendations: health.Recommendations(rep.Score),
		Graph:           r.graph.Graph().Summarize(r.cycles),
	}, nil
}

// run owns all state of one diagnosis invocation.
type run struct {
	root   string
	opts   Options
	logger *slog.Logger

	collector  *findings.Collector
	index      *functions.Index
	analyzer   *functions.Analyzer
	classifier *imports.Classifier
	graph      *graph.Builder
	profile    *profile.Builder
	cycles     []graph.Cycle
}

func newRun(root string, opts Options) (*run, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.New(errors.InvalidProjectPath, fmt.Sprintf("cannot resolve %s", root), err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.New(errors.InvalidProjectPath, fmt.Sprintf("project path %s does not exist", abs), err)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.InvalidProjectPath, "project path %s is not a directory", abs)
	}

	if !parser.IsAvailable() {
		return nil, errors.New(errors.ParserUnavailable, "this build cannot parse Python", parser.ErrNoCGO)
	}

	return &run{
		root:       abs,
		opts:       opts,
		logger:     slogutil.OrDiscard(opts.Logger),
		collector:  findings.NewCollector(abs),
		index:      functions.NewIndex(),
		analyzer:   functions.NewAnalyzer(opts.MaxFunctionLines, opts.IgnoredFunctions),
		classifier: imports.NewClassifier(abs),
	}, nil
}

func (r *run) execute(ctx context.Context) error {
	start := time.Now()

	w, err := walker.New(r.root, r.opts.Walker)
	if err != nil {
		return errors.New(errors.ConfigInvalid, "invalid walker configuration", err)
	}
	entries, err := w.Entries(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.New(errors.WalkFailed, fmt.Sprintf("cannot walk %s", r.root), err)
	}

	files := walker.SourceFiles(entries)
	r.graph = graph.NewBuilder(r.root, files, r.logger)
	r.logger.Debug("Walked project",
		"root", r.root,
		"directories", len(entries),
		"files", len(files),
	)

	p := parser.NewParser()
	for i, rel := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.analyzeFile(ctx, p, rel)
		if r.opts.Progress != nil {
			r.opts.Progress(i+1, len(files), rel)
		}
	}

	functions.DetectDuplicates(r.collector, r.index)
	emptiness.CheckFiles(r.collector, r.root, entries)
	emptiness.CheckFolders(r.collector, r.root, entries)

	r.cycles = r.graph.Graph().FindCycles()
	graph.ReportCycles(r.collector, r.cycles)

	r.logger.Info("Diagnosis complete",
		"root", r.root,
		"files", len(files),
		"findings", r.collector.Len(),
		"cycles", len(r.cycles),
		"duration", time.Since(start),
	)
	return nil
}

// analyzeFile runs the per-file analyzers. A file that cannot be parsed
// yields one WARNING and contributes nothing else.
func (r *run) analyzeFile(ctx context.Context, p *parser.Parser, rel string) {
	path := filepath.Join(r.root, filepath.FromSlash(rel))
	if r.profile != nil {
		r.profile.AddFile()
	}

	unit, err := p.ParseFile(ctx, path)
	if err != nil {
		category := parser.CategoryOf(err)
		r.logger.Warn("Could not analyze file",
			"file", rel,
			"category", category,
			"error", err,
		)
		r.collector.Addf(findings.RuleParseFailure, findings.Warning, path, 0,
			"Check the file's syntax or encoding.",
			"could not analyze file (%s)", category)
		return
	}
	defer unit.Close()

	r.logger.Debug("Analyzing file", "file", rel)
	imports.Check(r.collector, unit, r.classifier)
	r.analyzer.Analyze(r.collector, r.index, unit)
	r.graph.AddImports(rel, unit.Imports())
	if r.profile != nil {
		r.profile.AddUnit(unit)
	}
}

func (r *run) report() *Report {
	fs := r.collector.Findings()
	if fs == nil {
		fs = []findings.Finding{}
	}
	return &Report{
		Root:     r.root,
		Findings: fs,
		Report:   health.Calculate(fs),
	}
}
