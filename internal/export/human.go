package export

import (
	"fmt"
	"io"
	"strings"

	"codehunter/internal/diagnosis"
	"codehunter/internal/findings"
	"codehunter/internal/health"
	"codehunter/internal/version"
)

func statusIcon(s health.Status) string {
	switch s {
	case health.StatusHealthy:
		return "✓"
	case health.StatusWarning:
		return "⚠"
	default:
		return "✗"
	}
}

func levelIcon(s findings.Severity) string {
	switch s {
	case findings.Critical:
		return "✗"
	case findings.Warning:
		return "⚠"
	default:
		return "ℹ"
	}
}

func writeHuman(w io.Writer, report any) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("CodeHunter v%s\n", version.Version))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	full, isFull := report.(*diagnosis.FullReport)
	if isFull {
		writeProfile(&b, full)
	}

	base := baseReport(report)
	b.WriteString(fmt.Sprintf("%s Health: %d/100 (%s)\n", statusIcon(base.Status), base.Score, base.Status))
	b.WriteString(fmt.Sprintf("  Critical: %d  Warnings: %d  Info: %d\n\n", base.Critical, base.Warnings, base.Info))

	if len(base.Findings) == 0 {
		b.WriteString("No findings.\n")
	} else {
		b.WriteString(fmt.Sprintf("Findings (%d):\n", len(base.Findings)))
		for _, f := range base.Findings {
			location := f.File
			if f.Line > 0 {
				location = fmt.Sprintf("%s:%d", f.File, f.Line)
			}
			b.WriteString(fmt.Sprintf("%s [%s] %s\n", levelIcon(f.Level), f.Level, f.Message))
			b.WriteString(fmt.Sprintf("    %s\n", location))
			if f.Suggestion != "" {
				b.WriteString(fmt.Sprintf("    → %s\n", f.Suggestion))
			}
		}
	}

	if isFull {
		if len(full.Recommendations) > 0 {
			b.WriteString("\nRecommendations:\n")
			for _, r := range full.Recommendations {
				b.WriteString(fmt.Sprintf("  - %s\n", r))
			}
		}
		writeGraph(&b, full)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeProfile(b *strings.Builder, full *diagnosis.FullReport) {
	p := full.Profile
	name := p.Name
	if p.Version != "" {
		name += " " + p.Version
	}
	b.WriteString(fmt.Sprintf("Project: %s\n", name))
	b.WriteString(fmt.Sprintf("  Path: %s\n", full.ProjectPath))
	b.WriteString(fmt.Sprintf("  Type: %s\n", p.Type))
	b.WriteString(fmt.Sprintf("  Files: %d  Functions: %d  Classes: %d\n\n",
		p.Structure.PythonFiles, p.Structure.Functions, p.Structure.Classes))
	b.WriteString(p.Description + "\n\n")
}

func writeGraph(b *strings.Builder, full *diagnosis.FullReport) {
	g := full.Graph
	b.WriteString(fmt.Sprintf("\nImport graph: %d modules, %d edges, %d cycles\n", g.Modules, g.Edges, g.Cycles))
	for _, group := range g.StronglyConnected {
		b.WriteString(fmt.Sprintf("  Tangle: %s\n", strings.Join(group, ", ")))
	}
	if len(g.Central) > 0 {
		b.WriteString("  Most depended upon:\n")
		for _, r := range g.Central {
			b.WriteString(fmt.Sprintf("    %-40s %.3f\n", r.Module, r.Score))
		}
	}
}
