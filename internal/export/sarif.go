package export

import (
	"io"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"codehunter/internal/findings"
	"codehunter/internal/graph"
)

const informationURI = "https://github.com/codehunter/codehunter"

// ruleDescriptions describe each rule in the SARIF driver.
var ruleDescriptions = map[findings.Rule]string{
	findings.RuleParseFailure:      "The file could not be parsed as Python source.",
	findings.RuleUnusedImport:      "An imported name is never referenced.",
	findings.RuleDuplicateImport:   "A name is imported more than once in the same file.",
	findings.RuleFunctionLocal:     "An import statement appears inside a function body.",
	findings.RuleAnnotationOnly:    "An imported name is referenced only in type annotations.",
	findings.RuleWildcardImport:    "A wildcard import hides which names are used.",
	findings.RuleFunctionTooLarge:  "A function spans too many lines.",
	findings.RuleDuplicateFunction: "The same function is defined identically in several places.",
	findings.RuleDivergingFunction: "Functions with the same name have different implementations.",
	findings.RuleCircularImport:    "Modules import each other in a cycle.",
	findings.RuleEmptyFile:         "A Python file contains no code beyond imports and comments.",
	findings.RuleEmptyFolder:       "A directory contains no files.",
}

func sarifLevel(s findings.Severity) string {
	switch s {
	case findings.Critical:
		return "error"
	case findings.Warning:
		return "warning"
	case findings.Info:
		return "note"
	default:
		return "none"
	}
}

func writeSARIF(w io.Writer, report any) error {
	base := baseReport(report)

	sarifReport, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}

	run := sarif.NewRunWithInformationURI("CodeHunter", informationURI)
	ruleLevels := make(map[string]string)
	for _, f := range base.Findings {
		ruleID := string(f.Rule)
		if ruleID == "" {
			ruleID = "codehunter"
		}
		description := ruleDescriptions[f.Rule]
		if description == "" {
			description = f.Message
		}
		rule := run.AddRule(ruleID)
		if level, seen := ruleLevels[ruleID]; !seen {
			ruleLevels[ruleID] = sarifLevel(f.Level)
			rule.WithDescription(description).
				WithDefaultConfiguration(&sarif.ReportingConfiguration{
					Level: sarifLevel(f.Level),
				})
		} else if level != sarifLevel(f.Level) {
			// Results carry their own level; a rule reported at several
			// levels has no single default.
			rule.DefaultConfiguration = nil
		}

		message := f.Message
		if f.Suggestion != "" {
			message += ". " + f.Suggestion
		}

		// Cycles name several files; the first one anchors the result.
		file := f.File
		if f.Rule == findings.RuleCircularImport {
			message = f.Message + ": " + f.File
			file, _, _ = strings.Cut(f.File, graph.CycleSeparator)
		}

		physical := sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().WithUri(file))
		if f.Line > 0 {
			physical = physical.WithRegion(sarif.NewRegion().WithStartLine(int(f.Line)))
		}

		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(message)).
			WithLevel(sarifLevel(f.Level)).
			WithLocations([]*sarif.Location{sarif.NewLocation().WithPhysicalLocation(physical)})
		run.AddResult(result)
	}
	sarifReport.AddRun(run)

	return sarifReport.PrettyWrite(w)
}
