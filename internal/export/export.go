// Package export renders diagnosis reports for presenters: a terminal
// summary, JSON, YAML and SARIF 2.1.0.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"codehunter/internal/diagnosis"
)

// Format is an output format.
type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatSARIF Format = "sarif"
)

// Formats lists every supported format.
var Formats = []Format{FormatHuman, FormatJSON, FormatYAML, FormatSARIF}

// ParseFormat parses a format name, case-insensitively. "yml" is accepted
// for YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHuman, FormatJSON, FormatYAML, FormatSARIF:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatHuman, nil
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

// Write renders a *diagnosis.Report or *diagnosis.FullReport to w.
func Write(w io.Writer, report any, format Format) error {
	switch report.(type) {
	case *diagnosis.Report, *diagnosis.FullReport:
	default:
		return fmt.Errorf("unsupported report type %T", report)
	}

	switch format {
	case FormatHuman:
		return writeHuman(w, report)
	case FormatJSON:
		return writeJSON(w, report)
	case FormatYAML:
		return writeYAML(w, report)
	case FormatSARIF:
		return writeSARIF(w, report)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeJSON(w io.Writer, report any) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func writeYAML(w io.Writer, report any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

// baseReport returns the findings and health part of either report type.
func baseReport(report any) *diagnosis.Report {
	switch r := report.(type) {
	case *diagnosis.Report:
		return r
	case *diagnosis.FullReport:
		return &r.Report
	}
	return nil
}
