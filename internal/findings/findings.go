// Package findings defines the uniform unit of analyzer output.
package findings

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"codehunter/internal/paths"
)

// Severity is the level of a finding.
type Severity string

const (
	Critical Severity = "CRITICAL"
	Warning  Severity = "WARNING"
	Info     Severity = "INFO"
)

// Severities lists every level from most to least severe.
var Severities = []Severity{Critical, Warning, Info}

// Penalty is the number of health points one finding of this level costs.
func (s Severity) Penalty() int {
	switch s {
	case Critical:
		return 20
	case Warning:
		return 5
	case Info:
		return 1
	default:
		return 0
	}
}

// ParseSeverity parses a level name case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToUpper(strings.TrimSpace(s))) {
	case Critical:
		return Critical, nil
	case Warning:
		return Warning, nil
	case Info:
		return Info, nil
	default:
		return "", fmt.Errorf("unknown severity %q", s)
	}
}

// Line is a 1-based source line. Zero means the whole file; NoLine means a
// location does not apply (e.g. a cycle spanning several files).
type Line int

// NoLine renders as "-".
const NoLine Line = -1

func (l Line) String() string {
	if l == NoLine {
		return "-"
	}
	return strconv.Itoa(int(l))
}

// MarshalJSON encodes NoLine as "-" and every other line as a number.
func (l Line) MarshalJSON() ([]byte, error) {
	if l == NoLine {
		return []byte(`"-"`), nil
	}
	return []byte(strconv.Itoa(int(l))), nil
}

// UnmarshalJSON accepts a number or "-".
func (l *Line) UnmarshalJSON(data []byte) error {
	if string(data) == `"-"` {
		*l = NoLine
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid line %s: %w", data, err)
	}
	*l = Line(n)
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (l Line) MarshalYAML() (interface{}, error) {
	if l == NoLine {
		return "-", nil
	}
	return int(l), nil
}

// Rule identifies the check that produced a finding.
type Rule string

const (
	RuleParseFailure      Rule = "parse-failure"
	RuleUnusedImport      Rule = "unused-import"
	RuleDuplicateImport   Rule = "duplicate-import"
	RuleFunctionLocal     Rule = "function-local-import"
	RuleAnnotationOnly    Rule = "annotation-only-import"
	RuleWildcardImport    Rule = "wildcard-import"
	RuleFunctionTooLarge  Rule = "function-too-large"
	RuleDuplicateFunction Rule = "duplicate-function"
	RuleDivergingFunction Rule = "diverging-duplicate-function"
	RuleCircularImport    Rule = "circular-import"
	RuleEmptyFile         Rule = "empty-file"
	RuleEmptyFolder       Rule = "empty-folder"
)

// Finding is one reported issue. Findings are values; once built they are
// not modified.
type Finding struct {
	Level      Severity `json:"level" yaml:"level"`
	Message    string   `json:"message" yaml:"message"`
	File       string   `json:"file" yaml:"file"`
	Line       Line     `json:"line" yaml:"line"`
	Suggestion string   `json:"suggestion" yaml:"suggestion"`
	Rule       Rule     `json:"rule,omitempty" yaml:"rule,omitempty"`
}

// New builds a finding whose file is expressed relative to root.
func New(root string, rule Rule, level Severity, message, file string, line Line, suggestion string) Finding {
	return Finding{
		Level:      level,
		Message:    message,
		File:       paths.Relative(root, file),
		Line:       line,
		Suggestion: suggestion,
		Rule:       rule,
	}
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s (%s:%s)", f.Level, f.Message, f.File, f.Line)
}

// Collector accumulates findings for one diagnosis run in discovery order.
type Collector struct {
	root  string
	items []Finding
}

// NewCollector creates a collector normalizing file paths against root.
func NewCollector(root string) *Collector {
	return &Collector{root: root}
}

// Add records a finding.
func (c *Collector) Add(rule Rule, level Severity, message, file string, line Line, suggestion string) {
	c.items = append(c.items, New(c.root, rule, level, message, file, line, suggestion))
}

// Addf is Add with a formatted message.
func (c *Collector) Addf(rule Rule, level Severity, file string, line Line, suggestion, format string, args ...any) {
	c.Add(rule, level, fmt.Sprintf(format, args...), file, line, suggestion)
}

// Len returns the number of findings collected so far.
func (c *Collector) Len() int { return len(c.items) }

// Findings returns a copy of the collected findings.
func (c *Collector) Findings() []Finding {
	out := make([]Finding, len(c.items))
	copy(out, c.items)
	return out
}

// SortBySeverity returns a copy of fs ordered CRITICAL, WARNING, INFO,
// keeping discovery order within a level.
func SortBySeverity(fs []Finding) []Finding {
	rank := map[Severity]int{Critical: 0, Warning: 1, Info: 2}
	out := make([]Finding, len(fs))
	copy(out, fs)
	sort.SliceStable(out, func(i, j int) bool {
		return rank[out[i].Level] < rank[out[j].Level]
	})
	return out
}

// CountBySeverity counts findings per level.
func CountBySeverity(fs []Finding) map[Severity]int {
	counts := make(map[Severity]int, len(Severities))
	for _, f := range fs {
		counts[f.Level]++
	}
	return counts
}
