// Package health turns a finding sequence into a 0-100 score and a status.
package health

import "codehunter/internal/findings"

// Status is the overall health label.
type Status string

const (
	StatusHealthy  Status = "HEALTHY"
	StatusWarning  Status = "WARNING"
	StatusCritical Status = "CRITICAL"
)

const (
	maxScore        = 100
	criticalBelow   = 50
	warningBelow    = 80
	goodHealthFrom  = 90
	needsRefactorAt = 75
)

// Report is derived purely from findings.
type Report struct {
	Critical int    `json:"critical" yaml:"critical"`
	Warnings int    `json:"warnings" yaml:"warnings"`
	Info     int    `json:"info" yaml:"info"`
	Score    int    `json:"score" yaml:"score"`
	Status   Status `json:"status" yaml:"status"`
}

// Calculate scores fs: 100 minus the summed penalties, clamped at zero.
func Calculate(fs []findings.Finding) Report {
	counts := findings.CountBySeverity(fs)

	score := maxScore
	for _, level := range findings.Severities {
		score -= counts[level] * level.Penalty()
	}
	if score < 0 {
		score = 0
	}

	return Report{
		Critical: counts[findings.Critical],
		Warnings: counts[findings.Warning],
		Info:     counts[findings.Info],
		Score:    score,
		Status:   StatusFor(score),
	}
}

// StatusFor maps a score to its label.
func StatusFor(score int) Status {
	switch {
	case score < criticalBelow:
		return StatusCritical
	case score < warningBelow:
		return StatusWarning
	default:
		return StatusHealthy
	}
}

// Severity orders statuses: HEALTHY < WARNING < CRITICAL.
func (s Status) Severity() int {
	switch s {
	case StatusCritical:
		return 2
	case StatusWarning:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether s is as bad as or worse than other.
func (s Status) AtLeast(other Status) bool {
	return s.Severity() >= other.Severity()
}

// Recommendations returns general advice for a score.
func Recommendations(score int) []string {
	switch {
	case score >= goodHealthFrom:
		return []string{"The project has good structural health."}
	case score >= needsRefactorAt:
		return []string{"Refactor long functions.", "Split large files."}
	default:
		return []string{"Review the overall architecture.", "Apply SOLID principles."}
	}
}
