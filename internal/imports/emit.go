package imports

import (
	"codehunter/internal/findings"
	"codehunter/internal/parser"
)

const (
	suggestUnused         = "Remove the import if it is not needed."
	suggestDuplicate      = "Remove one of the repeated import statements."
	suggestFunctionLocal  = "Move the import to the top of the file."
	suggestAnnotationOnly = "Consider 'from __future__ import annotations' or a TYPE_CHECKING block."
	suggestWildcard       = "Avoid wildcard imports to keep names explicit and avoid conflicts."
)

// Emit appends the import findings for file to c. The categories are
// independent: a single binding may be both function-local and unused.
func Emit(c *findings.Collector, file string, u *Usage, cls *Classifier) {
	for _, b := range u.Unused() {
		level := findings.Warning
		if cls != nil {
			level = UnusedSeverity(cls.Classify(b.Origin))
		}
		c.Addf(findings.RuleUnusedImport, level, file, findings.Line(b.Line), suggestUnused,
			"Unused import: %s", b.Name)
	}
	for _, b := range u.Duplicates {
		c.Addf(findings.RuleDuplicateImport, findings.Warning, file, findings.Line(b.Line), suggestDuplicate,
			"Duplicate import: %s", b.Name)
	}
	for _, b := range u.FunctionLocal {
		c.Addf(findings.RuleFunctionLocal, findings.Warning, file, findings.Line(b.Line), suggestFunctionLocal,
			"Import inside function: %s", b.Name)
	}
	for _, b := range u.AnnotationOnly() {
		c.Addf(findings.RuleAnnotationOnly, findings.Info, file, findings.Line(b.Line), suggestAnnotationOnly,
			"Import used only in type annotations: %s", b.Name)
	}
	for _, b := range u.Wildcards {
		c.Addf(findings.RuleWildcardImport, findings.Warning, file, findings.Line(b.Line), suggestWildcard,
			"Wildcard import: from %s import *", b.Origin)
	}
}

// Check analyzes one parsed unit and emits its findings.
func Check(c *findings.Collector, unit *parser.Unit, cls *Classifier) *Usage {
	u := Analyze(unit)
	Emit(c, unit.Path, u, cls)
	return u
}
