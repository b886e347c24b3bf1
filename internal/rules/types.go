package rules

import "secnode_validator/internal/config"

// Severity is the two-level finding classification. ERROR blocks code
// generation, WARNING means generation continues with placeholders.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Finding is a single diagnostic produced by a rule. Findings are plain
// data; they are never mutated after creation and never carried as Go
// errors.
type Finding struct {
	// RuleID is a stable identifier, referenced by documentation and CI.
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	// Path is a JSONPath-like locator pointing at the offending field.
	Path    string `json:"path"`
	Message string `json:"message"`

	Hint     string   `json:"hint,omitempty"`
	Category string   `json:"category,omitempty"`
	// PLCRefs names the generated controller code units a developer has to
	// complete when acting on this finding.
	PLCRefs []string `json:"plc_refs,omitempty"`
}

// Rule is one independent, pure consistency check over a node document.
// Rules never fail: absence of applicable data yields no findings.
type Rule struct {
	Name  string
	Check func(*config.SecNode) []Finding
}
