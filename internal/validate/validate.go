// Package validate runs the rule catalog over a normalized node document
// and assembles the machine-readable report consumed by the code
// generation pipeline.
package validate

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"secnode_validator/internal/config"
	"secnode_validator/internal/rules"
	"secnode_validator/telemetry"
)

// Summary counts findings by severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Report is the stable validation output. Findings appear in catalog order,
// so two runs over the same document produce byte-identical reports.
type Report struct {
	Summary  Summary         `json:"summary"`
	Findings []rules.Finding `json:"findings"`
}

// Encode renders the report as indented JSON.
func (r Report) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal validation report: %w", err)
	}
	return data, nil
}

// Runner evaluates the rule catalog. Rules are pure and the runner holds no
// per-document state, so a single Runner may be reused across watch-mode
// reruns and from multiple goroutines.
type Runner struct {
	catalog   []rules.Rule
	logger    zerolog.Logger
	collector telemetry.Collector
}

// NewRunner builds a Runner over the full catalog.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		catalog:   rules.Catalog(),
		logger:    zerolog.Nop(),
		collector: telemetry.Noop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates every rule against the document and returns the flat
// finding list in catalog order.
func (r *Runner) Run(cfg *config.SecNode) []rules.Finding {
	findings := make([]rules.Finding, 0)

	for _, rule := range r.catalog {
		ruleFindings := rule.Check(cfg)
		if len(ruleFindings) > 0 {
			r.logger.Debug().
				Str("rule", rule.Name).
				Int("findings", len(ruleFindings)).
				Msg("rule produced findings")
		}
		for _, f := range ruleFindings {
			r.collector.ObserveFindings(f.RuleID, string(f.Severity), 1)
		}
		findings = append(findings, ruleFindings...)
	}

	return findings
}

// BuildReport folds findings into the report structure.
func BuildReport(findings []rules.Finding) Report {
	report := Report{Findings: make([]rules.Finding, 0, len(findings))}
	for _, f := range findings {
		switch f.Severity {
		case rules.SeverityError:
			report.Summary.Errors++
		case rules.SeverityWarning:
			report.Summary.Warnings++
		}
		report.Findings = append(report.Findings, f)
	}
	return report
}

// HasErrors reports whether any finding blocks code generation.
func HasErrors(findings []rules.Finding) bool {
	for _, f := range findings {
		if f.Severity == rules.SeverityError {
			return true
		}
	}
	return false
}
