// Package report implements the shared finding/severity data model
// (spec.md §3) and the Report Aggregator (spec.md §4.H): merging findings
// from the source rule engine, the lifecycle-script rule, and the bundle
// rule engine into one ScanReport and deciding whether a deployment is
// blocked.
package report

import (
	"fmt"
	"io"
)

// RuleID is an opaque rule identifier of shape SEC\d{3}. Source-mode IDs
// occupy SEC001..SEC099; bundle-mode IDs occupy SEC101..SEC199.
type RuleID string

// Severity is one of "off", "warn", "block", ordered off < warn < block.
type Severity string

// The three severity levels.
const (
	SeverityOff   Severity = "off"
	SeverityWarn  Severity = "warn"
	SeverityBlock Severity = "block"
)

var severityRank = map[Severity]int{
	SeverityOff:   0,
	SeverityWarn:  1,
	SeverityBlock: 2,
}

// Less reports whether a is strictly less severe than b.
func (a Severity) Less(b Severity) bool {
	return severityRank[a] < severityRank[b]
}

// Finding is a single rule violation. Coordinates are 1-indexed.
// JSON field names match the wire format in spec.md §6.
type Finding struct {
	RuleID   RuleID   `json:"ruleId" yaml:"ruleId"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
	File     string   `json:"file" yaml:"file"`
	Line     int      `json:"line" yaml:"line"`
	Col      int      `json:"col" yaml:"col"`
	Snippet  string   `json:"snippet,omitempty" yaml:"snippet,omitempty"`
}

// Summary aggregates finding counts by rule and by severity.
type Summary struct {
	Total      int                `json:"total" yaml:"total"`
	ByRuleID   map[RuleID]int     `json:"byRuleId" yaml:"byRuleId"`
	BySeverity map[Severity]int   `json:"bySeverity" yaml:"bySeverity"`
}

// ScanReport is the unified output of a scan: source findings, lifecycle
// script findings, and bundle findings merged together (spec.md §4.H).
type ScanReport struct {
	Findings     []Finding `json:"findings" yaml:"findings"`
	Blocked      bool      `json:"blocked" yaml:"blocked"`
	Summary      Summary   `json:"summary" yaml:"summary"`
	ScannedFiles int       `json:"scannedFiles" yaml:"scannedFiles"`
}

// Aggregate merges one or more finding slices, in the order given, into a
// single ScanReport. Per spec.md §5's ordering guarantee, callers pass
// groups in (source, scripts, bundle) order; within a group, findings must
// already be in their mode's required order.
func Aggregate(scannedFiles int, groups ...[]Finding) *ScanReport {
	r := &ScanReport{
		ScannedFiles: scannedFiles,
		Summary: Summary{
			ByRuleID: make(map[RuleID]int),
			BySeverity: map[Severity]int{
				SeverityOff:   0,
				SeverityWarn:  0,
				SeverityBlock: 0,
			},
		},
	}
	for _, g := range groups {
		r.Findings = append(r.Findings, g...)
	}
	r.Summary.Total = len(r.Findings)
	for _, f := range r.Findings {
		r.Summary.ByRuleID[f.RuleID]++
		r.Summary.BySeverity[f.Severity]++
		if f.Severity == SeverityBlock {
			r.Blocked = true
		}
	}
	return r
}

// RenderText writes one line per finding in the exact format spec.md §7
// mandates, followed by a one-line summary.
func RenderText(w io.Writer, r *ScanReport) error {
	for _, f := range r.Findings {
		if _, err := fmt.Fprintf(w, "%s:%d:%d [%s %s] %s\n", f.File, f.Line, f.Col, f.RuleID, f.Severity, f.Message); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d finding(s): %d block, %d warn, %d off\n",
		r.Summary.Total, r.Summary.BySeverity[SeverityBlock], r.Summary.BySeverity[SeverityWarn], r.Summary.BySeverity[SeverityOff])
	return err
}
