// Package rules implements the Source Rule Engine (spec.md §4.E) and the
// source-mode rule taxonomy SEC001–SEC011 (spec.md §4.F): AST-based
// detectors driven over one parsed file at a time, plus the textual
// lifecycle-script rule over package manifests.
package rules

import (
	"github.com/godaddy/cli-sub001/internal/config"
	"github.com/godaddy/cli-sub001/internal/jsast"
	"github.com/godaddy/cli-sub001/internal/report"
)

// RuleMeta describes a rule's identity and fixed metadata, independent of
// any particular finding.
type RuleMeta struct {
	ID              report.RuleID
	DefaultSeverity report.Severity
	Title           string
	Description     string
	Remediation     string
	DocsURL         string
}

// Context is handed to a rule's Create function and to every node handler
// it returns. It carries the parsed file, the policy in effect, that
// file's alias maps, and the Report sink.
type Context struct {
	SourceFile *jsast.SourceFile
	FilePath   string
	Config     *config.SecurityConfig
	Aliases    *jsast.AliasMaps

	findings []report.Finding
}

// ReportArgs mirrors spec.md §3's ctx.report({...}) call shape.
type ReportArgs struct {
	RuleID   report.RuleID
	Severity report.Severity
	Message  string
	Line     int
	Col      int
	Snippet  string
}

// Report records a finding. Findings are collected in call order, which
// the engine preserves into the file's output slice (spec.md §4.E step 5).
func (c *Context) Report(a ReportArgs) {
	c.findings = append(c.findings, report.Finding{
		RuleID:   a.RuleID,
		Severity: a.Severity,
		Message:  a.Message,
		File:     c.FilePath,
		Line:     a.Line,
		Col:      a.Col,
		Snippet:  a.Snippet,
	})
}

// NodeVisitor is what a rule's Create returns: an optional onFileStart
// hook plus per-node-kind handlers. The engine only invokes a Handlers
// entry for node kinds it actually encounters, per spec.md's "Dynamic
// dispatch on AST kinds" design note.
type NodeVisitor struct {
	OnFileStart func(ctx *Context)
	Handlers    map[jsast.Kind]func(ctx *Context, n *jsast.Node)
}

// Rule is a single source-mode detector.
type Rule struct {
	Meta   RuleMeta
	Create func(ctx *Context) NodeVisitor
}
