package rules

import (
	"github.com/godaddy/cli-sub001/internal/jsast"
	"github.com/godaddy/cli-sub001/internal/report"
)

// SEC010 flags any literal string referencing a well-known sensitive
// filesystem path (spec.md §4.F).
var SEC010 = Rule{
	Meta: RuleMeta{
		ID:              "SEC010",
		DefaultSeverity: report.SeverityWarn,
		Title:           "Sensitive path reference",
		Description:     "References a well-known sensitive filesystem path such as SSH keys, cloud credentials, or /etc/passwd.",
		Remediation:     "Remove the reference, or route credential access through the host's sanctioned secret store.",
	},
	Create: func(ctx *Context) NodeVisitor {
		check := func(c *Context, n *jsast.Node) {
			val, ok := jsast.GetStringLiteralValue(n)
			if !ok || !jsast.MatchesSensitivePath(val) {
				return
			}
			c.Report(ReportArgs{
				RuleID:   "SEC010",
				Severity: report.SeverityWarn,
				Message:  "reference to sensitive path",
				Line:     n.Line(),
				Col:      n.Col(),
				Snippet:  n.Text(),
			})
		}
		return NodeVisitor{
			Handlers: map[jsast.Kind]func(*Context, *jsast.Node){
				jsast.KindString:         check,
				jsast.KindTemplateString: check,
			},
		}
	},
}
