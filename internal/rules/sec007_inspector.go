package rules

import (
	"github.com/godaddy/cli-sub001/internal/jsast"
	"github.com/godaddy/cli-sub001/internal/report"
)

// SEC007 flags any import or require of Node's inspector module, which
// can attach a debugging session to the running process (spec.md §4.F).
var SEC007 = Rule{
	Meta: RuleMeta{
		ID:              "SEC007",
		DefaultSeverity: report.SeverityBlock,
		Title:           "inspector usage",
		Description:     "Imports or requires Node's inspector module, which can open a debugger session against the host process.",
		Remediation:     "Remove the dependency on inspector; extensions have no sanctioned use for it.",
	},
	Create: func(ctx *Context) NodeVisitor {
		flag := func(c *Context, n *jsast.Node, message string) {
			c.Report(ReportArgs{
				RuleID:   "SEC007",
				Severity: report.SeverityBlock,
				Message:  message,
				Line:     n.Line(),
				Col:      n.Col(),
				Snippet:  n.Text(),
			})
		}
		return NodeVisitor{
			Handlers: map[jsast.Kind]func(*Context, *jsast.Node){
				jsast.KindImportStatement: func(c *Context, n *jsast.Node) {
					if jsast.IsImportOf(n, "inspector") || jsast.IsImportOf(n, "node:inspector") {
						flag(c, n, "import of inspector")
					}
				},
				jsast.KindCallExpression: func(c *Context, n *jsast.Node) {
					if jsast.IsRequireOf(n, inspectorRequirePattern) {
						flag(c, n, "require of inspector")
					}
				},
			},
		}
	},
}
