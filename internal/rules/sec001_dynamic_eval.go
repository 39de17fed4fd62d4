package rules

import (
	"github.com/godaddy/cli-sub001/internal/jsast"
	"github.com/godaddy/cli-sub001/internal/report"
)

// SEC001 flags dynamic code evaluation: bare eval(...) and new Function(...).
// A same-scope declaration of a local class literally named Function cannot
// be distinguished from the built-in without types; the rule accepts that
// false positive (spec.md §4.F).
var SEC001 = Rule{
	Meta: RuleMeta{
		ID:              "SEC001",
		DefaultSeverity: report.SeverityBlock,
		Title:           "Dynamic code evaluation",
		Description:     "Calls eval() or constructs a new Function from a string, executing arbitrary code at runtime.",
		Remediation:     "Remove the dynamic evaluation; express the logic statically or load it as an ordinary module.",
	},
	Create: func(ctx *Context) NodeVisitor {
		flag := func(c *Context, n *jsast.Node, what string) {
			c.Report(ReportArgs{
				RuleID:   "SEC001",
				Severity: report.SeverityBlock,
				Message:  "dynamic code evaluation via " + what,
				Line:     n.Line(),
				Col:      n.Col(),
				Snippet:  n.Text(),
			})
		}
		return NodeVisitor{
			Handlers: map[jsast.Kind]func(*Context, *jsast.Node){
				jsast.KindCallExpression: func(c *Context, n *jsast.Node) {
					if jsast.IsCallToGlobal(n, "eval") {
						flag(c, n, "eval()")
					}
				},
				jsast.KindNewExpression: func(c *Context, n *jsast.Node) {
					if jsast.IsNewExpressionOf(n, "Function") {
						flag(c, n, "new Function()")
					}
				},
			},
		}
	},
}
