package rules

import (
	"github.com/godaddy/cli-sub001/internal/jsast"
	"github.com/godaddy/cli-sub001/internal/report"
)

var childProcessMethods = map[string]bool{
	"exec":          true,
	"execSync":      true,
	"execFile":      true,
	"execFileSync":  true,
	"spawn":         true,
	"spawnSync":     true,
	"fork":          true,
}

// SEC002 flags use of the child_process module: importing/requiring it, or
// calling one of its process-spawning methods through a tracked alias.
// Renamed named imports are recorded by the Alias Builder but a direct call
// to the renamed binding cannot be proven a child_process call without
// types; only the import itself fires in that case (spec.md §4.F).
var SEC002 = Rule{
	Meta: RuleMeta{
		ID:              "SEC002",
		DefaultSeverity: report.SeverityBlock,
		Title:           "child_process usage",
		Description:     "Imports or calls into Node's child_process module, which can spawn arbitrary OS processes.",
		Remediation:     "Remove the dependency on child_process; use the host platform's sanctioned extension API instead.",
	},
	Create: func(ctx *Context) NodeVisitor {
		flag := func(c *Context, n *jsast.Node, message string) {
			c.Report(ReportArgs{
				RuleID:   "SEC002",
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
					if jsast.IsImportOf(n, "child_process") || jsast.IsImportOf(n, "node:child_process") {
						flag(c, n, "import of child_process")
					}
				},
				jsast.KindCallExpression: func(c *Context, n *jsast.Node) {
					if jsast.IsRequireOf(n, childProcessRequirePattern) {
						flag(c, n, "require of child_process")
						return
					}
					for method := range childProcessMethods {
						for _, module := range []string{"child_process", "node:child_process"} {
							if jsast.IsMemberCall(n, jsast.MemberCallQuery{
								ObjectIsAliasOf: module,
								Method:          method,
								Aliases:         c.Aliases,
							}) {
								flag(c, n, "call to child_process."+method)
								return
							}
						}
					}
				},
			},
		}
	},
}
