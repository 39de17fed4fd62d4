package rules

import (
	"github.com/godaddy/cli-sub001/internal/jsast"
	"github.com/godaddy/cli-sub001/internal/report"
)

var vmContextMethods = map[string]bool{
	"runInContext":       true,
	"runInNewContext":    true,
	"runInThisContext":   true,
	"createContext":      true,
}

// SEC003 flags use of Node's vm module: import/require, a call to one of
// its context-execution methods through a tracked alias, or `new
// vm.Script(...)` (spec.md §4.F).
var SEC003 = Rule{
	Meta: RuleMeta{
		ID:              "SEC003",
		DefaultSeverity: report.SeverityBlock,
		Title:           "vm module usage",
		Description:     "Imports or calls into Node's vm module, which compiles and executes arbitrary script text.",
		Remediation:     "Remove the dependency on vm; run extension logic inside the host's own sandboxing, not a nested vm context.",
	},
	Create: func(ctx *Context) NodeVisitor {
		flag := func(c *Context, n *jsast.Node, message string) {
			c.Report(ReportArgs{
				RuleID:   "SEC003",
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
					if jsast.IsImportOf(n, "vm") || jsast.IsImportOf(n, "node:vm") {
						flag(c, n, "import of vm")
					}
				},
				jsast.KindCallExpression: func(c *Context, n *jsast.Node) {
					if jsast.IsRequireOf(n, vmRequirePattern) {
						flag(c, n, "require of vm")
						return
					}
					for method := range vmContextMethods {
						if jsast.IsMemberCall(n, jsast.MemberCallQuery{
							ObjectIsAliasOf: "vm",
							Method:          method,
							Aliases:         c.Aliases,
						}) {
							flag(c, n, "call to vm."+method)
							return
						}
					}
				},
				jsast.KindNewExpression: func(c *Context, n *jsast.Node) {
					ctor := n.ChildByFieldName("constructor")
					if ctor == nil || ctor.Kind() != jsast.KindMemberExpression {
						return
					}
					obj := ctor.ChildByFieldName("object")
					prop := ctor.ChildByFieldName("property")
					if obj == nil || prop == nil || prop.Text() != "Script" {
						return
					}
					if c.Aliases.HasModuleAlias("vm", obj.Text()) {
						flag(c, n, "new vm.Script()")
					}
				},
			},
		}
	},
}
