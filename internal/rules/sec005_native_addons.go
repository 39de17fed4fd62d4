package rules

import (
	"github.com/godaddy/cli-sub001/internal/jsast"
	"github.com/godaddy/cli-sub001/internal/report"
)

var nativeAddonLoaders = []string{
	"node-gyp-build",
	"bindings",
	"ffi-napi",
	"ref-napi",
	"node-addon-api",
	"node-pre-gyp",
}

// SEC005 flags loading of native (compiled) addons: requiring a .node
// file directly, importing/requiring one of the known native-binding
// loader packages, or touching process.dlopen (spec.md §4.F).
var SEC005 = Rule{
	Meta: RuleMeta{
		ID:              "SEC005",
		DefaultSeverity: report.SeverityBlock,
		Title:           "Native addon loading",
		Description:     "Loads a compiled native addon, bypassing the extension sandbox's JS-only execution model.",
		Remediation:     "Remove the native addon dependency; reimplement the functionality in pure JS/TS or via a sanctioned host API.",
	},
	Create: func(ctx *Context) NodeVisitor {
		flag := func(c *Context, n *jsast.Node, message string) {
			c.Report(ReportArgs{
				RuleID:   "SEC005",
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
					for _, m := range nativeAddonLoaders {
						if jsast.IsImportOf(n, m) {
							flag(c, n, "import of native addon loader "+m)
							return
						}
					}
				},
				jsast.KindCallExpression: func(c *Context, n *jsast.Node) {
					if jsast.IsRequireOf(n, nativeAddonRequirePattern) {
						flag(c, n, "require of a compiled .node addon")
						return
					}
					for _, m := range nativeAddonLoaders {
						if jsast.IsRequireOf(n, requirePatternFor(m)) {
							flag(c, n, "require of native addon loader "+m)
							return
						}
					}
				},
				jsast.KindMemberExpression: func(c *Context, n *jsast.Node) {
					if jsast.IsProcessProperty(n, "dlopen") {
						flag(c, n, "access to process.dlopen")
					}
				},
			},
		}
	},
}
