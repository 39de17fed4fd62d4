package rules

import (
	"github.com/godaddy/cli-sub001/internal/config"
	"github.com/godaddy/cli-sub001/internal/jsast"
	"github.com/godaddy/cli-sub001/internal/report"
)

// SEC008 flags a string or substitution-free template literal containing an
// http(s) URL whose host is not on the trusted-domain allowlist. Template
// literals with substitutions are ignored, not conservatively flagged
// (spec.md §4.F): the rule under-approximates by design rather than guess
// at an interpolated host.
var SEC008 = Rule{
	Meta: RuleMeta{
		ID:              "SEC008",
		DefaultSeverity: report.SeverityWarn,
		Title:           "Untrusted external URL",
		Description:     "References a URL whose host is not on the configured trusted-domain list.",
		Remediation:     "Route the request through a sanctioned host API, or add the domain to the trusted-domain allowlist if it is a legitimate dependency.",
	},
	Create: func(ctx *Context) NodeVisitor {
		check := func(c *Context, n *jsast.Node) {
			val, ok := jsast.GetStringLiteralValue(n)
			if !ok || !jsast.MatchesURL(val) {
				return
			}
			host := jsast.URLHost(val)
			if config.IsTrustedDomain(host, c.Config) {
				return
			}
			c.Report(ReportArgs{
				RuleID:   "SEC008",
				Severity: report.SeverityWarn,
				Message:  "reference to untrusted URL host " + host,
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
