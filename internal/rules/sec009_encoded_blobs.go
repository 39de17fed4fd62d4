package rules

import (
	"github.com/godaddy/cli-sub001/internal/jsast"
	"github.com/godaddy/cli-sub001/internal/report"
)

// largeBlobThreshold is the literal-length boundary SEC009 flags past.
// Exactly 200 is allowed; 201 is flagged (spec.md §4.F, §8).
const largeBlobThreshold = 200

// SEC009 flags a large encoded blob passed to Buffer.from(s, "base64" |
// "hex") or atob(s), where s is a literal longer than largeBlobThreshold
// characters (spec.md §4.F).
var SEC009 = Rule{
	Meta: RuleMeta{
		ID:              "SEC009",
		DefaultSeverity: report.SeverityWarn,
		Title:           "Large encoded blob",
		Description:     "Decodes a large base64/hex-encoded or atob literal, a common way to smuggle payloads past a textual review.",
		Remediation:     "Inline the decoded content as readable source, or load it from a reviewed asset instead of an encoded literal.",
	},
	Create: func(ctx *Context) NodeVisitor {
		flag := func(c *Context, n *jsast.Node, message string) {
			c.Report(ReportArgs{
				RuleID:   "SEC009",
				Severity: report.SeverityWarn,
				Message:  message,
				Line:     n.Line(),
				Col:      n.Col(),
				Snippet:  n.Text(),
			})
		}
		return NodeVisitor{
			Handlers: map[jsast.Kind]func(*Context, *jsast.Node){
				jsast.KindCallExpression: func(c *Context, n *jsast.Node) {
					if jsast.IsBufferFromCall(n, "base64") || jsast.IsBufferFromCall(n, "hex") {
						if firstArgLiteralOverThreshold(n) {
							flag(c, n, "Buffer.from decoding a large encoded literal")
						}
						return
					}
					if jsast.IsCallToGlobal(n, "atob") {
						if firstArgLiteralOverThreshold(n) {
							flag(c, n, "atob() decoding a large encoded literal")
						}
					}
				},
			},
		}
	},
}

func firstArgLiteralOverThreshold(call *jsast.Node) bool {
	args := call.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return false
	}
	val, ok := jsast.GetStringLiteralValue(args.NamedChild(0))
	return ok && len(val) > largeBlobThreshold
}
