package rules

import (
	"github.com/godaddy/cli-sub001/internal/jsast"
	"github.com/godaddy/cli-sub001/internal/report"
)

var moduleTamperingProperties = map[string]bool{
	"_load":             true,
	"_resolveFilename":  true,
}

// SEC006 flags module loader tampering: an assignment into
// Module._load, Module._resolveFilename, or Module._extensions[...], and
// an assignment or delete on require.cache[...] (spec.md §4.F). Both
// dot and bracket notation are recognized.
var SEC006 = Rule{
	Meta: RuleMeta{
		ID:              "SEC006",
		DefaultSeverity: report.SeverityBlock,
		Title:           "Module loader tampering",
		Description:     "Overwrites Node's module resolution or cache internals, letting loaded code rewrite what other modules resolve to.",
		Remediation:     "Remove the assignment to Module's internals or require.cache; load dependencies normally.",
	},
	Create: func(ctx *Context) NodeVisitor {
		flag := func(c *Context, n *jsast.Node, message string) {
			c.Report(ReportArgs{
				RuleID:   "SEC006",
				Severity: report.SeverityBlock,
				Message:  message,
				Line:     n.Line(),
				Col:      n.Col(),
				Snippet:  n.Text(),
			})
		}
		return NodeVisitor{
			Handlers: map[jsast.Kind]func(*Context, *jsast.Node){
				jsast.KindAssignmentExpression: func(c *Context, n *jsast.Node) {
					target := n.ChildByFieldName("left")
					if isModuleInternalTarget(c, target) {
						flag(c, n, "assignment to Module loader internals")
						return
					}
					if isRequireCacheTarget(target) {
						flag(c, n, "assignment to require.cache entry")
					}
				},
				jsast.KindUnaryExpression: func(c *Context, n *jsast.Node) {
					if operatorText(n) != "delete" {
						return
					}
					arg := n.ChildByFieldName("argument")
					if isRequireCacheTarget(arg) {
						flag(c, n, "delete of require.cache entry")
					}
				},
			},
		}
	},
}

// operatorText returns the operator of a unary expression by matching the
// start of the expression's source text against the known unary operators,
// or "" if none matches.
func operatorText(n *jsast.Node) string {
	text := n.Text()
	for _, op := range []string{"delete", "typeof", "void", "!", "~", "-", "+"} {
		if len(text) >= len(op) && text[:len(op)] == op {
			return op
		}
	}
	return ""
}

// isModuleInternalTarget reports whether target is Module._load,
// Module._resolveFilename (dot or bracket) or Module._extensions[...]
// (bracket only, since _extensions is always indexed by a file extension
// key), where Module is bound by an alias of the builtin "module".
func isModuleInternalTarget(c *Context, target *jsast.Node) bool {
	if target == nil {
		return false
	}
	switch target.Kind() {
	case jsast.KindMemberExpression:
		obj := target.ChildByFieldName("object")
		prop := target.ChildByFieldName("property")
		if obj == nil || prop == nil {
			return false
		}
		if !isModuleAlias(c, obj) {
			return false
		}
		return moduleTamperingProperties[prop.Text()]
	case jsast.KindSubscriptExpression:
		obj := target.ChildByFieldName("object")
		idx := target.ChildByFieldName("index")
		if obj == nil {
			return false
		}
		val, ok := jsast.GetStringLiteralValue(idx)
		if !ok {
			return false
		}
		if isModuleAlias(c, obj) && moduleTamperingProperties[val] {
			return true
		}
		// Module._extensions['.js'] = ... : obj is itself a member/subscript
		// expression `Module._extensions`.
		return isModuleExtensionsAccess(c, obj)
	}
	return false
}

func isModuleExtensionsAccess(c *Context, n *jsast.Node) bool {
	if n == nil {
		return false
	}
	var obj, prop *jsast.Node
	switch n.Kind() {
	case jsast.KindMemberExpression:
		obj = n.ChildByFieldName("object")
		prop = n.ChildByFieldName("property")
		if prop == nil || prop.Text() != "_extensions" {
			return false
		}
	case jsast.KindSubscriptExpression:
		obj = n.ChildByFieldName("object")
		idx := n.ChildByFieldName("index")
		val, ok := jsast.GetStringLiteralValue(idx)
		if !ok || val != "_extensions" {
			return false
		}
	default:
		return false
	}
	return isModuleAlias(c, obj)
}

func isModuleAlias(c *Context, n *jsast.Node) bool {
	if n == nil {
		return false
	}
	if jsast.IsIdentifier(n, "Module") {
		return c.Aliases.HasModuleAlias("module", "Module") || c.Aliases.HasModuleAlias("node:module", "Module")
	}
	return c.Aliases.HasModuleAlias("module", n.Text()) || c.Aliases.HasModuleAlias("node:module", n.Text())
}

// isRequireCacheTarget reports whether n is `require.cache[...]`.
func isRequireCacheTarget(n *jsast.Node) bool {
	if n == nil || n.Kind() != jsast.KindSubscriptExpression {
		return false
	}
	obj := n.ChildByFieldName("object")
	if obj == nil || obj.Kind() != jsast.KindMemberExpression {
		return false
	}
	base := obj.ChildByFieldName("object")
	prop := obj.ChildByFieldName("property")
	return jsast.IsIdentifier(base, "require") && prop != nil && prop.Text() == "cache"
}
