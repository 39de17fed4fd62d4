package jsast

import (
	"regexp"
	"strings"
)

// This file implements the Matcher Library (spec.md §4.D): pure predicates
// over AST nodes that rules compose to recognize a call, property access,
// or literal regardless of how it was imported or aliased.

// IsIdentifier reports whether n is an identifier named name.
func IsIdentifier(n *Node, name string) bool {
	return n != nil && n.Kind() == KindIdentifier && n.Text() == name
}

// IsCallToGlobal reports whether n is a call whose callee is a bare
// identifier equal to name. Method calls (obj.name(...)) do not match.
func IsCallToGlobal(n *Node, name string) bool {
	if n == nil || n.Kind() != KindCallExpression {
		return false
	}
	return IsIdentifier(n.ChildByFieldName("function"), name)
}

// IsNewExpressionOf reports whether n is `new name(...)`.
func IsNewExpressionOf(n *Node, name string) bool {
	if n == nil || n.Kind() != KindNewExpression {
		return false
	}
	ctor := n.ChildByFieldName("constructor")
	return IsIdentifier(ctor, name)
}

// MemberCallQuery parameterizes IsMemberCall.
type MemberCallQuery struct {
	ObjectIsAliasOf string
	Method          string
	Aliases         *AliasMaps
}

// IsMemberCall reports whether n is a call `obj.m(...)` where m's name
// equals q.Method and obj's name is bound (by default/CJS alias or
// namespace alias) to the module q.ObjectIsAliasOf.
func IsMemberCall(n *Node, q MemberCallQuery) bool {
	if n == nil || n.Kind() != KindCallExpression || q.Aliases == nil {
		return false
	}
	fn := n.ChildByFieldName("function")
	if fn == nil || fn.Kind() != KindMemberExpression {
		return false
	}
	obj := fn.ChildByFieldName("object")
	prop := fn.ChildByFieldName("property")
	if obj == nil || prop == nil || obj.Kind() != KindIdentifier {
		return false
	}
	if prop.Text() != q.Method {
		return false
	}
	return q.Aliases.HasModuleAlias(q.ObjectIsAliasOf, obj.Text())
}

// IsProcessProperty reports whether n is a `process.prop` (or
// `process["prop"]`) property access, in either a read or call position.
func IsProcessProperty(n *Node, prop string) bool {
	if n == nil {
		return false
	}
	switch n.Kind() {
	case KindMemberExpression:
		obj := n.ChildByFieldName("object")
		propNode := n.ChildByFieldName("property")
		return IsIdentifier(obj, "process") && propNode != nil && propNode.Text() == prop
	case KindSubscriptExpression:
		obj := n.ChildByFieldName("object")
		idx := n.ChildByFieldName("index")
		val, ok := literalStringValue(idx)
		return IsIdentifier(obj, "process") && ok && val == prop
	default:
		return false
	}
}

// IsRequireOf reports whether n is a call to the bare `require` function
// with a single string-literal argument whose value matches pattern.
func IsRequireOf(n *Node, pattern *regexp.Regexp) bool {
	if n == nil || n.Kind() != KindCallExpression {
		return false
	}
	fn := n.ChildByFieldName("function")
	if !IsIdentifier(fn, "require") {
		return false
	}
	args := n.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() != 1 {
		return false
	}
	val, ok := literalStringValue(args.NamedChild(0))
	return ok && pattern.MatchString(val)
}

// IsImportOf reports whether n is an import declaration with a literal
// specifier equal to moduleName.
func IsImportOf(n *Node, moduleName string) bool {
	if n == nil || n.Kind() != KindImportStatement {
		return false
	}
	source := n.ChildByFieldName("source")
	if source == nil {
		for _, c := range n.NamedChildren() {
			if c.Kind() == KindString {
				source = c
				break
			}
		}
	}
	val, ok := literalStringValue(source)
	return ok && val == moduleName
}

// GetStringLiteralValue returns the string for string literals and
// substitution-free template literals, and (zero, false) otherwise.
func GetStringLiteralValue(n *Node) (string, bool) {
	return literalStringValue(n)
}

// IsBufferFromCall reports whether n is `Buffer.from(arg0[, encoding])`.
// When encoding is non-empty, the second argument must be a string literal
// equal to it.
func IsBufferFromCall(n *Node, encoding string) bool {
	if n == nil || n.Kind() != KindCallExpression {
		return false
	}
	fn := n.ChildByFieldName("function")
	if fn == nil || fn.Kind() != KindMemberExpression {
		return false
	}
	if !IsIdentifier(fn.ChildByFieldName("object"), "Buffer") {
		return false
	}
	prop := fn.ChildByFieldName("property")
	if prop == nil || prop.Text() != "from" {
		return false
	}
	args := n.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return false
	}
	if encoding == "" {
		return true
	}
	if args.NamedChildCount() < 2 {
		return false
	}
	val, ok := literalStringValue(args.NamedChild(1))
	return ok && val == encoding
}

var urlPattern = regexp.MustCompile(`https?://[^\s'"` + "`" + `]+`)

// MatchesURL reports whether s contains an http(s):// substring.
func MatchesURL(s string) bool {
	return urlPattern.MatchString(s)
}

// URLHost extracts the host (without port) from the first http(s) URL
// substring in s, or "" if none is found.
func URLHost(s string) string {
	loc := urlPattern.FindString(s)
	if loc == "" {
		return ""
	}
	rest := strings.SplitN(loc, "://", 2)
	if len(rest) != 2 {
		return ""
	}
	authority := rest[1]
	for i, r := range authority {
		if r == '/' || r == '?' || r == '#' {
			authority = authority[:i]
			break
		}
	}
	if at := strings.LastIndex(authority, "@"); at >= 0 {
		authority = authority[at+1:]
	}
	if colon := strings.LastIndex(authority, ":"); colon >= 0 {
		// Guard against bare IPv6 literals; extension source rarely embeds
		// those, so a simple last-colon split is sufficient here.
		if !strings.Contains(authority, "]") {
			authority = authority[:colon]
		}
	}
	return authority
}

var sensitivePathSubstrings = []string{
	"~/.ssh",
	"/etc/passwd",
	"/etc/shadow",
	"/var/run/secrets",
	"/.ssh/",
	"/.aws/credentials",
	"/.env",
}

// MatchesSensitivePath reports whether s contains a well-known sensitive
// filesystem path substring.
func MatchesSensitivePath(s string) bool {
	for _, p := range sensitivePathSubstrings {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
