package jsast_test

import (
	"regexp"
	"testing"

	"github.com/godaddy/cli-sub001/internal/jsast"
)

func findCall(t *testing.T, root *jsast.Node, calleeText string) *jsast.Node {
	t.Helper()
	var found *jsast.Node
	root.Walk(func(n *jsast.Node) bool {
		if found != nil {
			return false
		}
		if n.Kind() == jsast.KindCallExpression && n.Text() != "" {
			if fn := n.ChildByFieldName("function"); fn != nil && fn.Text() == calleeText {
				found = n
			}
		}
		return true
	})
	if found == nil {
		t.Fatalf("no call expression with callee %q found", calleeText)
	}
	return found
}

func TestIsCallToGlobal_RejectsMethodCall(t *testing.T) {
	f := parseJS(t, `obj.eval("x");`)
	call := findCall(t, f.Root, "obj.eval")
	if jsast.IsCallToGlobal(call, "eval") {
		t.Error("IsCallToGlobal must reject obj.eval(...)")
	}
}

func TestIsCallToGlobal_Matches(t *testing.T) {
	f := parseJS(t, `eval("x");`)
	call := findCall(t, f.Root, "eval")
	if !jsast.IsCallToGlobal(call, "eval") {
		t.Error("expected IsCallToGlobal to match bare eval(...)")
	}
}

func TestIsNewExpressionOf(t *testing.T) {
	f := parseJS(t, `new Function("return 1")();`)
	var newExpr *jsast.Node
	f.Root.Walk(func(n *jsast.Node) bool {
		if n.Kind() == jsast.KindNewExpression {
			newExpr = n
		}
		return true
	})
	if newExpr == nil {
		t.Fatal("no new_expression found")
	}
	if !jsast.IsNewExpressionOf(newExpr, "Function") {
		t.Error("expected IsNewExpressionOf(Function) to match")
	}
}

func TestIsMemberCall_RespectsAlias(t *testing.T) {
	f := parseJS(t, `import cp from 'child_process'; cp.spawn('node');`)
	aliases := jsast.BuildAliasMaps(f.Root)
	call := findCall(t, f.Root, "cp.spawn")
	ok := jsast.IsMemberCall(call, jsast.MemberCallQuery{
		ObjectIsAliasOf: "child_process",
		Method:          "spawn",
		Aliases:         aliases,
	})
	if !ok {
		t.Error("expected IsMemberCall to recognize cp.spawn via alias")
	}
}

func TestIsRequireOf(t *testing.T) {
	f := parseJS(t, `require('some.node');`)
	call := findCall(t, f.Root, "require")
	if !jsast.IsRequireOf(call, regexp.MustCompile(`\.node$`)) {
		t.Error("expected IsRequireOf to match require('some.node')")
	}
}

func TestGetStringLiteralValue_TemplateWithSubstitution(t *testing.T) {
	f := parseJS(t, "const x = `hello ${name}`;")
	var tmpl *jsast.Node
	f.Root.Walk(func(n *jsast.Node) bool {
		if n.Kind() == jsast.KindTemplateString {
			tmpl = n
		}
		return true
	})
	if tmpl == nil {
		t.Fatal("no template_string found")
	}
	if _, ok := jsast.GetStringLiteralValue(tmpl); ok {
		t.Error("template literal with substitution must not yield a string value")
	}
}

func TestGetStringLiteralValue_PlainString(t *testing.T) {
	f := parseJS(t, `const x = "hello";`)
	var str *jsast.Node
	f.Root.Walk(func(n *jsast.Node) bool {
		if n.Kind() == jsast.KindString {
			str = n
		}
		return true
	})
	if str == nil {
		t.Fatal("no string found")
	}
	val, ok := jsast.GetStringLiteralValue(str)
	if !ok || val != "hello" {
		t.Errorf("GetStringLiteralValue = (%q, %v), want (hello, true)", val, ok)
	}
}

func TestIsBufferFromCall_EncodingMismatch(t *testing.T) {
	f := parseJS(t, `Buffer.from("abcd", "utf8");`)
	call := findCall(t, f.Root, "Buffer.from")
	if jsast.IsBufferFromCall(call, "base64") {
		t.Error("expected encoding mismatch to not match")
	}
	if !jsast.IsBufferFromCall(call, "utf8") {
		t.Error("expected matching encoding to match")
	}
}

func TestMatchesURL(t *testing.T) {
	if !jsast.MatchesURL(`fetch("https://example.com/x")`) {
		t.Error("expected MatchesURL to find embedded https URL")
	}
	if jsast.MatchesURL(`"not a url"`) {
		t.Error("expected MatchesURL to reject non-URL string")
	}
}

func TestURLHost(t *testing.T) {
	tests := map[string]string{
		"https://example.com/path":      "example.com",
		"http://example.com:8080/path":  "example.com",
		"https://user@example.com/path": "example.com",
	}
	for url, want := range tests {
		if got := jsast.URLHost(url); got != want {
			t.Errorf("URLHost(%q) = %q, want %q", url, got, want)
		}
	}
}

func TestMatchesSensitivePath(t *testing.T) {
	if !jsast.MatchesSensitivePath("read ~/.ssh/id_rsa") {
		t.Error("expected ~/.ssh to match")
	}
	if jsast.MatchesSensitivePath("/home/user/project") {
		t.Error("expected ordinary path to not match")
	}
}
