package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/godaddy/cli-sub001/internal/report"
)

func TestAggregate_TotalsAndBlocked(t *testing.T) {
	findings := []report.Finding{
		{RuleID: "SEC001", Severity: report.SeverityBlock, Message: "eval", File: "a.js", Line: 1, Col: 1},
		{RuleID: "SEC008", Severity: report.SeverityWarn, Message: "url", File: "a.js", Line: 2, Col: 1},
	}
	r := report.Aggregate(1, findings)
	if r.Summary.Total != len(findings) {
		t.Errorf("Total = %d, want %d", r.Summary.Total, len(findings))
	}
	if !r.Blocked {
		t.Error("expected Blocked = true when a block-severity finding is present")
	}
	if r.Summary.BySeverity[report.SeverityBlock] != 1 || r.Summary.BySeverity[report.SeverityWarn] != 1 {
		t.Errorf("bySeverity = %+v", r.Summary.BySeverity)
	}
	if r.Summary.ByRuleID["SEC001"] != 1 {
		t.Errorf("byRuleId[SEC001] = %d, want 1", r.Summary.ByRuleID["SEC001"])
	}
}

func TestAggregate_BySeverityKeysAlwaysPresent(t *testing.T) {
	r := report.Aggregate(0, nil)
	for _, sev := range []report.Severity{report.SeverityOff, report.SeverityWarn, report.SeverityBlock} {
		if _, ok := r.Summary.BySeverity[sev]; !ok {
			t.Errorf("bySeverity missing key %q for a clean report", sev)
		}
	}
}

func TestAggregate_NotBlockedWithoutBlockFinding(t *testing.T) {
	findings := []report.Finding{
		{RuleID: "SEC008", Severity: report.SeverityWarn, Message: "url", File: "a.js", Line: 1, Col: 1},
	}
	r := report.Aggregate(1, findings)
	if r.Blocked {
		t.Error("expected Blocked = false without any block-severity finding")
	}
}

func TestAggregate_ModeOrdering(t *testing.T) {
	source := []report.Finding{{RuleID: "SEC001", Severity: report.SeverityBlock, File: "a.js"}}
	scripts := []report.Finding{{RuleID: "SEC011", Severity: report.SeverityWarn, File: "package.json"}}
	bundle := []report.Finding{{RuleID: "SEC101", Severity: report.SeverityBlock, File: "bundle.js"}}
	r := report.Aggregate(1, source, scripts, bundle)
	if len(r.Findings) != 3 {
		t.Fatalf("expected 3 findings, got %d", len(r.Findings))
	}
	if r.Findings[0].RuleID != "SEC001" || r.Findings[1].RuleID != "SEC011" || r.Findings[2].RuleID != "SEC101" {
		t.Errorf("findings not in (source, scripts, bundle) order: %+v", r.Findings)
	}
}

func TestRenderText_Format(t *testing.T) {
	r := report.Aggregate(1, []report.Finding{
		{RuleID: "SEC001", Severity: report.SeverityBlock, Message: "dynamic eval", File: "a.js", Line: 3, Col: 5},
	})
	var buf bytes.Buffer
	if err := report.RenderText(&buf, r); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	if !strings.Contains(buf.String(), "a.js:3:5 [SEC001 block] dynamic eval") {
		t.Errorf("unexpected rendering: %s", buf.String())
	}
}

func TestRenderMarkdown_HasFrontmatter(t *testing.T) {
	r := report.Aggregate(0, nil)
	data, err := report.RenderMarkdown(r)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("---\n")) {
		t.Errorf("expected markdown to start with frontmatter delimiter, got: %s", data)
	}
}
