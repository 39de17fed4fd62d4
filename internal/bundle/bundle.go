// Package bundle implements the Bundle Rule Engine (spec.md §4.G): a
// two-pass regex scanner over a minified deployment artifact, pattern
// families paired 1-to-1 with the source rule taxonomy.
package bundle

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/godaddy/cli-sub001/internal/report"
)

// Rule is a single bundle-mode detector: a pattern family plus an optional
// signal gate. Patterns are compiled fresh on every ScanBundle call so no
// regexp.Regexp is ever reused stateful across inputs (spec.md §3).
type Rule struct {
	ID             report.RuleID
	Severity       report.Severity
	Title          string
	Description    string
	SourceRuleID   report.RuleID
	Patterns       []string
	SignalPatterns []string
}

// ScanBundle reads the artifact at artifactPath as UTF-8 text and runs
// every rule in rs over it. A rule with non-empty SignalPatterns emits
// nothing unless at least one signal pattern matches the artifact text
// first (spec.md §4.G, invariant (v)).
func ScanBundle(artifactPath string, rs []Rule) (*report.ScanReport, error) {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}
	text := string(data)

	var findings []report.Finding
	for _, r := range rs {
		findings = append(findings, scanRule(text, artifactPath, r)...)
	}
	return report.Aggregate(0, findings), nil
}

func scanRule(text, artifactPath string, r Rule) []report.Finding {
	if len(r.SignalPatterns) > 0 && !anySignalMatches(text, r.SignalPatterns) {
		return nil
	}

	var findings []report.Finding
	for _, p := range r.Patterns {
		re := regexp.MustCompile(p)
		for _, loc := range re.FindAllStringIndex(text, -1) {
			line, col := lineCol(text, loc[0])
			findings = append(findings, report.Finding{
				RuleID:   r.ID,
				Severity: r.Severity,
				Message:  r.Description,
				File:     artifactPath,
				Line:     line,
				Col:      col,
				Snippet:  snippet(text, loc[0], loc[1]),
			})
		}
	}
	return findings
}

func anySignalMatches(text string, signals []string) bool {
	for _, p := range signals {
		if regexp.MustCompile(p).MatchString(text) {
			return true
		}
	}
	return false
}

// lineCol converts a byte offset into the artifact text into a 1-indexed
// line and column.
func lineCol(text string, offset int) (int, int) {
	if offset > len(text) {
		offset = len(text)
	}
	prefix := text[:offset]
	line := strings.Count(prefix, "\n") + 1
	if idx := strings.LastIndexByte(prefix, '\n'); idx >= 0 {
		return line, offset - idx
	}
	return line, offset + 1
}

const maxSnippetLen = 120

func snippet(text string, start, end int) string {
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		start = end
	}
	s := text[start:end]
	if len(s) > maxSnippetLen {
		s = s[:maxSnippetLen]
	}
	return s
}
