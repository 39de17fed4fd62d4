package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/godaddy/cli-sub001/internal/report"
)

// RuleIDLifecycleScript is SEC011's rule ID, reported by ScanLifecycleScripts
// rather than through the NodeVisitor engine: it runs textually over a
// package manifest, not over an AST (spec.md §4.F).
const RuleIDLifecycleScript report.RuleID = "SEC011"

// lifecycleScriptNames are the only package.json scripts npm/yarn/pnpm run
// without the developer explicitly invoking them; any other script name is
// ignored (spec.md §4.F).
var lifecycleScriptNames = []string{"install", "preinstall", "postinstall"}

// lifecycleScriptPatterns match command text commonly used to fetch and
// execute a remote payload during an install hook. All are evaluated
// case-insensitively.
var lifecycleScriptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bcurl\b`),
	regexp.MustCompile(`(?i)\bwget\b`),
	regexp.MustCompile(`(?i)\bbash\s+-c\b`),
	regexp.MustCompile(`(?i)\bsh\s+-c\b`),
	regexp.MustCompile(`(?i)\bpowershell\b(\s+-enc(odedcommand)?\b)?`),
	regexp.MustCompile(`(?i)(^|[^\w.])nc\s`),
	regexp.MustCompile(`(?i)\bmkfifo\b`),
	regexp.MustCompile(`(?i)\beval\b`),
	regexp.MustCompile(`(?i)\bexec\b`),
}

type packageManifest struct {
	Scripts map[string]string `json:"scripts"`
}

// ScanLifecycleScripts reads the package.json manifest at manifestPath and
// flags any of its install/preinstall/postinstall scripts whose text
// matches a known payload-delivery pattern (spec.md §4.F). A missing
// manifest or malformed JSON is an error; a manifest with no scripts map
// yields no findings.
func ScanLifecycleScripts(manifestPath string) ([]report.Finding, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading package manifest: %w", err)
	}

	var manifest packageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing package manifest: %w", err)
	}

	var findings []report.Finding
	for _, name := range lifecycleScriptNames {
		script, ok := manifest.Scripts[name]
		if !ok {
			continue
		}
		for _, pattern := range lifecycleScriptPatterns {
			if match := pattern.FindString(script); match != "" {
				findings = append(findings, report.Finding{
					RuleID:   RuleIDLifecycleScript,
					Severity: report.SeverityWarn,
					Message:  fmt.Sprintf("lifecycle script %q looks like it fetches or executes a remote payload (matched %q)", name, match),
					File:     manifestPath,
					Line:     1,
					Col:      1,
					Snippet:  script,
				})
				break
			}
		}
	}
	return findings, nil
}
