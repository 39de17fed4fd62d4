package bundle

import "github.com/godaddy/cli-sub001/internal/report"

// moduleSignal builds the signal pattern family for a builtin module name:
// plain require, node: prefix, and the bundler-synthesized wrapper forms
// bundlers commonly rewrite require("<module>") into (spec.md §4.G).
func moduleSignal(module string) []string {
	return []string{
		`require\(\s*["']` + `(?:node:)?` + module + `["']\s*\)`,
		`__require\(\s*["']` + `(?:node:)?` + module + `["']\s*\)`,
		`require_` + module + `\s*\(`,
	}
}

// DefaultRules returns the bundle-mode rule set, paired 1-to-1 with the
// source taxonomy per spec.md §4.G's coverage table. SEC104 has no source
// counterpart and does not exist.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:           "SEC101",
			Severity:     report.SeverityBlock,
			Title:        "Dynamic code evaluation",
			Description:  "bundle contains dynamic code evaluation (eval/new Function)",
			SourceRuleID: "SEC001",
			Patterns: []string{
				`\beval\s*\(`,
				`globalThis\.eval\s*\(`,
				`new\s+Function\s*\(`,
				`eval\s*\(\s*atob\s*\(`,
			},
		},
		{
			ID:           "SEC102",
			Severity:     report.SeverityBlock,
			Title:        "child_process usage",
			Description:  "bundle imports and calls into child_process",
			SourceRuleID: "SEC002",
			Patterns: []string{
				`\.(exec|execSync|execFile|execFileSync|spawn|spawnSync|fork)\s*\(`,
				`\["(exec|execSync|execFile|execFileSync|spawn|spawnSync|fork)"\]\s*\(`,
				`\b(exec|execSync|execFile|execFileSync|spawn|spawnSync|fork)\s*\(`,
			},
			SignalPatterns: moduleSignal("child_process"),
		},
		{
			ID:           "SEC103",
			Severity:     report.SeverityBlock,
			Title:        "vm module usage",
			Description:  "bundle imports and calls into the vm module",
			SourceRuleID: "SEC003",
			Patterns: []string{
				`\.(runInContext|runInNewContext|runInThisContext|createContext)\s*\(`,
				`\["(runInContext|runInNewContext|runInThisContext|createContext)"\]\s*\(`,
				`new\s+\w+\.Script\s*\(`,
			},
			SignalPatterns: moduleSignal("vm"),
		},
		{
			ID:           "SEC105",
			Severity:     report.SeverityBlock,
			Title:        "Native addon loading",
			Description:  "bundle loads a compiled native addon",
			SourceRuleID: "SEC005",
			Patterns: []string{
				`require\(\s*["'][^"']+\.node["']\s*\)`,
				`__require\(\s*["'][^"']+\.node["']\s*\)`,
				`\.dlopen\s*\(`,
				`\["dlopen"\]\s*\(`,
			},
		},
		{
			ID:           "SEC106",
			Severity:     report.SeverityBlock,
			Title:        "Module loader tampering",
			Description:  "bundle reassigns Module loader internals or require.cache",
			SourceRuleID: "SEC006",
			Patterns: []string{
				`\.(_load|_resolveFilename)\s*=`,
				`\["_(load|resolveFilename)"\]\s*=`,
				`\._extensions\s*\[[^\]]+\]\s*=`,
				`\.cache\s*\[[^\]]+\]\s*=`,
				`delete\s+\w+\.cache\s*\[`,
			},
			SignalPatterns: moduleSignal("module"),
		},
		{
			ID:           "SEC107",
			Severity:     report.SeverityBlock,
			Title:        "inspector usage",
			Description:  "bundle imports the inspector module",
			SourceRuleID: "SEC007",
			Patterns:     moduleSignal("inspector"),
		},
		{
			ID:           "SEC108",
			Severity:     report.SeverityWarn,
			Title:        "Untrusted external URL",
			Description:  "bundle references an external URL",
			SourceRuleID: "SEC008",
			Patterns: []string{
				`https?://[^\s'"` + "`" + `]+`,
			},
		},
		{
			ID:           "SEC109",
			Severity:     report.SeverityWarn,
			Title:        "Large encoded blob",
			Description:  "bundle decodes a large base64/hex/atob literal",
			SourceRuleID: "SEC009",
			Patterns: []string{
				`Buffer\.from\(\s*["'][A-Za-z0-9+/=]{201,}["']\s*,\s*["'](base64|hex)["']\s*\)`,
				`atob\(\s*["'][A-Za-z0-9+/=]{201,}["']\s*\)`,
			},
		},
		{
			ID:           "SEC110",
			Severity:     report.SeverityWarn,
			Title:        "Sensitive operation",
			Description:  "bundle references a sensitive filesystem path or credential store",
			SourceRuleID: "SEC010",
			Patterns: []string{
				`~/\.ssh`,
				`/etc/passwd`,
				`/etc/shadow`,
				`/var/run/secrets`,
				`/\.ssh/`,
				`/\.aws/credentials`,
				`/\.env\b`,
			},
		},
	}
}
