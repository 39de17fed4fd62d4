package rules

import (
	"fmt"
	"os"

	"github.com/godaddy/cli-sub001/internal/config"
	"github.com/godaddy/cli-sub001/internal/discovery"
	"github.com/godaddy/cli-sub001/internal/jsast"
	"github.com/godaddy/cli-sub001/internal/report"
)

// RuleIDParseFailure is the internal rule ID scanTree reports a file's
// findings under when the file could not be parsed (spec.md §4.E).
const RuleIDParseFailure report.RuleID = "SEC000"

// ScanFile parses sourceText, builds the node visitors for rules, and
// walks the resulting AST in depth-first preorder, invoking every
// registered handler for each node kind it encounters. Findings are
// returned in the order Context.Report was called (spec.md §4.E).
//
// aliasMaps is accepted as a parameter per spec.md §4.E's contract; pass
// nil to have ScanFile build it from the freshly parsed file itself.
func ScanFile(path string, sourceText []byte, rs []Rule, cfg *config.SecurityConfig, aliasMaps *jsast.AliasMaps) ([]report.Finding, error) {
	sf, err := jsast.Parse(path, sourceText)
	if err != nil {
		return nil, err
	}
	defer sf.Close()

	if aliasMaps == nil {
		aliasMaps = jsast.BuildAliasMaps(sf.Root)
	}
	return scanParsedFile(sf, path, rs, cfg, aliasMaps), nil
}

func scanParsedFile(sf *jsast.SourceFile, path string, rs []Rule, cfg *config.SecurityConfig, aliasMaps *jsast.AliasMaps) []report.Finding {
	ctx := &Context{
		SourceFile: sf,
		FilePath:   path,
		Config:     cfg,
		Aliases:    aliasMaps,
	}

	visitors := make([]NodeVisitor, len(rs))
	for i, r := range rs {
		visitors[i] = r.Create(ctx)
	}
	for _, v := range visitors {
		if v.OnFileStart != nil {
			v.OnFileStart(ctx)
		}
	}

	sf.Root.Walk(func(n *jsast.Node) bool {
		kind := n.Kind()
		for _, v := range visitors {
			if h, ok := v.Handlers[kind]; ok {
				h(ctx, n)
			}
		}
		return true
	})

	return ctx.findings
}

// ScanTree runs the source rule engine over every discovered file under
// root and returns the aggregated findings (not yet merged with scripts
// or bundle findings; that is internal/gate's job). A file that fails to
// parse, or whose tree contains a syntax error, contributes one SEC000
// warn finding instead of aborting the scan.
func ScanTree(root string, rs []Rule, cfg *config.SecurityConfig) ([]report.Finding, int, error) {
	files, err := discovery.Discover(root, cfg)
	if err != nil {
		return nil, 0, err
	}

	var all []report.Finding
	scanned := 0
	for _, path := range files {
		source, readErr := os.ReadFile(path)
		if readErr != nil {
			all = append(all, report.Finding{
				RuleID:   RuleIDParseFailure,
				Severity: report.SeverityWarn,
				Message:  fmt.Sprintf("could not read file: %v", readErr),
				File:     path,
				Line:     1,
				Col:      1,
			})
			continue
		}

		sf, parseErr := jsast.Parse(path, source)
		if parseErr != nil {
			all = append(all, report.Finding{
				RuleID:   RuleIDParseFailure,
				Severity: report.SeverityWarn,
				Message:  fmt.Sprintf("parse error: %v", parseErr),
				File:     path,
				Line:     1,
				Col:      1,
			})
			continue
		}
		if sf.HasSyntaxError() {
			all = append(all, report.Finding{
				RuleID:   RuleIDParseFailure,
				Severity: report.SeverityWarn,
				Message:  "source contains a syntax error; skipped",
				File:     path,
				Line:     1,
				Col:      1,
				Snippet:  snippetAround(source, 0, 80),
			})
			sf.Close()
			scanned++
			continue
		}

		aliasMaps := jsast.BuildAliasMaps(sf.Root)
		findings := scanParsedFile(sf, path, rs, cfg, aliasMaps)
		sf.Close()
		all = append(all, findings...)
		scanned++
	}
	return all, scanned, nil
}

func snippetAround(source []byte, offset, length int) string {
	end := offset + length
	if end > len(source) {
		end = len(source)
	}
	if offset > end {
		offset = end
	}
	return string(source[offset:end])
}
