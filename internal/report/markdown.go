package report

// markdown.go renders a ScanReport as a markdown document carrying a YAML
// frontmatter summary, for attaching to a PR or an audit trail. Built on
// the teacher's generic frontmatter helper (internal/frontmatter).

import (
	"fmt"
	"strings"

	"github.com/godaddy/cli-sub001/internal/frontmatter"
)

// markdownMeta is the YAML frontmatter block of a rendered report.
type markdownMeta struct {
	Blocked      bool             `yaml:"blocked"`
	Total        int              `yaml:"total"`
	BySeverity   map[Severity]int `yaml:"bySeverity"`
	ScannedFiles int              `yaml:"scannedFiles"`
}

// RenderMarkdown produces a markdown document with a YAML frontmatter
// summary followed by one bullet per finding, suitable for writing to
// disk alongside the JSON wire report.
func RenderMarkdown(r *ScanReport) ([]byte, error) {
	meta := markdownMeta{
		Blocked:      r.Blocked,
		Total:        r.Summary.Total,
		BySeverity:   r.Summary.BySeverity,
		ScannedFiles: r.ScannedFiles,
	}

	var body strings.Builder
	body.WriteString("# Security scan findings\n\n")
	if len(r.Findings) == 0 {
		body.WriteString("No findings.\n")
	}
	for _, f := range r.Findings {
		fmt.Fprintf(&body, "- `%s:%d:%d` **[%s %s]** %s\n", f.File, f.Line, f.Col, f.RuleID, f.Severity, f.Message)
	}

	return frontmatter.Write(meta, body.String())
}
