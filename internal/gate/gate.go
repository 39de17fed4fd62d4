// Package gate implements the Orchestrator (spec.md §4.I): the single
// entry point that runs the source scan, the lifecycle-script scan, and
// the bundle scan together and decides whether a deployment artifact may
// proceed.
package gate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/godaddy/cli-sub001/internal/bundle"
	"github.com/godaddy/cli-sub001/internal/config"
	"github.com/godaddy/cli-sub001/internal/report"
	"github.com/godaddy/cli-sub001/internal/rules"
)

// Result is gate's decision: whether the artifact may proceed to
// deployment, and the full merged report that led to that decision.
type Result struct {
	Proceed bool
	Report  *report.ScanReport
}

// Gate scans extDir's source tree, extDir's package.json lifecycle
// scripts, and the bundled artifact at artifactPath, then merges their
// findings in (source, scripts, bundle) order (spec.md §5). If the merged
// report is blocked, artifactPath and sourcemapPath (when non-empty) are
// deleted best-effort and Proceed is false; otherwise the artifact is left
// untouched and Proceed is true.
//
// An I/O failure discovering source files, or a malformed package.json,
// surfaces as an error with nothing deleted. A failure reading the
// artifact itself surfaces as an error too, but is additionally treated as
// a blocking condition: the caller should not deploy an artifact gate
// could not even read (spec.md "Failure semantics").
func Gate(extDir, artifactPath, sourcemapPath string, rs []rules.Rule, brs []bundle.Rule) (*Result, error) {
	cfg := config.GetSecurityConfig()

	sourceFindings, scanned, err := rules.ScanTree(extDir, rs, cfg)
	if err != nil {
		return nil, fmt.Errorf("source scan: %w", err)
	}

	scriptFindings, err := rules.ScanLifecycleScripts(filepath.Join(extDir, "package.json"))
	if err != nil {
		return nil, fmt.Errorf("lifecycle script scan: %w", err)
	}

	bundleReport, err := bundle.ScanBundle(artifactPath, brs)
	if err != nil {
		return &Result{Proceed: false}, fmt.Errorf("bundle scan: %w", err)
	}

	merged := report.Aggregate(scanned, sourceFindings, scriptFindings, bundleReport.Findings)

	result := &Result{Report: merged, Proceed: !merged.Blocked}
	if merged.Blocked {
		removeBestEffort(artifactPath)
		if sourcemapPath != "" {
			removeBestEffort(sourcemapPath)
		}
	}
	return result, nil
}

func removeBestEffort(path string) {
	_ = os.Remove(path)
}
