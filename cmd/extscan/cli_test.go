package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/godaddy/cli-sub001/internal/workspace"
)

// withTempHome sets HOME to a temp dir for the duration of the test.
func withTempHome(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	return tmp
}

// ---------------------------------------------------------------------------
// Help / dispatch infrastructure
// ---------------------------------------------------------------------------

func TestCommandsSliceNotEmpty(t *testing.T) {
	if len(commands) == 0 {
		t.Fatal("commands slice is empty — no subcommands registered")
	}
}

func TestCommandsHaveRequiredFields(t *testing.T) {
	for _, cmd := range commands {
		if cmd.name == "" {
			t.Error("command with empty name found")
		}
		if cmd.short == "" {
			t.Errorf("command %q has empty short description", cmd.name)
		}
		if cmd.usage == "" {
			t.Errorf("command %q has empty usage line", cmd.name)
		}
		if cmd.run == nil {
			t.Errorf("command %q has nil run func", cmd.name)
		}
	}
}

func TestHelpContainsAllCommands(t *testing.T) {
	var sb strings.Builder
	printUsage(&sb)
	help := sb.String()
	for _, cmd := range commands {
		if !strings.Contains(help, cmd.name) {
			t.Errorf("help output missing command %q", cmd.name)
		}
	}
}

func TestDispatchNoArgs(t *testing.T) {
	if err := dispatch([]string{}); err != nil {
		t.Fatalf("dispatch with no args should not error: %v", err)
	}
}

func TestDispatchHelpFlag(t *testing.T) {
	for _, flag := range []string{"--help", "-h"} {
		if err := dispatch([]string{flag}); err != nil {
			t.Fatalf("dispatch(%q) should not error: %v", flag, err)
		}
	}
}

func TestDispatchHelpCmd(t *testing.T) {
	if err := dispatch([]string{"help"}); err != nil {
		t.Fatal(err)
	}
	for _, cmd := range commands {
		if err := dispatch([]string{"help", cmd.name}); err != nil {
			t.Fatalf("help %s: %v", cmd.name, err)
		}
	}
	if err := dispatch([]string{"help", "unknowncmd"}); err != nil {
		t.Fatalf("help unknowncmd should not error: %v", err)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	if err := dispatch([]string{"notacommand-xyz"}); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

// ---------------------------------------------------------------------------
// init command
// ---------------------------------------------------------------------------

func TestRunInitCreatesWorkspace(t *testing.T) {
	tmp := withTempHome(t)
	if err := dispatch([]string{"init", "myworkspace"}); err != nil {
		t.Fatalf("init: %v", err)
	}
	dir := filepath.Join(tmp, ".extscan", "myworkspace")
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("workspace dir not created: %v", err)
	}
}

func TestRunInitDuplicateFails(t *testing.T) {
	withTempHome(t)
	if err := dispatch([]string{"init", "dup"}); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if err := dispatch([]string{"init", "dup"}); err == nil {
		t.Fatal("expected error on duplicate init")
	}
}

func TestRunInitMissingArgFails(t *testing.T) {
	if err := dispatch([]string{"init"}); err == nil {
		t.Fatal("expected error for missing name arg")
	}
}

// ---------------------------------------------------------------------------
// add command
// ---------------------------------------------------------------------------

func TestRunAddMissingArgsFails(t *testing.T) {
	if err := dispatch([]string{"add"}); err == nil {
		t.Fatal("expected error for missing args")
	}
	if err := dispatch([]string{"add", "only-one"}); err == nil {
		t.Fatal("expected error for missing extension arg")
	}
}

func TestRunAddMissingWorkspaceFails(t *testing.T) {
	withTempHome(t)
	if err := runAdd([]string{"noworkspace", "ext"}); err == nil {
		t.Fatal("expected error for missing workspace")
	}
}

// ---------------------------------------------------------------------------
// scan command
// ---------------------------------------------------------------------------

func TestRunScanMissingArgFails(t *testing.T) {
	if err := dispatch([]string{"scan"}); err == nil {
		t.Fatal("expected error for missing dir arg")
	}
}

func TestRunScanCleanDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.js"), []byte("export const x = 1;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := dispatch([]string{"scan", dir}); err != nil {
		t.Fatalf("scan of clean dir without package.json: %v", err)
	}
}

func TestRunScanWritesMarkdownReport(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.js"), []byte("export const x = 1;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "report.md")
	if err := dispatch([]string{"scan", dir, "--markdown", out}); err != nil {
		t.Fatalf("scan --markdown: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("markdown report not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "---\n") {
		t.Errorf("expected markdown report to start with frontmatter, got: %s", data)
	}
}

func TestExtractMarkdownFlag(t *testing.T) {
	path, rest := extractMarkdownFlag([]string{"dir", "--markdown", "out.md"})
	if path != "out.md" {
		t.Errorf("path = %q, want out.md", path)
	}
	if len(rest) != 1 || rest[0] != "dir" {
		t.Errorf("rest = %+v, want [dir]", rest)
	}

	path, rest = extractMarkdownFlag([]string{"dir", "artifact"})
	if path != "" {
		t.Errorf("path = %q, want empty when flag absent", path)
	}
	if len(rest) != 2 {
		t.Errorf("rest = %+v, want unchanged args", rest)
	}
}

// ---------------------------------------------------------------------------
// gate command
// ---------------------------------------------------------------------------

func TestRunGateMissingArgsFails(t *testing.T) {
	if err := dispatch([]string{"gate"}); err == nil {
		t.Fatal("expected error for missing args")
	}
	if err := dispatch([]string{"gate", "onlyone"}); err == nil {
		t.Fatal("expected error for missing artifact arg")
	}
}

// ---------------------------------------------------------------------------
// rules command
// ---------------------------------------------------------------------------

func TestRunRulesPrintsSomething(t *testing.T) {
	if err := dispatch([]string{"rules"}); err != nil {
		t.Fatalf("rules: %v", err)
	}
}

// ---------------------------------------------------------------------------
// workspace registry wiring
// ---------------------------------------------------------------------------

func TestWorkspaceInitIsUsableAfterCLIInit(t *testing.T) {
	withTempHome(t)
	if err := dispatch([]string{"init", "w"}); err != nil {
		t.Fatal(err)
	}
	w, err := workspace.Open("w")
	if err != nil {
		t.Fatalf("Open after CLI init: %v", err)
	}
	names, err := w.ListExtensions()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Fatalf("expected 0 extensions, got %d", len(names))
	}
}
