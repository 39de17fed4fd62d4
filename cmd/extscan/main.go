// Command extscan is a thin CLI over the scanner core: it exercises
// internal/rules, internal/bundle, and internal/gate locally and tracks a
// small set of extension directories in a YAML workspace registry. It
// never touches OAuth, a GraphQL publish API, or the bundler itself.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/godaddy/cli-sub001/internal/bundle"
	"github.com/godaddy/cli-sub001/internal/config"
	"github.com/godaddy/cli-sub001/internal/gate"
	"github.com/godaddy/cli-sub001/internal/report"
	"github.com/godaddy/cli-sub001/internal/rules"
	"github.com/godaddy/cli-sub001/internal/workspace"
)

// command describes a CLI subcommand.
type command struct {
	name  string
	short string
	usage string
	long  string
	run   func(args []string) error
}

var commands = []command{
	{
		name:  "init",
		short: "Create a new extscan workspace",
		usage: "extscan init <name>",
		long: `Create a new extscan workspace at ~/.extscan/<name>/.

Errors if the workspace already exists.
`,
		run: runInit,
	},
	{
		name:  "add",
		short: "Track an extension in a workspace",
		usage: "extscan add <workspace> <extension>",
		long: `Track a new extension in an existing workspace.

Prompts for its source directory, built artifact path, and optional
sourcemap path, and writes ~/.extscan/<workspace>/<extension>.yaml.

Errors if the extension already exists.
`,
		run: runAdd,
	},
	{
		name:  "scan",
		short: "Run the source and script rules over a directory",
		usage: "extscan scan <dir>",
		long: `Run the source rule engine and the lifecycle-script rule over <dir>.

Prints one line per finding and a summary, then exits non-zero if any
finding is severity block.

  --markdown <path>   also write a Markdown report with YAML frontmatter
`,
		run: runScan,
	},
	{
		name:  "gate",
		short: "Run the full deployment gate over an extension and artifact",
		usage: "extscan gate <dir> <artifact> [sourcemap]",
		long: `Run source, script, and bundle scans together and decide whether the
given artifact may proceed to deployment. A blocked verdict deletes the
artifact (and sourcemap, if given).

  --markdown <path>   also write a Markdown report with YAML frontmatter
`,
		run: runGate,
	},
	{
		name:  "rules",
		short: "List the active source and bundle rules",
		usage: "extscan rules",
		long:  `Print every registered source and bundle rule ID, its default severity, and title.`,
		run:   runRules,
	},
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "extscan — static security scanner for extension source and deployment artifacts\n\n")
	fmt.Fprintf(w, "Usage:\n  extscan <command> [arguments]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.name, cmd.short)
	}
	fmt.Fprintf(w, "\nRun 'extscan help <command>' for details on a specific command.\n")
}

func printCommandHelp(w io.Writer, name string) {
	for _, cmd := range commands {
		if cmd.name == name {
			fmt.Fprintf(w, "Usage: %s\n\n%s", cmd.usage, cmd.long)
			return
		}
	}
	fmt.Fprintf(w, "extscan: unknown command %q\n\nRun 'extscan help' for usage.\n", name)
}

// extractMarkdownFlag pulls a trailing "--markdown <path>" pair out of args,
// returning the path (empty if absent) and the remaining positional args.
func extractMarkdownFlag(args []string) (string, []string) {
	for i, a := range args {
		if a == "--markdown" && i+1 < len(args) {
			path := args[i+1]
			rest := append([]string{}, args[:i]...)
			rest = append(rest, args[i+2:]...)
			return path, rest
		}
	}
	return "", args
}

func dispatch(args []string) error {
	if len(args) == 0 || args[0] == "--help" || args[0] == "-h" {
		printUsage(os.Stdout)
		return nil
	}
	if args[0] == "help" {
		if len(args) >= 2 {
			printCommandHelp(os.Stdout, args[1])
		} else {
			printUsage(os.Stdout)
		}
		return nil
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(args[1:])
		}
	}
	return fmt.Errorf("unknown command %q\n\nRun 'extscan help' for usage.", args[0])
}

// ---------------------------------------------------------------------------
// init
// ---------------------------------------------------------------------------

func runInit(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: extscan init <name>")
	}
	name := args[0]
	if err := workspace.Init(name); err != nil {
		return err
	}
	home, _ := os.UserHomeDir()
	fmt.Printf("created workspace %q at %s\n", name, filepath.Join(home, ".extscan", name))
	return nil
}

// ---------------------------------------------------------------------------
// add
// ---------------------------------------------------------------------------

var addQuestions = []string{"sourceDir", "artifactPath", "sourcemapPath"}

func runAdd(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: extscan add <workspace> <extension>")
	}
	workspaceName := args[0]
	extensionName := args[1]

	w, err := workspace.Open(workspaceName)
	if err != nil {
		return err
	}

	answers, err := promptStrings(addQuestions)
	if err != nil {
		return fmt.Errorf("prompt: %w", err)
	}

	entry := workspace.ExtensionEntry{
		SourceDir:     answers["sourceDir"],
		ArtifactPath:  answers["artifactPath"],
		SourcemapPath: answers["sourcemapPath"],
	}
	if err := w.AddExtension(extensionName, entry); err != nil {
		return err
	}
	fmt.Printf("added extension %q to workspace %q\n", extensionName, workspaceName)
	return nil
}

// ---------------------------------------------------------------------------
// scan
// ---------------------------------------------------------------------------

func runScan(args []string) error {
	markdownPath, args := extractMarkdownFlag(args)
	if len(args) < 1 {
		return fmt.Errorf("usage: extscan scan <dir> [--markdown <path>]")
	}
	dir := args[0]
	cfg := config.GetSecurityConfig()

	findings, scanned, err := rules.ScanTree(dir, rules.DefaultRules(), cfg)
	if err != nil {
		return err
	}
	scriptFindings, err := rules.ScanLifecycleScripts(filepath.Join(dir, "package.json"))
	if err != nil {
		// A missing package.json is common for a bare source directory; only
		// surface the error if the manifest exists but is malformed.
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	r := report.Aggregate(scanned, findings, scriptFindings)
	if err := report.RenderText(os.Stdout, r); err != nil {
		return err
	}
	if markdownPath != "" {
		if err := writeMarkdownReport(markdownPath, r); err != nil {
			return err
		}
	}
	if r.Blocked {
		os.Exit(1)
	}
	return nil
}

// ---------------------------------------------------------------------------
// gate
// ---------------------------------------------------------------------------

func runGate(args []string) error {
	markdownPath, args := extractMarkdownFlag(args)
	if len(args) < 2 {
		return fmt.Errorf("usage: extscan gate <dir> <artifact> [sourcemap] [--markdown <path>]")
	}
	dir := args[0]
	artifact := args[1]
	sourcemap := ""
	if len(args) >= 3 {
		sourcemap = args[2]
	}

	result, err := gate.Gate(dir, artifact, sourcemap, rules.DefaultRules(), bundle.DefaultRules())
	if err != nil {
		return err
	}
	if err := report.RenderText(os.Stdout, result.Report); err != nil {
		return err
	}
	if markdownPath != "" {
		if err := writeMarkdownReport(markdownPath, result.Report); err != nil {
			return err
		}
	}
	if !result.Proceed {
		fmt.Println("BLOCKED: artifact deleted")
		os.Exit(1)
	}
	fmt.Println("PROCEED")
	return nil
}

// writeMarkdownReport renders r as Markdown with YAML frontmatter and
// writes it to path.
func writeMarkdownReport(path string, r *report.ScanReport) error {
	data, err := report.RenderMarkdown(r)
	if err != nil {
		return fmt.Errorf("rendering markdown report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ---------------------------------------------------------------------------
// rules
// ---------------------------------------------------------------------------

func runRules(args []string) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	type ruleInfo struct {
		ID       string `json:"id"`
		Severity string `json:"severity"`
		Title    string `json:"title"`
	}
	var infos []ruleInfo
	for _, r := range rules.DefaultRules() {
		infos = append(infos, ruleInfo{ID: string(r.Meta.ID), Severity: string(r.Meta.DefaultSeverity), Title: r.Meta.Title})
	}
	for _, r := range bundle.DefaultRules() {
		infos = append(infos, ruleInfo{ID: string(r.ID), Severity: string(r.Severity), Title: r.Title})
	}
	return enc.Encode(infos)
}

// ---------------------------------------------------------------------------
// TUI prompt helper
// ---------------------------------------------------------------------------

// promptModel is a bubbletea model that asks one question at a time.
type promptModel struct {
	keys   []string
	idx    int
	inputs []textinput.Model
	done   bool
}

func newPromptModel(keys []string) promptModel {
	inputs := make([]textinput.Model, len(keys))
	for i, k := range keys {
		ti := textinput.New()
		ti.Placeholder = k
		ti.CharLimit = 512
		inputs[i] = ti
	}
	m := promptModel{keys: keys, inputs: inputs}
	if len(inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.idx < len(m.inputs)-1 {
				m.inputs[m.idx].Blur()
				m.idx++
				m.inputs[m.idx].Focus()
				return m, textinput.Blink
			}
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.inputs[m.idx], cmd = m.inputs[m.idx].Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || len(m.keys) == 0 {
		return ""
	}
	return fmt.Sprintf("%s: %s\n", m.keys[m.idx], m.inputs[m.idx].View())
}

// promptStrings runs the TUI and returns answers keyed by question name.
func promptStrings(keys []string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}
	m := newPromptModel(keys)
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return nil, err
	}
	final, ok := result.(promptModel)
	if !ok || !final.done {
		return nil, fmt.Errorf("prompt cancelled")
	}
	answers := make(map[string]string, len(keys))
	for i, k := range keys {
		answers[k] = final.inputs[i].Value()
	}
	return answers, nil
}

func main() {
	if err := dispatch(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
