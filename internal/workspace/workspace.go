// Package workspace manages the ~/.extscan/ directory hierarchy: a
// YAML-backed registry of tracked extension directories, each carrying an
// optional trustedDomains/exclude override layered on top of the
// immutable global SecurityConfig. Adapted from the teacher's
// internal/container, which managed a similar ~/.iguana/<container>/
// registry of per-project plugin config.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/godaddy/cli-sub001/internal/config"
)

// Workspace represents a named extscan workspace directory (~/.extscan/<name>/).
type Workspace struct {
	Dir string
}

// ExtensionEntry stores a tracked extension's source directory and its
// config overrides, persisted as <workspace>/<extension>.yaml.
type ExtensionEntry struct {
	SourceDir      string   `yaml:"sourceDir"`
	ArtifactPath   string   `yaml:"artifactPath,omitempty"`
	SourcemapPath  string   `yaml:"sourcemapPath,omitempty"`
	TrustedDomains []string `yaml:"trustedDomains,omitempty"`
	Exclude        []string `yaml:"exclude,omitempty"`
}

// EffectiveConfig layers e's overrides on top of the global SecurityConfig:
// any non-empty override list replaces (not merges with) the base list, so
// a workspace entry can narrow or widen either list independently.
func (e ExtensionEntry) EffectiveConfig(base *config.SecurityConfig) *config.SecurityConfig {
	cfg := &config.SecurityConfig{
		Mode:           base.Mode,
		TrustedDomains: base.TrustedDomains,
		Exclude:        base.Exclude,
	}
	if len(e.TrustedDomains) > 0 {
		cfg.TrustedDomains = e.TrustedDomains
	}
	if len(e.Exclude) > 0 {
		cfg.Exclude = e.Exclude
	}
	return cfg
}

// baseDir returns ~/.extscan.
func baseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, ".extscan"), nil
}

// Init creates ~/.extscan/<name>/ and errors if it already exists.
func Init(name string) error {
	base, err := baseDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(base, name)
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("workspace %q already exists at %s", name, dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	return nil
}

// Open opens an existing workspace directory. Returns an error if not found.
func Open(name string) (*Workspace, error) {
	base, err := baseDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(base, name)
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("workspace %q not found (run 'extscan init %s' first)", name, name)
	}
	return &Workspace{Dir: dir}, nil
}

// entryPath returns the path to <extension>.yaml inside the workspace.
func (w *Workspace) entryPath(name string) string {
	return filepath.Join(w.Dir, name+".yaml")
}

// AddExtension writes an extension entry. Errors if it already exists.
func (w *Workspace) AddExtension(name string, entry ExtensionEntry) error {
	path := w.entryPath(name)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("extension %q already exists in workspace", name)
	}
	data, err := yaml.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal extension entry: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write extension entry: %w", err)
	}
	return nil
}

// LoadExtension reads and parses an extension entry.
func (w *Workspace) LoadExtension(name string) (*ExtensionEntry, error) {
	data, err := os.ReadFile(w.entryPath(name))
	if err != nil {
		return nil, fmt.Errorf("read extension %q: %w", name, err)
	}
	var entry ExtensionEntry
	if err := yaml.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("parse extension %q: %w", name, err)
	}
	return &entry, nil
}

// ListExtensions returns extension names derived from *.yaml files in the workspace.
func (w *Workspace) ListExtensions() ([]string, error) {
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return nil, fmt.Errorf("read workspace dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	return names, nil
}

// RemoveExtension removes an extension's entry file.
func (w *Workspace) RemoveExtension(name string) error {
	path := w.entryPath(name)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("extension %q not found in workspace", name)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove extension entry: %w", err)
	}
	return nil
}

// List returns the names of all workspaces under ~/.extscan/.
func List() ([]string, error) {
	base, err := baseDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read extscan dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Remove deletes a workspace and all its contents.
func Remove(name string) error {
	base, err := baseDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(base, name)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("workspace %q not found", name)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	return nil
}
