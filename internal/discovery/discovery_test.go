package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/godaddy/cli-sub001/internal/config"
	"github.com/godaddy/cli-sub001/internal/discovery"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("// x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover_FindsSourceFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.ts"))
	writeFile(t, filepath.Join(root, "lib", "util.js"))
	writeFile(t, filepath.Join(root, "lib", "ignore.txt"))
	writeFile(t, filepath.Join(root, "node_modules", "dep", "index.js"))
	writeFile(t, filepath.Join(root, "dist", "bundle.js"))
	writeFile(t, filepath.Join(root, "__tests__", "foo.test.js"))

	got, err := discovery.Discover(root, config.GetSecurityConfig())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	var rels []string
	for _, p := range got {
		rel, _ := filepath.Rel(root, p)
		rels = append(rels, filepath.ToSlash(rel))
	}

	want := map[string]bool{"index.ts": true, "lib/util.js": true}
	if len(rels) != len(want) {
		t.Fatalf("Discover found %v, want exactly %v", rels, want)
	}
	for _, r := range rels {
		if !want[r] {
			t.Errorf("unexpected file in result: %s", r)
		}
	}
}

func TestDiscover_NonexistentRoot(t *testing.T) {
	_, err := discovery.Discover(filepath.Join(t.TempDir(), "does-not-exist"), config.GetSecurityConfig())
	if err == nil {
		t.Fatal("expected error for nonexistent root")
	}
}

func TestDiscover_DoesNotFollowSymlinkOutsideRoot(t *testing.T) {
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "secret.ts"))

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.ts"))
	if err := os.Symlink(outside, filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got, err := discovery.Discover(root, config.GetSecurityConfig())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	for _, p := range got {
		if filepath.Dir(p) == filepath.Join(root, "linked") {
			t.Errorf("discovered file through symlink: %s", p)
		}
	}
}
