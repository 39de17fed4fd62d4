package config_test

// config_test.go — Tests for the security policy: trusted-domain and
// exclusion-glob matching (spec.md §4.B, §8 properties 6 and 7).

import (
	"testing"

	"github.com/godaddy/cli-sub001/internal/config"
)

func TestGetSecurityConfig_Defaults(t *testing.T) {
	cfg := config.GetSecurityConfig()
	if cfg.Mode != config.ModeStrict {
		t.Errorf("Mode = %q, want %q", cfg.Mode, config.ModeStrict)
	}
	want := []string{"*.godaddy.com", "localhost", "127.0.0.1"}
	for _, w := range want {
		if !contains(cfg.TrustedDomains, w) {
			t.Errorf("TrustedDomains missing %q", w)
		}
	}
}

func TestIsTrustedDomain_Wildcard(t *testing.T) {
	cfg := config.GetSecurityConfig()
	tests := []struct {
		host string
		want bool
	}{
		{"godaddy.com", true},
		{"api.godaddy.com", true},
		{"deep.sub.godaddy.com", true},
		{"notgodaddy.com", false},
		{"godaddy.com.evil.com", false},
		{"evilgodaddy.com", false},
		{"localhost", true},
		{"localhost:8080", true},
		{"127.0.0.1", true},
		{"127.0.0.1:3000", true},
		{"example.com", false},
		{"GODADDY.COM", true},
		{"API.GODADDY.COM", true},
	}
	for _, tc := range tests {
		if got := config.IsTrustedDomain(tc.host, cfg); got != tc.want {
			t.Errorf("IsTrustedDomain(%q) = %v, want %v", tc.host, got, tc.want)
		}
	}
}

func TestShouldExcludeFile(t *testing.T) {
	cfg := config.GetSecurityConfig()
	excluded := []string{
		"node_modules/left-pad/index.js",
		"src/node_modules/foo.js",
		"dist/bundle.js",
		"a/b/dist/bundle.js",
		"build/out.js",
		"__tests__/foo.test.js",
		`src\__tests__\foo.test.js`,
	}
	included := []string{
		"src/index.ts",
		"lib/util.js",
	}
	for _, p := range excluded {
		if !config.ShouldExcludeFile(p, cfg) {
			t.Errorf("ShouldExcludeFile(%q) = false, want true", p)
		}
	}
	for _, p := range included {
		if config.ShouldExcludeFile(p, cfg) {
			t.Errorf("ShouldExcludeFile(%q) = true, want false", p)
		}
	}
}

func TestShouldExcludeFile_Idempotent(t *testing.T) {
	cfg := config.GetSecurityConfig()
	path := "a/node_modules/b/c.js"
	first := config.ShouldExcludeFile(path, cfg)
	second := config.ShouldExcludeFile(path, cfg)
	if first != second {
		t.Errorf("ShouldExcludeFile not idempotent: %v != %v", first, second)
	}
	if !first {
		t.Errorf("expected %q to be excluded", path)
	}
}

func contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}
