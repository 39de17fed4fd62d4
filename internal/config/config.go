// Package config provides the scanner's immutable security policy: the
// trusted-domain allowlist consulted by the external-URL rule and the
// exclusion globs consulted by file discovery.
package config

import (
	"net"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Mode selects the policy profile a scan runs under. "strict" is the only
// supported value in this design (spec.md §6).
type Mode string

// ModeStrict is the sole supported Mode.
const ModeStrict Mode = "strict"

// SecurityConfig is the scanner's policy: operating mode, trusted domains
// for the external-URL rule, and exclusion globs for file discovery.
//
// A SecurityConfig is immutable once returned by GetSecurityConfig and is
// safe for concurrent use by multiple goroutines scanning distinct files.
type SecurityConfig struct {
	Mode           Mode
	TrustedDomains []string
	Exclude        []string
}

var defaultConfig = &SecurityConfig{
	Mode: ModeStrict,
	TrustedDomains: []string{
		"*.godaddy.com",
		"localhost",
		"127.0.0.1",
	},
	Exclude: []string{
		"**/node_modules/**",
		"**/dist/**",
		"**/build/**",
		"**/__tests__/**",
	},
}

// GetSecurityConfig returns the single canonical scanner policy. Callers
// must treat the returned value as read-only; it is shared across the
// lifetime of a scan (and across scans in the same process).
func GetSecurityConfig() *SecurityConfig {
	return defaultConfig
}

// IsTrustedDomain reports whether host (optionally "host:port") is trusted
// under cfg. Matching is case-insensitive. A "*.X" entry in
// cfg.TrustedDomains matches X itself and any "Y.X" with a non-empty Y; it
// does not match a hostname that merely contains X as a substring.
func IsTrustedDomain(host string, cfg *SecurityConfig) bool {
	host = stripPort(host)
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" {
		return false
	}
	for _, pattern := range cfg.TrustedDomains {
		pattern = strings.ToLower(pattern)
		if strings.HasPrefix(pattern, "*.") {
			suffix := pattern[1:] // ".X"
			base := pattern[2:]   // "X"
			if host == base || strings.HasSuffix(host, suffix) {
				return true
			}
			continue
		}
		if host == pattern {
			return true
		}
	}
	return false
}

// stripPort removes an optional trailing ":port" from host. It tolerates
// inputs without a port and does not attempt full URL authority parsing
// (callers are expected to have already extracted the host component).
func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

// ShouldExcludeFile reports whether path matches one of cfg.Exclude. Path
// separators are normalized to "/" before matching, and "**" in a pattern
// matches any number of path components (doublestar semantics). The
// function is idempotent and independent of the host OS's path separator.
func ShouldExcludeFile(path string, cfg *SecurityConfig) bool {
	normalized := strings.ReplaceAll(filepath.ToSlash(path), "\\", "/")
	normalized = strings.TrimPrefix(normalized, "/")
	for _, pattern := range cfg.Exclude {
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
	}
	return false
}
