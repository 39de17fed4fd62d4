// Package discovery enumerates the extension source files a scan should
// consider: regular files with a recognized JS/TS extension, recursively
// under a root, honoring the scanner's exclusion globs.
//
// See spec.md §4.A.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/godaddy/cli-sub001/internal/config"
)

// sourceExtensions are the file extensions File Discovery considers.
var sourceExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
}

// hardExcludedDirs are skipped regardless of cfg.Exclude: a path whose
// components intersect this set, at any depth, is never descended into.
var hardExcludedDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"__tests__":    true,
}

// Discover walks root recursively and returns the absolute paths of every
// candidate source file, sorted for deterministic enumeration order. It
// does not follow symbolic links. A permission error on a subtree is
// skipped (that subtree is omitted from the result) rather than aborting
// the whole walk; a nonexistent root is a fatal, returned error.
func Discover(root string, cfg *config.SecurityConfig) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("discovery: resolve root %s: %w", root, err)
	}
	if info, err := os.Stat(absRoot); err != nil {
		return nil, fmt.Errorf("discovery: root %s: %w", root, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("discovery: root %s is not a directory", root)
	}

	var files []string
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != absRoot && hardExcludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !sourceExtensions[filepath.Ext(d.Name())] {
			return nil
		}
		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			rel = path
		}
		if config.ShouldExcludeFile(rel, cfg) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("discovery: walk %s: %w", root, walkErr)
	}
	sort.Strings(files)
	return files, nil
}
