package jsast

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// SourceFile is a parsed JS/TS source file: the concrete syntax tree plus
// the bytes it was parsed from. Its lifetime is scoped to a single file
// scan (spec.md §3 "Lifecycle").
type SourceFile struct {
	Path   string
	Source []byte
	Root   *Node

	tree *sitter.Tree
}

// Close releases the underlying tree-sitter tree. Safe to call on nil.
func (f *SourceFile) Close() {
	if f == nil || f.tree == nil {
		return
	}
	f.tree.Close()
}

// languageFor selects the tree-sitter grammar for a file by extension.
// .ts uses the TypeScript grammar, .tsx and .jsx use the TSX grammar
// (a superset that also parses plain JS), and everything else uses the
// JavaScript grammar.
func languageFor(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts":
		return typescript.GetLanguage()
	case ".tsx", ".jsx":
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// Parse parses source as the language implied by path's extension and
// returns the resulting SourceFile. A syntax error from tree-sitter's
// parser is not itself fatal (tree-sitter produces a best-effort tree with
// ERROR nodes); Parse only fails if the parser cannot run at all.
func Parse(path string, source []byte) (*SourceFile, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(languageFor(path))

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("jsast: parse %s: %w", path, err)
	}
	root := tree.RootNode()
	if root == nil {
		tree.Close()
		return nil, fmt.Errorf("jsast: parse %s: empty tree", path)
	}
	return &SourceFile{
		Path:   path,
		Source: source,
		Root:   wrap(root, source),
		tree:   tree,
	}, nil
}

// HasSyntaxError reports whether the parsed tree contains an ERROR or
// MISSING node, the tree-sitter signal for "this is not valid syntax."
// scanTree (spec.md §4.E) treats a syntax-error tree the same as an
// unparseable file: one SEC000 finding, scan continues.
func (f *SourceFile) HasSyntaxError() bool {
	if f == nil || f.Root == nil {
		return true
	}
	return hasError(f.Root.raw)
}

func hasError(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	if n.IsError() || n.IsMissing() {
		return true
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if hasError(n.NamedChild(i)) {
			return true
		}
	}
	return false
}
