// Package jsast wraps a tree-sitter concrete syntax tree for JavaScript and
// TypeScript source into the closed node-kind vocabulary the rule engine
// dispatches on (spec.md §9 "Dynamic dispatch on AST kinds"), plus the
// per-file alias tracking (spec.md §4.C) and the primitive AST predicates
// (spec.md §4.D) rules are built from.
package jsast

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Kind is the closed enumeration of grammar node types the rule engine and
// matcher library understand. Any grammar node type not listed here maps to
// KindOther; rules that need finer distinctions inspect GrammarType().
type Kind int

// The kind vocabulary. Names follow the tree-sitter-javascript /
// tree-sitter-typescript grammars' node type strings.
const (
	KindOther Kind = iota
	KindProgram
	KindCallExpression
	KindNewExpression
	KindMemberExpression
	KindSubscriptExpression
	KindIdentifier
	KindPropertyIdentifier
	KindString
	KindTemplateString
	KindTemplateSubstitution
	KindImportStatement
	KindImportClause
	KindImportSpecifier
	KindNamespaceImport
	KindNamedImports
	KindVariableDeclarator
	KindLexicalDeclaration
	KindVariableDeclaration
	KindObjectPattern
	KindPairPattern
	KindShorthandPropertyIdentifierPattern
	KindRestPattern
	KindAssignmentExpression
	KindUnaryExpression
	KindArguments
	KindExportStatement
)

var grammarToKind = map[string]Kind{
	"program":                                  KindProgram,
	"call_expression":                          KindCallExpression,
	"new_expression":                           KindNewExpression,
	"member_expression":                        KindMemberExpression,
	"subscript_expression":                     KindSubscriptExpression,
	"identifier":                               KindIdentifier,
	"shorthand_property_identifier":             KindIdentifier,
	"property_identifier":                      KindPropertyIdentifier,
	"string":                                   KindString,
	"template_string":                          KindTemplateString,
	"template_substitution":                    KindTemplateSubstitution,
	"import_statement":                         KindImportStatement,
	"import_clause":                            KindImportClause,
	"import_specifier":                         KindImportSpecifier,
	"namespace_import":                         KindNamespaceImport,
	"named_imports":                            KindNamedImports,
	"variable_declarator":                      KindVariableDeclarator,
	"lexical_declaration":                      KindLexicalDeclaration,
	"variable_declaration":                     KindVariableDeclaration,
	"object_pattern":                           KindObjectPattern,
	"pair_pattern":                             KindPairPattern,
	"shorthand_property_identifier_pattern":    KindShorthandPropertyIdentifierPattern,
	"rest_pattern":                             KindRestPattern,
	"assignment_expression":                    KindAssignmentExpression,
	"unary_expression":                         KindUnaryExpression,
	"arguments":                                KindArguments,
	"export_statement":                         KindExportStatement,
}

// Node is a position-bearing wrapper around a tree-sitter node, scoped to
// the SourceFile it was parsed from.
type Node struct {
	raw    *sitter.Node
	source []byte
}

func wrap(raw *sitter.Node, source []byte) *Node {
	if raw == nil {
		return nil
	}
	return &Node{raw: raw, source: source}
}

// Kind returns the node's closed-vocabulary kind.
func (n *Node) Kind() Kind {
	if n == nil || n.raw == nil {
		return KindOther
	}
	if k, ok := grammarToKind[n.raw.Type()]; ok {
		return k
	}
	return KindOther
}

// GrammarType returns the underlying tree-sitter node type string verbatim,
// for rules that need to distinguish grammar productions KindOther erases.
func (n *Node) GrammarType() string {
	if n == nil || n.raw == nil {
		return ""
	}
	return n.raw.Type()
}

// Text returns the node's exact source text.
func (n *Node) Text() string {
	if n == nil || n.raw == nil {
		return ""
	}
	return n.raw.Content(n.source)
}

// Line returns the node's 1-indexed start line.
func (n *Node) Line() int {
	if n == nil || n.raw == nil {
		return 0
	}
	return int(n.raw.StartPoint().Row) + 1
}

// Col returns the node's 1-indexed start column.
func (n *Node) Col() int {
	if n == nil || n.raw == nil {
		return 0
	}
	return int(n.raw.StartPoint().Column) + 1
}

// StartByte returns the node's byte offset into the source, for callers
// that need to compute positions relative to a larger buffer.
func (n *Node) StartByte() int {
	if n == nil || n.raw == nil {
		return 0
	}
	return int(n.raw.StartByte())
}

// ChildByFieldName returns the named grammar field of n, or nil.
func (n *Node) ChildByFieldName(name string) *Node {
	if n == nil || n.raw == nil {
		return nil
	}
	return wrap(n.raw.ChildByFieldName(name), n.source)
}

// NamedChildCount returns the number of named children.
func (n *Node) NamedChildCount() int {
	if n == nil || n.raw == nil {
		return 0
	}
	return int(n.raw.NamedChildCount())
}

// NamedChild returns the i-th named child, or nil if out of range.
func (n *Node) NamedChild(i int) *Node {
	if n == nil || n.raw == nil {
		return nil
	}
	return wrap(n.raw.NamedChild(i), n.source)
}

// NamedChildren returns all named children in order.
func (n *Node) NamedChildren() []*Node {
	count := n.NamedChildCount()
	out := make([]*Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

// Parent returns n's parent node, or nil at the root.
func (n *Node) Parent() *Node {
	if n == nil || n.raw == nil {
		return nil
	}
	return wrap(n.raw.Parent(), n.source)
}

// Walk performs a depth-first preorder traversal of n and its descendants,
// invoking visit on each node. If visit returns false, that node's subtree
// is not descended into. Mirrors the forEachChild-style traversal Design
// Notes §9 calls for.
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, child := range n.NamedChildren() {
		child.Walk(visit)
	}
}
