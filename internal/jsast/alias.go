package jsast

// AliasMaps links local identifiers bound in one source file back to the
// canonical module they came from, so rules can recognize "this call is
// really child_process.exec" across ESM, CommonJS, renamed, and
// namespaced import forms. See spec.md §3 "AliasMaps" and §4.C.
//
// An AliasMaps is built once per file and is never shared across files
// (invariant (iv), spec.md §3): it holds only identifiers bound by that
// file's own top-level statements.
type AliasMaps struct {
	// ModuleAliases maps a canonical module name to the set of local
	// identifiers bound to its default/CJS export.
	ModuleAliases map[string]map[string]bool
	// NamespaceAliases maps a canonical module name to the single local
	// identifier bound via `import * as N`.
	NamespaceAliases map[string]string
	// NamedImports maps a canonical module name to a mapping of original
	// export name -> locally-bound name.
	NamedImports map[string]map[string]string
}

func newAliasMaps() *AliasMaps {
	return &AliasMaps{
		ModuleAliases:    make(map[string]map[string]bool),
		NamespaceAliases: make(map[string]string),
		NamedImports:     make(map[string]map[string]string),
	}
}

func (a *AliasMaps) addModuleAlias(module, local string) {
	set, ok := a.ModuleAliases[module]
	if !ok {
		set = make(map[string]bool)
		a.ModuleAliases[module] = set
	}
	set[local] = true
}

func (a *AliasMaps) addNamedImport(module, original, local string) {
	m, ok := a.NamedImports[module]
	if !ok {
		m = make(map[string]string)
		a.NamedImports[module] = m
	}
	m[original] = local
}

// HasModuleAlias reports whether local is a recorded default/CJS alias or
// the namespace alias of module.
func (a *AliasMaps) HasModuleAlias(module, local string) bool {
	if a.ModuleAliases[module] != nil && a.ModuleAliases[module][local] {
		return true
	}
	return a.NamespaceAliases[module] == local && local != ""
}

// BuildAliasMaps walks the top-level statements of a parsed source file
// (root is the Program node) and computes its AliasMaps in a single pass,
// per spec.md §4.C.
func BuildAliasMaps(root *Node) *AliasMaps {
	maps := newAliasMaps()
	if root == nil {
		return maps
	}
	for _, stmt := range root.NamedChildren() {
		processTopLevelStatement(unwrapExport(stmt), maps)
	}
	return maps
}

// unwrapExport peels an `export ...` wrapper to reach the inner
// declaration, so `export const x = require('m')` is recognized the same
// as the bare form. `export { x } from 'm'` has no inner declarator and is
// left as-is (ignored by the alias passes below).
func unwrapExport(n *Node) *Node {
	if n == nil || n.Kind() != KindExportStatement {
		return n
	}
	if decl := n.ChildByFieldName("declaration"); decl != nil {
		return decl
	}
	return n
}

func processTopLevelStatement(stmt *Node, maps *AliasMaps) {
	if stmt == nil {
		return
	}
	switch stmt.Kind() {
	case KindImportStatement:
		processImportStatement(stmt, maps)
	case KindLexicalDeclaration, KindVariableDeclaration:
		for _, child := range stmt.NamedChildren() {
			if child.Kind() == KindVariableDeclarator {
				processRequireDeclarator(child, maps)
			}
		}
	}
}

func processImportStatement(stmt *Node, maps *AliasMaps) {
	source := stmt.ChildByFieldName("source")
	if source == nil {
		for _, c := range stmt.NamedChildren() {
			if c.Kind() == KindString {
				source = c
				break
			}
		}
	}
	module, ok := literalStringValue(source)
	if !ok {
		return
	}

	for _, clause := range stmt.NamedChildren() {
		switch clause.Kind() {
		case KindIdentifier:
			// Bare default import: `import d from 'M'`.
			maps.addModuleAlias(module, clause.Text())
		case KindNamespaceImport:
			if id := firstIdentifier(clause); id != nil {
				maps.NamespaceAliases[module] = id.Text()
			}
		case KindNamedImports:
			for _, spec := range clause.NamedChildren() {
				if spec.Kind() != KindImportSpecifier {
					continue
				}
				processImportSpecifier(spec, module, maps)
			}
		case KindImportClause:
			// Some grammar versions wrap the default/namespace/named
			// children inside an explicit import_clause node; recurse.
			for _, inner := range clause.NamedChildren() {
				switch inner.Kind() {
				case KindIdentifier:
					maps.addModuleAlias(module, inner.Text())
				case KindNamespaceImport:
					if id := firstIdentifier(inner); id != nil {
						maps.NamespaceAliases[module] = id.Text()
					}
				case KindNamedImports:
					for _, spec := range inner.NamedChildren() {
						if spec.Kind() == KindImportSpecifier {
							processImportSpecifier(spec, module, maps)
						}
					}
				}
			}
		}
	}
}

func processImportSpecifier(spec *Node, module string, maps *AliasMaps) {
	name := spec.ChildByFieldName("name")
	alias := spec.ChildByFieldName("alias")
	if name == nil {
		if ids := identifierChildren(spec); len(ids) > 0 {
			name = ids[0]
			if len(ids) > 1 {
				alias = ids[1]
			}
		}
	}
	if name == nil {
		return
	}
	local := name.Text()
	if alias != nil {
		local = alias.Text()
	}
	maps.addNamedImport(module, name.Text(), local)
}

// processRequireDeclarator recognizes `const X = require('M')` and
// `const { a, b: c } = require('M')` at statement scope.
func processRequireDeclarator(decl *Node, maps *AliasMaps) {
	name := decl.ChildByFieldName("name")
	value := decl.ChildByFieldName("value")
	module, ok := requireModule(value)
	if !ok || name == nil {
		return
	}
	switch name.Kind() {
	case KindIdentifier:
		maps.addModuleAlias(module, name.Text())
	case KindObjectPattern:
		for _, prop := range name.NamedChildren() {
			switch prop.Kind() {
			case KindShorthandPropertyIdentifierPattern:
				maps.addNamedImport(module, prop.Text(), prop.Text())
			case KindPairPattern:
				key := prop.ChildByFieldName("key")
				val := prop.ChildByFieldName("value")
				if key == nil || val == nil {
					continue // computed key or malformed pattern: ignored
				}
				if key.Kind() != KindPropertyIdentifier && key.Kind() != KindIdentifier && key.Kind() != KindString {
					continue // computed key: ignored
				}
				keyName := key.Text()
				if key.Kind() == KindString {
					if s, ok := literalStringValue(key); ok {
						keyName = s
					}
				}
				maps.addNamedImport(module, keyName, val.Text())
			default:
				// rest_pattern (spread) and anything else: ignored.
			}
		}
	}
}

// requireModule reports whether value is a call to the bare `require`
// function with a single string-literal argument, and if so returns that
// module string.
func requireModule(value *Node) (string, bool) {
	if value == nil || value.Kind() != KindCallExpression {
		return "", false
	}
	fn := value.ChildByFieldName("function")
	if fn == nil || fn.Kind() != KindIdentifier || fn.Text() != "require" {
		return "", false
	}
	args := value.ChildByFieldName("arguments")
	if args == nil {
		return "", false
	}
	namedArgs := args.NamedChildren()
	if len(namedArgs) != 1 {
		return "", false
	}
	return literalStringValue(namedArgs[0])
}

func firstIdentifier(n *Node) *Node {
	ids := identifierChildren(n)
	if len(ids) == 0 {
		return nil
	}
	return ids[0]
}

func identifierChildren(n *Node) []*Node {
	var out []*Node
	for _, c := range n.NamedChildren() {
		if c.Kind() == KindIdentifier {
			out = append(out, c)
		}
	}
	return out
}

// literalStringValue returns the string value of a string literal or a
// substitution-free template literal, and false otherwise. Mirrors
// getStringLiteralValue from spec.md §4.D; kept unexported here since
// matchers.go re-exports it as GetStringLiteralValue.
func literalStringValue(n *Node) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Kind() {
	case KindString:
		t := n.Text()
		if len(t) >= 2 {
			return t[1 : len(t)-1], true
		}
		return "", true
	case KindTemplateString:
		for _, c := range n.NamedChildren() {
			if c.Kind() == KindTemplateSubstitution {
				return "", false
			}
		}
		t := n.Text()
		if len(t) >= 2 {
			return t[1 : len(t)-1], true
		}
		return "", true
	default:
		return "", false
	}
}
