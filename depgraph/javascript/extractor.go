package javascript

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/modulegraph/jsgraph/depgraph"
)

// extractCtx carries the accumulating module and the span sets used to
// dedupe require()/import() calls observed through two different walk
// paths (a bare call_expression and the variable_declarator that assigns
// its result).
type extractCtx struct {
	module             *depgraph.Module
	stats              *Stats
	dynamicImportsSeen map[depgraph.Span]bool
	requiresSeen       map[depgraph.Span]bool
}

// extract walks root and populates module's Imports/Exports plus stats.
func extract(root *sitter.Node, source []byte, module *depgraph.Module, stats *Stats) {
	ctx := &extractCtx{
		module:             module,
		stats:              stats,
		dynamicImportsSeen: map[depgraph.Span]bool{},
		requiresSeen:       map[depgraph.Span]bool{},
	}

	countTopLevelStatements(root, source, stats)
	walk(root, source, ctx)
}

// countTopLevelStatements classifies each direct child of Program, the only
// place import/export statements can legally appear.
func countTopLevelStatements(program *sitter.Node, source []byte, stats *Stats) {
	for i := 0; i < int(program.NamedChildCount()); i++ {
		stmt := program.NamedChild(i)
		switch stmt.Type() {
		case "import_statement", "import_alias":
			stats.ImportStatementCount++
			continue
		case "export_statement", "export_assignment":
			stats.ExportStatementCount++
			continue
		}

		if isAwaitedDynamicImportStatement(stmt, source) {
			// Not counted as an import/export statement or as "other" -
			// it's an ordinary expression that happens to load a module.
			continue
		}

		stats.OtherStatementCount++
	}
}

func isAwaitedDynamicImportStatement(stmt *sitter.Node, source []byte) bool {
	if stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
		return false
	}
	expr := stmt.NamedChild(0)
	if expr.Type() != "await_expression" || expr.NamedChildCount() == 0 {
		return false
	}
	_, _, ok := matchDynamicImportExpr(expr.NamedChild(0), source)
	return ok
}

func walk(n *sitter.Node, source []byte, ctx *extractCtx) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "import_statement":
		visitImportStatement(n, source, ctx)
	case "import_alias":
		visitImportAlias(n, source, ctx)
	case "export_statement":
		visitExportStatement(n, source, ctx)
	case "export_assignment":
		visitExportAssignment(n, source, ctx)
	case "call_expression":
		visitCallExpression(n, source, ctx)
	case "variable_declarator":
		visitVariableDeclarator(n, source, ctx)
	case "assignment_expression":
		visitAssignmentExpression(n, source, ctx)
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), source, ctx)
	}
}

// --- import declarations ---------------------------------------------------

func visitImportStatement(n *sitter.Node, source []byte, ctx *extractCtx) {
	// import X = require("mod"): the binding and source live in import_require_clause.
	if clause := findChildByType(n, "import_require_clause"); clause != nil {
		nameNode := findChildByType(clause, "identifier")
		if src, ok := findStringChild(clause, source); ok && nameNode != nil {
			typeOnly := hasDirectTypeKeyword(n, source)
			kind := depgraph.ImportedDefault
			if typeOnly {
				kind = depgraph.ImportedDefaultType
			}
			symbol := depgraph.ImportedSymbol{Kind: kind, Name: depgraph.AtomStr(nameNode.Content(source))}
			ctx.module.Imports = append(ctx.module.Imports, depgraph.Import{Kind: depgraph.SyncStatic,
				SourceRequest: depgraph.AtomStr(src), Span: spanOf(n), TypeOnly: typeOnly, Symbols: []depgraph.ImportedSymbol{symbol}})
		}
		return
	}

	sourceStr, ok := findStringChild(n, source)
	if !ok {
		return
	}

	typeOnly := hasDirectTypeKeyword(n, source)
	imp := depgraph.Import{
		Kind:          depgraph.AsyncStatic,
		SourceRequest: depgraph.AtomStr(sourceStr),
		Span:          spanOf(n),
		TypeOnly:      typeOnly,
	}

	if clause := findChildByType(n, "import_clause"); clause != nil {
		for i := 0; i < int(clause.NamedChildCount()); i++ {
			child := clause.NamedChild(i)
			switch child.Type() {
			case "identifier":
				kind := depgraph.ImportedDefault
				if typeOnly {
					kind = depgraph.ImportedDefaultType
				}
				imp.Symbols = append(imp.Symbols, depgraph.ImportedSymbol{Kind: kind, Name: depgraph.AtomStr(child.Content(source))})

			case "namespace_import":
				nameNode := lastNamedChild(child)
				if nameNode == nil {
					continue
				}
				kind := depgraph.ImportedNamespace
				if typeOnly {
					kind = depgraph.ImportedNamespaceType
				}
				imp.Symbols = append(imp.Symbols, depgraph.ImportedSymbol{Kind: kind, Name: depgraph.AtomStr(nameNode.Content(source))})

			case "named_imports":
				for j := 0; j < int(child.NamedChildCount()); j++ {
					spec := child.NamedChild(j)
					if spec.Type() != "import_specifier" {
						continue
					}
					imp.Symbols = append(imp.Symbols, importSpecifierSymbol(spec, source, typeOnly))
				}
			}
		}
	}

	ctx.module.Imports = append(ctx.module.Imports, imp)
}

func importSpecifierSymbol(spec *sitter.Node, source []byte, typeOnly bool) depgraph.ImportedSymbol {
	specTypeOnly := typeOnly || hasDirectTypeKeyword(spec, source)

	nameNode := spec.ChildByFieldName("name")
	aliasNode := spec.ChildByFieldName("alias")

	sourceName := nameNode.Content(source)
	localName := sourceName
	if aliasNode != nil {
		localName = aliasNode.Content(source)
	}

	kind := depgraph.ImportedValue
	if specTypeOnly {
		kind = depgraph.ImportedValueType
	}

	var sourceNamePtr *depgraph.AtomStr
	if sourceName == "default" {
		kind = depgraph.ImportedDefault
		if specTypeOnly {
			kind = depgraph.ImportedDefaultType
		}
	} else if sourceName != localName {
		a := depgraph.AtomStr(sourceName)
		sourceNamePtr = &a
	}

	return depgraph.ImportedSymbol{Kind: kind, SourceName: sourceNamePtr, Name: depgraph.AtomStr(localName)}
}

// import X = require("mod")
func visitImportAlias(n *sitter.Node, source []byte, ctx *extractCtx) {
	nameNode := n.ChildByFieldName("name")
	valueNode := n.ChildByFieldName("value")
	if nameNode == nil || valueNode == nil {
		return
	}

	src, ok := externalModuleReferenceSource(valueNode, source)
	if !ok {
		return
	}

	typeOnly := hasDirectTypeKeyword(n, source)
	kind := depgraph.ImportedDefault
	if typeOnly {
		kind = depgraph.ImportedDefaultType
	}

	ctx.module.Imports = append(ctx.module.Imports, depgraph.Import{
		Kind:          depgraph.SyncStatic,
		SourceRequest: depgraph.AtomStr(src),
		Span:          spanOf(n),
		TypeOnly:      typeOnly,
		Symbols: []depgraph.ImportedSymbol{
			{Kind: kind, Name: depgraph.AtomStr(nameNode.Content(source))},
		},
	})
}

func externalModuleReferenceSource(n *sitter.Node, source []byte) (string, bool) {
	if n.Type() == "import_require_clause" {
		if s, ok := findStringChild(n, source); ok {
			return s, true
		}
	}
	return findStringChild(n, source)
}

// --- export declarations ----------------------------------------------------

func visitExportStatement(n *sitter.Node, source []byte, ctx *extractCtx) {
	sourceStr, hasSource := findStringChild(n, source)

	// TypeScript's `export = value` is an export_statement with a direct "=".
	if findChildWithContent(n, source, "=") != nil {
		visitExportAssignment(n, source, ctx)
		return
	}

	if (findChildWithContent(n, source, "*") != nil || findChildByType(n, "namespace_export") != nil) && hasSource {
		visitExportAll(n, source, ctx, sourceStr)
		return
	}

	if findChildWithContent(n, source, "default") != nil {
		visitExportDefault(n, source, ctx)
		return
	}

	visitExportNamed(n, source, ctx, sourceStr, hasSource)
}

func visitExportAll(n *sitter.Node, source []byte, ctx *extractCtx, sourceStr string) {
	typeOnly := hasDirectTypeKeyword(n, source)
	kind := depgraph.ExportedNamespace
	if typeOnly {
		kind = depgraph.ExportedNamespaceType
	}

	var symbol depgraph.ExportedSymbol
	if ns := findChildByType(n, "namespace_export"); ns != nil {
		if nameNode := lastNamedChild(ns); nameNode != nil {
			symbol = depgraph.ExportedSymbol{Kind: kind, Name: depgraph.AtomStr(nameNode.Content(source))}
		}
	}
	if symbol.Name == "" {
		symbol = depgraph.ExportedSymbol{Kind: kind, Name: depgraph.AtomStr("*")}
	}

	src := depgraph.AtomStr(sourceStr)
	ctx.module.Exports = append(ctx.module.Exports, depgraph.Export{
		Kind:     depgraph.Modern,
		Source:   &src,
		Span:     spanPtr(n),
		TypeOnly: typeOnly,
		Symbols:  []depgraph.ExportedSymbol{symbol},
	})
}

func visitExportDefault(n *sitter.Node, source []byte, ctx *extractCtx) {
	decl := lastNamedChild(n)
	if decl == nil {
		return
	}

	typeOnly := decl.Type() == "interface_declaration" || decl.Type() == "enum_declaration"

	var symbol depgraph.ExportedSymbol
	switch decl.Type() {
	case "class_declaration", "function_declaration", "generator_function_declaration":
		if idNode := decl.ChildByFieldName("name"); idNode != nil {
			symbol = depgraph.ExportedSymbol{Kind: depgraph.ExportedDefault, Name: depgraph.AtomStr(idNode.Content(source))}
		}
	case "identifier":
		symbol = depgraph.ExportedSymbol{Kind: depgraph.ExportedDefault, Name: depgraph.AtomStr(decl.Content(source))}
	case "interface_declaration", "enum_declaration":
		name := "default"
		if idNode := decl.ChildByFieldName("name"); idNode != nil {
			name = idNode.Content(source)
		}
		symbol = depgraph.ExportedSymbol{Kind: depgraph.ExportedDefaultType, Name: depgraph.AtomStr(name)}
	}

	if symbol.Name == "" {
		symbol = depgraph.ExportedSymbol{Kind: depgraph.ExportedDefault, Name: depgraph.AtomStr("default")}
	}

	ctx.module.Exports = append(ctx.module.Exports, depgraph.Export{
		Kind:     depgraph.Modern,
		Span:     spanPtr(n),
		TypeOnly: typeOnly,
		Symbols:  []depgraph.ExportedSymbol{symbol},
	})
	ctx.stats.ExportsDefault = true
}

func visitExportNamed(n *sitter.Node, source []byte, ctx *extractCtx, sourceStr string, hasSource bool) {
	typeOnly := hasDirectTypeKeyword(n, source)
	var symbols []depgraph.ExportedSymbol

	if decl := findDeclarationChild(n); decl != nil {
		switch decl.Type() {
		case "lexical_declaration", "variable_declaration":
			for i := 0; i < int(decl.NamedChildCount()); i++ {
				declarator := decl.NamedChild(i)
				if declarator.Type() != "variable_declarator" {
					continue
				}
				exportBindingPattern(declarator.ChildByFieldName("name"), source, &symbols)
			}
		case "function_declaration", "generator_function_declaration", "class_declaration":
			if idNode := decl.ChildByFieldName("name"); idNode != nil {
				symbols = append(symbols, depgraph.ExportedSymbol{Kind: depgraph.ExportedValue, Name: depgraph.AtomStr(idNode.Content(source))})
			}
		case "type_alias_declaration", "interface_declaration", "enum_declaration", "module_declaration", "ambient_declaration":
			if idNode := decl.ChildByFieldName("name"); idNode != nil {
				symbols = append(symbols, depgraph.ExportedSymbol{Kind: depgraph.ExportedValueType, Name: depgraph.AtomStr(idNode.Content(source))})
			}
		}
	}

	if clause := findChildByType(n, "export_clause"); clause != nil {
		for i := 0; i < int(clause.NamedChildCount()); i++ {
			spec := clause.NamedChild(i)
			if spec.Type() != "export_specifier" {
				continue
			}
			nameNode := spec.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			specTypeOnly := typeOnly || hasDirectTypeKeyword(spec, source)
			kind := depgraph.ExportedValue
			if specTypeOnly {
				kind = depgraph.ExportedValueType
			}
			symbols = append(symbols, depgraph.ExportedSymbol{Kind: kind, Name: depgraph.AtomStr(nameNode.Content(source))})
		}
	}

	if len(symbols) == 0 {
		return
	}

	exp := depgraph.Export{Kind: depgraph.Modern, Span: spanPtr(n), TypeOnly: typeOnly, Symbols: symbols}
	if hasSource {
		src := depgraph.AtomStr(sourceStr)
		exp.Source = &src
	}
	ctx.module.Exports = append(ctx.module.Exports, exp)
}

// export = value
func visitExportAssignment(n *sitter.Node, source []byte, ctx *extractCtx) {
	ctx.module.Exports = append(ctx.module.Exports, depgraph.Export{
		Kind: depgraph.Modern,
		Span: spanPtr(n),
		Symbols: []depgraph.ExportedSymbol{
			{Kind: depgraph.ExportedDefault, Name: depgraph.AtomStr("default")},
		},
	})
}

// --- CommonJS and dynamic import -------------------------------------------

// require('mod') and bare import('mod') as expressions, whether they stand
// alone as a statement or appear nested (e.g. under await_expression). The
// binding-pattern variants of both are handled separately by
// visitVariableDeclarator, which dedupes against the same span sets.
func visitCallExpression(n *sitter.Node, source []byte, ctx *extractCtx) {
	if src, sp, ok := matchRequireCall(n, source); ok {
		if ctx.requiresSeen[sp] {
			return
		}
		ctx.requiresSeen[sp] = true

		ctx.module.Imports = append(ctx.module.Imports, depgraph.Import{
			Kind:          depgraph.SyncStatic,
			SourceRequest: depgraph.AtomStr(src),
			Span:          sp,
		})
		ctx.stats.RequireCount++
		return
	}

	if src, sp, ok := matchDynamicImportExpr(n, source); ok {
		if ctx.dynamicImportsSeen[sp] {
			return
		}
		ctx.dynamicImportsSeen[sp] = true

		ctx.module.Imports = append(ctx.module.Imports, depgraph.Import{
			Kind:          depgraph.AsyncDynamic,
			SourceRequest: depgraph.AtomStr(src),
			Span:          sp,
		})
		ctx.stats.DynamicImportCount++
	}
}

// { a, b } = await import('mod')
// { a, b } = require('mod')
func visitVariableDeclarator(n *sitter.Node, source []byte, ctx *extractCtx) {
	nameNode := n.ChildByFieldName("name")
	valueNode := n.ChildByFieldName("value")
	if valueNode == nil {
		return
	}

	if valueNode.Type() == "await_expression" && valueNode.NamedChildCount() > 0 {
		if src, sp, ok := matchDynamicImportExpr(valueNode.NamedChild(0), source); ok && !ctx.dynamicImportsSeen[sp] {
			ctx.dynamicImportsSeen[sp] = true
			imp := depgraph.Import{Kind: depgraph.AsyncDynamic, SourceRequest: depgraph.AtomStr(src), Span: sp}
			importBindingPattern(nameNode, source, &imp.Symbols)
			ctx.module.Imports = append(ctx.module.Imports, imp)
			ctx.stats.DynamicImportCount++
		}
	}

	if src, sp, ok := matchRequireCall(valueNode, source); ok && !ctx.requiresSeen[sp] {
		ctx.requiresSeen[sp] = true
		imp := depgraph.Import{Kind: depgraph.SyncStatic, SourceRequest: depgraph.AtomStr(src), Span: sp}
		importBindingPattern(nameNode, source, &imp.Symbols)
		ctx.module.Imports = append(ctx.module.Imports, imp)
		ctx.stats.RequireCount++
	}
}

func matchRequireCall(n *sitter.Node, source []byte) (string, depgraph.Span, bool) {
	if n == nil || n.Type() != "call_expression" {
		return "", depgraph.Span{}, false
	}
	fn := n.ChildByFieldName("function")
	if fn == nil || fn.Type() != "identifier" || fn.Content(source) != "require" {
		return "", depgraph.Span{}, false
	}
	args := n.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() != 1 {
		return "", depgraph.Span{}, false
	}
	arg := args.NamedChild(0)
	if arg.Type() != "string" {
		return "", depgraph.Span{}, false
	}
	return cleanStringContent(arg.Content(source)), spanOf(n), true
}

func matchDynamicImportExpr(n *sitter.Node, source []byte) (string, depgraph.Span, bool) {
	if n == nil || n.Type() != "call_expression" {
		return "", depgraph.Span{}, false
	}
	fn := n.ChildByFieldName("function")
	if fn == nil || fn.Type() != "import" {
		return "", depgraph.Span{}, false
	}
	args := n.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() < 1 {
		return "", depgraph.Span{}, false
	}
	arg := args.NamedChild(0)
	if arg.Type() != "string" {
		return "", depgraph.Span{}, false
	}
	return cleanStringContent(arg.Content(source)), spanOf(n), true
}

// module.exports = value
// exports.k = value
func visitAssignmentExpression(n *sitter.Node, source []byte, ctx *extractCtx) {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	if left == nil || right == nil || left.Type() != "member_expression" {
		return
	}

	obj := left.ChildByFieldName("object")
	prop := left.ChildByFieldName("property")
	if obj == nil || prop == nil {
		return
	}

	objName := obj.Content(source)
	propName := prop.Content(source)

	if objName == "module" && propName == "exports" {
		name := namedExpressionIdentifier(right, source)
		if name == "" {
			name = "default"
		}
		ctx.module.Exports = append(ctx.module.Exports, depgraph.Export{
			Kind: depgraph.Legacy,
			Span: spanPtr(n),
			Symbols: []depgraph.ExportedSymbol{
				{Kind: depgraph.ExportedDefault, Name: depgraph.AtomStr(name)},
			},
		})
		ctx.stats.ExportsDefault = true
		return
	}

	if objName == "exports" && propName != "" {
		ctx.module.Exports = append(ctx.module.Exports, depgraph.Export{
			Kind: depgraph.Legacy,
			Span: spanPtr(n),
			Symbols: []depgraph.ExportedSymbol{
				{Kind: depgraph.ExportedValue, Name: depgraph.AtomStr(propName)},
			},
		})
	}
}

func namedExpressionIdentifier(n *sitter.Node, source []byte) string {
	switch n.Type() {
	case "identifier":
		return n.Content(source)
	case "class", "function", "generator_function":
		if idNode := n.ChildByFieldName("name"); idNode != nil {
			return idNode.Content(source)
		}
	}
	return ""
}

// --- small node helpers ------------------------------------------------------

func spanOf(n *sitter.Node) depgraph.Span {
	return depgraph.Span{Start: n.StartByte(), End: n.EndByte()}
}

func spanPtr(n *sitter.Node) *depgraph.Span {
	s := spanOf(n)
	return &s
}

func findChildByType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() == nodeType {
			return child
		}
	}
	return nil
}

func findChildWithContent(n *sitter.Node, source []byte, content string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child != nil && child.Content(source) == content {
			return child
		}
	}
	return nil
}

// findStringChild returns the first direct string-literal child's unquoted
// content, searching only among direct children (a statement's own source
// clause, not a nested declaration's strings).
func findStringChild(n *sitter.Node, source []byte) (string, bool) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && child.Type() == "string" {
			return cleanStringContent(child.Content(source)), true
		}
	}
	return "", false
}

// hasDirectTypeKeyword reports whether n has a direct child whose literal
// text is "type" (the `import type`/`export type` marker).
func hasDirectTypeKeyword(n *sitter.Node, source []byte) bool {
	return findChildWithContent(n, source, "type") != nil
}

func lastNamedChild(n *sitter.Node) *sitter.Node {
	count := int(n.NamedChildCount())
	if count == 0 {
		return nil
	}
	return n.NamedChild(count - 1)
}

func findDeclarationChild(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "lexical_declaration", "variable_declaration", "function_declaration",
			"generator_function_declaration", "class_declaration", "type_alias_declaration",
			"interface_declaration", "enum_declaration", "module_declaration", "ambient_declaration":
			return child
		}
	}
	return nil
}

func cleanStringContent(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), "'\"")
}
