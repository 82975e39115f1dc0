package javascript

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/stretchr/testify/require"

	"github.com/modulegraph/jsgraph/depgraph"
)

func extractJS(t *testing.T, source string) (*depgraph.Module, *Stats) {
	t.Helper()
	return extractWithLanguage(t, source, javascript.GetLanguage())
}

func extractTS(t *testing.T, source string) (*depgraph.Module, *Stats) {
	t.Helper()
	return extractWithLanguage(t, source, typescript.GetLanguage())
}

func extractWithLanguage(t *testing.T, source string, lang *sitter.Language) (*depgraph.Module, *Stats) {
	t.Helper()

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	require.NoError(t, err)
	defer tree.Close()

	module := &depgraph.Module{Path: "entry.js"}
	stats := &Stats{}
	extract(tree.RootNode(), []byte(source), module, stats)
	return module, stats
}

func TestStaticImportForms(t *testing.T) {
	module, stats := extractJS(t, `
import Default from "a";
import * as ns from "b";
import { x, y as z } from "c";
import "d";
`)

	require.Len(t, module.Imports, 4)
	require.Equal(t, 4, stats.ImportStatementCount)

	def := module.Imports[0]
	require.Equal(t, depgraph.AtomStr("a"), def.SourceRequest)
	require.Len(t, def.Symbols, 1)
	require.Equal(t, depgraph.ImportedDefault, def.Symbols[0].Kind)
	require.Equal(t, depgraph.AtomStr("Default"), def.Symbols[0].Name)

	namespace := module.Imports[1]
	require.Equal(t, depgraph.ImportedNamespace, namespace.Symbols[0].Kind)
	require.Equal(t, depgraph.AtomStr("ns"), namespace.Symbols[0].Name)

	named := module.Imports[2]
	require.Len(t, named.Symbols, 2)
	require.Equal(t, depgraph.AtomStr("x"), named.Symbols[0].Name)
	require.Nil(t, named.Symbols[0].SourceName)
	require.Equal(t, depgraph.AtomStr("z"), named.Symbols[1].Name)
	require.Equal(t, depgraph.AtomStr("y"), *named.Symbols[1].SourceName)

	sideEffect := module.Imports[3]
	require.True(t, sideEffect.IsSideEffect())
}

func TestRequireDeduplicatesAcrossDeclaratorAndCall(t *testing.T) {
	module, stats := extractJS(t, `const fs = require("fs");`)

	require.Len(t, module.Imports, 1)
	require.Equal(t, 1, stats.RequireCount)
	require.Equal(t, depgraph.SyncStatic, module.Imports[0].Kind)
	require.Equal(t, depgraph.AtomStr("fs"), module.Imports[0].SourceRequest)
	require.Len(t, module.Imports[0].Symbols, 1)
	require.Equal(t, depgraph.AtomStr("fs"), module.Imports[0].Symbols[0].Name)
}

func TestBareRequireStatement(t *testing.T) {
	module, stats := extractJS(t, `require("side-effect");`)

	require.Len(t, module.Imports, 1)
	require.Equal(t, 1, stats.RequireCount)
	require.Empty(t, module.Imports[0].Symbols)
}

func TestDynamicImportDestructure(t *testing.T) {
	module, stats := extractJS(t, `
async function load() {
  const { a, b: renamed } = await import("lazy");
}
`)

	require.Len(t, module.Imports, 1)
	require.Equal(t, 1, stats.DynamicImportCount)
	imp := module.Imports[0]
	require.Equal(t, depgraph.AsyncDynamic, imp.Kind)
	require.Equal(t, depgraph.AtomStr("lazy"), imp.SourceRequest)
	require.Len(t, imp.Symbols, 2)
}

func TestBareDynamicImportExpression(t *testing.T) {
	module, stats := extractJS(t, `import("./lazy-chunk");`)

	require.Len(t, module.Imports, 1)
	require.Equal(t, 1, stats.DynamicImportCount)
	imp := module.Imports[0]
	require.Equal(t, depgraph.AsyncDynamic, imp.Kind)
	require.Equal(t, depgraph.AtomStr("./lazy-chunk"), imp.SourceRequest)
	require.Empty(t, imp.Symbols)
}

func TestAwaitedDynamicImportStatementDeduplicatesAndDoesNotCountAsOther(t *testing.T) {
	module, stats := extractJS(t, `
await import("./eager");
async function load() {
  await import("./lazy");
}
`)

	require.Len(t, module.Imports, 2)
	require.Equal(t, 2, stats.DynamicImportCount)
	require.Equal(t, depgraph.AtomStr("./eager"), module.Imports[0].SourceRequest)
	require.Equal(t, depgraph.AtomStr("./lazy"), module.Imports[1].SourceRequest)
	// Only the function declaration counts as "other"; the top-level
	// awaited import statement does not.
	require.Equal(t, 1, stats.OtherStatementCount)
}

func TestDynamicImportDestructureDefaultKeyHasNoSourceName(t *testing.T) {
	module, _ := extractJS(t, `
const { default: D, a, b: c, ...rest } = await import("./p");
`)

	require.Len(t, module.Imports, 1)
	symbols := module.Imports[0].Symbols
	require.Len(t, symbols, 4)

	require.Equal(t, depgraph.ImportedDefault, symbols[0].Kind)
	require.Equal(t, depgraph.AtomStr("D"), symbols[0].Name)
	require.Nil(t, symbols[0].SourceName)

	require.Equal(t, depgraph.ImportedValue, symbols[1].Kind)
	require.Equal(t, depgraph.AtomStr("a"), symbols[1].Name)

	require.Equal(t, depgraph.ImportedValue, symbols[2].Kind)
	require.Equal(t, depgraph.AtomStr("c"), symbols[2].Name)
	require.Equal(t, depgraph.AtomStr("b"), *symbols[2].SourceName)

	require.Equal(t, depgraph.ImportedNamespace, symbols[3].Kind)
	require.Equal(t, depgraph.AtomStr("rest"), symbols[3].Name)
}

func TestCommonJSExportForms(t *testing.T) {
	module, stats := extractJS(t, `
module.exports = MyClass;
exports.helper = helperFn;
`)

	require.Len(t, module.Exports, 2)
	require.True(t, stats.ExportsDefault)

	def := module.Exports[0]
	require.Equal(t, depgraph.Legacy, def.Kind)
	require.Equal(t, depgraph.ExportedDefault, def.Symbols[0].Kind)
	require.Equal(t, depgraph.AtomStr("MyClass"), def.Symbols[0].Name)

	named := module.Exports[1]
	require.Equal(t, depgraph.ExportedValue, named.Symbols[0].Kind)
	require.Equal(t, depgraph.AtomStr("helper"), named.Symbols[0].Name)
}

func TestESMExportForms(t *testing.T) {
	module, _ := extractJS(t, `
export default function named() {}
export const a = 1, b = 2;
export { a as renamedA };
export * from "reexport";
export * as ns from "namespace-reexport";
`)

	require.Len(t, module.Exports, 5)

	defaultExport := module.Exports[0]
	require.Equal(t, depgraph.ExportedDefault, defaultExport.Symbols[0].Kind)
	require.Equal(t, depgraph.AtomStr("named"), defaultExport.Symbols[0].Name)

	constExport := module.Exports[1]
	require.Len(t, constExport.Symbols, 2)

	clauseExport := module.Exports[2]
	require.Equal(t, depgraph.AtomStr("a"), clauseExport.Symbols[0].Name)

	starExport := module.Exports[3]
	require.NotNil(t, starExport.Source)
	require.Equal(t, depgraph.AtomStr("reexport"), *starExport.Source)
	require.Equal(t, depgraph.ExportedNamespace, starExport.Symbols[0].Kind)

	namedStarExport := module.Exports[4]
	require.Equal(t, depgraph.AtomStr("ns"), namedStarExport.Symbols[0].Name)
}

func TestTypeScriptImportEqualsRequire(t *testing.T) {
	module, _ := extractTS(t, `import fs = require("fs");`)

	require.Len(t, module.Imports, 1)
	require.Equal(t, depgraph.SyncStatic, module.Imports[0].Kind)
	require.Equal(t, depgraph.AtomStr("fs"), module.Imports[0].SourceRequest)
}

func TestTypeScriptExportAssignment(t *testing.T) {
	module, _ := extractTS(t, `export = MyModule;`)

	require.Len(t, module.Exports, 1)
	require.Equal(t, depgraph.Modern, module.Exports[0].Kind)
	require.Equal(t, depgraph.ExportedDefault, module.Exports[0].Symbols[0].Kind)
}

func TestTypeOnlyImportAndExport(t *testing.T) {
	module, _ := extractTS(t, `
import type { Foo } from "types";
export type { Foo };
`)

	require.Len(t, module.Imports, 1)
	require.True(t, module.Imports[0].TypeOnly)
	require.Equal(t, depgraph.ImportedValueType, module.Imports[0].Symbols[0].Kind)

	require.Len(t, module.Exports, 1)
	require.True(t, module.Exports[0].TypeOnly)
}

func TestModuleIsExternal(t *testing.T) {
	m := &depgraph.Module{Path: "/proj/node_modules/lodash/index.js"}
	require.True(t, m.IsExternal())

	m2 := &depgraph.Module{Path: "/proj/src/index.js"}
	require.False(t, m2.IsExternal())
}
