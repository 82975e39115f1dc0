package depgraph_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modulegraph/jsgraph/depgraph"
	_ "github.com/modulegraph/jsgraph/depgraph/javascript"
	_ "github.com/modulegraph/jsgraph/depgraph/json"
	"github.com/modulegraph/jsgraph/resolve"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newGraph(dir string) *depgraph.ModuleGraph {
	catalog := resolve.NewDefaultPackageCatalog()
	resolver := resolve.NewDefaultResolver(catalog)
	return depgraph.NewModuleGraph(resolver, catalog)
}

func TestLoadModuleResolvesImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "entry.js"), `import { helper } from "./util";`)
	writeFile(t, filepath.Join(dir, "util.js"), `export function helper() {}`)

	g := newGraph(dir)
	entry, err := g.LoadModule(filepath.Join(dir, "entry.js"))
	require.NoError(t, err)
	require.Len(t, entry.Imports, 1)
	require.NotEqual(t, depgraph.UnresolvedModuleId, entry.Imports[0].ModuleId)

	util, ok := g.Module(entry.Imports[0].ModuleId)
	require.True(t, ok)
	require.Len(t, util.Exports, 1)
}

func TestLoadModuleHandlesImportCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.js"), `const b = require("./b");`)
	writeFile(t, filepath.Join(dir, "b.js"), `const a = require("./a");`)

	g := newGraph(dir)
	a, err := g.LoadModule(filepath.Join(dir, "a.js"))
	require.NoError(t, err)
	require.Len(t, g.Modules(), 2)

	b, ok := g.Module(a.Imports[0].ModuleId)
	require.True(t, ok)
	require.Equal(t, a.Id, b.Imports[0].ModuleId)
}

func TestLoadModuleJSONExport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "entry.js"), `const data = require("./data.json");`)
	writeFile(t, filepath.Join(dir, "data.json"), `{"name": "fixture"}`)

	g := newGraph(dir)
	entry, err := g.LoadModule(filepath.Join(dir, "entry.js"))
	require.NoError(t, err)

	dataModule, ok := g.Module(entry.Imports[0].ModuleId)
	require.True(t, ok)
	require.Equal(t, depgraph.KindJson, dataModule.Source.Kind())
}

func TestPathNodesBetweenTargets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.js"), `require("./b");`)
	writeFile(t, filepath.Join(dir, "b.js"), `require("./c");`)
	writeFile(t, filepath.Join(dir, "c.js"), ``)
	writeFile(t, filepath.Join(dir, "unrelated.js"), ``)

	g := newGraph(dir)
	a, err := g.LoadModule(filepath.Join(dir, "a.js"))
	require.NoError(t, err)
	_, err = g.LoadModule(filepath.Join(dir, "unrelated.js"))
	require.NoError(t, err)

	var cId depgraph.ModuleId
	for _, m := range g.Modules() {
		if filepath.Base(m.Path) == "c.js" {
			cId = m.Id
		}
	}
	require.NotZero(t, cId)

	nodes, err := g.PathNodes([]depgraph.ModuleId{a.Id, cId})
	require.NoError(t, err)
	require.Len(t, nodes, 3)
}
