// Package json handles JSON modules: a single synthesized Export whose
// symbols mirror the document's top-level shape, grounded on
// original_source/json/mod.rs.
package json

import (
	"os"

	"github.com/tidwall/gjson"

	"github.com/modulegraph/jsgraph/depgraph"
)

func init() {
	depgraph.RegisterHandler(
		[]string{"json", "jsonc", "json5"},
		func() depgraph.SourceHandler { return &Handler{} },
	)
}

// Handler implements depgraph.SourceHandler for JSON documents. JSON has no
// import/export syntax of its own; the whole document is always the default
// export, and if it's an object, each top-level key is also exported by
// name, matching how bundlers expose `import data from "./x.json"` and
// `import { key } from "./x.json"`.
type Handler struct {
	source []byte
}

func (h *Handler) Load(module *depgraph.Module, _ *depgraph.PackageManifest) error {
	data, err := os.ReadFile(module.Path)
	if err != nil {
		return err
	}
	h.source = data
	return nil
}

func (h *Handler) Parse(module *depgraph.Module) error {
	export := depgraph.Export{
		Kind: depgraph.Native,
		Symbols: []depgraph.ExportedSymbol{
			{Kind: depgraph.ExportedDefault, Name: depgraph.AtomStr("default")},
		},
	}

	result := gjson.ParseBytes(h.source)
	if result.IsObject() {
		result.ForEach(func(key, _ gjson.Result) bool {
			export.Symbols = append(export.Symbols, depgraph.ExportedSymbol{
				Kind: depgraph.ExportedValue,
				Name: depgraph.AtomStr(key.String()),
			})
			return true
		})
	}

	module.Exports = append(module.Exports, export)
	return nil
}

func (h *Handler) Kind() depgraph.HandlerKind { return depgraph.KindJson }
func (h *Handler) Bytes() []byte              { return h.source }
