// Package yaml handles YAML modules the same way the json package handles
// JSON ones: the document is the default export, and each top-level mapping
// key is also exported by name. yaml.Node (rather than a plain map) is used
// to read keys in file order, since Go map iteration order is undefined.
package yaml

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/modulegraph/jsgraph/depgraph"
)

func init() {
	depgraph.RegisterHandler(
		[]string{"yaml", "yml"},
		func() depgraph.SourceHandler { return &Handler{} },
	)
}

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

	var doc yaml.Node
	if err := yaml.Unmarshal(h.source, &doc); err != nil {
		return err
	}

	if mapping := topLevelMapping(&doc); mapping != nil {
		for i := 0; i < len(mapping.Content); i += 2 {
			key := mapping.Content[i]
			export.Symbols = append(export.Symbols, depgraph.ExportedSymbol{
				Kind: depgraph.ExportedValue,
				Name: depgraph.AtomStr(key.Value),
			})
		}
	}

	module.Exports = append(module.Exports, export)
	return nil
}

func (h *Handler) Kind() depgraph.HandlerKind { return depgraph.KindYaml }
func (h *Handler) Bytes() []byte              { return h.source }

// topLevelMapping unwraps an empty-document/document-node shell to the root
// mapping node, or returns nil if the document's root isn't a mapping.
func topLevelMapping(doc *yaml.Node) *yaml.Node {
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	return node
}
