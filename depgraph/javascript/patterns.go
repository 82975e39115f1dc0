package javascript

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/modulegraph/jsgraph/depgraph"
)

// importBindingPattern flattens the left-hand side of
// `<pattern> = await import(...)` or `<pattern> = require(...)` into bound
// symbols. Unlike exportBindingPattern, array patterns contribute nothing:
// a destructured array can't bind named exports of a module, only positional
// values, which isn't a concept either loader form produces.
func importBindingPattern(n *sitter.Node, source []byte, list *[]depgraph.ImportedSymbol) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		*list = append(*list, depgraph.ImportedSymbol{
			Kind: depgraph.ImportedNamespace,
			Name: depgraph.AtomStr(n.Content(source)),
		})

	case "object_pattern":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			prop := n.NamedChild(i)
			switch prop.Type() {
			case "pair_pattern":
				key := prop.ChildByFieldName("key")
				value := prop.ChildByFieldName("value")
				if key == nil || value == nil {
					continue
				}
				keyName := key.Content(source)
				kind := depgraph.ImportedValue
				if keyName == "default" {
					kind = depgraph.ImportedDefault
				}
				if value.Type() == "identifier" {
					valueName := value.Content(source)
					var sourceName *depgraph.AtomStr
					if kind != depgraph.ImportedDefault && keyName != valueName {
						a := depgraph.AtomStr(keyName)
						sourceName = &a
					}
					*list = append(*list, depgraph.ImportedSymbol{
						Kind:       kind,
						SourceName: sourceName,
						Name:       depgraph.AtomStr(valueName),
					})
				} else {
					*list = append(*list, depgraph.ImportedSymbol{Kind: kind, Name: depgraph.AtomStr(keyName)})
				}

			case "shorthand_property_identifier_pattern":
				name := prop.Content(source)
				kind := depgraph.ImportedValue
				if name == "default" {
					kind = depgraph.ImportedDefault
				}
				*list = append(*list, depgraph.ImportedSymbol{Kind: kind, Name: depgraph.AtomStr(name)})

			case "rest_pattern":
				inner := prop.NamedChild(0)
				if inner != nil && inner.Type() == "identifier" {
					*list = append(*list, depgraph.ImportedSymbol{
						Kind: depgraph.ImportedNamespace,
						Name: depgraph.AtomStr(inner.Content(source)),
					})
				}
			}
		}

	case "array_pattern":
		// Not possible: there's nothing to name-bind positionally.

	case "assignment_pattern":
		left := n.ChildByFieldName("left")
		importBindingPattern(left, source, list)
	}
}

// exportBindingPattern flattens a declared binding's name into exported
// symbols, recursing fully into object and array patterns (unlike
// importBindingPattern, an exported array element still names a real local
// binding that can be re-exported).
func exportBindingPattern(n *sitter.Node, source []byte, list *[]depgraph.ExportedSymbol) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "identifier":
		*list = append(*list, depgraph.ExportedSymbol{
			Kind: depgraph.ExportedValue,
			Name: depgraph.AtomStr(n.Content(source)),
		})

	case "object_pattern":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			prop := n.NamedChild(i)
			switch prop.Type() {
			case "pair_pattern":
				exportBindingPattern(prop.ChildByFieldName("value"), source, list)
			case "shorthand_property_identifier_pattern":
				*list = append(*list, depgraph.ExportedSymbol{
					Kind: depgraph.ExportedValue,
					Name: depgraph.AtomStr(prop.Content(source)),
				})
			case "rest_pattern":
				exportBindingPattern(prop.NamedChild(0), source, list)
			}
		}

	case "array_pattern":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			item := n.NamedChild(i)
			if item.Type() == "rest_pattern" {
				exportBindingPattern(item.NamedChild(0), source, list)
				continue
			}
			exportBindingPattern(item, source, list)
		}

	case "assignment_pattern":
		exportBindingPattern(n.ChildByFieldName("left"), source, list)
	}
}
