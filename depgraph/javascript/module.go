package javascript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/modulegraph/jsgraph/depgraph"
)

// Handler implements depgraph.SourceHandler for JavaScript and TypeScript
// source files, dispatching to the matching tree-sitter grammar by
// extension and extracting every import/export form listed in
// SPEC_FULL.md's javascript module.
type Handler struct {
	source []byte
	stats  Stats
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
	lang := languageForPath(module.Path)

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, h.source)
	if err != nil {
		return fmt.Errorf("parse %s: %w", module.Path, err)
	}
	defer tree.Close()

	extract(tree.RootNode(), h.source, module, &h.stats)
	return nil
}

func (h *Handler) Kind() depgraph.HandlerKind { return depgraph.KindJavaScript }
func (h *Handler) Bytes() []byte              { return h.source }

func languageForPath(path string) *sitter.Language {
	switch strings.TrimPrefix(filepath.Ext(path), ".") {
	case "tsx":
		return tsx.GetLanguage()
	case "ts", "mts", "cts":
		return typescript.GetLanguage()
	default: // js, jsx, mjs, cjs
		return javascript.GetLanguage()
	}
}
