package depgraph

import (
	"path/filepath"
	"strings"
)

// extensionOf returns a file's extension without the leading dot, exactly as
// it appears on disk — dispatch is case-sensitive per the resolver contract.
func extensionOf(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// textExtensions are passed through to TextModule: formats this system does
// not need to introspect, but whose nodes still belong in the graph.
var textExtensions = map[string]bool{
	"gql": true, "graphql": true, "html": true, "less": true,
	"map": true, "sass": true, "scss": true, "styl": true, "svg": true,
}

// newHandlerForExtension dispatches by file extension per the handler
// contract: css -> Css, js/jsx/ts/tsx/mts/cts/mjs/cjs -> JavaScript,
// json/jsonc/json5 -> Json, yaml/yml -> Yaml, the documented text formats ->
// Text, otherwise -> Media.
func newHandlerForExtension(path string) SourceHandler {
	ext := extensionOf(path)

	if ext == "css" {
		return &cssHandler{}
	}
	if textExtensions[ext] {
		return &textHandler{}
	}
	if factory, ok := handlerRegistry[ext]; ok {
		return factory()
	}
	return &mediaHandler{mime: classifyMediaKind(ext)}
}
