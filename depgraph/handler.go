package depgraph

// HandlerKind identifies the family of content a SourceHandler was built
// for, independent of the file extension that selected it.
type HandlerKind int

const (
	KindUnknown HandlerKind = iota
	KindAudio
	KindCss
	KindImage
	KindJavaScript
	KindJson
	KindText
	KindVideo
	KindYaml
)

// SourceHandler is the uniform load+parse contract every file kind
// implements. Load reads file bytes (and decodes whatever container format
// is needed); Parse populates the owning Module's Imports/Exports. The split
// lets loading be cached independently of semantic extraction.
type SourceHandler interface {
	Load(module *Module, manifest *PackageManifest) error
	Parse(module *Module) error
	Kind() HandlerKind
	Bytes() []byte
}

// HandlerFactory constructs a fresh SourceHandler for one file. Language
// packages that need third-party parsing libraries (javascript, json, yaml)
// register a factory for their extensions from an init() function, the way
// database/sql drivers register themselves — this package never imports
// them directly, which keeps the core free of tree-sitter/gjson/yaml deps
// and avoids an import cycle (those packages import depgraph for Module,
// Import, Export, ...).
type HandlerFactory func() SourceHandler

var handlerRegistry = map[string]HandlerFactory{}

// RegisterHandler associates a HandlerFactory with one or more
// case-sensitive file extensions (without the leading dot).
func RegisterHandler(extensions []string, factory HandlerFactory) {
	for _, ext := range extensions {
		handlerRegistry[ext] = factory
	}
}
