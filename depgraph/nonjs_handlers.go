package depgraph

import "os"

// DummyModule is the placeholder installed on a freshly constructed Module
// before ModuleGraph replaces it with the real handler during load-and-parse.
// It is never reachable once a module has been inserted into the graph.
type DummyModule struct{}

func (DummyModule) Load(*Module, *PackageManifest) error { return nil }
func (DummyModule) Parse(*Module) error                  { return nil }
func (DummyModule) Kind() HandlerKind                     { return KindUnknown }
func (DummyModule) Bytes() []byte                         { return nil }

// cssHandler and textHandler exist only so graph nodes are uniform across
// file kinds; Parse is a no-op for both — CSS/markup/template bodies carry
// no import/export semantics this system extracts.
type cssHandler struct{ source []byte }

func (h *cssHandler) Load(module *Module, _ *PackageManifest) error {
	data, err := os.ReadFile(module.Path)
	if err != nil {
		return err
	}
	h.source = data
	return nil
}

func (h *cssHandler) Parse(*Module) error { return nil }
func (h *cssHandler) Kind() HandlerKind   { return KindCss }
func (h *cssHandler) Bytes() []byte       { return h.source }

type textHandler struct{ source []byte }

func (h *textHandler) Load(module *Module, _ *PackageManifest) error {
	data, err := os.ReadFile(module.Path)
	if err != nil {
		return err
	}
	h.source = data
	return nil
}

func (h *textHandler) Parse(*Module) error { return nil }
func (h *textHandler) Kind() HandlerKind   { return KindText }
func (h *textHandler) Bytes() []byte       { return h.source }

// mediaHandler holds opaque bytes for anything not otherwise dispatched,
// classified by MIME family from its extension.
type mediaHandler struct {
	source []byte
	mime   HandlerKind
}

func (h *mediaHandler) Load(module *Module, _ *PackageManifest) error {
	data, err := os.ReadFile(module.Path)
	if err != nil {
		return err
	}
	h.source = data
	return nil
}

func (h *mediaHandler) Parse(*Module) error { return nil }
func (h *mediaHandler) Kind() HandlerKind   { return h.mime }
func (h *mediaHandler) Bytes() []byte       { return h.source }

var audioExtensions = map[string]bool{"mp3": true, "wav": true, "ogg": true, "flac": true, "aac": true, "m4a": true}
var videoExtensions = map[string]bool{"mp4": true, "webm": true, "mov": true, "avi": true, "mkv": true}
var imageExtensions = map[string]bool{"png": true, "jpg": true, "jpeg": true, "gif": true, "webp": true, "bmp": true, "ico": true, "avif": true}

func classifyMediaKind(ext string) HandlerKind {
	switch {
	case audioExtensions[ext]:
		return KindAudio
	case videoExtensions[ext]:
		return KindVideo
	case imageExtensions[ext]:
		return KindImage
	default:
		return KindUnknown
	}
}
