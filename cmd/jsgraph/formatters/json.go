package formatters

import (
	"encoding/json"

	"github.com/modulegraph/jsgraph/depgraph"
)

// JSONFormatter renders a module graph as JSON, matching the teacher's
// encoding/json-based JSONFormatter.
type JSONFormatter struct{}

type jsonModule struct {
	Id       depgraph.ModuleId `json:"id"`
	Path     string             `json:"path"`
	Package  string             `json:"package,omitempty"`
	External bool               `json:"external"`
	Imports  []jsonImport       `json:"imports"`
	Exports  []jsonExport       `json:"exports"`
}

type jsonImport struct {
	Source   string            `json:"source"`
	ModuleId depgraph.ModuleId `json:"moduleId,omitempty"`
	TypeOnly bool              `json:"typeOnly"`
}

type jsonExport struct {
	Source   string `json:"source,omitempty"`
	TypeOnly bool   `json:"typeOnly"`
	Symbols  int    `json:"symbols"`
}

func (f *JSONFormatter) Format(g *depgraph.ModuleGraph, opts RenderOptions) (string, error) {
	modules := filterModules(sortedModules(g), opts.Only)

	out := make([]jsonModule, 0, len(modules))
	for _, m := range modules {
		jm := jsonModule{Id: m.Id, Path: m.Path, External: m.IsExternal()}
		if m.PackageName != nil {
			jm.Package = *m.PackageName
		}
		for _, imp := range m.Imports {
			jm.Imports = append(jm.Imports, jsonImport{
				Source:   string(imp.SourceRequest),
				ModuleId: imp.ModuleId,
				TypeOnly: imp.TypeOnly,
			})
		}
		for _, exp := range m.Exports {
			je := jsonExport{TypeOnly: exp.TypeOnly, Symbols: len(exp.Symbols)}
			if exp.Source != nil {
				je.Source = string(*exp.Source)
			}
			jm.Exports = append(jm.Exports, je)
		}
		out = append(out, jm)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
