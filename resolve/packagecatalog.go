package resolve

import (
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/modulegraph/jsgraph/depgraph"
)

// DefaultPackageCatalog loads package.json manifests from disk via gjson,
// caching one manifest per directory it has already found one in.
type DefaultPackageCatalog struct {
	cache map[string]*depgraph.PackageManifest
}

func NewDefaultPackageCatalog() *DefaultPackageCatalog {
	return &DefaultPackageCatalog{cache: make(map[string]*depgraph.PackageManifest)}
}

func (c *DefaultPackageCatalog) ManifestFor(dir string) (*depgraph.PackageManifest, string, bool, error) {
	dir = filepath.Clean(dir)

	for {
		manifestPath := filepath.Join(dir, "package.json")
		if manifest, ok := c.cache[manifestPath]; ok {
			return manifest, dir, true, nil
		}

		if data, err := os.ReadFile(manifestPath); err == nil {
			manifest, parseErr := parseManifest(data)
			if parseErr != nil {
				return nil, "", false, &depgraph.PackageJSONError{Path: manifestPath, Cause: parseErr}
			}
			c.cache[manifestPath] = manifest
			return manifest, dir, true, nil
		} else if !os.IsNotExist(err) {
			return nil, "", false, &depgraph.PackageJSONError{Path: manifestPath, Cause: err}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", false, nil
		}
		dir = parent
	}
}

func parseManifest(data []byte) (*depgraph.PackageManifest, error) {
	root := gjson.ParseBytes(data)

	manifest := &depgraph.PackageManifest{
		Name:         root.Get("name").String(),
		Main:         root.Get("main").String(),
		Module:       root.Get("module").String(),
		Types:        root.Get("types").String(),
		Dependencies: make(map[string]string),
	}

	if exportsField := root.Get("exports"); exportsField.IsObject() {
		manifest.Exports = make(map[string]string)
		exportsField.ForEach(func(key, value gjson.Result) bool {
			if value.Type == gjson.String {
				manifest.Exports[key.String()] = value.String()
			}
			return true
		})
	}

	for _, field := range []string{"dependencies", "devDependencies", "peerDependencies", "optionalDependencies"} {
		root.Get(field).ForEach(func(key, value gjson.Result) bool {
			manifest.Dependencies[key.String()] = value.String()
			return true
		})
	}

	return manifest, nil
}
