// Package resolve implements depgraph.Resolver against a real filesystem,
// generalizing the teacher's ResolveJavaScriptImportPath/
// ResolveTypeScriptImportPath (which matched specifiers against a
// predetermined file list) to resolve directly against disk, since this
// system reads and parses file contents rather than only listing them.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modulegraph/jsgraph/depgraph"
)

// defaultExtensions is the order candidate extensions are tried in,
// matching the teacher's TypeScript-first resolution order.
var defaultExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".mts", ".cts", ".json"}

// DefaultResolver resolves ESM/CommonJS specifiers: relative and absolute
// paths against the importer's directory, bare specifiers by climbing
// node_modules directories and consulting the target package's manifest.
type DefaultResolver struct {
	Catalog    depgraph.PackageCatalog
	Extensions []string
}

// NewDefaultResolver builds a resolver backed by catalog for package.json
// lookups. catalog may be nil, in which case bare-specifier package entry
// points always fall back to an index file.
func NewDefaultResolver(catalog depgraph.PackageCatalog) *DefaultResolver {
	return &DefaultResolver{Catalog: catalog, Extensions: defaultExtensions}
}

func (r *DefaultResolver) Resolve(specifier, importerPath string) (depgraph.ResolveResult, error) {
	spec, query, fragment := splitSpecifier(specifier)

	var path string
	var err error
	if isRelativeOrAbsolute(spec) {
		base := spec
		if !filepath.IsAbs(base) {
			base = filepath.Join(filepath.Dir(importerPath), base)
		}
		path, err = r.resolveFileOrIndex(base)
	} else {
		path, err = r.resolveBareSpecifier(spec, importerPath)
	}
	if err != nil {
		return depgraph.ResolveResult{}, err
	}

	return depgraph.ResolveResult{Path: path, Query: query, Fragment: fragment}, nil
}

func (r *DefaultResolver) extensions() []string {
	if len(r.Extensions) > 0 {
		return r.Extensions
	}
	return defaultExtensions
}

func (r *DefaultResolver) resolveFileOrIndex(base string) (string, error) {
	if fileExists(base) {
		return base, nil
	}
	for _, ext := range r.extensions() {
		if candidate := base + ext; fileExists(candidate) {
			return candidate, nil
		}
	}
	for _, ext := range r.extensions() {
		if candidate := filepath.Join(base, "index"+ext); fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no candidate file found for %q", base)
}

func (r *DefaultResolver) resolveBareSpecifier(spec, importerPath string) (string, error) {
	pkgName, subpath := splitPackageSpecifier(spec)

	dir := filepath.Dir(importerPath)
	for {
		pkgDir := filepath.Join(dir, "node_modules", pkgName)
		if dirExists(pkgDir) {
			return r.resolvePackageEntry(pkgDir, subpath)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("package %q not found above %q", pkgName, importerPath)
}

func (r *DefaultResolver) resolvePackageEntry(pkgDir, subpath string) (string, error) {
	if subpath != "" {
		return r.resolveFileOrIndex(filepath.Join(pkgDir, subpath))
	}

	if r.Catalog != nil {
		if manifest, _, ok, err := r.Catalog.ManifestFor(pkgDir); err == nil && ok {
			entry := manifest.Module
			if entry == "" {
				entry = manifest.Main
			}
			if entry != "" {
				return r.resolveFileOrIndex(filepath.Join(pkgDir, entry))
			}
		}
	}

	return r.resolveFileOrIndex(filepath.Join(pkgDir, "index"))
}

// splitSpecifier separates a leading path from its `?query#fragment` suffix.
func splitSpecifier(specifier string) (path string, query, fragment *string) {
	path = specifier

	if idx := strings.IndexByte(path, '#'); idx >= 0 {
		f := path[idx+1:]
		fragment = &f
		path = path[:idx]
	}
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		q := path[idx+1:]
		query = &q
		path = path[:idx]
	}

	return path, query, fragment
}

func isRelativeOrAbsolute(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") || filepath.IsAbs(spec)
}

// splitPackageSpecifier separates a bare specifier's package name from the
// subpath requested within it, honoring scoped packages (`@scope/name`).
func splitPackageSpecifier(spec string) (pkgName, subpath string) {
	if strings.HasPrefix(spec, "@") {
		parts := strings.SplitN(spec, "/", 3)
		if len(parts) < 2 {
			return spec, ""
		}
		pkgName = parts[0] + "/" + parts[1]
		if len(parts) == 3 {
			subpath = parts[2]
		}
		return pkgName, subpath
	}

	parts := strings.SplitN(spec, "/", 2)
	pkgName = parts[0]
	if len(parts) == 2 {
		subpath = parts[1]
	}
	return pkgName, subpath
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
