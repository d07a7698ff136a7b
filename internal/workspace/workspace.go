// Package workspace discovers the modules of a multi-module source tree
// and the release-tag conventions each one uses.
package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/mod/modfile"
)

// Module is one workspace member: its module path, its directory relative
// to the repository root (empty for a root module), and the tag prefix its
// release tags carry ("" means the global version-tag convention).
type Module struct {
	Name      string
	Dir       string
	TagPrefix string
}

// Workspace is the discovered set of modules under one repository root.
type Workspace struct {
	Root    string
	Modules []Module
}

// DiscoverOptions configures workspace discovery.
type DiscoverOptions struct {
	RootDir string
	// Exclude holds doublestar patterns matched against root-relative
	// module directories; matching directories are skipped.
	Exclude []string
	// TagPrefixes overrides the tag prefix per module, keyed by module
	// path or its base name. An explicit empty value selects the global
	// version-tag convention.
	TagPrefixes map[string]string
}

// Discover locates workspace modules. With a go.work file the member list
// comes from its use directives; otherwise the tree is walked for go.mod
// files, skipping .git, vendor, and excluded directories.
func Discover(opts DiscoverOptions) (*Workspace, error) {
	root := opts.RootDir
	if root == "" {
		root = "."
	}

	dirs, err := memberDirs(root, opts.Exclude)
	if err != nil {
		return nil, err
	}

	ws := &Workspace{Root: root}
	for _, dir := range dirs {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(dir), "go.mod"))
		if err != nil {
			return nil, fmt.Errorf("failed to read module definition in %s: %w", dir, err)
		}
		name := modfile.ModulePath(data)
		if name == "" {
			return nil, fmt.Errorf("no module path in %s/go.mod", dir)
		}
		ws.Modules = append(ws.Modules, Module{
			Name:      name,
			Dir:       dir,
			TagPrefix: tagPrefix(opts.TagPrefixes, name, dir),
		})
	}
	sort.Slice(ws.Modules, func(i, j int) bool { return ws.Modules[i].Dir < ws.Modules[j].Dir })
	return ws, nil
}

// ModuleByName finds a module by its full module path or its base name.
func (w *Workspace) ModuleByName(name string) (Module, error) {
	for _, m := range w.Modules {
		if m.Name == name || path.Base(m.Name) == name {
			return m, nil
		}
	}
	return Module{}, fmt.Errorf("module %q not found in workspace", name)
}

// tagPrefix resolves the release-tag prefix for one module. A configured
// override wins, explicit empty included; by default a nested module is
// prefixed with its directory base name and a root module uses the global
// convention.
func tagPrefix(overrides map[string]string, name, dir string) string {
	if p, ok := overrides[name]; ok {
		return p
	}
	if p, ok := overrides[path.Base(name)]; ok {
		return p
	}
	if dir == "" {
		return ""
	}
	return path.Base(dir)
}

func memberDirs(root string, exclude []string) ([]string, error) {
	if data, err := os.ReadFile(filepath.Join(root, "go.work")); err == nil {
		work, err := modfile.ParseWork("go.work", data, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to parse go.work: %w", err)
		}
		var dirs []string
		for _, use := range work.Use {
			dir := path.Clean(filepath.ToSlash(use.Path))
			if dir == "." {
				dir = ""
			}
			if excluded(exclude, dir) {
				continue
			}
			dirs = append(dirs, dir)
		}
		return dirs, nil
	}
	return walkForModules(root, exclude)
}

func walkForModules(root string, exclude []string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			base := d.Name()
			if rel != "." && (base == ".git" || base == "vendor" || strings.HasPrefix(base, "_")) {
				return fs.SkipDir
			}
			if rel != "." && excluded(exclude, rel) {
				return fs.SkipDir
			}
			return nil
		}
		if d.Name() != "go.mod" {
			return nil
		}
		dir := path.Dir(rel)
		if dir == "." {
			dir = ""
		}
		dirs = append(dirs, dir)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan for modules under %s: %w", root, err)
	}
	return dirs, nil
}

func excluded(patterns []string, dir string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, dir); ok {
			return true
		}
	}
	return false
}
