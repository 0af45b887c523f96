package project

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Directories never scanned, matching the generated-site toolchain's
// own exclusions.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".next":        true,
	"dist":         true,
	"build":        true,
}

var sourceExts = map[string]bool{
	".ts":  true,
	".tsx": true,
	".js":  true,
	".jsx": true,
}

// Tree is the whole project loaded into memory. Modules are kept in
// sorted RelPath order so every traversal is deterministic.
type Tree struct {
	Cfg     *Config
	Modules []*Module

	byRel        map[string]*Module
	byImportPath map[string]*Module
}

// Load walks the project root and parses every in-scope module.
// Declaration-only files (.d.ts) and vendored directories are skipped.
func Load(cfg *Config) (*Tree, error) {
	t := &Tree{
		Cfg:          cfg,
		byRel:        make(map[string]*Module),
		byImportPath: make(map[string]*Module),
	}

	err := filepath.Walk(cfg.Root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		name := info.Name()
		if info.IsDir() {
			if p != cfg.Root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(name))
		if !sourceExts[ext] || strings.HasSuffix(name, ".d.ts") {
			return nil
		}

		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		rel, err := filepath.Rel(cfg.Root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		m := ParseModule(p, rel, string(content))
		m.ImportPath = t.CanonicalPath(rel)
		t.Modules = append(t.Modules, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load source tree: %w", err)
	}

	sort.Slice(t.Modules, func(i, j int) bool {
		return t.Modules[i].RelPath < t.Modules[j].RelPath
	})
	for _, m := range t.Modules {
		t.byRel[m.RelPath] = m
		if m.ImportPath != "" {
			t.byImportPath[m.ImportPath] = m
		}
	}
	return t, nil
}

// CanonicalPath maps a root-relative file path to its alias import
// path: src/components/header.tsx -> @/components/header. Files
// outside the source root have no canonical path.
func (t *Tree) CanonicalPath(rel string) string {
	prefix := t.Cfg.SourceRel + "/"
	if t.Cfg.SourceRel == "." {
		prefix = ""
	} else if !strings.HasPrefix(rel, prefix) {
		return ""
	}
	p := strings.TrimPrefix(rel, prefix)
	if dot := strings.LastIndex(p, "."); dot > 0 {
		p = p[:dot]
	}
	p = strings.TrimSuffix(p, "/index")
	return t.Cfg.Alias + "/" + p
}

// ByRel returns the module at a root-relative path.
func (t *Tree) ByRel(rel string) *Module {
	return t.byRel[rel]
}

// ByImportPath returns the module owning a canonical import path,
// tolerating an explicit /index suffix.
func (t *Tree) ByImportPath(importPath string) *Module {
	if m := t.byImportPath[importPath]; m != nil {
		return m
	}
	return t.byImportPath[strings.TrimSuffix(importPath, "/index")]
}

// Resolve maps an import specifier written in `from` to the module it
// names, or nil for externals and unresolvable paths.
func (t *Tree) Resolve(spec string, from *Module) *Module {
	switch {
	case strings.HasPrefix(spec, t.Cfg.Alias+"/"):
		return t.ByImportPath(path.Clean(spec))
	case strings.HasPrefix(spec, "."):
		if from == nil {
			return nil
		}
		joined := path.Join(path.Dir(from.RelPath), spec)
		return t.ByImportPath(t.CanonicalPath(joined))
	default:
		return nil
	}
}

// InScope reports whether a module participates in indexing and fix
// targeting: it must live under the source root.
func (t *Tree) InScope(m *Module) bool {
	return m.ImportPath != ""
}

// TargetModules resolves the requested target paths, or returns all
// in-scope modules when none were requested. A requested target that
// does not exist in the tree is a fatal error.
func (t *Tree) TargetModules(targets []string) ([]*Module, error) {
	if len(targets) == 0 {
		var all []*Module
		for _, m := range t.Modules {
			if t.InScope(m) {
				all = append(all, m)
			}
		}
		return all, nil
	}

	var out []*Module
	for _, target := range targets {
		rel := filepath.ToSlash(filepath.Clean(target))
		m := t.ByRel(rel)
		if m == nil {
			m = t.ByImportPath(rel)
		}
		if m == nil && !strings.HasPrefix(rel, t.Cfg.SourceRel+"/") {
			m = t.ByRel(t.Cfg.SourceRel + "/" + rel)
		}
		if m == nil {
			return nil, fmt.Errorf("target module not found in tree: %s", target)
		}
		out = append(out, m)
	}
	return out, nil
}

// DirtyModules returns modules with pending edits, in path order.
func (t *Tree) DirtyModules() []*Module {
	var out []*Module
	for _, m := range t.Modules {
		if m.Dirty {
			out = append(out, m)
		}
	}
	return out
}

// Flush writes every dirty module back to disk, in sorted path order.
// Writing stops at the first error; already-written files keep their
// new content (accepted non-atomic limitation).
func (t *Tree) Flush() ([]string, error) {
	var written []string
	for _, m := range t.DirtyModules() {
		if err := os.WriteFile(m.AbsPath, []byte(m.Render()), 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", m.RelPath, err)
		}
		m.Dirty = false
		written = append(written, m.RelPath)
	}
	return written, nil
}
