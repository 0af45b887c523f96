// Package fix applies repair strategies to a module's import block:
// the diagnostic-driven fixer, the build-log fallback, and the
// finalizer that canonicalizes and persists the result.
package fix

import (
	"fmt"
	"log/slog"
	"regexp"

	"importfix/internal/diagnose"
	"importfix/internal/index"
	"importfix/internal/project"
	"importfix/pkg/types"
)

// Fixer resolves diagnostics against a supplied export index. The
// index is an explicit input so the fixer is testable in isolation.
type Fixer struct {
	tree  *project.Tree
	index *index.Index
	known *knownExternals
	log   *slog.Logger

	// Unresolved collects symbols no strategy could place.
	Unresolved []string
}

// NewFixer wires a fixer for one run.
func NewFixer(tree *project.Tree, idx *index.Index, log *slog.Logger) *Fixer {
	return &Fixer{
		tree:  tree,
		index: idx,
		known: newKnownExternals(tree.Cfg.Root, tree.Cfg.Alias),
		log:   log,
	}
}

// FixModule runs the pre-build check on one module and applies a
// strategy per diagnostic. A repair can expose a condition the first
// check could not see (a corrected path revealing an export-style
// mismatch), so the check re-runs until a pass applies nothing.
// Side effects stay inside this module's import declarations.
func (f *Fixer) FixModule(m *project.Module) []types.AppliedFix {
	var fixes []types.AppliedFix
	for pass := 0; pass < maxFixPasses; pass++ {
		applied := f.fixPass(m)
		if len(applied) == 0 {
			break
		}
		fixes = append(fixes, applied...)
	}
	return fixes
}

const maxFixPasses = 5

func (f *Fixer) fixPass(m *project.Module) []types.AppliedFix {
	var fixes []types.AppliedFix

	diags := diagnose.Check(m, f.tree, f.tree.Cfg.Utility.Symbol)
	for _, d := range diags {
		c := diagnose.Classify(d)
		switch c.Kind {
		case diagnose.KindUnresolvedName:
			if fix, ok := f.fixUnresolvedName(m, c.Name); ok {
				fixes = append(fixes, fix)
			}
		case diagnose.KindNoDefaultExport:
			if fix, ok := f.fixDefaultToNamed(m, c.Name, c.Specifier); ok {
				fixes = append(fixes, fix)
			}
		case diagnose.KindBadModulePath:
			if fix, ok := f.fixModulePath(m, c.Specifier); ok {
				fixes = append(fixes, fix)
			}
		default:
			f.log.Warn("diagnostic matched no known pattern, ignoring",
				"module", m.RelPath, "code", d.Code, "message", d.Message)
		}
	}
	return fixes
}

// fixUnresolvedName inserts an import for an unbound identifier.
// Resolution order: configured utility symbol, export index,
// well-known externals. A miss everywhere is non-fatal.
func (f *Fixer) fixUnresolvedName(m *project.Module, name string) (types.AppliedFix, bool) {
	util := f.tree.Cfg.Utility
	if name == util.Symbol {
		f.addImport(m, name, util.Path, false)
		return types.AppliedFix{Kind: "add-import", Path: m.RelPath, Symbol: name, Specifier: util.Path}, true
	}

	if rec, ok := f.index.Lookup(name); ok {
		if rec.Path == m.ImportPath {
			// A module does not import its own export; nothing to add.
			return types.AppliedFix{}, false
		}
		f.addImport(m, name, rec.Path, rec.IsDefault)
		return types.AppliedFix{Kind: "add-import", Path: m.RelPath, Symbol: name, Specifier: rec.Path}, true
	}

	if spec, ok := f.known.Lookup(name); ok {
		f.addImport(m, name, spec, false)
		return types.AppliedFix{Kind: "add-import", Path: m.RelPath, Symbol: name, Specifier: spec}, true
	}

	entry := fmt.Sprintf("%s: %s", m.RelPath, name)
	for _, u := range f.Unresolved {
		if u == entry {
			return types.AppliedFix{}, false
		}
	}
	f.log.Warn("unresolved symbol has no known source, leaving as is",
		"module", m.RelPath, "symbol", name)
	f.Unresolved = append(f.Unresolved, entry)
	return types.AppliedFix{}, false
}

// fixDefaultToNamed converts `import X from 'Y'` into
// `import { X } from 'Y'` when the diagnostic says Y has no default
// export. The declaration is located by specifier, falling back to
// whichever declaration carries the suggested name as its default.
func (f *Fixer) fixDefaultToNamed(m *project.Module, name, spec string) (types.AppliedFix, bool) {
	var target *types.ImportDecl
	for _, d := range m.Imports {
		if d.Specifier == spec && d.Default != "" {
			target = d
			break
		}
	}
	if target == nil {
		for _, d := range m.Imports {
			if d.Default == name {
				target = d
				break
			}
		}
	}
	if target == nil || target.Default == "" {
		return types.AppliedFix{}, false
	}

	target.Default = ""
	project.AddNamed(target, name)
	m.Dirty = true
	return types.AppliedFix{Kind: "to-named", Path: m.RelPath, Symbol: name, Specifier: target.Specifier}, true
}

// fixModulePath corrects the known malformed specifier shape: an
// alias prefix followed by parent-directory escapes, e.g.
// `@/../components/header` -> `@/components/header`. Other
// unresolvable specifiers are left alone.
func (f *Fixer) fixModulePath(m *project.Module, spec string) (types.AppliedFix, bool) {
	escape := regexp.MustCompile(`^` + regexp.QuoteMeta(f.tree.Cfg.Alias) + `/((?:\.\./)+)(.*)$`)
	mm := escape.FindStringSubmatch(spec)
	if mm == nil {
		return types.AppliedFix{}, false
	}
	fixed := f.tree.Cfg.Alias + "/" + mm[2]

	for _, d := range m.Imports {
		if d.Specifier == spec {
			d.Specifier = fixed
			m.Dirty = true
			return types.AppliedFix{Kind: "fix-path", Path: m.RelPath, Specifier: fixed,
				Detail: "was " + spec}, true
		}
	}
	return types.AppliedFix{}, false
}

// addImport queues an import of symbol from spec, merging into an
// existing declaration for the same specifier when one exists.
func (f *Fixer) addImport(m *project.Module, symbol, spec string, asDefault bool) {
	if d := m.ImportFor(spec, false); d != nil {
		if asDefault {
			if d.Default == "" {
				d.Default = symbol
				m.Dirty = true
			}
			return
		}
		before := len(d.Named)
		project.AddNamed(d, symbol)
		if len(d.Named) != before {
			m.Dirty = true
		}
		return
	}

	d := &types.ImportDecl{Specifier: spec}
	if asDefault {
		d.Default = symbol
	} else {
		d.Named = []string{symbol}
	}
	m.Imports = append(m.Imports, d)
	m.Dirty = true
}
