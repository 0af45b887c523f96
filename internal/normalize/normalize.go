// Package normalize rewrites configured modules from default-export
// style to named-export style, patching every import site. It runs
// before index building so later passes see the corrected shape.
package normalize

import (
	"log/slog"
	"regexp"
	"strings"

	"importfix/internal/project"
	"importfix/pkg/types"
)

// declPattern matches a top-level declaration of name that can carry a
// direct `export` marker.
func declPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`^((?:async\s+)?function|const|let|var|class)\s+` + regexp.QuoteMeta(name) + `\b`)
}

// plan is the full set of edits one target produces, computed before
// anything is touched.
type plan struct {
	target   *project.Module
	name     string
	declLine int // body index of the declaration to mark exported
	fwdLine  int // body index of the `export default Name` statement
	sites    []*types.ImportDecl
	owners   []*project.Module // module owning each entry of sites
}

// Run normalizes every configured target module. Targets whose
// default export does not forward a plain identifier, or whose
// forwarded declaration cannot be located, are skipped with a warning.
// Returns the canonical paths of the modules actually normalized.
func Run(tree *project.Tree, targets []string, log *slog.Logger) []string {
	var done []string
	for _, target := range targets {
		importPath := tree.Cfg.Alias + "/" + strings.TrimPrefix(target, tree.Cfg.Alias+"/")
		m := tree.ByImportPath(importPath)
		if m == nil {
			log.Warn("normalize target not in tree, skipping", "target", target)
			continue
		}
		p, ok := buildPlan(tree, m, log)
		if !ok {
			continue
		}
		apply(p)
		log.Info("normalized default export to named",
			"module", m.ImportPath, "symbol", p.name, "import_sites", len(p.sites))
		done = append(done, m.ImportPath)
	}
	return done
}

// buildPlan computes all edits for one target as pure data.
func buildPlan(tree *project.Tree, m *project.Module, log *slog.Logger) (*plan, bool) {
	ex := project.ScanExports(m)
	if ex.Default == nil {
		log.Warn("normalize: module has no default export, skipping", "module", m.ImportPath)
		return nil, false
	}
	if ex.Default.Forward == "" {
		// Inline expression defaults cannot be renamed safely.
		log.Warn("normalize: default export is not a plain identifier, skipping",
			"module", m.ImportPath)
		return nil, false
	}
	name := ex.Default.Forward

	p := &plan{target: m, name: name, declLine: -1, fwdLine: ex.Default.Line}
	re := declPattern(name)
	for i, line := range m.Body {
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimPrefix(trimmed, "export ")
		if re.MatchString(trimmed) {
			p.declLine = i
			break
		}
	}
	if p.declLine == -1 {
		log.Warn("normalize: declaration not found, skipping",
			"module", m.ImportPath, "symbol", name)
		return nil, false
	}

	// Every import site that pulls the default binding from this module.
	for _, other := range tree.Modules {
		for _, d := range other.Imports {
			if d.Default != name || d.TypeOnly {
				continue
			}
			if tree.Resolve(d.Specifier, other) == m {
				p.sites = append(p.sites, d)
				p.owners = append(p.owners, other)
			}
		}
	}
	return p, true
}

// apply executes a computed plan in one batch.
func apply(p *plan) {
	// Mark the declaration as directly exported.
	line := p.target.Body[p.declLine]
	if !strings.HasPrefix(strings.TrimSpace(line), "export ") {
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		p.target.Body[p.declLine] = indent + "export " + strings.TrimLeft(line, " \t")
	}

	// Remove the forwarding statement.
	p.target.Body = append(p.target.Body[:p.fwdLine], p.target.Body[p.fwdLine+1:]...)
	p.target.Dirty = true

	// Rewrite importers: default form becomes named form, merged with
	// any named imports already at the site.
	for i, d := range p.sites {
		d.Default = ""
		project.AddNamed(d, p.name)
		p.owners[i].Dirty = true
	}
}
