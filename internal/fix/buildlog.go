package fix

import (
	"log/slog"
	"regexp"

	"importfix/internal/project"
	"importfix/pkg/types"
)

// The bundler reports export mismatches the static check cannot see,
// as lines like:
//
//	Attempted import error: 'Header' is not exported from '@/components/header' (imported as 'Header').
var notExportedPattern = regexp.MustCompile(`'([A-Za-z_$][\w$]*)' is not exported from '([^']+)'`)

// ApplyBuildLog scans raw build output for export mismatches and, for
// each one confirmed against the module's actual exports, converts
// every named import of that symbol across the whole tree to default
// form. Unlike the diagnostic fixer this needs no target list.
func ApplyBuildLog(tree *project.Tree, output string, log *slog.Logger) []types.AppliedFix {
	var fixes []types.AppliedFix
	seen := make(map[[2]string]bool)

	for _, mm := range notExportedPattern.FindAllStringSubmatch(output, -1) {
		symbol, spec := mm[1], mm[2]
		key := [2]string{symbol, spec}
		if seen[key] {
			continue
		}
		seen[key] = true

		target := tree.Resolve(spec, nil)
		if target == nil {
			log.Warn("build log names a module not in the tree, skipping",
				"symbol", symbol, "specifier", spec)
			continue
		}
		ex := project.ScanExports(target)
		if ex.Default == nil || ex.HasNamed(symbol) {
			// The export exists (or nothing to swap to); not our case.
			continue
		}

		for _, m := range tree.Modules {
			for _, d := range m.Imports {
				if d.TypeOnly || tree.Resolve(d.Specifier, m) != target {
					continue
				}
				if !project.RemoveNamed(d, symbol) {
					continue
				}
				if d.Default == "" {
					d.Default = symbol
				}
				m.Dirty = true
				fixes = append(fixes, types.AppliedFix{
					Kind:      "to-default",
					Path:      m.RelPath,
					Symbol:    symbol,
					Specifier: d.Specifier,
				})
			}
		}
	}
	return fixes
}
