// Package index builds the project-wide table of exported symbols.
package index

import (
	"log/slog"
	"sort"

	"importfix/internal/project"
	"importfix/pkg/types"
)

// Index maps a symbol name to the module that exports it. It is
// rebuilt from scratch on every run and never persisted.
type Index struct {
	Records    map[string]types.ExportRecord
	Collisions []types.Collision
}

// Lookup returns the record for a symbol.
func (x *Index) Lookup(symbol string) (types.ExportRecord, bool) {
	r, ok := x.Records[symbol]
	return r, ok
}

// Size returns the number of indexed symbols.
func (x *Index) Size() int {
	return len(x.Records)
}

// Build walks every in-scope module in sorted canonical-path order and
// records its exports. On a name collision the first module (by path
// order) wins; the collision is logged and retained so callers can
// surface it instead of silently resolving.
func Build(tree *project.Tree, log *slog.Logger) *Index {
	x := &Index{Records: make(map[string]types.ExportRecord)}

	modules := make([]*project.Module, 0, len(tree.Modules))
	for _, m := range tree.Modules {
		if tree.InScope(m) {
			modules = append(modules, m)
		}
	}
	sort.Slice(modules, func(i, j int) bool {
		return modules[i].ImportPath < modules[j].ImportPath
	})

	record := func(symbol, importPath string, isDefault bool) {
		if prev, ok := x.Records[symbol]; ok {
			if prev.Path == importPath {
				return
			}
			x.Collisions = append(x.Collisions, types.Collision{
				Symbol:  symbol,
				Kept:    prev.Path,
				Dropped: importPath,
			})
			log.Warn("export name collision, first module wins",
				"symbol", symbol, "kept", prev.Path, "dropped", importPath)
			return
		}
		x.Records[symbol] = types.ExportRecord{
			Symbol:    symbol,
			Path:      importPath,
			IsDefault: isDefault,
		}
	}

	for _, m := range modules {
		ex := project.ScanExports(m)
		if ex.Default != nil {
			record(ex.Default.Name, m.ImportPath, true)
		}
		for _, name := range ex.Named {
			record(name, m.ImportPath, false)
		}
	}

	if len(x.Records) == 0 {
		log.Warn("no exports discovered; later passes will resolve nothing",
			"modules", len(modules))
	}
	return x
}

// Symbols returns the indexed symbol names in sorted order.
func (x *Index) Symbols() []string {
	out := make([]string, 0, len(x.Records))
	for s := range x.Records {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
