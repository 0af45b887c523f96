package fix

import (
	"reflect"
	"regexp"
	"sort"

	"importfix/internal/project"
	"importfix/pkg/types"
)

// Finalize canonicalizes the import block of every touched module:
// declarations from the same specifier are merged into one, bindings
// never referenced in the body are dropped, and declarations are
// sorted by specifier string. Running it on its own output changes
// nothing, and modules no earlier pass touched are never visited.
func Finalize(tree *project.Tree) []string {
	var touched []string
	for _, m := range tree.DirtyModules() {
		finalizeModule(m)
		touched = append(touched, m.RelPath)
	}
	return touched
}

func finalizeModule(m *project.Module) {
	merged := mergeDecls(m.Imports)
	body := m.BodyText()

	var out []*types.ImportDecl
	for _, d := range merged {
		if d.SideEffect {
			out = append(out, d)
			continue
		}
		if d.Default != "" && !referenced(body, d.Default) {
			d.Default = ""
		}
		if d.Namespace != "" && !referenced(body, d.Namespace) {
			d.Namespace = ""
		}
		var kept []string
		for _, n := range d.Named {
			if referenced(body, project.LocalName(n)) {
				kept = append(kept, n)
			}
		}
		d.Named = kept
		if d.Default == "" && d.Namespace == "" && len(d.Named) == 0 {
			continue
		}
		out = append(out, d)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Specifier != out[j].Specifier {
			return out[i].Specifier < out[j].Specifier
		}
		return !out[i].TypeOnly && out[j].TypeOnly
	})

	if !reflect.DeepEqual(out, m.Imports) {
		m.Imports = out
		m.Dirty = true
	}
}

// mergeDecls folds declarations that share a specifier and
// type-onlyness into one, deduplicating named bindings. The first
// default and namespace binding win.
func mergeDecls(decls []*types.ImportDecl) []*types.ImportDecl {
	type key struct {
		spec       string
		typeOnly   bool
		sideEffect bool
	}
	byKey := make(map[key]*types.ImportDecl)
	var out []*types.ImportDecl

	for _, d := range decls {
		k := key{d.Specifier, d.TypeOnly, d.SideEffect}
		if prev, ok := byKey[k]; ok {
			if prev.Default == "" {
				prev.Default = d.Default
			}
			if prev.Namespace == "" {
				prev.Namespace = d.Namespace
			}
			for _, n := range d.Named {
				project.AddNamed(prev, n)
			}
			continue
		}
		// Copy so merging never aliases a declaration a caller holds.
		c := *d
		c.Named = append([]string(nil), d.Named...)
		project.SortNames(c.Named)
		byKey[k] = &c
		out = append(out, &c)
	}
	return out
}

// referenced reports a word-boundary occurrence of name in the body.
func referenced(body, name string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	return re.MatchString(body)
}
