package project

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"importfix/pkg/types"
)

// Import statement patterns. Multi-line named imports are handled by
// joining lines until the closing `from '...'` before matching.
var (
	sideEffectImport = regexp.MustCompile(`^import\s+['"]([^'"]+)['"]\s*;?\s*$`)
	fullImport       = regexp.MustCompile(`^import\s+(type\s+)?(.+?)\s+from\s+['"]([^'"]+)['"]\s*;?\s*$`)
	importStart      = regexp.MustCompile(`^import\b[^'"]*$`)

	namespaceClause = regexp.MustCompile(`^\*\s+as\s+([A-Za-z_$][\w$]*)$`)
	defaultClause   = regexp.MustCompile(`^([A-Za-z_$][\w$]*)$`)
	comboClause     = regexp.MustCompile(`^([A-Za-z_$][\w$]*)\s*,\s*(.+)$`)
	namedClause     = regexp.MustCompile(`^\{([^}]*)\}$`)
)

// parseImportClause fills d from the binding clause between `import`
// and `from`. Returns false for shapes it does not recognize.
func parseImportClause(clause string, d *types.ImportDecl) bool {
	clause = strings.TrimSpace(clause)

	if m := comboClause.FindStringSubmatch(clause); m != nil {
		d.Default = m[1]
		rest := strings.TrimSpace(m[2])
		if nm := namedClause.FindStringSubmatch(rest); nm != nil {
			d.Named = splitNames(nm[1])
			return true
		}
		if nm := namespaceClause.FindStringSubmatch(rest); nm != nil {
			d.Namespace = nm[1]
			return true
		}
		return false
	}
	if m := namedClause.FindStringSubmatch(clause); m != nil {
		d.Named = splitNames(m[1])
		return true
	}
	if m := namespaceClause.FindStringSubmatch(clause); m != nil {
		d.Namespace = m[1]
		return true
	}
	if m := defaultClause.FindStringSubmatch(clause); m != nil {
		d.Default = m[1]
		return true
	}
	return false
}

// ParseImport parses one complete import statement (possibly joined
// from several lines). Returns nil when the text is not an import the
// engine understands.
func ParseImport(stmt string) *types.ImportDecl {
	stmt = strings.TrimSpace(stmt)

	if m := sideEffectImport.FindStringSubmatch(stmt); m != nil {
		return &types.ImportDecl{Specifier: m[1], SideEffect: true}
	}
	if m := fullImport.FindStringSubmatch(stmt); m != nil {
		d := &types.ImportDecl{Specifier: m[3], TypeOnly: m[1] != ""}
		if !parseImportClause(m[2], d) {
			return nil
		}
		return d
	}
	return nil
}

func splitNames(list string) []string {
	var names []string
	for _, part := range strings.Split(list, ",") {
		name := strings.TrimSpace(part)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// LocalName returns the binding a named-import entry introduces:
// "Foo" for "Foo", "Bar" for "Foo as Bar".
func LocalName(entry string) string {
	if i := strings.LastIndex(entry, " as "); i >= 0 {
		return strings.TrimSpace(entry[i+4:])
	}
	return entry
}

// ExportedName returns the symbol a named-import entry pulls from the
// source module: "Foo" for both "Foo" and "Foo as Bar".
func ExportedName(entry string) string {
	if i := strings.Index(entry, " as "); i >= 0 {
		return strings.TrimSpace(entry[:i])
	}
	return entry
}

// Small imports fit on one line; larger named lists go multi-line.
// Mirrors the generated-site convention of three specifiers per line.
const maxSingleLineNames = 3

// RenderImport renders a declaration back to source lines.
func RenderImport(d *types.ImportDecl) []string {
	if d.SideEffect {
		return []string{fmt.Sprintf("import '%s';", d.Specifier)}
	}

	kw := "import"
	if d.TypeOnly {
		kw = "import type"
	}

	var clause []string
	if d.Default != "" {
		clause = append(clause, d.Default)
	}
	if d.Namespace != "" {
		clause = append(clause, "* as "+d.Namespace)
	}

	if len(d.Named) > maxSingleLineNames && d.Default == "" && d.Namespace == "" {
		lines := []string{kw + " {"}
		for i, name := range d.Named {
			sep := ","
			if i == len(d.Named)-1 {
				sep = ""
			}
			lines = append(lines, "  "+name+sep)
		}
		lines = append(lines, fmt.Sprintf("} from '%s';", d.Specifier))
		return lines
	}

	if len(d.Named) > 0 {
		clause = append(clause, "{ "+strings.Join(d.Named, ", ")+" }")
	}
	return []string{fmt.Sprintf("%s %s from '%s';", kw, strings.Join(clause, ", "), d.Specifier)}
}

// AddNamed inserts a named binding, keeping the list deduplicated and
// sorted by local name.
func AddNamed(d *types.ImportDecl, name string) {
	for _, n := range d.Named {
		if n == name {
			return
		}
	}
	d.Named = append(d.Named, name)
	SortNames(d.Named)
}

// RemoveNamed drops a named binding; returns true when it was present.
func RemoveNamed(d *types.ImportDecl, name string) bool {
	for i, n := range d.Named {
		if n == name || LocalName(n) == name {
			d.Named = append(d.Named[:i], d.Named[i+1:]...)
			return true
		}
	}
	return false
}

// SortNames orders named-import entries by their local binding.
func SortNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return LocalName(names[i]) < LocalName(names[j])
	})
}
