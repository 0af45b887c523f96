package project

import (
	"path"
	"regexp"
	"strings"
	"unicode"
)

// Export statement patterns.
var (
	exportDefaultFunc  = regexp.MustCompile(`^export\s+default\s+(?:async\s+)?function\s*([A-Za-z_$][\w$]*)?\s*\(`)
	exportDefaultClass = regexp.MustCompile(`^export\s+default\s+(?:abstract\s+)?class\s*([A-Za-z_$][\w$]*)?`)
	exportDefaultIdent = regexp.MustCompile(`^export\s+default\s+([A-Za-z_$][\w$]*)\s*;?\s*$`)
	exportDefaultAny   = regexp.MustCompile(`^export\s+default\b`)

	exportFunc  = regexp.MustCompile(`^export\s+(?:async\s+)?function\s+([A-Za-z_$][\w$]*)`)
	exportVar   = regexp.MustCompile(`^export\s+(?:const|let|var)\s+([A-Za-z_$][\w$]*)`)
	exportClass = regexp.MustCompile(`^export\s+(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)`)
	exportIface = regexp.MustCompile(`^export\s+interface\s+([A-Za-z_$][\w$]*)`)
	exportType  = regexp.MustCompile(`^export\s+type\s+([A-Za-z_$][\w$]*)`)
	exportEnum  = regexp.MustCompile(`^export\s+(?:const\s+)?enum\s+([A-Za-z_$][\w$]*)`)
	exportList  = regexp.MustCompile(`^export\s+\{([^}]*)\}\s*(?:;|$)`)
)

// DefaultExport describes a module's singular export.
type DefaultExport struct {
	Name    string // resolved or derived symbol name
	Forward string // identifier the export forwards, "" for inline shapes
	Line    int    // 0-based index into Body
}

// Exports is the export surface of one module.
type Exports struct {
	Default *DefaultExport
	Named   []string
}

// HasNamed reports whether name is among the named exports.
func (e *Exports) HasNamed(name string) bool {
	for _, n := range e.Named {
		if n == name {
			return true
		}
	}
	return false
}

// ScanExports extracts the export surface from a module body. The
// default export's symbol name is the forwarded identifier when the
// statement forwards one, otherwise it is derived from the file name
// (PascalCased, parent directory for index modules).
func ScanExports(m *Module) *Exports {
	ex := &Exports{}
	seen := make(map[string]bool)
	addNamed := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			ex.Named = append(ex.Named, name)
		}
	}

	for i, line := range m.Body {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "export") {
			continue
		}

		if ex.Default == nil {
			if mm := exportDefaultFunc.FindStringSubmatch(trimmed); mm != nil {
				name := mm[1]
				if name == "" {
					name = DerivedName(m.RelPath)
				}
				ex.Default = &DefaultExport{Name: name, Line: i}
				continue
			}
			if mm := exportDefaultClass.FindStringSubmatch(trimmed); mm != nil {
				name := mm[1]
				if name == "" {
					name = DerivedName(m.RelPath)
				}
				ex.Default = &DefaultExport{Name: name, Line: i}
				continue
			}
			if mm := exportDefaultIdent.FindStringSubmatch(trimmed); mm != nil {
				ex.Default = &DefaultExport{Name: mm[1], Forward: mm[1], Line: i}
				continue
			}
			if exportDefaultAny.MatchString(trimmed) {
				ex.Default = &DefaultExport{Name: DerivedName(m.RelPath), Line: i}
				continue
			}
		}

		if mm := exportList.FindStringSubmatch(trimmed); mm != nil {
			for _, entry := range strings.Split(mm[1], ",") {
				entry = strings.TrimSpace(entry)
				if entry == "" {
					continue
				}
				// `export { Foo as Bar }` exposes Bar.
				if idx := strings.Index(entry, " as "); idx >= 0 {
					addNamed(strings.TrimSpace(entry[idx+4:]))
				} else {
					addNamed(entry)
				}
			}
			continue
		}

		// Enum before var so `export const enum` is not read as a const.
		for _, re := range []*regexp.Regexp{exportFunc, exportClass, exportIface, exportType, exportEnum, exportVar} {
			if mm := re.FindStringSubmatch(trimmed); mm != nil {
				addNamed(mm[1])
				break
			}
		}
	}
	return ex
}

// DerivedName turns a file path into a PascalCase symbol name:
// "components/mode-toggle.tsx" becomes ModeToggle, and an index module
// takes its parent directory's name.
func DerivedName(relPath string) string {
	base := path.Base(relPath)
	if dot := strings.LastIndex(base, "."); dot > 0 {
		base = base[:dot]
	}
	if base == "index" {
		base = path.Base(path.Dir(relPath))
		if base == "." || base == "/" {
			base = "index"
		}
	}
	return pascalCase(base)
}

func pascalCase(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || r == '.' || r == ' ':
			upper = true
		case upper:
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
