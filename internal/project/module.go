package project

import (
	"regexp"
	"strings"

	"importfix/pkg/types"
)

// Module is one source file loaded into memory. All passes mutate the
// structured import block; the body is carried through opaquely and
// only written back when the module is dirty.
type Module struct {
	AbsPath    string
	RelPath    string // slash path relative to the project root
	ImportPath string // canonical alias path, "" when outside the source root

	Header  []string // shebang, leading comments, directives ('use client')
	Imports []*types.ImportDecl
	Body    []string

	Dirty bool
}

var (
	directiveLine = regexp.MustCompile(`^(?:"use \w+"|'use \w+')\s*;?\s*$`)
	importFromEnd = regexp.MustCompile(`\}\s*from\s+['"][^'"]+['"]\s*;?\s*$`)
)

// ParseModule builds the in-memory model from file content. The
// import block is lifted into structured declarations; header lines
// (shebang, top comments, directives) and the body keep their text.
func ParseModule(absPath, relPath string, content string) *Module {
	m := &Module{AbsPath: absPath, RelPath: relPath}

	lines := strings.Split(content, "\n")
	i := 0

	// Header: shebang, then blanks/comments/directives until the first
	// import or statement.
	if i < len(lines) && strings.HasPrefix(lines[i], "#!") {
		m.Header = append(m.Header, lines[i])
		i++
	}
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "//") || directiveLine.MatchString(trimmed) {
			m.Header = append(m.Header, lines[i])
			i++
			continue
		}
		break
	}
	// Trailing blank header lines are render artifacts, not content.
	for len(m.Header) > 0 && strings.TrimSpace(m.Header[len(m.Header)-1]) == "" {
		m.Header = m.Header[:len(m.Header)-1]
	}

	// Remaining lines: import statements anywhere near the top plus the
	// body. Imports after the first body statement are still collected;
	// the finalizer re-emits them in the canonical block.
	var body []string
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "import") {
			stmt, consumed := collectImport(lines, i)
			if d := ParseImport(stmt); d != nil {
				m.Imports = append(m.Imports, d)
				i += consumed
				continue
			}
		}
		body = append(body, line)
		i++
	}

	// Normalize blank padding so parse(render(m)) round-trips.
	for len(body) > 0 && strings.TrimSpace(body[0]) == "" {
		body = body[1:]
	}
	for len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "" {
		body = body[:len(body)-1]
	}
	m.Body = body
	return m
}

// collectImport joins a possibly multi-line import statement starting
// at lines[start]. Returns the joined statement and lines consumed.
func collectImport(lines []string, start int) (string, int) {
	first := strings.TrimSpace(lines[start])
	if !importStart.MatchString(first) {
		return first, 1
	}
	// Multi-line: accumulate until the `} from '...'` line.
	var parts []string
	parts = append(parts, first)
	for j := start + 1; j < len(lines) && j-start < 50; j++ {
		part := strings.TrimSpace(lines[j])
		parts = append(parts, part)
		if importFromEnd.MatchString(part) {
			return strings.Join(parts, " "), j - start + 1
		}
		// A nested import line inside a malformed block ends the scan.
		if strings.HasPrefix(part, "import ") && strings.Contains(part, " from ") {
			break
		}
	}
	return first, 1
}

// Render regenerates the file in canonical layout: header, imports,
// body, separated by single blank lines.
func (m *Module) Render() string {
	var out []string
	out = append(out, m.Header...)

	if len(m.Imports) > 0 {
		if len(out) > 0 {
			out = append(out, "")
		}
		for _, d := range m.Imports {
			out = append(out, RenderImport(d)...)
		}
	}
	if len(m.Body) > 0 {
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, m.Body...)
	}
	return strings.Join(out, "\n") + "\n"
}

// ImportFor returns the declaration importing from spec with the given
// type-onlyness, or nil.
func (m *Module) ImportFor(spec string, typeOnly bool) *types.ImportDecl {
	for _, d := range m.Imports {
		if d.Specifier == spec && d.TypeOnly == typeOnly && !d.SideEffect {
			return d
		}
	}
	return nil
}

// Bindings returns every local name the import block introduces.
func (m *Module) Bindings() map[string]bool {
	bound := make(map[string]bool)
	for _, d := range m.Imports {
		if d.Default != "" {
			bound[d.Default] = true
		}
		if d.Namespace != "" {
			bound[d.Namespace] = true
		}
		for _, n := range d.Named {
			bound[LocalName(n)] = true
		}
	}
	return bound
}

// BodyText returns the body as one string, for reference scanning.
func (m *Module) BodyText() string {
	return strings.Join(m.Body, "\n")
}
