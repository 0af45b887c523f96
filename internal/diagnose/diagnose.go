// Package diagnose runs the pre-build static check that feeds the
// fixer. It emulates the compiler's pass for the three conditions the
// engine can repair, using the TypeScript diagnostic codes for them.
package diagnose

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"importfix/internal/project"
	"importfix/pkg/types"
)

// Diagnostic codes, per the TypeScript compiler taxonomy.
const (
	CodeCannotFindName   = 2304
	CodeCannotFindModule = 2307
	CodeNoDefaultExport  = 2613
)

// Reference patterns, the same shapes the generated code actually
// uses: JSX elements, hook calls, and capitalized member/call usage.
var (
	jsxRef    = regexp.MustCompile(`<([A-Z][A-Za-z0-9]*)`)
	hookRef   = regexp.MustCompile(`\b(use[A-Z][A-Za-z0-9]*)\s*\(`)
	memberRef = regexp.MustCompile(`\b([A-Z][A-Za-z0-9]*)\s*[.(]`)

	localDecl = regexp.MustCompile(`^(?:export\s+)?(?:default\s+)?(?:async\s+)?(?:function|class|const|let|var|interface|type|enum)\s+([A-Za-z_$][\w$]*)`)
)

// Check inspects one module against the current tree and reports
// every actionable condition. Diagnostics are emitted in a stable
// order: module-path problems first, then export-style mismatches,
// then unresolved names.
func Check(m *project.Module, tree *project.Tree, utilitySymbol string) []types.Diagnostic {
	var diags []types.Diagnostic

	internal := func(spec string) bool {
		return strings.HasPrefix(spec, tree.Cfg.Alias+"/") || strings.HasPrefix(spec, ".")
	}

	for _, d := range m.Imports {
		if !internal(d.Specifier) {
			continue
		}
		target := tree.Resolve(d.Specifier, m)
		if target == nil {
			diags = append(diags, types.Diagnostic{
				Code: CodeCannotFindModule,
				Message: fmt.Sprintf(
					"Cannot find module '%s' or its corresponding type declarations.", d.Specifier),
				Path: m.RelPath,
			})
			continue
		}
		if d.Default == "" || d.TypeOnly {
			continue
		}
		ex := project.ScanExports(target)
		if ex.Default == nil && ex.HasNamed(d.Default) {
			diags = append(diags, types.Diagnostic{
				Code: CodeNoDefaultExport,
				Message: fmt.Sprintf(
					"Module '%s' has no default export. Did you mean to use 'import { %s } from \"%s\"' instead?",
					d.Specifier, d.Default, d.Specifier),
				Path: m.RelPath,
			})
		}
	}

	bound := m.Bindings()
	for name := range localNames(m) {
		bound[name] = true
	}
	for _, name := range referencedNames(m.BodyText(), utilitySymbol) {
		if bound[name] {
			continue
		}
		diags = append(diags, types.Diagnostic{
			Code:    CodeCannotFindName,
			Message: fmt.Sprintf("Cannot find name '%s'.", name),
			Path:    m.RelPath,
		})
	}
	return diags
}

// localNames collects top-level declarations in the module body.
func localNames(m *project.Module) map[string]bool {
	names := make(map[string]bool)
	for _, line := range m.Body {
		if mm := localDecl.FindStringSubmatch(strings.TrimSpace(line)); mm != nil {
			names[mm[1]] = true
		}
	}
	return names
}

// referencedNames extracts identifiers the body uses in component,
// hook, or utility-call position, sorted and deduplicated.
func referencedNames(body string, utilitySymbol string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	for _, re := range []*regexp.Regexp{jsxRef, hookRef, memberRef} {
		for _, mm := range re.FindAllStringSubmatch(body, -1) {
			add(mm[1])
		}
	}
	if utilitySymbol != "" {
		utilRef := regexp.MustCompile(`\b` + regexp.QuoteMeta(utilitySymbol) + `\s*\(`)
		if utilRef.MatchString(body) {
			add(utilitySymbol)
		}
	}
	sort.Strings(out)
	return out
}
