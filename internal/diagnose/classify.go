package diagnose

import (
	"regexp"

	"importfix/pkg/types"
)

// Kind is the closed set of diagnostic categories the fixer handles.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnresolvedName
	KindNoDefaultExport
	KindBadModulePath
)

// Classified carries the fields a fix strategy needs, parsed out of
// the diagnostic once rather than re-parsed at every use site.
type Classified struct {
	Kind      Kind
	Name      string // unresolved identifier, or suggested named import
	Specifier string // module specifier named by the diagnostic
	Diag      types.Diagnostic
}

var (
	cannotFindNameMsg   = regexp.MustCompile(`^Cannot find name '([A-Za-z_$][\w$]*)'`)
	cannotFindModuleMsg = regexp.MustCompile(`^Cannot find module '([^']+)'`)
	noDefaultExportMsg  = regexp.MustCompile(`^Module '([^']+)' has no default export\. Did you mean to use 'import \{ ([A-Za-z_$][\w$]*) \} from "([^"]+)"' instead\?`)
)

// Classify buckets a diagnostic by code, falling back to the message
// text. A diagnostic matching no known pattern comes back as
// KindUnknown and is ignored by the fixer.
func Classify(d types.Diagnostic) Classified {
	c := Classified{Kind: KindUnknown, Diag: d}

	switch d.Code {
	case CodeCannotFindName:
		if m := cannotFindNameMsg.FindStringSubmatch(d.Message); m != nil {
			c.Kind = KindUnresolvedName
			c.Name = m[1]
		}
	case CodeNoDefaultExport:
		if m := noDefaultExportMsg.FindStringSubmatch(d.Message); m != nil {
			c.Kind = KindNoDefaultExport
			c.Specifier = m[1]
			c.Name = m[2]
		}
	case CodeCannotFindModule:
		if m := cannotFindModuleMsg.FindStringSubmatch(d.Message); m != nil {
			c.Kind = KindBadModulePath
			c.Specifier = m[1]
		}
	}
	return c
}
