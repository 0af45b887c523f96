package types

import "time"

// =============================================================================
// SOURCE MODEL TYPES
// =============================================================================

// ImportDecl is one import statement of a module, in structured form.
// The fields may be combined the way TypeScript allows (default plus
// named, default plus namespace); SideEffect excludes the others.
type ImportDecl struct {
	Specifier  string   `json:"specifier"`
	Default    string   `json:"default,omitempty"`
	Named      []string `json:"named,omitempty"`
	Namespace  string   `json:"namespace,omitempty"`
	SideEffect bool     `json:"side_effect,omitempty"`
	TypeOnly   bool     `json:"type_only,omitempty"`
}

// ExportRecord maps an exported symbol to its canonical import path.
type ExportRecord struct {
	Symbol    string `json:"symbol"`
	Path      string `json:"path"`
	IsDefault bool   `json:"is_default"`
}

// Collision records two modules exporting the same symbol name.
// Kept is the path retained in the index, Dropped the one shadowed.
type Collision struct {
	Symbol  string `json:"symbol"`
	Kept    string `json:"kept"`
	Dropped string `json:"dropped"`
}

// =============================================================================
// DIAGNOSTIC AND FIX TYPES
// =============================================================================

// Diagnostic is a structured report from the pre-build check.
// Codes follow the TypeScript compiler taxonomy for the handled classes.
type Diagnostic struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path"`
	Line    int    `json:"line,omitempty"`
}

// AppliedFix describes one import mutation performed during a run.
type AppliedFix struct {
	Kind      string `json:"kind"` // add-import, to-named, to-default, fix-path, normalize
	Path      string `json:"path"`
	Symbol    string `json:"symbol,omitempty"`
	Specifier string `json:"specifier,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// =============================================================================
// RUN REPORT TYPES
// =============================================================================

// RunReport summarizes one repair invocation. Reports are side-band:
// the engine's contract to the caller remains the process exit code.
type RunReport struct {
	ID            string       `json:"id"`
	ProjectPath   string       `json:"project_path"`
	StartedAt     time.Time    `json:"started_at"`
	DurationMS    int64        `json:"duration_ms"`
	DryRun        bool         `json:"dry_run,omitempty"`
	ModulesLoaded int          `json:"modules_loaded"`
	Targets       []string     `json:"targets,omitempty"`
	IndexSize     int          `json:"index_size"`
	Collisions    []Collision  `json:"collisions,omitempty"`
	Normalized    []string     `json:"normalized,omitempty"`
	Fixes         []AppliedFix `json:"fixes,omitempty"`
	Unresolved    []string     `json:"unresolved,omitempty"`
	FilesWritten  []string     `json:"files_written,omitempty"`
}

// =============================================================================
// CONFIG TYPES
// =============================================================================

// UtilityImport is the configured fast-path helper symbol.
type UtilityImport struct {
	Symbol string `json:"symbol"`
	Path   string `json:"path"`
}

// ToolConfig is the optional .importfix.json at the project root.
type ToolConfig struct {
	Utility   *UtilityImport `json:"utility,omitempty"`
	Normalize []string       `json:"normalize,omitempty"`
}
