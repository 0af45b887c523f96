package fix

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"importfix/internal/index"
	"importfix/internal/normalize"
	"importfix/internal/project"
	"importfix/pkg/types"
)

// Options control one engine invocation.
type Options struct {
	// Targets are module paths to run diagnostics on; empty means every
	// in-scope module.
	Targets []string
	// BuildLog is raw build-tool output for the fallback fixer; empty
	// disables it.
	BuildLog string
	// DryRun runs the full pipeline but skips persistence.
	DryRun bool
}

// Engine runs the repair pipeline: normalize, index, diagnose and fix
// per target, build-log fallback, finalize, persist. Each invocation
// loads nothing lazily and keeps no state between runs; the export
// index lives only for the duration of Run.
type Engine struct {
	tree *project.Tree
	log  *slog.Logger
}

// NewEngine creates an engine over a loaded tree.
func NewEngine(tree *project.Tree, log *slog.Logger) *Engine {
	return &Engine{tree: tree, log: log}
}

// Run executes the pipeline. A fatal error (unknown target, failed
// write) aborts; any error raised before persistence guarantees the
// tree on disk is untouched.
func (e *Engine) Run(opts Options) (*types.RunReport, error) {
	start := time.Now()
	report := &types.RunReport{
		ID:            uuid.New().String(),
		ProjectPath:   e.tree.Cfg.Root,
		StartedAt:     start,
		DryRun:        opts.DryRun,
		ModulesLoaded: len(e.tree.Modules),
		Targets:       opts.Targets,
	}

	// Resolve targets up front so a bad target aborts before any pass.
	targets, err := e.tree.TargetModules(opts.Targets)
	if err != nil {
		return nil, err
	}

	report.Normalized = normalize.Run(e.tree, e.tree.Cfg.Normalize, e.log)
	for _, p := range report.Normalized {
		report.Fixes = append(report.Fixes, types.AppliedFix{Kind: "normalize", Path: p})
	}

	// The index is built after normalization so it reflects the
	// corrected export shapes.
	idx := index.Build(e.tree, e.log)
	report.IndexSize = idx.Size()
	report.Collisions = idx.Collisions

	fixer := NewFixer(e.tree, idx, e.log)
	for _, m := range targets {
		report.Fixes = append(report.Fixes, fixer.FixModule(m)...)
	}
	report.Unresolved = fixer.Unresolved

	if opts.BuildLog != "" {
		report.Fixes = append(report.Fixes, ApplyBuildLog(e.tree, opts.BuildLog, e.log)...)
	}

	Finalize(e.tree)

	if !opts.DryRun {
		written, err := e.tree.Flush()
		report.FilesWritten = written
		if err != nil {
			report.DurationMS = time.Since(start).Milliseconds()
			return report, err
		}
	} else {
		for _, m := range e.tree.DirtyModules() {
			report.FilesWritten = append(report.FilesWritten, m.RelPath)
		}
	}

	report.DurationMS = time.Since(start).Milliseconds()
	return report, nil
}
