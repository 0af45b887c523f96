package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "importfix",
	Short: "Repair import statements in generated Next.js projects",
	Long: `importfix - Import Repair for Generated Source Trees

importfix takes a generated (and often broken) Next.js/TypeScript
project, discovers every symbol it exports, and rewrites its import
statements so the tree type-checks and builds.

The pipeline:
  1. Normalize configured modules from default- to named-export style
  2. Build a project-wide export index
  3. Run a pre-build diagnostic check per target and fix what it finds
  4. Apply the build-log fallback when build output is supplied
  5. Canonicalize the import blocks and write everything in one step

Quick Start:
  importfix fix                  Repair the whole project
  importfix fix -t src/app/page.tsx
  importfix index                Show the export index
  importfix history              List past repair runs`,

	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the CLI's slog logger; verbose lowers the level.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
