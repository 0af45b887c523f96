package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"importfix/internal/fix"
	"importfix/internal/project"
	"importfix/internal/storage"
	"importfix/pkg/types"
)

var (
	fixTargets  []string
	fixBuildLog string
	fixDryRun   bool
	fixVerbose  bool
)

var fixCmd = &cobra.Command{
	Use:   "fix [path]",
	Short: "Repair imports across the project",
	Long: `Run the full repair pipeline on a project.

The project root must contain a tsconfig.json with an alias path
mapping (e.g. "@/*": ["./src/*"]). All edits accumulate in memory and
are written in a single step at the end; a fatal error before that
leaves the tree untouched.

Examples:
  importfix fix                          # repair everything under .
  importfix fix ~/sites/gen_42           # repair another project
  importfix fix -t src/app/page.tsx      # diagnostics only for one file
  importfix fix --build-log build.txt    # also apply the build-log fallback
  pnpm build 2>&1 | importfix fix --build-log -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().StringArrayVarP(&fixTargets, "target", "t", nil, "Target module path (repeatable; default: all in-scope modules)")
	fixCmd.Flags().StringVar(&fixBuildLog, "build-log", "", "File with raw build output ('-' for stdin)")
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "Run the pipeline but write nothing")
	fixCmd.Flags().BoolVarP(&fixVerbose, "verbose", "v", false, "Verbose logging")
	rootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	log := newLogger(fixVerbose)

	cfg, err := project.LoadConfig(root)
	if err != nil {
		return err
	}
	tree, err := project.Load(cfg)
	if err != nil {
		return err
	}

	buildLog, err := readBuildLog(fixBuildLog)
	if err != nil {
		return err
	}

	engine := fix.NewEngine(tree, log)
	report, runErr := engine.Run(fix.Options{
		Targets:  fixTargets,
		BuildLog: buildLog,
		DryRun:   fixDryRun,
	})
	if report != nil {
		saveReport(cfg.Root, report, log)
		printFixSummary(report)
	}
	return runErr
}

// readBuildLog loads the optional build output ("-" reads stdin).
func readBuildLog(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read build log from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read build log: %w", err)
	}
	return string(data), nil
}

// saveReport records the run; failures here never fail the repair.
func saveReport(root string, report *types.RunReport, log *slog.Logger) {
	store := storage.NewRunStore(root)
	if err := store.SaveRun(report); err != nil {
		log.Warn("could not save run report", "error", err)
		return
	}
	idx, err := storage.NewHistoryIndex(root)
	if err != nil {
		log.Warn("could not open history index", "error", err)
		return
	}
	defer idx.Close()
	if err := idx.IndexRun(report); err != nil {
		log.Warn("could not index run", "error", err)
	}
}

func printFixSummary(r *types.RunReport) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	bold.Println("Import repair complete")
	fmt.Printf("  Modules loaded:  %d\n", r.ModulesLoaded)
	fmt.Printf("  Index size:      %d exports\n", r.IndexSize)
	if len(r.Collisions) > 0 {
		yellow.Printf("  Collisions:      %d (first module wins)\n", len(r.Collisions))
		for _, c := range r.Collisions {
			fmt.Printf("    %s: kept %s, dropped %s\n", c.Symbol, c.Kept, c.Dropped)
		}
	}
	if len(r.Normalized) > 0 {
		fmt.Printf("  Normalized:      %d modules\n", len(r.Normalized))
	}
	if len(r.Fixes) > 0 {
		green.Printf("  Fixes applied:   %d\n", len(r.Fixes))
		for _, f := range r.Fixes {
			desc := f.Detail
			if desc == "" && f.Symbol != "" {
				desc = f.Symbol
				if f.Specifier != "" {
					desc = fmt.Sprintf("%s from '%s'", f.Symbol, f.Specifier)
				}
			}
			if desc == "" {
				fmt.Printf("    [%s] %s\n", f.Kind, f.Path)
				continue
			}
			fmt.Printf("    [%s] %s: %s\n", f.Kind, f.Path, desc)
		}
	} else {
		fmt.Println("  Fixes applied:   0")
	}
	if len(r.Unresolved) > 0 {
		red.Printf("  Unresolved:      %d\n", len(r.Unresolved))
		for _, u := range r.Unresolved {
			fmt.Printf("    %s\n", u)
		}
	}
	if r.DryRun {
		yellow.Printf("  Dry run: %d files would be written\n", len(r.FilesWritten))
	} else {
		fmt.Printf("  Files written:   %d\n", len(r.FilesWritten))
	}
	fmt.Printf("  Duration:        %dms\n", r.DurationMS)
}
