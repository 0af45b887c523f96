package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"importfix/internal/index"
	"importfix/internal/project"
)

var indexVerbose bool

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Build and print the export index",
	Long: `Scan the project and print every exported symbol with the module
that owns it. Collisions are listed separately; during a repair the
first module in canonical-path order wins.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexVerbose, "verbose", "v", false, "Verbose logging")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	log := newLogger(indexVerbose)

	cfg, err := project.LoadConfig(root)
	if err != nil {
		return err
	}
	tree, err := project.Load(cfg)
	if err != nil {
		return err
	}
	idx := index.Build(tree, log)

	bold := color.New(color.Bold)
	bold.Printf("Export index: %d symbols\n", idx.Size())
	for _, sym := range idx.Symbols() {
		rec, _ := idx.Lookup(sym)
		marker := " "
		if rec.IsDefault {
			marker = "d"
		}
		fmt.Printf("  %s %-40s %s\n", marker, sym, rec.Path)
	}
	if len(idx.Collisions) > 0 {
		yellow := color.New(color.FgYellow)
		yellow.Printf("\nCollisions: %d\n", len(idx.Collisions))
		for _, c := range idx.Collisions {
			fmt.Printf("  %s: kept %s, dropped %s\n", c.Symbol, c.Kept, c.Dropped)
		}
	}
	return nil
}
