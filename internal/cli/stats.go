package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"importfix/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats [path]",
	Short: "Show aggregate repair statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	idx, err := storage.NewHistoryIndex(root)
	if err != nil {
		return err
	}
	defer idx.Close()

	stats, err := idx.GetStats()
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	bold.Println("Repair statistics")
	fmt.Printf("  Runs:          %d\n", stats["runs"])
	fmt.Printf("  Fixes:         %d\n", stats["fixes"])
	fmt.Printf("  Files written: %d\n", stats["files_written"])

	var kinds []string
	for k := range stats {
		if strings.HasPrefix(k, "fix:") {
			kinds = append(kinds, k)
		}
	}
	if len(kinds) > 0 {
		sort.Strings(kinds)
		fmt.Println("  By kind:")
		for _, k := range kinds {
			fmt.Printf("    %-12s %d\n", strings.TrimPrefix(k, "fix:"), stats[k])
		}
	}
	return nil
}
