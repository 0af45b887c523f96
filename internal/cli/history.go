package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"importfix/internal/storage"
)

var (
	historyLimit   int
	historyRebuild bool
)

var historyCmd = &cobra.Command{
	Use:   "history [path]",
	Short: "List past repair runs",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum runs to show")
	historyCmd.Flags().BoolVar(&historyRebuild, "rebuild", false, "Rebuild the history database from JSON reports")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	idx, err := storage.NewHistoryIndex(root)
	if err != nil {
		return err
	}
	defer idx.Close()

	if historyRebuild {
		if err := idx.RebuildFromJSON(storage.NewRunStore(root)); err != nil {
			return err
		}
		fmt.Println("History database rebuilt.")
	}

	runs, err := idx.RecentRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	bold := color.New(color.Bold)
	bold.Printf("%-36s  %-20s  %8s  %6s  %6s\n", "RUN", "STARTED", "DURATION", "FIXES", "FILES")
	for _, r := range runs {
		suffix := ""
		if r.DryRun {
			suffix = " (dry run)"
		}
		fmt.Printf("%-36s  %-20s  %6dms  %6d  %6d%s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.DurationMS, r.Fixes, r.FilesWritten, suffix)
	}
	return nil
}
