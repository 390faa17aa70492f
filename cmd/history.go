package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/scrawl/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage remembered cursor positions",
}

var pruneKeep int

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Forget all but the most recently edited files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfgErr != nil {
			return cfgErr
		}
		if pruneKeep < 0 {
			return fmt.Errorf("--keep must not be negative, got %d", pruneKeep)
		}

		db, err := history.NewDB(cfg.History.ResolvedPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer func() { _ = db.Close() }()

		n, err := db.Store().Prune(cmd.Context(), pruneKeep)
		if err != nil {
			return fmt.Errorf("pruning history: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", n)
		return nil
	},
}

func init() {
	historyPruneCmd.Flags().IntVar(&pruneKeep, "keep", historyKeep, "number of files to keep")
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}
