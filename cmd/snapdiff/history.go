package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"snapdiff/internal/config"
	"snapdiff/internal/history"
)

var (
	historyLimit int
	historyKeep  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded diff reports",
	Long: `List reports recorded with 'snapdiff diff --save' (or with history
enabled in the configuration), newest first.

Examples:
  snapdiff history
  snapdiff history --limit 5
  snapdiff history show 4f7c21aa-...
  snapdiff history prune --keep 20`,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a recorded report",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old reports, keeping the newest ones",
	RunE:  runHistoryPrune,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of entries to list (0 = all)")
	historyPruneCmd.Flags().IntVar(&historyKeep, "keep", 0, "Number of reports to keep (default: history.maxReports)")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*history.Store, *config.Config, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, nil, err
	}
	store, err := history.Open(cfg.History.Dir, newLogger(cfg))
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, _, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.List(historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No reports recorded.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %s  doc=%s  meta ~%d  candidates -%d ~%d +%d  (%s vs %s)\n",
			e.ID,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.DocumentID,
			e.Stats.MetaChanged,
			e.Stats.CandidatesRemoved,
			e.Stats.CandidatesEdited,
			e.Stats.CandidatesAdded,
			e.BeforeLabel,
			e.AfterLabel)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, _, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	_, payload, err := store.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Println(string(payload))
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	store, cfg, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	keep := historyKeep
	if keep <= 0 {
		keep = cfg.History.MaxReports
	}

	pruned, err := store.Prune(keep)
	if err != nil {
		return err
	}
	fmt.Printf("Pruned %d report(s), kept up to %d.\n", pruned, keep)
	return nil
}
