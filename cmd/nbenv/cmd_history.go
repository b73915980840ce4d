package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dstudies/nbenv/internal/engine"
	"github.com/dstudies/nbenv/internal/ledger"
)

var historyLimit int

// historyCmd prints past runs from the ledger database
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past setup and extension runs",
	Long: `Prints the recorded outcome of past runs, newest first, with any
per-item failures. Runs are recorded in a small database next to the
environment directory unless recording was disabled.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to show")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	path := engine.LedgerPath(filepath.Dir(envDir))
	if _, err := os.Stat(path); err != nil {
		fmt.Println("no recorded runs")
		return nil
	}

	store, err := ledger.Open(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("open ledger %s: %w", path, err)
	}
	defer store.Close()

	runs, err := store.Runs(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	for _, run := range runs {
		status := "ok"
		if !run.OK {
			status = "failed"
		}
		fmt.Printf("%s  %-10s %-6s %s\n",
			run.StartedAt.Format(time.DateTime),
			run.Kind,
			status,
			run.FinishedAt.Sub(run.StartedAt).Round(timeRound),
		)
		if run.OK {
			continue
		}
		items, err := store.Items(cmd.Context(), run.ID)
		if err != nil {
			return fmt.Errorf("read ledger items: %w", err)
		}
		for _, item := range items {
			if item.OK {
				continue
			}
			fmt.Printf("    failed %s: %s\n", item.Name, item.Detail)
		}
	}
	return nil
}
