package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/docsense/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently processed documents",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if cfg.Store.Path == "" {
		return fmt.Errorf("no history database configured; set DOCSENSE_DB")
	}

	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.Recent(historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		if run.Error != "" {
			fmt.Printf("%s  %s  FAILED: %s\n", run.CreatedAt.Format("2006-01-02 15:04"), run.Source, run.Error)
			continue
		}
		fmt.Printf("%s  %s  %d words, %.1f%% confidence\n",
			run.CreatedAt.Format("2006-01-02 15:04"), run.Source, run.WordCount, run.Confidence)
	}
	return nil
}
