package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/docsense/internal/pipeline"
	"github.com/strrl/docsense/internal/store"
)

var (
	batchAnalyze bool
	batchKind    string
	batchWorkers int
	batchSave    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <image>...",
	Short: "Process multiple document images",
	Long: `Process every image and report one outcome per input, in input order.
A failing image is reported and skipped; the rest of the batch continues.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().BoolVar(&batchAnalyze, "analyze", true, "Run AI analysis on the extracted text")
	batchCmd.Flags().StringVar(&batchKind, "kind", "summary", "Analysis kind: summary, key_points, entities, classification")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 1, "Number of concurrent workers (1 = sequential)")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "Record the batch in the local history database")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Processing %d documents\n", len(args))

	outcomes := p.BatchProcess(cmd.Context(), args, batchAnalyze, pipeline.AnalysisKind(batchKind),
		pipeline.WithWorkers(batchWorkers))

	failures := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failures++
			fmt.Printf("FAIL %s: %v\n", outcome.Source, outcome.Err)
			continue
		}
		fmt.Printf("OK   %s: %d words, %.1f%% confidence\n",
			outcome.Source, outcome.Result.OCR.WordCount, outcome.Result.OCR.Confidence)
	}
	fmt.Printf("Done: %d succeeded, %d failed\n", len(outcomes)-failures, failures)

	if batchSave {
		s, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := s.SaveBatch(outcomes)
		if err != nil {
			return err
		}
		fmt.Printf("Saved batch %s\n", id)
	}

	return nil
}
