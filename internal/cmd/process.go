package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/docsense/internal/config"
	"github.com/strrl/docsense/internal/ocr"
	"github.com/strrl/docsense/internal/pipeline"
	"github.com/strrl/docsense/internal/store"
)

// Analysis runs use a lower temperature than chat for more consistent
// output.
const analysisTemperature = 0.3

var (
	processAnalyze bool
	processKind    string
	processSave    bool
)

var processCmd = &cobra.Command{
	Use:   "process <image>",
	Short: "OCR a document image and analyze the extracted text",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().BoolVar(&processAnalyze, "analyze", true, "Run AI analysis on the extracted text")
	processCmd.Flags().StringVar(&processKind, "kind", "summary", "Analysis kind: summary, key_points, entities, classification")
	processCmd.Flags().BoolVar(&processSave, "save", false, "Record the run in the local history database")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	result, err := p.ProcessDocument(cmd.Context(), args[0], processAnalyze, pipeline.AnalysisKind(processKind))
	if err != nil {
		return err
	}

	printResult(result)

	if processSave {
		s, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := s.SaveResult(result)
		if err != nil {
			return err
		}
		fmt.Printf("Saved run %s\n", id)
	}

	return nil
}

func newPipeline(cfg config.Config) (*pipeline.Pipeline, error) {
	client, err := newOllamaClient(cfg, analysisTemperature)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	var engineOpts []ocr.TesseractOption
	if cfg.OCR.TesseractPath != "" {
		engineOpts = append(engineOpts, ocr.WithTessdataPrefix(cfg.OCR.TesseractPath))
	}

	return pipeline.New(client, ocr.NewTesseractEngine(engineOpts...), pipeline.Config{
		Language: cfg.OCR.Language,
	}), nil
}

func printResult(result pipeline.DocumentResult) {
	fmt.Printf("Source: %s\n", result.Source)
	fmt.Printf("Confidence: %.1f%% over %d words\n", result.OCR.Confidence, result.OCR.WordCount)
	fmt.Printf("Text:\n%s\n", result.OCR.Text)
	if result.Analysis != "" {
		fmt.Printf("Analysis:\n%s\n", result.Analysis)
	}
}
