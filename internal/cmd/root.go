package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/strrl/docsense/internal/config"
	"github.com/strrl/docsense/internal/ollama"
)

var rootCmd = &cobra.Command{
	Use:   "docsense",
	Short: "Local document intelligence with Ollama and Tesseract",
	Long: `docsense extracts text from document images with Tesseract OCR and
analyzes it with a local Ollama model. No data leaves the machine.`,
}

var (
	flagModel   string
	flagBaseURL string
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "Ollama model to use (default: OLLAMA_MODEL or llama2)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Ollama base URL (default: OLLAMA_BASE_URL or http://localhost:11434)")
}

// loadConfig resolves environment configuration and applies flag
// overrides.
func loadConfig() config.Config {
	cfg := config.Load()
	if flagModel != "" {
		cfg.Ollama.Model = flagModel
	}
	if flagBaseURL != "" {
		cfg.Ollama.BaseURL = flagBaseURL
	}
	return cfg
}

func newOllamaClient(cfg config.Config, temperature float64) (*ollama.Client, error) {
	return ollama.NewClient(ollama.Config{
		BaseURL:     cfg.Ollama.BaseURL,
		Model:       cfg.Ollama.Model,
		Temperature: temperature,
		Timeout:     cfg.Ollama.Timeout,
	})
}
