package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/docsense/internal/ollama"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Check the Ollama runtime and list installed models",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	if !ollama.Ping(cmd.Context(), cfg.Ollama.BaseURL) {
		return fmt.Errorf("ollama is not reachable at %s", cfg.Ollama.BaseURL)
	}

	names, err := ollama.ListModels(cmd.Context(), cfg.Ollama.BaseURL)
	if err != nil {
		return err
	}

	fmt.Printf("Ollama is reachable at %s\n", cfg.Ollama.BaseURL)
	if len(names) == 0 {
		fmt.Println("No models installed. Pull one with: ollama pull llama2")
		return nil
	}

	fmt.Printf("Installed models (%d):\n", len(names))
	for _, name := range names {
		fmt.Printf("  - %s\n", name)
	}
	return nil
}
