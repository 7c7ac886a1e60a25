package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strrl/docsense/internal/agent"
)

var describeCmd = &cobra.Command{
	Use:   "describe <image> [question...]",
	Short: "Ask a vision model about an image",
	Long: `Send an image to a vision-capable Ollama model (e.g. moondream,
qwen3-vl) and ask a question about it. Without a question the model is
asked for a general description. Select the model with --model.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	client, err := newOllamaClient(cfg, cfg.Ollama.Temperature)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	resp, err := agent.DescribeImage(cmd.Context(), client, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	fmt.Println(resp)
	return nil
}
