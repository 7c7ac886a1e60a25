package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strrl/docsense/internal/agent"
)

var askCmd = &cobra.Command{
	Use:   "ask <task>",
	Short: "Run a step-by-step reasoning task",
	Long: `Ask the model to work through a task step by step. Reasoning runs
outside any conversation history.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	client, err := newOllamaClient(cfg, cfg.Ollama.Temperature)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	resp, err := agent.New(client).Reason(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Println(resp)
	return nil
}
