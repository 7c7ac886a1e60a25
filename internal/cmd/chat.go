package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strrl/docsense/internal/agent"
)

var chatTemperature float64

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with the local model",
	Long: `Chat with the configured Ollama model. With a message argument a single
exchange is performed; without one an interactive session starts. Type
/clear to reset the conversation and /quit to exit.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().Float64Var(&chatTemperature, "temperature", 0.7, "Sampling temperature")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	client, err := newOllamaClient(cfg, chatTemperature)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	a := agent.New(client)

	if len(args) > 0 {
		resp, err := a.Chat(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(resp)
		return nil
	}

	fmt.Printf("Chatting with %s (/clear resets, /quit exits)\n", cfg.Ollama.Model)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit":
			return nil
		case "/clear":
			a.ClearMemory()
			fmt.Println("Conversation cleared.")
			continue
		}

		resp, err := a.Chat(cmd.Context(), line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println(resp)
	}

	return scanner.Err()
}
