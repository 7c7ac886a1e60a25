package agent

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/strrl/docsense/internal/ollama"
)

const defaultVisionPrompt = "Describe this image in detail."

// VisionModel is the multimodal chat call DescribeImage depends on. It is
// satisfied by *ollama.Client pointed at a vision-capable model.
type VisionModel interface {
	Chat(ctx context.Context, messages []ollama.Message) (string, error)
}

// DescribeImage sends an image to a vision-capable model together with a
// question about it. An empty question asks for a general description.
// The exchange is stateless; nothing is recorded in any conversation log.
func DescribeImage(ctx context.Context, llm VisionModel, imagePath, question string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", imagePath, err)
	}

	if question == "" {
		question = defaultVisionPrompt
	}

	resp, err := llm.Chat(ctx, []ollama.Message{{
		Role:    RoleUser,
		Content: question,
		Images:  []string{base64.StdEncoding.EncodeToString(data)},
	}})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(resp), nil
}
