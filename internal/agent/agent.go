package agent

import (
	"context"
	"strconv"
	"strings"

	"github.com/strrl/docsense/internal/prompt"
)

// Role identifies the author of a conversation turn.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one entry in the conversation log.
type Turn struct {
	Role    string
	Content string
}

// Sentiment is the parsed result of a sentiment analysis call.
type Sentiment struct {
	Label       string
	Explanation string
	Raw         string
}

// Agent is a conversational agent over a local model runtime. The
// conversation log is append-only and owned by exactly one agent; callers
// sharing an agent across goroutines must serialize access themselves.
// Prefer one agent per logical conversation.
type Agent struct {
	dispatcher *prompt.Dispatcher
	log        []Turn
}

func New(llm prompt.Generator) *Agent {
	return &Agent{dispatcher: prompt.NewDispatcher(llm)}
}

// Chat sends a message with the accumulated conversation history and
// records both sides of the exchange. On dispatch failure nothing is
// recorded, so a retry sees the same history the failed call did.
func (a *Agent) Chat(ctx context.Context, message string) (string, error) {
	resp, err := a.dispatcher.Dispatch(ctx, prompt.TemplateChat, map[string]string{
		"chat_history": renderTranscript(a.log),
		"message":      message,
	})
	if err != nil {
		return "", err
	}

	a.log = append(a.log, Turn{Role: RoleUser, Content: message})
	a.log = append(a.log, Turn{Role: RoleAssistant, Content: resp})
	return resp, nil
}

// Reason runs a step-by-step reasoning task without touching the
// conversation log, keeping scratch work out of chat context.
func (a *Agent) Reason(ctx context.Context, task string) (string, error) {
	return a.dispatcher.Dispatch(ctx, prompt.TemplateReasoning, map[string]string{
		"task": task,
	})
}

// Summarize asks for a summary of roughly maxLength words. The length is
// an instruction to the model, not a hard truncation.
func (a *Agent) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	return a.dispatcher.Dispatch(ctx, prompt.TemplateSummary, map[string]string{
		"text":       text,
		"max_length": strconv.Itoa(maxLength),
	})
}

// AnalyzeSentiment classifies text sentiment. The first response line is
// normalized to POSITIVE, NEGATIVE, or NEUTRAL when it matches one of
// them; otherwise the verbatim first line is kept, since the model may
// emit labels outside the requested set.
func (a *Agent) AnalyzeSentiment(ctx context.Context, text string) (Sentiment, error) {
	resp, err := a.dispatcher.Dispatch(ctx, prompt.TemplateSentiment, map[string]string{
		"text": text,
	})
	if err != nil {
		return Sentiment{}, err
	}

	lines := strings.Split(resp, "\n")
	label := normalizeLabel(lines[0])

	explanation := ""
	if len(lines) > 1 {
		rest := make([]string, 0, len(lines)-1)
		for _, line := range lines[1:] {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				rest = append(rest, trimmed)
			}
		}
		explanation = strings.Join(rest, " ")
	}

	return Sentiment{Label: label, Explanation: explanation, Raw: resp}, nil
}

// ExtractInfo pulls free-form information of the given kind (e.g. "names",
// "dates") out of text. infoKind is passed through verbatim.
func (a *Agent) ExtractInfo(ctx context.Context, text, infoKind string) (string, error) {
	return a.dispatcher.Dispatch(ctx, prompt.TemplateExtraction, map[string]string{
		"text":      text,
		"info_type": infoKind,
	})
}

// ClearMemory empties the conversation log. Idempotent.
func (a *Agent) ClearMemory() {
	a.log = nil
}

// History returns a copy of the conversation log.
func (a *Agent) History() []Turn {
	out := make([]Turn, len(a.log))
	copy(out, a.log)
	return out
}

func normalizeLabel(line string) string {
	upper := strings.ToUpper(strings.TrimSpace(line))
	for _, known := range []string{"POSITIVE", "NEGATIVE", "NEUTRAL"} {
		if strings.Contains(upper, known) {
			return known
		}
	}
	return strings.TrimSpace(line)
}

func renderTranscript(log []Turn) string {
	if len(log) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, turn := range log {
		sb.WriteString(turn.Role)
		sb.WriteString(": ")
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
