package prompt

import (
	"context"
	"strings"
)

// Generator is the model runtime call the dispatcher depends on. It is
// satisfied by *ollama.Client and by fakes in tests.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Dispatcher renders registered templates and sends them to the model
// runtime as single synchronous calls. It performs no retries; retry
// policy belongs to callers.
type Dispatcher struct {
	llm Generator
}

func NewDispatcher(llm Generator) *Dispatcher {
	return &Dispatcher{llm: llm}
}

// Dispatch renders templateID with params, sends the result to the model,
// and returns the reply with surrounding whitespace trimmed. Render
// failures (unknown template, missing parameter) and model failures
// propagate unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, templateID string, params map[string]string) (string, error) {
	rendered, err := Render(templateID, params)
	if err != nil {
		return "", err
	}

	resp, err := d.llm.Generate(ctx, rendered)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(resp), nil
}
