package prompt

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnknownTemplate indicates a dispatch against a template ID that was
// never registered.
var ErrUnknownTemplate = errors.New("unknown template")

// MissingParameterError reports an insertion point that was referenced by a
// template but absent from the dispatch parameters.
type MissingParameterError struct {
	Template string
	Key      string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("template %q: missing parameter %q", e.Template, e.Key)
}

// Template is a fixed instruction pattern with {name} insertion points.
// Templates are defined at init and immutable afterwards.
type Template struct {
	ID   string
	Text string
}

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// Params returns the insertion point names referenced by the template, in
// order of first appearance.
func (t Template) Params() []string {
	matches := placeholderPattern.FindAllStringSubmatch(t.Text, -1)
	seen := make(map[string]struct{}, len(matches))
	var params []string
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		params = append(params, m[1])
	}
	return params
}

// Render substitutes every insertion point with its parameter value in a
// single literal pass. Parameter values are never re-scanned for
// placeholders.
func (t Template) Render(params map[string]string) (string, error) {
	referenced := t.Params()

	pairs := make([]string, 0, len(referenced)*2)
	for _, name := range referenced {
		value, ok := params[name]
		if !ok {
			return "", &MissingParameterError{Template: t.ID, Key: name}
		}
		pairs = append(pairs, "{"+name+"}", value)
	}

	return strings.NewReplacer(pairs...).Replace(t.Text), nil
}

const (
	TemplateChat       = "chat"
	TemplateReasoning  = "reasoning"
	TemplateSummary    = "summary"
	TemplateSentiment  = "sentiment"
	TemplateExtraction = "extraction"

	TemplateDocSummary        = "doc_summary"
	TemplateDocKeyPoints      = "doc_key_points"
	TemplateDocEntities       = "doc_entities"
	TemplateDocClassification = "doc_classification"
	TemplateStructuredFields  = "structured_fields"
)

var registry = map[string]Template{
	TemplateChat: {
		ID: TemplateChat,
		Text: `You are a helpful AI assistant. Use the conversation history to provide context-aware responses.

Chat History:
{chat_history}

Current Message: {message}

Response:`,
	},
	TemplateReasoning: {
		ID: TemplateReasoning,
		Text: `You are an AI agent capable of step-by-step reasoning.
Break down the following task and provide a detailed solution:

Task: {task}

Think through this step by step:
1. First, analyze the task
2. Break it into sub-problems
3. Solve each sub-problem
4. Combine the solutions

Response:`,
	},
	TemplateSummary: {
		ID: TemplateSummary,
		Text: `Summarize the following text in approximately {max_length} words or less:

Text: {text}

Summary:`,
	},
	TemplateSentiment: {
		ID: TemplateSentiment,
		Text: `Analyze the sentiment of the following text.
Respond with: POSITIVE, NEGATIVE, or NEUTRAL, followed by a brief explanation.

Text: {text}

Sentiment:`,
	},
	TemplateExtraction: {
		ID: TemplateExtraction,
		Text: `Extract all {info_type} from the following text:

Text: {text}

Extracted {info_type}:`,
	},
	TemplateDocSummary: {
		ID: TemplateDocSummary,
		Text: `Provide a concise summary of the following text:

Text: {text}

Summary:`,
	},
	TemplateDocKeyPoints: {
		ID: TemplateDocKeyPoints,
		Text: `Extract the key points from the following text:

Text: {text}

Key Points:`,
	},
	TemplateDocEntities: {
		ID: TemplateDocEntities,
		Text: `Extract named entities (people, organizations, locations, dates) from the following text:

Text: {text}

Entities:`,
	},
	TemplateDocClassification: {
		ID: TemplateDocClassification,
		Text: `Classify the type of document this text is from (e.g., invoice, letter, form, receipt):

Text: {text}

Document Type:`,
	},
	TemplateStructuredFields: {
		ID: TemplateStructuredFields,
		Text: `Extract the following fields from the text: {fields}

Text: {text}

Respond in the format:
Field1: value1
Field2: value2

Extracted Data:`,
	},
}

// Lookup resolves a template ID against the static registry.
func Lookup(id string) (Template, error) {
	tpl, ok := registry[id]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return tpl, nil
}

// Render resolves and renders a registered template.
func Render(id string, params map[string]string) (string, error) {
	tpl, err := Lookup(id)
	if err != nil {
		return "", err
	}
	return tpl.Render(params)
}
