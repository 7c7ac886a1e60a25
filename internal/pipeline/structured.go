package pipeline

import (
	"context"
	"strings"

	"github.com/strrl/docsense/internal/prompt"
)

// ExtractStructuredData asks the model to pull the named fields out of
// text and parses its colon-delimited reply line by line. Lines without a
// colon are ignored; when the reply repeats a key, the last occurrence
// wins. A field the model never mentions is simply absent from the map.
func (p *Pipeline) ExtractStructuredData(ctx context.Context, text string, fields []string) (map[string]string, error) {
	resp, err := p.dispatcher.Dispatch(ctx, prompt.TemplateStructuredFields, map[string]string{
		"text":   text,
		"fields": strings.Join(fields, ", "),
	})
	if err != nil {
		return nil, err
	}

	return parseFieldLines(resp), nil
}

func parseFieldLines(resp string) map[string]string {
	result := make(map[string]string)
	for _, line := range strings.Split(resp, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		result[key] = strings.TrimSpace(value)
	}
	return result
}
