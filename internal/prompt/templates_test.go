package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSubstitutesAllPlaceholders(t *testing.T) {
	for id, tpl := range registry {
		params := make(map[string]string)
		for _, name := range tpl.Params() {
			params[name] = "value-" + name
		}

		rendered, err := Render(id, params)
		require.NoError(t, err, "template %s", id)
		assert.NotRegexp(t, `\{[a-z_]+\}`, rendered, "template %s left a placeholder unsubstituted", id)
	}
}

func TestRenderMissingParameterNamesKey(t *testing.T) {
	_, err := Render(TemplateSummary, map[string]string{"text": "some text"})
	require.Error(t, err)

	var missing *MissingParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "max_length", missing.Key)
	assert.Equal(t, TemplateSummary, missing.Template)
	assert.Contains(t, err.Error(), "max_length")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render("nonsense", nil)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestRenderIsLiteralSinglePass(t *testing.T) {
	rendered, err := Render(TemplateExtraction, map[string]string{
		"text":      "body with {info_type} inside",
		"info_type": "dates",
	})
	require.NoError(t, err)

	// The placeholder-looking text inside a parameter value must survive
	// verbatim: values are never re-scanned.
	assert.Contains(t, rendered, "body with {info_type} inside")
	assert.Contains(t, rendered, "Extract all dates")
}

func TestRenderRepeatedPlaceholder(t *testing.T) {
	rendered, err := Render(TemplateExtraction, map[string]string{
		"text":      "body",
		"info_type": "names",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(rendered, "names"))
}

type scriptedLLM struct {
	prompts   []string
	responses []string
	err       error
}

func (s *scriptedLLM) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

func TestDispatchTrimsResponse(t *testing.T) {
	llm := &scriptedLLM{responses: []string{"  the answer \n"}}
	d := NewDispatcher(llm)

	resp, err := d.Dispatch(context.Background(), TemplateReasoning, map[string]string{"task": "t"})
	require.NoError(t, err)
	assert.Equal(t, "the answer", resp)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Task: t")
}

func TestDispatchDoesNotCallModelOnRenderFailure(t *testing.T) {
	llm := &scriptedLLM{responses: []string{"unused"}}
	d := NewDispatcher(llm)

	_, err := d.Dispatch(context.Background(), TemplateReasoning, nil)
	require.Error(t, err)
	assert.Empty(t, llm.prompts)
}

func TestDispatchPropagatesModelError(t *testing.T) {
	wantErr := errors.New("connection refused")
	d := NewDispatcher(&scriptedLLM{err: wantErr})

	_, err := d.Dispatch(context.Background(), TemplateReasoning, map[string]string{"task": "t"})
	assert.ErrorIs(t, err, wantErr)
}
