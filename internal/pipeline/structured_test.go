package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStructuredData(t *testing.T) {
	llm := &scriptedLLM{responses: []string{"Name: Jo\nTotal: 12\nJunkLine\nTotal: 15"}}
	p := New(llm, &fakeEngine{}, Config{})

	data, err := p.ExtractStructuredData(context.Background(), "receipt text", []string{"Name", "Total"})
	require.NoError(t, err)

	// Junk lines are dropped and a repeated key keeps its last value.
	assert.Equal(t, map[string]string{"Name": "Jo", "Total": "15"}, data)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Name, Total")
	assert.Contains(t, llm.prompts[0], "receipt text")
}

func TestParseFieldLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]string
	}{
		{
			name: "values keep colons after the first",
			in:   "Time: 12:30:45",
			want: map[string]string{"Time": "12:30:45"},
		},
		{
			name: "whitespace trimmed on both sides",
			in:   "  Vendor  :  ACME Corp  ",
			want: map[string]string{"Vendor": "ACME Corp"},
		},
		{
			name: "missing field simply absent",
			in:   "Name: Jo",
			want: map[string]string{"Name": "Jo"},
		},
		{
			name: "empty response",
			in:   "",
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFieldLines(tt.in))
		})
	}
}
