package pipeline

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strrl/docsense/internal/imaging"
	"github.com/strrl/docsense/internal/ocr"
)

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

type fakeEngine struct {
	text     string
	words    []ocr.Word
	textErr  error
	wordsErr error
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Text(_ context.Context, _ []byte, _, _ string) (string, error) {
	return f.text, f.textErr
}

func (f *fakeEngine) Words(_ context.Context, _ []byte, _ string) ([]ocr.Word, error) {
	return f.words, f.wordsErr
}

func writeTestPNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetGray(3, 3, color.Gray{Y: 0})

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func writeJunkFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	return path
}

func TestExtractTextTrims(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "doc.png")

	engine := &fakeEngine{text: "  Hello Receipt \n"}
	p := New(&scriptedLLM{}, engine, Config{})

	text, err := p.ExtractText(context.Background(), path, true, "")
	require.NoError(t, err)
	assert.Equal(t, "Hello Receipt", text)
}

func TestExtractTextUndecodableImage(t *testing.T) {
	dir := t.TempDir()
	path := writeJunkFile(t, dir, "junk.png")

	p := New(&scriptedLLM{}, &fakeEngine{}, Config{})

	_, err := p.ExtractText(context.Background(), path, true, "")
	assert.ErrorIs(t, err, imaging.ErrDecode)
}

func TestAnalyzeTextUnknownKindFallsBackToSummary(t *testing.T) {
	known := &scriptedLLM{responses: []string{"ok"}}
	unknown := &scriptedLLM{responses: []string{"ok"}}

	_, err := New(known, &fakeEngine{}, Config{}).AnalyzeText(context.Background(), "body", KindSummary)
	require.NoError(t, err)
	_, err = New(unknown, &fakeEngine{}, Config{}).AnalyzeText(context.Background(), "body", AnalysisKind("unknown_kind"))
	require.NoError(t, err)

	require.Len(t, known.prompts, 1)
	require.Len(t, unknown.prompts, 1)
	assert.Equal(t, known.prompts[0], unknown.prompts[0])
}

func TestProcessDocumentRunsAnalysis(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "doc.png")

	engine := &fakeEngine{words: []ocr.Word{
		{Text: "Invoice", Confidence: 92},
		{Text: "#42", Confidence: 88},
	}}
	llm := &scriptedLLM{responses: []string{"An invoice."}}
	p := New(llm, engine, Config{})

	result, err := p.ProcessDocument(context.Background(), path, true, KindSummary)
	require.NoError(t, err)
	assert.Equal(t, path, result.Source)
	assert.Equal(t, "Invoice #42", result.OCR.Text)
	assert.Equal(t, 90.0, result.OCR.Confidence)
	assert.Equal(t, "An invoice.", result.Analysis)
}

func TestProcessDocumentSkipsAnalysisOnEmptyText(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "blank.png")

	engine := &fakeEngine{words: []ocr.Word{{Text: "ghost", Confidence: 0}}}
	llm := &scriptedLLM{responses: []string{"unused"}}
	p := New(llm, engine, Config{})

	result, err := p.ProcessDocument(context.Background(), path, true, KindSummary)
	require.NoError(t, err)
	assert.Empty(t, result.Analysis)
	assert.Empty(t, llm.prompts, "no analysis call expected for empty text")
}

func TestProcessDocumentAnalysisDisabled(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "doc.png")

	engine := &fakeEngine{words: []ocr.Word{{Text: "word", Confidence: 90}}}
	llm := &scriptedLLM{responses: []string{"unused"}}
	p := New(llm, engine, Config{})

	result, err := p.ProcessDocument(context.Background(), path, false, KindSummary)
	require.NoError(t, err)
	assert.Empty(t, result.Analysis)
	assert.Empty(t, llm.prompts)
}

func TestBatchProcessIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	a := writeTestPNG(t, dir, "a.png")
	bad := writeJunkFile(t, dir, "bad.png")
	c := writeTestPNG(t, dir, "c.png")

	engine := &fakeEngine{words: []ocr.Word{{Text: "text", Confidence: 80}}}
	p := New(&scriptedLLM{responses: []string{"summary"}}, engine, Config{})

	outcomes := p.BatchProcess(context.Background(), []string{a, bad, c}, true, KindSummary)

	require.Len(t, outcomes, 3)
	assert.Equal(t, a, outcomes[0].Source)
	assert.Equal(t, bad, outcomes[1].Source)
	assert.Equal(t, c, outcomes[2].Source)

	require.NotNil(t, outcomes[0].Result)
	assert.NoError(t, outcomes[0].Err)
	assert.Nil(t, outcomes[1].Result)
	assert.ErrorIs(t, outcomes[1].Err, imaging.ErrDecode)
	require.NotNil(t, outcomes[2].Result)
	assert.NoError(t, outcomes[2].Err)
}

func TestBatchProcessWithWorkersPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTestPNG(t, dir, "1.png"),
		writeJunkFile(t, dir, "2.png"),
		writeTestPNG(t, dir, "3.png"),
		writeTestPNG(t, dir, "4.png"),
	}

	engine := &fakeEngine{words: []ocr.Word{{Text: "text", Confidence: 80}}}
	p := New(&scriptedLLM{responses: []string{"summary"}}, engine, Config{})

	outcomes := p.BatchProcess(context.Background(), paths, false, KindSummary, WithWorkers(3))

	require.Len(t, outcomes, 4)
	for i, path := range paths {
		assert.Equal(t, path, outcomes[i].Source)
	}
	assert.Error(t, outcomes[1].Err)
	assert.NotNil(t, outcomes[0].Result)
	assert.NotNil(t, outcomes[2].Result)
	assert.NotNil(t, outcomes[3].Result)
}
