package pipeline

import (
	"strings"

	"github.com/strrl/docsense/internal/ocr"
	"github.com/strrl/docsense/internal/prompt"
)

// AnalysisKind selects the post-OCR analysis template.
type AnalysisKind string

const (
	KindSummary        AnalysisKind = "summary"
	KindKeyPoints      AnalysisKind = "key_points"
	KindEntities       AnalysisKind = "entities"
	KindClassification AnalysisKind = "classification"
)

var analysisTemplates = map[AnalysisKind]string{
	KindSummary:        prompt.TemplateDocSummary,
	KindKeyPoints:      prompt.TemplateDocKeyPoints,
	KindEntities:       prompt.TemplateDocEntities,
	KindClassification: prompt.TemplateDocClassification,
}

func (k AnalysisKind) IsValid() bool {
	_, ok := analysisTemplates[k]
	return ok
}

// OrDefault returns the kind itself when it is one of the known analysis
// kinds and falls back to KindSummary otherwise. The fallback is the
// documented permissive default, not an error.
func (k AnalysisKind) OrDefault() AnalysisKind {
	if k.IsValid() {
		return k
	}
	return KindSummary
}

// OCRResult is the aggregate of one confidence-annotated extraction.
// Confidence is the arithmetic mean of the strictly positive per-word
// scores on the engine's 0-100 scale; zero-confidence tokens are treated
// as unrecognized and excluded from both the mean and the word count.
type OCRResult struct {
	Text       string
	Confidence float64
	WordCount  int
	Words      []ocr.Word
}

// NewOCRResult aggregates raw engine words into an OCRResult.
func NewOCRResult(words []ocr.Word) OCRResult {
	var parts []string
	var sum float64
	count := 0

	for _, w := range words {
		if w.Confidence <= 0 {
			continue
		}
		parts = append(parts, w.Text)
		sum += w.Confidence
		count++
	}

	confidence := 0.0
	if count > 0 {
		confidence = sum / float64(count)
	}

	return OCRResult{
		Text:       strings.TrimSpace(strings.Join(parts, " ")),
		Confidence: confidence,
		WordCount:  count,
		Words:      words,
	}
}

// DocumentResult is the output of processing a single document. Analysis
// is empty unless analysis was requested and OCR produced text.
type DocumentResult struct {
	Source   string
	OCR      OCRResult
	Analysis string
}

// Outcome is one entry of a batch run: either a result or the error that
// stopped that entry. Exactly one of Result and Err is set.
type Outcome struct {
	Source string
	Result *DocumentResult
	Err    error
}
