// Package pipeline orchestrates image preprocessing, OCR extraction, and
// AI-assisted analysis of document images.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/strrl/docsense/internal/imaging"
	"github.com/strrl/docsense/internal/ocr"
	"github.com/strrl/docsense/internal/prompt"
)

type Config struct {
	// Language is the OCR language code handed to the engine (e.g. "eng").
	Language string
}

// Pipeline is a stateless document processor. Every operation is
// idempotent given identical inputs and identical external responses; all
// external calls block until completion.
type Pipeline struct {
	dispatcher *prompt.Dispatcher
	engine     ocr.Engine
	language   string
}

func New(llm prompt.Generator, engine ocr.Engine, cfg Config) *Pipeline {
	language := cfg.Language
	if language == "" {
		language = "eng"
	}
	return &Pipeline{
		dispatcher: prompt.NewDispatcher(llm),
		engine:     engine,
		language:   language,
	}
}

// Preprocess loads and normalizes an image for OCR.
func (p *Pipeline) Preprocess(path string, enhance bool) (*image.Gray, error) {
	img, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}
	return imaging.Preprocess(img, enhance), nil
}

// ExtractText runs OCR over an image file and returns the trimmed text.
// engineConfig carries engine-specific key=value settings and may be
// empty.
func (p *Pipeline) ExtractText(ctx context.Context, path string, preprocess bool, engineConfig string) (string, error) {
	png, err := p.loadForOCR(path, preprocess)
	if err != nil {
		return "", err
	}

	text, err := p.engine.Text(ctx, png, p.language, engineConfig)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}
	return strings.TrimSpace(text), nil
}

// ExtractTextWithConfidence runs OCR and aggregates per-word confidence
// scores into an OCRResult.
func (p *Pipeline) ExtractTextWithConfidence(ctx context.Context, path string, preprocess bool) (OCRResult, error) {
	png, err := p.loadForOCR(path, preprocess)
	if err != nil {
		return OCRResult{}, err
	}

	words, err := p.engine.Words(ctx, png, p.language)
	if err != nil {
		return OCRResult{}, fmt.Errorf("extract %s: %w", path, err)
	}
	return NewOCRResult(words), nil
}

// AnalyzeText runs one of the fixed analysis templates over extracted
// text. Unrecognized kinds fall back to the summary analysis.
func (p *Pipeline) AnalyzeText(ctx context.Context, text string, kind AnalysisKind) (string, error) {
	templateID := analysisTemplates[kind.OrDefault()]
	return p.dispatcher.Dispatch(ctx, templateID, map[string]string{
		"text": text,
	})
}

// ProcessDocument extracts text with confidence and, when analyze is set
// and the extraction produced text, runs the requested analysis. Empty
// extractions skip analysis silently rather than failing.
func (p *Pipeline) ProcessDocument(ctx context.Context, path string, analyze bool, kind AnalysisKind) (DocumentResult, error) {
	ocrResult, err := p.ExtractTextWithConfidence(ctx, path, true)
	if err != nil {
		return DocumentResult{}, err
	}

	result := DocumentResult{Source: path, OCR: ocrResult}

	if analyze && ocrResult.Text != "" {
		analysis, err := p.AnalyzeText(ctx, ocrResult.Text, kind)
		if err != nil {
			return DocumentResult{}, fmt.Errorf("analyze %s: %w", path, err)
		}
		result.Analysis = analysis
	}

	return result, nil
}

func (p *Pipeline) loadForOCR(path string, preprocess bool) ([]byte, error) {
	img, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}

	if preprocess {
		return imaging.EncodePNG(imaging.Preprocess(img, true))
	}
	return imaging.EncodePNG(img)
}
