// Package ocr defines the OCR engine boundary and a Tesseract-backed
// implementation.
package ocr

import (
	"context"
	"errors"
)

// ErrEngine wraps failures from the underlying OCR primitive.
var ErrEngine = errors.New("ocr engine failure")

// Word is a single recognized token with its confidence score on the
// engine's 0-100 scale. Unrecognized tokens carry non-positive scores.
type Word struct {
	Text       string
	Confidence float64
}

// Engine is the OCR provider contract: one encoded image in, recognized
// text out. Words retains per-token confidence for quality-sensitive
// callers.
type Engine interface {
	Name() string
	Text(ctx context.Context, png []byte, language, engineConfig string) (string, error)
	Words(ctx context.Context, png []byte, language string) ([]Word, error)
}
