package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine implements Engine using the gosseract client. A fresh
// client is created per call; gosseract clients are not safe for reuse
// across failures.
type TesseractEngine struct {
	tessdataPrefix string
	clientFactory  func() *gosseract.Client
}

type TesseractOption func(*TesseractEngine)

// WithTessdataPrefix overrides the trained-data directory, for
// installations outside the default search path.
func WithTessdataPrefix(prefix string) TesseractOption {
	return func(e *TesseractEngine) { e.tessdataPrefix = prefix }
}

func NewTesseractEngine(opts ...TesseractOption) *TesseractEngine {
	e := &TesseractEngine{clientFactory: gosseract.NewClient}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *TesseractEngine) Name() string { return "tesseract" }

// Text recognizes the full text of an image. engineConfig carries
// whitespace-separated key=value Tesseract variables (e.g.
// "tessedit_pageseg_mode=6").
func (e *TesseractEngine) Text(ctx context.Context, png []byte, language, engineConfig string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c, err := e.newClient(png, language)
	if err != nil {
		return "", err
	}
	defer c.Close()

	for _, pair := range strings.Fields(engineConfig) {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if err := c.SetVariable(gosseract.SettableVariable(key), value); err != nil {
			return "", fmt.Errorf("%w: set variable %s: %v", ErrEngine, key, err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("%w: recognize text: %v", ErrEngine, err)
	}
	return text, nil
}

// Words recognizes an image and returns each token with its confidence.
func (e *TesseractEngine) Words(ctx context.Context, png []byte, language string) ([]Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, err := e.newClient(png, language)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("%w: bounding boxes: %v", ErrEngine, err)
	}

	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, Word{Text: b.Word, Confidence: b.Confidence})
	}
	return words, nil
}

func (e *TesseractEngine) newClient(png []byte, language string) (*gosseract.Client, error) {
	c := e.clientFactory()

	if e.tessdataPrefix != "" {
		if err := c.SetTessdataPrefix(e.tessdataPrefix); err != nil {
			c.Close()
			return nil, fmt.Errorf("%w: set tessdata prefix: %v", ErrEngine, err)
		}
	}
	if language != "" {
		if err := c.SetLanguage(strings.Split(language, "+")...); err != nil {
			c.Close()
			return nil, fmt.Errorf("%w: set language: %v", ErrEngine, err)
		}
	}
	if err := c.SetImageFromBytes(png); err != nil {
		c.Close()
		return nil, fmt.Errorf("%w: set image: %v", ErrEngine, err)
	}
	return c, nil
}
