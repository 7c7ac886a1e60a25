package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "")
	t.Setenv("OLLAMA_MODEL", "")
	t.Setenv("OCR_LANGUAGE", "")
	t.Setenv("TESSERACT_PATH", "")
	t.Setenv("DOCSENSE_DB", "")

	cfg := Load()

	assert.Equal(t, "http://localhost:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "llama2", cfg.Ollama.Model)
	assert.Equal(t, 0.7, cfg.Ollama.Temperature)
	assert.Equal(t, 120*time.Second, cfg.Ollama.Timeout)
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.Empty(t, cfg.OCR.TesseractPath)
	assert.Empty(t, cfg.Store.Path)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "http://ollama.local:11434")
	t.Setenv("OLLAMA_MODEL", "mistral")
	t.Setenv("OLLAMA_TEMPERATURE", "0.2")
	t.Setenv("OLLAMA_TIMEOUT", "30s")
	t.Setenv("OCR_LANGUAGE", "deu")
	t.Setenv("TESSERACT_PATH", "/opt/tessdata")
	t.Setenv("DOCSENSE_DB", "/tmp/runs.db")

	cfg := Load()

	assert.Equal(t, "http://ollama.local:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "mistral", cfg.Ollama.Model)
	assert.Equal(t, 0.2, cfg.Ollama.Temperature)
	assert.Equal(t, 30*time.Second, cfg.Ollama.Timeout)
	assert.Equal(t, "deu", cfg.OCR.Language)
	assert.Equal(t, "/opt/tessdata", cfg.OCR.TesseractPath)
	assert.Equal(t, "/tmp/runs.db", cfg.Store.Path)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("OLLAMA_TEMPERATURE", "warm")
	t.Setenv("OLLAMA_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 0.7, cfg.Ollama.Temperature)
	assert.Equal(t, 120*time.Second, cfg.Ollama.Timeout)
}
