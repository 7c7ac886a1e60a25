package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries all runtime settings. Defaults are applied once in Load;
// packages below the CLI never read the environment themselves.
type Config struct {
	Ollama OllamaConfig
	OCR    OCRConfig
	Store  StoreConfig
}

type OllamaConfig struct {
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

type OCRConfig struct {
	Language      string
	TesseractPath string
}

type StoreConfig struct {
	// Path is the DuckDB database file. Empty means in-memory.
	Path string
}

const (
	defaultBaseURL     = "http://localhost:11434"
	defaultModel       = "llama2"
	defaultTemperature = 0.7
	defaultTimeout     = 120 * time.Second
	defaultLanguage    = "eng"
)

// Load reads configuration from the environment, honoring a .env file in
// the working directory when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Ollama: OllamaConfig{
			BaseURL:     getEnv("OLLAMA_BASE_URL", defaultBaseURL),
			Model:       getEnv("OLLAMA_MODEL", defaultModel),
			Temperature: getEnvFloat("OLLAMA_TEMPERATURE", defaultTemperature),
			Timeout:     getEnvDuration("OLLAMA_TIMEOUT", defaultTimeout),
		},
		OCR: OCRConfig{
			Language:      getEnv("OCR_LANGUAGE", defaultLanguage),
			TesseractPath: os.Getenv("TESSERACT_PATH"),
		},
		Store: StoreConfig{
			Path: os.Getenv("DOCSENSE_DB"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
