// Package llm provides the hosted text-generation client used to write
// snapshot descriptions and per-item blurbs.
package llm

import (
	"errors"
	"os"
)

// ErrMissingAPIKey is returned when OPENAI_API_KEY is not set.
var ErrMissingAPIKey = errors.New("missing OPENAI_API_KEY environment variable")

// DefaultModel is used when OPENAI_MODEL is not set.
const DefaultModel = "gpt-4o-mini"

// Config holds text-generation API configuration.
type Config struct {
	APIKey string
	Model  string
}

// LoadConfig reads text-generation configuration from environment variables.
// Returns ErrMissingAPIKey if OPENAI_API_KEY is not set; generation is an
// optional enrichment, so callers may treat that as "disabled" rather than
// fatal.
func LoadConfig() (*Config, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = DefaultModel
	}
	return &Config{APIKey: apiKey, Model: model}, nil
}
