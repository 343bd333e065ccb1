package bio

import (
	"fmt"

	"localspot/internal/config"
	"localspot/internal/directory"
)

// NewFromConfig builds a bio generator for the configured type.
func NewFromConfig(cfg config.BioConfig) (directory.BioGenerator, error) {
	switch cfg.Type {
	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini bio generator requires api_key")
		}
		return NewGeminiClient(cfg.APIKey, cfg.Model, cfg.Endpoint), nil
	case "template", "":
		return TemplateGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown bio type: %s", cfg.Type)
	}
}
