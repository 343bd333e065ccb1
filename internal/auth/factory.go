package auth

import (
	"fmt"

	"localspot/internal/config"
	"localspot/internal/directory"
)

// NewFromConfig builds an auth provider for the configured type.
func NewFromConfig(cfg config.AuthConfig) (directory.AuthProvider, error) {
	switch cfg.Type {
	case "memory", "":
		return NewMemoryProvider(), nil
	default:
		return nil, fmt.Errorf("unknown auth type: %s", cfg.Type)
	}
}
