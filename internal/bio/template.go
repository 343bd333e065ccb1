package bio

import (
	"context"
	"fmt"
	"strings"

	"localspot/internal/model"
)

// TemplateGenerator produces a serviceable bio without any network calls.
// It is the default when no API key is configured.
type TemplateGenerator struct{}

func (TemplateGenerator) GenerateBio(ctx context.Context, name string, category model.Category, keywords string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("business name is required")
	}
	parts := splitKeywords(keywords)
	switch len(parts) {
	case 0:
		return fmt.Sprintf("%s, your neighborhood %s spot.", name, strings.ToLower(string(category))), nil
	case 1:
		return fmt.Sprintf("%s, your neighborhood %s spot known for %s.", name, strings.ToLower(string(category)), parts[0]), nil
	default:
		return fmt.Sprintf("%s, your neighborhood %s spot known for %s and %s.",
			name, strings.ToLower(string(category)),
			strings.Join(parts[:len(parts)-1], ", "), parts[len(parts)-1]), nil
	}
}

func splitKeywords(keywords string) []string {
	var parts []string
	for _, p := range strings.Split(keywords, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
