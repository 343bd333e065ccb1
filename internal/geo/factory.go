package geo

import (
	"fmt"

	"localspot/internal/config"
	"localspot/internal/directory"
	"localspot/internal/model"
)

// NewFromConfig builds a locator for the configured type.
func NewFromConfig(cfg config.GeoConfig) (directory.Locator, error) {
	switch cfg.Type {
	case "ipapi", "":
		return NewIPAPILocator(cfg.Endpoint), nil
	case "static":
		return NewStaticLocator(model.Coordinate{Latitude: cfg.Latitude, Longitude: cfg.Longitude})
	case "none":
		return UnsupportedLocator{}, nil
	default:
		return nil, fmt.Errorf("unknown geo type: %s", cfg.Type)
	}
}
