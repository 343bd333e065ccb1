package geo

import (
	"context"
	"fmt"

	"localspot/internal/directory"
	"localspot/internal/model"
)

// StaticLocator always reports a fixed position. Useful for deployments
// pinned to a known neighborhood and in tests.
type StaticLocator struct {
	coord model.Coordinate
}

// NewStaticLocator creates a locator fixed at the given coordinate.
func NewStaticLocator(coord model.Coordinate) (*StaticLocator, error) {
	if !coord.Valid() {
		return nil, fmt.Errorf("static locator coordinate out of range (%f, %f)", coord.Latitude, coord.Longitude)
	}
	return &StaticLocator{coord: coord}, nil
}

func (l *StaticLocator) CurrentPosition(ctx context.Context) (model.Coordinate, error) {
	return l.coord, nil
}

// UnsupportedLocator reports that geolocation is not available on this
// host. Consumers fall back to their default map center.
type UnsupportedLocator struct{}

func (UnsupportedLocator) CurrentPosition(ctx context.Context) (model.Coordinate, error) {
	return model.Coordinate{}, directory.ErrUnsupported
}
