package bizstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"localspot/internal/config"
	"localspot/internal/directory"
	"localspot/internal/model"
)

// NewFromConfig creates a BusinessStore implementation based on the store config type.
func NewFromConfig(ctx context.Context, cfg config.StoreConfig) (directory.BusinessStore, error) {
	switch cfg.Type {
	case "memory":
		// Dev mode starts populated so the map is never blank.
		return NewMemoryStore(model.SeedBusinesses(time.Now().UTC())...), nil
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite store")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		return NewSQLiteStore(filepath.Join(cfg.DataDir, "listings.db"))
	case "dynamodb":
		if cfg.DynamoTable == "" || cfg.DynamoRegion == "" {
			return nil, fmt.Errorf("dynamo_table and dynamo_region required for dynamodb store")
		}
		return NewDynamoStore(ctx, cfg.DynamoRegion, cfg.DynamoTable)
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
