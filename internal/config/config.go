package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for localspot.
type Config struct {
	LogDir string      `toml:"log_dir"`
	Map    MapConfig   `toml:"map"`
	Store  StoreConfig `toml:"store"`
	Auth   AuthConfig  `toml:"auth"`
	Geo    GeoConfig   `toml:"geo"`
	Bio    BioConfig   `toml:"bio"`
	HTTP   HTTPConfig  `toml:"http"`
}

// MapConfig holds the default anchor used before any location resolves.
type MapConfig struct {
	DefaultLatitude  float64 `toml:"default_latitude"`
	DefaultLongitude float64 `toml:"default_longitude"`
}

// StoreConfig represents configuration for the listings store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type StoreConfig struct {
	Type string `toml:"type"` // "memory", "sqlite", or "dynamodb"

	// SQLite-specific fields (only used when Type == "sqlite")
	DataDir string `toml:"data_dir,omitempty"`

	// DynamoDB-specific fields (only used when Type == "dynamodb")
	DynamoTable  string `toml:"dynamo_table,omitempty"`
	DynamoRegion string `toml:"dynamo_region,omitempty"`
}

// AuthConfig represents configuration for the auth provider.
type AuthConfig struct {
	Type string `toml:"type"` // "memory"
}

// GeoConfig represents configuration for the geolocation source.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type GeoConfig struct {
	Type string `toml:"type"` // "none", "static", or "ipapi"

	// Static-specific fields (only used when Type == "static")
	Latitude  float64 `toml:"latitude,omitempty"`
	Longitude float64 `toml:"longitude,omitempty"`

	// ipapi-specific fields (only used when Type == "ipapi")
	Endpoint string `toml:"endpoint,omitempty"` // defaults to the public ip-api.com endpoint
}

// BioConfig represents configuration for the bio generator.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type BioConfig struct {
	Type string `toml:"type"` // "template" or "gemini"

	// Gemini-specific fields (only used when Type == "gemini")
	APIKey   string `toml:"api_key,omitempty"`
	Model    string `toml:"model,omitempty"`
	Endpoint string `toml:"endpoint,omitempty"`
}

// HTTPConfig holds settings for the HTTP API surface.
type HTTPConfig struct {
	Addr string `toml:"addr"`
}

// NewConfig creates a Config with sensible local-first defaults rooted at baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		LogDir: filepath.Join(baseDir, "log"),
		Map: MapConfig{
			DefaultLatitude:  40.7128,
			DefaultLongitude: -74.0060,
		},
		Store: StoreConfig{Type: "sqlite", DataDir: filepath.Join(baseDir, "db")},
		Auth:  AuthConfig{Type: "memory"},
		Geo:   GeoConfig{Type: "ipapi"},
		Bio:   BioConfig{Type: "template"},
		HTTP:  HTTPConfig{Addr: ":8080"},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
