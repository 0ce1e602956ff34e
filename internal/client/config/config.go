package config

import (
	"os"
	"path/filepath"
	"time"
)

// DatabaseFile is the keystore database name inside Home.
const DatabaseFile = "linkify.db"

// Config holds runtime settings for the linkify CLI.
type Config struct {
	// ServerEndpointAddr is host:port of the gRPC endpoint.
	ServerEndpointAddr string
	// Home holds the keystore database.
	Home string
	// Timeout bounds every request to the server.
	Timeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.Home = defaultHome()
	c.Timeout = 10 * time.Second
}

// DatabasePath is the keystore location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Home, DatabaseFile)
}

// Load applies defaults and then the JSON file at path, if path is not
// empty.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultHome() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".linkify"
	}
	return filepath.Join(dir, ".linkify")
}
