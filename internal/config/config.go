// Package config holds server and client settings.
//
// The server reads environment variables (optionally seeded from a .env
// file by the caller). The client reads a small YAML file, then lets the
// environment and command-line flags override it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort       = "8080"
	DefaultDBPath     = "sharenote.db"
	DefaultCORSOrigin = "http://localhost:3000"
	DefaultShareRate  = 60
	DefaultServerURL  = "http://localhost:8080"
	DefaultTimeout    = 10 * time.Second
)

// Server configures the note store service.
type Server struct {
	Port        string
	DBPath      string
	LogLevel    string
	CORSOrigins []string
	// ShareRate is the number of share lookups allowed per client IP per minute.
	ShareRate int
}

// ServerFromEnv reads SHARENOTE_* variables through getenv, applying defaults.
func ServerFromEnv(getenv func(string) string) (Server, error) {
	cfg := Server{
		Port:      envOr(getenv, "SHARENOTE_PORT", DefaultPort),
		DBPath:    envOr(getenv, "SHARENOTE_DB_PATH", DefaultDBPath),
		LogLevel:  getenv("SHARENOTE_LOG_LEVEL"),
		ShareRate: DefaultShareRate,
	}

	for _, o := range strings.Split(envOr(getenv, "SHARENOTE_CORS_ORIGIN", DefaultCORSOrigin), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if v := getenv("SHARENOTE_SHARE_RATE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("SHARENOTE_SHARE_RATE: want a positive integer, got %q", v)
		}
		cfg.ShareRate = n
	}

	return cfg, nil
}

// Client configures the command-line client.
type Client struct {
	Server  string        `yaml:"server"`
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultClientPath returns $XDG_CONFIG_HOME/sharenote/config.yaml (or the
// platform equivalent).
func DefaultClientPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "sharenote", "config.yaml"), nil
}

// LoadClient reads the YAML file at path. A missing file is not an error.
// SHARENOTE_SERVER, when set, overrides the file's server.
func LoadClient(path string, getenv func(string) string) (Client, error) {
	cfg := Client{Server: DefaultServerURL, Timeout: DefaultTimeout}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if v := getenv("SHARENOTE_SERVER"); v != "" {
		cfg.Server = v
	}
	cfg.Server = strings.TrimRight(cfg.Server, "/")
	if cfg.Server == "" {
		cfg.Server = DefaultServerURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the parent directory.
func (c Client) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func envOr(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}
