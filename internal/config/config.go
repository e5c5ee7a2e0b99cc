package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultPath is where the dashboard looks for its configuration.
const DefaultPath = ".qooa.yml"

// DefaultBackendURL is used when no backend is configured, matching
// the hosted vendor API.
const DefaultBackendURL = "https://qooa-865bc6c8db3f.herokuapp.com"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:       8080,
		DataDir:    "data",
		BackendURL: DefaultBackendURL,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (QOOA_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: QOOA_BACKEND_URL -> backend_url, etc.
	if err := k.Load(env.Provider("QOOA_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "QOOA_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.BackendURL == "" {
		return fmt.Errorf("backend_url is required")
	}
	if err := validBaseURL(c.BackendURL); err != nil {
		return fmt.Errorf("invalid backend_url: %w", err)
	}
	if c.AssetBaseURL != "" {
		if err := validBaseURL(c.AssetBaseURL); err != nil {
			return fmt.Errorf("invalid asset_base_url: %w", err)
		}
	}
	return nil
}

func validBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}
