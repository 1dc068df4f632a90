// Package config loads the suite configuration: target base URL, login
// credentials, timeouts, and concurrency settings. Values come from an
// optional YAML file layered over built-in defaults; command-line flags and
// the API_BASE_URL environment variable are applied by the caller on top.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the suite-level configuration.
type Config struct {
	BaseURL           string      `yaml:"base_url"`
	Credentials       Credentials `yaml:"credentials"`
	TimeoutSeconds    int         `yaml:"timeout_seconds"`
	Workers           int         `yaml:"workers"`
	RequestsPerSecond float64     `yaml:"requests_per_second"`
}

// Credentials are the username/password pair the login scenarios use. The
// defaults are a well-known account on the public DummyJSON dataset.
type Credentials struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Credentials:    Credentials{Username: "emilys", Password: "emilyspass"},
		TimeoutSeconds: 10,
		Workers:        4,
	}
}

// Load reads the YAML file at path, applying its values over the defaults.
// A missing file is not an error; the defaults apply unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Timeout returns the per-request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
