package sandbox

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the sandbox settings read from an optional sandbox.toml next
// to the binary. Missing file or fields fall back to defaults.
type Config struct {
	ResolverURL  string `toml:"resolver_url"`
	WindowWidth  int    `toml:"window_width"`
	WindowHeight int    `toml:"window_height"`
	MoveMillis   int    `toml:"move_millis"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		ResolverURL:  "http://localhost:8701",
		WindowWidth:  1280,
		WindowHeight: 800,
		MoveMillis:   600,
	}
}

// LoadConfig reads the config file at path, overlaying it on the defaults.
// Any read or parse failure leaves the defaults in place.
func LoadConfig(path string) Config {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	_ = toml.Unmarshal(data, &cfg)
	if cfg.WindowWidth <= 0 || cfg.WindowHeight <= 0 {
		d := DefaultConfig()
		cfg.WindowWidth, cfg.WindowHeight = d.WindowWidth, d.WindowHeight
	}
	if cfg.MoveMillis <= 0 {
		cfg.MoveMillis = DefaultConfig().MoveMillis
	}
	return cfg
}

// MoveDuration returns the configured node move duration.
func (c Config) MoveDuration() time.Duration {
	return time.Duration(c.MoveMillis) * time.Millisecond
}
