package resolverd

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds the service settings, read from RESOLVERD_* env vars.
type Config struct {
	Addr      string  `envconfig:"ADDR" default:":8701"`
	Clearance float64 `envconfig:"CLEARANCE" default:"60"`
	Seed      int64   `envconfig:"SEED" default:"0"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("RESOLVERD", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
