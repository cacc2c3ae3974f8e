package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/uniformgrid/internal/uniform"
)

// DefaultSink is the sink kind used when none is configured.
const DefaultSink = "glprint"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GridPath string // definition file or directory

	// Sets are `name=value` assignments applied in order after the build.
	Sets []string
	// Settle recomputes every derived uniform before the sets are applied.
	Settle bool
	Mode   string

	Sink         string
	SinkSettings map[string]string

	Watch bool

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.GridPath == "" {
		return nil, errors.New("GridPath is a required configuration field and cannot be empty")
	}
	if _, err := uniform.ParseMode(cfg.Mode); err != nil {
		return nil, err
	}
	if cfg.Sink == "" {
		cfg.Sink = DefaultSink
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
