// Package config loads the server configuration from YAML with sane
// defaults, so a bare binary runs a playable match with no file at all.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port int `yaml:"port"`

	// CORSOrigins lists allowed frontend origins beyond localhost.
	CORSOrigins []string `yaml:"cors_origins"`

	// Seed fixes the first match's galaxy. Zero means pick one from the
	// clock at startup.
	Seed uint32 `yaml:"seed"`

	// GalaxyWidth and GalaxyHeight are the generation bounds in galaxy
	// units.
	GalaxyWidth  float64 `yaml:"galaxy_width"`
	GalaxyHeight float64 `yaml:"galaxy_height"`

	// TickIntervalMS is the driver frame interval; BroadcastIntervalMS is
	// how often the full snapshot goes out to websocket clients. Both in
	// milliseconds.
	TickIntervalMS      int `yaml:"tick_interval_ms"`
	BroadcastIntervalMS int `yaml:"broadcast_interval_ms"`

	// HistoryPath is the SQLite match-telemetry file. Empty disables
	// history recording entirely.
	HistoryPath string `yaml:"history_path"`

	// CommandRate and CommandBurst bound the player command endpoints,
	// in commands per second.
	CommandRate  float64 `yaml:"command_rate"`
	CommandBurst int     `yaml:"command_burst"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Port:              8080,
		GalaxyWidth:       1600,
		GalaxyHeight:      1000,
		TickIntervalMS:      50,
		BroadcastIntervalMS: 100,
		HistoryPath:       "data/starhold.db",
		CommandRate:       20,
		CommandBurst:      40,
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, cfg.validate()
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, cfg.validate()
}

// applyEnv layers the environment over the file. Only CORS origins come
// from the environment, so a deploy can widen them without a config edit.
func (c *Config) applyEnv() {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				c.CORSOrigins = append(c.CORSOrigins, origin)
			}
		}
	}
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.GalaxyWidth < 400 || c.GalaxyHeight < 400 {
		return fmt.Errorf("galaxy bounds %.0fx%.0f too small", c.GalaxyWidth, c.GalaxyHeight)
	}
	if c.TickIntervalMS <= 0 {
		return fmt.Errorf("tick interval must be positive, got %dms", c.TickIntervalMS)
	}
	if c.BroadcastIntervalMS <= 0 {
		return fmt.Errorf("broadcast interval must be positive, got %dms", c.BroadcastIntervalMS)
	}
	if c.CommandRate <= 0 || c.CommandBurst <= 0 {
		return fmt.Errorf("command limits must be positive, got rate %v burst %d",
			c.CommandRate, c.CommandBurst)
	}
	return nil
}

// TickInterval returns the driver frame interval as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// BroadcastInterval returns the snapshot broadcast interval as a duration.
func (c Config) BroadcastInterval() time.Duration {
	return time.Duration(c.BroadcastIntervalMS) * time.Millisecond
}
