// Package config provides configuration types and defaults for countdown.
package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for countdown. The session length and tick
// cadence are fixed and deliberately absent.
type Config struct {
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
	TUI         TUIConfig         `yaml:"tui" mapstructure:"tui"`
	Events      EventsConfig      `yaml:"events" mapstructure:"events"`
	Surface     SurfaceConfig     `yaml:"surface" mapstructure:"surface"`
	Shutdown    ShutdownConfig    `yaml:"shutdown" mapstructure:"shutdown"`
}

// PathsConfig holds file paths for the event log and the TUI debug log.
type PathsConfig struct {
	Log         string `yaml:"log" mapstructure:"log"`                     // JSON lines event log
	DebugLogDir string `yaml:"debug_log_dir" mapstructure:"debug_log_dir"` // Directory for countdown-debug.log in TUI mode
}

// LogRotationConfig holds settings for log file rotation.
// Used for the TUI debug log (lumberjack-based automatic rotation).
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	AltScreen bool `yaml:"alt_screen" mapstructure:"alt_screen"`
	AutoStart bool `yaml:"auto_start" mapstructure:"auto_start"` // Start a session as soon as the TUI opens
}

// EventsConfig holds event router buffer sizes.
type EventsConfig struct {
	BufferSize    int `yaml:"buffer_size" mapstructure:"buffer_size"`
	TUIBufferSize int `yaml:"tui_buffer_size" mapstructure:"tui_buffer_size"`
}

// SurfaceConfig lists the slots the display surface exposes. Dropping a slot
// makes writes to it fail, which ends the run with a missing-slot error.
type SurfaceConfig struct {
	Slots []string `yaml:"slots" mapstructure:"slots"`
}

// ShutdownConfig holds graceful shutdown settings for console mode.
type ShutdownConfig struct {
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// Default returns a Config with defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Log:         ".countdown/events.jsonl",
			DebugLogDir: ".countdown",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		TUI: TUIConfig{
			AltScreen: true,
			AutoStart: false,
		},
		Events: EventsConfig{
			BufferSize:    100,
			TUIBufferSize: 5000,
		},
		Surface: SurfaceConfig{
			Slots: []string{"minutes", "seconds", "done"},
		},
		Shutdown: ShutdownConfig{
			Timeout: 5 * time.Second,
		},
	}
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if c.Paths.Log == "" {
		errs = append(errs, errors.New("paths.log must be set"))
	}
	if c.Events.BufferSize < 0 {
		errs = append(errs, fmt.Errorf("events.buffer_size must not be negative, got %d", c.Events.BufferSize))
	}
	if c.Events.TUIBufferSize < 0 {
		errs = append(errs, fmt.Errorf("events.tui_buffer_size must not be negative, got %d", c.Events.TUIBufferSize))
	}
	if len(c.Surface.Slots) == 0 {
		errs = append(errs, errors.New("surface.slots must list at least one slot"))
	}
	for i, s := range c.Surface.Slots {
		if s == "" {
			errs = append(errs, fmt.Errorf("surface.slots[%d] is empty", i))
		}
	}
	if c.Shutdown.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown.timeout must be positive, got %s", c.Shutdown.Timeout))
	}
	return errors.Join(errs...)
}

// YAML renders the config in the same shape the loader reads.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return out, nil
}
