package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the program. Precedence, lowest first:
// DefaultConfig, the YAML file, EMBERFIELD_* environment variables.
type Config struct {
	// Seed for particle spawning; 0 picks a random seed
	Seed uint64 `yaml:"seed" env:"EMBERFIELD_SEED"`

	Window   WindowConfig   `yaml:"window"`
	Terminal TerminalConfig `yaml:"terminal"`
	Profile  ProfileConfig  `yaml:"profile"`
	Leads    LeadsConfig    `yaml:"leads"`
	Log      LogConfig      `yaml:"log"`
}

// WindowConfig controls the desktop window host
type WindowConfig struct {
	// Width is the initial window width in pixels
	Width int `yaml:"width" env:"EMBERFIELD_WINDOW_WIDTH"`

	// Height is the initial window height in pixels
	Height int `yaml:"height" env:"EMBERFIELD_WINDOW_HEIGHT"`

	Title string `yaml:"title" env:"EMBERFIELD_WINDOW_TITLE"`

	// Debug shows the HUD at startup (F1 toggles it)
	Debug bool `yaml:"debug" env:"EMBERFIELD_WINDOW_DEBUG"`
}

// TerminalConfig controls the terminal host
type TerminalConfig struct {
	// CellWidth and CellHeight are the surface pixels covered by one cell
	CellWidth  float64 `yaml:"cell_width" env:"EMBERFIELD_TERM_CELL_WIDTH"`
	CellHeight float64 `yaml:"cell_height" env:"EMBERFIELD_TERM_CELL_HEIGHT"`

	// FrameInterval is the timer cadence standing in for display refresh
	FrameInterval time.Duration `yaml:"frame_interval" env:"EMBERFIELD_TERM_FRAME_INTERVAL"`
}

// ProfileConfig controls automatic profiling on frame-rate drops
type ProfileConfig struct {
	Enabled bool `yaml:"enabled" env:"EMBERFIELD_PROFILE"`

	// Dir receives .cpu.prof and .trace files
	Dir string `yaml:"dir" env:"EMBERFIELD_PROFILE_DIR"`

	// Threshold is the FPS below which a capture is triggered
	Threshold float64 `yaml:"threshold" env:"EMBERFIELD_PROFILE_THRESHOLD"`

	// Duration is the length of each capture
	Duration time.Duration `yaml:"duration" env:"EMBERFIELD_PROFILE_DURATION"`

	// Cooldown is the minimum time between captures
	Cooldown time.Duration `yaml:"cooldown" env:"EMBERFIELD_PROFILE_COOLDOWN"`
}

// LeadsConfig controls lead submission
type LeadsConfig struct {
	// WebhookURL receives lead payloads as JSON
	WebhookURL string `yaml:"webhook_url" env:"EMBERFIELD_WEBHOOK_URL"`

	// BookingURL is where a visitor goes after submitting
	BookingURL string `yaml:"booking_url" env:"EMBERFIELD_BOOKING_URL"`

	// Source tags each payload with the form it came from
	Source string `yaml:"source" env:"EMBERFIELD_LEAD_SOURCE"`

	Timeout time.Duration `yaml:"timeout" env:"EMBERFIELD_WEBHOOK_TIMEOUT"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
			Title:  "emberfield",
		},
		Terminal: TerminalConfig{
			CellWidth:     8,
			CellHeight:    16,
			FrameInterval: 16 * time.Millisecond,
		},
		Profile: ProfileConfig{
			Dir:       "profiles",
			Threshold: 55,
			Duration:  5 * time.Second,
			Cooldown:  10 * time.Second,
		},
		Leads: LeadsConfig{
			BookingURL: "mailto:contact@redwaterrev.com?subject=Diagnostic%20Call%20Request",
			Source:     "services-page-calculator",
			Timeout:    30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path (if non-empty) over the defaults, then applies
// environment overrides. A missing file is an error only when path was
// given explicitly.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate rejects values no host can run with
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("terminal cell size must be positive, got %gx%g", c.Terminal.CellWidth, c.Terminal.CellHeight))
	}
	if c.Terminal.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("terminal frame interval must be positive, got %s", c.Terminal.FrameInterval))
	}
	if c.Leads.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("webhook timeout must be positive, got %s", c.Leads.Timeout))
	}
	return errors.Join(errs...)
}
