package studio

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrBadConfig is returned when a config fails validation.
var ErrBadConfig = errors.New("studio: invalid config")

// Config drives the studio: where output goes, canvas dimensions, and
// the batch width.
type Config struct {
	OutputDir   string   `yaml:"output_dir"`
	GalleryPath string   `yaml:"gallery_path"`
	FontPath    string   `yaml:"font_path"`
	Width       int      `yaml:"width"`
	Height      int      `yaml:"height"`
	Jobs        int      `yaml:"jobs"`
	Seed        int64    `yaml:"seed"`
	Sources     []string `yaml:"sources"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		OutputDir: "out",
		Width:     1024,
		Height:    768,
		Jobs:      4,
	}
}

// applyDefaults fills zero fields from DefaultConfig.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.Width == 0 {
		c.Width = def.Width
	}
	if c.Height == 0 {
		c.Height = def.Height
	}
	if c.Jobs == 0 {
		c.Jobs = def.Jobs
	}
}

// Validate checks the config after defaults are applied.
func (c *Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: canvas %dx%d", ErrBadConfig, c.Width, c.Height)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("%w: jobs %d", ErrBadConfig, c.Jobs)
	}
	return nil
}

// LoadConfig reads a YAML config file, applies defaults, and
// validates. A missing path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("studio: read config: %w", err)
	}
	cfg = Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("studio: parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
