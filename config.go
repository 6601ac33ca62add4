package asciigif

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	DefaultInput    = "input.gif"
	DefaultOutput   = "ascii_output.gif"
	DefaultColumns  = 100
	DefaultScale    = 1.0
	DefaultFontSize = 10
	DefaultFPS      = 10.0
)

// Config holds every setting of a conversion. FontSize only matters when
// FontPath is set.
type Config struct {
	Input    string  `yaml:"input"`
	Output   string  `yaml:"output"`
	Cols     int     `yaml:"cols"`
	Scale    float64 `yaml:"scale"`
	FontPath string  `yaml:"font_path"`
	FontSize int     `yaml:"font_size"`
	FPS      float64 `yaml:"fps"`
	Adjust   Adjust  `yaml:"adjust"`
}

// Adjust describes the image adjustments applied before resampling.
type Adjust struct {
	Gamma           float64 `yaml:"gamma"`
	Brightness      float64 `yaml:"brightness"`
	Contrast        float64 `yaml:"contrast"`
	Sharpen         float64 `yaml:"sharpen"`
	SigmoidMidpoint float64 `yaml:"sigmoid_midpoint"`
	SigmoidFactor   float64 `yaml:"sigmoid_factor"`
}

func DefaultConfig() *Config {
	return &Config{
		Input:    DefaultInput,
		Output:   DefaultOutput,
		Cols:     DefaultColumns,
		Scale:    DefaultScale,
		FontSize: DefaultFontSize,
		FPS:      DefaultFPS,
		Adjust: Adjust{
			Gamma:           1,
			SigmoidMidpoint: 0.5,
		},
	}
}

// LoadConfig reads a yaml file on top of DefaultConfig. Keys missing from
// the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	switch {
	case cfg.Input == "":
		return fmt.Errorf("input must be set")
	case cfg.Output == "":
		return fmt.Errorf("output must be set")
	case cfg.Cols < 1:
		return fmt.Errorf("cols must be at least 1, got %d", cfg.Cols)
	case !(cfg.Scale > 0) || math.IsInf(cfg.Scale, 0):
		return fmt.Errorf("scale must be a positive number, got %v", cfg.Scale)
	case cfg.FontPath != "" && cfg.FontSize < 1:
		return fmt.Errorf("font_size must be at least 1, got %d", cfg.FontSize)
	case !(cfg.FPS > 0):
		return fmt.Errorf("fps must be positive, got %v", cfg.FPS)
	}
	return cfg.Adjust.Validate()
}

func (a Adjust) Validate() error {
	switch {
	case !(a.Gamma > 0):
		return fmt.Errorf("gamma must be positive, got %v", a.Gamma)
	case a.Brightness < -100 || a.Brightness > 100:
		return fmt.Errorf("brightness must be between -100 and 100, got %v", a.Brightness)
	case a.Contrast < -100 || a.Contrast > 100:
		return fmt.Errorf("contrast must be between -100 and 100, got %v", a.Contrast)
	case a.Sharpen < 0:
		return fmt.Errorf("sharpen must not be negative, got %v", a.Sharpen)
	case a.SigmoidMidpoint < 0 || a.SigmoidMidpoint > 1:
		return fmt.Errorf("sigmoid midpoint must be between 0 and 1, got %v", a.SigmoidMidpoint)
	}
	return nil
}

// Filters returns a filter for every adjustment that differs from its neutral
// value, in the order gamma, brightness, sharpen, contrast, sigmoid.
func (a Adjust) Filters() []Filter {
	var filters []Filter
	if a.Gamma != 1 {
		filters = append(filters, Gamma(a.Gamma))
	}
	if a.Brightness != 0 {
		filters = append(filters, Brightness(a.Brightness))
	}
	if a.Sharpen != 0 {
		filters = append(filters, Sharpen(a.Sharpen))
	}
	if a.Contrast != 0 {
		filters = append(filters, Contrast(a.Contrast))
	}
	if a.SigmoidFactor != 0 {
		filters = append(filters, Sigmoid(a.SigmoidMidpoint, a.SigmoidFactor))
	}
	return filters
}

// Renderer builds a Renderer from cfg, loading the font file if one is set.
func (cfg *Config) Renderer(log *slog.Logger) (*Renderer, error) {
	face := DefaultFace()
	if cfg.FontPath != "" {
		var err error
		face, err = LoadFace(cfg.FontPath, float64(cfg.FontSize))
		if err != nil {
			return nil, err
		}
	}
	return NewRenderer(
		WithColumns(cfg.Cols),
		WithScale(cfg.Scale),
		WithFace(face),
		WithFilters(cfg.Adjust.Filters()...),
		WithLogger(log),
	)
}
