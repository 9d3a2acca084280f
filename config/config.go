// Package config provides configuration loading and access for field
// generation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/fieldgen/field"
	"github.com/pthm-cable/fieldgen/noise"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all generation configuration parameters.
type Config struct {
	Field     FieldConfig     `yaml:"field"`
	Animation AnimationConfig `yaml:"animation"`
	Screen    ScreenConfig    `yaml:"screen"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// FieldConfig holds the per-dispatch sampling parameters.
type FieldConfig struct {
	Seed        float64   `yaml:"seed"`
	Start       []float64 `yaml:"start"`       // domain corner A (3 components)
	Next        []float64 `yaml:"next"`        // domain corner B (3 components)
	Frequency   float64   `yaml:"frequency"`   // base spatial frequency
	Lacunarity  float64   `yaml:"lacunarity"`  // per-octave frequency multiplier
	Persistence float64   `yaml:"persistence"` // per-octave amplitude multiplier
	Octaves     int       `yaml:"octaves"`
	Orientation string    `yaml:"orientation"` // "improve_xy" or "conventional"
	Dims        []int     `yaml:"dims"`        // output grid extents (3 components)
	FlipYZ      bool      `yaml:"flip_yz"`     // negate y/z corner components
}

// AnimationConfig holds time-varying generation parameters.
type AnimationConfig struct {
	ZSpeed   float64 `yaml:"z_speed"`   // world units per second added to both corners' z
	TimeSeed bool    `yaml:"time_seed"` // derive the seed from the wall clock
}

// ScreenConfig holds preview window settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Orientation noise.Orientation
	Dims        [3]int
	CellCount   int
	BufferLen   int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	switch c.Field.Orientation {
	case "", "improve_xy":
		c.Derived.Orientation = noise.ImproveXY
	case "conventional":
		c.Derived.Orientation = noise.Conventional
	default:
		return fmt.Errorf("config: unknown orientation %q", c.Field.Orientation)
	}

	if len(c.Field.Start) != 3 || len(c.Field.Next) != 3 {
		return fmt.Errorf("config: start and next need 3 components, got %d and %d",
			len(c.Field.Start), len(c.Field.Next))
	}
	if len(c.Field.Dims) != 3 {
		return fmt.Errorf("config: dims needs 3 components, got %d", len(c.Field.Dims))
	}

	copy(c.Derived.Dims[:], c.Field.Dims)
	c.Derived.CellCount = c.Derived.Dims[0] * c.Derived.Dims[1] * c.Derived.Dims[2]
	c.Derived.BufferLen = 4 * c.Derived.CellCount
	return nil
}

// ToParams converts the loaded configuration into dispatch parameters.
func (c *Config) ToParams() field.Params {
	return field.Params{
		Seed:        float32(c.Field.Seed),
		Start:       vec3(c.Field.Start),
		Next:        vec3(c.Field.Next),
		Frequency:   float32(c.Field.Frequency),
		Lacunarity:  float32(c.Field.Lacunarity),
		Persistence: float32(c.Field.Persistence),
		Octaves:     c.Field.Octaves,
		Orientation: c.Derived.Orientation,
		Dims:        c.Derived.Dims,
		FlipYZ:      c.Field.FlipYZ,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func vec3(v []float64) noise.Vec3 {
	return noise.Vec3{X: float32(v[0]), Y: float32(v[1]), Z: float32(v[2])}
}
