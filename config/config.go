// Package config loads the settings of the crystal tools from TOML or YAML
// files and maps them onto lattice options.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/crystal/coord"
	"github.com/katalvlaran/crystal/geometry"
	"github.com/katalvlaran/crystal/lattice"
	"github.com/katalvlaran/crystal/structure"
)

// ErrInvalidConfig is returned for settings that cannot drive a lattice.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full set of settings.
type Config struct {
	// Geometry is a descriptor understood by geometry.Parse.
	Geometry string         `toml:"geometry" yaml:"geometry"`
	Search   SearchConfig   `toml:"search" yaml:"search"`
	Compass  CompassConfig  `toml:"compass" yaml:"compass"`
	Landmark LandmarkConfig `toml:"landmark" yaml:"landmark"`
	Catalog  CatalogConfig  `toml:"catalog" yaml:"catalog"`
	Log      LogConfig      `toml:"log" yaml:"log"`
}

// SearchConfig bounds the distance search.
type SearchConfig struct {
	Limit int `toml:"limit" yaml:"limit"`
}

// CompassConfig tunes the period detection.
type CompassConfig struct {
	Axis       int `toml:"axis" yaml:"axis"`
	Modulus    int `toml:"modulus" yaml:"modulus"`
	RepeatBase int `toml:"repeat_base" yaml:"repeat_base"`
	Growth     int `toml:"growth" yaml:"growth"`
	MaxWarmup  int `toml:"max_warmup" yaml:"max_warmup"`
	MaxModulus int `toml:"max_modulus" yaml:"max_modulus"`
}

// LandmarkConfig tunes landmark placement.
type LandmarkConfig struct {
	WalkLimit int   `toml:"walk_limit" yaml:"walk_limit"`
	Margin    int   `toml:"margin" yaml:"margin"`
	Seed      int64 `toml:"seed" yaml:"seed"`
}

// CatalogConfig locates the count catalog. An empty Path with InMemory false
// disables it.
type CatalogConfig struct {
	Path     string `toml:"path" yaml:"path"`
	InMemory bool   `toml:"in_memory" yaml:"in_memory"`
}

// Enabled reports whether a catalog should be opened.
func (c CatalogConfig) Enabled() bool { return c.InMemory || c.Path != "" }

// LogConfig sets the klog verbosity used when no -v flag is given.
type LogConfig struct {
	Verbosity int `toml:"verbosity" yaml:"verbosity"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Geometry: geometry.Default.String(),
		Search:   SearchConfig{Limit: lattice.DefaultSearchLimit},
		Compass: CompassConfig{
			Axis:       lattice.DefaultCompassAxis,
			Modulus:    lattice.DefaultCompassModulus,
			RepeatBase: lattice.DefaultCompassRepeatBase,
			Growth:     lattice.DefaultCompassGrowth,
			MaxWarmup:  lattice.DefaultCompassMaxWarmup,
			MaxModulus: lattice.DefaultCompassMaxModulus,
		},
		Landmark: LandmarkConfig{
			WalkLimit: lattice.DefaultLandmarkWalkLimit,
			Margin:    lattice.DefaultLandmarkMargin,
			Seed:      1,
		},
	}
}

// Load reads path over the defaults; keys absent from the file keep their
// default. The format follows the extension: .toml, .yaml or .yml. Unknown keys
// are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, errors.Wrapf(err, "config: decoding %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("%w: %s: unknown key %q", ErrInvalidConfig, path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "config: reading %s", path)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&cfg); err != nil {
			return Config{}, errors.Wrapf(err, "config: decoding %s", path)
		}
	default:
		return Config{}, fmt.Errorf("%w: %s: unsupported extension", ErrInvalidConfig, path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write stores cfg at path in the format its extension names.
func (c Config) Write(path string) error {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return errors.Wrap(err, "config: encoding toml")
		}
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return errors.Wrap(err, "config: encoding yaml")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(err, "config: encoding yaml")
		}
	default:
		return fmt.Errorf("%w: %s: unsupported extension", ErrInvalidConfig, path)
	}
	return errors.Wrapf(os.WriteFile(path, buf.Bytes(), 0o644), "config: writing %s", path)
}

// Spec parses the geometry descriptor.
func (c Config) Spec() (geometry.Spec, error) {
	s, err := geometry.Parse(c.Geometry)
	if err != nil {
		return geometry.Spec{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return s, nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	s, err := c.Spec()
	if err != nil {
		return err
	}
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	cc := c.Compass
	switch {
	case c.Search.Limit <= 0:
		return fail("search.limit must be positive, got %d", c.Search.Limit)
	case cc.Axis < 0 || cc.Axis >= structure.Dimension(s.Degree):
		return fail("compass.axis %d outside the %d axes of %s", cc.Axis, structure.Dimension(s.Degree), s)
	case cc.Modulus <= 0 || cc.Modulus%coord.Period != 0:
		return fail("compass.modulus %d must be a positive multiple of %d", cc.Modulus, coord.Period)
	case cc.RepeatBase <= 0 || cc.Growth <= 0:
		return fail("compass.repeat_base and compass.growth must be positive")
	case cc.MaxWarmup <= 0 || cc.MaxModulus < cc.Modulus:
		return fail("compass.max_warmup must be positive and compass.max_modulus at least compass.modulus")
	case c.Landmark.WalkLimit <= 0 || c.Landmark.Margin < 1:
		return fail("landmark.walk_limit and landmark.margin must be positive")
	case c.Log.Verbosity < 0:
		return fail("log.verbosity must not be negative")
	}
	return nil
}

// LatticeOptions maps the settings onto lattice options.
func (c Config) LatticeOptions() []lattice.Option {
	cc := c.Compass
	return []lattice.Option{
		lattice.WithSearchLimit(c.Search.Limit),
		lattice.WithCompassAxis(cc.Axis),
		lattice.WithCompassTuning(cc.Modulus, cc.RepeatBase, cc.Growth),
		lattice.WithCompassLimits(cc.MaxWarmup, cc.MaxModulus),
		lattice.WithLandmark(c.Landmark.WalkLimit, c.Landmark.Margin),
	}
}
