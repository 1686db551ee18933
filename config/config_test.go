package config_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crystal/config"
	"github.com/katalvlaran/crystal/geometry"
	"github.com/katalvlaran/crystal/lattice"
	"github.com/katalvlaran/crystal/structure"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	s, err := cfg.Spec()
	require.NoError(t, err)
	assert.Equal(t, geometry.Default, s)
	assert.False(t, cfg.Catalog.Enabled())

	l, err := s.New(cfg.LatticeOptions()...)
	require.NoError(t, err)
	assert.Equal(t, 6, l.Degree())
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "crystal.toml", `
geometry = "3.5D bitruncated"

[search]
limit = 5000

[compass]
axis = 2

[catalog]
in_memory = true
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	s, err := cfg.Spec()
	require.NoError(t, err)
	assert.Equal(t, geometry.Spec{Degree: 7, Variation: lattice.Bitruncated}, s)
	assert.Equal(t, 5000, cfg.Search.Limit)
	assert.Equal(t, 2, cfg.Compass.Axis)
	assert.Equal(t, lattice.DefaultCompassModulus, cfg.Compass.Modulus, "absent keys keep defaults")
	assert.True(t, cfg.Catalog.Enabled())
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "crystal.yml", `
geometry: "2D"
landmark:
  margin: 3
  seed: 9
log:
  verbosity: 2
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2D", cfg.Geometry)
	assert.Equal(t, 3, cfg.Landmark.Margin)
	assert.Equal(t, int64(9), cfg.Landmark.Seed)
	assert.Equal(t, lattice.DefaultLandmarkWalkLimit, cfg.Landmark.WalkLimit)
	assert.Equal(t, 2, cfg.Log.Verbosity)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = config.Load(writeFile(t, "crystal.json", `{}`))
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(writeFile(t, "unknown.toml", "colour = \"red\"\n"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(writeFile(t, "unknown.yaml", "colour: red\n"))
	require.Error(t, err)

	_, err = config.Load(writeFile(t, "bad.toml", "geometry = \"9D\"\n"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	require.ErrorIs(t, err, geometry.ErrInvalidDescriptor)

	// axis 2 does not exist on the square lattice
	_, err = config.Load(writeFile(t, "axis.yaml", "geometry: \"2D\"\ncompass:\n  axis: 2\n"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*config.Config){
		"search limit": func(c *config.Config) { c.Search.Limit = 0 },
		"modulus":      func(c *config.Config) { c.Compass.Modulus = 30 },
		"repeat base":  func(c *config.Config) { c.Compass.RepeatBase = 0 },
		"max modulus":  func(c *config.Config) { c.Compass.MaxModulus = 4 },
		"margin":       func(c *config.Config) { c.Landmark.Margin = 0 },
		"verbosity":    func(c *config.Config) { c.Log.Verbosity = -1 },
	} {
		cfg := config.Default()
		mutate(&cfg)
		require.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig, name)
	}
}

func TestValidate_CompassAxisPerDimension(t *testing.T) {
	cfg := config.Default()
	cfg.Geometry = "2.5D"
	// the half dimension counts as an axis
	cfg.Compass.Axis = 2
	require.NoError(t, cfg.Validate())
	_, err := cfg.Spec()
	require.NoError(t, err)
	l, err := lattice.New(5, lattice.Pure, cfg.LatticeOptions()...)
	require.NoError(t, err)
	require.Equal(t, structure.Dimension(5), l.Dimension())

	cfg.Compass.Axis = structure.Dimension(5)
	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
}

func TestWrite_RoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Geometry = "4D bitruncated"
	cfg.Search.Limit = 12345
	cfg.Catalog.Path = "/var/lib/crystal"

	for _, name := range []string{"out.toml", "out.yaml"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, cfg.Write(path))
		back, err := config.Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, cfg, back, name)
	}
	require.ErrorIs(t, cfg.Write(filepath.Join(t.TempDir(), "out.ini")), config.ErrInvalidConfig)
}
