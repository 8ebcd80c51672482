// Package simulation runs the truck yard scene: it owns every entity and
// billboard, advances them once per tick, and reports spawns, culls and the
// end of the session. Rules are loaded from a data file so they can be tuned
// without a rebuild.
package simulation

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/goccy/go-yaml"

	"chosenoffset.com/dustyard/internal/kinematics"
	"chosenoffset.com/dustyard/internal/particle"
)

// ErrInvalidConfig is returned when a config value cannot be simulated.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds all simulation rules for a scene
type Config struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Particles ParticleConfig  `yaml:"particles"`
	Proximity ProximityConfig `yaml:"proximity"`
}

// PhysicsConfig defines integration constants
type PhysicsConfig struct {
	Gravity          [3]float64 `yaml:"gravity"`            // world acceleration
	Damping          float64    `yaml:"damping"`            // velocity kept per second, in (0, 1]
	GroundHalfExtent float64    `yaml:"ground_half_extent"` // ground square half size
	TurnRate         float64    `yaml:"turn_rate"`          // degrees per second
	Thrust           float64    `yaml:"thrust"`             // truck acceleration
	CullY            float64    `yaml:"cull_y"`             // anything below is removed
}

// SpawnConfig defines where things appear
type SpawnConfig struct {
	Interval    float64 `yaml:"interval"`     // seconds between decor drops
	Height      float64 `yaml:"height"`       // decor drop height
	Spread      int     `yaml:"spread"`       // decor lands in (-spread, spread) on x and z
	TruckHeight float64 `yaml:"truck_height"` // truck start height
}

// ParticleConfig defines dust bursts and grass decals
type ParticleConfig struct {
	BurstSize    int     `yaml:"burst_size"`    // dust per ground contact
	BurstSpeed   int     `yaml:"burst_speed"`   // per-axis speed bound
	Growth       float64 `yaml:"growth"`        // size added per tick
	Fade         float64 `yaml:"fade"`          // opacity removed per tick
	Drag         float64 `yaml:"drag"`          // vertical speed removed per tick
	ClampOpacity bool    `yaml:"clamp_opacity"` // false keeps the legacy negative opacity
	GrassCount   int     `yaml:"grass_count"`
	GrassSpread  int     `yaml:"grass_spread"`
	GrassHeight  float64 `yaml:"grass_height"`
}

// ProximityConfig defines the tow and collision checks around the truck
type ProximityConfig struct {
	PlanarRadius float64 `yaml:"planar_radius"` // |dx| and |dz| must both be below this
	VerticalGap  float64 `yaml:"vertical_gap"`  // truck height above a candidate that is still a hit
	TowFactor    float64 `yaml:"tow_factor"`    // grounded candidates take this multiple of truck velocity
}

// DefaultConfig returns the standard truck yard rules
func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Gravity:          [3]float64{0, -9.81, 0},
			Damping:          0.8,
			GroundHalfExtent: 100,
			TurnRate:         100,
			Thrust:           10,
			CullY:            -10,
		},
		Spawn: SpawnConfig{
			Interval:    2,
			Height:      200,
			Spread:      95,
			TruckHeight: 100,
		},
		Particles: ParticleConfig{
			BurstSize:    50,
			BurstSpeed:   5,
			Growth:       0.01,
			Fade:         0.1,
			Drag:         0.01,
			ClampOpacity: true,
			GrassCount:   100,
			GrassSpread:  95,
			GrassHeight:  0.1,
		},
		Proximity: ProximityConfig{
			PlanarRadius: 10,
			VerticalGap:  5,
			TowFactor:    2,
		},
	}
}

// LoadConfig loads simulation config from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return config, nil
}

// Validate rejects values the scene cannot run with.
func (c *Config) Validate() error {
	if name, ok := c.nonFinite(); ok {
		return fmt.Errorf("%w: %s is not a finite number", ErrInvalidConfig, name)
	}
	switch {
	case c.Physics.Damping <= 0 || c.Physics.Damping > 1:
		return fmt.Errorf("%w: damping %v not in (0, 1]", ErrInvalidConfig, c.Physics.Damping)
	case c.Physics.GroundHalfExtent <= 0:
		return fmt.Errorf("%w: ground_half_extent must be positive", ErrInvalidConfig)
	case c.Spawn.Interval <= 0:
		return fmt.Errorf("%w: spawn interval must be positive", ErrInvalidConfig)
	case c.Spawn.Spread <= 0:
		return fmt.Errorf("%w: spawn spread must be positive", ErrInvalidConfig)
	case c.Particles.BurstSize < 0 || c.Particles.GrassCount < 0:
		return fmt.Errorf("%w: particle counts must not be negative", ErrInvalidConfig)
	case c.Particles.BurstSpeed <= 0:
		return fmt.Errorf("%w: burst_speed must be positive", ErrInvalidConfig)
	case c.Particles.GrassSpread <= 0:
		return fmt.Errorf("%w: grass_spread must be positive", ErrInvalidConfig)
	case c.Proximity.PlanarRadius < 0:
		return fmt.Errorf("%w: planar_radius must not be negative", ErrInvalidConfig)
	}
	return nil
}

// nonFinite returns the name of the first NaN or infinite value.
func (c *Config) nonFinite() (string, bool) {
	values := []struct {
		name string
		v    float64
	}{
		{"gravity.x", c.Physics.Gravity[0]},
		{"gravity.y", c.Physics.Gravity[1]},
		{"gravity.z", c.Physics.Gravity[2]},
		{"damping", c.Physics.Damping},
		{"ground_half_extent", c.Physics.GroundHalfExtent},
		{"turn_rate", c.Physics.TurnRate},
		{"thrust", c.Physics.Thrust},
		{"cull_y", c.Physics.CullY},
		{"spawn.interval", c.Spawn.Interval},
		{"spawn.height", c.Spawn.Height},
		{"spawn.truck_height", c.Spawn.TruckHeight},
		{"growth", c.Particles.Growth},
		{"fade", c.Particles.Fade},
		{"drag", c.Particles.Drag},
		{"grass_height", c.Particles.GrassHeight},
		{"planar_radius", c.Proximity.PlanarRadius},
		{"vertical_gap", c.Proximity.VerticalGap},
		{"tow_factor", c.Proximity.TowFactor},
	}
	for _, x := range values {
		if math.IsNaN(x.v) || math.IsInf(x.v, 0) {
			return x.name, true
		}
	}
	return "", false
}

// KinematicsParams returns the integration constants.
func (c *Config) KinematicsParams() kinematics.Params {
	return kinematics.Params{
		Gravity:          mgl64.Vec3(c.Physics.Gravity),
		Damping:          c.Physics.Damping,
		GroundHalfExtent: c.Physics.GroundHalfExtent,
		TurnRate:         c.Physics.TurnRate,
	}
}

// ParticleRule returns the dust motion rule.
func (c *Config) ParticleRule() particle.Rule {
	return particle.Rule{
		Growth:       c.Particles.Growth,
		Fade:         c.Particles.Fade,
		Drag:         c.Particles.Drag,
		ClampOpacity: c.Particles.ClampOpacity,
	}
}
