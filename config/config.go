// Package config loads the game configuration from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/plus3/tieney/game"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the game and its front-ends.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Player    PlayerConfig    `yaml:"player"`
	Missile   MissileConfig   `yaml:"missile"`
	Smoke     SmokeConfig     `yaml:"smoke"`
	Initial   InitialConfig   `yaml:"initial"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"`
	Title  string `yaml:"title"`
}

// WorldConfig holds the simulated world's size in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig holds ship handling parameters.
type PlayerConfig struct {
	RotationSpeed float64 `yaml:"rotation_speed"` // Degrees per frame
	Thrust        float64 `yaml:"thrust"`         // Impulse per frame while thrusting
	MaxSpeed      float64 `yaml:"max_speed"`
	Friction      float64 `yaml:"friction"`     // Speed multiplier per frame
	SmokeJitter   float64 `yaml:"smoke_jitter"` // Max heading offset of a smoke puff, degrees
}

type MissileConfig struct {
	Speed float64 `yaml:"speed"`
	Cap   int     `yaml:"cap"`
}

// Range is a [Min, Max) interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// IntRange is an integer interval. Whether Max is inclusive depends on the field.
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// SmokeConfig holds thrust particle parameters.
type SmokeConfig struct {
	Cap          int      `yaml:"cap"`
	Size         IntRange `yaml:"size"` // Max exclusive
	Slack        Range    `yaml:"slack"`
	Speed        Range    `yaml:"speed"`
	ShrinkSpeed  Range    `yaml:"shrink_speed"`
	ShrinkFactor IntRange `yaml:"shrink_factor"` // Max inclusive
	ShrinkTime   float64  `yaml:"shrink_time"`
}

type Placement struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Rot float64 `yaml:"rot"`
}

// InitialConfig describes the world created on start and on every reset.
type InitialConfig struct {
	Player           Placement `yaml:"player"`
	Asteroid         Placement `yaml:"asteroid"`
	AsteroidSpeed    float64   `yaml:"asteroid_speed"`
	AsteroidRotSpeed float64   `yaml:"asteroid_rot_speed"`
}

// TelemetryConfig holds frame log settings.
type TelemetryConfig struct {
	FlushEvery int `yaml:"flush_every"` // Frames buffered before a CSV write
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only keys present in the file overwrite the defaults.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded defaults. It panics if they are invalid.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Validate reports every out-of-range value.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	ordered := func(name string, r Range) {
		if r.Min > r.Max {
			errs = append(errs, fmt.Errorf("%s: min %v is above max %v", name, r.Min, r.Max))
		}
	}

	positive("screen.width", float64(c.Screen.Width))
	positive("screen.height", float64(c.Screen.Height))
	positive("screen.tps", float64(c.Screen.TPS))
	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	positive("player.max_speed", c.Player.MaxSpeed)
	if c.Player.Friction <= 0 || c.Player.Friction > 1 {
		errs = append(errs, fmt.Errorf("player.friction must be in (0,1], got %v", c.Player.Friction))
	}
	positive("missile.cap", float64(c.Missile.Cap))
	positive("smoke.cap", float64(c.Smoke.Cap))
	positive("smoke.shrink_time", c.Smoke.ShrinkTime)

	if c.Smoke.Size.Min <= 0 || c.Smoke.Size.Min >= c.Smoke.Size.Max {
		errs = append(errs, fmt.Errorf("smoke.size must satisfy 0 < min < max, got [%d,%d)", c.Smoke.Size.Min, c.Smoke.Size.Max))
	}
	if c.Smoke.ShrinkFactor.Min <= 0 || c.Smoke.ShrinkFactor.Min > c.Smoke.ShrinkFactor.Max {
		errs = append(errs, fmt.Errorf("smoke.shrink_factor must satisfy 0 < min <= max, got [%d,%d]", c.Smoke.ShrinkFactor.Min, c.Smoke.ShrinkFactor.Max))
	}
	ordered("smoke.slack", c.Smoke.Slack)
	ordered("smoke.speed", c.Smoke.Speed)
	ordered("smoke.shrink_speed", c.Smoke.ShrinkSpeed)
	positive("smoke.slack.min", c.Smoke.Slack.Min)

	return errors.Join(errs...)
}

// Rules converts the configuration into simulation rules.
func (c *Config) Rules() game.Rules {
	return game.Rules{
		WorldWidth:  c.World.Width,
		WorldHeight: c.World.Height,

		RotationSpeed: c.Player.RotationSpeed,
		Thrust:        c.Player.Thrust,
		MaxSpeed:      c.Player.MaxSpeed,
		Friction:      c.Player.Friction,
		SmokeJitter:   c.Player.SmokeJitter,

		MissileSpeed: c.Missile.Speed,
		MissileCap:   c.Missile.Cap,

		SmokeCap:        c.Smoke.Cap,
		SmokeSizeMin:    uint32(c.Smoke.Size.Min),
		SmokeSizeMax:    uint32(c.Smoke.Size.Max),
		SmokeSlackMin:   c.Smoke.Slack.Min,
		SmokeSlackMax:   c.Smoke.Slack.Max,
		SmokeSpeedMin:   c.Smoke.Speed.Min,
		SmokeSpeedMax:   c.Smoke.Speed.Max,
		ShrinkSpeedMin:  c.Smoke.ShrinkSpeed.Min,
		ShrinkSpeedMax:  c.Smoke.ShrinkSpeed.Max,
		ShrinkFactorMin: uint32(c.Smoke.ShrinkFactor.Min),
		ShrinkFactorMax: uint32(c.Smoke.ShrinkFactor.Max),
		ShrinkTime:      c.Smoke.ShrinkTime,

		PlayerStart:      game.Position(c.Initial.Player),
		AsteroidStart:    game.Position(c.Initial.Asteroid),
		AsteroidSpeed:    c.Initial.AsteroidSpeed,
		AsteroidRotSpeed: c.Initial.AsteroidRotSpeed,
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
