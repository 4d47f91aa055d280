// Package config provides configuration loading, validation, and access
// for the evaluation environment.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all environment configuration parameters.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Bird      BirdConfig      `yaml:"bird"`
	Pipe      PipeConfig      `yaml:"pipe"`
	Reward    RewardConfig    `yaml:"reward"`
	Decision  DecisionConfig  `yaml:"decision"`
	Evolution EvolutionConfig `yaml:"evolution"`
}

// WindowConfig holds the visible-area dimensions. FloorY is the top of the
// floor band; birds reaching it are out of bounds.
type WindowConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	FloorY    int `yaml:"floor_y"`
}

// BirdConfig holds agent physics parameters. Displacement per tick is
// v*t + gravity*t^2 with t counted in ticks since the last jump, clamped
// to TerminalVelocity on the way down.
type BirdConfig struct {
	SpawnX           float64 `yaml:"spawn_x"`
	SpawnY           float64 `yaml:"spawn_y"`
	JumpImpulse      float64 `yaml:"jump_impulse"`      // Negative = upward
	Gravity          float64 `yaml:"gravity"`           // Quadratic displacement coefficient
	TerminalVelocity float64 `yaml:"terminal_velocity"` // Max downward displacement per tick
	AscentBias       float64 `yaml:"ascent_bias"`       // Added while displacement is upward
	MaxTilt          float64 `yaml:"max_tilt"`          // Upward tilt snap, degrees
	TiltRate         float64 `yaml:"tilt_rate"`         // Downward tilt decay per tick
	TiltBand         float64 `yaml:"tilt_band"`         // Band above the last jump height that keeps the nose up
	MinTilt          float64 `yaml:"min_tilt"`          // Tilt decay stops once at or below this
	AnimationTicks   int32   `yaml:"animation_ticks"`   // Ticks per wing animation frame
}

// PipeConfig holds obstacle generation parameters. The gap's top edge is
// drawn uniformly from [BandMin, BandMax).
type PipeConfig struct {
	Gap      float64 `yaml:"gap"`
	Velocity float64 `yaml:"velocity"`
	SpawnX   float64 `yaml:"spawn_x"`
	BandMin  int     `yaml:"band_min"`
	BandMax  int     `yaml:"band_max"`
}

// RewardConfig holds the per-event fitness adjustments.
type RewardConfig struct {
	Survival    float64 `yaml:"survival"`      // Per live agent per tick
	Pass        float64 `yaml:"pass"`          // Per live agent per cleared obstacle
	Collision   float64 `yaml:"collision"`     // Applied once on obstacle collision
	OutOfBounds float64 `yaml:"out_of_bounds"` // Applied once on floor/ceiling exit
}

// DecisionConfig holds the jump threshold. Decision outputs are expected on
// [-1, 1]; outputs strictly above the threshold trigger a jump.
type DecisionConfig struct {
	Threshold float64 `yaml:"threshold"`
}

// EvolutionConfig holds optimizer parameters consumed by the evo package.
type EvolutionConfig struct {
	Population     int     `yaml:"population"`
	Generations    int     `yaml:"generations"`
	Elitism        int     `yaml:"elitism"`         // Best genomes copied unchanged each generation
	CrossoverProb  float64 `yaml:"crossover_prob"`  // Probability an offspring has two parents
	TournamentSize int     `yaml:"tournament_size"` // Parent selection tournament size
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
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
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

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

	return cfg, nil
}

// Validate reports configuration values that cannot produce a well-formed
// episode. Callers check it before constructing any simulation state, so a
// bad config never runs a tick.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window dimensions must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FloorY <= 0 || c.Window.FloorY > c.Window.Height {
		return fmt.Errorf("config: floor_y %d outside window height %d", c.Window.FloorY, c.Window.Height)
	}
	if c.Bird.SpawnX <= 0 || c.Bird.SpawnY < 0 || c.Bird.SpawnY >= float64(c.Window.FloorY) {
		return fmt.Errorf("config: bird spawn (%g, %g) outside playable area", c.Bird.SpawnX, c.Bird.SpawnY)
	}
	if c.Bird.Gravity <= 0 {
		return fmt.Errorf("config: gravity must be positive, got %g", c.Bird.Gravity)
	}
	if c.Bird.TerminalVelocity <= 0 {
		return fmt.Errorf("config: terminal_velocity must be positive, got %g", c.Bird.TerminalVelocity)
	}
	if c.Bird.JumpImpulse >= 0 {
		return fmt.Errorf("config: jump_impulse must be negative (upward), got %g", c.Bird.JumpImpulse)
	}
	if c.Bird.AnimationTicks < 1 {
		return fmt.Errorf("config: animation_ticks must be at least 1, got %d", c.Bird.AnimationTicks)
	}
	if c.Pipe.Velocity <= 0 {
		return fmt.Errorf("config: pipe velocity must be positive, got %g", c.Pipe.Velocity)
	}
	if c.Pipe.Gap <= 0 {
		return fmt.Errorf("config: pipe gap must be positive, got %g", c.Pipe.Gap)
	}
	if c.Pipe.BandMin < 0 || c.Pipe.BandMax <= c.Pipe.BandMin {
		return fmt.Errorf("config: gap band [%d, %d) is empty or negative", c.Pipe.BandMin, c.Pipe.BandMax)
	}
	// The gap must always fit between the band and the floor, so every
	// generated obstacle leaves a survivable corridor.
	if float64(c.Pipe.BandMax)+c.Pipe.Gap > float64(c.Window.FloorY) {
		return fmt.Errorf("config: gap band max %d + gap %g exceeds floor %d",
			c.Pipe.BandMax, c.Pipe.Gap, c.Window.FloorY)
	}
	if c.Pipe.SpawnX <= c.Bird.SpawnX {
		return fmt.Errorf("config: pipe spawn_x %g must be ahead of bird spawn_x %g", c.Pipe.SpawnX, c.Bird.SpawnX)
	}
	if c.Decision.Threshold < -1 || c.Decision.Threshold > 1 {
		return fmt.Errorf("config: decision threshold %g outside [-1, 1]", c.Decision.Threshold)
	}
	if c.Evolution.Population < 1 {
		return fmt.Errorf("config: population must be at least 1, got %d", c.Evolution.Population)
	}
	if c.Evolution.Elitism < 0 || c.Evolution.Elitism > c.Evolution.Population {
		return fmt.Errorf("config: elitism %d outside [0, population %d]", c.Evolution.Elitism, c.Evolution.Population)
	}
	if c.Evolution.CrossoverProb < 0 || c.Evolution.CrossoverProb > 1 {
		return fmt.Errorf("config: crossover_prob %g outside [0, 1]", c.Evolution.CrossoverProb)
	}
	if c.Evolution.TournamentSize < 1 {
		return fmt.Errorf("config: tournament_size must be at least 1, got %d", c.Evolution.TournamentSize)
	}
	return nil
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
