// Package config loads the YAML configuration of the climbsim driver.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/climbsim/climb"
	"github.com/oomph-ac/climbsim/host"
	"github.com/oomph-ac/climbsim/oerror"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// SceneKind selects the geometry the driver builds.
type SceneKind string

const (
	// SceneWall is a single climbable wall standing on a floor.
	SceneWall SceneKind = "wall"
	// SceneBlocks is a wall of blocks converted with world.FromBlocks.
	SceneBlocks SceneKind = "blocks"
)

// Config is the full driver configuration.
type Config struct {
	Climb    climb.Tunables              `yaml:"climb"`
	Montages climb.TransitionMontageSet  `yaml:"montages"`
	Clips    map[climb.Montage]host.Clip `yaml:"clips"`
	Movement host.MovementOptions        `yaml:"movement"`
	Log      LogConfig                   `yaml:"log"`
	Sentry   SentryConfig                `yaml:"sentry"`
	Scene    SceneConfig                 `yaml:"scene"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type SentryConfig struct {
	// DSN enables panic reporting when set.
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}

// SceneConfig describes the scripted climb the driver runs.
type SceneConfig struct {
	Kind SceneKind `yaml:"kind"`
	// WallHeight is the height of the wall. For block scenes it is rounded up to whole blocks.
	WallHeight float32 `yaml:"wall_height"`
	// StartDistance is the gap between the character capsule and the wall at the start.
	StartDistance float32 `yaml:"start_distance"`
	// HalfHeight is the half-height of the character's walking capsule.
	HalfHeight float32 `yaml:"half_height"`
	// Characters is the number of characters climbing side by side, each simulated on its own
	// worker.
	Characters int     `yaml:"characters"`
	TickRate   float32 `yaml:"tick_rate"`
	Ticks      int     `yaml:"ticks"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	tunables := climb.DefaultTunables()
	// Release the wall once the probe clears its top edge so climb_to_top can carry the character
	// over it.
	tunables.StopAngle = 89

	return Config{
		Climb: tunables,
		Montages: climb.TransitionMontageSet{
			IdleToClimb:    "idle_to_climb",
			ClimbToTop:     "climb_to_top",
			ClimbDownLedge: "climb_down_ledge",
		},
		Clips: map[climb.Montage]host.Clip{
			"idle_to_climb":    {Duration: 0.2},
			"climb_to_top":     {Duration: 1.2, RootMotion: mgl32.Vec3{0, 250, 120}},
			"climb_down_ledge": {Duration: 0.4},
		},
		Movement: host.DefaultMovementOptions(),
		Log:      LogConfig{Level: "info"},
		Scene: SceneConfig{
			Kind:          SceneWall,
			WallHeight:    300,
			StartDistance: 10,
			HalfHeight:    96,
			Characters:    1,
			TickRate:      30,
			Ticks:         300,
		},
	}
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	conf, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return conf, nil
}

// Parse decodes YAML on top of the default configuration and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	conf := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&conf); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// Validate checks the configuration for values the driver cannot run with.
func (c Config) Validate() error {
	if err := c.Climb.Validate(); err != nil {
		return err
	}
	if err := c.Montages.Validate(); err != nil {
		return err
	}
	for _, t := range []climb.Transition{climb.TransitionIdleToClimb, climb.TransitionClimbToTop, climb.TransitionClimbDownLedge} {
		m := c.Montages.Montage(t)
		if m == "" {
			continue
		}
		if clip, ok := c.Clips[m]; !ok || clip.Duration <= 0 {
			return oerror.New("montage %q for %s has no clip with a positive duration", m, t)
		}
	}

	if c.Movement.Gravity <= 0 {
		return oerror.New("movement gravity must be positive, got %v", c.Movement.Gravity)
	}
	if c.Movement.GroundProbe <= 0 {
		return oerror.New("movement ground probe must be positive, got %v", c.Movement.GroundProbe)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return oerror.New("unknown log level %q", c.Log.Level)
	}

	switch c.Scene.Kind {
	case SceneWall, SceneBlocks:
	default:
		return oerror.New("unknown scene kind %q", c.Scene.Kind)
	}
	if c.Scene.WallHeight <= 0 || c.Scene.HalfHeight <= 0 || c.Scene.TickRate <= 0 || c.Scene.Ticks <= 0 {
		return oerror.New("scene wall height, half height, tick rate and ticks must be positive")
	}
	if c.Scene.Characters < 1 {
		return oerror.New("scene needs at least one character, got %d", c.Scene.Characters)
	}
	if c.Scene.StartDistance < 0 {
		return oerror.New("scene start distance must not be negative, got %v", c.Scene.StartDistance)
	}
	return nil
}

// LogLevel returns the configured log level.
func (c Config) LogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
