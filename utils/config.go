// File: utils/config.go
package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// BrickSpec describes one brick of a custom layout.
type BrickSpec struct {
	Kind  string  `json:"kind" toml:"kind" yaml:"kind"`
	X     float32 `json:"x" toml:"x" yaml:"x"`
	Y     float32 `json:"y" toml:"y" yaml:"y"`
	Width float32 `json:"width" toml:"width" yaml:"width"`
	Color string  `json:"color" toml:"color" yaml:"color"` // Hex, e.g. "#ffff00"
}

// Config holds all configurable game parameters.
type Config struct {
	// Timing
	FrameRate int `json:"frameRate" toml:"frame_rate" yaml:"frame_rate"` // Ticks per second for surfaces without vsync

	// Lives & randomness
	Lives int   `json:"lives" toml:"lives" yaml:"lives"` // Starting lives
	Seed  int64 `json:"seed" toml:"seed" yaml:"seed"`    // 0 seeds from the clock

	// Bricks
	Layout                      string      `json:"layout" toml:"layout" yaml:"layout"`                                                          // enhanced, classic or custom
	Bricks                      []BrickSpec `json:"bricks" toml:"bricks" yaml:"bricks"`                                                          // Used when Layout is custom
	BrickHitPoints              int         `json:"brickHitPoints" toml:"brick_hit_points" yaml:"brick_hit_points"`                              // Initial hit points of destructible bricks
	BrickDrawRatio              float32     `json:"brickDrawRatio" toml:"brick_draw_ratio" yaml:"brick_draw_ratio"`                              // Drawn half side = width * ratio
	DestructibleRequiresContact bool        `json:"destructibleRequiresContact" toml:"destructible_requires_contact" yaml:"destructible_requires_contact"` // Only damage bricks the ball is inside

	// Balls
	BallSpeed     float32 `json:"ballSpeed" toml:"ball_speed" yaml:"ball_speed"`
	BallRadius    float32 `json:"ballRadius" toml:"ball_radius" yaml:"ball_radius"`
	InitialBalls  int     `json:"initialBalls" toml:"initial_balls" yaml:"initial_balls"`
	ReflectNudgeX float32 `json:"reflectNudgeX" toml:"reflect_nudge_x" yaml:"reflect_nudge_x"`
	ReflectNudgeY float32 `json:"reflectNudgeY" toml:"reflect_nudge_y" yaml:"reflect_nudge_y"`

	// Paddle
	PaddleX      float32 `json:"paddleX" toml:"paddle_x" yaml:"paddle_x"`
	PaddleY      float32 `json:"paddleY" toml:"paddle_y" yaml:"paddle_y"`
	PaddleWidth  float32 `json:"paddleWidth" toml:"paddle_width" yaml:"paddle_width"`
	PaddleHeight float32 `json:"paddleHeight" toml:"paddle_height" yaml:"paddle_height"`
	PaddleStep   float32 `json:"paddleStep" toml:"paddle_step" yaml:"paddle_step"`
	PaddleColor  string  `json:"paddleColor" toml:"paddle_color" yaml:"paddle_color"`
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	return Config{
		FrameRate: int(time.Second / Period),

		Lives: InitialLives,

		Layout:         Layouts.Enhanced,
		BrickHitPoints: DestructibleHitPoints,
		BrickDrawRatio: BrickDrawRatio,

		BallSpeed:     BallSpeed,
		BallRadius:    BallRadius,
		InitialBalls:  1,
		ReflectNudgeX: ReflectNudgeX,
		ReflectNudgeY: ReflectNudgeY,

		PaddleX:      0,
		PaddleY:      PaddleY,
		PaddleWidth:  PaddleWidth,
		PaddleHeight: PaddleHeight,
		PaddleStep:   PaddleStep,
		PaddleColor:  Grey.Hex(),
	}
}

// TickPeriod is the wall-clock length of one tick.
func (c Config) TickPeriod() time.Duration {
	if c.FrameRate <= 0 {
		return Period
	}
	return time.Second / time.Duration(c.FrameRate)
}

// LoadConfig reads a TOML, YAML or JSON file over the defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg)
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		err = decoder.Decode(&cfg)
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		err = decoder.Decode(&cfg)
	default:
		return cfg, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Lives <= 0 {
		return invalid("lives must be positive, got %d", c.Lives)
	}
	if c.FrameRate < 0 {
		return invalid("frame rate must not be negative, got %d", c.FrameRate)
	}
	if c.BallSpeed <= 0 {
		return invalid("ball speed must be positive, got %v", c.BallSpeed)
	}
	if c.BallRadius <= 0 || c.BallRadius >= ArenaMax {
		return invalid("ball radius must be in (0, %v), got %v", ArenaMax, c.BallRadius)
	}
	if c.InitialBalls < 0 {
		return invalid("initial balls must not be negative, got %d", c.InitialBalls)
	}
	if c.BrickHitPoints <= 0 {
		return invalid("brick hit points must be positive, got %d", c.BrickHitPoints)
	}
	if c.BrickDrawRatio <= 0 {
		return invalid("brick draw ratio must be positive, got %v", c.BrickDrawRatio)
	}
	if c.PaddleWidth <= 0 || c.PaddleWidth > ArenaMax-ArenaMin {
		return invalid("paddle width must be in (0, %v], got %v", ArenaMax-ArenaMin, c.PaddleWidth)
	}
	if c.PaddleHeight <= 0 {
		return invalid("paddle height must be positive, got %v", c.PaddleHeight)
	}
	if c.PaddleStep <= 0 {
		return invalid("paddle step must be positive, got %v", c.PaddleStep)
	}
	if _, err := ParseHexColor(c.PaddleColor); err != nil {
		return invalid("paddle color: %v", err)
	}

	switch c.Layout {
	case Layouts.Enhanced, Layouts.Classic:
	case Layouts.Custom:
		if len(c.Bricks) == 0 {
			return invalid("custom layout needs at least one brick")
		}
		for i, brick := range c.Bricks {
			if brick.Kind != BrickKinds.Reflective && brick.Kind != BrickKinds.Destructible {
				return invalid("brick %d: unknown kind %q", i, brick.Kind)
			}
			if brick.Width <= 0 {
				return invalid("brick %d: width must be positive, got %v", i, brick.Width)
			}
			if _, err := ParseHexColor(brick.Color); err != nil {
				return invalid("brick %d: %v", i, err)
			}
		}
	default:
		return invalid("unknown layout %q", c.Layout)
	}
	return nil
}
