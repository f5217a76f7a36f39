package game

import (
	"fmt"

	"github.com/lguibr/brickgame/utils"
)

type layoutEntry struct {
	kind  BrickKind
	x, y  float32
	color utils.Color
}

// Both built-in layouts share positions: four columns at x = -0.2..0.4, three rows at y = 0..0.6.
var enhancedLayout = []layoutEntry{
	{Destructible, -0.2, 0.0, utils.Color{R: 1, G: 1, B: 0}},
	{Destructible, -0.2, 0.3, utils.Color{R: 1, G: 0, B: 0}},
	{Destructible, -0.2, 0.6, utils.Color{R: 0, G: 1, B: 1}},
	{Destructible, 0.0, 0.0, utils.Color{R: 0, G: 0.5, B: 0.5}},
	{Destructible, 0.0, 0.3, utils.Color{R: 1, G: 0.5, B: 0.5}},
	{Destructible, 0.0, 0.6, utils.Color{R: 1, G: 0, B: 1}},
	{Destructible, 0.2, 0.0, utils.Color{R: 1, G: 0.5, B: 0}},
	{Destructible, 0.2, 0.3, utils.Color{R: 0, G: 1, B: 0}},
	{Destructible, 0.2, 0.6, utils.Color{R: 0, G: 1, B: 1}},
	{Destructible, 0.4, 0.0, utils.Color{R: 0, G: 0.5, B: 0.5}},
	{Destructible, 0.4, 0.3, utils.Color{R: 1, G: 1, B: 1}},
	{Destructible, 0.4, 0.6, utils.Color{R: 1, G: 1, B: 0}},
}

var classicKinds = []BrickKind{
	Reflective, Destructible, Destructible,
	Destructible, Reflective, Destructible,
	Reflective, Destructible, Destructible,
	Destructible, Reflective, Destructible,
}

// BuildBricks creates the brick set named by cfg.Layout.
func BuildBricks(cfg utils.Config) ([]Brick, error) {
	switch cfg.Layout {
	case utils.Layouts.Enhanced, "":
		bricks := make([]Brick, len(enhancedLayout))
		for i, entry := range enhancedLayout {
			bricks[i] = NewBrick(entry.kind, entry.x, entry.y, utils.BrickWidth, entry.color, cfg.BrickHitPoints)
		}
		return bricks, nil

	case utils.Layouts.Classic:
		bricks := make([]Brick, len(enhancedLayout))
		for i, entry := range enhancedLayout {
			bricks[i] = NewBrick(classicKinds[i], entry.x, entry.y, utils.BrickWidth, entry.color, cfg.BrickHitPoints)
		}
		return bricks, nil

	case utils.Layouts.Custom:
		if len(cfg.Bricks) == 0 {
			return nil, fmt.Errorf("%w: custom layout has no bricks", utils.ErrInvalidConfig)
		}
		bricks := make([]Brick, len(cfg.Bricks))
		for i, spec := range cfg.Bricks {
			kind, err := ParseBrickKind(spec.Kind)
			if err != nil {
				return nil, fmt.Errorf("brick %d: %w", i, err)
			}
			color, err := utils.ParseHexColor(spec.Color)
			if err != nil {
				return nil, fmt.Errorf("brick %d: %w", i, err)
			}
			bricks[i] = NewBrick(kind, spec.X, spec.Y, spec.Width, color, cfg.BrickHitPoints)
		}
		return bricks, nil
	}
	return nil, fmt.Errorf("%w: unknown layout %q", utils.ErrInvalidConfig, cfg.Layout)
}
