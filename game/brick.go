package game

import (
	"fmt"

	"github.com/lguibr/brickgame/utils"
)

// BrickKind decides how a brick reacts to balls.
type BrickKind int

const (
	Reflective BrickKind = iota
	Destructible
)

func (k BrickKind) String() string {
	switch k {
	case Reflective:
		return utils.BrickKinds.Reflective
	case Destructible:
		return utils.BrickKinds.Destructible
	}
	return fmt.Sprintf("BrickKind(%d)", int(k))
}

func (k BrickKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *BrickKind) UnmarshalText(text []byte) error {
	kind, err := ParseBrickKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

func ParseBrickKind(name string) (BrickKind, error) {
	switch name {
	case utils.BrickKinds.Reflective:
		return Reflective, nil
	case utils.BrickKinds.Destructible:
		return Destructible, nil
	}
	return 0, fmt.Errorf("unknown brick kind %q", name)
}

// Brick is a square obstacle centred on (X, Y). Width is the half side used for collisions.
type Brick struct {
	X         float32     `json:"x"`
	Y         float32     `json:"y"`
	Width     float32     `json:"width"`
	Color     utils.Color `json:"color"`
	Kind      BrickKind   `json:"kind"`
	Active    bool        `json:"active"`
	HitPoints int         `json:"hitPoints"`
}

func (b *Brick) GetX() float32         { return b.X }
func (b *Brick) GetY() float32         { return b.Y }
func (b *Brick) GetWidth() float32     { return b.Width }
func (b *Brick) GetColor() utils.Color { return b.Color }
func (b *Brick) GetHitPoints() int     { return b.HitPoints }
func (b *Brick) IsActive() bool        { return b.Active }

// NewBrick creates an active brick. Hit points only apply to destructible bricks.
func NewBrick(kind BrickKind, x, y, width float32, color utils.Color, hitPoints int) Brick {
	if kind == Destructible && hitPoints <= 0 {
		hitPoints = utils.DestructibleHitPoints
	}
	if kind == Reflective {
		hitPoints = 0
	}
	return Brick{
		X:         x,
		Y:         y,
		Width:     width,
		Color:     color,
		Kind:      kind,
		Active:    true,
		HitPoints: hitPoints,
	}
}

// Bounds is the collision square, side 2*Width.
func (b *Brick) Bounds() utils.Rect {
	return utils.RectAround(b.X, b.Y, b.Width, b.Width)
}

// damage removes one hit point and reports whether the brick just went inactive.
func (b *Brick) damage() bool {
	if !b.Active || b.Kind != Destructible {
		return false
	}
	b.HitPoints--
	if b.HitPoints <= 0 {
		b.HitPoints = 0
		b.Active = false
		return true
	}
	return false
}

func (b *Brick) flash() {
	b.Color = utils.Red
}
