package game

import (
	"fmt"

	"github.com/lguibr/brickgame/utils"
)

// Direction is one of the eight headings a ball can travel.
// The diagonal values are composites of two of the first four.
type Direction int

const (
	Up Direction = iota + 1
	Right
	Down
	Left
	UpRight
	UpLeft
	DownRight
	DownLeft
)

var directionNames = [...]string{
	Up:        "up",
	Right:     "right",
	Down:      "down",
	Left:      "left",
	UpRight:   "up-right",
	UpLeft:    "up-left",
	DownRight: "down-right",
	DownLeft:  "down-left",
}

func (d Direction) Valid() bool { return d >= Up && d <= DownLeft }

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Includes reports whether d advances along the axis component c (Up, Right, Down or Left).
func (d Direction) Includes(c Direction) bool {
	switch c {
	case Up:
		return d == Up || d == UpRight || d == UpLeft
	case Right:
		return d == Right || d == UpRight || d == DownRight
	case Down:
		return d == Down || d == DownRight || d == DownLeft
	case Left:
		return d == Left || d == UpLeft || d == DownLeft
	}
	return false
}

// RandomDirection draws uniformly from the eight directions.
func RandomDirection(rng utils.Rand) Direction {
	return Direction(rng.Intn(utils.DirectionCount) + 1)
}

type Ball struct {
	Id        int         `json:"id"`
	X         float32     `json:"x"`
	Y         float32     `json:"y"`
	Radius    float32     `json:"radius"`
	Color     utils.Color `json:"color"`
	Speed     float32     `json:"speed"`
	Direction Direction   `json:"direction"`
}

func (b *Ball) GetX() float32         { return b.X }
func (b *Ball) GetY() float32         { return b.Y }
func (b *Ball) GetRadius() float32    { return b.Radius }
func (b *Ball) GetColor() utils.Color { return b.Color }

func NewBall(id int, x, y, radius, speed float32, direction Direction, color utils.Color) Ball {
	if radius <= 0 {
		radius = utils.BallRadius
	}
	if speed <= 0 {
		speed = utils.BallSpeed
	}
	if !direction.Valid() {
		direction = Right
	}
	return Ball{
		Id:        id,
		X:         x,
		Y:         y,
		Radius:    radius,
		Color:     color,
		Speed:     speed,
		Direction: direction,
	}
}

// Advance moves the ball one step. Each axis component of the current direction moves the
// ball by Speed unless the ball already reached that wall, in which case a new random direction
// is drawn. Later components see the direction chosen by earlier ones.
func (b *Ball) Advance(rng utils.Rand) {
	if b.Direction.Includes(Up) {
		if b.Y < utils.ArenaMax-b.Radius {
			b.Y += b.Speed
		} else {
			b.Direction = RandomDirection(rng)
		}
	}

	if b.Direction.Includes(Right) {
		if b.X < utils.ArenaMax-b.Radius {
			b.X += b.Speed
		} else {
			b.Direction = RandomDirection(rng)
		}
	}

	if b.Direction.Includes(Down) {
		if b.Y > utils.ArenaMin+b.Radius {
			b.Y -= b.Speed
		} else {
			b.Direction = RandomDirection(rng)
		}
	}

	if b.Direction.Includes(Left) {
		if b.X > utils.ArenaMin+b.Radius {
			b.X -= b.Speed
		} else {
			b.Direction = RandomDirection(rng)
		}
	}
}

// Bounds is the square around the ball used for paddle tests.
func (b *Ball) Bounds() utils.Rect {
	return utils.RectAround(b.X, b.Y, b.Radius, b.Radius)
}
