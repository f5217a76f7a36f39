// File: game/paddle.go
package game

import (
	"github.com/lguibr/brickgame/utils"
)

// Paddle is the player's catcher, positioned by its centre.
type Paddle struct {
	X      float32     `json:"x"`
	Y      float32     `json:"y"`
	Width  float32     `json:"width"`
	Height float32     `json:"height"`
	Color  utils.Color `json:"color"`
}

func (p *Paddle) GetX() float32      { return p.X }
func (p *Paddle) GetY() float32      { return p.Y }
func (p *Paddle) GetWidth() float32  { return p.Width }
func (p *Paddle) GetHeight() float32 { return p.Height }

func NewPaddle(x, y, width, height float32, color utils.Color) Paddle {
	paddle := Paddle{X: x, Y: y, Width: width, Height: height, Color: color}
	minX, maxX := paddle.xRange()
	paddle.X = utils.Clamp(paddle.X, minX, maxX)
	return paddle
}

// xRange is the span of centre positions that keeps the paddle inside the arena.
func (p *Paddle) xRange() (float32, float32) {
	return utils.ArenaMin + p.Width/2, utils.ArenaMax - p.Width/2
}

// Move shifts the paddle by step for each requested direction, clamping each shift
// independently to the arena.
func (p *Paddle) Move(left, right bool, step float32) {
	minX, maxX := p.xRange()
	if left {
		p.X = utils.Clamp(p.X-step, minX, maxX)
	}
	if right {
		p.X = utils.Clamp(p.X+step, minX, maxX)
	}
}

func (p *Paddle) Bounds() utils.Rect {
	return utils.RectAround(p.X, p.Y, p.Width/2, p.Height/2)
}
