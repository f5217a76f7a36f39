package render

import (
	"github.com/lguibr/brickgame/game"
	"github.com/lguibr/brickgame/utils"
)

// Shape is a filled convex polygon in arena coordinates.
type Shape struct {
	Color  utils.Color
	Points [][2]float32
}

func rectShape(rect utils.Rect, color utils.Color) Shape {
	return Shape{
		Color: color,
		Points: [][2]float32{
			{rect.MinX, rect.MinY},
			{rect.MaxX, rect.MinY},
			{rect.MaxX, rect.MaxY},
			{rect.MinX, rect.MaxY},
		},
	}
}

// Shapes lists what to draw for a frame: bricks, then the paddle, then balls on top.
func Shapes(frame game.Frame, segments int) []Shape {
	shapes := make([]Shape, 0, len(frame.Bricks)+1+len(frame.Balls))
	for _, brick := range frame.Bricks {
		shapes = append(shapes, rectShape(utils.RectAround(brick.X, brick.Y, brick.HalfExtent, brick.HalfExtent), brick.Color))
	}

	paddle := frame.Paddle
	shapes = append(shapes, rectShape(utils.RectAround(paddle.X, paddle.Y, paddle.Width/2, paddle.Height/2), paddle.Color))

	for _, ball := range frame.Balls {
		shapes = append(shapes, Shape{
			Color:  ball.Color,
			Points: utils.CirclePoints(ball.X, ball.Y, ball.Radius, segments),
		})
	}
	return shapes
}
