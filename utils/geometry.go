package utils

import (
	"github.com/chewxy/math32"
)

func Clamp(value, low, high float32) float32 {
	return math32.Max(low, math32.Min(high, value))
}

// Rect is an axis-aligned box in arena coordinates.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// RectAround builds the box centred on (x, y) with the given half extents.
func RectAround(x, y, halfWidth, halfHeight float32) Rect {
	return Rect{
		MinX: x - halfWidth,
		MinY: y - halfHeight,
		MaxX: x + halfWidth,
		MaxY: y + halfHeight,
	}
}

func (r Rect) Width() float32  { return r.MaxX - r.MinX }
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// Overlaps reports a strict intersection; touching edges do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.MinX < other.MaxX &&
		r.MaxX > other.MinX &&
		r.MinY < other.MaxY &&
		r.MaxY > other.MinY
}

// ContainsHalfOpen tests the point against (Min, Max] on both axes.
func (r Rect) ContainsHalfOpen(x, y float32) bool {
	return x > r.MinX && x <= r.MaxX && y > r.MinY && y <= r.MaxY
}

// CirclePoints returns the outline of a circle as a polygon with the given number of segments.
func CirclePoints(x, y, radius float32, segments int) [][2]float32 {
	if segments < 3 {
		segments = 3
	}
	points := make([][2]float32, segments)
	step := 2 * math32.Pi / float32(segments)
	for i := range points {
		angle := float32(i) * step
		points[i] = [2]float32{
			x + math32.Cos(angle)*radius,
			y + math32.Sin(angle)*radius,
		}
	}
	return points
}

// ArenaToGrid maps an arena coordinate in [ArenaMin, ArenaMax] onto [0, cells).
// The y axis is flipped so that ArenaMax lands on row 0. Points outside the arena clip to the edge cells.
func ArenaToGrid(x, y float32, columns, rows int) (int, int) {
	span := ArenaMax - ArenaMin
	col := int(math32.Floor((x - ArenaMin) / span * float32(columns)))
	row := int(math32.Floor((ArenaMax - y) / span * float32(rows)))
	return clampInt(col, 0, columns-1), clampInt(row, 0, rows-1)
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// GridToArena returns the arena coordinate of the centre of a grid cell.
func GridToArena(col, row, columns, rows int) (float32, float32) {
	span := ArenaMax - ArenaMin
	x := ArenaMin + (float32(col)+0.5)/float32(columns)*span
	y := ArenaMax - (float32(row)+0.5)/float32(rows)*span
	return x, y
}
