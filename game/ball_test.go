// File: game/ball_test.go
package game

import (
	"testing"

	"github.com/lguibr/brickgame/utils"
	"github.com/stretchr/testify/assert"
)

func TestDirection_Includes(t *testing.T) {
	tests := []struct {
		dir                   Direction
		up, right, down, left bool
	}{
		{Up, true, false, false, false},
		{Right, false, true, false, false},
		{Down, false, false, true, false},
		{Left, false, false, false, true},
		{UpRight, true, true, false, false},
		{UpLeft, true, false, false, true},
		{DownRight, false, true, true, false},
		{DownLeft, false, false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			assert.Equal(t, tt.up, tt.dir.Includes(Up))
			assert.Equal(t, tt.right, tt.dir.Includes(Right))
			assert.Equal(t, tt.down, tt.dir.Includes(Down))
			assert.Equal(t, tt.left, tt.dir.Includes(Left))
		})
	}
}

func TestDirection_ValidAndString(t *testing.T) {
	assert.False(t, Direction(0).Valid())
	assert.False(t, Direction(9).Valid())
	assert.True(t, Right.Valid())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "down-left", DownLeft.String())
	assert.Equal(t, "Direction(42)", Direction(42).String())
}

func TestRandomDirection_AlwaysValid(t *testing.T) {
	rng := utils.NewRand(7)
	seen := map[Direction]bool{}
	for i := 0; i < 1000; i++ {
		d := RandomDirection(rng)
		assert.True(t, d.Valid(), "direction %d out of range", d)
		seen[d] = true
	}
	assert.Len(t, seen, utils.DirectionCount, "every direction should come up")
}

func TestNewBall_Defaults(t *testing.T) {
	ball := NewBall(1, 0, 0, 0, 0, Direction(0), utils.Grey)
	assert.Equal(t, float32(utils.BallRadius), ball.Radius)
	assert.Equal(t, float32(utils.BallSpeed), ball.Speed)
	assert.Equal(t, Right, ball.Direction)
	assert.Equal(t, 1, ball.Id)
}

func TestBall_Advance(t *testing.T) {
	const speed = float32(0.1)
	tests := []struct {
		name    string
		x, y    float32
		dir     Direction
		draws   []int
		wantX   float32
		wantY   float32
		wantDir Direction
	}{
		{"right from origin", 0, 0, Right, nil, 0.1, 0, Right},
		{"up moves +y", 0, 0, Up, nil, 0, 0.1, Up},
		{"down moves -y", 0, 0, Down, nil, 0, -0.1, Down},
		{"left moves -x", 0, 0, Left, nil, -0.1, 0, Left},
		{"diagonal moves both axes", 0, 0, UpRight, nil, 0.1, 0.1, UpRight},
		{"down-left moves both axes", 0, 0, DownLeft, nil, -0.1, -0.1, DownLeft},
		// At the right wall the direction is redrawn (2 -> Down) and the down component then applies.
		{"right wall redraws and later component uses it", 0.96, 0, Right, []int{2}, 0.96, -0.1, Down},
		// At the top wall, draw 0 -> Up; later components ignore Up so nothing moves.
		{"top wall redraws without moving", 0, 0.97, Up, []int{0}, 0, 0.97, Up},
		// Right was already evaluated, so the redrawn direction only takes effect next step.
		{"left wall redraw to right", -0.97, 0, Left, []int{1}, -0.97, 0, Right},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ball := NewBall(1, tt.x, tt.y, 0.05, speed, tt.dir, utils.Grey)
			ball.Advance(&ScriptedRand{Ints: tt.draws})
			assert.InDelta(t, tt.wantX, ball.X, 1e-5)
			assert.InDelta(t, tt.wantY, ball.Y, 1e-5)
			assert.Equal(t, tt.wantDir, ball.Direction)
		})
	}
}

func TestBall_AdvanceStaysNearArena(t *testing.T) {
	rng := utils.NewRand(99)
	ball := NewBall(1, 0, 0, 0.05, 0.09, UpRight, utils.Grey)
	for i := 0; i < 5000; i++ {
		ball.Advance(rng)
		// One step past the inset boundary is the furthest a ball can go.
		assert.LessOrEqual(t, ball.X, float32(1+0.09))
		assert.GreaterOrEqual(t, ball.X, float32(-1-0.09))
		assert.LessOrEqual(t, ball.Y, float32(1+0.09))
		assert.GreaterOrEqual(t, ball.Y, float32(-1-0.09))
	}
}
