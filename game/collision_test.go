// File: game/collision_test.go
package game

import (
	"testing"

	"github.com/lguibr/brickgame/utils"
	"github.com/stretchr/testify/assert"
)

var defaultRules = CollisionRules{NudgeX: utils.ReflectNudgeX, NudgeY: utils.ReflectNudgeY}

func TestBall_InsideBrick_HalfOpen(t *testing.T) {
	brick := NewBrick(Reflective, 0, 0, 0.4, utils.Grey, 0)
	tests := []struct {
		name string
		x, y float32
		want bool
	}{
		{"centre", 0, 0, true},
		{"upper x edge included", 0.4, 0, true},
		{"upper y edge included", 0, 0.4, true},
		{"lower x edge excluded", -0.4, 0, false},
		{"lower y edge excluded", 0, -0.4, false},
		{"outside", 0.5, 0.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ball := NewBall(1, tt.x, tt.y, 0.05, 0.09, Right, utils.Grey)
			assert.Equal(t, tt.want, ball.InsideBrick(&brick))
		})
	}
}

func TestCollideBrick_ReflectiveInside(t *testing.T) {
	brick := NewBrick(Reflective, 0, 0, 0.4, utils.Grey, 0)
	ball := NewBall(1, 0.1, 0.1, 0.05, 0.09, Right, utils.Grey)
	rng := &ScriptedRand{Ints: []int{4}}

	hit := ball.CollideBrick(&brick, rng, defaultRules)

	assert.Equal(t, HitReflected, hit)
	assert.Equal(t, UpRight, ball.Direction)
	assert.InDelta(t, 0.11, ball.X, 1e-6)
	assert.InDelta(t, 0.12, ball.Y, 1e-6)
	assert.Equal(t, utils.Red, brick.Color)
	assert.True(t, brick.Active, "reflective bricks are never deactivated")
	assert.Equal(t, 0, brick.HitPoints)
}

func TestCollideBrick_ReflectiveOutsideIsNoop(t *testing.T) {
	brick := NewBrick(Reflective, 0, 0, 0.4, utils.Grey, 0)
	ball := NewBall(1, 0.8, 0.8, 0.05, 0.09, Right, utils.Grey)
	rng := &ScriptedRand{Ints: []int{4}}

	assert.Equal(t, HitNone, ball.CollideBrick(&brick, rng, defaultRules))
	assert.Equal(t, Right, ball.Direction)
	assert.Equal(t, utils.Grey, brick.Color)
	assert.Equal(t, 0, rng.Draws())
}

func TestCollideBrick_Destructible(t *testing.T) {
	tests := []struct {
		name           string
		requireContact bool
		ballX          float32
		hitPoints      int
		wantHit        BrickHit
		wantHP         int
		wantActive     bool
	}{
		{"overlapping ball damages", false, 0, 3, HitDamaged, 2, true},
		{"distant ball still damages", false, 0.9, 3, HitDamaged, 2, true},
		{"last hit point destroys", false, 0, 1, HitDestroyed, 0, false},
		{"contact rule ignores distant ball", true, 0.9, 3, HitNone, 3, true},
		{"contact rule damages overlapping ball", true, 0, 3, HitDamaged, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brick := NewBrick(Destructible, 0, 0, 0.4, utils.Grey, tt.hitPoints)
			ball := NewBall(1, tt.ballX, 0, 0.05, 0.09, Right, utils.Grey)
			rules := defaultRules
			rules.DestructibleRequiresContact = tt.requireContact

			assert.Equal(t, tt.wantHit, ball.CollideBrick(&brick, &ScriptedRand{}, rules))
			assert.Equal(t, tt.wantHP, brick.HitPoints)
			assert.Equal(t, tt.wantActive, brick.Active)
			assert.Equal(t, Right, ball.Direction, "destructible bricks do not steer the ball")
		})
	}
}

func TestCollideBrick_InactiveSkipped(t *testing.T) {
	brick := NewBrick(Destructible, 0, 0, 0.4, utils.Grey, 1)
	brick.damage()
	ball := NewBall(1, 0, 0, 0.05, 0.09, Right, utils.Grey)
	assert.Equal(t, HitNone, ball.CollideBrick(&brick, &ScriptedRand{}, defaultRules))
	assert.Equal(t, 0, brick.HitPoints)
}

func TestBall_InterceptsPaddle(t *testing.T) {
	paddle := NewPaddle(0, -0.9, 0.2, 0.05, utils.Grey)
	tests := []struct {
		name string
		x, y float32
		want bool
	}{
		{"on paddle", 0, -0.9, true},
		{"overlapping corner", 0.14, -0.86, true},
		{"above", 0, -0.5, false},
		{"beside", 0.5, -0.9, false},
		{"just left of paddle", -0.16, -0.9, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ball := NewBall(1, tt.x, tt.y, 0.05, 0.09, Right, utils.Grey)
			assert.Equal(t, tt.want, ball.InterceptsPaddle(&paddle))
		})
	}
}

func TestBall_ExitedBottom(t *testing.T) {
	assert.False(t, (&Ball{Y: -0.9, Radius: 0.05}).ExitedBottom())
	assert.True(t, (&Ball{Y: -0.96, Radius: 0.05}).ExitedBottom())
	assert.False(t, (&Ball{Y: 0.99, Radius: 0.05}).ExitedBottom())
}
