package game

import (
	"github.com/lguibr/brickgame/utils"
)

// BrickHit is the outcome of testing one ball against one brick.
type BrickHit int

const (
	HitNone BrickHit = iota
	HitReflected
	HitDamaged
	HitDestroyed
)

// CollisionRules carries the tunables of ball/brick resolution.
type CollisionRules struct {
	NudgeX float32
	NudgeY float32
	// DestructibleRequiresContact limits damage to balls whose centre is inside the brick.
	// When false every evaluation damages the brick.
	DestructibleRequiresContact bool
}

func RulesFromConfig(cfg utils.Config) CollisionRules {
	return CollisionRules{
		NudgeX:                      cfg.ReflectNudgeX,
		NudgeY:                      cfg.ReflectNudgeY,
		DestructibleRequiresContact: cfg.DestructibleRequiresContact,
	}
}

// InsideBrick tests the ball centre against the brick square, exclusive on the low edges.
func (ball *Ball) InsideBrick(brick *Brick) bool {
	return brick.Bounds().ContainsHalfOpen(ball.X, ball.Y)
}

// CollideBrick resolves one ball/brick evaluation. Inactive bricks are skipped.
func (ball *Ball) CollideBrick(brick *Brick, rng utils.Rand, rules CollisionRules) BrickHit {
	if !brick.Active {
		return HitNone
	}

	switch brick.Kind {
	case Reflective:
		if !ball.InsideBrick(brick) {
			return HitNone
		}
		ball.Direction = RandomDirection(rng)
		ball.X += rules.NudgeX
		ball.Y += rules.NudgeY
		brick.flash()
		return HitReflected

	case Destructible:
		if rules.DestructibleRequiresContact && !ball.InsideBrick(brick) {
			return HitNone
		}
		if brick.damage() {
			return HitDestroyed
		}
		return HitDamaged
	}
	return HitNone
}

// InterceptsPaddle is a strict overlap between the ball's square and the paddle.
func (ball *Ball) InterceptsPaddle(paddle *Paddle) bool {
	return ball.Bounds().Overlaps(paddle.Bounds())
}

// ExitedBottom reports that the ball's edge went past the lower arena bound.
func (ball *Ball) ExitedBottom() bool {
	return ball.Y-ball.Radius < utils.ArenaMin
}
