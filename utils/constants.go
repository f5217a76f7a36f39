package utils

import "time"

const (
	Period = 16 * time.Millisecond

	// Arena bounds on both axes.
	ArenaMin float32 = -1
	ArenaMax float32 = 1

	DirectionCount = 8

	DestructibleHitPoints = 5
	InitialLives          = 3

	BallSpeed  float32 = 0.09
	BallRadius float32 = 0.05

	PaddleStep   float32 = 0.05
	PaddleWidth  float32 = 0.2
	PaddleHeight float32 = 0.05
	PaddleY      float32 = -0.9

	ReflectNudgeX float32 = 0.01
	ReflectNudgeY float32 = 0.02

	BrickWidth     float32 = 0.4
	BrickDrawRatio float32 = 0.2

	CircleSegments = 360
)

// BrickKinds are the names accepted for BrickSpec.Kind.
var BrickKinds = struct {
	Reflective   string
	Destructible string
}{
	Reflective:   "reflective",
	Destructible: "destructible",
}

// Layouts are the built-in brick layout names.
var Layouts = struct {
	Enhanced string
	Classic  string
	Custom   string
}{
	Enhanced: "enhanced",
	Classic:  "classic",
	Custom:   "custom",
}
