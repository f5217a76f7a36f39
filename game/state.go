package game

import (
	"fmt"
	"slices"

	"github.com/lguibr/brickgame/utils"
)

// Phase is the game-state machine: Playing until lives run out, then GameOver for good.
type Phase int

const (
	Playing Phase = iota
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case GameOver:
		return "gameOver"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "playing":
		*p = Playing
	case "gameOver":
		*p = GameOver
	default:
		return fmt.Errorf("unknown phase %q", text)
	}
	return nil
}

// SimulationState owns every entity of one run. Only Tick mutates it.
type SimulationState struct {
	Paddle Paddle
	Bricks []Brick
	Balls  []Ball
	Lives  int
	Phase  Phase
	Ticks  uint64

	cfg        utils.Config
	rules      CollisionRules
	rng        utils.Rand
	nextBallId int
}

// NewSimulationState lays out bricks and paddle from cfg and spawns the initial balls.
// cfg is expected to be validated already.
func NewSimulationState(cfg utils.Config, rng utils.Rand) (*SimulationState, error) {
	if rng == nil {
		rng = utils.NewRand(cfg.Seed)
	}

	bricks, err := BuildBricks(cfg)
	if err != nil {
		return nil, err
	}

	paddleColor, err := utils.ParseHexColor(cfg.PaddleColor)
	if err != nil {
		return nil, fmt.Errorf("paddle: %w", err)
	}

	state := &SimulationState{
		Paddle: NewPaddle(cfg.PaddleX, cfg.PaddleY, cfg.PaddleWidth, cfg.PaddleHeight, paddleColor),
		Bricks: bricks,
		Balls:  make([]Ball, 0, cfg.InitialBalls+1),
		Lives:  cfg.Lives,
		Phase:  Playing,
		cfg:    cfg,
		rules:  RulesFromConfig(cfg),
		rng:    rng,
	}

	for i := 0; i < cfg.InitialBalls; i++ {
		state.spawnBall()
	}
	return state, nil
}

func (s *SimulationState) Config() utils.Config { return s.cfg }

// ActiveBricks counts bricks that still collide and render.
func (s *SimulationState) ActiveBricks() int {
	count := 0
	for i := range s.Bricks {
		if s.Bricks[i].Active {
			count++
		}
	}
	return count
}

// spawnBall adds a fresh ball at the arena origin heading right.
func (s *SimulationState) spawnBall() Ball {
	s.nextBallId++
	ball := NewBall(
		s.nextBallId,
		0, 0,
		s.cfg.BallRadius,
		s.cfg.BallSpeed,
		Right,
		utils.NewRandomColor(s.rng),
	)
	s.Balls = append(s.Balls, ball)
	return ball
}

// removeBall deletes the ball at index keeping the order of the rest.
func (s *SimulationState) removeBall(index int) {
	s.Balls = slices.Delete(s.Balls, index, index+1)
}
