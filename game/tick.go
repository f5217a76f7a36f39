package game

// Input is the per-tick query of the four logical signals.
type Input struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
	Spawn bool `json:"spawn"`
	Quit  bool `json:"quit"`
}

// TickReport describes what one Tick did. It is informational only.
type TickReport struct {
	Tick            uint64 `json:"tick"`
	Quit            bool   `json:"quit"`
	Spawned         int    `json:"spawned"`
	Caught          int    `json:"caught"`
	Exited          int    `json:"exited"`
	ReflectiveHits  int    `json:"reflectiveHits"`
	DamagedBricks   int    `json:"damagedBricks"`
	DestroyedBricks []int  `json:"destroyedBricks,omitempty"`
	LivesLost       int    `json:"livesLost"`
	GameOver        bool   `json:"gameOver"`
}

// Eventful reports whether anything worth announcing happened.
func (r TickReport) Eventful() bool {
	return r.Spawned > 0 || r.Caught > 0 || r.Exited > 0 ||
		r.ReflectiveHits > 0 || len(r.DestroyedBricks) > 0 || r.GameOver
}

// Tick advances the simulation by one frame.
//
// Order: quit, spawn, paddle, then for each ball every brick check, movement, the paddle catch
// and the bottom boundary. A ball spawned by input joins the scan in the same tick; the
// replacement for the last caught ball is appended after the scan. Once GameOver is reached
// nothing changes any more.
func Tick(state *SimulationState, input Input) TickReport {
	report := TickReport{Tick: state.Ticks}

	if state.Phase == GameOver {
		report.GameOver = true
		return report
	}
	if input.Quit {
		report.Quit = true
		return report
	}

	state.Ticks++
	report.Tick = state.Ticks

	if input.Spawn && len(state.Balls) == 0 {
		state.spawnBall()
		report.Spawned++
	}
	state.Paddle.Move(input.Left, input.Right, state.cfg.PaddleStep)

	replaceCaught := false
	for i := 0; i < len(state.Balls); i++ {
		ball := &state.Balls[i]

		for j := range state.Bricks {
			switch ball.CollideBrick(&state.Bricks[j], state.rng, state.rules) {
			case HitReflected:
				report.ReflectiveHits++
			case HitDamaged:
				report.DamagedBricks++
			case HitDestroyed:
				report.DamagedBricks++
				report.DestroyedBricks = append(report.DestroyedBricks, j)
			}
		}

		ball.Advance(state.rng)

		if ball.InterceptsPaddle(&state.Paddle) {
			state.removeBall(i)
			i--
			report.Caught++
			if len(state.Balls) == 0 {
				replaceCaught = true
			}
			continue
		}

		if ball.ExitedBottom() {
			state.removeBall(i)
			i--
			report.Exited++
			report.LivesLost++
			state.Lives--
			if state.Lives <= 0 {
				state.Lives = 0
				state.Phase = GameOver
				report.GameOver = true
				return report
			}
		}
	}

	if replaceCaught {
		state.spawnBall()
		report.Spawned++
	}
	return report
}
