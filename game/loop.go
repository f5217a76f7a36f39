package game

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// GameOverText is reported to the surface when the last life is lost.
const GameOverText = "Game Over!"

// Surface is the window/terminal collaborator: it supplies input, draws frames, paces ticks
// and shows terminal text.
type Surface interface {
	// Poll returns the input for the coming tick.
	Poll() Input
	// Draw renders one frame.
	Draw(frame Frame) error
	// Wait blocks until the next tick should start.
	Wait(ctx context.Context) error
	// Report shows terminal text such as GameOverText.
	Report(text string)
}

// Observer receives every frame after it was drawn, with the report of the tick that produced it.
type Observer interface {
	Observe(frame Frame, report TickReport)
}

// Loop drives a SimulationState against a Surface, one tick per frame.
type Loop struct {
	state     *SimulationState
	surface   Surface
	observers []Observer
	log       *slog.Logger
}

func NewLoop(state *SimulationState, surface Surface, log *slog.Logger, observers ...Observer) *Loop {
	if log == nil {
		log = slog.Default()
	}
	return &Loop{
		state:     state,
		surface:   surface,
		observers: observers,
		log:       log.With("component", "loop"),
	}
}

// Run ticks until quit, game over, context cancellation or a surface error.
// The returned report is the last one produced.
func (l *Loop) Run(ctx context.Context) (last TickReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("PANIC recovered in loop", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("loop panicked: %v", r)
		}
	}()

	l.log.Info("Loop started", "lives", l.state.Lives, "bricks", len(l.state.Bricks), "balls", len(l.state.Balls))

	for {
		if err := ctx.Err(); err != nil {
			return last, err
		}

		input := l.surface.Poll()
		last = Tick(l.state, input)
		if last.Quit {
			l.log.Info("Quit requested", "tick", l.state.Ticks)
			return last, nil
		}

		frame := l.state.Frame()
		if err := l.surface.Draw(frame); err != nil {
			return last, fmt.Errorf("draw tick %d: %w", last.Tick, err)
		}
		for _, observer := range l.observers {
			observer.Observe(frame, last)
		}
		l.logReport(last)

		if last.GameOver {
			l.surface.Report(GameOverText)
			l.log.Info("Game over", "tick", last.Tick)
			return last, nil
		}

		if err := l.surface.Wait(ctx); err != nil {
			return last, err
		}
	}
}

func (l *Loop) logReport(report TickReport) {
	if !report.Eventful() {
		return
	}
	l.log.Debug("Tick",
		"tick", report.Tick,
		"spawned", report.Spawned,
		"caught", report.Caught,
		"exited", report.Exited,
		"reflected", report.ReflectiveHits,
		"destroyed", report.DestroyedBricks,
		"lives", l.state.Lives,
	)
	if report.LivesLost > 0 {
		l.log.Info("Life lost", "tick", report.Tick, "lives", l.state.Lives)
	}
}
