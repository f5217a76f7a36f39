package render

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/lguibr/brickgame/game"
	"github.com/lguibr/brickgame/utils"
)

// InputSource decides the input of each headless tick.
type InputSource func(tick uint64, frame game.Frame) game.Input

// AutoPilot steers the paddle under the lowest ball and respawns when the arena is empty.
func AutoPilot(tick uint64, frame game.Frame) game.Input {
	if len(frame.Balls) == 0 {
		return game.Input{Spawn: true}
	}
	lowest := frame.Balls[0]
	for _, ball := range frame.Balls[1:] {
		if ball.Y < lowest.Y {
			lowest = ball
		}
	}
	const deadZone = 0.02
	return game.Input{
		Left:  lowest.X < frame.Paddle.X-deadZone,
		Right: lowest.X > frame.Paddle.X+deadZone,
	}
}

// Idle never presses anything.
func Idle(uint64, game.Frame) game.Input { return game.Input{} }

// Headless runs without a display: it prints an ASCII snapshot every Every ticks to Out and
// stops after MaxTicks (0 runs until game over).
type Headless struct {
	Out      io.Writer
	Input    InputSource
	Every    uint64
	MaxTicks uint64
	Columns  int
	Rows     int
	// Period paces Wait; zero runs as fast as possible.
	Period time.Duration

	last  game.Frame
	ticks uint64
	timer *time.Ticker
}

func NewHeadless(out io.Writer, input InputSource, period time.Duration) *Headless {
	if input == nil {
		input = Idle
	}
	return &Headless{
		Out:     out,
		Input:   input,
		Every:   uint64(time.Second / utils.Period),
		Columns: 40,
		Rows:    20,
		Period:  period,
	}
}

func (h *Headless) Poll() game.Input {
	if h.MaxTicks > 0 && h.ticks >= h.MaxTicks {
		return game.Input{Quit: true}
	}
	return h.Input(h.ticks, h.last)
}

func (h *Headless) Draw(frame game.Frame) error {
	h.last = frame
	h.ticks = frame.Tick
	if h.Out == nil || h.Every == 0 || frame.Tick%h.Every != 0 {
		return nil
	}
	return h.snapshot(frame)
}

func (h *Headless) snapshot(frame game.Frame) error {
	text := RenderPlain(Rasterize(frame, h.Columns, h.Rows))
	if _, err := fmt.Fprintf(h.Out, "%s\n%s", HUD(frame), text); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (h *Headless) Wait(ctx context.Context) error {
	if h.Period <= 0 {
		return ctx.Err()
	}
	if h.timer == nil {
		h.timer = time.NewTicker(h.Period)
	}
	select {
	case <-ctx.Done():
		h.timer.Stop()
		return ctx.Err()
	case <-h.timer.C:
		return nil
	}
}

// Report prints the final snapshot followed by text.
func (h *Headless) Report(text string) {
	if h.Out == nil {
		return
	}
	_ = h.snapshot(h.last)
	fmt.Fprintln(h.Out, text)
}

// Last returns the most recently drawn frame.
func (h *Headless) Last() game.Frame { return h.last }

// Close stops the pacing ticker.
func (h *Headless) Close() {
	if h.timer != nil {
		h.timer.Stop()
	}
}
