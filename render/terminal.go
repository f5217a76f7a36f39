package render

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lguibr/brickgame/game"
	"github.com/lguibr/brickgame/utils"
)

const hudRows = 1

// Terminal draws the arena with tcell. Terminals only report key presses, so each press (or
// auto-repeat) counts for the next tick.
type Terminal struct {
	screen    tcell.Screen
	events    chan tcell.Event
	period    time.Duration
	ticker    *time.Ticker
	closeOnce sync.Once
}

// NewTerminal initialises screen, or the real terminal when screen is nil.
func NewTerminal(screen tcell.Screen, period time.Duration) (*Terminal, error) {
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	if period <= 0 {
		period = utils.Period
	}
	t := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, 100),
		period: period,
	}

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Screen finalised.
				return
			}
			select {
			case t.events <- ev:
			default:
			}
		}
	}()
	return t, nil
}

// Poll folds every event received since the last tick into one Input.
func (t *Terminal) Poll() game.Input {
	var input game.Input
	for {
		select {
		case ev := <-t.events:
			t.apply(ev, &input)
		default:
			return input
		}
	}
}

func (t *Terminal) apply(ev tcell.Event, input *game.Input) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			input.Quit = true
		case tcell.KeyLeft:
			input.Left = true
		case tcell.KeyRight:
			input.Right = true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'a', 'A':
				input.Left = true
			case 'd', 'D':
				input.Right = true
			case ' ':
				input.Spawn = true
			case 'q', 'Q':
				input.Quit = true
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

func (t *Terminal) Draw(frame game.Frame) error {
	width, height := t.screen.Size()
	rows := height - hudRows
	if width <= 0 || rows <= 0 {
		return nil
	}

	t.screen.Clear()
	pixels := Rasterize(frame, width, rows)
	for y, row := range pixels {
		for x, pixel := range row {
			if pixel == (RGBPixel{}) {
				continue
			}
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(pixel.R), int32(pixel.G), int32(pixel.B)))
			t.screen.SetContent(x, y, '█', nil, style)
		}
	}
	t.drawText(0, rows, HUD(frame), tcell.StyleDefault.Foreground(tcell.ColorWhite))
	t.screen.Show()
	return nil
}

func (t *Terminal) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *Terminal) Wait(ctx context.Context) error {
	if t.ticker == nil {
		t.ticker = time.NewTicker(t.period)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ticker.C:
		return nil
	}
}

// Report centres text over the arena.
func (t *Terminal) Report(text string) {
	width, height := t.screen.Size()
	x := (width - len(text)) / 2
	if x < 0 {
		x = 0
	}
	t.drawText(x, height/2, text, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	t.screen.Show()
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.closeOnce.Do(func() {
		if t.ticker != nil {
			t.ticker.Stop()
		}
		t.screen.Fini()
	})
}
