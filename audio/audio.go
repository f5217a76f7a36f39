// Package audio plays short tones for game events.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/lguibr/brickgame/game"
)

const sampleRate = beep.SampleRate(44100)

// Cue is the sound chosen for one tick. Higher cues win.
type Cue int

const (
	CueNone Cue = iota
	CueCatch
	CueReflect
	CueDestroy
	CueLifeLost
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueNone:
		return "none"
	case CueCatch:
		return "catch"
	case CueReflect:
		return "reflect"
	case CueDestroy:
		return "destroy"
	case CueLifeLost:
		return "lifeLost"
	case CueGameOver:
		return "gameOver"
	}
	return fmt.Sprintf("Cue(%d)", int(c))
}

// Tone is one sine note.
type Tone struct {
	Freq     float64
	Duration time.Duration
}

var cueTones = map[Cue][]Tone{
	CueCatch:    {{Freq: 660, Duration: 40 * time.Millisecond}},
	CueReflect:  {{Freq: 880, Duration: 50 * time.Millisecond}},
	CueDestroy:  {{Freq: 1320, Duration: 40 * time.Millisecond}, {Freq: 1760, Duration: 60 * time.Millisecond}},
	CueLifeLost: {{Freq: 330, Duration: 120 * time.Millisecond}},
	CueGameOver: {
		{Freq: 440, Duration: 150 * time.Millisecond},
		{Freq: 330, Duration: 150 * time.Millisecond},
		{Freq: 220, Duration: 300 * time.Millisecond},
	},
}

// CueFor picks the most important event of a tick.
func CueFor(report game.TickReport) Cue {
	switch {
	case report.GameOver:
		return CueGameOver
	case report.LivesLost > 0:
		return CueLifeLost
	case len(report.DestroyedBricks) > 0:
		return CueDestroy
	case report.ReflectiveHits > 0:
		return CueReflect
	case report.Caught > 0:
		return CueCatch
	}
	return CueNone
}

func Tones(c Cue) []Tone { return cueTones[c] }

// Streamer renders tones back to back at volume (0..1].
func Streamer(tones []Tone, volume float64) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(tones))
	for _, tone := range tones {
		sine, err := generators.SineTone(sampleRate, tone.Freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.0fHz: %w", tone.Freq, err)
		}
		parts = append(parts, beep.Take(sampleRate.N(tone.Duration), sine))
	}
	seq := beep.Seq(parts...)
	if volume <= 0 {
		return &effects.Volume{Streamer: seq, Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: seq, Base: 2, Volume: math.Log2(volume)}, nil
}

// Player is a game.Observer turning tick reports into sounds.
type Player struct {
	volume float64
	play   func(beep.Streamer)
	close  func()
	log    *slog.Logger
}

// NewPlayer opens the default audio device.
func NewPlayer(volume float64, log *slog.Logger) (*Player, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Player{
		volume: volume,
		play:   func(s beep.Streamer) { speaker.Play(s) },
		close:  speaker.Close,
		log:    log.With("component", "audio"),
	}, nil
}

func (p *Player) Observe(_ game.Frame, report game.TickReport) {
	cue := CueFor(report)
	if cue == CueNone {
		return
	}
	streamer, err := Streamer(Tones(cue), p.volume)
	if err != nil {
		p.log.Warn("Failed to build cue", "cue", cue.String(), "error", err)
		return
	}
	p.play(streamer)
}

func (p *Player) Close() {
	if p.close != nil {
		p.close()
	}
}
