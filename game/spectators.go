package game

import (
	"encoding/json"
	"log/slog"
	"sync/atomic"

	"github.com/lguibr/brickgame/bollywood"
)

// Spectators is the loop Observer that feeds the broadcaster actor and keeps the
// latest frame for polling clients.
type Spectators struct {
	engine      *bollywood.Engine
	broadcaster *bollywood.PID
	latest      atomic.Value // []byte
	log         *slog.Logger
}

func NewSpectators(engine *bollywood.Engine, broadcaster *bollywood.PID, log *slog.Logger) *Spectators {
	if log == nil {
		log = slog.Default()
	}
	return &Spectators{
		engine:      engine,
		broadcaster: broadcaster,
		log:         log.With("component", "spectators"),
	}
}

// Observe never blocks the loop: the engine drops frames when the broadcaster falls behind.
func (s *Spectators) Observe(frame Frame, report TickReport) {
	data, err := json.Marshal(frame)
	if err != nil {
		s.log.Error("Failed to encode frame", "tick", frame.Tick, "error", err)
	} else {
		s.latest.Store(data)
	}

	if s.engine == nil || s.broadcaster == nil {
		return
	}
	s.engine.Send(s.broadcaster, BroadcastFrameCommand{Frame: frame}, nil)
	if report.GameOver {
		s.engine.Send(s.broadcaster, frame.GameOver(), nil)
	}
}

// LatestJSON returns the most recently observed frame as JSON, or nil before the first tick.
func (s *Spectators) LatestJSON() []byte {
	data, _ := s.latest.Load().([]byte)
	return data
}

func (s *Spectators) Engine() *bollywood.Engine { return s.engine }

func (s *Spectators) Broadcaster() *bollywood.PID { return s.broadcaster }
