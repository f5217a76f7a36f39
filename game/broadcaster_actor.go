// File: game/broadcaster_actor.go
package game

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/lguibr/brickgame/bollywood"
	"golang.org/x/net/websocket"
)

// BroadcasterActor fans frames out to spectator connections.
// All client bookkeeping happens inside Receive, so no lock is needed.
type BroadcasterActor struct {
	clients map[*websocket.Conn]bool
	selfPID *bollywood.PID
	log     *slog.Logger
}

// NewBroadcasterProducer creates a producer for BroadcasterActor.
func NewBroadcasterProducer(log *slog.Logger) bollywood.Producer {
	if log == nil {
		log = slog.Default()
	}
	return func() bollywood.Actor {
		return &BroadcasterActor{
			clients: make(map[*websocket.Conn]bool),
			log:     log.With("component", "broadcaster"),
		}
	}
}

// Receive handles messages for the BroadcasterActor.
func (a *BroadcasterActor) Receive(ctx bollywood.Context) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("PANIC recovered in BroadcasterActor", "actor", a.selfPID.String(), "panic", r, "stack", string(debug.Stack()))
		}
	}()

	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:

	case AddClient:
		if msg.Conn != nil {
			a.clients[msg.Conn] = true
			a.log.Info("Spectator joined", "remote", remoteAddr(msg.Conn), "clients", len(a.clients))
		}

	case RemoveClient:
		if msg.Conn != nil {
			if _, exists := a.clients[msg.Conn]; exists {
				delete(a.clients, msg.Conn)
				a.log.Info("Spectator left", "remote", remoteAddr(msg.Conn), "clients", len(a.clients))
			}
		}

	case BroadcastFrameCommand:
		a.broadcast(msg.Frame)

	case GameOverMessage:
		a.log.Info("Broadcasting game over and closing connections", "tick", msg.Tick, "clients", len(a.clients))
		a.broadcast(msg)
		a.closeAllConnections()

	case ClientCountRequest:
		if msg.Reply != nil {
			select {
			case msg.Reply <- len(a.clients):
			default:
			}
		}

	case bollywood.Stopping:
		a.closeAllConnections()

	case bollywood.Stopped:

	default:
		a.log.Warn("Unknown message", "type", fmt.Sprintf("%T", msg))
	}
}

// broadcast sends v as JSON to every client, dropping clients whose connection is gone.
func (a *BroadcasterActor) broadcast(v interface{}) {
	if len(a.clients) == 0 {
		return
	}

	for ws := range a.clients {
		if err := websocket.JSON.Send(ws, v); err != nil {
			if isClosedConnErr(err) {
				delete(a.clients, ws)
				_ = ws.Close()
				a.log.Debug("Dropped closed spectator", "remote", remoteAddr(ws))
				continue
			}
			a.log.Error("Failed to write to spectator", "remote", remoteAddr(ws), "error", err)
		}
	}
}

func (a *BroadcasterActor) closeAllConnections() {
	if len(a.clients) == 0 {
		return
	}
	a.log.Debug("Closing spectator connections", "count", len(a.clients))
	for ws := range a.clients {
		_ = ws.Close()
	}
	a.clients = make(map[*websocket.Conn]bool)
}

func isClosedConnErr(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset by peer") ||
		strings.Contains(errStr, "EOF") ||
		strings.Contains(errStr, "write: connection timed out")
}

func remoteAddr(ws *websocket.Conn) string {
	if ws == nil || ws.Request() == nil {
		return "unknown"
	}
	return ws.Request().RemoteAddr
}
