// File: server/handlers.go
package server

import (
	"errors"
	"io"
	"net"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/lguibr/brickgame/game"
	"golang.org/x/net/websocket"
)

// HandleSubscribe registers the websocket with the broadcaster and holds it open until the
// spectator goes away.
func (s *Server) HandleSubscribe() func(ws *websocket.Conn) {
	return func(ws *websocket.Conn) {
		connectionAddr := ws.Request().RemoteAddr

		defer func() {
			if r := recover(); r != nil {
				s.log.Error("PANIC recovered in HandleSubscribe", "remote", connectionAddr, "panic", r, "stack", string(debug.Stack()))
			}
			_ = ws.Close()
		}()

		engine := s.GetEngine()
		broadcasterPID := s.GetBroadcasterPID()
		if engine == nil || broadcasterPID == nil {
			s.log.Warn("No broadcaster, refusing spectator", "remote", connectionAddr)
			return
		}

		// Late joiners get the current frame right away instead of waiting for the next tick.
		if latest := s.spectators.LatestJSON(); latest != nil {
			if err := websocket.Message.Send(ws, string(latest)); err != nil {
				s.log.Debug("Failed to send initial frame", "remote", connectionAddr, "error", err)
				return
			}
		}

		engine.Send(broadcasterPID, game.AddClient{Conn: ws}, nil)
		s.readLoop(ws)
		engine.Send(broadcasterPID, game.RemoveClient{Conn: ws}, nil)
	}
}

// readLoop drains whatever the spectator sends until the connection fails. Spectators have no
// say over the game, so messages are ignored.
func (s *Server) readLoop(conn *websocket.Conn) {
	connectionAddr := conn.Request().RemoteAddr
	for {
		var message []byte
		err := websocket.Message.Receive(conn, &message)
		if err == nil {
			continue
		}

		var netErr net.Error
		switch {
		case errors.Is(err, io.EOF), strings.Contains(err.Error(), "use of closed network connection"):
			s.log.Debug("Spectator disconnected", "remote", connectionAddr)
		case errors.As(err, &netErr) && netErr.Timeout():
			s.log.Info("Spectator read timeout", "remote", connectionAddr)
		default:
			s.log.Warn("Spectator read error", "remote", connectionAddr, "error", err)
		}
		return
	}
}

// HandleGetState serves the latest frame as JSON.
func (s *Server) HandleGetState() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("PANIC recovered in HandleGetState", "panic", rec, "stack", string(debug.Stack()))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		frame := s.spectators.LatestJSON()
		if frame == nil {
			http.Error(w, "No frame yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(frame); err != nil {
			s.log.Debug("Error writing state", "error", err)
		}
	}
}
