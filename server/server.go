package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/lguibr/brickgame/bollywood"
	"github.com/lguibr/brickgame/game"
	"golang.org/x/net/websocket"
)

const shutdownTimeout = 2 * time.Second

// Server exposes the running game to spectators over HTTP and websocket.
type Server struct {
	engine         *bollywood.Engine
	broadcasterPID *bollywood.PID
	spectators     *game.Spectators
	log            *slog.Logger
}

func New(spectators *game.Spectators, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		engine:         spectators.Engine(),
		broadcasterPID: spectators.Broadcaster(),
		spectators:     spectators,
		log:            log.With("component", "server"),
	}
}

func (s *Server) GetEngine() *bollywood.Engine { return s.engine }

func (s *Server) GetBroadcasterPID() *bollywood.PID { return s.broadcasterPID }

// Routes wires the spectator endpoints.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/state", s.HandleGetState())
	mux.Handle("/subscribe", websocket.Handler(s.HandleSubscribe()))
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Spectator server listening", "addr", listener.Addr().String())
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		// Hijacked websocket connections are not tracked by Shutdown; force them closed.
		_ = httpServer.Close()
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("Spectator server stopped")
	return nil
}
