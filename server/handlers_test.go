// File: server/handlers_test.go
package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lguibr/brickgame/bollywood"
	"github.com/lguibr/brickgame/game"
	"github.com/lguibr/brickgame/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

// --- Test Setup ---

func setupTestServer(t *testing.T) (*Server, *game.Spectators, *httptest.Server) {
	t.Helper()
	engine := bollywood.NewEngine(nil)
	broadcasterPID, err := engine.Spawn(bollywood.NewProps(game.NewBroadcasterProducer(nil)))
	require.NoError(t, err)

	spectators := game.NewSpectators(engine, broadcasterPID, nil)
	server := New(spectators, nil)
	httpServer := httptest.NewServer(server.Routes())
	t.Cleanup(func() {
		httpServer.Close()
		engine.Shutdown(2 * time.Second)
	})
	return server, spectators, httpServer
}

func dial(t *testing.T, httpServer *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/subscribe"
	ws, err := websocket.Dial(wsURL, "", httpServer.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

// readWsJSONMessage reads one JSON message with a deadline.
func readWsJSONMessage(t *testing.T, ws *websocket.Conn, timeout time.Duration, v interface{}) error {
	t.Helper()
	if err := ws.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	return websocket.JSON.Receive(ws, v)
}

func waitForClients(t *testing.T, server *Server, want int) {
	t.Helper()
	assert.Eventually(t, func() bool {
		reply := make(chan int, 1)
		server.GetEngine().Send(server.GetBroadcasterPID(), game.ClientCountRequest{Reply: reply}, nil)
		select {
		case n := <-reply:
			return n == want
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 20*time.Millisecond)
}

func newState(t *testing.T) *game.SimulationState {
	t.Helper()
	state, err := game.NewSimulationState(utils.DefaultConfig(), utils.NewRand(1))
	require.NoError(t, err)
	return state
}

// --- Tests ---

func TestHandleGetState_NoFrameYet(t *testing.T) {
	_, _, httpServer := setupTestServer(t)

	resp, err := http.Get(httpServer.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandleGetState_ServesLatestFrame(t *testing.T) {
	_, spectators, httpServer := setupTestServer(t)
	state := newState(t)
	report := game.Tick(state, game.Input{})
	spectators.Observe(state.Frame(), report)

	resp, err := http.Get(httpServer.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var frame game.Frame
	require.NoError(t, json.Unmarshal(body, &frame))
	assert.Equal(t, uint64(1), frame.Tick)
	assert.Equal(t, utils.InitialLives, frame.Lives)
}

func TestHandleGetState_RejectsPost(t *testing.T) {
	_, _, httpServer := setupTestServer(t)
	resp, err := http.Post(httpServer.URL+"/state", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandleSubscribe_RegistersAndReceivesFrames(t *testing.T) {
	server, spectators, httpServer := setupTestServer(t)
	ws := dial(t, httpServer)
	waitForClients(t, server, 1)

	state := newState(t)
	report := game.Tick(state, game.Input{})
	spectators.Observe(state.Frame(), report)

	var frame game.Frame
	require.NoError(t, readWsJSONMessage(t, ws, 2*time.Second, &frame))
	assert.Equal(t, game.FrameMessageType, frame.MessageType)
	assert.Equal(t, uint64(1), frame.Tick)
}

func TestHandleSubscribe_LateJoinerGetsLatestFrame(t *testing.T) {
	_, spectators, httpServer := setupTestServer(t)
	state := newState(t)
	for i := 0; i < 3; i++ {
		report := game.Tick(state, game.Input{})
		spectators.Observe(state.Frame(), report)
	}

	ws := dial(t, httpServer)
	var frame game.Frame
	require.NoError(t, readWsJSONMessage(t, ws, 2*time.Second, &frame))
	assert.Equal(t, uint64(3), frame.Tick)
}

func TestHandleSubscribe_RemovesClientOnClose(t *testing.T) {
	server, _, httpServer := setupTestServer(t)
	ws := dial(t, httpServer)
	waitForClients(t, server, 1)

	require.NoError(t, ws.Close())
	waitForClients(t, server, 0)
}

func TestHandleSubscribe_IgnoresSpectatorMessages(t *testing.T) {
	server, _, httpServer := setupTestServer(t)
	ws := dial(t, httpServer)
	waitForClients(t, server, 1)

	require.NoError(t, websocket.JSON.Send(ws, map[string]string{"direction": "ArrowLeft"}))
	// Still registered: sending is harmless.
	waitForClients(t, server, 1)
}

// stepSurface drives a loop as fast as possible with no input.
type stepSurface struct{}

func (stepSurface) Poll() game.Input               { return game.Input{} }
func (stepSurface) Draw(game.Frame) error          { return nil }
func (stepSurface) Wait(ctx context.Context) error { return ctx.Err() }
func (stepSurface) Report(string)                  {}

// A full run: the loop plays to game over while a spectator watches the stream end.
func TestEndToEnd_SpectatorSeesGameOver(t *testing.T) {
	server, spectators, httpServer := setupTestServer(t)
	ws := dial(t, httpServer)
	waitForClients(t, server, 1)

	cfg := utils.DefaultConfig()
	cfg.Lives = 1
	state, err := game.NewSimulationState(cfg, utils.NewRand(1))
	require.NoError(t, err)
	state.Balls = []game.Ball{game.NewBall(1, 0.5, -0.52, utils.BallRadius, utils.BallSpeed, game.Down, utils.Grey)}

	last, err := game.NewLoop(state, stepSurface{}, nil, spectators).Run(context.Background())
	require.NoError(t, err)
	require.True(t, last.GameOver)

	frames := 0
	for {
		var raw json.RawMessage
		require.NoError(t, readWsJSONMessage(t, ws, 2*time.Second, &raw))
		var header game.MessageHeader
		require.NoError(t, json.Unmarshal(raw, &header))
		if header.MessageType == game.GameOverMessageType {
			break
		}
		assert.Equal(t, game.FrameMessageType, header.MessageType)
		frames++
	}
	assert.Equal(t, int(last.Tick), frames)

	var extra json.RawMessage
	assert.Error(t, readWsJSONMessage(t, ws, 2*time.Second, &extra), "server closes the stream after game over")
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	engine := bollywood.NewEngine(nil)
	defer engine.Shutdown(time.Second)
	server := New(game.NewSpectators(engine, nil, nil), nil)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, listener) }()

	assert.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listener.Addr().String() + "/state")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusServiceUnavailable
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
