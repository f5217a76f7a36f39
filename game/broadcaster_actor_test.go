// File: game/broadcaster_actor_test.go
package game

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lguibr/brickgame/bollywood"
	"github.com/lguibr/brickgame/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

// clientCount asks the broadcaster for its client count, returning -1 on timeout.
func clientCount(t *testing.T, engine *bollywood.Engine, pid *bollywood.PID) int {
	t.Helper()
	reply := make(chan int, 1)
	engine.Send(pid, ClientCountRequest{Reply: reply}, nil)
	select {
	case n := <-reply:
		return n
	case <-time.After(time.Second):
		return -1
	}
}

// setupBroadcaster starts a broadcaster plus a websocket server registering every connection with it.
func setupBroadcaster(t *testing.T) (*bollywood.Engine, *bollywood.PID, *httptest.Server) {
	t.Helper()
	engine := bollywood.NewEngine(nil)
	pid, err := engine.Spawn(bollywood.NewProps(NewBroadcasterProducer(nil)))
	require.NoError(t, err)

	srv := httptest.NewServer(websocket.Handler(func(ws *websocket.Conn) {
		engine.Send(pid, AddClient{Conn: ws}, nil)
		var discard []byte
		for websocket.Message.Receive(ws, &discard) == nil {
		}
		engine.Send(pid, RemoveClient{Conn: ws}, nil)
	}))
	t.Cleanup(func() {
		srv.Close()
		engine.Shutdown(time.Second)
	})
	return engine, pid, srv
}

func dialSpectator(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, err := websocket.Dial(wsURL, "", srv.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func TestBroadcaster_FansOutFrames(t *testing.T) {
	engine, pid, srv := setupBroadcaster(t)
	first := dialSpectator(t, srv)
	second := dialSpectator(t, srv)
	assert.Eventually(t, func() bool { return clientCount(t, engine, pid) == 2 }, time.Second, 10*time.Millisecond)

	state, err := NewSimulationState(utils.DefaultConfig(), utils.NewRand(1))
	require.NoError(t, err)
	Tick(state, Input{})
	engine.Send(pid, BroadcastFrameCommand{Frame: state.Frame()}, nil)

	for _, ws := range []*websocket.Conn{first, second} {
		require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
		var frame Frame
		require.NoError(t, websocket.JSON.Receive(ws, &frame))
		assert.Equal(t, FrameMessageType, frame.MessageType)
		assert.Equal(t, uint64(1), frame.Tick)
		assert.Len(t, frame.Bricks, 12)
	}
}

func TestBroadcaster_GameOverClosesConnections(t *testing.T) {
	engine, pid, srv := setupBroadcaster(t)
	ws := dialSpectator(t, srv)
	assert.Eventually(t, func() bool { return clientCount(t, engine, pid) == 1 }, time.Second, 10*time.Millisecond)

	engine.Send(pid, GameOverMessage{MessageType: GameOverMessageType, Tick: 40}, nil)

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg GameOverMessage
	require.NoError(t, websocket.JSON.Receive(ws, &msg))
	assert.Equal(t, GameOverMessageType, msg.MessageType)
	assert.Equal(t, uint64(40), msg.Tick)

	var next Frame
	assert.Error(t, websocket.JSON.Receive(ws, &next), "connection should be closed after game over")
	assert.Equal(t, 0, clientCount(t, engine, pid))
}

func TestBroadcaster_RemoveClient(t *testing.T) {
	engine, pid, srv := setupBroadcaster(t)
	ws := dialSpectator(t, srv)
	assert.Eventually(t, func() bool { return clientCount(t, engine, pid) == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, ws.Close())
	assert.Eventually(t, func() bool { return clientCount(t, engine, pid) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestSpectators_ObserveStoresLatestAndBroadcasts(t *testing.T) {
	engine, pid, srv := setupBroadcaster(t)
	ws := dialSpectator(t, srv)
	assert.Eventually(t, func() bool { return clientCount(t, engine, pid) == 1 }, time.Second, 10*time.Millisecond)

	spectators := NewSpectators(engine, pid, nil)
	assert.Nil(t, spectators.LatestJSON())

	state, err := NewSimulationState(utils.DefaultConfig(), utils.NewRand(1))
	require.NoError(t, err)
	report := Tick(state, Input{})
	spectators.Observe(state.Frame(), report)

	latest := spectators.LatestJSON()
	require.NotNil(t, latest)
	assert.Contains(t, string(latest), `"messageType":"frame"`)

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame Frame
	require.NoError(t, websocket.JSON.Receive(ws, &frame))
	assert.Equal(t, uint64(1), frame.Tick)

	// A game-over report is followed by the closing message.
	spectators.Observe(state.Frame(), TickReport{Tick: 1, GameOver: true})
	require.NoError(t, websocket.JSON.Receive(ws, &frame))
	var header MessageHeader
	require.NoError(t, websocket.JSON.Receive(ws, &header))
	assert.Equal(t, GameOverMessageType, header.MessageType)
}

func TestSpectators_WithoutEngineOnlyKeepsLatest(t *testing.T) {
	spectators := NewSpectators(nil, nil, nil)
	state, err := NewSimulationState(utils.DefaultConfig(), utils.NewRand(1))
	require.NoError(t, err)
	spectators.Observe(state.Frame(), TickReport{})
	assert.NotEmpty(t, spectators.LatestJSON())
}
