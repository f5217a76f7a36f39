// File: game/messages.go
package game

import (
	"github.com/lguibr/brickgame/utils"
	"golang.org/x/net/websocket"
)

// --- Message Header ---
// Used for identifying message types after unmarshalling from JSON
type MessageHeader struct {
	MessageType string `json:"messageType"`
}

const (
	FrameMessageType    = "frame"
	GameOverMessageType = "gameOver"
)

// --- Frame snapshot (Simulation -> Renderers / Spectators) ---

type BrickView struct {
	Index      int         `json:"index"`
	X          float32     `json:"x"`
	Y          float32     `json:"y"`
	HalfExtent float32     `json:"halfExtent"` // Drawn half side
	Color      utils.Color `json:"color"`
	Kind       BrickKind   `json:"kind"`
	HitPoints  int         `json:"hitPoints"`
}

type BallView struct {
	Id     int         `json:"id"`
	X      float32     `json:"x"`
	Y      float32     `json:"y"`
	Radius float32     `json:"radius"`
	Color  utils.Color `json:"color"`
}

type PaddleView struct {
	X      float32     `json:"x"`
	Y      float32     `json:"y"`
	Width  float32     `json:"width"`
	Height float32     `json:"height"`
	Color  utils.Color `json:"color"`
}

// Frame is an immutable copy of everything a renderer needs for one tick.
type Frame struct {
	MessageType string      `json:"messageType"` // "frame"
	Tick        uint64      `json:"tick"`
	Phase       Phase       `json:"phase"`
	Lives       int         `json:"lives"`
	Paddle      PaddleView  `json:"paddle"`
	Bricks      []BrickView `json:"bricks"`
	Balls       []BallView  `json:"balls"`
}

// GameOverMessage signals the end of the run to spectators.
type GameOverMessage struct {
	MessageType string `json:"messageType"` // "gameOver"
	Tick        uint64 `json:"tick"`
	Lives       int    `json:"lives"`
}

// --- Broadcaster actor messages ---

// AddClient registers a spectator connection with the broadcaster.
type AddClient struct {
	Conn *websocket.Conn
}

// RemoveClient unregisters a spectator connection.
type RemoveClient struct {
	Conn *websocket.Conn
}

// BroadcastFrameCommand asks the broadcaster to push a frame to every client.
type BroadcastFrameCommand struct {
	Frame Frame
}

// ClientCountRequest asks the broadcaster how many spectators it serves; the reply goes to Reply.
type ClientCountRequest struct {
	Reply chan int
}
