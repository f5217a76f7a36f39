// Command spectator watches a running brick game from another terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/lguibr/asciiring/helpers"
	"github.com/lguibr/brickgame/game"
	"github.com/lguibr/brickgame/render"
	"golang.org/x/net/websocket"
	"golang.org/x/sys/unix"
)

func setRawMode(fileDescriptor uintptr) (*unix.Termios, error) {
	terminalSettings, err := unix.IoctlGetTermios(int(fileDescriptor), unix.TCGETS)
	if err != nil {
		return nil, err
	}
	savedTerminalSettings := *terminalSettings
	terminalSettings.Lflag &^= unix.ECHO | unix.ICANON
	terminalSettings.Cc[unix.VMIN] = 1
	terminalSettings.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(int(fileDescriptor), unix.TCSETS, terminalSettings); err != nil {
		return nil, err
	}
	return &savedTerminalSettings, nil
}

// watch prints every frame until the stream ends.
func watch(ws *websocket.Conn, out io.Writer, columns, rows int) error {
	for {
		var raw []byte
		if err := websocket.Message.Receive(ws, &raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var header game.MessageHeader
		if err := websocket.JSON.Unmarshal(raw, websocket.TextFrame, &header); err != nil {
			return fmt.Errorf("decode header: %w", err)
		}

		switch header.MessageType {
		case game.FrameMessageType:
			var frame game.Frame
			if err := websocket.JSON.Unmarshal(raw, websocket.TextFrame, &frame); err != nil {
				return fmt.Errorf("decode frame: %w", err)
			}
			helpers.ClearScreen()
			fmt.Fprintln(out, render.HUD(frame))
			fmt.Fprint(out, render.RenderToASCII(render.Rasterize(frame, columns, rows), rows))
		case game.GameOverMessageType:
			color.New(color.FgRed, color.Bold).Fprintln(out, game.GameOverText)
			return nil
		}
	}
}

func main() {
	addr := flag.String("addr", "ws://localhost:3001/subscribe", "spectator websocket URL")
	origin := flag.String("origin", "http://localhost/", "websocket origin")
	size := flag.Int("size", 32, "rows (and half the columns) of the picture")
	flag.Parse()

	websocketConnection, err := websocket.Dial(*addr, "", *origin)
	if err != nil {
		fmt.Println("Error connecting to server:", err)
		os.Exit(1)
	}
	defer websocketConnection.Close()

	savedTerminalSettings, err := setRawMode(os.Stdin.Fd())
	if err == nil {
		defer unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, savedTerminalSettings)
	}

	interruptSignalChannel := make(chan os.Signal, 1)
	signal.Notify(interruptSignalChannel, os.Interrupt)
	keys := make(chan byte)
	go func() {
		buffer := make([]byte, 1)
		for {
			if _, err := os.Stdin.Read(buffer); err != nil {
				return
			}
			keys <- buffer[0]
		}
	}()

	done := make(chan error, 1)
	go func() { done <- watch(websocketConnection, os.Stdout, *size, *size) }()

	for {
		select {
		case err := <-done:
			if err != nil {
				fmt.Println("Error reading from server:", err)
			}
			return
		case <-interruptSignalChannel:
			return
		case key := <-keys:
			if key == 'q' || key == 'Q' {
				fmt.Println("Quitting spectator")
				return
			}
		}
	}
}
