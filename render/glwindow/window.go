// Package glwindow draws the arena in an OpenGL 2.1 window using immediate mode.
// GLFW must run on the main thread, so the loop using a Window has to run on the main goroutine.
package glwindow

import (
	"context"
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/lguibr/brickgame/game"
	"github.com/lguibr/brickgame/render"
	"github.com/lguibr/brickgame/utils"
)

const title = "Brick Game"

func init() {
	// glfw must be on main thread
	runtime.LockOSThread()
}

// Window is a game.Surface backed by a GLFW window. Frame pacing comes from vsync.
type Window struct {
	window *glfw.Window
}

func New(width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("init gl: %w", err)
	}
	glfw.SwapInterval(1)

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gl.Viewport(0, 0, int32(w), int32(h))
	})
	gl.ClearColor(0, 0, 0, 1)

	return &Window{window: window}, nil
}

func pressed(window *glfw.Window, keys ...glfw.Key) bool {
	for _, key := range keys {
		if window.GetKey(key) == glfw.Press {
			return true
		}
	}
	return false
}

func (w *Window) Poll() game.Input {
	glfw.PollEvents()
	return game.Input{
		Left:  pressed(w.window, glfw.KeyLeft, glfw.KeyA),
		Right: pressed(w.window, glfw.KeyRight, glfw.KeyD),
		Spawn: pressed(w.window, glfw.KeySpace),
		Quit:  w.window.ShouldClose() || pressed(w.window, glfw.KeyEscape),
	}
}

func (w *Window) Draw(frame game.Frame) error {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	for _, shape := range render.Shapes(frame, utils.CircleSegments) {
		gl.Color3f(shape.Color.R, shape.Color.G, shape.Color.B)
		gl.Begin(gl.POLYGON)
		for _, p := range shape.Points {
			gl.Vertex2f(p[0], p[1])
		}
		gl.End()
	}
	w.window.SetTitle(title + " - " + render.HUD(frame))
	return nil
}

// Wait presents the frame; with vsync on, SwapBuffers blocks until the next refresh.
func (w *Window) Wait(ctx context.Context) error {
	w.window.SwapBuffers()
	return ctx.Err()
}

func (w *Window) Report(text string) {
	w.window.SwapBuffers()
	w.window.SetTitle(title + " - " + text)
	color.New(color.FgRed, color.Bold).Println(text)
}

func (w *Window) Close() {
	w.window.Destroy()
	glfw.Terminate()
}
