package render

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/lguibr/brickgame/game"
	"github.com/lguibr/brickgame/utils"
)

// RGBPixel is one cell of a rasterised frame.
type RGBPixel struct {
	R, G, B uint8
}

func pixelOf(c utils.Color) RGBPixel {
	r, g, b := c.RGB255()
	return RGBPixel{R: r, G: g, B: b}
}

// ASCII characters for grayscale, from lighter to darker
const asciiChars = " .,:;i1tfLCG08@"

// Dividing factor to convert the summed RGB channels to an index
const grayFactor = 3 * 255.0 / float64(len(asciiChars)-1)

// rgbToGray sums the channels; black maps to a blank cell.
func rgbToGray(pixel RGBPixel) int {
	return int(pixel.R) + int(pixel.G) + int(pixel.B)
}

func grayToASCII(gray int) byte {
	index := int(float64(gray) / grayFactor)
	if index >= len(asciiChars) {
		index = len(asciiChars) - 1
	}
	return asciiChars[index]
}

// rgbToAnsi converts an RGB pixel to an ANSI escape code for that color
func rgbToAnsi(pixel RGBPixel) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", pixel.R, pixel.G, pixel.B)
}

// Rasterize paints a frame onto a columns x rows grid. Row 0 is the top of the arena.
// Bricks use their drawn half extent, balls their radius.
func Rasterize(frame game.Frame, columns, rows int) [][]RGBPixel {
	pixels := make([][]RGBPixel, rows)
	for r := range pixels {
		pixels[r] = make([]RGBPixel, columns)
	}
	if columns == 0 || rows == 0 {
		return pixels
	}

	fill := func(rect utils.Rect, color RGBPixel, inside func(x, y float32) bool) {
		minCol, maxRow := utils.ArenaToGrid(rect.MinX, rect.MinY, columns, rows)
		maxCol, minRow := utils.ArenaToGrid(rect.MaxX, rect.MaxY, columns, rows)
		for row := minRow; row <= maxRow; row++ {
			for col := minCol; col <= maxCol; col++ {
				x, y := utils.GridToArena(col, row, columns, rows)
				if inside == nil || inside(x, y) {
					pixels[row][col] = color
				}
			}
		}
	}

	for _, brick := range frame.Bricks {
		fill(utils.RectAround(brick.X, brick.Y, brick.HalfExtent, brick.HalfExtent), pixelOf(brick.Color), nil)
	}

	paddle := frame.Paddle
	fill(utils.RectAround(paddle.X, paddle.Y, paddle.Width/2, paddle.Height/2), pixelOf(paddle.Color), nil)

	// A ball always owns the cell under its centre, even when it is smaller than a cell.
	for _, ball := range frame.Balls {
		ball := ball
		col, row := utils.ArenaToGrid(ball.X, ball.Y, columns, rows)
		pixels[row][col] = pixelOf(ball.Color)
		fill(utils.RectAround(ball.X, ball.Y, ball.Radius, ball.Radius), pixelOf(ball.Color), func(x, y float32) bool {
			return math32.Hypot(x-ball.X, y-ball.Y) <= ball.Radius
		})
	}
	return pixels
}

// RenderToASCII converts pixels to colored ASCII, sampling resolution cells per row. Each cell
// is printed twice so the arena keeps its aspect ratio in a terminal.
func RenderToASCII(pixels [][]RGBPixel, resolution int) string {
	height := len(pixels)
	if height == 0 || resolution <= 0 {
		return ""
	}
	width := len(pixels[0])
	stepX, stepY := float32(width)/float32(resolution), float32(height)/float32(resolution)
	var ascii strings.Builder
	for y := float32(0); y < float32(height); y += stepY {
		for x := float32(0); x < float32(width); x += stepX {
			i := min(int(math32.Round(x)), width-1)
			j := min(int(math32.Round(y)), height-1)
			pixel := pixels[j][i]
			ansi := rgbToAnsi(pixel)
			char := string(grayToASCII(rgbToGray(pixel)))
			ascii.WriteString(ansi + char + "\033[0m")
			ascii.WriteString(ansi + char + "\033[0m")
		}
		ascii.WriteString("\n")
	}
	return ascii.String()
}

// RenderPlain is RenderToASCII without color escapes, one character per cell.
func RenderPlain(pixels [][]RGBPixel) string {
	var plain strings.Builder
	for _, row := range pixels {
		for _, pixel := range row {
			plain.WriteByte(grayToASCII(rgbToGray(pixel)))
		}
		plain.WriteString("\n")
	}
	return plain.String()
}

// HUD is the status line every surface shows.
func HUD(frame game.Frame) string {
	return fmt.Sprintf("Lives: %d  Balls: %d  Bricks: %d  Tick: %d", frame.Lives, len(frame.Balls), len(frame.Bricks), frame.Tick)
}
