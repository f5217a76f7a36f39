package utils

import (
	"fmt"
	"math/rand"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Rand is the subset of *rand.Rand the simulation draws from.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand seeds a generator; a zero seed uses the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Color is an RGB triple with every component in [0, 1].
type Color struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
}

var (
	Red  = Color{R: 1}
	Grey = Color{R: 0.5, G: 0.5, B: 0.5}
)

// NewRandomColor picks a saturated, bright color from a random hue.
func NewRandomColor(rng Rand) Color {
	hue := rng.Float64() * 360
	saturation := 0.55 + 0.45*rng.Float64()
	value := 0.75 + 0.25*rng.Float64()
	return FromColorful(colorful.Hsv(hue, saturation, value))
}

func FromColorful(c colorful.Color) Color {
	c = c.Clamped()
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B)}
}

func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

// RGB255 scales the color to 8-bit channels.
func (c Color) RGB255() (uint8, uint8, uint8) {
	return c.Colorful().Clamped().RGB255()
}

func (c Color) Hex() string {
	return c.Colorful().Clamped().Hex()
}

func ParseHexColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return FromColorful(c), nil
}
