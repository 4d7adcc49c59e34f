package shatter

import (
	"math"
	"math/rand/v2"
	"time"

	ebimath "github.com/edwinsyarief/ebi-math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a Canvas submits the color.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is full-opacity white, used for flashes and highlighted shards.
var ColorWhite = Color{1, 1, 1, 1}

// WithAlpha returns c with its alpha replaced by a, clamped to [0, 1].
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// Scale returns c with its alpha multiplied by f.
func (c Color) Scale(f float64) Color {
	c.A = clamp01(c.A * f)
	return c
}

// Lerp interpolates between c and o by t in straight (non-premultiplied) space.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: lerp(c.R, o.R, t),
		G: lerp(c.G, o.G, t),
		B: lerp(c.B, o.B, t),
		A: lerp(c.A, o.A, t),
	}
}

// toRGBA converts a Color to a color.RGBA-compatible value (premultiplied).
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image fills.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

// Vec2 is a 2D vector used for positions, glyph points and polygon vertices.
type Vec2 = ebimath.Vector

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return ebimath.V(x, y)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Range is a general-purpose min/max range.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Random returns a random float64 in [Min, Max).
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// newRand returns a PCG-backed generator. A zero seed draws one from the clock.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// signed returns a uniform value in [-span/2, span/2).
func signed(rng *rand.Rand, span float64) float64 {
	return (rng.Float64() - 0.5) * span
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// rotate returns (x, y) rotated by angle radians around the origin and then
// translated by (tx, ty).
func rotate(x, y, angle, tx, ty float64) Vec2 {
	s, c := math.Sincos(angle)
	return V(x*c-y*s+tx, x*s+y*c+ty)
}
