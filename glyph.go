package shatter

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrNoSurface reports that no drawing surface could be obtained, either for
// the visible sequence or for off-surface glyph rasterization.
var ErrNoSurface = errors.New("shatter: no drawing surface")

// GlyphSampler rasterizes short strings off-surface and returns points on
// their visible ink.
type GlyphSampler struct {
	font *opentype.Font

	// Stride is the sampling grid step in pixels. Values below 1 mean 1.
	Stride int
	// Threshold is the coverage (0-255) a pixel must exceed to count as ink.
	Threshold uint8
}

// NewGlyphSampler parses TTF/OTF data for sampling.
func NewGlyphSampler(ttf []byte, stride int, threshold uint8) (*GlyphSampler, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("shatter: failed to parse font data: %w", err)
	}
	return &GlyphSampler{font: f, Stride: stride, Threshold: threshold}, nil
}

// monoBold is parsed on first use. Single-threaded, like the rest of the engine.
var monoBold *opentype.Font

func defaultFont() (*opentype.Font, error) {
	if monoBold != nil {
		return monoBold, nil
	}
	f, err := opentype.Parse(gomonobold.TTF)
	if err != nil {
		return nil, err
	}
	monoBold = f
	return f, nil
}

// DefaultGlyphSampler samples with Go Mono Bold.
func DefaultGlyphSampler(stride int, threshold uint8) (*GlyphSampler, error) {
	f, err := defaultFont()
	if err != nil {
		return nil, fmt.Errorf("shatter: failed to parse built-in font: %w", err)
	}
	return &GlyphSampler{font: f, Stride: stride, Threshold: threshold}, nil
}

// Sample draws text centered in a width×height alpha mask at fontSize pixels
// and returns the ink points found on the Stride grid, uniformly shuffled
// with rng.
//
// An empty string or non-positive font size yields no points. A missing
// surface (non-positive dimensions or no font) yields no points and an
// error wrapping ErrNoSurface.
func (g *GlyphSampler) Sample(text string, width, height int, fontSize float64, rng *rand.Rand) ([]Vec2, error) {
	if g == nil || g.font == nil || width <= 0 || height <= 0 {
		return nil, ErrNoSurface
	}
	if text == "" || fontSize <= 0 {
		return nil, nil
	}
	mask, err := g.rasterize(text, width, height, fontSize)
	if err != nil {
		return nil, err
	}

	stride := g.Stride
	if stride < 1 {
		stride = 1
	}

	var points []Vec2
	for y := 0; y < height; y += stride {
		row := mask.Pix[y*mask.Stride:]
		for x := 0; x < width; x += stride {
			if row[x] > g.Threshold {
				points = append(points, V(float64(x), float64(y)))
			}
		}
	}

	if rng != nil {
		rng.Shuffle(len(points), func(i, j int) {
			points[i], points[j] = points[j], points[i]
		})
	}
	return points, nil
}

// rasterize draws text centered in a fresh width×height coverage mask.
func (g *GlyphSampler) rasterize(text string, width, height int, fontSize float64) (*image.Alpha, error) {
	face, err := opentype.NewFace(g.font, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSurface, err)
	}
	defer face.Close()

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  textOrigin(face, text, V(float64(width)/2, float64(height)/2)),
	}
	d.DrawString(text)
	return mask, nil
}

// textOrigin returns the dot that puts the advance box of text centered
// horizontally on center and its ascent/descent box centered vertically.
func textOrigin(face font.Face, text string, center Vec2) fixed.Point26_6 {
	adv := font.MeasureString(face, text)
	m := face.Metrics()
	return fixed.Point26_6{
		X: fixed.Int26_6(center.X*64) - adv/2,
		Y: fixed.Int26_6(center.Y*64) + (m.Ascent-m.Descent)/2,
	}
}
