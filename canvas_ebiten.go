package shatter

import (
	"bytes"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomonobold"
)

// discSegments is the number of fan triangles used to approximate a disc.
const discSegments = 24

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// ensureWhitePixel returns a lazily-initialized white source for untextured
// triangles. Sampling the center of a 3x3 image avoids edge bleeding.
func ensureWhitePixel() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

var monoBoldSource *text.GoTextFaceSource

// EbitenCanvas draws onto an *ebiten.Image. Polygons and discs are built as
// white-pixel triangles with per-vertex color; text uses text/v2.
type EbitenCanvas struct {
	dst   *ebiten.Image
	verts []ebiten.Vertex
	inds  []uint32
	faces map[float64]*text.GoTextFace
}

// NewEbitenCanvas wraps dst. The canvas may be retargeted with SetTarget to
// reuse its vertex buffers across frames.
func NewEbitenCanvas(dst *ebiten.Image) *EbitenCanvas {
	return &EbitenCanvas{dst: dst}
}

// SetTarget changes the destination image.
func (c *EbitenCanvas) SetTarget(dst *ebiten.Image) {
	c.dst = dst
}

// Size implements Canvas.
func (c *EbitenCanvas) Size() (int, int) {
	b := c.dst.Bounds()
	return b.Dx(), b.Dy()
}

// Fill implements Canvas.
func (c *EbitenCanvas) Fill(col Color) {
	if col.A <= 0 {
		return
	}
	w, h := c.Size()
	c.FillRect(Rect{Width: float64(w), Height: float64(h)}, col)
}

// FillRect implements Canvas.
func (c *EbitenCanvas) FillRect(r Rect, col Color) {
	if col.A <= 0 {
		return
	}
	vector.DrawFilledRect(c.dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), col.toRGBA(), false)
}

// vertex returns a white-pixel vertex carrying a premultiplied color.
func vertex(x, y float64, col Color) ebiten.Vertex {
	a := float32(clamp01(col.A))
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1.5,
		SrcY:   1.5,
		ColorR: float32(col.R) * a,
		ColorG: float32(col.G) * a,
		ColorB: float32(col.B) * a,
		ColorA: a,
	}
}

// FillPolygon implements Canvas. The polygon is triangulated as a fan around
// its first vertex, so it must be convex.
func (c *EbitenCanvas) FillPolygon(pts []Vec2, col Color) {
	if len(pts) < 3 || col.A <= 0 {
		return
	}
	c.verts = c.verts[:0]
	c.inds = c.inds[:0]
	for _, p := range pts {
		c.verts = append(c.verts, vertex(p.X, p.Y, col))
	}
	for i := 1; i < len(pts)-1; i++ {
		c.inds = append(c.inds, 0, uint32(i), uint32(i+1))
	}
	c.flush()
}

// FillDisc implements Canvas.
func (c *EbitenCanvas) FillDisc(center Vec2, radius float64, inner, outer Color) {
	if radius <= 0 || (inner.A <= 0 && outer.A <= 0) {
		return
	}
	c.verts = c.verts[:0]
	c.inds = c.inds[:0]
	c.verts = append(c.verts, vertex(center.X, center.Y, inner))
	for i := 0; i <= discSegments; i++ {
		s, co := math.Sincos(2 * math.Pi * float64(i) / discSegments)
		c.verts = append(c.verts, vertex(center.X+co*radius, center.Y+s*radius, outer))
	}
	for i := uint32(1); i <= discSegments; i++ {
		c.inds = append(c.inds, 0, i, i+1)
	}
	c.flush()
}

func (c *EbitenCanvas) flush() {
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	c.dst.DrawTriangles32(c.verts, c.inds, ensureWhitePixel(), &op)
}

// DrawText implements Canvas.
func (c *EbitenCanvas) DrawText(s string, center Vec2, size float64, col Color) {
	if s == "" || size <= 0 || col.A <= 0 {
		return
	}
	face := c.face(size)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(center.X, center.Y)
	op.ColorScale.ScaleWithColor(col.toRGBA())
	text.Draw(c.dst, s, face, op)
}

func (c *EbitenCanvas) face(size float64) *text.GoTextFace {
	size = math.Round(size)
	if size < 1 {
		return nil
	}
	if f, ok := c.faces[size]; ok {
		return f
	}
	if monoBoldSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(gomonobold.TTF))
		if err != nil {
			log.Printf("shatter: failed to load built-in font: %v", err)
			return nil
		}
		monoBoldSource = src
	}
	if c.faces == nil {
		c.faces = make(map[float64]*text.GoTextFace)
	}
	f := &text.GoTextFace{Source: monoBoldSource, Size: size}
	c.faces[size] = f
	return f
}
