package shatter

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	xvector "golang.org/x/image/vector"
)

// Canvas is the drawing surface the renderer targets. Colors are straight
// alpha; every operation composites source-over. Coordinates are pixels with
// the origin at the top-left.
type Canvas interface {
	// Size returns the surface size in pixels.
	Size() (width, height int)
	// Fill composites c over the whole surface.
	Fill(c Color)
	// FillRect composites c over r.
	FillRect(r Rect, c Color)
	// FillPolygon fills the closed polygon pts (nonzero winding).
	FillPolygon(pts []Vec2, c Color)
	// FillDisc draws a disc with a radial gradient from inner at the center
	// to outer at the rim.
	FillDisc(center Vec2, radius float64, inner, outer Color)
	// DrawText draws s in Go Mono Bold at size pixels, centered on center.
	DrawText(s string, center Vec2, size float64, c Color)
}

// ImageCanvas is a CPU Canvas over an *image.RGBA. It needs no graphics
// context and is used for headless export and tests.
type ImageCanvas struct {
	img    *image.RGBA
	raster *xvector.Rasterizer
	faces  map[float64]font.Face
}

// NewImageCanvas allocates a width×height transparent canvas.
func NewImageCanvas(width, height int) *ImageCanvas {
	return WrapImage(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// WrapImage draws onto an existing image. The image's bounds must start at
// the origin.
func WrapImage(img *image.RGBA) *ImageCanvas {
	return &ImageCanvas{img: img}
}

// Image returns the backing image.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

// Size implements Canvas.
func (c *ImageCanvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear resets every pixel to transparent black.
func (c *ImageCanvas) Clear() {
	clear(c.img.Pix)
}

// Fill implements Canvas.
func (c *ImageCanvas) Fill(col Color) {
	if col.A <= 0 {
		return
	}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col.toRGBA()), image.Point{}, draw.Over)
}

// FillRect implements Canvas.
func (c *ImageCanvas) FillRect(r Rect, col Color) {
	if col.A <= 0 {
		return
	}
	rect := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	).Intersect(c.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(c.img, rect, image.NewUniform(col.toRGBA()), image.Point{}, draw.Over)
}

// FillPolygon implements Canvas.
func (c *ImageCanvas) FillPolygon(pts []Vec2, col Color) {
	if len(pts) < 3 || col.A <= 0 {
		return
	}
	w, h := c.Size()
	if c.raster == nil {
		c.raster = xvector.NewRasterizer(w, h)
	} else {
		c.raster.Reset(w, h)
	}
	r := c.raster
	r.DrawOp = draw.Over
	r.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		r.LineTo(float32(p.X), float32(p.Y))
	}
	r.ClosePath()
	r.Draw(c.img, c.img.Bounds(), image.NewUniform(col.toRGBA()), image.Point{})
}

// FillDisc implements Canvas.
func (c *ImageCanvas) FillDisc(center Vec2, radius float64, inner, outer Color) {
	if radius <= 0 || (inner.A <= 0 && outer.A <= 0) {
		return
	}
	box := image.Rect(
		int(math.Floor(center.X-radius)), int(math.Floor(center.Y-radius)),
		int(math.Ceil(center.X+radius)), int(math.Ceil(center.Y+radius)),
	).Intersect(c.img.Bounds())
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			d := math.Hypot(float64(x)+0.5-center.X, float64(y)+0.5-center.Y)
			if d > radius {
				continue
			}
			c.blend(x, y, inner.Lerp(outer, d/radius))
		}
	}
}

// blend composites a straight-alpha color over one pixel.
func (c *ImageCanvas) blend(x, y int, col Color) {
	a := clamp01(col.A)
	if a <= 0 {
		return
	}
	i := c.img.PixOffset(x, y)
	px := c.img.Pix[i : i+4 : i+4]
	inv := 1 - a
	px[0] = uint8(clamp01(col.R*a+float64(px[0])/255*inv)*255 + 0.5)
	px[1] = uint8(clamp01(col.G*a+float64(px[1])/255*inv)*255 + 0.5)
	px[2] = uint8(clamp01(col.B*a+float64(px[2])/255*inv)*255 + 0.5)
	px[3] = uint8(clamp01(a+float64(px[3])/255*inv)*255 + 0.5)
}

// DrawText implements Canvas. Text is silently skipped if the built-in font
// cannot be loaded.
func (c *ImageCanvas) DrawText(s string, center Vec2, size float64, col Color) {
	if s == "" || size <= 0 || col.A <= 0 {
		return
	}
	face := c.face(size)
	if face == nil {
		return
	}
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col.toRGBA()),
		Face: face,
		Dot:  textOrigin(face, s, center),
	}
	d.DrawString(s)
}

func (c *ImageCanvas) face(size float64) font.Face {
	size = math.Round(size)
	if size < 1 {
		return nil
	}
	if f, ok := c.faces[size]; ok {
		return f
	}
	f, err := defaultFont()
	if err != nil {
		return nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil
	}
	if c.faces == nil {
		c.faces = make(map[float64]font.Face)
	}
	c.faces[size] = face
	return face
}
