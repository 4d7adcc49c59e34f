// Package term plays shatter sequences in a terminal through tcell.
//
// A [Canvas] maps a virtual pixel surface onto character cells. Each cell
// shows two vertically stacked pixels with the upper half block, so a
// terminal of c×r cells becomes a (c)×(2r) grid of sample points spread
// over a (c·CellWidth)×(r·CellHeight) pixel surface.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/shatter"
)

const (
	// DefaultCellWidth and DefaultCellHeight are the virtual pixels covered by
	// one terminal cell.
	DefaultCellWidth  = 8
	DefaultCellHeight = 16

	upperHalf = '▀'
)

// textCell is a glyph overlaid on a cell for the current frame.
type textCell struct {
	r   rune
	col colorful.Color
}

// Canvas is a shatter.Canvas backed by a tcell.Screen.
type Canvas struct {
	screen tcell.Screen

	cellW, cellH int
	cols, rows   int

	// px holds cols × 2·rows sample colors, row-major.
	px   []colorful.Color
	text map[int]textCell
}

// NewCanvas sizes a canvas to the screen's current cell grid. Non-positive
// cell sizes fall back to the defaults.
func NewCanvas(screen tcell.Screen, cellW, cellH int) *Canvas {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	c := &Canvas{screen: screen, cellW: cellW, cellH: cellH}
	c.Resize()
	return c
}

// Resize re-reads the screen size and clears the canvas to black.
func (c *Canvas) Resize() {
	cols, rows := c.screen.Size()
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.px = make([]colorful.Color, c.cols*c.rows*2)
	c.text = make(map[int]textCell)
}

// Cells returns the canvas size in terminal cells.
func (c *Canvas) Cells() (cols, rows int) {
	return c.cols, c.rows
}

// Size implements shatter.Canvas.
func (c *Canvas) Size() (int, int) {
	return c.cols * c.cellW, c.rows * c.cellH
}

// Sample returns the blended color of sample point (x, y), where y counts
// half cells.
func (c *Canvas) Sample(x, y int) colorful.Color {
	return c.px[y*c.cols+x]
}

// center returns the virtual pixel position of sample (x, y).
func (c *Canvas) center(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * float64(c.cellW), (float64(y) + 0.5) * float64(c.cellH) / 2
}

// bounds returns the sample index ranges whose centers may fall inside the
// given pixel box.
func (c *Canvas) bounds(x0, y0, x1, y1 float64) (sx0, sy0, sx1, sy1 int) {
	sw, sh := float64(c.cellW), float64(c.cellH)/2
	sx0 = max(0, int(math.Floor(x0/sw-0.5)))
	sy0 = max(0, int(math.Floor(y0/sh-0.5)))
	sx1 = min(c.cols, int(math.Ceil(x1/sw+0.5)))
	sy1 = min(c.rows*2, int(math.Ceil(y1/sh+0.5)))
	return
}

func (c *Canvas) blend(x, y int, col shatter.Color) {
	a := math.Max(0, math.Min(1, col.A))
	if a <= 0 {
		return
	}
	i := y*c.cols + x
	c.px[i] = c.px[i].BlendRgb(colorful.Color{R: col.R, G: col.G, B: col.B}, a).Clamped()
}

// Fill implements shatter.Canvas.
func (c *Canvas) Fill(col shatter.Color) {
	if col.A <= 0 {
		return
	}
	for y := 0; y < c.rows*2; y++ {
		for x := 0; x < c.cols; x++ {
			c.blend(x, y, col)
		}
	}
}

// FillRect implements shatter.Canvas.
func (c *Canvas) FillRect(r shatter.Rect, col shatter.Color) {
	if col.A <= 0 {
		return
	}
	sx0, sy0, sx1, sy1 := c.bounds(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
	for y := sy0; y < sy1; y++ {
		for x := sx0; x < sx1; x++ {
			if px, py := c.center(x, y); r.Contains(px, py) {
				c.blend(x, y, col)
			}
		}
	}
}

// FillPolygon implements shatter.Canvas.
func (c *Canvas) FillPolygon(pts []shatter.Vec2, col shatter.Color) {
	if len(pts) < 3 || col.A <= 0 {
		return
	}
	minX, minY, maxX, maxY := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	sx0, sy0, sx1, sy1 := c.bounds(minX, minY, maxX, maxY)
	for y := sy0; y < sy1; y++ {
		for x := sx0; x < sx1; x++ {
			if px, py := c.center(x, y); inside(pts, px, py) {
				c.blend(x, y, col)
			}
		}
	}
}

// inside reports whether (x, y) lies inside pts by the nonzero winding rule.
func inside(pts []shatter.Vec2, x, y float64) bool {
	wind := 0
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		cross := (b.X-a.X)*(y-a.Y) - (x-a.X)*(b.Y-a.Y)
		switch {
		case a.Y <= y && b.Y > y && cross > 0:
			wind++
		case a.Y > y && b.Y <= y && cross < 0:
			wind--
		}
	}
	return wind != 0
}

// FillDisc implements shatter.Canvas.
func (c *Canvas) FillDisc(center shatter.Vec2, radius float64, inner, outer shatter.Color) {
	if radius <= 0 || (inner.A <= 0 && outer.A <= 0) {
		return
	}
	sx0, sy0, sx1, sy1 := c.bounds(center.X-radius, center.Y-radius, center.X+radius, center.Y+radius)
	for y := sy0; y < sy1; y++ {
		for x := sx0; x < sx1; x++ {
			px, py := c.center(x, y)
			d := math.Hypot(px-center.X, py-center.Y)
			if d <= radius {
				c.blend(x, y, inner.Lerp(outer, d/radius))
			}
		}
	}
}

// DrawText implements shatter.Canvas. Runes are laid out on Go Mono advances
// and snapped to cells; they last until the next Present.
func (c *Canvas) DrawText(s string, center shatter.Vec2, size float64, col shatter.Color) {
	if s == "" || size <= 0 || col.A <= 0 {
		return
	}
	runes := []rune(s)
	adv := size * 0.6
	start := center.X - adv*float64(len(runes)-1)/2
	row := int(center.Y / float64(c.cellH))
	if row < 0 || row >= c.rows {
		return
	}
	for i, r := range runes {
		col0 := int((start + adv*float64(i)) / float64(c.cellW))
		if col0 < 0 || col0 >= c.cols || r == ' ' {
			continue
		}
		idx := row*c.cols + col0
		bg := c.cellBackground(col0, row)
		c.text[idx] = textCell{r: r, col: bg.BlendRgb(colorful.Color{R: col.R, G: col.G, B: col.B}, math.Min(1, col.A)).Clamped()}
	}
}

func (c *Canvas) cellBackground(x, row int) colorful.Color {
	top, bottom := c.px[(2*row)*c.cols+x], c.px[(2*row+1)*c.cols+x]
	return top.BlendRgb(bottom, 0.5)
}

// Rune returns the glyph queued for cell (x, row), if any.
func (c *Canvas) Rune(x, row int) (rune, bool) {
	t, ok := c.text[row*c.cols+x]
	return t.r, ok
}

func toTcell(col colorful.Color) tcell.Color {
	r, g, b := col.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Present writes the frame to the screen and shows it. Text overlays are
// consumed; pixel samples persist.
func (c *Canvas) Present() {
	for row := 0; row < c.rows; row++ {
		for x := 0; x < c.cols; x++ {
			idx := row*c.cols + x
			if t, ok := c.text[idx]; ok {
				style := tcell.StyleDefault.Foreground(toTcell(t.col)).Background(toTcell(c.cellBackground(x, row)))
				c.screen.SetContent(x, row, t.r, nil, style)
				continue
			}
			top, bottom := c.px[(2*row)*c.cols+x], c.px[(2*row+1)*c.cols+x]
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			c.screen.SetContent(x, row, upperHalf, nil, style)
		}
	}
	clear(c.text)
	c.screen.Show()
}
