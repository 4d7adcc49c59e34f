package shatter

import "math"

// goMonoAdvance is the advance width of every Go Mono glyph, in ems.
const goMonoAdvance = 0.6

var (
	captionColor = MustParseColor("#ede9fe")
	cursorColor  = MustParseColor("#34d399")
	haloColor    = MustParseColor("#8b5cf6")
)

// drawDisassembly paints one disassembly frame: background, live particles
// in insertion order, then the terminal white overlay.
func drawDisassembly(c Canvas, d *Disassembly) {
	c.Fill(d.background)
	reconstructing := d.phase.current == PhaseReconstruct
	flash := &d.cfg.Flash

	var quad [4]Vec2
	for i := range d.store.particles {
		p := &d.store.particles[i]
		if p.Inert() {
			continue
		}
		a := clamp01(p.Alpha)
		switch p.Kind {
		case KindFlash:
			c.Fill(p.Color.WithAlpha(a))
			if d.phase.current == PhaseExplode && a < flash.TintBelow {
				c.Fill(d.flashTint.WithAlpha(a * flash.TintStrength))
			}

		case KindShard:
			if reconstructing && p.isText {
				r := math.Max(p.extent(), p.W) * d.cfg.Reconstruct.Glow
				c.FillDisc(V(p.X, p.Y), r, d.w.highlight.WithAlpha(0.3*a), d.w.highlight.WithAlpha(0))
			}
			col := p.Color.WithAlpha(a)
			if p.IsRect() {
				hw, hh := p.W/2, p.H/2
				quad[0] = rotate(-hw, -hh, p.Rotation, p.X, p.Y)
				quad[1] = rotate(hw, -hh, p.Rotation, p.X, p.Y)
				quad[2] = rotate(hw, hh, p.Rotation, p.X, p.Y)
				quad[3] = rotate(-hw, hh, p.Rotation, p.X, p.Y)
				c.FillPolygon(quad[:4], col)
			} else {
				s := p.Size
				quad[0] = rotate(-s, -s, p.Rotation, p.X, p.Y)
				quad[1] = rotate(s, 0, p.Rotation, p.X, p.Y)
				quad[2] = rotate(0, s, p.Rotation, p.X, p.Y)
				c.FillPolygon(quad[:3], col)
			}

		case KindSmoke:
			// The gradient stop and the layer opacity both carry alpha.
			c.FillDisc(V(p.X, p.Y), p.Size, d.smokeShade.WithAlpha(a*a), d.smokeShade.WithAlpha(0))

		case KindSpark:
			center := V(p.X, p.Y)
			c.FillDisc(center, p.Size*d.cfg.Sparks.Glow, p.Color.WithAlpha(0.5*a), p.Color.WithAlpha(0))
			c.FillDisc(center, p.Size, p.Color.WithAlpha(a), p.Color.WithAlpha(a))
		}
	}

	if f := d.FinalFlash(); f > 0 {
		c.Fill(ColorWhite.WithAlpha(f))
	}
}

// drawWarp paints one entry frame over the previous one. The surface is
// expected to persist between frames so the translucent wash leaves trails.
func drawWarp(c Canvas, w *Warp) {
	switch {
	case !w.primed:
		c.Fill(w.background)
		w.primed = true
	case w.phase.current == WarpPhaseReveal:
		c.Fill(ColorWhite.WithAlpha(w.cfg.RevealWash))
	default:
		c.Fill(w.background.WithAlpha(w.cfg.TrailAlpha))
	}

	for i := range w.particles {
		p := &w.particles[i]
		pos, size, alpha, ok := w.Project(p)
		if !ok {
			continue
		}
		c.DrawText(p.Glyph, pos, size, p.Color.WithAlpha(alpha))
	}

	if a := w.CaptionAlpha(); a > 0 {
		drawCaption(c, w, a)
	}
	if a := w.RevealAlpha(); a > 0 {
		c.Fill(ColorWhite.WithAlpha(a))
	}
}

// drawCaption draws the typed caption with a halo and a blinking cursor,
// centered on the surface.
func drawCaption(c Canvas, w *Warp, alpha float64) {
	size := w.cfg.CaptionSize
	adv := size * goMonoAdvance
	typed := w.Caption()
	n := float64(len([]rune(typed)))
	cx, cy := w.width/2, w.height/2

	halo := (n+1)*adv/2 + size
	c.FillDisc(V(cx, cy), halo, haloColor.WithAlpha(0.2*alpha), haloColor.WithAlpha(0))

	// Caption and cursor share one centered line of n+1 cells.
	if typed != "" {
		c.DrawText(typed, V(cx-adv/2, cy), size, captionColor.WithAlpha(alpha))
	}
	if (w.timers.Now()/cursorBlink)%2 == 0 {
		c.DrawText("_", V(cx+n*adv/2, cy), size, cursorColor.WithAlpha(alpha))
	}
}
