package shatter

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"
)

const (
	// referenceFrame is the frame duration the depth speeds are tuned for.
	referenceFrame = 16670 * time.Microsecond
	cursorBlink    = 500 * time.Millisecond
)

// WarpParticle is a glyph flying toward the viewer. X and Y are world
// coordinates around the viewport center; Z is depth.
type WarpParticle struct {
	X, Y, Z float64
	Glyph   string
	Color   Color
}

// WarpOptions carries the host hooks of a Warp.
type WarpOptions struct {
	// OnComplete is called exactly once, CompleteAt after start. It is never
	// called after Dispose. May be nil.
	OnComplete func()
	Sink       EventSink
}

// Warp is the entry sequence: a field of glyphs rushes past, slows while a
// caption types itself out, then accelerates into a white reveal.
type Warp struct {
	cfg   WarpConfig
	rng   *rand.Rand
	phase phaseMachine[WarpPhase]

	timers    timerSet
	typewrite *timer

	particles []WarpParticle
	glyphs    []string
	colors    []Color

	width, height float64
	steps         int

	caption []rune
	typed   int

	captionFade fade
	revealFade  fade

	background Color
	primed     bool

	onComplete func()
	sink       EventSink

	inert    bool
	disposed bool
}

// NewWarp builds an entry sequence for a width×height surface and arms its
// phase timers. A non-positive size yields an inert sequence, or
// ErrNoSurface when cfg.StrictSurface is set.
func NewWarp(width, height int, cfg WarpConfig, opts WarpOptions) (*Warp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &Warp{
		cfg:        cfg,
		caption:    []rune(cfg.Caption),
		onComplete: opts.OnComplete,
		sink:       opts.Sink,
	}
	w.phase = newPhaseMachine(WarpPhaseComplete, w.enterPhase)

	if width <= 0 || height <= 0 {
		if cfg.StrictSurface {
			return nil, fmt.Errorf("shatter: warp %dx%d: %w", width, height, ErrNoSurface)
		}
		w.inert = true
		return w, nil
	}
	w.width, w.height = float64(width), float64(height)
	w.rng = newRand(cfg.Seed)
	w.colors, _ = ParsePalette(cfg.Colors)
	w.background = MustParseColor(cfg.Background)
	for _, r := range cfg.Glyphs {
		w.glyphs = append(w.glyphs, string(r))
	}

	w.particles = make([]WarpParticle, cfg.Particles)
	for i := range w.particles {
		p := &w.particles[i]
		w.scatter(p)
		p.Z = w.rng.Float64() * cfg.Depth.Far
		p.Glyph = w.glyphs[w.rng.IntN(len(w.glyphs))]
		p.Color = w.colors[w.rng.IntN(len(w.colors))]
	}

	w.timers.After(cfg.FormulaAt, func() { w.phase.advance(WarpPhaseFormula) })
	w.timers.After(cfg.RevealAt, func() { w.phase.advance(WarpPhaseReveal) })
	w.timers.After(cfg.CompleteAt, func() { w.phase.advance(WarpPhaseComplete) })
	return w, nil
}

// scatter places p uniformly over Spread times the viewport around center.
func (w *Warp) scatter(p *WarpParticle) {
	s := w.cfg.Depth.Spread
	p.X = signed(w.rng, w.width*s)
	p.Y = signed(w.rng, w.height*s)
}

func (w *Warp) enterPhase(_, to WarpPhase) {
	switch to {
	case WarpPhaseFormula:
		w.typed = 0
		w.captionFade.start(0, 1, w.cfg.CaptionFade, ease.OutQuad)
		w.typewrite = w.timers.Every(w.cfg.TypeInterval, w.typeNext)
	case WarpPhaseReveal:
		w.captionFade.start(w.captionFade.Value(), 0, w.cfg.CaptionFade, ease.OutQuad)
		w.revealFade.start(0, 1, w.cfg.RevealFade, ease.InQuad)
	case WarpPhaseComplete:
		w.timers.CancelAll()
	}
	emit(w.sink, SequenceEvent{
		Type:     EventPhaseChanged,
		Sequence: "warp",
		Phase:    to.String(),
		Frame:    w.steps,
	})
	if to == WarpPhaseComplete {
		if w.onComplete != nil {
			w.onComplete()
		}
		emit(w.sink, SequenceEvent{
			Type:     EventComplete,
			Sequence: "warp",
			Phase:    to.String(),
			Frame:    w.steps,
		})
	}
}

// typeNext reveals one more caption character.
func (w *Warp) typeNext() {
	if w.typed >= len(w.caption) {
		w.typewrite.Stop()
		return
	}
	w.typed++
	emit(w.sink, SequenceEvent{
		Type:     EventCaption,
		Sequence: "warp",
		Phase:    w.phase.current.String(),
		Frame:    w.steps,
		Caption:  w.Caption(),
	})
}

// Step advances by one frame at the configured tick rate.
func (w *Warp) Step() bool {
	return w.Advance(time.Second / time.Duration(w.cfg.TickRate))
}

// Advance moves the sequence forward by dt of wall-clock time: timers fire
// first, then every particle moves toward the viewer. It returns false once
// the sequence has completed or been disposed. A non-positive dt changes
// nothing.
func (w *Warp) Advance(dt time.Duration) bool {
	if w.disposed || w.phase.done() {
		return false
	}
	if w.inert || dt <= 0 {
		return true
	}
	w.steps++

	w.timers.Advance(dt)
	if w.phase.done() {
		return false
	}

	d := &w.cfg.Depth
	delta := math.Min(float64(dt)/float64(referenceFrame), d.MaxDelta)
	dz := w.speed() * delta
	for i := range w.particles {
		p := &w.particles[i]
		p.Z -= dz
		if p.Z <= d.Near {
			p.Z = d.Far
			w.scatter(p)
		}
	}

	w.captionFade.update(dt)
	w.revealFade.update(dt)
	return true
}

// speed returns the depth units removed per reference frame in the current
// phase.
func (w *Warp) speed() float64 {
	d := &w.cfg.Depth
	switch w.phase.current {
	case WarpPhaseFormula:
		return d.FormulaSpeed
	case WarpPhaseReveal:
		return d.RevealSpeed
	default:
		return d.WarpSpeed
	}
}

// Project maps p onto the surface. visible is false when the particle is
// past the near plane, outside the viewport plus margin or too small to
// draw; such particles keep moving regardless.
func (w *Warp) Project(p *WarpParticle) (pos Vec2, size, alpha float64, visible bool) {
	d := &w.cfg.Depth
	if p.Z <= d.Near {
		return Vec2{}, 0, 0, false
	}
	k := d.Focal / p.Z
	pos = V(p.X*k+w.width/2, p.Y*k+w.height/2)
	depth := 1 - p.Z/d.Far
	size = depth * d.MaxSize
	alpha = clamp01(depth)

	m := d.Margin
	inside := pos.X >= -m && pos.X <= w.width+m && pos.Y >= -m && pos.Y <= w.height+m
	return pos, size, alpha, inside && size > d.MinSize
}

// Draw renders the current frame onto c.
func (w *Warp) Draw(c Canvas) {
	if c == nil || w.inert || w.disposed || w.phase.done() {
		return
	}
	drawWarp(c, w)
}

// Resize changes the projection center and visibility bounds. Non-positive
// sizes are ignored.
func (w *Warp) Resize(width, height int) {
	if width <= 0 || height <= 0 || w.inert {
		return
	}
	w.width, w.height = float64(width), float64(height)
	w.primed = false
}

// Dispose cancels every pending timer. The completion callback will not fire
// afterwards. Calling Dispose more than once is a no-op.
func (w *Warp) Dispose() {
	if w.disposed {
		return
	}
	w.disposed = true
	w.timers.CancelAll()
}

// Done reports whether the sequence has completed or been disposed.
func (w *Warp) Done() bool {
	return w.disposed || w.phase.done()
}

// Completed reports whether the sequence reached WarpPhaseComplete.
func (w *Warp) Completed() bool {
	return w.phase.done()
}

// Inert reports whether the sequence was built without a usable surface.
func (w *Warp) Inert() bool {
	return w.inert
}

// Phase returns the current phase.
func (w *Warp) Phase() WarpPhase {
	return w.phase.current
}

// Elapsed returns the virtual time since start.
func (w *Warp) Elapsed() time.Duration {
	return w.timers.Now()
}

// Caption returns the currently visible caption prefix.
func (w *Warp) Caption() string {
	return string(w.caption[:w.typed])
}

// CaptionAlpha returns the caption opacity.
func (w *Warp) CaptionAlpha() float64 {
	return w.captionFade.Value()
}

// RevealAlpha returns the white overlay opacity.
func (w *Warp) RevealAlpha() float64 {
	return w.revealFade.Value()
}

// Particles returns the live particle slice. Callers must not retain it
// across Advance calls.
func (w *Warp) Particles() []WarpParticle {
	return w.particles
}

// PendingTimers returns the number of armed phase and typewriter timers.
func (w *Warp) PendingTimers() int {
	return w.timers.Pending()
}
