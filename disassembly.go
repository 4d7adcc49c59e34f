package shatter

import (
	"fmt"
	"log"
	"math"
)

// DisassemblyOptions carries the host hooks of a Disassembly.
type DisassemblyOptions struct {
	// OnComplete is called exactly once when the sequence finishes. It is
	// never called after Dispose. May be nil.
	OnComplete func()
	// Sink receives phase and completion events. May be nil.
	Sink EventSink
	// Sampler overrides the built-in Go Mono Bold glyph sampler.
	Sampler *GlyphSampler
}

// Disassembly is the explode → pause → reconstruct sequence: the viewport
// shatters into shards that fall, bounce and settle, then fly back together
// to spell the configured text while the leftovers orbit the center.
type Disassembly struct {
	cfg      DisassemblyConfig
	schedule disassemblySchedule
	phase    phaseMachine[DisassemblyPhase]
	spawn    spawner
	store    Store
	w        world

	width, height float64
	frame         int

	background Color
	flashTint  Color
	smokeShade Color

	onComplete func()
	sink       EventSink

	inert    bool
	disposed bool
}

// NewDisassembly builds a sequence for a width×height surface and performs
// the bulk spawn. A non-positive size yields an inert sequence, or
// ErrNoSurface when cfg.StrictSurface is set.
func NewDisassembly(width, height int, cfg DisassemblyConfig, opts DisassemblyOptions) (*Disassembly, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Disassembly{
		cfg:        cfg,
		schedule:   newDisassemblySchedule(cfg),
		onComplete: opts.OnComplete,
		sink:       opts.Sink,
	}
	d.phase = newPhaseMachine(PhaseComplete, d.enterPhase)

	if width <= 0 || height <= 0 {
		if cfg.StrictSurface {
			return nil, fmt.Errorf("shatter: disassembly %dx%d: %w", width, height, ErrNoSurface)
		}
		d.inert = true
		return d, nil
	}
	d.width, d.height = float64(width), float64(height)

	// Colors were validated above.
	palette, _ := ParsePalette(cfg.Shards.Palette)
	smoke, _ := ParsePalette(cfg.Smoke.Colors)
	d.background = MustParseColor(cfg.Background)
	d.flashTint = MustParseColor(cfg.Flash.Tint)
	d.smokeShade = MustParseColor(cfg.Smoke.Shade)

	rng := newRand(cfg.Seed)
	d.spawn = spawner{
		cfg:     &d.cfg,
		rng:     rng,
		palette: palette,
		smoke:   smoke,
		white:   MustParseColor(cfg.Sparks.Color),
	}
	d.w = world{
		shards:    &d.cfg.Shards,
		rc:        &d.cfg.Reconstruct,
		highlight: MustParseColor(cfg.Reconstruct.Highlight),
		ambient:   MustParseColor(cfg.Reconstruct.AmbientColor),
	}

	points, err := d.sampleText(width, height, opts.Sampler)
	if err != nil {
		if cfg.StrictSurface {
			return nil, err
		}
		log.Printf("shatter: glyph sampling failed, reconstructing without text: %v", err)
	}

	d.store = newStore(cfg.Cols*cfg.Rows + 1 + cfg.Sparks.Count + cfg.Smoke.EndFrame/cfg.Smoke.Interval)
	d.spawn.populate(&d.store, d.width, d.height, points)
	return d, nil
}

func (d *Disassembly) sampleText(width, height int, sampler *GlyphSampler) ([]Vec2, error) {
	tc := d.cfg.Text
	if tc.Content == "" {
		return nil, nil
	}
	if sampler == nil {
		var err error
		sampler, err = DefaultGlyphSampler(tc.Stride, tc.Threshold)
		if err != nil {
			return nil, err
		}
	}
	size := math.Min(float64(width), tc.FontWidthCap) * tc.FontScale
	return sampler.Sample(tc.Content, width, height, size, d.spawn.rng)
}

func (d *Disassembly) enterPhase(_, to DisassemblyPhase) {
	if to == PhaseReconstruct {
		for i := range d.store.particles {
			if d.store.particles[i].Kind == KindShard {
				d.store.particles[i].Grounded = false
			}
		}
	}
	emit(d.sink, SequenceEvent{
		Type:     EventPhaseChanged,
		Sequence: "disassembly",
		Phase:    to.String(),
		Frame:    d.frame,
	})
	if to == PhaseComplete {
		if d.onComplete != nil {
			d.onComplete()
		}
		emit(d.sink, SequenceEvent{
			Type:     EventComplete,
			Sequence: "disassembly",
			Phase:    to.String(),
			Frame:    d.frame,
		})
	}
}

// Step advances one frame: phase evaluation, smoke emission, then physics.
// It returns false once the sequence has completed or been disposed. An
// inert sequence always returns true and changes nothing.
func (d *Disassembly) Step() bool {
	if d.disposed || d.phase.done() {
		return false
	}
	if d.inert {
		return true
	}

	d.frame++
	d.phase.advance(d.schedule.next(d.phase.current, d.frame))
	if d.phase.done() {
		return false
	}

	if d.phase.current == PhaseExplode && d.spawn.emitsSmoke(d.frame) {
		d.spawn.emitSmoke(&d.store, d.width)
	}

	d.w.width, d.w.height = d.width, d.height
	d.w.frame = d.frame
	d.w.phase = d.phase.current
	integrate(&d.store, &d.w)
	return true
}

// Draw renders the current frame onto c. Nothing is drawn for an inert,
// completed or disposed sequence, or for a nil canvas.
func (d *Disassembly) Draw(c Canvas) {
	if c == nil || d.inert || d.disposed || d.phase.done() {
		return
	}
	drawDisassembly(c, d)
}

// Resize changes the logical surface size used by collisions, the orbit
// center, the smoke origin and the flash extent. Particle positions and the
// frame counter are left alone. Non-positive sizes are ignored.
func (d *Disassembly) Resize(width, height int) {
	if width <= 0 || height <= 0 || d.inert {
		return
	}
	d.width, d.height = float64(width), float64(height)
}

// Dispose stops the sequence. The completion callback will not fire
// afterwards. Calling Dispose more than once is a no-op.
func (d *Disassembly) Dispose() {
	d.disposed = true
}

// Done reports whether the sequence has completed or been disposed.
func (d *Disassembly) Done() bool {
	return d.disposed || d.phase.done()
}

// Completed reports whether the sequence reached PhaseComplete.
func (d *Disassembly) Completed() bool {
	return d.phase.done()
}

// Inert reports whether the sequence was built without a usable surface.
func (d *Disassembly) Inert() bool {
	return d.inert
}

// Phase returns the current phase.
func (d *Disassembly) Phase() DisassemblyPhase {
	return d.phase.current
}

// Frame returns the number of frames stepped so far.
func (d *Disassembly) Frame() int {
	return d.frame
}

// Size returns the logical surface size.
func (d *Disassembly) Size() (width, height float64) {
	return d.width, d.height
}

// Particles exposes the particle store for inspection.
func (d *Disassembly) Particles() *Store {
	return &d.store
}

// Progress returns the reconstruct progress in [0, 1]. It is zero before
// reconstruction starts.
func (d *Disassembly) Progress() float64 {
	if d.phase.current < PhaseReconstruct {
		return 0
	}
	return d.schedule.progress(d.frame)
}

// FinalFlash returns the alpha of the terminal white overlay.
func (d *Disassembly) FinalFlash() float64 {
	if d.phase.current != PhaseReconstruct {
		return 0
	}
	rc := d.cfg.Reconstruct
	p := d.Progress()
	if p <= rc.FinalFlashStart {
		return 0
	}
	return clamp01((p - rc.FinalFlashStart) * rc.FinalFlashGain)
}
