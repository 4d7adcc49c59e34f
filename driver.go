package shatter

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sequence is a frame-driven animation the Driver can schedule.
type Sequence interface {
	// Step advances one frame and reports whether the sequence is still
	// running.
	Step() bool
	// Draw renders the current frame.
	Draw(c Canvas)
	// Resize changes the logical surface size.
	Resize(width, height int)
	// Dispose stops the sequence without completing it.
	Dispose()
	// Done reports whether the sequence completed or was disposed.
	Done() bool
}

// Driver schedules a Sequence one frame at a time. It can be ticked by hand
// (tests, headless export) or handed to ebiten.RunGame.
//
// Resizes are queued and applied right before the next Step, so a frame
// never sees a half-updated size. After completion or Cancel the sequence
// is never stepped again.
type Driver struct {
	seq Sequence

	width, height int
	pendingW      int
	pendingH      int
	resizePending bool

	ticks    int
	canceled bool

	// ebiten.Game state.
	offscreen *ebiten.Image
	canvas    *EbitenCanvas
	fps       fpsOverlay

	// ShowFPS draws the FPS/TPS overlay in Draw.
	ShowFPS bool
	// ExitOnComplete makes Update return ebiten.Termination once the
	// sequence is done.
	ExitOnComplete bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// Keys maps keys to driver actions in windowed mode. Nil disables
	// keyboard handling.
	Keys map[ebiten.Key]KeyAction

	injectQueue     []ebiten.Key
	keyBuf          []ebiten.Key
	screenshotQueue []string
	debug           bool
	stats           frameStats
}

// NewDriver wraps seq, which must already be sized width×height.
func NewDriver(seq Sequence, width, height int) *Driver {
	return &Driver{
		seq:           seq,
		width:         width,
		height:        height,
		ScreenshotDir: "screenshots",
		Keys:          DefaultKeyBindings(),
	}
}

// Sequence returns the driven sequence.
func (d *Driver) Sequence() Sequence {
	return d.seq
}

// Size returns the size most recently applied to the sequence.
func (d *Driver) Size() (width, height int) {
	return d.width, d.height
}

// Ticks returns the number of frames stepped.
func (d *Driver) Ticks() int {
	return d.ticks
}

// Resize queues a size change for the next Tick. Later calls replace
// earlier ones. Non-positive sizes are ignored.
func (d *Driver) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	d.pendingW, d.pendingH = width, height
	d.resizePending = true
}

// Active reports whether the next Tick would step the sequence.
func (d *Driver) Active() bool {
	return !d.canceled && !d.seq.Done()
}

// Tick applies a pending resize and steps the sequence once. It returns
// false, without stepping, once the sequence is done or the driver has been
// canceled.
func (d *Driver) Tick() bool {
	if !d.Active() {
		return false
	}
	if d.resizePending {
		d.resizePending = false
		d.width, d.height = d.pendingW, d.pendingH
		d.seq.Resize(d.width, d.height)
	}
	var t0 time.Time
	if d.debug {
		t0 = time.Now()
	}
	running := d.seq.Step()
	d.ticks++
	if d.debug {
		d.stats.step = time.Since(t0)
	}
	return running
}

// Cancel disposes the sequence and stops scheduling. Safe to call more than
// once.
func (d *Driver) Cancel() {
	if d.canceled {
		return
	}
	d.canceled = true
	d.seq.Dispose()
}

// DrawTo renders the current frame onto c.
func (d *Driver) DrawTo(c Canvas) {
	d.seq.Draw(c)
}

// SetDebugMode enables per-frame timing and particle counts on stderr.
func (d *Driver) SetDebugMode(enabled bool) {
	d.debug = enabled
}

// Update implements ebiten.Game. A canceled driver always terminates; a
// completed one terminates only with ExitOnComplete.
func (d *Driver) Update() error {
	if d.Keys != nil {
		d.processInput()
	}
	d.Tick()
	if d.canceled || (d.ExitOnComplete && !d.Active()) {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game. The sequence renders into a persistent
// offscreen image, reallocated on resize, which is then copied to screen.
func (d *Driver) Draw(screen *ebiten.Image) {
	if d.offscreen == nil || d.offscreen.Bounds().Dx() != d.width || d.offscreen.Bounds().Dy() != d.height {
		if d.offscreen != nil {
			d.offscreen.Deallocate()
		}
		d.offscreen = ebiten.NewImage(max(d.width, 1), max(d.height, 1))
	}
	if d.canvas == nil {
		d.canvas = NewEbitenCanvas(d.offscreen)
	}
	d.canvas.SetTarget(d.offscreen)

	var t0 time.Time
	if d.debug {
		t0 = time.Now()
	}
	d.seq.Draw(d.canvas)
	screen.DrawImage(d.offscreen, nil)
	if d.debug {
		d.stats.draw = time.Since(t0)
		d.debugLog()
	}

	if d.ShowFPS {
		d.fps.draw(screen, 1/float64(ebiten.TPS()))
	}
	d.flushScreenshots(screen)
}

// Layout implements ebiten.Game. Outside size changes are queued as resizes.
func (d *Driver) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != d.width || outsideHeight != d.height {
		d.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// RunConfig configures Run.
type RunConfig struct {
	Title          string
	Width, Height  int
	Resizable      bool
	ShowFPS        bool
	ExitOnComplete bool
	Debug          bool
	ScreenshotDir  string
}

// Run opens a window and drives seq until the window closes or, with
// ExitOnComplete, until the sequence finishes.
func Run(seq Sequence, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("shatter: run: window size %dx%d: %w", cfg.Width, cfg.Height, ErrNoSurface)
	}
	d := NewDriver(seq, cfg.Width, cfg.Height)
	d.ShowFPS = cfg.ShowFPS
	d.ExitOnComplete = cfg.ExitOnComplete
	d.SetDebugMode(cfg.Debug)
	if cfg.ScreenshotDir != "" {
		d.ScreenshotDir = cfg.ScreenshotDir
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(d); err != nil {
		return fmt.Errorf("shatter: run: %w", err)
	}
	return nil
}
