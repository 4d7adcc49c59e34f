package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/shatter"
)

// Options configures Run.
type Options struct {
	// FPS is the frame rate. Zero means 60.
	FPS int
	// OnFrame, if set, is called after every presented frame.
	OnFrame func(d *shatter.Driver)
}

// Run plays seq on canvas until the sequence finishes, the user presses
// Esc, q or Ctrl-C, or ctx is done. seq must be sized to canvas.Size().
// Terminal resizes are forwarded to the sequence before the next frame.
//
// The screen must already be initialized; Run never finalizes it. While Run
// is active it owns the screen's event stream, and it stops reading events
// before it returns, so Run may be called again on the same screen. Events
// still queued at that point are discarded. Quitting and cancellation
// dispose the sequence. Run returns ctx.Err() when ctx ends first and nil
// otherwise.
func Run(ctx context.Context, seq shatter.Sequence, canvas *Canvas, opts Options) error {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	d := shatter.NewDriver(seq, canvas.Size())

	evCh := make(chan tcell.Event, 8)
	quit := make(chan struct{})
	go canvas.screen.ChannelEvents(evCh, quit)
	defer func() {
		close(quit)
		for range evCh {
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.Cancel()
			return ctx.Err()

		case ev, ok := <-evCh:
			if !ok {
				evCh = nil
				continue
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				canvas.screen.Sync()
				canvas.Resize()
				d.Resize(canvas.Size())
			case *tcell.EventKey:
				if quitKey(ev) {
					d.Cancel()
					return nil
				}
			}

		case <-ticker.C:
			d.Tick()
			if !d.Active() {
				return nil
			}
			d.DrawTo(canvas)
			canvas.Present()
			if opts.OnFrame != nil {
				opts.OnFrame(d)
			}
		}
	}
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
