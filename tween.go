package shatter

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fade animates one scalar from a start to an end value. A zero fade is idle
// and reports its from value (zero). Call start to arm it, then update every
// frame with the frame's wall-clock delta.
type fade struct {
	tween   *gween.Tween
	from    float64
	to      float64
	value   float64
	running bool
	done    bool
}

// start arms the fade. A non-positive duration jumps straight to the end value.
func (f *fade) start(from, to float64, d time.Duration, fn ease.TweenFunc) {
	f.from, f.to = from, to
	f.value = from
	f.done = false
	if d <= 0 {
		f.value = to
		f.running = false
		f.done = true
		f.tween = nil
		return
	}
	f.tween = gween.New(float32(from), float32(to), float32(d.Seconds()), fn)
	f.running = true
}

// update advances the fade by dt and returns the current value.
func (f *fade) update(dt time.Duration) float64 {
	if !f.running {
		return f.value
	}
	val, finished := f.tween.Update(float32(dt.Seconds()))
	f.value = float64(val)
	if finished {
		f.value = f.to
		f.running = false
		f.done = true
	}
	return f.value
}

// Value returns the last computed value.
func (f *fade) Value() float64 {
	return f.value
}

// Done reports whether the fade has reached its end value.
func (f *fade) Done() bool {
	return f.done
}
