package shatter

import (
	"fmt"
	"os"
	"time"
)

// frameStats holds per-frame timing. Only populated in debug mode.
type frameStats struct {
	step time.Duration
	draw time.Duration
}

// debugLog prints timing and population stats to stderr.
func (d *Driver) debugLog() {
	if !d.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[shatter] frame %d | step: %v | draw: %v | total: %v\n",
		d.ticks, d.stats.step, d.stats.draw, d.stats.step+d.stats.draw)
	if line := describe(d.seq); line != "" {
		_, _ = fmt.Fprintf(os.Stderr, "[shatter] %s\n", line)
	}
}

// describe summarizes the population of the known sequence types.
func describe(seq Sequence) string {
	switch s := seq.(type) {
	case *Disassembly:
		st := s.Particles()
		return fmt.Sprintf("phase: %s | live: %d/%d | shards: %d | smoke: %d | sparks: %d",
			s.Phase(), st.Live(), st.Len(), st.Count(KindShard), st.Count(KindSmoke), st.Count(KindSpark))
	case *Warp:
		return fmt.Sprintf("phase: %s | particles: %d | caption: %q | timers: %d",
			s.Phase(), len(s.Particles()), s.Caption(), s.PendingTimers())
	default:
		return ""
	}
}
