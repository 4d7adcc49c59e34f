package shatter

import "time"

// timer is a pending one-shot or repeating callback owned by a timerSet.
type timer struct {
	due      time.Duration
	interval time.Duration
	seq      uint64
	fn       func()
	stopped  bool
}

// Stop cancels the timer. Stopping twice is a no-op.
func (t *timer) Stop() {
	t.stopped = true
}

// timerSet schedules callbacks against a virtual clock advanced by the
// owning sequence. Nothing runs except inside Advance.
type timerSet struct {
	now    time.Duration
	seq    uint64
	timers []*timer
}

// After schedules fn to run once when the clock reaches now+d.
func (s *timerSet) After(d time.Duration, fn func()) *timer {
	return s.add(d, 0, fn)
}

// Every schedules fn to run every d, first at now+d. d must be positive.
func (s *timerSet) Every(d time.Duration, fn func()) *timer {
	if d <= 0 {
		panic("shatter: timer interval must be positive")
	}
	return s.add(d, d, fn)
}

func (s *timerSet) add(d, interval time.Duration, fn func()) *timer {
	s.seq++
	t := &timer{due: s.now + d, interval: interval, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Now returns the virtual time elapsed since the set was created.
func (s *timerSet) Now() time.Duration {
	return s.now
}

// Pending returns the number of timers that have not fired or been stopped.
func (s *timerSet) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by dt and fires every timer that comes due,
// in due-time order with ties broken by scheduling order. Callbacks may
// schedule or stop timers; new timers due within the window also fire.
func (s *timerSet) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	end := s.now + dt
	for {
		t := s.nextDue(end)
		if t == nil {
			break
		}
		s.now = t.due
		if t.interval > 0 {
			t.due += t.interval
		} else {
			t.stopped = true
		}
		t.fn()
	}
	s.now = end
	s.prune()
}

func (s *timerSet) nextDue(end time.Duration) *timer {
	var best *timer
	for _, t := range s.timers {
		if t.stopped || t.due > end {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *timerSet) prune() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	clear(s.timers[len(live):])
	s.timers = live
}

// CancelAll stops every pending timer.
func (s *timerSet) CancelAll() {
	for _, t := range s.timers {
		t.stopped = true
	}
	s.timers = s.timers[:0]
}
