package shatter

import "testing"

// fakeSequence records calls and completes after n steps.
type fakeSequence struct {
	n          int
	steps      int
	disposes   int
	sizes      [][2]int
	sizeAtStep [][2]int
}

func (s *fakeSequence) Step() bool {
	s.steps++
	if len(s.sizes) > 0 {
		s.sizeAtStep = append(s.sizeAtStep, s.sizes[len(s.sizes)-1])
	} else {
		s.sizeAtStep = append(s.sizeAtStep, [2]int{})
	}
	return s.steps < s.n
}

func (s *fakeSequence) Draw(c Canvas)   { c.Fill(ColorWhite) }
func (s *fakeSequence) Resize(w, h int) { s.sizes = append(s.sizes, [2]int{w, h}) }
func (s *fakeSequence) Dispose()        { s.disposes++ }
func (s *fakeSequence) Done() bool      { return s.disposes > 0 || s.steps >= s.n }

func TestDriverTicksUntilDone(t *testing.T) {
	seq := &fakeSequence{n: 3}
	d := NewDriver(seq, 100, 100)
	for i := 0; i < 10; i++ {
		d.Tick()
	}
	if seq.steps != 3 || d.Ticks() != 3 {
		t.Errorf("steps = %d, ticks = %d; want 3, 3", seq.steps, d.Ticks())
	}
	if d.Active() {
		t.Error("driver should be inactive after completion")
	}
	if seq.disposes != 0 {
		t.Error("completion should not dispose")
	}
}

func TestDriverResizeAppliedBeforeStep(t *testing.T) {
	seq := &fakeSequence{n: 10}
	d := NewDriver(seq, 100, 100)
	d.Tick()
	d.Resize(200, 150)
	d.Resize(300, 250)
	if len(seq.sizes) != 0 {
		t.Fatal("Resize should be queued, not applied immediately")
	}
	d.Tick()
	if len(seq.sizes) != 1 || seq.sizes[0] != [2]int{300, 250} {
		t.Errorf("applied sizes = %v, want [[300 250]]", seq.sizes)
	}
	if seq.sizeAtStep[1] != [2]int{300, 250} {
		t.Errorf("second step saw size %v", seq.sizeAtStep[1])
	}
	if w, h := d.Size(); w != 300 || h != 250 {
		t.Errorf("Size() = (%d, %d)", w, h)
	}
	d.Tick()
	if len(seq.sizes) != 1 {
		t.Error("resize applied twice")
	}
}

func TestDriverIgnoresBadResize(t *testing.T) {
	seq := &fakeSequence{n: 10}
	d := NewDriver(seq, 100, 100)
	d.Resize(0, 50)
	d.Resize(50, -1)
	d.Tick()
	if len(seq.sizes) != 0 {
		t.Errorf("non-positive resize applied: %v", seq.sizes)
	}
}

func TestDriverCancel(t *testing.T) {
	seq := &fakeSequence{n: 100}
	d := NewDriver(seq, 100, 100)
	d.Tick()
	d.Cancel()
	d.Cancel()
	if seq.disposes != 1 {
		t.Errorf("Dispose called %d times, want 1", seq.disposes)
	}
	if d.Tick() {
		t.Error("Tick after Cancel should return false")
	}
	if seq.steps != 1 {
		t.Errorf("steps = %d, want 1", seq.steps)
	}
}

func TestDriverLayoutQueuesResize(t *testing.T) {
	seq := &fakeSequence{n: 10}
	d := NewDriver(seq, 100, 100)
	if w, h := d.Layout(100, 100); w != 100 || h != 100 {
		t.Errorf("Layout = (%d, %d)", w, h)
	}
	d.Layout(640, 480)
	d.Tick()
	if len(seq.sizes) != 1 || seq.sizes[0] != [2]int{640, 480} {
		t.Errorf("sizes = %v, want [[640 480]]", seq.sizes)
	}
}

func TestDriverDefaults(t *testing.T) {
	d := NewDriver(&fakeSequence{n: 1}, 10, 10)
	if d.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", d.ScreenshotDir, "screenshots")
	}
}

func TestRunRejectsEmptyWindow(t *testing.T) {
	if err := Run(&fakeSequence{n: 1}, RunConfig{Width: 0, Height: 480}); err == nil {
		t.Error("expected error for zero-width window")
	}
}

func TestDriverWithDisassembly(t *testing.T) {
	seq := newTestDisassembly(t, smallDisassemblyConfig(), DisassemblyOptions{})
	d := NewDriver(seq, 800, 600)
	c := NewImageCanvas(800, 600)
	for d.Active() {
		d.Tick()
		if d.Ticks() == 10 {
			d.Resize(400, 300)
		}
	}
	if d.Ticks() != 281 {
		t.Errorf("Ticks() = %d, want 281", d.Ticks())
	}
	if w, _ := seq.Size(); w != 400 {
		t.Errorf("sequence width = %v, want 400", w)
	}
	d.DrawTo(c)
}

func TestDescribe(t *testing.T) {
	dis := newTestDisassembly(t, smallDisassemblyConfig(), DisassemblyOptions{})
	if got := describe(dis); got == "" {
		t.Error("describe(disassembly) is empty")
	}
	w := newTestWarp(t, WarpOptions{})
	if got := describe(w); got == "" {
		t.Error("describe(warp) is empty")
	}
}
