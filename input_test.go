package shatter

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestDefaultKeyBindings(t *testing.T) {
	keys := DefaultKeyBindings()
	tests := []struct {
		key  ebiten.Key
		want KeyAction
	}{
		{ebiten.KeyEscape, ActionCancel},
		{ebiten.KeyF12, ActionScreenshot},
		{ebiten.KeyF3, ActionToggleFPS},
		{ebiten.KeyA, ActionNone},
	}
	for _, tt := range tests {
		if got := keys[tt.key]; got != tt.want {
			t.Errorf("binding for %v = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestInjectedKeysOnePerFrame(t *testing.T) {
	seq := &fakeSequence{n: 100}
	d := NewDriver(seq, 100, 100)
	d.InjectKey(ebiten.KeyF3)
	d.InjectKey(ebiten.KeyF12)

	d.processInput()
	if !d.ShowFPS {
		t.Error("F3 should toggle the FPS overlay on")
	}
	if len(d.screenshotQueue) != 0 {
		t.Error("only one injected key should be consumed per frame")
	}
	d.ticks = 7
	d.processInput()
	if len(d.screenshotQueue) != 1 || d.screenshotQueue[0] != "tick-7" {
		t.Errorf("screenshot queue = %v, want [tick-7]", d.screenshotQueue)
	}
}

func TestInjectedEscapeCancels(t *testing.T) {
	seq := &fakeSequence{n: 100}
	d := NewDriver(seq, 100, 100)
	d.InjectKey(ebiten.KeyEscape)
	if err := d.Update(); err != ebiten.Termination {
		t.Errorf("Update() = %v, want ebiten.Termination", err)
	}
	if seq.disposes != 1 || seq.steps != 0 {
		t.Errorf("disposes = %d, steps = %d; want 1, 0", seq.disposes, seq.steps)
	}
}

func TestUnboundKeyIgnored(t *testing.T) {
	seq := &fakeSequence{n: 100}
	d := NewDriver(seq, 100, 100)
	d.InjectKey(ebiten.KeyA)
	d.processInput()
	if !d.Active() || d.ShowFPS || len(d.screenshotQueue) != 0 {
		t.Error("unbound key changed driver state")
	}
}
