package shatter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrameScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "step", "frames": 120},
			{"action": "resize", "width": 400, "height": 300},
			{"action": "step"},
			{"action": "dispose"}
		]
	}`)

	script, err := LoadFrameScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if script.Len() != 5 {
		t.Fatalf("expected 5 steps, got %d", script.Len())
	}
	if script.steps[0].Action != "screenshot" || script.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if script.steps[1].Action != "step" || script.steps[1].Frames != 120 {
		t.Error("step 1 mismatch")
	}
	if script.steps[2].Width != 400 || script.steps[2].Height != 300 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadFrameScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "click"}]}`},
		{"resize without size", `{"steps": [{"action": "resize", "width": 10}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFrameScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFrameScriptPlay(t *testing.T) {
	seq := &fakeSequence{n: 1000}
	d := NewDriver(seq, 100, 100)
	script, err := LoadFrameScript([]byte(`{"steps": [
		{"action": "step", "frames": 5},
		{"action": "resize", "width": 50, "height": 40},
		{"action": "screenshot", "label": "mid"},
		{"action": "step"},
		{"action": "dispose"},
		{"action": "step", "frames": 10}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	var labels []string
	err = script.Play(d, func(label string) error {
		labels = append(labels, label)
		return nil
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if seq.steps != 6 {
		t.Errorf("steps = %d, want 6", seq.steps)
	}
	if len(seq.sizes) != 1 || seq.sizes[0] != [2]int{50, 40} {
		t.Errorf("sizes = %v", seq.sizes)
	}
	if len(labels) != 1 || labels[0] != "mid" {
		t.Errorf("labels = %v, want [mid]", labels)
	}
	if seq.disposes != 1 {
		t.Errorf("disposes = %d, want 1", seq.disposes)
	}
}

func TestFrameScriptPlayStopsAtCompletion(t *testing.T) {
	seq := &fakeSequence{n: 3}
	d := NewDriver(seq, 100, 100)
	script, err := LoadFrameScript([]byte(`{"steps": [{"action": "step", "frames": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := script.Play(d, nil); err != nil {
		t.Fatal(err)
	}
	if seq.steps != 3 {
		t.Errorf("steps = %d, want 3", seq.steps)
	}
}

func TestFrameScriptPlayShotError(t *testing.T) {
	d := NewDriver(&fakeSequence{n: 10}, 100, 100)
	script, err := LoadFrameScript([]byte(`{"steps": [
		{"action": "screenshot", "label": "a"},
		{"action": "step", "frames": 3}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	if err := script.Play(d, func(string) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("Play error = %v, want boom", err)
	}
	if d.Ticks() != 0 {
		t.Errorf("Ticks() = %d, want 0 after abort", d.Ticks())
	}
}

func TestImageShots(t *testing.T) {
	dir := t.TempDir()
	seq := newTestDisassembly(t, smallDisassemblyConfig(), DisassemblyOptions{})
	d := NewDriver(seq, 800, 600)
	c := NewImageCanvas(800, 600)
	script, err := LoadFrameScript([]byte(`{"steps": [
		{"action": "step", "frames": 10},
		{"action": "screenshot", "label": "after explode"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := script.Play(d, ImageShots(d, c, dir)); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "after_explode.png")); err != nil {
		t.Errorf("screenshot not written: %v", err)
	}
}
