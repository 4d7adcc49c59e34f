package shatter

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// scriptStep is a single action in a frame script.
type scriptStep struct {
	Action string `json:"action"`
	Frames int    `json:"frames,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Label  string `json:"label,omitempty"`
}

type frameScript struct {
	Steps []scriptStep `json:"steps"`
}

// FrameScript is a parsed sequence of driver actions:
//
//	{"steps": [
//	  {"action": "step", "frames": 120},
//	  {"action": "resize", "width": 800, "height": 600},
//	  {"action": "screenshot", "label": "pause"},
//	  {"action": "dispose"}
//	]}
//
// A step without frames advances one frame.
type FrameScript struct {
	steps []scriptStep
}

// LoadFrameScript parses a JSON frame script.
func LoadFrameScript(jsonData []byte) (*FrameScript, error) {
	var script frameScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("shatter: parse frame script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("shatter: parse frame script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "step", "screenshot", "dispose":
		case "resize":
			if st.Width <= 0 || st.Height <= 0 {
				return nil, fmt.Errorf("shatter: parse frame script: step %d: resize needs a positive size", i)
			}
		default:
			return nil, fmt.Errorf("shatter: parse frame script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &FrameScript{steps: script.Steps}, nil
}

// Len returns the number of steps.
func (s *FrameScript) Len() int {
	return len(s.steps)
}

// Play runs the script against d. Each screenshot step calls shot with its
// label; a nil shot skips them. Frame steps stop early once the driver is no
// longer active. The first error from shot aborts playback.
func (s *FrameScript) Play(d *Driver, shot func(label string) error) error {
	for _, st := range s.steps {
		switch st.Action {
		case "step":
			n := max(st.Frames, 1)
			for i := 0; i < n && d.Active(); i++ {
				d.Tick()
			}
		case "resize":
			d.Resize(st.Width, st.Height)
		case "screenshot":
			if shot != nil {
				if err := shot(st.Label); err != nil {
					return fmt.Errorf("shatter: screenshot %q: %w", st.Label, err)
				}
			}
		case "dispose":
			d.Cancel()
		}
	}
	return nil
}

// ImageShots returns a Play callback that renders the driver's current frame
// into c and saves it as dir/<label>.png.
func ImageShots(d *Driver, c *ImageCanvas, dir string) func(label string) error {
	return func(label string) error {
		d.DrawTo(c)
		return c.SavePNG(filepath.Join(dir, sanitizeLabel(label)+".png"))
	}
}
