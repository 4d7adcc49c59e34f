package shatter

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyAction is a driver command bound to a key in windowed mode.
type KeyAction uint8

const (
	ActionNone KeyAction = iota
	// ActionCancel disposes the sequence and closes the window.
	ActionCancel
	// ActionScreenshot queues a capture of the next frame.
	ActionScreenshot
	// ActionToggleFPS shows or hides the FPS overlay.
	ActionToggleFPS
)

// DefaultKeyBindings binds Esc to cancel, F12 to screenshot and F3 to the
// FPS overlay.
func DefaultKeyBindings() map[ebiten.Key]KeyAction {
	return map[ebiten.Key]KeyAction{
		ebiten.KeyEscape: ActionCancel,
		ebiten.KeyF12:    ActionScreenshot,
		ebiten.KeyF3:     ActionToggleFPS,
	}
}

// InjectKey queues a synthetic key press. Each Update consumes one injected
// key in place of real keyboard input, so scripted sessions behave the same
// as a user pressing the key.
func (d *Driver) InjectKey(k ebiten.Key) {
	d.injectQueue = append(d.injectQueue, k)
}

// processInput is called from Update before the sequence is stepped.
func (d *Driver) processInput() {
	keys := d.keyBuf[:0]
	if len(d.injectQueue) > 0 {
		keys = append(keys, d.injectQueue[0])
		copy(d.injectQueue, d.injectQueue[1:])
		d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]
	} else {
		keys = inpututil.AppendJustPressedKeys(keys)
	}
	d.keyBuf = keys
	for _, k := range keys {
		d.apply(d.Keys[k])
	}
}

func (d *Driver) apply(a KeyAction) {
	switch a {
	case ActionCancel:
		d.Cancel()
	case ActionScreenshot:
		d.Screenshot(fmt.Sprintf("tick-%d", d.ticks))
	case ActionToggleFPS:
		d.ShowFPS = !d.ShowFPS
	}
}
