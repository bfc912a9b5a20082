package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsPointerJustPressed returns a boolean value indicating whether a mouse, touch or gamepad
// confirm input is just pressed.
func IsPointerJustPressed() bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		return true
	}
	gamepadIDs := ebiten.AppendGamepadIDs(nil)
	for _, g := range gamepadIDs {
		if ebiten.IsStandardGamepadLayoutAvailable(g) {
			if inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonRightBottom) {
				return true
			}
			if inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonRightRight) {
				return true
			}
		} else {
			// The button 0/1 might not be A/B buttons.
			if inpututil.IsGamepadButtonJustPressed(g, ebiten.GamepadButton0) {
				return true
			}
			if inpututil.IsGamepadButtonJustPressed(g, ebiten.GamepadButton1) {
				return true
			}
		}
	}
	return false
}

// KeyEvent is a single key transition.
type KeyEvent struct {
	Key  ebiten.Key
	Down bool
}

// KeySet tracks which keys are held and which changed during the current frame.
type KeySet struct {
	down map[ebiten.Key]struct{}
	// pressed and released hold the edges seen since the last BeginFrame.
	pressed  map[ebiten.Key]struct{}
	released map[ebiten.Key]struct{}
	pointer  bool

	buf []ebiten.Key
}

func NewKeySet() *KeySet {
	return &KeySet{
		down:     make(map[ebiten.Key]struct{}),
		pressed:  make(map[ebiten.Key]struct{}),
		released: make(map[ebiten.Key]struct{}),
	}
}

// BeginFrame forgets the edges of the previous frame. Held keys stay held.
func (k *KeySet) BeginFrame() {
	clear(k.pressed)
	clear(k.released)
	k.pointer = false
}

// Poll starts a new frame and feeds it the key transitions ebiten observed
// since the last tick.
func (k *KeySet) Poll() {
	k.BeginFrame()
	k.buf = inpututil.AppendJustPressedKeys(k.buf[:0])
	for _, key := range k.buf {
		k.HandleKeyEvent(KeyEvent{Key: key, Down: true})
	}
	k.buf = inpututil.AppendJustReleasedKeys(k.buf[:0])
	for _, key := range k.buf {
		k.HandleKeyEvent(KeyEvent{Key: key, Down: false})
	}
	k.pointer = IsPointerJustPressed()
}

func (k *KeySet) MarkDown(key ebiten.Key) {
	if _, ok := k.down[key]; !ok {
		k.pressed[key] = struct{}{}
	}
	k.down[key] = struct{}{}
}

func (k *KeySet) MarkUp(key ebiten.Key) {
	if _, ok := k.down[key]; ok {
		k.released[key] = struct{}{}
	}
	delete(k.down, key)
}

func (k *KeySet) IsDown(key ebiten.Key) bool {
	_, ok := k.down[key]
	return ok
}

func (k *KeySet) IsUp(key ebiten.Key) bool {
	return !k.IsDown(key)
}

// HandleKeyEvent applies the event and echoes back the key and whether it is now down.
func (k *KeySet) HandleKeyEvent(ev KeyEvent) (ebiten.Key, bool) {
	if ev.Down {
		k.MarkDown(ev.Key)
	} else {
		k.MarkUp(ev.Key)
	}
	return ev.Key, ev.Down
}

// JustPressed reports whether the key went down during the current frame.
func (k *KeySet) JustPressed(key ebiten.Key) bool {
	_, ok := k.pressed[key]
	return ok
}

// JustReleased reports whether the key went up during the current frame.
func (k *KeySet) JustReleased(key ebiten.Key) bool {
	_, ok := k.released[key]
	return ok
}

// SetPointerJustPressed overrides the pointer edge for the current frame.
func (k *KeySet) SetPointerJustPressed(pressed bool) {
	k.pointer = pressed
}

// IsPositiveJustPressed returns a boolean value indicating whether the generic positive input is just pressed.
// This is used to handle both keyboard and touch inputs.
func (k *KeySet) IsPositiveJustPressed() bool {
	return k.pointer || k.JustPressed(ebiten.KeyEnter) || k.JustPressed(ebiten.KeySpace)
}

// IsNegativeJustPressed returns a boolean value indicating whether the generic negative input is just pressed.
func (k *KeySet) IsNegativeJustPressed() bool {
	return k.JustPressed(ebiten.KeyEscape)
}

func (k *KeySet) IsRightJustPressed() bool {
	return k.JustPressed(ebiten.KeyRight) || k.JustPressed(ebiten.KeyD)
}

func (k *KeySet) IsLeftJustPressed() bool {
	return k.JustPressed(ebiten.KeyLeft) || k.JustPressed(ebiten.KeyA)
}

func (k *KeySet) IsUpJustPressed() bool {
	return k.JustPressed(ebiten.KeyUp) || k.JustPressed(ebiten.KeyW)
}

func (k *KeySet) IsDownJustPressed() bool {
	return k.JustPressed(ebiten.KeyDown) || k.JustPressed(ebiten.KeyS)
}
