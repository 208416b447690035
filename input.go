package engine2000

import "strings"

// Key identifies a keyboard key.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyEscape
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyCount // number of keys; not a key
)

var keyNames = [KeyCount]string{
	KeyUnknown: "Unknown",
	KeyUp:      "Up",
	KeyDown:    "Down",
	KeyLeft:    "Left",
	KeyRight:   "Right",
	KeySpace:   "Space",
	KeyEnter:   "Enter",
	KeyEscape:  "Escape",
}

func init() {
	for k := KeyA; k <= KeyZ; k++ {
		keyNames[k] = string(rune('A' + int(k-KeyA)))
	}
	for k := Key0; k <= Key9; k++ {
		keyNames[k] = string(rune('0' + int(k-Key0)))
	}
}

// String returns the key name used by test scripts.
func (k Key) String() string {
	if k < KeyCount {
		return keyNames[k]
	}
	return "Unknown"
}

// ParseKey resolves a key name ("Space", "left", "A", "7"), ignoring case.
func ParseKey(name string) (Key, bool) {
	for k := KeyUp; k < KeyCount; k++ {
		if strings.EqualFold(keyNames[k], name) {
			return k, true
		}
	}
	return KeyUnknown, false
}

// Button identifies a gamepad button.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonBack
	ButtonStart
	ButtonLeftShoulder
	ButtonRightShoulder
	ButtonDPadUp
	ButtonDPadDown
	ButtonDPadLeft
	ButtonDPadRight
	ButtonCount // number of buttons; not a button
)

// Input is the per-frame query surface gameplay code reads. Pressed and
// released are edges for the current frame and exclude key repeat.
type Input interface {
	Key(k Key) bool
	KeyPressed(k Key) bool
	KeyReleased(k Key) bool
	Button(b Button) bool
	ButtonPressed(b Button) bool
}

// InputState is the Input implementation shared by all backends. A backend
// reports the physical state with SetKey/SetButton whenever it polls; the
// engine calls BeginFrame once per frame, which folds polled and injected
// state into the snapshot queries read from.
type InputState struct {
	polledKeys   [KeyCount]bool
	injectedKeys [KeyCount]bool
	keys         [KeyCount]bool
	prevKeys     [KeyCount]bool

	polledButtons   [ButtonCount]bool
	injectedButtons [ButtonCount]bool
	buttons         [ButtonCount]bool
	prevButtons     [ButtonCount]bool

	injectQueue []injectedInput
}

// NewInputState returns an input state with nothing held.
func NewInputState() *InputState {
	return &InputState{}
}

// SetKey records the physical state of k.
func (s *InputState) SetKey(k Key, down bool) {
	if k < KeyCount {
		s.polledKeys[k] = down
	}
}

// SetButton records the physical state of b.
func (s *InputState) SetButton(b Button, down bool) {
	if b < ButtonCount {
		s.polledButtons[b] = down
	}
}

// ReleaseAll clears every polled key and button. Backends without key-up
// events call it before reporting the keys seen since the last poll.
func (s *InputState) ReleaseAll() {
	s.polledKeys = [KeyCount]bool{}
	s.polledButtons = [ButtonCount]bool{}
}

// BeginFrame snapshots the input for a new frame. At most one injected event
// is applied per frame.
func (s *InputState) BeginFrame() {
	s.applyInjected()
	s.prevKeys = s.keys
	for i := range s.keys {
		s.keys[i] = s.polledKeys[i] || s.injectedKeys[i]
	}
	s.prevButtons = s.buttons
	for i := range s.buttons {
		s.buttons[i] = s.polledButtons[i] || s.injectedButtons[i]
	}
}

// Key reports whether k is held.
func (s *InputState) Key(k Key) bool {
	return k < KeyCount && s.keys[k]
}

// KeyPressed reports whether k went down this frame.
func (s *InputState) KeyPressed(k Key) bool {
	return k < KeyCount && s.keys[k] && !s.prevKeys[k]
}

// KeyReleased reports whether k went up this frame.
func (s *InputState) KeyReleased(k Key) bool {
	return k < KeyCount && !s.keys[k] && s.prevKeys[k]
}

// Button reports whether b is held.
func (s *InputState) Button(b Button) bool {
	return b < ButtonCount && s.buttons[b]
}

// ButtonPressed reports whether b went down this frame.
func (s *InputState) ButtonPressed(b Button) bool {
	return b < ButtonCount && s.buttons[b] && !s.prevButtons[b]
}
