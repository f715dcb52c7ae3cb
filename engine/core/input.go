package core

import "fmt"

// Key code definitions
type KeyCode uint16

const (
	KEY_A KeyCode = iota
	KEY_B
	KEY_C
	KEY_D
	KEY_E
	KEY_F
	KEY_G
	KEY_H
	KEY_I
	KEY_J
	KEY_K
	KEY_L
	KEY_M
	KEY_N
	KEY_O
	KEY_P
	KEY_Q
	KEY_R
	KEY_S
	KEY_T
	KEY_U
	KEY_V
	KEY_W
	KEY_X
	KEY_Y
	KEY_Z

	KEY_0
	KEY_1
	KEY_2
	KEY_3
	KEY_4
	KEY_5
	KEY_6
	KEY_7
	KEY_8
	KEY_9

	KEY_ESCAPE
	KEY_RETURN
	KEY_LCONTROL
	KEY_LALT
	KEY_LEFT
	KEY_RIGHT
	KEY_UP
	KEY_DOWN
	KEY_LSHIFT
	KEY_SPACE

	KEYS_MAX_KEYS
)

var keyNames = [KEYS_MAX_KEYS]string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"ESCAPE", "RETURN", "LCONTROL", "LALT",
	"LEFT", "RIGHT", "UP", "DOWN",
	"LSHIFT", "SPACE",
}

func (k KeyCode) String() string {
	if k >= KEYS_MAX_KEYS {
		return fmt.Sprintf("KeyCode(%d)", uint16(k))
	}
	return keyNames[k]
}

// ParseKeyCode resolves a key name (as returned by String) to its code.
func ParseKeyCode(name string) (KeyCode, error) {
	for i, n := range keyNames {
		if n == name {
			return KeyCode(i), nil
		}
	}
	return KEYS_MAX_KEYS, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// KeyState is the per-key tri-state updated once per tick.
type KeyState uint8

const (
	KeyStateReleased KeyState = iota
	KeyStatePressed
	KeyStateHeld
)

func (s KeyState) String() string {
	switch s {
	case KeyStateReleased:
		return "released"
	case KeyStatePressed:
		return "pressed"
	case KeyStateHeld:
		return "held"
	}
	return fmt.Sprintf("KeyState(%d)", uint8(s))
}

// KeyboardSnapshot is the raw down/up state of every key as reported by the
// platform at sampling time.
type KeyboardSnapshot [KEYS_MAX_KEYS]bool

// InputState holds the tri-state of every key. The zero value has every key
// released and is ready to use.
type InputState struct {
	keys [KEYS_MAX_KEYS]KeyState
}

func NewInputState() *InputState {
	return &InputState{}
}

// Reset releases every key.
func (is *InputState) Reset() {
	for i := range is.keys {
		is.keys[i] = KeyStateReleased
	}
}

// Sample advances every key from the snapshot. A key that is down moves to
// Pressed on its first sample and to Held afterwards; a key that is up goes
// back to Released.
func (is *InputState) Sample(snapshot KeyboardSnapshot) {
	for i, down := range snapshot {
		is.keys[i] = nextKeyState(is.keys[i], down)
	}
}

func nextKeyState(previous KeyState, down bool) KeyState {
	if !down {
		return KeyStateReleased
	}
	if previous > KeyStateReleased {
		return KeyStateHeld
	}
	return KeyStatePressed
}

// IsKeyDown reports whether the key is pressed or held. It does not tell the
// two apart, use KeyState for that.
func (is *InputState) IsKeyDown(key KeyCode) bool {
	return is.KeyState(key) != KeyStateReleased
}

// IsKeyUp is the negation of IsKeyDown.
func (is *InputState) IsKeyUp(key KeyCode) bool {
	return !is.IsKeyDown(key)
}

func (is *InputState) KeyState(key KeyCode) KeyState {
	if key >= KEYS_MAX_KEYS {
		return KeyStateReleased
	}
	return is.keys[key]
}
