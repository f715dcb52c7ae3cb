package core

import "fmt"

// System internal event codes.
type SystemEventCode int

const (
	EVENT_CODE_NONE SystemEventCode = iota

	// Shuts the application down on the next tick.
	EVENT_CODE_APPLICATION_QUIT

	// Keyboard key pressed.
	/* Context usage:
	 * key_code = event.KeyCode
	 */
	EVENT_CODE_KEY_PRESSED

	// Keyboard key released.
	/* Context usage:
	 * key_code = event.KeyCode
	 */
	EVENT_CODE_KEY_RELEASED

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * width = event.Width
	 * height = event.Height
	 */
	EVENT_CODE_RESIZED

	MAX_EVENT_CODE
)

func (c SystemEventCode) String() string {
	switch c {
	case EVENT_CODE_NONE:
		return "none"
	case EVENT_CODE_APPLICATION_QUIT:
		return "application_quit"
	case EVENT_CODE_KEY_PRESSED:
		return "key_pressed"
	case EVENT_CODE_KEY_RELEASED:
		return "key_released"
	case EVENT_CODE_RESIZED:
		return "resized"
	}
	return fmt.Sprintf("SystemEventCode(%d)", int(c))
}

// Event is a single platform event. Only the fields relevant to Type are set.
type Event struct {
	Type    SystemEventCode
	KeyCode KeyCode
	Width   uint32
	Height  uint32
}

func (e Event) IsQuit() bool {
	return e.Type == EVENT_CODE_APPLICATION_QUIT
}

func QuitEvent() Event {
	return Event{Type: EVENT_CODE_APPLICATION_QUIT}
}

func KeyEvent(key KeyCode, pressed bool) Event {
	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	return Event{Type: code, KeyCode: key}
}

func ResizeEvent(width, height uint32) Event {
	return Event{Type: EVENT_CODE_RESIZED, Width: width, Height: height}
}
