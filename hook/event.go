// Package hook is the process-wide global input-event source: a reference
// counted Hub that owns the native driver registration and fans events out to
// mouse and key listeners.
package hook

import (
	"time"

	"github.com/teranos/mousemacro/macro"
)

// EventKind classifies a native input event.
type EventKind int

const (
	EventMouseClick EventKind = iota + 1
	EventKeyDown
	EventKeyUp
)

func (k EventKind) String() string {
	switch k {
	case EventMouseClick:
		return "mouse_click"
	case EventKeyDown:
		return "key_down"
	case EventKeyUp:
		return "key_up"
	}
	return "unknown"
}

// KeyEscape is the virtual key code of the Escape key as reported by the native hook.
const KeyEscape uint16 = 0x0001

// Event is what a Driver delivers.
type Event struct {
	Kind    EventKind
	When    time.Time
	X, Y    int
	Button  macro.Button
	Keycode uint16
	Rawcode uint16
	Char    rune
}

// MouseEvent is a completed click at screen coordinates.
type MouseEvent struct {
	Point  macro.Point
	Button macro.Button
	When   time.Time
}

// KeyEvent is a key press or release.
type KeyEvent struct {
	Keycode uint16
	Rawcode uint16
	Char    rune
	Down    bool
	When    time.Time
}

// MouseListener receives clicks. Implementations must be comparable
// (pointer types) so they can be removed again.
type MouseListener interface {
	OnMouseClick(MouseEvent)
}

// KeyListener receives key presses and releases.
type KeyListener interface {
	OnKey(KeyEvent)
}

// MouseFunc adapts a function to MouseListener. Use NewMouseFunc; the pointer
// is the listener's identity.
type MouseFunc struct {
	fn func(MouseEvent)
}

func NewMouseFunc(fn func(MouseEvent)) *MouseFunc {
	return &MouseFunc{fn: fn}
}

func (m *MouseFunc) OnMouseClick(ev MouseEvent) { m.fn(ev) }

// KeyFunc adapts a function to KeyListener.
type KeyFunc struct {
	fn func(KeyEvent)
}

func NewKeyFunc(fn func(KeyEvent)) *KeyFunc {
	return &KeyFunc{fn: fn}
}

func (k *KeyFunc) OnKey(ev KeyEvent) { k.fn(ev) }
