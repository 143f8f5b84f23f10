//go:build native

package hook

import (
	gohook "github.com/robotn/gohook"

	"github.com/teranos/mousemacro/macro"
)

// GohookDriver delivers global events from libuiohook through github.com/robotn/gohook.
type GohookDriver struct{}

// NewDriver returns the native driver for this build.
func NewDriver() Driver {
	return GohookDriver{}
}

func (GohookDriver) Start() (<-chan Event, error) {
	raw := gohook.Start()
	out := make(chan Event, 64)

	go func() {
		defer close(out)
		for ev := range raw {
			if converted, ok := convert(ev); ok {
				out <- converted
			}
		}
	}()

	return out, nil
}

func (GohookDriver) Stop() {
	gohook.End()
}

func convert(ev gohook.Event) (Event, bool) {
	switch ev.Kind {
	case gohook.MouseDown:
		return Event{
			Kind:   EventMouseClick,
			When:   ev.When,
			X:      int(ev.X),
			Y:      int(ev.Y),
			Button: convertButton(ev.Button),
		}, true
	case gohook.KeyHold:
		return Event{Kind: EventKeyDown, When: ev.When, Keycode: ev.Keycode, Rawcode: ev.Rawcode, Char: ev.Keychar}, true
	case gohook.KeyUp:
		return Event{Kind: EventKeyUp, When: ev.When, Keycode: ev.Keycode, Rawcode: ev.Rawcode, Char: ev.Keychar}, true
	}
	return Event{}, false
}

func convertButton(b uint16) macro.Button {
	switch b {
	case gohook.MouseMap["right"]:
		return macro.ButtonRight
	case gohook.MouseMap["center"]:
		return macro.ButtonMiddle
	default:
		return macro.ButtonLeft
	}
}
