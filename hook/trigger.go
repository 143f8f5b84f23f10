package hook

// KeyTrigger fires fn once per press of a single key. Auto-repeat presses
// that arrive before the key is released are ignored.
type KeyTrigger struct {
	keycode uint16
	fn      func()
	held    bool
}

// NewKeyTrigger returns a listener calling fn when keycode goes down.
func NewKeyTrigger(keycode uint16, fn func()) *KeyTrigger {
	return &KeyTrigger{keycode: keycode, fn: fn}
}

// OnKey runs on the hub's single dispatch goroutine, so held needs no lock.
func (t *KeyTrigger) OnKey(ev KeyEvent) {
	if ev.Keycode != t.keycode {
		return
	}
	if !ev.Down {
		t.held = false
		return
	}
	if t.held {
		return
	}
	t.held = true
	t.fn()
}
