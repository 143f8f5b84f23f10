package hook

import (
	"sync"

	"go.uber.org/zap"

	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/logger"
)

// Hotkeys binds global key codes to actions. Keycode 0 means unbound.
type Hotkeys struct {
	facade Facade
	log    *zap.SugaredLogger

	mu       sync.Mutex
	bindings map[uint16]func()
	active   []*KeyTrigger
}

func NewHotkeys(facade Facade, log *zap.SugaredLogger) *Hotkeys {
	return &Hotkeys{
		facade:   facade,
		log:      logger.AddHookSymbol(logger.OrNop(log)),
		bindings: make(map[uint16]func()),
	}
}

// Bind maps keycode to fn. Binding keycode 0 is ignored; rebinding replaces.
// Bindings take effect on the next Start.
func (h *Hotkeys) Bind(keycode uint16, fn func()) {
	if keycode == 0 || fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bindings[keycode] = fn
}

// Start registers the hook and installs one trigger per binding.
// With no bindings it does nothing.
func (h *Hotkeys) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.active) > 0 || len(h.bindings) == 0 {
		return nil
	}
	if err := h.facade.Register(); err != nil {
		return errors.Wrap(err, "hotkeys")
	}

	for code, fn := range h.bindings {
		t := NewKeyTrigger(code, fn)
		if err := h.facade.AddKeyListener(t); err != nil {
			h.removeLocked()
			_ = h.facade.Unregister()
			return errors.Wrapf(err, "hotkey %d", code)
		}
		h.active = append(h.active, t)
		h.log.Debugw("Hotkey bound", logger.FieldKeycode, code)
	}
	return nil
}

// Stop removes all triggers and releases the registration.
func (h *Hotkeys) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.active) == 0 {
		return
	}
	h.removeLocked()
	if err := h.facade.Unregister(); err != nil {
		h.log.Warnw("Hotkeys unregister failed", logger.FieldError, err)
	}
}

func (h *Hotkeys) removeLocked() {
	for _, t := range h.active {
		if err := h.facade.RemoveKeyListener(t); err != nil {
			h.log.Warnw("Hotkey removal failed", logger.FieldKeycode, t.keycode, logger.FieldError, err)
		}
	}
	h.active = nil
}
