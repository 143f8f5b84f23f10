package hook

import (
	"sync"

	"go.uber.org/zap"

	"github.com/teranos/mousemacro/logger"
)

// KeyLogger logs every global key press and release at debug level.
// It is a diagnostic aid: failing to engage the hook is logged, never fatal.
type KeyLogger struct {
	facade Facade
	log    *zap.SugaredLogger

	mu       sync.Mutex
	listener *KeyFunc
}

func NewKeyLogger(facade Facade, log *zap.SugaredLogger) *KeyLogger {
	return &KeyLogger{facade: facade, log: logger.AddHookSymbol(logger.OrNop(log))}
}

// Start registers the hook and installs the logging listener. Calling it twice is a no-op.
func (k *KeyLogger) Start() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.listener != nil {
		return
	}
	if err := k.facade.Register(); err != nil {
		k.log.Warnw("Key logger disabled", logger.FieldError, err)
		return
	}

	l := NewKeyFunc(func(ev KeyEvent) {
		action := "released"
		if ev.Down {
			action = "pressed"
		}
		k.log.Debugw("Key "+action, logger.FieldKeycode, ev.Keycode, "rawcode", ev.Rawcode)
	})
	if err := k.facade.AddKeyListener(l); err != nil {
		k.log.Warnw("Key logger listener rejected", logger.FieldError, err)
		_ = k.facade.Unregister()
		return
	}
	k.listener = l
	k.log.Debugw("Key logger started")
}

// Stop removes the listener and releases the registration.
func (k *KeyLogger) Stop() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.listener == nil {
		return
	}
	if err := k.facade.RemoveKeyListener(k.listener); err != nil {
		k.log.Warnw("Key logger listener removal failed", logger.FieldError, err)
	}
	if err := k.facade.Unregister(); err != nil {
		k.log.Warnw("Key logger unregister failed", logger.FieldError, err)
	}
	k.listener = nil
}

// Running reports whether the listener is installed.
func (k *KeyLogger) Running() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.listener != nil
}
