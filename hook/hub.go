package hook

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/logger"
	"github.com/teranos/mousemacro/macro"
)

// Facade is the registration/listener surface consumers depend on.
// Register and Unregister may fail with a hook-level error.
type Facade interface {
	Register() error
	Unregister() error
	IsRegistered() bool
	AddMouseListener(l MouseListener) error
	RemoveMouseListener(l MouseListener) error
	AddKeyListener(l KeyListener) error
	RemoveKeyListener(l KeyListener) error
}

// Driver is the native global input source. Only one driver session may be
// active per process; the Hub guarantees that for its own driver.
type Driver interface {
	// Start begins delivering events. The channel is closed when the driver stops.
	Start() (<-chan Event, error)
	Stop()
}

// Hub is the reference-counted Facade over a Driver.
// The first Register starts the driver, the last Unregister stops it.
// Listener callbacks run on the hub's dispatch goroutine, never under the hub lock.
type Hub struct {
	driver Driver
	log    *zap.SugaredLogger

	mu    sync.Mutex
	refs  int
	stop  chan struct{}
	mouse []MouseListener
	keys  []KeyListener
	wg    sync.WaitGroup
}

var _ Facade = (*Hub)(nil)

// NewHub creates a hub over driver. log may be nil.
func NewHub(driver Driver, log *zap.SugaredLogger) *Hub {
	return &Hub{
		driver: driver,
		log:    logger.AddHookSymbol(logger.OrNop(log)),
	}
}

// Register takes a reference on the native source, starting it if needed.
func (h *Hub) Register() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.refs > 0 {
		h.refs++
		return nil
	}

	events, err := h.driver.Start()
	if err != nil {
		return errors.Wrap(err, "failed to register global input hook")
	}

	h.refs = 1
	h.stop = make(chan struct{})
	h.wg.Add(1)
	go h.dispatch(events, h.stop)

	h.log.Infow("Global input hook registered")
	return nil
}

// Unregister releases a reference. Releasing with no references held is a no-op.
func (h *Hub) Unregister() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.refs == 0 {
		return nil
	}
	h.refs--
	if h.refs > 0 {
		return nil
	}

	close(h.stop)
	h.driver.Stop()
	h.log.Infow("Global input hook unregistered")
	return nil
}

// IsRegistered reports whether at least one reference is held.
func (h *Hub) IsRegistered() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refs > 0
}

// Wait blocks until the dispatch goroutine of the last session has exited.
func (h *Hub) Wait() {
	h.wg.Wait()
}

func (h *Hub) AddMouseListener(l MouseListener) error {
	if l == nil {
		return errors.NewInvalidArgumentError("mouse listener must not be nil")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mouse = append(h.mouse, l)
	return nil
}

func (h *Hub) RemoveMouseListener(l MouseListener) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := slices.Index(h.mouse, l)
	if i < 0 {
		return errors.NewNotFoundError("mouse listener not installed")
	}
	h.mouse = slices.Delete(h.mouse, i, i+1)
	return nil
}

func (h *Hub) AddKeyListener(l KeyListener) error {
	if l == nil {
		return errors.NewInvalidArgumentError("key listener must not be nil")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.keys = append(h.keys, l)
	return nil
}

func (h *Hub) RemoveKeyListener(l KeyListener) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := slices.Index(h.keys, l)
	if i < 0 {
		return errors.NewNotFoundError("key listener not installed")
	}
	h.keys = slices.Delete(h.keys, i, i+1)
	return nil
}

func (h *Hub) dispatch(events <-chan Event, stop <-chan struct{}) {
	defer h.wg.Done()
	for {
		select {
		case <-stop:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			h.deliver(ev)
		}
	}
}

func (h *Hub) deliver(ev Event) {
	h.mu.Lock()
	mouse := slices.Clone(h.mouse)
	keys := slices.Clone(h.keys)
	h.mu.Unlock()

	switch ev.Kind {
	case EventMouseClick:
		me := MouseEvent{Point: macro.Point{X: ev.X, Y: ev.Y}, Button: ev.Button, When: ev.When}
		for _, l := range mouse {
			h.safely(func() { l.OnMouseClick(me) })
		}
	case EventKeyDown, EventKeyUp:
		ke := KeyEvent{Keycode: ev.Keycode, Rawcode: ev.Rawcode, Char: ev.Char, Down: ev.Kind == EventKeyDown, When: ev.When}
		for _, l := range keys {
			h.safely(func() { l.OnKey(ke) })
		}
	}
}

// safely runs one listener callback; a panicking listener must not kill dispatch.
func (h *Hub) safely(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Errorw("Input listener panicked", "panic", r)
		}
	}()
	fn()
}
