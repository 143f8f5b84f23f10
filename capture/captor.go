package capture

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/mousemacro/hook"
	"github.com/teranos/mousemacro/logger"
)

// Reasons carried by Failed results produced by the captor itself.
const (
	ReasonInProgress = "capture already in progress"
	ReasonClosed     = "captor closed"
	ReasonBadTimeout = "capture timeout must be positive"
)

// Timer is the part of *time.Timer the captor needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules fn on its own goroutine after d.
type AfterFunc func(d time.Duration, fn func()) Timer

func stdAfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Option configures a Captor.
type Option func(*Captor)

// WithAfterFunc replaces the timeout scheduler.
func WithAfterFunc(f AfterFunc) Option {
	return func(c *Captor) { c.afterFunc = f }
}

// pending is one in-flight capture. Exactly one of click, timeout and cancel
// gets to complete it; the listener is removed exactly once.
type pending struct {
	out      chan Result
	listener *hook.MouseFunc
	timer    Timer
	started  time.Time

	completeOnce sync.Once
	cleanupOnce  sync.Once
}

// Captor resolves "the next external click" against a hook.Facade.
// At most one capture is in flight per Captor.
type Captor struct {
	facade    hook.Facade
	log       *zap.SugaredLogger
	afterFunc AfterFunc

	mu      sync.Mutex
	current *pending
	owned   bool // holds one Register reference on facade
	closed  bool
}

// NewCaptor creates a captor over facade. log may be nil.
func NewCaptor(facade hook.Facade, log *zap.SugaredLogger, opts ...Option) *Captor {
	c := &Captor{
		facade:    facade,
		log:       logger.AddCaptureSymbol(logger.OrNop(log)),
		afterFunc: stdAfterFunc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CaptureNextClick waits for the next click anywhere on screen.
// The returned channel yields exactly one Result and is then closed.
// Registration problems come back as Failed results, never as panics or errors.
func (c *Captor) CaptureNextClick(timeout time.Duration) <-chan Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.closed:
		return resolved(Failed(ReasonClosed))
	case c.current != nil:
		c.log.Warnw("Capture rejected", logger.FieldReason, ReasonInProgress)
		return resolved(Failed(ReasonInProgress))
	case timeout <= 0:
		return resolved(Failed(ReasonBadTimeout))
	}

	if !c.owned {
		if err := c.facade.Register(); err != nil {
			c.log.Errorw("Capture could not register input hook", logger.FieldError, err)
			return resolved(Failed(err.Error()))
		}
		c.owned = true
	}

	p := &pending{out: make(chan Result, 1), started: time.Now()}
	p.listener = hook.NewMouseFunc(func(ev hook.MouseEvent) {
		c.complete(p, Captured(ev.Point))
	})
	if err := c.facade.AddMouseListener(p.listener); err != nil {
		c.log.Errorw("Capture could not install listener", logger.FieldError, err)
		return resolved(Failed(err.Error()))
	}

	c.current = p
	p.timer = c.afterFunc(timeout, func() {
		c.complete(p, Timeout())
	})

	c.log.Infow("Capture armed", logger.FieldTimeout, timeout.String())
	return p.out
}

// Cancel resolves the in-flight capture as Cancelled. It is a no-op when
// nothing is pending.
func (c *Captor) Cancel() {
	c.mu.Lock()
	p := c.current
	c.mu.Unlock()

	if p == nil {
		return
	}
	c.complete(p, Cancelled())
}

// Pending reports whether a capture is in flight.
func (c *Captor) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil
}

// Close cancels any in-flight capture and releases the captor's hook
// reference. Later captures fail with ReasonClosed.
func (c *Captor) Close() error {
	c.Cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if !c.owned {
		return nil
	}
	c.owned = false
	return c.facade.Unregister()
}

func (c *Captor) complete(p *pending, r Result) {
	p.completeOnce.Do(func() {
		c.mu.Lock()
		if c.current == p {
			c.current = nil
		}
		timer := p.timer
		c.mu.Unlock()

		if timer != nil {
			timer.Stop()
		}
		c.cleanup(p)

		c.log.Infow("Capture finished",
			logger.FieldStatus, r.Kind().String(),
			logger.FieldDurationMS, time.Since(p.started).Milliseconds())
		p.out <- r
		close(p.out)
	})
	// Losing paths land here too; cleanup is idempotent.
	c.cleanup(p)
}

// cleanup removes p's listener at most once. Removal errors are logged only:
// the result has already been decided.
func (c *Captor) cleanup(p *pending) {
	p.cleanupOnce.Do(func() {
		if err := c.facade.RemoveMouseListener(p.listener); err != nil {
			c.log.Warnw("Capture listener cleanup failed", logger.FieldError, err)
		}
	})
}

func resolved(r Result) <-chan Result {
	ch := make(chan Result, 1)
	ch <- r
	close(ch)
	return ch
}

// NewEscapeCancel returns a key listener that cancels the in-flight capture
// when Escape is pressed.
func NewEscapeCancel(c *Captor) *hook.KeyTrigger {
	return hook.NewKeyTrigger(hook.KeyEscape, c.Cancel)
}
