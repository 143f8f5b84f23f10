package hook

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/macro"
)

type fakeDriver struct {
	mu      sync.Mutex
	starts  int
	stops   int
	events  chan Event
	failure error
}

func (d *fakeDriver) Start() (<-chan Event, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failure != nil {
		return nil, d.failure
	}
	d.starts++
	d.events = make(chan Event, 16)
	return d.events, nil
}

func (d *fakeDriver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stops++
}

func (d *fakeDriver) emit(ev Event) {
	d.mu.Lock()
	ch := d.events
	d.mu.Unlock()
	ch <- ev
}

func (d *fakeDriver) counts() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.starts, d.stops
}

func TestHub_ReferenceCounting(t *testing.T) {
	driver := &fakeDriver{}
	hub := NewHub(driver, zaptest.NewLogger(t).Sugar())

	assert.False(t, hub.IsRegistered())
	require.NoError(t, hub.Register())
	require.NoError(t, hub.Register())
	assert.True(t, hub.IsRegistered())

	starts, stops := driver.counts()
	assert.Equal(t, 1, starts, "second reference must not restart the driver")
	assert.Equal(t, 0, stops)

	require.NoError(t, hub.Unregister())
	assert.True(t, hub.IsRegistered())
	require.NoError(t, hub.Unregister())
	assert.False(t, hub.IsRegistered())

	// Extra releases are no-ops
	require.NoError(t, hub.Unregister())

	hub.Wait()
	starts, stops = driver.counts()
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, stops)

	// A new session starts the driver again
	require.NoError(t, hub.Register())
	starts, _ = driver.counts()
	assert.Equal(t, 2, starts)
	require.NoError(t, hub.Unregister())
}

func TestHub_RegisterFailure(t *testing.T) {
	driver := &fakeDriver{failure: errors.New("no display")}
	hub := NewHub(driver, nil)

	err := hub.Register()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
	assert.False(t, hub.IsRegistered())
}

func TestHub_DispatchesToListeners(t *testing.T) {
	driver := &fakeDriver{}
	hub := NewHub(driver, nil)
	require.NoError(t, hub.Register())
	defer hub.Unregister()

	clicks := make(chan MouseEvent, 4)
	keys := make(chan KeyEvent, 4)
	ml := NewMouseFunc(func(ev MouseEvent) { clicks <- ev })
	kl := NewKeyFunc(func(ev KeyEvent) { keys <- ev })
	require.NoError(t, hub.AddMouseListener(ml))
	require.NoError(t, hub.AddKeyListener(kl))

	driver.emit(Event{Kind: EventMouseClick, X: 10, Y: 20, Button: macro.ButtonRight})
	driver.emit(Event{Kind: EventKeyDown, Keycode: KeyEscape})

	select {
	case ev := <-clicks:
		assert.Equal(t, macro.Point{X: 10, Y: 20}, ev.Point)
		assert.Equal(t, macro.ButtonRight, ev.Button)
	case <-time.After(time.Second):
		t.Fatal("click not delivered")
	}
	select {
	case ev := <-keys:
		assert.True(t, ev.Down)
		assert.Equal(t, KeyEscape, ev.Keycode)
	case <-time.After(time.Second):
		t.Fatal("key not delivered")
	}

	require.NoError(t, hub.RemoveMouseListener(ml))
	err := hub.RemoveMouseListener(ml)
	assert.True(t, errors.IsNotFound(err), "removing twice reports not found")
	require.NoError(t, hub.RemoveKeyListener(kl))
}

func TestHub_ListenerPanicDoesNotStopDispatch(t *testing.T) {
	driver := &fakeDriver{}
	hub := NewHub(driver, zaptest.NewLogger(t).Sugar())
	require.NoError(t, hub.Register())
	defer hub.Unregister()

	got := make(chan struct{}, 1)
	require.NoError(t, hub.AddMouseListener(NewMouseFunc(func(MouseEvent) { panic("boom") })))
	require.NoError(t, hub.AddMouseListener(NewMouseFunc(func(MouseEvent) { got <- struct{}{} })))

	driver.emit(Event{Kind: EventMouseClick})

	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("second listener not reached")
	}
}

func TestHub_ListenerMayRemoveItself(t *testing.T) {
	driver := &fakeDriver{}
	hub := NewHub(driver, nil)
	require.NoError(t, hub.Register())
	defer hub.Unregister()

	done := make(chan error, 1)
	var self *MouseFunc
	self = NewMouseFunc(func(MouseEvent) { done <- hub.RemoveMouseListener(self) })
	require.NoError(t, hub.AddMouseListener(self))

	driver.emit(Event{Kind: EventMouseClick})

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("listener deadlocked removing itself")
	}
}

func TestHub_RejectsNilListeners(t *testing.T) {
	hub := NewHub(&fakeDriver{}, nil)
	assert.True(t, errors.IsInvalidArgument(hub.AddMouseListener(nil)))
	assert.True(t, errors.IsInvalidArgument(hub.AddKeyListener(nil)))
}

func TestKeyTrigger(t *testing.T) {
	fired := 0
	trig := NewKeyTrigger(KeyEscape, func() { fired++ })

	trig.OnKey(KeyEvent{Keycode: 42, Down: true})
	assert.Equal(t, 0, fired)

	trig.OnKey(KeyEvent{Keycode: KeyEscape, Down: true})
	trig.OnKey(KeyEvent{Keycode: KeyEscape, Down: true}) // auto-repeat
	assert.Equal(t, 1, fired)

	trig.OnKey(KeyEvent{Keycode: KeyEscape, Down: false})
	trig.OnKey(KeyEvent{Keycode: KeyEscape, Down: true})
	assert.Equal(t, 2, fired)
}

func TestKeyLogger(t *testing.T) {
	t.Run("start and stop balance registration", func(t *testing.T) {
		hub := NewHub(&fakeDriver{}, nil)
		kl := NewKeyLogger(hub, zaptest.NewLogger(t).Sugar())

		kl.Start()
		kl.Start()
		assert.True(t, kl.Running())
		assert.True(t, hub.IsRegistered())

		kl.Stop()
		kl.Stop()
		assert.False(t, kl.Running())
		assert.False(t, hub.IsRegistered())
	})

	t.Run("registration failure is not fatal", func(t *testing.T) {
		hub := NewHub(&fakeDriver{failure: errors.ErrUnsupported}, nil)
		kl := NewKeyLogger(hub, nil)

		kl.Start()
		assert.False(t, kl.Running())
		kl.Stop()
	})
}

func TestUnsupportedOrNativeDriver(t *testing.T) {
	assert.NotNil(t, NewDriver())
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "mouse_click", EventMouseClick.String())
	assert.Equal(t, "key_up", EventKeyUp.String())
	assert.Equal(t, "unknown", EventKind(0).String())
}
